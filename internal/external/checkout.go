package external

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"time"

	apperrors "carebook/internal/errors"
)

// CheckoutClient talks to the hosted-checkout payment processor. The processor
// renders the payment page itself; we only create a session and read it back.
type CheckoutClient struct {
	baseURL       string
	apiKey        string
	webhookSecret string
	httpClient    *http.Client
}

type CheckoutConfig struct {
	BaseURL       string
	APIKey        string
	WebhookSecret string
	Timeout       time.Duration
}

// Hosted checkout models
type LineItem struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Currency    string `json:"currency"`
	UnitAmount  int64  `json:"unit_amount"`
	Quantity    int64  `json:"quantity"`
}

type CreateSessionRequest struct {
	LineItems  []LineItem        `json:"line_items"`
	Mode       string            `json:"mode"`
	SuccessURL string            `json:"success_url"`
	CancelURL  string            `json:"cancel_url"`
	Metadata   map[string]string `json:"metadata,omitempty"`
}

type CheckoutSession struct {
	ID            string            `json:"id"`
	URL           string            `json:"url"`
	PaymentStatus string            `json:"payment_status"`
	PaymentIntent string            `json:"payment_intent"`
	AmountTotal   int64             `json:"amount_total"`
	Currency      string            `json:"currency"`
	Metadata      map[string]string `json:"metadata"`
	CreatedAt     string            `json:"created_at"`
	ExpiresAt     string            `json:"expires_at"`
}

func NewCheckoutClient(cfg CheckoutConfig) *CheckoutClient {
	if cfg.Timeout == 0 {
		cfg.Timeout = 10 * time.Second
	}

	return &CheckoutClient{
		baseURL:       cfg.BaseURL,
		apiKey:        cfg.APIKey,
		webhookSecret: cfg.WebhookSecret,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
	}
}

// ToMinorUnits converts a decimal amount to the processor's minor-unit
// representation (cents), rounding half-up so we never under-charge.
func ToMinorUnits(amount float64) int64 {
	return int64(math.Floor(amount*100 + 0.5))
}

// CreateSession asks the processor for a hosted checkout session and returns
// it with the redirect URL filled in.
func (cc *CheckoutClient) CreateSession(ctx context.Context, req *CreateSessionRequest) (*CheckoutSession, error) {
	jsonBody, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost,
		cc.baseURL+"/v1/checkout/sessions", bytes.NewBuffer(jsonBody))
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+cc.apiKey)

	resp, err := cc.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("failed to create checkout session: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return nil, fmt.Errorf("checkout session creation failed: status %d", resp.StatusCode)
	}

	var session CheckoutSession
	if err := json.NewDecoder(resp.Body).Decode(&session); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	if session.URL == "" {
		return nil, fmt.Errorf("checkout session has no redirect URL")
	}

	return &session, nil
}

// GetSession retrieves a previously created session by its identifier.
func (cc *CheckoutClient) GetSession(ctx context.Context, sessionID string) (*CheckoutSession, error) {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet,
		cc.baseURL+"/v1/checkout/sessions/"+sessionID, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	httpReq.Header.Set("Authorization", "Bearer "+cc.apiKey)

	resp, err := cc.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve checkout session: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, fmt.Errorf("session %s: %w", sessionID, apperrors.ErrNotFound)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("checkout session retrieval failed: status %d", resp.StatusCode)
	}

	var session CheckoutSession
	if err := json.NewDecoder(resp.Body).Decode(&session); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	return &session, nil
}

// VerifySignature checks the HMAC-SHA256 signature the processor attaches to
// webhook notifications. The payload must be the raw request body.
func (cc *CheckoutClient) VerifySignature(payload []byte, signature string) bool {
	mac := hmac.New(sha256.New, []byte(cc.webhookSecret))
	mac.Write(payload)
	expected := hex.EncodeToString(mac.Sum(nil))

	return subtle.ConstantTimeCompare([]byte(expected), []byte(signature)) == 1
}

// SignPayload computes the webhook signature for a payload. Exposed for tests
// and for the processor simulator.
func (cc *CheckoutClient) SignPayload(payload []byte) string {
	mac := hmac.New(sha256.New, []byte(cc.webhookSecret))
	mac.Write(payload)
	return hex.EncodeToString(mac.Sum(nil))
}
