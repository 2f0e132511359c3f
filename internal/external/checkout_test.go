package external_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	apperrors "carebook/internal/errors"
	"carebook/internal/external"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToMinorUnits(t *testing.T) {
	cases := []struct {
		name   string
		amount float64
		want   int64
	}{
		{"whole dollars", 60, 6000},
		{"exact cents", 19.99, 1999},
		{"sub-cent remainder rounds", 19.999, 2000},
		{"repeating binary fraction", 0.1 + 0.2, 30},
		{"fractional hours cost", 15.5 * 2.5, 3875},
		{"zero", 0, 0},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, external.ToMinorUnits(tc.amount))
		})
	}
}

func TestCreateSession(t *testing.T) {
	var gotAuth string
	var gotReq external.CreateSessionRequest

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/v1/checkout/sessions", r.URL.Path)
		gotAuth = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotReq))

		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(external.CheckoutSession{
			ID:            "sess_1",
			URL:           "https://pay.example.com/c/sess_1",
			PaymentStatus: "unpaid",
			AmountTotal:   6000,
			Metadata:      gotReq.Metadata,
		})
	}))
	defer ts.Close()

	client := external.NewCheckoutClient(external.CheckoutConfig{
		BaseURL: ts.URL,
		APIKey:  "sk_test_123",
		Timeout: 5 * time.Second,
	})

	session, err := client.CreateSession(context.Background(), &external.CreateSessionRequest{
		LineItems: []external.LineItem{
			{Name: "Baby Sitting", Currency: "usd", UnitAmount: 6000, Quantity: 1},
		},
		Mode:       "payment",
		SuccessURL: "http://localhost:3000/payment/success?session_id={CHECKOUT_SESSION_ID}",
		CancelURL:  "http://localhost:3000/service/svc1",
		Metadata:   map[string]string{"bookingId": "b1"},
	})

	require.NoError(t, err)
	assert.Equal(t, "sess_1", session.ID)
	assert.Equal(t, "https://pay.example.com/c/sess_1", session.URL)
	assert.Equal(t, "Bearer sk_test_123", gotAuth)
	assert.Equal(t, "b1", gotReq.Metadata["bookingId"])
	assert.Equal(t, int64(6000), gotReq.LineItems[0].UnitAmount)
}

func TestCreateSession_NoRedirectURL(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(external.CheckoutSession{ID: "sess_1"})
	}))
	defer ts.Close()

	client := external.NewCheckoutClient(external.CheckoutConfig{BaseURL: ts.URL})

	_, err := client.CreateSession(context.Background(), &external.CreateSessionRequest{})
	assert.Error(t, err)
}

func TestGetSession(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/v1/checkout/sessions/sess_1", r.URL.Path)
		json.NewEncoder(w).Encode(external.CheckoutSession{
			ID:            "sess_1",
			PaymentStatus: "paid",
			PaymentIntent: "pi_123",
			Metadata:      map[string]string{"bookingId": "b1"},
		})
	}))
	defer ts.Close()

	client := external.NewCheckoutClient(external.CheckoutConfig{BaseURL: ts.URL})

	session, err := client.GetSession(context.Background(), "sess_1")
	require.NoError(t, err)
	assert.Equal(t, "paid", session.PaymentStatus)
	assert.Equal(t, "pi_123", session.PaymentIntent)
	assert.Equal(t, "b1", session.Metadata["bookingId"])
}

func TestGetSession_NotFound(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer ts.Close()

	client := external.NewCheckoutClient(external.CheckoutConfig{BaseURL: ts.URL})

	_, err := client.GetSession(context.Background(), "missing")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestWebhookSignature(t *testing.T) {
	client := external.NewCheckoutClient(external.CheckoutConfig{WebhookSecret: "whsec_test"})
	payload := []byte(`{"session_id":"sess_1","status":"completed"}`)

	sig := client.SignPayload(payload)
	assert.True(t, client.VerifySignature(payload, sig))
	assert.False(t, client.VerifySignature(payload, "deadbeef"))
	assert.False(t, client.VerifySignature([]byte(`{"session_id":"sess_2"}`), sig))

	// A signature from a different secret must not verify
	other := external.NewCheckoutClient(external.CheckoutConfig{WebhookSecret: "whsec_other"})
	assert.False(t, client.VerifySignature(payload, other.SignPayload(payload)))
}
