package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	apperrors "carebook/internal/errors"
	"carebook/internal/external"
	"carebook/internal/models"

	"github.com/gin-gonic/gin"
)

// PaymentHandlers owns the checkout and reconciliation endpoints. It keeps a
// reference to the checkout client for webhook signature verification.
type PaymentHandlers struct {
	*Handlers
	checkoutClient *external.CheckoutClient
}

func NewPaymentHandlers(h *Handlers, checkoutClient *external.CheckoutClient) *PaymentHandlers {
	return &PaymentHandlers{
		Handlers:       h,
		checkoutClient: checkoutClient,
	}
}

// InitiateCheckout - POST /api/checkout
// Return a redirect URL to the hosted payment page for a booking
func (h *PaymentHandlers) InitiateCheckout(c *gin.Context) {
	var req models.InitiateCheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	url, err := h.services.Bookings.InitiateCheckout(c.Request.Context(), req.BookingID)
	if err != nil {
		respondError(c, err, "Failed to initiate checkout")
		return
	}

	c.JSON(http.StatusOK, models.InitiateCheckoutResponse{URL: url})
}

// VerifyPayment - POST /api/payments/verify
// Client-triggered reconciliation after redirect back from the payment page.
// Courtesy path only; the signed webhook is the source of truth.
func (h *PaymentHandlers) VerifyPayment(c *gin.Context) {
	var req models.VerifyPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	response, err := h.services.Bookings.VerifyPayment(c.Request.Context(), req.SessionID)
	if err != nil {
		if errors.Is(err, apperrors.ErrPaymentNotCompleted) {
			slog.Info("Payment not completed yet", "session_id", req.SessionID)
			c.JSON(http.StatusBadRequest, models.VerifyPaymentResponse{Success: false})
			return
		}
		respondError(c, err, "Failed to verify payment")
		return
	}

	c.JSON(http.StatusOK, response)
}

// OnPaymentUpdates - POST /api/payments/notifications
// Signed server-to-server notification from the payment processor
func (h *PaymentHandlers) OnPaymentUpdates(c *gin.Context) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read body"})
		return
	}

	signature := c.GetHeader("X-Checkout-Signature")
	if !h.checkoutClient.VerifySignature(body, signature) {
		slog.Error("Rejected payment notification with bad signature",
			"client_ip", c.ClientIP())
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid signature"})
		return
	}

	var notification models.PaymentNotificationPayload
	if err := json.Unmarshal(body, &notification); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.services.Bookings.HandlePaymentNotification(c.Request.Context(), &notification); err != nil {
		if errors.Is(err, apperrors.ErrPaymentNotCompleted) {
			// Processor says completed but the session disagrees; surface
			// nothing so the processor retries later
			c.Status(http.StatusOK)
			return
		}
		respondError(c, err, "Failed to handle notification")
		return
	}

	c.Status(http.StatusOK)
}
