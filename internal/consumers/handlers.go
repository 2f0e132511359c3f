package consumers

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"carebook/internal/models"
	"carebook/internal/repository"

	"github.com/nats-io/stan.go"
)

type Handlers struct {
	repos    *repository.Repositories
	invoices *InvoiceGenerator
}

func NewHandlers(repos *repository.Repositories, invoices *InvoiceGenerator) *Handlers {
	return &Handlers{
		repos:    repos,
		invoices: invoices,
	}
}

// sendEmail stands in for a real mail provider. The message body goes to the
// log so the flow is observable in development.
func sendEmail(to, subject, body string) {
	slog.Info("Email sent",
		"to", to,
		"subject", subject,
		"body", body)
}

func (h *Handlers) HandleBookingCreated(m *stan.Msg) {
	var event models.BookingCreatedEvent
	if err := json.Unmarshal(m.Data, &event); err != nil {
		slog.Error("Failed to unmarshal booking created event", "error", err)
		return
	}

	sendEmail(event.UserEmail,
		fmt.Sprintf("Booking Confirmation - %s", event.BookingID),
		fmt.Sprintf("Thank you for booking with carebook!\nDuration: %g hours\nTotal Cost: $%.2f\nAddress: %s\nStatus: Pending",
			event.DurationHours, event.TotalCost, event.Address))

	m.Ack()
}

func (h *Handlers) HandlePaymentCompleted(m *stan.Msg) {
	var event models.PaymentCompletedEvent
	if err := json.Unmarshal(m.Data, &event); err != nil {
		slog.Error("Failed to unmarshal payment completed event", "error", err)
		return
	}

	// Reconciliation already moved the booking to Confirmed/paid; this side
	// only renders the invoice and mails the confirmation
	ctx := context.Background()
	booking, err := h.repos.Bookings.GetByID(ctx, event.BookingID)
	if err != nil || booking == nil {
		slog.Error("Failed to load booking for invoice", "booking_id", event.BookingID, "error", err)
		return
	}

	svc, err := h.repos.Services.GetByID(ctx, booking.ServiceID)
	if err != nil || svc == nil {
		slog.Error("Failed to load service for invoice", "service_id", booking.ServiceID, "error", err)
		return
	}

	invoicePath, err := h.invoices.Generate(booking, svc, event.TransactionID)
	if err != nil {
		slog.Error("Failed to generate invoice", "booking_id", booking.ID, "error", err)
		// Still send the confirmation; the invoice can be regenerated
	}

	user, err := h.repos.Users.GetByID(ctx, booking.UserID)
	if err == nil && user != nil {
		sendEmail(user.Email,
			fmt.Sprintf("Payment Received - %s", booking.ID),
			fmt.Sprintf("Your payment of $%.2f for %s is confirmed.\nTransaction: %s\nInvoice: %s",
				booking.TotalCost, svc.Title, event.TransactionID, invoicePath))
	}

	m.Ack()
}

func (h *Handlers) HandlePaymentFailed(m *stan.Msg) {
	var event models.PaymentFailedEvent
	if err := json.Unmarshal(m.Data, &event); err != nil {
		slog.Error("Failed to unmarshal payment failed event", "error", err)
		return
	}

	slog.Warn("Payment failed for session",
		"session_id", event.SessionID,
		"reason", event.Reason)

	m.Ack()
}

func (h *Handlers) HandleBookingCancelled(m *stan.Msg) {
	var event models.BookingCancelledEvent
	if err := json.Unmarshal(m.Data, &event); err != nil {
		slog.Error("Failed to unmarshal booking cancelled event", "error", err)
		return
	}

	sendEmail(event.UserEmail,
		fmt.Sprintf("Booking Cancelled - %s", event.BookingID),
		"Your booking has been cancelled.")

	if event.WasPaid {
		// Refunds are handled manually for now
		slog.Warn("Cancelled booking was already paid, refund required",
			"booking_id", event.BookingID)
	}

	m.Ack()
}
