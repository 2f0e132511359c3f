package models

import "time"

// NATS Event Types
const (
	EventBookingCreated   = "booking.created"
	EventBookingCancelled = "booking.cancelled"
	EventPaymentCompleted = "payment.completed"
	EventPaymentFailed    = "payment.failed"
)

// BookingCreatedEvent is published after a booking record is persisted
type BookingCreatedEvent struct {
	BookingID     string    `json:"booking_id"`
	ServiceID     string    `json:"service_id"`
	UserEmail     string    `json:"user_email"`
	DurationHours float64   `json:"duration_hours"`
	TotalCost     float64   `json:"total_cost"`
	Address       string    `json:"address"`
	Timestamp     time.Time `json:"timestamp"`
}

// BookingCancelledEvent is published after a booking is soft-cancelled
type BookingCancelledEvent struct {
	BookingID string    `json:"booking_id"`
	UserEmail string    `json:"user_email"`
	WasPaid   bool      `json:"was_paid"`
	Timestamp time.Time `json:"timestamp"`
}

// PaymentCompletedEvent is published once per booking, when reconciliation
// actually transitions it to paid
type PaymentCompletedEvent struct {
	BookingID     string    `json:"booking_id"`
	SessionID     string    `json:"session_id"`
	TransactionID string    `json:"transaction_id"`
	Timestamp     time.Time `json:"timestamp"`
}

// PaymentFailedEvent is published when the processor reports a failed session.
// Failed sessions carry only the session ID; the booking was never reconciled.
type PaymentFailedEvent struct {
	SessionID string    `json:"session_id"`
	Reason    string    `json:"reason"`
	Timestamp time.Time `json:"timestamp"`
}
