package models

import "time"

// CreateBookingRequest - request body for creating a booking.
// The caller's identity comes from the verified token, never from the body.
type CreateBookingRequest struct {
	ServiceID     string   `json:"service_id" binding:"required"`
	StartTime     time.Time `json:"start_time" binding:"required"`
	DurationHours float64  `json:"duration_hours" binding:"required,gte=1"`
	Location      Location `json:"location" binding:"required"`
}

// ListBookingsResponseItem - one booking in the user's history, with a
// minimal projection of its service
type ListBookingsResponseItem struct {
	ID            string    `json:"id"`
	ServiceID     string    `json:"service_id"`
	ServiceTitle  string    `json:"service_title"`
	ServiceImage  string    `json:"service_image"`
	Status        string    `json:"status"`
	PaymentStatus string    `json:"payment_status"`
	StartTime     time.Time `json:"start_time"`
	EndTime       time.Time `json:"end_time"`
	DurationHours float64   `json:"duration_hours"`
	TotalCost     float64   `json:"total_cost"`
	CreatedAt     time.Time `json:"created_at"`
}

// ListBookingsResponse - bookings ordered by most recently created first
type ListBookingsResponse []ListBookingsResponseItem

// InitiateCheckoutRequest - request body for starting a hosted checkout
type InitiateCheckoutRequest struct {
	BookingID string `json:"booking_id" binding:"required"`
}

// InitiateCheckoutResponse - redirect target for the hosted payment page
type InitiateCheckoutResponse struct {
	URL string `json:"url"`
}

// VerifyPaymentRequest - client-triggered reconciliation after redirect back
// from the payment page
type VerifyPaymentRequest struct {
	SessionID string `json:"session_id" binding:"required"`
}

// VerifyPaymentResponse - reconciliation outcome
type VerifyPaymentResponse struct {
	Success   bool   `json:"success"`
	BookingID string `json:"booking_id,omitempty"`
}

// PaymentNotificationPayload - signed webhook body from the payment processor
type PaymentNotificationPayload struct {
	SessionID string `json:"sessionId"`
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
}

// CreateServiceRequest - admin request to add a catalog listing
type CreateServiceRequest struct {
	Title        string   `json:"title" binding:"required"`
	Description  string   `json:"description" binding:"required"`
	Image        string   `json:"image"`
	PricePerHour float64  `json:"price_per_hour" binding:"required,gt=0"`
	Category     string   `json:"category" binding:"required"`
	Features     []string `json:"features"`
}

// ListServicesResponse - catalog listing page
type ListServicesResponse []Service

// UserRoleResponse - role lookup for the presentation layer
type UserRoleResponse struct {
	Role string `json:"role"`
}

// PromoteUserRequest - admin request to grant the admin role
type PromoteUserRequest struct {
	Email string `json:"email" binding:"required,email"`
}
