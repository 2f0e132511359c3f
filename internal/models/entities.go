package models

import (
	"time"
)

// Booking lifecycle statuses
const (
	BookingStatusPending   = "Pending"
	BookingStatusConfirmed = "Confirmed"
	BookingStatusCompleted = "Completed"
	BookingStatusCancelled = "Cancelled"
)

// Payment statuses
const (
	PaymentStatusPending = "pending"
	PaymentStatusPaid    = "paid"
	PaymentStatusFailed  = "failed"
)

// User roles
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// ServiceCategories is the fixed set of catalog categories
var ServiceCategories = []string{
	"Baby Care", "Elderly Care", "Special Care", "Pet Care", "Household", "Education",
}

// User represents an identity record synced from the identity gateway
type User struct {
	ID            string    `json:"id" db:"id"`
	Name          string    `json:"name" db:"name"`
	Email         string    `json:"email" db:"email"`
	NID           *string   `json:"nid,omitempty" db:"nid"`
	ContactNumber *string   `json:"contact_number,omitempty" db:"contact_number"`
	Role          string    `json:"role" db:"role"`
	CreatedAt     time.Time `json:"created_at" db:"created_at"`
}

// Service represents a care service listing in the catalog
type Service struct {
	ID           string    `json:"id" db:"id"`
	Title        string    `json:"title" db:"title"`
	Description  string    `json:"description" db:"description"`
	Image        string    `json:"image" db:"image"`
	PricePerHour float64   `json:"price_per_hour" db:"price_per_hour"`
	Category     string    `json:"category" db:"category"`
	Features     []string  `json:"features" db:"features"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}

// Location is the structured address a booking is served at
type Location struct {
	Division string `json:"division" db:"division"`
	District string `json:"district" db:"district"`
	City     string `json:"city" db:"city"`
	Area     string `json:"area" db:"area"`
	Address  string `json:"address" db:"address"`
}

// Booking represents a reservation of a service by a user for a time window
type Booking struct {
	ID            string    `json:"id" db:"id"`
	UserID        string    `json:"user_id" db:"user_id"`
	ServiceID     string    `json:"service_id" db:"service_id"`
	Status        string    `json:"status" db:"status"`
	PaymentStatus string    `json:"payment_status" db:"payment_status"`
	StartTime     time.Time `json:"start_time" db:"start_time"`
	EndTime       time.Time `json:"end_time" db:"end_time"`
	DurationHours float64   `json:"duration_hours" db:"duration_hours"`
	Location      Location  `json:"location"`
	TotalCost     float64   `json:"total_cost" db:"total_cost"`
	SessionID     *string   `json:"session_id,omitempty" db:"session_id"`
	TransactionID *string   `json:"transaction_id,omitempty" db:"transaction_id"`
	CreatedAt     time.Time `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time `json:"updated_at" db:"updated_at"`

	// Joined service projection, filled only by listing queries
	ServiceTitle *string `json:"service_title,omitempty"`
	ServiceImage *string `json:"service_image,omitempty"`
}

// IsValidCategory reports whether the category belongs to the fixed enumeration
func IsValidCategory(category string) bool {
	for _, c := range ServiceCategories {
		if c == category {
			return true
		}
	}
	return false
}
