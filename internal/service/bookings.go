package service

import (
	"context"
	"fmt"
	"time"

	apperrors "carebook/internal/errors"
	"carebook/internal/external"
	"carebook/internal/logger"
	"carebook/internal/models"
)

// BookingService owns the booking lifecycle: creation with cost derivation,
// checkout initiation, payment reconciliation and cancellation.
type BookingService struct {
	bookingStore BookingStore
	serviceStore ServiceStore
	userStore    UserStore
	checkout     CheckoutProvider
	publisher    EventPublisher
	appURL       string
}

func NewBookingService(bookingStore BookingStore, serviceStore ServiceStore, userStore UserStore,
	checkout CheckoutProvider, publisher EventPublisher, appURL string) *BookingService {
	return &BookingService{
		bookingStore: bookingStore,
		serviceStore: serviceStore,
		userStore:    userStore,
		checkout:     checkout,
		publisher:    publisher,
		appURL:       appURL,
	}
}

// Create persists a new booking for the verified caller. End time and total
// cost are derived here, once, and never recomputed from mutable inputs.
func (s *BookingService) Create(ctx context.Context, email, name string, req *models.CreateBookingRequest) (*models.Booking, error) {
	if email == "" {
		return nil, fmt.Errorf("email is required: %w", apperrors.ErrBadRequest)
	}
	if req.DurationHours < 1 {
		return nil, fmt.Errorf("duration must be at least 1 hour: %w", apperrors.ErrBadRequest)
	}
	if req.StartTime.IsZero() {
		return nil, fmt.Errorf("start time is required: %w", apperrors.ErrBadRequest)
	}
	if req.Location.Address == "" {
		return nil, fmt.Errorf("location address is required: %w", apperrors.ErrBadRequest)
	}

	// Lazy sync from the identity gateway: first booking creates the user
	user, err := s.userStore.UpsertByEmail(ctx, email, name)
	if err != nil {
		return nil, fmt.Errorf("failed to sync user: %w", err)
	}

	svc, err := s.serviceStore.GetByID(ctx, req.ServiceID)
	if err != nil {
		return nil, fmt.Errorf("failed to get service: %w", err)
	}
	if svc == nil {
		return nil, fmt.Errorf("service %s: %w", req.ServiceID, apperrors.ErrNotFound)
	}

	// Price is captured into total_cost now; later catalog price changes
	// must not alter this booking.
	booking := &models.Booking{
		UserID:        user.ID,
		ServiceID:     svc.ID,
		Status:        models.BookingStatusPending,
		PaymentStatus: models.PaymentStatusPending,
		StartTime:     req.StartTime,
		EndTime:       req.StartTime.Add(time.Duration(req.DurationHours * float64(time.Hour))),
		DurationHours: req.DurationHours,
		Location:      req.Location,
		TotalCost:     svc.PricePerHour * req.DurationHours,
	}

	if err := s.bookingStore.Create(ctx, booking); err != nil {
		return nil, fmt.Errorf("failed to create booking: %w", err)
	}

	event := models.BookingCreatedEvent{
		BookingID:     booking.ID,
		ServiceID:     booking.ServiceID,
		UserEmail:     email,
		DurationHours: booking.DurationHours,
		TotalCost:     booking.TotalCost,
		Address:       booking.Location.Address,
		Timestamp:     time.Now(),
	}

	if err := s.publisher.Publish(models.EventBookingCreated, event); err != nil {
		// Log error but don't fail the operation
		logger.WithContext(ctx).Error("Failed to publish booking created event",
			"error", err,
			"booking_id", booking.ID,
			"event_type", models.EventBookingCreated)
	}

	return booking, nil
}

// List returns the caller's bookings newest first, with service projections.
// A user with no bookings gets an empty list, not an error.
func (s *BookingService) List(ctx context.Context, email string) (models.ListBookingsResponse, error) {
	if email == "" {
		return nil, fmt.Errorf("email is required: %w", apperrors.ErrBadRequest)
	}

	user, err := s.userStore.GetByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil {
		return nil, fmt.Errorf("user %s: %w", email, apperrors.ErrNotFound)
	}

	bookings, err := s.bookingStore.GetByUserID(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to get bookings: %w", err)
	}

	result := make(models.ListBookingsResponse, 0, len(bookings))
	for _, booking := range bookings {
		item := models.ListBookingsResponseItem{
			ID:            booking.ID,
			ServiceID:     booking.ServiceID,
			Status:        booking.Status,
			PaymentStatus: booking.PaymentStatus,
			StartTime:     booking.StartTime,
			EndTime:       booking.EndTime,
			DurationHours: booking.DurationHours,
			TotalCost:     booking.TotalCost,
			CreatedAt:     booking.CreatedAt,
		}
		if booking.ServiceTitle != nil {
			item.ServiceTitle = *booking.ServiceTitle
		}
		if booking.ServiceImage != nil {
			item.ServiceImage = *booking.ServiceImage
		}
		result = append(result, item)
	}

	return result, nil
}

// InitiateCheckout asks the processor for a hosted checkout session and
// returns its redirect URL. The booking itself is not mutated, so the caller
// may safely re-initiate after a failure.
func (s *BookingService) InitiateCheckout(ctx context.Context, bookingID string) (string, error) {
	booking, err := s.bookingStore.GetByID(ctx, bookingID)
	if err != nil {
		return "", fmt.Errorf("failed to get booking: %w", err)
	}
	if booking == nil {
		return "", fmt.Errorf("booking %s: %w", bookingID, apperrors.ErrNotFound)
	}

	svc, err := s.serviceStore.GetByID(ctx, booking.ServiceID)
	if err != nil {
		return "", fmt.Errorf("failed to get service: %w", err)
	}
	if svc == nil {
		return "", fmt.Errorf("service %s: %w", booking.ServiceID, apperrors.ErrNotFound)
	}

	req := &external.CreateSessionRequest{
		LineItems: []external.LineItem{
			{
				Name:        svc.Title,
				Description: fmt.Sprintf("Booking for %g hours", booking.DurationHours),
				Currency:    "usd",
				UnitAmount:  external.ToMinorUnits(booking.TotalCost),
				Quantity:    1,
			},
		},
		Mode: "payment",
		// The processor substitutes the placeholder with the real session ID
		SuccessURL: s.appURL + "/payment/success?session_id={CHECKOUT_SESSION_ID}",
		CancelURL:  s.appURL + "/service/" + svc.ID,
		Metadata: map[string]string{
			"bookingId": booking.ID,
		},
	}

	session, err := s.checkout.CreateSession(ctx, req)
	if err != nil {
		return "", fmt.Errorf("failed to create checkout session: %w", err)
	}

	return session.URL, nil
}

// VerifyPayment reconciles a checkout session against its booking. The paid
// transition is a single conditional update, so retrying with the same
// session is idempotent and an unpaid session never mutates the booking.
func (s *BookingService) VerifyPayment(ctx context.Context, sessionID string) (*models.VerifyPaymentResponse, error) {
	session, err := s.checkout.GetSession(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve session: %w", err)
	}

	if session.PaymentStatus != "paid" {
		return nil, fmt.Errorf("session %s status %q: %w",
			sessionID, session.PaymentStatus, apperrors.ErrPaymentNotCompleted)
	}

	bookingID := session.Metadata["bookingId"]
	if bookingID == "" {
		return nil, fmt.Errorf("session %s has no booking metadata", sessionID)
	}

	updated, err := s.bookingStore.MarkPaid(ctx, bookingID, session.ID, session.PaymentIntent)
	if err != nil {
		return nil, fmt.Errorf("failed to mark booking paid: %w", err)
	}

	if !updated {
		// Either already reconciled (fine, idempotent) or the booking is gone
		booking, err := s.bookingStore.GetByID(ctx, bookingID)
		if err != nil {
			return nil, fmt.Errorf("failed to get booking: %w", err)
		}
		if booking == nil {
			return nil, fmt.Errorf("booking %s: %w", bookingID, apperrors.ErrNotFound)
		}
		return &models.VerifyPaymentResponse{Success: true, BookingID: bookingID}, nil
	}

	event := models.PaymentCompletedEvent{
		BookingID:     bookingID,
		SessionID:     session.ID,
		TransactionID: session.PaymentIntent,
		Timestamp:     time.Now(),
	}

	// Published only on the first successful transition, so downstream
	// side effects (confirmation email, invoice) happen once per booking
	if err := s.publisher.Publish(models.EventPaymentCompleted, event); err != nil {
		logger.WithContext(ctx).Error("Failed to publish payment completed event",
			"error", err,
			"booking_id", bookingID,
			"event_type", models.EventPaymentCompleted)
	}

	return &models.VerifyPaymentResponse{Success: true, BookingID: bookingID}, nil
}

// HandlePaymentNotification processes the processor's signed webhook. The
// signature is checked at the transport boundary; here we re-read the session
// from the processor rather than trusting the payload's status.
func (s *BookingService) HandlePaymentNotification(ctx context.Context, notification *models.PaymentNotificationPayload) error {
	logger.WithContext(ctx).Info("Received payment notification",
		"session_id", notification.SessionID,
		"status", notification.Status)

	switch notification.Status {
	case "completed", "paid":
		_, err := s.VerifyPayment(ctx, notification.SessionID)
		return err

	case "failed", "expired":
		event := models.PaymentFailedEvent{
			SessionID: notification.SessionID,
			Reason:    notification.Status,
			Timestamp: time.Now(),
		}
		if err := s.publisher.Publish(models.EventPaymentFailed, event); err != nil {
			logger.WithContext(ctx).Error("Failed to publish payment failed event",
				"error", err,
				"session_id", notification.SessionID,
				"event_type", models.EventPaymentFailed)
		}
	}

	return nil
}

// Cancel soft-cancels the caller's booking. The record stays so payment
// history of an already-paid booking is never lost.
func (s *BookingService) Cancel(ctx context.Context, bookingID, email string) error {
	booking, err := s.bookingStore.GetByID(ctx, bookingID)
	if err != nil {
		return fmt.Errorf("failed to get booking: %w", err)
	}
	if booking == nil {
		return fmt.Errorf("booking %s: %w", bookingID, apperrors.ErrNotFound)
	}

	user, err := s.userStore.GetByEmail(ctx, email)
	if err != nil {
		return fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil || user.ID != booking.UserID {
		return fmt.Errorf("booking %s belongs to another user: %w", bookingID, apperrors.ErrForbidden)
	}

	cancelled, err := s.bookingStore.Cancel(ctx, bookingID)
	if err != nil {
		return fmt.Errorf("failed to cancel booking: %w", err)
	}
	if !cancelled {
		// Already cancelled, nothing more to do
		return nil
	}

	event := models.BookingCancelledEvent{
		BookingID: bookingID,
		UserEmail: email,
		WasPaid:   booking.PaymentStatus == models.PaymentStatusPaid,
		Timestamp: time.Now(),
	}

	if err := s.publisher.Publish(models.EventBookingCancelled, event); err != nil {
		logger.WithContext(ctx).Error("Failed to publish booking cancelled event",
			"error", err,
			"booking_id", bookingID,
			"event_type", models.EventBookingCancelled)
	}

	return nil
}
