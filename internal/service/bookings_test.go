package service_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	apperrors "carebook/internal/errors"
	"carebook/internal/external"
	"carebook/internal/models"
	"carebook/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// Mocks for the service-layer ports

type mockBookingStore struct{ mock.Mock }

func (m *mockBookingStore) Create(ctx context.Context, booking *models.Booking) error {
	args := m.Called(ctx, booking)
	return args.Error(0)
}

func (m *mockBookingStore) GetByID(ctx context.Context, id string) (*models.Booking, error) {
	args := m.Called(ctx, id)
	if b := args.Get(0); b != nil {
		return b.(*models.Booking), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockBookingStore) GetByUserID(ctx context.Context, userID string) ([]models.Booking, error) {
	args := m.Called(ctx, userID)
	if b := args.Get(0); b != nil {
		return b.([]models.Booking), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockBookingStore) MarkPaid(ctx context.Context, id, sessionID, transactionID string) (bool, error) {
	args := m.Called(ctx, id, sessionID, transactionID)
	return args.Bool(0), args.Error(1)
}

func (m *mockBookingStore) Cancel(ctx context.Context, id string) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

type mockServiceStore struct{ mock.Mock }

func (m *mockServiceStore) Create(ctx context.Context, svc *models.Service) error {
	args := m.Called(ctx, svc)
	return args.Error(0)
}

func (m *mockServiceStore) GetByID(ctx context.Context, id string) (*models.Service, error) {
	args := m.Called(ctx, id)
	if s := args.Get(0); s != nil {
		return s.(*models.Service), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockServiceStore) List(ctx context.Context, category string, page, pageSize int) ([]models.Service, error) {
	args := m.Called(ctx, category, page, pageSize)
	if s := args.Get(0); s != nil {
		return s.([]models.Service), args.Error(1)
	}
	return nil, args.Error(1)
}

type mockUserStore struct{ mock.Mock }

func (m *mockUserStore) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	if u := args.Get(0); u != nil {
		return u.(*models.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockUserStore) UpsertByEmail(ctx context.Context, email, name string) (*models.User, error) {
	args := m.Called(ctx, email, name)
	if u := args.Get(0); u != nil {
		return u.(*models.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockUserStore) UpdateRole(ctx context.Context, email, role string) (bool, error) {
	args := m.Called(ctx, email, role)
	return args.Bool(0), args.Error(1)
}

type mockCheckout struct{ mock.Mock }

func (m *mockCheckout) CreateSession(ctx context.Context, req *external.CreateSessionRequest) (*external.CheckoutSession, error) {
	args := m.Called(ctx, req)
	if s := args.Get(0); s != nil {
		return s.(*external.CheckoutSession), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockCheckout) GetSession(ctx context.Context, sessionID string) (*external.CheckoutSession, error) {
	args := m.Called(ctx, sessionID)
	if s := args.Get(0); s != nil {
		return s.(*external.CheckoutSession), args.Error(1)
	}
	return nil, args.Error(1)
}

type mockPublisher struct{ mock.Mock }

func (m *mockPublisher) Publish(subject string, data interface{}) error {
	args := m.Called(subject, data)
	return args.Error(0)
}

func newTestBookingService() (*service.BookingService, *mockBookingStore, *mockServiceStore, *mockUserStore, *mockCheckout, *mockPublisher) {
	bookings := &mockBookingStore{}
	services := &mockServiceStore{}
	users := &mockUserStore{}
	checkout := &mockCheckout{}
	publisher := &mockPublisher{}
	svc := service.NewBookingService(bookings, services, users, checkout, publisher, "http://localhost:3000")
	return svc, bookings, services, users, checkout, publisher
}

func TestCreateBooking_DerivesCostAndEndTime(t *testing.T) {
	svc, bookings, services, users, _, publisher := newTestBookingService()
	ctx := context.Background()

	start := time.Date(2026, 9, 1, 9, 0, 0, 0, time.UTC)

	users.On("UpsertByEmail", ctx, "alice@example.com", "Alice").
		Return(&models.User{ID: "u1", Email: "alice@example.com", Role: models.RoleUser}, nil)
	services.On("GetByID", ctx, "svc1").
		Return(&models.Service{ID: "svc1", Title: "Baby Sitting", PricePerHour: 20}, nil)
	bookings.On("Create", ctx, mock.AnythingOfType("*models.Booking")).
		Run(func(args mock.Arguments) {
			b := args.Get(1).(*models.Booking)
			b.ID = "b1"
		}).
		Return(nil)
	publisher.On("Publish", models.EventBookingCreated, mock.Anything).Return(nil)

	booking, err := svc.Create(ctx, "alice@example.com", "Alice", &models.CreateBookingRequest{
		ServiceID:     "svc1",
		StartTime:     start,
		DurationHours: 3,
		Location:      models.Location{Address: "12 Lake Road", Area: "Gulshan"},
	})

	assert.NoError(t, err)
	if assert.NotNil(t, booking) {
		assert.Equal(t, 60.0, booking.TotalCost)
		assert.Equal(t, start.Add(3*time.Hour), booking.EndTime)
		assert.Equal(t, 3*time.Hour, booking.EndTime.Sub(booking.StartTime))
		assert.Equal(t, models.BookingStatusPending, booking.Status)
		assert.Equal(t, models.PaymentStatusPending, booking.PaymentStatus)
		assert.Equal(t, "u1", booking.UserID)
	}
}

func TestCreateBooking_FractionalDuration(t *testing.T) {
	svc, bookings, services, users, _, publisher := newTestBookingService()
	ctx := context.Background()

	users.On("UpsertByEmail", ctx, "alice@example.com", "").
		Return(&models.User{ID: "u1"}, nil)
	services.On("GetByID", ctx, "svc1").
		Return(&models.Service{ID: "svc1", PricePerHour: 15.5}, nil)
	bookings.On("Create", ctx, mock.Anything).Return(nil)
	publisher.On("Publish", mock.Anything, mock.Anything).Return(nil)

	booking, err := svc.Create(ctx, "alice@example.com", "", &models.CreateBookingRequest{
		ServiceID:     "svc1",
		StartTime:     time.Now(),
		DurationHours: 2.5,
		Location:      models.Location{Address: "addr"},
	})

	assert.NoError(t, err)
	assert.Equal(t, 15.5*2.5, booking.TotalCost)
}

func TestCreateBooking_ServiceNotFound(t *testing.T) {
	svc, bookings, services, users, _, _ := newTestBookingService()
	ctx := context.Background()

	users.On("UpsertByEmail", ctx, "alice@example.com", "Alice").
		Return(&models.User{ID: "u1"}, nil)
	services.On("GetByID", ctx, "missing").Return(nil, nil)

	_, err := svc.Create(ctx, "alice@example.com", "Alice", &models.CreateBookingRequest{
		ServiceID:     "missing",
		StartTime:     time.Now(),
		DurationHours: 2,
		Location:      models.Location{Address: "addr"},
	})

	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	bookings.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCreateBooking_MissingEmail(t *testing.T) {
	svc, _, _, _, _, _ := newTestBookingService()

	_, err := svc.Create(context.Background(), "", "", &models.CreateBookingRequest{
		ServiceID:     "svc1",
		StartTime:     time.Now(),
		DurationHours: 2,
		Location:      models.Location{Address: "addr"},
	})

	assert.ErrorIs(t, err, apperrors.ErrBadRequest)
}

func TestCreateBooking_DurationBelowMinimum(t *testing.T) {
	svc, _, _, _, _, _ := newTestBookingService()

	_, err := svc.Create(context.Background(), "alice@example.com", "", &models.CreateBookingRequest{
		ServiceID:     "svc1",
		StartTime:     time.Now(),
		DurationHours: 0.5,
		Location:      models.Location{Address: "addr"},
	})

	assert.ErrorIs(t, err, apperrors.ErrBadRequest)
}

func TestInitiateCheckout_BuildsSession(t *testing.T) {
	svc, bookings, services, _, checkout, _ := newTestBookingService()
	ctx := context.Background()

	bookings.On("GetByID", ctx, "b1").Return(&models.Booking{
		ID: "b1", ServiceID: "svc1", DurationHours: 3, TotalCost: 60,
	}, nil)
	services.On("GetByID", ctx, "svc1").
		Return(&models.Service{ID: "svc1", Title: "Baby Sitting", PricePerHour: 20}, nil)

	var captured *external.CreateSessionRequest
	checkout.On("CreateSession", ctx, mock.AnythingOfType("*external.CreateSessionRequest")).
		Run(func(args mock.Arguments) {
			captured = args.Get(1).(*external.CreateSessionRequest)
		}).
		Return(&external.CheckoutSession{ID: "sess_1", URL: "https://pay.example.com/sess_1"}, nil)

	url, err := svc.InitiateCheckout(ctx, "b1")

	assert.NoError(t, err)
	assert.Equal(t, "https://pay.example.com/sess_1", url)
	if assert.NotNil(t, captured) {
		assert.Len(t, captured.LineItems, 1)
		assert.Equal(t, "Baby Sitting", captured.LineItems[0].Name)
		assert.Equal(t, int64(6000), captured.LineItems[0].UnitAmount)
		assert.Equal(t, "payment", captured.Mode)
		assert.Equal(t, "b1", captured.Metadata["bookingId"])
		assert.Contains(t, captured.SuccessURL, "{CHECKOUT_SESSION_ID}")
		assert.Contains(t, captured.CancelURL, "/service/svc1")
	}
}

func TestInitiateCheckout_BookingNotFound(t *testing.T) {
	svc, bookings, _, _, checkout, _ := newTestBookingService()
	ctx := context.Background()

	bookings.On("GetByID", ctx, "missing").Return(nil, nil)

	_, err := svc.InitiateCheckout(ctx, "missing")

	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	checkout.AssertNotCalled(t, "CreateSession", mock.Anything, mock.Anything)
}

func TestVerifyPayment_PaidSession(t *testing.T) {
	svc, bookings, _, _, checkout, publisher := newTestBookingService()
	ctx := context.Background()

	checkout.On("GetSession", ctx, "sess_1").Return(&external.CheckoutSession{
		ID:            "sess_1",
		PaymentStatus: "paid",
		PaymentIntent: "pi_123",
		Metadata:      map[string]string{"bookingId": "b1"},
	}, nil)
	bookings.On("MarkPaid", ctx, "b1", "sess_1", "pi_123").Return(true, nil)
	publisher.On("Publish", models.EventPaymentCompleted, mock.Anything).Return(nil)

	resp, err := svc.VerifyPayment(ctx, "sess_1")

	assert.NoError(t, err)
	assert.True(t, resp.Success)
	assert.Equal(t, "b1", resp.BookingID)
	publisher.AssertNumberOfCalls(t, "Publish", 1)
}

func TestVerifyPayment_Idempotent(t *testing.T) {
	svc, bookings, _, _, checkout, publisher := newTestBookingService()
	ctx := context.Background()

	checkout.On("GetSession", ctx, "sess_1").Return(&external.CheckoutSession{
		ID:            "sess_1",
		PaymentStatus: "paid",
		PaymentIntent: "pi_123",
		Metadata:      map[string]string{"bookingId": "b1"},
	}, nil)
	// Conditional update reports the booking was already paid
	bookings.On("MarkPaid", ctx, "b1", "sess_1", "pi_123").Return(false, nil)
	txn := "pi_123"
	bookings.On("GetByID", ctx, "b1").Return(&models.Booking{
		ID:            "b1",
		Status:        models.BookingStatusConfirmed,
		PaymentStatus: models.PaymentStatusPaid,
		TransactionID: &txn,
	}, nil)

	resp, err := svc.VerifyPayment(ctx, "sess_1")

	assert.NoError(t, err)
	assert.True(t, resp.Success)
	assert.Equal(t, "b1", resp.BookingID)
	// No second completion event, so no duplicate emails or invoices
	publisher.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)
}

func TestVerifyPayment_UnpaidSessionDoesNotMutate(t *testing.T) {
	svc, bookings, _, _, checkout, publisher := newTestBookingService()
	ctx := context.Background()

	checkout.On("GetSession", ctx, "sess_1").Return(&external.CheckoutSession{
		ID:            "sess_1",
		PaymentStatus: "unpaid",
		Metadata:      map[string]string{"bookingId": "b1"},
	}, nil)

	_, err := svc.VerifyPayment(ctx, "sess_1")

	assert.ErrorIs(t, err, apperrors.ErrPaymentNotCompleted)
	bookings.AssertNotCalled(t, "MarkPaid", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	publisher.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)
}

func TestVerifyPayment_UnknownSession(t *testing.T) {
	svc, _, _, _, checkout, _ := newTestBookingService()
	ctx := context.Background()

	checkout.On("GetSession", ctx, "missing").
		Return(nil, fmt.Errorf("session missing: %w", apperrors.ErrNotFound))

	_, err := svc.VerifyPayment(ctx, "missing")

	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestVerifyPayment_BookingGone(t *testing.T) {
	svc, bookings, _, _, checkout, _ := newTestBookingService()
	ctx := context.Background()

	checkout.On("GetSession", ctx, "sess_1").Return(&external.CheckoutSession{
		ID:            "sess_1",
		PaymentStatus: "paid",
		PaymentIntent: "pi_123",
		Metadata:      map[string]string{"bookingId": "b1"},
	}, nil)
	bookings.On("MarkPaid", ctx, "b1", "sess_1", "pi_123").Return(false, nil)
	bookings.On("GetByID", ctx, "b1").Return(nil, nil)

	_, err := svc.VerifyPayment(ctx, "sess_1")

	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestCancel_NotFound(t *testing.T) {
	svc, bookings, _, _, _, publisher := newTestBookingService()
	ctx := context.Background()

	bookings.On("GetByID", ctx, "missing").Return(nil, nil)

	err := svc.Cancel(ctx, "missing", "alice@example.com")

	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	bookings.AssertNotCalled(t, "Cancel", mock.Anything, mock.Anything)
	publisher.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)
}

func TestCancel_SoftCancelKeepsPaymentHistory(t *testing.T) {
	svc, bookings, _, users, _, publisher := newTestBookingService()
	ctx := context.Background()

	bookings.On("GetByID", ctx, "b1").Return(&models.Booking{
		ID: "b1", UserID: "u1", PaymentStatus: models.PaymentStatusPaid,
	}, nil)
	users.On("GetByEmail", ctx, "alice@example.com").
		Return(&models.User{ID: "u1", Email: "alice@example.com"}, nil)
	bookings.On("Cancel", ctx, "b1").Return(true, nil)

	var published models.BookingCancelledEvent
	publisher.On("Publish", models.EventBookingCancelled, mock.Anything).
		Run(func(args mock.Arguments) {
			published = args.Get(1).(models.BookingCancelledEvent)
		}).
		Return(nil)

	err := svc.Cancel(ctx, "b1", "alice@example.com")

	assert.NoError(t, err)
	assert.True(t, published.WasPaid)
}

func TestCancel_ForbiddenForOtherUser(t *testing.T) {
	svc, bookings, _, users, _, _ := newTestBookingService()
	ctx := context.Background()

	bookings.On("GetByID", ctx, "b1").Return(&models.Booking{ID: "b1", UserID: "u1"}, nil)
	users.On("GetByEmail", ctx, "mallory@example.com").
		Return(&models.User{ID: "u2", Email: "mallory@example.com"}, nil)

	err := svc.Cancel(ctx, "b1", "mallory@example.com")

	assert.ErrorIs(t, err, apperrors.ErrForbidden)
	bookings.AssertNotCalled(t, "Cancel", mock.Anything, mock.Anything)
}

func TestList_EmptyForUserWithNoBookings(t *testing.T) {
	svc, bookings, _, users, _, _ := newTestBookingService()
	ctx := context.Background()

	users.On("GetByEmail", ctx, "alice@example.com").
		Return(&models.User{ID: "u1"}, nil)
	bookings.On("GetByUserID", ctx, "u1").Return([]models.Booking{}, nil)

	result, err := svc.List(ctx, "alice@example.com")

	assert.NoError(t, err)
	assert.NotNil(t, result)
	assert.Len(t, result, 0)
}

func TestList_UnknownUser(t *testing.T) {
	svc, _, _, users, _, _ := newTestBookingService()
	ctx := context.Background()

	users.On("GetByEmail", ctx, "nobody@example.com").Return(nil, nil)

	_, err := svc.List(ctx, "nobody@example.com")

	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestHandlePaymentNotification_FailedPublishesEvent(t *testing.T) {
	svc, bookings, _, _, _, publisher := newTestBookingService()
	ctx := context.Background()

	var published models.PaymentFailedEvent
	publisher.On("Publish", models.EventPaymentFailed, mock.Anything).
		Run(func(args mock.Arguments) {
			published = args.Get(1).(models.PaymentFailedEvent)
		}).
		Return(nil)

	err := svc.HandlePaymentNotification(ctx, &models.PaymentNotificationPayload{
		SessionID: "sess_1",
		Status:    "failed",
	})

	assert.NoError(t, err)
	bookings.AssertNotCalled(t, "MarkPaid", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	assert.Equal(t, "sess_1", published.SessionID)
	assert.Equal(t, "failed", published.Reason)
}

// In-memory fakes for the end-to-end scenario

type fakeBookingStore struct {
	bookings map[string]*models.Booking
	next     int
}

func newFakeBookingStore() *fakeBookingStore {
	return &fakeBookingStore{bookings: map[string]*models.Booking{}}
}

func (f *fakeBookingStore) Create(_ context.Context, booking *models.Booking) error {
	f.next++
	booking.ID = fmt.Sprintf("booking-%d", f.next)
	booking.CreatedAt = time.Now()
	copied := *booking
	f.bookings[booking.ID] = &copied
	return nil
}

func (f *fakeBookingStore) GetByID(_ context.Context, id string) (*models.Booking, error) {
	b, ok := f.bookings[id]
	if !ok {
		return nil, nil
	}
	copied := *b
	return &copied, nil
}

func (f *fakeBookingStore) GetByUserID(_ context.Context, userID string) ([]models.Booking, error) {
	var result []models.Booking
	for _, b := range f.bookings {
		if b.UserID == userID {
			result = append(result, *b)
		}
	}
	return result, nil
}

func (f *fakeBookingStore) MarkPaid(_ context.Context, id, sessionID, transactionID string) (bool, error) {
	b, ok := f.bookings[id]
	if !ok || b.PaymentStatus == models.PaymentStatusPaid {
		return false, nil
	}
	b.PaymentStatus = models.PaymentStatusPaid
	b.Status = models.BookingStatusConfirmed
	b.SessionID = &sessionID
	b.TransactionID = &transactionID
	return true, nil
}

func (f *fakeBookingStore) Cancel(_ context.Context, id string) (bool, error) {
	b, ok := f.bookings[id]
	if !ok || b.Status == models.BookingStatusCancelled {
		return false, nil
	}
	b.Status = models.BookingStatusCancelled
	return true, nil
}

type fakeServiceStore struct {
	services map[string]*models.Service
}

func (f *fakeServiceStore) Create(_ context.Context, svc *models.Service) error {
	f.services[svc.ID] = svc
	return nil
}

func (f *fakeServiceStore) GetByID(_ context.Context, id string) (*models.Service, error) {
	return f.services[id], nil
}

func (f *fakeServiceStore) List(_ context.Context, _ string, _, _ int) ([]models.Service, error) {
	return nil, errors.New("not implemented")
}

type fakeUserStore struct {
	users map[string]*models.User
}

func (f *fakeUserStore) GetByEmail(_ context.Context, email string) (*models.User, error) {
	return f.users[email], nil
}

func (f *fakeUserStore) UpsertByEmail(_ context.Context, email, name string) (*models.User, error) {
	if u, ok := f.users[email]; ok {
		return u, nil
	}
	u := &models.User{ID: "user-" + email, Name: name, Email: email, Role: models.RoleUser}
	f.users[email] = u
	return u, nil
}

func (f *fakeUserStore) UpdateRole(_ context.Context, email, role string) (bool, error) {
	u, ok := f.users[email]
	if !ok {
		return false, nil
	}
	u.Role = role
	return true, nil
}

// fakeCheckout simulates the hosted processor: sessions are created unpaid
// and flipped to paid out-of-band, like a user completing the payment page.
type fakeCheckout struct {
	sessions map[string]*external.CheckoutSession
	next     int
}

func (f *fakeCheckout) CreateSession(_ context.Context, req *external.CreateSessionRequest) (*external.CheckoutSession, error) {
	f.next++
	id := fmt.Sprintf("sess_%d", f.next)
	session := &external.CheckoutSession{
		ID:            id,
		URL:           "https://pay.example.com/c/" + id,
		PaymentStatus: "unpaid",
		AmountTotal:   req.LineItems[0].UnitAmount,
		Metadata:      req.Metadata,
	}
	f.sessions[id] = session
	return session, nil
}

func (f *fakeCheckout) GetSession(_ context.Context, sessionID string) (*external.CheckoutSession, error) {
	s, ok := f.sessions[sessionID]
	if !ok {
		return nil, fmt.Errorf("session %s: %w", sessionID, apperrors.ErrNotFound)
	}
	return s, nil
}

func (f *fakeCheckout) completePayment(sessionID string) {
	s := f.sessions[sessionID]
	s.PaymentStatus = "paid"
	s.PaymentIntent = "pi_" + sessionID
}

type nopPublisher struct{}

func (nopPublisher) Publish(string, interface{}) error { return nil }

func TestBookingLifecycle_EndToEnd(t *testing.T) {
	ctx := context.Background()

	serviceStore := &fakeServiceStore{services: map[string]*models.Service{
		"svc1": {ID: "svc1", Title: "Baby Sitting", PricePerHour: 20, Category: "Baby Care"},
	}}
	bookingStore := newFakeBookingStore()
	userStore := &fakeUserStore{users: map[string]*models.User{}}
	checkout := &fakeCheckout{sessions: map[string]*external.CheckoutSession{}}

	svc := service.NewBookingService(bookingStore, serviceStore, userStore, checkout, nopPublisher{}, "http://localhost:3000")

	// Create: expect derived cost and pending statuses
	booking, err := svc.Create(ctx, "alice@example.com", "Alice", &models.CreateBookingRequest{
		ServiceID:     "svc1",
		StartTime:     time.Date(2026, 9, 1, 9, 0, 0, 0, time.UTC),
		DurationHours: 3,
		Location:      models.Location{Address: "12 Lake Road"},
	})
	assert.NoError(t, err)
	assert.Equal(t, 60.0, booking.TotalCost)
	assert.Equal(t, models.BookingStatusPending, booking.Status)
	assert.Equal(t, models.PaymentStatusPending, booking.PaymentStatus)

	// Initiate checkout: session must carry the booking id in metadata
	url, err := svc.InitiateCheckout(ctx, booking.ID)
	assert.NoError(t, err)
	assert.Contains(t, url, "https://pay.example.com/c/sess_1")
	session, _ := checkout.GetSession(ctx, "sess_1")
	assert.Equal(t, booking.ID, session.Metadata["bookingId"])
	assert.Equal(t, int64(6000), session.AmountTotal)

	// Reconciling before payment completes must not touch the booking
	_, err = svc.VerifyPayment(ctx, "sess_1")
	assert.ErrorIs(t, err, apperrors.ErrPaymentNotCompleted)
	stored, _ := bookingStore.GetByID(ctx, booking.ID)
	assert.Equal(t, models.BookingStatusPending, stored.Status)

	// User pays; reconcile confirms the booking
	checkout.completePayment("sess_1")
	resp, err := svc.VerifyPayment(ctx, "sess_1")
	assert.NoError(t, err)
	assert.True(t, resp.Success)

	stored, _ = bookingStore.GetByID(ctx, booking.ID)
	assert.Equal(t, models.BookingStatusConfirmed, stored.Status)
	assert.Equal(t, models.PaymentStatusPaid, stored.PaymentStatus)
	if assert.NotNil(t, stored.TransactionID) {
		assert.NotEmpty(t, *stored.TransactionID)
	}

	// Reconciling again is a no-op with the same outcome
	resp, err = svc.VerifyPayment(ctx, "sess_1")
	assert.NoError(t, err)
	assert.True(t, resp.Success)
	again, _ := bookingStore.GetByID(ctx, booking.ID)
	assert.Equal(t, stored, again)
}

func TestInitiateCheckout_NonexistentBookingCreatesNoSession(t *testing.T) {
	ctx := context.Background()

	serviceStore := &fakeServiceStore{services: map[string]*models.Service{}}
	bookingStore := newFakeBookingStore()
	userStore := &fakeUserStore{users: map[string]*models.User{}}
	checkout := &fakeCheckout{sessions: map[string]*external.CheckoutSession{}}

	svc := service.NewBookingService(bookingStore, serviceStore, userStore, checkout, nopPublisher{}, "http://localhost:3000")

	_, err := svc.InitiateCheckout(ctx, "does-not-exist")

	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	assert.Empty(t, checkout.sessions)
}
