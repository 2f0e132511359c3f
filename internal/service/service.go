package service

import (
	"context"

	"carebook/internal/external"
	"carebook/internal/models"
)

// Storage and collaborator ports. The repositories and clients satisfy these
// implicitly; tests swap in mocks.

type BookingStore interface {
	Create(ctx context.Context, booking *models.Booking) error
	GetByID(ctx context.Context, id string) (*models.Booking, error)
	GetByUserID(ctx context.Context, userID string) ([]models.Booking, error)
	MarkPaid(ctx context.Context, id, sessionID, transactionID string) (bool, error)
	Cancel(ctx context.Context, id string) (bool, error)
}

type ServiceStore interface {
	Create(ctx context.Context, service *models.Service) error
	GetByID(ctx context.Context, id string) (*models.Service, error)
	List(ctx context.Context, category string, page, pageSize int) ([]models.Service, error)
}

type UserStore interface {
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	UpsertByEmail(ctx context.Context, email, name string) (*models.User, error)
	UpdateRole(ctx context.Context, email, role string) (bool, error)
}

type CheckoutProvider interface {
	CreateSession(ctx context.Context, req *external.CreateSessionRequest) (*external.CheckoutSession, error)
	GetSession(ctx context.Context, sessionID string) (*external.CheckoutSession, error)
}

type EventPublisher interface {
	Publish(subject string, data interface{}) error
}

type SearchIndex interface {
	IndexService(ctx context.Context, service *models.Service) error
	Search(ctx context.Context, query, category string, page, pageSize int) ([]models.Service, error)
}

type Services struct {
	Bookings *BookingService
	Catalog  *CatalogService
	Users    *UserService
}

func NewServices(bookingStore BookingStore, serviceStore ServiceStore, userStore UserStore,
	checkout CheckoutProvider, publisher EventPublisher, searchIndex SearchIndex, appURL string) *Services {
	return &Services{
		Bookings: NewBookingService(bookingStore, serviceStore, userStore, checkout, publisher, appURL),
		Catalog:  NewCatalogService(serviceStore, searchIndex),
		Users:    NewUserService(userStore),
	}
}
