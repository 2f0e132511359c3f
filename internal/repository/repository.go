package repository

import (
	"carebook/internal/database"
)

type Repositories struct {
	Users    *UserRepository
	Services *ServiceRepository
	Bookings *BookingRepository
}

func NewRepositories(db *database.DB) *Repositories {
	return &Repositories{
		Users:    NewUserRepository(db),
		Services: NewServiceRepository(db),
		Bookings: NewBookingRepository(db),
	}
}
