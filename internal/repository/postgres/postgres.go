package postgres

import (
	"database/sql"

	"driveshare-backend/internal/repository"

	_ "github.com/lib/pq"
)

type Store struct {
	db *sql.DB
	repository.UserRepository
	repository.VehicleRepository
	repository.AvailabilityRepository
	repository.BookingRepository
	repository.AgreementRepository
	repository.NotificationRepository
}

func NewStore(db *sql.DB) *Store {
	return &Store{
		db:                     db,
		UserRepository:         NewUserRepository(db),
		VehicleRepository:      NewVehicleRepository(db),
		AvailabilityRepository: NewAvailabilityRepository(db),
		BookingRepository:      NewBookingRepository(db),
		AgreementRepository:    NewAgreementRepository(db),
		NotificationRepository: NewNotificationRepository(db),
	}
}
