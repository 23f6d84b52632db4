package repository

import (
	"context"
	"time"

	"driveshare-backend/internal/domain"
)

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	Update(ctx context.Context, user *domain.User) error
	SetVerified(ctx context.Context, id int64, verified bool) error
}

type VehicleRepository interface {
	Create(ctx context.Context, vehicle *domain.Vehicle) error
	GetByID(ctx context.Context, id int64) (*domain.Vehicle, error)
	Update(ctx context.Context, vehicle *domain.Vehicle) error
	UpdateStatus(ctx context.Context, id int64, status domain.VehicleStatus) error
	ListByOwner(ctx context.Context, ownerID int64, page, pageSize int32) ([]domain.Vehicle, int32, error)
	ListApproved(ctx context.Context, page, pageSize int32) ([]domain.Vehicle, int32, error)
}

type AvailabilityRepository interface {
	// Upsert is keyed by (vehicle_id, date); re-adding an existing mark must
	// not fail so concurrent owner sessions stay idempotent.
	Upsert(ctx context.Context, mark *domain.UnavailabilityMark) error
	Delete(ctx context.Context, vehicleID int64, date time.Time) error
	Get(ctx context.Context, vehicleID int64, date time.Time) (*domain.UnavailabilityMark, error)
	ListInWindow(ctx context.Context, vehicleID int64, from, to time.Time) ([]domain.UnavailabilityMark, error)
}

type BookingRepository interface {
	// Create re-checks marks and live bookings inside the same serializable
	// transaction as the insert and returns a *domain.DateConflictError on
	// collision.
	Create(ctx context.Context, booking *domain.Booking) error
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	// UpdateStatusIf flips the status only when the row still holds from,
	// reporting whether the update took effect.
	UpdateStatusIf(ctx context.Context, id int64, from, to domain.BookingStatus) (bool, error)
	ListLiveInWindow(ctx context.Context, vehicleID int64, from, to time.Time) ([]domain.Booking, error)
	ListByRenter(ctx context.Context, renterID int64, status string, page, pageSize int32) ([]domain.Booking, int32, error)
	ListByOwner(ctx context.Context, ownerID int64, status string, page, pageSize int32) ([]domain.Booking, int32, error)
	ListPendingOlderThan(ctx context.Context, cutoff time.Time) ([]domain.Booking, error)
	ListActiveEndedBefore(ctx context.Context, day time.Time) ([]domain.Booking, error)
}

type AgreementRepository interface {
	Create(ctx context.Context, agreement *domain.Agreement) error
	GetByID(ctx context.Context, id int64) (*domain.Agreement, error)
	GetByBookingID(ctx context.Context, bookingID int64) (*domain.Agreement, error)
	// Sign sets the role's signature flag and timestamp if not already set,
	// reporting whether the row changed.
	Sign(ctx context.Context, id int64, role domain.Role, at time.Time) (bool, error)
	SetStatus(ctx context.Context, id int64, status domain.AgreementStatus) error
}

type NotificationRepository interface {
	Create(ctx context.Context, note *domain.Notification) error
	List(ctx context.Context, userID int64, limit, offset int32) ([]domain.Notification, int32, error)
	MarkAsRead(ctx context.Context, id, userID int64) error
}
