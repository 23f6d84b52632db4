package service

import (
	"context"
	"time"

	"driveshare-backend/internal/domain"
)

type AuthService interface {
	Signup(ctx context.Context, name, email, phone, password string) (*domain.User, string, error)
	Login(ctx context.Context, email, password string) (*domain.User, string, error)
}

type VehicleService interface {
	AddVehicle(ctx context.Context, vehicle *domain.Vehicle) error
	GetVehicle(ctx context.Context, id int64) (*domain.Vehicle, error)
	UpdateVehicle(ctx context.Context, ownerID int64, vehicle *domain.Vehicle) error
	SetAvailability(ctx context.Context, ownerID, vehicleID int64, available bool) error
	SetStatus(ctx context.Context, actor domain.Actor, vehicleID int64, status domain.VehicleStatus) error
	ListVehicles(ctx context.Context, page, pageSize int32) ([]domain.Vehicle, int32, error)
	ListMyVehicles(ctx context.Context, ownerID int64, page, pageSize int32) ([]domain.Vehicle, int32, error)
}

type CalendarService interface {
	// MonthCalendar derives the day-by-day availability of one vehicle for
	// the month containing firstOfMonth. A staged edit set, when supplied,
	// surfaces as pending-block/pending-unblock entries.
	MonthCalendar(ctx context.Context, vehicleID int64, firstOfMonth time.Time, staged *domain.EditState) ([]domain.DayEntry, error)
}

type AvailabilityService interface {
	// Toggle stages or un-stages a block/unblock intent for one day without
	// touching storage.
	Toggle(ctx context.Context, state *domain.EditState, day time.Time) (*domain.EditState, error)
	// Commit applies the staged set: deletes marks for staged removes,
	// upserts marks for staged adds, and reports per-date rejections.
	Commit(ctx context.Context, ownerID int64, state *domain.EditState) (*domain.CommitResult, error)
}

type BookingService interface {
	RequestBooking(ctx context.Context, renterID, vehicleID int64, start, end time.Time) (*domain.Booking, error)
	Transition(ctx context.Context, actor domain.Actor, bookingID int64, target domain.BookingStatus) (*domain.Booking, error)
	GetBooking(ctx context.Context, actor domain.Actor, bookingID int64) (*domain.Booking, error)
	ListRentals(ctx context.Context, renterID int64, status string, page, pageSize int32) ([]domain.Booking, int32, error)
	ListLendings(ctx context.Context, ownerID int64, status string, page, pageSize int32) ([]domain.Booking, int32, error)
	// ExpirePending cancels pending requests created before cutoff and
	// returns how many were expired. Driven by the cron sweep.
	ExpirePending(ctx context.Context, cutoff time.Time) (int, error)
}

type AgreementService interface {
	GetOrCreate(ctx context.Context, actor domain.Actor, bookingID int64) (*domain.Agreement, error)
	Sign(ctx context.Context, actor domain.Actor, agreementID int64) (*domain.Agreement, error)
}

type NotificationService interface {
	GetNotifications(ctx context.Context, userID int64, page, pageSize int32) ([]domain.Notification, int32, error)
	MarkAsRead(ctx context.Context, userID, notificationID int64) error
}

type EmailService interface {
	SendBookingRequested(ctx context.Context, ownerEmail, renterName, vehicleName, start, end string) error
	SendBookingConfirmed(ctx context.Context, renterEmail, vehicleName, ownerName string) error
	SendBookingCancelled(ctx context.Context, email, vehicleName, byName string) error
	SendBookingCompleted(ctx context.Context, email, vehicleName string) error
	SendBookingExpired(ctx context.Context, renterEmail, vehicleName string) error
	SendAgreementActivated(ctx context.Context, email, vehicleName string) error
	SendReturnReminder(ctx context.Context, ownerEmail, vehicleName, endDate string) error
}
