package service

import (
	"context"
	"time"

	"driveshare-backend/internal/domain"

	"github.com/stretchr/testify/mock"
)

// MockUserRepo
type MockUserRepo struct {
	mock.Mock
}

func (m *MockUserRepo) Create(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}
func (m *MockUserRepo) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserRepo) Update(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}
func (m *MockUserRepo) SetVerified(ctx context.Context, id int64, verified bool) error {
	args := m.Called(ctx, id, verified)
	return args.Error(0)
}

// MockVehicleRepo
type MockVehicleRepo struct {
	mock.Mock
}

func (m *MockVehicleRepo) Create(ctx context.Context, vehicle *domain.Vehicle) error {
	args := m.Called(ctx, vehicle)
	return args.Error(0)
}
func (m *MockVehicleRepo) GetByID(ctx context.Context, id int64) (*domain.Vehicle, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Vehicle), args.Error(1)
}
func (m *MockVehicleRepo) Update(ctx context.Context, vehicle *domain.Vehicle) error {
	args := m.Called(ctx, vehicle)
	return args.Error(0)
}
func (m *MockVehicleRepo) UpdateStatus(ctx context.Context, id int64, status domain.VehicleStatus) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}
func (m *MockVehicleRepo) ListByOwner(ctx context.Context, ownerID int64, page, pageSize int32) ([]domain.Vehicle, int32, error) {
	args := m.Called(ctx, ownerID, page, pageSize)
	return args.Get(0).([]domain.Vehicle), args.Get(1).(int32), args.Error(2)
}
func (m *MockVehicleRepo) ListApproved(ctx context.Context, page, pageSize int32) ([]domain.Vehicle, int32, error) {
	args := m.Called(ctx, page, pageSize)
	return args.Get(0).([]domain.Vehicle), args.Get(1).(int32), args.Error(2)
}

// MockAvailabilityRepo
type MockAvailabilityRepo struct {
	mock.Mock
}

func (m *MockAvailabilityRepo) Upsert(ctx context.Context, mark *domain.UnavailabilityMark) error {
	args := m.Called(ctx, mark)
	return args.Error(0)
}
func (m *MockAvailabilityRepo) Delete(ctx context.Context, vehicleID int64, date time.Time) error {
	args := m.Called(ctx, vehicleID, date)
	return args.Error(0)
}
func (m *MockAvailabilityRepo) Get(ctx context.Context, vehicleID int64, date time.Time) (*domain.UnavailabilityMark, error) {
	args := m.Called(ctx, vehicleID, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.UnavailabilityMark), args.Error(1)
}
func (m *MockAvailabilityRepo) ListInWindow(ctx context.Context, vehicleID int64, from, to time.Time) ([]domain.UnavailabilityMark, error) {
	args := m.Called(ctx, vehicleID, from, to)
	return args.Get(0).([]domain.UnavailabilityMark), args.Error(1)
}

// MockBookingRepo
type MockBookingRepo struct {
	mock.Mock
}

func (m *MockBookingRepo) Create(ctx context.Context, booking *domain.Booking) error {
	args := m.Called(ctx, booking)
	return args.Error(0)
}
func (m *MockBookingRepo) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}
func (m *MockBookingRepo) UpdateStatusIf(ctx context.Context, id int64, from, to domain.BookingStatus) (bool, error) {
	args := m.Called(ctx, id, from, to)
	return args.Bool(0), args.Error(1)
}
func (m *MockBookingRepo) ListLiveInWindow(ctx context.Context, vehicleID int64, from, to time.Time) ([]domain.Booking, error) {
	args := m.Called(ctx, vehicleID, from, to)
	return args.Get(0).([]domain.Booking), args.Error(1)
}
func (m *MockBookingRepo) ListByRenter(ctx context.Context, renterID int64, status string, page, pageSize int32) ([]domain.Booking, int32, error) {
	args := m.Called(ctx, renterID, status, page, pageSize)
	return args.Get(0).([]domain.Booking), args.Get(1).(int32), args.Error(2)
}
func (m *MockBookingRepo) ListByOwner(ctx context.Context, ownerID int64, status string, page, pageSize int32) ([]domain.Booking, int32, error) {
	args := m.Called(ctx, ownerID, status, page, pageSize)
	return args.Get(0).([]domain.Booking), args.Get(1).(int32), args.Error(2)
}
func (m *MockBookingRepo) ListPendingOlderThan(ctx context.Context, cutoff time.Time) ([]domain.Booking, error) {
	args := m.Called(ctx, cutoff)
	return args.Get(0).([]domain.Booking), args.Error(1)
}
func (m *MockBookingRepo) ListActiveEndedBefore(ctx context.Context, day time.Time) ([]domain.Booking, error) {
	args := m.Called(ctx, day)
	return args.Get(0).([]domain.Booking), args.Error(1)
}

// MockAgreementRepo
type MockAgreementRepo struct {
	mock.Mock
}

func (m *MockAgreementRepo) Create(ctx context.Context, agreement *domain.Agreement) error {
	args := m.Called(ctx, agreement)
	return args.Error(0)
}
func (m *MockAgreementRepo) GetByID(ctx context.Context, id int64) (*domain.Agreement, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Agreement), args.Error(1)
}
func (m *MockAgreementRepo) GetByBookingID(ctx context.Context, bookingID int64) (*domain.Agreement, error) {
	args := m.Called(ctx, bookingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Agreement), args.Error(1)
}
func (m *MockAgreementRepo) Sign(ctx context.Context, id int64, role domain.Role, at time.Time) (bool, error) {
	args := m.Called(ctx, id, role, at)
	return args.Bool(0), args.Error(1)
}
func (m *MockAgreementRepo) SetStatus(ctx context.Context, id int64, status domain.AgreementStatus) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

// MockNotificationRepo
type MockNotificationRepo struct {
	mock.Mock
}

func (m *MockNotificationRepo) Create(ctx context.Context, note *domain.Notification) error {
	args := m.Called(ctx, note)
	return args.Error(0)
}
func (m *MockNotificationRepo) List(ctx context.Context, userID int64, limit, offset int32) ([]domain.Notification, int32, error) {
	args := m.Called(ctx, userID, limit, offset)
	return args.Get(0).([]domain.Notification), args.Get(1).(int32), args.Error(2)
}
func (m *MockNotificationRepo) MarkAsRead(ctx context.Context, id, userID int64) error {
	args := m.Called(ctx, id, userID)
	return args.Error(0)
}

// MockEmailService
type MockEmailService struct {
	mock.Mock
}

func (m *MockEmailService) SendBookingRequested(ctx context.Context, ownerEmail, renterName, vehicleName, start, end string) error {
	args := m.Called(ctx, ownerEmail, renterName, vehicleName, start, end)
	return args.Error(0)
}
func (m *MockEmailService) SendBookingConfirmed(ctx context.Context, renterEmail, vehicleName, ownerName string) error {
	args := m.Called(ctx, renterEmail, vehicleName, ownerName)
	return args.Error(0)
}
func (m *MockEmailService) SendBookingCancelled(ctx context.Context, email, vehicleName, byName string) error {
	args := m.Called(ctx, email, vehicleName, byName)
	return args.Error(0)
}
func (m *MockEmailService) SendBookingCompleted(ctx context.Context, email, vehicleName string) error {
	args := m.Called(ctx, email, vehicleName)
	return args.Error(0)
}
func (m *MockEmailService) SendBookingExpired(ctx context.Context, renterEmail, vehicleName string) error {
	args := m.Called(ctx, renterEmail, vehicleName)
	return args.Error(0)
}
func (m *MockEmailService) SendAgreementActivated(ctx context.Context, email, vehicleName string) error {
	args := m.Called(ctx, email, vehicleName)
	return args.Error(0)
}
func (m *MockEmailService) SendReturnReminder(ctx context.Context, ownerEmail, vehicleName, endDate string) error {
	args := m.Called(ctx, ownerEmail, vehicleName, endDate)
	return args.Error(0)
}
