package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"driveshare-backend/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type agreementFixture struct {
	svc           *agreementService
	agreementRepo *MockAgreementRepo
	bookingRepo   *MockBookingRepo
	vehicleRepo   *MockVehicleRepo
	userRepo      *MockUserRepo
	noteRepo      *MockNotificationRepo
	emailSvc      *MockEmailService
}

func newAgreementFixture(now string) *agreementFixture {
	f := &agreementFixture{
		agreementRepo: new(MockAgreementRepo),
		bookingRepo:   new(MockBookingRepo),
		vehicleRepo:   new(MockVehicleRepo),
		userRepo:      new(MockUserRepo),
		noteRepo:      new(MockNotificationRepo),
		emailSvc:      new(MockEmailService),
	}
	f.svc = NewAgreementService(f.agreementRepo, f.bookingRepo, f.vehicleRepo, f.userRepo, f.noteRepo, f.emailSvc).(*agreementService)
	f.svc.now = fixedNow(now)
	return f
}

var (
	agRenterID  = int64(1)
	agOwnerID   = int64(2)
	agVehicleID = int64(7)
	agBookingID = int64(40)
)

func confirmedBooking() *domain.Booking {
	return &domain.Booking{
		ID:                   agBookingID,
		VehicleID:            agVehicleID,
		RenterID:             agRenterID,
		OwnerID:              agOwnerID,
		StartDate:            day("2025-04-01"),
		EndDate:              day("2025-04-03"),
		DailyRateCents:       2500,
		TotalDays:            2,
		SubtotalCents:        5000,
		ServiceFeeCents:      500,
		SecurityDepositCents: 5000,
		TotalCents:           10500,
		Status:               domain.BookingStatusConfirmed,
	}
}

func agreementVehicle() *domain.Vehicle {
	return &domain.Vehicle{
		ID:           agVehicleID,
		OwnerID:      agOwnerID,
		Make:         "Toyota",
		Model:        "Corolla",
		Year:         2022,
		LicensePlate: "ABC-123",
	}
}

func TestAgreementService_GetOrCreate(t *testing.T) {
	ctx := context.Background()

	t.Run("CreatesOnFirstView", func(t *testing.T) {
		f := newAgreementFixture("2025-03-20")
		f.bookingRepo.On("GetByID", ctx, agBookingID).Return(confirmedBooking(), nil)
		f.agreementRepo.On("GetByBookingID", ctx, agBookingID).Return(nil, domain.ErrNotFound)
		f.vehicleRepo.On("GetByID", ctx, agVehicleID).Return(agreementVehicle(), nil)
		f.agreementRepo.On("Create", ctx, mock.AnythingOfType("*domain.Agreement")).Return(nil)

		agreement, err := f.svc.GetOrCreate(ctx, domain.Actor{UserID: agRenterID}, agBookingID)
		require.NoError(t, err)

		assert.Equal(t, domain.AgreementStatusPendingSignatures, agreement.Status)
		assert.NotEmpty(t, agreement.Reference)
		assert.Equal(t, "Toyota", agreement.VehicleMake)
		assert.Equal(t, "ABC-123", agreement.LicensePlate)
		assert.False(t, agreement.OwnerSigned)
		assert.False(t, agreement.RenterSigned)

		// Terms are rendered from the booking's frozen amounts.
		assert.Contains(t, agreement.Terms, "2022 Toyota Corolla")
		assert.Contains(t, agreement.Terms, "2025-04-01 to 2025-04-03")
		assert.Contains(t, agreement.Terms, "Daily rate:       25.00")
		assert.Contains(t, agreement.Terms, "Service fee:      5.00")
		assert.Contains(t, agreement.Terms, "Total due:        105.00")
	})

	t.Run("ReturnsExistingVerbatim", func(t *testing.T) {
		f := newAgreementFixture("2025-03-20")
		existing := &domain.Agreement{ID: 9, BookingID: agBookingID, Terms: "original terms", Status: domain.AgreementStatusPendingSignatures}
		f.bookingRepo.On("GetByID", ctx, agBookingID).Return(confirmedBooking(), nil)
		f.agreementRepo.On("GetByBookingID", ctx, agBookingID).Return(existing, nil)

		agreement, err := f.svc.GetOrCreate(ctx, domain.Actor{UserID: agOwnerID}, agBookingID)
		require.NoError(t, err)
		assert.Equal(t, existing, agreement)
		f.agreementRepo.AssertNotCalled(t, "Create")
	})

	t.Run("RequiresConfirmedBooking", func(t *testing.T) {
		f := newAgreementFixture("2025-03-20")
		pending := confirmedBooking()
		pending.Status = domain.BookingStatusPending
		f.bookingRepo.On("GetByID", ctx, agBookingID).Return(pending, nil)
		f.agreementRepo.On("GetByBookingID", ctx, agBookingID).Return(nil, domain.ErrNotFound)

		_, err := f.svc.GetOrCreate(ctx, domain.Actor{UserID: agRenterID}, agBookingID)
		var perr *domain.PreconditionError
		require.ErrorAs(t, err, &perr)
		assert.Equal(t, domain.PreconditionBookingNotConfirmed, perr.Code)
	})

	t.Run("NonPartyRejected", func(t *testing.T) {
		f := newAgreementFixture("2025-03-20")
		f.bookingRepo.On("GetByID", ctx, agBookingID).Return(confirmedBooking(), nil)

		_, err := f.svc.GetOrCreate(ctx, domain.Actor{UserID: 99}, agBookingID)
		var aerr *domain.AuthorizationError
		require.ErrorAs(t, err, &aerr)
	})

	t.Run("CreateRaceTakesWinnerRow", func(t *testing.T) {
		f := newAgreementFixture("2025-03-20")
		winner := &domain.Agreement{ID: 9, BookingID: agBookingID}
		f.bookingRepo.On("GetByID", ctx, agBookingID).Return(confirmedBooking(), nil)
		f.agreementRepo.On("GetByBookingID", ctx, agBookingID).Return(nil, domain.ErrNotFound).Once()
		f.vehicleRepo.On("GetByID", ctx, agVehicleID).Return(agreementVehicle(), nil)
		f.agreementRepo.On("Create", ctx, mock.AnythingOfType("*domain.Agreement")).Return(errors.New("duplicate key"))
		f.agreementRepo.On("GetByBookingID", ctx, agBookingID).Return(winner, nil).Once()

		agreement, err := f.svc.GetOrCreate(ctx, domain.Actor{UserID: agRenterID}, agBookingID)
		require.NoError(t, err)
		assert.Equal(t, winner, agreement)
	})
}

func TestAgreementService_Sign(t *testing.T) {
	ctx := context.Background()
	agreementID := int64(9)
	signedAt := day("2025-03-20")

	pendingAgreement := func() *domain.Agreement {
		return &domain.Agreement{ID: agreementID, BookingID: agBookingID, Status: domain.AgreementStatusPendingSignatures}
	}

	t.Run("FirstSignatureLeavesBookingConfirmed", func(t *testing.T) {
		f := newAgreementFixture("2025-03-20")
		f.agreementRepo.On("GetByID", ctx, agreementID).Return(pendingAgreement(), nil).Once()
		f.bookingRepo.On("GetByID", ctx, agBookingID).Return(confirmedBooking(), nil)
		f.agreementRepo.On("Sign", ctx, agreementID, domain.RoleRenter, signedAt).Return(true, nil)
		afterSign := pendingAgreement()
		afterSign.RenterSigned = true
		at := signedAt
		afterSign.RenterSignedAt = &at
		f.agreementRepo.On("GetByID", ctx, agreementID).Return(afterSign, nil).Once()

		agreement, err := f.svc.Sign(ctx, domain.Actor{UserID: agRenterID}, agreementID)
		require.NoError(t, err)

		assert.Equal(t, domain.AgreementStatusPendingSignatures, agreement.Status)
		assert.True(t, agreement.RenterSigned)
		assert.False(t, agreement.OwnerSigned)
		f.agreementRepo.AssertNotCalled(t, "SetStatus")
		f.bookingRepo.AssertNotCalled(t, "UpdateStatusIf")
	})

	t.Run("SecondSignatureActivates", func(t *testing.T) {
		f := newAgreementFixture("2025-03-20")
		renterSigned := pendingAgreement()
		renterSigned.RenterSigned = true
		f.agreementRepo.On("GetByID", ctx, agreementID).Return(renterSigned, nil).Once()
		f.bookingRepo.On("GetByID", ctx, agBookingID).Return(confirmedBooking(), nil)
		f.agreementRepo.On("Sign", ctx, agreementID, domain.RoleOwner, signedAt).Return(true, nil)

		bothSigned := pendingAgreement()
		bothSigned.RenterSigned = true
		bothSigned.OwnerSigned = true
		f.agreementRepo.On("GetByID", ctx, agreementID).Return(bothSigned, nil).Once()
		f.agreementRepo.On("SetStatus", ctx, agreementID, domain.AgreementStatusActive).Return(nil)
		f.bookingRepo.On("UpdateStatusIf", ctx, agBookingID, domain.BookingStatusConfirmed, domain.BookingStatusActive).Return(true, nil)

		f.vehicleRepo.On("GetByID", ctx, agVehicleID).Return(agreementVehicle(), nil)
		f.noteRepo.On("Create", ctx, mock.AnythingOfType("*domain.Notification")).Return(nil)
		f.userRepo.On("GetByID", ctx, agOwnerID).Return(&domain.User{ID: agOwnerID, Email: "owner@test.com"}, nil)
		f.userRepo.On("GetByID", ctx, agRenterID).Return(&domain.User{ID: agRenterID, Email: "renter@test.com"}, nil)
		f.emailSvc.On("SendAgreementActivated", ctx, "owner@test.com", "2022 Toyota Corolla").Return(nil)
		f.emailSvc.On("SendAgreementActivated", ctx, "renter@test.com", "2022 Toyota Corolla").Return(nil)

		agreement, err := f.svc.Sign(ctx, domain.Actor{UserID: agOwnerID}, agreementID)
		require.NoError(t, err)

		assert.Equal(t, domain.AgreementStatusActive, agreement.Status)
		// Both parties are told.
		f.noteRepo.AssertNumberOfCalls(t, "Create", 2)
	})

	t.Run("ResignIsIdempotent", func(t *testing.T) {
		f := newAgreementFixture("2025-03-20")
		renterSigned := pendingAgreement()
		renterSigned.RenterSigned = true
		at := time.Date(2025, 3, 18, 14, 0, 0, 0, time.UTC)
		renterSigned.RenterSignedAt = &at
		f.agreementRepo.On("GetByID", ctx, agreementID).Return(renterSigned, nil)
		f.bookingRepo.On("GetByID", ctx, agBookingID).Return(confirmedBooking(), nil)

		agreement, err := f.svc.Sign(ctx, domain.Actor{UserID: agRenterID}, agreementID)
		require.NoError(t, err)
		assert.Equal(t, at, *agreement.RenterSignedAt) // original timestamp survives
		f.agreementRepo.AssertNotCalled(t, "Sign")
	})

	t.Run("AdminCannotSign", func(t *testing.T) {
		f := newAgreementFixture("2025-03-20")
		f.agreementRepo.On("GetByID", ctx, agreementID).Return(pendingAgreement(), nil)
		f.bookingRepo.On("GetByID", ctx, agBookingID).Return(confirmedBooking(), nil)

		_, err := f.svc.Sign(ctx, domain.Actor{UserID: 99, Admin: true}, agreementID)
		var aerr *domain.AuthorizationError
		require.ErrorAs(t, err, &aerr)
	})

	t.Run("NonPartyCannotSign", func(t *testing.T) {
		f := newAgreementFixture("2025-03-20")
		f.agreementRepo.On("GetByID", ctx, agreementID).Return(pendingAgreement(), nil)
		f.bookingRepo.On("GetByID", ctx, agBookingID).Return(confirmedBooking(), nil)

		_, err := f.svc.Sign(ctx, domain.Actor{UserID: 99}, agreementID)
		var aerr *domain.AuthorizationError
		require.ErrorAs(t, err, &aerr)
	})
}

func TestBuildTerms_Deterministic(t *testing.T) {
	booking := confirmedBooking()
	vehicle := agreementVehicle()
	assert.Equal(t, buildTerms(booking, vehicle), buildTerms(booking, vehicle))
}
