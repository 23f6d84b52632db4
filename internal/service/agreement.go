package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"driveshare-backend/internal/domain"
	"driveshare-backend/internal/logger"
	"driveshare-backend/internal/repository"

	"github.com/google/uuid"
)

type agreementService struct {
	agreementRepo repository.AgreementRepository
	bookingRepo   repository.BookingRepository
	vehicleRepo   repository.VehicleRepository
	userRepo      repository.UserRepository
	noteRepo      repository.NotificationRepository
	emailSvc      EmailService
	now           func() time.Time
}

func NewAgreementService(
	agreementRepo repository.AgreementRepository,
	bookingRepo repository.BookingRepository,
	vehicleRepo repository.VehicleRepository,
	userRepo repository.UserRepository,
	noteRepo repository.NotificationRepository,
	emailSvc EmailService,
) AgreementService {
	return &agreementService{
		agreementRepo: agreementRepo,
		bookingRepo:   bookingRepo,
		vehicleRepo:   vehicleRepo,
		userRepo:      userRepo,
		noteRepo:      noteRepo,
		emailSvc:      emailSvc,
		now:           time.Now,
	}
}

// GetOrCreate materializes the agreement on first view of a confirmed
// booking. Terms are generated once from the booking's frozen fields and
// stored verbatim; they never change afterwards, whatever happens to the
// listing.
func (s *agreementService) GetOrCreate(ctx context.Context, actor domain.Actor, bookingID int64) (*domain.Agreement, error) {
	booking, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if _, party := booking.RoleOf(actor); !party {
		return nil, &domain.AuthorizationError{Reason: "not a party to this booking"}
	}

	agreement, err := s.agreementRepo.GetByBookingID(ctx, bookingID)
	if err == nil {
		return agreement, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}

	if booking.Status != domain.BookingStatusConfirmed {
		return nil, &domain.PreconditionError{Code: domain.PreconditionBookingNotConfirmed, Reason: "agreement is available once the booking is confirmed"}
	}

	vehicle, err := s.vehicleRepo.GetByID(ctx, booking.VehicleID)
	if err != nil {
		return nil, err
	}

	agreement = &domain.Agreement{
		BookingID:    bookingID,
		Reference:    uuid.New().String(),
		VehicleMake:  vehicle.Make,
		VehicleModel: vehicle.Model,
		VehicleYear:  vehicle.Year,
		LicensePlate: vehicle.LicensePlate,
		Terms:        buildTerms(booking, vehicle),
		Status:       domain.AgreementStatusPendingSignatures,
	}
	if err := s.agreementRepo.Create(ctx, agreement); err != nil {
		// Two parties opening the view at once race on the booking_id
		// unique constraint; the loser takes the winner's row.
		if existing, getErr := s.agreementRepo.GetByBookingID(ctx, bookingID); getErr == nil {
			return existing, nil
		}
		return nil, err
	}
	return agreement, nil
}

// Sign records the caller's signature. Re-signing an already-signed side is
// a success no-op. When the second signature lands the agreement goes
// ACTIVE and the booking moves CONFIRMED -> ACTIVE; no other path enters
// ACTIVE.
func (s *agreementService) Sign(ctx context.Context, actor domain.Actor, agreementID int64) (*domain.Agreement, error) {
	agreement, err := s.agreementRepo.GetByID(ctx, agreementID)
	if err != nil {
		return nil, err
	}
	booking, err := s.bookingRepo.GetByID(ctx, agreement.BookingID)
	if err != nil {
		return nil, err
	}

	role, party := booking.RoleOf(actor)
	if !party || role == domain.RoleAdmin {
		return nil, &domain.AuthorizationError{Reason: "only the owner or renter may sign"}
	}

	if agreement.SignedBy(role) {
		return agreement, nil
	}

	if _, err := s.agreementRepo.Sign(ctx, agreementID, role, s.now()); err != nil {
		return nil, err
	}
	// Reload so the both-signed check always runs against the latest state;
	// the two signers' writes need no ordering between themselves.
	agreement, err = s.agreementRepo.GetByID(ctx, agreementID)
	if err != nil {
		return nil, err
	}

	if agreement.FullySigned() && agreement.Status == domain.AgreementStatusPendingSignatures {
		if err := s.agreementRepo.SetStatus(ctx, agreementID, domain.AgreementStatusActive); err != nil {
			return nil, err
		}
		agreement.Status = domain.AgreementStatusActive

		applied, err := s.bookingRepo.UpdateStatusIf(ctx, booking.ID, domain.BookingStatusConfirmed, domain.BookingStatusActive)
		if err != nil {
			return nil, err
		}
		if applied {
			s.notifyActivation(ctx, booking)
		}
	}
	return agreement, nil
}

func (s *agreementService) notifyActivation(ctx context.Context, booking *domain.Booking) {
	name := fmt.Sprintf("booking %d", booking.ID)
	if vehicle, err := s.vehicleRepo.GetByID(ctx, booking.VehicleID); err == nil {
		name = vehicle.DisplayName()
	}
	for _, userID := range []int64{booking.OwnerID, booking.RenterID} {
		note := &domain.Notification{
			UserID:  userID,
			Title:   "Rental agreement active",
			Message: fmt.Sprintf("Both parties signed; the rental of %s is now active", name),
			Attributes: map[string]string{
				"type":       "AGREEMENT_ACTIVATED",
				"booking_id": fmt.Sprintf("%d", booking.ID),
			},
		}
		if err := s.noteRepo.Create(ctx, note); err != nil {
			logger.Warn("activation notification failed", "user_id", userID, "error", err)
		}
		if user, err := s.userRepo.GetByID(ctx, userID); err == nil {
			if err := s.emailSvc.SendAgreementActivated(ctx, user.Email, name); err != nil {
				logger.Warn("activation email failed", "user_id", userID, "error", err)
			}
		}
	}
}

func formatCents(c int64) string {
	return fmt.Sprintf("%d.%02d", c/100, c%100)
}

// buildTerms renders the contract text deterministically from the booking's
// frozen fields, so the same booking always yields the same document.
func buildTerms(b *domain.Booking, v *domain.Vehicle) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "VEHICLE RENTAL AGREEMENT\n\n")
	fmt.Fprintf(&sb, "Vehicle: %s (plate %s)\n", v.DisplayName(), v.LicensePlate)
	fmt.Fprintf(&sb, "Rental period: %s to %s (%d day(s), both dates inclusive)\n\n",
		b.StartDate.Format(domain.DayFormat), b.EndDate.Format(domain.DayFormat), b.TotalDays)
	fmt.Fprintf(&sb, "Daily rate:       %s\n", formatCents(b.DailyRateCents))
	fmt.Fprintf(&sb, "Subtotal:         %s\n", formatCents(b.SubtotalCents))
	fmt.Fprintf(&sb, "Service fee:      %s\n", formatCents(b.ServiceFeeCents))
	fmt.Fprintf(&sb, "Security deposit: %s (refundable)\n", formatCents(b.SecurityDepositCents))
	fmt.Fprintf(&sb, "Total due:        %s\n\n", formatCents(b.TotalCents))
	sb.WriteString("The renter agrees to return the vehicle by the end date in the condition received. ")
	sb.WriteString("The security deposit is held against damage and late return. ")
	sb.WriteString("This agreement becomes binding once both the owner and the renter have signed.\n")
	return sb.String()
}
