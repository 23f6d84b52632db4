package service

import (
	"context"
	"fmt"
	"time"

	"driveshare-backend/internal/domain"
	"driveshare-backend/internal/logger"
	"driveshare-backend/internal/repository"
	"driveshare-backend/internal/utils"
)

type bookingService struct {
	bookingRepo repository.BookingRepository
	vehicleRepo repository.VehicleRepository
	availRepo   repository.AvailabilityRepository
	userRepo    repository.UserRepository
	noteRepo    repository.NotificationRepository
	emailSvc    EmailService
	feePercent  int64
	now         func() time.Time
}

func NewBookingService(
	bookingRepo repository.BookingRepository,
	vehicleRepo repository.VehicleRepository,
	availRepo repository.AvailabilityRepository,
	userRepo repository.UserRepository,
	noteRepo repository.NotificationRepository,
	emailSvc EmailService,
	feePercent int64,
) BookingService {
	return &bookingService{
		bookingRepo: bookingRepo,
		vehicleRepo: vehicleRepo,
		availRepo:   availRepo,
		userRepo:    userRepo,
		noteRepo:    noteRepo,
		emailSvc:    emailSvc,
		feePercent:  feePercent,
		now:         time.Now,
	}
}

func (s *bookingService) RequestBooking(ctx context.Context, renterID, vehicleID int64, start, end time.Time) (*domain.Booking, error) {
	renter, err := s.userRepo.GetByID(ctx, renterID)
	if err != nil {
		return nil, err
	}
	if !renter.Verified {
		return nil, &domain.PreconditionError{Code: domain.PreconditionVerificationRequired, Reason: "account must be verified before booking"}
	}

	vehicle, err := s.vehicleRepo.GetByID(ctx, vehicleID)
	if err != nil {
		return nil, err
	}
	if vehicle.OwnerID == renterID {
		return nil, &domain.PreconditionError{Code: domain.PreconditionSelfBooking, Reason: "owners cannot book their own vehicle"}
	}

	start, end = utils.Day(start), utils.Day(end)
	today := utils.Day(s.now())
	if end.Before(start) {
		return nil, &domain.ValidationError{Field: "end_date", Reason: "end date must not be before start date"}
	}
	if start.Before(today) {
		return nil, &domain.ValidationError{Field: "start_date", Reason: "start date must be today or later"}
	}
	if !vehicle.Rentable() {
		return nil, &domain.PreconditionError{Code: domain.PreconditionVehicleUnavailable, Reason: "listing is not open for bookings"}
	}

	if err := s.checkConflicts(ctx, vehicleID, start, end); err != nil {
		return nil, err
	}

	cost, err := utils.CalculateBookingCost(start, end, vehicle, s.feePercent)
	if err != nil {
		return nil, err
	}

	booking := &domain.Booking{
		VehicleID:            vehicleID,
		RenterID:             renterID,
		OwnerID:              vehicle.OwnerID,
		StartDate:            start,
		EndDate:              end,
		DailyRateCents:       vehicle.DailyRateCents,
		TotalDays:            cost.Days,
		SubtotalCents:        cost.SubtotalCents,
		ServiceFeeCents:      cost.ServiceFeeCents,
		SecurityDepositCents: cost.DepositCents,
		TotalCents:           cost.TotalCents,
		Status:               domain.BookingStatusPending,
	}

	// The repository re-checks conflicts inside the insert transaction, so
	// two renters racing for the same window cannot both land.
	if err := s.bookingRepo.Create(ctx, booking); err != nil {
		return nil, err
	}

	s.notify(ctx, vehicle.OwnerID, "New booking request",
		fmt.Sprintf("%s requested %s from %s to %s", renter.Name, vehicle.DisplayName(), start.Format(domain.DayFormat), end.Format(domain.DayFormat)),
		map[string]string{"type": "BOOKING_REQUESTED", "booking_id": fmt.Sprintf("%d", booking.ID)})
	if owner, err := s.userRepo.GetByID(ctx, vehicle.OwnerID); err == nil {
		if err := s.emailSvc.SendBookingRequested(ctx, owner.Email, renter.Name, vehicle.DisplayName(), start.Format(domain.DayFormat), end.Format(domain.DayFormat)); err != nil {
			logger.Warn("booking request email failed", "booking_id", booking.ID, "error", err)
		}
	}

	return booking, nil
}

// checkConflicts scans marks and live bookings over the requested window and
// returns a DateConflictError naming the first colliding date.
func (s *bookingService) checkConflicts(ctx context.Context, vehicleID int64, start, end time.Time) error {
	marks, err := s.availRepo.ListInWindow(ctx, vehicleID, start, end)
	if err != nil {
		return err
	}
	bookings, err := s.bookingRepo.ListLiveInWindow(ctx, vehicleID, start, end)
	if err != nil {
		return err
	}
	if len(marks) == 0 && len(bookings) == 0 {
		return nil
	}

	var first time.Time
	consider := func(d time.Time) {
		if first.IsZero() || d.Before(first) {
			first = d
		}
	}
	for _, m := range marks {
		consider(m.Date)
	}
	for _, b := range bookings {
		overlapStart := b.StartDate
		if overlapStart.Before(start) {
			overlapStart = start
		}
		consider(overlapStart)
	}
	return &domain.DateConflictError{Date: first}
}

// transitionGates maps each legal lifecycle edge to the roles allowed to
// drive it. CONFIRMED -> ACTIVE is deliberately absent: that edge fires only
// through agreement completion.
var transitionGates = map[domain.BookingStatus]map[domain.BookingStatus]map[domain.Role]bool{
	domain.BookingStatusPending: {
		domain.BookingStatusConfirmed: {domain.RoleOwner: true, domain.RoleAdmin: true},
		domain.BookingStatusCancelled: {domain.RoleOwner: true, domain.RoleAdmin: true},
	},
	domain.BookingStatusConfirmed: {
		domain.BookingStatusCancelled: {domain.RoleOwner: true, domain.RoleRenter: true, domain.RoleAdmin: true},
	},
	domain.BookingStatusActive: {
		// Completion is reported by the owner when the vehicle comes back;
		// the engine validates the edge but never originates it.
		domain.BookingStatusCompleted: {domain.RoleOwner: true, domain.RoleAdmin: true},
		domain.BookingStatusCancelled: {domain.RoleOwner: true, domain.RoleRenter: true, domain.RoleAdmin: true},
	},
}

func (s *bookingService) Transition(ctx context.Context, actor domain.Actor, bookingID int64, target domain.BookingStatus) (*domain.Booking, error) {
	booking, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	role, party := booking.RoleOf(actor)
	if !party {
		return nil, &domain.AuthorizationError{Reason: "not a party to this booking"}
	}

	// A renter has no say over a pending request; the owner accepts or
	// declines it.
	if role == domain.RoleRenter && booking.Status == domain.BookingStatusPending {
		return nil, &domain.InvalidTransitionError{From: booking.Status, To: target}
	}

	gate, ok := transitionGates[booking.Status][target]
	if !ok {
		return nil, &domain.InvalidTransitionError{From: booking.Status, To: target}
	}
	if !gate[role] {
		return nil, &domain.AuthorizationError{Reason: fmt.Sprintf("role %s may not move a booking to %s", role, target)}
	}

	applied, err := s.bookingRepo.UpdateStatusIf(ctx, bookingID, booking.Status, target)
	if err != nil {
		return nil, err
	}
	if !applied {
		// Lost a race with a concurrent transition; report against the
		// current state.
		current, err := s.bookingRepo.GetByID(ctx, bookingID)
		if err != nil {
			return nil, err
		}
		return nil, &domain.InvalidTransitionError{From: current.Status, To: target}
	}
	booking.Status = target

	s.notifyTransition(ctx, booking, role)
	return booking, nil
}

func (s *bookingService) notifyTransition(ctx context.Context, booking *domain.Booking, by domain.Role) {
	vehicle, err := s.vehicleRepo.GetByID(ctx, booking.VehicleID)
	if err != nil {
		logger.Warn("transition notification skipped", "booking_id", booking.ID, "error", err)
		return
	}
	name := vehicle.DisplayName()
	attrs := map[string]string{"booking_id": fmt.Sprintf("%d", booking.ID)}

	switch booking.Status {
	case domain.BookingStatusConfirmed:
		attrs["type"] = "BOOKING_CONFIRMED"
		s.notify(ctx, booking.RenterID, "Booking confirmed",
			fmt.Sprintf("Your booking request for %s was accepted", name), attrs)
		if renter, err := s.userRepo.GetByID(ctx, booking.RenterID); err == nil {
			if owner, err := s.userRepo.GetByID(ctx, booking.OwnerID); err == nil {
				if err := s.emailSvc.SendBookingConfirmed(ctx, renter.Email, name, owner.Name); err != nil {
					logger.Warn("confirmation email failed", "booking_id", booking.ID, "error", err)
				}
			}
		}
	case domain.BookingStatusCancelled:
		attrs["type"] = "BOOKING_CANCELLED"
		// Tell the counterparty, not the canceller.
		target := booking.RenterID
		if by == domain.RoleRenter {
			target = booking.OwnerID
		}
		s.notify(ctx, target, "Booking cancelled",
			fmt.Sprintf("The booking for %s was cancelled", name), attrs)
		if user, err := s.userRepo.GetByID(ctx, target); err == nil {
			if err := s.emailSvc.SendBookingCancelled(ctx, user.Email, name, string(by)); err != nil {
				logger.Warn("cancellation email failed", "booking_id", booking.ID, "error", err)
			}
		}
	case domain.BookingStatusCompleted:
		attrs["type"] = "BOOKING_COMPLETED"
		s.notify(ctx, booking.RenterID, "Rental completed",
			fmt.Sprintf("The rental of %s is complete", name), attrs)
		if renter, err := s.userRepo.GetByID(ctx, booking.RenterID); err == nil {
			if err := s.emailSvc.SendBookingCompleted(ctx, renter.Email, name); err != nil {
				logger.Warn("completion email failed", "booking_id", booking.ID, "error", err)
			}
		}
	}
}

func (s *bookingService) GetBooking(ctx context.Context, actor domain.Actor, bookingID int64) (*domain.Booking, error) {
	booking, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if _, party := booking.RoleOf(actor); !party {
		return nil, &domain.AuthorizationError{Reason: "not a party to this booking"}
	}
	return booking, nil
}

func (s *bookingService) ListRentals(ctx context.Context, renterID int64, status string, page, pageSize int32) ([]domain.Booking, int32, error) {
	return s.bookingRepo.ListByRenter(ctx, renterID, status, page, pageSize)
}

func (s *bookingService) ListLendings(ctx context.Context, ownerID int64, status string, page, pageSize int32) ([]domain.Booking, int32, error) {
	return s.bookingRepo.ListByOwner(ctx, ownerID, status, page, pageSize)
}

func (s *bookingService) ExpirePending(ctx context.Context, cutoff time.Time) (int, error) {
	stale, err := s.bookingRepo.ListPendingOlderThan(ctx, cutoff)
	if err != nil {
		return 0, err
	}

	expired := 0
	for i := range stale {
		b := &stale[i]
		applied, err := s.bookingRepo.UpdateStatusIf(ctx, b.ID, domain.BookingStatusPending, domain.BookingStatusCancelled)
		if err != nil {
			logger.Error("pending expiry failed", "booking_id", b.ID, "error", err)
			continue
		}
		if !applied {
			continue // owner acted between listing and update
		}
		expired++

		s.notify(ctx, b.RenterID, "Booking request expired",
			"Your booking request was cancelled because the owner did not respond in time",
			map[string]string{"type": "BOOKING_EXPIRED", "booking_id": fmt.Sprintf("%d", b.ID)})
		if renter, err := s.userRepo.GetByID(ctx, b.RenterID); err == nil {
			if vehicle, err := s.vehicleRepo.GetByID(ctx, b.VehicleID); err == nil {
				if err := s.emailSvc.SendBookingExpired(ctx, renter.Email, vehicle.DisplayName()); err != nil {
					logger.Warn("expiry email failed", "booking_id", b.ID, "error", err)
				}
			}
		}
	}
	return expired, nil
}

// notify writes a notification row; failures are logged and swallowed so a
// dead notification sink never fails the triggering operation.
func (s *bookingService) notify(ctx context.Context, userID int64, title, message string, attrs map[string]string) {
	note := &domain.Notification{UserID: userID, Title: title, Message: message, Attributes: attrs}
	if err := s.noteRepo.Create(ctx, note); err != nil {
		logger.Warn("notification write failed", "user_id", userID, "title", title, "error", err)
	}
}
