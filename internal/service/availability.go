package service

import (
	"context"
	"errors"
	"sort"
	"time"

	"driveshare-backend/internal/domain"
	"driveshare-backend/internal/logger"
	"driveshare-backend/internal/repository"
	"driveshare-backend/internal/utils"
)

type availabilityService struct {
	vehicleRepo repository.VehicleRepository
	availRepo   repository.AvailabilityRepository
	bookingRepo repository.BookingRepository
	now         func() time.Time
}

func NewAvailabilityService(vehicleRepo repository.VehicleRepository, availRepo repository.AvailabilityRepository, bookingRepo repository.BookingRepository) AvailabilityService {
	return &availabilityService{
		vehicleRepo: vehicleRepo,
		availRepo:   availRepo,
		bookingRepo: bookingRepo,
		now:         time.Now,
	}
}

// Toggle implements click-to-toggle staging: an already-staged day loses its
// intent, a committed block stages a remove, anything else stages an add.
func (s *availabilityService) Toggle(ctx context.Context, state *domain.EditState, day time.Time) (*domain.EditState, error) {
	if state == nil || state.VehicleID == 0 {
		return nil, &domain.ValidationError{Field: "edit_state", Reason: "missing vehicle id"}
	}
	if state.Intents == nil {
		state.Intents = make(map[string]domain.EditIntent)
	}

	day = utils.Day(day)
	key := day.Format(domain.DayFormat)

	if _, staged := state.Intents[key]; staged {
		delete(state.Intents, key)
		return state, nil
	}
	if !day.After(utils.Day(s.now())) {
		return nil, &domain.ValidationError{Field: "date", Reason: "past days cannot be edited"}
	}

	_, err := s.availRepo.Get(ctx, state.VehicleID, day)
	switch {
	case err == nil:
		state.Intents[key] = domain.EditRemove
	case errors.Is(err, domain.ErrNotFound):
		state.Intents[key] = domain.EditAdd
	default:
		return nil, err
	}
	return state, nil
}

func (s *availabilityService) Commit(ctx context.Context, ownerID int64, state *domain.EditState) (*domain.CommitResult, error) {
	if state == nil || len(state.Intents) == 0 {
		return &domain.CommitResult{}, nil
	}

	vehicle, err := s.vehicleRepo.GetByID(ctx, state.VehicleID)
	if err != nil {
		return nil, err
	}
	if vehicle.OwnerID != ownerID {
		return nil, &domain.AuthorizationError{Reason: "only the owner may edit availability"}
	}

	days := make([]time.Time, 0, len(state.Intents))
	for key := range state.Intents {
		d, err := utils.ParseDay(key)
		if err != nil {
			return nil, err
		}
		days = append(days, d)
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Before(days[j]) })

	// One window fetch covers every staged day; commits stay two queries
	// regardless of how many days were staged.
	bookings, err := s.bookingRepo.ListLiveInWindow(ctx, state.VehicleID, days[0], days[len(days)-1])
	if err != nil {
		return nil, err
	}
	booked := func(d time.Time) bool {
		for i := range bookings {
			if bookings[i].Covers(d) {
				return true
			}
		}
		return false
	}

	today := utils.Day(s.now())
	result := &domain.CommitResult{}

	// Each date write is independently idempotent, so a mid-batch failure
	// leaves committed state intact and is reported per date instead of
	// aborting the whole set.
	for _, d := range days {
		key := d.Format(domain.DayFormat)
		intent := state.Intents[key]

		switch intent {
		case domain.EditAdd:
			switch {
			case !d.After(today):
				result.Rejected = append(result.Rejected, domain.RejectedEdit{Day: key, Reason: "day is in the past"})
			case booked(d):
				result.Rejected = append(result.Rejected, domain.RejectedEdit{Day: key, Reason: "day has a live booking"})
			default:
				mark := &domain.UnavailabilityMark{VehicleID: state.VehicleID, Date: d, Reason: domain.MarkReasonBlocked}
				if err := s.availRepo.Upsert(ctx, mark); err != nil {
					logger.Error("availability commit: block failed", "vehicle_id", state.VehicleID, "date", key, "error", err)
					result.Rejected = append(result.Rejected, domain.RejectedEdit{Day: key, Reason: "storage error"})
				} else {
					result.Blocked++
				}
			}
		case domain.EditRemove:
			if err := s.availRepo.Delete(ctx, state.VehicleID, d); err != nil {
				logger.Error("availability commit: unblock failed", "vehicle_id", state.VehicleID, "date", key, "error", err)
				result.Rejected = append(result.Rejected, domain.RejectedEdit{Day: key, Reason: "storage error"})
			} else {
				result.Unblocked++
			}
		default:
			result.Rejected = append(result.Rejected, domain.RejectedEdit{Day: key, Reason: "unknown intent"})
		}
	}

	// The staged set is spent regardless of per-date outcomes.
	state.Intents = make(map[string]domain.EditIntent)
	return result, nil
}
