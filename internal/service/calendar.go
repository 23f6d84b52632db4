package service

import (
	"context"
	"time"

	"driveshare-backend/internal/domain"
	"driveshare-backend/internal/repository"
	"driveshare-backend/internal/utils"
)

type calendarService struct {
	availRepo   repository.AvailabilityRepository
	bookingRepo repository.BookingRepository
	now         func() time.Time
}

func NewCalendarService(availRepo repository.AvailabilityRepository, bookingRepo repository.BookingRepository) CalendarService {
	return &calendarService{
		availRepo:   availRepo,
		bookingRepo: bookingRepo,
		now:         time.Now,
	}
}

// MonthCalendar recomputes the month from marks and live bookings on every
// call; nothing is cached or incrementally maintained, so a stale snapshot
// can never survive a refresh.
func (s *calendarService) MonthCalendar(ctx context.Context, vehicleID int64, firstOfMonth time.Time, staged *domain.EditState) ([]domain.DayEntry, error) {
	from, to := utils.MonthWindow(firstOfMonth)

	marks, err := s.availRepo.ListInWindow(ctx, vehicleID, from, to)
	if err != nil {
		return nil, err
	}
	bookings, err := s.bookingRepo.ListLiveInWindow(ctx, vehicleID, from, to)
	if err != nil {
		return nil, err
	}

	blocked := make(map[string]bool, len(marks))
	for _, m := range marks {
		blocked[m.Date.Format(domain.DayFormat)] = true
	}
	booked := make(map[string]bool)
	for _, b := range bookings {
		for d := b.StartDate; !d.After(b.EndDate); d = d.AddDate(0, 0, 1) {
			booked[d.Format(domain.DayFormat)] = true
		}
	}

	today := utils.Day(s.now())
	var entries []domain.DayEntry
	for d := from; !d.After(to); d = d.AddDate(0, 0, 1) {
		key := d.Format(domain.DayFormat)
		entries = append(entries, domain.DayEntry{
			Date:   d,
			Day:    key,
			Status: classifyDay(d, key, today, booked, blocked, staged),
		})
	}
	return entries, nil
}

// classifyDay applies the status priority: past over everything, then
// booked, then staged intents, then committed blocks. A day carrying both a
// live booking and a stale mark always reads as booked.
func classifyDay(d time.Time, key string, today time.Time, booked, blocked map[string]bool, staged *domain.EditState) domain.DayStatus {
	switch {
	case !d.After(today):
		return domain.DayPast
	case booked[key]:
		return domain.DayBooked
	}
	if intent, ok := staged.StagedFor(d); ok {
		if intent == domain.EditAdd {
			return domain.DayPendingBlock
		}
		return domain.DayPendingUnblock
	}
	if blocked[key] {
		return domain.DayBlocked
	}
	return domain.DayAvailable
}
