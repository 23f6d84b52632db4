package jobs

import (
	"context"
	"time"

	"driveshare-backend/internal/domain"
	"driveshare-backend/internal/logger"
)

// ExpireStalePendingBookings cancels booking requests the owner never acted
// on. The TTL is a product policy knob, not a protocol rule; it defaults to
// 72 hours.
func (jr *JobRunner) ExpireStalePendingBookings() {
	jr.runWithRecovery("ExpireStalePendingBookings", func() {
		ctx := context.Background()

		ttl := time.Duration(jr.config.Booking.PendingTTLHours) * time.Hour
		cutoff := time.Now().Add(-ttl)

		expired, err := jr.services.Booking.ExpirePending(ctx, cutoff)
		if err != nil {
			logger.Error("Failed to expire stale pending bookings", "error", err)
			return
		}
		logger.Info("Expired stale pending bookings", "count", expired, "cutoff", cutoff.Format(time.RFC3339))
	})
}

// SendReturnReminders nudges owners of active bookings whose end date has
// passed. The sweep never transitions a booking; completion stays an
// owner-reported event.
func (jr *JobRunner) SendReturnReminders() {
	jr.runWithRecovery("SendReturnReminders", func() {
		ctx := context.Background()
		today := time.Now().UTC().Truncate(24 * time.Hour)

		overdue, err := jr.store.BookingRepository.ListActiveEndedBefore(ctx, today)
		if err != nil {
			logger.Error("Failed to list overdue active bookings", "error", err)
			return
		}

		count := 0
		for i := range overdue {
			b := &overdue[i]
			owner, err := jr.store.UserRepository.GetByID(ctx, b.OwnerID)
			if err != nil {
				logger.Error("Failed to load owner for reminder", "booking_id", b.ID, "error", err)
				continue
			}
			vehicle, err := jr.store.VehicleRepository.GetByID(ctx, b.VehicleID)
			if err != nil {
				logger.Error("Failed to load vehicle for reminder", "booking_id", b.ID, "error", err)
				continue
			}
			if err := jr.services.Email.SendReturnReminder(ctx, owner.Email, vehicle.DisplayName(), b.EndDate.Format(domain.DayFormat)); err != nil {
				logger.Error("Failed to send return reminder", "booking_id", b.ID, "error", err)
				continue
			}
			count++
		}
		logger.Info("Sent return reminders", "count", count)
	})
}
