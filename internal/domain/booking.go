package domain

import "time"

// DayFormat is the wire format for calendar dates. Bookings span whole
// calendar days; times of day never participate in availability.
const DayFormat = "2006-01-02"

type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "PENDING"
	BookingStatusConfirmed BookingStatus = "CONFIRMED"
	BookingStatusActive    BookingStatus = "ACTIVE"
	BookingStatusCompleted BookingStatus = "COMPLETED"
	BookingStatusCancelled BookingStatus = "CANCELLED"
)

// LiveBookingStatuses are the statuses that still reserve calendar days.
var LiveBookingStatuses = []BookingStatus{
	BookingStatusPending,
	BookingStatusConfirmed,
	BookingStatusActive,
}

func (s BookingStatus) Live() bool {
	return s == BookingStatusPending || s == BookingStatusConfirmed || s == BookingStatusActive
}

func (s BookingStatus) Terminal() bool {
	return s == BookingStatusCompleted || s == BookingStatusCancelled
}

type Booking struct {
	ID        int64 `json:"id"`
	VehicleID int64 `json:"vehicle_id"`
	RenterID  int64 `json:"renter_id"`
	// OwnerID is denormalized from the vehicle at creation time so lifecycle
	// authorization never depends on later listing edits.
	OwnerID   int64     `json:"owner_id"`
	StartDate time.Time `json:"start_date"`
	EndDate   time.Time `json:"end_date"` // inclusive
	// Price snapshot fields, captured from the vehicle at creation time.
	// Later rate changes on the listing never alter an existing booking.
	DailyRateCents       int64         `json:"daily_rate_cents"`
	TotalDays            int32         `json:"total_days"`
	SubtotalCents        int64         `json:"subtotal_cents"`
	ServiceFeeCents      int64         `json:"service_fee_cents"`
	SecurityDepositCents int64         `json:"security_deposit_cents"`
	TotalCents           int64         `json:"total_cents"`
	Status               BookingStatus `json:"status"`
	CreatedOn            string        `json:"created_on"`
	UpdatedOn            string        `json:"updated_on"`
}

// Covers reports whether day falls inside the booking's inclusive range.
func (b *Booking) Covers(day time.Time) bool {
	return !day.Before(b.StartDate) && !day.After(b.EndDate)
}

// RoleOf resolves the actor's role on this booking. The second return is
// false when the actor is neither party nor an admin.
func (b *Booking) RoleOf(a Actor) (Role, bool) {
	switch {
	case a.UserID == b.OwnerID:
		return RoleOwner, true
	case a.UserID == b.RenterID:
		return RoleRenter, true
	case a.Admin:
		return RoleAdmin, true
	default:
		return "", false
	}
}
