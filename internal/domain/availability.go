package domain

import "time"

type MarkReason string

const (
	MarkReasonBlocked     MarkReason = "BLOCKED"
	MarkReasonMaintenance MarkReason = "MAINTENANCE"
)

// UnavailabilityMark is an owner-imposed exclusion for one calendar day.
// Unique per (vehicle_id, date); never created for a day with a live booking.
type UnavailabilityMark struct {
	ID        int64      `json:"id"`
	VehicleID int64      `json:"vehicle_id"`
	Date      time.Time  `json:"date"`
	Reason    MarkReason `json:"reason"`
	CreatedOn string     `json:"created_on"`
}

// DayStatus is the derived availability state of one vehicle-day.
type DayStatus string

const (
	DayPast           DayStatus = "past"
	DayBooked         DayStatus = "booked"
	DayBlocked        DayStatus = "blocked"
	DayPendingBlock   DayStatus = "pending-block"
	DayPendingUnblock DayStatus = "pending-unblock"
	DayAvailable      DayStatus = "available"
)

type DayEntry struct {
	Date   time.Time `json:"-"`
	Day    string    `json:"date"` // yyyy-mm-dd
	Status DayStatus `json:"status"`
}

type EditIntent string

const (
	EditAdd    EditIntent = "add"
	EditRemove EditIntent = "remove"
)

// EditState holds an owner's staged block/unblock intents before commit.
// It lives entirely in the caller's hands; nothing is written to storage
// until Commit applies it.
type EditState struct {
	VehicleID int64                 `json:"vehicle_id"`
	Intents   map[string]EditIntent `json:"intents"` // keyed by yyyy-mm-dd
}

func NewEditState(vehicleID int64) *EditState {
	return &EditState{VehicleID: vehicleID, Intents: make(map[string]EditIntent)}
}

// StagedFor returns the staged intent for a day, if any.
func (e *EditState) StagedFor(day time.Time) (EditIntent, bool) {
	if e == nil || e.Intents == nil {
		return "", false
	}
	intent, ok := e.Intents[day.Format(DayFormat)]
	return intent, ok
}

// RejectedEdit reports one staged date the commit refused, with the reason.
type RejectedEdit struct {
	Day    string `json:"date"`
	Reason string `json:"reason"`
}

// CommitResult summarizes what a commit applied and what it refused.
type CommitResult struct {
	Blocked   int            `json:"blocked"`
	Unblocked int            `json:"unblocked"`
	Rejected  []RejectedEdit `json:"rejected,omitempty"`
}
