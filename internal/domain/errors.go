package domain

import (
	"errors"
	"fmt"
	"time"
)

// ErrNotFound is returned when a referenced record does not exist.
var ErrNotFound = errors.New("not found")

// ValidationError marks malformed or out-of-range input. Nothing carrying a
// validation error is ever persisted.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// DateConflictError rejects a booking window or a staged block that collides
// with a live booking or an unavailability mark. It always names the first
// colliding date.
type DateConflictError struct {
	Date time.Time
}

func (e *DateConflictError) Error() string {
	return fmt.Sprintf("date conflict on %s", e.Date.Format(DayFormat))
}

// AuthorizationError marks the wrong party attempting a transition or sign.
type AuthorizationError struct {
	Reason string
}

func (e *AuthorizationError) Error() string {
	return "not authorized: " + e.Reason
}

type PreconditionCode string

const (
	PreconditionVerificationRequired PreconditionCode = "VERIFICATION_REQUIRED"
	PreconditionSelfBooking          PreconditionCode = "SELF_BOOKING"
	PreconditionVehicleUnavailable   PreconditionCode = "VEHICLE_UNAVAILABLE"
	PreconditionBookingNotConfirmed  PreconditionCode = "BOOKING_NOT_CONFIRMED"
)

// PreconditionError marks an unmet precondition from outside the request
// payload itself, such as an unverified renter account.
type PreconditionError struct {
	Code   PreconditionCode
	Reason string
}

func (e *PreconditionError) Error() string {
	return fmt.Sprintf("precondition failed (%s): %s", e.Code, e.Reason)
}

// InvalidTransitionError rejects a lifecycle edge the state machine does not
// allow, including any attempt to leave a terminal state.
type InvalidTransitionError struct {
	From BookingStatus
	To   BookingStatus
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("invalid transition %s -> %s", e.From, e.To)
}
