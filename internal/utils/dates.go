package utils

import (
	"fmt"
	"time"

	"driveshare-backend/internal/domain"
)

// Day normalizes a time to its calendar day (UTC midnight). All availability
// math runs on normalized days so clock times never leak into comparisons.
func Day(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// ParseDay parses a yyyy-mm-dd string into a normalized day.
func ParseDay(s string) (time.Time, error) {
	t, err := time.Parse(domain.DayFormat, s)
	if err != nil {
		return time.Time{}, &domain.ValidationError{Field: "date", Reason: fmt.Sprintf("expected yyyy-mm-dd, got %q", s)}
	}
	return Day(t), nil
}

// ParseMonth parses a yyyy-mm string and returns the first day of that month.
func ParseMonth(s string) (time.Time, error) {
	t, err := time.Parse("2006-01", s)
	if err != nil {
		return time.Time{}, &domain.ValidationError{Field: "month", Reason: fmt.Sprintf("expected yyyy-mm, got %q", s)}
	}
	return Day(t), nil
}

// MonthWindow returns the inclusive [first, last] day bounds of the month
// containing firstOfMonth.
func MonthWindow(firstOfMonth time.Time) (time.Time, time.Time) {
	first := time.Date(firstOfMonth.Year(), firstOfMonth.Month(), 1, 0, 0, 0, 0, time.UTC)
	last := first.AddDate(0, 1, -1)
	return first, last
}

// Nights returns the number of nights between two normalized days.
func Nights(start, end time.Time) int32 {
	return int32(end.Sub(start).Hours() / 24)
}
