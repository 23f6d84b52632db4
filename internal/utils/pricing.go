package utils

import (
	"time"

	"driveshare-backend/internal/domain"
)

// CostBreakdown provides the detailed price breakdown frozen onto a booking.
type CostBreakdown struct {
	Days            int32
	SubtotalCents   int64
	ServiceFeeCents int64
	DepositCents    int64
	TotalCents      int64
}

// DefaultServiceFeePercent is the marketplace cut applied to the subtotal.
const DefaultServiceFeePercent = 10

// RentalDays converts an inclusive [start, end] date range into billable
// days: the number of nights, with a minimum of one (a same-day rental still
// bills one day).
func RentalDays(start, end time.Time) (int32, error) {
	if end.Before(start) {
		return 0, &domain.ValidationError{Field: "end_date", Reason: "end date must not be before start date"}
	}
	nights := Nights(start, end)
	if nights < 1 {
		nights = 1
	}
	return nights, nil
}

// CalculateBookingCost computes the full breakdown for a rental window
// against a vehicle's current rates. The result is captured onto the booking
// row at creation; later rate changes never touch existing bookings.
func CalculateBookingCost(start, end time.Time, vehicle *domain.Vehicle, feePercent int64) (CostBreakdown, error) {
	days, err := RentalDays(start, end)
	if err != nil {
		return CostBreakdown{}, err
	}
	if feePercent <= 0 {
		feePercent = DefaultServiceFeePercent
	}

	subtotal := int64(days) * vehicle.DailyRateCents
	fee := subtotal * feePercent / 100
	deposit := vehicle.SecurityDepositCents

	return CostBreakdown{
		Days:            days,
		SubtotalCents:   subtotal,
		ServiceFeeCents: fee,
		DepositCents:    deposit,
		TotalCents:      subtotal + fee + deposit,
	}, nil
}
