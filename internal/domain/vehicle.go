package domain

import "fmt"

type VehicleStatus string

const (
	VehicleStatusPending  VehicleStatus = "PENDING"
	VehicleStatusApproved VehicleStatus = "APPROVED"
	VehicleStatusRejected VehicleStatus = "REJECTED"
)

type Vehicle struct {
	ID                   int64  `json:"id"`
	OwnerID              int64  `json:"owner_id"`
	Owner                *User  `json:"owner,omitempty"` // Populated when fetching vehicle details
	Make                 string `json:"make"`
	Model                string `json:"model"`
	Year                 int32  `json:"year"`
	LicensePlate         string `json:"license_plate"`
	Description          string `json:"description"`
	DailyRateCents       int64  `json:"daily_rate_cents"`
	SecurityDepositCents int64  `json:"security_deposit_cents"`
	// IsAvailable is the owner's listing-level on/off switch. Per-day
	// exclusions live in unavailability marks.
	IsAvailable bool          `json:"is_available"`
	Status      VehicleStatus `json:"status"`
	CreatedOn   string        `json:"created_on"`
	UpdatedOn   string        `json:"updated_on"`
}

// DisplayName is the listing title used in notifications and agreements.
func (v *Vehicle) DisplayName() string {
	if v.Year > 0 {
		return fmt.Sprintf("%d %s %s", v.Year, v.Make, v.Model)
	}
	return fmt.Sprintf("%s %s", v.Make, v.Model)
}

// Rentable reports whether the listing itself admits new bookings. Per-day
// conflicts are checked separately against marks and live bookings.
func (v *Vehicle) Rentable() bool {
	return v.Status == VehicleStatusApproved && v.IsAvailable
}
