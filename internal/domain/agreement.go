package domain

import "time"

type AgreementStatus string

const (
	AgreementStatusPendingSignatures AgreementStatus = "PENDING_SIGNATURES"
	AgreementStatusActive            AgreementStatus = "ACTIVE"
)

// Agreement is the rental contract materialized lazily for a confirmed
// booking. Terms are generated once from the booking's frozen fields and
// never regenerated; status is ACTIVE iff both parties have signed.
type Agreement struct {
	ID        int64  `json:"id"`
	BookingID int64  `json:"booking_id"`
	Reference string `json:"reference"` // opaque document number printed on the contract
	// Vehicle snapshot, denormalized so a signed contract survives listing edits.
	VehicleMake  string `json:"vehicle_make"`
	VehicleModel string `json:"vehicle_model"`
	VehicleYear  int32  `json:"vehicle_year"`
	LicensePlate string `json:"license_plate"`

	Terms          string          `json:"terms"`
	OwnerSigned    bool            `json:"owner_signed"`
	OwnerSignedAt  *time.Time      `json:"owner_signed_at,omitempty"`
	RenterSigned   bool            `json:"renter_signed"`
	RenterSignedAt *time.Time      `json:"renter_signed_at,omitempty"`
	Status         AgreementStatus `json:"status"`
	CreatedOn      string          `json:"created_on"`
	UpdatedOn      string          `json:"updated_on"`
}

// FullySigned reports whether both counterparties have signed.
func (a *Agreement) FullySigned() bool {
	return a.OwnerSigned && a.RenterSigned
}

// SignedBy reports whether the given role has already signed.
func (a *Agreement) SignedBy(role Role) bool {
	switch role {
	case RoleOwner:
		return a.OwnerSigned
	case RoleRenter:
		return a.RenterSigned
	default:
		return false
	}
}
