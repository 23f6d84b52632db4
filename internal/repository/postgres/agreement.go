package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"driveshare-backend/internal/domain"
	"driveshare-backend/internal/repository"
)

type agreementRepository struct {
	db *sql.DB
}

func NewAgreementRepository(db *sql.DB) repository.AgreementRepository {
	return &agreementRepository{db: db}
}

const agreementColumns = `id, booking_id, reference, vehicle_make, vehicle_model, vehicle_year, license_plate, terms, owner_signed, owner_signed_at, renter_signed, renter_signed_at, status, created_on, updated_on`

func scanAgreement(row interface{ Scan(...any) error }, a *domain.Agreement) error {
	return row.Scan(&a.ID, &a.BookingID, &a.Reference, &a.VehicleMake, &a.VehicleModel, &a.VehicleYear, &a.LicensePlate, &a.Terms, &a.OwnerSigned, &a.OwnerSignedAt, &a.RenterSigned, &a.RenterSignedAt, &a.Status, &a.CreatedOn, &a.UpdatedOn)
}

func (r *agreementRepository) Create(ctx context.Context, a *domain.Agreement) error {
	query := `INSERT INTO agreements (booking_id, reference, vehicle_make, vehicle_model, vehicle_year, license_plate, terms, owner_signed, renter_signed, status, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12) RETURNING id`
	now := time.Now()
	return r.db.QueryRowContext(ctx, query, a.BookingID, a.Reference, a.VehicleMake, a.VehicleModel, a.VehicleYear, a.LicensePlate, a.Terms, a.OwnerSigned, a.RenterSigned, a.Status, now, now).Scan(&a.ID)
}

func (r *agreementRepository) GetByID(ctx context.Context, id int64) (*domain.Agreement, error) {
	a := &domain.Agreement{}
	query := `SELECT ` + agreementColumns + ` FROM agreements WHERE id = $1`
	err := scanAgreement(r.db.QueryRowContext(ctx, query, id), a)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return a, nil
}

func (r *agreementRepository) GetByBookingID(ctx context.Context, bookingID int64) (*domain.Agreement, error) {
	a := &domain.Agreement{}
	query := `SELECT ` + agreementColumns + ` FROM agreements WHERE booking_id = $1`
	err := scanAgreement(r.db.QueryRowContext(ctx, query, bookingID), a)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return a, nil
}

// Sign flips the role's signature flag only when it is still unset, so a
// duplicate call never rewrites the original timestamp.
func (r *agreementRepository) Sign(ctx context.Context, id int64, role domain.Role, at time.Time) (bool, error) {
	var flag, stamp string
	switch role {
	case domain.RoleOwner:
		flag, stamp = "owner_signed", "owner_signed_at"
	case domain.RoleRenter:
		flag, stamp = "renter_signed", "renter_signed_at"
	default:
		return false, fmt.Errorf("role %s cannot sign", role)
	}

	query := fmt.Sprintf(`UPDATE agreements SET %s = TRUE, %s = $1, updated_on = $2 WHERE id = $3 AND %s = FALSE`, flag, stamp, flag)
	res, err := r.db.ExecContext(ctx, query, at, time.Now(), id)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n == 1, nil
}

func (r *agreementRepository) SetStatus(ctx context.Context, id int64, status domain.AgreementStatus) error {
	query := `UPDATE agreements SET status = $1, updated_on = $2 WHERE id = $3`
	_, err := r.db.ExecContext(ctx, query, status, time.Now(), id)
	return err
}
