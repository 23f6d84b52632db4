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

type vehicleRepository struct {
	db *sql.DB
}

func NewVehicleRepository(db *sql.DB) repository.VehicleRepository {
	return &vehicleRepository{db: db}
}

const vehicleColumns = `id, owner_id, make, model, year, license_plate, description, daily_rate_cents, security_deposit_cents, is_available, status, created_on, updated_on`

func scanVehicle(row interface{ Scan(...any) error }, v *domain.Vehicle) error {
	return row.Scan(&v.ID, &v.OwnerID, &v.Make, &v.Model, &v.Year, &v.LicensePlate, &v.Description, &v.DailyRateCents, &v.SecurityDepositCents, &v.IsAvailable, &v.Status, &v.CreatedOn, &v.UpdatedOn)
}

func (r *vehicleRepository) Create(ctx context.Context, v *domain.Vehicle) error {
	query := `INSERT INTO vehicles (owner_id, make, model, year, license_plate, description, daily_rate_cents, security_deposit_cents, is_available, status, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12) RETURNING id`
	now := time.Now()
	return r.db.QueryRowContext(ctx, query, v.OwnerID, v.Make, v.Model, v.Year, v.LicensePlate, v.Description, v.DailyRateCents, v.SecurityDepositCents, v.IsAvailable, v.Status, now, now).Scan(&v.ID)
}

func (r *vehicleRepository) GetByID(ctx context.Context, id int64) (*domain.Vehicle, error) {
	v := &domain.Vehicle{}
	query := `SELECT ` + vehicleColumns + ` FROM vehicles WHERE id = $1`
	err := scanVehicle(r.db.QueryRowContext(ctx, query, id), v)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return v, nil
}

func (r *vehicleRepository) Update(ctx context.Context, v *domain.Vehicle) error {
	query := `UPDATE vehicles SET make=$1, model=$2, year=$3, license_plate=$4, description=$5, daily_rate_cents=$6, security_deposit_cents=$7, is_available=$8, updated_on=$9 WHERE id=$10`
	_, err := r.db.ExecContext(ctx, query, v.Make, v.Model, v.Year, v.LicensePlate, v.Description, v.DailyRateCents, v.SecurityDepositCents, v.IsAvailable, time.Now(), v.ID)
	return err
}

func (r *vehicleRepository) UpdateStatus(ctx context.Context, id int64, status domain.VehicleStatus) error {
	query := `UPDATE vehicles SET status=$1, updated_on=$2 WHERE id=$3`
	res, err := r.db.ExecContext(ctx, query, status, time.Now(), id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *vehicleRepository) ListByOwner(ctx context.Context, ownerID int64, page, pageSize int32) ([]domain.Vehicle, int32, error) {
	where := `WHERE owner_id = $1`
	return r.list(ctx, where, []any{ownerID}, 2, page, pageSize)
}

func (r *vehicleRepository) ListApproved(ctx context.Context, page, pageSize int32) ([]domain.Vehicle, int32, error) {
	where := `WHERE status = $1 AND is_available = TRUE`
	return r.list(ctx, where, []any{domain.VehicleStatusApproved}, 2, page, pageSize)
}

func (r *vehicleRepository) list(ctx context.Context, where string, args []any, argIdx int, page, pageSize int32) ([]domain.Vehicle, int32, error) {
	offset := (page - 1) * pageSize

	var count int32
	countSql := `SELECT count(*) FROM vehicles ` + where
	if err := r.db.QueryRowContext(ctx, countSql, args...).Scan(&count); err != nil {
		return nil, 0, err
	}

	query := fmt.Sprintf(`SELECT %s FROM vehicles %s ORDER BY created_on DESC LIMIT $%d OFFSET $%d`, vehicleColumns, where, argIdx, argIdx+1)
	args = append(args, pageSize, offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var vehicles []domain.Vehicle
	for rows.Next() {
		var v domain.Vehicle
		if err := scanVehicle(rows, &v); err != nil {
			return nil, 0, err
		}
		vehicles = append(vehicles, v)
	}
	return vehicles, count, rows.Err()
}
