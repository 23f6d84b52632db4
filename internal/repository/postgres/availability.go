package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"driveshare-backend/internal/domain"
	"driveshare-backend/internal/repository"
)

type availabilityRepository struct {
	db *sql.DB
}

func NewAvailabilityRepository(db *sql.DB) repository.AvailabilityRepository {
	return &availabilityRepository{db: db}
}

func (r *availabilityRepository) Upsert(ctx context.Context, m *domain.UnavailabilityMark) error {
	// Keyed on (vehicle_id, date). A stale client re-adding an existing mark
	// refreshes the reason instead of failing on the unique constraint.
	query := `INSERT INTO unavailability_marks (vehicle_id, date, reason, created_on)
	          VALUES ($1, $2, $3, $4)
	          ON CONFLICT (vehicle_id, date) DO UPDATE SET reason = EXCLUDED.reason
	          RETURNING id`
	return r.db.QueryRowContext(ctx, query, m.VehicleID, m.Date, m.Reason, time.Now()).Scan(&m.ID)
}

func (r *availabilityRepository) Delete(ctx context.Context, vehicleID int64, date time.Time) error {
	query := `DELETE FROM unavailability_marks WHERE vehicle_id = $1 AND date = $2`
	_, err := r.db.ExecContext(ctx, query, vehicleID, date)
	return err
}

func (r *availabilityRepository) Get(ctx context.Context, vehicleID int64, date time.Time) (*domain.UnavailabilityMark, error) {
	m := &domain.UnavailabilityMark{}
	query := `SELECT id, vehicle_id, date, reason, created_on FROM unavailability_marks WHERE vehicle_id = $1 AND date = $2`
	err := r.db.QueryRowContext(ctx, query, vehicleID, date).Scan(&m.ID, &m.VehicleID, &m.Date, &m.Reason, &m.CreatedOn)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return m, nil
}

func (r *availabilityRepository) ListInWindow(ctx context.Context, vehicleID int64, from, to time.Time) ([]domain.UnavailabilityMark, error) {
	query := `SELECT id, vehicle_id, date, reason, created_on FROM unavailability_marks
	          WHERE vehicle_id = $1 AND date BETWEEN $2 AND $3 ORDER BY date`
	rows, err := r.db.QueryContext(ctx, query, vehicleID, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var marks []domain.UnavailabilityMark
	for rows.Next() {
		var m domain.UnavailabilityMark
		if err := rows.Scan(&m.ID, &m.VehicleID, &m.Date, &m.Reason, &m.CreatedOn); err != nil {
			return nil, err
		}
		marks = append(marks, m)
	}
	return marks, rows.Err()
}
