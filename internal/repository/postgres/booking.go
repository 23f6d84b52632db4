package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"driveshare-backend/internal/domain"
	"driveshare-backend/internal/repository"

	"github.com/lib/pq"
)

type bookingRepository struct {
	db *sql.DB
}

func NewBookingRepository(db *sql.DB) repository.BookingRepository {
	return &bookingRepository{db: db}
}

const bookingColumns = `id, vehicle_id, renter_id, owner_id, start_date, end_date, daily_rate_cents, total_days, subtotal_cents, service_fee_cents, security_deposit_cents, total_cents, status, created_on, updated_on`

func scanBooking(row interface{ Scan(...any) error }, b *domain.Booking) error {
	return row.Scan(&b.ID, &b.VehicleID, &b.RenterID, &b.OwnerID, &b.StartDate, &b.EndDate, &b.DailyRateCents, &b.TotalDays, &b.SubtotalCents, &b.ServiceFeeCents, &b.SecurityDepositCents, &b.TotalCents, &b.Status, &b.CreatedOn, &b.UpdatedOn)
}

func liveStatusStrings() []string {
	out := make([]string, len(domain.LiveBookingStatuses))
	for i, s := range domain.LiveBookingStatuses {
		out[i] = string(s)
	}
	return out
}

// Create inserts a booking after re-checking for colliding marks and live
// bookings inside one serializable transaction. Two renters racing for the
// same window serialize here; the loser gets a DateConflictError naming the
// first colliding date.
func (r *bookingRepository) Create(ctx context.Context, b *domain.Booking) error {
	tx, err := r.db.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelSerializable})
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var markConflict, bookingConflict sql.NullTime

	markQuery := `SELECT date FROM unavailability_marks
	              WHERE vehicle_id = $1 AND date BETWEEN $2 AND $3
	              ORDER BY date LIMIT 1`
	err = tx.QueryRowContext(ctx, markQuery, b.VehicleID, b.StartDate, b.EndDate).Scan(&markConflict.Time)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return err
	}
	markConflict.Valid = err == nil

	overlapQuery := `SELECT GREATEST(start_date, $2::date) FROM bookings
	                 WHERE vehicle_id = $1 AND status = ANY($4)
	                   AND start_date <= $3 AND end_date >= $2
	                 ORDER BY 1 LIMIT 1`
	err = tx.QueryRowContext(ctx, overlapQuery, b.VehicleID, b.StartDate, b.EndDate, pq.Array(liveStatusStrings())).Scan(&bookingConflict.Time)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return err
	}
	bookingConflict.Valid = err == nil

	if conflict, ok := earliestConflict(markConflict, bookingConflict); ok {
		return &domain.DateConflictError{Date: conflict}
	}

	insert := `INSERT INTO bookings (vehicle_id, renter_id, owner_id, start_date, end_date, daily_rate_cents, total_days, subtotal_cents, service_fee_cents, security_deposit_cents, total_cents, status, created_on, updated_on)
	           VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14) RETURNING id`
	now := time.Now()
	if err := tx.QueryRowContext(ctx, insert, b.VehicleID, b.RenterID, b.OwnerID, b.StartDate, b.EndDate, b.DailyRateCents, b.TotalDays, b.SubtotalCents, b.ServiceFeeCents, b.SecurityDepositCents, b.TotalCents, b.Status, now, now).Scan(&b.ID); err != nil {
		return err
	}

	return tx.Commit()
}

func earliestConflict(a, b sql.NullTime) (time.Time, bool) {
	switch {
	case a.Valid && b.Valid:
		if b.Time.Before(a.Time) {
			return b.Time, true
		}
		return a.Time, true
	case a.Valid:
		return a.Time, true
	case b.Valid:
		return b.Time, true
	default:
		return time.Time{}, false
	}
}

func (r *bookingRepository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	b := &domain.Booking{}
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE id = $1`
	err := scanBooking(r.db.QueryRowContext(ctx, query, id), b)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return b, nil
}

func (r *bookingRepository) UpdateStatusIf(ctx context.Context, id int64, from, to domain.BookingStatus) (bool, error) {
	query := `UPDATE bookings SET status = $1, updated_on = $2 WHERE id = $3 AND status = $4`
	res, err := r.db.ExecContext(ctx, query, to, time.Now(), id, from)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n == 1, nil
}

func (r *bookingRepository) ListLiveInWindow(ctx context.Context, vehicleID int64, from, to time.Time) ([]domain.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings
	          WHERE vehicle_id = $1 AND status = ANY($4)
	            AND start_date <= $3 AND end_date >= $2
	          ORDER BY start_date`
	rows, err := r.db.QueryContext(ctx, query, vehicleID, from, to, pq.Array(liveStatusStrings()))
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectBookings(rows)
}

func (r *bookingRepository) ListByRenter(ctx context.Context, renterID int64, status string, page, pageSize int32) ([]domain.Booking, int32, error) {
	return r.listByParty(ctx, "renter_id", renterID, status, page, pageSize)
}

func (r *bookingRepository) ListByOwner(ctx context.Context, ownerID int64, status string, page, pageSize int32) ([]domain.Booking, int32, error) {
	return r.listByParty(ctx, "owner_id", ownerID, status, page, pageSize)
}

func (r *bookingRepository) listByParty(ctx context.Context, column string, userID int64, status string, page, pageSize int32) ([]domain.Booking, int32, error) {
	offset := (page - 1) * pageSize
	where := fmt.Sprintf(`WHERE %s = $1`, column)
	args := []any{userID}
	argIdx := 2
	if status != "" {
		where += fmt.Sprintf(" AND status = $%d", argIdx)
		args = append(args, status)
		argIdx++
	}

	var count int32
	countSql := `SELECT count(*) FROM bookings ` + where
	if err := r.db.QueryRowContext(ctx, countSql, args...).Scan(&count); err != nil {
		return nil, 0, err
	}

	query := fmt.Sprintf(`SELECT %s FROM bookings %s ORDER BY created_on DESC LIMIT $%d OFFSET $%d`, bookingColumns, where, argIdx, argIdx+1)
	args = append(args, pageSize, offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	bookings, err := collectBookings(rows)
	if err != nil {
		return nil, 0, err
	}
	return bookings, count, nil
}

func (r *bookingRepository) ListPendingOlderThan(ctx context.Context, cutoff time.Time) ([]domain.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE status = $1 AND created_on < $2 ORDER BY created_on`
	rows, err := r.db.QueryContext(ctx, query, domain.BookingStatusPending, cutoff)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectBookings(rows)
}

func (r *bookingRepository) ListActiveEndedBefore(ctx context.Context, day time.Time) ([]domain.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE status = $1 AND end_date < $2 ORDER BY end_date`
	rows, err := r.db.QueryContext(ctx, query, domain.BookingStatusActive, day)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectBookings(rows)
}

func collectBookings(rows *sql.Rows) ([]domain.Booking, error) {
	var bookings []domain.Booking
	for rows.Next() {
		var b domain.Booking
		if err := scanBooking(rows, &b); err != nil {
			return nil, err
		}
		bookings = append(bookings, b)
	}
	return bookings, rows.Err()
}
