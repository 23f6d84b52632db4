package postgres

import (
	"context"
	"testing"

	"driveshare-backend/internal/domain"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAvailabilityRepository_Upsert(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := NewAvailabilityRepository(db)
	ctx := context.Background()

	t.Run("InsertsNewMark", func(t *testing.T) {
		mark := &domain.UnavailabilityMark{VehicleID: 7, Date: testDay(2025, 3, 15), Reason: domain.MarkReasonBlocked}

		mock.ExpectQuery("INSERT INTO unavailability_marks").
			WithArgs(mark.VehicleID, mark.Date, mark.Reason, sqlmock.AnyArg()).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(11))

		err := repo.Upsert(ctx, mark)
		require.NoError(t, err)
		assert.Equal(t, int64(11), mark.ID)
	})

	t.Run("ReAddingSameDayIsIdempotent", func(t *testing.T) {
		mark := &domain.UnavailabilityMark{VehicleID: 7, Date: testDay(2025, 3, 15), Reason: domain.MarkReasonBlocked}

		// ON CONFLICT path still returns the existing row id.
		mock.ExpectQuery("INSERT INTO unavailability_marks").
			WithArgs(mark.VehicleID, mark.Date, mark.Reason, sqlmock.AnyArg()).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(11))

		err := repo.Upsert(ctx, mark)
		require.NoError(t, err)
		assert.Equal(t, int64(11), mark.ID)
	})
}

func TestAvailabilityRepository_Get(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := NewAvailabilityRepository(db)
	ctx := context.Background()
	date := testDay(2025, 3, 15)

	t.Run("Success", func(t *testing.T) {
		rows := sqlmock.NewRows([]string{"id", "vehicle_id", "date", "reason", "created_on"}).
			AddRow(11, 7, date, "BLOCKED", "2025-03-10T12:00:00Z")
		mock.ExpectQuery("SELECT (.+) FROM unavailability_marks WHERE vehicle_id = \\$1 AND date = \\$2").
			WithArgs(int64(7), date).
			WillReturnRows(rows)

		mark, err := repo.Get(ctx, 7, date)
		require.NoError(t, err)
		assert.Equal(t, domain.MarkReasonBlocked, mark.Reason)
	})

	t.Run("NotFound", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM unavailability_marks WHERE vehicle_id = \\$1 AND date = \\$2").
			WithArgs(int64(7), date).
			WillReturnRows(sqlmock.NewRows([]string{"id", "vehicle_id", "date", "reason", "created_on"}))

		_, err := repo.Get(ctx, 7, date)
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func TestAvailabilityRepository_Delete(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := NewAvailabilityRepository(db)
	ctx := context.Background()
	date := testDay(2025, 3, 15)

	mock.ExpectExec("DELETE FROM unavailability_marks WHERE vehicle_id = \\$1 AND date = \\$2").
		WithArgs(int64(7), date).
		WillReturnResult(sqlmock.NewResult(0, 1))

	assert.NoError(t, repo.Delete(ctx, 7, date))
}

func TestAvailabilityRepository_ListInWindow(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := NewAvailabilityRepository(db)
	ctx := context.Background()
	from, to := testDay(2025, 3, 1), testDay(2025, 3, 31)

	rows := sqlmock.NewRows([]string{"id", "vehicle_id", "date", "reason", "created_on"}).
		AddRow(11, 7, testDay(2025, 3, 15), "BLOCKED", "2025-03-10T12:00:00Z").
		AddRow(12, 7, testDay(2025, 3, 20), "MAINTENANCE", "2025-03-10T12:00:00Z")
	mock.ExpectQuery("SELECT (.+) FROM unavailability_marks").
		WithArgs(int64(7), from, to).
		WillReturnRows(rows)

	marks, err := repo.ListInWindow(ctx, 7, from, to)
	require.NoError(t, err)
	require.Len(t, marks, 2)
	assert.Equal(t, domain.MarkReasonMaintenance, marks[1].Reason)
}
