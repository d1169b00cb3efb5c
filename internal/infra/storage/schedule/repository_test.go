package schedule

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/pkg/dbmetrics"
	"github.com/m04kA/SMC-SalonBooking/pkg/types"
)

func newRepository(t *testing.T) (*Repository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewRepository(dbmetrics.Wrap(db, nil)), mock
}

func TestRepository_GetByStylist(t *testing.T) {
	repo, mock := newRepository(t)
	now := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT stylist_name, created_at, updated_at FROM stylist_schedules WHERE stylist_name = $1")).
		WithArgs("Maria").
		WillReturnRows(sqlmock.NewRows([]string{"stylist_name", "created_at", "updated_at"}).
			AddRow("Maria", now, now))

	mock.ExpectQuery(regexp.QuoteMeta("FROM stylist_working_hours WHERE stylist_name = $1")).
		WithArgs("Maria").
		WillReturnRows(sqlmock.NewRows([]string{"stylist_name", "weekday", "is_working", "start_time", "end_time"}).
			AddRow("Maria", "Monday", true, int64(540), int64(1080)).
			AddRow("Maria", "Sunday", false, nil, nil))

	mock.ExpectQuery(regexp.QuoteMeta("FROM stylist_breaks WHERE stylist_name = $1")).
		WithArgs("Maria").
		WillReturnRows(sqlmock.NewRows([]string{"stylist_name", "start_time", "end_time"}).
			AddRow("Maria", int64(720), int64(780)))

	mock.ExpectQuery(regexp.QuoteMeta("FROM stylist_blocked_dates WHERE stylist_name = $1")).
		WithArgs("Maria").
		WillReturnRows(sqlmock.NewRows([]string{"stylist_name", "blocked_date"}).
			AddRow("Maria", time.Date(2025, 12, 25, 0, 0, 0, 0, time.UTC)))

	schedule, err := repo.GetByStylist(context.Background(), "Maria")
	require.NoError(t, err)

	assert.Equal(t, "Maria", schedule.StylistName)
	assert.Equal(t, "9:00 AM", schedule.WorkingHours["Monday"].StartTime.String())
	assert.Equal(t, "6:00 PM", schedule.WorkingHours["Monday"].EndTime.String())
	assert.False(t, schedule.WorkingHours["Sunday"].IsWorking)
	assert.True(t, schedule.WorkingHours["Sunday"].StartTime.IsZero())
	require.Len(t, schedule.BreakTimes, 1)
	assert.Equal(t, "12:00 PM", schedule.BreakTimes[0].StartTime.String())
	assert.Equal(t, []string{"2025-12-25"}, schedule.BlockedDates)
	assert.Equal(t, now, schedule.CreatedAt)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_GetByStylist_NotFound(t *testing.T) {
	repo, mock := newRepository(t)

	mock.ExpectQuery(regexp.QuoteMeta("FROM stylist_schedules")).
		WithArgs("Ghost").
		WillReturnRows(sqlmock.NewRows([]string{"stylist_name", "created_at", "updated_at"}))

	_, err := repo.GetByStylist(context.Background(), "Ghost")
	assert.ErrorIs(t, err, ErrScheduleNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_GetAll_Empty(t *testing.T) {
	repo, mock := newRepository(t)

	mock.ExpectQuery(regexp.QuoteMeta("FROM stylist_schedules ORDER BY stylist_name ASC")).
		WillReturnRows(sqlmock.NewRows([]string{"stylist_name", "created_at", "updated_at"}))

	schedules, err := repo.GetAll(context.Background())
	require.NoError(t, err)
	assert.Empty(t, schedules)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_Upsert(t *testing.T) {
	repo, mock := newRepository(t)
	now := time.Now()

	schedule := &domain.StaffSchedule{
		StylistName: "Maria",
		WorkingHours: map[string]domain.WorkingDay{
			"Monday": {
				IsWorking: true,
				StartTime: types.MustParseTimeOfDay("9:00 AM"),
				EndTime:   types.MustParseTimeOfDay("6:00 PM"),
			},
		},
		BreakTimes: []domain.BreakTime{
			{StartTime: types.MustParseTimeOfDay("12:00 PM"), EndTime: types.MustParseTimeOfDay("1:00 PM")},
		},
		BlockedDates: []string{"2025-12-25"},
	}

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO stylist_schedules (stylist_name) VALUES ($1) ON CONFLICT")).
		WithArgs("Maria").
		WillReturnRows(sqlmock.NewRows([]string{"created_at", "updated_at"}).AddRow(now, now))
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM stylist_working_hours WHERE stylist_name = $1")).
		WithArgs("Maria").WillReturnResult(sqlmock.NewResult(0, 7))
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM stylist_breaks WHERE stylist_name = $1")).
		WithArgs("Maria").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM stylist_blocked_dates WHERE stylist_name = $1")).
		WithArgs("Maria").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO stylist_working_hours")).
		WithArgs("Maria", "Monday", true, int64(540), int64(1080)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO stylist_breaks")).
		WithArgs("Maria", 0, int64(720), int64(780)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO stylist_blocked_dates")).
		WithArgs("Maria", "2025-12-25").
		WillReturnResult(sqlmock.NewResult(0, 1))

	saved, err := repo.Upsert(context.Background(), schedule)
	require.NoError(t, err)
	assert.Equal(t, now, saved.UpdatedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_Delete_NotFound(t *testing.T) {
	repo, mock := newRepository(t)

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM stylist_schedules WHERE stylist_name = $1")).
		WithArgs("Ghost").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Delete(context.Background(), "Ghost")
	assert.ErrorIs(t, err, ErrScheduleNotFound)
}

func TestRepository_AddBlockedDate(t *testing.T) {
	repo, mock := newRepository(t)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT 1 FROM stylist_schedules WHERE stylist_name = $1")).
		WithArgs("Maria").
		WillReturnRows(sqlmock.NewRows([]string{"?column?"}).AddRow(1))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO stylist_blocked_dates (stylist_name,blocked_date) VALUES ($1,$2) ON CONFLICT DO NOTHING")).
		WithArgs("Maria", "2025-07-04").
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.AddBlockedDate(context.Background(), "Maria", time.Date(2025, 7, 4, 15, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_RemoveBlockedDate_UnknownStylist(t *testing.T) {
	repo, mock := newRepository(t)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT 1 FROM stylist_schedules")).
		WithArgs("Ghost").
		WillReturnRows(sqlmock.NewRows([]string{"?column?"}))

	err := repo.RemoveBlockedDate(context.Background(), "Ghost", time.Now())
	assert.ErrorIs(t, err, ErrScheduleNotFound)
}
