package appointment

import (
	"context"
	"database/sql/driver"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/pkg/dbmetrics"
	"github.com/m04kA/SMC-SalonBooking/pkg/ptr"
	"github.com/m04kA/SMC-SalonBooking/pkg/txmanager"
	"github.com/m04kA/SMC-SalonBooking/pkg/types"
)

var monday = time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)

func newRepository(t *testing.T) (*Repository, *dbmetrics.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	wrapped := dbmetrics.Wrap(db, nil)
	return NewRepository(wrapped), wrapped, mock
}

func appointmentRow(id int64, stylist string, minutes int64, status string) []driver.Value {
	now := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)
	return []driver.Value{
		id, stylist, monday, minutes, "Ann", "+15550001", "Haircut", int64(60), status,
		nil, nil, nil, now, now,
	}
}

func TestBuildGetByDateQuery(t *testing.T) {
	query, args, err := buildGetByDateQuery(monday, false).ToSql()
	require.NoError(t, err)
	assert.Contains(t, query, "WHERE appointment_date = $1 AND status NOT IN ($2,$3)")
	assert.Contains(t, query, "ORDER BY appointment_time ASC, stylist ASC")
	assert.NotContains(t, query, "FOR UPDATE")
	assert.Equal(t, []interface{}{"2025-06-02", "cancelled", "no_show"}, args)

	query, _, err = buildGetByDateQuery(monday, true).ToSql()
	require.NoError(t, err)
	assert.Contains(t, query, "FOR UPDATE")
}

func TestBuildFilterQuery(t *testing.T) {
	tests := []struct {
		name     string
		filter   domain.AppointmentsFilter
		contains []string
		excludes []string
	}{
		{
			name:     "active only by default",
			filter:   domain.AppointmentsFilter{},
			contains: []string{"status NOT IN ($1,$2)"},
		},
		{
			name:     "include inactive",
			filter:   domain.AppointmentsFilter{IncludeInactive: true},
			excludes: []string{"WHERE"},
		},
		{
			name: "explicit status wins",
			filter: domain.AppointmentsFilter{
				Status: ptr.Ptr(domain.StatusCancelled),
			},
			contains: []string{"status = $1"},
			excludes: []string{"NOT IN"},
		},
		{
			name: "stylist and period",
			filter: domain.AppointmentsFilter{
				Stylist:   ptr.Ptr("Maria"),
				StartDate: ptr.Ptr(monday),
				EndDate:   ptr.Ptr(monday.AddDate(0, 0, 6)),
			},
			contains: []string{"stylist = $1", "appointment_date >= $2", "appointment_date <= $3"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			query, _, err := buildFilterQuery(tt.filter).ToSql()
			require.NoError(t, err)
			for _, s := range tt.contains {
				assert.Contains(t, query, s)
			}
			for _, s := range tt.excludes {
				assert.NotContains(t, query, s)
			}
		})
	}
}

func TestRepository_Create(t *testing.T) {
	repo, _, mock := newRepository(t)
	now := time.Now()

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO appointments")).
		WithArgs("Maria", "2025-06-02", int64(840), "Ann", "+15550001", "Haircut", 60, "pending", nil).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "updated_at"}).AddRow(int64(7), now, now))

	appt, err := repo.Create(context.Background(), &domain.Appointment{
		Stylist:         "Maria",
		Date:            monday,
		Time:            types.MustParseTimeOfDay("2:00 PM"),
		CustomerName:    "Ann",
		CustomerPhone:   "+15550001",
		Service:         "Haircut",
		DurationMinutes: 60,
		Status:          domain.StatusPending,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(7), appt.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_Create_SlotTaken(t *testing.T) {
	repo, _, mock := newRepository(t)

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO appointments")).
		WillReturnError(&pq.Error{Code: uniqueViolation})

	_, err := repo.Create(context.Background(), &domain.Appointment{
		Stylist: "Maria",
		Date:    monday,
		Time:    types.MustParseTimeOfDay("2:00 PM"),
		Status:  domain.StatusPending,
	})
	assert.ErrorIs(t, err, ErrSlotTaken)
}

func TestRepository_GetByID(t *testing.T) {
	repo, _, mock := newRepository(t)

	mock.ExpectQuery(regexp.QuoteMeta("FROM appointments WHERE id = $1")).
		WithArgs(int64(7)).
		WillReturnRows(sqlmock.NewRows(columns).AddRow(appointmentRow(7, "Maria", 840, "confirmed")...))

	appt, err := repo.GetByID(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, "Maria", appt.Stylist)
	assert.Equal(t, "2:00 PM", appt.Time.String())
	assert.Equal(t, domain.StatusConfirmed, appt.Status)
	assert.Nil(t, appt.Notes)
	assert.Nil(t, appt.CancelledAt)
	assert.True(t, domain.SameDate(monday, appt.Date))
}

func TestRepository_GetByID_NotFound(t *testing.T) {
	repo, _, mock := newRepository(t)

	mock.ExpectQuery(regexp.QuoteMeta("FROM appointments WHERE id = $1")).
		WithArgs(int64(404)).
		WillReturnRows(sqlmock.NewRows(columns))

	_, err := repo.GetByID(context.Background(), 404)
	assert.ErrorIs(t, err, ErrAppointmentNotFound)
}

func TestRepository_GetByDate_LocksInsideTransaction(t *testing.T) {
	repo, wrapped, mock := newRepository(t)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("FOR UPDATE")).
		WithArgs("2025-06-02", "cancelled", "no_show").
		WillReturnRows(sqlmock.NewRows(columns).
			AddRow(appointmentRow(1, "Maria", 540, "pending")...).
			AddRow(appointmentRow(2, "John", 600, "confirmed")...))
	mock.ExpectCommit()

	tx, err := wrapped.BeginTx(context.Background(), nil)
	require.NoError(t, err)

	appts, err := repo.GetByDate(dbmetrics.WithTx(context.Background(), tx), monday)
	require.NoError(t, err)
	require.NoError(t, tx.Commit())

	require.Len(t, appts, 2)
	assert.Equal(t, "Maria", appts[0].Stylist)
	assert.Equal(t, "10:00 AM", appts[1].Time.String())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_UpdateSlot(t *testing.T) {
	repo, _, mock := newRepository(t)

	mock.ExpectExec(regexp.QuoteMeta("UPDATE appointments SET stylist = $1, appointment_date = $2, appointment_time = $3, updated_at = NOW() WHERE id = $4")).
		WithArgs("John", "2025-06-03", int64(600), int64(7)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.UpdateSlot(context.Background(), 7, "John", monday.AddDate(0, 0, 1), types.MustParseTimeOfDay("10:00 AM"))
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_UpdateSlot_SlotTaken(t *testing.T) {
	repo, _, mock := newRepository(t)

	mock.ExpectExec(regexp.QuoteMeta("UPDATE appointments")).
		WillReturnError(&pq.Error{Code: uniqueViolation})

	err := repo.UpdateSlot(context.Background(), 7, "John", monday, types.MustParseTimeOfDay("10:00 AM"))
	assert.ErrorIs(t, err, ErrSlotTaken)
}

func TestRepository_Cancel(t *testing.T) {
	repo, _, mock := newRepository(t)

	mock.ExpectExec(regexp.QuoteMeta("UPDATE appointments SET status = $1, cancellation_reason = $2, cancelled_at = NOW()")).
		WithArgs("cancelled", "sick", int64(7)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.Cancel(context.Background(), 7, ptr.Ptr("sick")))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_UpdateStatus_NotFound(t *testing.T) {
	repo, _, mock := newRepository(t)

	mock.ExpectExec(regexp.QuoteMeta("UPDATE appointments SET status = $1")).
		WithArgs("completed", int64(404)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.UpdateStatus(context.Background(), 404, domain.StatusCompleted)
	assert.ErrorIs(t, err, ErrAppointmentNotFound)
}

func TestRepository_GetByDate_SerializationFailureIsRetried(t *testing.T) {
	repo, wrapped, mock := newRepository(t)
	manager := txmanager.NewTransactionManager(wrapped)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("FOR UPDATE")).
		WillReturnError(&pq.Error{Code: "40001"})
	mock.ExpectRollback()
	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("FOR UPDATE")).
		WillReturnRows(sqlmock.NewRows(columns).AddRow(appointmentRow(1, "Maria", 540, "pending")...))
	mock.ExpectCommit()

	attempts := 0
	var got []domain.Appointment
	err := manager.DoSerializable(context.Background(), func(ctx context.Context) error {
		attempts++
		var err error
		got, err = repo.GetByDate(ctx, monday)
		return err
	})

	require.NoError(t, err)
	assert.Equal(t, 2, attempts)
	assert.Len(t, got, 1)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_ErrorsKeepDriverCause(t *testing.T) {
	repo, _, mock := newRepository(t)

	mock.ExpectQuery(regexp.QuoteMeta("FROM appointments")).
		WillReturnError(&pq.Error{Code: "40001"})

	_, err := repo.GetByDate(context.Background(), monday)
	assert.ErrorIs(t, err, ErrExecQuery)
	assert.True(t, txmanager.IsSerializationFailure(err))
}
