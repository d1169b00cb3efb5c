package reports

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/internal/service/reports/models"
	"github.com/m04kA/SMC-SalonBooking/pkg/logger"
	"github.com/m04kA/SMC-SalonBooking/pkg/types"
)

type fakeRepo struct {
	appts      []*domain.Appointment
	lastFilter domain.AppointmentsFilter
	err        error
}

func (f *fakeRepo) GetWithFilter(ctx context.Context, filter domain.AppointmentsFilter) ([]*domain.Appointment, error) {
	f.lastFilter = filter
	return f.appts, f.err
}

func appt(id int64, stylist, service, at string, status domain.AppointmentStatus) *domain.Appointment {
	return &domain.Appointment{
		ID:              id,
		Stylist:         stylist,
		Date:            time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC),
		Time:            types.MustParseTimeOfDay(at),
		CustomerName:    "Ann",
		CustomerPhone:   "+15550001234",
		Service:         service,
		DurationMinutes: 60,
		Status:          status,
	}
}

func sampleRepo() *fakeRepo {
	return &fakeRepo{appts: []*domain.Appointment{
		appt(1, "Maria", "Haircut", "9:00 AM", domain.StatusCompleted),
		appt(2, "Maria", "Coloring", "11:00 AM", domain.StatusCancelled),
		appt(3, "Anna", "Haircut", "10:00 AM", domain.StatusConfirmed),
		appt(4, "Anna", "Haircut", "2:00 PM", domain.StatusNoShow),
	}}
}

func TestService_Summary(t *testing.T) {
	repo := sampleRepo()
	svc := NewService(repo, logger.NewNop())

	resp, err := svc.Summary(context.Background(), &models.PeriodRequest{From: "2025-06-01", To: "2025-06-30"})
	require.NoError(t, err)

	assert.Equal(t, 4, resp.Total)
	assert.Equal(t, 1, resp.ByStatus["completed"])
	assert.Equal(t, 1, resp.ByStatus["cancelled"])
	assert.Equal(t, []models.ServiceSummary{{Service: "Haircut", Total: 3}, {Service: "Coloring", Total: 1}}, resp.ByService)

	require.Len(t, resp.ByStylist, 2)
	assert.Equal(t, "Anna", resp.ByStylist[0].Stylist)
	assert.Equal(t, 1, resp.ByStylist[0].NoShow)
	assert.Equal(t, 60, resp.ByStylist[0].BookedMinutes)
	assert.Equal(t, "Maria", resp.ByStylist[1].Stylist)
	assert.InDelta(t, 0.5, resp.ByStylist[1].CompletionRate, 1e-9)

	assert.True(t, repo.lastFilter.IncludeInactive)
	assert.Equal(t, "2025-06-30", repo.lastFilter.EndDate.Format(domain.DateFormat))
}

func TestService_InvalidPeriod(t *testing.T) {
	svc := NewService(sampleRepo(), logger.NewNop())

	periods := []models.PeriodRequest{
		{From: "", To: "2025-06-30"},
		{From: "2025-06-01", To: "30.06.2025"},
		{From: "2025-06-30", To: "2025-06-01"},
		{From: "2024-01-01", To: "2025-06-01"},
	}
	for _, p := range periods {
		_, err := svc.Summary(context.Background(), &p)
		assert.ErrorIs(t, err, ErrInvalidPeriod, "%+v", p)
	}
}

func TestService_RepositoryError(t *testing.T) {
	repo := sampleRepo()
	repo.err = errors.New("db down")
	svc := NewService(repo, logger.NewNop())

	_, _, err := svc.ExportXLSX(context.Background(), &models.PeriodRequest{From: "2025-06-01", To: "2025-06-30"})
	assert.ErrorIs(t, err, ErrInternal)
}

func TestService_ExportXLSX(t *testing.T) {
	svc := NewService(sampleRepo(), logger.NewNop())

	buf, filename, err := svc.ExportXLSX(context.Background(), &models.PeriodRequest{From: "2025-06-01", To: "2025-06-30"})
	require.NoError(t, err)
	assert.Equal(t, "appointments_2025-06-01_2025-06-30.xlsx", filename)

	f, err := excelize.OpenReader(buf)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{sheetSummary, sheetAppointments}, f.GetSheetList())

	total, err := f.GetCellValue(sheetSummary, "B2")
	require.NoError(t, err)
	assert.Equal(t, "4", total)

	rows, err := f.GetRows(sheetAppointments)
	require.NoError(t, err)
	require.Len(t, rows, 5)
	assert.Equal(t, "ID", rows[0][0])
	// Сортировка по дате и времени
	assert.Equal(t, []string{"9:00 AM", "10:00 AM", "11:00 AM", "2:00 PM"},
		[]string{rows[1][2], rows[2][2], rows[3][2], rows[4][2]})
	assert.Equal(t, "Anna", rows[2][3])
}
