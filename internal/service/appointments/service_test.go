package appointments

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	appointmentRepo "github.com/m04kA/SMC-SalonBooking/internal/infra/storage/appointment"
	"github.com/m04kA/SMC-SalonBooking/internal/service/appointments/models"
	"github.com/m04kA/SMC-SalonBooking/pkg/logger"
	"github.com/m04kA/SMC-SalonBooking/pkg/ptr"
	"github.com/m04kA/SMC-SalonBooking/pkg/types"
)

type fakeRepo struct {
	byID       map[int64]*domain.Appointment
	lastFilter domain.AppointmentsFilter
	updateErr  error
	err        error
}

func (f *fakeRepo) GetByID(ctx context.Context, id int64) (*domain.Appointment, error) {
	if f.err != nil {
		return nil, f.err
	}
	appt, ok := f.byID[id]
	if !ok {
		return nil, appointmentRepo.ErrAppointmentNotFound
	}
	copied := *appt
	return &copied, nil
}

func (f *fakeRepo) GetWithFilter(ctx context.Context, filter domain.AppointmentsFilter) ([]*domain.Appointment, error) {
	f.lastFilter = filter
	result := make([]*domain.Appointment, 0, len(f.byID))
	for _, a := range f.byID {
		result = append(result, a)
	}
	return result, f.err
}

func (f *fakeRepo) UpdateStatus(ctx context.Context, id int64, status domain.AppointmentStatus) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	f.byID[id].Status = status
	return nil
}

func (f *fakeRepo) Cancel(ctx context.Context, id int64, reason *string) error {
	f.byID[id].Status = domain.StatusCancelled
	f.byID[id].CancellationReason = reason
	return nil
}

type fakeNotifier struct{ cancelled []int64 }

func (f *fakeNotifier) EnqueueCancellation(ctx context.Context, appt *domain.Appointment) error {
	f.cancelled = append(f.cancelled, appt.ID)
	return nil
}

type fakeTx struct{}

func (fakeTx) Do(ctx context.Context, fn func(ctx context.Context) error) error { return fn(ctx) }

func newService(appts ...*domain.Appointment) (*Service, *fakeRepo, *fakeNotifier) {
	repo := &fakeRepo{byID: map[int64]*domain.Appointment{}}
	for _, a := range appts {
		repo.byID[a.ID] = a
	}
	notifier := &fakeNotifier{}
	return NewService(repo, notifier, fakeTx{}, logger.NewNop()), repo, notifier
}

func appointment(id int64, status domain.AppointmentStatus) *domain.Appointment {
	return &domain.Appointment{
		ID:              id,
		Stylist:         "Maria",
		Date:            time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC),
		Time:            types.MustParseTimeOfDay("2:00 PM"),
		CustomerName:    "Ann",
		CustomerPhone:   "+15550001234",
		Service:         "Haircut",
		DurationMinutes: 60,
		Status:          status,
	}
}

func TestService_GetByID(t *testing.T) {
	svc, _, _ := newService(appointment(1, domain.StatusConfirmed))

	got, err := svc.GetByID(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, "2025-06-02", got.Date)
	assert.Equal(t, "2:00 PM", got.Time)
	assert.Equal(t, "confirmed", got.Status)

	_, err = svc.GetByID(context.Background(), 2)
	assert.ErrorIs(t, err, ErrAppointmentNotFound)
}

func TestService_List(t *testing.T) {
	svc, repo, _ := newService(appointment(1, domain.StatusConfirmed))

	resp, err := svc.List(context.Background(), &models.ListAppointmentsRequest{
		Stylist: ptr.Ptr("Maria"),
		From:    ptr.Ptr("2025-06-01"),
		To:      ptr.Ptr("2025-06-30"),
		Status:  ptr.Ptr("cancelled"),
	})
	require.NoError(t, err)
	assert.Len(t, resp.Appointments, 1)

	require.NotNil(t, repo.lastFilter.StartDate)
	assert.Equal(t, "2025-06-01", repo.lastFilter.StartDate.Format(domain.DateFormat))
	assert.Equal(t, domain.StatusCancelled, *repo.lastFilter.Status)
	assert.True(t, repo.lastFilter.IncludeInactive)
}

func TestService_ListInvalidFilter(t *testing.T) {
	svc, _, _ := newService()

	_, err := svc.List(context.Background(), &models.ListAppointmentsRequest{From: ptr.Ptr("June 1")})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.List(context.Background(), &models.ListAppointmentsRequest{Status: ptr.Ptr("lost")})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.List(context.Background(), &models.ListAppointmentsRequest{
		From: ptr.Ptr("2025-06-30"),
		To:   ptr.Ptr("2025-06-01"),
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestService_Cancel(t *testing.T) {
	svc, repo, notifier := newService(appointment(1, domain.StatusConfirmed))

	resp, err := svc.Cancel(context.Background(), 1, &models.CancelAppointmentRequest{
		CancellationReason: ptr.Ptr("  feeling sick "),
	})
	require.NoError(t, err)

	assert.Equal(t, "cancelled", resp.Status)
	assert.Equal(t, "feeling sick", *resp.CancellationReason)
	assert.NotNil(t, resp.CancelledAt)
	assert.Equal(t, domain.StatusCancelled, repo.byID[1].Status)
	assert.Equal(t, []int64{1}, notifier.cancelled)
}

func TestService_CancelErrors(t *testing.T) {
	svc, _, notifier := newService(appointment(1, domain.StatusCompleted))

	_, err := svc.Cancel(context.Background(), 1, &models.CancelAppointmentRequest{})
	assert.ErrorIs(t, err, ErrCannotCancel)

	_, err = svc.Cancel(context.Background(), 2, &models.CancelAppointmentRequest{})
	assert.ErrorIs(t, err, ErrAppointmentNotFound)

	assert.Empty(t, notifier.cancelled)
}

func TestService_UpdateStatus(t *testing.T) {
	svc, repo, _ := newService(appointment(1, domain.StatusConfirmed))

	resp, err := svc.UpdateStatus(context.Background(), 1, &models.UpdateStatusRequest{Status: "completed"})
	require.NoError(t, err)
	assert.Equal(t, "completed", resp.Status)
	assert.Equal(t, domain.StatusCompleted, repo.byID[1].Status)
}

func TestService_UpdateStatusErrors(t *testing.T) {
	svc, repo, _ := newService(appointment(1, domain.StatusNoShow))

	_, err := svc.UpdateStatus(context.Background(), 1, &models.UpdateStatusRequest{Status: "lost"})
	assert.ErrorIs(t, err, ErrInvalidStatus)

	_, err = svc.UpdateStatus(context.Background(), 1, &models.UpdateStatusRequest{Status: "cancelled"})
	assert.ErrorIs(t, err, ErrInvalidStatus)

	_, err = svc.UpdateStatus(context.Background(), 9, &models.UpdateStatusRequest{Status: "confirmed"})
	assert.ErrorIs(t, err, ErrAppointmentNotFound)

	repo.updateErr = appointmentRepo.ErrSlotTaken
	_, err = svc.UpdateStatus(context.Background(), 1, &models.UpdateStatusRequest{Status: "confirmed"})
	assert.ErrorIs(t, err, ErrSlotNotAvailable)

	repo.updateErr = errors.New("db down")
	_, err = svc.UpdateStatus(context.Background(), 1, &models.UpdateStatusRequest{Status: "confirmed"})
	assert.ErrorIs(t, err, ErrInternal)
}
