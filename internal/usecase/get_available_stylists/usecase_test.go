package get_available_stylists

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/pkg/logger"
	"github.com/m04kA/SMC-SalonBooking/pkg/types"
)

var monday = time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)

type fakeSchedules struct {
	schedules []domain.StaffSchedule
	err       error
}

func (f *fakeSchedules) GetAll(ctx context.Context) ([]domain.StaffSchedule, error) {
	return f.schedules, f.err
}

type fakeAppointments struct {
	appointments []domain.Appointment
	err          error
}

func (f *fakeAppointments) GetByDate(ctx context.Context, date time.Time) ([]domain.Appointment, error) {
	return f.appointments, f.err
}

type nopMetrics struct{}

func (nopMetrics) ObserveAvailability(query string, returned int) {}

type fixedTime struct{ now time.Time }

func (f fixedTime) Now() time.Time { return f.now }

func tod(s string) types.TimeOfDay { return types.MustParseTimeOfDay(s) }

func schedule(name, start, end string, breaks ...domain.BreakTime) domain.StaffSchedule {
	return domain.StaffSchedule{
		StylistName: name,
		WorkingHours: map[string]domain.WorkingDay{
			"Monday": {IsWorking: true, StartTime: tod(start), EndTime: tod(end)},
		},
		BreakTimes: breaks,
	}
}

func newUseCase(now time.Time, policy domain.BookingPolicy, schedules *fakeSchedules, appts *fakeAppointments) *UseCase {
	uc := NewUseCase(schedules, appts, policy, nopMetrics{}, logger.NewNop())
	uc.timeProvider = fixedTime{now: now}
	return uc
}

func TestExecute_SortedByName(t *testing.T) {
	schedules := &fakeSchedules{schedules: []domain.StaffSchedule{
		schedule("Zoe", "9:00 AM", "6:00 PM"),
		schedule("Maria", "9:00 AM", "6:00 PM"),
		schedule("John", "9:00 AM", "6:00 PM", domain.BreakTime{StartTime: tod("1:00 PM"), EndTime: tod("2:00 PM")}),
		schedule("Anna", "9:00 AM", "6:00 PM"),
	}}
	appts := &fakeAppointments{appointments: []domain.Appointment{
		{Stylist: "Anna", Date: monday, Time: tod("2:00 PM")},
	}}
	uc := newUseCase(monday.AddDate(0, 0, -1), domain.BookingPolicy{}, schedules, appts)

	resp, err := uc.Execute(context.Background(), &Request{Date: monday, Time: tod("2:00 PM")})
	require.NoError(t, err)
	assert.Equal(t, []string{"Maria", "Zoe"}, resp.Stylists)
}

func TestExecute_NobodyFreeIsEmptyList(t *testing.T) {
	schedules := &fakeSchedules{schedules: []domain.StaffSchedule{schedule("Maria", "9:00 AM", "6:00 PM")}}
	uc := newUseCase(monday.AddDate(0, 0, -1), domain.BookingPolicy{}, schedules, &fakeAppointments{})

	resp, err := uc.Execute(context.Background(), &Request{Date: monday, Time: tod("6:00 PM")})
	require.NoError(t, err)
	assert.NotNil(t, resp.Stylists)
	assert.Empty(t, resp.Stylists)
}

func TestExecute_PastTimeToday(t *testing.T) {
	schedules := &fakeSchedules{err: errors.New("must not be called")}
	uc := newUseCase(monday.Add(15*time.Hour), domain.BookingPolicy{}, schedules, &fakeAppointments{})

	resp, err := uc.Execute(context.Background(), &Request{Date: monday, Time: tod("2:00 PM")})
	require.NoError(t, err)
	assert.Empty(t, resp.Stylists)
}

func TestExecute_Errors(t *testing.T) {
	now := monday.AddDate(0, 0, -1)

	uc := newUseCase(now, domain.BookingPolicy{}, &fakeSchedules{}, &fakeAppointments{})
	_, err := uc.Execute(context.Background(), &Request{Date: monday})
	assert.ErrorIs(t, err, ErrInvalidInput)

	uc = newUseCase(now.AddDate(0, 0, -30), domain.BookingPolicy{AdvanceBookingDays: 14}, &fakeSchedules{}, &fakeAppointments{})
	_, err = uc.Execute(context.Background(), &Request{Date: monday, Time: tod("2:00 PM")})
	assert.ErrorIs(t, err, ErrDateTooFarInFuture)

	uc = newUseCase(now, domain.BookingPolicy{}, &fakeSchedules{}, &fakeAppointments{err: errors.New("db down")})
	_, err = uc.Execute(context.Background(), &Request{Date: monday, Time: tod("2:00 PM")})
	assert.ErrorIs(t, err, ErrInternal)
}
