package get_available_stylists

import (
	"context"
	"fmt"
	"sort"

	"github.com/m04kA/SMC-SalonBooking/internal/availability"
	"github.com/m04kA/SMC-SalonBooking/internal/domain"
)

// MetricsQuery метка запроса в метриках доступности
const MetricsQuery = "stylists"

// UseCase use case получения мастеров, свободных в указанные дату и время
type UseCase struct {
	scheduleRepo    ScheduleRepository
	appointmentRepo AppointmentRepository
	policy          domain.BookingPolicy
	metrics         Metrics
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	scheduleRepo ScheduleRepository,
	appointmentRepo AppointmentRepository,
	policy domain.BookingPolicy,
	metrics Metrics,
	logger Logger,
) *UseCase {
	return &UseCase{
		scheduleRepo:    scheduleRepo,
		appointmentRepo: appointmentRepo,
		policy:          policy,
		metrics:         metrics,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute выполняет use case
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	// 1. Валидация входных данных
	if req.Date.IsZero() {
		return nil, fmt.Errorf("%w: date is required", ErrInvalidInput)
	}
	if req.Time.IsZero() {
		return nil, fmt.Errorf("%w: time is required", ErrInvalidInput)
	}

	uc.logger.Info("GetAvailableStylists: date=%s, time=%s", req.Date.Format(domain.DateFormat), req.Time)

	now := uc.timeProvider.Now()
	resp := &Response{Date: req.Date, Time: req.Time, Stylists: []string{}}

	// 2. Ограничение на запись вперёд
	if uc.policy.IsTooFar(req.Date, now) {
		uc.logger.Warn("GetAvailableStylists: date %s is beyond %d days", req.Date.Format(domain.DateFormat), uc.policy.AdvanceBookingDays)
		return nil, fmt.Errorf("%w: can only book %d days in advance", ErrDateTooFarInFuture, uc.policy.AdvanceBookingDays)
	}

	// 3. Прошедшее время или слишком близко к текущему - свободных мастеров нет
	if !uc.policy.AllowsTime(req.Date, req.Time, now) {
		uc.logger.Info("GetAvailableStylists: %s %s is no longer bookable", req.Date.Format(domain.DateFormat), req.Time)
		uc.metrics.ObserveAvailability(MetricsQuery, 0)
		return resp, nil
	}

	// 4. Загружаем расписания и записи на дату
	schedules, err := uc.scheduleRepo.GetAll(ctx)
	if err != nil {
		uc.logger.Error("GetAvailableStylists: failed to get schedules: %v", err)
		return nil, fmt.Errorf("%w: failed to get schedules: %w", ErrInternal, err)
	}

	appointments, err := uc.appointmentRepo.GetByDate(ctx, req.Date)
	if err != nil {
		uc.logger.Error("GetAvailableStylists: failed to get appointments: %v", err)
		return nil, fmt.Errorf("%w: failed to get appointments: %w", ErrInternal, err)
	}

	// 5. Обратный запрос к движку, имена по алфавиту
	stylists := availability.AvailableStylists(req.Date, req.Time, schedules, appointments)
	sort.Strings(stylists)
	resp.Stylists = stylists

	uc.metrics.ObserveAvailability(MetricsQuery, len(stylists))
	uc.logger.Info("GetAvailableStylists: %d stylists free on %s at %s",
		len(stylists), req.Date.Format(domain.DateFormat), req.Time)

	return resp, nil
}
