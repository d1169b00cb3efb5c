package get_available_slots

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/m04kA/SMC-SalonBooking/internal/availability"
	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/pkg/types"
)

// MetricsQuery метка запроса в метриках доступности
const MetricsQuery = "slots"

// UseCase use case получения свободных слотов мастера на дату
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

// Execute выполняет use case получения свободных слотов.
// Отсутствие свободного времени - пустой список, а не ошибка.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	uc.logger.Info("GetAvailableSlots: stylist=%q, date=%s", req.Stylist, req.Date.Format(domain.DateFormat))

	now := uc.timeProvider.Now()
	resp := &Response{Date: req.Date, Stylist: req.Stylist, Slots: []types.TimeOfDay{}}

	// 2. Прошедшая дата - свободных слотов нет
	if uc.policy.IsPastDate(req.Date, now) {
		uc.logger.Info("GetAvailableSlots: date %s is in the past", req.Date.Format(domain.DateFormat))
		uc.metrics.ObserveAvailability(MetricsQuery, 0)
		return resp, nil
	}

	// 3. Ограничение на запись вперёд
	if uc.policy.IsTooFar(req.Date, now) {
		uc.logger.Warn("GetAvailableSlots: date %s is beyond %d days", req.Date.Format(domain.DateFormat), uc.policy.AdvanceBookingDays)
		return nil, fmt.Errorf("%w: can only book %d days in advance", ErrDateTooFarInFuture, uc.policy.AdvanceBookingDays)
	}

	// 4. Загружаем расписания и записи на дату
	schedules, err := uc.scheduleRepo.GetAll(ctx)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get schedules: %v", err)
		return nil, fmt.Errorf("%w: failed to get schedules: %w", ErrInternal, err)
	}

	appointments, err := uc.appointmentRepo.GetByDate(ctx, req.Date)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get appointments: %v", err)
		return nil, fmt.Errorf("%w: failed to get appointments: %w", ErrInternal, err)
	}

	// 5. Вычисляем слоты: для "Any Available" объединяем слоты всех мастеров
	var slots []types.TimeOfDay
	if req.Stylist == domain.AnyAvailable {
		slots = unionSlots(req.Date, schedules, appointments)
	} else {
		slots = availability.AvailableTimeSlots(req.Date, req.Stylist, schedules, appointments)
	}

	// 6. На сегодня отбрасываем слоты раньше now + min_notice
	resp.Slots = uc.policy.FilterSlots(req.Date, slots, now)

	uc.metrics.ObserveAvailability(MetricsQuery, len(resp.Slots))
	uc.logger.Info("GetAvailableSlots: %d slots for stylist=%q on %s",
		len(resp.Slots), req.Stylist, req.Date.Format(domain.DateFormat))

	return resp, nil
}

// unionSlots объединяет свободные слоты всех мастеров без повторов, по возрастанию
func unionSlots(date time.Time, schedules []domain.StaffSchedule, appointments []domain.Appointment) []types.TimeOfDay {
	seen := make(map[int]struct{})
	union := make([]types.TimeOfDay, 0)

	for i := range schedules {
		for _, slot := range availability.AvailableTimeSlots(date, schedules[i].StylistName, schedules, appointments) {
			if _, dup := seen[slot.Minutes()]; dup {
				continue
			}
			seen[slot.Minutes()] = struct{}{}
			union = append(union, slot)
		}
	}

	sort.Slice(union, func(i, j int) bool { return union[i].Before(union[j]) })
	return union
}
