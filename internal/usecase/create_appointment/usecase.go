package create_appointment

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/m04kA/SMC-SalonBooking/internal/availability"
	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/internal/infra/lock"
	appointmentRepo "github.com/m04kA/SMC-SalonBooking/internal/infra/storage/appointment"
	"github.com/m04kA/SMC-SalonBooking/pkg/txmanager"
	"github.com/m04kA/SMC-SalonBooking/pkg/types"
)

// MetricsOperation метка операции в метриках конфликтов
const MetricsOperation = "create"

// UseCase use case для создания записи к мастеру
type UseCase struct {
	scheduleRepo    ScheduleRepository
	appointmentRepo AppointmentRepository
	locker          SlotLocker
	notifier        Notifier
	txManager       TransactionManager
	policy          domain.BookingPolicy
	defaultDuration int
	metrics         Metrics
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	scheduleRepo ScheduleRepository,
	appointmentRepo AppointmentRepository,
	locker SlotLocker,
	notifier Notifier,
	txManager TransactionManager,
	policy domain.BookingPolicy,
	defaultDuration int,
	metrics Metrics,
	logger Logger,
) *UseCase {
	if defaultDuration <= 0 {
		defaultDuration = domain.DefaultDurationMinutes
	}
	return &UseCase{
		scheduleRepo:    scheduleRepo,
		appointmentRepo: appointmentRepo,
		locker:          locker,
		notifier:        notifier,
		txManager:       txManager,
		policy:          policy,
		defaultDuration: defaultDuration,
		metrics:         metrics,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute выполняет use case создания записи.
// Слот перепроверяется движком доступности внутри сериализуемой транзакции.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*domain.Appointment, error) {
	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateAppointment: validation failed: %v", err)
		return nil, err
	}

	uc.logger.Info("CreateAppointment: stylist=%q, date=%s, time=%s, service=%q",
		req.Stylist, req.Date.Format(domain.DateFormat), req.Time, req.Service)

	// 2. Проверяем ограничения бронирования
	now := uc.timeProvider.Now()
	date := uc.policy.SalonDate(req.Date)

	if uc.policy.IsPastDate(date, now) {
		uc.logger.Warn("CreateAppointment: date %s is in the past", date.Format(domain.DateFormat))
		return nil, ErrInvalidDate
	}
	if uc.policy.IsTooFar(date, now) {
		uc.logger.Warn("CreateAppointment: date %s is beyond %d days", date.Format(domain.DateFormat), uc.policy.AdvanceBookingDays)
		return nil, fmt.Errorf("%w: can only book %d days in advance", ErrDateTooFarInFuture, uc.policy.AdvanceBookingDays)
	}
	if !uc.policy.AllowsTime(date, req.Time, now) {
		uc.logger.Warn("CreateAppointment: %s is earlier than now + %d minutes", req.Time, uc.policy.MinNoticeMinutes)
		return nil, fmt.Errorf("%w: must book at least %d minutes in advance", ErrTooLateToBook, uc.policy.MinNoticeMinutes)
	}

	// 3. Определяем кандидатов: конкретный мастер или все свободные по алфавиту
	anyAvailable := req.Stylist == domain.AnyAvailable
	candidates := []string{req.Stylist}
	if anyAvailable {
		var err error
		candidates, err = uc.freeStylists(ctx, date, req)
		if err != nil {
			return nil, err
		}
		if len(candidates) == 0 {
			uc.logger.Warn("CreateAppointment: no stylist is free on %s at %s", date.Format(domain.DateFormat), req.Time)
			uc.metrics.IncConflict(MetricsOperation)
			return nil, ErrSlotNotAvailable
		}
	}

	// 4. Пробуем записать к кандидатам по очереди
	var created *domain.Appointment
	for _, stylist := range candidates {
		appt, err := uc.book(ctx, req, stylist, date)
		if err == nil {
			created = appt
			break
		}
		if anyAvailable && errors.Is(err, ErrSlotNotAvailable) {
			uc.logger.Info("CreateAppointment: stylist=%q was taken concurrently, trying next", stylist)
			continue
		}
		return nil, err
	}
	if created == nil {
		return nil, ErrSlotNotAvailable
	}

	uc.metrics.IncAppointmentCreated(anyAvailable)
	uc.logger.Info("CreateAppointment: created appointment id=%d with stylist=%q", created.ID, created.Stylist)

	// 5. Уведомления после коммита; ошибка очереди не отменяет запись
	if err := uc.notifier.EnqueueConfirmation(ctx, created); err != nil {
		uc.logger.Error("CreateAppointment: failed to enqueue confirmation for id=%d: %v", created.ID, err)
	}
	if err := uc.notifier.EnqueueReminder(ctx, created); err != nil {
		uc.logger.Error("CreateAppointment: failed to enqueue reminder for id=%d: %v", created.ID, err)
	}

	return created, nil
}

// freeStylists возвращает мастеров, свободных в запрошенный слот, по алфавиту
func (uc *UseCase) freeStylists(ctx context.Context, date time.Time, req *Request) ([]string, error) {
	schedules, err := uc.scheduleRepo.GetAll(ctx)
	if err != nil {
		uc.logger.Error("CreateAppointment: failed to get schedules: %v", err)
		return nil, fmt.Errorf("%w: failed to get schedules: %w", ErrInternal, err)
	}

	appointments, err := uc.appointmentRepo.GetByDate(ctx, date)
	if err != nil {
		uc.logger.Error("CreateAppointment: failed to get appointments: %v", err)
		return nil, fmt.Errorf("%w: failed to get appointments: %w", ErrInternal, err)
	}

	stylists := availability.AvailableStylists(date, req.Time, schedules, appointments)
	sort.Strings(stylists)
	return stylists, nil
}

// book захватывает слот и создаёт запись к мастеру в сериализуемой транзакции
func (uc *UseCase) book(ctx context.Context, req *Request, stylist string, date time.Time) (*domain.Appointment, error) {
	// 1. Кратковременная блокировка слота
	release, err := uc.locker.Acquire(ctx, stylist, date, req.Time)
	switch {
	case errors.Is(err, lock.ErrSlotLocked):
		uc.logger.Warn("CreateAppointment: slot %s %s of stylist=%q is held by another request",
			date.Format(domain.DateFormat), req.Time, stylist)
		uc.metrics.IncConflict(MetricsOperation)
		return nil, ErrSlotNotAvailable
	case err != nil:
		// Без Redis полагаемся на транзакцию и уникальный индекс
		uc.logger.Warn("CreateAppointment: slot lock unavailable, continuing without it: %v", err)
	default:
		defer func() {
			if err := release(context.WithoutCancel(ctx)); err != nil {
				uc.logger.Warn("CreateAppointment: failed to release slot lock: %v", err)
			}
		}()
	}

	var result *domain.Appointment

	// 2. Перепроверяем слот и создаём запись в одной транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		schedules, err := uc.scheduleRepo.GetAll(txCtx)
		if err != nil {
			uc.logger.Error("CreateAppointment: failed to get schedules: %v", err)
			return fmt.Errorf("%w: failed to get schedules: %w", ErrInternal, err)
		}

		if !hasSchedule(schedules, stylist) {
			uc.logger.Warn("CreateAppointment: stylist=%q has no schedule", stylist)
			return ErrStylistNotFound
		}

		appointments, err := uc.appointmentRepo.GetByDate(txCtx, date)
		if err != nil {
			uc.logger.Error("CreateAppointment: failed to get appointments: %v", err)
			return fmt.Errorf("%w: failed to get appointments: %w", ErrInternal, err)
		}

		slots := availability.AvailableTimeSlots(date, stylist, schedules, appointments)
		if !containsSlot(slots, req.Time) {
			uc.logger.Warn("CreateAppointment: %s %s is not available for stylist=%q",
				date.Format(domain.DateFormat), req.Time, stylist)
			uc.metrics.IncConflict(MetricsOperation)
			return ErrSlotNotAvailable
		}

		duration := req.DurationMinutes
		if duration == 0 {
			duration = uc.defaultDuration
		}

		created, err := uc.appointmentRepo.Create(txCtx, &domain.Appointment{
			Stylist:         stylist,
			Date:            date,
			Time:            req.Time,
			CustomerName:    req.CustomerName,
			CustomerPhone:   req.CustomerPhone,
			Service:         req.Service,
			DurationMinutes: duration,
			Status:          domain.StatusConfirmed,
			Notes:           req.Notes,
		})
		if err != nil {
			if errors.Is(err, appointmentRepo.ErrSlotTaken) {
				uc.logger.Warn("CreateAppointment: slot taken by a concurrent request for stylist=%q", stylist)
				uc.metrics.IncConflict(MetricsOperation)
				return ErrSlotNotAvailable
			}
			uc.logger.Error("CreateAppointment: failed to create appointment: %v", err)
			return fmt.Errorf("%w: failed to create appointment: %w", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		// Конфликт сериализации мог прийти как из COMMIT, так и из запроса внутри транзакции
		if txmanager.IsSerializationFailure(err) {
			uc.logger.Warn("CreateAppointment: serialization conflict for stylist=%q: %v", stylist, err)
			uc.metrics.IncConflict(MetricsOperation)
			return nil, ErrSlotNotAvailable
		}
		if errors.Is(err, ErrSlotNotAvailable) || errors.Is(err, ErrStylistNotFound) || errors.Is(err, ErrInternal) {
			return nil, err
		}
		uc.logger.Error("CreateAppointment: transaction failed: %v", err)
		return nil, fmt.Errorf("%w: transaction failed: %w", ErrInternal, err)
	}

	return result, nil
}

func hasSchedule(schedules []domain.StaffSchedule, stylist string) bool {
	for i := range schedules {
		if schedules[i].StylistName == stylist {
			return true
		}
	}
	return false
}

func containsSlot(slots []types.TimeOfDay, at types.TimeOfDay) bool {
	for _, slot := range slots {
		if slot.Equal(at) {
			return true
		}
	}
	return false
}
