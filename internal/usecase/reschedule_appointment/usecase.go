package reschedule_appointment

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
const MetricsOperation = "reschedule"

// UseCase use case для переноса записи на другой слот
type UseCase struct {
	scheduleRepo    ScheduleRepository
	appointmentRepo AppointmentRepository
	locker          SlotLocker
	notifier        Notifier
	txManager       TransactionManager
	policy          domain.BookingPolicy
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
	metrics Metrics,
	logger Logger,
) *UseCase {
	return &UseCase{
		scheduleRepo:    scheduleRepo,
		appointmentRepo: appointmentRepo,
		locker:          locker,
		notifier:        notifier,
		txManager:       txManager,
		policy:          policy,
		metrics:         metrics,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute переносит запись на новые мастер/дату/время.
// Сама переносимая запись не считается занятым слотом при перепроверке.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*domain.Appointment, error) {
	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("RescheduleAppointment: validation failed: %v", err)
		return nil, err
	}

	// 2. Загружаем текущую запись
	current, err := uc.appointmentRepo.GetByID(ctx, req.AppointmentID)
	if err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			uc.logger.Warn("RescheduleAppointment: appointment id=%d not found", req.AppointmentID)
			return nil, ErrAppointmentNotFound
		}
		uc.logger.Error("RescheduleAppointment: failed to get appointment id=%d: %v", req.AppointmentID, err)
		return nil, fmt.Errorf("%w: failed to get appointment: %w", ErrInternal, err)
	}

	if !current.CanBeRescheduled() {
		uc.logger.Warn("RescheduleAppointment: appointment id=%d cannot be rescheduled, status=%s",
			current.ID, current.Status)
		return nil, ErrCannotReschedule
	}

	stylist := req.Stylist
	if stylist == "" {
		stylist = current.Stylist
	}

	uc.logger.Info("RescheduleAppointment: id=%d from %s %s (%s) to %s %s (%s)",
		current.ID, current.Date.Format(domain.DateFormat), current.Time, current.Stylist,
		req.Date.Format(domain.DateFormat), req.Time, stylist)

	// 3. Проверяем ограничения бронирования
	now := uc.timeProvider.Now()
	date := uc.policy.SalonDate(req.Date)

	if uc.policy.IsPastDate(date, now) {
		uc.logger.Warn("RescheduleAppointment: date %s is in the past", date.Format(domain.DateFormat))
		return nil, ErrInvalidDate
	}
	if uc.policy.IsTooFar(date, now) {
		uc.logger.Warn("RescheduleAppointment: date %s is beyond %d days", date.Format(domain.DateFormat), uc.policy.AdvanceBookingDays)
		return nil, fmt.Errorf("%w: can only book %d days in advance", ErrDateTooFarInFuture, uc.policy.AdvanceBookingDays)
	}
	if !uc.policy.AllowsTime(date, req.Time, now) {
		uc.logger.Warn("RescheduleAppointment: %s is earlier than now + %d minutes", req.Time, uc.policy.MinNoticeMinutes)
		return nil, fmt.Errorf("%w: must book at least %d minutes in advance", ErrTooLateToBook, uc.policy.MinNoticeMinutes)
	}

	// Перенос в тот же слот ничего не меняет
	if stylist == current.Stylist && domain.SameDate(date, current.Date) && req.Time.Equal(current.Time) {
		uc.logger.Info("RescheduleAppointment: id=%d already occupies the requested slot", current.ID)
		return current, nil
	}

	// 4. Кандидаты: конкретный мастер или все свободные по алфавиту
	anyAvailable := stylist == domain.AnyAvailable
	candidates := []string{stylist}
	if anyAvailable {
		candidates, err = uc.freeStylists(ctx, current.ID, date, req.Time)
		if err != nil {
			return nil, err
		}
		if len(candidates) == 0 {
			uc.logger.Warn("RescheduleAppointment: no stylist is free on %s at %s", date.Format(domain.DateFormat), req.Time)
			uc.metrics.IncConflict(MetricsOperation)
			return nil, ErrSlotNotAvailable
		}
	}

	// 5. Переносим к первому кандидату, для которого слот удалось занять
	var moved *domain.Appointment
	for _, candidate := range candidates {
		appt, err := uc.move(ctx, current.ID, candidate, date, req.Time)
		if err == nil {
			moved = appt
			break
		}
		if anyAvailable && errors.Is(err, ErrSlotNotAvailable) {
			uc.logger.Info("RescheduleAppointment: stylist=%q was taken concurrently, trying next", candidate)
			continue
		}
		return nil, err
	}
	if moved == nil {
		return nil, ErrSlotNotAvailable
	}

	uc.logger.Info("RescheduleAppointment: moved appointment id=%d to %s %s with stylist=%q",
		moved.ID, moved.Date.Format(domain.DateFormat), moved.Time, moved.Stylist)

	// 6. Новые уведомления; напоминание о старом слоте воркер пропустит
	if err := uc.notifier.EnqueueConfirmation(ctx, moved); err != nil {
		uc.logger.Error("RescheduleAppointment: failed to enqueue confirmation for id=%d: %v", moved.ID, err)
	}
	if err := uc.notifier.EnqueueReminder(ctx, moved); err != nil {
		uc.logger.Error("RescheduleAppointment: failed to enqueue reminder for id=%d: %v", moved.ID, err)
	}

	return moved, nil
}

// freeStylists возвращает мастеров, свободных в слот, без учёта переносимой записи
func (uc *UseCase) freeStylists(ctx context.Context, appointmentID int64, date time.Time, at types.TimeOfDay) ([]string, error) {
	schedules, err := uc.scheduleRepo.GetAll(ctx)
	if err != nil {
		uc.logger.Error("RescheduleAppointment: failed to get schedules: %v", err)
		return nil, fmt.Errorf("%w: failed to get schedules: %w", ErrInternal, err)
	}

	appointments, err := uc.appointmentRepo.GetByDate(ctx, date)
	if err != nil {
		uc.logger.Error("RescheduleAppointment: failed to get appointments: %v", err)
		return nil, fmt.Errorf("%w: failed to get appointments: %w", ErrInternal, err)
	}

	stylists := availability.AvailableStylists(date, at, schedules, excludeAppointment(appointments, appointmentID))
	sort.Strings(stylists)
	return stylists, nil
}

// move захватывает новый слот и переносит запись в сериализуемой транзакции
func (uc *UseCase) move(ctx context.Context, id int64, stylist string, date time.Time, at types.TimeOfDay) (*domain.Appointment, error) {
	// 1. Кратковременная блокировка нового слота
	release, err := uc.locker.Acquire(ctx, stylist, date, at)
	switch {
	case errors.Is(err, lock.ErrSlotLocked):
		uc.logger.Warn("RescheduleAppointment: slot %s %s of stylist=%q is held by another request",
			date.Format(domain.DateFormat), at, stylist)
		uc.metrics.IncConflict(MetricsOperation)
		return nil, ErrSlotNotAvailable
	case err != nil:
		uc.logger.Warn("RescheduleAppointment: slot lock unavailable, continuing without it: %v", err)
	default:
		defer func() {
			if err := release(context.WithoutCancel(ctx)); err != nil {
				uc.logger.Warn("RescheduleAppointment: failed to release slot lock: %v", err)
			}
		}()
	}

	var result *domain.Appointment

	// 2. Блокируем запись, перепроверяем слот и переносим
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		appt, err := uc.appointmentRepo.GetByID(txCtx, id)
		if err != nil {
			if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
				return ErrAppointmentNotFound
			}
			uc.logger.Error("RescheduleAppointment: failed to get appointment id=%d: %v", id, err)
			return fmt.Errorf("%w: failed to get appointment: %w", ErrInternal, err)
		}

		// Статус мог измениться после первой проверки
		if !appt.CanBeRescheduled() {
			uc.logger.Warn("RescheduleAppointment: appointment id=%d changed status to %s", id, appt.Status)
			return ErrCannotReschedule
		}

		schedules, err := uc.scheduleRepo.GetAll(txCtx)
		if err != nil {
			uc.logger.Error("RescheduleAppointment: failed to get schedules: %v", err)
			return fmt.Errorf("%w: failed to get schedules: %w", ErrInternal, err)
		}

		if !hasSchedule(schedules, stylist) {
			uc.logger.Warn("RescheduleAppointment: stylist=%q has no schedule", stylist)
			return ErrStylistNotFound
		}

		appointments, err := uc.appointmentRepo.GetByDate(txCtx, date)
		if err != nil {
			uc.logger.Error("RescheduleAppointment: failed to get appointments: %v", err)
			return fmt.Errorf("%w: failed to get appointments: %w", ErrInternal, err)
		}

		slots := availability.AvailableTimeSlots(date, stylist, schedules, excludeAppointment(appointments, id))
		if !containsSlot(slots, at) {
			uc.logger.Warn("RescheduleAppointment: %s %s is not available for stylist=%q",
				date.Format(domain.DateFormat), at, stylist)
			uc.metrics.IncConflict(MetricsOperation)
			return ErrSlotNotAvailable
		}

		if err := uc.appointmentRepo.UpdateSlot(txCtx, id, stylist, date, at); err != nil {
			switch {
			case errors.Is(err, appointmentRepo.ErrSlotTaken):
				uc.logger.Warn("RescheduleAppointment: slot taken by a concurrent request for stylist=%q", stylist)
				uc.metrics.IncConflict(MetricsOperation)
				return ErrSlotNotAvailable
			case errors.Is(err, appointmentRepo.ErrAppointmentNotFound):
				return ErrAppointmentNotFound
			}
			uc.logger.Error("RescheduleAppointment: failed to update appointment id=%d: %v", id, err)
			return fmt.Errorf("%w: failed to update appointment: %w", ErrInternal, err)
		}

		appt.Stylist = stylist
		appt.Date = date
		appt.Time = at
		result = appt
		return nil
	})

	if err != nil {
		switch {
		case txmanager.IsSerializationFailure(err):
			uc.logger.Warn("RescheduleAppointment: serialization conflict for stylist=%q: %v", stylist, err)
			uc.metrics.IncConflict(MetricsOperation)
			return nil, ErrSlotNotAvailable
		case errors.Is(err, ErrSlotNotAvailable),
			errors.Is(err, ErrStylistNotFound),
			errors.Is(err, ErrAppointmentNotFound),
			errors.Is(err, ErrCannotReschedule),
			errors.Is(err, ErrInternal):
			return nil, err
		}
		uc.logger.Error("RescheduleAppointment: transaction failed: %v", err)
		return nil, fmt.Errorf("%w: transaction failed: %w", ErrInternal, err)
	}

	return result, nil
}

// excludeAppointment возвращает копию списка без записи с указанным ID
func excludeAppointment(appointments []domain.Appointment, id int64) []domain.Appointment {
	result := make([]domain.Appointment, 0, len(appointments))
	for _, appt := range appointments {
		if appt.ID == id {
			continue
		}
		result = append(result, appt)
	}
	return result
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
