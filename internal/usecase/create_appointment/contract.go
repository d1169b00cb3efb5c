package create_appointment

import (
	"context"
	"time"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/internal/infra/lock"
	"github.com/m04kA/SMC-SalonBooking/pkg/types"
)

// ScheduleRepository интерфейс репозитория расписаний
type ScheduleRepository interface {
	GetAll(ctx context.Context) ([]domain.StaffSchedule, error)
}

// AppointmentRepository интерфейс репозитория записей
type AppointmentRepository interface {
	Create(ctx context.Context, appt *domain.Appointment) (*domain.Appointment, error)
	GetByDate(ctx context.Context, date time.Time) ([]domain.Appointment, error)
}

// SlotLocker интерфейс кратковременной блокировки слота
type SlotLocker interface {
	Acquire(ctx context.Context, stylist string, date time.Time, at types.TimeOfDay) (lock.ReleaseFunc, error)
}

// Notifier интерфейс очереди уведомлений клиентов
type Notifier interface {
	EnqueueConfirmation(ctx context.Context, appt *domain.Appointment) error
	EnqueueReminder(ctx context.Context, appt *domain.Appointment) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Metrics интерфейс бизнес-метрик
type Metrics interface {
	IncAppointmentCreated(anyAvailable bool)
	IncConflict(operation string)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
