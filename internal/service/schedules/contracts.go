package schedules

import (
	"context"
	"time"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
)

// ScheduleRepository интерфейс репозитория расписаний
type ScheduleRepository interface {
	GetAll(ctx context.Context) ([]domain.StaffSchedule, error)
	GetByStylist(ctx context.Context, stylistName string) (*domain.StaffSchedule, error)
	Upsert(ctx context.Context, schedule *domain.StaffSchedule) (*domain.StaffSchedule, error)
	Delete(ctx context.Context, stylistName string) error
	AddBlockedDate(ctx context.Context, stylistName string, date time.Time) error
	RemoveBlockedDate(ctx context.Context, stylistName string, date time.Time) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
