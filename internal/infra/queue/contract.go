package queue

import (
	"context"

	"github.com/hibiken/asynq"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/internal/integrations/messaging"
)

// TaskEnqueuer интерфейс клиента asynq
type TaskEnqueuer interface {
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

// AppointmentGetter интерфейс для чтения записи перед отправкой
type AppointmentGetter interface {
	GetByID(ctx context.Context, id int64) (*domain.Appointment, error)
}

// MessageSender интерфейс шлюза сообщений
type MessageSender interface {
	Send(ctx context.Context, phone string, channel messaging.Channel, text string) (*messaging.SendResponse, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
