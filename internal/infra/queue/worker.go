package queue

import (
	"context"
	"errors"
	"fmt"

	"github.com/hibiken/asynq"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/internal/integrations/messaging"
)

// WorkerConfig параметры обработчика уведомлений
type WorkerConfig struct {
	Concurrency int
	Channel     messaging.Channel
	SalonName   string
	// NotFound ошибка репозитория "запись не найдена": задача с ней не повторяется
	NotFound error
}

// Worker обрабатывает задачи уведомлений из asynq
type Worker struct {
	server       *asynq.Server
	appointments AppointmentGetter
	sender       MessageSender
	cfg          WorkerConfig
	log          Logger
}

// NewWorker создает обработчик уведомлений.
// asynqLogger может быть nil, тогда asynq пишет в свой логгер по умолчанию.
func NewWorker(
	redisOpt asynq.RedisConnOpt,
	appointments AppointmentGetter,
	sender MessageSender,
	cfg WorkerConfig,
	log Logger,
	asynqLogger asynq.Logger,
) *Worker {
	server := asynq.NewServer(redisOpt, asynq.Config{
		Concurrency: cfg.Concurrency,
		Queues: map[string]int{
			QueueNotifications: 1,
		},
		Logger: asynqLogger,
	})

	return &Worker{
		server:       server,
		appointments: appointments,
		sender:       sender,
		cfg:          cfg,
		log:          log,
	}
}

// Start запускает обработку задач в фоне
func (w *Worker) Start() error {
	mux := asynq.NewServeMux()
	mux.HandleFunc(TypeConfirmation, w.Handle)
	mux.HandleFunc(TypeReminder, w.Handle)
	mux.HandleFunc(TypeCancellation, w.Handle)

	if err := w.server.Start(mux); err != nil {
		return fmt.Errorf("queue: start worker: %w", err)
	}
	w.log.Info("Notification worker started (concurrency=%d)", w.cfg.Concurrency)
	return nil
}

// Shutdown останавливает обработку, дожидаясь активных задач
func (w *Worker) Shutdown() {
	w.server.Shutdown()
	w.log.Info("Notification worker stopped")
}

// Handle обрабатывает одну задачу уведомления
func (w *Worker) Handle(ctx context.Context, task *asynq.Task) error {
	tpl, ok := templateByType[task.Type()]
	if !ok {
		return fmt.Errorf("%w: unknown task type %q: %w", ErrInvalidPayload, task.Type(), asynq.SkipRetry)
	}

	payload, err := parseNotificationPayload(task)
	if err != nil {
		w.log.Error("%s: %v", task.Type(), err)
		return fmt.Errorf("%w: %w", err, asynq.SkipRetry)
	}

	appt, err := w.appointments.GetByID(ctx, payload.AppointmentID)
	if err != nil {
		if w.cfg.NotFound != nil && errors.Is(err, w.cfg.NotFound) {
			w.log.Warn("%s: appointment_id=%d not found, skip", task.Type(), payload.AppointmentID)
			return nil
		}
		return fmt.Errorf("%s: load appointment_id=%d: %w", task.Type(), payload.AppointmentID, err)
	}

	if skip, reason := shouldSkip(task.Type(), appt, payload); skip {
		w.log.Info("%s: skip appointment_id=%d, %s", task.Type(), appt.ID, reason)
		return nil
	}

	text, err := messaging.Render(tpl, appt, w.cfg.SalonName)
	if err != nil {
		return fmt.Errorf("%w: %w", err, asynq.SkipRetry)
	}

	if _, err := w.sender.Send(ctx, appt.CustomerPhone, w.cfg.Channel, text); err != nil {
		w.log.Error("%s: send to appointment_id=%d failed: %v", task.Type(), appt.ID, err)
		if errors.Is(err, messaging.ErrRejected) {
			return fmt.Errorf("%w: %w", err, asynq.SkipRetry)
		}
		return err
	}

	return nil
}

// shouldSkip решает, актуально ли ещё уведомление для текущего состояния записи
func shouldSkip(taskType string, appt *domain.Appointment, payload NotificationPayload) (bool, string) {
	switch taskType {
	case TypeCancellation:
		if appt.Status != domain.StatusCancelled {
			return true, fmt.Sprintf("status is %s", appt.Status)
		}
	default:
		if !appt.IsActive() || appt.Status == domain.StatusCompleted {
			return true, fmt.Sprintf("status is %s", appt.Status)
		}
		if appt.Date.Format(domain.DateFormat) != payload.Date || appt.Time.Minutes() != payload.TimeMinutes {
			return true, "appointment was rescheduled"
		}
	}
	return false, ""
}
