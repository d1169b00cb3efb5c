package queue

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/hibiken/asynq"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
)

// Client ставит уведомления клиентов в очередь asynq
type Client struct {
	enqueuer       TaskEnqueuer
	reminderBefore time.Duration
	now            func() time.Time
	log            Logger
}

// NewClient создает клиент очереди уведомлений
func NewClient(enqueuer TaskEnqueuer, reminderBefore time.Duration, log Logger) *Client {
	return &Client{
		enqueuer:       enqueuer,
		reminderBefore: reminderBefore,
		now:            time.Now,
		log:            log,
	}
}

// EnqueueConfirmation ставит подтверждение записи на немедленную отправку
func (c *Client) EnqueueConfirmation(ctx context.Context, appt *domain.Appointment) error {
	return c.enqueue(ctx, TypeConfirmation, appt)
}

// EnqueueCancellation ставит уведомление об отмене на немедленную отправку
func (c *Client) EnqueueCancellation(ctx context.Context, appt *domain.Appointment) error {
	return c.enqueue(ctx, TypeCancellation, appt)
}

// EnqueueReminder планирует напоминание за reminderBefore до начала визита.
// Если момент напоминания уже прошёл, напоминание не ставится.
func (c *Client) EnqueueReminder(ctx context.Context, appt *domain.Appointment) error {
	startsAt := appt.StartsAt()
	fireAt := startsAt.Add(-c.reminderBefore)
	if !fireAt.After(c.now()) {
		c.log.Info("EnqueueReminder: skip appointment_id=%d, reminder time %s already passed", appt.ID, fireAt.Format(time.RFC3339))
		return nil
	}

	// Уникальный ID: повторная постановка того же слота не дублирует напоминание
	taskID := fmt.Sprintf("reminder:%d:%s:%d", appt.ID, appt.Date.Format(domain.DateFormat), appt.Time.Minutes())

	err := c.enqueue(ctx, TypeReminder, appt, asynq.ProcessAt(fireAt), asynq.TaskID(taskID))
	if errors.Is(err, asynq.ErrTaskIDConflict) {
		// Дата и время не изменились (например, сменился только мастер): напоминание уже запланировано
		c.log.Info("EnqueueReminder: reminder %s already scheduled for appointment_id=%d", taskID, appt.ID)
		return nil
	}
	return err
}

func (c *Client) enqueue(ctx context.Context, taskType string, appt *domain.Appointment, opts ...asynq.Option) error {
	task, err := newNotificationTask(taskType, payloadFor(appt))
	if err != nil {
		return err
	}

	opts = append(opts, asynq.Queue(QueueNotifications))
	info, err := c.enqueuer.EnqueueContext(ctx, task, opts...)
	if err != nil {
		return fmt.Errorf("%w: %s appointment_id=%d: %w", ErrEnqueue, taskType, appt.ID, err)
	}

	c.log.Info("Enqueued %s for appointment_id=%d (task_id=%s)", taskType, appt.ID, info.ID)
	return nil
}

// NoopClient используется, когда уведомления отключены
type NoopClient struct{}

// EnqueueConfirmation ничего не делает
func (NoopClient) EnqueueConfirmation(ctx context.Context, appt *domain.Appointment) error {
	return nil
}

// EnqueueReminder ничего не делает
func (NoopClient) EnqueueReminder(ctx context.Context, appt *domain.Appointment) error { return nil }

// EnqueueCancellation ничего не делает
func (NoopClient) EnqueueCancellation(ctx context.Context, appt *domain.Appointment) error {
	return nil
}
