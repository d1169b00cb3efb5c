package queue

import (
	"encoding/json"
	"fmt"

	"github.com/hibiken/asynq"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/internal/integrations/messaging"
)

const (
	TypeConfirmation = "notification:confirmation"
	TypeReminder     = "notification:reminder"
	TypeCancellation = "notification:cancellation"

	// QueueNotifications очередь уведомлений клиентов
	QueueNotifications = "notifications"
)

// NotificationPayload тело задачи уведомления.
// Date и TimeMinutes фиксируют слот на момент постановки: перенесённая запись получит новое напоминание.
type NotificationPayload struct {
	AppointmentID int64  `json:"appointment_id"`
	Date          string `json:"date"`
	TimeMinutes   int    `json:"time_minutes"`
}

func payloadFor(appt *domain.Appointment) NotificationPayload {
	return NotificationPayload{
		AppointmentID: appt.ID,
		Date:          appt.Date.Format(domain.DateFormat),
		TimeMinutes:   appt.Time.Minutes(),
	}
}

// templateByType шаблон сообщения для типа задачи
var templateByType = map[string]messaging.Template{
	TypeConfirmation: messaging.TemplateConfirmation,
	TypeReminder:     messaging.TemplateReminder,
	TypeCancellation: messaging.TemplateCancellation,
}

func newNotificationTask(taskType string, payload NotificationPayload) (*asynq.Task, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPayload, err)
	}
	return asynq.NewTask(taskType, b), nil
}

func parseNotificationPayload(task *asynq.Task) (NotificationPayload, error) {
	var p NotificationPayload
	if err := json.Unmarshal(task.Payload(), &p); err != nil {
		return p, fmt.Errorf("%w: %v", ErrInvalidPayload, err)
	}
	if p.AppointmentID <= 0 {
		return p, fmt.Errorf("%w: appointment_id is required", ErrInvalidPayload)
	}
	return p, nil
}
