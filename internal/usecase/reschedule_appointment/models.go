package reschedule_appointment

import (
	"time"

	"github.com/m04kA/SMC-SalonBooking/pkg/types"
)

// Request модель запроса на перенос записи
type Request struct {
	AppointmentID int64
	Stylist       string          // Пусто - тот же мастер; допускается "Any Available"
	Date          time.Time       // Новая календарная дата
	Time          types.TimeOfDay // Новое время начала
}
