package create_appointment

import (
	"time"

	"github.com/m04kA/SMC-SalonBooking/pkg/types"
)

// Request модель запроса на создание записи
type Request struct {
	Stylist         string          // Имя мастера или "Any Available"
	Date            time.Time       // Календарная дата
	Time            types.TimeOfDay // Время начала слота
	CustomerName    string
	CustomerPhone   string
	Service         string
	DurationMinutes int     // 0 - длительность по умолчанию
	Notes           *string // Опционально
}
