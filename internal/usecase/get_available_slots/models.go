package get_available_slots

import (
	"time"

	"github.com/m04kA/SMC-SalonBooking/pkg/types"
)

// Request модель запроса на получение свободных слотов
type Request struct {
	Date    time.Time // Календарная дата
	Stylist string    // Имя мастера или "Any Available"
}

// Response модель ответа со свободными слотами
type Response struct {
	Date    time.Time
	Stylist string
	Slots   []types.TimeOfDay // По возрастанию
}
