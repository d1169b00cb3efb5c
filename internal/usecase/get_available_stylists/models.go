package get_available_stylists

import (
	"time"

	"github.com/m04kA/SMC-SalonBooking/pkg/types"
)

// Request модель запроса мастеров, свободных в дату и время
type Request struct {
	Date time.Time
	Time types.TimeOfDay
}

// Response модель ответа со списком мастеров (по алфавиту)
type Response struct {
	Date     time.Time
	Time     types.TimeOfDay
	Stylists []string
}
