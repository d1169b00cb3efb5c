package reschedule_appointment

import (
	"errors"
	"time"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	rescheduleAppointment "github.com/m04kA/SMC-SalonBooking/internal/usecase/reschedule_appointment"
	"github.com/m04kA/SMC-SalonBooking/pkg/types"
)

var (
	errInvalidDate = errors.New("invalid date")
	errInvalidTime = errors.New("invalid time")
)

// RescheduleAppointmentRequest HTTP request model
type RescheduleAppointmentRequest struct {
	Stylist *string `json:"stylist,omitempty"` // Не указан - тот же мастер
	Date    string  `json:"date"`
	Time    string  `json:"time"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *RescheduleAppointmentRequest) ToUseCaseRequest(appointmentID int64) (*rescheduleAppointment.Request, error) {
	date, err := time.Parse(domain.DateFormat, r.Date)
	if err != nil {
		return nil, errInvalidDate
	}

	at, err := types.ParseTimeOfDay(r.Time)
	if err != nil {
		return nil, errInvalidTime
	}

	req := &rescheduleAppointment.Request{
		AppointmentID: appointmentID,
		Date:          date,
		Time:          at,
	}
	if r.Stylist != nil {
		req.Stylist = *r.Stylist
	}
	return req, nil
}
