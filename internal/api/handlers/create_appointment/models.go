package create_appointment

import (
	"errors"
	"time"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	createAppointment "github.com/m04kA/SMC-SalonBooking/internal/usecase/create_appointment"
	"github.com/m04kA/SMC-SalonBooking/pkg/types"
)

var (
	errInvalidDate = errors.New("invalid date")
	errInvalidTime = errors.New("invalid time")
)

// CreateAppointmentRequest HTTP request model
type CreateAppointmentRequest struct {
	Stylist         string  `json:"stylist"` // Имя мастера или "Any Available"
	Date            string  `json:"date"`    // "2025-06-02"
	Time            string  `json:"time"`    // "2:00 PM"
	CustomerName    string  `json:"customerName"`
	CustomerPhone   string  `json:"customerPhone"`
	Service         string  `json:"service"`
	DurationMinutes int     `json:"durationMinutes,omitempty"`
	Notes           *string `json:"notes,omitempty"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case (с парсингом даты и времени)
func (r *CreateAppointmentRequest) ToUseCaseRequest() (*createAppointment.Request, error) {
	date, err := time.Parse(domain.DateFormat, r.Date)
	if err != nil {
		return nil, errInvalidDate
	}

	at, err := types.ParseTimeOfDay(r.Time)
	if err != nil {
		return nil, errInvalidTime
	}

	return &createAppointment.Request{
		Stylist:         r.Stylist,
		Date:            date,
		Time:            at,
		CustomerName:    r.CustomerName,
		CustomerPhone:   r.CustomerPhone,
		Service:         r.Service,
		DurationMinutes: r.DurationMinutes,
		Notes:           r.Notes,
	}, nil
}
