package upsert_schedule

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-SalonBooking/internal/api/handlers"
	"github.com/m04kA/SMC-SalonBooking/internal/service/schedules"
	"github.com/m04kA/SMC-SalonBooking/internal/service/schedules/models"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidSchedule    = "некорректное расписание"
)

type Handler struct {
	service ScheduleService
	logger  Logger
}

func NewHandler(service ScheduleService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PUT /api/v1/schedules/{stylist}
// Создаёт расписание мастера или полностью заменяет существующее
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	stylist := mux.Vars(r)["stylist"]

	var req models.UpsertScheduleRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /schedules/{stylist} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Upsert(r.Context(), stylist, &req)
	if err != nil {
		switch {
		case errors.Is(err, schedules.ErrInvalidSchedule), errors.Is(err, schedules.ErrInvalidInput):
			h.logger.Warn("PUT /schedules/{stylist} - Invalid schedule: stylist=%q, error=%v", stylist, err)
			handlers.RespondBadRequest(w, msgInvalidSchedule+": "+err.Error())

		default:
			h.logger.Error("PUT /schedules/{stylist} - Failed to save schedule: stylist=%q, error=%v", stylist, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /schedules/{stylist} - Schedule saved successfully: stylist=%q", stylist)
	handlers.RespondJSON(w, http.StatusOK, result)
}
