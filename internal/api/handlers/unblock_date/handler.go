package unblock_date

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-SalonBooking/internal/api/handlers"
	"github.com/m04kA/SMC-SalonBooking/internal/service/schedules"
)

const (
	msgInvalidDate = "некорректная дата"
	msgNotFound    = "расписание мастера не найдено"
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

// Handle DELETE /api/v1/schedules/{stylist}/blocked-dates/{date}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	stylist, date := vars["stylist"], vars["date"]

	if err := h.service.UnblockDate(r.Context(), stylist, date); err != nil {
		switch {
		case errors.Is(err, schedules.ErrScheduleNotFound):
			h.logger.Warn("DELETE /schedules/{stylist}/blocked-dates/{date} - Schedule not found: stylist=%q", stylist)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, schedules.ErrInvalidInput):
			h.logger.Warn("DELETE /schedules/{stylist}/blocked-dates/{date} - Invalid date: %q", date)
			handlers.RespondBadRequest(w, msgInvalidDate)

		default:
			h.logger.Error("DELETE /schedules/{stylist}/blocked-dates/{date} - Failed to unblock date: stylist=%q, error=%v", stylist, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /schedules/{stylist}/blocked-dates/{date} - Date unblocked: stylist=%q, date=%s", stylist, date)
	w.WriteHeader(http.StatusNoContent)
}
