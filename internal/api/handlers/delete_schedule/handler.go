package delete_schedule

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-SalonBooking/internal/api/handlers"
	"github.com/m04kA/SMC-SalonBooking/internal/service/schedules"
)

const (
	msgNotFound = "расписание мастера не найдено"
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

// Handle DELETE /api/v1/schedules/{stylist}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	stylist := mux.Vars(r)["stylist"]

	if err := h.service.Delete(r.Context(), stylist); err != nil {
		switch {
		case errors.Is(err, schedules.ErrScheduleNotFound):
			h.logger.Warn("DELETE /schedules/{stylist} - Schedule not found: stylist=%q", stylist)
			handlers.RespondNotFound(w, msgNotFound)

		default:
			h.logger.Error("DELETE /schedules/{stylist} - Failed to delete schedule: stylist=%q, error=%v", stylist, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /schedules/{stylist} - Schedule deleted successfully: stylist=%q", stylist)
	w.WriteHeader(http.StatusNoContent)
}
