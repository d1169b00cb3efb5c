package get_schedule

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

// Handle GET /api/v1/schedules/{stylist}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	stylist := mux.Vars(r)["stylist"]

	result, err := h.service.Get(r.Context(), stylist)
	if err != nil {
		switch {
		case errors.Is(err, schedules.ErrScheduleNotFound):
			h.logger.Warn("GET /schedules/{stylist} - Schedule not found: stylist=%q", stylist)
			handlers.RespondNotFound(w, msgNotFound)

		default:
			h.logger.Error("GET /schedules/{stylist} - Failed to get schedule: stylist=%q, error=%v", stylist, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /schedules/{stylist} - Schedule retrieved successfully: stylist=%q", stylist)
	handlers.RespondJSON(w, http.StatusOK, result)
}
