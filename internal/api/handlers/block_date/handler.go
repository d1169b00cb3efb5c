package block_date

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-SalonBooking/internal/api/handlers"
	"github.com/m04kA/SMC-SalonBooking/internal/service/schedules"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDate        = "некорректная дата блокировки"
	msgNotFound           = "расписание мастера не найдено"
)

// BlockDateRequest HTTP request model
type BlockDateRequest struct {
	Date string `json:"date"` // YYYY-MM-DD
}

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

// Handle POST /api/v1/schedules/{stylist}/blocked-dates
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	stylist := mux.Vars(r)["stylist"]

	var req BlockDateRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /schedules/{stylist}/blocked-dates - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	if err := h.service.BlockDate(r.Context(), stylist, req.Date); err != nil {
		switch {
		case errors.Is(err, schedules.ErrScheduleNotFound):
			h.logger.Warn("POST /schedules/{stylist}/blocked-dates - Schedule not found: stylist=%q", stylist)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, schedules.ErrInvalidInput):
			h.logger.Warn("POST /schedules/{stylist}/blocked-dates - Invalid date: stylist=%q, error=%v", stylist, err)
			handlers.RespondBadRequest(w, msgInvalidDate)

		default:
			h.logger.Error("POST /schedules/{stylist}/blocked-dates - Failed to block date: stylist=%q, error=%v", stylist, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /schedules/{stylist}/blocked-dates - Date blocked successfully: stylist=%q, date=%s", stylist, req.Date)
	w.WriteHeader(http.StatusNoContent)
}
