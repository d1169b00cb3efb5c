package get_available_stylists

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-SalonBooking/internal/api/handlers"
	getAvailableStylists "github.com/m04kA/SMC-SalonBooking/internal/usecase/get_available_stylists"
)

const (
	msgMissingParams = "дата и время обязательны"
	msgInvalidDate   = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidTime   = "некорректный формат времени, ожидается h:mm AM/PM"
	msgInvalidInput  = "некорректные параметры запроса"
	msgDateTooFar    = "дата слишком далеко в будущем"
)

type Handler struct {
	useCase GetAvailableStylistsUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailableStylistsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/available-stylists
// Query params: date (YYYY-MM-DD), time ("2:00 PM")
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	dateStr := r.URL.Query().Get("date")
	timeStr := r.URL.Query().Get("time")
	if dateStr == "" || timeStr == "" {
		h.logger.Warn("GET /available-stylists - Missing date or time")
		handlers.RespondBadRequest(w, msgMissingParams)
		return
	}

	date, err := parseDate(dateStr)
	if err != nil {
		h.logger.Warn("GET /available-stylists - Invalid date format: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	at, err := parseTime(timeStr)
	if err != nil {
		h.logger.Warn("GET /available-stylists - Invalid time format: %v", err)
		handlers.RespondBadRequest(w, msgInvalidTime)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &getAvailableStylists.Request{Date: date, Time: at})
	if err != nil {
		switch {
		case errors.Is(err, getAvailableStylists.ErrDateTooFarInFuture):
			h.logger.Warn("GET /available-stylists - Date too far in future: date=%s", dateStr)
			handlers.RespondBadRequest(w, msgDateTooFar)

		case errors.Is(err, getAvailableStylists.ErrInvalidInput):
			h.logger.Warn("GET /available-stylists - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("GET /available-stylists - Failed to get stylists: date=%s, time=%s, error=%v",
				dateStr, timeStr, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /available-stylists - Stylists retrieved successfully: date=%s, time=%s, count=%d",
		dateStr, at, len(result.Stylists))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
