package get_report_summary

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-SalonBooking/internal/api/handlers"
	"github.com/m04kA/SMC-SalonBooking/internal/service/reports"
	"github.com/m04kA/SMC-SalonBooking/internal/service/reports/models"
)

const (
	msgInvalidPeriod = "некорректный период отчёта, ожидается from и to в формате YYYY-MM-DD"
)

type Handler struct {
	service ReportService
	logger  Logger
}

func NewHandler(service ReportService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/reports/summary?from=YYYY-MM-DD&to=YYYY-MM-DD
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	req := &models.PeriodRequest{
		From: query.Get("from"),
		To:   query.Get("to"),
	}

	result, err := h.service.Summary(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, reports.ErrInvalidPeriod):
			h.logger.Warn("GET /reports/summary - Invalid period: from=%q, to=%q", req.From, req.To)
			handlers.RespondBadRequest(w, msgInvalidPeriod)

		default:
			h.logger.Error("GET /reports/summary - Failed to build summary: error=%v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /reports/summary - Summary built: from=%s, to=%s, total=%d", result.From, result.To, result.Total)
	handlers.RespondJSON(w, http.StatusOK, result)
}
