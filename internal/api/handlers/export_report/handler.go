package export_report

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/m04kA/SMC-SalonBooking/internal/api/handlers"
	"github.com/m04kA/SMC-SalonBooking/internal/service/reports"
	"github.com/m04kA/SMC-SalonBooking/internal/service/reports/models"
)

const (
	ContentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

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

// Handle GET /api/v1/reports/appointments.xlsx?from=YYYY-MM-DD&to=YYYY-MM-DD
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	req := &models.PeriodRequest{
		From: query.Get("from"),
		To:   query.Get("to"),
	}

	buf, filename, err := h.service.ExportXLSX(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, reports.ErrInvalidPeriod):
			h.logger.Warn("GET /reports/appointments.xlsx - Invalid period: from=%q, to=%q", req.From, req.To)
			handlers.RespondBadRequest(w, msgInvalidPeriod)

		default:
			h.logger.Error("GET /reports/appointments.xlsx - Failed to export: error=%v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	w.Header().Set("Content-Type", ContentTypeXLSX)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.WriteHeader(http.StatusOK)

	size, err := buf.WriteTo(w)
	if err != nil {
		h.logger.Error("GET /reports/appointments.xlsx - Failed to write response: error=%v", err)
		return
	}

	h.logger.Info("GET /reports/appointments.xlsx - Report exported: file=%s, size=%d", filename, size)
}
