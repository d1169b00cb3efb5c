package export_report

import (
	"bytes"
	"context"

	"github.com/m04kA/SMC-SalonBooking/internal/service/reports/models"
)

type ReportService interface {
	ExportXLSX(ctx context.Context, req *models.PeriodRequest) (*bytes.Buffer, string, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
