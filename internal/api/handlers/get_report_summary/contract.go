package get_report_summary

import (
	"context"

	"github.com/m04kA/SMC-SalonBooking/internal/service/reports/models"
)

type ReportService interface {
	Summary(ctx context.Context, req *models.PeriodRequest) (*models.SummaryResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
