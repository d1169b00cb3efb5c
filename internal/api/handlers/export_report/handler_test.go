package export_report

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonBooking/internal/service/reports"
	"github.com/m04kA/SMC-SalonBooking/internal/service/reports/models"
	"github.com/m04kA/SMC-SalonBooking/pkg/logger"
)

type fakeService struct {
	req *models.PeriodRequest
	err error
}

func (f *fakeService) ExportXLSX(ctx context.Context, req *models.PeriodRequest) (*bytes.Buffer, string, error) {
	f.req = req
	if f.err != nil {
		return nil, "", f.err
	}
	return bytes.NewBufferString("PK-xlsx"), "appointments_" + req.From + "_" + req.To + ".xlsx", nil
}

func serve(svc *fakeService, target string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	NewHandler(svc, logger.NewNop()).Handle(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func TestHandle_StreamsWorkbook(t *testing.T) {
	svc := &fakeService{}

	rec := serve(svc, "/api/v1/reports/appointments.xlsx?from=2025-06-01&to=2025-06-30")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, ContentTypeXLSX, rec.Header().Get("Content-Type"))
	assert.Equal(t, `attachment; filename="appointments_2025-06-01_2025-06-30.xlsx"`, rec.Header().Get("Content-Disposition"))
	assert.Equal(t, "7", rec.Header().Get("Content-Length"))
	assert.Equal(t, "PK-xlsx", rec.Body.String())
	assert.Equal(t, "2025-06-01", svc.req.From)
}

func TestHandle_Errors(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, serve(&fakeService{err: reports.ErrInvalidPeriod}, "/api/v1/reports/appointments.xlsx").Code)
	assert.Equal(t, http.StatusInternalServerError, serve(&fakeService{err: reports.ErrExportFailed}, "/api/v1/reports/appointments.xlsx?from=2025-06-01&to=2025-06-30").Code)
	assert.Equal(t, http.StatusInternalServerError, serve(&fakeService{err: errors.New("boom")}, "/api/v1/reports/appointments.xlsx?from=2025-06-01&to=2025-06-30").Code)
}
