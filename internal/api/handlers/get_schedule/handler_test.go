package get_schedule

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonBooking/internal/service/schedules"
	"github.com/m04kA/SMC-SalonBooking/internal/service/schedules/models"
	"github.com/m04kA/SMC-SalonBooking/pkg/logger"
)

type fakeService struct {
	err error
}

func (f *fakeService) Get(ctx context.Context, stylistName string) (*models.ScheduleResponse, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &models.ScheduleResponse{StylistName: stylistName, BlockedDates: []string{"2025-12-25"}}, nil
}

func serve(svc *fakeService, stylist string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/schedules/x", nil)
	req = mux.SetURLVars(req, map[string]string{"stylist": stylist})
	rec := httptest.NewRecorder()
	NewHandler(svc, logger.NewNop()).Handle(rec, req)
	return rec
}

func TestHandle_ReturnsSchedule(t *testing.T) {
	rec := serve(&fakeService{}, "Anna Lee")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"stylistName":"Anna Lee"`)
	assert.Contains(t, rec.Body.String(), `"blockedDates":["2025-12-25"]`)
}

func TestHandle_Errors(t *testing.T) {
	assert.Equal(t, http.StatusNotFound, serve(&fakeService{err: schedules.ErrScheduleNotFound}, "Nobody").Code)
	assert.Equal(t, http.StatusInternalServerError, serve(&fakeService{err: errors.New("boom")}, "Maria").Code)
}
