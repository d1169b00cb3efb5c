package list_schedules

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonBooking/internal/service/schedules/models"
	"github.com/m04kA/SMC-SalonBooking/pkg/logger"
)

type fakeService struct {
	result *models.ScheduleListResponse
	err    error
}

func (f *fakeService) List(ctx context.Context) (*models.ScheduleListResponse, error) {
	return f.result, f.err
}

func serve(svc *fakeService) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/schedules", nil)
	rec := httptest.NewRecorder()
	NewHandler(svc, logger.NewNop()).Handle(rec, req)
	return rec
}

func TestHandle_List(t *testing.T) {
	rec := serve(&fakeService{result: &models.ScheduleListResponse{
		Schedules: []models.ScheduleResponse{{StylistName: "Maria"}, {StylistName: "Anna"}},
	}})
	require.Equal(t, http.StatusOK, rec.Code)

	var body models.ScheduleListResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body.Schedules, 2)
	assert.Equal(t, "Maria", body.Schedules[0].StylistName)
}

func TestHandle_ServiceError(t *testing.T) {
	rec := serve(&fakeService{err: errors.New("db down")})
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
