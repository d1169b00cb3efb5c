package upsert_schedule

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonBooking/internal/service/schedules"
	"github.com/m04kA/SMC-SalonBooking/internal/service/schedules/models"
	"github.com/m04kA/SMC-SalonBooking/pkg/logger"
)

type fakeService struct {
	stylist string
	req     *models.UpsertScheduleRequest
	err     error
}

func (f *fakeService) Upsert(ctx context.Context, stylistName string, req *models.UpsertScheduleRequest) (*models.ScheduleResponse, error) {
	f.stylist = stylistName
	f.req = req
	if f.err != nil {
		return nil, f.err
	}
	return &models.ScheduleResponse{StylistName: stylistName, WorkingHours: req.WorkingHours}, nil
}

func serve(svc *fakeService, stylist, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPut, "/api/v1/schedules/"+stylist, strings.NewReader(body))
	req = mux.SetURLVars(req, map[string]string{"stylist": stylist})
	rec := httptest.NewRecorder()
	NewHandler(svc, logger.NewNop()).Handle(rec, req)
	return rec
}

const body = `{
	"workingHours": {"Monday": {"isWorking": true, "startTime": "9:00 AM", "endTime": "6:00 PM"}},
	"breakTimes": [{"startTime": "12:00 PM", "endTime": "1:00 PM"}],
	"blockedDates": ["2025-12-25"]
}`

func TestHandle_SavesSchedule(t *testing.T) {
	svc := &fakeService{}

	rec := serve(svc, "Maria", body)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Maria", svc.stylist)
	require.Contains(t, svc.req.WorkingHours, "Monday")
	assert.Equal(t, "9:00 AM", svc.req.WorkingHours["Monday"].StartTime.String())
	require.Len(t, svc.req.BreakTimes, 1)
	assert.Equal(t, []string{"2025-12-25"}, svc.req.BlockedDates)
	assert.Contains(t, rec.Body.String(), `"stylistName":"Maria"`)
}

func TestHandle_Errors(t *testing.T) {
	tests := []struct {
		name   string
		body   string
		err    error
		status int
	}{
		{"malformed time", `{"workingHours":{"Monday":{"isWorking":true,"startTime":"09:00","endTime":"6:00 PM"}}}`, nil, http.StatusBadRequest},
		{"empty body", "", nil, http.StatusBadRequest},
		{"invalid schedule", body, fmt.Errorf("%w: inverted hours", schedules.ErrInvalidSchedule), http.StatusBadRequest},
		{"internal", body, errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(&fakeService{err: tt.err}, "Maria", tt.body)
			assert.Equal(t, tt.status, rec.Code)
		})
	}
}
