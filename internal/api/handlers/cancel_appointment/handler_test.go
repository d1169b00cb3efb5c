package cancel_appointment

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonBooking/internal/service/appointments"
	"github.com/m04kA/SMC-SalonBooking/internal/service/appointments/models"
	"github.com/m04kA/SMC-SalonBooking/pkg/logger"
)

type fakeService struct {
	req *models.CancelAppointmentRequest
	err error
}

func (f *fakeService) Cancel(ctx context.Context, id int64, req *models.CancelAppointmentRequest) (*models.AppointmentResponse, error) {
	f.req = req
	if f.err != nil {
		return nil, f.err
	}
	return &models.AppointmentResponse{ID: id, Status: "cancelled", CancellationReason: req.CancellationReason}, nil
}

func serve(svc *fakeService, id, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPatch, "/api/v1/appointments/"+id+"/cancel", strings.NewReader(body))
	req = mux.SetURLVars(req, map[string]string{"appointmentId": id})
	rec := httptest.NewRecorder()
	NewHandler(svc, logger.NewNop()).Handle(rec, req)
	return rec
}

func TestHandle_CancelWithReason(t *testing.T) {
	svc := &fakeService{}

	rec := serve(svc, "7", `{"cancellationReason":"sick"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, svc.req.CancellationReason)
	assert.Equal(t, "sick", *svc.req.CancellationReason)
	assert.Contains(t, rec.Body.String(), `"status":"cancelled"`)
}

func TestHandle_CancelWithoutBody(t *testing.T) {
	svc := &fakeService{}

	rec := serve(svc, "7", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Nil(t, svc.req.CancellationReason)
}

func TestHandle_Errors(t *testing.T) {
	tests := []struct {
		name   string
		id     string
		body   string
		err    error
		status int
	}{
		{"invalid id", "x", "", nil, http.StatusBadRequest},
		{"malformed body", "1", `{"cancellationReason":`, nil, http.StatusBadRequest},
		{"not found", "1", "", appointments.ErrAppointmentNotFound, http.StatusNotFound},
		{"cannot cancel", "1", "", appointments.ErrCannotCancel, http.StatusBadRequest},
		{"invalid input", "1", "", appointments.ErrInvalidInput, http.StatusBadRequest},
		{"internal", "1", "", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(&fakeService{err: tt.err}, tt.id, tt.body)
			assert.Equal(t, tt.status, rec.Code)
		})
	}
}
