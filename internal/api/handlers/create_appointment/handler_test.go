package create_appointment

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	createAppointment "github.com/m04kA/SMC-SalonBooking/internal/usecase/create_appointment"
	"github.com/m04kA/SMC-SalonBooking/pkg/logger"
)

type fakeUseCase struct {
	req *createAppointment.Request
	err error
}

func (f *fakeUseCase) Execute(ctx context.Context, req *createAppointment.Request) (*domain.Appointment, error) {
	f.req = req
	if f.err != nil {
		return nil, f.err
	}
	stylist := req.Stylist
	if stylist == domain.AnyAvailable {
		stylist = "Anna"
	}
	return &domain.Appointment{
		ID:              10,
		Stylist:         stylist,
		Date:            req.Date,
		Time:            req.Time,
		CustomerName:    req.CustomerName,
		CustomerPhone:   req.CustomerPhone,
		Service:         req.Service,
		DurationMinutes: 60,
		Status:          domain.StatusConfirmed,
	}, nil
}

const validBody = `{
	"stylist": "Any Available",
	"date": "2025-06-02",
	"time": "2:00 PM",
	"customerName": "Ann",
	"customerPhone": "+15550001234",
	"service": "Haircut"
}`

func serve(uc *fakeUseCase, body string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/appointments", strings.NewReader(body))
	NewHandler(uc, logger.NewNop()).Handle(rec, req)
	return rec
}

func TestHandle_Created(t *testing.T) {
	uc := &fakeUseCase{}
	rec := serve(uc, validBody)

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Contains(t, rec.Body.String(), `"stylist":"Anna"`)
	assert.Contains(t, rec.Body.String(), `"time":"2:00 PM"`)
	assert.Contains(t, rec.Body.String(), `"status":"confirmed"`)
	assert.Equal(t, 840, uc.req.Time.Minutes())
}

func TestHandle_Errors(t *testing.T) {
	tests := []struct {
		name   string
		body   string
		err    error
		status int
	}{
		{"malformed body", `{"stylist":`, nil, http.StatusBadRequest},
		{"invalid date", strings.Replace(validBody, "2025-06-02", "06/02/2025", 1), nil, http.StatusBadRequest},
		{"invalid time", strings.Replace(validBody, "2:00 PM", "14:00", 1), nil, http.StatusBadRequest},
		{"slot taken", validBody, createAppointment.ErrSlotNotAvailable, http.StatusConflict},
		{"stylist not found", validBody, createAppointment.ErrStylistNotFound, http.StatusNotFound},
		{"past date", validBody, createAppointment.ErrInvalidDate, http.StatusBadRequest},
		{"too late", validBody, createAppointment.ErrTooLateToBook, http.StatusBadRequest},
		{"invalid input", validBody, createAppointment.ErrInvalidInput, http.StatusBadRequest},
		{"internal", validBody, errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.status, serve(&fakeUseCase{err: tt.err}, tt.body).Code)
		})
	}
}
