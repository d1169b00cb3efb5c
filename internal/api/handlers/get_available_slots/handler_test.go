package get_available_slots

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	getAvailableSlots "github.com/m04kA/SMC-SalonBooking/internal/usecase/get_available_slots"
	"github.com/m04kA/SMC-SalonBooking/pkg/logger"
	"github.com/m04kA/SMC-SalonBooking/pkg/types"
)

type fakeUseCase struct {
	req  *getAvailableSlots.Request
	resp *getAvailableSlots.Response
	err  error
}

func (f *fakeUseCase) Execute(ctx context.Context, req *getAvailableSlots.Request) (*getAvailableSlots.Response, error) {
	f.req = req
	if f.err != nil {
		return nil, f.err
	}
	f.resp.Date = req.Date
	f.resp.Stylist = req.Stylist
	return f.resp, nil
}

func serve(uc *fakeUseCase, target string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	NewHandler(uc, logger.NewNop()).Handle(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func TestHandle_ReturnsSlots(t *testing.T) {
	uc := &fakeUseCase{resp: &getAvailableSlots.Response{Slots: []types.TimeOfDay{
		types.MustParseTimeOfDay("9:00 AM"),
		types.MustParseTimeOfDay("9:30 AM"),
	}}}

	rec := serve(uc, "/api/v1/available-slots?date=2025-06-02&stylist=Any+Available")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"date":"2025-06-02","stylist":"Any Available","slots":["9:00 AM","9:30 AM"]}`, rec.Body.String())
	assert.Equal(t, "Any Available", uc.req.Stylist)
}

func TestHandle_EmptyIsOK(t *testing.T) {
	uc := &fakeUseCase{resp: &getAvailableSlots.Response{Slots: []types.TimeOfDay{}}}

	rec := serve(uc, "/api/v1/available-slots?date=2025-06-02&stylist=Maria")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"date":"2025-06-02","stylist":"Maria","slots":[]}`, rec.Body.String())
}

func TestHandle_Errors(t *testing.T) {
	tests := []struct {
		name   string
		target string
		err    error
		status int
	}{
		{"missing date", "/api/v1/available-slots?stylist=Maria", nil, http.StatusBadRequest},
		{"missing stylist", "/api/v1/available-slots?date=2025-06-02", nil, http.StatusBadRequest},
		{"invalid date", "/api/v1/available-slots?date=02.06.2025&stylist=Maria", nil, http.StatusBadRequest},
		{"too far", "/api/v1/available-slots?date=2025-06-02&stylist=Maria", getAvailableSlots.ErrDateTooFarInFuture, http.StatusBadRequest},
		{"internal", "/api/v1/available-slots?date=2025-06-02&stylist=Maria", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(&fakeUseCase{err: tt.err}, tt.target)
			assert.Equal(t, tt.status, rec.Code)
		})
	}
}
