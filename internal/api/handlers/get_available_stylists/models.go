package get_available_stylists

import (
	"time"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	getAvailableStylists "github.com/m04kA/SMC-SalonBooking/internal/usecase/get_available_stylists"
	"github.com/m04kA/SMC-SalonBooking/pkg/types"
)

// AvailableStylistsResponse HTTP response model
type AvailableStylistsResponse struct {
	Date     string   `json:"date"`
	Time     string   `json:"time"`
	Stylists []string `json:"stylists"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailableStylists.Response) *AvailableStylistsResponse {
	return &AvailableStylistsResponse{
		Date:     resp.Date.Format(domain.DateFormat),
		Time:     resp.Time.String(),
		Stylists: resp.Stylists,
	}
}

func parseDate(s string) (time.Time, error) {
	return time.Parse(domain.DateFormat, s)
}

func parseTime(s string) (types.TimeOfDay, error) {
	return types.ParseTimeOfDay(s)
}
