package reports

import (
	"bytes"
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/internal/service/reports/models"
)

const (
	// MaxPeriodDays максимальная длина периода отчёта
	MaxPeriodDays = 366

	sheetSummary      = "Summary"
	sheetAppointments = "Appointments"
)

// Service сервис аналитики по записям
type Service struct {
	appointmentRepo AppointmentRepository
	logger          Logger
}

// NewService создает новый экземпляр сервиса отчётов
func NewService(appointmentRepo AppointmentRepository, logger Logger) *Service {
	return &Service{
		appointmentRepo: appointmentRepo,
		logger:          logger,
	}
}

// Summary считает записи за период по статусам, мастерам и услугам
func (s *Service) Summary(ctx context.Context, req *models.PeriodRequest) (*models.SummaryResponse, error) {
	appts, from, to, err := s.load(ctx, "Summary", req)
	if err != nil {
		return nil, err
	}

	resp := summarize(appts)
	resp.From = from.Format(domain.DateFormat)
	resp.To = to.Format(domain.DateFormat)

	s.logger.Info("Summary: %d appointments from %s to %s", resp.Total, resp.From, resp.To)
	return resp, nil
}

// ExportXLSX формирует xlsx файл со сводкой и списком записей за период.
// Возвращает содержимое и предлагаемое имя файла.
func (s *Service) ExportXLSX(ctx context.Context, req *models.PeriodRequest) (*bytes.Buffer, string, error) {
	appts, from, to, err := s.load(ctx, "ExportXLSX", req)
	if err != nil {
		return nil, "", err
	}

	summary := summarize(appts)
	summary.From = from.Format(domain.DateFormat)
	summary.To = to.Format(domain.DateFormat)

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheetSummary); err != nil {
		return nil, "", s.exportError(err)
	}
	if _, err := f.NewSheet(sheetAppointments); err != nil {
		return nil, "", s.exportError(err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#D9E1F2"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return nil, "", s.exportError(err)
	}

	if err := writeSummarySheet(f, summary, headerStyle); err != nil {
		return nil, "", s.exportError(err)
	}
	if err := writeAppointmentsSheet(f, appts, headerStyle); err != nil {
		return nil, "", s.exportError(err)
	}

	buf := new(bytes.Buffer)
	if err := f.Write(buf); err != nil {
		return nil, "", s.exportError(err)
	}

	filename := fmt.Sprintf("appointments_%s_%s.xlsx", summary.From, summary.To)
	s.logger.Info("ExportXLSX: exported %d appointments to %s", len(appts), filename)
	return buf, filename, nil
}

// load валидирует период и загружает все записи за него, включая отменённые
func (s *Service) load(ctx context.Context, op string, req *models.PeriodRequest) ([]*domain.Appointment, time.Time, time.Time, error) {
	from, to, err := parsePeriod(req)
	if err != nil {
		s.logger.Warn("%s: %v", op, err)
		return nil, time.Time{}, time.Time{}, err
	}

	appts, err := s.appointmentRepo.GetWithFilter(ctx, domain.AppointmentsFilter{
		StartDate:       &from,
		EndDate:         &to,
		IncludeInactive: true,
	})
	if err != nil {
		s.logger.Error("%s: repository error: %v", op, err)
		return nil, time.Time{}, time.Time{}, fmt.Errorf("%w: %s - repository error: %w", ErrInternal, op, err)
	}

	return appts, from, to, nil
}

func (s *Service) exportError(err error) error {
	s.logger.Error("ExportXLSX: failed to build workbook: %v", err)
	return fmt.Errorf("%w: %w", ErrExportFailed, err)
}

func parsePeriod(req *models.PeriodRequest) (time.Time, time.Time, error) {
	from, err := time.Parse(domain.DateFormat, req.From)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: 'from' must be YYYY-MM-DD", ErrInvalidPeriod)
	}
	to, err := time.Parse(domain.DateFormat, req.To)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: 'to' must be YYYY-MM-DD", ErrInvalidPeriod)
	}
	if to.Before(from) {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: 'to' must not be before 'from'", ErrInvalidPeriod)
	}
	if to.Sub(from) > MaxPeriodDays*24*time.Hour {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: period must not exceed %d days", ErrInvalidPeriod, MaxPeriodDays)
	}
	return from, to, nil
}

func summarize(appts []*domain.Appointment) *models.SummaryResponse {
	resp := &models.SummaryResponse{
		Total:     len(appts),
		ByStatus:  make(map[string]int),
		ByService: make([]models.ServiceSummary, 0),
		ByStylist: make([]models.StylistSummary, 0),
	}

	stylists := make(map[string]*models.StylistSummary)
	services := make(map[string]int)

	for _, a := range appts {
		resp.ByStatus[string(a.Status)]++
		services[a.Service]++

		st, ok := stylists[a.Stylist]
		if !ok {
			st = &models.StylistSummary{Stylist: a.Stylist}
			stylists[a.Stylist] = st
		}
		st.Total++
		switch a.Status {
		case domain.StatusCompleted:
			st.Completed++
		case domain.StatusCancelled:
			st.Cancelled++
		case domain.StatusNoShow:
			st.NoShow++
		}
		if a.IsActive() {
			st.BookedMinutes += a.DurationMinutes
		}
	}

	for _, st := range stylists {
		if st.Total > 0 {
			st.CompletionRate = float64(st.Completed) / float64(st.Total)
		}
		resp.ByStylist = append(resp.ByStylist, *st)
	}
	sort.Slice(resp.ByStylist, func(i, j int) bool {
		return resp.ByStylist[i].Stylist < resp.ByStylist[j].Stylist
	})

	for name, total := range services {
		resp.ByService = append(resp.ByService, models.ServiceSummary{Service: name, Total: total})
	}
	sort.Slice(resp.ByService, func(i, j int) bool {
		if resp.ByService[i].Total != resp.ByService[j].Total {
			return resp.ByService[i].Total > resp.ByService[j].Total
		}
		return resp.ByService[i].Service < resp.ByService[j].Service
	})

	return resp
}
