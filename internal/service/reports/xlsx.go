package reports

import (
	"fmt"
	"sort"

	"github.com/xuri/excelize/v2"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/internal/service/reports/models"
)

var appointmentColumns = []string{
	"ID", "Date", "Time", "Stylist", "Customer", "Phone", "Service", "Duration (min)", "Status", "Notes",
}

var statusOrder = []domain.AppointmentStatus{
	domain.StatusPending,
	domain.StatusConfirmed,
	domain.StatusCompleted,
	domain.StatusCancelled,
	domain.StatusNoShow,
}

func writeSummarySheet(f *excelize.File, summary *models.SummaryResponse, headerStyle int) error {
	rows := [][]interface{}{
		{"Period", fmt.Sprintf("%s - %s", summary.From, summary.To)},
		{"Total", summary.Total},
		{},
		{"Status", "Count"},
	}
	for _, status := range statusOrder {
		rows = append(rows, []interface{}{string(status), summary.ByStatus[string(status)]})
	}

	rows = append(rows, []interface{}{}, []interface{}{"Stylist", "Total", "Completed", "Cancelled", "No-show", "Booked minutes", "Completion rate"})
	stylistHeader := len(rows)
	for _, st := range summary.ByStylist {
		rows = append(rows, []interface{}{st.Stylist, st.Total, st.Completed, st.Cancelled, st.NoShow, st.BookedMinutes, st.CompletionRate})
	}

	rows = append(rows, []interface{}{}, []interface{}{"Service", "Total"})
	serviceHeader := len(rows)
	for _, svc := range summary.ByService {
		rows = append(rows, []interface{}{svc.Service, svc.Total})
	}

	for i, row := range rows {
		if len(row) == 0 {
			continue
		}
		if err := f.SetSheetRow(sheetSummary, cell(1, i+1), &row); err != nil {
			return err
		}
	}

	for _, header := range []int{4, stylistHeader, serviceHeader} {
		if err := f.SetCellStyle(sheetSummary, cell(1, header), cell(7, header), headerStyle); err != nil {
			return err
		}
	}

	return f.SetColWidth(sheetSummary, "A", "A", 24)
}

func writeAppointmentsSheet(f *excelize.File, appts []*domain.Appointment, headerStyle int) error {
	header := make([]interface{}, len(appointmentColumns))
	for i, c := range appointmentColumns {
		header[i] = c
	}
	if err := f.SetSheetRow(sheetAppointments, cell(1, 1), &header); err != nil {
		return err
	}
	if err := f.SetCellStyle(sheetAppointments, cell(1, 1), cell(len(appointmentColumns), 1), headerStyle); err != nil {
		return err
	}

	sorted := make([]*domain.Appointment, len(appts))
	copy(sorted, appts)
	sort.SliceStable(sorted, func(i, j int) bool {
		if !domain.SameDate(sorted[i].Date, sorted[j].Date) {
			return sorted[i].Date.Before(sorted[j].Date)
		}
		if !sorted[i].Time.Equal(sorted[j].Time) {
			return sorted[i].Time.Before(sorted[j].Time)
		}
		return sorted[i].Stylist < sorted[j].Stylist
	})

	for i, a := range sorted {
		notes := ""
		if a.Notes != nil {
			notes = *a.Notes
		}
		row := []interface{}{
			a.ID,
			a.Date.Format(domain.DateFormat),
			a.Time.String(),
			a.Stylist,
			a.CustomerName,
			a.CustomerPhone,
			a.Service,
			a.DurationMinutes,
			string(a.Status),
			notes,
		}
		if err := f.SetSheetRow(sheetAppointments, cell(1, i+2), &row); err != nil {
			return err
		}
	}

	if err := f.SetColWidth(sheetAppointments, "B", "G", 16); err != nil {
		return err
	}
	return f.SetPanes(sheetAppointments, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	})
}

func cell(col, row int) string {
	name, _ := excelize.CoordinatesToCellName(col, row)
	return name
}
