package messaging

import (
	"bytes"
	"fmt"
	"text/template"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
)

// Template тип сообщения клиенту
type Template string

const (
	TemplateConfirmation Template = "confirmation"
	TemplateReminder     Template = "reminder"
	TemplateCancellation Template = "cancellation"
)

var templates = map[Template]*template.Template{
	TemplateConfirmation: template.Must(template.New("confirmation").Parse(
		"Hi {{.CustomerName}}! Your {{.Service}} with {{.Stylist}} at {{.Salon}} is booked for {{.Date}} at {{.Time}}.")),
	TemplateReminder: template.Must(template.New("reminder").Parse(
		"Reminder: {{.Service}} with {{.Stylist}} at {{.Salon}} on {{.Date}} at {{.Time}}. See you soon, {{.CustomerName}}!")),
	TemplateCancellation: template.Must(template.New("cancellation").Parse(
		"Hi {{.CustomerName}}, your {{.Service}} with {{.Stylist}} on {{.Date}} at {{.Time}} has been cancelled." +
			"{{if .Reason}} Reason: {{.Reason}}.{{end}}")),
}

type templateData struct {
	CustomerName string
	Service      string
	Stylist      string
	Salon        string
	Date         string
	Time         string
	Reason       string
}

// Render формирует текст сообщения по шаблону для записи
func Render(tpl Template, appt *domain.Appointment, salonName string) (string, error) {
	t, ok := templates[tpl]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownTemplate, tpl)
	}

	data := templateData{
		CustomerName: appt.CustomerName,
		Service:      appt.Service,
		Stylist:      appt.Stylist,
		Salon:        salonName,
		Date:         appt.Date.Format("Mon, Jan 2"),
		Time:         appt.Time.String(),
	}
	if appt.CancellationReason != nil {
		data.Reason = *appt.CancellationReason
	}

	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("messaging: render %s: %w", tpl, err)
	}
	return buf.String(), nil
}
