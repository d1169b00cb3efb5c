package messaging

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/pkg/ptr"
	"github.com/m04kA/SMC-SalonBooking/pkg/types"
)

func sampleAppointment() *domain.Appointment {
	return &domain.Appointment{
		Stylist:      "Maria",
		Date:         time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC),
		Time:         types.MustParseTimeOfDay("2:00 PM"),
		CustomerName: "Ann",
		Service:      "Haircut",
	}
}

func TestRender(t *testing.T) {
	text, err := Render(TemplateConfirmation, sampleAppointment(), "Glow")
	require.NoError(t, err)
	assert.Equal(t, "Hi Ann! Your Haircut with Maria at Glow is booked for Mon, Jun 2 at 2:00 PM.", text)

	text, err = Render(TemplateReminder, sampleAppointment(), "Glow")
	require.NoError(t, err)
	assert.Contains(t, text, "Reminder: Haircut with Maria")
}

func TestRender_CancellationReason(t *testing.T) {
	appt := sampleAppointment()

	text, err := Render(TemplateCancellation, appt, "Glow")
	require.NoError(t, err)
	assert.NotContains(t, text, "Reason")

	appt.CancellationReason = ptr.Ptr("stylist is sick")
	text, err = Render(TemplateCancellation, appt, "Glow")
	require.NoError(t, err)
	assert.Contains(t, text, "Reason: stylist is sick.")
}

func TestRender_UnknownTemplate(t *testing.T) {
	_, err := Render(Template("promo"), sampleAppointment(), "Glow")
	assert.ErrorIs(t, err, ErrUnknownTemplate)
}
