package availability

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
)

var (
	// ErrInvalidSchedule возвращается, когда расписание нарушает предусловия движка
	ErrInvalidSchedule = errors.New("availability: invalid schedule")
)

// ValidateSchedule проверяет предусловия расписания перед сохранением.
// Движок сам эти предусловия не проверяет: перевёрнутый интервал просто не даёт слотов.
func ValidateSchedule(schedule *domain.StaffSchedule) error {
	if strings.TrimSpace(schedule.StylistName) == "" {
		return fmt.Errorf("%w: stylist name is required", ErrInvalidSchedule)
	}
	if len(schedule.StylistName) > domain.MaxStylistNameLength {
		return fmt.Errorf("%w: stylist name is too long", ErrInvalidSchedule)
	}
	if schedule.StylistName == domain.AnyAvailable {
		return fmt.Errorf("%w: %q is reserved", ErrInvalidSchedule, domain.AnyAvailable)
	}

	for weekday, day := range schedule.WorkingHours {
		if !domain.IsWeekday(weekday) {
			return fmt.Errorf("%w: unknown weekday %q", ErrInvalidSchedule, weekday)
		}
		if !day.IsWorking {
			continue
		}
		if day.StartTime.IsZero() || day.EndTime.IsZero() {
			return fmt.Errorf("%w: %s: start and end time are required", ErrInvalidSchedule, weekday)
		}
		if !day.StartTime.Before(day.EndTime) {
			return fmt.Errorf("%w: %s: start time %s must be before end time %s",
				ErrInvalidSchedule, weekday, day.StartTime, day.EndTime)
		}
	}

	if len(schedule.BreakTimes) > domain.MaxBreaksPerDay {
		return fmt.Errorf("%w: at most %d breaks allowed", ErrInvalidSchedule, domain.MaxBreaksPerDay)
	}
	for i, br := range schedule.BreakTimes {
		if br.StartTime.IsZero() || br.EndTime.IsZero() {
			return fmt.Errorf("%w: break #%d: start and end time are required", ErrInvalidSchedule, i+1)
		}
		if !br.StartTime.Before(br.EndTime) {
			return fmt.Errorf("%w: break #%d: start time %s must be before end time %s",
				ErrInvalidSchedule, i+1, br.StartTime, br.EndTime)
		}
	}

	if len(schedule.BlockedDates) > domain.MaxBlockedDates {
		return fmt.Errorf("%w: at most %d blocked dates allowed", ErrInvalidSchedule, domain.MaxBlockedDates)
	}
	for _, blocked := range schedule.BlockedDates {
		if _, err := time.Parse(domain.DateFormat, blocked); err != nil {
			return fmt.Errorf("%w: blocked date %q must be YYYY-MM-DD", ErrInvalidSchedule, blocked)
		}
	}

	return nil
}
