package domain

import (
	"time"

	"github.com/m04kA/SMC-SalonBooking/pkg/types"
)

// Weekdays lists weekday names in schedule order
var Weekdays = []string{
	time.Monday.String(),
	time.Tuesday.String(),
	time.Wednesday.String(),
	time.Thursday.String(),
	time.Friday.String(),
	time.Saturday.String(),
	time.Sunday.String(),
}

// WeekdayName returns the locale-independent weekday name ("Monday".."Sunday") of a date
func WeekdayName(date time.Time) string {
	return date.Weekday().String()
}

// IsWeekday reports whether name is one of "Monday".."Sunday"
func IsWeekday(name string) bool {
	for _, w := range Weekdays {
		if w == name {
			return true
		}
	}
	return false
}

// WorkingDay describes a stylist's hours for one weekday
type WorkingDay struct {
	IsWorking bool
	StartTime types.TimeOfDay
	EndTime   types.TimeOfDay
}

// BreakTime is a recurring daily break, applied to every working day
type BreakTime struct {
	StartTime types.TimeOfDay
	EndTime   types.TimeOfDay
}

// StaffSchedule is the weekly schedule of one stylist, keyed by stylist name
type StaffSchedule struct {
	StylistName  string
	WorkingHours map[string]WorkingDay // weekday name -> hours; missing day = not working
	BlockedDates []string              // YYYY-MM-DD, fully unavailable
	BreakTimes   []BreakTime

	CreatedAt time.Time
	UpdatedAt time.Time
}

// WorkingDayFor returns the hours for the weekday of date.
// A missing entry is reported as a non-working day.
func (s *StaffSchedule) WorkingDayFor(date time.Time) WorkingDay {
	day, ok := s.WorkingHours[WeekdayName(date)]
	if !ok {
		return WorkingDay{IsWorking: false}
	}
	return day
}

// IsDateBlocked returns true if the calendar date of date is in BlockedDates
func (s *StaffSchedule) IsDateBlocked(date time.Time) bool {
	iso := date.Format(DateFormat)
	for _, blocked := range s.BlockedDates {
		if blocked == iso {
			return true
		}
	}
	return false
}
