package domain

import (
	"time"

	"github.com/m04kA/SMC-SalonBooking/pkg/types"
)

// BookingPolicy ограничения бронирования, применяемые вокруг движка доступности.
// "Сегодня" и текущее время вычисляются в часовом поясе салона.
type BookingPolicy struct {
	Location           *time.Location
	MinNoticeMinutes   int
	AdvanceBookingDays int // 0 = без ограничения
}

// SalonDate возвращает календарную дату date в часовом поясе салона (полночь)
func (p BookingPolicy) SalonDate(date time.Time) time.Time {
	return time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, p.location())
}

// Today возвращает текущую дату салона
func (p BookingPolicy) Today(now time.Time) time.Time {
	return DateOnly(now.In(p.location()))
}

// IsPastDate проверяет, что календарная дата раньше сегодняшней
func (p BookingPolicy) IsPastDate(date, now time.Time) bool {
	return p.SalonDate(date).Before(p.Today(now))
}

// IsTooFar проверяет ограничение на запись вперёд
func (p BookingPolicy) IsTooFar(date, now time.Time) bool {
	if p.AdvanceBookingDays <= 0 {
		return false
	}
	maxDate := p.Today(now).AddDate(0, 0, p.AdvanceBookingDays)
	return p.SalonDate(date).After(maxDate)
}

// AllowsTime проверяет, что слот на дату не раньше now + MinNoticeMinutes.
// Для будущих дат ограничение не действует.
func (p BookingPolicy) AllowsTime(date time.Time, at types.TimeOfDay, now time.Time) bool {
	if p.IsPastDate(date, now) {
		return false
	}
	if !p.SalonDate(date).Equal(p.Today(now)) {
		return true
	}

	local := now.In(p.location())
	earliest := local.Hour()*60 + local.Minute() + p.MinNoticeMinutes
	return at.Minutes() >= earliest
}

// FilterSlots оставляет только слоты, разрешённые AllowsTime, сохраняя порядок
func (p BookingPolicy) FilterSlots(date time.Time, slots []types.TimeOfDay, now time.Time) []types.TimeOfDay {
	result := make([]types.TimeOfDay, 0, len(slots))
	for _, slot := range slots {
		if p.AllowsTime(date, slot, now) {
			result = append(result, slot)
		}
	}
	return result
}

func (p BookingPolicy) location() *time.Location {
	if p.Location == nil {
		return time.UTC
	}
	return p.Location
}
