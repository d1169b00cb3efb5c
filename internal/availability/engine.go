// Package availability вычисляет свободные слоты по расписаниям мастеров и существующим записям.
// Функции пакета чистые: входные данные не изменяются, состояния и кеша нет.
package availability

import (
	"time"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/pkg/types"
)

// AvailableTimeSlots возвращает свободные слоты мастера на дату в порядке возрастания.
//
// Рабочие часы - полуинтервал [start, end): слот ровно в end не предлагается.
// Перерывы - отрезок [start, end]: слот ровно в конце перерыва занят.
// Отсутствие расписания, заблокированная дата или нерабочий день дают пустой результат.
func AvailableTimeSlots(
	date time.Time,
	stylistName string,
	schedules []domain.StaffSchedule,
	appointments []domain.Appointment,
) []types.TimeOfDay {
	schedule, ok := findSchedule(schedules, stylistName)
	if !ok {
		return []types.TimeOfDay{}
	}

	if schedule.IsDateBlocked(date) {
		return []types.TimeOfDay{}
	}

	day := schedule.WorkingDayFor(date)
	if !day.IsWorking {
		return []types.TimeOfDay{}
	}

	candidates := halfOpenSlots(day.StartTime, day.EndTime)

	unavailable := make(map[int]struct{})
	for _, br := range schedule.BreakTimes {
		for _, slot := range closedSlots(br.StartTime, br.EndTime) {
			unavailable[slot.Minutes()] = struct{}{}
		}
	}
	for _, slot := range bookedTimes(appointments, stylistName, date) {
		unavailable[slot.Minutes()] = struct{}{}
	}

	result := make([]types.TimeOfDay, 0, len(candidates))
	for _, slot := range candidates {
		if _, taken := unavailable[slot.Minutes()]; taken {
			continue
		}
		result = append(result, slot)
	}

	return result
}

// AvailableStylists возвращает мастеров, свободных в указанные дату и время.
// Порядок соответствует порядку расписаний, имена не повторяются.
func AvailableStylists(
	date time.Time,
	at types.TimeOfDay,
	schedules []domain.StaffSchedule,
	appointments []domain.Appointment,
) []string {
	result := make([]string, 0, len(schedules))
	seen := make(map[string]struct{}, len(schedules))

	for i := range schedules {
		schedule := &schedules[i]
		if _, dup := seen[schedule.StylistName]; dup {
			continue
		}
		seen[schedule.StylistName] = struct{}{}

		if !isFreeAt(schedule, date, at, appointments) {
			continue
		}
		result = append(result, schedule.StylistName)
	}

	return result
}

// isFreeAt проверяет один мастер/дата/время по тем же правилам, что и AvailableStylists
func isFreeAt(schedule *domain.StaffSchedule, date time.Time, at types.TimeOfDay, appointments []domain.Appointment) bool {
	if schedule.IsDateBlocked(date) {
		return false
	}

	day := schedule.WorkingDayFor(date)
	if !day.IsWorking {
		return false
	}

	// Рабочие часы: [start, end)
	if at.Before(day.StartTime) || !at.Before(day.EndTime) {
		return false
	}

	// Перерывы: [start, end]
	for _, br := range schedule.BreakTimes {
		if !at.Before(br.StartTime) && !at.After(br.EndTime) {
			return false
		}
	}

	for _, booked := range bookedTimes(appointments, schedule.StylistName, date) {
		if booked.Minutes() == at.Minutes() {
			return false
		}
	}

	return true
}

// findSchedule ищет расписание по имени мастера (первое совпадение)
func findSchedule(schedules []domain.StaffSchedule, stylistName string) (*domain.StaffSchedule, bool) {
	for i := range schedules {
		if schedules[i].StylistName == stylistName {
			return &schedules[i], true
		}
	}
	return nil, false
}

// bookedTimes возвращает время записей мастера на календарную дату date
func bookedTimes(appointments []domain.Appointment, stylistName string, date time.Time) []types.TimeOfDay {
	booked := make([]types.TimeOfDay, 0)
	for i := range appointments {
		appt := &appointments[i]
		if appt.Stylist != stylistName || appt.Time.IsZero() {
			continue
		}
		if !domain.SameDate(appt.Date, date) {
			continue
		}
		booked = append(booked, appt.Time)
	}
	return booked
}

// halfOpenSlots генерирует точки start, start+30, ... строго меньше end
func halfOpenSlots(start, end types.TimeOfDay) []types.TimeOfDay {
	return stepSlots(start, end, false)
}

// closedSlots генерирует точки start, start+30, ... меньше либо равные end
func closedSlots(start, end types.TimeOfDay) []types.TimeOfDay {
	return stepSlots(start, end, true)
}

func stepSlots(start, end types.TimeOfDay, includeEnd bool) []types.TimeOfDay {
	slots := make([]types.TimeOfDay, 0)
	if start.IsZero() || end.IsZero() {
		return slots
	}

	for current := start; current.Before(end) || (includeEnd && current.Equal(end)); {
		slots = append(slots, current)

		next, err := current.AddMinutes(domain.SlotStepMinutes)
		if err != nil {
			// Следующий шаг выходит за пределы суток
			break
		}
		current = next
	}

	return slots
}
