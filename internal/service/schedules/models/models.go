package models

import (
	"time"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/pkg/types"
)

// Request модели

// UpsertScheduleRequest запрос на создание или замену расписания мастера.
// Имя мастера берётся из пути запроса.
type UpsertScheduleRequest struct {
	WorkingHours map[string]WorkingDayDTO `json:"workingHours"` // "Monday".."Sunday"; отсутствующий день - выходной
	BreakTimes   []BreakTimeDTO           `json:"breakTimes"`
	BlockedDates []string                 `json:"blockedDates"` // YYYY-MM-DD
}

// WorkingDayDTO рабочие часы на день недели
type WorkingDayDTO struct {
	IsWorking bool            `json:"isWorking"`
	StartTime types.TimeOfDay `json:"startTime"` // "9:00 AM"
	EndTime   types.TimeOfDay `json:"endTime"`   // "6:00 PM"
}

// BreakTimeDTO ежедневный перерыв
type BreakTimeDTO struct {
	StartTime types.TimeOfDay `json:"startTime"`
	EndTime   types.TimeOfDay `json:"endTime"`
}

// Response модели

// ScheduleResponse ответ с расписанием мастера
type ScheduleResponse struct {
	StylistName  string                   `json:"stylistName"`
	WorkingHours map[string]WorkingDayDTO `json:"workingHours"`
	BreakTimes   []BreakTimeDTO           `json:"breakTimes"`
	BlockedDates []string                 `json:"blockedDates"`
	CreatedAt    time.Time                `json:"createdAt"`
	UpdatedAt    time.Time                `json:"updatedAt"`
}

// ScheduleListResponse ответ со списком расписаний
type ScheduleListResponse struct {
	Schedules []ScheduleResponse `json:"schedules"`
}

// Методы конвертации

// ToDomain конвертирует запрос в domain модель
func (r *UpsertScheduleRequest) ToDomain(stylistName string) *domain.StaffSchedule {
	schedule := &domain.StaffSchedule{
		StylistName:  stylistName,
		WorkingHours: make(map[string]domain.WorkingDay, len(r.WorkingHours)),
		BreakTimes:   make([]domain.BreakTime, 0, len(r.BreakTimes)),
		BlockedDates: make([]string, 0, len(r.BlockedDates)),
	}

	for weekday, day := range r.WorkingHours {
		schedule.WorkingHours[weekday] = domain.WorkingDay{
			IsWorking: day.IsWorking,
			StartTime: day.StartTime,
			EndTime:   day.EndTime,
		}
	}
	for _, br := range r.BreakTimes {
		schedule.BreakTimes = append(schedule.BreakTimes, domain.BreakTime{StartTime: br.StartTime, EndTime: br.EndTime})
	}
	schedule.BlockedDates = append(schedule.BlockedDates, r.BlockedDates...)

	return schedule
}

// FromDomainSchedule конвертирует domain модель в DTO
func FromDomainSchedule(s *domain.StaffSchedule) *ScheduleResponse {
	if s == nil {
		return nil
	}

	resp := &ScheduleResponse{
		StylistName:  s.StylistName,
		WorkingHours: make(map[string]WorkingDayDTO, len(s.WorkingHours)),
		BreakTimes:   make([]BreakTimeDTO, 0, len(s.BreakTimes)),
		BlockedDates: make([]string, 0, len(s.BlockedDates)),
		CreatedAt:    s.CreatedAt,
		UpdatedAt:    s.UpdatedAt,
	}

	for weekday, day := range s.WorkingHours {
		resp.WorkingHours[weekday] = WorkingDayDTO{IsWorking: day.IsWorking, StartTime: day.StartTime, EndTime: day.EndTime}
	}
	for _, br := range s.BreakTimes {
		resp.BreakTimes = append(resp.BreakTimes, BreakTimeDTO{StartTime: br.StartTime, EndTime: br.EndTime})
	}
	resp.BlockedDates = append(resp.BlockedDates, s.BlockedDates...)

	return resp
}

// FromDomainScheduleList конвертирует список domain моделей в DTO
func FromDomainScheduleList(schedules []domain.StaffSchedule) *ScheduleListResponse {
	resp := &ScheduleListResponse{Schedules: make([]ScheduleResponse, 0, len(schedules))}
	for i := range schedules {
		resp.Schedules = append(resp.Schedules, *FromDomainSchedule(&schedules[i]))
	}
	return resp
}
