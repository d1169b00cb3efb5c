package schedules

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/SMC-SalonBooking/internal/availability"
	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	scheduleRepo "github.com/m04kA/SMC-SalonBooking/internal/infra/storage/schedule"
	"github.com/m04kA/SMC-SalonBooking/internal/service/schedules/models"
)

// Service сервис для управления расписаниями мастеров
type Service struct {
	scheduleRepo ScheduleRepository
	txManager    TransactionManager
	logger       Logger
}

// NewService создает новый экземпляр сервиса расписаний
func NewService(scheduleRepo ScheduleRepository, txManager TransactionManager, logger Logger) *Service {
	return &Service{
		scheduleRepo: scheduleRepo,
		txManager:    txManager,
		logger:       logger,
	}
}

// List возвращает расписания всех мастеров
func (s *Service) List(ctx context.Context) (*models.ScheduleListResponse, error) {
	schedules, err := s.scheduleRepo.GetAll(ctx)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %w", ErrInternal, err)
	}

	s.logger.Info("List: fetched %d schedules", len(schedules))
	return models.FromDomainScheduleList(schedules), nil
}

// Get возвращает расписание мастера
func (s *Service) Get(ctx context.Context, stylistName string) (*models.ScheduleResponse, error) {
	schedule, err := s.scheduleRepo.GetByStylist(ctx, stylistName)
	if err != nil {
		if errors.Is(err, scheduleRepo.ErrScheduleNotFound) {
			s.logger.Warn("Get: schedule of stylist=%q not found", stylistName)
			return nil, ErrScheduleNotFound
		}
		s.logger.Error("Get: repository error for stylist=%q: %v", stylistName, err)
		return nil, fmt.Errorf("%w: Get - repository error: %w", ErrInternal, err)
	}

	return models.FromDomainSchedule(schedule), nil
}

// Upsert создаёт или полностью заменяет расписание мастера.
// Перевёрнутые интервалы и неизвестные дни недели отклоняются здесь, а не в движке доступности.
func (s *Service) Upsert(ctx context.Context, stylistName string, req *models.UpsertScheduleRequest) (*models.ScheduleResponse, error) {
	s.logger.Info("Upsert: saving schedule of stylist=%q", stylistName)

	schedule := req.ToDomain(strings.TrimSpace(stylistName))
	if err := availability.ValidateSchedule(schedule); err != nil {
		s.logger.Warn("Upsert: invalid schedule of stylist=%q: %v", stylistName, err)
		return nil, fmt.Errorf("%w: %w", ErrInvalidSchedule, err)
	}

	var saved *domain.StaffSchedule
	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		var err error
		saved, err = s.scheduleRepo.Upsert(txCtx, schedule)
		return err
	})
	if err != nil {
		s.logger.Error("Upsert: repository error for stylist=%q: %v", stylistName, err)
		return nil, fmt.Errorf("%w: Upsert - repository error: %w", ErrInternal, err)
	}

	s.logger.Info("Upsert: saved schedule of stylist=%q", saved.StylistName)
	return models.FromDomainSchedule(saved), nil
}

// Delete удаляет расписание мастера. Существующие записи не затрагиваются.
func (s *Service) Delete(ctx context.Context, stylistName string) error {
	if err := s.scheduleRepo.Delete(ctx, stylistName); err != nil {
		if errors.Is(err, scheduleRepo.ErrScheduleNotFound) {
			s.logger.Warn("Delete: schedule of stylist=%q not found", stylistName)
			return ErrScheduleNotFound
		}
		s.logger.Error("Delete: repository error for stylist=%q: %v", stylistName, err)
		return fmt.Errorf("%w: Delete - repository error: %w", ErrInternal, err)
	}

	s.logger.Info("Delete: deleted schedule of stylist=%q", stylistName)
	return nil
}

// BlockDate делает календарную дату полностью недоступной для мастера
func (s *Service) BlockDate(ctx context.Context, stylistName, date string) error {
	parsed, err := parseDate(date)
	if err != nil {
		s.logger.Warn("BlockDate: invalid date %q for stylist=%q", date, stylistName)
		return err
	}

	err = s.txManager.Do(ctx, func(txCtx context.Context) error {
		schedule, err := s.scheduleRepo.GetByStylist(txCtx, stylistName)
		if err != nil {
			return err
		}
		if !schedule.IsDateBlocked(parsed) && len(schedule.BlockedDates) >= domain.MaxBlockedDates {
			return fmt.Errorf("%w: at most %d blocked dates allowed", ErrInvalidInput, domain.MaxBlockedDates)
		}
		return s.scheduleRepo.AddBlockedDate(txCtx, stylistName, parsed)
	})
	if err != nil {
		return s.mapBlockedDateError("BlockDate", stylistName, err)
	}

	s.logger.Info("BlockDate: blocked %s for stylist=%q", date, stylistName)
	return nil
}

// UnblockDate снимает блокировку даты; снятие отсутствующей блокировки не ошибка
func (s *Service) UnblockDate(ctx context.Context, stylistName, date string) error {
	parsed, err := parseDate(date)
	if err != nil {
		s.logger.Warn("UnblockDate: invalid date %q for stylist=%q", date, stylistName)
		return err
	}

	if err := s.scheduleRepo.RemoveBlockedDate(ctx, stylistName, parsed); err != nil {
		return s.mapBlockedDateError("UnblockDate", stylistName, err)
	}

	s.logger.Info("UnblockDate: unblocked %s for stylist=%q", date, stylistName)
	return nil
}

func (s *Service) mapBlockedDateError(op, stylistName string, err error) error {
	switch {
	case errors.Is(err, scheduleRepo.ErrScheduleNotFound):
		s.logger.Warn("%s: schedule of stylist=%q not found", op, stylistName)
		return ErrScheduleNotFound
	case errors.Is(err, ErrInvalidInput):
		s.logger.Warn("%s: %v", op, err)
		return err
	default:
		s.logger.Error("%s: repository error for stylist=%q: %v", op, stylistName, err)
		return fmt.Errorf("%w: %s - repository error: %w", ErrInternal, op, err)
	}
}

func parseDate(date string) (time.Time, error) {
	parsed, err := time.Parse(domain.DateFormat, date)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: date must be YYYY-MM-DD", ErrInvalidInput)
	}
	return parsed, nil
}
