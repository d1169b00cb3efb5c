package schedule

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/pkg/dbmetrics"
	"github.com/m04kA/SMC-SalonBooking/pkg/psqlbuilder"
	"github.com/m04kA/SMC-SalonBooking/pkg/types"
)

const (
	tableSchedules    = "stylist_schedules"
	tableWorkingHours = "stylist_working_hours"
	tableBreaks       = "stylist_breaks"
	tableBlockedDates = "stylist_blocked_dates"
)

// Repository репозиторий расписаний мастеров.
// Расписание хранится в четырёх таблицах и собирается в domain.StaffSchedule.
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория расписаний
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetAll возвращает все расписания, упорядоченные по имени мастера
func (r *Repository) GetAll(ctx context.Context) ([]domain.StaffSchedule, error) {
	return r.load(ctx, nil)
}

// GetByStylist возвращает расписание одного мастера
func (r *Repository) GetByStylist(ctx context.Context, stylistName string) (*domain.StaffSchedule, error) {
	schedules, err := r.load(ctx, &stylistName)
	if err != nil {
		return nil, err
	}
	if len(schedules) == 0 {
		return nil, ErrScheduleNotFound
	}
	return &schedules[0], nil
}

// Upsert целиком заменяет расписание мастера.
// Выполняет несколько запросов, поэтому вызывать нужно внутри транзакции.
func (r *Repository) Upsert(ctx context.Context, schedule *domain.StaffSchedule) (*domain.StaffSchedule, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert(tableSchedules).
		Columns("stylist_name").
		Values(schedule.StylistName).
		Suffix("ON CONFLICT (stylist_name) DO UPDATE SET updated_at = NOW() RETURNING created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Upsert - build upsert query: %w", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&createdAt, &updatedAt); err != nil {
		return nil, fmt.Errorf("%w: Upsert - execute upsert: %w", ErrExecQuery, err)
	}
	schedule.CreatedAt = createdAt.Time
	schedule.UpdatedAt = updatedAt.Time

	// Дочерние таблицы пересоздаются целиком
	for _, table := range []string{tableWorkingHours, tableBreaks, tableBlockedDates} {
		if err := r.deleteChildren(ctx, executor, table, schedule.StylistName); err != nil {
			return nil, err
		}
	}

	if len(schedule.WorkingHours) > 0 {
		insert := psqlbuilder.Insert(tableWorkingHours).
			Columns("stylist_name", "weekday", "is_working", "start_time", "end_time")
		for _, weekday := range domain.Weekdays {
			day, ok := schedule.WorkingHours[weekday]
			if !ok {
				continue
			}
			insert = insert.Values(schedule.StylistName, weekday, day.IsWorking, day.StartTime, day.EndTime)
		}
		if err := r.exec(ctx, executor, "Upsert - insert working hours", insert); err != nil {
			return nil, err
		}
	}

	if len(schedule.BreakTimes) > 0 {
		insert := psqlbuilder.Insert(tableBreaks).
			Columns("stylist_name", "position", "start_time", "end_time")
		for i, br := range schedule.BreakTimes {
			insert = insert.Values(schedule.StylistName, i, br.StartTime, br.EndTime)
		}
		if err := r.exec(ctx, executor, "Upsert - insert breaks", insert); err != nil {
			return nil, err
		}
	}

	if len(schedule.BlockedDates) > 0 {
		insert := psqlbuilder.Insert(tableBlockedDates).
			Columns("stylist_name", "blocked_date").
			Suffix("ON CONFLICT DO NOTHING")
		for _, date := range schedule.BlockedDates {
			insert = insert.Values(schedule.StylistName, date)
		}
		if err := r.exec(ctx, executor, "Upsert - insert blocked dates", insert); err != nil {
			return nil, err
		}
	}

	return schedule, nil
}

// Delete удаляет расписание мастера (дочерние строки удаляются каскадно)
func (r *Repository) Delete(ctx context.Context, stylistName string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete(tableSchedules).
		Where(squirrel.Eq{"stylist_name": stylistName}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %w", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Delete - execute delete: %w", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Delete - get rows affected: %w", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrScheduleNotFound
	}

	return nil
}

// AddBlockedDate блокирует дату для мастера. Повторная блокировка не ошибка.
func (r *Repository) AddBlockedDate(ctx context.Context, stylistName string, date time.Time) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	if err := r.ensureExists(ctx, executor, stylistName); err != nil {
		return err
	}

	insert := psqlbuilder.Insert(tableBlockedDates).
		Columns("stylist_name", "blocked_date").
		Values(stylistName, date.Format(domain.DateFormat)).
		Suffix("ON CONFLICT DO NOTHING")

	return r.exec(ctx, executor, "AddBlockedDate - insert", insert)
}

// RemoveBlockedDate снимает блокировку даты. Отсутствие блокировки не ошибка.
func (r *Repository) RemoveBlockedDate(ctx context.Context, stylistName string, date time.Time) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	if err := r.ensureExists(ctx, executor, stylistName); err != nil {
		return err
	}

	query, args, err := psqlbuilder.Delete(tableBlockedDates).
		Where(squirrel.Eq{"stylist_name": stylistName, "blocked_date": date.Format(domain.DateFormat)}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: RemoveBlockedDate - build delete query: %w", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: RemoveBlockedDate - execute delete: %w", ErrExecQuery, err)
	}

	return nil
}

// load загружает расписания (все или одного мастера) и собирает их из дочерних таблиц
func (r *Repository) load(ctx context.Context, stylistName *string) ([]domain.StaffSchedule, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	schedules, err := r.loadSchedules(ctx, executor, stylistName)
	if err != nil {
		return nil, err
	}
	if len(schedules) == 0 {
		return schedules, nil
	}

	index := make(map[string]*domain.StaffSchedule, len(schedules))
	for i := range schedules {
		index[schedules[i].StylistName] = &schedules[i]
	}

	if err := r.loadWorkingHours(ctx, executor, stylistName, index); err != nil {
		return nil, err
	}
	if err := r.loadBreaks(ctx, executor, stylistName, index); err != nil {
		return nil, err
	}
	if err := r.loadBlockedDates(ctx, executor, stylistName, index); err != nil {
		return nil, err
	}

	return schedules, nil
}

func (r *Repository) loadSchedules(ctx context.Context, executor DBExecutor, stylistName *string) ([]domain.StaffSchedule, error) {
	query, args, err := filterByStylist(
		psqlbuilder.Select("stylist_name", "created_at", "updated_at").
			From(tableSchedules).
			OrderBy("stylist_name ASC"),
		stylistName,
	).ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: loadSchedules - build select query: %w", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: loadSchedules - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	schedules := make([]domain.StaffSchedule, 0)
	for rows.Next() {
		var createdAt, updatedAt sql.NullTime
		schedule := domain.StaffSchedule{
			WorkingHours: make(map[string]domain.WorkingDay),
			BlockedDates: make([]string, 0),
			BreakTimes:   make([]domain.BreakTime, 0),
		}
		if err := rows.Scan(&schedule.StylistName, &createdAt, &updatedAt); err != nil {
			return nil, fmt.Errorf("%w: loadSchedules - scan row: %w", ErrScanRow, err)
		}
		schedule.CreatedAt = createdAt.Time
		schedule.UpdatedAt = updatedAt.Time
		schedules = append(schedules, schedule)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: loadSchedules - rows error: %w", ErrScanRow, err)
	}

	return schedules, nil
}

func (r *Repository) loadWorkingHours(ctx context.Context, executor DBExecutor, stylistName *string, index map[string]*domain.StaffSchedule) error {
	query, args, err := filterByStylist(
		psqlbuilder.Select("stylist_name", "weekday", "is_working", "start_time", "end_time").
			From(tableWorkingHours),
		stylistName,
	).ToSql()
	if err != nil {
		return fmt.Errorf("%w: loadWorkingHours - build select query: %w", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: loadWorkingHours - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			name    string
			weekday string
			day     domain.WorkingDay
		)
		if err := rows.Scan(&name, &weekday, &day.IsWorking, &day.StartTime, &day.EndTime); err != nil {
			return fmt.Errorf("%w: loadWorkingHours - scan row: %w", ErrScanRow, err)
		}
		if schedule, ok := index[name]; ok {
			schedule.WorkingHours[weekday] = day
		}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("%w: loadWorkingHours - rows error: %w", ErrScanRow, err)
	}

	return nil
}

func (r *Repository) loadBreaks(ctx context.Context, executor DBExecutor, stylistName *string, index map[string]*domain.StaffSchedule) error {
	query, args, err := filterByStylist(
		psqlbuilder.Select("stylist_name", "start_time", "end_time").
			From(tableBreaks).
			OrderBy("stylist_name ASC", "position ASC"),
		stylistName,
	).ToSql()
	if err != nil {
		return fmt.Errorf("%w: loadBreaks - build select query: %w", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: loadBreaks - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			name       string
			start, end types.TimeOfDay
		)
		if err := rows.Scan(&name, &start, &end); err != nil {
			return fmt.Errorf("%w: loadBreaks - scan row: %w", ErrScanRow, err)
		}
		if schedule, ok := index[name]; ok {
			schedule.BreakTimes = append(schedule.BreakTimes, domain.BreakTime{StartTime: start, EndTime: end})
		}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("%w: loadBreaks - rows error: %w", ErrScanRow, err)
	}

	return nil
}

func (r *Repository) loadBlockedDates(ctx context.Context, executor DBExecutor, stylistName *string, index map[string]*domain.StaffSchedule) error {
	query, args, err := filterByStylist(
		psqlbuilder.Select("stylist_name", "blocked_date").
			From(tableBlockedDates).
			OrderBy("stylist_name ASC", "blocked_date ASC"),
		stylistName,
	).ToSql()
	if err != nil {
		return fmt.Errorf("%w: loadBlockedDates - build select query: %w", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: loadBlockedDates - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			name string
			date time.Time
		)
		if err := rows.Scan(&name, &date); err != nil {
			return fmt.Errorf("%w: loadBlockedDates - scan row: %w", ErrScanRow, err)
		}
		if schedule, ok := index[name]; ok {
			schedule.BlockedDates = append(schedule.BlockedDates, date.Format(domain.DateFormat))
		}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("%w: loadBlockedDates - rows error: %w", ErrScanRow, err)
	}

	return nil
}

func (r *Repository) ensureExists(ctx context.Context, executor DBExecutor, stylistName string) error {
	query, args, err := psqlbuilder.Select("1").
		From(tableSchedules).
		Where(squirrel.Eq{"stylist_name": stylistName}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: ensureExists - build select query: %w", ErrBuildQuery, err)
	}

	var one int
	err = executor.QueryRowContext(ctx, query, args...).Scan(&one)
	if err == sql.ErrNoRows {
		return ErrScheduleNotFound
	}
	if err != nil {
		return fmt.Errorf("%w: ensureExists - scan row: %w", ErrScanRow, err)
	}

	return nil
}

func (r *Repository) deleteChildren(ctx context.Context, executor DBExecutor, table, stylistName string) error {
	query, args, err := psqlbuilder.Delete(table).
		Where(squirrel.Eq{"stylist_name": stylistName}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: deleteChildren(%s) - build delete query: %w", ErrBuildQuery, table, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: deleteChildren(%s) - execute delete: %w", ErrExecQuery, table, err)
	}

	return nil
}

func (r *Repository) exec(ctx context.Context, executor DBExecutor, op string, builder squirrel.InsertBuilder) error {
	query, args, err := builder.ToSql()
	if err != nil {
		return fmt.Errorf("%w: %s - build query: %w", ErrBuildQuery, op, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: %s - execute: %w", ErrExecQuery, op, err)
	}

	return nil
}

// filterByStylist добавляет условие по мастеру, если он указан
func filterByStylist(builder squirrel.SelectBuilder, stylistName *string) squirrel.SelectBuilder {
	if stylistName == nil {
		return builder
	}
	return builder.Where(squirrel.Eq{"stylist_name": *stylistName})
}
