package schedules

import "errors"

var (
	// ErrScheduleNotFound возвращается, когда расписание мастера не найдено
	ErrScheduleNotFound = errors.New("schedule not found")

	// ErrInvalidSchedule возвращается, когда расписание не прошло валидацию
	ErrInvalidSchedule = errors.New("invalid schedule")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
