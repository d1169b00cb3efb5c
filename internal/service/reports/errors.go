package reports

import "errors"

var (
	// ErrInvalidPeriod возвращается при некорректном периоде отчёта
	ErrInvalidPeriod = errors.New("invalid report period")

	// ErrExportFailed возвращается, когда не удалось сформировать xlsx файл
	ErrExportFailed = errors.New("failed to generate xlsx report")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
