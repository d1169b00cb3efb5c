package block_date

import "context"

type ScheduleService interface {
	BlockDate(ctx context.Context, stylistName, date string) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
