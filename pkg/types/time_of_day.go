package types

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

const (
	minutesPerHour = 60
	minutesPerDay  = 24 * minutesPerHour
	noonMinutes    = 12 * minutesPerHour
)

var (
	// ErrInvalidTimeOfDay возвращается, когда строка не соответствует формату "h:mm AM"
	ErrInvalidTimeOfDay = errors.New("invalid time of day format")

	// ErrTimeOutOfRange возвращается, когда время выходит за пределы суток
	ErrTimeOutOfRange = errors.New("time of day out of range")
)

// TimeOfDay время на 12-часовом циферблате ("9:00 AM").
// Хранится как количество минут от полуночи (0-1439).
// Нулевое значение означает "время не задано" (см. IsZero).
type TimeOfDay struct {
	minutes int
	valid   bool
}

// NewTimeOfDay создает время из количества минут от полуночи
func NewTimeOfDay(minutes int) (TimeOfDay, error) {
	if minutes < 0 || minutes >= minutesPerDay {
		return TimeOfDay{}, fmt.Errorf("%w: %d minutes", ErrTimeOutOfRange, minutes)
	}
	return TimeOfDay{minutes: minutes, valid: true}, nil
}

// FromClock возвращает время суток из time.Time (в его локации)
func FromClock(t time.Time) TimeOfDay {
	return TimeOfDay{minutes: t.Hour()*minutesPerHour + t.Minute(), valid: true}
}

// ParseTimeOfDay парсит строку вида "9:00 AM" / "09:30 pm".
// 12 AM -> 0 минут, 12 PM -> 720 минут, остальные PM часы сдвигаются на 12 часов.
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	s = strings.TrimSpace(s)
	if len(s) < 6 {
		return TimeOfDay{}, fmt.Errorf("%w: %q", ErrInvalidTimeOfDay, s)
	}

	// Отделяем AM/PM (пробел перед ним необязателен)
	designator := strings.ToUpper(s[len(s)-2:])
	if designator != "AM" && designator != "PM" {
		return TimeOfDay{}, fmt.Errorf("%w: %q", ErrInvalidTimeOfDay, s)
	}
	clock := strings.TrimSpace(s[:len(s)-2])

	hourStr, minuteStr, ok := strings.Cut(clock, ":")
	if !ok || len(hourStr) == 0 || len(hourStr) > 2 || len(minuteStr) != 2 {
		return TimeOfDay{}, fmt.Errorf("%w: %q", ErrInvalidTimeOfDay, s)
	}

	hour, err := parseDigits(hourStr)
	if err != nil || hour < 1 || hour > 12 {
		return TimeOfDay{}, fmt.Errorf("%w: %q", ErrInvalidTimeOfDay, s)
	}

	minute, err := parseDigits(minuteStr)
	if err != nil || minute > 59 {
		return TimeOfDay{}, fmt.Errorf("%w: %q", ErrInvalidTimeOfDay, s)
	}

	if hour == 12 {
		hour = 0
	}
	total := hour*minutesPerHour + minute
	if designator == "PM" {
		total += noonMinutes
	}

	return TimeOfDay{minutes: total, valid: true}, nil
}

// MustParseTimeOfDay как ParseTimeOfDay, но паникует при ошибке.
// Только для констант и тестовых данных.
func MustParseTimeOfDay(s string) TimeOfDay {
	t, err := ParseTimeOfDay(s)
	if err != nil {
		panic(err)
	}
	return t
}

func parseDigits(s string) (int, error) {
	for _, r := range s {
		if r < '0' || r > '9' {
			return 0, ErrInvalidTimeOfDay
		}
	}
	return strconv.Atoi(s)
}

// Minutes возвращает количество минут от полуночи
func (t TimeOfDay) Minutes() int {
	return t.minutes
}

// IsZero возвращает true, если время не задано
func (t TimeOfDay) IsZero() bool {
	return !t.valid
}

// String форматирует время обратно в "h:mm AM" (без ведущего нуля у часа)
func (t TimeOfDay) String() string {
	if !t.valid {
		return ""
	}

	designator := "AM"
	if t.minutes >= noonMinutes {
		designator = "PM"
	}

	hour := (t.minutes / minutesPerHour) % 12
	if hour == 0 {
		hour = 12
	}

	return fmt.Sprintf("%d:%02d %s", hour, t.minutes%minutesPerHour, designator)
}

// Before возвращает true, если t раньше other
func (t TimeOfDay) Before(other TimeOfDay) bool {
	return t.minutes < other.minutes
}

// After возвращает true, если t позже other
func (t TimeOfDay) After(other TimeOfDay) bool {
	return t.minutes > other.minutes
}

// Equal возвращает true, если времена совпадают
func (t TimeOfDay) Equal(other TimeOfDay) bool {
	return t.valid == other.valid && t.minutes == other.minutes
}

// AddMinutes сдвигает время на n минут. Выход за пределы суток - ошибка.
func (t TimeOfDay) AddMinutes(n int) (TimeOfDay, error) {
	return NewTimeOfDay(t.minutes + n)
}

// On возвращает момент времени t в указанную дату (в локации даты)
func (t TimeOfDay) On(date time.Time) time.Time {
	y, m, d := date.Date()
	return time.Date(y, m, d, t.minutes/minutesPerHour, t.minutes%minutesPerHour, 0, 0, date.Location())
}

// MarshalJSON сериализует время в строку "h:mm AM"
func (t TimeOfDay) MarshalJSON() ([]byte, error) {
	if !t.valid {
		return []byte("null"), nil
	}
	return json.Marshal(t.String())
}

// UnmarshalJSON парсит время из строки "h:mm AM"
func (t *TimeOfDay) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*t = TimeOfDay{}
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidTimeOfDay, err)
	}

	parsed, err := ParseTimeOfDay(s)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// Value сохраняет время в БД как количество минут (SMALLINT)
func (t TimeOfDay) Value() (driver.Value, error) {
	if !t.valid {
		return nil, nil
	}
	return int64(t.minutes), nil
}

// Scan читает время из БД: поддерживает минуты (целое) и строку "h:mm AM"
func (t *TimeOfDay) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*t = TimeOfDay{}
		return nil
	case int64:
		parsed, err := NewTimeOfDay(int(v))
		if err != nil {
			return err
		}
		*t = parsed
		return nil
	case []byte:
		return t.scanString(string(v))
	case string:
		return t.scanString(v)
	default:
		return fmt.Errorf("%w: unsupported scan type %T", ErrInvalidTimeOfDay, src)
	}
}

func (t *TimeOfDay) scanString(s string) error {
	if minutes, err := strconv.Atoi(s); err == nil {
		parsed, err := NewTimeOfDay(minutes)
		if err != nil {
			return err
		}
		*t = parsed
		return nil
	}

	parsed, err := ParseTimeOfDay(s)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}
