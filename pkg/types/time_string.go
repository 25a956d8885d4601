package types

import (
	"database/sql/driver"
	"errors"
	"fmt"
	"time"
)

// timeFormat формат времени HH:MM
const timeFormat = "15:04"

var (
	// ErrInvalidTimeString возвращается при некорректном формате строки времени
	ErrInvalidTimeString = errors.New("invalid time string format, expected HH:MM")
)

// TimeString представляет время суток в формате "HH:MM".
// Хранится в БД как строка (колонка TIME/VARCHAR), сравнивается лексикографически.
type TimeString string

// NewTimeString создает TimeString из time.Time (берёт только часы и минуты)
func NewTimeString(t time.Time) TimeString {
	return TimeString(t.Format(timeFormat))
}

// NewTimeStringFromString создает TimeString из строки с валидацией формата
func NewTimeStringFromString(s string) (TimeString, error) {
	ts := TimeString(s)
	if err := ts.Validate(); err != nil {
		return "", err
	}
	return ts, nil
}

// Validate проверяет, что строка соответствует формату HH:MM
func (t TimeString) Validate() error {
	if _, err := time.Parse(timeFormat, string(t)); err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidTimeString, string(t))
	}
	return nil
}

// IsZero возвращает true, если значение не задано
func (t TimeString) IsZero() bool {
	return t == ""
}

// String возвращает строковое представление "HH:MM"
func (t TimeString) String() string {
	return string(t)
}

// IsBefore возвращает true, если t строго раньше other.
// Формат HH:MM с ведущими нулями допускает лексикографическое сравнение.
func (t TimeString) IsBefore(other TimeString) bool {
	return string(t) < string(other)
}

// IsAfter возвращает true, если t строго позже other
func (t TimeString) IsAfter(other TimeString) bool {
	return string(t) > string(other)
}

// AddMinutes возвращает время, сдвинутое на minutes минут вперёд.
// Переход через полночь не поддерживается - возвращает максимум "23:59".
func (t TimeString) AddMinutes(minutes int) (TimeString, error) {
	parsed, err := time.Parse(timeFormat, string(t))
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrInvalidTimeString, string(t))
	}

	shifted := parsed.Add(time.Duration(minutes) * time.Minute)

	// Не даём уйти на следующие сутки
	if shifted.Day() != parsed.Day() {
		return TimeString("23:59"), nil
	}

	return TimeString(shifted.Format(timeFormat)), nil
}

// Value реализует driver.Valuer для записи в БД
func (t TimeString) Value() (driver.Value, error) {
	return string(t), nil
}

// Scan реализует sql.Scanner для чтения из БД.
// Поддерживает строки и значения TIME, приходящие как time.Time.
func (t *TimeString) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*t = ""
		return nil
	case string:
		*t = normalize(v)
		return nil
	case []byte:
		*t = normalize(string(v))
		return nil
	case time.Time:
		*t = NewTimeString(v)
		return nil
	default:
		return fmt.Errorf("%w: unsupported source type %T", ErrInvalidTimeString, src)
	}
}

// normalize обрезает секунды у значений вида "HH:MM:SS" из колонок TIME
func normalize(s string) TimeString {
	if len(s) > len(timeFormat) {
		s = s[:len(timeFormat)]
	}
	return TimeString(s)
}
