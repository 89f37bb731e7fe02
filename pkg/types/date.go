package types

import (
	"database/sql/driver"
	"errors"
	"fmt"
	"time"
)

// DateLayout формат календарной даты YYYY-MM-DD
const DateLayout = "2006-01-02"

// ErrInvalidDateString возвращается при некорректном формате даты
var ErrInvalidDateString = errors.New("invalid date string format")

// DateString календарная дата без времени в формате "YYYY-MM-DD".
// Строки в этом формате сравниваются лексикографически так же, как даты
type DateString string

// NewDateString создает дату из time.Time (берется календарный день в UTC)
func NewDateString(t time.Time) DateString {
	return DateString(t.UTC().Format(DateLayout))
}

// NewDateStringFromString парсит и валидирует строку даты
func NewDateStringFromString(s string) (DateString, error) {
	d := DateString(s)
	if err := d.Validate(); err != nil {
		return "", err
	}
	return d, nil
}

// Validate проверяет формат даты
func (d DateString) Validate() error {
	if _, err := time.Parse(DateLayout, string(d)); err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidDateString, string(d))
	}
	return nil
}

// IsZero true для пустой даты
func (d DateString) IsZero() bool {
	return d == ""
}

// Time возвращает полночь этой даты в UTC
func (d DateString) Time() (time.Time, error) {
	t, err := time.Parse(DateLayout, string(d))
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDateString, string(d))
	}
	return t, nil
}

// AddDays сдвигает дату на n дней
func (d DateString) AddDays(n int) (DateString, error) {
	t, err := d.Time()
	if err != nil {
		return "", err
	}
	return NewDateString(t.AddDate(0, 0, n)), nil
}

// IsBefore true, если d строго раньше other
func (d DateString) IsBefore(other DateString) bool {
	return d < other
}

// IsAfter true, если d строго позже other
func (d DateString) IsAfter(other DateString) bool {
	return d > other
}

func (d DateString) String() string {
	return string(d)
}

// Value реализует driver.Valuer
func (d DateString) Value() (driver.Value, error) {
	if d.IsZero() {
		return nil, nil
	}
	return d.Time()
}

// Scan реализует sql.Scanner для колонок DATE / TIMESTAMPTZ
func (d *DateString) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*d = ""
	case time.Time:
		*d = NewDateString(v)
	case string:
		parsed, err := NewDateStringFromString(v[:min(len(v), len(DateLayout))])
		if err != nil {
			return err
		}
		*d = parsed
	case []byte:
		return d.Scan(string(v))
	default:
		return fmt.Errorf("%w: unsupported type %T", ErrInvalidDateString, src)
	}
	return nil
}

// TruncateToDay обнуляет время, оставляя календарный день в UTC
func TruncateToDay(t time.Time) time.Time {
	y, m, day := t.UTC().Date()
	return time.Date(y, m, day, 0, 0, 0, 0, time.UTC)
}
