package model

import (
	"database/sql/driver"
	"fmt"
	"time"
)

// Date is a calendar day stored in a DATE column. It is written as YYYY-MM-DD so the session
// timezone of the database never shifts it.
type Date struct {
	time.Time
}

// ParseDate reads a YYYY-MM-DD string.
func ParseDate(value string) (Date, error) {
	t, err := time.Parse(time.DateOnly, value)
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q: %w", value, err)
	}

	return Date{Time: t}, nil
}

func (d Date) String() string {
	return d.Format(time.DateOnly)
}

// Value implements driver.Valuer.
func (d Date) Value() (driver.Value, error) {
	return d.String(), nil
}

// Scan implements sql.Scanner.
func (d *Date) Scan(src any) error {
	switch value := src.(type) {
	case time.Time:
		d.Time = time.Date(value.Year(), value.Month(), value.Day(), 0, 0, 0, 0, time.UTC)

		return nil
	case []byte:
		return d.scanString(string(value))
	case string:
		return d.scanString(value)
	case nil:
		d.Time = time.Time{}

		return nil
	default:
		return fmt.Errorf("cannot scan %T into Date", src)
	}
}

func (d *Date) scanString(value string) error {
	if len(value) > len(time.DateOnly) {
		value = value[:len(time.DateOnly)]
	}

	parsed, err := ParseDate(value)
	if err != nil {
		return err
	}

	*d = parsed

	return nil
}
