package models

import (
	"fmt"
	"time"
)

const (
	dateLayout = "2006-01-02"

	// unixEpochOrdinal is the proleptic ordinal of 1970-01-01 when 0001-01-01 is day 1.
	unixEpochOrdinal = 719163
	secondsPerDay    = 24 * 60 * 60
)

// Date is a calendar date without a time component.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// DateOf returns the calendar date of t in t's own location.
func DateOf(t time.Time) Date {
	y, m, d := t.Date()
	return Date{Year: y, Month: m, Day: d}
}

// DateFromOrdinal inverts Date.Ordinal.
func DateFromOrdinal(ordinal int) Date {
	return DateOf(time.Unix(int64(ordinal-unixEpochOrdinal)*secondsPerDay, 0).UTC())
}

// ParseDate parses a YYYY-MM-DD string.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q: %w", s, err)
	}
	return DateOf(t), nil
}

// Ordinal returns the proleptic Gregorian day number, 0001-01-01 being day 1.
// Consecutive calendar days map to consecutive integers.
func (d Date) Ordinal() int {
	unix := time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC).Unix()
	return int(floorDiv(unix, secondsPerDay)) + unixEpochOrdinal
}

func (d Date) Before(other Date) bool {
	return compareDates(d, other) < 0
}

func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, int(d.Month), d.Day)
}

func (d Date) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

func (d *Date) UnmarshalText(text []byte) error {
	parsed, err := ParseDate(string(text))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

func floorDiv(a, b int64) int64 {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}
