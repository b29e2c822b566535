package workrave

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"informant/internal/models"
)

const (
	dateRangeFields = 10
	statsFields     = 7

	// Years are stored as an offset from 1900, months from zero.
	yearOffset = 1900

	// Dates are keyed and exchanged as YYYY-MM-DD.
	maxYear = 9999
)

// DecodeDateRange decodes the fields of a D line:
// start day, month (0-based), year (since 1900), hour, minute, then the same five for the end.
func DecodeDateRange(fields string, loc *time.Location) (models.DateRange, error) {
	values, err := decodeInts(fields, dateRangeFields, DateRangeLine)
	if err != nil {
		return models.DateRange{}, err
	}
	for i, v := range values {
		if v < 0 {
			return models.DateRange{}, &ParseError{
				Kind:   DateRangeLine,
				Reason: fmt.Sprintf("field %d is negative (%d)", i, v),
			}
		}
	}
	if loc == nil {
		loc = time.Local
	}

	start, err := timestamp(values[0:5], loc)
	if err != nil {
		return models.DateRange{}, &ParseError{Kind: DateRangeLine, Reason: "start", Err: err}
	}
	end, err := timestamp(values[5:10], loc)
	if err != nil {
		return models.DateRange{}, &ParseError{Kind: DateRangeLine, Reason: "end", Err: err}
	}
	return models.DateRange{Start: start, End: end}, nil
}

// DecodeStats decodes the fields of an m line. The first field is reserved and ignored;
// raw movement counts are normalized to metres.
func DecodeStats(fields string) (models.InputStats, error) {
	values, err := decodeInts(fields, statsFields, StatsLine)
	if err != nil {
		return models.InputStats{}, err
	}
	for i, v := range values {
		if v < 0 {
			return models.InputStats{}, &ParseError{
				Kind:   StatsLine,
				Reason: fmt.Sprintf("field %d is negative (%d)", i, v),
			}
		}
	}
	return models.InputStats{
		TotalActiveTimeSeconds:  values[1],
		TotalMouseMovement:      Normalize(values[2]),
		TotalMouseClickMovement: Normalize(values[3]),
		TotalMouseMovementTime:  values[4],
		TotalMouseClicks:        values[5],
		TotalKeystrokes:         values[6],
	}, nil
}

func decodeInts(fields string, want int, kind LineKind) ([]int64, error) {
	parts := strings.Fields(fields)
	if len(parts) != want {
		return nil, &ParseError{
			Kind:   kind,
			Reason: fmt.Sprintf("expected %d fields, got %d", want, len(parts)),
		}
	}
	values := make([]int64, len(parts))
	for i, p := range parts {
		v, err := strconv.ParseInt(p, 10, 64)
		if err != nil {
			return nil, &ParseError{
				Kind:   kind,
				Reason: fmt.Sprintf("field %d is not an integer", i),
				Err:    err,
			}
		}
		values[i] = v
	}
	return values, nil
}

// timestamp builds a minute-precision time from day, month0, year offset, hour, minute.
func timestamp(v []int64, loc *time.Location) (time.Time, error) {
	if v[2] > maxYear-yearOffset {
		return time.Time{}, fmt.Errorf("year offset %d out of range", v[2])
	}
	day, month0, year := int(v[0]), int(v[1]), int(v[2])+yearOffset
	hour, minute := int(v[3]), int(v[4])

	if month0 < 0 || month0 > 11 {
		return time.Time{}, fmt.Errorf("month %d out of range", month0)
	}
	month := time.Month(month0 + 1)
	if last := daysIn(year, month); day < 1 || day > last {
		return time.Time{}, fmt.Errorf("day %d out of range for %04d-%02d", day, year, int(month))
	}
	if hour < 0 || hour > 23 {
		return time.Time{}, fmt.Errorf("hour %d out of range", hour)
	}
	if minute < 0 || minute > 59 {
		return time.Time{}, fmt.Errorf("minute %d out of range", minute)
	}
	return time.Date(year, month, day, hour, minute, 0, 0, loc), nil
}

func daysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
