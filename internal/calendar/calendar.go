// Package calendar parses and formats the date strings carried by daily records.
//
// Parsing never consults the process locale or local time zone. Inputs must
// match one of the layouts below; date-only and zone-less inputs are read as UTC.
//
//	2006-01-02
//	2006-01-02T15:04:05.999999999Z07:00 (RFC 3339, with or without fraction)
//	2006-01-02T15:04:05
//	2006-01-02 15:04:05
package calendar

import (
	"fmt"
	"strings"
	"time"
)

// DateLayout is the canonical day layout used for storage and queries.
const DateLayout = "2006-01-02"

var layouts = []string{
	DateLayout,
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
}

// ParseError reports a date string that matches none of the accepted layouts.
type ParseError struct {
	Input string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("unrecognized date %q", e.Input)
}

// ParseDate parses s using the fixed layout list.
func ParseDate(s string) (time.Time, error) {
	v := strings.TrimSpace(s)
	for _, layout := range layouts {
		if t, err := time.ParseInLocation(layout, v, time.UTC); err == nil {
			return t, nil
		}
	}
	return time.Time{}, &ParseError{Input: s}
}

// EpochMillis returns the Unix time of s in milliseconds.
func EpochMillis(s string) (int64, error) {
	t, err := ParseDate(s)
	if err != nil {
		return 0, err
	}
	return t.UnixMilli(), nil
}

// FormatMonthDay renders s as "M/D" without padding, e.g. "3/5".
func FormatMonthDay(s string) (string, error) {
	t, err := ParseDate(s)
	if err != nil {
		return "", err
	}
	return MonthDay(t), nil
}

// MonthDay renders t as "M/D" in t's own location.
func MonthDay(t time.Time) string {
	return fmt.Sprintf("%d/%d", int(t.Month()), t.Day())
}

// Day formats t with DateLayout in UTC.
func Day(t time.Time) string {
	return t.UTC().Format(DateLayout)
}
