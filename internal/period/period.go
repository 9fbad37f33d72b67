// Package period normalizes the date arguments of flow reports.
package period

import (
	"fmt"
	"time"
)

// DateFormat is the calendar date format accepted on the command line.
const DateFormat = "2006-01-02"

// ParseError reports a date argument that could not be parsed. It names
// the offending field so CLI callers can reject it precisely.
type ParseError struct {
	Field string
	Value string
	Err   error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("invalid %s %q: want %s", e.Field, e.Value, DateFormat)
}

func (e *ParseError) Unwrap() error { return e.Err }

// RangeError reports a period whose start falls after its end. The
// intent is ambiguous, so the dates are never silently swapped.
type RangeError struct {
	Start time.Time
	End   time.Time
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("start date %s is after end date %s",
		e.Start.Format(DateFormat), e.End.Format(DateFormat))
}

// ParseDate parses a calendar date, wrapping failures in a ParseError
// that names the field.
func ParseDate(field, value string) (time.Time, error) {
	d, err := time.Parse(DateFormat, value)
	if err != nil {
		return time.Time{}, &ParseError{Field: field, Value: value, Err: err}
	}
	return d, nil
}

// Resolve normalizes optional start/end date strings, defaulting to
// year-to-date: a missing start becomes January 1 of the current year
// and a missing end becomes today. Each default applies independently.
func Resolve(start, end string) (time.Time, time.Time, error) {
	return ResolveAt(time.Now(), start, end)
}

// ResolveAt is Resolve with an explicit notion of "now".
func ResolveAt(now time.Time, start, end string) (time.Time, time.Time, error) {
	var (
		startDate time.Time
		endDate   time.Time
		err       error
	)
	if start == "" {
		startDate = time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, time.UTC)
	} else if startDate, err = ParseDate("start date", start); err != nil {
		return time.Time{}, time.Time{}, err
	}
	if end == "" {
		endDate = time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	} else if endDate, err = ParseDate("end date", end); err != nil {
		return time.Time{}, time.Time{}, err
	}
	if startDate.After(endDate) {
		return time.Time{}, time.Time{}, &RangeError{Start: startDate, End: endDate}
	}
	return startDate, endDate, nil
}
