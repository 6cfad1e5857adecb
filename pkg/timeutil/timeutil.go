// Package timeutil anchors all calendar math to the restaurant's
// operational timezone. Requirements and templates are defined in
// terms of calendar days and weekdays as experienced by the business,
// so "today" and day-of-week must never depend on the server's locale.
package timeutil

import (
	"fmt"
	"time"
)

// DateLayout is the canonical calendar-date format used in the store.
const DateLayout = "2006-01-02"

// Location resolves a timezone name like "America/New_York".
func Location(name string) (*time.Location, error) {
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("load timezone %q: %w", name, err)
	}
	return loc, nil
}

// ParseDate converts a date-only string or an ISO datetime string into
// midnight of the calendar date a human in loc would call it.
func ParseDate(s string, loc *time.Location) (time.Time, error) {
	if t, err := time.ParseInLocation(DateLayout, s, loc); err == nil {
		return t, nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return Midnight(t.In(loc)), nil
	}
	// ISO datetime without offset: interpret in the operational zone.
	if t, err := time.ParseInLocation("2006-01-02T15:04:05", s, loc); err == nil {
		return Midnight(t), nil
	}
	return time.Time{}, fmt.Errorf("unrecognized date %q", s)
}

// Midnight truncates t to the start of its calendar day, keeping its
// location.
func Midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// FormatDate renders a time as its calendar date.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// Today returns the current calendar date in loc.
func Today(loc *time.Location) string {
	return FormatDate(time.Now().In(loc))
}

// DayOfWeek returns the weekday of a date string, 0=Sunday..6=Saturday.
func DayOfWeek(date string, loc *time.Location) (int, error) {
	t, err := ParseDate(date, loc)
	if err != nil {
		return 0, err
	}
	return int(t.Weekday()), nil
}

// DateRange expands an inclusive start..end range into the ordered
// sequence of date strings.
func DateRange(start, end string, loc *time.Location) ([]string, error) {
	from, err := ParseDate(start, loc)
	if err != nil {
		return nil, err
	}
	to, err := ParseDate(end, loc)
	if err != nil {
		return nil, err
	}
	if to.Before(from) {
		return nil, fmt.Errorf("date range end %s is before start %s", FormatDate(to), FormatDate(from))
	}

	var dates []string
	for d := from; !d.After(to); d = d.AddDate(0, 0, 1) {
		dates = append(dates, FormatDate(d))
	}
	return dates, nil
}
