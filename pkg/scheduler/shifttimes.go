package scheduler

import (
	"fmt"
	"time"

	"github.com/afuentes/roster-api-go/pkg/timeutil"
)

// ShiftTimer derives the concrete start/end timestamps for a shift on
// a date. Implementations are lookups over business configuration; the
// algorithm only relies on end being strictly after start.
type ShiftTimer interface {
	Times(date, shiftType, role string) (start, end time.Time, err error)
}

// Window is a pair of clock times ("HH:MM") on a shift's date.
type Window struct {
	Start string
	End   string
}

// ClockTable is a ShiftTimer backed by a static clock-time table keyed
// by shift type then role. A "default" role entry covers roles without
// their own window. A window whose end is at or before its start is a
// close shift running past midnight; the end rolls to the next day.
type ClockTable struct {
	Windows map[string]map[string]Window
	Loc     *time.Location
}

const defaultRoleKey = "default"

// Times implements ShiftTimer.
func (t *ClockTable) Times(date, shiftType, role string) (time.Time, time.Time, error) {
	roles, ok := t.Windows[shiftType]
	if !ok {
		return time.Time{}, time.Time{}, fmt.Errorf("no shift times configured for shift type %q", shiftType)
	}
	w, ok := roles[role]
	if !ok {
		w, ok = roles[defaultRoleKey]
	}
	if !ok {
		return time.Time{}, time.Time{}, fmt.Errorf("no shift times configured for %s/%s", shiftType, role)
	}

	day, err := timeutil.ParseDate(date, t.Loc)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}

	start, err := atClock(day, w.Start)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("shift %s/%s start: %w", shiftType, role, err)
	}
	end, err := atClock(day, w.End)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("shift %s/%s end: %w", shiftType, role, err)
	}
	if !end.After(start) {
		end = end.AddDate(0, 0, 1)
	}

	return start, end, nil
}

// atClock places an "HH:MM" clock time on day's calendar date.
func atClock(day time.Time, clock string) (time.Time, error) {
	c, err := time.Parse("15:04", clock)
	if err != nil {
		return time.Time{}, fmt.Errorf("bad clock time %q: %w", clock, err)
	}
	return time.Date(day.Year(), day.Month(), day.Day(), c.Hour(), c.Minute(), 0, 0, day.Location()), nil
}
