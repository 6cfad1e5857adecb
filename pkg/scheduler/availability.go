package scheduler

import "github.com/afuentes/roster-api-go/pkg/models"

type shiftKey struct {
	employeeID uint
	date       string
	shiftType  string
}

type dayKey struct {
	employeeID uint
	date       string
}

// AvailabilityIndex answers "can this employee work this shift?" in
// O(1). The default is permissive: no recorded entry means available.
// That is a business rule, not a fallback: staff opt out, they do not
// opt in. A whole-day entry sets the default for both shifts of its
// date; a shift-specific entry overrides it for that shift only.
type AvailabilityIndex struct {
	byShift map[shiftKey]bool
	byDay   map[dayKey]bool
}

// BuildAvailabilityIndex indexes the availability entries of one
// generation run. O(len(entries)).
func BuildAvailabilityIndex(entries []models.AvailabilityEntry) *AvailabilityIndex {
	ix := &AvailabilityIndex{
		byShift: make(map[shiftKey]bool, len(entries)),
		byDay:   make(map[dayKey]bool),
	}
	for _, e := range entries {
		if e.ShiftType == "" {
			ix.byDay[dayKey{e.EmployeeID, e.Date}] = e.IsAvailable
		} else {
			ix.byShift[shiftKey{e.EmployeeID, e.Date, e.ShiftType}] = e.IsAvailable
		}
	}
	return ix
}

// IsAvailable reports whether an employee can work a shift: the
// shift-specific entry wins, then the whole-day entry, then the
// permissive default.
func (ix *AvailabilityIndex) IsAvailable(employeeID uint, date, shiftType string) bool {
	if v, ok := ix.byShift[shiftKey{employeeID, date, shiftType}]; ok {
		return v
	}
	if v, ok := ix.byDay[dayKey{employeeID, date}]; ok {
		return v
	}
	return true
}
