package scheduler

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/afuentes/roster-api-go/pkg/models"
)

func testLoc(t *testing.T) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)
	return loc
}

func testClock(t *testing.T) *ClockTable {
	t.Helper()
	return &ClockTable{
		Windows: map[string]map[string]Window{
			models.ShiftOpen:  {"default": {Start: "09:00", End: "17:00"}},
			models.ShiftClose: {"default": {Start: "16:00", End: "00:00"}},
		},
		Loc: testLoc(t),
	}
}

func testRoster() []models.Employee {
	return []models.Employee{
		{ID: 1, Name: "Marco", Role: models.RoleCook, IsActive: true},
		{ID: 2, Name: "Dana", Role: models.RoleCook, IsActive: true},
		{ID: 3, Name: "Theo", Role: models.RoleCook, IsActive: true},
		{ID: 4, Name: "Priya", Role: models.RoleBartender, IsActive: true},
		{ID: 5, Name: "Jonah", Role: models.RoleBartender, IsActive: true},
		{ID: 6, Name: "Cal", Role: models.RoleBarback, IsActive: true},
	}
}

func emptyAvailability() *AvailabilityIndex {
	return BuildAvailabilityIndex(nil)
}

// countSlots tallies proposed rows per (date, shift, role).
func countSlots(t *testing.T, roster []models.Employee, rows []models.Schedule) map[string]int {
	t.Helper()
	roles := make(map[uint]string, len(roster))
	for _, e := range roster {
		roles[e.ID] = e.Role
	}
	out := make(map[string]int)
	for _, r := range rows {
		out[fmt.Sprintf("%s/%s/%s", r.Date, r.ShiftType, roles[r.EmployeeID])]++
	}
	return out
}

// Mirrors the canonical scenario: an explicit requirement covers the
// open shift, the Monday template row covers close, and the cook who
// opens may still close the same day.
func TestGenerate_ExplicitOverTemplate(t *testing.T) {
	roster := testRoster()
	dates := []string{"2024-01-08"} // a Monday

	explicit := []models.ShiftRequirement{
		{Date: "2024-01-08", ShiftType: models.ShiftOpen, RoleCounts: models.RoleCounts{Cooks: 1, Bartenders: 1}},
	}
	template := []models.WeeklyScheduleTemplate{
		{Name: "winter", DayOfWeek: 1, ShiftType: models.ShiftClose, RoleCounts: models.RoleCounts{Cooks: 2, Bartenders: 1, Barbacks: 1}, IsActive: true},
		// Template open row must lose to the explicit requirement.
		{Name: "winter", DayOfWeek: 1, ShiftType: models.ShiftOpen, RoleCounts: models.RoleCounts{Cooks: 3, Bartenders: 2, Barbacks: 1}, IsActive: true},
	}

	reqs, err := ResolveRequirements(dates, explicit, template, "", testLoc(t))
	require.NoError(t, err)

	e := NewEngine(roster, reqs, emptyAvailability(), nil, testClock(t))
	res, err := e.Generate(dates)
	require.NoError(t, err)
	assert.Empty(t, res.Warnings)

	slots := countSlots(t, roster, res.Proposed)
	assert.Equal(t, 1, slots["2024-01-08/open/cook"])
	assert.Equal(t, 1, slots["2024-01-08/open/bartender"])
	assert.Equal(t, 0, slots["2024-01-08/open/barback"])
	assert.Equal(t, 2, slots["2024-01-08/close/cook"])
	assert.Equal(t, 1, slots["2024-01-08/close/bartender"])
	assert.Equal(t, 1, slots["2024-01-08/close/barback"])

	// All counters start at zero, so the open cook is the first cook
	// in roster order.
	var openCook uint
	for _, r := range res.Proposed {
		if r.ShiftType == models.ShiftOpen && r.EmployeeID <= 3 {
			openCook = r.EmployeeID
		}
	}
	assert.Equal(t, uint(1), openCook)

	// Open and close are different shifts; the open cook may close too.
	closeCooks := make(map[uint]bool)
	for _, r := range res.Proposed {
		if r.ShiftType == models.ShiftClose && r.EmployeeID <= 3 {
			closeCooks[r.EmployeeID] = true
		}
	}
	assert.Len(t, closeCooks, 2)
}

func TestGenerate_UniquenessInvariant(t *testing.T) {
	roster := testRoster()
	dates := []string{"2024-01-08", "2024-01-09"}

	// Demand more cooks than exist to stress the pool logic.
	reqs := Requirements{
		"2024-01-08": {models.ShiftOpen: {Cooks: 5}, models.ShiftClose: {Cooks: 5}},
		"2024-01-09": {models.ShiftOpen: {Cooks: 5}},
	}

	e := NewEngine(roster, reqs, emptyAvailability(), nil, testClock(t))
	res, err := e.Generate(dates)
	require.NoError(t, err)

	seen := make(map[string]bool)
	for _, r := range res.Proposed {
		key := fmt.Sprintf("%d/%s/%s", r.EmployeeID, r.Date, r.ShiftType)
		assert.False(t, seen[key], "duplicate slot %s", key)
		seen[key] = true
	}
	// 3 cooks per shortfall slot, one warning each.
	assert.Len(t, res.Proposed, 9)
	assert.Len(t, res.Warnings, 3)
}

func TestGenerate_FairnessBound(t *testing.T) {
	roster := testRoster()
	var dates []string
	for d := 8; d <= 14; d++ {
		dates = append(dates, fmt.Sprintf("2024-01-%02d", d))
	}

	// Uniform demand: one cook per open shift, 7 days, 3 cooks.
	reqs := make(Requirements)
	for _, d := range dates {
		reqs[d] = map[string]models.RoleCounts{models.ShiftOpen: {Cooks: 1}}
	}

	e := NewEngine(roster, reqs, emptyAvailability(), nil, testClock(t))
	res, err := e.Generate(dates)
	require.NoError(t, err)
	require.Len(t, res.Proposed, 7)

	perCook := make(map[uint]int)
	for _, r := range res.Proposed {
		perCook[r.EmployeeID]++
	}
	require.Len(t, perCook, 3)

	min, max := 7, 0
	for _, n := range perCook {
		if n < min {
			min = n
		}
		if n > max {
			max = n
		}
	}
	assert.LessOrEqual(t, max-min, 1, "fairness bound violated: min=%d max=%d", min, max)
}

func TestGenerate_AvailabilityExclusion(t *testing.T) {
	roster := testRoster()
	dates := []string{"2024-01-08"}
	reqs := Requirements{
		"2024-01-08": {
			models.ShiftOpen:  {Cooks: 2},
			models.ShiftClose: {Cooks: 2},
		},
	}

	// Marco opted out of the whole day; Dana only of the close shift.
	avail := BuildAvailabilityIndex([]models.AvailabilityEntry{
		{EmployeeID: 1, Date: "2024-01-08", IsAvailable: false},
		{EmployeeID: 2, Date: "2024-01-08", ShiftType: models.ShiftClose, IsAvailable: false},
	})

	e := NewEngine(roster, reqs, avail, nil, testClock(t))
	res, err := e.Generate(dates)
	require.NoError(t, err)

	for _, r := range res.Proposed {
		assert.NotEqual(t, uint(1), r.EmployeeID, "whole-day opt-out was scheduled")
		if r.ShiftType == models.ShiftClose {
			assert.NotEqual(t, uint(2), r.EmployeeID, "shift opt-out was scheduled for that shift")
		}
	}

	slots := countSlots(t, roster, res.Proposed)
	assert.Equal(t, 2, slots["2024-01-08/open/cook"])  // Dana and Theo
	assert.Equal(t, 1, slots["2024-01-08/close/cook"]) // only Theo
	assert.Len(t, res.Warnings, 1)
}

func TestGenerate_PartialFulfillment(t *testing.T) {
	roster := testRoster()
	dates := []string{"2024-01-08"}
	reqs := Requirements{
		"2024-01-08": {models.ShiftOpen: {Barbacks: 3}},
	}

	e := NewEngine(roster, reqs, emptyAvailability(), nil, testClock(t))
	res, err := e.Generate(dates)
	require.NoError(t, err)

	// One barback exists: assign them, warn once, never error.
	require.Len(t, res.Proposed, 1)
	assert.Equal(t, uint(6), res.Proposed[0].EmployeeID)
	require.Len(t, res.Warnings, 1)
	assert.Contains(t, res.Warnings[0], "2024-01-08")
	assert.Contains(t, res.Warnings[0], "open")
	assert.Contains(t, res.Warnings[0], "barback")
	assert.Contains(t, res.Warnings[0], "needed 3")
	assert.Contains(t, res.Warnings[0], "only 1 available")
}

func TestGenerate_ExistingAssignmentsExcluded(t *testing.T) {
	roster := testRoster()
	dates := []string{"2024-01-08"}
	reqs := Requirements{
		"2024-01-08": {models.ShiftOpen: {Cooks: 3}},
	}

	existing := []models.Schedule{
		{EmployeeID: 1, Date: "2024-01-08", ShiftType: models.ShiftOpen},
	}

	e := NewEngine(roster, reqs, emptyAvailability(), existing, testClock(t))
	res, err := e.Generate(dates)
	require.NoError(t, err)

	// Marco already holds the slot: only Dana and Theo are proposed,
	// and the role comes up one short.
	require.Len(t, res.Proposed, 2)
	for _, r := range res.Proposed {
		assert.NotEqual(t, uint(1), r.EmployeeID)
	}
	assert.Len(t, res.Warnings, 1)
}

func TestGenerate_InactiveEmployeesExcluded(t *testing.T) {
	roster := testRoster()
	roster[0].IsActive = false

	dates := []string{"2024-01-08"}
	reqs := Requirements{
		"2024-01-08": {models.ShiftOpen: {Cooks: 3}},
	}

	e := NewEngine(roster, reqs, emptyAvailability(), nil, testClock(t))
	res, err := e.Generate(dates)
	require.NoError(t, err)

	require.Len(t, res.Proposed, 2)
	for _, r := range res.Proposed {
		assert.NotEqual(t, uint(1), r.EmployeeID)
	}
}

func TestGenerate_NoRequirementsNoWork(t *testing.T) {
	e := NewEngine(testRoster(), Requirements{}, emptyAvailability(), nil, testClock(t))
	res, err := e.Generate([]string{"2024-01-08", "2024-01-09"})
	require.NoError(t, err)
	assert.Empty(t, res.Proposed)
	assert.Empty(t, res.Warnings)
}

func TestGenerate_ShiftTimesOnRows(t *testing.T) {
	roster := testRoster()
	dates := []string{"2024-01-08"}
	reqs := Requirements{
		"2024-01-08": {models.ShiftClose: {Cooks: 1}},
	}

	e := NewEngine(roster, reqs, emptyAvailability(), nil, testClock(t))
	res, err := e.Generate(dates)
	require.NoError(t, err)
	require.Len(t, res.Proposed, 1)

	row := res.Proposed[0]
	assert.Equal(t, 16, row.StartTime.Hour())
	assert.True(t, row.EndTime.After(row.StartTime))
	// The close window ends at midnight, i.e. on the next day.
	assert.Equal(t, "2024-01-09", row.EndTime.Format("2006-01-02"))
}
