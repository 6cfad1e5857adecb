// Package scheduler generates conflict-free, fair, requirement-
// satisfying shift assignments for a date range. The engine is pure:
// it never touches the store, and every piece of run state (including
// the fairness counters) lives on the Engine value for exactly one
// Generate call, so concurrent requests cannot interfere.
package scheduler

import (
	"fmt"
	"sort"

	"github.com/afuentes/roster-api-go/pkg/models"
)

// Engine holds the inputs of one generation run.
type Engine struct {
	// Roster lists active employees. Slice order is the tie-break
	// order when fairness counters are equal.
	Roster []models.Employee

	// Requirements are the resolved per-date quotas (see
	// ResolveRequirements).
	Requirements Requirements

	// Availability is the per-run availability index.
	Availability *AvailabilityIndex

	// Existing are schedule rows already persisted in the range; their
	// (employee, date, shift) slots are never proposed again.
	Existing []models.Schedule

	// Times derives start/end timestamps for proposed rows.
	Times ShiftTimer

	// counts is the per-employee fairness tally, scoped to one run.
	counts map[uint]int
	// taken guards the uniqueness invariant in memory before the store
	// ever sees a row.
	taken map[shiftKey]bool
}

// Result is an in-memory batch of proposed rows plus the shortfall
// warnings accumulated along the way. Insufficient staff is never an
// error.
type Result struct {
	Proposed []models.Schedule
	Warnings []string
}

// NewEngine creates an engine for one generation run.
func NewEngine(roster []models.Employee, reqs Requirements, avail *AvailabilityIndex, existing []models.Schedule, times ShiftTimer) *Engine {
	return &Engine{
		Roster:       roster,
		Requirements: reqs,
		Availability: avail,
		Existing:     existing,
		Times:        times,
	}
}

// Generate walks dates x shifts x roles in a fixed order and assigns
// employees from each eligible pool, preferring those with the fewest
// assignments so far in this run. Shortfalls become warnings; the only
// errors are broken shift-time configuration.
func (e *Engine) Generate(dates []string) (*Result, error) {
	e.counts = make(map[uint]int, len(e.Roster))
	for _, emp := range e.Roster {
		e.counts[emp.ID] = 0
	}

	e.taken = make(map[shiftKey]bool, len(e.Existing))
	for _, s := range e.Existing {
		e.taken[shiftKey{s.EmployeeID, s.Date, s.ShiftType}] = true
	}

	res := &Result{}
	for _, date := range dates {
		shifts, ok := e.Requirements[date]
		if !ok {
			continue
		}
		for _, shiftType := range models.ShiftOrder {
			counts, ok := shifts[shiftType]
			if !ok {
				continue
			}
			for _, role := range models.RoleOrder {
				needed := counts.ForRole(role)
				if needed == 0 {
					continue
				}
				if err := e.fill(res, date, shiftType, role, needed); err != nil {
					return nil, err
				}
			}
		}
	}

	return res, nil
}

// fill assigns up to needed employees of one role to one shift.
func (e *Engine) fill(res *Result, date, shiftType, role string, needed int) error {
	pool := e.eligible(date, shiftType, role)

	// Fewest assignments this run first; stable, so roster order
	// breaks ties.
	sort.SliceStable(pool, func(i, j int) bool {
		return e.counts[pool[i].ID] < e.counts[pool[j].ID]
	})

	take := needed
	if len(pool) < take {
		take = len(pool)
		res.Warnings = append(res.Warnings, fmt.Sprintf(
			"%s %s shift: needed %d %ss, only %d available",
			date, shiftType, needed, role, len(pool)))
	}

	for _, emp := range pool[:take] {
		start, end, err := e.Times.Times(date, shiftType, role)
		if err != nil {
			return err
		}
		res.Proposed = append(res.Proposed, models.Schedule{
			EmployeeID: emp.ID,
			Date:       date,
			ShiftType:  shiftType,
			StartTime:  start,
			EndTime:    end,
		})
		e.counts[emp.ID]++
		e.taken[shiftKey{emp.ID, date, shiftType}] = true
	}

	return nil
}

// eligible returns the pool for one (date, shift, role): active
// employees of that role who are available and not already holding
// that exact slot, in roster order.
func (e *Engine) eligible(date, shiftType, role string) []models.Employee {
	var pool []models.Employee
	for _, emp := range e.Roster {
		if !emp.IsActive || emp.Role != role {
			continue
		}
		if e.taken[shiftKey{emp.ID, date, shiftType}] {
			continue
		}
		if !e.Availability.IsAvailable(emp.ID, date, shiftType) {
			continue
		}
		pool = append(pool, emp)
	}
	return pool
}

// AssignmentSpread reports the min and max per-employee assignment
// counts of the last run, a quick fairness signal for logs.
func (e *Engine) AssignmentSpread() (min, max int) {
	first := true
	for _, n := range e.counts {
		if first {
			min, max = n, n
			first = false
			continue
		}
		if n < min {
			min = n
		}
		if n > max {
			max = n
		}
	}
	return min, max
}
