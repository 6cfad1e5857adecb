package scheduler

import (
	"sort"
	"time"

	"github.com/afuentes/roster-api-go/pkg/models"
	"github.com/afuentes/roster-api-go/pkg/timeutil"
)

// Requirements maps date string -> shift type -> required headcounts.
// A date/shift absent from the map needs no staff and produces no
// assignments and no warnings.
type Requirements map[string]map[string]models.RoleCounts

// SelectTemplate picks the template name the resolver operates on.
// An explicit name wins. Otherwise the active template with the
// lexicographically smallest name is chosen, so that two templates
// being active at once has a deterministic outcome instead of
// depending on store order. Returns "" when nothing is active.
func SelectTemplate(rows []models.WeeklyScheduleTemplate, name string) string {
	if name != "" {
		return name
	}
	var names []string
	seen := make(map[string]bool)
	for _, row := range rows {
		if row.IsActive && !seen[row.Name] {
			seen[row.Name] = true
			names = append(names, row.Name)
		}
	}
	if len(names) == 0 {
		return ""
	}
	sort.Strings(names)
	return names[0]
}

// ResolveRequirements produces the per-date staffing quotas for a run.
// Explicit requirements are seeded first; the selected template then
// fills in (day-of-week, shift) slots that have no explicit row.
// Precedence is per shift type: a date may take its open counts from
// an explicit requirement and its close counts from the template.
func ResolveRequirements(
	dates []string,
	explicit []models.ShiftRequirement,
	templateRows []models.WeeklyScheduleTemplate,
	templateName string,
	loc *time.Location,
) (Requirements, error) {
	reqs := make(Requirements, len(dates))

	inRange := make(map[string]bool, len(dates))
	for _, d := range dates {
		inRange[d] = true
	}

	for _, r := range explicit {
		if !inRange[r.Date] {
			continue
		}
		if reqs[r.Date] == nil {
			reqs[r.Date] = make(map[string]models.RoleCounts)
		}
		reqs[r.Date][r.ShiftType] = r.RoleCounts
	}

	selected := SelectTemplate(templateRows, templateName)
	if selected == "" {
		return reqs, nil
	}

	// day-of-week -> shift type -> counts, for the selected template only.
	byDay := make(map[int]map[string]models.RoleCounts)
	for _, row := range templateRows {
		if !row.IsActive || row.Name != selected {
			continue
		}
		if byDay[row.DayOfWeek] == nil {
			byDay[row.DayOfWeek] = make(map[string]models.RoleCounts)
		}
		byDay[row.DayOfWeek][row.ShiftType] = row.RoleCounts
	}

	for _, date := range dates {
		dow, err := timeutil.DayOfWeek(date, loc)
		if err != nil {
			return nil, err
		}
		for shiftType, counts := range byDay[dow] {
			if _, exists := reqs[date][shiftType]; exists {
				continue // explicit requirement wins
			}
			if reqs[date] == nil {
				reqs[date] = make(map[string]models.RoleCounts)
			}
			reqs[date][shiftType] = counts
		}
	}

	return reqs, nil
}
