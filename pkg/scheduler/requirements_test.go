package scheduler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/afuentes/roster-api-go/pkg/models"
)

func TestResolveRequirements_ExplicitWinsPerShift(t *testing.T) {
	dates := []string{"2024-01-08"} // Monday
	explicit := []models.ShiftRequirement{
		{Date: "2024-01-08", ShiftType: models.ShiftOpen, RoleCounts: models.RoleCounts{Cooks: 1, Bartenders: 1}},
	}
	template := []models.WeeklyScheduleTemplate{
		{Name: "default", DayOfWeek: 1, ShiftType: models.ShiftOpen, RoleCounts: models.RoleCounts{Cooks: 9}, IsActive: true},
		{Name: "default", DayOfWeek: 1, ShiftType: models.ShiftClose, RoleCounts: models.RoleCounts{Cooks: 2, Bartenders: 1, Barbacks: 1}, IsActive: true},
	}

	reqs, err := ResolveRequirements(dates, explicit, template, "", testLoc(t))
	require.NoError(t, err)

	// Open comes verbatim from the explicit row, close from the template.
	assert.Equal(t, models.RoleCounts{Cooks: 1, Bartenders: 1}, reqs["2024-01-08"][models.ShiftOpen])
	assert.Equal(t, models.RoleCounts{Cooks: 2, Bartenders: 1, Barbacks: 1}, reqs["2024-01-08"][models.ShiftClose])
}

func TestResolveRequirements_NoTemplateNoExplicit(t *testing.T) {
	reqs, err := ResolveRequirements([]string{"2024-01-08"}, nil, nil, "", testLoc(t))
	require.NoError(t, err)
	// No requirement means no assignments attempted and no warning.
	assert.Empty(t, reqs)
}

func TestResolveRequirements_TemplateMatchesDayOfWeek(t *testing.T) {
	// Jan 8 2024 is a Monday, Jan 9 a Tuesday.
	dates := []string{"2024-01-08", "2024-01-09"}
	template := []models.WeeklyScheduleTemplate{
		{Name: "default", DayOfWeek: 1, ShiftType: models.ShiftOpen, RoleCounts: models.RoleCounts{Cooks: 1}, IsActive: true},
		{Name: "default", DayOfWeek: 2, ShiftType: models.ShiftOpen, RoleCounts: models.RoleCounts{Cooks: 4}, IsActive: true},
	}

	reqs, err := ResolveRequirements(dates, nil, template, "", testLoc(t))
	require.NoError(t, err)
	assert.Equal(t, 1, reqs["2024-01-08"][models.ShiftOpen].Cooks)
	assert.Equal(t, 4, reqs["2024-01-09"][models.ShiftOpen].Cooks)
}

func TestResolveRequirements_InactiveTemplateIgnored(t *testing.T) {
	template := []models.WeeklyScheduleTemplate{
		{Name: "default", DayOfWeek: 1, ShiftType: models.ShiftOpen, RoleCounts: models.RoleCounts{Cooks: 1}, IsActive: false},
	}
	reqs, err := ResolveRequirements([]string{"2024-01-08"}, nil, template, "", testLoc(t))
	require.NoError(t, err)
	assert.Empty(t, reqs)
}

func TestResolveRequirements_ExplicitOutsideRangeIgnored(t *testing.T) {
	explicit := []models.ShiftRequirement{
		{Date: "2024-02-01", ShiftType: models.ShiftOpen, RoleCounts: models.RoleCounts{Cooks: 1}},
	}
	reqs, err := ResolveRequirements([]string{"2024-01-08"}, explicit, nil, "", testLoc(t))
	require.NoError(t, err)
	assert.Empty(t, reqs)
}

func TestSelectTemplate_ExplicitNameWins(t *testing.T) {
	rows := []models.WeeklyScheduleTemplate{
		{Name: "summer", IsActive: true},
	}
	assert.Equal(t, "winter", SelectTemplate(rows, "winter"))
}

func TestSelectTemplate_SmallestActiveName(t *testing.T) {
	// Two templates active at once: the resolver must not depend on
	// store order, so the smallest name wins.
	rows := []models.WeeklyScheduleTemplate{
		{Name: "winter", IsActive: true},
		{Name: "autumn", IsActive: true},
		{Name: "brunch", IsActive: false},
	}
	assert.Equal(t, "autumn", SelectTemplate(rows, ""))
}

func TestSelectTemplate_NothingActive(t *testing.T) {
	rows := []models.WeeklyScheduleTemplate{
		{Name: "winter", IsActive: false},
	}
	assert.Equal(t, "", SelectTemplate(rows, ""))
}
