package scheduler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/afuentes/roster-api-go/pkg/models"
)

func TestClockTable_RoleWindow(t *testing.T) {
	table := &ClockTable{
		Windows: map[string]map[string]Window{
			models.ShiftOpen: {
				"default": {Start: "09:00", End: "17:00"},
				"cook":    {Start: "08:00", End: "16:00"},
			},
		},
		Loc: testLoc(t),
	}

	start, end, err := table.Times("2024-01-08", models.ShiftOpen, models.RoleCook)
	require.NoError(t, err)
	assert.Equal(t, 8, start.Hour())
	assert.Equal(t, 16, end.Hour())
	assert.True(t, end.After(start))
}

func TestClockTable_DefaultRoleFallback(t *testing.T) {
	table := testClock(t)

	start, end, err := table.Times("2024-01-08", models.ShiftOpen, models.RoleBarback)
	require.NoError(t, err)
	assert.Equal(t, 9, start.Hour())
	assert.Equal(t, 17, end.Hour())
}

func TestClockTable_CloseShiftRollsPastMidnight(t *testing.T) {
	table := testClock(t)

	start, end, err := table.Times("2024-01-08", models.ShiftClose, models.RoleCook)
	require.NoError(t, err)
	assert.Equal(t, "2024-01-08", start.Format("2006-01-02"))
	assert.Equal(t, "2024-01-09", end.Format("2006-01-02"))
	assert.True(t, end.After(start))
}

func TestClockTable_UnknownShiftType(t *testing.T) {
	table := testClock(t)
	_, _, err := table.Times("2024-01-08", "brunch", models.RoleCook)
	assert.Error(t, err)
}

func TestClockTable_BadClockString(t *testing.T) {
	table := &ClockTable{
		Windows: map[string]map[string]Window{
			models.ShiftOpen: {"default": {Start: "9am", End: "17:00"}},
		},
		Loc: testLoc(t),
	}
	_, _, err := table.Times("2024-01-08", models.ShiftOpen, models.RoleCook)
	assert.Error(t, err)
}
