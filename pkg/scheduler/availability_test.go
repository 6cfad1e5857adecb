package scheduler

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/afuentes/roster-api-go/pkg/models"
)

func TestAvailabilityIndex_DefaultPermissive(t *testing.T) {
	ix := BuildAvailabilityIndex(nil)
	// No entry at all means available. This is a business rule, not a
	// fallback, and must never be inverted.
	assert.True(t, ix.IsAvailable(1, "2024-01-08", models.ShiftOpen))
	assert.True(t, ix.IsAvailable(1, "2024-01-08", models.ShiftClose))
}

func TestAvailabilityIndex_WholeDayEntry(t *testing.T) {
	ix := BuildAvailabilityIndex([]models.AvailabilityEntry{
		{EmployeeID: 1, Date: "2024-01-08", IsAvailable: false},
	})
	assert.False(t, ix.IsAvailable(1, "2024-01-08", models.ShiftOpen))
	assert.False(t, ix.IsAvailable(1, "2024-01-08", models.ShiftClose))
	// Other dates and other employees are untouched.
	assert.True(t, ix.IsAvailable(1, "2024-01-09", models.ShiftOpen))
	assert.True(t, ix.IsAvailable(2, "2024-01-08", models.ShiftOpen))
}

func TestAvailabilityIndex_ShiftSpecificOverridesWholeDay(t *testing.T) {
	ix := BuildAvailabilityIndex([]models.AvailabilityEntry{
		{EmployeeID: 1, Date: "2024-01-08", IsAvailable: false},
		{EmployeeID: 1, Date: "2024-01-08", ShiftType: models.ShiftClose, IsAvailable: true},
	})
	// The shift-specific entry wins for its shift; the whole-day entry
	// still governs the other shift.
	assert.False(t, ix.IsAvailable(1, "2024-01-08", models.ShiftOpen))
	assert.True(t, ix.IsAvailable(1, "2024-01-08", models.ShiftClose))
}

func TestAvailabilityIndex_ShiftSpecificOnly(t *testing.T) {
	ix := BuildAvailabilityIndex([]models.AvailabilityEntry{
		{EmployeeID: 1, Date: "2024-01-08", ShiftType: models.ShiftOpen, IsAvailable: false},
	})
	assert.False(t, ix.IsAvailable(1, "2024-01-08", models.ShiftOpen))
	assert.True(t, ix.IsAvailable(1, "2024-01-08", models.ShiftClose))
}

func TestAvailabilityIndex_PositiveEntries(t *testing.T) {
	// Explicit opt-ins are stored too; they read back as available.
	ix := BuildAvailabilityIndex([]models.AvailabilityEntry{
		{EmployeeID: 1, Date: "2024-01-08", IsAvailable: true},
		{EmployeeID: 1, Date: "2024-01-08", ShiftType: models.ShiftOpen, IsAvailable: false},
	})
	assert.False(t, ix.IsAvailable(1, "2024-01-08", models.ShiftOpen))
	assert.True(t, ix.IsAvailable(1, "2024-01-08", models.ShiftClose))
}
