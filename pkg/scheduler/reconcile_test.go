package scheduler

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/afuentes/roster-api-go/pkg/models"
)

// mockScheduleStore is an in-memory ScheduleStore keyed the way the
// real unique index is.
type mockScheduleStore struct {
	rows        map[string]models.Schedule
	deleteCalls int
	failInserts bool
}

func newMockScheduleStore() *mockScheduleStore {
	return &mockScheduleStore{rows: make(map[string]models.Schedule)}
}

func storeKey(s *models.Schedule) string {
	return fmt.Sprintf("%d/%s/%s", s.EmployeeID, s.Date, s.ShiftType)
}

func (m *mockScheduleStore) DeleteRange(_ context.Context, start, end string) error {
	m.deleteCalls++
	for k, s := range m.rows {
		if s.Date >= start && s.Date <= end {
			delete(m.rows, k)
		}
	}
	return nil
}

func (m *mockScheduleStore) Insert(_ context.Context, s *models.Schedule) (bool, error) {
	if m.failInserts {
		return false, errors.New("store unavailable")
	}
	key := storeKey(s)
	if _, exists := m.rows[key]; exists {
		return false, nil
	}
	m.rows[key] = *s
	return true, nil
}

func (m *mockScheduleStore) Upsert(_ context.Context, s *models.Schedule) error {
	m.rows[storeKey(s)] = *s
	return nil
}

func proposedRows() *Result {
	return &Result{
		Proposed: []models.Schedule{
			{EmployeeID: 1, Date: "2024-01-08", ShiftType: models.ShiftOpen},
			{EmployeeID: 2, Date: "2024-01-08", ShiftType: models.ShiftOpen},
			{EmployeeID: 1, Date: "2024-01-08", ShiftType: models.ShiftClose},
		},
		Warnings: []string{"2024-01-08 open shift: needed 3 cooks, only 2 available"},
	}
}

func TestReconcile_InsertsAndCounts(t *testing.T) {
	store := newMockScheduleStore()

	summary, err := Reconcile(context.Background(), store, proposedRows(), "2024-01-08", "2024-01-08", false)
	require.NoError(t, err)

	assert.Equal(t, 3, summary.Created)
	assert.Equal(t, 0, summary.Skipped)
	assert.Len(t, summary.Schedules, 3)
	assert.Equal(t, 0, store.deleteCalls)
	// Engine warnings ride along unchanged.
	assert.Len(t, summary.Warnings, 1)
}

func TestReconcile_IdempotentRerun(t *testing.T) {
	store := newMockScheduleStore()

	first, err := Reconcile(context.Background(), store, proposedRows(), "2024-01-08", "2024-01-08", false)
	require.NoError(t, err)
	require.Equal(t, 3, first.Created)

	// Same range, same proposals, default mode: zero net new rows.
	second, err := Reconcile(context.Background(), store, proposedRows(), "2024-01-08", "2024-01-08", false)
	require.NoError(t, err)
	assert.Equal(t, 0, second.Created)
	assert.Equal(t, 3, second.Skipped)
	assert.Len(t, store.rows, 3)
}

func TestReconcile_OverwriteClearsRangeFirst(t *testing.T) {
	store := newMockScheduleStore()

	// A stale manual row in range and one outside it.
	stale := models.Schedule{EmployeeID: 9, Date: "2024-01-08", ShiftType: models.ShiftOpen}
	keeper := models.Schedule{EmployeeID: 9, Date: "2024-02-01", ShiftType: models.ShiftOpen}
	store.rows[storeKey(&stale)] = stale
	store.rows[storeKey(&keeper)] = keeper

	summary, err := Reconcile(context.Background(), store, proposedRows(), "2024-01-08", "2024-01-08", true)
	require.NoError(t, err)

	assert.Equal(t, 1, store.deleteCalls)
	assert.Equal(t, 3, summary.Created)
	assert.Equal(t, 0, summary.Skipped)

	_, staleAlive := store.rows[storeKey(&stale)]
	assert.False(t, staleAlive, "in-range row survived overwrite")
	_, keeperAlive := store.rows[storeKey(&keeper)]
	assert.True(t, keeperAlive, "out-of-range row was deleted")
	assert.Len(t, store.rows, 4)
}

func TestReconcile_StoreErrorIsFatal(t *testing.T) {
	store := newMockScheduleStore()
	store.failInserts = true

	_, err := Reconcile(context.Background(), store, proposedRows(), "2024-01-08", "2024-01-08", false)
	assert.Error(t, err)
}

func TestReconcile_EmptyBatch(t *testing.T) {
	store := newMockScheduleStore()

	summary, err := Reconcile(context.Background(), store, &Result{}, "2024-01-08", "2024-01-08", false)
	require.NoError(t, err)
	assert.Equal(t, 0, summary.Created)
	assert.Equal(t, 0, summary.Skipped)
	assert.Empty(t, summary.Schedules)
}
