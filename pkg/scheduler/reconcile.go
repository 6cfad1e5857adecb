package scheduler

import (
	"context"

	"github.com/afuentes/roster-api-go/pkg/models"
)

// ScheduleStore is the persistence gateway the reconciler writes
// through. Implementations must make Insert atomic with respect to the
// (employee, date, shift) uniqueness constraint: a row that already
// exists, including one inserted by a racing request between our
// in-memory check and the write, reports created=false instead of an
// error.
type ScheduleStore interface {
	// DeleteRange removes all schedule rows with start <= date <= end.
	DeleteRange(ctx context.Context, start, end string) error
	// Insert adds a row unless its slot is already taken.
	Insert(ctx context.Context, s *models.Schedule) (created bool, err error)
	// Upsert adds a row or, if its slot is taken, updates the time
	// fields in place.
	Upsert(ctx context.Context, s *models.Schedule) error
}

// Reconcile writes an engine result to the store.
//
// With overwrite set, the date range is cleared first and every
// proposed row is written fresh (upsert, so even a racing insert
// cannot fail the run). Without it the run is idempotent: rows whose
// slot already exists are counted as skipped, never treated as errors.
// Store errors are fatal for the run.
func Reconcile(ctx context.Context, store ScheduleStore, res *Result, start, end string, overwrite bool) (*models.GenerateSummary, error) {
	summary := &models.GenerateSummary{
		Warnings:  append([]string(nil), res.Warnings...),
		Schedules: make([]models.Schedule, 0, len(res.Proposed)),
	}

	if overwrite {
		if err := store.DeleteRange(ctx, start, end); err != nil {
			return nil, err
		}
	}

	for i := range res.Proposed {
		row := res.Proposed[i]
		if overwrite {
			if err := store.Upsert(ctx, &row); err != nil {
				return nil, err
			}
			summary.Created++
		} else {
			created, err := store.Insert(ctx, &row)
			if err != nil {
				return nil, err
			}
			if created {
				summary.Created++
			} else {
				summary.Skipped++
			}
		}
		summary.Schedules = append(summary.Schedules, row)
	}

	return summary, nil
}
