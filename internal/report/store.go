package report

import (
	"context"
	"time"

	"lockstep/internal/checker"
)

// Run is one recorded execution of the check suite.
type Run struct {
	ID        int64
	StartedAt time.Time
	XMLPath   string
	Total     int
	Passed    int
	Failed    int
	Errors    int
}

// Store persists check runs so CI history stays inspectable.
type Store interface {
	// SaveRun records a run and its per-rule results, returning the run id.
	SaveRun(ctx context.Context, run *Run, results []checker.Result) (int64, error)

	// ListRuns returns the most recent runs, newest first.
	ListRuns(ctx context.Context, limit int) ([]Run, error)

	// RunResults returns the per-rule results of one run, in check order.
	RunResults(ctx context.Context, runID int64) ([]checker.Result, error)

	Close() error
}
