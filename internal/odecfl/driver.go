package odecfl

import (
	"context"
	"fmt"
	"time"

	"github.com/robotsorcerer/LevelSetMat/internal/levelset"
)

// Result reports the outcome of a step loop or a multi-output solve. The
// final fields and contexts live in the caller's bundle; snapshots here are
// deep copies taken at each requested output time.
type Result struct {
	// T is the time actually reached.
	T float64
	// Times holds the requested output times that were reached.
	Times []float64
	// Snapshots holds one deep-copied state list per entry of Times.
	Snapshots [][]levelset.State
	// Steps is the total number of completed RK3 steps.
	Steps int
	// Violations accumulates every CFL diagnostic, in step order.
	Violations []Violation
	// Elapsed is wall-clock time of the step loop when Options.Stats is
	// set.
	Elapsed time.Duration
	// EventStopped reports termination by the terminal-event predicate.
	EventStopped bool
}

// Solve is the caller-facing entry point: it advances the bundle through
// every consecutive pair of requested times, threading state and context
// from one leg to the next, and records a snapshot at each reached time.
// A two-point span yields the single final snapshot; spans with three or
// more points yield one snapshot per requested time. Each leg restarts
// CFL-bound discovery from scratch, so memory and work scale with the
// number of requested times.
//
// A span with fewer than two entries, or one that is not strictly
// increasing, is a fatal input error.
func Solve(ctx context.Context, r *RK3, tspan []float64, b *levelset.Bundle, opts *Options) (*Result, error) {
	if len(tspan) < 2 {
		return nil, fmt.Errorf("%w: got %d entries", levelset.ErrTimeSpan, len(tspan))
	}
	for i := 1; i < len(tspan); i++ {
		if tspan[i] <= tspan[i-1] {
			return nil, fmt.Errorf("%w: tspan[%d]=%g is not after tspan[%d]=%g", levelset.ErrTimeSpan, i, tspan[i], i-1, tspan[i-1])
		}
	}
	if err := opts.validate(); err != nil {
		return nil, err
	}

	total := &Result{T: tspan[0]}
	for i := 1; i < len(tspan); i++ {
		leg, err := r.Integrate(ctx, total.T, tspan[i], b, opts)
		if leg != nil {
			total.T = leg.T
			total.Steps += leg.Steps
			total.Violations = append(total.Violations, leg.Violations...)
			total.Elapsed += leg.Elapsed
			total.EventStopped = leg.EventStopped
		}
		if err != nil {
			return total, err
		}
		total.Times = append(total.Times, total.T)
		total.Snapshots = append(total.Snapshots, b.CloneStates())
		if total.EventStopped || opts.SingleStep {
			// The event already fired, or the caller is driving time
			// externally; either way no further leg is started.
			break
		}
	}
	return total, nil
}
