package odecfl

import (
	"context"
	"fmt"
	"math"
	"time"

	"gonum.org/v1/gonum/floats"

	"github.com/robotsorcerer/LevelSetMat/internal/levelset"
)

// RK3 is the CFL-constrained third-order TVD Runge-Kutta integrator.
// It pairs scheme function i with subsystem i of the bundle; a single
// scheme function is shared across all subsystems.
type RK3 struct {
	schemes []levelset.SchemeFunc
}

func NewRK3(schemes ...levelset.SchemeFunc) (*RK3, error) {
	if len(schemes) == 0 {
		return nil, fmt.Errorf("%w: no scheme functions", levelset.ErrOptions)
	}
	for i, s := range schemes {
		if s == nil {
			return nil, fmt.Errorf("%w: scheme function %d is nil", levelset.ErrOptions, i)
		}
	}
	return &RK3{schemes: schemes}, nil
}

func (r *RK3) scheme(i int) levelset.SchemeFunc {
	if len(r.schemes) == 1 {
		return r.schemes[0]
	}
	return r.schemes[i]
}

// evalPass runs one full derivative evaluation over the bundle: subsystem
// i's scheme sees its own field at position 0, then state and context
// rotate together. After K calls the ring is back in its original order.
// The governing bound is the most restrictive subsystem's.
func (r *RK3) evalPass(t float64, b *levelset.Bundle) ([]levelset.State, float64, error) {
	k := b.Len()
	if len(r.schemes) > 1 && len(r.schemes) != k {
		return nil, 0, fmt.Errorf("%w: %d scheme functions for %d subsystems", levelset.ErrContextMismatch, len(r.schemes), k)
	}
	ydots := make([]levelset.State, k)
	bound := math.Inf(1)
	for i := 0; i < k; i++ {
		ydot, bi, err := r.scheme(i)(t, b)
		if err != nil {
			return nil, 0, fmt.Errorf("subsystem %d: %w", i, err)
		}
		if bi <= 0 || math.IsNaN(bi) || math.IsInf(bi, 0) {
			return nil, 0, fmt.Errorf("subsystem %d at t=%.6g: %w (got %g)", i, t, levelset.ErrStepBound, bi)
		}
		if len(ydot) != len(b.State(0)) {
			return nil, 0, fmt.Errorf("subsystem %d at t=%.6g: %w (%d vs %d)", i, t, levelset.ErrDimensionMismatch, len(ydot), len(b.State(0)))
		}
		ydots[i] = ydot
		bound = math.Min(bound, bi)
		b.Rotate()
	}
	return ydots, bound, nil
}

func checkCFL(t float64, stage int, dt, bound float64, opts *Options) (Violation, bool) {
	if dt <= opts.safetyFactor()*bound {
		return Violation{}, false
	}
	v := Violation{Time: t, Stage: stage, DeltaT: dt, Bound: bound}
	if opts.OnViolation != nil {
		opts.OnViolation(v)
	}
	return v, true
}

// Step advances the bundle across one CFL-chosen timestep, at most to
// tFinal. The timestep is fixed by the stage-1 evaluation; stages 2 and 3
// re-measure the bound and report (never act on) violations. Every stage
// writes fresh arrays, so the "current" and "next" fields never alias.
func (r *RK3) Step(t, tFinal float64, b *levelset.Bundle, opts *Options) (float64, []Violation, error) {
	if err := opts.validate(); err != nil {
		return t, nil, err
	}
	k := b.Len()

	ydot, bound, err := r.evalPass(t, b)
	if err != nil {
		return t, nil, err
	}
	dt := math.Min(opts.FactorCFL*bound, tFinal-t)
	dt = math.Min(dt, opts.MaxStep)

	y0 := b.CloneStates()

	// Stage 1: Euler predictor.
	for i := 0; i < k; i++ {
		y1 := make(levelset.State, len(y0[i]))
		floats.AddScaledTo(y1, y0[i], dt, ydot[i])
		b.SetState(i, y1)
	}
	t1 := t + dt

	ydot1, bound1, err := r.evalPass(t1, b)
	if err != nil {
		return t, nil, err
	}
	var viols []Violation
	if v, ok := checkCFL(t1, 2, dt, bound1, opts); ok {
		viols = append(viols, v)
	}

	// Stage 2, then blend back toward the start point for a second-order
	// accurate half-point value.
	t2 := t1 + dt
	tHalf := 0.25 * (3*t + t2)
	for i := 0; i < k; i++ {
		y2 := make(levelset.State, len(y0[i]))
		floats.AddScaledTo(y2, b.State(i), dt, ydot1[i])
		yHalf := make(levelset.State, len(y0[i]))
		floats.ScaleTo(yHalf, 0.75, y0[i])
		floats.AddScaled(yHalf, 0.25, y2)
		b.SetState(i, yHalf)
	}

	ydot2, bound2, err := r.evalPass(tHalf, b)
	if err != nil {
		return t, viols, err
	}
	if v, ok := checkCFL(tHalf, 3, dt, bound2, opts); ok {
		viols = append(viols, v)
	}

	// Stage 3 and the final TVD convex combination.
	tThreeHalf := tHalf + dt
	for i := 0; i < k; i++ {
		y32 := make(levelset.State, len(y0[i]))
		floats.AddScaledTo(y32, b.State(i), dt, ydot2[i])
		yNew := make(levelset.State, len(y0[i]))
		floats.ScaleTo(yNew, 1.0/3.0, y0[i])
		floats.AddScaled(yNew, 2.0/3.0, y32)
		b.SetState(i, yNew)
	}
	tNew := (t + 2*tThreeHalf) / 3

	return tNew, viols, nil
}

// Integrate runs the step loop from t0 to tFinal, mutating the bundle in
// place. The context is only checked between steps; scheme functions,
// hooks and event predicates run to completion once started.
func (r *RK3) Integrate(ctx context.Context, t0, tFinal float64, b *levelset.Bundle, opts *Options) (*Result, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}
	res := &Result{T: t0}
	var start time.Time
	if opts.Stats {
		start = time.Now()
	}

	var (
		prevEvent  []float64
		prevT      float64
		prevStates []levelset.State
	)
	for res.T < tFinal {
		select {
		case <-ctx.Done():
			return res, ctx.Err()
		default:
		}

		if opts.TerminalEvent != nil {
			prevT = res.T
			prevStates = b.CloneStates()
		}

		tNew, viols, err := r.Step(res.T, tFinal, b, opts)
		if err != nil {
			return res, &levelset.StepError{Step: res.Steps, Time: res.T, Wrapped: err}
		}
		res.T = tNew
		res.Steps++
		res.Violations = append(res.Violations, viols...)

		if opts.PostTimestep != nil {
			if err := opts.PostTimestep(res.T, b, opts); err != nil {
				return res, &levelset.StepError{Step: res.Steps, Time: res.T, Wrapped: err}
			}
		}

		if opts.TerminalEvent != nil {
			vals, err := opts.TerminalEvent(res.T, b, prevT, prevStates)
			if err != nil {
				return res, &levelset.StepError{Step: res.Steps, Time: res.T, Wrapped: err}
			}
			if prevEvent != nil && signChanged(prevEvent, vals) {
				res.EventStopped = true
				break
			}
			prevEvent = vals
		}

		if opts.SingleStep {
			break
		}
	}

	if opts.Stats {
		res.Elapsed = time.Since(start)
	}
	return res, nil
}

func sign(x float64) int {
	switch {
	case x > 0:
		return 1
	case x < 0:
		return -1
	}
	return 0
}

func signChanged(prev, cur []float64) bool {
	n := len(prev)
	if len(cur) < n {
		n = len(cur)
	}
	for i := 0; i < n; i++ {
		if sign(prev[i]) != sign(cur[i]) {
			return true
		}
	}
	return false
}
