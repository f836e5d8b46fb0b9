package odecfl

import (
	"fmt"
	"math"

	"github.com/robotsorcerer/LevelSetMat/internal/levelset"
)

// PostStepFunc is invoked once after every completed step. It may replace
// fields and contexts through the bundle; the replacements are used for all
// subsequent steps.
type PostStepFunc func(t float64, y *levelset.Bundle, opts *Options) error

// TerminalEventFunc is invoked once after every completed step with the
// state before and after it. Integration halts the first time any returned
// component's sign differs from its value after the previous step; the
// first step only records a baseline.
type TerminalEventFunc func(t float64, y *levelset.Bundle, tPrev float64, yPrev []levelset.State) ([]float64, error)

// Options configures a step loop. Build it once with [DefaultOptions] and
// adjust fields; the engine treats it as immutable per call and never
// fills in defaults implicitly.
type Options struct {
	// FactorCFL scales the reported step bound, in (0, 1].
	FactorCFL float64
	// MaxStep caps every timestep regardless of the bound.
	MaxStep float64
	// SingleStep makes the step loop return after one successful step.
	SingleStep bool
	// Stats enables wall-clock timing around the step loop.
	Stats bool
	// PostTimestep, if set, runs after every completed step.
	PostTimestep PostStepFunc
	// TerminalEvent, if set, can halt integration on a sign change.
	TerminalEvent TerminalEventFunc
	// OnViolation, if set, receives each CFL diagnostic as it happens in
	// addition to the accumulated Result.Violations.
	OnViolation func(Violation)
}

// DefaultOptions returns the documented defaults: half the stability bound
// per step, no step cap, no hooks.
func DefaultOptions() *Options {
	return &Options{
		FactorCFL: 0.5,
		MaxStep:   math.Inf(1),
	}
}

// safetyFactor allows 20% slack over the nominal CFL factor, capped at 1.
func (o *Options) safetyFactor() float64 {
	return math.Min(1, 1.2*o.FactorCFL)
}

func (o *Options) validate() error {
	if o == nil {
		return fmt.Errorf("%w: nil options", levelset.ErrOptions)
	}
	if !(o.FactorCFL > 0 && o.FactorCFL <= 1) {
		return fmt.Errorf("%w: FactorCFL %g outside (0, 1]", levelset.ErrOptions, o.FactorCFL)
	}
	if !(o.MaxStep > 0) {
		return fmt.Errorf("%w: MaxStep %g must be positive", levelset.ErrOptions, o.MaxStep)
	}
	return nil
}
