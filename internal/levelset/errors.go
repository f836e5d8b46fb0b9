package levelset

import (
	"errors"
	"fmt"
)

// Domain errors for the integration engine.
var (
	// ErrTimeSpan indicates a requested time span with fewer than two
	// entries, or one that is not strictly increasing.
	ErrTimeSpan = errors.New("levelset: time span needs at least two strictly increasing entries")

	// ErrStepBound indicates a scheme function violated its contract by
	// returning a non-positive or non-finite step bound.
	ErrStepBound = errors.New("levelset: non-positive or non-finite step bound")

	// ErrEmptyBundle indicates a bundle with no subsystems.
	ErrEmptyBundle = errors.New("levelset: bundle needs at least one subsystem")

	// ErrContextMismatch indicates state and context lists of different
	// lengths.
	ErrContextMismatch = errors.New("levelset: context list length does not match state list")

	// ErrDimensionMismatch indicates a derivative whose length differs
	// from its subsystem's field.
	ErrDimensionMismatch = errors.New("levelset: derivative length does not match field")

	// ErrOptions indicates integration options outside their valid range.
	ErrOptions = errors.New("levelset: invalid options")
)

// StepError wraps a failure with the step at which it occurred.
type StepError struct {
	Step    int
	Time    float64
	Wrapped error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("step %d (t=%.6g): %v", e.Step, e.Time, e.Wrapped)
}

func (e *StepError) Unwrap() error {
	return e.Wrapped
}
