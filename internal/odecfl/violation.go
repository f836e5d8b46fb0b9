package odecfl

import "fmt"

// Violation reports a CFL bound exceeded on stage 2 or 3 of an accepted
// step. The step is kept as computed; the diagnostic carries the numbers a
// caller needs to judge the stability risk.
type Violation struct {
	// Time of the stage evaluation that observed the violation.
	Time float64
	// Stage is 2 or 3.
	Stage int
	// DeltaT is the timestep fixed at stage 1.
	DeltaT float64
	// Bound is the governing step bound re-measured at this stage.
	Bound float64
}

// Ratio is DeltaT / Bound; values above 1 overstep the re-measured bound.
func (v Violation) Ratio() float64 { return v.DeltaT / v.Bound }

func (v Violation) String() string {
	return fmt.Sprintf("cfl bound exceeded at t=%.6g (stage %d): deltaT/bound = %.4g", v.Time, v.Stage, v.Ratio())
}
