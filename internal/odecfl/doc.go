// Package odecfl implements CFL-constrained TVD Runge-Kutta time
// integration for semi-discrete PDEs (method of lines).
//
// The core is a third-order Shu-Osher TVD scheme whose timestep is chosen
// once per step from the step bound reported by the caller-supplied scheme
// function, then monitored (not re-derived) across the remaining stages:
//
//	dt = min(FactorCFL * bound, tFinal - t, MaxStep)
//
// Later stages that exceed the bound beyond a safety margin are reported as
// [Violation] diagnostics; the step is never redone with a smaller dt.
//
// [RK3.Integrate] runs the step loop for one two-point time span, with an
// optional post-step hook, a terminal-event predicate that halts on the
// first sign change of its event values, and a single-step mode for callers
// driving time externally. [Solve] is the multi-output-time driver: one
// snapshot per requested time, restarting the loop for each consecutive
// pair of times.
package odecfl
