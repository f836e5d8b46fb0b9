package odecfl_test

import (
	"context"
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gonum.org/v1/gonum/floats"

	"github.com/robotsorcerer/LevelSetMat/internal/levelset"
	"github.com/robotsorcerer/LevelSetMat/internal/odecfl"
)

// decayScheme depends on the state, so identical step sequences are
// required for bitwise-equal results.
func decayScheme(bound float64) levelset.SchemeFunc {
	return func(t float64, y *levelset.Bundle) (levelset.State, float64, error) {
		s := y.State(0)
		ydot := make(levelset.State, len(s))
		for i := range s {
			ydot[i] = -s[i]
		}
		return ydot, bound, nil
	}
}

var _ = Describe("Solve", func() {
	var (
		integ *odecfl.RK3
		opts  *odecfl.Options
	)

	BeforeEach(func() {
		var err error
		integ, err = odecfl.NewRK3(decayScheme(0.25))
		Expect(err).NotTo(HaveOccurred())
		opts = odecfl.DefaultOptions()
	})

	It("rejects time spans with fewer than two entries", func() {
		b := levelset.Single(levelset.State{1}, nil)
		_, err := odecfl.Solve(context.Background(), integ, []float64{0}, b, opts)
		Expect(err).To(MatchError(levelset.ErrTimeSpan))

		_, err = odecfl.Solve(context.Background(), integ, nil, b, opts)
		Expect(err).To(MatchError(levelset.ErrTimeSpan))
	})

	It("rejects time spans that are not strictly increasing", func() {
		b := levelset.Single(levelset.State{1}, nil)
		_, err := odecfl.Solve(context.Background(), integ, []float64{0, 1, 1}, b, opts)
		Expect(err).To(MatchError(levelset.ErrTimeSpan))
	})

	It("records one snapshot per requested time", func() {
		b := levelset.Single(levelset.State{1, 2}, nil)
		res, err := odecfl.Solve(context.Background(), integ, []float64{0, 0.5, 1, 1.5}, b, opts)
		Expect(err).NotTo(HaveOccurred())
		Expect(res.Times).To(HaveLen(3))
		Expect(res.Snapshots).To(HaveLen(3))
		Expect(res.Times[0]).To(BeNumerically("~", 0.5, 1e-12))
		Expect(res.Times[2]).To(BeNumerically("~", 1.5, 1e-12))
		// Snapshots are decoupled from the live bundle.
		res.Snapshots[2][0][0] = 99
		Expect(b.State(0)[0]).NotTo(Equal(99.0))
	})

	It("matches sequential two-point calls exactly", func() {
		bA := levelset.Single(levelset.State{1, -2, 3}, nil)
		resA, err := odecfl.Solve(context.Background(), integ, []float64{0, 1, 2}, bA, opts)
		Expect(err).NotTo(HaveOccurred())

		bB := levelset.Single(levelset.State{1, -2, 3}, nil)
		_, err = odecfl.Solve(context.Background(), integ, []float64{0, 1}, bB, opts)
		Expect(err).NotTo(HaveOccurred())
		resB, err := odecfl.Solve(context.Background(), integ, []float64{1, 2}, bB, opts)
		Expect(err).NotTo(HaveOccurred())

		Expect(floats.Equal(bA.State(0), bB.State(0))).To(BeTrue(),
			"three-point span and chained two-point spans diverged")
		Expect(resA.T).To(Equal(resB.T))
		Expect(resA.Steps).To(Equal(resB.Steps + countSteps(integ, opts)))
	})

	It("accumulates steps and violations across legs", func() {
		b := levelset.Single(levelset.State{1}, nil)
		res, err := odecfl.Solve(context.Background(), integ, []float64{0, 0.5, 1}, b, opts)
		Expect(err).NotTo(HaveOccurred())
		Expect(res.Steps).To(BeNumerically(">", 0))
		Expect(res.Violations).To(BeEmpty())
	})

	It("returns after one step in single-step mode", func() {
		opts.SingleStep = true
		b := levelset.Single(levelset.State{1}, nil)
		res, err := odecfl.Solve(context.Background(), integ, []float64{0, 1, 2}, b, opts)
		Expect(err).NotTo(HaveOccurred())
		Expect(res.Steps).To(Equal(1))
		Expect(res.Snapshots).To(HaveLen(1))
		Expect(res.T).To(BeNumerically("~", 0.125, 1e-12))
	})
})

// countSteps replays the first leg to know how many steps [0,1] takes on
// a fresh state.
func countSteps(integ *odecfl.RK3, opts *odecfl.Options) int {
	b := levelset.Single(levelset.State{1, -2, 3}, nil)
	res, err := odecfl.Solve(context.Background(), integ, []float64{0, 1}, b, opts)
	Expect(err).NotTo(HaveOccurred())
	return res.Steps
}

var _ = Describe("terminal events", func() {
	newIntegrator := func() *odecfl.RK3 {
		integ, err := odecfl.NewRK3(constSchemeT(0.2))
		Expect(err).NotTo(HaveOccurred())
		return integ
	}

	It("halts on the first step after the event crosses zero", func() {
		const tSwitch = 0.35
		opts := odecfl.DefaultOptions() // dt = 0.1 per step
		opts.TerminalEvent = func(t float64, y *levelset.Bundle, tPrev float64, yPrev []levelset.State) ([]float64, error) {
			return []float64{t - tSwitch}, nil
		}

		b := levelset.Single(levelset.State{0}, nil)
		res, err := odecfl.Solve(context.Background(), newIntegrator(), []float64{0, 1}, b, opts)
		Expect(err).NotTo(HaveOccurred())
		Expect(res.EventStopped).To(BeTrue())
		// Not at t=0.3 (before the switch), exactly at the first step past
		// it, with no extra step taken.
		Expect(res.T).To(BeNumerically(">", tSwitch))
		Expect(res.T).To(BeNumerically("<", tSwitch+0.1))
	})

	It("never terminates on the very first step", func() {
		// The sign is already on its final side before stepping begins; a
		// baseline-free implementation would stop immediately.
		const tSwitch = 0.05
		opts := odecfl.DefaultOptions()
		opts.TerminalEvent = func(t float64, y *levelset.Bundle, tPrev float64, yPrev []levelset.State) ([]float64, error) {
			return []float64{t - tSwitch}, nil
		}

		b := levelset.Single(levelset.State{0}, nil)
		res, err := odecfl.Solve(context.Background(), newIntegrator(), []float64{0, 1}, b, opts)
		Expect(err).NotTo(HaveOccurred())
		Expect(res.EventStopped).To(BeFalse())
		Expect(res.T).To(BeNumerically("~", 1, 1e-9))
	})

	It("receives the state recorded before the step", func() {
		opts := odecfl.DefaultOptions()
		var sawPrev bool
		opts.TerminalEvent = func(t float64, y *levelset.Bundle, tPrev float64, yPrev []levelset.State) ([]float64, error) {
			Expect(tPrev).To(BeNumerically("<", t))
			Expect(yPrev).To(HaveLen(1))
			sawPrev = true
			return []float64{1}, nil
		}

		b := levelset.Single(levelset.State{0}, nil)
		_, err := odecfl.Solve(context.Background(), newIntegrator(), []float64{0, 0.3}, b, opts)
		Expect(err).NotTo(HaveOccurred())
		Expect(sawPrev).To(BeTrue())
	})
})

// constSchemeT returns a scheme with zero derivative and a fixed bound, so
// event timing depends only on the step sequence.
func constSchemeT(bound float64) levelset.SchemeFunc {
	return func(t float64, y *levelset.Bundle) (levelset.State, float64, error) {
		return make(levelset.State, len(y.State(0))), bound, nil
	}
}

var _ = Describe("step loop arithmetic", func() {
	It("caps the final step at the target time", func() {
		integ, err := odecfl.NewRK3(constSchemeT(1e6))
		Expect(err).NotTo(HaveOccurred())
		opts := odecfl.DefaultOptions()
		opts.MaxStep = 0.5

		b := levelset.Single(levelset.State{0}, nil)
		res, err := odecfl.Solve(context.Background(), integ, []float64{0, 0.75}, b, opts)
		Expect(err).NotTo(HaveOccurred())
		Expect(res.T).To(BeNumerically("~", 0.75, 1e-12))
		Expect(res.Steps).To(Equal(2))
		Expect(math.IsNaN(res.T)).To(BeFalse())
	})
})
