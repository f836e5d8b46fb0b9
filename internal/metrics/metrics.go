// Package metrics provides interface observers fed through the engine's
// post-step hook.
package metrics

import (
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/robotsorcerer/LevelSetMat/internal/grid"
	"github.com/robotsorcerer/LevelSetMat/internal/levelset"
	"github.com/robotsorcerer/LevelSetMat/internal/odecfl"
)

type Metric interface {
	Name() string
	Observe(t float64, phi levelset.State)
	Value() float64
	Reset()
}

// Hook adapts a set of metrics to a post-step hook observing the first
// subsystem's field.
func Hook(ms ...Metric) odecfl.PostStepFunc {
	return func(t float64, y *levelset.Bundle, _ *odecfl.Options) error {
		for _, m := range ms {
			m.Observe(t, y.State(0))
		}
		return nil
	}
}

// Volume tracks the volume enclosed by the front (phi < 0).
type Volume struct {
	name string
	g    *grid.Grid
	last float64
}

func NewVolume(g *grid.Grid) *Volume {
	return &Volume{name: "volume", g: g}
}

func (v *Volume) Name() string { return v.name }

func (v *Volume) Observe(t float64, phi levelset.State) {
	inside := 0
	for _, p := range phi {
		if p < 0 {
			inside++
		}
	}
	v.last = float64(inside) * v.g.CellVolume()
}

func (v *Volume) Value() float64 { return v.last }

func (v *Volume) Reset() { v.last = 0 }

// ZeroCrossings counts sign changes between neighboring nodes, summed
// over every dimension. For a well-resolved front the count tracks the
// front's surface area in nodes; a sudden jump flags spurious
// oscillation.
type ZeroCrossings struct {
	name string
	g    *grid.Grid
	last float64
}

func NewZeroCrossings(g *grid.Grid) *ZeroCrossings {
	return &ZeroCrossings{name: "zero_crossings", g: g}
}

func (z *ZeroCrossings) Name() string { return z.name }

func (z *ZeroCrossings) Observe(t float64, phi levelset.State) {
	count := 0
	for d := 0; d < z.g.Dims(); d++ {
		s := z.g.Stride(d)
		n := z.g.N[d]
		for idx := range phi {
			if (idx/s)%n == n-1 {
				continue
			}
			if (phi[idx] < 0) != (phi[idx+s] < 0) {
				count++
			}
		}
	}
	z.last = float64(count)
}

func (z *ZeroCrossings) Value() float64 { return z.last }

func (z *ZeroCrossings) Reset() { z.last = 0 }

// Extrema tracks the largest field magnitude seen over a run; a growing
// value flags a field drifting away from signed distance.
type Extrema struct {
	name string
	max  float64
}

func NewExtrema() *Extrema {
	return &Extrema{name: "max_magnitude"}
}

func (e *Extrema) Name() string { return e.name }

func (e *Extrema) Observe(t float64, phi levelset.State) {
	if len(phi) == 0 {
		return
	}
	m := math.Max(math.Abs(floats.Max(phi)), math.Abs(floats.Min(phi)))
	e.max = math.Max(e.max, m)
}

func (e *Extrema) Value() float64 { return e.max }

func (e *Extrema) Reset() { e.max = 0 }
