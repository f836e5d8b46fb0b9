package motion

import (
	"fmt"
	"math"

	"github.com/robotsorcerer/LevelSetMat/internal/grid"
	"github.com/robotsorcerer/LevelSetMat/internal/levelset"
)

// Advection transports the field with a constant velocity using
// first-order upwind differences. The step bound is the advective CFL
// limit 1 / sum_d(|v_d| / dx_d).
type Advection struct {
	g     *grid.Grid
	vel   []float64
	bound float64
}

func NewAdvection(g *grid.Grid, vel []float64) (*Advection, error) {
	if len(vel) != g.Dims() {
		return nil, fmt.Errorf("motion: velocity has %d components for a %dD grid", len(vel), g.Dims())
	}
	sum := 0.0
	for d, v := range vel {
		sum += math.Abs(v) / g.Dx[d]
	}
	if sum == 0 {
		return nil, fmt.Errorf("motion: advection velocity is zero, step bound undefined")
	}
	return &Advection{
		g:     g,
		vel:   append([]float64(nil), vel...),
		bound: 1 / sum,
	}, nil
}

// Evaluate implements levelset.SchemeFunc.
func (a *Advection) Evaluate(t float64, y *levelset.Bundle) (levelset.State, float64, error) {
	phi := y.State(0)
	if len(phi) != a.g.Len() {
		return nil, 0, fmt.Errorf("motion: field has %d nodes, grid has %d: %w", len(phi), a.g.Len(), levelset.ErrDimensionMismatch)
	}
	ydot := make(levelset.State, len(phi))
	for idx := range phi {
		ix := a.g.Sub(idx)
		adv := 0.0
		for d := 0; d < a.g.Dims(); d++ {
			v := a.vel[d]
			if v == 0 {
				continue
			}
			s := a.g.Stride(d)
			var diff float64
			if v > 0 {
				if ix[d] > 0 {
					diff = (phi[idx] - phi[idx-s]) / a.g.Dx[d]
				} else {
					diff = (phi[idx+s] - phi[idx]) / a.g.Dx[d]
				}
			} else {
				if ix[d] < a.g.N[d]-1 {
					diff = (phi[idx+s] - phi[idx]) / a.g.Dx[d]
				} else {
					diff = (phi[idx] - phi[idx-s]) / a.g.Dx[d]
				}
			}
			adv += v * diff
		}
		ydot[idx] = -adv
	}
	return ydot, a.bound, nil
}
