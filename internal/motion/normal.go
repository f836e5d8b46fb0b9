package motion

import (
	"fmt"
	"math"

	"github.com/robotsorcerer/LevelSetMat/internal/grid"
	"github.com/robotsorcerer/LevelSetMat/internal/levelset"
)

// NormalSpeed moves the front in its normal direction at a constant speed,
// positive outward. The gradient magnitude uses Godunov upwinding so the
// entropy-satisfying solution is selected on both expansion and
// contraction.
type NormalSpeed struct {
	g     *grid.Grid
	speed float64
	bound float64
}

func NewNormalSpeed(g *grid.Grid, speed float64) (*NormalSpeed, error) {
	if speed == 0 {
		return nil, fmt.Errorf("motion: normal speed is zero, step bound undefined")
	}
	sum := 0.0
	for d := 0; d < g.Dims(); d++ {
		sum += math.Abs(speed) / g.Dx[d]
	}
	return &NormalSpeed{g: g, speed: speed, bound: 1 / sum}, nil
}

// Evaluate implements levelset.SchemeFunc.
func (n *NormalSpeed) Evaluate(t float64, y *levelset.Bundle) (levelset.State, float64, error) {
	phi := y.State(0)
	if len(phi) != n.g.Len() {
		return nil, 0, fmt.Errorf("motion: field has %d nodes, grid has %d: %w", len(phi), n.g.Len(), levelset.ErrDimensionMismatch)
	}
	ydot := make(levelset.State, len(phi))
	for idx := range phi {
		ix := n.g.Sub(idx)
		grad2 := 0.0
		for d := 0; d < n.g.Dims(); d++ {
			s := n.g.Stride(d)
			var dMinus, dPlus float64
			switch {
			case ix[d] == 0:
				dPlus = (phi[idx+s] - phi[idx]) / n.g.Dx[d]
				dMinus = dPlus
			case ix[d] == n.g.N[d]-1:
				dMinus = (phi[idx] - phi[idx-s]) / n.g.Dx[d]
				dPlus = dMinus
			default:
				dMinus = (phi[idx] - phi[idx-s]) / n.g.Dx[d]
				dPlus = (phi[idx+s] - phi[idx]) / n.g.Dx[d]
			}
			if n.speed > 0 {
				grad2 += sq(math.Max(dMinus, 0)) + sq(math.Min(dPlus, 0))
			} else {
				grad2 += sq(math.Min(dMinus, 0)) + sq(math.Max(dPlus, 0))
			}
		}
		ydot[idx] = -n.speed * math.Sqrt(grad2)
	}
	return ydot, n.bound, nil
}

func sq(x float64) float64 { return x * x }
