package grid

import (
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/robotsorcerer/LevelSetMat/internal/levelset"
)

// Circle returns the signed distance to a circle (sphere in 3D): negative
// inside, zero on the front, positive outside.
func Circle(g *Grid, center []float64, radius float64) levelset.State {
	phi := make(levelset.State, g.Len())
	for idx := range phi {
		x := g.Coord(idx)
		sum := 0.0
		for d := range x {
			dd := x[d] - center[d]
			sum += dd * dd
		}
		phi[idx] = math.Sqrt(sum) - radius
	}
	return phi
}

// Interval returns the signed distance to the slab lo <= x_d <= hi along
// dimension d.
func Interval(g *Grid, dim int, lo, hi float64) levelset.State {
	phi := make(levelset.State, g.Len())
	for idx := range phi {
		x := g.Coord(idx)[dim]
		phi[idx] = math.Max(lo-x, x-hi)
	}
	return phi
}

// Union combines implicit shapes by elementwise minimum.
func Union(a, b levelset.State) levelset.State {
	out := make(levelset.State, len(a))
	for i := range a {
		out[i] = math.Min(a[i], b[i])
	}
	return out
}

// Intersection combines implicit shapes by elementwise maximum.
func Intersection(a, b levelset.State) levelset.State {
	out := make(levelset.State, len(a))
	for i := range a {
		out[i] = math.Max(a[i], b[i])
	}
	return out
}

// Complement flips inside and outside.
func Complement(a levelset.State) levelset.State {
	out := make(levelset.State, len(a))
	floats.ScaleTo(out, -1, a)
	return out
}
