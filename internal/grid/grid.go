// Package grid provides uniform Cartesian grids and signed-distance
// initial conditions for level set fields.
package grid

import "fmt"

// Grid is a uniform node-centered Cartesian grid. Fields are flattened in
// row-major order with the last dimension varying fastest.
type Grid struct {
	N   []int     // nodes per dimension, each >= 2
	Min []float64 // lower corner
	Max []float64 // upper corner
	Dx  []float64 // node spacing per dimension

	strides []int
	size    int
}

func New(n []int, min, max []float64) (*Grid, error) {
	if len(n) == 0 || len(n) != len(min) || len(n) != len(max) {
		return nil, fmt.Errorf("grid: need matching n/min/max, got %d/%d/%d", len(n), len(min), len(max))
	}
	g := &Grid{
		N:       append([]int(nil), n...),
		Min:     append([]float64(nil), min...),
		Max:     append([]float64(nil), max...),
		Dx:      make([]float64, len(n)),
		strides: make([]int, len(n)),
		size:    1,
	}
	for d := range n {
		if n[d] < 2 {
			return nil, fmt.Errorf("grid: dimension %d needs at least 2 nodes, got %d", d, n[d])
		}
		if max[d] <= min[d] {
			return nil, fmt.Errorf("grid: dimension %d has max %g <= min %g", d, max[d], min[d])
		}
		g.Dx[d] = (max[d] - min[d]) / float64(n[d]-1)
	}
	for d := len(n) - 1; d >= 0; d-- {
		g.strides[d] = g.size
		g.size *= n[d]
	}
	return g, nil
}

// Uniform builds a grid with the same node count and extent in every
// dimension.
func Uniform(dims, n int, min, max float64) (*Grid, error) {
	ns := make([]int, dims)
	mins := make([]float64, dims)
	maxs := make([]float64, dims)
	for d := 0; d < dims; d++ {
		ns[d] = n
		mins[d] = min
		maxs[d] = max
	}
	return New(ns, mins, maxs)
}

func (g *Grid) Dims() int { return len(g.N) }

// Len is the total number of nodes.
func (g *Grid) Len() int { return g.size }

// Stride is the flat-index distance between neighbors along dimension d.
func (g *Grid) Stride(d int) int { return g.strides[d] }

// Index flattens a multi-index.
func (g *Grid) Index(ix ...int) int {
	idx := 0
	for d, i := range ix {
		idx += i * g.strides[d]
	}
	return idx
}

// Sub recovers the multi-index of a flat index.
func (g *Grid) Sub(idx int) []int {
	ix := make([]int, len(g.N))
	for d := range g.N {
		ix[d] = (idx / g.strides[d]) % g.N[d]
	}
	return ix
}

// Coord returns the coordinates of a node.
func (g *Grid) Coord(idx int) []float64 {
	ix := g.Sub(idx)
	x := make([]float64, len(ix))
	for d, i := range ix {
		x[d] = g.Min[d] + float64(i)*g.Dx[d]
	}
	return x
}

// CellVolume is the volume represented by one node.
func (g *Grid) CellVolume() float64 {
	v := 1.0
	for _, dx := range g.Dx {
		v *= dx
	}
	return v
}

// MinDx is the smallest spacing across dimensions.
func (g *Grid) MinDx() float64 {
	m := g.Dx[0]
	for _, dx := range g.Dx[1:] {
		if dx < m {
			m = dx
		}
	}
	return m
}
