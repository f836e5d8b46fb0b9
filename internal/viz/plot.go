package viz

import (
	"strings"

	"github.com/guptarohit/asciigraph"

	"github.com/robotsorcerer/LevelSetMat/internal/grid"
	"github.com/robotsorcerer/LevelSetMat/internal/levelset"
)

// Slice extracts the field along the last dimension through the grid
// center, the natural 1D profile to plot for any dimensionality.
func Slice(g *grid.Grid, phi levelset.State) []float64 {
	last := g.Dims() - 1
	n := g.N[last]
	out := make([]float64, n)
	ix := make([]int, g.Dims())
	for d := 0; d < last; d++ {
		ix[d] = g.N[d] / 2
	}
	for i := 0; i < n; i++ {
		ix[last] = i
		out[i] = phi[g.Index(ix...)]
	}
	return out
}

// Plot renders the center slice of the field as an ascii graph.
func Plot(g *grid.Grid, phi levelset.State, caption string) string {
	return asciigraph.Plot(Slice(g, phi),
		asciigraph.Height(10),
		asciigraph.Width(72),
		asciigraph.Caption(caption),
	)
}

// Contour renders a 2D field as a character raster: solid inside the
// front, shaded near it, empty outside.
func Contour(g *grid.Grid, phi levelset.State, width, height int) string {
	switch g.Dims() {
	case 2:
	case 3:
		return Front3D(g, phi, width, height)
	default:
		return Plot(g, phi, "center slice")
	}
	band := 1.5 * g.MinDx()
	var sb strings.Builder
	for r := 0; r < height; r++ {
		i := r * (g.N[0] - 1) / (height - 1)
		for c := 0; c < width; c++ {
			j := c * (g.N[1] - 1) / (width - 1)
			v := phi[g.Index(i, j)]
			switch {
			case v < -band:
				sb.WriteRune('█')
			case v < band:
				sb.WriteRune('▒')
			default:
				sb.WriteRune(' ')
			}
		}
		if r < height-1 {
			sb.WriteRune('\n')
		}
	}
	return sb.String()
}
