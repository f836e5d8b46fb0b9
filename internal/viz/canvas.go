package viz

import (
	"strings"

	"github.com/robotsorcerer/LevelSetMat/internal/grid"
	"github.com/robotsorcerer/LevelSetMat/internal/levelset"
)

// Braille Patterns: 2x4 dots
// 1 4
// 2 5
// 3 6
// 7 8
//
// Unicode offset 0x2800
var pixelMap = [4][2]int{
	{0x1, 0x8},
	{0x2, 0x10},
	{0x4, 0x20},
	{0x40, 0x80},
}

// Canvas is a Braille-cell raster. Each character cell packs 2x4 dots, so
// a front drawn here is four times sharper vertically than a block raster.
type Canvas struct {
	Width, Height int
	Grid          [][]rune
}

func NewCanvas(w, h int) *Canvas {
	c := &Canvas{
		Width:  w,
		Height: h,
		Grid:   make([][]rune, h),
	}
	for i := range c.Grid {
		c.Grid[i] = make([]rune, w)
		for j := range c.Grid[i] {
			c.Grid[i][j] = 0x2800 // Empty braille char
		}
	}
	return c
}

// Set marks a dot at (x, y) in dot coordinates. The canvas holds
// (Width*2) x (Height*4) dots.
func (c *Canvas) Set(x, y int) {
	if x < 0 || y < 0 {
		return
	}

	col := x / 2
	row := y / 4
	if col >= c.Width || row >= c.Height {
		return
	}

	c.Grid[row][col] |= rune(pixelMap[y%4][x%2])
}

// Clear resets the canvas
func (c *Canvas) Clear() {
	for i := range c.Grid {
		for j := range c.Grid[i] {
			c.Grid[i][j] = 0x2800
		}
	}
}

// DrawLine draws a line using Bresenham's algorithm
func (c *Canvas) DrawLine(x0, y0, x1, y1 int) {
	dx := absInt(x1 - x0)
	dy := absInt(y1 - y0)
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx - dy

	for {
		c.Set(x0, y0)
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x0 += sx
		}
		if e2 < dx {
			err += dx
			y0 += sy
		}
	}
}

func (c *Canvas) String() string {
	var b strings.Builder
	for _, row := range c.Grid {
		b.WriteString(string(row) + "\n")
	}
	return b.String()
}

// Front rasterizes the zero level set of a 2D field onto a Braille canvas
// with a frame around the domain. The field is sampled bilinearly at dot
// resolution and a dot is lit wherever the interpolated value sits within
// half a dot spacing of zero.
func Front(g *grid.Grid, phi levelset.State, width, height int) string {
	switch g.Dims() {
	case 2:
	case 3:
		return Front3D(g, phi, width, height)
	default:
		return Plot(g, phi, "center slice")
	}
	c := NewCanvas(width, height)
	nx, ny := width*2, height*4

	// Physical size of one dot step, per dimension.
	hx := (g.Max[0] - g.Min[0]) / float64(nx-1)
	hy := (g.Max[1] - g.Min[1]) / float64(ny-1)
	band := 0.75 * maxFloat(hx, hy)

	for y := 0; y < ny; y++ {
		for x := 0; x < nx; x++ {
			px := g.Min[0] + float64(x)*hx
			py := g.Min[1] + float64(y)*hy
			v := sample2D(g, phi, px, py)
			if v > -band && v < band {
				c.Set(x, y)
			}
		}
	}

	c.DrawLine(0, 0, nx-1, 0)
	c.DrawLine(0, ny-1, nx-1, ny-1)
	c.DrawLine(0, 0, 0, ny-1)
	c.DrawLine(nx-1, 0, nx-1, ny-1)
	return c.String()
}

// sample2D interpolates the field bilinearly at a physical point.
func sample2D(g *grid.Grid, phi levelset.State, px, py float64) float64 {
	fx := (px - g.Min[0]) / g.Dx[0]
	fy := (py - g.Min[1]) / g.Dx[1]
	i := clampInt(int(fx), 0, g.N[0]-2)
	j := clampInt(int(fy), 0, g.N[1]-2)
	tx := fx - float64(i)
	ty := fy - float64(j)

	v00 := phi[g.Index(i, j)]
	v01 := phi[g.Index(i, j+1)]
	v10 := phi[g.Index(i+1, j)]
	v11 := phi[g.Index(i+1, j+1)]
	return v00*(1-tx)*(1-ty) + v10*tx*(1-ty) + v01*(1-tx)*ty + v11*tx*ty
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

func clampInt(x, lo, hi int) int {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}

func maxFloat(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}
