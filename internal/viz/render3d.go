package viz

import (
	"math"

	"github.com/robotsorcerer/LevelSetMat/internal/grid"
	"github.com/robotsorcerer/LevelSetMat/internal/levelset"
)

type Vec3 struct {
	X, Y, Z float64
}

func (v Vec3) Scale(s float64) Vec3 { return Vec3{v.X * s, v.Y * s, v.Z * s} }

// Camera manages 3D projection to a 2D plane.
type Camera struct {
	Distance   float64
	RotX, RotY float64
	Zoom       float64
}

func NewCamera() *Camera {
	// A gentle tilt so all three axes of the front are visible.
	return &Camera{Distance: 4, RotX: -0.5, RotY: 0.6, Zoom: 1.0}
}

func (c *Camera) RotateX(a float64) { c.RotX += a }
func (c *Camera) RotateY(a float64) { c.RotY += a }
func (c *Camera) ZoomIn()           { c.Zoom = math.Min(10, c.Zoom*1.2) }
func (c *Camera) ZoomOut()          { c.Zoom = math.Max(0.1, c.Zoom/1.2) }

// RotatePoint rotates a point around the camera's axes.
func (c *Camera) RotatePoint(p Vec3) Vec3 {
	cx, sx := math.Cos(c.RotX), math.Sin(c.RotX)
	p.Y, p.Z = p.Y*cx-p.Z*sx, p.Y*sx+p.Z*cx
	cy, sy := math.Cos(c.RotY), math.Sin(c.RotY)
	p.X, p.Z = p.X*cy+p.Z*sy, -p.X*sy+p.Z*cy
	return p
}

// Project converts world coordinates to dot coordinates on a canvas of
// sw x sh dots. Returns x, y and visibility.
func (c *Camera) Project(p Vec3, sw, sh int) (int, int, bool) {
	rot := c.RotatePoint(p).Scale(c.Zoom)
	if rot.Z >= c.Distance-0.1 {
		return 0, 0, false
	}
	scale := c.Distance / (c.Distance - rot.Z)
	minDim := float64(sh)
	if float64(sw) < minDim {
		minDim = float64(sw)
	}
	pScale := minDim / 3.0
	sx := int(rot.X*scale*pScale) + sw/2
	sy := int(-rot.Y*scale*pScale) + sh/2
	return sx, sy, sx >= 0 && sx < sw && sy >= 0 && sy < sh
}

// Wireframe is a set of edges in world coordinates; a degenerate edge is
// a point.
type Wireframe struct{ Edges [][2]Vec3 }

func NewWireframe() *Wireframe         { return &Wireframe{} }
func (w *Wireframe) AddEdge(s, e Vec3) { w.Edges = append(w.Edges, [2]Vec3{s, e}) }
func (w *Wireframe) AddPoint(p Vec3)   { w.Edges = append(w.Edges, [2]Vec3{p, p}) }

// Render3D draws the wireframe onto the canvas at dot resolution.
func Render3D(c *Canvas, w *Wireframe, cam *Camera) {
	if c == nil || w == nil || cam == nil {
		return
	}
	cw, ch := c.Width*2, c.Height*4
	for _, e := range w.Edges {
		x1, y1, v1 := cam.Project(e[0], cw, ch)
		x2, y2, v2 := cam.Project(e[1], cw, ch)
		if !v1 && !v2 {
			continue
		}
		if x1 == x2 && y1 == y2 {
			c.Set(x1, y1)
		} else {
			c.DrawLine(x1, y1, x2, y2)
		}
	}
}

// BoundsWireframe builds the grid's bounding box in normalized
// coordinates.
func BoundsWireframe() *Wireframe {
	w := NewWireframe()
	v := []Vec3{
		{-1, -1, -1}, {1, -1, -1}, {1, 1, -1}, {-1, 1, -1},
		{-1, -1, 1}, {1, -1, 1}, {1, 1, 1}, {-1, 1, 1},
	}
	ei := [][2]int{{0, 1}, {1, 2}, {2, 3}, {3, 0}, {4, 5}, {5, 6}, {6, 7}, {7, 4}, {0, 4}, {1, 5}, {2, 6}, {3, 7}}
	for _, e := range ei {
		w.AddEdge(v[e[0]], v[e[1]])
	}
	return w
}

// FrontWireframe collects the nodes within one spacing of the front as a
// point cloud, normalized so the grid fills the bounding box.
func FrontWireframe(g *grid.Grid, phi levelset.State) *Wireframe {
	w := NewWireframe()
	band := g.MinDx()
	center := make([]float64, 3)
	scale := make([]float64, 3)
	for d := 0; d < 3; d++ {
		center[d] = 0.5 * (g.Min[d] + g.Max[d])
		scale[d] = 2 / (g.Max[d] - g.Min[d])
	}
	for idx, v := range phi {
		if v < -band || v > band {
			continue
		}
		x := g.Coord(idx)
		w.AddPoint(Vec3{
			X: (x[0] - center[0]) * scale[0],
			Y: (x[1] - center[1]) * scale[1],
			Z: (x[2] - center[2]) * scale[2],
		})
	}
	return w
}

// Front3D renders a 3D field's front as a projected point cloud inside
// its bounding box, seen from the default camera.
func Front3D(g *grid.Grid, phi levelset.State, width, height int) string {
	return Front3DWith(g, phi, width, height, NewCamera())
}

// Front3DWith renders through a caller-owned camera, e.g. one being
// rotated and zoomed interactively.
func Front3DWith(g *grid.Grid, phi levelset.State, width, height int, cam *Camera) string {
	c := NewCanvas(width, height)
	Render3D(c, BoundsWireframe(), cam)
	Render3D(c, FrontWireframe(g, phi), cam)
	return c.String()
}
