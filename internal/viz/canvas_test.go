package viz

import (
	"math"
	"strings"
	"testing"

	"github.com/robotsorcerer/LevelSetMat/internal/grid"
)

func TestCanvas_SetAndRender(t *testing.T) {
	c := NewCanvas(2, 1)
	c.Set(0, 0)
	got := c.String()
	if got != "⠁⠀\n" {
		t.Errorf("String() = %q", got)
	}

	c.Set(-1, 0)
	c.Set(0, -1)
	c.Set(4, 0) // off canvas
	if c.String() != "⠁⠀\n" {
		t.Error("out-of-range Set must not change the canvas")
	}

	c.Clear()
	if c.String() != "⠀⠀\n" {
		t.Error("Clear left dots behind")
	}
}

func TestCanvas_DrawLine(t *testing.T) {
	c := NewCanvas(4, 2)
	c.DrawLine(0, 0, 7, 7)
	lit := 0
	for _, row := range c.Grid {
		for _, r := range row {
			if r != 0x2800 {
				lit++
			}
		}
	}
	if lit == 0 {
		t.Error("DrawLine lit no cells")
	}
}

func TestFront_Circle(t *testing.T) {
	g, err := grid.Uniform(2, 41, -1, 1)
	if err != nil {
		t.Fatalf("Uniform: %v", err)
	}
	phi := grid.Circle(g, []float64{0, 0}, 0.5)

	out := Front(g, phi, 30, 12)
	if lines := strings.Count(out, "\n"); lines != 12 {
		t.Errorf("rendered %d lines, want 12", lines)
	}
	lit := 0
	for _, r := range out {
		if r > 0x2800 && r <= 0x28ff {
			lit++
		}
	}
	// Frame plus front must light a good number of cells.
	if lit < 30 {
		t.Errorf("only %d lit cells", lit)
	}
}

func TestFront3D_Sphere(t *testing.T) {
	g, err := grid.Uniform(3, 21, -1, 1)
	if err != nil {
		t.Fatalf("Uniform: %v", err)
	}
	phi := grid.Circle(g, []float64{0, 0, 0}, 0.5)

	out := Front3D(g, phi, 30, 14)
	if lines := strings.Count(out, "\n"); lines != 14 {
		t.Errorf("rendered %d lines, want 14", lines)
	}
	lit := 0
	for _, r := range out {
		if r > 0x2800 && r <= 0x28ff {
			lit++
		}
	}
	if lit < 20 {
		t.Errorf("only %d lit cells", lit)
	}
}

func TestCamera_Project(t *testing.T) {
	cam := &Camera{Distance: 4, Zoom: 1}
	x, y, ok := cam.Project(Vec3{}, 60, 48)
	if !ok {
		t.Fatal("origin should be visible")
	}
	if x != 30 || y != 24 {
		t.Errorf("origin projected to (%d, %d), want screen center", x, y)
	}
	if _, _, ok := cam.Project(Vec3{Z: 10}, 60, 48); ok {
		t.Error("a point behind the camera should be invisible")
	}
}

func TestCamera_RotateAndZoom(t *testing.T) {
	cam := &Camera{Distance: 4, Zoom: 1}
	x0, _, ok := cam.Project(Vec3{X: 0.5}, 60, 48)
	if !ok {
		t.Fatal("point should be visible before rotation")
	}
	cam.RotateY(math.Pi / 2)
	x1, _, _ := cam.Project(Vec3{X: 0.5}, 60, 48)
	if x1 != 30 {
		t.Errorf("a quarter turn should move the point onto the view axis, got x=%d", x1)
	}
	if x0 == x1 {
		t.Error("rotation did not change the projection")
	}

	cam.RotateX(0.3)
	if cam.RotX != 0.3 {
		t.Errorf("RotX = %v, want 0.3", cam.RotX)
	}

	for i := 0; i < 30; i++ {
		cam.ZoomIn()
	}
	if cam.Zoom > 10 {
		t.Errorf("Zoom = %v, want clamped at 10", cam.Zoom)
	}
	for i := 0; i < 60; i++ {
		cam.ZoomOut()
	}
	if cam.Zoom < 0.1 {
		t.Errorf("Zoom = %v, want clamped at 0.1", cam.Zoom)
	}
}

func TestThemes(t *testing.T) {
	defer SetTheme("default")

	if got := GetTheme("retro").Name; got != "retro" {
		t.Errorf("GetTheme(retro) = %q", got)
	}
	if got := GetTheme("nope").Name; got != "default" {
		t.Errorf("unknown theme should fall back to default, got %q", got)
	}

	SetTheme("ocean")
	if CurrentTheme.Name != "ocean" {
		t.Errorf("CurrentTheme = %q after SetTheme", CurrentTheme.Name)
	}
	next := NextTheme()
	if next.Name != "default" {
		t.Errorf("NextTheme after ocean = %q, want default", next.Name)
	}

	names := ThemeNames()
	if len(names) != len(Themes) {
		t.Errorf("ThemeNames = %v", names)
	}
}
