package viz

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/robotsorcerer/LevelSetMat/internal/grid"
	"github.com/robotsorcerer/LevelSetMat/internal/levelset"
	"github.com/robotsorcerer/LevelSetMat/internal/metrics"
	"github.com/robotsorcerer/LevelSetMat/internal/odecfl"
)

const (
	canvasWidth     = 56
	canvasHeight    = 22
	historyCapacity = 400
)

type TickMsg time.Time

// Model drives the integration engine one step per frame through
// single-step mode; the engine never knows it is being animated.
type Model struct {
	integ *odecfl.RK3
	b     *levelset.Bundle
	opts  *odecfl.Options
	g     *grid.Grid

	t, tFinal  float64
	steps      int
	violations int
	running    bool
	done       bool
	err        error

	vol     *metrics.Volume
	history []float64

	initStates []levelset.State
	name       string
	braille    bool
	cam        *Camera
}

func NewModel(integ *odecfl.RK3, b *levelset.Bundle, opts *odecfl.Options, g *grid.Grid, tFinal float64, name string) Model {
	stepOpts := *opts
	stepOpts.SingleStep = true
	return Model{
		integ:      integ,
		b:          b,
		opts:       &stepOpts,
		g:          g,
		tFinal:     tFinal,
		running:    true,
		vol:        metrics.NewVolume(g),
		history:    make([]float64, 0, historyCapacity),
		initStates: b.CloneStates(),
		name:       name,
		cam:        NewCamera(),
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Tick(time.Second/30, func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.running = !m.running
		case "r":
			m.reset()
		case "f":
			m.braille = !m.braille
		case "t":
			NextTheme()
		case "left":
			m.cam.RotateY(-0.15)
		case "right":
			m.cam.RotateY(0.15)
		case "up":
			m.cam.RotateX(-0.15)
		case "down":
			m.cam.RotateX(0.15)
		case "+", "=":
			m.cam.ZoomIn()
		case "-":
			m.cam.ZoomOut()
		}
	case TickMsg:
		if m.running && !m.done && m.err == nil {
			m.step()
		}
		return m, tea.Tick(time.Second/30, func(t time.Time) tea.Msg { return TickMsg(t) })
	}
	return m, nil
}

func (m *Model) step() {
	leg, err := m.integ.Integrate(context.Background(), m.t, m.tFinal, m.b, m.opts)
	if leg != nil {
		m.t = leg.T
		m.steps += leg.Steps
		m.violations += len(leg.Violations)
	}
	if err != nil {
		m.err = err
		return
	}
	if m.t >= m.tFinal {
		m.done = true
	}
	m.vol.Observe(m.t, m.b.State(0))
	if len(m.history) < historyCapacity {
		m.history = append(m.history, m.vol.Value())
	}
}

func (m *Model) reset() {
	if err := m.b.RestoreStates(m.initStates); err != nil {
		m.err = err
		return
	}
	m.initStates = m.b.CloneStates()
	m.t = 0
	m.steps = 0
	m.violations = 0
	m.history = m.history[:0]
	m.done = false
	m.err = nil
	m.running = true
}

func (m Model) View() string {
	header := HeaderStyle.Render(fmt.Sprintf("levelset live — %s", m.name))

	var field string
	switch {
	case m.g.Dims() == 3:
		field = Front3DWith(m.g, m.b.State(0), canvasWidth, canvasHeight, m.cam)
	case m.braille:
		field = Front(m.g, m.b.State(0), canvasWidth, canvasHeight)
	default:
		field = Contour(m.g, m.b.State(0), canvasWidth, canvasHeight)
	}
	canvas := CanvasStyle.Render(field)

	status := "running"
	if !m.running {
		status = "paused"
	}
	if m.done {
		status = "done"
	}
	if m.err != nil {
		status = WarnStyle.Render("error: " + m.err.Error())
	}

	progress := 0.0
	if m.tFinal > 0 {
		progress = m.t / m.tFinal
	}

	stats := StatsStyle.Render(
		LabelStyle.Render("t") + ValueStyle.Render(fmt.Sprintf("%.4f / %.4f", m.t, m.tFinal)) + "\n" +
			LabelStyle.Render("steps") + ValueStyle.Render(fmt.Sprintf("%d", m.steps)) + "\n" +
			LabelStyle.Render("cfl warns") + ValueStyle.Render(fmt.Sprintf("%d", m.violations)) + "\n" +
			LabelStyle.Render("volume") + ValueStyle.Render(fmt.Sprintf("%.5f", m.vol.Value())) + "\n" +
			LabelStyle.Render("status") + ValueStyle.Render(status) + "\n\n" +
			ProgressBar(progress, 28),
	)

	body := lipgloss.JoinHorizontal(lipgloss.Top, canvas, stats)

	var graph string
	if len(m.history) > 1 {
		graph = CanvasStyle.Render(asciigraph.Plot(m.history,
			asciigraph.Height(6),
			asciigraph.Width(80),
			asciigraph.Caption("enclosed volume"),
		))
	}

	keys := "space pause · r reset · f front view · t theme · q quit"
	if m.g.Dims() == 3 {
		keys = "space pause · r reset · arrows rotate · +/- zoom · t theme · q quit"
	}
	help := HelpStyle.Render(keys)

	return header + "\n" + body + "\n" + graph + "\n" + help
}
