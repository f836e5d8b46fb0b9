package viz

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	HeaderStyle lipgloss.Style
	StatsStyle  lipgloss.Style
	LabelStyle  lipgloss.Style
	ValueStyle  lipgloss.Style
	WarnStyle   lipgloss.Style
	CanvasStyle lipgloss.Style
	HelpStyle   lipgloss.Style
)

func init() {
	ApplyTheme(CurrentTheme)
}

// ApplyTheme rebuilds the package styles from a theme.
func ApplyTheme(t Theme) {
	HeaderStyle = lipgloss.NewStyle().
		Foreground(t.Primary).
		Bold(true).
		MarginBottom(1)

	StatsStyle = lipgloss.NewStyle().
		Border(lipgloss.NormalBorder(), false, false, false, true).
		BorderForeground(t.Muted).
		Padding(1, 2)

	LabelStyle = lipgloss.NewStyle().
		Foreground(t.Muted).
		Width(12)

	ValueStyle = lipgloss.NewStyle().
		Foreground(t.Text)

	WarnStyle = lipgloss.NewStyle().
		Foreground(t.Warning).
		Bold(true)

	CanvasStyle = lipgloss.NewStyle().Padding(1, 2)

	HelpStyle = lipgloss.NewStyle().
		Foreground(t.Muted).
		MarginTop(1)
}

// ProgressBar renders integration progress toward the target time.
func ProgressBar(percent float64, width int) string {
	filled := int(percent * float64(width))
	if filled > width {
		filled = width
	}
	if filled < 0 {
		filled = 0
	}
	return strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
}
