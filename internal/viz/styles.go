package viz

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), false, false, false, true).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 2).
			Width(46)

	canvasStyle = lipgloss.NewStyle().Padding(0, 1)
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(10)
	valueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).MarginTop(1)

	pausedStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#ffaa00")).Blink(true)
)

func headerStyle(t Theme) lipgloss.Style {
	return lipgloss.NewStyle().
		Bold(true).
		Foreground(t.Accent).
		BorderStyle(lipgloss.NormalBorder()).
		BorderBottom(true).
		BorderForeground(t.Muted)
}

// Gauge renders v in [-limit, limit] as a bar growing out from the centre.
func Gauge(v, limit float64, width int) string {
	half := width / 2
	if limit <= 0 || half == 0 {
		return strings.Repeat("·", width)
	}
	ratio := math.Max(-1, math.Min(1, v/limit))
	n := int(math.Round(math.Abs(ratio) * float64(half)))

	left := strings.Repeat("·", half)
	right := strings.Repeat("·", width-half)
	if ratio < 0 {
		left = strings.Repeat("·", half-n) + strings.Repeat("█", n)
	} else {
		right = strings.Repeat("█", n) + strings.Repeat("·", width-half-n)
	}
	return left + "│" + right
}

// Separator draws a muted rule of the given width.
func Separator(t Theme, width int) string {
	if width < 8 {
		return lipgloss.NewStyle().Foreground(t.Muted).Render(strings.Repeat("─", max(width, 0)))
	}
	mid := width / 2
	return lipgloss.NewStyle().Foreground(t.Muted).Render(
		strings.Repeat("─", mid-2) + " ◆ " + strings.Repeat("─", width-mid-3))
}
