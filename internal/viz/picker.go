package viz

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog"

	"github.com/san-kum/flysim/internal/config"
	"github.com/san-kum/flysim/internal/sim"
	"github.com/san-kum/flysim/internal/vehicle"
)

var (
	titleStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#00cccc")).Bold(true)
	subStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#666688"))
	cursorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#00ffff")).Bold(true)
	activeStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#ffffff")).Bold(true)
	idleStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#555566"))
	keyStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#00aaaa")).Bold(true)
)

// Picker lets the user choose which vehicles to fly, then hands over to
// the flight view.
type Picker struct {
	specs  []*config.VehicleSpec
	chosen []bool
	cursor int
	fps    int
	theme  string
	log    zerolog.Logger
	live   *Model
	err    error
}

func NewPicker(specs []*config.VehicleSpec, fps int, theme string, log zerolog.Logger) Picker {
	return Picker{
		specs:  specs,
		chosen: make([]bool, len(specs)),
		fps:    fps,
		theme:  theme,
		log:    log,
	}
}

func (p Picker) Init() tea.Cmd { return nil }

func (p Picker) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if p.live != nil {
		next, cmd := p.live.Update(msg)
		live := next.(Model)
		p.live = &live
		return p, cmd
	}

	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return p, nil
	}
	switch key.String() {
	case "q", "esc", "ctrl+c":
		return p, tea.Quit
	case "up", "k":
		if p.cursor > 0 {
			p.cursor--
		}
	case "down", "j":
		if p.cursor < len(p.specs)-1 {
			p.cursor++
		}
	case " ":
		p.chosen[p.cursor] = !p.chosen[p.cursor]
	case "enter":
		return p.start()
	}
	return p, nil
}

// Selected returns the chosen specs, or the one under the cursor when none
// are ticked.
func (p Picker) Selected() []*config.VehicleSpec {
	var out []*config.VehicleSpec
	for i, ok := range p.chosen {
		if ok {
			out = append(out, p.specs[i])
		}
	}
	if len(out) == 0 && len(p.specs) > 0 {
		out = append(out, p.specs[p.cursor])
	}
	return out
}

func (p Picker) start() (tea.Model, tea.Cmd) {
	session := sim.NewSession(p.log)
	for _, spec := range p.Selected() {
		v, err := vehicle.New(*spec)
		if err != nil {
			p.err = err
			return p, nil
		}
		session.Add(v)
	}
	if len(session.Vehicles()) == 0 {
		return p, nil
	}
	live := NewModel(session, p.fps, p.theme)
	p.live = &live
	return p, live.Init()
}

func (p Picker) View() string {
	if p.live != nil {
		return p.live.View()
	}

	var b strings.Builder
	b.WriteString("\n\n    " + titleStyle.Render("FLYSIM") + "\n    " + subStyle.Render("rigid-body flight") + "\n    " + subStyle.Render("─────────────────────────") + "\n\n")
	for i, spec := range p.specs {
		box := "[ ]"
		if p.chosen[i] {
			box = "[x]"
		}
		line := fmt.Sprintf("%s %-14s %-10s m=%.1f", box, spec.Name, spec.Kind, spec.Mass)
		if i == p.cursor {
			b.WriteString("    " + cursorStyle.Render("▸") + " " + activeStyle.Render(line) + "\n")
		} else {
			b.WriteString("      " + idleStyle.Render(line) + "\n")
		}
	}
	if p.err != nil {
		b.WriteString("\n    " + pausedStyle.Render(p.err.Error()) + "\n")
	}
	b.WriteString("\n    " + keyStyle.Render("j/k") + subStyle.Render(" navigate  ") +
		keyStyle.Render("space") + subStyle.Render(" toggle  ") +
		keyStyle.Render("enter") + subStyle.Render(" fly  ") +
		keyStyle.Render("q") + subStyle.Render(" quit") + "\n")
	return b.String()
}

func RunPicker(specs []*config.VehicleSpec, fps int, theme string, log zerolog.Logger) error {
	_, err := tea.NewProgram(NewPicker(specs, fps, theme, log), tea.WithAltScreen()).Run()
	return err
}
