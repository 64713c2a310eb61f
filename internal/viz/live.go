package viz

import (
	"fmt"
	"math"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/flysim/internal/control"
	"github.com/san-kum/flysim/internal/sim"
	"github.com/san-kum/flysim/internal/vehicle"
)

const (
	mapCols         = 56
	mapRows         = 16
	attCols         = 24
	attRows         = 6
	trailCapacity   = 400
	historyCapacity = 600
)

// Terminal key bindings. Terminals report presses only, so each key counts
// as held for the single tick that follows it.
var keyBindings = map[string]control.Input{
	"up":    control.ThrottleUp,
	"down":  control.ThrottleDown,
	"left":  control.LateralLeft,
	"right": control.LateralRight,
	"w":     control.RollUp,
	"s":     control.RollDown,
	"q":     control.PitchUp,
	"e":     control.PitchDown,
	"a":     control.YawLeft,
	"d":     control.YawRight,
	"r":     control.AscendUp,
	"f":     control.AscendDown,
	"C":     control.Reset,
	"-":     control.ScaleDown,
	"=":     control.ScaleUp,
	"p":     control.PrintPosition,
}

type TickMsg time.Time

// Model is the terminal flight view over a session.
type Model struct {
	session *sim.Session
	dt      float64
	fps     int

	pending  control.Input
	trails   [][]mgl64.Vec3
	altitude []float64

	mapCanvas *Canvas
	attCanvas *Canvas
	attitude  AttitudeView
	zoom      float64

	theme    Theme
	running  bool
	showHelp bool
	// status is the last position report requested with P.
	status string
}

// NewModel ticks the session at fps frames per second with a fixed step
// of 1/fps.
func NewModel(session *sim.Session, fps int, theme string) Model {
	if fps <= 0 {
		fps = 60
	}
	return Model{
		session:   session,
		dt:        1 / float64(fps),
		fps:       fps,
		trails:    make([][]mgl64.Vec3, len(session.Vehicles())),
		altitude:  make([]float64, 0, historyCapacity),
		mapCanvas: NewCanvas(mapCols, mapRows),
		attCanvas: NewCanvas(attCols, attRows),
		attitude:  NewAttitudeView(),
		zoom:      2,
		theme:     GetTheme(theme),
		running:   true,
	}
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(time.Second/time.Duration(m.fps), func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Init() tea.Cmd {
	return m.tick()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		key := msg.String()
		if in, ok := keyBindings[key]; ok {
			m.pending |= in
			return m, nil
		}
		switch key {
		case "esc", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.running = !m.running
		case "i", "tab":
			m.session.CycleTracked()
			m.altitude = m.altitude[:0]
		case "t":
			m.theme = m.theme.Next()
		case "[":
			m.zoom = math.Max(0.05, m.zoom/1.25)
		case "]":
			m.zoom = math.Min(50, m.zoom*1.25)
		case "?":
			m.showHelp = !m.showHelp
		}
	case TickMsg:
		if m.running {
			m.step()
		}
		m.pending = 0
		return m, m.tick()
	}
	return m, nil
}

// step advances the session one frame, routing input to the tracked vehicle.
func (m *Model) step() {
	vehicles := m.session.Vehicles()
	inputs := make([]control.Input, len(vehicles))
	inputs[m.session.TrackedIndex()] = m.pending
	m.session.Tick(m.dt, inputs)

	if m.pending.Has(control.PrintPosition) {
		p := m.session.Tracked().Position()
		m.status = fmt.Sprintf("%.2f %.2f %.2f t=%.2f", p[0], p[1], p[2], m.session.Time())
	}

	for i, v := range vehicles {
		if inputs[i].Has(control.Reset) {
			m.trails[i] = m.trails[i][:0]
		}
		m.trails[i] = append(m.trails[i], v.Position())
		if len(m.trails[i]) > trailCapacity {
			m.trails[i] = m.trails[i][1:]
		}
	}

	m.altitude = append(m.altitude, m.session.Tracked().Position()[1])
	if len(m.altitude) > historyCapacity {
		m.altitude = m.altitude[1:]
	}
}

func (m Model) drawMap() string {
	m.mapCanvas.Clear()
	tracked := m.session.Tracked()
	vp := Viewport{Center: tracked.Position(), Scale: m.zoom}

	for _, trail := range m.trails {
		for i := 1; i < len(trail); i++ {
			x0, y0 := vp.Project(m.mapCanvas, trail[i-1])
			x1, y1 := vp.Project(m.mapCanvas, trail[i])
			m.mapCanvas.Line(x0, y0, x1, y1)
		}
	}
	for _, v := range m.session.Vehicles() {
		x, y := vp.Project(m.mapCanvas, v.Position())
		m.mapCanvas.Line(x-2, y, x+2, y)
		m.mapCanvas.Line(x, y-2, x, y+2)
	}
	return lipgloss.NewStyle().Foreground(m.theme.Primary).Render(m.mapCanvas.String())
}

func (m Model) drawAttitude(v *vehicle.Vehicle) string {
	m.attCanvas.Clear()
	m.attitude.Draw(m.attCanvas, Silhouette(v.Kind()), v.Orientation())
	return lipgloss.NewStyle().Foreground(m.theme.Accent).Render(m.attCanvas.String())
}

func (m Model) View() string {
	v := m.session.Tracked()
	if v == nil {
		return "no vehicles\n"
	}
	pos := v.Position()
	euler := v.CurrentOrientationEuler(true)
	tau := v.Tau()
	limits := v.Spec().Limits()

	var s strings.Builder
	s.WriteString(headerStyle(m.theme).Render(fmt.Sprintf("%s  %s", strings.ToUpper(v.Name()), v.Kind())) + "\n")
	if m.running {
		s.WriteString(lipgloss.NewStyle().Foreground(m.theme.Primary).Render("FLYING") + "\n\n")
	} else {
		s.WriteString(pausedStyle.Render("PAUSED") + "\n\n")
	}

	row := func(label, value string) {
		s.WriteString(labelStyle.Render(label) + valueStyle.Render(value) + "\n")
	}
	row("Time", fmt.Sprintf("%.2fs", m.session.Time()))
	row("Position", fmt.Sprintf("%8.2f %8.2f %8.2f", pos[0], pos[1], pos[2]))
	row("Euler", fmt.Sprintf("%8.2f %8.2f %8.2f", euler[0], euler[1], euler[2]))
	row("Speed", fmt.Sprintf("%.2f m/s", v.Velocity().Linear().Len()))
	row("Scale", fmt.Sprintf("%.2f", v.Scale()))
	s.WriteString("\n")

	axes := []string{"fx", "fy", "fz", "roll", "pitch", "yaw"}
	for i, name := range axes {
		r := limits.Thrust
		if i >= 3 {
			r = limits.Moment
		}
		limit := math.Max(math.Abs(r.Min), math.Abs(r.Max))
		row(name, Gauge(tau[i], limit, 20)+fmt.Sprintf(" %9.2f", tau[i]))
	}

	if m.status != "" {
		s.WriteString(labelStyle.Render("Marked") + valueStyle.Render(m.status) + "\n")
	}

	if len(m.altitude) > 1 {
		chart := asciigraph.Plot(m.altitude, asciigraph.Height(5), asciigraph.Width(34), asciigraph.Caption("altitude"))
		s.WriteString("\n" + lipgloss.NewStyle().Foreground(m.theme.Primary).Render(chart) + "\n")
	}

	s.WriteString(helpStyle.Render(Separator(m.theme, 36) + "\n↑↓ throttle ←→ lateral W/S Q/E A/D\nR/F ascend  C reset  I next  ? help"))

	left := lipgloss.JoinVertical(lipgloss.Left, m.drawMap(), "", m.drawAttitude(v))
	main := lipgloss.JoinHorizontal(lipgloss.Top, canvasStyle.Render(left), panelStyle.Render(s.String()))
	if m.showHelp {
		return helpText + "\n" + main
	}
	return main
}

const helpText = `
  ↑ / ↓     throttle          W / S   roll
  ← / →     lateral thrust    Q / E   pitch
  R / F     ascend / descend  A / D   yaw
  Shift+C   reset vehicle     - / =   scale
  P         mark position     I, Tab  next vehicle
  [ / ]     map zoom          T       theme
  Space     pause             Esc     quit
`

// RunLive runs the flight view until the user quits.
func RunLive(session *sim.Session, fps int, theme string) error {
	_, err := tea.NewProgram(NewModel(session, fps, theme), tea.WithAltScreen()).Run()
	return err
}
