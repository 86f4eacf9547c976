package viz

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/san-kum/ascent/internal/metrics"
	"github.com/san-kum/ascent/internal/planet"
	"github.com/san-kum/ascent/internal/sim"
)

const (
	canvasWidth     = 60
	canvasHeight    = 20
	historyCapacity = 2000
	maxStepsPerTick = 256
)

// Sample is a flight-profile point derived from a state.
type Sample struct {
	Time            float64
	Altitude        float64 // [m]
	Downrange       float64 // [m], along the surface from the launch site
	Speed           float64 // inertial [m/s]
	Mach            float64
	DynamicPressure float64 // [Pa]
	Mass            float64
}

// NewSample derives the profile point of s for a flight launched from pad.
func NewSample(p planet.Planet, pad r3.Vec, s sim.PhysicalState) Sample {
	airspeed := r3.Norm(p.AirVelocity(s.Position, s.Velocity))
	mach := 0.0
	if a := p.SpeedOfSound(s.Position); a > 0 {
		mach = airspeed / a
	}
	return Sample{
		Time:            s.Time,
		Altitude:        p.Altitude(s.Position),
		Downrange:       p.SurfaceDistance(pad, s.Position),
		Speed:           r3.Norm(s.Velocity),
		Mach:            mach,
		DynamicPressure: metrics.DynamicPressure(p, s),
		Mass:            s.Mass,
	}
}

// Profile converts a finished trajectory into samples.
func Profile(p planet.Planet, states []sim.PhysicalState) []Sample {
	if len(states) == 0 {
		return nil
	}
	out := make([]Sample, len(states))
	for i, s := range states {
		out[i] = NewSample(p, states[0].Position, s)
	}
	return out
}

type TickMsg time.Time

func tick() tea.Cmd {
	return tea.Tick(time.Second/30, func(t time.Time) tea.Msg { return TickMsg(t) })
}

// Model steps a simulator on every frame and draws the flight profile.
type Model struct {
	sim           *sim.Simulator
	name          string
	until         float64
	initial       sim.PhysicalState
	stepsPerFrame int

	running  bool
	done     bool
	err      error
	history  []Sample
	playHead int
	canvas   *Canvas
}

// NewModel returns a live view of s, which must already be initialized at
// the launch site. The run stops at time until.
func NewModel(s *sim.Simulator, name string, until float64) Model {
	m := Model{
		sim:           s,
		name:          name,
		until:         until,
		initial:       s.State(),
		stepsPerFrame: 1,
		running:       true,
		playHead:      -1,
		canvas:        NewCanvas(canvasWidth, canvasHeight),
		history:       make([]Sample, 0, historyCapacity),
	}
	m.record()
	return m
}

func (m Model) Init() tea.Cmd { return tick() }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ", "space":
			m.running = !m.running
		case "r":
			m.restart()
		case "+", "=":
			m.stepsPerFrame = min(m.stepsPerFrame*2, maxStepsPerTick)
		case "-", "_":
			m.stepsPerFrame = max(m.stepsPerFrame/2, 1)
		case "[":
			m.scrub(-1)
		case "]":
			m.scrub(1)
		case "t":
			NextTheme()
		}
	case TickMsg:
		if m.running {
			if m.playHead == -1 {
				m.advance()
			} else {
				m.scrub(1)
			}
		}
		return m, tick()
	}
	return m, nil
}

// advance takes up to stepsPerFrame steps, stopping at the end time or on
// the first degenerate state.
func (m *Model) advance() {
	h := m.sim.Stepsize()
	for i := 0; i < m.stepsPerFrame && !m.done; i++ {
		state := m.sim.State()
		if state.Time+h*1e-9 >= m.until {
			m.done = true
			return
		}
		if !(state.Mass > 0) {
			m.fail(sim.ErrNonPositiveMass)
			return
		}
		next := m.sim.Step()
		m.record()
		if !next.IsValid() {
			m.fail(sim.ErrInvalidState)
			return
		}
	}
}

func (m *Model) fail(err error) {
	s := m.sim.State()
	m.err = &sim.SimulationError{Step: m.sim.Steps(), Time: s.Time, State: s, Wrapped: err}
	m.done = true
}

func (m *Model) record() {
	m.sim.Notify()
	m.history = append(m.history, NewSample(m.sim.Planet(), m.initial.Position, m.sim.State()))
	if len(m.history) > historyCapacity {
		m.history = m.history[1:]
	}
}

func (m *Model) restart() {
	m.sim.SetState(m.initial)
	m.history = m.history[:0]
	m.playHead = -1
	m.done = false
	m.err = nil
	m.running = true
	m.record()
}

func (m *Model) scrub(dir int) {
	if m.playHead == -1 {
		if dir > 0 || len(m.history) == 0 {
			return
		}
		m.playHead = len(m.history) - 1
		m.running = false
	}
	m.playHead += dir
	if m.playHead < 0 {
		m.playHead = 0
	}
	if m.playHead >= len(m.history) {
		m.playHead = -1
	}
}

// Done reports whether the run reached its end time or failed.
func (m Model) Done() bool { return m.done }
func (m Model) Err() error { return m.err }

// Current is the sample on display.
func (m Model) Current() Sample {
	if m.playHead >= 0 {
		return m.history[m.playHead]
	}
	return m.history[len(m.history)-1]
}

func (m Model) status() string {
	switch {
	case m.err != nil:
		return errorStyle().Render("FAILED: " + m.err.Error())
	case m.playHead >= 0:
		return statusStyle(false).Render(fmt.Sprintf("REPLAY t=%.1fs", m.history[m.playHead].Time))
	case m.done:
		return statusStyle(true).Render("COMPLETE")
	case !m.running:
		return statusStyle(false).Render("PAUSED")
	}
	return statusStyle(true).Render(fmt.Sprintf("RUNNING x%d", m.stepsPerFrame))
}

func (m Model) drawProfile() string {
	end := len(m.history)
	if m.playHead >= 0 {
		end = m.playHead + 1
	}
	xs := make([]float64, end)
	ys := make([]float64, end)
	maxX, maxY := 1.0, 1.0
	for i, s := range m.history[:end] {
		xs[i] = s.Downrange / 1000
		ys[i] = s.Altitude / 1000
		maxX = max(maxX, xs[i])
		maxY = max(maxY, ys[i])
	}

	m.canvas.Clear()
	m.canvas.SetWindow(0, maxX*1.1, 0, maxY*1.1)
	m.canvas.Polyline(xs, ys)

	caption := fmt.Sprintf("downrange 0..%.0f km, altitude 0..%.0f km", maxX*1.1, maxY*1.1)
	return m.canvas.String() + hintStyle().Render(caption)
}

func (m Model) View() string {
	cur := m.Current()

	var s strings.Builder
	s.WriteString(headerStyle().Render(strings.ToUpper(m.name)) + "\n")
	s.WriteString(m.status() + "\n\n")

	row := func(label, value string) {
		s.WriteString(labelStyle().Render(label) + valueStyle().Render(value) + "\n")
	}
	row("Time", fmt.Sprintf("%.1f s", cur.Time))
	row("Altitude", fmt.Sprintf("%.2f km", cur.Altitude/1000))
	row("Downrange", fmt.Sprintf("%.2f km", cur.Downrange/1000))
	row("Speed", fmt.Sprintf("%.1f m/s", cur.Speed))
	row("Mach", fmt.Sprintf("%.2f", cur.Mach))
	row("Dyn. press.", fmt.Sprintf("%.1f kPa", cur.DynamicPressure/1000))
	row("Mass", fmt.Sprintf("%.0f kg", cur.Mass))
	s.WriteString("\n" + ProgressBar(cur.Time/m.until, 30) + "\n")

	if len(m.history) > 1 {
		alt := make([]float64, len(m.history))
		q := make([]float64, len(m.history))
		for i, h := range m.history {
			alt[i] = h.Altitude / 1000
			q[i] = h.DynamicPressure / 1000
		}
		chart := asciigraph.Plot(alt, asciigraph.Height(5), asciigraph.Width(30), asciigraph.Caption("altitude [km]"))
		s.WriteString(graphStyle().Render(chart) + "\n")
		s.WriteString(labelStyle().Render("q") + Sparkline(q, 30) + "\n")
	}

	s.WriteString("\n" + hintStyle().Render("SPC pause  R restart  +/- speed  [ ] replay  T theme  Q quit"))

	profile := panelStyle().Render(m.drawProfile())
	stats := panelStyle().Render(s.String())
	return lipgloss.JoinHorizontal(lipgloss.Top, profile, stats)
}
