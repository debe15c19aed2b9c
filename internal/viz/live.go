package viz

import (
	"fmt"
	"log"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/ballsim/internal/control"
	"github.com/san-kum/ballsim/internal/physics"
	"github.com/san-kum/ballsim/internal/sim"
)

const (
	// minParamStep is where tuning up restarts from a zero constant.
	minParamStep    = 0.01
	statsWidth      = 45
	historyCapacity = 300
	// The canvas sits inside a one-cell border at the top-left of the view.
	canvasOriginCol = 1
	canvasOriginRow = 1
)

var (
	statsStyle       = lipgloss.NewStyle().Padding(0, 2).Width(statsWidth)
	labelStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(12)
	valueStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	activeParamStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Bold(true)
	graphStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("49"))
)

// FrameMsg asks the model to run one physics frame.
type FrameMsg uint64

// Model is the interactive surface. All world mutations happen in Update, so
// pointer input and frames never interleave.
type Model struct {
	world   *sim.World
	pointer *control.Pointer
	clicks  *control.ClickTracker
	metrics []sim.Metric

	canvas        *Canvas
	proj          Projection
	width, height int

	title         string
	running       bool
	showHelp      bool
	picker        *Picker
	aim           physics.Vec2
	paramKeys     []string
	initialParams physics.Params
	selected      int
	energyHistory []float64
	contactCounts []float64
	lastReport    physics.StepReport
	now           func() time.Time
}

type Options struct {
	Title       string
	MaxSpeed    float64
	DoubleClick time.Duration
	Metrics     []sim.Metric
	// DebugLog, when set, receives log output while the TUI owns the terminal.
	DebugLog string
}

// NewModel wires a pointer controller and the given metrics to w.
func NewModel(w *sim.World, opts Options) Model {
	if opts.MaxSpeed <= 0 {
		opts.MaxSpeed = control.DefaultMaxSpeed
	}
	if opts.Title == "" {
		opts.Title = "ballsim"
	}
	for _, m := range opts.Metrics {
		w.AddMetric(m)
	}

	return Model{
		world:         w,
		pointer:       control.NewPointer(w, opts.MaxSpeed),
		clicks:        control.NewClickTracker(opts.DoubleClick),
		metrics:       opts.Metrics,
		title:         opts.Title,
		running:       true,
		paramKeys:     w.Params().ParamNames(),
		initialParams: *w.Params(),
		energyHistory: make([]float64, 0, historyCapacity),
		now:           time.Now,
	}
}

func (m Model) Init() tea.Cmd { return nil }

// Update handles input events and steps the simulation.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
	case FrameMsg:
		// No surface to draw on yet: skip the frame entirely.
		if m.canvas == nil || !m.running {
			return m, nil
		}
		m.step()
	case tea.MouseMsg:
		if m.picker == nil {
			m.handleMouse(msg)
		}
	case tea.KeyMsg:
		if m.picker != nil {
			m.handlePickerKey(msg)
			return m, nil
		}
		return m.handleKey(msg)
	}
	return m, nil
}

func (m *Model) resize(w, h int) {
	m.width, m.height = w, h
	cols := w - statsWidth - 2
	rows := h - 2
	m.proj = FitProjection(m.world.Surface(), cols, rows, canvasOriginCol, canvasOriginRow)
	cw, ch := m.proj.CanvasSize(m.world.Surface())
	if cw <= 0 || ch <= 0 {
		m.canvas = nil
		return
	}
	m.canvas = NewCanvas(cw, ch)
}

func (m *Model) step() {
	m.lastReport = m.world.Step()
	m.energyHistory = append(m.energyHistory, m.world.Snapshot().KineticEnergy())
	m.contactCounts = append(m.contactCounts, float64(len(m.lastReport.Contacts)))
	if len(m.energyHistory) > historyCapacity {
		m.energyHistory = m.energyHistory[1:]
		m.contactCounts = m.contactCounts[1:]
	}
}

func (m *Model) handleMouse(msg tea.MouseMsg) {
	if !m.proj.Valid() {
		return
	}
	x, y := m.proj.ToSurface(msg.X, msg.Y)

	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft {
			return
		}
		m.pointer.Press(x, y)
		m.aim = physics.NewVec2(x, y)
		if m.clicks.Press(m.pointer.Active(), m.now()) {
			m.pointer.Release()
			if m.pointer.DoubleClick(x, y) {
				m.picker = NewPicker(m.pointer.RecolorTarget().Color)
			}
		}
	case tea.MouseActionMotion:
		if m.pointer.Move(x, y) {
			m.aim = physics.NewVec2(x, y)
		}
	case tea.MouseActionRelease:
		m.pointer.Release()
	}
}

func (m *Model) handlePickerKey(msg tea.KeyMsg) {
	switch msg.Type {
	case tea.KeyEsc:
		if m.picker.Editing() {
			m.picker.StopEditing()
			return
		}
		m.pointer.DismissColor()
		m.picker = nil
	case tea.KeyEnter:
		if err := m.pointer.ConfirmColor(m.picker.Selected()); err != nil {
			log.Printf("recolor rejected: %v", err)
			m.picker.SetError(err)
			return
		}
		m.picker = nil
	case tea.KeyLeft:
		m.picker.Prev()
	case tea.KeyRight, tea.KeyTab:
		m.picker.Next()
	case tea.KeyBackspace:
		m.picker.Backspace()
	case tea.KeyRunes:
		s := string(msg.Runes)
		switch {
		case m.picker.Editing():
			m.picker.Input(s)
		case s == "#":
			m.picker.StartEditing()
		case s == "h":
			m.picker.Prev()
		case s == "l":
			m.picker.Next()
		}
	}
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case " ":
		m.running = !m.running
	case ".":
		if !m.running && m.canvas != nil {
			m.step()
		}
	case "r":
		m.reset()
	case "tab":
		m.cycleParam()
	case "up", "k":
		m.adjustParam(1.05)
	case "down", "j":
		m.adjustParam(0.95)
	case "t":
		NextTheme()
	case "?":
		m.showHelp = !m.showHelp
	}
	return m, nil
}

func (m *Model) cycleParam() {
	if len(m.paramKeys) == 0 {
		return
	}
	m.selected = (m.selected + 1) % len(m.paramKeys)
}

func (m *Model) adjustParam(factor float64) {
	if len(m.paramKeys) == 0 {
		return
	}
	params := m.world.Params()
	key := m.paramKeys[m.selected]
	v := params.GetParams()[key] * factor
	if factor > 1 && v < minParamStep {
		v = minParamStep
	}
	if err := params.SetParam(key, v); err != nil {
		log.Printf("adjust %s: %v", key, err)
	}
}

// reset restores the initial scene and parameters.
func (m *Model) reset() {
	m.pointer.Release()
	m.pointer.DismissColor()
	m.picker = nil
	m.world.Reset()
	*m.world.Params() = m.initialParams
	m.energyHistory = m.energyHistory[:0]
	m.contactCounts = m.contactCounts[:0]
	m.lastReport = physics.StepReport{}
}

// View renders the surface and the side panel.
func (m Model) View() string {
	if m.canvas == nil {
		return "waiting for terminal size..."
	}
	m.draw()

	frame := lipgloss.NewStyle().
		Border(lipgloss.NormalBorder()).
		BorderForeground(CurrentTheme.Frame)
	surfaceView := frame.Render(m.canvas.Render(lipgloss.NewStyle()))

	return lipgloss.JoinHorizontal(lipgloss.Top, surfaceView, statsStyle.Render(m.statsView()))
}

// draw renders the snapshot onto the canvas in list order.
func (m *Model) draw() {
	m.canvas.Clear()
	snap := m.world.Snapshot()
	if snap.Surface.IsZero() {
		return
	}

	for _, b := range snap.Balls {
		cx, cy := m.proj.ToSub(b.X, b.Y)
		m.canvas.SetColor(b.Color)
		m.canvas.FillCircle(cx, cy, m.proj.Length(b.Radius))
	}

	if press, ok := m.pointer.PressPoint(); ok {
		x0, y0 := m.proj.ToSub(press.X, press.Y)
		x1, y1 := m.proj.ToSub(m.aim.X, m.aim.Y)
		m.canvas.SetColor(string(CurrentTheme.Aim))
		m.canvas.DrawLine(x0, y0, x1, y1)
	}
}

func (m Model) statsView() string {
	var s strings.Builder
	s.WriteString(GradientText(strings.ToUpper(m.title), string(CurrentTheme.Secondary), string(CurrentTheme.Frame)) + "\n")

	switch {
	case m.pointer.Dragging():
		s.WriteString(StatusDragging.Render("DRAGGING"))
	case m.running:
		s.WriteString(StatusRunning.Render("RUNNING"))
	default:
		s.WriteString(StatusPaused.Render("PAUSED"))
	}
	s.WriteString("\n\n")

	s.WriteString(labelStyle.Render("Frame") + valueStyle.Render(fmt.Sprintf("%d", m.world.Frame())) + "\n")
	surface := m.world.Surface()
	s.WriteString(labelStyle.Render("Surface") + valueStyle.Render(fmt.Sprintf("%.0f x %.0f", surface.Width, surface.Height)) + "\n")
	energy := 0.0
	if len(m.energyHistory) > 0 {
		energy = m.energyHistory[len(m.energyHistory)-1]
	}
	s.WriteString(labelStyle.Render("Energy") + valueStyle.Render(fmt.Sprintf("%.1f", energy)) + "\n")
	s.WriteString(labelStyle.Render("Contacts") + valueStyle.Render(fmt.Sprintf("%-3d", len(m.lastReport.Contacts))) + " " + SparklineChart(m.contactCounts, 20) + "\n")

	if len(m.energyHistory) > 1 {
		chart := asciigraph.Plot(m.energyHistory, asciigraph.Height(4), asciigraph.Width(30), asciigraph.Caption("Energy"))
		s.WriteString("\n" + graphStyle.Render(chart) + "\n")
	}

	s.WriteString("\nBALLS\n")
	for _, b := range m.world.Snapshot().Balls {
		dot := lipgloss.NewStyle().Foreground(lipgloss.Color(b.Color)).Render("●")
		s.WriteString(fmt.Sprintf("%s %d (%5.0f,%5.0f) v=(%5.2f,%5.2f)\n", dot, b.ID, b.X, b.Y, b.VX, b.VY))
	}

	if len(m.metrics) > 0 {
		s.WriteString("\nMETRICS\n")
		for _, mt := range m.metrics {
			s.WriteString(MetricLabel.Render(mt.Name()) + MetricValue.Render(fmt.Sprintf("%.3f", mt.Value())) + "\n")
		}
	}

	s.WriteString("\nPARAMETERS\n")
	params := m.world.Params().GetParams()
	initial := m.initialParams.GetParams()
	for i, k := range m.paramKeys {
		val := params[k]
		ratio := 0.0
		if initial[k] > 0 {
			ratio = val / (2 * initial[k])
		}
		line := fmt.Sprintf("%-16s %s %.3f", k, ProgressBar(ratio, 8), val)
		if i == m.selected {
			s.WriteString(activeParamStyle.Render("> ") + line + "\n")
		} else {
			s.WriteString("  " + line + "\n")
		}
	}

	if m.picker != nil {
		s.WriteString("\n" + m.picker.View(CurrentTheme) + "\n")
	}

	if m.showHelp {
		s.WriteString("\n" + helpText())
	} else {
		s.WriteString("\n" + KeyHint.Render("drag: aim  dbl-click: recolor  ?: help"))
	}
	return s.String()
}

func helpText() string {
	return KeyHint.Render(strings.Join([]string{
		"Drag ball    - launch (speed capped)",
		"Double-click - recolor ball",
		"Space        - pause/resume",
		".            - step one frame (paused)",
		"R            - reset scene",
		"Tab          - cycle parameter",
		"Up/K Down/J  - tune parameter (5%)",
		"T            - cycle theme",
		"Q            - quit",
	}, "\n"))
}
