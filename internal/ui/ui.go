// Package ui provides the terminal user interface using Bubble Tea.
package ui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/litescript/ls-orbits/internal/assets"
	"github.com/litescript/ls-orbits/internal/logging"
	"github.com/litescript/ls-orbits/internal/sim"
	"github.com/litescript/ls-orbits/internal/version"
)

// Rows used outside the canvas.
const (
	headerRows = 1
	footerRows = 2
)

// maxFrameStep caps dt so a stalled terminal does not fast-forward the clock.
const maxFrameStep = 250 * time.Millisecond

// Msg types for Bubble Tea
type (
	// FrameMsg triggers one simulation step.
	FrameMsg time.Time
)

// Options configures the root model.
type Options struct {
	FrameInterval time.Duration
	Background    string // Optional panorama image path
	Logger        *logging.Logger
}

// Model is the root Bubble Tea model.
type Model struct {
	world *sim.World
	log   *logging.Logger
	opts  Options

	// UI state
	width     int
	height    int
	ready     bool
	statusMsg string
	animTick  int
	lastFrame time.Time

	view SceneView
}

// New creates a root model driving world.
func New(world *sim.World, opts Options) Model {
	if opts.FrameInterval <= 0 {
		opts.FrameInterval = 16 * time.Millisecond
	}
	log := opts.Logger
	if log == nil {
		log = logging.Discard()
	}
	return Model{
		world: world,
		log:   log.Named("ui"),
		opts:  opts,
		view:  NewSceneView(),
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{frameCmd(m.opts.FrameInterval)}
	if m.opts.Background != "" {
		cmds = append(cmds, assets.LoadBackgroundCmd(m.opts.Background))
	}
	return tea.Batch(cmds...)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		default:
			if m.world.Key(msg.String()) && msg.String() == "r" {
				m.statusMsg = "Resetting system..."
			}
		}

	case tea.MouseMsg:
		m.handleMouse(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true

		canvasH := max(msg.Height-headerRows-footerRows, 1)
		m.view = m.view.SetSize(msg.Width, canvasH)
		m.world.Resize(msg.Width, canvasH)

	case FrameMsg:
		now := time.Time(msg)
		dt := m.opts.FrameInterval
		if !m.lastFrame.IsZero() {
			dt = min(now.Sub(m.lastFrame), maxFrameStep)
		}
		m.lastFrame = now
		m.world.Step(dt)
		m.animTick++
		if m.statusMsg != "" && !m.world.Capture.Resetting() && m.animTick%120 == 0 {
			m.statusMsg = ""
		}
		cmds = append(cmds, frameCmd(m.opts.FrameInterval))

	case assets.BackgroundLoadedMsg:
		if msg.Err != nil {
			m.log.Error("Background load failed: %v", msg.Err)
			m.statusMsg = "Background unavailable"
		} else {
			m.world.Scene.Background = msg.Backdrop
			m.log.Info("Background loaded: %s (%dx%d)", msg.Path, msg.Backdrop.Width, msg.Backdrop.Height)
		}
	}

	return m, tea.Batch(cmds...)
}

// handleMouse converts a cell position to virtual pixels and forwards it.
// A press followed by a release counts as a click.
func (m *Model) handleMouse(msg tea.MouseMsg) {
	vp := m.world.Viewport()
	cw, ch := m.view.Size()
	if cw <= 0 || ch <= 0 {
		return
	}
	px := (float64(msg.X) + 0.5) * vp.Width / float64(cw)
	py := (float64(msg.Y-headerRows) + 0.5) * vp.Height / float64(ch)

	switch msg.Action {
	case tea.MouseActionMotion:
		m.world.PointerMove(px, py)
	case tea.MouseActionPress:
		if msg.Button == tea.MouseButtonLeft {
			m.world.PointerDown(px, py)
		}
	case tea.MouseActionRelease:
		if m.world.Pressed() {
			m.world.PointerUp()
			m.world.Click()
		}
	}
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Initializing..."
	}
	if m.width < 20 || m.height < headerRows+footerRows+3 {
		return "Terminal too small"
	}
	return m.renderFrame(m.view.Render(m.world))
}

func (m Model) renderFrame(content string) string {
	return m.renderHeader() + "\n" + content + "\n" + m.renderFooter()
}

func (m Model) renderHeader() string {
	muted := lipgloss.NewStyle().Foreground(lipgloss.Color("60"))
	title := m.renderGradientText("LS-ORBITS")
	return " " + title + muted.Render(fmt.Sprintf("  v%s · frame %d", version.Version, m.world.Frame()))
}

// Title gradient endpoints.
var (
	gradientStart, _ = colorful.Hex("#3B82F6")
	gradientEnd, _   = colorful.Hex("#EC4899")
)

// renderGradientText colours text from blue to pink, sweeping with animTick.
func (m Model) renderGradientText(text string) string {
	runes := []rune(text)
	if len(runes) == 0 {
		return ""
	}
	var b strings.Builder
	for i, r := range runes {
		t := float64((i+m.animTick/4)%(len(runes)*2)) / float64(len(runes))
		if t > 1 {
			t = 2 - t
		}
		color := gradientStart.BlendLuv(gradientEnd, t).Clamped().Hex()
		style := lipgloss.NewStyle().Foreground(lipgloss.Color(color)).Bold(true)
		b.WriteString(style.Render(string(r)))
	}
	return b.String()
}

func (m Model) renderFooter() string {
	dimStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("60"))
	accentStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#7B2CBF"))

	spinnerFrames := []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}
	spinner := spinnerFrames[(m.animTick/5)%len(spinnerFrames)]

	hud := m.view.renderHUD(m.world)
	help := dimStyle.Render("move: steer | click: burst | drag: orbit | 1-6: preset | r: reset | q: quit")

	status := accentStyle.Render(spinner)
	if m.statusMsg != "" {
		status += " " + dimStyle.Render(m.statusMsg)
	} else if ev := m.world.Journal.Recent(1); len(ev) == 1 {
		status += " " + dimStyle.Render(fmt.Sprintf("%s orbit %d", ev[0].Type, ev[0].Orbit))
	}

	return "  " + hud + "\n  " + status + "  " + dimStyle.Render("|") + "  " + help
}

func frameCmd(interval time.Duration) tea.Cmd {
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return FrameMsg(t)
	})
}
