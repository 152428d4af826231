package ui

import (
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/litescript/ls-orbits/internal/assets"
	"github.com/litescript/ls-orbits/internal/config"
	"github.com/litescript/ls-orbits/internal/geom"
	"github.com/litescript/ls-orbits/internal/scene"
	"github.com/litescript/ls-orbits/internal/sim"
)

func newTestWorld(t *testing.T) *sim.World {
	t.Helper()
	cfg := config.Default()
	cfg.Seed = 3
	cfg.Stars.Count = 50
	w, err := sim.New(cfg, nil)
	if err != nil {
		t.Fatalf("sim.New: %v", err)
	}
	return w
}

// newTestModel returns a model sized to an 80x24 canvas.
func newTestModel(t *testing.T) Model {
	t.Helper()
	m := New(newTestWorld(t), Options{FrameInterval: 16 * time.Millisecond})
	return update(m, tea.WindowSizeMsg{Width: 80, Height: 24 + headerRows + footerRows})
}

func update(m Model, msg tea.Msg) Model {
	next, _ := m.Update(msg)
	return next.(Model)
}

func key(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func TestViewBeforeReady(t *testing.T) {
	m := New(newTestWorld(t), Options{})
	if got := m.View(); got != "Initializing..." {
		t.Errorf("View() = %q", got)
	}
}

func TestWindowSizeResizesWorld(t *testing.T) {
	m := newTestModel(t)

	vp := m.world.Viewport()
	if vp.Width != 640 || vp.Height != 384 {
		t.Errorf("viewport = %+v, want 640x384", vp)
	}
	if w, h := m.view.Size(); w != 80 || h != 24 {
		t.Errorf("canvas = %dx%d, want 80x24", w, h)
	}
}

func TestQuitKeys(t *testing.T) {
	keys := []tea.KeyMsg{key('q'), {Type: tea.KeyCtrlC}, {Type: tea.KeyEsc}}
	for _, k := range keys {
		m := newTestModel(t)
		_, cmd := m.Update(k)
		if cmd == nil {
			t.Fatalf("%q: no command", k.String())
		}
		if _, ok := cmd().(tea.QuitMsg); !ok {
			t.Errorf("%q: expected quit", k.String())
		}
	}
}

func TestDigitSelectsPreset(t *testing.T) {
	m := newTestModel(t)
	m = update(m, key('5'))

	if got := m.world.Selected().Key; got != "5" {
		t.Errorf("selected = %q, want 5", got)
	}
}

func TestResetKey(t *testing.T) {
	m := newTestModel(t)
	m = update(m, key('r'))

	if !m.world.Capture.Resetting() {
		t.Error("r should start a reset")
	}
	if m.statusMsg == "" {
		t.Error("expected a status message")
	}
}

func TestMouseMotionSteersBall(t *testing.T) {
	m := newTestModel(t)
	m = update(m, tea.MouseMsg{X: 40, Y: 13, Action: tea.MouseActionMotion})

	// Cell (40, 12) of the canvas, centred, at 8x16 pixels per cell.
	want, ok := m.world.PointerWorld(40.5*8, 12.5*16)
	if !ok {
		t.Fatal("PointerWorld failed")
	}
	ball := m.world.Capture.Balls()[0]
	if !geom.ApproxEqual(ball.Position(), want, 1e-9) {
		t.Errorf("ball = %v, want %v", ball.Position(), want)
	}
}

func TestPressReleaseClicks(t *testing.T) {
	m := newTestModel(t)

	m = update(m, tea.MouseMsg{X: 10, Y: 10, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	if !m.world.Pressed() {
		t.Fatal("press not registered")
	}
	m = update(m, tea.MouseMsg{X: 10, Y: 10, Action: tea.MouseActionRelease})
	if m.world.Pressed() {
		t.Error("release not registered")
	}

	moving := 0
	for _, s := range m.world.Stars.Stars {
		if s.Vel != (geom.Origin) {
			moving++
		}
	}
	if moving != len(m.world.Stars.Stars) {
		t.Errorf("%d of %d stars pushed", moving, len(m.world.Stars.Stars))
	}
}

func TestReleaseWithoutPressIgnored(t *testing.T) {
	m := newTestModel(t)
	m = update(m, tea.MouseMsg{X: 10, Y: 10, Action: tea.MouseActionRelease})

	for _, s := range m.world.Stars.Stars {
		if s.Vel != (geom.Origin) {
			t.Fatal("stray release should not burst stars")
		}
	}
}

func TestFrameMsgSteps(t *testing.T) {
	m := newTestModel(t)
	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	next, cmd := m.Update(FrameMsg(start))
	m = next.(Model)
	if cmd == nil {
		t.Fatal("frame should schedule the next frame")
	}
	m = update(m, FrameMsg(start.Add(20*time.Millisecond)))

	if m.world.Frame() != 2 {
		t.Errorf("Frame() = %d, want 2", m.world.Frame())
	}
	if got := m.world.Capture.Now(); got != 36*time.Millisecond {
		t.Errorf("clock = %v, want 36ms", got)
	}

	// A long stall is capped.
	m = update(m, FrameMsg(start.Add(5*time.Second)))
	if got := m.world.Capture.Now(); got != 36*time.Millisecond+maxFrameStep {
		t.Errorf("clock after stall = %v", got)
	}
}

func TestBackgroundLoaded(t *testing.T) {
	m := newTestModel(t)

	m = update(m, assets.BackgroundLoadedMsg{Path: "sky.png", Err: errors.New("boom")})
	if m.world.Scene.Background != nil {
		t.Error("failed load should leave the background unset")
	}
	if m.statusMsg == "" {
		t.Error("failed load should set a status message")
	}

	bg := &scene.Backdrop{Width: 1, Height: 1, Lum: []float64{1}}
	m = update(m, assets.BackgroundLoadedMsg{Path: "sky.png", Backdrop: bg})
	if m.world.Scene.Background != bg {
		t.Error("background not applied")
	}
}

func TestInitLoadsBackground(t *testing.T) {
	m := New(newTestWorld(t), Options{})
	if m.Init() == nil {
		t.Fatal("Init should start the frame loop")
	}
	if m.opts.FrameInterval != 16*time.Millisecond {
		t.Errorf("default interval = %v", m.opts.FrameInterval)
	}
}

func TestViewShowsHUD(t *testing.T) {
	m := newTestModel(t)
	out := m.View()

	for _, want := range []string{"Captured 0", "Preset:", "1-6: preset"} {
		if !strings.Contains(out, want) {
			t.Errorf("View() missing %q", want)
		}
	}
	if lines := strings.Count(out, "\n") + 1; lines != 24+headerRows+footerRows {
		t.Errorf("View() has %d lines, want %d", lines, 24+headerRows+footerRows)
	}
}

func TestViewTooSmall(t *testing.T) {
	m := New(newTestWorld(t), Options{})
	m = update(m, tea.WindowSizeMsg{Width: 10, Height: 4})
	if got := m.View(); got != "Terminal too small" {
		t.Errorf("View() = %q", got)
	}
}
