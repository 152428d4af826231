// Package sim advances the whole scene one frame at a time and translates
// pointer and key input into scene changes. It holds no rendering code.
package sim

import (
	"fmt"
	"math"
	"math/rand/v2"
	"time"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/litescript/ls-orbits/internal/capture"
	"github.com/litescript/ls-orbits/internal/config"
	"github.com/litescript/ls-orbits/internal/geom"
	"github.com/litescript/ls-orbits/internal/logging"
	"github.com/litescript/ls-orbits/internal/orbit"
	"github.com/litescript/ls-orbits/internal/scene"
	"github.com/litescript/ls-orbits/internal/starfield"
	"github.com/litescript/ls-orbits/internal/state"
)

// World is the complete simulation state.
type World struct {
	Camera   *geom.Camera
	Controls *geom.OrbitControls
	Stars    *starfield.Field
	Rings    []*orbit.Ring
	Scene    *scene.Scene
	Capture  *capture.Manager
	Journal  *state.Journal

	cfg config.Config
	rng *rand.Rand
	log *logging.Logger

	viewport geom.Viewport
	camAngle float64
	pressed  bool
	selected int // Index into orbit.Presets
	frame    uint64

	pointerX, pointerY float64
	hasPointer         bool
}

// New builds a world from cfg and spawns the first planet and ball.
// A zero seed in cfg uses the current time.
func New(cfg config.Config, log *logging.Logger) (*World, error) {
	if log == nil {
		log = logging.Discard()
	}
	seed := cfg.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))

	cam := geom.NewPerspectiveCamera(cfg.Camera.FovDeg, 1, cfg.Camera.Near, cfg.Camera.Far)
	cam.Position = geom.Vec(0, cfg.Camera.Height, cfg.Camera.Radius)
	cam.LookAt(geom.Origin)

	sc := scene.New()
	journal := state.NewJournal(cfg.JournalSize)

	mgr := capture.NewManager(cfg.Capture, sc, rng)
	mgr.SetLogger(log.Named("capture"))
	mgr.SetRecorder(journal)

	w := &World{
		Camera:   cam,
		Controls: geom.NewOrbitControls(),
		Stars:    starfield.New(cfg.Stars, rng),
		Rings:    orbit.DefaultRings(),
		Scene:    sc,
		Capture:  mgr,
		Journal:  journal,
		cfg:      cfg,
		rng:      rng,
		log:      log,
		selected: orbit.DefaultPreset,
	}
	w.Resize(80, 24)

	if err := mgr.Start(); err != nil {
		return nil, fmt.Errorf("start capture: %w", err)
	}
	log.Debug("world ready: seed=%d stars=%d rings=%d", seed, len(w.Stars.Stars), len(w.Rings))
	return w, nil
}

// Resize sets the viewport from a terminal size in cells.
func (w *World) Resize(cols, rows int) {
	w.viewport = geom.Viewport{
		Width:  float64(cols) * w.cfg.CellWidthPx,
		Height: float64(rows) * w.cfg.CellHeightPx,
	}
	w.Camera.Aspect = w.viewport.Aspect()
}

// Viewport returns the drawable area in virtual pixels.
func (w *World) Viewport() geom.Viewport { return w.viewport }

// ScreenPosition projects p into the current viewport.
func (w *World) ScreenPosition(p r3.Vec) geom.ScreenPoint {
	return w.Camera.ScreenPosition(p, w.viewport)
}

// Step advances the scene by one frame of dt.
func (w *World) Step(dt time.Duration) {
	if !w.pressed {
		w.camAngle += w.cfg.Camera.RotateStep
		r := w.cfg.Camera.Radius
		w.Camera.Position.X = math.Cos(w.camAngle) * r
		w.Camera.Position.Z = math.Sin(w.camAngle) * r
		w.Camera.LookAt(geom.Origin)
	}

	w.Stars.Step()
	for _, ring := range w.Rings {
		ring.Advance()
	}

	w.Capture.UpdateOrbits()
	w.Capture.Advance(dt)
	if n := w.Capture.CheckAttraction(w); n > 0 {
		w.log.Debug("frame %d: %d captured", w.frame, n)
	}

	w.Controls.Update(w.Camera)
	w.frame++
}

// Frame returns the number of completed steps.
func (w *World) Frame() uint64 { return w.frame }

// Pressed reports whether the pointer button is held.
func (w *World) Pressed() bool { return w.pressed }

// Selected returns the currently selected orbit preset.
func (w *World) Selected() orbit.Preset { return orbit.Presets[w.selected] }

// PointerWorld maps a viewport pixel to the world point free balls are moved
// to. It reports false when the pointer ray runs parallel to the z = 0 plane.
func (w *World) PointerWorld(x, y float64) (r3.Vec, bool) {
	nx, ny := geom.PixelToNDC(x, y, w.viewport)
	p := w.Camera.Unproject(geom.Vec(nx, ny, 0.5))
	dir := geom.Direction(w.Camera.Position, p)
	if math.Abs(dir.Z) < 1e-9 {
		return r3.Vec{}, false
	}
	dist := -w.Camera.Position.Z / dir.Z * 0.5
	return r3.Add(w.Camera.Position, r3.Scale(dist, dir)), true
}

// PointerMove steers free balls to the pointer and, while pressed, drags the
// camera around the origin.
func (w *World) PointerMove(x, y float64) {
	if w.pressed && w.hasPointer {
		w.Controls.Rotate(x-w.pointerX, y-w.pointerY, w.viewport.Height)
	}
	w.pointerX, w.pointerY, w.hasPointer = x, y, true

	if pos, ok := w.PointerWorld(x, y); ok {
		w.Capture.SteerFree(pos)
	}
}

// PointerDown stops auto-rotation until PointerUp.
func (w *World) PointerDown(x, y float64) {
	w.pressed = true
	w.pointerX, w.pointerY, w.hasPointer = x, y, true
}

// PointerUp releases the camera. Auto-rotation resumes from wherever the drag
// left it.
func (w *World) PointerUp() {
	if !w.pressed {
		return
	}
	w.pressed = false
	w.camAngle = math.Atan2(w.Camera.Position.Z, w.Camera.Position.X)
}

// Click blows every star outward from the origin.
func (w *World) Click() {
	w.Stars.Explode(geom.Origin, w.rng)
}

// Key handles a single key press and reports whether it was consumed.
func (w *World) Key(key string) bool {
	if key == "r" {
		w.Capture.ResetSystem()
		return true
	}
	idx, p, ok := orbit.PresetForKey(key)
	if !ok {
		return false
	}
	w.selected = idx
	w.Journal.Record(state.Event{
		Type:   state.EventSelected,
		At:     w.Capture.Now(),
		Orbit:  idx,
		Detail: fmt.Sprintf("r=%.0f tilt=%.3f", p.Radius, p.Tilt),
	})
	return true
}

// Autopilot moves every free, attractable ball onto its target planet so the
// next capture check takes it. It returns the number of balls moved.
func (w *World) Autopilot() int {
	moved := 0
	for _, b := range w.Capture.Balls() {
		if b.IsAttached || !b.AttractionEnabled {
			continue
		}
		p, ok := w.Capture.TargetFor(b)
		if !ok {
			continue
		}
		if w.Capture.MoveBall(b.ID, p.Position()) {
			moved++
		}
	}
	return moved
}
