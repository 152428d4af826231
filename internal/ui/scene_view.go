package ui

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
	colorful "github.com/lucasb-eyer/go-colorful"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/litescript/ls-orbits/internal/geom"
	"github.com/litescript/ls-orbits/internal/orbit"
	"github.com/litescript/ls-orbits/internal/scene"
	"github.com/litescript/ls-orbits/internal/sim"
	"github.com/litescript/ls-orbits/internal/starfield"
)

// ringSamples is how many points are plotted per ring.
const ringSamples = 240

// Object colours.
const (
	planetColor   = "#FFD23F"
	ballColor     = "#3B82F6"
	ballIdleColor = "#1E3A8A"
)

// backdropRamp maps panorama lightness to glyphs, darkest first.
var backdropRamp = []rune{' ', ' ', '.', ':', '-', '='}

// cell is one character on the canvas. An empty colour means unstyled.
type cell struct {
	ch    rune
	color string
}

// SceneView draws a World onto a character canvas.
type SceneView struct {
	width  int
	height int
}

// NewSceneView creates an empty view.
func NewSceneView() SceneView {
	return SceneView{}
}

// SetSize sets the canvas size in cells.
func (v SceneView) SetSize(width, height int) SceneView {
	v.width = width
	v.height = height
	return v
}

// Size returns the canvas size in cells.
func (v SceneView) Size() (int, int) {
	return v.width, v.height
}

// canvas is the drawing surface for a single frame.
type canvas struct {
	cells  [][]cell
	cellW  float64
	cellH  float64
	width  int
	height int
}

func newCanvas(width, height int, cellW, cellH float64) *canvas {
	c := &canvas{
		cells:  make([][]cell, height),
		cellW:  cellW,
		cellH:  cellH,
		width:  width,
		height: height,
	}
	for y := range c.cells {
		c.cells[y] = make([]cell, width)
		for x := range c.cells[y] {
			c.cells[y][x] = cell{ch: ' '}
		}
	}
	return c
}

// at maps a screen point to a cell, reporting false when off canvas.
func (c *canvas) at(p geom.ScreenPoint) (int, int, bool) {
	if p.Behind {
		return 0, 0, false
	}
	x := int(math.Floor(p.X / c.cellW))
	y := int(math.Floor(p.Y / c.cellH))
	if x < 0 || x >= c.width || y < 0 || y >= c.height {
		return 0, 0, false
	}
	return x, y, true
}

func (c *canvas) set(x, y int, ch rune, color string) {
	c.cells[y][x] = cell{ch: ch, color: color}
}

// Render draws the world. The canvas must match the world's viewport.
func (v SceneView) Render(w *sim.World) string {
	if v.width <= 0 || v.height <= 0 {
		return ""
	}
	vp := w.Viewport()
	c := newCanvas(v.width, v.height, vp.Width/float64(v.width), vp.Height/float64(v.height))

	v.drawBackdrop(c, w)
	v.drawStars(c, w)
	v.drawRings(c, w)
	v.drawObjects(c, w)

	return c.String()
}

// drawBackdrop shades each cell by the panorama seen along its view ray.
func (v SceneView) drawBackdrop(c *canvas, w *sim.World) {
	bg := w.Scene.Background
	if bg == nil {
		return
	}
	vp := w.Viewport()
	for y := range c.height {
		for x := range c.width {
			nx, ny := geom.PixelToNDC((float64(x)+0.5)*c.cellW, (float64(y)+0.5)*c.cellH, vp)
			dir := geom.Direction(w.Camera.Position, w.Camera.Unproject(geom.Vec(nx, ny, 1)))
			u := math.Atan2(dir.X, dir.Z)/(2*math.Pi) + 0.5
			vv := math.Acos(clampUnit(dir.Y)) / math.Pi

			lum := bg.Sample(u, vv)
			idx := int(lum * float64(len(backdropRamp)))
			if idx >= len(backdropRamp) {
				idx = len(backdropRamp) - 1
			}
			if ch := backdropRamp[idx]; ch != ' ' {
				g := 0.15 + lum*0.35
				c.set(x, y, ch, colorful.Color{R: g, G: g, B: g * 1.2}.Clamped().Hex())
			}
		}
	}
}

func (v SceneView) drawStars(c *canvas, w *sim.World) {
	field := w.Stars
	for _, s := range field.Stars {
		x, y, ok := c.at(w.ScreenPosition(s.Pos))
		if !ok {
			continue
		}
		intensity := starfield.Flicker(field.Time, s.Brightness)
		c.set(x, y, starGlyph(intensity), colorful.Color{R: intensity, G: intensity, B: intensity}.Hex())
	}
}

// starGlyph picks a glyph for a star's flicker intensity in [0.4, 1].
func starGlyph(intensity float64) rune {
	switch {
	case intensity >= 0.9:
		return '∗'
	case intensity >= 0.6:
		return '·'
	default:
		return '˙'
	}
}

func (v SceneView) drawRings(c *canvas, w *sim.World) {
	for _, ring := range w.Rings {
		for _, p := range ring.Points(ringSamples) {
			x, y, ok := c.at(w.ScreenPosition(p))
			if !ok {
				continue
			}
			c.set(x, y, ringGlyph(ring, p), ring.Glow(p).Hex())
		}
	}
}

// ringGlyph brightens the glyph near the glow peak.
func ringGlyph(r *orbit.Ring, p r3.Vec) rune {
	if r.GlowFactor(p.Y) > 0.85 {
		return '•'
	}
	return '·'
}

// glyph is how one scene object is drawn.
type glyph struct {
	ch    rune
	color string
}

// objectPainter draws scene objects onto a canvas, far to near so nearer
// ones win. It implements scene.Renderer.
type objectPainter struct {
	c      *canvas
	vp     geom.Viewport
	styles map[scene.ID]glyph
}

// Render implements scene.Renderer.
func (op objectPainter) Render(s *scene.Scene, cam *geom.Camera) {
	type sprite struct {
		pos geom.ScreenPoint
		g   glyph
	}
	var sprites []sprite
	for _, o := range s.Objects() {
		g, ok := op.styles[o.ID]
		if !ok {
			g = defaultGlyph(o.Kind)
		}
		sprites = append(sprites, sprite{cam.ScreenPosition(o.Position, op.vp), g})
	}

	sort.SliceStable(sprites, func(i, j int) bool {
		return sprites[i].pos.Depth > sprites[j].pos.Depth
	})
	for _, sp := range sprites {
		if x, y, ok := op.c.at(sp.pos); ok {
			op.c.set(x, y, sp.g.ch, sp.g.color)
		}
	}
}

func defaultGlyph(k scene.Kind) glyph {
	if k == scene.KindPlanet {
		return glyph{'◯', planetColor}
	}
	return glyph{'●', ballColor}
}

// drawObjects paints the scene with glyphs reflecting capture state.
func (v SceneView) drawObjects(c *canvas, w *sim.World) {
	styles := make(map[scene.ID]glyph)
	for _, p := range w.Capture.Planets() {
		if p.HasAttached {
			styles[p.ID] = glyph{'◉', planetColor}
		}
	}
	for _, b := range w.Capture.Balls() {
		if !b.AttractionEnabled {
			styles[b.ID] = glyph{'●', ballIdleColor}
		}
	}

	var r scene.Renderer = objectPainter{c: c, vp: w.Viewport(), styles: styles}
	r.Render(w.Scene, w.Camera)
}

// String renders the canvas, styling runs of same-coloured cells together.
func (c *canvas) String() string {
	var b strings.Builder
	for y, row := range c.cells {
		start := 0
		for x := 1; x <= len(row); x++ {
			if x < len(row) && row[x].color == row[start].color {
				continue
			}
			b.WriteString(renderRun(row[start:x]))
			start = x
		}
		if y < len(c.cells)-1 {
			b.WriteRune('\n')
		}
	}
	return b.String()
}

func renderRun(run []cell) string {
	runes := make([]rune, len(run))
	for i, cl := range run {
		runes[i] = cl.ch
	}
	if run[0].color == "" {
		return string(runes)
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color(run[0].color)).Render(string(runes))
}

func clampUnit(v float64) float64 {
	return math.Max(-1, math.Min(1, v))
}

// renderHUD summarises the capture state below the canvas.
func (v SceneView) renderHUD(w *sim.World) string {
	var b strings.Builder

	headerStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Bold(true)
	labelStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
	valueStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	warnStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#E84A27")).Bold(true)

	mgr := w.Capture
	b.WriteString(headerStyle.Render(fmt.Sprintf("◉ Captured %d", mgr.AttachedCount())))
	b.WriteString("  ")
	b.WriteString(labelStyle.Render("Orbit:"))
	b.WriteString(valueStyle.Render(fmt.Sprintf("%d", mgr.ActiveOrbitIndex())))
	b.WriteString("  ")
	b.WriteString(labelStyle.Render("Drift:"))
	b.WriteString(valueStyle.Render(fmt.Sprintf("%.1f", mgr.Drift())))
	b.WriteString("  ")

	p := w.Selected()
	b.WriteString(labelStyle.Render("Preset:"))
	b.WriteString(valueStyle.Render(fmt.Sprintf("[%s] r=%.0f tilt=%.0f°", p.Key, p.Radius, p.Tilt*180/math.Pi)))
	b.WriteString("  ")
	b.WriteString(labelStyle.Render("Planets:"))
	b.WriteString(valueStyle.Render(fmt.Sprintf("%d", len(mgr.Planets()))))
	b.WriteString("  ")
	b.WriteString(labelStyle.Render("Balls:"))
	b.WriteString(valueStyle.Render(fmt.Sprintf("%d", len(mgr.Balls()))))

	if mgr.Resetting() {
		b.WriteString("  ")
		b.WriteString(warnStyle.Render("RESETTING"))
	}
	if w.Pressed() {
		b.WriteString("  ")
		b.WriteString(labelStyle.Render("(dragging)"))
	}
	return b.String()
}
