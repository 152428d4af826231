package ui

import (
	"strings"
	"testing"

	"github.com/litescript/ls-orbits/internal/geom"
	"github.com/litescript/ls-orbits/internal/orbit"
	"github.com/litescript/ls-orbits/internal/scene"
)

func TestCanvasAt(t *testing.T) {
	c := newCanvas(10, 5, 8, 16)

	tests := []struct {
		p      geom.ScreenPoint
		x, y   int
		inside bool
	}{
		{geom.ScreenPoint{X: 0, Y: 0, Depth: 1}, 0, 0, true},
		{geom.ScreenPoint{X: 79.9, Y: 79.9, Depth: 1}, 9, 4, true},
		{geom.ScreenPoint{X: 80, Y: 10, Depth: 1}, 0, 0, false},
		{geom.ScreenPoint{X: -0.1, Y: 10, Depth: 1}, 0, 0, false},
		{geom.ScreenPoint{X: 10, Y: 10, Behind: true}, 0, 0, false},
	}
	for _, tt := range tests {
		x, y, ok := c.at(tt.p)
		if ok != tt.inside || (ok && (x != tt.x || y != tt.y)) {
			t.Errorf("at(%+v) = (%d, %d, %v), want (%d, %d, %v)", tt.p, x, y, ok, tt.x, tt.y, tt.inside)
		}
	}
}

func TestCanvasStringUnstyled(t *testing.T) {
	c := newCanvas(3, 2, 8, 16)
	c.set(1, 0, 'a', "")
	c.set(2, 1, 'b', "")

	if got, want := c.String(), " a \n  b"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

func TestStarGlyph(t *testing.T) {
	tests := []struct {
		intensity float64
		want      rune
	}{
		{1.0, '∗'},
		{0.9, '∗'},
		{0.7, '·'},
		{0.4, '˙'},
	}
	for _, tt := range tests {
		if got := starGlyph(tt.intensity); got != tt.want {
			t.Errorf("starGlyph(%v) = %q, want %q", tt.intensity, got, tt.want)
		}
	}
}

func TestRingGlyphFollowsGlow(t *testing.T) {
	r := orbit.DefaultRings()[0]
	r.Time = 0

	// y = 0 puts the phase at π, where the glow is at its trough.
	if got := ringGlyph(r, geom.Vec(0, 0, 0)); got != '·' {
		t.Errorf("trough glyph = %q", got)
	}
	// y = -2.5 puts the phase at π/2, the peak.
	if got := ringGlyph(r, geom.Vec(0, -2.5, 0)); got != '•' {
		t.Errorf("peak glyph = %q", got)
	}
}

func TestRenderDrawsPlanet(t *testing.T) {
	w := newTestWorld(t)
	w.Resize(80, 24)
	v := NewSceneView().SetSize(80, 24)

	out := v.Render(w)
	if !strings.ContainsRune(out, '◯') {
		t.Error("planet not drawn")
	}
	if n := strings.Count(out, "\n"); n != 23 {
		t.Errorf("rendered %d line breaks, want 23", n)
	}
}

func TestRenderBackdrop(t *testing.T) {
	w := newTestWorld(t)
	w.Resize(40, 12)
	v := NewSceneView().SetSize(40, 12)

	if strings.ContainsRune(v.Render(w), '=') {
		t.Fatal("backdrop drawn without a background")
	}

	w.Scene.Background = &scene.Backdrop{Width: 1, Height: 1, Lum: []float64{1}}
	if !strings.ContainsRune(v.Render(w), '=') {
		t.Error("bright backdrop not drawn")
	}
}

func TestRenderEmptyView(t *testing.T) {
	if got := NewSceneView().Render(newTestWorld(t)); got != "" {
		t.Errorf("zero-size view rendered %q", got)
	}
}

func TestObjectPainterNearestWins(t *testing.T) {
	sc := scene.New()
	far := sc.Add(scene.KindPlanet, 0.5)
	near := sc.Add(scene.KindBall, 0.5)
	far.Position = geom.Vec(0, 0, -5)
	near.Position = geom.Vec(0, 0, 5)

	cam := geom.NewPerspectiveCamera(75, 1, 0.1, 1000)
	cam.Position = geom.Vec(0, 0, 20)
	cam.LookAt(geom.Origin)

	c := newCanvas(10, 10, 8, 16)
	painter := objectPainter{c: c, vp: geom.Viewport{Width: 80, Height: 160}}
	painter.Render(sc, cam)

	if got := c.cells[5][5].ch; got != '●' {
		t.Errorf("centre cell = %q, want the nearer ball", got)
	}

	// A style override replaces the default glyph.
	painter.styles = map[scene.ID]glyph{near.ID: {'x', ""}}
	painter.Render(sc, cam)
	if got := c.cells[5][5].ch; got != 'x' {
		t.Errorf("centre cell = %q, want styled glyph", got)
	}
}
