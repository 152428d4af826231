package orbit

import (
	"fmt"
	"math"

	colorful "github.com/lucasb-eyer/go-colorful"
	"gonum.org/v1/gonum/spatial/r3"
)

// GlowStep is how far a ring's glow time advances per frame.
const GlowStep = 0.03

// Ring is a drawable orbit with a two-colour travelling glow.
type Ring struct {
	Orbit
	Outer colorful.Color // Shown at glow peak
	Inner colorful.Color // Shown at glow trough
	Time  float64
}

// NewRing builds a ring from hex colours.
func NewRing(o Orbit, outerHex, innerHex string) (*Ring, error) {
	outer, err := colorful.Hex(outerHex)
	if err != nil {
		return nil, fmt.Errorf("outer colour %q: %w", outerHex, err)
	}
	inner, err := colorful.Hex(innerHex)
	if err != nil {
		return nil, fmt.Errorf("inner colour %q: %w", innerHex, err)
	}
	return &Ring{Orbit: o, Outer: outer, Inner: inner}, nil
}

// DefaultRings returns the neon rings for presets 1-3 plus a pink ring
// mirroring the outer orbit's tilt.
func DefaultRings() []*Ring {
	mirrored := Presets[2].Orbit
	mirrored.Tilt = -mirrored.Tilt

	specs := []struct {
		o            Orbit
		outer, inner string
	}{
		{Presets[0].Orbit, "#00ffff", "#ff00ff"},
		{Presets[1].Orbit, "#00ffff", "#ff00ff"},
		{Presets[2].Orbit, "#00ffff", "#ff00ff"},
		{mirrored, "#ffc0cb", "#aa6066"},
	}

	rings := make([]*Ring, 0, len(specs))
	for _, s := range specs {
		r, err := NewRing(s.o, s.outer, s.inner)
		if err != nil {
			// Literal colours above are always valid.
			panic(err)
		}
		rings = append(rings, r)
	}
	return rings
}

// Advance moves the glow forward one frame.
func (r *Ring) Advance() {
	r.Time += GlowStep
}

// GlowFactor returns the blend weight toward Outer for a point at height y.
// It ranges over [0.5, 1].
func (r *Ring) GlowFactor(y float64) float64 {
	v := y*0.1 + 0.5
	return math.Abs(math.Sin(r.Time+v*6.28))*0.5 + 0.5
}

// Glow returns the ring colour at point p.
func (r *Ring) Glow(p r3.Vec) colorful.Color {
	return r.Inner.BlendRgb(r.Outer, r.GlowFactor(p.Y)).Clamped()
}

// Points samples n points evenly around the ring.
func (r *Ring) Points(n int) []r3.Vec {
	if n <= 0 {
		return nil
	}
	pts := make([]r3.Vec, n)
	for i := range pts {
		pts[i] = r.Point(2 * math.Pi * float64(i) / float64(n))
	}
	return pts
}
