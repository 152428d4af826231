// Package starfield simulates the background star particles: a spherical
// shell of points that can be blown outward and drift back.
package starfield

import (
	"math"
	"math/rand/v2"

	"gonum.org/v1/gonum/spatial/r3"
)

// Star is one particle.
type Star struct {
	Pos        r3.Vec
	Vel        r3.Vec
	Brightness float64 // [0, 1), drives flicker rate
}

// Config holds particle tuning.
type Config struct {
	Count          int
	MinRadius      float64 // Inner radius of the spawn shell
	ShellDepth     float64 // Shell thickness
	StepScale      float64 // Fraction of velocity applied per frame
	Damping        float64 // Velocity multiplier per frame
	ReturnRadius   float64 // Beyond this, particles are pulled back
	ReturnStrength float64
	ExplodeForce   float64
	FlickerStep    float64 // Shader time advance per frame
}

// DefaultConfig returns the stock particle settings.
func DefaultConfig() Config {
	return Config{
		Count:          1500,
		MinRadius:      40,
		ShellDepth:     40,
		StepScale:      0.1,
		Damping:        0.99,
		ReturnRadius:   100,
		ReturnStrength: 0.005,
		ExplodeForce:   5,
		FlickerStep:    0.02,
	}
}

// Field is the full particle system.
type Field struct {
	Stars []Star
	Time  float64 // Shared flicker clock

	cfg Config
}

// New scatters cfg.Count stars uniformly over a spherical shell.
func New(cfg Config, rng *rand.Rand) *Field {
	f := &Field{
		Stars: make([]Star, cfg.Count),
		cfg:   cfg,
	}
	for i := range f.Stars {
		r := rng.Float64()*cfg.ShellDepth + cfg.MinRadius
		theta := rng.Float64() * 2 * math.Pi
		phi := math.Acos(2*rng.Float64() - 1)

		f.Stars[i] = Star{
			Pos: r3.Vec{
				X: r * math.Sin(phi) * math.Cos(theta),
				Y: r * math.Sin(phi) * math.Sin(theta),
				Z: r * math.Cos(phi),
			},
			Brightness: rng.Float64(),
		}
	}
	return f
}

// Explode pushes every star away from origin. Each axis gets its own random
// scale in [0.5, 1.5).
func (f *Field) Explode(origin r3.Vec, rng *rand.Rand) {
	force := f.cfg.ExplodeForce
	for i := range f.Stars {
		s := &f.Stars[i]
		d := r3.Sub(s.Pos, origin)
		dist := r3.Norm(d) + 1e-5

		s.Vel.X += d.X / dist * force * (rng.Float64() + 0.5)
		s.Vel.Y += d.Y / dist * force * (rng.Float64() + 0.5)
		s.Vel.Z += d.Z / dist * force * (rng.Float64() + 0.5)
	}
}

// Step integrates one frame.
func (f *Field) Step() {
	f.Time += f.cfg.FlickerStep

	for i := range f.Stars {
		s := &f.Stars[i]
		s.Pos = r3.Add(s.Pos, r3.Scale(f.cfg.StepScale, s.Vel))
		s.Vel = r3.Scale(f.cfg.Damping, s.Vel)

		if r3.Norm(s.Pos) > f.cfg.ReturnRadius {
			s.Vel = r3.Sub(s.Vel, r3.Scale(f.cfg.ReturnStrength, s.Pos))
		}
	}
}

// Flicker returns the display intensity of a star in [0.4, 1].
func Flicker(time, brightness float64) float64 {
	return math.Abs(math.Sin(time*(0.5+brightness*0.5)))*0.6 + 0.4
}
