// Package orbit defines the tilted circular paths markers travel on and the
// glowing rings drawn for them.
package orbit

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// Orbit is a circle of the given radius whose plane is tilted about the X axis
// so that its height is z*tan(Tilt).
type Orbit struct {
	Radius float64
	Tilt   float64 // Radians
}

// Point returns the position at parametric angle theta:
// (cos θ·r, sin θ·r·tan t, sin θ·r).
func (o Orbit) Point(theta float64) r3.Vec {
	s := math.Sin(theta)
	return r3.Vec{
		X: math.Cos(theta) * o.Radius,
		Y: s * o.Radius * math.Tan(o.Tilt),
		Z: s * o.Radius,
	}
}

// Default returns the three capture orbits, innermost first.
func Default() []Orbit {
	return []Orbit{
		{Radius: 6, Tilt: math.Pi * 0 / 8},
		{Radius: 8, Tilt: math.Pi * 1 / 8},
		{Radius: 12, Tilt: math.Pi * 1.5 / 8},
	}
}

// Preset is a keyboard-selectable orbit.
type Preset struct {
	Key string
	Orbit
}

// Presets are bound to the digit keys 1-6.
var Presets = []Preset{
	{"1", Orbit{Radius: 6, Tilt: math.Pi * 0 / 8}},
	{"2", Orbit{Radius: 8, Tilt: math.Pi * 1 / 8}},
	{"3", Orbit{Radius: 12, Tilt: math.Pi * 1.5 / 8}},
	{"4", Orbit{Radius: 14, Tilt: math.Pi * 2 / 8}},
	{"5", Orbit{Radius: 16, Tilt: math.Pi * 2.5 / 8}},
	{"6", Orbit{Radius: 18, Tilt: math.Pi * 3 / 8}},
}

// DefaultPreset is selected at startup.
const DefaultPreset = 2

// PresetForKey looks up the preset bound to key.
func PresetForKey(key string) (int, Preset, bool) {
	for i, p := range Presets {
		if p.Key == key {
			return i, p, true
		}
	}
	return -1, Preset{}, false
}
