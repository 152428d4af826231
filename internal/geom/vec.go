// Package geom provides the 3D math the scene relies on: vectors, a perspective
// camera with project/unproject, and mouse-driven orbit controls.
package geom

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// Origin is the world origin every camera in the scene looks at.
var Origin = r3.Vec{}

// WorldUp is the +Y axis.
var WorldUp = r3.Vec{Y: 1}

// Vec is a shorthand constructor for r3.Vec.
func Vec(x, y, z float64) r3.Vec {
	return r3.Vec{X: x, Y: y, Z: z}
}

// Direction returns the unit vector pointing from "from" to "to".
// The zero vector is returned when the points coincide.
func Direction(from, to r3.Vec) r3.Vec {
	d := r3.Sub(to, from)
	if r3.Norm(d) == 0 {
		return r3.Vec{}
	}
	return r3.Unit(d)
}

// ApproxEqual reports whether a and b differ by at most tol on every axis.
func ApproxEqual(a, b r3.Vec, tol float64) bool {
	return math.Abs(a.X-b.X) <= tol &&
		math.Abs(a.Y-b.Y) <= tol &&
		math.Abs(a.Z-b.Z) <= tol
}

func degToRad(deg float64) float64 {
	return deg * math.Pi / 180
}
