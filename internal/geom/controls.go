package geom

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// OrbitControls rotates a camera around a target in response to pointer drags.
// Rotation is accumulated and applied on Update, optionally with damping.
type OrbitControls struct {
	Target        r3.Vec
	EnableDamping bool
	DampingFactor float64
	RotateSpeed   float64

	deltaTheta float64 // Pending azimuth change
	deltaPhi   float64 // Pending polar change
}

// NewOrbitControls returns controls targeting the origin with damping enabled.
func NewOrbitControls() *OrbitControls {
	return &OrbitControls{
		Target:        Origin,
		EnableDamping: true,
		DampingFactor: 0.05,
		RotateSpeed:   1.0,
	}
}

// polarEpsilon keeps the camera off the poles, where LookAt degenerates.
const polarEpsilon = 1e-6

// Rotate queues a drag of (dx, dy) pixels in a viewport of the given height.
func (o *OrbitControls) Rotate(dx, dy, viewportHeight float64) {
	if viewportHeight <= 0 {
		return
	}
	o.deltaTheta -= 2 * math.Pi * dx / viewportHeight * o.RotateSpeed
	o.deltaPhi -= 2 * math.Pi * dy / viewportHeight * o.RotateSpeed
}

// Pending reports whether queued rotation is still being applied.
func (o *OrbitControls) Pending() bool {
	return math.Abs(o.deltaTheta) > 1e-9 || math.Abs(o.deltaPhi) > 1e-9
}

// Update applies queued rotation to the camera and re-aims it at the target.
func (o *OrbitControls) Update(cam *Camera) {
	offset := r3.Sub(cam.Position, o.Target)
	radius := r3.Norm(offset)
	if radius == 0 {
		cam.LookAt(o.Target)
		return
	}

	// Y-up spherical coordinates.
	theta := math.Atan2(offset.X, offset.Z)
	phi := math.Acos(clamp(offset.Y/radius, -1, 1))

	if o.EnableDamping {
		theta += o.deltaTheta * o.DampingFactor
		phi += o.deltaPhi * o.DampingFactor
	} else {
		theta += o.deltaTheta
		phi += o.deltaPhi
	}
	phi = clamp(phi, polarEpsilon, math.Pi-polarEpsilon)

	sinPhi := math.Sin(phi)
	offset = r3.Vec{
		X: radius * sinPhi * math.Sin(theta),
		Y: radius * math.Cos(phi),
		Z: radius * sinPhi * math.Cos(theta),
	}
	cam.Position = r3.Add(o.Target, offset)
	cam.LookAt(o.Target)

	if o.EnableDamping {
		o.deltaTheta *= 1 - o.DampingFactor
		o.deltaPhi *= 1 - o.DampingFactor
	} else {
		o.deltaTheta = 0
		o.deltaPhi = 0
	}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
