package geom

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// Viewport is the drawable area in virtual pixels.
type Viewport struct {
	Width  float64
	Height float64
}

// Aspect returns width/height, or 1 for a degenerate viewport.
func (v Viewport) Aspect() float64 {
	if v.Width <= 0 || v.Height <= 0 {
		return 1
	}
	return v.Width / v.Height
}

// ScreenPoint is a projected position in viewport pixels.
// Y grows downward, matching terminal rows.
type ScreenPoint struct {
	X      float64
	Y      float64
	Depth  float64 // Distance along the view axis
	Behind bool    // True if the point lies behind the camera
}

// Distance returns the Euclidean distance between two screen points.
func (p ScreenPoint) Distance(q ScreenPoint) float64 {
	return math.Hypot(p.X-q.X, p.Y-q.Y)
}

// Camera is a perspective camera that always looks at Target.
type Camera struct {
	Position r3.Vec
	Target   r3.Vec
	Up       r3.Vec

	FovDeg float64 // Vertical field of view
	Aspect float64
	Near   float64
	Far    float64
}

// NewPerspectiveCamera creates a camera at the origin looking down -Z.
func NewPerspectiveCamera(fovDeg, aspect, near, far float64) *Camera {
	return &Camera{
		Target: Vec(0, 0, -1),
		Up:     WorldUp,
		FovDeg: fovDeg,
		Aspect: aspect,
		Near:   near,
		Far:    far,
	}
}

// LookAt points the camera at target.
func (c *Camera) LookAt(target r3.Vec) {
	c.Target = target
}

// basis returns the camera's right, up and forward unit vectors.
func (c *Camera) basis() (right, up, forward r3.Vec) {
	forward = Direction(c.Position, c.Target)
	if r3.Norm(forward) == 0 {
		forward = Vec(0, 0, -1)
	}
	right = r3.Cross(forward, c.Up)
	if r3.Norm(right) < 1e-12 {
		// Looking straight along Up; any perpendicular axis will do.
		right = Vec(1, 0, 0)
	}
	right = r3.Unit(right)
	up = r3.Cross(right, forward)
	return right, up, forward
}

func (c *Camera) tanHalfFov() float64 {
	return math.Tan(degToRad(c.FovDeg) / 2)
}

// Project maps a world point to normalized device coordinates.
// X and Y are in [-1, 1] when on screen; Z is in [-1, 1] between Near and Far.
// The second return value is the depth along the view axis.
func (c *Camera) Project(p r3.Vec) (ndc r3.Vec, depth float64) {
	right, up, forward := c.basis()
	d := r3.Sub(p, c.Position)

	xc := r3.Dot(d, right)
	yc := r3.Dot(d, up)
	zc := r3.Dot(d, forward)

	div := zc
	if math.Abs(div) < 1e-9 {
		div = 1e-9
	}

	t := c.tanHalfFov()
	ndc = r3.Vec{
		X: xc / (div * t * c.Aspect),
		Y: yc / (div * t),
		Z: ((c.Far+c.Near)*div - 2*c.Far*c.Near) / ((c.Far - c.Near) * div),
	}
	return ndc, zc
}

// Unproject maps normalized device coordinates back to a world point.
// It is the inverse of Project for points in front of the camera.
func (c *Camera) Unproject(ndc r3.Vec) r3.Vec {
	right, up, forward := c.basis()

	zc := 2 * c.Far * c.Near / ((c.Far + c.Near) - ndc.Z*(c.Far-c.Near))
	t := c.tanHalfFov()
	xc := ndc.X * zc * t * c.Aspect
	yc := ndc.Y * zc * t

	p := c.Position
	p = r3.Add(p, r3.Scale(xc, right))
	p = r3.Add(p, r3.Scale(yc, up))
	p = r3.Add(p, r3.Scale(zc, forward))
	return p
}

// ScreenPosition projects a world point into viewport pixels.
func (c *Camera) ScreenPosition(p r3.Vec, vp Viewport) ScreenPoint {
	ndc, depth := c.Project(p)
	return ScreenPoint{
		X:      (ndc.X*0.5 + 0.5) * vp.Width,
		Y:      (1 - (ndc.Y*0.5 + 0.5)) * vp.Height,
		Depth:  depth,
		Behind: depth <= 0,
	}
}

// PixelToNDC converts a viewport pixel position to normalized device X/Y.
func PixelToNDC(x, y float64, vp Viewport) (float64, float64) {
	if vp.Width <= 0 || vp.Height <= 0 {
		return 0, 0
	}
	return x/vp.Width*2 - 1, -(y/vp.Height)*2 + 1
}
