package scene

import "math"

// Backdrop is a luminance panorama wrapped around the scene.
// Lum is row-major, values in [0, 1].
type Backdrop struct {
	Width  int
	Height int
	Lum    []float64
}

// Sample returns luminance at normalized coordinates. u wraps; v is clamped.
func (b *Backdrop) Sample(u, v float64) float64 {
	if b == nil || b.Width == 0 || b.Height == 0 || len(b.Lum) < b.Width*b.Height {
		return 0
	}
	u -= math.Floor(u)
	if v < 0 {
		v = 0
	} else if v > 1 {
		v = 1
	}

	x := int(u * float64(b.Width))
	y := int(v * float64(b.Height-1))
	if x >= b.Width {
		x = b.Width - 1
	}
	return b.Lum[y*b.Width+x]
}
