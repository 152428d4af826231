package geom

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/spatial/r3"
)

func TestOrbitControlsIdleKeepsPosition(t *testing.T) {
	cam := testCamera()
	start := cam.Position

	ctl := NewOrbitControls()
	ctl.Update(cam)

	if !ApproxEqual(cam.Position, start, 1e-9) {
		t.Errorf("idle Update moved camera from %v to %v", start, cam.Position)
	}
	if cam.Target != Origin {
		t.Errorf("camera target = %v, want origin", cam.Target)
	}
}

func TestOrbitControlsRotatePreservesRadius(t *testing.T) {
	cam := testCamera()
	radius := r3.Norm(cam.Position)

	ctl := NewOrbitControls()
	ctl.Rotate(120, 0, 600)
	for i := 0; i < 30; i++ {
		ctl.Update(cam)
	}

	if math.Abs(r3.Norm(cam.Position)-radius) > 1e-9 {
		t.Errorf("radius changed: got %v, want %v", r3.Norm(cam.Position), radius)
	}
	if math.Abs(cam.Position.Y-10) > 1e-9 {
		t.Errorf("horizontal drag changed height to %v", cam.Position.Y)
	}
	if math.Abs(cam.Position.X) < 1e-3 {
		t.Error("horizontal drag should swing the camera around the Y axis")
	}
}

func TestOrbitControlsDampingDecays(t *testing.T) {
	ctl := NewOrbitControls()
	ctl.Rotate(50, 50, 600)
	if !ctl.Pending() {
		t.Fatal("rotation should be pending after a drag")
	}

	cam := testCamera()
	for i := 0; i < 2000; i++ {
		ctl.Update(cam)
	}
	if ctl.Pending() {
		t.Error("damped rotation should settle")
	}
}

func TestOrbitControlsWithoutDamping(t *testing.T) {
	ctl := NewOrbitControls()
	ctl.EnableDamping = false
	ctl.Rotate(0, 10000, 600) // Far past the top pole

	cam := testCamera()
	ctl.Update(cam)

	if ctl.Pending() {
		t.Error("undamped rotation should be consumed in one update")
	}
	if cam.Position.Y <= 0 {
		t.Errorf("camera should be clamped near the top pole, y=%v", cam.Position.Y)
	}
}
