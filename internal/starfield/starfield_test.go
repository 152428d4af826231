package starfield

import (
	"math"
	"math/rand/v2"
	"testing"

	"gonum.org/v1/gonum/spatial/r3"
)

func newRNG() *rand.Rand {
	return rand.New(rand.NewPCG(1, 2))
}

func TestNewShell(t *testing.T) {
	cfg := DefaultConfig()
	f := New(cfg, newRNG())

	if len(f.Stars) != 1500 {
		t.Fatalf("star count = %d, want 1500", len(f.Stars))
	}
	for i, s := range f.Stars {
		r := r3.Norm(s.Pos)
		if r < cfg.MinRadius-1e-9 || r > cfg.MinRadius+cfg.ShellDepth+1e-9 {
			t.Errorf("star %d radius %v outside shell", i, r)
		}
		if s.Vel != (r3.Vec{}) {
			t.Errorf("star %d should start at rest, vel %v", i, s.Vel)
		}
		if s.Brightness < 0 || s.Brightness >= 1 {
			t.Errorf("star %d brightness %v out of range", i, s.Brightness)
		}
	}
}

func TestExplodePushesOutward(t *testing.T) {
	f := New(DefaultConfig(), newRNG())
	f.Explode(r3.Vec{}, newRNG())

	for i, s := range f.Stars {
		if r3.Dot(s.Vel, s.Pos) <= 0 {
			t.Fatalf("star %d velocity %v not outward from %v", i, s.Vel, s.Pos)
		}
		speed := r3.Norm(s.Vel)
		if speed < 0.5*5-1e-9 || speed > 1.5*5+1e-9 {
			t.Fatalf("star %d impulse %v outside [2.5, 7.5]", i, speed)
		}
	}
}

func TestStepIntegratesAndDamps(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Count = 1
	f := New(cfg, newRNG())
	f.Stars[0] = Star{Pos: r3.Vec{X: 50}, Vel: r3.Vec{X: 10}}

	f.Step()

	s := f.Stars[0]
	if math.Abs(s.Pos.X-51) > 1e-12 {
		t.Errorf("Pos.X = %v, want 51", s.Pos.X)
	}
	if math.Abs(s.Vel.X-9.9) > 1e-12 {
		t.Errorf("Vel.X = %v, want 9.9", s.Vel.X)
	}
	if math.Abs(f.Time-0.02) > 1e-12 {
		t.Errorf("Time = %v, want 0.02", f.Time)
	}
}

func TestStepPullsBackStragglers(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Count = 1
	f := New(cfg, newRNG())
	f.Stars[0] = Star{Pos: r3.Vec{X: 150}}

	f.Step()

	// Beyond the return radius: vel -= pos * 0.005.
	if math.Abs(f.Stars[0].Vel.X+0.75) > 1e-12 {
		t.Errorf("Vel.X = %v, want -0.75", f.Stars[0].Vel.X)
	}
}

func TestExplodedStarsComeBack(t *testing.T) {
	f := New(DefaultConfig(), newRNG())
	rng := newRNG()
	for i := 0; i < 5; i++ {
		f.Explode(r3.Vec{}, rng)
	}

	var maxR float64
	for frame := 0; frame < 5000; frame++ {
		f.Step()
	}
	for _, s := range f.Stars {
		maxR = math.Max(maxR, r3.Norm(s.Pos))
	}
	if maxR > 200 {
		t.Errorf("stars still at radius %v after settling", maxR)
	}
}

func TestFlickerRange(t *testing.T) {
	for ti := 0.0; ti < 50; ti += 0.37 {
		for _, b := range []float64{0, 0.25, 0.5, 0.99} {
			v := Flicker(ti, b)
			if v < 0.4-1e-12 || v > 1+1e-12 {
				t.Fatalf("Flicker(%v, %v) = %v", ti, b, v)
			}
		}
	}
	if Flicker(0, 0.5) != 0.4 {
		t.Errorf("Flicker at time 0 = %v, want 0.4", Flicker(0, 0.5))
	}
}
