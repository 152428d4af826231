package scene

import "testing"

func TestSceneAddRemove(t *testing.T) {
	s := New()

	a := s.Add(KindPlanet, 0.5)
	b := s.Add(KindBall, 0.5)

	if a.ID == b.ID {
		t.Fatalf("IDs should be unique, both %d", a.ID)
	}
	if s.Len() != 2 {
		t.Errorf("Len = %d, want 2", s.Len())
	}

	if !s.Remove(a.ID) {
		t.Error("Remove should report the object as present")
	}
	if s.Remove(a.ID) {
		t.Error("second Remove should report absence")
	}
	objs := s.Objects()
	if len(objs) != 1 || objs[0].ID != b.ID {
		t.Errorf("Objects = %v, want only ball %d", objs, b.ID)
	}
}

func TestSceneInsertionOrder(t *testing.T) {
	s := New()
	var ids []ID
	for i := 0; i < 5; i++ {
		ids = append(ids, s.Add(KindBall, 0.5).ID)
	}
	s.Remove(ids[2])

	want := []ID{ids[0], ids[1], ids[3], ids[4]}
	got := s.Objects()
	for i, obj := range got {
		if obj.ID != want[i] {
			t.Errorf("Objects[%d] = %d, want %d", i, obj.ID, want[i])
		}
	}
}

func TestSceneIDsNotReusedAfterClear(t *testing.T) {
	s := New()
	first := s.Add(KindPlanet, 0.5).ID
	s.Clear()

	if s.Len() != 0 {
		t.Errorf("Len after Clear = %d", s.Len())
	}
	if next := s.Add(KindPlanet, 0.5).ID; next <= first {
		t.Errorf("ID after Clear = %d, want > %d", next, first)
	}
}

func TestKindString(t *testing.T) {
	if KindPlanet.String() != "planet" || KindBall.String() != "ball" {
		t.Errorf("unexpected kind names %q %q", KindPlanet, KindBall)
	}
}

func TestBackdropSample(t *testing.T) {
	b := &Backdrop{
		Width:  2,
		Height: 2,
		Lum:    []float64{0.1, 0.2, 0.3, 0.4},
	}

	tests := []struct {
		u, v float64
		want float64
	}{
		{0, 0, 0.1},
		{0.75, 0, 0.2},
		{0, 1, 0.3},
		{1.75, 1, 0.4}, // u wraps
		{0, -3, 0.1},   // v clamps
	}
	for _, tt := range tests {
		if got := b.Sample(tt.u, tt.v); got != tt.want {
			t.Errorf("Sample(%v, %v) = %v, want %v", tt.u, tt.v, got, tt.want)
		}
	}

	var nilB *Backdrop
	if nilB.Sample(0.5, 0.5) != 0 {
		t.Error("nil backdrop should sample 0")
	}
}
