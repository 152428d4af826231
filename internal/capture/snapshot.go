package capture

import (
	"time"

	"gonum.org/v1/gonum/spatial/r3"
)

// PlanetState is a copy of a planet for display and export.
type PlanetState struct {
	ID          uint64  `json:"id"`
	OrbitIndex  int     `json:"orbit"`
	Angle       float64 `json:"angle"`
	Position    r3.Vec  `json:"position"`
	HasAttached bool    `json:"has_attached"`
}

// BallState is a copy of a ball for display and export.
type BallState struct {
	ID                uint64        `json:"id"`
	TargetOrbitIndex  int           `json:"target_orbit"`
	Position          r3.Vec        `json:"position"`
	IsAttached        bool          `json:"is_attached"`
	AttractionEnabled bool          `json:"attraction_enabled"`
	CreatedAt         time.Duration `json:"created_at_ns"`
}

// TaskState is a copy of a scheduled task.
type TaskState struct {
	At     time.Duration `json:"at_ns"`
	Kind   string        `json:"kind"`
	Target uint64        `json:"target,omitempty"`
}

// Snapshot is an immutable copy of the manager's state.
type Snapshot struct {
	Now              time.Duration `json:"now_ns"`
	AttachedCount    int           `json:"attached_count"`
	ActiveOrbitIndex int           `json:"active_orbit"`
	Drift            float64       `json:"drift"`
	Resetting        bool          `json:"resetting"`
	PendingTasks     int           `json:"pending_tasks"`
	Planets          []PlanetState `json:"planets"`
	Balls            []BallState   `json:"balls"`
	Tasks            []TaskState   `json:"tasks"`
}

// Snapshot returns a consistent copy of the current state.
func (m *Manager) Snapshot() Snapshot {
	snap := Snapshot{
		Now:              m.now,
		AttachedCount:    m.attachedCount,
		ActiveOrbitIndex: m.activeOrbitIndex,
		Drift:            m.drift,
		Resetting:        m.resetting,
		PendingTasks:     m.tasks.Len(),
		Planets:          make([]PlanetState, 0, len(m.planets)),
		Balls:            make([]BallState, 0, len(m.balls)),
	}
	for _, p := range m.planets {
		snap.Planets = append(snap.Planets, PlanetState{
			ID:          uint64(p.ID),
			OrbitIndex:  p.OrbitIndex,
			Angle:       p.Angle,
			Position:    p.Position(),
			HasAttached: p.HasAttached,
		})
	}
	for _, b := range m.balls {
		snap.Balls = append(snap.Balls, BallState{
			ID:                uint64(b.ID),
			TargetOrbitIndex:  b.TargetOrbitIndex,
			Position:          b.Position(),
			IsAttached:        b.IsAttached,
			AttractionEnabled: b.AttractionEnabled,
			CreatedAt:         b.CreatedAt,
		})
	}
	for _, t := range m.tasks.Pending() {
		snap.Tasks = append(snap.Tasks, TaskState{
			At:     t.At,
			Kind:   t.Kind.String(),
			Target: uint64(t.Target),
		})
	}
	return snap
}
