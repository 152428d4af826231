package capture

import (
	"time"

	"github.com/litescript/ls-orbits/internal/scene"
	"github.com/litescript/ls-orbits/internal/state"
)

// Advance moves the clock forward by dt and runs every task that came due.
// Tasks scheduled by a running task also run if they are already due.
func (m *Manager) Advance(dt time.Duration) {
	if dt > 0 {
		m.now += dt
	}
	for {
		task, ok := m.tasks.PopDue(m.now)
		if !ok {
			return
		}
		m.run(task)
	}
}

func (m *Manager) run(t Task) {
	switch t.Kind {
	case TaskEnableAttraction:
		b := m.findBall(t.Target)
		if b == nil {
			m.log.Debug("dropping %s for removed ball %d", t.Kind, t.Target)
			m.record(state.Event{Type: state.EventDiscard, Ball: uint64(t.Target), Detail: t.Kind.String()})
			return
		}
		b.AttractionEnabled = true

	case TaskAdvance:
		if t.Epoch != m.epoch {
			m.log.Debug("dropping %s from epoch %d (now %d)", t.Kind, t.Epoch, m.epoch)
			m.record(state.Event{Type: state.EventDiscard, Planet: uint64(t.Target), Detail: t.Kind.String()})
			return
		}
		m.advance()

	case TaskReset:
		if t.Epoch != m.epoch {
			return
		}
		m.reset()
	}
}

func (m *Manager) findBall(id scene.ID) *Ball {
	for _, b := range m.balls {
		if b.ID == id {
			return b
		}
	}
	return nil
}

// advance is the delayed step after a capture: move inward one orbit, or
// finish the cycle and start over faster. The oldest planets are evicted
// down to MaxPlanets afterwards.
func (m *Manager) advance() {
	if m.attachedCount < m.cfg.MaxAttached {
		m.attachedCount++
		next := m.activeOrbitIndex - 1
		if err := m.spawnPair(next); err != nil {
			m.log.Warn("advance to orbit %d: %v", next, err)
		}
		m.activeOrbitIndex--
		m.record(state.Event{Type: state.EventAdvance, Orbit: next, Detail: "inward"})
	} else {
		m.drift += m.cfg.DriftStep
		m.attachedCount = 0
		m.activeOrbitIndex = m.cfg.InitialOrbitIndex
		m.resetting = false

		if err := m.spawnPair(m.activeOrbitIndex); err != nil {
			m.log.Warn("restart cycle: %v", err)
		}
		m.log.Info("cycle complete, drift now %.1f", m.drift)
		m.record(state.Event{Type: state.EventCycle, Orbit: m.activeOrbitIndex, Drift: m.drift})
	}

	for len(m.planets) > m.cfg.MaxPlanets {
		m.RemovePlanet(m.planets[0].ID)
	}
}

// ResetSystem suspends capture and, after ResetDelay, clears every planet and
// ball, zeroes the counters and spawns a fresh pair. Pending advances from
// before the call are dropped.
func (m *Manager) ResetSystem() {
	m.resetting = true
	m.epoch++
	m.tasks.Push(Task{
		At:    m.now + m.cfg.ResetDelay,
		Kind:  TaskReset,
		Epoch: m.epoch,
	})
	m.log.Info("reset scheduled in %v", m.cfg.ResetDelay)
}

func (m *Manager) reset() {
	m.scene.Clear()
	m.planets = nil
	m.balls = nil
	m.attachedCount = 0
	m.activeOrbitIndex = m.cfg.InitialOrbitIndex
	m.resetting = false

	m.record(state.Event{Type: state.EventReset, Orbit: m.activeOrbitIndex})
	if err := m.spawnPair(m.activeOrbitIndex); err != nil {
		m.log.Warn("reset spawn: %v", err)
	}
}
