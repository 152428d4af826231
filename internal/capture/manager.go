// Package capture owns the capture targets ("planets") and the pointer-driven
// balls, runs the screen-space capture check, and drives the progression and
// reset state machine through a time-ordered task queue.
package capture

import (
	"errors"
	"fmt"
	"math"
	"math/rand/v2"
	"time"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/litescript/ls-orbits/internal/geom"
	"github.com/litescript/ls-orbits/internal/logging"
	"github.com/litescript/ls-orbits/internal/orbit"
	"github.com/litescript/ls-orbits/internal/scene"
	"github.com/litescript/ls-orbits/internal/state"
)

// ErrBadOrbit is returned when an orbit index has no definition.
var ErrBadOrbit = errors.New("orbit index out of range")

// Projector maps world points to screen pixels.
type Projector interface {
	ScreenPosition(p r3.Vec) geom.ScreenPoint
}

// Recorder receives gameplay events.
type Recorder interface {
	Record(e state.Event)
}

// Planet is a capture target travelling on an orbit.
type Planet struct {
	ID          scene.ID
	Angle       float64
	OrbitIndex  int
	Orbit       orbit.Orbit
	HasAttached bool

	obj *scene.Object
}

// Position returns the planet's current world position.
func (p *Planet) Position() r3.Vec {
	return p.obj.Position
}

// Ball follows the pointer until it is captured by a planet on its target orbit.
type Ball struct {
	ID                scene.ID
	IsAttached        bool
	TargetOrbitIndex  int
	AttractionEnabled bool
	CreatedAt         time.Duration

	obj *scene.Object
}

// Position returns the ball's current world position.
func (b *Ball) Position() r3.Vec {
	return b.obj.Position
}

// Config holds the capture tuning.
type Config struct {
	Orbits            []orbit.Orbit
	InitialOrbitIndex int
	MaxAttached       int // Captures per cycle before the cycle restarts
	MaxPlanets        int // Live planets kept after each advance
	SpawnOffset       float64
	ObjectRadius      float64
	CaptureRadius     float64 // Screen pixels
	AngularStep       float64 // Radians per frame before orbit/drift scaling
	DriftStep         float64
	AttractionDelay   time.Duration
	CaptureDelay      time.Duration
	ResetDelay        time.Duration
}

// DefaultConfig returns the stock capture settings.
func DefaultConfig() Config {
	return Config{
		Orbits:            orbit.Default(),
		InitialOrbitIndex: 2,
		MaxAttached:       2,
		MaxPlanets:        2,
		SpawnOffset:       6,
		ObjectRadius:      0.5,
		CaptureRadius:     50,
		AngularStep:       0.02,
		DriftStep:         0.1,
		AttractionDelay:   3000 * time.Millisecond,
		CaptureDelay:      1000 * time.Millisecond,
		ResetDelay:        500 * time.Millisecond,
	}
}

// Manager owns planets, balls and the progression counters.
type Manager struct {
	cfg   Config
	scene *scene.Scene
	rng   *rand.Rand
	log   *logging.Logger
	rec   Recorder

	planets []*Planet
	balls   []*Ball

	attachedCount    int
	activeOrbitIndex int
	drift            float64
	resetting        bool
	epoch            uint64 // Bumped by ResetSystem; stale tasks are dropped

	now   time.Duration
	tasks Queue
}

// NewManager creates a manager that places objects in sc.
func NewManager(cfg Config, sc *scene.Scene, rng *rand.Rand) *Manager {
	return &Manager{
		cfg:              cfg,
		scene:            sc,
		rng:              rng,
		log:              logging.Discard(),
		activeOrbitIndex: cfg.InitialOrbitIndex,
	}
}

// SetLogger sets the logger used for state transitions.
func (m *Manager) SetLogger(l *logging.Logger) {
	m.log = l
}

// SetRecorder sets where gameplay events are recorded.
func (m *Manager) SetRecorder(r Recorder) {
	m.rec = r
}

// Start spawns the first planet and ball on the initial orbit.
func (m *Manager) Start() error {
	return m.spawnPair(m.cfg.InitialOrbitIndex)
}

func (m *Manager) record(e state.Event) {
	if m.rec == nil {
		return
	}
	e.At = m.now
	m.rec.Record(e)
}

func (m *Manager) orbitAt(i int) (orbit.Orbit, error) {
	if i < 0 || i >= len(m.cfg.Orbits) {
		return orbit.Orbit{}, fmt.Errorf("orbit %d: %w", i, ErrBadOrbit)
	}
	return m.cfg.Orbits[i], nil
}

// CreatePlanet adds a planet at angle 0 on the given orbit.
func (m *Manager) CreatePlanet(orbitIndex int) (*Planet, error) {
	o, err := m.orbitAt(orbitIndex)
	if err != nil {
		return nil, err
	}

	obj := m.scene.Add(scene.KindPlanet, m.cfg.ObjectRadius)
	obj.Position = o.Point(0)

	p := &Planet{
		ID:         obj.ID,
		OrbitIndex: orbitIndex,
		Orbit:      o,
		obj:        obj,
	}
	m.planets = append(m.planets, p)
	return p, nil
}

// CreateBall adds a ball outside its target orbit at a random angle and
// schedules it to become capturable after AttractionDelay.
func (m *Manager) CreateBall(orbitIndex int) (*Ball, error) {
	o, err := m.orbitAt(orbitIndex)
	if err != nil {
		return nil, err
	}

	angle := m.rng.Float64() * 2 * math.Pi
	r := o.Radius + m.cfg.SpawnOffset

	obj := m.scene.Add(scene.KindBall, m.cfg.ObjectRadius)
	obj.Position = r3.Vec{
		X: math.Cos(angle) * r,
		Y: math.Sin(angle) * r * math.Tan(o.Tilt),
		Z: math.Sin(angle) * r,
	}

	b := &Ball{
		ID:               obj.ID,
		TargetOrbitIndex: orbitIndex,
		CreatedAt:        m.now,
		obj:              obj,
	}
	m.balls = append(m.balls, b)

	m.tasks.Push(Task{
		At:     m.now + m.cfg.AttractionDelay,
		Kind:   TaskEnableAttraction,
		Target: b.ID,
		Epoch:  m.epoch,
	})
	return b, nil
}

func (m *Manager) spawnPair(orbitIndex int) error {
	p, err := m.CreatePlanet(orbitIndex)
	if err != nil {
		return err
	}
	b, err := m.CreateBall(orbitIndex)
	if err != nil {
		return err
	}
	m.log.Debug("spawned planet %d and ball %d on orbit %d", p.ID, b.ID, orbitIndex)
	m.record(state.Event{Type: state.EventSpawn, Orbit: orbitIndex, Planet: uint64(p.ID), Ball: uint64(b.ID)})
	return nil
}

// RemovePlanet removes a planet and every ball targeting its orbit.
// It reports whether the planet existed.
func (m *Manager) RemovePlanet(id scene.ID) bool {
	idx := -1
	for i, p := range m.planets {
		if p.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return false
	}

	p := m.planets[idx]
	m.scene.Remove(p.ID)
	m.planets = append(m.planets[:idx], m.planets[idx+1:]...)

	kept := m.balls[:0]
	for _, b := range m.balls {
		if b.TargetOrbitIndex == p.OrbitIndex {
			m.scene.Remove(b.ID)
			continue
		}
		kept = append(kept, b)
	}
	// Clear the tail so removed balls can be collected.
	for i := len(kept); i < len(m.balls); i++ {
		m.balls[i] = nil
	}
	m.balls = kept

	m.log.Debug("removed planet %d on orbit %d", p.ID, p.OrbitIndex)
	m.record(state.Event{Type: state.EventEvict, Orbit: p.OrbitIndex, Planet: uint64(p.ID)})
	return true
}

// UpdateOrbits advances every planet one frame along its orbit and carries
// attached balls with it.
func (m *Manager) UpdateOrbits() {
	for _, p := range m.planets {
		p.Angle += m.cfg.AngularStep * (1 + float64(p.OrbitIndex) + m.drift)
		p.obj.Position = p.Orbit.Point(p.Angle)

		for _, b := range m.balls {
			if b.IsAttached && b.TargetOrbitIndex == p.OrbitIndex {
				b.obj.Position = p.obj.Position
			}
		}
	}
}

// CheckAttraction captures free, capturable balls whose screen position is
// within CaptureRadius of an uncaptured planet on their target orbit.
// It returns the number of captures made. While a reset is pending it does nothing.
func (m *Manager) CheckAttraction(proj Projector) int {
	if m.resetting {
		return 0
	}

	captured := 0
	for _, p := range m.planets {
		if p.HasAttached {
			continue
		}
		ps := proj.ScreenPosition(p.obj.Position)

		for _, b := range m.balls {
			if b.IsAttached || b.TargetOrbitIndex != p.OrbitIndex || !b.AttractionEnabled {
				continue
			}

			bs := proj.ScreenPosition(b.obj.Position)
			if bs.Distance(ps) >= m.cfg.CaptureRadius {
				continue
			}

			p.HasAttached = true
			b.IsAttached = true
			b.obj.Position = p.obj.Position
			captured++

			m.tasks.Push(Task{
				At:     m.now + m.cfg.CaptureDelay,
				Kind:   TaskAdvance,
				Target: p.ID,
				Epoch:  m.epoch,
			})
			m.log.Info("ball %d captured by planet %d on orbit %d", b.ID, p.ID, p.OrbitIndex)
			m.record(state.Event{Type: state.EventCapture, Orbit: p.OrbitIndex, Planet: uint64(p.ID), Ball: uint64(b.ID)})
			break // A planet holds one ball.
		}
	}
	return captured
}

// SteerFree moves every uncaptured ball to pos.
func (m *Manager) SteerFree(pos r3.Vec) {
	for _, b := range m.balls {
		if !b.IsAttached {
			b.obj.Position = pos
		}
	}
}

// MoveBall places one uncaptured ball. It reports whether the ball was moved.
func (m *Manager) MoveBall(id scene.ID, pos r3.Vec) bool {
	for _, b := range m.balls {
		if b.ID == id && !b.IsAttached {
			b.obj.Position = pos
			return true
		}
	}
	return false
}

// TargetFor returns the uncaptured planet a ball is heading for, if any.
func (m *Manager) TargetFor(b *Ball) (*Planet, bool) {
	for i := len(m.planets) - 1; i >= 0; i-- {
		p := m.planets[i]
		if p.OrbitIndex == b.TargetOrbitIndex && !p.HasAttached {
			return p, true
		}
	}
	return nil, false
}

// Planets returns live planets, oldest first. Callers must not modify them.
func (m *Manager) Planets() []*Planet {
	return m.planets
}

// Balls returns live balls, oldest first. Callers must not modify them.
func (m *Manager) Balls() []*Ball {
	return m.balls
}

// AttachedCount returns captures made in the current cycle.
func (m *Manager) AttachedCount() int { return m.attachedCount }

// ActiveOrbitIndex returns the orbit the newest pair was spawned on.
func (m *Manager) ActiveOrbitIndex() int { return m.activeOrbitIndex }

// Drift returns the global angular speed bias.
func (m *Manager) Drift() float64 { return m.drift }

// Resetting reports whether a reset is pending.
func (m *Manager) Resetting() bool { return m.resetting }

// Now returns the manager's simulation clock.
func (m *Manager) Now() time.Duration { return m.now }

// PendingTasks returns the number of scheduled tasks.
func (m *Manager) PendingTasks() int { return m.tasks.Len() }
