// Package state records gameplay events for display and export.
package state

import (
	"sync"
	"time"
)

// EventType names a gameplay transition.
type EventType string

const (
	EventSpawn    EventType = "SPAWN"
	EventCapture  EventType = "CAPTURE"
	EventAdvance  EventType = "ADVANCE"
	EventCycle    EventType = "CYCLE"
	EventEvict    EventType = "EVICT"
	EventReset    EventType = "RESET"
	EventDiscard  EventType = "DISCARD"
	EventSelected EventType = "SELECT"
)

// Event is one recorded transition. At is simulation time, not wall time.
type Event struct {
	Type   EventType     `json:"type"`
	At     time.Duration `json:"at_ns"`
	Orbit  int           `json:"orbit"`
	Planet uint64        `json:"planet,omitempty"`
	Ball   uint64        `json:"ball,omitempty"`
	Drift  float64       `json:"drift,omitempty"`
	Detail string        `json:"detail,omitempty"`
}

// Journal is a bounded ring buffer of events, safe for concurrent use.
type Journal struct {
	mu sync.RWMutex

	events  []Event
	max     int
	writeAt int
	total   int
	totals  map[EventType]int // Per type, including dropped events
}

// DefaultCapacity is used when NewJournal is given a non-positive size.
const DefaultCapacity = 50

// NewJournal creates a journal holding the last capacity events.
func NewJournal(capacity int) *Journal {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Journal{
		events: make([]Event, 0, capacity),
		max:    capacity,
		totals: make(map[EventType]int),
	}
}

// Record appends an event, overwriting the oldest when full.
func (j *Journal) Record(e Event) {
	j.mu.Lock()
	defer j.mu.Unlock()

	j.total++
	j.totals[e.Type]++
	if len(j.events) < j.max {
		j.events = append(j.events, e)
		return
	}
	j.events[j.writeAt] = e
	j.writeAt = (j.writeAt + 1) % j.max
}

// Events returns retained events, oldest first.
func (j *Journal) Events() []Event {
	j.mu.RLock()
	defer j.mu.RUnlock()
	return j.ordered()
}

func (j *Journal) ordered() []Event {
	if len(j.events) == 0 {
		return nil
	}

	if len(j.events) < j.max {
		result := make([]Event, len(j.events))
		copy(result, j.events)
		return result
	}

	result := make([]Event, j.max)
	for i := 0; i < j.max; i++ {
		result[i] = j.events[(j.writeAt+i)%j.max]
	}
	return result
}

// Recent returns the last n events, oldest first.
func (j *Journal) Recent(n int) []Event {
	j.mu.RLock()
	defer j.mu.RUnlock()

	if n <= 0 {
		return nil
	}
	all := j.ordered()
	if len(all) <= n {
		return all
	}
	return all[len(all)-n:]
}

// Total returns how many events were ever recorded, including dropped ones.
func (j *Journal) Total() int {
	j.mu.RLock()
	defer j.mu.RUnlock()
	return j.total
}

// Count returns how many retained events have the given type.
func (j *Journal) Count(t EventType) int {
	j.mu.RLock()
	defer j.mu.RUnlock()

	n := 0
	for _, e := range j.events {
		if e.Type == t {
			n++
		}
	}
	return n
}

// TotalOf returns how many events of the given type were ever recorded.
func (j *Journal) TotalOf(t EventType) int {
	j.mu.RLock()
	defer j.mu.RUnlock()
	return j.totals[t]
}
