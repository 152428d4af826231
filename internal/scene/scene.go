// Package scene is the retained container of drawable objects.
//
// Objects are addressed by a stable ID that is never reused, so holders of an
// ID can always ask whether the object still exists.
package scene

import (
	"fmt"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/litescript/ls-orbits/internal/geom"
)

// ID identifies an object for the lifetime of a Scene.
type ID uint64

// Kind is the visual class of an object.
type Kind int

const (
	KindPlanet Kind = iota // Wireframe capture marker
	KindBall               // Solid sphere that follows the pointer
)

func (k Kind) String() string {
	switch k {
	case KindPlanet:
		return "planet"
	case KindBall:
		return "ball"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Object is a positioned visual.
type Object struct {
	ID       ID
	Kind     Kind
	Position r3.Vec
	Radius   float64
}

// Scene holds objects in insertion order plus an optional backdrop.
type Scene struct {
	objects map[ID]*Object
	order   []ID
	nextID  ID

	Background *Backdrop
}

// Renderer draws a scene as seen from a camera.
type Renderer interface {
	Render(s *Scene, cam *geom.Camera)
}

// New creates an empty scene.
func New() *Scene {
	return &Scene{
		objects: make(map[ID]*Object),
	}
}

// Add creates an object of the given kind and inserts it.
func (s *Scene) Add(kind Kind, radius float64) *Object {
	s.nextID++
	obj := &Object{
		ID:     s.nextID,
		Kind:   kind,
		Radius: radius,
	}
	s.objects[obj.ID] = obj
	s.order = append(s.order, obj.ID)
	return obj
}

// Remove deletes an object. It reports whether the object was present.
func (s *Scene) Remove(id ID) bool {
	if _, ok := s.objects[id]; !ok {
		return false
	}
	delete(s.objects, id)
	for i, oid := range s.order {
		if oid == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return true
}

// Objects returns live objects in insertion order.
func (s *Scene) Objects() []*Object {
	out := make([]*Object, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.objects[id])
	}
	return out
}

// Len returns the number of live objects.
func (s *Scene) Len() int {
	return len(s.order)
}

// Clear removes every object. IDs keep increasing afterwards.
func (s *Scene) Clear() {
	s.objects = make(map[ID]*Object)
	s.order = nil
}
