package ecs

import "github.com/milk9111/arenashooter/ecs/component"

// World owns entities, component stores, the event queue, and the
// simulation clock. All access is single-threaded; one call to Advance plus
// one pass over the systems is one tick.
type World struct {
	entities entityStore
	stores   map[component.ComponentID]*store
	events   EventQueue
	clock    float64
}

func NewWorld() *World {
	return &World{stores: map[component.ComponentID]*store{}}
}

// CreateEntity allocates a new entity handle.
func CreateEntity(w *World) Entity {
	if w == nil {
		return 0
	}
	return w.entities.create()
}

// DestroyEntity removes the entity and all of its components. Returns false
// for stale or unknown handles.
func DestroyEntity(w *World, e Entity) bool {
	if w == nil || !w.entities.isAlive(e) {
		return false
	}
	for _, s := range w.stores {
		s.remove(e)
	}
	return w.entities.destroy(e)
}

// IsAlive reports whether the handle still refers to a live entity.
func IsAlive(w *World, e Entity) bool {
	return w != nil && w.entities.isAlive(e)
}

// Entities returns all live entities.
func Entities(w *World) []Entity {
	if w == nil {
		return nil
	}
	return w.entities.all()
}

// Advance moves the simulation clock forward by dt seconds.
func (w *World) Advance(dt float64) {
	if w == nil || dt < 0 {
		return
	}
	w.clock += dt
}

// Now returns the accumulated simulation time in seconds. Timers compare
// against this clock, never against the wall clock.
func (w *World) Now() float64 {
	if w == nil {
		return 0
	}
	return w.clock
}

// Events returns the world event queue.
func (w *World) Events() *EventQueue {
	if w == nil {
		return nil
	}
	return &w.events
}

func (w *World) storeFor(id component.ComponentID, create bool) *store {
	if w == nil {
		return nil
	}
	s, ok := w.stores[id]
	if !ok && create {
		s = &store{}
		w.stores[id] = s
	}
	return s
}

// Query returns entities that carry every listed component kind, in the
// dense order of the first kind's store. That order is the roster order
// combat resolution relies on.
func (w *World) Query(ids ...component.ComponentID) []Entity {
	if w == nil || len(ids) == 0 {
		return nil
	}
	base := w.storeFor(ids[0], false)
	if base == nil {
		return nil
	}
	out := make([]Entity, 0, len(base.dense))
outer:
	for _, e := range base.entities() {
		if !w.entities.isAlive(e) {
			continue
		}
		for _, id := range ids[1:] {
			s := w.storeFor(id, false)
			if s == nil || !s.has(e) {
				continue outer
			}
		}
		out = append(out, e)
	}
	return out
}

// First returns the first live entity carrying the component kind.
func (w *World) First(id component.ComponentID) (Entity, bool) {
	if w == nil {
		return 0, false
	}
	s := w.storeFor(id, false)
	if s == nil {
		return 0, false
	}
	for _, e := range s.entities() {
		if w.entities.isAlive(e) {
			return e, true
		}
	}
	return 0, false
}
