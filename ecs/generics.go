package ecs

import "github.com/milk9111/arenashooter/ecs/component"

// Add attaches v to the entity under the given kind, replacing any previous
// value of that kind.
func Add[T any](w *World, e Entity, k component.ComponentKind[T], v *T) error {
	if w == nil || !k.Valid() {
		return component.ErrInvalidKind
	}
	if v == nil {
		return component.ErrNilComponent
	}
	if !w.entities.isAlive(e) {
		return component.ErrEntityNotAlive
	}
	w.storeFor(k.ID(), true).set(e, v)
	return nil
}

// Get returns the component of the given kind, or (nil, false).
func Get[T any](w *World, e Entity, k component.ComponentKind[T]) (*T, bool) {
	if w == nil || !k.Valid() || !w.entities.isAlive(e) {
		return nil, false
	}
	v := w.storeFor(k.ID(), false).get(e)
	if v == nil {
		return nil, false
	}
	t, ok := v.(*T)
	if !ok {
		return nil, false
	}
	return t, true
}

// Has reports whether the entity carries the component kind.
func Has[T any](w *World, e Entity, k component.ComponentKind[T]) bool {
	_, ok := Get(w, e, k)
	return ok
}

// Remove detaches the component kind from the entity.
func Remove[T any](w *World, e Entity, k component.ComponentKind[T]) bool {
	if w == nil || !k.Valid() || !w.entities.isAlive(e) {
		return false
	}
	return w.storeFor(k.ID(), false).remove(e)
}

// ForEach visits every live entity carrying the kind. The entity list is
// snapshotted first, so callbacks may add or remove components (structural
// removal of the visited entity itself should still be deferred by callers
// that care about sweep ordering).
func ForEach[T any](w *World, k component.ComponentKind[T], fn func(Entity, *T)) {
	if w == nil || fn == nil {
		return
	}
	s := w.storeFor(k.ID(), false)
	if s == nil {
		return
	}
	ents := append([]Entity(nil), s.entities()...)
	for _, e := range ents {
		if t, ok := Get(w, e, k); ok {
			fn(e, t)
		}
	}
}

// ForEach2 visits entities carrying both kinds, in the first kind's order.
func ForEach2[A, B any](w *World, ka component.ComponentKind[A], kb component.ComponentKind[B], fn func(Entity, *A, *B)) {
	ForEach(w, ka, func(e Entity, a *A) {
		if b, ok := Get(w, e, kb); ok {
			fn(e, a, b)
		}
	})
}

// ForEach3 visits entities carrying all three kinds, in the first kind's order.
func ForEach3[A, B, C any](w *World, ka component.ComponentKind[A], kb component.ComponentKind[B], kc component.ComponentKind[C], fn func(Entity, *A, *B, *C)) {
	ForEach2(w, ka, kb, func(e Entity, a *A, b *B) {
		if c, ok := Get(w, e, kc); ok {
			fn(e, a, b, c)
		}
	})
}
