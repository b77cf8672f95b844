package ecs

// entityStore tracks slot generations and recycled ids.
type entityStore struct {
	gens  []generation
	alive []bool
	free  []entityID
}

func (s *entityStore) create() Entity {
	var id entityID
	if len(s.free) > 0 {
		id = s.free[len(s.free)-1]
		s.free = s.free[:len(s.free)-1]
	} else {
		s.gens = append(s.gens, 0)
		s.alive = append(s.alive, false)
		id = entityID(len(s.gens))
	}
	s.alive[id-1] = true
	return makeEntity(id, s.gens[id-1])
}

func (s *entityStore) destroy(e Entity) bool {
	if !s.isAlive(e) {
		return false
	}
	idx := e.id() - 1
	s.gens[idx]++
	s.alive[idx] = false
	s.free = append(s.free, e.id())
	return true
}

func (s *entityStore) isAlive(e Entity) bool {
	id := e.id()
	if id == 0 || int(id) > len(s.gens) {
		return false
	}
	return s.alive[id-1] && s.gens[id-1] == e.generation()
}

func (s *entityStore) all() []Entity {
	out := make([]Entity, 0, len(s.gens))
	for i, ok := range s.alive {
		if ok {
			out = append(out, makeEntity(entityID(i+1), s.gens[i]))
		}
	}
	return out
}

// store is a sparse set holding one component kind. Values are stored as
// `any` wrapping a *T; the typed accessors in generics.go do the casting.
type store struct {
	sparse []int // entity slot -> dense index, -1 when absent
	dense  []Entity
	values []any
}

func (s *store) indexOf(e Entity) int {
	id := int(e.id())
	if s == nil || id <= 0 || id > len(s.sparse) {
		return -1
	}
	idx := s.sparse[id-1]
	if idx < 0 || idx >= len(s.dense) || s.dense[idx] != e {
		return -1
	}
	return idx
}

func (s *store) has(e Entity) bool {
	return s.indexOf(e) >= 0
}

func (s *store) get(e Entity) any {
	idx := s.indexOf(e)
	if idx < 0 {
		return nil
	}
	return s.values[idx]
}

func (s *store) set(e Entity, v any) {
	id := int(e.id())
	if s == nil || id <= 0 {
		return
	}
	for len(s.sparse) < id {
		s.sparse = append(s.sparse, -1)
	}
	if idx := s.indexOf(e); idx >= 0 {
		s.values[idx] = v
		return
	}
	s.dense = append(s.dense, e)
	s.values = append(s.values, v)
	s.sparse[id-1] = len(s.dense) - 1
}

func (s *store) remove(e Entity) bool {
	idx := s.indexOf(e)
	if idx < 0 {
		return false
	}
	last := len(s.dense) - 1
	lastEnt := s.dense[last]

	s.dense[idx] = lastEnt
	s.values[idx] = s.values[last]
	s.sparse[lastEnt.id()-1] = idx

	s.dense = s.dense[:last]
	s.values = s.values[:last]
	s.sparse[e.id()-1] = -1
	return true
}

func (s *store) entities() []Entity {
	if s == nil {
		return nil
	}
	return s.dense
}
