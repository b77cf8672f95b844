package ecs

import "fmt"

// Entity is a packed handle: the low 32 bits index a slot, the high 32 bits
// carry that slot's generation. Destroying a slot bumps its generation, so a
// stale handle never resolves again. The zero Entity means "no entity".
type Entity uint64

type entityID uint32
type generation uint32

const (
	slotMask = 0xffffffff
	genShift = 32
)

func makeEntity(id entityID, gen generation) Entity {
	return Entity(uint64(gen)<<genShift | uint64(id))
}

func (e Entity) id() entityID {
	return entityID(e & slotMask)
}

func (e Entity) generation() generation {
	return generation(e >> genShift)
}

// Valid reports whether the handle is non-zero; liveness is the world's call.
func (e Entity) Valid() bool {
	return e != 0
}

func (e Entity) String() string {
	return fmt.Sprintf("%d.%d", e.id(), e.generation())
}
