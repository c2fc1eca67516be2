package ecs

import "fmt"

// Entity is a generational handle: the low 32 bits are the slot id, the
// high 32 bits the generation of that slot.
type Entity uint64

type entityID uint32
type generation uint32

const entityIDBits = 32

func makeEntity(id entityID, gen generation) Entity {
	return Entity(uint64(gen)<<entityIDBits | uint64(id))
}

func (e Entity) id() entityID {
	return entityID(uint32(e))
}

func (e Entity) generation() generation {
	return generation(uint32(uint64(e) >> entityIDBits))
}

// String formats e as slot.generation.
func (e Entity) String() string {
	return fmt.Sprintf("%d.%d", uint32(e.id()), uint32(e.generation()))
}

// Valid reports whether e names a slot. It says nothing about liveness.
func (e Entity) Valid() bool {
	return e.id() > 0
}
