package ecs

import "github.com/grayrock-games/ecscore/internal/core/ecs/bitset"

// Entity is a generational reference to a logical "thing" in the world: an
// index into the entity table plus a generation counter that invalidates
// references once the slot has been recycled.
type Entity struct {
	ID         uint32
	Generation uint32
}

// WorldEntity is the reserved entity id 0, used as the attachment point for
// scoped external borrows (see BorrowBuilder). It is allocated up front so it
// can never be handed out by EntityAllocator.Alloc.
var WorldEntity = Entity{ID: 0, Generation: 0}

// InvalidEntity never matches a live entity; EntityAllocator.IsValid always
// reports false for it.
var InvalidEntity = Entity{ID: 0, Generation: ^uint32(0)}

// IsInvalid reports whether e is the sentinel InvalidEntity value.
func (e Entity) IsInvalid() bool {
	return e == InvalidEntity
}

const initialEntityCapacity = 512

// EntityAllocator hands out generational entity ids. Freed ids are recycled;
// each reuse bumps the slot's generation so stale Entity values held by
// callers stop validating.
type EntityAllocator struct {
	entities    *bitset.BitSet
	generations []uint32
	maxEntities uint32
	nextID      uint32
}

// NewEntityAllocator returns an allocator with entity 0 already reserved for
// WorldEntity.
func NewEntityAllocator() *EntityAllocator {
	a := &EntityAllocator{
		entities:    bitset.New(initialEntityCapacity),
		generations: make([]uint32, initialEntityCapacity),
		maxEntities: initialEntityCapacity,
		nextID:      0,
	}
	a.entities.Set(0, true)
	return a
}

// IsValid reports whether e refers to a currently live entity at its
// recorded generation.
func (a *EntityAllocator) IsValid(e Entity) bool {
	if e.ID >= a.maxEntities || !a.entities.Get(int(e.ID)) {
		return false
	}
	return a.generations[e.ID] == e.Generation
}

// Alloc reserves the next free id, growing the backing tables if the table
// is full, and returns the new Entity at its current generation.
func (a *EntityAllocator) Alloc() Entity {
	id := a.nextID
	for id < a.maxEntities && a.entities.Get(int(id)) {
		id++
	}
	if id >= a.maxEntities {
		a.grow()
	}

	a.entities.Set(int(id), true)
	a.generations[id]++
	a.nextID = id + 1
	return Entity{ID: id, Generation: a.generations[id]}
}

// grow quadruples the allocator's capacity, preserving every existing bit
// and generation counter.
func (a *EntityAllocator) grow() {
	a.maxEntities *= 4
	a.entities.Resize(int(a.maxEntities))
	generations := make([]uint32, a.maxEntities)
	copy(generations, a.generations)
	a.generations = generations
}

// Free releases e back to the pool. It reports false if e is not currently
// valid, in which case no state changes. Freeing rewinds the allocation
// cursor so the freed id is reused promptly rather than left as a permanent
// hole.
func (a *EntityAllocator) Free(e Entity) bool {
	if !a.IsValid(e) {
		return false
	}
	a.entities.Set(int(e.ID), false)
	if e.ID < a.nextID {
		a.nextID = e.ID
	}
	return true
}

// MaxEntities reports the current capacity of the allocator's backing
// tables.
func (a *EntityAllocator) MaxEntities() uint32 {
	return a.maxEntities
}

// GenerationOf returns the current generation recorded for id, regardless of
// whether id is presently live.
func (a *EntityAllocator) GenerationOf(id uint32) uint32 {
	if id >= uint32(len(a.generations)) {
		return 0
	}
	return a.generations[id]
}

// LiveBits returns the allocator's underlying liveness bitset. Callers must
// not mutate it directly.
func (a *EntityAllocator) LiveBits() *bitset.BitSet {
	return a.entities
}
