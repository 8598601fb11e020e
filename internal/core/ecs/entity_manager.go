package ecs

import "sync"

// EntityManager is the handle systems receive for the duration of a single
// scheduler run. Entity creation takes the allocator's writer lock
// immediately; destruction is deferred onto killChan and only applied once
// the run completes, so no system ever observes a partially destroyed
// entity mid-run.
type EntityManager struct {
	allocMu  *sync.RWMutex
	alloc    *EntityAllocator
	store    *ComponentStore
	killChan chan<- Entity
}

// IsValid reports whether e refers to a currently live entity.
func (em *EntityManager) IsValid(e Entity) bool {
	em.allocMu.RLock()
	defer em.allocMu.RUnlock()
	return em.alloc.IsValid(e)
}

// NewEntity allocates and returns a fresh entity immediately; creation is
// not deferred.
func (em *EntityManager) NewEntity() Entity {
	em.allocMu.Lock()
	defer em.allocMu.Unlock()
	return em.alloc.Alloc()
}

// RemoveEntity queues e for destruction once the current run finishes.
func (em *EntityManager) RemoveEntity(e Entity) {
	em.killChan <- e
}

// IterAll calls fn for every live entity, in ascending id order, stopping
// early if fn returns false.
func (em *EntityManager) IterAll(fn func(Entity) bool) {
	em.allocMu.RLock()
	defer em.allocMu.RUnlock()
	bits := em.alloc.LiveBits()
	bits.IterSetBitsUntil(int(em.alloc.MaxEntities()), func(i int) bool {
		return fn(Entity{ID: uint32(i), Generation: em.alloc.generations[i]})
	})
}

// IterMask calls fn for every live entity present in mask, in ascending id
// order, stopping early if fn returns false.
func (em *EntityManager) IterMask(mask EntityMask, fn func(Entity) bool) {
	em.allocMu.RLock()
	defer em.allocMu.RUnlock()
	mask.IterUntil(func(id uint32) bool {
		return fn(Entity{ID: id, Generation: em.alloc.generations[id]})
	})
}

// Store returns the component store backing this run, for constructing
// Read/Write accessors.
func (em *EntityManager) Store() *ComponentStore {
	return em.store
}
