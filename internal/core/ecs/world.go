package ecs

import "sync"

// World owns the entity allocator and component store for one simulation.
// A World and its Systems are created once at application start and
// destroyed together at shutdown; registered component types accumulate
// monotonically for the lifetime of the World.
type World struct {
	allocMu sync.RWMutex
	alloc   *EntityAllocator
	store   *ComponentStore
}

// NewWorld returns an empty World with the reserved world entity already
// allocated.
func NewWorld() *World {
	return &World{
		alloc: NewEntityAllocator(),
		store: NewComponentStore(),
	}
}

// Store returns the component store backing this world.
func (w *World) Store() *ComponentStore {
	return w.store
}

// NewEntity allocates and returns a fresh entity.
func (w *World) NewEntity() Entity {
	w.allocMu.Lock()
	defer w.allocMu.Unlock()
	return w.alloc.Alloc()
}

// IsValid reports whether e refers to a currently live entity.
func (w *World) IsValid(e Entity) bool {
	w.allocMu.RLock()
	defer w.allocMu.RUnlock()
	return w.alloc.IsValid(e)
}

// RemoveEntity frees e immediately and clears every component it held. It
// is meant for use outside a Systems.Run call; systems should instead call
// EntityManager.RemoveEntity, which defers destruction until the run
// completes.
func (w *World) RemoveEntity(e Entity) bool {
	w.allocMu.Lock()
	defer w.allocMu.Unlock()
	if !w.alloc.Free(e) {
		return false
	}
	w.store.FreeAllComponents(e.ID)
	return true
}

// IterAll calls fn for every live entity, stopping early if fn returns
// false.
func (w *World) IterAll(fn func(Entity) bool) {
	w.allocMu.RLock()
	defer w.allocMu.RUnlock()
	w.alloc.LiveBits().IterSetBitsUntil(int(w.alloc.MaxEntities()), func(i int) bool {
		return fn(Entity{ID: uint32(i), Generation: w.alloc.generations[i]})
	})
}

// IterMask calls fn for every live entity present in mask, stopping early
// if fn returns false.
func (w *World) IterMask(mask EntityMask, fn func(Entity) bool) {
	w.allocMu.RLock()
	defer w.allocMu.RUnlock()
	mask.IterUntil(func(id uint32) bool {
		return fn(Entity{ID: id, Generation: w.alloc.generations[id]})
	})
}

// With runs fn as a one-off closure against the world's live entity manager,
// outside the scheduler. It is meant for out-of-band bulk edits that do not
// need access-set exclusivity. Destruction requests made through the
// manager are applied once fn returns.
func (w *World) With(fn func(em *EntityManager)) {
	kd := newKillDrain()
	em := &EntityManager{allocMu: &w.allocMu, alloc: w.alloc, store: w.store, killChan: kd.ch}

	defer func() {
		for _, e := range kd.close() {
			w.allocMu.Lock()
			if w.alloc.Free(e) {
				w.store.FreeAllComponents(e.ID)
			}
			w.allocMu.Unlock()
		}
	}()

	fn(em)
}
