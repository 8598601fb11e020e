package ecs

import (
	"reflect"
	"sync"

	"github.com/grayrock-games/ecscore/internal/core/ecs/bitset"
)

// StorageKind selects the backing storage variant for a component type at
// registration time.
type StorageKind int

const (
	// Dense stores components in a contiguous buffer, sized to the
	// highest registered entity id. Presence is governed by the
	// StoreWrap mask; Get/GetMut are checked, GetUnchecked is not.
	Dense StorageKind = iota
	// Map stores components in a sparse id -> value table that tracks its
	// own presence (self-bookkeeping).
	Map
	// Singleton returns one shared value for every id with the component
	// present; useful for marker components carrying no per-entity state.
	Singleton
	// ConstWorld exposes an externally owned, read-only value at the
	// world entity (id 0) only, for the lifetime of a single scheduler
	// run.
	ConstWorld
	// MutWorld is the mutable counterpart of ConstWorld.
	MutWorld
)

const initialMaskBits = 256

// storeWrap pairs a component's presence mask with its type-erased backing
// storage. For non-self-bookkeeping storages, mask is the sole source of
// truth for presence; for self-bookkeeping storages it is a cached hint.
type storeWrap struct {
	mask  *bitset.BitSet
	max   int
	store boxedStorage
}

// ComponentStore is the type-keyed registry of every component type's
// storage. Its topology (the set of registered types) is expected to be
// fixed before a Systems.Run loop begins; only the storages themselves are
// mutated during a run, under the scheduler's lock discipline.
type ComponentStore struct {
	mu         sync.RWMutex
	components map[reflect.Type]*storeWrap
}

// NewComponentStore returns an empty store with no registered types.
func NewComponentStore() *ComponentStore {
	return &ComponentStore{components: make(map[reflect.Type]*storeWrap)}
}

// RegisterComponent installs storage for T under kind. Registering an
// already-registered type is a silent no-op, so plugins and systems can
// each register their own dependencies without coordinating.
func RegisterComponent[T any](s *ComponentStore, kind StorageKind) {
	t := typeOf[T]()

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.components[t]; ok {
		return
	}

	var store componentStorage[T]
	switch kind {
	case Dense:
		store = newDenseStorage[T]()
	case Map:
		store = newMapStorage[T]()
	case Singleton:
		store = newSingletonStorage[T]()
	case ConstWorld:
		store = newConstWorldStorage[T]()
	case MutWorld:
		store = newMutWorldStorage[T]()
	default:
		panic("ecs: unknown storage kind")
	}

	s.components[t] = &storeWrap{
		mask:  bitset.New(initialMaskBits),
		max:   initialMaskBits,
		store: store,
	}
}

// wrapFor returns the StoreWrap for T, panicking if the type was never
// registered: accessing an unregistered component is a programmer error by
// design, not a runtime condition to recover from.
func wrapFor[T any](s *ComponentStore) *storeWrap {
	t := typeOf[T]()
	s.mu.RLock()
	w, ok := s.components[t]
	s.mu.RUnlock()
	if !ok {
		registeredComponentPanic(t.String())
	}
	return w
}

func typedStorage[T any](w *storeWrap) componentStorage[T] {
	return w.store.(componentStorage[T])
}

func (w *storeWrap) growTo(id uint32) {
	if int(id) < w.max {
		return
	}
	newMax := w.max * 2
	if int(id)+1 > newMax {
		newMax = int(id) + 1
	}
	w.max = newMax
	w.mask.Resize(newMax)
	w.store.ensureCapacity(newMax)
}

// AddComponent installs v for entity id, growing the store as needed. If a
// non-self-bookkeeping storage already holds a value at id, the old value
// is dropped (erased) before the new one is written, matching the store's
// overwrite-then-set discipline.
func AddComponent[T any](s *ComponentStore, id uint32, v T) {
	w := wrapFor[T](s)
	w.growTo(id)
	store := typedStorage[T](w)

	if !store.selfBookkeeps() && w.mask.Get(int(id)) {
		store.freeID(id)
	}
	store.add(id, v)
	w.mask.Set(int(id), true)
}

// RemoveComponent removes and returns the component held for id, if any.
func RemoveComponent[T any](s *ComponentStore, id uint32) (T, bool) {
	w := wrapFor[T](s)
	store := typedStorage[T](w)

	if !store.selfBookkeeps() && (int(id) >= w.max || !w.mask.Get(int(id))) {
		var zero T
		return zero, false
	}
	if int(id) < w.max {
		w.mask.Set(int(id), false)
	}
	return store.remove(id)
}

// GetComponent returns a read-only view of the component held for id.
func GetComponent[T any](s *ComponentStore, id uint32) (*T, bool) {
	w := wrapFor[T](s)
	store := typedStorage[T](w)
	if store.selfBookkeeps() {
		return store.get(id)
	}
	if int(id) >= w.max || !w.mask.Get(int(id)) {
		return nil, false
	}
	return store.get(id)
}

// GetComponentMut returns a mutable view of the component held for id.
func GetComponentMut[T any](s *ComponentStore, id uint32) (*T, bool) {
	w := wrapFor[T](s)
	store := typedStorage[T](w)
	if store.selfBookkeeps() {
		return store.getMut(id)
	}
	if int(id) >= w.max || !w.mask.Get(int(id)) {
		return nil, false
	}
	return store.getMut(id)
}

// MaskFor returns the presence mask for component type T.
func MaskFor[T any](s *ComponentStore) EntityMask {
	w := wrapFor[T](s)
	return newEntityMask(w.mask, w.max)
}

// FreeAllComponents clears every registered component held for id, invoked
// once an entity has actually been freed by the allocator.
func (s *ComponentStore) FreeAllComponents(id uint32) {
	s.mu.RLock()
	wraps := make([]*storeWrap, 0, len(s.components))
	for _, w := range s.components {
		wraps = append(wraps, w)
	}
	s.mu.RUnlock()

	for _, w := range wraps {
		if int(id) < w.max && w.mask.Get(int(id)) {
			w.store.freeID(id)
			w.mask.Set(int(id), false)
		}
	}
}
