package ecs

// Read is a shared-access capability token over component type T. It is
// meant to be constructed once per system invocation, inside System.Run,
// after the scheduler has already granted the corresponding lock; nothing
// else enforces the exclusivity the type implies.
type Read[T any] struct {
	wrap  *storeWrap
	store componentStorage[T]
}

// NewRead builds a Read[T] accessor over store. Callers are system bodies
// running under a scheduler that has already granted Read(T) for this
// invocation.
func NewRead[T any](store *ComponentStore) Read[T] {
	w := wrapFor[T](store)
	return Read[T]{wrap: w, store: typedStorage[T](w)}
}

// Get returns the component held for e.ID, if present.
func (r Read[T]) Get(e Entity) (*T, bool) {
	if r.store.selfBookkeeps() {
		return r.store.get(e.ID)
	}
	if int(e.ID) >= r.wrap.max || !r.wrap.mask.Get(int(e.ID)) {
		return nil, false
	}
	return r.store.get(e.ID)
}

// Mask snapshots the component's current presence bitset.
func (r Read[T]) Mask() EntityMask {
	return newEntityMask(r.wrap.mask, r.wrap.max)
}

func (r Read[T]) getUnchecked(id uint32) *T {
	return r.store.getUnchecked(id)
}

// Write is an exclusive-access capability token over component type T. It
// subsumes everything Read[T] can do, plus mutation.
type Write[T any] struct {
	wrap  *storeWrap
	store componentStorage[T]
}

// NewWrite builds a Write[T] accessor over store. Callers are system bodies
// running under a scheduler that has already granted Write(T) for this
// invocation.
func NewWrite[T any](store *ComponentStore) Write[T] {
	w := wrapFor[T](store)
	return Write[T]{wrap: w, store: typedStorage[T](w)}
}

// Read downgrades w to a Read[T] token, for passing to helpers that should
// only observe the component. This never touches the scheduler's lock
// table: write already subsumes read.
func (w Write[T]) Read() Read[T] {
	return Read[T]{wrap: w.wrap, store: w.store}
}

// Get returns a read-only view of the component held for e.ID, if present.
func (w Write[T]) Get(e Entity) (*T, bool) {
	return w.Read().Get(e)
}

// GetMut returns a mutable view of the component held for e.ID, if present.
func (w Write[T]) GetMut(e Entity) (*T, bool) {
	if w.store.selfBookkeeps() {
		return w.store.getMut(e.ID)
	}
	if int(e.ID) >= w.wrap.max || !w.wrap.mask.Get(int(e.ID)) {
		return nil, false
	}
	return w.store.getMut(e.ID)
}

// GetOrInsert returns the existing component for e.ID, or inserts the value
// produced by ctor and returns that.
func (w Write[T]) GetOrInsert(e Entity, ctor func() T) *T {
	if v, ok := w.GetMut(e); ok {
		return v
	}
	w.Add(e, ctor())
	v, _ := w.GetMut(e)
	return v
}

// Add installs v for e.ID, overwriting any existing value.
func (w Write[T]) Add(e Entity, v T) {
	w.wrap.growTo(e.ID)
	if !w.store.selfBookkeeps() && w.wrap.mask.Get(int(e.ID)) {
		w.store.freeID(e.ID)
	}
	w.store.add(e.ID, v)
	w.wrap.mask.Set(int(e.ID), true)
}

// Remove removes and returns the component held for e.ID, if any.
func (w Write[T]) Remove(e Entity) (T, bool) {
	if !w.store.selfBookkeeps() && (int(e.ID) >= w.wrap.max || !w.wrap.mask.Get(int(e.ID))) {
		var zero T
		return zero, false
	}
	if int(e.ID) < w.wrap.max {
		w.wrap.mask.Set(int(e.ID), false)
	}
	return w.store.remove(e.ID)
}

// Mask snapshots the component's current presence bitset.
func (w Write[T]) Mask() EntityMask {
	return newEntityMask(w.wrap.mask, w.wrap.max)
}

func (w Write[T]) getUnchecked(id uint32) *T {
	return w.store.getUnchecked(id)
}

func (w Write[T]) getUncheckedMut(id uint32) *T {
	return w.store.getUncheckedMut(id)
}
