package ecs

// BorrowBuilder accumulates scoped external attachments before a single
// Systems.Run call, then guarantees every one of them is released again
// regardless of how that call exits.
type BorrowBuilder struct {
	systems *Systems
	release []func()
}

// BorrowConst attaches v as a read-only, world-scoped component of type T
// for the duration of the eventual Run call. T must have been registered
// with ConstWorld storage.
func BorrowConst[T any](b *BorrowBuilder, v *T) *BorrowBuilder {
	w := wrapFor[T](b.systems.world.store)
	cws, ok := w.store.(*constWorldStorage[T])
	if !ok {
		panic("ecs: BorrowConst target was not registered with ConstWorld storage")
	}
	cws.set(v)
	w.mask.Set(0, true)
	b.release = append(b.release, func() {
		cws.clear()
		w.mask.Set(0, false)
	})
	return b
}

// BorrowMut attaches v as a mutable, world-scoped component of type T for
// the duration of the eventual Run call. T must have been registered with
// MutWorld storage.
func BorrowMut[T any](b *BorrowBuilder, v *T) *BorrowBuilder {
	w := wrapFor[T](b.systems.world.store)
	mws, ok := w.store.(*mutWorldStorage[T])
	if !ok {
		panic("ecs: BorrowMut target was not registered with MutWorld storage")
	}
	mws.set(v)
	w.mask.Set(0, true)
	b.release = append(b.release, func() {
		mws.clear()
		w.mask.Set(0, false)
	})
	return b
}

// Run executes the underlying Systems.Run call, then releases every borrow
// installed on b, in reverse order of attachment, whether Run completed
// normally or panicked.
func (b *BorrowBuilder) Run() {
	defer func() {
		for i := len(b.release) - 1; i >= 0; i-- {
			b.release[i]()
		}
	}()
	b.systems.Run()
}
