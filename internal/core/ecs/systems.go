package ecs

// Systems is the collection of registered systems bound to a World, plus
// the scheduler that dispatches them. Duplicate Add calls run duplicate
// executions per Run; the scheduler does not de-duplicate.
type Systems struct {
	world     *World
	scheduler *Scheduler
}

// NewSystems returns an empty Systems collection over world, backed by a
// worker pool of the given size.
func NewSystems(world *World, workers int) *Systems {
	return &Systems{world: world, scheduler: NewScheduler(workers)}
}

// Add registers sys to run on every subsequent Run call.
func (s *Systems) Add(sys System) {
	s.scheduler.Add(sys)
}

// Run dispatches every registered system exactly once and, once they have
// all completed, applies every destruction queued via EntityManager during
// the run. If a system panicked, the queued destructions are still applied
// before the panic continues to propagate to Run's caller.
func (s *Systems) Run() {
	kd := newKillDrain()
	em := &EntityManager{allocMu: &s.world.allocMu, alloc: s.world.alloc, store: s.world.store, killChan: kd.ch}

	defer func() {
		for _, e := range kd.close() {
			s.world.allocMu.Lock()
			if s.world.alloc.Free(e) {
				s.world.store.FreeAllComponents(e.ID)
			}
			s.world.allocMu.Unlock()
		}
	}()

	s.scheduler.Run(s.world.store, em)
}

// RunWithBorrows starts a scoped attachment of externally owned values as
// world-scoped components, guaranteed to be released on every exit path of
// the eventual Run call, success or panic.
func (s *Systems) RunWithBorrows() *BorrowBuilder {
	return &BorrowBuilder{systems: s}
}
