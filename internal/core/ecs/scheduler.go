package ecs

import (
	"reflect"
	"time"

	"golang.org/x/sync/semaphore"
)

// defaultPollInterval bounds how long the dispatch loop waits on a
// completion before re-checking for captured panics. It is not a
// correctness boundary, only a bound on how promptly a panic surfaces.
const defaultPollInterval = time.Second

type schedEntry struct {
	lastCycle uint64
	access    []CType
	system    System
}

// Scheduler is a dependency-aware dispatcher: it inspects each system's
// declared access set and runs systems on a fixed-size worker pool, never
// letting a writer of some component type run concurrently with any other
// accessor of that type, while permitting arbitrarily many concurrent
// readers. Dispatch order among eligible systems is unspecified.
type Scheduler struct {
	entries      []*schedEntry
	sem          *semaphore.Weighted
	cycle        uint64
	pollInterval time.Duration
}

// NewScheduler returns a Scheduler backed by a worker pool of the given
// size.
func NewScheduler(workers int) *Scheduler {
	if workers < 1 {
		workers = 1
	}
	return &Scheduler{
		sem:          semaphore.NewWeighted(int64(workers)),
		pollInterval: defaultPollInterval,
	}
}

// Add registers sys to run once per Run call. Adding the same system twice
// runs it twice; the scheduler does not de-duplicate.
func (s *Scheduler) Add(sys System) {
	s.entries = append(s.entries, &schedEntry{access: sys.Access(), system: sys})
}

type doneMsg struct {
	idx      int
	panicked bool
	value    any
}

// Run executes every registered system exactly once, respecting each
// system's declared access set. It blocks until every system has completed
// or, on panic, until every already-dispatched system has drained. If any
// system panicked, Run panics with a *SystemPanic identifying the first one
// observed, after every in-flight system has finished; no partially-held
// locks remain in either case.
func (s *Scheduler) Run(store *ComponentStore, em *EntityManager) {
	n := len(s.entries)
	if n == 0 {
		return
	}

	s.cycle++
	cur := s.cycle

	lockTable := make(map[reflect.Type]int, n)
	done := make(chan doneMsg, n)

	remaining := n
	inFlight := 0
	scanFrom := 0

	var havePanic bool
	var firstPanic any
	var firstPanicIdx int

	for (remaining > 0 && !havePanic) || inFlight > 0 {
		if !havePanic {
			for s.sem.TryAcquire(1) {
				idx, ok := s.findEligible(lockTable, cur, &scanFrom)
				if !ok {
					s.sem.Release(1)
					break
				}
				e := s.entries[idx]
				acquireLocks(lockTable, e.access)
				e.lastCycle = cur
				remaining--
				inFlight++
				go s.runEntry(idx, e, store, em, done)
			}
		}

		if (remaining == 0 || havePanic) && inFlight == 0 {
			break
		}

		select {
		case msg := <-done:
			inFlight--
			releaseLocks(lockTable, s.entries[msg.idx].access)
			if msg.panicked && !havePanic {
				havePanic = true
				firstPanic = msg.value
				firstPanicIdx = msg.idx
			}
		case <-time.After(s.pollInterval):
		}
	}

	if havePanic {
		panic(&SystemPanic{SystemIndex: firstPanicIdx, Value: firstPanic})
	}
}

func (s *Scheduler) findEligible(lockTable map[reflect.Type]int, cur uint64, scanFrom *int) (int, bool) {
	n := len(s.entries)
	for i := 0; i < n; i++ {
		idx := (*scanFrom + i) % n
		e := s.entries[idx]
		if e.lastCycle == cur {
			continue
		}
		if eligible(lockTable, e.access) {
			*scanFrom = idx + 1
			return idx, true
		}
	}
	return 0, false
}

func eligible(lockTable map[reflect.Type]int, access []CType) bool {
	for _, c := range access {
		held, locked := lockTable[c.Type]
		switch c.Kind {
		case AccessRead:
			if locked && held < 0 {
				return false
			}
		case AccessWrite:
			if locked {
				return false
			}
		}
	}
	return true
}

func acquireLocks(lockTable map[reflect.Type]int, access []CType) {
	for _, c := range access {
		switch c.Kind {
		case AccessRead:
			lockTable[c.Type]++
		case AccessWrite:
			lockTable[c.Type] = -1
		}
	}
}

func releaseLocks(lockTable map[reflect.Type]int, access []CType) {
	for _, c := range access {
		switch c.Kind {
		case AccessRead:
			lockTable[c.Type]--
			if lockTable[c.Type] <= 0 {
				delete(lockTable, c.Type)
			}
		case AccessWrite:
			delete(lockTable, c.Type)
		}
	}
}

func (s *Scheduler) runEntry(idx int, e *schedEntry, store *ComponentStore, em *EntityManager, done chan<- doneMsg) {
	defer s.sem.Release(1)
	defer func() {
		if r := recover(); r != nil {
			done <- doneMsg{idx: idx, panicked: true, value: r}
		}
	}()
	e.system.Run(&RunContext{store: store, entities: em})
	done <- doneMsg{idx: idx}
}
