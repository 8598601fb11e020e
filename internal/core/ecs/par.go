package ecs

import (
	"sync"
	"sync/atomic"
)

const defaultParWorkers = 4

// ParGroup2 models a data-parallel iteration over the intersection of two
// accessors' masks, fetching each matching entity's pair of components
// through the same unchecked path the accessors use internally. It mirrors
// splitting a dense id range across a fixed number of goroutines rather
// than one goroutine per entity.
type ParGroup2[A, B any] struct {
	em     *EntityManager
	mask   EntityMask
	fetchA func(id uint32) *A
	fetchB func(id uint32) *B
}

// NewParGroup2 builds a ParGroup2 over the intersection of w's and r's
// masks.
func NewParGroup2[A, B any](em *EntityManager, w Write[A], r Read[B]) ParGroup2[A, B] {
	return ParGroup2[A, B]{
		em:     em,
		mask:   w.Mask().And(r.Mask()),
		fetchA: w.getUnchecked,
		fetchB: r.getUnchecked,
	}
}

// ForEach splits the mask's id range across workers goroutines and invokes
// fn for every matching entity. fn may be called concurrently from
// different goroutines, each for a disjoint entity, and must not assume any
// particular order.
func (g ParGroup2[A, B]) ForEach(workers int, fn func(Entity, *A, *B)) {
	if workers < 1 {
		workers = defaultParWorkers
	}
	// Trim the split range to the mask's actual span rather than its full
	// capacity: a mask with a high max but a low highest set bit (e.g. one
	// entity added long after a bulk removal) would otherwise waste workers
	// scanning an empty tail, mirroring the Rust original's est_size
	// trimming of trailing all-zero words in par.rs/lib.rs's par_group.
	highest := g.mask.bits.HighestSetBit(g.mask.max)
	if highest < 0 {
		return
	}
	max := highest + 1
	chunk := (max + workers - 1) / workers

	var wg sync.WaitGroup
	for start := 0; start < max; start += chunk {
		end := start + chunk
		if end > max {
			end = max
		}
		wg.Add(1)
		go func(start, end int) {
			defer wg.Done()
			g.em.allocMu.RLock()
			defer g.em.allocMu.RUnlock()
			for id := start; id < end; id++ {
				if !g.mask.bits.Get(id) {
					continue
				}
				e := Entity{ID: uint32(id), Generation: g.em.alloc.generations[id]}
				fn(e, g.fetchA(uint32(id)), g.fetchB(uint32(id)))
			}
		}(start, end)
	}
	wg.Wait()
}

// Count reports how many entities the intersection mask selects, computed
// with the same worker split as ForEach.
func (g ParGroup2[A, B]) Count(workers int) int {
	var count int64
	g.ForEach(workers, func(Entity, *A, *B) {
		atomic.AddInt64(&count, 1)
	})
	return int(count)
}
