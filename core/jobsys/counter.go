package jobsys

import (
	"sync"
)

// DefaultCounterPoolSize is the number of counter slots the runtime
// allocates by default, matching the original's fixed 128-slot pool.
const DefaultCounterPoolSize = 128

// CounterID is a small generational handle into a CounterPool, returned by
// AcquireCounter and consumed by DecrementCounterValue / WaitForCounter /
// ReleaseCounter.
type CounterID struct {
	index      uint32
	generation uint32
}

// invalidCounterID is returned when a counter pool is exhausted.
var invalidCounterID = CounterID{generation: ^uint32(0)}

func (id CounterID) valid() bool { return id != invalidCounterID }

type counterSlot struct {
	mu         sync.Mutex
	generation uint32
	value      int
	inUse      bool
	waiters    []chan struct{}
}

// CounterPool is a fixed-size pool of sync counters used for fork/join
// coordination between jobs (spec.md §4.B "Sync counters").
type CounterPool struct {
	slots []counterSlot

	freeMu sync.Mutex
	free   []uint32
}

// NewCounterPool creates a pool with size slots, all initially free.
func NewCounterPool(size int) *CounterPool {
	if size <= 0 {
		size = DefaultCounterPoolSize
	}
	p := &CounterPool{
		slots: make([]counterSlot, size),
		free:  make([]uint32, size),
	}
	for i := range p.free {
		p.free[i] = uint32(size - 1 - i)
	}
	return p
}

// AcquireCounter reserves a slot initialised to n and returns its handle.
// Returns (invalidCounterID, false) when the pool is exhausted.
func (p *CounterPool) AcquireCounter(n int) (CounterID, bool) {
	p.freeMu.Lock()
	if len(p.free) == 0 {
		p.freeMu.Unlock()
		return invalidCounterID, false
	}
	idx := p.free[len(p.free)-1]
	p.free = p.free[:len(p.free)-1]
	p.freeMu.Unlock()

	slot := &p.slots[idx]
	slot.mu.Lock()
	slot.inUse = true
	slot.value = n
	slot.waiters = slot.waiters[:0]
	gen := slot.generation
	slot.mu.Unlock()

	return CounterID{index: idx, generation: gen}, true
}

// DecrementCounterValue decrements the counter's value by one and returns
// the post-decrement value. When the value reaches zero every goroutine
// parked in WaitForCounter is released. Returns (0, false) if id no longer
// refers to a live counter (already released, or a stale generation).
func (p *CounterPool) DecrementCounterValue(id CounterID) (int, bool) {
	slot := &p.slots[id.index]
	slot.mu.Lock()
	if !slot.inUse || slot.generation != id.generation {
		slot.mu.Unlock()
		return 0, false
	}
	slot.value--
	v := slot.value
	var waiters []chan struct{}
	if v <= 0 {
		waiters = slot.waiters
		slot.waiters = nil
	}
	slot.mu.Unlock()

	for _, w := range waiters {
		close(w)
	}
	return v, true
}

// WaitForCounter blocks the calling goroutine until id's value reaches
// zero. If the counter is already at zero (or invalid/released), it
// returns immediately — matching the original's "adding a waiter checks
// the counter under the slot lock and reports already-zero so the caller
// need not suspend."
func (p *CounterPool) WaitForCounter(id CounterID) {
	if !id.valid() {
		return
	}
	slot := &p.slots[id.index]
	slot.mu.Lock()
	if !slot.inUse || slot.generation != id.generation || slot.value <= 0 {
		slot.mu.Unlock()
		return
	}
	ch := make(chan struct{})
	slot.waiters = append(slot.waiters, ch)
	slot.mu.Unlock()

	<-ch
}

// ReleaseCounter returns id's slot to the free list, bumping its
// generation so stale handles are rejected by later operations.
func (p *CounterPool) ReleaseCounter(id CounterID) {
	slot := &p.slots[id.index]
	slot.mu.Lock()
	if !slot.inUse || slot.generation != id.generation {
		slot.mu.Unlock()
		return
	}
	slot.inUse = false
	slot.generation++
	slot.mu.Unlock()

	p.freeMu.Lock()
	p.free = append(p.free, id.index)
	p.freeMu.Unlock()
}

// AutoCounter is an RAII-style wrapper returned by
// Runtime.AcquireAutoSyncCounter: it frees its counter when Release is
// called, so callers can `defer ac.Release()`.
type AutoCounter struct {
	pool *CounterPool
	id   CounterID
	once sync.Once
}

// ID returns the wrapped counter handle.
func (a *AutoCounter) ID() CounterID { return a.id }

// Wait blocks until the counter reaches zero.
func (a *AutoCounter) Wait() { a.pool.WaitForCounter(a.id) }

// Release returns the counter to its pool. Safe to call more than once.
func (a *AutoCounter) Release() {
	a.once.Do(func() { a.pool.ReleaseCounter(a.id) })
}
