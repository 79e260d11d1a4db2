package pool

import (
	"sync"
	"sync/atomic"

	"github.com/kryne-engine/kryne2/core/debug"
)

// segmentSize is the number of slots per growth segment. Each growth step
// appends exactly one segment of segmentSize slots, so capacity grows
// linearly; it does not double. Segments are never moved or reallocated,
// only appended, so previously-returned pointers (from Get) remain valid
// forever.
const segmentSize = 4096

// IntrusiveGeneration may be implemented by a hot payload type that already
// carries its own generation field wide enough to serve as the pool's
// generation counter. When a pool's Hot type implements it, Get/GetCold/
// GetAll validate a handle against PoolGeneration() instead of the side
// generation array, per spec.md §4.A ("When the hot payload carries its own
// m_generation field of sufficient width, the pool uses it intrusively
// instead of a side field") and the original GenerationalPool.hpp's
// IsValidIntrusiveGeneration concept. Since Get reads concurrently with
// Allocate/Free without taking the pool's lock, an implementation must back
// PoolGeneration/SetPoolGeneration with its own atomic field.
type IntrusiveGeneration interface {
	PoolGeneration() uint32
	SetPoolGeneration(uint32)
}

// currentGeneration returns the generation a handle into seg[within] is
// currently validated against: the hot payload's own intrusive generation
// field when it implements IntrusiveGeneration, otherwise the side array.
func currentGeneration[Hot any, Cold any](seg *segment[Hot, Cold], within uint32) uint32 {
	if ig, ok := any(&seg.hot[within]).(IntrusiveGeneration); ok {
		return ig.PoolGeneration()
	}
	return seg.generations[within].Load()
}

type segment[Hot any, Cold any] struct {
	generations []atomic.Uint32
	hot         []Hot
	cold        []Cold
}

func newSegment[Hot any, Cold any]() *segment[Hot, Cold] {
	return &segment[Hot, Cold]{
		generations: make([]atomic.Uint32, segmentSize),
		hot:         make([]Hot, segmentSize),
		cold:        make([]Cold, segmentSize),
	}
}

// Pool is a thread-safe generational container over a hot payload (cache
// resident, read every frame) and an optional cold payload (spec.md §3
// "Generational pool"). Reads never take the writer lock; Allocate and Free
// serialise on it (the spec's "spinlock" — approximated here with a mutex,
// see DESIGN.md).
type Pool[Hot any, Cold any] struct {
	mu   sync.Mutex
	segs atomic.Pointer[[]*segment[Hot, Cold]]
	size atomic.Uint32 // high-water mark: number of indices ever handed out

	free         []uint32 // immediate free list Allocate draws from
	deferredFree []uint32 // entries Free() appends to; moved to free by FlushDeferredFrees
}

// New creates an empty pool.
func New[Hot any, Cold any]() *Pool[Hot, Cold] {
	p := &Pool[Hot, Cold]{}
	empty := make([]*segment[Hot, Cold], 0)
	p.segs.Store(&empty)
	return p
}

func (p *Pool[Hot, Cold]) segmentFor(idx uint32) (*segment[Hot, Cold], uint32, bool) {
	segs := *p.segs.Load()
	segIdx := idx / segmentSize
	if int(segIdx) >= len(segs) {
		return nil, 0, false
	}
	return segs[segIdx], idx % segmentSize, true
}

// growLocked ensures capacity exists for idx. Caller holds mu.
func (p *Pool[Hot, Cold]) growLocked(idx uint32) {
	segs := *p.segs.Load()
	needed := int(idx/segmentSize) + 1
	if needed <= len(segs) {
		return
	}
	grown := make([]*segment[Hot, Cold], needed)
	copy(grown, segs)
	for i := len(segs); i < needed; i++ {
		grown[i] = newSegment[Hot, Cold]()
	}
	p.segs.Store(&grown)
}

// Allocate reserves a slot, reusing a freed index when one is available, and
// returns its handle. Fails (returns Invalid, false) when the index space
// (2^20 entries) is exhausted, per spec.md §4.A "Failure".
func (p *Pool[Hot, Cold]) Allocate() (Handle, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	var idx uint32
	if n := len(p.free); n > 0 {
		idx = p.free[n-1]
		p.free = p.free[:n-1]
	} else {
		idx = p.size.Load()
		if idx > maxIndex {
			debug.Assert("pool: index space exhausted at %d entries", idx)
			return Invalid, false
		}
		p.growLocked(idx)
		p.size.Add(1)
	}

	seg, within, _ := p.segmentFor(idx)
	gen := seg.generations[within].Load()
	if ig, ok := any(&seg.hot[within]).(IntrusiveGeneration); ok {
		ig.SetPoolGeneration(gen)
	}
	return NewHandle(idx, gen), true
}

// Free invalidates h: it bumps the slot's stored generation and queues the
// index for reuse one full frame-slot rotation later via
// FlushDeferredFrees. Returns true iff h was valid at entry.
func (p *Pool[Hot, Cold]) Free(h Handle) bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	seg, within, ok := p.segmentFor(h.Index())
	if !ok || currentGeneration(seg, within) != h.Generation() {
		return false
	}
	// Masked to genBits so the stored generation wraps the same way a
	// Handle's packed generation field does (spec.md §3's 12-bit
	// generation, mirroring the original's m_generation:12 bitfield
	// wraparound) instead of drifting out of sync with it after 4096
	// free/allocate cycles on one index.
	newGen := (seg.generations[within].Load() + 1) & genMask
	seg.generations[within].Store(newGen)
	if ig, ok := any(&seg.hot[within]).(IntrusiveGeneration); ok {
		ig.SetPoolGeneration(newGen)
	}
	var zeroHot Hot
	var zeroCold Cold
	seg.hot[within] = zeroHot
	seg.cold[within] = zeroCold
	p.deferredFree = append(p.deferredFree, h.Index())
	return true
}

// FlushDeferredFrees moves every index freed since the last flush into the
// list Allocate draws from. Call this once per frame-slot rotation so that,
// within one rotation, a freed index is never reissued (spec.md testable
// property 2, "No ABA on pool indices").
func (p *Pool[Hot, Cold]) FlushDeferredFrees() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.free = append(p.free, p.deferredFree...)
	p.deferredFree = p.deferredFree[:0]
}

// Get returns a pointer to the hot payload iff h's generation matches the
// slot's current generation. No assertion on mismatch — callers check the
// boolean (spec.md §4.A "Get* returns a pointer only when the handle's
// generation matches; otherwise null").
func (p *Pool[Hot, Cold]) Get(h Handle) (*Hot, bool) {
	seg, within, ok := p.segmentFor(h.Index())
	if !ok || currentGeneration(seg, within) != h.Generation() {
		return nil, false
	}
	return &seg.hot[within], true
}

// GetCold returns a pointer to the cold payload, subject to the same
// generation check as Get.
func (p *Pool[Hot, Cold]) GetCold(h Handle) (*Cold, bool) {
	seg, within, ok := p.segmentFor(h.Index())
	if !ok || currentGeneration(seg, within) != h.Generation() {
		return nil, false
	}
	return &seg.cold[within], true
}

// GetAll returns pointers to both the hot and cold payloads together.
func (p *Pool[Hot, Cold]) GetAll(h Handle) (*Hot, *Cold, bool) {
	seg, within, ok := p.segmentFor(h.Index())
	if !ok || currentGeneration(seg, within) != h.Generation() {
		return nil, nil, false
	}
	return &seg.hot[within], &seg.cold[within], true
}

// Size returns the number of indices ever handed out (the high-water mark,
// including currently-freed ones).
func (p *Pool[Hot, Cold]) Size() uint32 {
	return p.size.Load()
}
