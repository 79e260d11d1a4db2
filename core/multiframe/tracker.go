// Package multiframe implements the multi-frame write-replay tracker
// (spec.md §4.E "Write replay"): a per-frame-slot ring of pending items
// that lets a producer push data meant for "other" in-flight frame slots
// and have it drain into each slot's own queue as that slot becomes
// current.
//
// Grounded exactly on the original
// Core/Common/Utils/MultiFrameTracking.hpp's MultiFrameDataTracker:
// TrackForOtherFrames pushes into every slot but the current one,
// AdvanceToNextFrame rotates the current index, ClearData empties only the
// current slot, and GetData reads the current slot. Single-producer per
// frame slot (the rendering thread), so no internal locking.
package multiframe

// Tracker replicates writes across N in-flight frame-slot copies so each
// copy converges to the same state without client retries.
type Tracker[T any] struct {
	current uint8
	data    [][]T
}

// New creates a tracker with frameCount slots, all empty.
func New[T any](frameCount uint8) *Tracker[T] {
	if frameCount == 0 {
		frameCount = 1
	}
	return &Tracker[T]{data: make([][]T, frameCount)}
}

func (t *Tracker[T]) offset(o uint8) uint8 {
	return (t.current + o) % uint8(len(t.data))
}

// AdvanceToNextFrame rotates the current slot forward by one.
func (t *Tracker[T]) AdvanceToNextFrame() {
	t.current = (t.current + 1) % uint8(len(t.data))
}

// ClearData empties the current slot's queue.
func (t *Tracker[T]) ClearData() {
	t.data[t.offset(0)] = t.data[t.offset(0)][:0]
}

// TrackForOtherFrames appends item to every slot except the current one,
// so it replays into each of them once AdvanceToNextFrame reaches them.
func (t *Tracker[T]) TrackForOtherFrames(item T) {
	for i := uint8(1); i < uint8(len(t.data)); i++ {
		idx := t.offset(i)
		t.data[idx] = append(t.data[idx], item)
	}
}

// GetData returns the current slot's pending items.
func (t *Tracker[T]) GetData() []T {
	return t.data[t.offset(0)]
}
