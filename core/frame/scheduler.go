package frame

import (
	"sync"
	"sync/atomic"

	"github.com/kryne-engine/kryne2/hal"
)

type record struct {
	encoder hal.CommandEncoder
	buffer  hal.CommandBuffer
}

type allocator struct {
	free    []hal.CommandEncoder
	used    []record
	pending []record // submitted, awaiting GPU confirmation before recycling
}

type slot struct {
	mu              sync.Mutex
	allocators      [hal.QueueCount]*allocator
	recordedFrameID uint64
}

func newSlot() *slot {
	s := &slot{}
	for i := range s.allocators {
		s.allocators[i] = &allocator{}
	}
	return s
}

// Scheduler owns one slot per in-flight frame and dispatches command-list
// recording and submission against the current slot.
type Scheduler struct {
	device  hal.Device
	slots   []*slot
	frameID atomic.Uint64
}

// NewScheduler creates a Scheduler with one slot per device.GetFrameContextCount().
func NewScheduler(device hal.Device) *Scheduler {
	n := device.GetFrameContextCount()
	if n == 0 {
		n = 1
	}
	s := &Scheduler{device: device, slots: make([]*slot, n)}
	for i := range s.slots {
		s.slots[i] = newSlot()
	}
	s.frameID.Store(1)
	s.slots[0].recordedFrameID = 1
	return s
}

// CurrentFrameID returns the frame id the scheduler is currently recording.
func (s *Scheduler) CurrentFrameID() uint64 { return s.frameID.Load() }

func (s *Scheduler) currentSlot() *slot {
	return s.slots[(s.frameID.Load()-1)%uint64(len(s.slots))]
}

// BeginCommandList acquires a command encoder for kind in the current
// frame slot — recycled from the free list when one is available, freshly
// created otherwise — and begins recording (spec.md §4.C).
func (s *Scheduler) BeginCommandList(kind hal.QueueKind) (hal.CommandEncoder, error) {
	sl := s.currentSlot()
	sl.mu.Lock()
	alloc := sl.allocators[kind]
	var enc hal.CommandEncoder
	var err error
	if n := len(alloc.free); n > 0 {
		enc = alloc.free[n-1]
		alloc.free = alloc.free[:n-1]
	} else {
		enc, err = s.device.CreateCommandEncoder(&hal.CommandEncoderDescriptor{Queue: kind})
	}
	sl.mu.Unlock()
	if err != nil {
		return nil, err
	}
	if err := enc.BeginEncoding(""); err != nil {
		return nil, err
	}
	return enc, nil
}

// EndCommandList finalises enc's recording and queues the resulting
// command buffer for the next Commit on kind.
func (s *Scheduler) EndCommandList(kind hal.QueueKind, enc hal.CommandEncoder) (hal.CommandBuffer, error) {
	buf, err := enc.EndEncoding()
	if err != nil {
		return nil, err
	}
	sl := s.currentSlot()
	sl.mu.Lock()
	alloc := sl.allocators[kind]
	alloc.used = append(alloc.used, record{encoder: enc, buffer: buf})
	sl.mu.Unlock()
	return buf, nil
}

// Commit submits every command buffer recorded this frame on kind's queue.
// Submitted encoders move to the pending list, recycled only once the
// device confirms the frame they belong to has finished executing
// (PrepareForNextFrame).
func (s *Scheduler) Commit(kind hal.QueueKind, queue hal.Queue) error {
	sl := s.currentSlot()
	sl.mu.Lock()
	alloc := sl.allocators[kind]
	recs := alloc.used
	alloc.used = nil
	sl.mu.Unlock()

	if len(recs) == 0 {
		return nil
	}
	buffers := make([]hal.CommandBuffer, len(recs))
	for i, r := range recs {
		buffers[i] = r.buffer
	}
	if err := queue.Submit(buffers); err != nil {
		return err
	}

	sl.mu.Lock()
	alloc.pending = append(alloc.pending, recs...)
	sl.mu.Unlock()
	return nil
}

// PrepareForNextFrame advances the scheduler to frameID and recycles the
// command encoders of the slot that frameID now occupies. Per spec.md
// §4.C's invariant, recycling only happens once WaitForFrame confirms the
// GPU has finished the frame that last owned this slot.
func (s *Scheduler) PrepareForNextFrame(frameID uint64) error {
	s.frameID.Store(frameID)
	sl := s.currentSlot()

	if sl.recordedFrameID != 0 {
		if err := s.device.WaitForFrame(sl.recordedFrameID); err != nil {
			return err
		}
	}

	sl.mu.Lock()
	for _, alloc := range sl.allocators {
		for _, r := range alloc.pending {
			alloc.free = append(alloc.free, r.encoder)
		}
		alloc.pending = nil
	}
	sl.recordedFrameID = frameID
	sl.mu.Unlock()
	return nil
}

// WaitForFrame blocks until frameID has finished executing on the GPU, or
// returns immediately if it already has (spec.md §4.C).
func (s *Scheduler) WaitForFrame(frameID uint64) error {
	return s.device.WaitForFrame(frameID)
}
