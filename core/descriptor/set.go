package descriptor

import (
	"github.com/kryne-engine/kryne2/core/multiframe"
	"github.com/kryne-engine/kryne2/core/pool"
	"github.com/kryne-engine/kryne2/core/registry"
	"github.com/kryne-engine/kryne2/hal"
)

// Write is one descriptor-data update targeting a single binding
// (spec.md §4.E "Write info").
type Write struct {
	Index       BindingID
	ArrayOffset uint32
	Data        hal.BindGroupEntryData
}

func (w Write) toHAL() hal.BindGroupEntry {
	return hal.BindGroupEntry{
		Binding:     w.Index.Binding(),
		ArrayOffset: w.ArrayOffset,
		Data:        w.Data,
	}
}

// Set is a descriptor set bound to a Layout, replicated once per
// in-flight frame slot (spec.md §4.E "Set").
type Set struct {
	reg     *registry.Registry
	layout  *Layout
	slots   []pool.DescriptorSetHandle
	pending *multiframe.Tracker[Write]
}

// CreateSet allocates frameCount replicas of layout, one per in-flight
// frame slot.
func CreateSet(reg *registry.Registry, layout *Layout, frameCount uint8) (*Set, error) {
	slots := make([]pool.DescriptorSetHandle, frameCount)
	for i := range slots {
		h, err := reg.CreateBindGroup(hal.BindGroupDescriptor{Layout: layout.Native})
		if err != nil {
			for j := 0; j < i; j++ {
				reg.DestroyBindGroup(slots[j])
			}
			return nil, err
		}
		slots[i] = h
	}
	return &Set{
		reg:     reg,
		layout:  layout,
		slots:   slots,
		pending: multiframe.New[Write](frameCount),
	}, nil
}

// Current returns the handle of the slot currently in use.
func (s *Set) Current() pool.DescriptorSetHandle { return s.slots[0] }

// Write applies w to the current slot immediately. Unless singleFrame is
// set, it is also queued to replay into every other slot as each becomes
// current, so all N copies converge without further client writes
// (spec.md §4.E "Write replay").
func (s *Set) Write(w Write, singleFrame bool) {
	s.reg.WriteBindGroup(s.slots[0], []hal.BindGroupEntry{w.toHAL()})
	if !singleFrame {
		s.pending.TrackForOtherFrames(w)
	}
}

// NextFrame rotates the set to the next in-flight slot (rotate(slots) by
// one, keeping Current() meaningful) and replays every write queued for
// it, then clears the replayed queue.
func (s *Set) NextFrame() {
	s.slots = append(s.slots[1:], s.slots[0])
	s.pending.AdvanceToNextFrame()

	for _, w := range s.pending.GetData() {
		s.reg.WriteBindGroup(s.slots[0], []hal.BindGroupEntry{w.toHAL()})
	}
	s.pending.ClearData()
}

// Destroy releases every per-slot bind group.
func (s *Set) Destroy() {
	for _, h := range s.slots {
		s.reg.DestroyBindGroup(h)
	}
}
