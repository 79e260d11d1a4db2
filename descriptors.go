package kryne2

import (
	"github.com/kryne-engine/kryne2/core/descriptor"
	"github.com/kryne-engine/kryne2/hal"
)

// CreateBindGroupLayout creates a descriptor-set layout from desc, assigning
// implicit dense binding indices when every entry leaves Binding at zero
// (spec.md §4.E "Layout").
func (c *Context) CreateBindGroupLayout(desc hal.BindGroupLayoutDescriptor) (*descriptor.Layout, error) {
	var layout *descriptor.Layout
	var err error
	c.gpu.CallVoid(func() { layout, err = descriptor.CreateLayout(c.registry, desc) })
	return layout, err
}

// CreateDescriptorSet creates a descriptor set from layout, replicated
// across the device's in-flight frame count (spec.md §4.E "Set").
func (c *Context) CreateDescriptorSet(layout *descriptor.Layout) (*descriptor.Set, error) {
	var set *descriptor.Set
	var err error
	c.gpu.CallVoid(func() {
		set, err = descriptor.CreateSet(c.registry, layout, c.device.GetFrameContextCount())
	})
	return set, err
}

// WriteDescriptor applies w to set's current frame slot, replaying it into
// the other slots on subsequent NextFrame calls unless singleFrame is set
// (spec.md §4.E "Write info").
func (c *Context) WriteDescriptor(set *descriptor.Set, w descriptor.Write, singleFrame bool) {
	c.gpu.CallVoid(func() { set.Write(w, singleFrame) })
}

// AdvanceDescriptorSet rotates set to the next frame slot, applying any
// pending write replay. Call once per frame for every live set, in lockstep
// with CommitFrame.
func (c *Context) AdvanceDescriptorSet(set *descriptor.Set) {
	c.gpu.CallVoid(func() { set.NextFrame() })
}

// BuildPipelineLayout assembles a PipelineLayout from descriptor-set layouts
// and push-constant ranges, synthesising implicit constant bindings when the
// backend has no native push constants (spec.md §4.F).
func (c *Context) BuildPipelineLayout(setLayouts []hal.BindGroupLayout, ranges []hal.PushConstantRange) (PipelineLayout, []descriptor.ImplicitConstantBinding, error) {
	desc, implicit := descriptor.BuildPipelineLayout(setLayouts, ranges, c.supportsPushConstants())
	var h PipelineLayout
	var err error
	c.gpu.CallVoid(func() { h, err = c.registry.CreatePipelineLayout(desc) })
	return h, implicit, err
}

// supportsPushConstants reports whether the active backend exposes native
// push constants. hal.Device has no direct query for this yet; every
// current backend (the noop reference) has none, so this defaults to false
// until a concrete backend advertises support through Capabilities.
func (c *Context) supportsPushConstants() bool { return false }

// DestroyBindGroupLayout destroys a descriptor-set layout. Idempotent.
func (c *Context) DestroyBindGroupLayout(layout *descriptor.Layout) {
	c.gpu.CallVoid(func() { c.registry.DestroyBindGroupLayout(layout.Handle) })
}

// DestroyPipelineLayout destroys h. Idempotent.
func (c *Context) DestroyPipelineLayout(h PipelineLayout) {
	c.gpu.CallVoid(func() { c.registry.DestroyPipelineLayout(h) })
}
