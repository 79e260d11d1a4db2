package kryne2

import "github.com/kryne-engine/kryne2/hal"

// BeginCommandList opens a command encoder for kind on the current frame
// context (spec.md §4.C, §4.H).
func (c *Context) BeginCommandList(kind hal.QueueKind) (hal.CommandEncoder, error) {
	var enc hal.CommandEncoder
	var err error
	c.gpu.CallVoid(func() { enc, err = c.scheduler.BeginCommandList(kind) })
	return enc, err
}

// EndCommandList closes enc, returning the recorded command buffer.
func (c *Context) EndCommandList(kind hal.QueueKind, enc hal.CommandEncoder) (hal.CommandBuffer, error) {
	var buf hal.CommandBuffer
	var err error
	c.gpu.CallVoid(func() { buf, err = c.scheduler.EndCommandList(kind, enc) })
	return buf, err
}

// Commit submits every command buffer recorded for kind this frame.
func (c *Context) Commit(kind hal.QueueKind) error {
	var err error
	c.gpu.CallVoid(func() { err = c.scheduler.Commit(kind, c.queue) })
	return err
}

// BeginRenderPass begins a render pass on enc.
func (c *Context) BeginRenderPass(enc hal.CommandEncoder, desc *hal.RenderPassDescriptor) hal.RenderPassEncoder {
	return enc.BeginRenderPass(desc)
}

// BeginComputePass begins a compute pass on enc.
func (c *Context) BeginComputePass(enc hal.CommandEncoder, desc *hal.ComputePassDescriptor) hal.ComputePassEncoder {
	return enc.BeginComputePass(desc)
}

// TransitionBuffers places explicit buffer barriers on enc (spec.md §4.J).
func (c *Context) TransitionBuffers(enc hal.CommandEncoder, barriers []hal.BufferBarrier) {
	enc.TransitionBuffers(barriers)
}

// TransitionTextures places explicit texture barriers on enc.
func (c *Context) TransitionTextures(enc hal.CommandEncoder, barriers []hal.TextureBarrier) {
	enc.TransitionTextures(barriers)
}
