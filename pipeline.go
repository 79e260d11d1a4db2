package kryne2

import "github.com/kryne-engine/kryne2/hal"

// CreateRenderPipeline creates a graphics pipeline from desc.
func (c *Context) CreateRenderPipeline(desc hal.RenderPipelineDescriptor) (GraphicsPipeline, error) {
	var h GraphicsPipeline
	var err error
	c.gpu.CallVoid(func() { h, err = c.registry.CreateRenderPipeline(desc) })
	return h, err
}

// DestroyRenderPipeline destroys h. Idempotent.
func (c *Context) DestroyRenderPipeline(h GraphicsPipeline) {
	c.gpu.CallVoid(func() { c.registry.DestroyRenderPipeline(h) })
}

// CreateComputePipeline creates a compute pipeline from desc.
func (c *Context) CreateComputePipeline(desc hal.ComputePipelineDescriptor) (ComputePipeline, error) {
	var h ComputePipeline
	var err error
	c.gpu.CallVoid(func() { h, err = c.registry.CreateComputePipeline(desc) })
	return h, err
}

// DestroyComputePipeline destroys h. Idempotent.
func (c *Context) DestroyComputePipeline(h ComputePipeline) {
	c.gpu.CallVoid(func() { c.registry.DestroyComputePipeline(h) })
}
