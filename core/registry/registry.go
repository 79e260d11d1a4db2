package registry

import (
	"fmt"

	"github.com/kryne-engine/kryne2/core/debug"
	"github.com/kryne-engine/kryne2/core/pool"
	"github.com/kryne-engine/kryne2/hal"
)

// Registry is the backend instance's resource registry (spec.md §4.D): one
// generational pool per resource kind, fronting a single hal.Device.
type Registry struct {
	device hal.Device

	buffers           *Table[hal.Buffer, hal.BufferDescriptor]
	textures          *Table[hal.Texture, hal.TextureDescriptor]
	textureViews      *Table[hal.TextureView, hal.TextureViewDescriptor]
	samplers          *Table[hal.Sampler, hal.SamplerDescriptor]
	shaderModules     *Table[hal.ShaderModule, hal.ShaderModuleDescriptor]
	bindGroupLayouts  *Table[hal.BindGroupLayout, hal.BindGroupLayoutDescriptor]
	bindGroups        *Table[hal.BindGroup, hal.BindGroupDescriptor]
	pipelineLayouts   *Table[hal.PipelineLayout, hal.PipelineLayoutDescriptor]
	renderPipelines   *Table[hal.RenderPipeline, hal.RenderPipelineDescriptor]
	computePipelines  *Table[hal.ComputePipeline, hal.ComputePipelineDescriptor]
}

// New creates a registry fronting device.
func New(device hal.Device) *Registry {
	return &Registry{
		device:           device,
		buffers:          NewTable[hal.Buffer, hal.BufferDescriptor](),
		textures:         NewTable[hal.Texture, hal.TextureDescriptor](),
		textureViews:     NewTable[hal.TextureView, hal.TextureViewDescriptor](),
		samplers:         NewTable[hal.Sampler, hal.SamplerDescriptor](),
		shaderModules:    NewTable[hal.ShaderModule, hal.ShaderModuleDescriptor](),
		bindGroupLayouts: NewTable[hal.BindGroupLayout, hal.BindGroupLayoutDescriptor](),
		bindGroups:       NewTable[hal.BindGroup, hal.BindGroupDescriptor](),
		pipelineLayouts:  NewTable[hal.PipelineLayout, hal.PipelineLayoutDescriptor](),
		renderPipelines:  NewTable[hal.RenderPipeline, hal.RenderPipelineDescriptor](),
		computePipelines: NewTable[hal.ComputePipeline, hal.ComputePipelineDescriptor](),
	}
}

// Device returns the hal.Device this registry fronts, for callers (command
// encoder creation, frame pacing) that need it directly.
func (r *Registry) Device() hal.Device { return r.device }

// CreateBuffer validates desc, creates the backend-native buffer, and
// registers it under a generational handle.
func (r *Registry) CreateBuffer(desc hal.BufferDescriptor) (pool.BufferHandle, error) {
	if desc.Usage == hal.BufferUsageNone {
		debug.Assert("registry: buffer %q: usage mask must be non-empty", desc.Label)
		return pool.BufferHandle{}, fmt.Errorf("registry: buffer %q: usage mask must be non-empty", desc.Label)
	}
	native, err := r.device.CreateBuffer(&desc)
	if err != nil {
		return pool.BufferHandle{}, err
	}
	h, ok := r.buffers.Create(native, desc)
	if !ok {
		r.device.DestroyBuffer(native)
		debug.Assert("registry: buffer %q: pool out of capacity", desc.Label)
		return pool.BufferHandle{}, hal.ErrOutOfCapacity
	}
	return pool.BufferHandle{Handle: h}, nil
}

// GetBuffer returns the native handle and descriptor a BufferHandle refers to.
func (r *Registry) GetBuffer(h pool.BufferHandle) (hal.Buffer, hal.BufferDescriptor, bool) {
	return r.buffers.Get(h.Handle)
}

// DestroyBuffer is idempotent: destroying an already-invalid handle is a no-op.
func (r *Registry) DestroyBuffer(h pool.BufferHandle) {
	if native, ok := r.buffers.Destroy(h.Handle); ok {
		r.device.DestroyBuffer(native)
	}
}

// NeedsStagingBuffer reports whether h's usage requires Dynamic Buffer
// (§4.G) to route writes through a staging buffer rather than mapping
// directly.
func (r *Registry) NeedsStagingBuffer(h pool.BufferHandle) bool {
	_, desc, ok := r.buffers.Get(h.Handle)
	if !ok {
		return false
	}
	return r.device.NeedsStagingBuffer(desc.Usage)
}

// NeedsStagingBufferForUsage is NeedsStagingBuffer's handle-less form, for
// callers (Dynamic Buffer's Init) deciding a data path before any buffer
// exists yet.
func (r *Registry) NeedsStagingBufferForUsage(usage hal.BufferUsage) bool {
	return r.device.NeedsStagingBuffer(usage)
}

// MapBuffer returns a CPU-visible view of h's contents.
func (r *Registry) MapBuffer(h pool.BufferHandle) ([]byte, error) {
	native, _, ok := r.buffers.Get(h.Handle)
	if !ok {
		debug.Assert("registry: MapBuffer: invalid handle %v", h.Handle)
		return nil, hal.ErrInvalidHandle
	}
	return r.device.MapBuffer(native)
}

// UnmapBuffer closes a view opened by MapBuffer.
func (r *Registry) UnmapBuffer(h pool.BufferHandle) {
	if native, _, ok := r.buffers.Get(h.Handle); ok {
		r.device.UnmapBuffer(native)
	}
}

// CreateTexture validates desc and registers the backend-native texture.
func (r *Registry) CreateTexture(desc hal.TextureDescriptor) (pool.TextureHandle, error) {
	if desc.Width == 0 || desc.Height == 0 {
		debug.Assert("registry: texture %q: zero dimensions", desc.Label)
		return pool.TextureHandle{}, fmt.Errorf("registry: texture %q: zero dimensions", desc.Label)
	}
	if desc.DepthOrLayers == 0 {
		debug.Assert("registry: texture %q: zero depth/array-layer count", desc.Label)
		return pool.TextureHandle{}, fmt.Errorf("registry: texture %q: zero depth/array-layer count", desc.Label)
	}
	if desc.MipLevelCount == 0 {
		debug.Assert("registry: texture %q: zero mip level count", desc.Label)
		return pool.TextureHandle{}, fmt.Errorf("registry: texture %q: zero mip level count", desc.Label)
	}
	if desc.Usage == hal.TextureUsageNone {
		debug.Assert("registry: texture %q: usage mask must be non-empty", desc.Label)
		return pool.TextureHandle{}, fmt.Errorf("registry: texture %q: usage mask must be non-empty", desc.Label)
	}
	if desc.Format.IsDepthStencil() && desc.Usage&hal.TextureUsageRenderAttachment == 0 {
		debug.Assert("registry: texture %q: depth-stencil format requires RenderAttachment usage", desc.Label)
		return pool.TextureHandle{}, fmt.Errorf("registry: texture %q: depth-stencil format requires RenderAttachment usage", desc.Label)
	}

	native, err := r.device.CreateTexture(&desc)
	if err != nil {
		return pool.TextureHandle{}, err
	}
	h, ok := r.textures.Create(native, desc)
	if !ok {
		r.device.DestroyTexture(native)
		debug.Assert("registry: texture %q: pool out of capacity", desc.Label)
		return pool.TextureHandle{}, hal.ErrOutOfCapacity
	}
	return pool.TextureHandle{Handle: h}, nil
}

// GetTexture returns the native handle and descriptor a TextureHandle refers to.
func (r *Registry) GetTexture(h pool.TextureHandle) (hal.Texture, hal.TextureDescriptor, bool) {
	return r.textures.Get(h.Handle)
}

// DestroyTexture is idempotent.
func (r *Registry) DestroyTexture(h pool.TextureHandle) {
	if native, ok := r.textures.Destroy(h.Handle); ok {
		r.device.DestroyTexture(native)
	}
}

// CreateTextureView registers a view into an already-registered texture.
func (r *Registry) CreateTextureView(tex pool.TextureHandle, desc hal.TextureViewDescriptor) (pool.TextureViewHandle, error) {
	native, _, ok := r.textures.Get(tex.Handle)
	if !ok {
		debug.Assert("registry: CreateTextureView: invalid texture handle %v", tex.Handle)
		return pool.TextureViewHandle{}, hal.ErrInvalidHandle
	}
	view, err := r.device.CreateTextureView(native, &desc)
	if err != nil {
		return pool.TextureViewHandle{}, err
	}
	h, ok := r.textureViews.Create(view, desc)
	if !ok {
		r.device.DestroyTextureView(view)
		debug.Assert("registry: texture view %q: pool out of capacity", desc.Label)
		return pool.TextureViewHandle{}, hal.ErrOutOfCapacity
	}
	return pool.TextureViewHandle{Handle: h}, nil
}

// GetTextureView returns the native handle and descriptor a TextureViewHandle refers to.
func (r *Registry) GetTextureView(h pool.TextureViewHandle) (hal.TextureView, hal.TextureViewDescriptor, bool) {
	return r.textureViews.Get(h.Handle)
}

// DestroyTextureView is idempotent.
func (r *Registry) DestroyTextureView(h pool.TextureViewHandle) {
	if native, ok := r.textureViews.Destroy(h.Handle); ok {
		r.device.DestroyTextureView(native)
	}
}

// CreateSampler registers a backend-native sampler.
func (r *Registry) CreateSampler(desc hal.SamplerDescriptor) (pool.SamplerHandle, error) {
	native, err := r.device.CreateSampler(&desc)
	if err != nil {
		return pool.SamplerHandle{}, err
	}
	h, ok := r.samplers.Create(native, desc)
	if !ok {
		r.device.DestroySampler(native)
		debug.Assert("registry: sampler %q: pool out of capacity", desc.Label)
		return pool.SamplerHandle{}, hal.ErrOutOfCapacity
	}
	return pool.SamplerHandle{Handle: h}, nil
}

// DestroySampler is idempotent.
func (r *Registry) DestroySampler(h pool.SamplerHandle) {
	if native, ok := r.samplers.Destroy(h.Handle); ok {
		r.device.DestroySampler(native)
	}
}

// CreateShaderModule registers a backend-native shader module.
func (r *Registry) CreateShaderModule(desc hal.ShaderModuleDescriptor) (pool.ShaderModuleHandle, error) {
	native, err := r.device.CreateShaderModule(&desc)
	if err != nil {
		return pool.ShaderModuleHandle{}, err
	}
	h, ok := r.shaderModules.Create(native, desc)
	if !ok {
		r.device.DestroyShaderModule(native)
		debug.Assert("registry: shader module %q: pool out of capacity", desc.Label)
		return pool.ShaderModuleHandle{}, hal.ErrOutOfCapacity
	}
	return pool.ShaderModuleHandle{Handle: h}, nil
}

// DestroyShaderModule is idempotent.
func (r *Registry) DestroyShaderModule(h pool.ShaderModuleHandle) {
	if native, ok := r.shaderModules.Destroy(h.Handle); ok {
		r.device.DestroyShaderModule(native)
	}
}

// CreateBindGroupLayout registers a backend-native descriptor-set layout.
func (r *Registry) CreateBindGroupLayout(desc hal.BindGroupLayoutDescriptor) (pool.DescriptorSetLayoutHandle, error) {
	native, err := r.device.CreateBindGroupLayout(&desc)
	if err != nil {
		return pool.DescriptorSetLayoutHandle{}, err
	}
	h, ok := r.bindGroupLayouts.Create(native, desc)
	if !ok {
		r.device.DestroyBindGroupLayout(native)
		debug.Assert("registry: bind group layout %q: pool out of capacity", desc.Label)
		return pool.DescriptorSetLayoutHandle{}, hal.ErrOutOfCapacity
	}
	return pool.DescriptorSetLayoutHandle{Handle: h}, nil
}

// GetBindGroupLayout returns the native handle and descriptor a
// DescriptorSetLayoutHandle refers to.
func (r *Registry) GetBindGroupLayout(h pool.DescriptorSetLayoutHandle) (hal.BindGroupLayout, hal.BindGroupLayoutDescriptor, bool) {
	return r.bindGroupLayouts.Get(h.Handle)
}

// DestroyBindGroupLayout is idempotent.
func (r *Registry) DestroyBindGroupLayout(h pool.DescriptorSetLayoutHandle) {
	if native, ok := r.bindGroupLayouts.Destroy(h.Handle); ok {
		r.device.DestroyBindGroupLayout(native)
	}
}

// CreateBindGroup registers a backend-native descriptor set.
func (r *Registry) CreateBindGroup(desc hal.BindGroupDescriptor) (pool.DescriptorSetHandle, error) {
	native, err := r.device.CreateBindGroup(&desc)
	if err != nil {
		return pool.DescriptorSetHandle{}, err
	}
	h, ok := r.bindGroups.Create(native, desc)
	if !ok {
		r.device.DestroyBindGroup(native)
		debug.Assert("registry: bind group %q: pool out of capacity", desc.Label)
		return pool.DescriptorSetHandle{}, hal.ErrOutOfCapacity
	}
	return pool.DescriptorSetHandle{Handle: h}, nil
}

// GetBindGroup returns the native handle and descriptor a
// DescriptorSetHandle refers to.
func (r *Registry) GetBindGroup(h pool.DescriptorSetHandle) (hal.BindGroup, hal.BindGroupDescriptor, bool) {
	return r.bindGroups.Get(h.Handle)
}

// WriteBindGroup rewrites a subset of h's bindings in place.
func (r *Registry) WriteBindGroup(h pool.DescriptorSetHandle, entries []hal.BindGroupEntry) {
	native, _, ok := r.bindGroups.Get(h.Handle)
	if !ok {
		return
	}
	r.device.WriteBindGroup(native, entries)
}

// DestroyBindGroup is idempotent.
func (r *Registry) DestroyBindGroup(h pool.DescriptorSetHandle) {
	if native, ok := r.bindGroups.Destroy(h.Handle); ok {
		r.device.DestroyBindGroup(native)
	}
}

// CreatePipelineLayout registers a backend-native pipeline layout.
func (r *Registry) CreatePipelineLayout(desc hal.PipelineLayoutDescriptor) (pool.PipelineLayoutHandle, error) {
	native, err := r.device.CreatePipelineLayout(&desc)
	if err != nil {
		return pool.PipelineLayoutHandle{}, err
	}
	h, ok := r.pipelineLayouts.Create(native, desc)
	if !ok {
		r.device.DestroyPipelineLayout(native)
		debug.Assert("registry: pipeline layout %q: pool out of capacity", desc.Label)
		return pool.PipelineLayoutHandle{}, hal.ErrOutOfCapacity
	}
	return pool.PipelineLayoutHandle{Handle: h}, nil
}

// GetPipelineLayout returns the native handle and descriptor a
// PipelineLayoutHandle refers to.
func (r *Registry) GetPipelineLayout(h pool.PipelineLayoutHandle) (hal.PipelineLayout, hal.PipelineLayoutDescriptor, bool) {
	return r.pipelineLayouts.Get(h.Handle)
}

// DestroyPipelineLayout is idempotent.
func (r *Registry) DestroyPipelineLayout(h pool.PipelineLayoutHandle) {
	if native, ok := r.pipelineLayouts.Destroy(h.Handle); ok {
		r.device.DestroyPipelineLayout(native)
	}
}

// CreateRenderPipeline registers a backend-native graphics pipeline.
func (r *Registry) CreateRenderPipeline(desc hal.RenderPipelineDescriptor) (pool.GraphicsPipelineHandle, error) {
	native, err := r.device.CreateRenderPipeline(&desc)
	if err != nil {
		return pool.GraphicsPipelineHandle{}, err
	}
	h, ok := r.renderPipelines.Create(native, desc)
	if !ok {
		r.device.DestroyRenderPipeline(native)
		debug.Assert("registry: render pipeline %q: pool out of capacity", desc.Label)
		return pool.GraphicsPipelineHandle{}, hal.ErrOutOfCapacity
	}
	return pool.GraphicsPipelineHandle{Handle: h}, nil
}

// DestroyRenderPipeline is idempotent.
func (r *Registry) DestroyRenderPipeline(h pool.GraphicsPipelineHandle) {
	if native, ok := r.renderPipelines.Destroy(h.Handle); ok {
		r.device.DestroyRenderPipeline(native)
	}
}

// CreateComputePipeline registers a backend-native compute pipeline.
func (r *Registry) CreateComputePipeline(desc hal.ComputePipelineDescriptor) (pool.ComputePipelineHandle, error) {
	native, err := r.device.CreateComputePipeline(&desc)
	if err != nil {
		return pool.ComputePipelineHandle{}, err
	}
	h, ok := r.computePipelines.Create(native, desc)
	if !ok {
		r.device.DestroyComputePipeline(native)
		debug.Assert("registry: compute pipeline %q: pool out of capacity", desc.Label)
		return pool.ComputePipelineHandle{}, hal.ErrOutOfCapacity
	}
	return pool.ComputePipelineHandle{Handle: h}, nil
}

// DestroyComputePipeline is idempotent.
func (r *Registry) DestroyComputePipeline(h pool.ComputePipelineHandle) {
	if native, ok := r.computePipelines.Destroy(h.Handle); ok {
		r.device.DestroyComputePipeline(native)
	}
}
