package kryne2

import "github.com/kryne-engine/kryne2/core/pool"

// Typed resource handles, re-exported from core/pool so callers never need
// to import it directly (spec.md §3).
type (
	Buffer              = pool.BufferHandle
	Texture             = pool.TextureHandle
	TextureView         = pool.TextureViewHandle
	Sampler             = pool.SamplerHandle
	ShaderModule        = pool.ShaderModuleHandle
	PipelineLayout      = pool.PipelineLayoutHandle
	GraphicsPipeline    = pool.GraphicsPipelineHandle
	ComputePipeline     = pool.ComputePipelineHandle
	DescriptorSetLayout = pool.DescriptorSetLayoutHandle
)
