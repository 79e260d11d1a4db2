package hal

// InstanceDescriptor configures instance creation.
type InstanceDescriptor struct {
	ApplicationName string
	Debug           bool
}

// ApplicationInfo is returned by Device.GetApplicationInfo (spec.md §6).
type ApplicationInfo struct {
	Backend       Backend
	AdapterName   string
	DriverVersion string
}

// BufferDescriptor configures buffer creation.
type BufferDescriptor struct {
	Label string
	Size  uint64
	Usage BufferUsage
	// Mappable requests a CPU-visible allocation (spec.md §4.G direct path).
	Mappable bool
}

// TextureDescriptor configures texture creation.
type TextureDescriptor struct {
	Label         string
	Dimension     TextureDimension
	Format        Format
	Width         uint32
	Height        uint32
	DepthOrLayers uint32
	MipLevelCount uint32
	SampleCount   uint32
	Usage         TextureUsage
}

// TextureViewDescriptor configures a texture view.
type TextureViewDescriptor struct {
	Label           string
	Format          Format
	Dimension       TextureViewDimension
	Aspect          TextureAspect
	BaseMipLevel    uint32
	MipLevelCount   uint32
	BaseArrayLayer  uint32
	ArrayLayerCount uint32
}

// SamplerDescriptor configures a texture sampler.
type SamplerDescriptor struct {
	Label string
}

// ShaderModuleDescriptor configures shader-module creation. Source is native
// bytecode whose extension is given by Backend.ShaderFileExtension.
type ShaderModuleDescriptor struct {
	Label  string
	Source []byte
}

// BindGroupLayoutEntry describes one binding slot within a descriptor-set
// layout (spec.md §4.E "Layout").
type BindGroupLayoutEntry struct {
	Binding    uint32
	Type       BindingType
	Count      uint32
	Visibility ShaderStages
	TextureDim TextureViewDimension
}

// BindingType identifies the kind of resource a binding slot holds.
type BindingType uint8

const (
	BindingUniformBuffer BindingType = iota
	BindingStorageBuffer
	BindingSampledTexture
	BindingStorageTexture
	BindingSampler
)

// BindGroupLayoutDescriptor configures a descriptor-set layout.
type BindGroupLayoutDescriptor struct {
	Label   string
	Entries []BindGroupLayoutEntry
}

// BindGroupEntryData is a union of the descriptor-data kinds a write can
// target: a sampler, a texture view, or a buffer range (spec.md §4.E
// "Write info").
type BindGroupEntryData struct {
	Sampler      Sampler
	TextureView  TextureView
	Buffer       Buffer
	BufferOffset uint64
	BufferSize   uint64
}

// BindGroupEntry binds one resource to one binding slot at creation time.
type BindGroupEntry struct {
	Binding     uint32
	ArrayOffset uint32
	Data        BindGroupEntryData
}

// BindGroupDescriptor configures a bind group (descriptor set) allocated
// against a layout (spec.md §4.E "Set").
type BindGroupDescriptor struct {
	Label   string
	Layout  BindGroupLayout
	Entries []BindGroupEntry
}

// PushConstantRange describes one push-constant range (spec.md §4.F).
type PushConstantRange struct {
	Offset     uint32
	Size       uint32
	Visibility ShaderStages
}

// PipelineLayoutDescriptor configures a pipeline layout.
type PipelineLayoutDescriptor struct {
	Label             string
	BindGroupLayouts  []BindGroupLayout
	PushConstantRanges []PushConstantRange
}

// VertexAttribute describes one vertex-buffer attribute.
type VertexAttribute struct {
	Format         Format
	Offset         uint64
	ShaderLocation uint32
}

// VertexBufferLayout describes one bound vertex buffer's attribute layout.
type VertexBufferLayout struct {
	ArrayStride uint64
	Attributes  []VertexAttribute
}

// ColorTargetState describes one render-pipeline color output.
type ColorTargetState struct {
	Format Format
}

// RenderPipelineDescriptor configures a render pipeline.
type RenderPipelineDescriptor struct {
	Label         string
	Layout        PipelineLayout
	VertexShader  ShaderModule
	FragmentShader ShaderModule
	VertexBuffers []VertexBufferLayout
	ColorTargets  []ColorTargetState
	DepthFormat   Format
	Topology      PrimitiveTopology
}

// ComputePipelineDescriptor configures a compute pipeline.
type ComputePipelineDescriptor struct {
	Label  string
	Layout PipelineLayout
	Shader ShaderModule
}

// CommandEncoderDescriptor configures command-encoder creation.
type CommandEncoderDescriptor struct {
	Label string
	Queue QueueKind
}

// RenderPassColorAttachment describes one color attachment of a render pass.
type RenderPassColorAttachment struct {
	View          TextureView
	Load          LoadOp
	Store         StoreOp
	ClearColor    Color
	LayoutBefore  Layout
	LayoutAfter   Layout
}

// RenderPassDepthStencilAttachment describes the depth/stencil attachment.
type RenderPassDepthStencilAttachment struct {
	View           TextureView
	DepthLoad      LoadOp
	DepthStore     StoreOp
	ClearDepth     float32
	StencilLoad    LoadOp
	StencilStore   StoreOp
	ClearStencil   uint32
	LayoutBefore   Layout
	LayoutAfter    Layout
}

// RenderPassDescriptor configures a render pass.
type RenderPassDescriptor struct {
	Label               string
	ColorAttachments    []RenderPassColorAttachment
	DepthStencilAttachment *RenderPassDepthStencilAttachment
	// Hash is the render-pass signature used for object reuse
	// (spec.md §4.I "render-pass deduplication").
	Hash uint64
}

// ComputePassDescriptor configures a compute pass.
type ComputePassDescriptor struct {
	Label string
}

// Capabilities bundles adapter-level capability data.
type Capabilities struct {
	SupportsNonGlobalBarriers       bool
	RenderPassNeedsUsageDeclaration bool
	ComputePassNeedsUsageDeclaration bool
}

// SurfaceConfiguration configures a presentation surface.
type SurfaceConfiguration struct {
	Width, Height uint32
	Format        Format
	FrameCount    uint32
}
