package hal

// Instance is the entry point for GPU operations on one backend variant.
type Instance interface {
	// CreateSurface creates a rendering surface from platform handles.
	CreateSurface(displayHandle, windowHandle uintptr) (Surface, error)

	// EnumerateAdapters enumerates available physical GPUs, optionally
	// filtered to those compatible with surfaceHint.
	EnumerateAdapters(surfaceHint Surface) []ExposedAdapter

	// Destroy releases the instance. Adapters and surfaces created from it
	// must be destroyed first.
	Destroy()
}

// ExposedAdapter bundles an adapter with its capabilities.
type ExposedAdapter struct {
	Adapter      Adapter
	Info         ApplicationInfo
	Capabilities Capabilities
}

// Adapter represents a physical GPU.
type Adapter interface {
	// Open opens a logical device.
	Open() (OpenDevice, error)

	// Destroy releases the adapter. Devices opened from it must be destroyed
	// first.
	Destroy()
}

// OpenDevice bundles the device and queue returned by Adapter.Open.
type OpenDevice struct {
	Device Device
	Queue  Queue
}

// Device is the per-backend implementation of the frame-id-threaded contract
// specified by spec.md §6. It owns frame-pacing state (N in-flight frame
// contexts), resource creation, and swapchain queries; the façade (root
// package Context, spec.md §4.H) forwards every public call here.
type Device interface {
	// GetFrameContextCount returns N, the number of in-flight frame contexts
	// this device rotates between (spec.md §4.C).
	GetFrameContextCount() uint8

	// EndFrame advances the device past frameID: submits outstanding work for
	// the frame, signals its completion fence/semaphore, and increments the
	// device's frame counter. frameID is the id of the frame being ended.
	EndFrame(frameID uint64) error

	// WaitForFrame blocks until frameID has finished executing on the GPU.
	// Returns immediately if the frame already executed.
	WaitForFrame(frameID uint64) error

	// IsFrameExecuted reports whether frameID has finished executing without
	// blocking.
	IsFrameExecuted(frameID uint64) bool

	// GetApplicationInfo returns static adapter/driver identification.
	GetApplicationInfo() ApplicationInfo

	// GetShaderFileExtension returns the native shader bytecode extension
	// this backend loads ("spv", "cso", "metallib").
	GetShaderFileExtension() string

	// SupportsNonGlobalBarriers reports whether the backend can scope a
	// barrier to a buffer/texture range rather than a full pipeline flush.
	SupportsNonGlobalBarriers() bool

	// RenderPassNeedsUsageDeclaration reports whether the backend requires
	// upfront usage declarations before beginning a render pass
	// (descriptor-heap backends) as opposed to inline barriers.
	RenderPassNeedsUsageDeclaration() bool

	// ComputePassNeedsUsageDeclaration is the compute-pass analogue of
	// RenderPassNeedsUsageDeclaration.
	ComputePassNeedsUsageDeclaration() bool

	// NeedsStagingBuffer reports whether usage requires a CPU staging buffer
	// plus a GPU-only backing buffer rather than a single mappable buffer
	// (spec.md §4.D, consumed by the dynamic buffer, §4.G).
	NeedsStagingBuffer(usage BufferUsage) bool

	// Resource creation/destruction suite (spec.md §4.D, §4.H).
	CreateBuffer(desc *BufferDescriptor) (Buffer, error)
	// MapBuffer returns a CPU-visible view of buffer's contents. Only
	// valid for buffers created with BufferDescriptor.Mappable set
	// (spec.md §4.G "Map").
	MapBuffer(buffer Buffer) ([]byte, error)
	// UnmapBuffer closes a view opened by MapBuffer.
	UnmapBuffer(buffer Buffer)
	DestroyBuffer(buffer Buffer)
	CreateTexture(desc *TextureDescriptor) (Texture, error)
	DestroyTexture(texture Texture)
	CreateTextureView(texture Texture, desc *TextureViewDescriptor) (TextureView, error)
	DestroyTextureView(view TextureView)
	CreateSampler(desc *SamplerDescriptor) (Sampler, error)
	DestroySampler(sampler Sampler)
	CreateBindGroupLayout(desc *BindGroupLayoutDescriptor) (BindGroupLayout, error)
	DestroyBindGroupLayout(layout BindGroupLayout)
	CreateBindGroup(desc *BindGroupDescriptor) (BindGroup, error)
	// WriteBindGroup rewrites a subset of group's bindings in place, per
	// spec.md §4.E "Write info" — the descriptor-set manager's write
	// replay mechanism drives every binding update through this rather
	// than through re-creation.
	WriteBindGroup(group BindGroup, entries []BindGroupEntry)
	DestroyBindGroup(group BindGroup)
	CreatePipelineLayout(desc *PipelineLayoutDescriptor) (PipelineLayout, error)
	DestroyPipelineLayout(layout PipelineLayout)
	CreateShaderModule(desc *ShaderModuleDescriptor) (ShaderModule, error)
	DestroyShaderModule(module ShaderModule)
	CreateRenderPipeline(desc *RenderPipelineDescriptor) (RenderPipeline, error)
	DestroyRenderPipeline(pipeline RenderPipeline)
	CreateComputePipeline(desc *ComputePipelineDescriptor) (ComputePipeline, error)
	DestroyComputePipeline(pipeline ComputePipeline)

	// CreateCommandEncoder opens a command list for the given queue in the
	// current frame context. The returned handle is invalidated by
	// EndEncoding or by the frame rolling over (spec.md §6).
	CreateCommandEncoder(desc *CommandEncoderDescriptor) (CommandEncoder, error)

	// Swapchain queries (spec.md §6).
	GetPresentRenderTargetView() TextureView
	GetPresentTexture() Texture
	GetCurrentPresentImageIndex() uint32

	// Destroy releases the device. All resources created from it must be
	// destroyed first.
	Destroy()
}

// Queue submits command buffers and writes data directly to resources.
type Queue interface {
	Submit(commandBuffers []CommandBuffer) error
	WriteBuffer(buffer Buffer, offset uint64, data []byte)
	WriteTexture(dst *ImageCopyTexture, data []byte, layout *ImageDataLayout, size *Extent3D)
	Present(surface Surface, texture SurfaceTexture) error
}
