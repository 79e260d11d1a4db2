package hal

// Backend identifies which native graphics API a backend implementation targets.
type Backend uint8

const (
	BackendVulkan Backend = iota
	BackendDX12
	BackendMetal
	BackendNoop
)

// String returns a human-readable backend name.
func (b Backend) String() string {
	switch b {
	case BackendVulkan:
		return "vulkan"
	case BackendDX12:
		return "dx12"
	case BackendMetal:
		return "metal"
	case BackendNoop:
		return "noop"
	default:
		return "unknown"
	}
}

// ShaderFileExtension returns the native shader bytecode extension used by
// this backend, per spec.md §6 ("GetShaderFileExtension").
func (b Backend) ShaderFileExtension() string {
	switch b {
	case BackendVulkan:
		return "spv"
	case BackendDX12:
		return "cso"
	case BackendMetal:
		return "metallib"
	default:
		return ""
	}
}

// Format identifies a texture or vertex attribute pixel format.
// The set covers the intersection of formats the three target backends
// support in common, per spec.md §1's "exposes the intersection" non-goal.
type Format uint16

const (
	FormatUndefined Format = iota
	FormatR8Unorm
	FormatRG8Unorm
	FormatRGBA8Unorm
	FormatRGBA8UnormSRGB
	FormatBGRA8Unorm
	FormatBGRA8UnormSRGB
	FormatR16Float
	FormatRG16Float
	FormatRGBA16Float
	FormatR32Float
	FormatRG32Float
	FormatRGBA32Float
	FormatR32Uint
	FormatRGBA32Uint
	FormatDepth32Float
	FormatDepth24PlusStencil8
)

// IsDepthStencil reports whether the format carries a depth and/or stencil
// aspect, used by resource-registry validation (spec.md §4.D).
func (f Format) IsDepthStencil() bool {
	return f == FormatDepth32Float || f == FormatDepth24PlusStencil8
}

// HasStencil reports whether the format has a stencil aspect.
func (f Format) HasStencil() bool {
	return f == FormatDepth24PlusStencil8
}

// TextureAspect selects a plane of a texture for views, copies, and barriers.
type TextureAspect uint8

const (
	AspectColor TextureAspect = iota
	AspectDepth
	AspectStencil
	AspectDepthStencil
)

// TextureDimension is the logical shape of a texture.
type TextureDimension uint8

const (
	Texture1D TextureDimension = iota
	Texture2D
	Texture3D
)

// TextureViewDimension selects how a view's subresources are addressed.
type TextureViewDimension uint8

const (
	ViewDimension1D TextureViewDimension = iota
	ViewDimension2D
	ViewDimension2DArray
	ViewDimensionCube
	ViewDimensionCubeArray
	ViewDimension3D
)

// ShaderStages is a bitmask of programmable pipeline stages.
type ShaderStages uint32

const (
	StageVertex ShaderStages = 1 << iota
	StageFragment
	StageCompute
)

// SyncStage is a bitmask of pipeline stages a barrier synchronises against,
// grounded on spec.md §4.J's "(sync-stage, access, layout, planes)" state tuple.
type SyncStage uint32

const (
	SyncStageNone SyncStage = 0
	SyncStageTop  SyncStage = 1 << iota
	SyncStageDrawIndirect
	SyncStageVertexInput
	SyncStageVertexShader
	SyncStageFragmentShader
	SyncStageEarlyFragmentTests
	SyncStageLateFragmentTests
	SyncStageColorAttachmentOutput
	SyncStageComputeShader
	SyncStageCopy
	SyncStageResolve
)

// SyncStageAllCommands matches every pipeline stage; used as the conservative
// default for newly-tracked resources before any barrier has been derived.
const SyncStageAllCommands SyncStage = 1 << 31

// Access is a bitmask of memory access types a barrier synchronises.
type Access uint32

const (
	AccessNone                Access = 0
	AccessIndirectCommandRead Access = 1 << iota
	AccessIndexRead
	AccessVertexAttributeRead
	AccessUniformRead
	AccessShaderRead
	AccessShaderWrite
	AccessColorAttachmentRead
	AccessColorAttachmentWrite
	AccessDepthStencilAttachmentRead
	AccessDepthStencilAttachmentWrite
	AccessTransferRead
	AccessTransferWrite
	AccessHostRead
	AccessHostWrite
)

// AccessAll matches every access type; the source state for the dynamic
// buffer's direct-path "All→All" barrier (spec.md §4.G).
const AccessAll Access = 1 << 31

// Layout is the backend-native image layout a texture subresource occupies.
// "All" is the spec's generic fallback layout used on the direct-mappable
// path of the dynamic buffer (spec.md §4.G), where it is the pre-barrier
// source state of every newly allocated buffer. The render-graph executor
// instead starts untracked resources from LayoutUndefined.
type Layout uint8

const (
	LayoutUndefined Layout = iota
	LayoutGeneral
	LayoutColorAttachment
	LayoutDepthStencilAttachment
	LayoutDepthStencilReadOnly
	LayoutShaderReadOnly
	LayoutTransferSrc
	LayoutTransferDst
	LayoutPresent
	LayoutAll
)

// BufferUsage is a bitmask of how a buffer may be used.
type BufferUsage uint32

const (
	BufferUsageNone    BufferUsage = 0
	BufferUsageCopySrc BufferUsage = 1 << iota
	BufferUsageCopyDst
	BufferUsageIndex
	BufferUsageVertex
	BufferUsageUniform
	BufferUsageStorage
	BufferUsageIndirect
	BufferUsageMapRead
	BufferUsageMapWrite
)

// TextureUsage is a bitmask of how a texture may be used.
type TextureUsage uint32

const (
	TextureUsageNone    TextureUsage = 0
	TextureUsageCopySrc TextureUsage = 1 << iota
	TextureUsageCopyDst
	TextureUsageTextureBinding
	TextureUsageStorageBinding
	TextureUsageRenderAttachment
)

// LoadOp selects the operation applied to a render-pass attachment at the
// start of the pass.
type LoadOp uint8

const (
	LoadOpLoad LoadOp = iota
	LoadOpClear
	LoadOpDontCare
)

// StoreOp selects the operation applied to a render-pass attachment at the
// end of the pass.
type StoreOp uint8

const (
	StoreOpStore StoreOp = iota
	StoreOpDontCare
)

// Color is an RGBA color used for clear values and blend constants.
type Color struct {
	R, G, B, A float64
}

// PrimitiveTopology selects how vertices assemble into primitives.
type PrimitiveTopology uint8

const (
	TopologyTriangleList PrimitiveTopology = iota
	TopologyTriangleStrip
	TopologyLineList
	TopologyLineStrip
	TopologyPointList
)

// IndexFormat selects the element width of an index buffer.
type IndexFormat uint8

const (
	IndexFormatUint16 IndexFormat = iota
	IndexFormatUint32
)

// QueueKind distinguishes the three command-submission queues the frame
// context (spec.md §4.C) and dynamic buffer barrier emission reason about.
type QueueKind uint8

const (
	QueueGraphics QueueKind = iota
	QueueCompute
	QueueTransfer
	QueueCount
)
