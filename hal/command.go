package hal

// CommandEncoder records GPU commands for one queue within the current
// frame context (spec.md §4.C, §4.H). Single-use: after EndEncoding the
// encoder must not be reused.
type CommandEncoder interface {
	BeginEncoding(label string) error
	EndEncoding() (CommandBuffer, error)
	DiscardEncoding()

	// TransitionBuffers and TransitionTextures place explicit barriers.
	// Required on backends where SupportsNonGlobalBarriers is true; a no-op
	// (folded into automatic hazard tracking) on backends where it is false.
	TransitionBuffers(barriers []BufferBarrier)
	TransitionTextures(barriers []TextureBarrier)

	ClearBuffer(buffer Buffer, offset, size uint64)
	CopyBufferToBuffer(src, dst Buffer, regions []BufferCopy)
	CopyBufferToTexture(src Buffer, dst Texture, regions []BufferTextureCopy)
	CopyTextureToBuffer(src Texture, dst Buffer, regions []BufferTextureCopy)
	CopyTextureToTexture(src, dst Texture, regions []TextureCopy)

	// BeginRenderPass/BeginComputePass return pass encoders (spec.md §4.H).
	BeginRenderPass(desc *RenderPassDescriptor) RenderPassEncoder
	BeginComputePass(desc *ComputePassDescriptor) ComputePassEncoder
}

// RenderPassEncoder records draw commands within a render pass.
type RenderPassEncoder interface {
	End()
	SetPipeline(pipeline RenderPipeline)
	SetBindGroup(index uint32, group BindGroup, dynamicOffsets []uint32)
	SetVertexBuffer(slot uint32, buffer Buffer, offset uint64)
	SetIndexBuffer(buffer Buffer, format IndexFormat, offset uint64)
	SetViewport(x, y, width, height, minDepth, maxDepth float32)
	SetScissorRect(x, y, width, height uint32)
	SetBlendConstant(color Color)
	SetStencilReference(reference uint32)
	SetPushConstants(visibility ShaderStages, offset uint32, data []byte)

	Draw(vertexCount, instanceCount, firstVertex, firstInstance uint32)
	DrawIndexed(indexCount, instanceCount, firstIndex uint32, baseVertex int32, firstInstance uint32)
	DrawIndirect(buffer Buffer, offset uint64)
	DrawIndexedIndirect(buffer Buffer, offset uint64)
}

// ComputePassEncoder records dispatch commands within a compute pass.
type ComputePassEncoder interface {
	End()
	SetPipeline(pipeline ComputePipeline)
	SetBindGroup(index uint32, group BindGroup, dynamicOffsets []uint32)
	SetPushConstants(visibility ShaderStages, offset uint32, data []byte)
	Dispatch(x, y, z uint32)
	DispatchIndirect(buffer Buffer, offset uint64)
}

// BufferBarrier defines a buffer state transition (spec.md §4.J).
type BufferBarrier struct {
	Buffer Buffer
	Usage  BufferUsageTransition
}

// TextureBarrier defines a texture state transition, scoped to Range.
type TextureBarrier struct {
	Texture Texture
	Range   TextureRange
	Usage   TextureUsageTransition
}

// StateTransition is the (sync-stage, access, layout) tuple a barrier
// transitions from/to, grounded on the teacher's track.StateTransition and
// generalised from buffer-only usage to the full tuple spec.md §4.J names.
type StateTransition struct {
	SyncStage SyncStage
	Access    Access
	Layout    Layout
}

// NeedsBarrier reports whether moving from t to `to` requires a barrier.
// Differing states always do. Identical read-only states never need a
// barrier; identical states that include any write access still get one,
// so back-to-back writes stay ordered.
func (t StateTransition) NeedsBarrier(to StateTransition) bool {
	if t != to {
		return true
	}
	const writes = AccessShaderWrite | AccessColorAttachmentWrite | AccessDepthStencilAttachmentWrite |
		AccessTransferWrite | AccessHostWrite | AccessAll
	return t.Access&writes != 0
}

// BufferUsageTransition carries the source and destination state of a
// buffer barrier.
type BufferUsageTransition struct {
	From, To StateTransition
}

// TextureUsageTransition carries the source and destination state of a
// texture barrier.
type TextureUsageTransition struct {
	From, To StateTransition
}

// TextureRange specifies a range of texture subresources a barrier or copy
// applies to.
type TextureRange struct {
	Aspect          TextureAspect
	BaseMipLevel    uint32
	MipLevelCount   uint32
	BaseArrayLayer  uint32
	ArrayLayerCount uint32
}

// BufferCopy defines a buffer-to-buffer copy region.
type BufferCopy struct {
	SrcOffset uint64
	DstOffset uint64
	Size      uint64
}

// BufferTextureCopy defines a buffer<->texture copy region.
type BufferTextureCopy struct {
	BufferLayout ImageDataLayout
	TextureBase  ImageCopyTexture
	Size         Extent3D
}

// TextureCopy defines a texture-to-texture copy region.
type TextureCopy struct {
	SrcBase ImageCopyTexture
	DstBase ImageCopyTexture
	Size    Extent3D
}

// ImageDataLayout describes the layout of image data packed into a buffer.
type ImageDataLayout struct {
	Offset       uint64
	BytesPerRow  uint32
	RowsPerImage uint32
}

// ImageCopyTexture specifies a texture location for copying.
type ImageCopyTexture struct {
	Texture  Texture
	MipLevel uint32
	Origin   Origin3D
	Aspect   TextureAspect
}

// Origin3D is a 3D origin point.
type Origin3D struct {
	X, Y, Z uint32
}

// Extent3D is a 3D extent.
type Extent3D struct {
	Width, Height, DepthOrArrayLayers uint32
}
