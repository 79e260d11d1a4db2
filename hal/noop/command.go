package noop

import "github.com/kryne-engine/kryne2/hal"

// CommandEncoder implements hal.CommandEncoder for the noop backend.
type CommandEncoder struct{}

func (c *CommandEncoder) BeginEncoding(_ string) error { return nil }

func (c *CommandEncoder) EndEncoding() (hal.CommandBuffer, error) {
	return &Resource{}, nil
}

func (c *CommandEncoder) DiscardEncoding() {}

func (c *CommandEncoder) TransitionBuffers(_ []hal.BufferBarrier) {}

func (c *CommandEncoder) TransitionTextures(_ []hal.TextureBarrier) {}

func (c *CommandEncoder) ClearBuffer(buffer hal.Buffer, offset, size uint64) {
	if b, ok := buffer.(*Buffer); ok {
		end := offset + size
		if end > uint64(len(b.data)) {
			end = uint64(len(b.data))
		}
		for i := offset; i < end; i++ {
			b.data[i] = 0
		}
	}
}

func (c *CommandEncoder) CopyBufferToBuffer(src, dst hal.Buffer, regions []hal.BufferCopy) {
	s, sok := src.(*Buffer)
	d, dok := dst.(*Buffer)
	if !sok || !dok {
		return
	}
	for _, r := range regions {
		copy(d.data[r.DstOffset:r.DstOffset+r.Size], s.data[r.SrcOffset:r.SrcOffset+r.Size])
	}
}

func (c *CommandEncoder) CopyBufferToTexture(_ hal.Buffer, _ hal.Texture, _ []hal.BufferTextureCopy) {}

func (c *CommandEncoder) CopyTextureToBuffer(_ hal.Texture, _ hal.Buffer, _ []hal.BufferTextureCopy) {}

func (c *CommandEncoder) CopyTextureToTexture(_, _ hal.Texture, _ []hal.TextureCopy) {}

func (c *CommandEncoder) BeginRenderPass(_ *hal.RenderPassDescriptor) hal.RenderPassEncoder {
	return &RenderPassEncoder{}
}

func (c *CommandEncoder) BeginComputePass(_ *hal.ComputePassDescriptor) hal.ComputePassEncoder {
	return &ComputePassEncoder{}
}

// RenderPassEncoder implements hal.RenderPassEncoder for the noop backend.
type RenderPassEncoder struct{}

func (r *RenderPassEncoder) End()                                           {}
func (r *RenderPassEncoder) SetPipeline(_ hal.RenderPipeline)               {}
func (r *RenderPassEncoder) SetBindGroup(_ uint32, _ hal.BindGroup, _ []uint32) {}
func (r *RenderPassEncoder) SetVertexBuffer(_ uint32, _ hal.Buffer, _ uint64)   {}
func (r *RenderPassEncoder) SetIndexBuffer(_ hal.Buffer, _ hal.IndexFormat, _ uint64) {}
func (r *RenderPassEncoder) SetViewport(_, _, _, _, _, _ float32)           {}
func (r *RenderPassEncoder) SetScissorRect(_, _, _, _ uint32)               {}
func (r *RenderPassEncoder) SetBlendConstant(_ hal.Color)                   {}
func (r *RenderPassEncoder) SetStencilReference(_ uint32)                   {}
func (r *RenderPassEncoder) SetPushConstants(_ hal.ShaderStages, _ uint32, _ []byte) {}
func (r *RenderPassEncoder) Draw(_, _, _, _ uint32)                         {}
func (r *RenderPassEncoder) DrawIndexed(_, _, _ uint32, _ int32, _ uint32)  {}
func (r *RenderPassEncoder) DrawIndirect(_ hal.Buffer, _ uint64)            {}
func (r *RenderPassEncoder) DrawIndexedIndirect(_ hal.Buffer, _ uint64)     {}

// ComputePassEncoder implements hal.ComputePassEncoder for the noop backend.
type ComputePassEncoder struct{}

func (c *ComputePassEncoder) End()                                           {}
func (c *ComputePassEncoder) SetPipeline(_ hal.ComputePipeline)              {}
func (c *ComputePassEncoder) SetBindGroup(_ uint32, _ hal.BindGroup, _ []uint32) {}
func (c *ComputePassEncoder) SetPushConstants(_ hal.ShaderStages, _ uint32, _ []byte) {}
func (c *ComputePassEncoder) Dispatch(_, _, _ uint32)                        {}
func (c *ComputePassEncoder) DispatchIndirect(_ hal.Buffer, _ uint64)        {}
