package kryne2

import (
	"fmt"

	"github.com/kryne-engine/kryne2/hal"
)

// CreateBuffer creates a buffer from desc (spec.md §4.H).
func (c *Context) CreateBuffer(desc hal.BufferDescriptor) (Buffer, error) {
	var h Buffer
	var err error
	c.gpu.CallVoid(func() { h, err = c.registry.CreateBuffer(desc) })
	return h, err
}

// DestroyBuffer destroys h. Idempotent.
func (c *Context) DestroyBuffer(h Buffer) {
	c.gpu.CallVoid(func() { c.registry.DestroyBuffer(h) })
}

// MapBuffer returns a CPU-visible view of h's contents.
func (c *Context) MapBuffer(h Buffer) ([]byte, error) {
	var data []byte
	var err error
	c.gpu.CallVoid(func() { data, err = c.registry.MapBuffer(h) })
	return data, err
}

// UnmapBuffer closes a view opened by MapBuffer.
func (c *Context) UnmapBuffer(h Buffer) {
	c.gpu.CallVoid(func() { c.registry.UnmapBuffer(h) })
}

// CopyBuffer records a buffer-to-buffer copy on enc.
func (c *Context) CopyBuffer(enc hal.CommandEncoder, src, dst Buffer, regions []hal.BufferCopy) error {
	srcNative, _, ok := c.registry.GetBuffer(src)
	if !ok {
		return fmt.Errorf("kryne2: CopyBuffer: invalid source handle %v", src)
	}
	dstNative, _, ok := c.registry.GetBuffer(dst)
	if !ok {
		return fmt.Errorf("kryne2: CopyBuffer: invalid destination handle %v", dst)
	}
	enc.CopyBufferToBuffer(srcNative, dstNative, regions)
	return nil
}

// CreateTexture creates a texture from desc.
func (c *Context) CreateTexture(desc hal.TextureDescriptor) (Texture, error) {
	var h Texture
	var err error
	c.gpu.CallVoid(func() { h, err = c.registry.CreateTexture(desc) })
	return h, err
}

// DestroyTexture destroys h. Idempotent.
func (c *Context) DestroyTexture(h Texture) {
	c.gpu.CallVoid(func() { c.registry.DestroyTexture(h) })
}

// CreateTextureView creates a view of texture tex.
func (c *Context) CreateTextureView(tex Texture, desc hal.TextureViewDescriptor) (TextureView, error) {
	var h TextureView
	var err error
	c.gpu.CallVoid(func() { h, err = c.registry.CreateTextureView(tex, desc) })
	return h, err
}

// DestroyTextureView destroys h. Idempotent.
func (c *Context) DestroyTextureView(h TextureView) {
	c.gpu.CallVoid(func() { c.registry.DestroyTextureView(h) })
}

// CreateSampler creates a sampler from desc.
func (c *Context) CreateSampler(desc hal.SamplerDescriptor) (Sampler, error) {
	var h Sampler
	var err error
	c.gpu.CallVoid(func() { h, err = c.registry.CreateSampler(desc) })
	return h, err
}

// DestroySampler destroys h. Idempotent.
func (c *Context) DestroySampler(h Sampler) {
	c.gpu.CallVoid(func() { c.registry.DestroySampler(h) })
}

// CreateShaderModule creates a shader module from desc.
func (c *Context) CreateShaderModule(desc hal.ShaderModuleDescriptor) (ShaderModule, error) {
	var h ShaderModule
	var err error
	c.gpu.CallVoid(func() { h, err = c.registry.CreateShaderModule(desc) })
	return h, err
}

// DestroyShaderModule destroys h. Idempotent.
func (c *Context) DestroyShaderModule(h ShaderModule) {
	c.gpu.CallVoid(func() { c.registry.DestroyShaderModule(h) })
}

// UploadTexture uploads data into dst via a CPU-visible staging buffer,
// recording the copy on enc and leaving the staging buffer's destruction to
// the caller once the frame the copy was recorded in has finished
// executing — the façade does not guess a lifetime, since callers
// (rendergraph's executor, direct callers) already track frame completion
// through CommitFrame/WaitForFrame (spec.md §4.H "texture-data upload via a
// staging buffer").
func (c *Context) UploadTexture(enc hal.CommandEncoder, dst Texture, data []byte, layout hal.ImageDataLayout, size hal.Extent3D) (Buffer, error) {
	staging, err := c.CreateBuffer(hal.BufferDescriptor{
		Label:    "kryne2.UploadTexture.staging",
		Size:     uint64(len(data)),
		Usage:    hal.BufferUsageCopySrc | hal.BufferUsageMapWrite,
		Mappable: true,
	})
	if err != nil {
		return Buffer{}, fmt.Errorf("kryne2: UploadTexture: staging buffer: %w", err)
	}

	mapped, err := c.MapBuffer(staging)
	if err != nil {
		c.DestroyBuffer(staging)
		return Buffer{}, fmt.Errorf("kryne2: UploadTexture: map staging buffer: %w", err)
	}
	copy(mapped, data)
	c.UnmapBuffer(staging)

	stagingNative, _, ok := c.registry.GetBuffer(staging)
	if !ok {
		c.DestroyBuffer(staging)
		return Buffer{}, fmt.Errorf("kryne2: UploadTexture: staging buffer vanished before copy")
	}
	dstNative, _, ok := c.registry.GetTexture(dst)
	if !ok {
		c.DestroyBuffer(staging)
		return Buffer{}, fmt.Errorf("kryne2: UploadTexture: invalid destination texture %v", dst)
	}

	enc.CopyBufferToTexture(stagingNative, dstNative, []hal.BufferTextureCopy{{
		BufferLayout: layout,
		TextureBase:  hal.ImageCopyTexture{Texture: dstNative},
		Size:         size,
	}})
	return staging, nil
}
