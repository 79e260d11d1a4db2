package noop

import (
	"context"
	"log/slog"
	"runtime"
	"sync"
	"sync/atomic"

	"github.com/kryne-engine/kryne2/hal"
)

// Device implements the frame-id-threaded hal.Device contract for the noop
// backend. frameCount is the N in-flight-frame count (spec.md §3); executed
// tracks the highest frame id the noop "GPU" has finished, advanced
// synchronously by EndFrame since there is no real submission latency to
// model.
type Device struct {
	frameCount uint8
	mu         sync.Mutex
	current    uint64
	executed   atomic.Uint64
	presentIdx atomic.Uint32
}

func newDevice(frameCount uint8) *Device {
	return &Device{frameCount: frameCount, current: 1}
}

// GetFrameContextCount returns N.
func (d *Device) GetFrameContextCount() uint8 { return d.frameCount }

// EndFrame advances the device past frameID (spec.md §4.C "Commit").
func (d *Device) EndFrame(frameID uint64) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.executed.Store(frameID)
	if frameID >= d.current {
		d.current = frameID + 1
	}
	d.presentIdx.Add(1)
	hal.Logger().Debug("noop: frame ended", "frameID", frameID)
	return nil
}

// WaitForFrame yields until EndFrame(frameID) has run; the noop backend marks
// a frame executed as soon as EndFrame is called.
func (d *Device) WaitForFrame(frameID uint64) error {
	for d.executed.Load() < frameID {
		// Synchronous backend: EndFrame always runs before WaitForFrame is
		// reachable in a single-threaded caller; this loop only protects
		// against being called before the corresponding EndFrame under
		// concurrent use.
		runtime.Gosched()
	}
	return nil
}

// IsFrameExecuted reports whether frameID has finished.
func (d *Device) IsFrameExecuted(frameID uint64) bool {
	return d.executed.Load() >= frameID
}

// GetApplicationInfo returns static noop identification.
func (d *Device) GetApplicationInfo() hal.ApplicationInfo {
	return hal.ApplicationInfo{Backend: hal.BackendNoop, AdapterName: "Noop Adapter", DriverVersion: "noop-1.0"}
}

// GetShaderFileExtension returns the noop backend's (nonexistent) shader
// extension; callers should not load shaders for this backend.
func (d *Device) GetShaderFileExtension() string { return "" }

// SupportsNonGlobalBarriers reports true: the noop backend tracks nothing,
// so any barrier scoping is "supported" trivially.
func (d *Device) SupportsNonGlobalBarriers() bool { return true }

// RenderPassNeedsUsageDeclaration reports false: no descriptor heap to
// pre-declare usage against.
func (d *Device) RenderPassNeedsUsageDeclaration() bool { return false }

// ComputePassNeedsUsageDeclaration reports false, for the same reason.
func (d *Device) ComputePassNeedsUsageDeclaration() bool { return false }

// NeedsStagingBuffer reports false: noop buffers are always host-addressable
// plain byte slices.
func (d *Device) NeedsStagingBuffer(_ hal.BufferUsage) bool { return false }

func (d *Device) CreateBuffer(desc *hal.BufferDescriptor) (hal.Buffer, error) {
	hal.Logger().Debug("noop: buffer created", "label", desc.Label, "size", desc.Size)
	return &Buffer{data: make([]byte, desc.Size)}, nil
}

func (d *Device) MapBuffer(buffer hal.Buffer) ([]byte, error) {
	b, ok := buffer.(*Buffer)
	if !ok {
		return nil, hal.ErrInvalidHandle
	}
	return b.data, nil
}

func (d *Device) UnmapBuffer(_ hal.Buffer) {}

func (d *Device) DestroyBuffer(_ hal.Buffer) {
	hal.Logger().Debug("noop: buffer destroyed")
}

func (d *Device) CreateTexture(desc *hal.TextureDescriptor) (hal.Texture, error) {
	hal.Logger().Debug("noop: texture created", "label", desc.Label, "width", desc.Width, "height", desc.Height)
	return &Texture{desc: *desc}, nil
}

func (d *Device) DestroyTexture(_ hal.Texture) {
	hal.Logger().Debug("noop: texture destroyed")
}

func (d *Device) CreateTextureView(_ hal.Texture, _ *hal.TextureViewDescriptor) (hal.TextureView, error) {
	return &Resource{}, nil
}

func (d *Device) DestroyTextureView(_ hal.TextureView) {}

func (d *Device) CreateSampler(_ *hal.SamplerDescriptor) (hal.Sampler, error) {
	return &Resource{}, nil
}

func (d *Device) DestroySampler(_ hal.Sampler) {}

func (d *Device) CreateBindGroupLayout(_ *hal.BindGroupLayoutDescriptor) (hal.BindGroupLayout, error) {
	return &Resource{}, nil
}

func (d *Device) DestroyBindGroupLayout(_ hal.BindGroupLayout) {}

func (d *Device) CreateBindGroup(_ *hal.BindGroupDescriptor) (hal.BindGroup, error) {
	return &Resource{}, nil
}

func (d *Device) WriteBindGroup(_ hal.BindGroup, _ []hal.BindGroupEntry) {}

func (d *Device) DestroyBindGroup(_ hal.BindGroup) {}

func (d *Device) CreatePipelineLayout(_ *hal.PipelineLayoutDescriptor) (hal.PipelineLayout, error) {
	return &Resource{}, nil
}

func (d *Device) DestroyPipelineLayout(_ hal.PipelineLayout) {}

func (d *Device) CreateShaderModule(_ *hal.ShaderModuleDescriptor) (hal.ShaderModule, error) {
	return &Resource{}, nil
}

func (d *Device) DestroyShaderModule(_ hal.ShaderModule) {}

func (d *Device) CreateRenderPipeline(_ *hal.RenderPipelineDescriptor) (hal.RenderPipeline, error) {
	return &Resource{}, nil
}

func (d *Device) DestroyRenderPipeline(_ hal.RenderPipeline) {}

func (d *Device) CreateComputePipeline(_ *hal.ComputePipelineDescriptor) (hal.ComputePipeline, error) {
	return &Resource{}, nil
}

func (d *Device) DestroyComputePipeline(_ hal.ComputePipeline) {}

func (d *Device) CreateCommandEncoder(_ *hal.CommandEncoderDescriptor) (hal.CommandEncoder, error) {
	return &CommandEncoder{}, nil
}

// GetPresentRenderTargetView returns a placeholder swapchain view.
func (d *Device) GetPresentRenderTargetView() hal.TextureView { return &Resource{} }

// GetPresentTexture returns a placeholder swapchain texture.
func (d *Device) GetPresentTexture() hal.Texture { return &Texture{} }

// GetCurrentPresentImageIndex cycles through the frame-context count.
func (d *Device) GetCurrentPresentImageIndex() uint32 {
	return d.presentIdx.Load() % uint32(d.frameCount)
}

// Destroy is a no-op.
func (d *Device) Destroy() {
	hal.Logger().LogAttrs(context.Background(), slog.LevelInfo, "noop: device destroyed")
}
