package registry_test

import (
	"testing"

	"github.com/kryne-engine/kryne2/core/registry"
	"github.com/kryne-engine/kryne2/hal"
	_ "github.com/kryne-engine/kryne2/hal/noop"
)

func openNoopDevice(t *testing.T) hal.Device {
	t.Helper()
	provider, ok := hal.GetProvider(hal.BackendNoop)
	if !ok {
		t.Fatal("noop backend should self-register")
	}
	instance, err := provider.CreateInstance(&hal.InstanceDescriptor{})
	if err != nil {
		t.Fatalf("CreateInstance: %v", err)
	}
	adapters := instance.EnumerateAdapters(nil)
	opened, err := adapters[0].Adapter.Open()
	if err != nil {
		t.Fatalf("Adapter.Open: %v", err)
	}
	return opened.Device
}

func TestCreateBufferRejectsEmptyUsage(t *testing.T) {
	r := registry.New(openNoopDevice(t))
	if _, err := r.CreateBuffer(hal.BufferDescriptor{Size: 256}); err == nil {
		t.Error("CreateBuffer with BufferUsageNone should fail validation")
	}
}

func TestCreateBufferRoundTrip(t *testing.T) {
	r := registry.New(openNoopDevice(t))
	h, err := r.CreateBuffer(hal.BufferDescriptor{Size: 256, Usage: hal.BufferUsageUniform, Mappable: true})
	if err != nil {
		t.Fatalf("CreateBuffer: %v", err)
	}
	if _, _, ok := r.GetBuffer(h); !ok {
		t.Error("GetBuffer should find a freshly created buffer")
	}

	r.DestroyBuffer(h)
	if _, _, ok := r.GetBuffer(h); ok {
		t.Error("GetBuffer should miss after DestroyBuffer")
	}

	// Idempotent: destroying again must not panic.
	r.DestroyBuffer(h)
}

func TestCreateTextureValidatesDimensions(t *testing.T) {
	r := registry.New(openNoopDevice(t))
	cases := []hal.TextureDescriptor{
		{Width: 0, Height: 4, DepthOrLayers: 1, MipLevelCount: 1, Usage: hal.TextureUsageTextureBinding},
		{Width: 4, Height: 0, DepthOrLayers: 1, MipLevelCount: 1, Usage: hal.TextureUsageTextureBinding},
		{Width: 4, Height: 4, DepthOrLayers: 0, MipLevelCount: 1, Usage: hal.TextureUsageTextureBinding},
		{Width: 4, Height: 4, DepthOrLayers: 1, MipLevelCount: 0, Usage: hal.TextureUsageTextureBinding},
		{Width: 4, Height: 4, DepthOrLayers: 1, MipLevelCount: 1, Usage: hal.TextureUsageNone},
	}
	for i, desc := range cases {
		if _, err := r.CreateTexture(desc); err == nil {
			t.Errorf("case %d: expected validation error, got none", i)
		}
	}
}

func TestCreateTextureRejectsIncoherentDepthStencilUsage(t *testing.T) {
	r := registry.New(openNoopDevice(t))
	desc := hal.TextureDescriptor{
		Width: 4, Height: 4, DepthOrLayers: 1, MipLevelCount: 1,
		Format: hal.FormatDepth32Float,
		Usage:  hal.TextureUsageTextureBinding,
	}
	if _, err := r.CreateTexture(desc); err == nil {
		t.Error("depth-stencil format without RenderAttachment usage should fail validation")
	}
}

func TestCreateTextureViewNeedsValidTexture(t *testing.T) {
	r := registry.New(openNoopDevice(t))
	tex, err := r.CreateTexture(hal.TextureDescriptor{
		Width: 4, Height: 4, DepthOrLayers: 1, MipLevelCount: 1,
		Usage: hal.TextureUsageTextureBinding,
	})
	if err != nil {
		t.Fatalf("CreateTexture: %v", err)
	}
	if _, err := r.CreateTextureView(tex, hal.TextureViewDescriptor{}); err != nil {
		t.Errorf("CreateTextureView on a valid texture: %v", err)
	}

	r.DestroyTexture(tex)
	if _, err := r.CreateTextureView(tex, hal.TextureViewDescriptor{}); err == nil {
		t.Error("CreateTextureView against a destroyed texture should fail")
	}
}

func TestNeedsStagingBufferDelegatesToDevice(t *testing.T) {
	r := registry.New(openNoopDevice(t))
	h, err := r.CreateBuffer(hal.BufferDescriptor{Size: 64, Usage: hal.BufferUsageUniform, Mappable: true})
	if err != nil {
		t.Fatalf("CreateBuffer: %v", err)
	}
	if r.NeedsStagingBuffer(h) {
		t.Error("noop backend never needs a staging buffer")
	}
}
