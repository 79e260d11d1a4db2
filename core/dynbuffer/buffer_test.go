package dynbuffer_test

import (
	"testing"

	"github.com/kryne-engine/kryne2/core/dynbuffer"
	"github.com/kryne-engine/kryne2/core/registry"
	"github.com/kryne-engine/kryne2/hal"
	_ "github.com/kryne-engine/kryne2/hal/noop"
)

func openNoopRegistry(t *testing.T) *registry.Registry {
	t.Helper()
	provider, ok := hal.GetProvider(hal.BackendNoop)
	if !ok {
		t.Fatal("noop backend should self-register")
	}
	instance, err := provider.CreateInstance(&hal.InstanceDescriptor{})
	if err != nil {
		t.Fatalf("CreateInstance: %v", err)
	}
	opened, err := instance.EnumerateAdapters(nil)[0].Adapter.Open()
	if err != nil {
		t.Fatalf("Adapter.Open: %v", err)
	}
	return registry.New(opened.Device)
}

func TestInitSelectsDirectPathOnNoopBackend(t *testing.T) {
	reg := openNoopRegistry(t)
	buf, err := dynbuffer.Init(reg, "uniforms", 256, hal.BufferUsageUniform, 3)
	if err != nil {
		t.Fatalf("Init: %v", err)
	}
	defer buf.Destroy()

	data, err := buf.Map("uniforms")
	if err != nil {
		t.Fatalf("Map: %v", err)
	}
	if len(data) != 256 {
		t.Fatalf("mapped size = %d, want 256", len(data))
	}
	data[0] = 0x42
	buf.Unmap()
}

func TestNextFrameRotatesThroughEverySlot(t *testing.T) {
	reg := openNoopRegistry(t)
	buf, err := dynbuffer.Init(reg, "ring", 64, hal.BufferUsageUniform, 3)
	if err != nil {
		t.Fatalf("Init: %v", err)
	}
	defer buf.Destroy()

	seen := map[hal.Buffer]bool{}
	for i := 0; i < 3; i++ {
		data, err := buf.Map("ring")
		if err != nil {
			t.Fatalf("Map: %v", err)
		}
		if len(data) == 0 {
			t.Fatalf("Map returned empty data on rotation %d", i)
		}
		buf.Unmap()
		h := buf.Handle()
		native, _, ok := reg.GetBuffer(h)
		if !ok {
			t.Fatalf("rotation %d: handle %v not found in registry", i, h)
		}
		seen[native] = true
		buf.NextFrame()
	}
	if len(seen) != 3 {
		t.Errorf("expected 3 distinct buffers across a full rotation, saw %d", len(seen))
	}
}

func TestRequestResizeIsDeferredUntilMap(t *testing.T) {
	reg := openNoopRegistry(t)
	buf, err := dynbuffer.Init(reg, "resizable", 64, hal.BufferUsageUniform, 2)
	if err != nil {
		t.Fatalf("Init: %v", err)
	}
	defer buf.Destroy()

	buf.RequestResize(128)
	if buf.Size() != 64 {
		t.Fatalf("Size() changed before Map: got %d, want 64 (unchanged)", buf.Size())
	}

	data, err := buf.Map("resizable")
	if err != nil {
		t.Fatalf("Map: %v", err)
	}
	defer buf.Unmap()
	if len(data) != 128 {
		t.Fatalf("mapped size after resize = %d, want 128", len(data))
	}
	if buf.Size() != 128 {
		t.Fatalf("Size() after Map = %d, want 128", buf.Size())
	}
}

func TestResizeRetiresOldGenerationUntilRotationCompletes(t *testing.T) {
	reg := openNoopRegistry(t)
	const frames = 3
	buf, err := dynbuffer.Init(reg, "retiring", 64, hal.BufferUsageUniform, frames)
	if err != nil {
		t.Fatalf("Init: %v", err)
	}
	defer buf.Destroy()

	oldHandle := buf.Handle()
	buf.RequestResize(256)
	if _, err := buf.Map("retiring"); err != nil {
		t.Fatalf("Map: %v", err)
	}
	buf.Unmap()

	// The old generation's buffer must still resolve in the registry
	// immediately after the resize: other in-flight frames may still be
	// reading it.
	if _, _, ok := reg.GetBuffer(oldHandle); !ok {
		t.Fatal("old generation buffer destroyed before its frames rotated past it")
	}

	for i := 0; i < frames; i++ {
		buf.NextFrame()
	}

	if _, _, ok := reg.GetBuffer(oldHandle); ok {
		t.Error("old generation buffer still resolves after a full rotation past its resize")
	}
}

func TestPrepareBuffersEmitsDirectPathBarrier(t *testing.T) {
	reg := openNoopRegistry(t)
	buf, err := dynbuffer.Init(reg, "direct", 64, hal.BufferUsageUniform, 2)
	if err != nil {
		t.Fatalf("Init: %v", err)
	}
	defer buf.Destroy()

	enc, err := reg.Device().CreateCommandEncoder(&hal.CommandEncoderDescriptor{Queue: hal.QueueGraphics})
	if err != nil {
		t.Fatalf("CreateCommandEncoder: %v", err)
	}
	if err := enc.BeginEncoding("prepare"); err != nil {
		t.Fatalf("BeginEncoding: %v", err)
	}

	access := hal.StateTransition{SyncStage: hal.SyncStageVertexShader, Access: hal.AccessUniformRead, Layout: hal.LayoutGeneral}
	buf.PrepareBuffers(enc, access)

	if _, err := enc.EndEncoding(); err != nil {
		t.Fatalf("EndEncoding: %v", err)
	}
}
