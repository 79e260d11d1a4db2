package noop_test

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/kryne-engine/kryne2/hal"
	"github.com/kryne-engine/kryne2/hal/noop"
)

func openNoopDevice(t *testing.T) (hal.Instance, hal.Adapter, hal.OpenDevice) {
	t.Helper()
	instance, err := (noop.Provider{}).CreateInstance(nil)
	if err != nil {
		t.Fatalf("CreateInstance: %v", err)
	}
	adapters := instance.EnumerateAdapters(nil)
	if len(adapters) != 1 {
		t.Fatalf("expected 1 adapter, got %d", len(adapters))
	}
	opened, err := adapters[0].Adapter.Open()
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	return instance, adapters[0].Adapter, opened
}

func TestProviderIsAvailable(t *testing.T) {
	if !(noop.Provider{}).IsAvailable() {
		t.Error("noop provider should always be available")
	}
	if got := (noop.Provider{}).Variant(); got != hal.BackendNoop {
		t.Errorf("Variant() = %v, want BackendNoop", got)
	}
}

func TestDeviceFramePacing(t *testing.T) {
	_, _, opened := openNoopDevice(t)
	d := opened.Device
	defer d.Destroy()

	if d.GetFrameContextCount() == 0 {
		t.Fatal("frame context count must be non-zero")
	}
	if d.IsFrameExecuted(1) {
		t.Fatal("frame 1 should not be executed before EndFrame")
	}
	if err := d.EndFrame(1); err != nil {
		t.Fatalf("EndFrame: %v", err)
	}
	if !d.IsFrameExecuted(1) {
		t.Error("frame 1 should be executed after EndFrame(1)")
	}
	if err := d.WaitForFrame(1); err != nil {
		t.Errorf("WaitForFrame(1): %v", err)
	}
}

func TestBufferWriteAndCopy(t *testing.T) {
	_, _, opened := openNoopDevice(t)
	defer opened.Device.Destroy()

	buf, err := opened.Device.CreateBuffer(&hal.BufferDescriptor{Size: 16, Usage: hal.BufferUsageCopyDst})
	if err != nil {
		t.Fatalf("CreateBuffer: %v", err)
	}
	defer opened.Device.DestroyBuffer(buf)

	opened.Queue.WriteBuffer(buf, 0, []byte("hello world!!!!!"))

	dst, err := opened.Device.CreateBuffer(&hal.BufferDescriptor{Size: 16, Usage: hal.BufferUsageCopyDst})
	if err != nil {
		t.Fatalf("CreateBuffer dst: %v", err)
	}
	defer opened.Device.DestroyBuffer(dst)

	enc, err := opened.Device.CreateCommandEncoder(&hal.CommandEncoderDescriptor{Queue: hal.QueueTransfer})
	if err != nil {
		t.Fatalf("CreateCommandEncoder: %v", err)
	}
	if err := enc.BeginEncoding("copy"); err != nil {
		t.Fatalf("BeginEncoding: %v", err)
	}
	enc.CopyBufferToBuffer(buf, dst, []hal.BufferCopy{{Size: 16}})
	cb, err := enc.EndEncoding()
	if err != nil {
		t.Fatalf("EndEncoding: %v", err)
	}
	if err := opened.Queue.Submit([]hal.CommandBuffer{cb}); err != nil {
		t.Fatalf("Submit: %v", err)
	}

	got := dst.(*noop.Buffer)
	if string(got.Data()) != "hello world!!!!!" {
		t.Errorf("copied buffer contents = %q, want %q", got.Data(), "hello world!!!!!")
	}
}

func TestLifecycleEmitsLogRecords(t *testing.T) {
	orig := hal.Logger()
	t.Cleanup(func() { hal.SetLogger(orig) })

	var buf bytes.Buffer
	hal.SetLogger(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))

	_, _, opened := openNoopDevice(t)
	b, err := opened.Device.CreateBuffer(&hal.BufferDescriptor{Label: "scratch", Size: 4, Usage: hal.BufferUsageCopyDst})
	if err != nil {
		t.Fatalf("CreateBuffer: %v", err)
	}
	opened.Device.DestroyBuffer(b)
	if err := opened.Device.EndFrame(1); err != nil {
		t.Fatalf("EndFrame: %v", err)
	}
	opened.Device.Destroy()

	out := buf.String()
	for _, want := range []string{"instance created", "device opened", "buffer created", "buffer destroyed", "frame ended", "device destroyed"} {
		if !bytes.Contains([]byte(out), []byte(want)) {
			t.Errorf("log output missing %q, got:\n%s", want, out)
		}
	}
}

func TestSurfaceZeroAreaRejected(t *testing.T) {
	instance, _, opened := openNoopDevice(t)
	defer opened.Device.Destroy()

	surface, err := instance.CreateSurface(0, 0)
	if err != nil {
		t.Fatalf("CreateSurface: %v", err)
	}
	defer surface.Destroy()

	err = surface.Configure(opened.Device, &hal.SurfaceConfiguration{Width: 0, Height: 600})
	if err == nil {
		t.Fatal("expected ErrZeroArea for zero width")
	}
}
