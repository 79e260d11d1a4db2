package frame_test

import (
	"testing"

	"github.com/kryne-engine/kryne2/core/frame"
	"github.com/kryne-engine/kryne2/hal"
	_ "github.com/kryne-engine/kryne2/hal/noop"
)

func openNoopDevice(t *testing.T) (hal.Device, hal.Queue) {
	t.Helper()
	provider, ok := hal.GetProvider(hal.BackendNoop)
	if !ok {
		t.Fatal("noop backend should self-register via its init()")
	}
	instance, err := provider.CreateInstance(&hal.InstanceDescriptor{})
	if err != nil {
		t.Fatalf("CreateInstance: %v", err)
	}
	adapters := instance.EnumerateAdapters(nil)
	if len(adapters) == 0 {
		t.Fatal("noop instance should expose at least one adapter")
	}
	opened, err := adapters[0].Adapter.Open()
	if err != nil {
		t.Fatalf("Adapter.Open: %v", err)
	}
	return opened.Device, opened.Queue
}

func TestBeginEndCommitRoundTrip(t *testing.T) {
	device, queue := openNoopDevice(t)
	sched := frame.NewScheduler(device)

	enc, err := sched.BeginCommandList(hal.QueueGraphics)
	if err != nil {
		t.Fatalf("BeginCommandList: %v", err)
	}
	if _, err := sched.EndCommandList(hal.QueueGraphics, enc); err != nil {
		t.Fatalf("EndCommandList: %v", err)
	}
	if err := sched.Commit(hal.QueueGraphics, queue); err != nil {
		t.Fatalf("Commit: %v", err)
	}
}

func TestPrepareForNextFrameRecyclesEncoders(t *testing.T) {
	device, queue := openNoopDevice(t)
	sched := frame.NewScheduler(device)

	frameCount := uint64(device.GetFrameContextCount())
	for f := uint64(1); f <= frameCount+2; f++ {
		enc, err := sched.BeginCommandList(hal.QueueGraphics)
		if err != nil {
			t.Fatalf("frame %d: BeginCommandList: %v", f, err)
		}
		if _, err := sched.EndCommandList(hal.QueueGraphics, enc); err != nil {
			t.Fatalf("frame %d: EndCommandList: %v", f, err)
		}
		if err := sched.Commit(hal.QueueGraphics, queue); err != nil {
			t.Fatalf("frame %d: Commit: %v", f, err)
		}
		if err := device.EndFrame(f); err != nil {
			t.Fatalf("frame %d: EndFrame: %v", f, err)
		}
		if err := sched.PrepareForNextFrame(f + 1); err != nil {
			t.Fatalf("frame %d: PrepareForNextFrame: %v", f, err)
		}
	}

	if sched.CurrentFrameID() != frameCount+3 {
		t.Errorf("CurrentFrameID() = %d, want %d", sched.CurrentFrameID(), frameCount+3)
	}
}

func TestWaitForFrameDelegatesToDevice(t *testing.T) {
	device, _ := openNoopDevice(t)
	sched := frame.NewScheduler(device)

	if err := device.EndFrame(1); err != nil {
		t.Fatalf("EndFrame: %v", err)
	}
	if err := sched.WaitForFrame(1); err != nil {
		t.Errorf("WaitForFrame(1) after EndFrame(1): %v", err)
	}
}
