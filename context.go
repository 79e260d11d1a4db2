package kryne2

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/kryne-engine/kryne2/core/frame"
	"github.com/kryne-engine/kryne2/core/registry"
	"github.com/kryne-engine/kryne2/hal"
	"github.com/kryne-engine/kryne2/internal/thread"
)

// Context is the graphics-context façade (spec.md §4.H): construction
// places the chosen backend behind the façade and exposes one stable public
// surface regardless of which hal.Provider backs it.
type Context struct {
	gpu       *thread.Thread
	device    hal.Device
	queue     hal.Queue
	registry  *registry.Registry
	scheduler *frame.Scheduler
}

// Open bootstraps a Context on the named backend: it resolves the
// hal.Provider, creates an instance, opens the first adapter compatible
// with surfaceHint (nil for headless/offscreen use), and wires the
// resulting device into a registry and frame scheduler. All device calls
// the façade subsequently makes are serialized onto a single OS thread via
// internal/thread, since hal.Device implementations are not required to
// tolerate concurrent calls.
func Open(backend hal.Backend, instanceDesc *hal.InstanceDescriptor, surfaceHint hal.Surface) (*Context, error) {
	provider, ok := hal.GetProvider(backend)
	if !ok {
		return nil, fmt.Errorf("kryne2: no hal.Provider registered for backend %v", backend)
	}

	gpu := thread.New()
	var ctx *Context
	var openErr error
	gpu.CallVoid(func() {
		instance, err := provider.CreateInstance(instanceDesc)
		if err != nil {
			openErr = fmt.Errorf("kryne2: CreateInstance: %w", err)
			return
		}
		adapters := instance.EnumerateAdapters(surfaceHint)
		if len(adapters) == 0 {
			openErr = fmt.Errorf("kryne2: backend %v exposed no adapters", backend)
			return
		}
		opened, err := adapters[0].Adapter.Open()
		if err != nil {
			openErr = fmt.Errorf("kryne2: Adapter.Open: %w", err)
			return
		}
		ctx = &Context{
			gpu:       gpu,
			device:    opened.Device,
			queue:     opened.Queue,
			registry:  registry.New(opened.Device),
			scheduler: frame.NewScheduler(opened.Device),
		}
	})
	if openErr != nil {
		gpu.Stop()
		return nil, openErr
	}
	info := ctx.device.GetApplicationInfo()
	hal.Logger().LogAttrs(context.Background(), slog.LevelInfo, "kryne2: context opened",
		slog.String("backend", info.Backend.String()), slog.String("adapter", info.AdapterName))
	return ctx, nil
}

// Device exposes the underlying hal.Device for components (rendergraph,
// core/descriptor, core/dynbuffer) that need it directly.
func (c *Context) Device() hal.Device { return c.device }

// Queue exposes the underlying hal.Queue.
func (c *Context) Queue() hal.Queue { return c.queue }

// Registry exposes the resource registry fronting this context's device.
func (c *Context) Registry() *registry.Registry { return c.registry }

// Scheduler exposes the frame-context scheduler backing this Context,
// needed to construct a rendergraph.Executor against it.
func (c *Context) Scheduler() *frame.Scheduler { return c.scheduler }

// CurrentFrameID returns the frame id the scheduler is currently recording
// into (spec.md §4.C, §4.H "every operation that depends on frame pacing
// threads the current frame_id").
func (c *Context) CurrentFrameID() uint64 { return c.scheduler.CurrentFrameID() }

// CommitFrame ends the current frame's recording and advances the
// scheduler to the next frame context, recycling command encoders whose
// frame has finished executing on the GPU.
func (c *Context) CommitFrame() error {
	var err error
	c.gpu.CallVoid(func() {
		frameID := c.scheduler.CurrentFrameID()
		if endErr := c.device.EndFrame(frameID); endErr != nil {
			err = fmt.Errorf("kryne2: EndFrame: %w", endErr)
			return
		}
		if prepErr := c.scheduler.PrepareForNextFrame(frameID + 1); prepErr != nil {
			err = fmt.Errorf("kryne2: PrepareForNextFrame: %w", prepErr)
			return
		}
		hal.Logger().Debug("kryne2: frame committed", "frameID", frameID)
	})
	return err
}

// WaitForFrame blocks until frameID has finished executing on the GPU.
func (c *Context) WaitForFrame(frameID uint64) error {
	var err error
	c.gpu.CallVoid(func() { err = c.device.WaitForFrame(frameID) })
	return err
}

// IsFrameExecuted reports whether frameID has finished executing, without
// blocking.
func (c *Context) IsFrameExecuted(frameID uint64) bool {
	result := c.gpu.Call(func() any { return c.device.IsFrameExecuted(frameID) })
	executed, _ := result.(bool)
	return executed
}

// GetPresentRenderTargetView returns the current swapchain render target.
func (c *Context) GetPresentRenderTargetView() hal.TextureView {
	result := c.gpu.Call(func() any { return c.device.GetPresentRenderTargetView() })
	view, _ := result.(hal.TextureView)
	return view
}

// GetCurrentPresentImageIndex returns the current swapchain image index.
func (c *Context) GetCurrentPresentImageIndex() uint32 {
	result := c.gpu.Call(func() any { return c.device.GetCurrentPresentImageIndex() })
	idx, _ := result.(uint32)
	return idx
}

// Close releases the device and stops the context's GPU thread. Every
// resource created through the context must be destroyed first.
func (c *Context) Close() {
	c.gpu.CallVoid(func() { c.device.Destroy() })
	c.gpu.Stop()
	hal.Logger().LogAttrs(context.Background(), slog.LevelInfo, "kryne2: context closed")
}
