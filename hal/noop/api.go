// Package noop provides an in-process reference backend for the HAL
// contract (spec.md §6). It performs no real GPU work: every resource is a
// placeholder and frame advancement is tracked with plain counters. It
// exists so the rest of the runtime (frame context, descriptor manager,
// render graph) can be exercised and tested without a Vulkan, DX12, or
// Metal driver present, mirroring the role gogpu/wgpu's own noop backend
// plays for that project.
package noop

import (
	"context"
	"log/slog"

	"github.com/kryne-engine/kryne2/hal"
)

// Provider implements hal.Provider for the noop backend.
type Provider struct{}

// Variant identifies this provider as the noop backend.
func (Provider) Variant() hal.Backend { return hal.BackendNoop }

// IsAvailable always returns true: the noop backend has no host
// requirements.
func (Provider) IsAvailable() bool { return true }

// CreateInstance creates a new noop instance.
func (Provider) CreateInstance(_ *hal.InstanceDescriptor) (hal.Instance, error) {
	hal.Logger().LogAttrs(context.Background(), slog.LevelInfo, "noop: instance created")
	return &Instance{}, nil
}

// Instance implements hal.Instance for the noop backend.
type Instance struct{}

// CreateSurface creates a noop surface, ignoring the platform handles.
func (i *Instance) CreateSurface(_, _ uintptr) (hal.Surface, error) {
	return &Surface{}, nil
}

// EnumerateAdapters returns a single placeholder adapter.
func (i *Instance) EnumerateAdapters(_ hal.Surface) []hal.ExposedAdapter {
	return []hal.ExposedAdapter{
		{
			Adapter: &Adapter{},
			Info: hal.ApplicationInfo{
				Backend:       hal.BackendNoop,
				AdapterName:   "Noop Adapter",
				DriverVersion: "noop-1.0",
			},
			Capabilities: hal.Capabilities{
				SupportsNonGlobalBarriers:        true,
				RenderPassNeedsUsageDeclaration:  false,
				ComputePassNeedsUsageDeclaration: false,
			},
		},
	}
}

// Destroy is a no-op.
func (i *Instance) Destroy() {}

// Adapter implements hal.Adapter for the noop backend.
type Adapter struct{}

// Open opens a noop device with a fixed triple-buffered frame context
// count, matching the N=2-or-3 range spec.md §3 names.
func (a *Adapter) Open() (hal.OpenDevice, error) {
	d := newDevice(3)
	hal.Logger().LogAttrs(context.Background(), slog.LevelInfo, "noop: device opened", slog.Int("frameContextCount", int(d.frameCount)))
	return hal.OpenDevice{Device: d, Queue: &Queue{device: d}}, nil
}

// Destroy is a no-op.
func (a *Adapter) Destroy() {}
