// Package kryne2 is the public façade over the graphics abstraction runtime
// (spec.md §4.H): a single entry point that bootstraps a backend, owns the
// frame-context scheduler and resource registry, creates descriptor sets
// through core/descriptor, and threads every frame-paced call through the current frame id.
//
// Grounded on the teacher's root-package Instance/Adapter/Device bootstrap
// shape (gogpu-wgpu's own top-level wgpu.go), generalised from a single
// fixed WebGPU backend to spec.md §6's pluggable hal.Provider registry.
// GPU-call serialization reuses internal/thread.Thread — the teacher's own
// render-thread dispatcher — rather than introducing a second mechanism,
// since multiple backend implementations of hal.Device are not guaranteed
// to tolerate concurrent calls from arbitrary goroutines.
//
// Context deliberately does not own a rendergraph.Builder/Executor itself:
// Device, Queue, Registry, and Scheduler are exposed so callers wire a
// rendergraph.Registry/Builder/Executor directly against them, the same way
// the original keeps RenderGraph a separate module taking a device pointer
// rather than folding it into the graphics context type.
package kryne2
