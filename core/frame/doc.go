// Package frame implements the per-in-flight-frame scheduler (spec.md
// §4.C "Frame context"): one slot per frame-in-flight, each owning a
// recycling command-encoder allocator per queue kind.
//
// Fence/semaphore bookkeeping lives inside the hal.Device implementation
// (GetFrameContextCount, EndFrame, WaitForFrame, IsFrameExecuted); this
// package only decides which slot is "current" and recycles that slot's
// command encoders once the device confirms the frame that last used them
// has finished executing on the GPU.
//
// Grounded on the teacher's internal/thread channel-guarded dispatch
// pattern, adapted here to mutex-guarded free/used/pending lists per queue
// per slot, per spec.md §4.C: "Command-pool access inside a frame context
// is mutex-protected to allow multiple fibers to record simultaneously."
package frame
