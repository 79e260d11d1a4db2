// Package dynbuffer implements the dynamic buffer (spec.md §4.G): a
// CPU-writable buffer that rotates across the device's in-flight frame
// contexts so that writing frame N's data never stalls on frame N-1's GPU
// reads.
//
// Two data paths exist, selected once at Init by
// registry.Registry.NeedsStagingBufferForUsage:
//
//   - Direct path: the backend can map GPU-visible memory directly
//     (BufferDescriptor.Mappable). One mappable buffer per in-flight frame;
//     Map/Unmap operate on it in place, and PrepareBuffers emits a single
//     "All -> All" barrier constrained to the requested access mask.
//   - Staging path: the buffer's usage (e.g. BufferUsageUniform on a backend
//     that forbids mapping uniform buffers) requires a host-visible staging
//     buffer plus a GPU-only backing buffer. PrepareBuffers transitions the
//     staging buffer None->TransferSrc and the GPU buffer None->TransferDst,
//     records a copy, then transitions the GPU buffer TransferDst->the
//     requested access.
//
// RequestResize never reallocates immediately: per spec.md §4.G it is
// deferred until the next Map, and the buffers it replaces are released only
// after a full frame rotation (every in-flight frame has stopped referencing
// them), mirroring the same N-deep delayed-release idiom
// core/frame.Scheduler uses for command encoder recycling.
//
// Grounded on the teacher's buffer-ring idiom (gogpu-wgpu's per-frame
// resource rotation) and spec.md §4.G's direct/staging barrier prose; the
// multi-slot rotation is a slot index advanced modulo the frame-context
// count inside this package (core/multiframe is not used).
package dynbuffer
