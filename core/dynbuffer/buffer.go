package dynbuffer

import (
	"fmt"

	"github.com/kryne-engine/kryne2/core/pool"
	"github.com/kryne-engine/kryne2/core/registry"
	"github.com/kryne-engine/kryne2/hal"
)

// stateAll is the neutral "don't care" state transitions start/end on: the
// direct path's single barrier is All->All constrained to the caller's
// requested access, and every newly created buffer begins life here.
var stateAll = hal.StateTransition{SyncStage: hal.SyncStageAllCommands, Access: hal.AccessAll, Layout: hal.LayoutAll}

// retired holds a generation of replaced mappable/GPU buffers kept alive
// until every in-flight frame has rotated past the resize that orphaned
// them (spec.md §4.G), mirroring core/frame.Scheduler's delayed recycling.
type retired struct {
	framesRemaining uint8
	mappable        []pool.BufferHandle
	gpu             pool.BufferHandle
}

// Buffer is a dynamic buffer: one logical buffer that is safe to write from
// the CPU every frame without stalling on GPU reads of a previous frame's
// contents (spec.md §4.G).
type Buffer struct {
	reg        *registry.Registry
	usage      hal.BufferUsage
	frameCount uint8
	staging    bool

	size uint64
	slot int

	mappable []pool.BufferHandle // len == frameCount; host-visible in both paths
	gpu      pool.BufferHandle   // staging path only: GPU-only backing buffer

	pendingSize   uint64
	resizePending bool

	retiredGen []retired
	mapped     []byte
}

// Init allocates a dynamic buffer of size bytes with the given usage,
// rotating across frameCount in-flight frame contexts. The data path
// (direct vs staging) is decided once here via
// registry.Registry.NeedsStagingBufferForUsage.
func Init(reg *registry.Registry, label string, size uint64, usage hal.BufferUsage, frameCount uint8) (*Buffer, error) {
	if frameCount == 0 {
		frameCount = 1
	}
	b := &Buffer{
		reg:        reg,
		usage:      usage,
		frameCount: frameCount,
		staging:    reg.NeedsStagingBufferForUsage(usage),
		size:       size,
	}
	if err := b.allocate(label, size); err != nil {
		return nil, err
	}
	return b, nil
}

// allocate (re)creates the mappable ring and, on the staging path, the
// GPU-only backing buffer, leaving the previous generation (if any) for the
// caller to retire.
func (b *Buffer) allocate(label string, size uint64) error {
	mappable := make([]pool.BufferHandle, b.frameCount)
	for i := range mappable {
		h, err := b.reg.CreateBuffer(hal.BufferDescriptor{
			Label:    fmt.Sprintf("%s/mappable[%d]", label, i),
			Size:     size,
			Usage:    mappableUsage(b.staging, b.usage),
			Mappable: true,
		})
		if err != nil {
			for _, prior := range mappable[:i] {
				b.reg.DestroyBuffer(prior)
			}
			return err
		}
		mappable[i] = h
	}

	var gpu pool.BufferHandle
	if b.staging {
		h, err := b.reg.CreateBuffer(hal.BufferDescriptor{
			Label: label + "/gpu",
			Size:  size,
			Usage: b.usage | hal.BufferUsageCopyDst,
		})
		if err != nil {
			for _, h := range mappable {
				b.reg.DestroyBuffer(h)
			}
			return err
		}
		gpu = h
	}

	b.mappable = mappable
	b.gpu = gpu
	b.size = size
	b.slot = 0
	return nil
}

// mappableUsage is the usage mask the host-visible ring buffers need:
// plain read/write mapping on the direct path, or CopySrc (to feed the
// staging copy) plus MapWrite on the staging path.
func mappableUsage(staging bool, usage hal.BufferUsage) hal.BufferUsage {
	if staging {
		return hal.BufferUsageCopySrc | hal.BufferUsageMapWrite
	}
	return usage | hal.BufferUsageMapWrite | hal.BufferUsageMapRead
}

// RequestResize schedules a resize to newSize. Per spec.md §4.G the actual
// reallocation is deferred until the next Map; the current generation of
// buffers is retired (kept alive, not destroyed) until every in-flight
// frame has rotated past it.
func (b *Buffer) RequestResize(newSize uint64) {
	if newSize == b.size && !b.resizePending {
		return
	}
	b.pendingSize = newSize
	b.resizePending = true
}

// Map returns a CPU-visible view of the current frame slot's buffer,
// applying any pending resize first.
func (b *Buffer) Map(label string) ([]byte, error) {
	if b.resizePending {
		if err := b.resize(label); err != nil {
			return nil, err
		}
	}
	data, err := b.reg.MapBuffer(b.mappable[b.slot])
	if err != nil {
		return nil, err
	}
	b.mapped = data
	return data, nil
}

// Unmap closes the view opened by Map.
func (b *Buffer) Unmap() {
	if b.mapped == nil {
		return
	}
	b.reg.UnmapBuffer(b.mappable[b.slot])
	b.mapped = nil
}

// resize retires the current buffer generation and allocates a fresh one at
// pendingSize.
func (b *Buffer) resize(label string) error {
	old := retired{framesRemaining: b.frameCount, mappable: b.mappable, gpu: b.gpu}
	size := b.pendingSize
	b.resizePending = false
	if err := b.allocate(label, size); err != nil {
		b.pendingSize = size
		b.resizePending = true
		return err
	}
	b.retiredGen = append(b.retiredGen, old)
	return nil
}

// NextFrame rotates the current frame slot and releases any retired buffer
// generation that every in-flight frame has now rotated past.
func (b *Buffer) NextFrame() {
	b.slot = (b.slot + 1) % len(b.mappable)

	var remaining []retired
	for _, gen := range b.retiredGen {
		gen.framesRemaining--
		if gen.framesRemaining == 0 {
			for _, h := range gen.mappable {
				b.reg.DestroyBuffer(h)
			}
			if gen.gpu != (pool.BufferHandle{}) {
				b.reg.DestroyBuffer(gen.gpu)
			}
			continue
		}
		remaining = append(remaining, gen)
	}
	b.retiredGen = remaining
}

// Handle returns the buffer handle commands should bind against: the
// GPU-only backing buffer on the staging path, or the current frame slot's
// mappable buffer on the direct path.
func (b *Buffer) Handle() pool.BufferHandle {
	if b.staging {
		return b.gpu
	}
	return b.mappable[b.slot]
}

// PrepareBuffers emits the barrier (and, on the staging path, the copy)
// needed before the buffer written this frame via Map is safe to read with
// access (spec.md §4.G).
//
// Direct path: one buffer barrier, All->All, constrained to access.
// Staging path: (None->TransferSrc) on the staging buffer and
// (None->TransferDst) on the GPU buffer, a CopyBufferToBuffer, then
// (TransferDst->access) on the GPU buffer.
func (b *Buffer) PrepareBuffers(enc hal.CommandEncoder, access hal.StateTransition) {
	mappableNative, _, ok := b.reg.GetBuffer(b.mappable[b.slot])
	if !ok {
		return
	}

	if !b.staging {
		enc.TransitionBuffers([]hal.BufferBarrier{{
			Buffer: mappableNative,
			Usage:  hal.BufferUsageTransition{From: stateAll, To: access},
		}})
		return
	}

	gpuNative, _, ok := b.reg.GetBuffer(b.gpu)
	if !ok {
		return
	}

	none := hal.StateTransition{SyncStage: hal.SyncStageNone, Access: hal.AccessNone, Layout: hal.LayoutUndefined}
	srcReady := hal.StateTransition{SyncStage: hal.SyncStageCopy, Access: hal.AccessTransferRead, Layout: hal.LayoutTransferSrc}
	dstReady := hal.StateTransition{SyncStage: hal.SyncStageCopy, Access: hal.AccessTransferWrite, Layout: hal.LayoutTransferDst}

	enc.TransitionBuffers([]hal.BufferBarrier{
		{Buffer: mappableNative, Usage: hal.BufferUsageTransition{From: none, To: srcReady}},
		{Buffer: gpuNative, Usage: hal.BufferUsageTransition{From: none, To: dstReady}},
	})
	enc.CopyBufferToBuffer(mappableNative, gpuNative, []hal.BufferCopy{{SrcOffset: 0, DstOffset: 0, Size: b.size}})
	enc.TransitionBuffers([]hal.BufferBarrier{
		{Buffer: gpuNative, Usage: hal.BufferUsageTransition{From: dstReady, To: access}},
	})
}

// Size returns the buffer's current size in bytes.
func (b *Buffer) Size() uint64 { return b.size }

// Destroy releases every buffer the dynamic buffer owns, including any
// still-retired generations.
func (b *Buffer) Destroy() {
	for _, h := range b.mappable {
		b.reg.DestroyBuffer(h)
	}
	if b.staging {
		b.reg.DestroyBuffer(b.gpu)
	}
	for _, gen := range b.retiredGen {
		for _, h := range gen.mappable {
			b.reg.DestroyBuffer(h)
		}
		if gen.gpu != (pool.BufferHandle{}) {
			b.reg.DestroyBuffer(gen.gpu)
		}
	}
	b.retiredGen = nil
}
