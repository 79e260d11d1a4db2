package noop

import "github.com/kryne-engine/kryne2/hal"

// Queue implements hal.Queue for the noop backend.
type Queue struct {
	device *Device
}

// Submit simulates command-buffer submission; the noop device executes
// synchronously so there is nothing to enqueue.
func (q *Queue) Submit(_ []hal.CommandBuffer) error { return nil }

// WriteBuffer copies data directly into the placeholder buffer's backing
// slice.
func (q *Queue) WriteBuffer(buffer hal.Buffer, offset uint64, data []byte) {
	if b, ok := buffer.(*Buffer); ok && b.data != nil {
		copy(b.data[offset:], data)
	}
}

// WriteTexture is a no-op: placeholder textures store no data.
func (q *Queue) WriteTexture(_ *hal.ImageCopyTexture, _ []byte, _ *hal.ImageDataLayout, _ *hal.Extent3D) {
}

// Present always succeeds.
func (q *Queue) Present(_ hal.Surface, _ hal.SurfaceTexture) error { return nil }
