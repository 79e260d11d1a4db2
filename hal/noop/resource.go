package noop

import "github.com/kryne-engine/kryne2/hal"

// Resource is a placeholder implementation shared by most HAL resource
// types; Destroy is a no-op.
type Resource struct{}

func (r *Resource) Destroy() {}

// Buffer implements hal.Buffer backed by a plain byte slice, so WriteBuffer
// and the copy commands in CommandEncoder have somewhere to write.
type Buffer struct {
	Resource
	data []byte
}

// Data exposes the buffer's backing storage, for tests that need to observe
// the effect of writes and copies without a real GPU readback.
func (b *Buffer) Data() []byte { return b.data }

// Texture implements hal.Texture.
type Texture struct {
	Resource
	desc hal.TextureDescriptor
}

// Surface implements hal.Surface for the noop backend.
type Surface struct {
	Resource
	configured bool
}

func (s *Surface) Configure(_ hal.Device, config *hal.SurfaceConfiguration) error {
	if config.Width == 0 || config.Height == 0 {
		return hal.ErrZeroArea
	}
	s.configured = true
	return nil
}

func (s *Surface) Unconfigure(_ hal.Device) { s.configured = false }

func (s *Surface) AcquireTexture(_ hal.Fence) (*hal.AcquiredSurfaceTexture, error) {
	return &hal.AcquiredSurfaceTexture{Texture: &SurfaceTexture{}}, nil
}

func (s *Surface) DiscardTexture(_ hal.SurfaceTexture) {}

// SurfaceTexture implements hal.SurfaceTexture.
type SurfaceTexture struct {
	Texture
}

// Fence implements hal.Fence. The noop device drives frame pacing with its
// own counters rather than this type; it exists only so
// Surface.AcquireTexture's signature matches the contract.
type Fence struct {
	Resource
}
