package rendergraph

import (
	"github.com/kryne-engine/kryne2/core/pool"
	"github.com/kryne-engine/kryne2/core/registry"
	"github.com/kryne-engine/kryne2/hal"
)

// ResourceHandle identifies a resource registered with a Registry: a raw
// buffer or texture, or a view over one. Grounded on the original
// Registry.hpp's SimplePoolHandle return type.
type ResourceHandle = pool.Handle

// resourceKind distinguishes what a Resource entry wraps.
type resourceKind uint8

const (
	kindBuffer resourceKind = iota
	kindTexture
	kindTextureView
	kindRenderTargetView
)

// resource is the pool payload backing a ResourceHandle. underlying points
// to the raw buffer/texture a view was registered against (kindBuffer and
// kindTexture entries leave it Invalid: they are their own underlying
// resource). refs counts registrations that reference this entry as their
// underlying resource, mirroring the original Registry's
// SimplePool<Resource, void, true> refcounting (spec.md §4.I "the registry
// holds resources under a refcounting simple pool: registering a view adds
// a ref on its underlying raw resource").
type resource struct {
	kind       resourceKind
	name       string
	underlying ResourceHandle
	refs       uint32

	buffer pool.BufferHandle
	texture pool.TextureHandle
	view    pool.TextureViewHandle
}

// Registry maps core/registry-owned resources into the render graph's
// handle space, so passes can declare dependencies against a single,
// graph-local handle kind regardless of whether the underlying object is a
// raw buffer, a raw texture, or a view over one (spec.md §4.I "Registry").
type Registry struct {
	backing   *registry.Registry
	resources *pool.Pool[resource, struct{}]
}

// NewRegistry creates an empty registry fronting backing.
func NewRegistry(backing *registry.Registry) *Registry {
	return &Registry{backing: backing, resources: pool.New[resource, struct{}]()}
}

// RegisterBuffer registers a raw buffer already created in the backing
// registry, returning a graph-local handle for it.
func (r *Registry) RegisterBuffer(h pool.BufferHandle, name string) ResourceHandle {
	handle, _ := r.resources.Allocate()
	hot, _ := r.resources.Get(handle)
	*hot = resource{kind: kindBuffer, name: name, underlying: pool.Invalid, buffer: h}
	return handle
}

// RegisterTexture registers a raw texture already created in the backing
// registry, returning a graph-local handle for it.
func (r *Registry) RegisterTexture(h pool.TextureHandle, name string) ResourceHandle {
	handle, _ := r.resources.Allocate()
	hot, _ := r.resources.Get(handle)
	*hot = resource{kind: kindTexture, name: name, underlying: pool.Invalid, texture: h}
	return handle
}

// RegisterTextureView registers a texture view over an already-registered
// underlying resource, taking a ref on it.
func (r *Registry) RegisterTextureView(h pool.TextureViewHandle, underlying ResourceHandle, name string) ResourceHandle {
	r.addRef(underlying)
	handle, _ := r.resources.Allocate()
	hot, _ := r.resources.Get(handle)
	*hot = resource{kind: kindTextureView, name: name, underlying: underlying, view: h}
	return handle
}

// RegisterRenderTargetView registers a color/depth render-target view over
// an already-registered underlying texture, taking a ref on it.
func (r *Registry) RegisterRenderTargetView(h pool.TextureViewHandle, underlying ResourceHandle, name string) ResourceHandle {
	r.addRef(underlying)
	handle, _ := r.resources.Allocate()
	hot, _ := r.resources.Get(handle)
	*hot = resource{kind: kindRenderTargetView, name: name, underlying: underlying, view: h}
	return handle
}

func (r *Registry) addRef(h ResourceHandle) {
	if hot, ok := r.resources.Get(h); ok {
		hot.refs++
	}
}

// GetUnderlyingResource returns the raw buffer/texture handle a view (or the
// handle itself, if it is already raw) resolves to.
func (r *Registry) GetUnderlyingResource(h ResourceHandle) ResourceHandle {
	hot, ok := r.resources.Get(h)
	if !ok {
		return pool.Invalid
	}
	if hot.underlying == pool.Invalid {
		return h
	}
	return hot.underlying
}

// IsRenderTargetView reports whether h was registered via
// RegisterRenderTargetView.
func (r *Registry) IsRenderTargetView(h ResourceHandle) bool {
	hot, ok := r.resources.Get(h)
	return ok && hot.kind == kindRenderTargetView
}

// TextureView returns h's underlying hal.TextureView. Valid for handles
// registered via RegisterTextureView or RegisterRenderTargetView.
func (r *Registry) TextureView(h ResourceHandle) (hal.TextureView, bool) {
	hot, ok := r.resources.Get(h)
	if !ok || (hot.kind != kindTextureView && hot.kind != kindRenderTargetView) {
		return nil, false
	}
	native, _, ok := r.backing.GetTextureView(hot.view)
	return native, ok
}

// Buffer returns h's native hal.Buffer, resolving through a view if needed.
func (r *Registry) Buffer(h ResourceHandle) (hal.Buffer, bool) {
	raw := r.GetUnderlyingResource(h)
	hot, ok := r.resources.Get(raw)
	if !ok || hot.kind != kindBuffer {
		return nil, false
	}
	native, _, ok := r.backing.GetBuffer(hot.buffer)
	return native, ok
}

// Texture returns h's native hal.Texture, resolving through a view if
// needed.
func (r *Registry) Texture(h ResourceHandle) (hal.Texture, bool) {
	raw := r.GetUnderlyingResource(h)
	hot, ok := r.resources.Get(raw)
	if !ok || hot.kind != kindTexture {
		return nil, false
	}
	native, _, ok := r.backing.GetTexture(hot.texture)
	return native, ok
}

// Release frees h's graph-local entry immediately, whatever its refcount.
// Releasing a view also decrements its underlying resource's refcount. The
// refcount does not delay or trigger freeing: a raw resource is freed only
// by its own Release, even while views still reference it, and a view
// release that drops the count to zero frees nothing further. The backing core/registry resource is untouched — Release only
// retires the render graph's bookkeeping entry, not the GPU object.
func (r *Registry) Release(h ResourceHandle) {
	hot, ok := r.resources.Get(h)
	if !ok {
		return
	}
	underlying := hot.underlying
	r.resources.Free(h)
	if underlying != pool.Invalid {
		if uhot, ok := r.resources.Get(underlying); ok && uhot.refs > 0 {
			uhot.refs--
		}
	}
}
