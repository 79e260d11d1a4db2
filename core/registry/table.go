package registry

import "github.com/kryne-engine/kryne2/core/pool"

// entry pairs a resource kind's backend-native handle with the descriptor
// it was created from, so later calls can recover creation intent from a
// handle alone.
type entry[Native any, Desc any] struct {
	native Native
	desc   Desc
}

// Table is a generational-pool-backed collection of one resource kind.
type Table[Native any, Desc any] struct {
	pool *pool.Pool[entry[Native, Desc], struct{}]
}

// NewTable creates an empty table.
func NewTable[Native any, Desc any]() *Table[Native, Desc] {
	return &Table[Native, Desc]{pool: pool.New[entry[Native, Desc], struct{}]()}
}

// Create allocates a slot for native/desc and returns its raw handle.
// Callers wrap the raw handle in the kind-specific typed alias
// (pool.BufferHandle{Handle: h}, etc.).
func (t *Table[Native, Desc]) Create(native Native, desc Desc) (pool.Handle, bool) {
	h, ok := t.pool.Allocate()
	if !ok {
		return pool.Invalid, false
	}
	e, _ := t.pool.Get(h)
	e.native = native
	e.desc = desc
	return h, true
}

// Get returns the native handle and descriptor for h.
func (t *Table[Native, Desc]) Get(h pool.Handle) (Native, Desc, bool) {
	e, ok := t.pool.Get(h)
	if !ok {
		var n Native
		var d Desc
		return n, d, false
	}
	return e.native, e.desc, true
}

// Destroy frees h's slot. Returns false if h was already invalid — callers
// use this to make their own Destroy idempotent rather than erroring on a
// double-free.
func (t *Table[Native, Desc]) Destroy(h pool.Handle) (Native, bool) {
	e, ok := t.pool.Get(h)
	if !ok {
		var n Native
		return n, false
	}
	native := e.native
	return native, t.pool.Free(h)
}
