// Package registry implements the resource registry (spec.md §4.D): one
// generational pool (package core/pool) per resource kind, holding each
// kind's backend-native handle alongside its creation descriptor.
//
// Grounded on the teacher's Hub-over-Registry pattern (one *Registry[T,M]
// per resource kind behind a single struct) — re-expressed here as a
// single generic Table[Native, Desc] instantiated once per kind, since
// core/pool's typed handle aliases (BufferHandle, TextureHandle, ...) are
// already distinct types and a second layer of generic parameterisation
// over the pool package's unexported kind markers would add nothing.
//
// All creation paths validate non-zero texture dimensions/array
// sizes/mip counts, a non-empty usage mask, and depth-stencil format
// coherent with depth-stencil usage; destruction is idempotent on invalid
// handles, matching spec.md §4.D.
package registry
