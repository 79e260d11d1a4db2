// Package rendergraph implements the render-graph builder, resource
// registry, and executor (spec.md §4.I, §4.J), grounded on the original
// Modules/RenderGraph/{Builder,PassDeclaration,Registry}.{hpp,cpp}.
//
// The original's SimplePool<Resource> + PassDeclarationBuilder fluent
// interface is kept; its eastl::vector-of-handles bookkeeping is expressed
// with core/pool.Pool (already built for spec.md §4.A) instead of a second,
// render-graph-local pool implementation.
//
// Builder (builder.go) collects pass declarations in declaration order,
// tracking a version counter per resource: each write bumps it, each read is
// recorded against the resource's then-current version. BuildDag (builder.go)
// connects read-after-write and write-after-write edges between passes
// based on those versions, then culls every pass that neither writes a
// client-declared target resource nor is an ancestor of one that does.
//
// Executor (executor.go) runs in two phases per spec.md §4.J: phase 1 walks
// the surviving passes in topological order deriving barriers from each
// dependency's last-known state; phase 2 records one command list per job
// group (single group by default — see executor.go for the fiber fan-out
// note) placing those barriers and invoking each pass's execute callback,
// timing it.
package rendergraph
