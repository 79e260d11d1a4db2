// Package atlas implements a shelf-based 2D rectangle packer for atlas UV
// generation (spec.md §4.K), grounded on the original
// AtlasShelfAllocator.hpp/.cpp and generalising gogpu-gg's
// text/msdf.ShelfAllocator (internal/gpu/atlas.go) from a single growing
// shelf list to the original's height-bucketed shelf reuse plus
// adjacent-range merging on Free.
//
// The original keeps shelves and free ranges in intrusive linked lists
// threaded through index-addressed slices (VectorDeLinkedList) so that
// freeing a node costs no allocation. Go's slices and maps already give
// O(1) amortized append and lookup without that machinery, so this port
// keeps the original's algorithm — height-category bucketing, per-shelf
// free-range lists, shelf-row and slot-column merging on Free — expressed
// with plain slices/maps rather than reproducing the linked-list layer.
package atlas
