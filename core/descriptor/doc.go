// Package descriptor implements the descriptor-set manager (spec.md §4.E)
// and the pipeline-layout/argument-buffer builder (spec.md §4.F).
//
// A Layout packs each binding's type and index into a single BindingID the
// caller keeps and reuses on every later write, avoiding a layout lookup
// per write. A Set replicates one descriptor set per in-flight frame slot;
// writes apply to the current slot immediately and, unless flagged
// single-frame, replay into the other N-1 slots via core/multiframe as
// each becomes current — grounded exactly on the original
// MultiFrameTracking.hpp semantics that package already implements.
package descriptor
