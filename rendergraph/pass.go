package rendergraph

import "github.com/kryne-engine/kryne2/hal"

// PassType distinguishes a render pass (draws into attachments), a compute
// pass (dispatches only), and a transfer pass (copies only, no attachments
// or pass encoder wrapper), grounded on the original PassDeclaration.hpp's
// `enum class PassType { Render, Compute, Transfer, COUNT }`.
type PassType uint8

const (
	PassRender PassType = iota
	PassCompute
	PassTransfer
)

// dependency records one read or write a pass declared against a resource
// version, plus the state it needs that resource in.
type dependency struct {
	resource ResourceHandle
	version  uint32
	access   hal.StateTransition
}

// ColorAttachment binds a render-target view to a render pass's output
// slot, grounded on PassDeclaration::AddColorAttachment.
type ColorAttachment struct {
	View  ResourceHandle
	Load  hal.LoadOp
	Store hal.StoreOp
	Clear hal.Color
}

// DepthAttachment binds a depth/stencil render-target view.
type DepthAttachment struct {
	View       ResourceHandle
	DepthLoad  hal.LoadOp
	DepthStore hal.StoreOp
	ClearDepth float32
}

// ExecFunc records the draw/dispatch calls for one pass. It receives the
// pass encoder already begun by the executor (a hal.RenderPassEncoder or
// hal.ComputePassEncoder, depending on the pass's Type); a PassTransfer
// pass receives the group's hal.CommandEncoder itself.
type ExecFunc func(encoder any) error

// Pass is one node of the render graph: a declared unit of GPU work with
// its resource reads/writes, optional attachments, and the callback that
// records its commands. Built exclusively through PassBuilder; fields are
// unexported so a Pass can only be constructed via Builder.DeclarePass.
type Pass struct {
	name string
	kind PassType

	reads  []dependency
	writes []dependency

	colorAttachments []ColorAttachment
	depthAttachment  *DepthAttachment

	execute ExecFunc

	// DAG bookkeeping, filled in by BuildDag.
	children []int
	alive    bool
	hash     uint64
}

// Name returns the pass's declared name.
func (p *Pass) Name() string { return p.name }

// Type returns whether this is a render, compute or transfer pass.
func (p *Pass) Type() PassType { return p.kind }

// PassBuilder is the fluent interface for declaring one pass's dependencies
// and attachments, grounded on the original PassDeclaration's chained
// Set*/Add* methods.
type PassBuilder struct {
	b    *Builder
	pass *Pass
}

// SetName labels the pass for logging and render-pass-hash disambiguation.
func (pb *PassBuilder) SetName(name string) *PassBuilder {
	pb.pass.name = name
	return pb
}

// Read declares a dependency on resource's current version, requiring it be
// in the state access describes before the pass executes.
func (pb *PassBuilder) Read(resource ResourceHandle, access hal.StateTransition) *PassBuilder {
	version := pb.b.versions[resource]
	pb.pass.reads = append(pb.pass.reads, dependency{resource, version, access})
	return pb
}

// Write declares a dependency that bumps resource's version, requiring it be
// in the state access describes before the pass executes. The dependency
// records the newly-produced version (the prior version plus one), so
// BuildDag can connect it to whichever pass produced the version it
// overwrites.
func (pb *PassBuilder) Write(resource ResourceHandle, access hal.StateTransition) *PassBuilder {
	newVersion := pb.b.versions[resource] + 1
	pb.pass.writes = append(pb.pass.writes, dependency{resource, newVersion, access})
	pb.b.versions[resource] = newVersion
	return pb
}

// stateColorAttachment is the implicit state a color attachment view is
// transitioned to/from; folded into the render pass rather than an explicit
// barrier by the executor (spec.md §4.J "layout transitions for render-pass
// attachments fold into the pass's begin/end rather than an explicit
// barrier").
var stateColorAttachment = hal.StateTransition{
	SyncStage: hal.SyncStageColorAttachmentOutput,
	Access:    hal.AccessColorAttachmentWrite,
	Layout:    hal.LayoutColorAttachment,
}

var stateDepthAttachment = hal.StateTransition{
	SyncStage: hal.SyncStageEarlyFragmentTests | hal.SyncStageLateFragmentTests,
	Access:    hal.AccessDepthStencilAttachmentWrite,
	Layout:    hal.LayoutDepthStencilAttachment,
}

// AddColorAttachment binds view as the pass's next color output, implicitly
// declaring a write against it.
func (pb *PassBuilder) AddColorAttachment(view ResourceHandle, load hal.LoadOp, store hal.StoreOp, clear hal.Color) *PassBuilder {
	pb.pass.colorAttachments = append(pb.pass.colorAttachments, ColorAttachment{view, load, store, clear})
	return pb.Write(view, stateColorAttachment)
}

// SetDepthAttachment binds view as the pass's depth/stencil output,
// implicitly declaring a write against it.
func (pb *PassBuilder) SetDepthAttachment(view ResourceHandle, depthLoad hal.LoadOp, depthStore hal.StoreOp, clearDepth float32) *PassBuilder {
	pb.pass.depthAttachment = &DepthAttachment{view, depthLoad, depthStore, clearDepth}
	return pb.Write(view, stateDepthAttachment)
}

// Execute records fn as the pass's command-recording callback.
func (pb *PassBuilder) Execute(fn ExecFunc) *PassBuilder {
	pb.pass.execute = fn
	return pb
}
