package rendergraph

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"

	"github.com/kryne-engine/kryne2/core/frame"
	"github.com/kryne-engine/kryne2/hal"
)

// defaultMaxInFlightRecordings bounds how many job groups record commands
// concurrently when the caller hasn't set one via WithMaxInFlightRecordings.
const defaultMaxInFlightRecordings = 4

// stateInitial is the conservative default state a tracked resource starts
// in before any pass has transitioned it. It shares the sync stage and
// access of the dynamic buffer's "All" fallback but uses LayoutUndefined
// rather than LayoutAll (spec.md §4.J "state-tracking phase starts every resource
// from an all-commands/all-access/undefined state").
var stateInitial = hal.StateTransition{SyncStage: hal.SyncStageAllCommands, Access: hal.AccessAll, Layout: hal.LayoutUndefined}

// passPlan is the phase-1 output for one pass: the barriers to place before
// it executes, and (for render passes) the per-attachment layout
// transitions folded into the render-pass descriptor instead of an explicit
// barrier.
type passPlan struct {
	bufferBarriers  []hal.BufferBarrier
	textureBarriers []hal.TextureBarrier
	colorLayouts    []struct{ before, after hal.Layout }
	depthLayout     struct{ before, after hal.Layout }
}

// deriveBarriers walks passes in the order given (already topological) and
// computes each one's passPlan from a single last-known-state map, folding
// attachment transitions into the render pass rather than emitting a
// barrier for them (spec.md §4.J "phase 1: state-tracking / barrier
// derivation").
func deriveBarriers(passes []*Pass, reg *Registry) []passPlan {
	lastState := make(map[ResourceHandle]hal.StateTransition)
	stateOf := func(h ResourceHandle) hal.StateTransition {
		raw := reg.GetUnderlyingResource(h)
		if s, ok := lastState[raw]; ok {
			return s
		}
		return stateInitial
	}
	setState := func(h ResourceHandle, s hal.StateTransition) {
		lastState[reg.GetUnderlyingResource(h)] = s
	}

	plans := make([]passPlan, len(passes))
	for i, p := range passes {
		plan := passPlan{colorLayouts: make([]struct{ before, after hal.Layout }, len(p.colorAttachments))}

		attachmentResource := make(map[ResourceHandle]bool, len(p.colorAttachments)+1)
		for ci, a := range p.colorAttachments {
			before := stateOf(a.View)
			plan.colorLayouts[ci] = struct{ before, after hal.Layout }{before.Layout, stateColorAttachment.Layout}
			setState(a.View, stateColorAttachment)
			attachmentResource[reg.GetUnderlyingResource(a.View)] = true
		}
		if d := p.depthAttachment; d != nil {
			before := stateOf(d.View)
			plan.depthLayout = struct{ before, after hal.Layout }{before.Layout, stateDepthAttachment.Layout}
			setState(d.View, stateDepthAttachment)
			attachmentResource[reg.GetUnderlyingResource(d.View)] = true
		}

		deps := make([]dependency, 0, len(p.reads)+len(p.writes))
		deps = append(deps, p.reads...)
		deps = append(deps, p.writes...)
		for _, d := range deps {
			raw := reg.GetUnderlyingResource(d.resource)
			if attachmentResource[raw] {
				continue
			}
			before := stateOf(d.resource)
			if !before.NeedsBarrier(d.access) {
				setState(d.resource, d.access)
				continue
			}
			if buf, ok := reg.Buffer(d.resource); ok {
				plan.bufferBarriers = append(plan.bufferBarriers, hal.BufferBarrier{
					Buffer: buf,
					Usage:  hal.BufferUsageTransition{From: before, To: d.access},
				})
			} else if tex, ok := reg.Texture(d.resource); ok {
				plan.textureBarriers = append(plan.textureBarriers, hal.TextureBarrier{
					Texture: tex,
					Range:   hal.TextureRange{Aspect: hal.AspectColor, MipLevelCount: 1, ArrayLayerCount: 1},
					Usage:   hal.TextureUsageTransition{From: before, To: d.access},
				})
			}
			setState(d.resource, d.access)
		}
		plans[i] = plan
	}
	return plans
}

// PassTiming is the wall-clock duration spent recording one pass (its
// barriers and its execute callback); submission is not included. Surfaced
// after Execute per spec.md
// §4.J "per-pass timing is available after SubmitFrame".
type PassTiming struct {
	Name     string
	Duration time.Duration
}

// Executor records and submits a built Graph's surviving passes against a
// frame.Scheduler, grounded on spec.md §4.J's two-phase
// (derive-then-record) executor.
type Executor struct {
	scheduler *frame.Scheduler
	queue     hal.Queue
	registry  *Registry
	kind      hal.QueueKind
	groups    int
	sem       *semaphore.Weighted
}

// NewExecutor creates an executor recording onto kind's queue through
// scheduler, resolving graph resources through registry. Defaults to one
// job group (fully sequential recording); see WithJobGroups.
func NewExecutor(scheduler *frame.Scheduler, queue hal.Queue, registry *Registry, kind hal.QueueKind) *Executor {
	return &Executor{
		scheduler: scheduler,
		queue:     queue,
		registry:  registry,
		kind:      kind,
		groups:    1,
		sem:       semaphore.NewWeighted(defaultMaxInFlightRecordings),
	}
}

// WithJobGroups sets how many command lists Execute partitions the alive
// passes into, recorded concurrently (one goroutine each, matching the
// original's fiber-per-group recording — see the core/jobsys package doc
// for why goroutines stand in for fibers). n < 1 is clamped to 1.
func (e *Executor) WithJobGroups(n int) *Executor {
	if n < 1 {
		n = 1
	}
	e.groups = n
	return e
}

// WithMaxInFlightRecordings bounds how many job groups may be recording
// commands into their own encoder at once, via a weighted semaphore — the
// fan-out itself (errgroup) still launches one goroutine per group, but only
// n may hold the semaphore and record concurrently, the rest block until a
// slot frees. n < 1 is clamped to 1.
func (e *Executor) WithMaxInFlightRecordings(n int) *Executor {
	if n < 1 {
		n = 1
	}
	e.sem = semaphore.NewWeighted(int64(n))
	return e
}

// Execute runs phase 1 (barrier derivation) over g's alive passes in
// topological order, then partitions them into e.groups contiguous runs
// recorded concurrently in phase 2, each as its own command list submitted
// on e.queue. Passes within a group execute in that topological order; passes in
// different groups may execute concurrently with respect to each other's
// recording, but all barriers were derived up front against a single
// ordered pass of the whole sequence, so cross-group hazards are still
// correctly synchronised via the barriers recorded into each pass's plan.
//
// On failure Execute returns the first error any group reported and no
// timings. A failing group records nothing after its failing pass and does
// not commit; the other groups are not cancelled and still record and commit
// their command lists.
func (e *Executor) Execute(g *Graph) ([]PassTiming, error) {
	passes := g.AlivePasses()
	if len(passes) == 0 {
		return nil, nil
	}
	plans := deriveBarriers(passes, e.registry)

	groupOf := make([]int, len(passes))
	groupCount := e.groups
	if groupCount > len(passes) {
		groupCount = len(passes)
	}
	base := len(passes) / groupCount
	extra := len(passes) % groupCount
	idx := 0
	for gi := 0; gi < groupCount; gi++ {
		size := base
		if gi < extra {
			size++
		}
		for j := 0; j < size; j++ {
			groupOf[idx] = gi
			idx++
		}
	}

	// Recording happens concurrently across groups, but submission is
	// gated into group order: group gi waits for gi-1's commit before its
	// own, so barriers derived against the single sequential pass order
	// above still land on the queue in that order even though the
	// encoders that carry them were filled in parallel.
	gates := make([]chan struct{}, groupCount)
	for gi := range gates {
		gates[gi] = make(chan struct{})
	}

	timings := make([][]PassTiming, groupCount)
	var eg errgroup.Group
	for gi := 0; gi < groupCount; gi++ {
		gi := gi
		eg.Go(func() error {
			var start int
			for start < len(passes) && groupOf[start] != gi {
				start++
			}
			end := start
			for end < len(passes) && groupOf[end] == gi {
				end++
			}
			var wait <-chan struct{}
			if gi > 0 {
				wait = gates[gi-1]
			}
			if err := e.sem.Acquire(context.Background(), 1); err != nil {
				close(gates[gi])
				return fmt.Errorf("rendergraph: acquire recording slot: %w", err)
			}
			local, err := e.recordGroup(passes[start:end], plans[start:end], wait)
			e.sem.Release(1)
			close(gates[gi])
			timings[gi] = local
			return err
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	out := make([]PassTiming, 0, len(passes))
	for _, t := range timings {
		out = append(out, t...)
	}
	return out, nil
}

// recordGroup records passes into one command list. The recording itself
// (BeginCommandList through the last pass) runs freely in parallel with
// other groups; only EndCommandList/Commit wait on wait (the previous
// group's gate), so the queue still receives buffers in group order even
// though the CPU work of filling them overlaps.
func (e *Executor) recordGroup(passes []*Pass, plans []passPlan, wait <-chan struct{}) ([]PassTiming, error) {
	if len(passes) == 0 {
		if wait != nil {
			<-wait
		}
		return nil, nil
	}
	enc, err := e.scheduler.BeginCommandList(e.kind)
	if err != nil {
		return nil, fmt.Errorf("rendergraph: begin command list: %w", err)
	}

	timings := make([]PassTiming, 0, len(passes))
	for i, p := range passes {
		start := time.Now()
		plan := plans[i]
		if len(plan.bufferBarriers) > 0 {
			enc.TransitionBuffers(plan.bufferBarriers)
		}
		if len(plan.textureBarriers) > 0 {
			enc.TransitionTextures(plan.textureBarriers)
		}

		if err := e.recordPass(enc, p, plan); err != nil {
			return nil, fmt.Errorf("rendergraph: pass %q: %w", p.name, err)
		}
		timings = append(timings, PassTiming{Name: p.name, Duration: time.Since(start)})
	}

	if wait != nil {
		<-wait
	}
	if _, err := e.scheduler.EndCommandList(e.kind, enc); err != nil {
		return nil, fmt.Errorf("rendergraph: end command list: %w", err)
	}
	if err := e.scheduler.Commit(e.kind, e.queue); err != nil {
		return nil, fmt.Errorf("rendergraph: commit: %w", err)
	}
	return timings, nil
}

func (e *Executor) recordPass(enc hal.CommandEncoder, p *Pass, plan passPlan) error {
	switch p.kind {
	case PassRender:
		desc := &hal.RenderPassDescriptor{Label: p.name, Hash: p.hash}
		for i, a := range p.colorAttachments {
			view, _ := e.registry.TextureView(a.View)
			desc.ColorAttachments = append(desc.ColorAttachments, hal.RenderPassColorAttachment{
				View:         view,
				Load:         a.Load,
				Store:        a.Store,
				ClearColor:   a.Clear,
				LayoutBefore: plan.colorLayouts[i].before,
				LayoutAfter:  plan.colorLayouts[i].after,
			})
		}
		if d := p.depthAttachment; d != nil {
			view, _ := e.registry.TextureView(d.View)
			desc.DepthStencilAttachment = &hal.RenderPassDepthStencilAttachment{
				View:         view,
				DepthLoad:    d.DepthLoad,
				DepthStore:   d.DepthStore,
				ClearDepth:   d.ClearDepth,
				LayoutBefore: plan.depthLayout.before,
				LayoutAfter:  plan.depthLayout.after,
			}
		}
		rp := enc.BeginRenderPass(desc)
		if p.execute != nil {
			if err := p.execute(rp); err != nil {
				rp.End()
				return err
			}
		}
		rp.End()
	case PassCompute:
		cp := enc.BeginComputePass(&hal.ComputePassDescriptor{Label: p.name})
		if p.execute != nil {
			if err := p.execute(cp); err != nil {
				cp.End()
				return err
			}
		}
		cp.End()
	case PassTransfer:
		if p.execute != nil {
			if err := p.execute(enc); err != nil {
				return err
			}
		}
	}
	return nil
}
