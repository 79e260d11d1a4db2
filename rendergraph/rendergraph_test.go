package rendergraph_test

import (
	"sync/atomic"
	"testing"

	"github.com/kryne-engine/kryne2/core/frame"
	"github.com/kryne-engine/kryne2/core/registry"
	"github.com/kryne-engine/kryne2/hal"
	_ "github.com/kryne-engine/kryne2/hal/noop"
	"github.com/kryne-engine/kryne2/rendergraph"
)

type testDevice struct {
	reg       *registry.Registry
	scheduler *frame.Scheduler
	queue     hal.Queue
}

func openTestDevice(t *testing.T) testDevice {
	t.Helper()
	provider, ok := hal.GetProvider(hal.BackendNoop)
	if !ok {
		t.Fatal("noop backend should self-register")
	}
	instance, err := provider.CreateInstance(&hal.InstanceDescriptor{})
	if err != nil {
		t.Fatalf("CreateInstance: %v", err)
	}
	opened, err := instance.EnumerateAdapters(nil)[0].Adapter.Open()
	if err != nil {
		t.Fatalf("Adapter.Open: %v", err)
	}
	reg := registry.New(opened.Device)
	return testDevice{reg: reg, scheduler: frame.NewScheduler(opened.Device), queue: opened.Queue}
}

func makeColorTarget(t *testing.T, reg *registry.Registry, rg *rendergraph.Registry, name string) rendergraph.ResourceHandle {
	t.Helper()
	tex, err := reg.CreateTexture(hal.TextureDescriptor{
		Label:         name,
		Dimension:     hal.Texture2D,
		Format:        hal.FormatRGBA8Unorm,
		Width:         64,
		Height:        64,
		DepthOrLayers: 1,
		MipLevelCount: 1,
		SampleCount:   1,
		Usage:         hal.TextureUsageRenderAttachment,
	})
	if err != nil {
		t.Fatalf("CreateTexture: %v", err)
	}
	view, err := reg.CreateTextureView(tex, hal.TextureViewDescriptor{})
	if err != nil {
		t.Fatalf("CreateTextureView: %v", err)
	}
	texHandle := rg.RegisterTexture(tex, name)
	return rg.RegisterRenderTargetView(view, texHandle, name+".rtv")
}

func TestBuildDagCullsPassesNotAncestorOfATarget(t *testing.T) {
	dev := openTestDevice(t)
	rg := rendergraph.NewRegistry(dev.reg)
	target := makeColorTarget(t, dev.reg, rg, "color")
	orphan := makeColorTarget(t, dev.reg, rg, "unused")

	b := rendergraph.NewBuilder(rg)
	var ran, orphanRan bool
	b.DeclarePass(rendergraph.PassRender, "main").
		AddColorAttachment(target, hal.LoadOpClear, hal.StoreOpStore, hal.Color{}).
		Execute(func(any) error { ran = true; return nil })
	b.DeclarePass(rendergraph.PassRender, "dead").
		AddColorAttachment(orphan, hal.LoadOpClear, hal.StoreOpStore, hal.Color{}).
		Execute(func(any) error { orphanRan = true; return nil })
	b.DeclareTargetResource(target)

	graph, err := b.BuildDag()
	if err != nil {
		t.Fatalf("BuildDag: %v", err)
	}
	if graph.CulledCount() != 1 {
		t.Fatalf("CulledCount = %d, want 1", graph.CulledCount())
	}

	exec := rendergraph.NewExecutor(dev.scheduler, dev.queue, rg, hal.QueueGraphics)
	if _, err := exec.Execute(graph); err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if !ran {
		t.Error("alive pass did not execute")
	}
	if orphanRan {
		t.Error("culled pass executed")
	}
}

func TestBuildDagOrdersWriteAfterWriteDependency(t *testing.T) {
	dev := openTestDevice(t)
	rg := rendergraph.NewRegistry(dev.reg)
	target := makeColorTarget(t, dev.reg, rg, "color")

	b := rendergraph.NewBuilder(rg)
	var order []string
	b.DeclarePass(rendergraph.PassRender, "first").
		AddColorAttachment(target, hal.LoadOpClear, hal.StoreOpStore, hal.Color{}).
		Execute(func(any) error { order = append(order, "first"); return nil })
	b.DeclarePass(rendergraph.PassRender, "second").
		AddColorAttachment(target, hal.LoadOpLoad, hal.StoreOpStore, hal.Color{}).
		Execute(func(any) error { order = append(order, "second"); return nil })
	b.DeclareTargetResource(target)

	graph, err := b.BuildDag()
	if err != nil {
		t.Fatalf("BuildDag: %v", err)
	}

	exec := rendergraph.NewExecutor(dev.scheduler, dev.queue, rg, hal.QueueGraphics)
	timings, err := exec.Execute(graph)
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if len(order) != 2 || order[0] != "first" || order[1] != "second" {
		t.Fatalf("execution order = %v, want [first second]", order)
	}
	if len(timings) != 2 {
		t.Fatalf("len(timings) = %d, want 2", len(timings))
	}
}

func TestRenderPassHashDistinguishesAttachments(t *testing.T) {
	dev := openTestDevice(t)
	rg := rendergraph.NewRegistry(dev.reg)
	a := makeColorTarget(t, dev.reg, rg, "a")
	b := makeColorTarget(t, dev.reg, rg, "b")

	bld1 := rendergraph.NewBuilder(rg)
	bld1.DeclarePass(rendergraph.PassRender, "pass").
		AddColorAttachment(a, hal.LoadOpClear, hal.StoreOpStore, hal.Color{})
	bld1.DeclareTargetResource(a)
	g1, err := bld1.BuildDag()
	if err != nil {
		t.Fatalf("BuildDag: %v", err)
	}

	bld2 := rendergraph.NewBuilder(rg)
	bld2.DeclarePass(rendergraph.PassRender, "pass").
		AddColorAttachment(b, hal.LoadOpClear, hal.StoreOpStore, hal.Color{})
	bld2.DeclareTargetResource(b)
	g2, err := bld2.BuildDag()
	if err != nil {
		t.Fatalf("BuildDag: %v", err)
	}

	passes1 := g1.AlivePasses()
	passes2 := g2.AlivePasses()
	if passes1[0].Hash() == passes2[0].Hash() {
		t.Error("passes with different attachments hashed equal")
	}
}

func TestJobGroupsPartitionWithoutDroppingPasses(t *testing.T) {
	dev := openTestDevice(t)
	rg := rendergraph.NewRegistry(dev.reg)
	target := makeColorTarget(t, dev.reg, rg, "color")

	b := rendergraph.NewBuilder(rg)
	var count atomic.Int32
	for i := 0; i < 4; i++ {
		load := hal.LoadOpLoad
		if i == 0 {
			load = hal.LoadOpClear
		}
		b.DeclarePass(rendergraph.PassRender, "p").
			AddColorAttachment(target, load, hal.StoreOpStore, hal.Color{}).
			Execute(func(any) error { count.Add(1); return nil })
	}
	b.DeclareTargetResource(target)
	graph, err := b.BuildDag()
	if err != nil {
		t.Fatalf("BuildDag: %v", err)
	}

	exec := rendergraph.NewExecutor(dev.scheduler, dev.queue, rg, hal.QueueGraphics).WithJobGroups(2)
	if _, err := exec.Execute(graph); err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if count.Load() != 4 {
		t.Fatalf("count = %d, want 4", count.Load())
	}
}

func TestTransferPassRecordsAgainstTheRawEncoder(t *testing.T) {
	dev := openTestDevice(t)
	rg := rendergraph.NewRegistry(dev.reg)

	buf, err := dev.reg.CreateBuffer(hal.BufferDescriptor{
		Label: "staging",
		Size:  256,
		Usage: hal.BufferUsageCopySrc | hal.BufferUsageCopyDst,
	})
	if err != nil {
		t.Fatalf("CreateBuffer: %v", err)
	}
	target := rg.RegisterBuffer(buf, "staging")

	b := rendergraph.NewBuilder(rg)
	var gotEncoder hal.CommandEncoder
	b.DeclarePass(rendergraph.PassTransfer, "upload").
		Write(target, hal.StateTransition{SyncStage: hal.SyncStageCopy, Access: hal.AccessTransferWrite, Layout: hal.LayoutTransferDst}).
		Execute(func(encoder any) error {
			enc, ok := encoder.(hal.CommandEncoder)
			if !ok {
				t.Fatalf("transfer pass execute received %T, want hal.CommandEncoder", encoder)
			}
			gotEncoder = enc
			return nil
		})
	b.DeclareTargetResource(target)

	graph, err := b.BuildDag()
	if err != nil {
		t.Fatalf("BuildDag: %v", err)
	}
	if graph.CulledCount() != 0 {
		t.Fatalf("CulledCount = %d, want 0", graph.CulledCount())
	}

	exec := rendergraph.NewExecutor(dev.scheduler, dev.queue, rg, hal.QueueGraphics)
	if _, err := exec.Execute(graph); err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if gotEncoder == nil {
		t.Error("transfer pass execute callback never ran")
	}
}
