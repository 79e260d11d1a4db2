package atlas_test

import (
	"testing"

	"github.com/kryne-engine/kryne2/atlas"
)

func newTestAllocator() *atlas.Allocator {
	return atlas.New(atlas.Config{
		Width:        1024,
		Height:       1024,
		ShelfWidth:   512,
		MinHeight:    16,
		CategoryBits: 2,
	})
}

func TestAllocateReturnsDistinctSlotsForDistinctRequests(t *testing.T) {
	a := newTestAllocator()
	s1, ok := a.Allocate(32, 32)
	if !ok {
		t.Fatal("first allocation should succeed")
	}
	s2, ok := a.Allocate(32, 32)
	if !ok {
		t.Fatal("second allocation should succeed")
	}
	if s1 == s2 {
		t.Errorf("expected distinct slots, got %d twice", s1)
	}
}

func TestAllocateRejectsOversizedRequests(t *testing.T) {
	a := newTestAllocator()
	if _, ok := a.Allocate(600, 32); ok {
		t.Error("request wider than ShelfWidth should fail")
	}
	if _, ok := a.Allocate(32, 2000); ok {
		t.Error("request taller than atlas height should fail")
	}
}

func TestFreeAllowsSlotReuse(t *testing.T) {
	a := newTestAllocator()
	var slots []uint32
	for i := 0; i < 16; i++ {
		s, ok := a.Allocate(32, 32)
		if !ok {
			t.Fatalf("allocation %d should succeed", i)
		}
		slots = append(slots, s)
	}
	for _, s := range slots {
		a.Free(s)
	}
	// After freeing everything, the same set of requests should succeed
	// again without exhausting the atlas.
	for i := 0; i < 16; i++ {
		if _, ok := a.Allocate(32, 32); !ok {
			t.Fatalf("reallocation %d after freeing everything should succeed", i)
		}
	}
}

func TestDoubleFreeIsANoOp(t *testing.T) {
	a := newTestAllocator()
	s, ok := a.Allocate(32, 32)
	if !ok {
		t.Fatal("allocation should succeed")
	}
	a.Free(s)
	a.Free(s) // must not panic or corrupt the free list
	if _, ok := a.Allocate(32, 32); !ok {
		t.Fatal("allocator should still function after a double free")
	}
}

func TestAllocateFillsAtlasThenFails(t *testing.T) {
	a := atlas.New(atlas.Config{Width: 64, Height: 64, ShelfWidth: 64, MinHeight: 16, CategoryBits: 1})
	count := 0
	for {
		if _, ok := a.Allocate(64, 16); !ok {
			break
		}
		count++
		if count > 100 {
			t.Fatal("allocator never reported full")
		}
	}
	if count == 0 {
		t.Fatal("expected at least one allocation before the atlas filled")
	}
}
