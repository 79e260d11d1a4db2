package pool

import "testing"

type hotEntry struct {
	value int
}

func TestAllocateAssignsSequentialIndices(t *testing.T) {
	p := New[hotEntry, struct{}]()

	h0, ok := p.Allocate()
	if !ok || h0.Index() != 0 {
		t.Fatalf("first Allocate: got index %d ok=%v, want index 0", h0.Index(), ok)
	}
	h1, ok := p.Allocate()
	if !ok || h1.Index() != 1 {
		t.Fatalf("second Allocate: got index %d ok=%v, want index 1", h1.Index(), ok)
	}
}

func TestGetRoundTripsHotPayload(t *testing.T) {
	p := New[hotEntry, struct{}]()
	h, _ := p.Allocate()

	got, ok := p.Get(h)
	if !ok {
		t.Fatal("Get on a freshly allocated handle should succeed")
	}
	got.value = 42

	got2, _ := p.Get(h)
	if got2.value != 42 {
		t.Errorf("value = %d, want 42", got2.value)
	}
}

// Exercises spec.md's seeded scenario: allocate 33 entries (forcing a
// segment to grow beyond a small size in the original C++ pool), free index
// 10, allocate again, and check the new handle reuses index 10 with its
// generation bumped, while the old handle now misses.
func TestFreeAndReallocateBumpsGeneration(t *testing.T) {
	p := New[hotEntry, struct{}]()

	handles := make([]Handle, 33)
	for i := range handles {
		h, ok := p.Allocate()
		if !ok {
			t.Fatalf("Allocate #%d failed", i)
		}
		handles[i] = h
	}

	old := handles[10]
	if old.Index() != 10 {
		t.Fatalf("handles[10].Index() = %d, want 10", old.Index())
	}
	if !p.Free(old) {
		t.Fatal("Free(handles[10]) should succeed")
	}
	p.FlushDeferredFrees()

	reused, ok := p.Allocate()
	if !ok {
		t.Fatal("Allocate after Free should succeed")
	}
	if reused.Index() != 10 {
		t.Errorf("reused.Index() = %d, want 10 (reused slot)", reused.Index())
	}
	if reused.Generation() != old.Generation()+1 {
		t.Errorf("reused.Generation() = %d, want %d", reused.Generation(), old.Generation()+1)
	}

	if _, ok := p.Get(old); ok {
		t.Error("Get(old) should fail after the slot was reused with a new generation")
	}
	if _, ok := p.Get(reused); !ok {
		t.Error("Get(reused) should succeed")
	}
}

func TestFreeWithoutFlushDoesNotReuseIndexWithinSameRotation(t *testing.T) {
	p := New[hotEntry, struct{}]()
	h, _ := p.Allocate()
	p.Free(h)

	next, _ := p.Allocate()
	if next.Index() == h.Index() {
		t.Error("Allocate should not reuse a freed index before FlushDeferredFrees runs")
	}
}

func TestFreeRejectsStaleHandle(t *testing.T) {
	p := New[hotEntry, struct{}]()
	h, _ := p.Allocate()
	p.Free(h)
	p.FlushDeferredFrees()

	if p.Free(h) {
		t.Error("Free should reject a handle whose generation no longer matches")
	}
}

func TestGetColdAndGetAll(t *testing.T) {
	type cold struct{ tag string }
	p := New[hotEntry, cold]()
	h, _ := p.Allocate()

	c, ok := p.GetCold(h)
	if !ok {
		t.Fatal("GetCold should succeed for a valid handle")
	}
	c.tag = "grid"

	hot, cold2, ok := p.GetAll(h)
	if !ok {
		t.Fatal("GetAll should succeed for a valid handle")
	}
	hot.value = 7
	if cold2.tag != "grid" {
		t.Errorf("cold.tag = %q, want %q", cold2.tag, "grid")
	}
}

func TestSizeTracksHighWaterMark(t *testing.T) {
	p := New[hotEntry, struct{}]()
	for i := 0; i < 5; i++ {
		p.Allocate()
	}
	if p.Size() != 5 {
		t.Errorf("Size() = %d, want 5", p.Size())
	}

	h, _ := p.Allocate()
	p.Free(h)
	p.FlushDeferredFrees()
	p.Allocate()

	if p.Size() != 6 {
		t.Errorf("Size() = %d after reuse, want 6 (reuse must not raise the high-water mark)", p.Size())
	}
}

func TestGrowsAcrossSegmentBoundary(t *testing.T) {
	p := New[hotEntry, struct{}]()
	const n = segmentSize + 16
	handles := make([]Handle, n)
	for i := 0; i < n; i++ {
		h, ok := p.Allocate()
		if !ok {
			t.Fatalf("Allocate #%d failed", i)
		}
		handles[i] = h
	}

	for _, idx := range []int{0, segmentSize - 1, segmentSize, n - 1} {
		got, ok := p.Get(handles[idx])
		if !ok {
			t.Errorf("Get(handles[%d]) failed after growth", idx)
			continue
		}
		got.value = idx
	}
	if v, _ := p.Get(handles[n-1]); v.value != n-1 {
		t.Errorf("value after growth = %d, want %d", v.value, n-1)
	}
}
