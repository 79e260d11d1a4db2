package jobsys

import (
	"sync/atomic"
	"testing"
	"time"
)

func TestInitAndBatchJobsRunsEveryJob(t *testing.T) {
	r := New(4)
	defer r.Close()

	var count atomic.Int32
	id, ok := r.InitAndBatchJobs(10, func(any) { count.Add(1) }, nil, PriorityNormal)
	if !ok {
		t.Fatal("InitAndBatchJobs should succeed with a fresh counter pool")
	}
	r.WaitForCounter(id)

	if got := count.Load(); got != 10 {
		t.Errorf("count = %d, want 10", got)
	}
}

// Mirrors spec.md's seeded scenario 2: init a counter to 4, have four jobs
// each decrement it, and confirm the waiter is released exactly once the
// fourth decrement lands.
func TestSyncCounterReleasesAfterFourthDecrement(t *testing.T) {
	pool := NewCounterPool(8)
	id, ok := pool.AcquireCounter(4)
	if !ok {
		t.Fatal("AcquireCounter should succeed on a fresh pool")
	}

	released := make(chan struct{})
	go func() {
		pool.WaitForCounter(id)
		close(released)
	}()

	for i := 0; i < 3; i++ {
		pool.DecrementCounterValue(id)
	}
	select {
	case <-released:
		t.Fatal("waiter released before the fourth decrement")
	case <-time.After(20 * time.Millisecond):
	}

	v, ok := pool.DecrementCounterValue(id)
	if !ok || v != 0 {
		t.Fatalf("fourth decrement: v=%d ok=%v, want 0,true", v, ok)
	}

	select {
	case <-released:
	case <-time.After(time.Second):
		t.Fatal("waiter was never released after the fourth decrement")
	}
}

func TestAutoCounterReleaseIsIdempotent(t *testing.T) {
	pool := NewCounterPool(4)
	id, _ := pool.AcquireCounter(1)
	ac := &AutoCounter{pool: pool, id: id}

	ac.Release()
	ac.Release() // must not panic or double-free the slot

	if _, ok := pool.AcquireCounter(1); !ok {
		t.Error("pool should have a free slot after release")
	}
}

func TestBatchSliceWaitsForAllItems(t *testing.T) {
	r := New(4)
	defer r.Close()

	items := make([]any, 20)
	var sum atomic.Int64
	for i := range items {
		items[i] = int64(i)
	}

	r.BatchSlice(items, func(item any) { sum.Add(item.(int64)) }, PriorityNormal)

	if got, want := sum.Load(), int64(19*20/2); got != want {
		t.Errorf("sum = %d, want %d", got, want)
	}
}
