package jobsys

import (
	"context"
	"runtime"
	"sync"
	"sync/atomic"

	"golang.org/x/sync/semaphore"
)

// Priority orders jobs within a worker's queues; workers drain high before
// normal before low (spec.md §4.B "drain priority queues (high → low)").
type Priority int

const (
	PriorityHigh Priority = iota
	PriorityNormal
	PriorityLow

	priorityCount = int(PriorityLow) + 1
)

// Job is a fire-and-forget unit of work with an optional completion
// counter (spec.md §4.B "tasks are fire-and-forget functions with a void*
// argument, synchronised through counters").
type Job struct {
	Fn       func(userData any)
	UserData any
	Priority Priority

	counter    CounterID
	hasCounter bool
}

// Runtime is the M:N job scheduler: M worker goroutines (each pinned to an
// OS thread, matching the original pinning real fibers' host threads to
// cores) draining N queued jobs, stealing from one another when idle.
type Runtime struct {
	workers int
	queues  [priorityCount][]chan *Job
	done    chan struct{}
	wg      sync.WaitGroup

	counters *CounterPool

	next atomic.Uint32 // round-robin submission cursor

	// inFlight bounds how many jobs may be submitted-but-not-yet-run at
	// once, system-wide, on top of each per-worker channel's own capacity
	// (spec.md §4.B "stealable work queues" fan-out, replaced here with
	// golang.org/x/sync/semaphore per SPEC_FULL.md's domain stack).
	inFlight   *semaphore.Weighted
	submitCtx  context.Context
	submitStop context.CancelFunc
}

// queueCapacity is each per-worker, per-priority channel's buffer size.
const queueCapacity = 256

// New starts a Runtime with the given worker count (0 or negative
// auto-derives from GOMAXPROCS, per spec.md §4.B "auto-derive from
// hardware") and a sync-counter pool of DefaultCounterPoolSize slots.
func New(workers int) *Runtime {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	ctx, stop := context.WithCancel(context.Background())
	r := &Runtime{
		workers:    workers,
		done:       make(chan struct{}),
		counters:   NewCounterPool(DefaultCounterPoolSize),
		inFlight:   semaphore.NewWeighted(int64(workers * queueCapacity * priorityCount)),
		submitCtx:  ctx,
		submitStop: stop,
	}
	for pr := 0; pr < priorityCount; pr++ {
		r.queues[pr] = make([]chan *Job, workers)
		for w := 0; w < workers; w++ {
			r.queues[pr][w] = make(chan *Job, queueCapacity)
		}
	}

	r.wg.Add(workers)
	for w := 0; w < workers; w++ {
		go r.worker(w)
	}
	return r
}

func (r *Runtime) worker(id int) {
	defer r.wg.Done()

	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	for {
		if j := r.pop(id); j != nil {
			r.run(j)
			r.inFlight.Release(1)
			continue
		}
		if j := r.steal(id); j != nil {
			r.run(j)
			r.inFlight.Release(1)
			continue
		}
		select {
		case <-r.done:
			return
		default:
			runtime.Gosched()
		}
	}
}

func (r *Runtime) pop(id int) *Job {
	for pr := 0; pr < priorityCount; pr++ {
		select {
		case j := <-r.queues[pr][id]:
			return j
		default:
		}
	}
	return nil
}

func (r *Runtime) steal(myID int) *Job {
	for pr := 0; pr < priorityCount; pr++ {
		for w := 0; w < r.workers; w++ {
			if w == myID {
				continue
			}
			select {
			case j := <-r.queues[pr][w]:
				return j
			default:
			}
		}
	}
	return nil
}

func (r *Runtime) run(j *Job) {
	j.Fn(j.UserData)
	if j.hasCounter {
		r.counters.DecrementCounterValue(j.counter)
	}
}

// QueueJob pushes j into its priority's MPMC queue set, assigned
// round-robin across workers. Blocks until a submission slot is free
// (bounded by inFlight) or the runtime is closed.
func (r *Runtime) QueueJob(j *Job) {
	if err := r.inFlight.Acquire(r.submitCtx, 1); err != nil {
		return
	}
	w := int(r.next.Add(1)) % r.workers
	select {
	case r.queues[j.Priority][w] <- j:
	case <-r.done:
		r.inFlight.Release(1)
	}
}

// InitAndBatchJobs allocates a counter initialised to count, enqueues
// count jobs that each invoke fn(userData) and decrement the counter on
// completion, and returns the counter's handle (spec.md §4.B).
func (r *Runtime) InitAndBatchJobs(count int, fn func(userData any), userData any, priority Priority) (CounterID, bool) {
	id, ok := r.counters.AcquireCounter(count)
	if !ok {
		return id, false
	}
	for i := 0; i < count; i++ {
		r.QueueJob(&Job{
			Fn:         fn,
			UserData:   userData,
			Priority:   priority,
			counter:    id,
			hasCounter: true,
		})
	}
	return id, true
}

// BatchSlice fans fn out over items, one job per element, waits for all to
// complete, then releases the counter. A convenience batch overload
// grounded on the original FibersManager.hpp's templated batch-submission
// helper.
func (r *Runtime) BatchSlice(items []any, fn func(item any), priority Priority) {
	if len(items) == 0 {
		return
	}
	id, ok := r.counters.AcquireCounter(len(items))
	if !ok {
		for _, item := range items {
			fn(item)
		}
		return
	}
	for _, item := range items {
		it := item
		r.QueueJob(&Job{
			Fn:         func(any) { fn(it) },
			Priority:   priority,
			counter:    id,
			hasCounter: true,
		})
	}
	r.counters.WaitForCounter(id)
	r.counters.ReleaseCounter(id)
}

// WaitForCounter blocks the calling goroutine until id reaches zero.
func (r *Runtime) WaitForCounter(id CounterID) { r.counters.WaitForCounter(id) }

// AcquireAutoSyncCounter reserves a counter initialised to n and returns an
// RAII wrapper that releases it back to the pool on Release.
func (r *Runtime) AcquireAutoSyncCounter(n int) (*AutoCounter, bool) {
	id, ok := r.counters.AcquireCounter(n)
	if !ok {
		return nil, false
	}
	return &AutoCounter{pool: r.counters, id: id}, true
}

// YieldJob voluntarily yields the calling worker. When next is non-nil it
// is run immediately inline before control returns to the scheduler loop,
// matching the original's "optionally handing a specific job to run next."
func (r *Runtime) YieldJob(next *Job) {
	if next != nil {
		r.run(next)
		return
	}
	runtime.Gosched()
}

// Close signals every worker goroutine to stop once its current job
// finishes and waits for them to exit.
func (r *Runtime) Close() {
	close(r.done)
	r.submitStop()
	r.wg.Wait()
}

// Workers returns the configured worker count.
func (r *Runtime) Workers() int { return r.workers }
