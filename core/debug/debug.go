// Package debug provides the process-wide assertion callback and the
// optional handle-leak tracker backing it, grounded on the teacher's
// core/debug.go (SetDebugMode/ReportLeaks) and generalised per spec.md §7/§9
// ("surface violations through an assertion callback that a host application
// can intercept").
package debug

import (
	"fmt"
	"sort"
	"sync"
	"sync/atomic"
)

// AssertHandler receives the formatted message for a precondition violation,
// out-of-capacity condition, or backend failure (spec.md §7). The default
// handler is a no-op so the zero-configuration cost is nil; a host
// application replaces it with SetAssertHandler to log, downgrade to a test
// failure, or panic, per spec.md's "replaceable process-wide" requirement.
type AssertHandler func(msg string)

var assertHandler atomic.Pointer[AssertHandler]

func init() {
	var noop AssertHandler = func(string) {}
	assertHandler.Store(&noop)
}

// SetAssertHandler installs h as the process-wide assertion callback. A nil
// h restores the no-op default.
func SetAssertHandler(h AssertHandler) {
	if h == nil {
		h = func(string) {}
	}
	assertHandler.Store(&h)
}

// Assert reports a violation by formatting format/args and passing the
// result to the installed AssertHandler. It never panics and never affects
// control flow — the caller has already decided what to return; Assert only
// signals the condition to whatever the host installed (spec.md §7's
// "signalled by assertions in debug builds" / "logged via the assertion
// callback but non-fatal").
func Assert(format string, args ...any) {
	h := *assertHandler.Load()
	h(fmt.Sprintf(format, args...))
}

var debugMode atomic.Bool

// SetDebugMode enables or disables handle-leak tracking. Tracking costs
// nothing when disabled.
func SetDebugMode(enabled bool) {
	debugMode.Store(enabled)
}

// DebugMode reports whether leak tracking is currently enabled.
func DebugMode() bool {
	return debugMode.Load()
}

var handleTracker struct {
	mu      sync.Mutex
	handles map[uint64]handleInfo
}

type handleInfo struct {
	Kind string // "Buffer", "Texture", "Sampler", etc.
}

func init() {
	handleTracker.handles = make(map[uint64]handleInfo)
}

// TrackHandle records a live pool/registry handle under kind, identified by
// its raw packed value. A no-op unless DebugMode is enabled.
func TrackHandle(raw uint64, kind string) {
	if !debugMode.Load() || raw == 0 {
		return
	}
	handleTracker.mu.Lock()
	handleTracker.handles[raw] = handleInfo{Kind: kind}
	handleTracker.mu.Unlock()
}

// UntrackHandle removes raw from the live set, matching a prior TrackHandle.
func UntrackHandle(raw uint64) {
	if !debugMode.Load() || raw == 0 {
		return
	}
	handleTracker.mu.Lock()
	delete(handleTracker.handles, raw)
	handleTracker.mu.Unlock()
}

// LeakReport summarises handles tracked as live but never untracked.
type LeakReport struct {
	Count int
	Kinds map[string]int
}

func (r *LeakReport) String() string {
	if r.Count == 0 {
		return "no handle leaks detected"
	}
	s := fmt.Sprintf("%d unreleased handle(s):", r.Count)
	names := make([]string, 0, len(r.Kinds))
	for name := range r.Kinds {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		s += fmt.Sprintf(" %s=%d", name, r.Kinds[name])
	}
	return s
}

// ReportLeaks returns a summary of every handle still tracked as live, or
// nil if debug mode is off or nothing is outstanding.
func ReportLeaks() *LeakReport {
	if !debugMode.Load() {
		return nil
	}
	handleTracker.mu.Lock()
	defer handleTracker.mu.Unlock()
	count := len(handleTracker.handles)
	if count == 0 {
		return nil
	}
	kinds := make(map[string]int)
	for _, info := range handleTracker.handles {
		kinds[info.Kind]++
	}
	return &LeakReport{Count: count, Kinds: kinds}
}

// ResetLeakTracker clears the live handle set, used between tests.
func ResetLeakTracker() {
	handleTracker.mu.Lock()
	handleTracker.handles = make(map[uint64]handleInfo)
	handleTracker.mu.Unlock()
}
