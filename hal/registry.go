package hal

import "sync"

// Provider is a factory for a single backend variant. Concrete backend
// packages (Vulkan, DX12, Metal) register a Provider from their init()
// function; only the contract lives in this module (spec.md §1 excludes the
// concrete backend implementations from scope), so in-tree the only
// registered provider is hal/noop.
type Provider interface {
	// Variant identifies which native API this provider targets.
	Variant() Backend

	// CreateInstance creates a new instance for this backend.
	CreateInstance(desc *InstanceDescriptor) (Instance, error)

	// IsAvailable reports whether this backend can be used on the current
	// host (drivers present, required OS, ...).
	IsAvailable() bool
}

var (
	registryMu sync.Mutex
	providers  = map[Backend]Provider{}
	// priority lists preferred backend order when the caller does not pin one.
	priority = []Backend{BackendVulkan, BackendMetal, BackendDX12, BackendNoop}
)

// RegisterProvider registers a backend provider, replacing any existing
// registration for the same variant. Grounded on the teacher's
// core/backend.go BackendProvider registry.
func RegisterProvider(p Provider) {
	registryMu.Lock()
	defer registryMu.Unlock()
	providers[p.Variant()] = p
}

// GetProvider returns the provider registered for a backend variant, if any.
func GetProvider(b Backend) (Provider, bool) {
	registryMu.Lock()
	defer registryMu.Unlock()
	p, ok := providers[b]
	return p, ok
}

// AvailableProviders returns every registered provider whose IsAvailable
// reports true, ordered by preference (Vulkan > Metal > DX12 > Noop).
func AvailableProviders() []Provider {
	registryMu.Lock()
	defer registryMu.Unlock()
	out := make([]Provider, 0, len(providers))
	for _, b := range priority {
		if p, ok := providers[b]; ok && p.IsAvailable() {
			out = append(out, p)
		}
	}
	return out
}

// SelectBest returns the highest-priority available provider, or false if
// none are available.
func SelectBest() (Provider, bool) {
	avail := AvailableProviders()
	if len(avail) == 0 {
		return nil, false
	}
	return avail[0], true
}
