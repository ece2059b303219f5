package theme

import (
	"log/slog"
	"sync"
)

// PreferenceFactory returns the preference store scoped to one visitor.
type PreferenceFactory func(visitor string) PreferenceStore

// ChangeHook observes theme changes for any visitor.
type ChangeHook func(visitor string, t Theme)

// RegistryOption configures a Registry.
type RegistryOption func(*Registry)

// WithChangeHook sets a hook called after every change of any store.
func WithChangeHook(fn ChangeHook) RegistryOption {
	return func(r *Registry) {
		r.hook = fn
	}
}

type registryEntry struct {
	store  *Store
	refs   int
	cancel func()
}

// Registry shares one Store per visitor between every tab and request of
// that visitor. Stores are reference counted and dropped on last release.
type Registry struct {
	mu       sync.Mutex
	entries  map[string]*registryEntry
	prefs    PreferenceFactory
	fallback Theme
	hook     ChangeHook
	logger   *slog.Logger
}

// NewRegistry creates a Registry. prefs may be nil for memory-only stores.
func NewRegistry(prefs PreferenceFactory, fallback Theme, logger *slog.Logger, opts ...RegistryOption) *Registry {
	if logger == nil {
		logger = slog.Default()
	}
	r := &Registry{
		entries:  make(map[string]*registryEntry),
		prefs:    prefs,
		fallback: fallback,
		logger:   logger,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Acquire returns the visitor's store and a release func. Release is
// idempotent; the store is evicted when the last holder releases it.
func (r *Registry) Acquire(visitor string) (*Store, func()) {
	r.mu.Lock()
	e, ok := r.entries[visitor]
	if !ok {
		var prefs PreferenceStore
		if r.prefs != nil {
			prefs = r.prefs(visitor)
		}
		e = &registryEntry{store: NewStore(prefs, r.fallback, r.logger)}
		if r.hook != nil {
			hook := r.hook
			e.cancel = e.store.Subscribe(func(t Theme) { hook(visitor, t) })
		}
		r.entries[visitor] = e
	}
	e.refs++
	r.mu.Unlock()

	var once sync.Once
	return e.store, func() {
		once.Do(func() { r.release(visitor, e) })
	}
}

func (r *Registry) release(visitor string, e *registryEntry) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e.refs--
	if e.refs > 0 {
		return
	}
	if e.cancel != nil {
		e.cancel()
	}
	if r.entries[visitor] == e {
		delete(r.entries, visitor)
	}
}

// Len returns the number of visitors with a live store.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.entries)
}
