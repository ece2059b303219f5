// Package theme holds the active colour theme with persisted preference.
package theme

import (
	"log/slog"
	"sync"

	"github.com/starford/folio/internal/signal"
)

// Theme is the colour scheme applied to the document.
type Theme string

// Supported themes.
const (
	Light Theme = "light"
	Dark  Theme = "dark"
)

// PreferenceKey is the single durable key the theme is stored under.
const PreferenceKey = "theme"

// Parse returns the Theme named by s.
func Parse(s string) (Theme, bool) {
	switch Theme(s) {
	case Light, Dark:
		return Theme(s), true
	}
	return "", false
}

// Toggled returns the opposite theme.
func (t Theme) Toggled() Theme {
	if t == Dark {
		return Light
	}
	return Dark
}

func (t Theme) String() string { return string(t) }

// PreferenceStore is best-effort durable key/value storage.
type PreferenceStore interface {
	Load(key string) (string, error)
	Save(key, value string) error
}

// Store is the theme state for one browser. Every mutation is persisted and
// then delivered to subscribers before the mutating call returns.
//
// Subscribers must not mutate the store from inside a delivery.
type Store struct {
	write sync.Mutex // serialises mutate+persist+publish

	mu      sync.RWMutex
	current Theme

	prefs  PreferenceStore
	feed   signal.Feed[Theme]
	logger *slog.Logger
}

// NewStore restores the persisted theme, falling back to fallback when the
// preference is missing, unreadable or invalid. prefs may be nil.
func NewStore(prefs PreferenceStore, fallback Theme, logger *slog.Logger) *Store {
	if _, ok := Parse(string(fallback)); !ok {
		fallback = Light
	}
	if logger == nil {
		logger = slog.Default()
	}
	s := &Store{current: fallback, prefs: prefs, logger: logger}

	if prefs != nil {
		raw, err := prefs.Load(PreferenceKey)
		switch {
		case err != nil:
			logger.Debug("theme: preference unavailable", slog.String("error", err.Error()))
		case raw != "":
			if t, ok := Parse(raw); ok {
				s.current = t
			}
		}
	}
	return s
}

// Get returns the active theme.
func (s *Store) Get() Theme {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// Toggle flips the theme, persists it and returns the new value.
func (s *Store) Toggle() Theme {
	s.write.Lock()
	defer s.write.Unlock()
	next := s.Get().Toggled()
	s.apply(next)
	return next
}

// Set changes the theme. Setting the current value is a no-op.
func (s *Store) Set(t Theme) {
	s.write.Lock()
	defer s.write.Unlock()
	if s.Get() == t {
		return
	}
	s.apply(t)
}

func (s *Store) apply(t Theme) {
	s.mu.Lock()
	s.current = t
	s.mu.Unlock()

	if s.prefs != nil {
		if err := s.prefs.Save(PreferenceKey, string(t)); err != nil {
			s.logger.Debug("theme: persist failed", slog.String("error", err.Error()))
		}
	}
	s.feed.Publish(t)
}

// Subscribe registers fn for every subsequent change.
func (s *Store) Subscribe(fn func(Theme)) (cancel func()) {
	return s.feed.Subscribe(fn)
}

// Subscribers returns the number of live subscriptions.
func (s *Store) Subscribers() int {
	return s.feed.Len()
}
