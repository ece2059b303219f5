// Package overlay implements the mobile navigation menu state machine.
package overlay

import (
	"slices"

	"github.com/starford/folio/internal/document"
)

// Element ids the browser reports in pointer-down target paths.
const (
	DefaultMenuID   = "mobile-menu"
	DefaultToggleID = "menu-button"
)

// State is the menu state.
type State int

// Menu states.
const (
	Closed State = iota
	Open
)

func (s State) String() string {
	if s == Open {
		return "open"
	}
	return "closed"
}

// Option configures an Overlay.
type Option func(*Overlay)

// WithElementIDs overrides the ids of the menu region and its toggle button.
func WithElementIDs(menuID, toggleID string) Option {
	return func(o *Overlay) {
		o.menuID = menuID
		o.toggleID = toggleID
	}
}

// WithOnChange sets a callback invoked after every state change.
func WithOnChange(fn func(State)) Option {
	return func(o *Overlay) {
		o.onChange = fn
	}
}

// Overlay is the menu for one page. While Open it holds a lease on the
// document scroll lock. Not safe for concurrent use.
type Overlay struct {
	state    State
	lock     *document.ScrollLock
	lease    *document.Lease
	menuID   string
	toggleID string
	onChange func(State)
}

// New returns a Closed overlay bound to lock.
func New(lock *document.ScrollLock, opts ...Option) *Overlay {
	o := &Overlay{
		lock:     lock,
		menuID:   DefaultMenuID,
		toggleID: DefaultToggleID,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// State returns the current state.
func (o *Overlay) State() State { return o.state }

// IsOpen reports whether the menu is open.
func (o *Overlay) IsOpen() bool { return o.state == Open }

// Toggle handles menu button activation.
func (o *Overlay) Toggle() {
	if o.state == Open {
		o.transition(Closed)
		return
	}
	o.transition(Open)
}

// PointerDown handles a pointer-down whose target has the given ancestor id
// path (target first). The menu closes only when the target is outside both
// the menu region and the toggle button; the toggle handles its own click.
func (o *Overlay) PointerDown(path []string) {
	if o.state != Open {
		return
	}
	if slices.Contains(path, o.menuID) || slices.Contains(path, o.toggleID) {
		return
	}
	o.transition(Closed)
}

// SelectLink handles activation of a navigation link inside the menu.
func (o *Overlay) SelectLink() {
	o.transition(Closed)
}

// RouteChanged closes the menu after navigation.
func (o *Overlay) RouteChanged() {
	o.transition(Closed)
}

// Close releases the scroll lock on teardown, whatever the state.
func (o *Overlay) Close() {
	o.lease.Release()
	o.lease = nil
	o.state = Closed
}

func (o *Overlay) transition(next State) {
	if next == o.state {
		return
	}
	switch next {
	case Open:
		o.lease = o.lock.Acquire("navigation")
	case Closed:
		o.lease.Release()
		o.lease = nil
	}
	o.state = next
	if o.onChange != nil {
		o.onChange(next)
	}
}
