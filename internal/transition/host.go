// Package transition sequences page enter/exit animations on route and
// theme changes.
package transition

import (
	"time"

	"github.com/starford/folio/internal/theme"
)

// DefaultDuration is the length of both the exit and the enter animation.
const DefaultDuration = 300 * time.Millisecond

// Phase is the animation phase of the visible view.
type Phase int

// Animation phases.
const (
	Entering Phase = iota
	Entered
	Exiting
	Exited
)

func (p Phase) String() string {
	switch p {
	case Entering:
		return "entering"
	case Entered:
		return "entered"
	case Exiting:
		return "exiting"
	case Exited:
		return "exited"
	}
	return "unknown"
}

// Key identifies a view. A change in either part replays the transition.
type Key struct {
	Route string
	Theme theme.Theme
}

func (k Key) String() string {
	return k.Route + "|" + string(k.Theme)
}

// Scheduler runs fn once after d unless cancelled.
type Scheduler interface {
	After(d time.Duration, fn func()) (cancel func())
}

// SchedulerFunc adapts a function to Scheduler.
type SchedulerFunc func(d time.Duration, fn func()) (cancel func())

// After implements Scheduler.
func (f SchedulerFunc) After(d time.Duration, fn func()) func() { return f(d, fn) }

// State is a snapshot of the host.
type State struct {
	Phase   Phase
	Visible Key
	Target  Key
}

// Option configures a Host.
type Option func(*Host)

// WithDurations sets the exit and enter durations.
func WithDurations(exit, enter time.Duration) Option {
	return func(h *Host) {
		h.exit = exit
		h.enter = enter
	}
}

// WithOnChange sets a callback invoked on every phase change.
func WithOnChange(fn func(State)) Option {
	return func(h *Host) {
		h.onChange = fn
	}
}

// WithScrollReset sets the callback that resets the viewport on route change.
func WithScrollReset(fn func()) Option {
	return func(h *Host) {
		h.scrollReset = fn
	}
}

// Host runs the wait-mode transition for one page: the old view exits
// completely before the new view starts entering, so only one is visible.
// It is driven from a single goroutine; the Scheduler must call back on it.
type Host struct {
	sched       Scheduler
	exit, enter time.Duration
	onChange    func(State)
	scrollReset func()

	phase      Phase
	visible    Key
	pending    Key
	hasPending bool

	gen    uint64
	cancel func()
	closed bool
}

// New returns a host that has not mounted a view yet.
func New(sched Scheduler, opts ...Option) *Host {
	h := &Host{sched: sched, exit: DefaultDuration, enter: DefaultDuration, phase: Exited}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Mount shows the first view with an enter animation.
func (h *Host) Mount(k Key) {
	h.visible = k
	h.hasPending = false
	h.startEnter()
}

// State returns a snapshot.
func (h *Host) State() State {
	return State{Phase: h.phase, Visible: h.visible, Target: h.target()}
}

// Navigate changes the route, keeping the target's theme. Route changes
// reset the viewport to the top.
func (h *Host) Navigate(route string) {
	t := h.target()
	if route == t.Route {
		return
	}
	if h.scrollReset != nil {
		h.scrollReset()
	}
	h.Change(Key{Route: route, Theme: t.Theme})
}

// SetTheme replays the transition for the current route under th.
func (h *Host) SetTheme(th theme.Theme) {
	t := h.target()
	h.Change(Key{Route: t.Route, Theme: th})
}

// Change requests k as the next view. The last request wins.
func (h *Host) Change(k Key) {
	if h.closed || k == h.target() {
		return
	}
	switch h.phase {
	case Exiting:
		h.pending = k
		h.hasPending = true
		h.emit()
	case Exited:
		// Not mounted yet, or between exit and enter.
		h.visible = k
		h.hasPending = false
		h.startEnter()
	default:
		h.pending = k
		h.hasPending = true
		h.phase = Exiting
		h.schedule(h.exit, h.exited)
		h.emit()
	}
}

// Close cancels any pending timer. Later events are ignored.
func (h *Host) Close() {
	h.closed = true
	h.stopTimer()
}

func (h *Host) target() Key {
	if h.hasPending {
		return h.pending
	}
	return h.visible
}

func (h *Host) startEnter() {
	h.phase = Entering
	h.schedule(h.enter, h.entered)
	h.emit()
}

func (h *Host) exited() {
	h.phase = Exited
	h.emit()
	h.visible = h.pending
	h.hasPending = false
	h.startEnter()
}

func (h *Host) entered() {
	h.phase = Entered
	h.cancel = nil
	h.emit()
}

func (h *Host) schedule(d time.Duration, fn func()) {
	h.stopTimer()
	if h.closed {
		return
	}
	h.gen++
	gen := h.gen
	h.cancel = h.sched.After(d, func() {
		if h.closed || gen != h.gen {
			return
		}
		fn()
	})
}

func (h *Host) stopTimer() {
	if h.cancel != nil {
		h.cancel()
		h.cancel = nil
	}
}

func (h *Host) emit() {
	if h.onChange != nil {
		h.onChange(h.State())
	}
}
