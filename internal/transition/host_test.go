package transition

import (
	"sort"
	"testing"
	"time"

	"github.com/starford/folio/internal/theme"
)

type fakeTimer struct {
	at        time.Duration
	fn        func()
	cancelled bool
	fired     bool
}

// fakeClock fires timers synchronously from Advance.
type fakeClock struct {
	now    time.Duration
	timers []*fakeTimer
}

func (c *fakeClock) After(d time.Duration, fn func()) func() {
	ft := &fakeTimer{at: c.now + d, fn: fn}
	c.timers = append(c.timers, ft)
	return func() { ft.cancelled = true }
}

func (c *fakeClock) Advance(d time.Duration) {
	end := c.now + d
	for {
		sort.SliceStable(c.timers, func(i, j int) bool { return c.timers[i].at < c.timers[j].at })
		var next *fakeTimer
		for _, ft := range c.timers {
			if !ft.cancelled && !ft.fired && ft.at <= end {
				next = ft
				break
			}
		}
		if next == nil {
			break
		}
		c.now = next.at
		next.fired = true
		next.fn()
	}
	c.now = end
}

func (c *fakeClock) live() int {
	n := 0
	for _, ft := range c.timers {
		if !ft.cancelled && !ft.fired {
			n++
		}
	}
	return n
}

type recorder struct {
	states []State
}

func (r *recorder) record(s State) { r.states = append(r.states, s) }

func (r *recorder) phases() []Phase {
	out := make([]Phase, len(r.states))
	for i, s := range r.states {
		out[i] = s.Phase
	}
	return out
}

func home() Key { return Key{Route: "/", Theme: theme.Light} }

func newHost(clock *fakeClock, rec *recorder, resets *int) *Host {
	return New(clock,
		WithOnChange(rec.record),
		WithScrollReset(func() { *resets++ }),
	)
}

func TestHost_MountEnters(t *testing.T) {
	clock := &fakeClock{}
	rec := &recorder{}
	resets := 0
	h := newHost(clock, rec, &resets)

	h.Mount(home())
	if h.State().Phase != Entering {
		t.Fatalf("phase = %v, want entering", h.State().Phase)
	}
	clock.Advance(DefaultDuration)
	if h.State().Phase != Entered || h.State().Visible != home() {
		t.Fatalf("state = %+v", h.State())
	}
}

func TestHost_WaitModeSequence(t *testing.T) {
	clock := &fakeClock{}
	rec := &recorder{}
	resets := 0
	h := newHost(clock, rec, &resets)
	h.Mount(home())
	clock.Advance(DefaultDuration)
	rec.states = nil

	h.Navigate("/about")
	if resets != 1 {
		t.Fatalf("scroll resets = %d, want 1", resets)
	}
	st := h.State()
	if st.Phase != Exiting || st.Visible.Route != "/" || st.Target.Route != "/about" {
		t.Fatalf("after navigate: %+v", st)
	}

	clock.Advance(DefaultDuration - time.Millisecond)
	if h.State().Visible.Route != "/" {
		t.Fatal("new view visible before the old one finished exiting")
	}

	clock.Advance(time.Millisecond)
	if st := h.State(); st.Phase != Entering || st.Visible.Route != "/about" {
		t.Fatalf("after exit: %+v", st)
	}
	clock.Advance(DefaultDuration)

	want := []Phase{Exiting, Exited, Entering, Entered}
	got := rec.phases()
	if len(got) != len(want) {
		t.Fatalf("phases = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("phases = %v, want %v", got, want)
		}
	}
}

func TestHost_LastRouteWins(t *testing.T) {
	clock := &fakeClock{}
	rec := &recorder{}
	resets := 0
	h := newHost(clock, rec, &resets)
	h.Mount(home())
	clock.Advance(DefaultDuration)

	h.Navigate("/about")
	clock.Advance(100 * time.Millisecond)
	h.Navigate("/projects")
	h.Navigate("/contact")

	clock.Advance(DefaultDuration)
	if st := h.State(); st.Visible.Route != "/contact" {
		t.Fatalf("visible = %q, want /contact", st.Visible.Route)
	}
	clock.Advance(DefaultDuration)
	if h.State().Phase != Entered {
		t.Fatalf("phase = %v, want entered", h.State().Phase)
	}
	if resets != 3 {
		t.Errorf("scroll resets = %d, want 3", resets)
	}
	for _, s := range rec.states {
		if s.Visible.Route == "/about" || s.Visible.Route == "/projects" {
			t.Fatalf("superseded route %q became visible", s.Visible.Route)
		}
	}
}

func TestHost_NavigateDuringEnterRestartsExit(t *testing.T) {
	clock := &fakeClock{}
	rec := &recorder{}
	resets := 0
	h := newHost(clock, rec, &resets)
	h.Mount(home())
	clock.Advance(100 * time.Millisecond)

	h.Navigate("/projects")
	if h.State().Phase != Exiting {
		t.Fatalf("phase = %v, want exiting", h.State().Phase)
	}
	if clock.live() != 1 {
		t.Fatalf("live timers = %d, want 1 (enter timer cancelled)", clock.live())
	}
	clock.Advance(2 * DefaultDuration)
	if st := h.State(); st.Phase != Entered || st.Visible.Route != "/projects" {
		t.Fatalf("state = %+v", st)
	}
}

func TestHost_ThemeChangeReplaysWithoutScrollReset(t *testing.T) {
	clock := &fakeClock{}
	rec := &recorder{}
	resets := 0
	h := newHost(clock, rec, &resets)
	h.Mount(home())
	clock.Advance(DefaultDuration)

	h.SetTheme(theme.Dark)
	if resets != 0 {
		t.Errorf("theme change reset scroll")
	}
	if h.State().Phase != Exiting {
		t.Fatalf("phase = %v, want exiting", h.State().Phase)
	}
	clock.Advance(2 * DefaultDuration)
	if v := h.State().Visible; v.Route != "/" || v.Theme != theme.Dark {
		t.Fatalf("visible = %+v", v)
	}
}

func TestHost_SameKeyIsNoop(t *testing.T) {
	clock := &fakeClock{}
	rec := &recorder{}
	resets := 0
	h := newHost(clock, rec, &resets)
	h.Mount(home())
	clock.Advance(DefaultDuration)
	rec.states = nil

	h.Navigate("/")
	h.SetTheme(theme.Light)
	if len(rec.states) != 0 || resets != 0 {
		t.Fatalf("states=%d resets=%d, want 0/0", len(rec.states), resets)
	}
}

func TestHost_CloseCancelsTimers(t *testing.T) {
	clock := &fakeClock{}
	rec := &recorder{}
	resets := 0
	h := newHost(clock, rec, &resets)
	h.Mount(home())
	h.Navigate("/about")
	h.Close()

	if clock.live() != 0 {
		t.Fatalf("live timers after close = %d", clock.live())
	}
	n := len(rec.states)
	clock.Advance(time.Second)
	h.Navigate("/contact")
	if len(rec.states) != n {
		t.Error("closed host kept emitting")
	}
}

func TestHost_CustomDurations(t *testing.T) {
	clock := &fakeClock{}
	h := New(clock, WithDurations(50*time.Millisecond, 80*time.Millisecond))
	h.Mount(home())
	clock.Advance(80 * time.Millisecond)
	h.Navigate("/about")
	clock.Advance(50 * time.Millisecond)
	if h.State().Phase != Entering {
		t.Fatalf("phase = %v, want entering", h.State().Phase)
	}
}

func TestKeyString(t *testing.T) {
	if got := (Key{Route: "/about", Theme: theme.Dark}).String(); got != "/about|dark" {
		t.Errorf("key = %q", got)
	}
}
