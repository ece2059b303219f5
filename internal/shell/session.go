// Package shell runs the per-tab page shell: header scroll state, the
// mobile navigation overlay, route transitions, the theme and the project
// catalog. Each browser tab gets one Session whose state is owned by a
// single loop goroutine.
package shell

import (
	"context"
	"errors"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/starford/folio/internal/catalog"
	"github.com/starford/folio/internal/content"
	"github.com/starford/folio/internal/document"
	"github.com/starford/folio/internal/overlay"
	"github.com/starford/folio/internal/routes"
	"github.com/starford/folio/internal/scroll"
	"github.com/starford/folio/internal/signal"
	"github.com/starford/folio/internal/theme"
	"github.com/starford/folio/internal/transition"
)

var (
	errAlreadyRunning = errors.New("shell: session already running")
	errUnbuffered     = errors.New("shell: patch channel must be buffered")
)

// Options configures a Session.
type Options struct {
	Visitor  string
	Route    string // initial path, resolved through the route table
	Criteria catalog.Criteria

	Themes  *theme.Registry
	Library *content.Library

	ScrollThreshold float64
	ExitDuration    time.Duration
	EnterDuration   time.Duration

	Logger *slog.Logger
}

// Session is the shell state of one tab.
type Session struct {
	id   string
	opts Options
	log  *slog.Logger
	box  *mailbox
	done chan struct{}
	seq  uint64

	// Loop-owned state, valid while Run executes.
	store    *theme.Store
	doc      *document.Document
	lock     *document.ScrollLock
	menu     *overlay.Overlay
	header   *scroll.Tracker
	host     *transition.Host
	offsets  signal.Feed[float64]
	criteria catalog.Criteria
	out      chan Patch

	running atomic.Bool
}

// New creates a session. Run starts it.
func New(opts Options) *Session {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.ExitDuration <= 0 {
		opts.ExitDuration = transition.DefaultDuration
	}
	if opts.EnterDuration <= 0 {
		opts.EnterDuration = transition.DefaultDuration
	}
	id := uuid.NewString()
	return &Session{
		id:       id,
		opts:     opts,
		log:      opts.Logger.With(slog.String("session", id)),
		box:      newMailbox(),
		done:     make(chan struct{}),
		criteria: opts.Criteria,
	}
}

// ID returns the session id.
func (s *Session) ID() string { return s.id }

// After implements transition.Scheduler. fn runs on the session loop; if the
// session has ended it is dropped.
func (s *Session) After(d time.Duration, fn func()) func() {
	t := time.AfterFunc(d, func() { s.post(fn) })
	return func() { t.Stop() }
}

func (s *Session) post(fn func()) {
	select {
	case <-s.done:
		return
	default:
	}
	s.box.post(fn)
}

// Run processes events from in and writes a Patch to out after each change,
// until in is closed or ctx is done. out must be buffered; a patch the
// reader has not taken yet is replaced by the next one. All resources the
// session holds are released before Run returns. A session runs at most
// once.
func (s *Session) Run(ctx context.Context, in <-chan ClientEvent, out chan Patch) error {
	if cap(out) == 0 {
		return errUnbuffered
	}
	if !s.running.CompareAndSwap(false, true) {
		return errAlreadyRunning
	}
	defer close(s.done)
	s.out = out

	teardown := s.start()
	defer teardown()

	s.log.Debug("shell: session started",
		slog.String("visitor", s.opts.Visitor),
		slog.String("route", s.host.State().Visible.Route))

	for {
		select {
		case <-ctx.Done():
			s.log.Debug("shell: session cancelled")
			return nil

		case ev, ok := <-in:
			if !ok {
				s.log.Debug("shell: client gone")
				return nil
			}
			s.handle(ev)

		case <-s.box.wake:
			for _, fn := range s.box.drain() {
				fn()
			}
		}
	}
}

// start wires every component and returns the teardown that undoes it in
// reverse order.
func (s *Session) start() (teardown func()) {
	var releases []func()
	teardown = func() {
		for i := len(releases) - 1; i >= 0; i-- {
			releases[i]()
		}
		s.log.Debug("shell: session closed")
	}

	store, release := s.acquireTheme()
	s.store = store
	releases = append(releases, release)

	s.doc = document.New(store.Get())
	s.lock = document.NewScrollLock(s.doc)

	unsubTheme := store.Subscribe(func(t theme.Theme) {
		s.post(func() { s.themeChanged(t) })
	})
	releases = append(releases, unsubTheme)

	s.menu = overlay.New(s.lock, overlay.WithOnChange(func(overlay.State) { s.emit() }))
	releases = append(releases, s.menu.Close)

	s.header = scroll.NewTracker(s.opts.ScrollThreshold, func(bool) { s.emit() })
	s.header.Attach(&s.offsets)
	releases = append(releases, s.header.Close)

	s.host = transition.New(s,
		transition.WithDurations(s.opts.ExitDuration, s.opts.EnterDuration),
		transition.WithScrollReset(s.doc.ScrollToTop),
		transition.WithOnChange(func(transition.State) { s.emit() }),
	)
	releases = append(releases, s.host.Close)

	if s.opts.Library != nil {
		unsubContent := s.opts.Library.Subscribe(func(*content.Snapshot) {
			s.post(s.contentChanged)
		})
		releases = append(releases, unsubContent)
	}

	page, _ := routes.Resolve(s.opts.Route)
	s.host.Mount(transition.Key{Route: page.Path, Theme: store.Get()})
	return teardown
}

func (s *Session) acquireTheme() (*theme.Store, func()) {
	if s.opts.Themes != nil {
		return s.opts.Themes.Acquire(s.opts.Visitor)
	}
	return theme.NewStore(nil, theme.Light, s.log), func() {}
}

func (s *Session) handle(ev ClientEvent) {
	switch ev.Type {
	case EventScroll:
		s.doc.SetScrollY(ev.Offset)
		s.offsets.Publish(ev.Offset)
		return // the tracker emits when the header flag flips

	case EventPointerDown:
		s.menu.PointerDown(ev.Targets)
		return

	case EventMenuToggle:
		s.menu.Toggle()
		return

	case EventLink:
		s.menu.SelectLink()
		if routes.Internal(ev.Href) {
			s.navigate(ev.Href)
		}
		return

	case EventNavigate:
		s.navigate(ev.Path)
		return

	case EventThemeToggle:
		// Applied here in the same step; the copy the store publishes to
		// this tab is then a no-op. Other tabs get it through the mailbox.
		s.themeChanged(s.store.Toggle())
		return

	case EventCatalogCategory:
		c, ok := catalog.ParseCategory(ev.Category)
		if !ok {
			s.log.Debug("shell: unknown category", slog.String("category", ev.Category))
		}
		s.criteria.Category = c

	case EventCatalogQuery:
		s.criteria.Query = ev.Query

	default:
		s.log.Debug("shell: ignoring event", slog.String("type", ev.Type))
		return
	}
	s.emit()
}

func (s *Session) navigate(href string) {
	page, _ := routes.Resolve(href)
	s.menu.RouteChanged()
	s.host.Navigate(page.Path)
}

func (s *Session) themeChanged(t theme.Theme) {
	if s.doc.Theme() == t {
		return
	}
	s.doc.ApplyTheme(t)
	s.host.SetTheme(t)
	s.emit()
}

func (s *Session) contentChanged() {
	if s.host.State().Target.Route == routes.Projects {
		s.emit()
	}
}

// snapshot builds the current patch. Only call it from the loop.
func (s *Session) snapshot() Patch {
	st := s.host.State()
	p := Patch{
		Header: HeaderState{
			Scrolled: s.header.Scrolled(),
			MenuOpen: s.menu.IsOpen(),
			Theme:    s.store.Get().String(),
		},
		Document: DocumentState{
			Overflow: s.doc.Overflow(),
			Theme:    s.doc.Theme().String(),
			ScrollY:  s.doc.ScrollY(),
		},
		Transition: TransitionState{
			Phase:  st.Phase.String(),
			Key:    st.Visible.String(),
			Route:  st.Visible.Route,
			Target: st.Target.Route,
		},
	}
	if st.Target.Route == routes.Projects && s.opts.Library != nil {
		p.Catalog = catalogState(s.opts.Library.Snapshot().Projects, s.criteria)
	}
	return p
}

// emit sends the latest snapshot, replacing an unread older one.
func (s *Session) emit() {
	if s.out == nil || s.host == nil {
		return
	}
	s.seq++
	p := s.snapshot()
	p.Seq = s.seq
	for {
		select {
		case s.out <- p:
			return
		default:
		}
		select {
		case <-s.out:
		default:
		}
	}
}
