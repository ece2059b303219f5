package content

import (
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/starford/folio/internal/signal"
)

// Library holds the current snapshot and swaps it atomically on reload.
// Readers never see a partially loaded snapshot; a failed reload keeps the
// previous one.
type Library struct {
	loader  *Loader
	logger  *slog.Logger
	current atomic.Pointer[Snapshot]
	reload  sync.Mutex
	feed    signal.Feed[*Snapshot]
}

// NewLibrary loads the initial snapshot.
func NewLibrary(loader *Loader, logger *slog.Logger) (*Library, error) {
	if logger == nil {
		logger = slog.Default()
	}
	snap, err := loader.Load()
	if err != nil {
		return nil, err
	}
	lib := &Library{loader: loader, logger: logger}
	lib.current.Store(snap)
	logger.Info("content: loaded",
		slog.Int("projects", len(snap.Projects)),
		slog.String("checksum", snap.Checksum[:12]))
	return lib, nil
}

// Snapshot returns the current snapshot.
func (l *Library) Snapshot() *Snapshot {
	return l.current.Load()
}

// Reload rebuilds the snapshot. changed is false when the files are
// unchanged since the last load.
func (l *Library) Reload() (changed bool, err error) {
	l.reload.Lock()
	defer l.reload.Unlock()

	snap, err := l.loader.Load()
	if err != nil {
		l.logger.Warn("content: reload rejected, keeping previous snapshot", slog.String("error", err.Error()))
		return false, err
	}
	if prev := l.current.Load(); prev != nil && prev.Checksum == snap.Checksum {
		return false, nil
	}
	l.current.Store(snap)
	l.logger.Info("content: reloaded",
		slog.Int("projects", len(snap.Projects)),
		slog.String("checksum", snap.Checksum[:12]))
	l.feed.Publish(snap)
	return true, nil
}

// Subscribe registers fn for every successful reload that changed content.
func (l *Library) Subscribe(fn func(*Snapshot)) (cancel func()) {
	return l.feed.Subscribe(fn)
}
