package shell

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"golang.org/x/sync/errgroup"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = pongWait * 9 / 10
	maxMessage = 4096
)

// Handler upgrades requests to websocket and runs one Session per
// connection.
type Handler struct {
	upgrader websocket.Upgrader
	options  func(r *http.Request) Options
	tracker  *Tracker
	logger   *slog.Logger
}

// NewHandler returns a Handler. options builds the session options for a
// request; tracker may be nil.
func NewHandler(options func(r *http.Request) Options, tracker *Tracker, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
		options: options,
		tracker: tracker,
		logger:  logger,
	}
}

// conn serialises writes; gorilla allows one concurrent writer.
type conn struct {
	ws *websocket.Conn
	mu sync.Mutex
}

func (c *conn) write(messageType int, data []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	_ = c.ws.SetWriteDeadline(time.Now().Add(writeWait))
	return c.ws.WriteMessage(messageType, data)
}

// ServeHTTP handles GET /shell.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ws, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Debug("shell: upgrade failed", slog.String("error", err.Error()))
		return
	}
	c := &conn{ws: ws}

	sess := New(h.options(r))
	if h.tracker != nil {
		h.tracker.add(sess)
		defer h.tracker.remove(sess)
	}

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	in := make(chan ClientEvent, 16)
	out := make(chan Patch, 1)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		defer ws.Close()
		defer cancel()
		return sess.Run(gctx, in, out)
	})
	g.Go(func() error {
		defer close(in)
		return h.readPump(gctx, c, in)
	})
	g.Go(func() error {
		return h.writePump(gctx, c, out)
	})

	if err := g.Wait(); err != nil && !isClosed(err) {
		h.logger.Debug("shell: connection ended", slog.String("error", err.Error()))
	}
}

func (h *Handler) readPump(ctx context.Context, c *conn, in chan<- ClientEvent) error {
	c.ws.SetReadLimit(maxMessage)
	_ = c.ws.SetReadDeadline(time.Now().Add(pongWait))
	c.ws.SetPongHandler(func(string) error {
		return c.ws.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, data, err := c.ws.ReadMessage()
		if err != nil {
			return err
		}
		var ev ClientEvent
		if err := json.Unmarshal(data, &ev); err != nil || ev.Type == "" {
			h.logger.Debug("shell: malformed event", slog.Int("bytes", len(data)))
			continue
		}
		select {
		case in <- ev:
		case <-ctx.Done():
			return nil
		}
	}
}

func (h *Handler) writePump(ctx context.Context, c *conn, out <-chan Patch) error {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			_ = c.write(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
			return nil
		case p := <-out:
			data, err := json.Marshal(p)
			if err != nil {
				return err
			}
			if err := c.write(websocket.TextMessage, data); err != nil {
				return err
			}
		case <-ticker.C:
			if err := c.write(websocket.PingMessage, nil); err != nil {
				return err
			}
		}
	}
}

func isClosed(err error) bool {
	return websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway, websocket.CloseNoStatusReceived) ||
		errors.Is(err, context.Canceled) ||
		errors.Is(err, net.ErrClosed)
}
