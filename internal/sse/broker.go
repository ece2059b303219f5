// Package sse implements a Server-Sent Events broker for live theme and
// content updates.
package sse

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/starford/folio/internal/visitor"
)

// Event types.
const (
	TypeThemeChanged   = "theme.changed"
	TypeContentUpdated = "content.updated"
)

// Event represents an SSE event. An empty Visitor broadcasts to everyone.
type Event struct {
	Type    string `json:"type"`
	Data    any    `json:"data"`
	Visitor string `json:"-"`
}

type client struct {
	ch      chan []byte
	visitor string
}

// Broker manages SSE client connections and fans events out to them.
//
// Concurrency model: a single internal event loop (goroutine) owns mutable state
// (clients + content throttle). Public methods communicate with this loop
// through channels, so no mutexes are required.
type Broker struct {
	contentMin time.Duration

	subscribeCh   chan client
	unsubscribeCh chan chan []byte
	publishCh     chan Event
	contentCh     chan string
	countReqCh    chan chan int

	stopCh  chan struct{}
	stopped chan struct{}
	closed  atomic.Bool
}

// NewBroker creates a new SSE broker. content.updated events are sent at
// most once per contentThrottle; a change inside the window is delivered
// when the window ends.
func NewBroker(contentThrottle time.Duration) *Broker {
	if contentThrottle <= 0 {
		contentThrottle = 2 * time.Second
	}

	b := &Broker{
		contentMin:    contentThrottle,
		subscribeCh:   make(chan client),
		unsubscribeCh: make(chan chan []byte),
		publishCh:     make(chan Event, 256),
		contentCh:     make(chan string, 256),
		countReqCh:    make(chan chan int),
		stopCh:        make(chan struct{}),
		stopped:       make(chan struct{}),
	}

	go b.run()
	return b
}

func (b *Broker) run() {
	defer close(b.stopped)

	clients := make(map[chan []byte]string)

	var lastContent time.Time
	var pendingChecksum string
	var flushTimer *time.Timer
	var flushCh <-chan time.Time

	send := func(event Event) {
		payload, err := json.Marshal(event.Data)
		if err != nil {
			return
		}
		raw := []byte(fmt.Sprintf("event: %s\ndata: %s\n\n", event.Type, payload))

		for ch, v := range clients {
			if event.Visitor != "" && event.Visitor != v {
				continue
			}
			select {
			case ch <- raw:
			default:
				// Client buffer full; skip to avoid blocking broker loop.
			}
		}
	}

	sendContent := func(checksum string) {
		lastContent = time.Now()
		send(Event{Type: TypeContentUpdated, Data: map[string]string{"checksum": checksum}})
	}

	for {
		select {
		case <-b.stopCh:
			if flushTimer != nil {
				flushTimer.Stop()
			}
			for ch := range clients {
				close(ch)
			}
			return

		case c := <-b.subscribeCh:
			clients[c.ch] = c.visitor

		case ch := <-b.unsubscribeCh:
			if _, ok := clients[ch]; ok {
				delete(clients, ch)
				close(ch)
			}

		case event := <-b.publishCh:
			send(event)

		case checksum := <-b.contentCh:
			wait := b.contentMin - time.Since(lastContent)
			if wait <= 0 {
				sendContent(checksum)
				continue
			}
			pendingChecksum = checksum
			if flushCh == nil {
				flushTimer = time.NewTimer(wait)
				flushCh = flushTimer.C
			}

		case <-flushCh:
			flushCh = nil
			flushTimer = nil
			sendContent(pendingChecksum)
			pendingChecksum = ""

		case resp := <-b.countReqCh:
			resp <- len(clients)
		}
	}
}

// Close gracefully stops broker loop and closes all client channels.
func (b *Broker) Close() {
	if b.closed.CompareAndSwap(false, true) {
		close(b.stopCh)
	}
	<-b.stopped
}

// Subscribe adds a client for visitor and returns its channel. The client
// receives broadcasts and events addressed to visitor.
func (b *Broker) Subscribe(visitor string) chan []byte {
	ch := make(chan []byte, 64)
	if b.closed.Load() {
		close(ch)
		return ch
	}

	select {
	case b.subscribeCh <- client{ch: ch, visitor: visitor}:
	case <-b.stopped:
		close(ch)
	}

	return ch
}

// Unsubscribe removes a client and closes its channel.
func (b *Broker) Unsubscribe(ch chan []byte) {
	if b.closed.Load() {
		return
	}
	select {
	case b.unsubscribeCh <- ch:
	case <-b.stopped:
	}
}

// ClientCount returns the number of connected clients.
func (b *Broker) ClientCount() int {
	if b.closed.Load() {
		return 0
	}

	resp := make(chan int, 1)
	select {
	case b.countReqCh <- resp:
	case <-b.stopped:
		return 0
	}

	select {
	case n := <-resp:
		return n
	case <-b.stopped:
		return 0
	}
}

// Publish sends an event to its recipients.
func (b *Broker) Publish(event Event) {
	if b.closed.Load() {
		return
	}
	select {
	case b.publishCh <- event:
	case <-b.stopped:
	}
}

// PublishTheme tells every connection of visitor that its theme changed.
func (b *Broker) PublishTheme(visitor, theme string) {
	b.Publish(Event{Type: TypeThemeChanged, Data: map[string]string{"theme": theme}, Visitor: visitor})
}

// PublishContentEvent schedules a throttled content.updated broadcast.
func (b *Broker) PublishContentEvent(checksum string) {
	if b.closed.Load() {
		return
	}
	select {
	case b.contentCh <- checksum:
	case <-b.stopped:
	}
}

// ServeHTTP is the SSE endpoint handler (GET /api/events).
func (b *Broker) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming unsupported", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	ch := b.Subscribe(visitor.FromContext(r.Context()))
	defer b.Unsubscribe(ch)

	ctx := r.Context()
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-ch:
			if !ok {
				return
			}
			_, _ = w.Write(msg)
			flusher.Flush()
		}
	}
}
