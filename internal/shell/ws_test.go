package shell

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/goleak"

	"github.com/starford/folio/internal/routes"
)

func TestHandler_RoundTrip(t *testing.T) {
	defer goleak.VerifyNone(t)

	tracker := NewTracker()
	h := NewHandler(func(r *http.Request) Options {
		return Options{Route: r.URL.Query().Get("path"), ExitDuration: step, EnterDuration: step}
	}, tracker, nil)
	srv := httptest.NewServer(h)
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/shell?path=/about"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("Dial: %v", err)
	}

	readUntil := func(desc string, pred func(Patch) bool) Patch {
		t.Helper()
		_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
		for {
			var p Patch
			if err := conn.ReadJSON(&p); err != nil {
				t.Fatalf("waiting for %s: %v", desc, err)
			}
			if pred(p) {
				return p
			}
		}
	}

	readUntil("mount", func(p Patch) bool { return p.Transition.Route == routes.About })
	if tracker.Len() != 1 {
		t.Errorf("tracker = %d live sessions", tracker.Len())
	}

	if err := conn.WriteMessage(websocket.TextMessage, []byte("not json")); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := conn.WriteJSON(ClientEvent{Type: EventMenuToggle}); err != nil {
		t.Fatalf("WriteJSON: %v", err)
	}
	readUntil("menu open", func(p Patch) bool { return p.Header.MenuOpen })

	_ = conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
	conn.Close()

	deadline := time.Now().Add(2 * time.Second)
	for tracker.Len() != 0 {
		if time.Now().After(deadline) {
			t.Fatal("session not torn down after client close")
		}
		time.Sleep(10 * time.Millisecond)
	}
}
