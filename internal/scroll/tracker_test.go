package scroll

import (
	"testing"

	"github.com/starford/folio/internal/signal"
)

type feedSource struct {
	signal.Feed[float64]
}

func TestScrolled_Threshold(t *testing.T) {
	cases := map[float64]bool{
		-10:  false,
		0:    false,
		49.9: false,
		50:   false,
		50.1: true,
		51:   true,
		2000: true,
	}
	for offset, want := range cases {
		if got := Scrolled(offset, DefaultThreshold); got != want {
			t.Errorf("Scrolled(%v) = %v, want %v", offset, got, want)
		}
	}
}

func TestTracker_DerivesFromLatestOffsetOnly(t *testing.T) {
	var changes []bool
	tr := NewTracker(0, func(b bool) { changes = append(changes, b) })
	src := &feedSource{}
	tr.Attach(src)
	defer tr.Close()

	for _, o := range []float64{10, 80, 120, 30, 50, 51} {
		src.Publish(o)
		if tr.Scrolled() != (o > 50) {
			t.Fatalf("after offset %v scrolled = %v", o, tr.Scrolled())
		}
	}
	want := []bool{true, false, true}
	if len(changes) != len(want) {
		t.Fatalf("changes = %v, want %v", changes, want)
	}
	for i := range want {
		if changes[i] != want[i] {
			t.Fatalf("changes = %v, want %v", changes, want)
		}
	}
}

func TestTracker_CloseReleasesSubscription(t *testing.T) {
	tr := NewTracker(50, nil)
	src := &feedSource{}
	tr.Attach(src)
	if src.Len() != 1 {
		t.Fatalf("subscriptions = %d, want 1", src.Len())
	}

	tr.Close()
	tr.Close()
	if src.Len() != 0 {
		t.Fatalf("subscriptions after close = %d, want 0", src.Len())
	}

	src.Publish(500)
	if tr.Scrolled() {
		t.Error("closed tracker still observing")
	}
}

func TestTracker_ReattachDropsPrevious(t *testing.T) {
	tr := NewTracker(50, nil)
	a, b := &feedSource{}, &feedSource{}
	tr.Attach(a)
	tr.Attach(b)
	defer tr.Close()

	if a.Len() != 0 || b.Len() != 1 {
		t.Fatalf("a=%d b=%d, want 0/1", a.Len(), b.Len())
	}
}
