// Package scroll derives the header "scrolled" signal from viewport offsets.
package scroll

// DefaultThreshold is the offset in pixels past which the header is scrolled.
const DefaultThreshold = 50

// Source delivers viewport scroll offsets.
type Source interface {
	Subscribe(fn func(offset float64)) (cancel func())
}

// Scrolled reports whether offset is past threshold.
func Scrolled(offset, threshold float64) bool {
	return offset > threshold
}

// Tracker holds the derived scrolled flag for one header.
type Tracker struct {
	threshold float64
	scrolled  bool
	onChange  func(bool)
	cancel    func()
}

// NewTracker returns a Tracker. onChange, if non-nil, is called whenever the
// flag flips. A non-positive threshold uses DefaultThreshold.
func NewTracker(threshold float64, onChange func(bool)) *Tracker {
	if threshold <= 0 {
		threshold = DefaultThreshold
	}
	return &Tracker{threshold: threshold, onChange: onChange}
}

// Attach subscribes to src for the tracker's lifetime. A previous
// subscription is dropped first.
func (t *Tracker) Attach(src Source) {
	t.Close()
	t.cancel = src.Subscribe(t.Observe)
}

// Observe recomputes the flag from offset alone.
func (t *Tracker) Observe(offset float64) {
	next := Scrolled(offset, t.threshold)
	if next == t.scrolled {
		return
	}
	t.scrolled = next
	if t.onChange != nil {
		t.onChange(next)
	}
}

// Scrolled returns the current flag.
func (t *Tracker) Scrolled() bool { return t.scrolled }

// Close drops the subscription. It is safe to call more than once.
func (t *Tracker) Close() {
	if t.cancel != nil {
		t.cancel()
		t.cancel = nil
	}
}
