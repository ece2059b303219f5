package document

// ScrollLock suppresses document scrolling while at least one lease is held.
// The first lease saves the prior overflow style; releasing the last lease
// restores it.
type ScrollLock struct {
	doc   *Document
	holds int
	saved string
}

// NewScrollLock returns a lock over doc.
func NewScrollLock(doc *Document) *ScrollLock {
	return &ScrollLock{doc: doc}
}

// Lease is one holder's claim on a ScrollLock.
type Lease struct {
	lock     *ScrollLock
	owner    string
	released bool
}

// Acquire takes a lease for owner.
func (l *ScrollLock) Acquire(owner string) *Lease {
	if l.holds == 0 {
		l.saved = l.doc.Overflow()
		l.doc.SetOverflow(OverflowHidden)
	}
	l.holds++
	return &Lease{lock: l, owner: owner}
}

// Locked reports whether any lease is held.
func (l *ScrollLock) Locked() bool { return l.holds > 0 }

// Holders returns the number of outstanding leases.
func (l *ScrollLock) Holders() int { return l.holds }

// Owner returns the name the lease was acquired with.
func (le *Lease) Owner() string { return le.owner }

// Release gives the lease back. Releasing twice has no further effect.
func (le *Lease) Release() {
	if le == nil || le.released {
		return
	}
	le.released = true
	l := le.lock
	l.holds--
	if l.holds == 0 {
		l.doc.SetOverflow(l.saved)
		l.saved = ""
	}
}
