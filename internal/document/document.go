// Package document models the page-level state the shell mutates: body
// overflow, theme class and viewport scroll position.
package document

import "github.com/starford/folio/internal/theme"

// OverflowHidden is the overflow style that suppresses document scrolling.
const OverflowHidden = "hidden"

// Document is the page state owned by one shell session. It is not safe for
// concurrent use; the session loop is its only writer.
type Document struct {
	overflow string
	theme    theme.Theme
	scrollY  float64
}

// New returns a document with the given initial theme and default overflow.
func New(t theme.Theme) *Document {
	return &Document{theme: t}
}

// Overflow returns the body overflow style ("" means the stylesheet default).
func (d *Document) Overflow() string { return d.overflow }

// SetOverflow sets the body overflow style.
func (d *Document) SetOverflow(v string) { d.overflow = v }

// Theme returns the theme applied to the root element.
func (d *Document) Theme() theme.Theme { return d.theme }

// ApplyTheme sets the root theme class. Applying the same theme twice is a no-op.
func (d *Document) ApplyTheme(t theme.Theme) { d.theme = t }

// ScrollY returns the last known viewport offset.
func (d *Document) ScrollY() float64 { return d.scrollY }

// SetScrollY records the viewport offset reported by the browser.
func (d *Document) SetScrollY(y float64) { d.scrollY = y }

// ScrollToTop resets the viewport offset.
func (d *Document) ScrollToTop() { d.scrollY = 0 }
