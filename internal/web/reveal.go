package web

import (
	"fmt"
	"html/template"
)

// Reveal directions for sections that animate into view.
const (
	RevealUp    = "up"
	RevealDown  = "down"
	RevealLeft  = "left"
	RevealRight = "right"
	RevealFade  = "fade"
)

type offset struct{ x, y int }

// revealOffsets is the starting translation per direction, in pixels.
var revealOffsets = map[string]offset{
	RevealUp:    {0, 50},
	RevealDown:  {0, -50},
	RevealLeft:  {-50, 0},
	RevealRight: {50, 0},
	RevealFade:  {0, 0},
}

// reveal renders the data attributes the client uses to animate a section
// the first time it scrolls into view. Unknown directions fade.
func reveal(direction string, delay float64) template.HTMLAttr {
	o, ok := revealOffsets[direction]
	if !ok {
		direction = RevealFade
	}
	if delay < 0 {
		delay = 0
	}
	return template.HTMLAttr(fmt.Sprintf(
		`data-reveal="%s" style="--reveal-x:%dpx;--reveal-y:%dpx;--reveal-delay:%.2fs"`,
		direction, o.x, o.y, delay))
}
