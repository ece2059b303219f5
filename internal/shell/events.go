package shell

import (
	"github.com/starford/folio/internal/catalog"
	"github.com/starford/folio/internal/models"
)

// Client event types.
const (
	EventScroll          = "scroll"
	EventPointerDown     = "pointerdown"
	EventMenuToggle      = "menu.toggle"
	EventLink            = "link"
	EventNavigate        = "navigate"
	EventThemeToggle     = "theme.toggle"
	EventCatalogCategory = "catalog.category"
	EventCatalogQuery    = "catalog.query"
)

// ClientEvent is one message from the browser.
type ClientEvent struct {
	Type string `json:"type"`

	Offset   float64  `json:"offset,omitempty"`   // scroll
	Targets  []string `json:"targets,omitempty"`  // pointerdown: ancestor ids, target first
	Href     string   `json:"href,omitempty"`     // link
	Path     string   `json:"path,omitempty"`     // navigate
	Category string   `json:"category,omitempty"` // catalog.category
	Query    string   `json:"query,omitempty"`    // catalog.query
}

// HeaderState drives the header and the menu button.
type HeaderState struct {
	Scrolled bool   `json:"scrolled"`
	MenuOpen bool   `json:"menuOpen"`
	Theme    string `json:"theme"`
}

// DocumentState is what the client applies to <html> and <body>.
type DocumentState struct {
	Overflow string  `json:"overflow"`
	Theme    string  `json:"theme"`
	ScrollY  float64 `json:"scrollY"`
}

// TransitionState is the page animation phase.
type TransitionState struct {
	Phase  string `json:"phase"`
	Key    string `json:"key"`
	Route  string `json:"route"`
	Target string `json:"target"`
}

// CatalogState is the filtered project grid.
type CatalogState struct {
	Category string   `json:"category"`
	Query    string   `json:"query"`
	IDs      []string `json:"ids"`
	Empty    bool     `json:"empty"`
	Divider  bool     `json:"divider"`
}

// Patch is a full snapshot of the session state, sent after every change.
type Patch struct {
	Seq        uint64          `json:"seq"`
	Header     HeaderState     `json:"header"`
	Document   DocumentState   `json:"document"`
	Transition TransitionState `json:"transition"`
	Catalog    *CatalogState   `json:"catalog,omitempty"`
}

func catalogState(records []models.Project, c catalog.Criteria) *CatalogState {
	view := catalog.Filter(records, c)
	category := string(c.Category)
	if category == "" {
		category = string(models.CategoryAll)
	}
	return &CatalogState{
		Category: category,
		Query:    c.Query,
		IDs:      catalog.IDs(view),
		Empty:    len(view) == 0,
		Divider:  catalog.ShowDivider(view, c),
	}
}
