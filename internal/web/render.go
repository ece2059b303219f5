package web

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"log/slog"
	"net/http"
	"strings"

	"github.com/starford/folio/internal/catalog"
	"github.com/starford/folio/internal/content"
	"github.com/starford/folio/internal/models"
	"github.com/starford/folio/internal/routes"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

// Static returns the embedded stylesheet and client script.
func Static() fs.FS {
	sub, _ := fs.Sub(staticFS, "static")
	return sub
}

var funcs = template.FuncMap{
	"reveal": reveal,
	"safeHTML": func(s string) template.HTML {
		// goldmark output; raw HTML in the source is already escaped.
		return template.HTML(s)
	},
	"stagger": func(i int, step float64) float64 { return float64(i) * step },
	"add":     func(a, b int) int { return a + b },
	"active":  isActive,
}

// parseTemplates builds one template set per page, each sharing the layout.
func parseTemplates() (map[string]*template.Template, error) {
	shared := []string{"templates/layout.html", "templates/card.html"}
	pages := map[string]string{
		routes.Home:      "templates/home.html",
		routes.About:     "templates/about.html",
		routes.Projects:  "templates/projects.html",
		routes.Contact:   "templates/contact.html",
		routes.OGPreview: "templates/og_preview.html",
		routes.NotFound:  "templates/not_found.html",
	}
	out := make(map[string]*template.Template, len(pages))
	for route, file := range pages {
		t, err := template.New("layout.html").Funcs(funcs).ParseFS(templateFS, append(shared, file)...)
		if err != nil {
			return nil, fmt.Errorf("web: parse %s: %w", file, err)
		}
		out[route] = t
	}
	return out, nil
}

// pageData is what every template receives.
type pageData struct {
	Head    template.HTML
	Page    routes.Page
	Nav     []routes.Page
	Theme   string
	Site    *content.Snapshot
	Owner   string
	Year    int
	Catalog *catalogView
	Contact *contactView
}

type catalogView struct {
	Categories []catalog.CategoryOption
	Active     models.Category
	Query      string
	Featured   []models.Project
	Others     []models.Project
	Divider    bool
	Empty      bool
}

type contactView struct {
	Form    map[string]string
	Errors  map[string]string
	Status  string
	Success bool
}

func newCatalogView(records []models.Project, c catalog.Criteria) *catalogView {
	view := catalog.Filter(records, c)
	cv := &catalogView{
		Categories: catalog.Categories(),
		Active:     c.Category,
		Query:      c.Query,
		Divider:    catalog.ShowDivider(view, c),
		Empty:      len(view) == 0,
	}
	if cv.Active == "" {
		cv.Active = models.CategoryAll
	}
	if !cv.Divider {
		cv.Others = view
		return cv
	}
	for _, p := range view {
		if p.Featured {
			cv.Featured = append(cv.Featured, p)
		} else {
			cv.Others = append(cv.Others, p)
		}
	}
	return cv
}

func (s *Server) render(w http.ResponseWriter, _ *http.Request, status int, data pageData) {
	t, ok := s.pages[data.Page.Path]
	if !ok {
		t = s.pages[routes.NotFound]
	}

	head, err := s.seo.Build(seoPage(data.Page))
	if err == nil {
		data.Head, err = head.HTML()
	}
	if err != nil {
		s.logger.Error("web: build head failed", slog.String("error", err.Error()))
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, "layout.html", data); err != nil {
		s.logger.Error("web: render failed",
			slog.String("page", data.Page.Path),
			slog.String("error", err.Error()))
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

// isActive reports whether nav link path matches the current page.
func isActive(current, link string) bool {
	if link == routes.Home {
		return current == routes.Home
	}
	return current == link || strings.HasPrefix(current, link+"/")
}
