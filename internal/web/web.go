// Package web serves the portfolio pages, the theme toggle, the contact
// form, the sitemap and the shell websocket.
package web

import (
	"errors"
	"html/template"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/starford/folio/internal/catalog"
	"github.com/starford/folio/internal/contact"
	"github.com/starford/folio/internal/content"
	"github.com/starford/folio/internal/routes"
	"github.com/starford/folio/internal/seo"
	"github.com/starford/folio/internal/theme"
	"github.com/starford/folio/internal/visitor"
)

// Deps are the collaborators the pages read from.
type Deps struct {
	Library *content.Library
	SEO     *seo.Builder
	Themes  *theme.Registry
	Contact *contact.Service
	// Shell serves the per-tab websocket. Optional.
	Shell  http.Handler
	Logger *slog.Logger
}

// Server renders pages.
type Server struct {
	lib     *content.Library
	seo     *seo.Builder
	themes  *theme.Registry
	contact *contact.Service
	shell   http.Handler
	logger  *slog.Logger
	pages   map[string]*template.Template
	now     func() time.Time
}

// New parses the templates and returns a Server.
func New(d Deps) (*Server, error) {
	pages, err := parseTemplates()
	if err != nil {
		return nil, err
	}
	if d.Logger == nil {
		d.Logger = slog.Default()
	}
	if d.Themes == nil {
		d.Themes = theme.NewRegistry(nil, theme.Light, d.Logger)
	}
	return &Server{
		lib:     d.Library,
		seo:     d.SEO,
		themes:  d.Themes,
		contact: d.Contact,
		shell:   d.Shell,
		logger:  d.Logger,
		pages:   pages,
		now:     time.Now,
	}, nil
}

// Routes returns the page router. It expects visitor.Middleware upstream.
func (s *Server) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get(routes.Home, s.page(routes.Home))
	r.Get(routes.About, s.page(routes.About))
	r.Get(routes.Projects, s.projects)
	r.Get(routes.Contact, s.page(routes.Contact))
	r.Post(routes.Contact, s.submitContact)
	r.Get(routes.OGPreview, s.page(routes.OGPreview))

	r.Post("/theme/toggle", s.toggleTheme)

	r.Get("/sitemap.xml", s.sitemap)
	r.Get("/robots.txt", s.robots)
	r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.FS(Static()))))
	if s.shell != nil {
		r.Get("/shell", s.shell.ServeHTTP)
	}

	r.NotFound(s.notFound)
	return r
}

func (s *Server) base(r *http.Request, path string) pageData {
	page, _ := routes.Resolve(path)
	snap := s.lib.Snapshot()
	return pageData{
		Page:  page,
		Nav:   routes.Nav(),
		Theme: s.theme(r).String(),
		Site:  snap,
		Owner: snap.Profile.Name,
		Year:  s.now().Year(),
	}
}

func (s *Server) theme(r *http.Request) theme.Theme {
	store, release := s.themes.Acquire(visitor.FromContext(r.Context()))
	defer release()
	return store.Get()
}

func (s *Server) page(path string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		data := s.base(r, path)
		if path == routes.Contact {
			data.Contact = &contactView{Form: map[string]string{}}
		}
		s.render(w, r, http.StatusOK, data)
	}
}

func (s *Server) projects(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	category, _ := catalog.ParseCategory(q.Get("category"))
	c := catalog.Criteria{Category: category, Query: q.Get("q")}

	data := s.base(r, routes.Projects)
	data.Catalog = newCatalogView(data.Site.Projects, c)
	s.render(w, r, http.StatusOK, data)
}

func (s *Server) submitContact(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}
	form := contact.Form{
		Name:    r.PostForm.Get("name"),
		Email:   r.PostForm.Get("email"),
		Subject: r.PostForm.Get("subject"),
		Message: r.PostForm.Get("message"),
	}

	data := s.base(r, routes.Contact)
	view := &contactView{
		Form: map[string]string{
			"name":    form.Name,
			"email":   form.Email,
			"subject": form.Subject,
			"message": form.Message,
		},
	}
	data.Contact = view

	status := http.StatusOK
	_, err := s.contact.Submit(r.Context(), form)
	view.Status = contact.StatusMessage(err)
	var inv *contact.InvalidError
	switch {
	case err == nil:
		view.Success = true
		view.Form = map[string]string{}
	case errors.As(err, &inv):
		view.Errors = inv.Fields
		status = http.StatusUnprocessableEntity
	default:
		s.logger.Error("web: contact submit failed", slog.String("error", err.Error()))
		status = http.StatusInternalServerError
	}
	s.render(w, r, status, data)
}

func (s *Server) toggleTheme(w http.ResponseWriter, r *http.Request) {
	store, release := s.themes.Acquire(visitor.FromContext(r.Context()))
	next := store.Toggle()
	release()
	s.logger.Debug("web: theme toggled", slog.String("theme", next.String()))

	// Only known pages are redirect targets.
	back := routes.Home
	if ret := r.FormValue("return"); routes.Internal(ret) {
		if page, ok := routes.Resolve(ret); ok {
			back = page.Path
		}
	}
	http.Redirect(w, r, back, http.StatusSeeOther)
}

func (s *Server) notFound(w http.ResponseWriter, r *http.Request) {
	s.render(w, r, http.StatusNotFound, s.base(r, routes.NotFound))
}

func (s *Server) sitemap(w http.ResponseWriter, _ *http.Request) {
	out, err := seo.Sitemap(s.seo.Site().URL, routes.Sitemap(), s.now())
	if err != nil {
		s.logger.Error("web: sitemap failed", slog.String("error", err.Error()))
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/xml; charset=utf-8")
	_, _ = w.Write(out)
}

func (s *Server) robots(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write(seo.Robots(s.seo.Site().URL))
}

func seoPage(p routes.Page) seo.Page {
	return seo.Page{
		Title:       p.Title,
		Description: p.Description,
		Keywords:    p.Keywords,
		Path:        p.Path,
	}
}
