package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/starford/folio/internal/contact"
	"github.com/starford/folio/internal/content"
	"github.com/starford/folio/internal/theme"
)

// NewRouter creates a chi router with all API routes mounted.
// The owner-only routes are mounted only when authEnabled, guarded by
// Bearer token auth. sseHandler, if non-nil, is mounted at GET /events.
func NewRouter(lib *content.Library, themes *theme.Registry, contactSvc *contact.Service, authEnabled bool, token string, sseHandler http.Handler) chi.Router {
	h := NewHandler(lib, themes, contactSvc)

	r := chi.NewRouter()

	// Showcase.
	r.Get("/projects", h.ListProjects)
	r.Get("/projects/{id}", h.GetProject)
	r.Get("/categories", h.ListCategories)
	r.Get("/profile", h.Profile)

	// Theme, scoped to the visitor cookie.
	r.Get("/theme", h.GetTheme)
	r.Put("/theme", h.SetTheme)
	r.Post("/theme/toggle", h.ToggleTheme)

	r.Post("/contact", h.SubmitContact)

	// Owner inbox. It holds visitors' contact details, so it only exists
	// behind a token.
	if authEnabled {
		r.Group(func(r chi.Router) {
			r.Use(AuthMiddleware(authEnabled, token))
			r.Get("/contact/messages", h.ListMessages)
		})
	}

	if sseHandler != nil {
		r.Get("/events", sseHandler.ServeHTTP)
	}

	return r
}
