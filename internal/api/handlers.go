package api

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/starford/folio/internal/catalog"
	"github.com/starford/folio/internal/contact"
	"github.com/starford/folio/internal/content"
	"github.com/starford/folio/internal/models"
	"github.com/starford/folio/internal/theme"
	"github.com/starford/folio/internal/visitor"
)

// Handler holds API route handlers.
type Handler struct {
	lib     *content.Library
	themes  *theme.Registry
	contact *contact.Service
}

// NewHandler creates a new Handler.
func NewHandler(lib *content.Library, themes *theme.Registry, contactSvc *contact.Service) *Handler {
	return &Handler{lib: lib, themes: themes, contact: contactSvc}
}

// ListProjects handles GET /api/projects.
//
//	@Summary		List projects filtered by category and query
//	@Tags			projects
//	@Produce		json
//	@Param			category	query		string	false	"Category"	Enums(all, frontend, backend, fullstack)
//	@Param			q			query		string	false	"Case-insensitive match on title, description and tags"
//	@Success		200			{object}	ProjectListResponse
//	@Router			/projects [get]
func (h *Handler) ListProjects(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	category, _ := catalog.ParseCategory(q.Get("category"))
	c := catalog.Criteria{Category: category, Query: q.Get("q")}

	view := catalog.Filter(h.lib.Snapshot().Projects, c)
	writeJSON(w, http.StatusOK, ProjectListResponse{
		Projects: view,
		Total:    len(view),
		Category: category,
		Query:    c.Query,
		Divider:  catalog.ShowDivider(view, c),
	})
}

// GetProject handles GET /api/projects/{id}.
//
//	@Summary		Get a single project
//	@Tags			projects
//	@Produce		json
//	@Param			id	path		string	true	"Project id"
//	@Success		200	{object}	Project
//	@Failure		404	{object}	errResponse
//	@Router			/projects/{id} [get]
func (h *Handler) GetProject(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	p, ok := h.lib.Snapshot().Project(id)
	if !ok {
		writeJSON(w, http.StatusNotFound, errorBody("not found"))
		return
	}
	writeJSON(w, http.StatusOK, p)
}

// ListCategories handles GET /api/categories.
//
//	@Summary		List the project filter categories
//	@Tags			projects
//	@Produce		json
//	@Success		200	{object}	CategoryListResponse
//	@Router			/categories [get]
func (h *Handler) ListCategories(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, CategoryListResponse{Categories: catalog.Categories()})
}

// Profile handles GET /api/profile.
//
//	@Summary		Get the owner's profile, skills and timeline
//	@Tags			profile
//	@Produce		json
//	@Success		200	{object}	ProfileResponse
//	@Router			/profile [get]
func (h *Handler) Profile(w http.ResponseWriter, _ *http.Request) {
	s := h.lib.Snapshot()
	writeJSON(w, http.StatusOK, ProfileResponse{
		Profile:      s.Profile,
		Skills:       nonNil(s.Skills),
		Experience:   nonNil(s.Experience),
		Education:    nonNil(s.Education),
		Testimonials: nonNil(s.Testimonials),
		Process:      nonNil(s.Process),
	})
}

// GetTheme handles GET /api/theme.
//
//	@Summary		Get the visitor's theme
//	@Tags			theme
//	@Produce		json
//	@Success		200	{object}	ThemeResponse
//	@Router			/theme [get]
func (h *Handler) GetTheme(w http.ResponseWriter, r *http.Request) {
	store, release := h.themes.Acquire(visitor.FromContext(r.Context()))
	defer release()
	writeJSON(w, http.StatusOK, ThemeResponse{Theme: store.Get().String()})
}

// ToggleTheme handles POST /api/theme/toggle.
//
//	@Summary		Flip the visitor's theme
//	@Tags			theme
//	@Produce		json
//	@Success		200	{object}	ThemeResponse
//	@Router			/theme/toggle [post]
func (h *Handler) ToggleTheme(w http.ResponseWriter, r *http.Request) {
	store, release := h.themes.Acquire(visitor.FromContext(r.Context()))
	defer release()
	writeJSON(w, http.StatusOK, ThemeResponse{Theme: store.Toggle().String()})
}

// SetTheme handles PUT /api/theme.
//
//	@Summary		Set the visitor's theme
//	@Tags			theme
//	@Accept			json
//	@Produce		json
//	@Param			body	body		SetThemeRequest	true	"Theme"
//	@Success		200		{object}	ThemeResponse
//	@Failure		400		{object}	errResponse
//	@Router			/theme [put]
func (h *Handler) SetTheme(w http.ResponseWriter, r *http.Request) {
	var req SetThemeRequest
	if !decodeJSON(w, r, 1<<10, &req) {
		return
	}
	t, ok := theme.Parse(req.Theme)
	if !ok {
		writeJSON(w, http.StatusBadRequest, errorBody("theme must be light or dark"))
		return
	}
	store, release := h.themes.Acquire(visitor.FromContext(r.Context()))
	defer release()
	store.Set(t)
	writeJSON(w, http.StatusOK, ThemeResponse{Theme: store.Get().String()})
}

// SubmitContact handles POST /api/contact.
//
//	@Summary		Send a contact message
//	@Tags			contact
//	@Accept			json
//	@Produce		json
//	@Param			body	body		ContactRequest	true	"Message"
//	@Success		201		{object}	ContactResponse
//	@Failure		400		{object}	errResponse
//	@Failure		422		{object}	errResponse
//	@Router			/contact [post]
func (h *Handler) SubmitContact(w http.ResponseWriter, r *http.Request) {
	var req ContactRequest
	if !decodeJSON(w, r, 64<<10, &req) {
		return
	}

	m, err := h.contact.Submit(r.Context(), contact.Form(req))
	if err != nil {
		var inv *contact.InvalidError
		if errors.As(err, &inv) {
			writeJSON(w, http.StatusUnprocessableEntity, errResponse{
				Error:  contact.StatusMessage(err),
				Fields: inv.Fields,
			})
			return
		}
		slog.Error("contact submit failed", slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, errorBody(contact.FailureMessage))
		return
	}
	writeJSON(w, http.StatusCreated, ContactResponse{ID: m.ID, Message: contact.SuccessMessage})
}

// ListMessages handles GET /api/contact/messages.
//
//	@Summary		List received contact messages, newest first
//	@Tags			contact
//	@Produce		json
//	@Param			limit	query		int	false	"Page size"
//	@Param			offset	query		int	false	"Page offset"
//	@Success		200		{object}	MessageListResponse
//	@Failure		401		{object}	errResponse
//	@Security		BearerAuth
//	@Router			/contact/messages [get]
func (h *Handler) ListMessages(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	limit, _ := strconv.Atoi(q.Get("limit"))
	offset, _ := strconv.Atoi(q.Get("offset"))

	msgs, total, err := h.contact.List(r.Context(), limit, offset)
	if err != nil {
		slog.Error("list messages failed", slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		return
	}
	if msgs == nil {
		msgs = []models.Message{}
	}
	writeJSON(w, http.StatusOK, MessageListResponse{Messages: msgs, Total: total})
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
