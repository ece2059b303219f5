package api

import (
	"github.com/starford/folio/internal/catalog"
	"github.com/starford/folio/internal/models"
)

// Project is the project response type (aliased from the domain layer).
type Project = models.Project

// ProjectListResponse is one filtered view of the showcase. Divider is true
// when featured projects sit above a "More Projects" divider.
type ProjectListResponse struct {
	Projects []Project       `json:"projects" validate:"required"`
	Total    int             `json:"total" example:"6" validate:"required"`
	Category models.Category `json:"category" example:"all" validate:"required"`
	Query    string          `json:"query" example:"react"`
	Divider  bool            `json:"divider"`
}

// ProfileResponse is everything the about page shows.
type ProfileResponse struct {
	Profile      models.Profile       `json:"profile" validate:"required"`
	Skills       []models.SkillGroup  `json:"skills" validate:"required"`
	Experience   []models.Experience  `json:"experience" validate:"required"`
	Education    []models.Education   `json:"education" validate:"required"`
	Testimonials []models.Testimonial `json:"testimonials" validate:"required"`
	Process      []models.ProcessStep `json:"process" validate:"required"`
}

// CategoryListResponse lists the filter buttons in display order.
type CategoryListResponse struct {
	Categories []catalog.CategoryOption `json:"categories" validate:"required"`
}

// ThemeResponse carries the visitor's active theme.
type ThemeResponse struct {
	Theme string `json:"theme" example:"dark" validate:"required"`
}

// SetThemeRequest is the request body for setting the theme.
type SetThemeRequest struct {
	Theme string `json:"theme" example:"light" validate:"required"`
}

// ContactRequest is the request body for a contact submission.
type ContactRequest struct {
	Name    string `json:"name" example:"Jane Smith" validate:"required"`
	Email   string `json:"email" example:"jane@example.com" validate:"required"`
	Subject string `json:"subject" example:"Project inquiry"`
	Message string `json:"message" example:"Hello!" validate:"required"`
}

// ContactResponse is returned after a stored submission.
type ContactResponse struct {
	ID      string `json:"id" example:"0b0c..." validate:"required"`
	Message string `json:"message" validate:"required"`
}

// MessageListResponse wraps paginated contact messages.
type MessageListResponse struct {
	Messages []models.Message `json:"messages" validate:"required"`
	Total    int              `json:"total" example:"42" validate:"required"`
}
