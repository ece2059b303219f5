// Package catalog filters and orders the project showcase.
package catalog

import (
	"slices"
	"strings"

	"github.com/starford/folio/internal/models"
)

// Criteria selects projects by category and free-text query.
type Criteria struct {
	Category models.Category `json:"category"`
	Query    string          `json:"query"`
}

// All is the criteria that keeps every record.
var All = Criteria{Category: models.CategoryAll}

// CategoryOption is a filter button.
type CategoryOption struct {
	ID   models.Category `json:"id"`
	Name string          `json:"name"`
}

var categories = []CategoryOption{
	{ID: models.CategoryAll, Name: "All Projects"},
	{ID: models.CategoryFrontend, Name: "Frontend"},
	{ID: models.CategoryBackend, Name: "Backend"},
	{ID: models.CategoryFullStack, Name: "Full Stack"},
}

// Categories returns the filter buttons in display order.
func Categories() []CategoryOption {
	return slices.Clone(categories)
}

// ParseCategory maps a selector string to a category. Unknown and empty
// values select all.
func ParseCategory(s string) (models.Category, bool) {
	for _, c := range categories {
		if string(c.ID) == s {
			return c.ID, true
		}
	}
	return models.CategoryAll, false
}

// Filter returns the records matching c, featured first. Relative order is
// otherwise preserved from records. The input is never modified.
func Filter(records []models.Project, c Criteria) []models.Project {
	out := make([]models.Project, 0, len(records))
	query := strings.ToLower(c.Query)
	for _, p := range records {
		if c.Category != "" && c.Category != models.CategoryAll && p.Category != c.Category {
			continue
		}
		if query != "" && !matches(p, query) {
			continue
		}
		out = append(out, p)
	}

	slices.SortStableFunc(out, func(a, b models.Project) int {
		switch {
		case a.Featured && !b.Featured:
			return -1
		case !a.Featured && b.Featured:
			return 1
		}
		return 0
	})
	return out
}

func matches(p models.Project, query string) bool {
	if strings.Contains(strings.ToLower(p.Title), query) ||
		strings.Contains(strings.ToLower(p.Description), query) {
		return true
	}
	for _, tag := range p.Tags {
		if strings.Contains(strings.ToLower(tag), query) {
			return true
		}
	}
	return false
}

// ShowDivider reports whether the "More Projects" divider separates featured
// from other projects: only when browsing all categories and the view holds
// both kinds.
func ShowDivider(view []models.Project, c Criteria) bool {
	if c.Category != "" && c.Category != models.CategoryAll {
		return false
	}
	var featured, other bool
	for _, p := range view {
		if p.Featured {
			featured = true
		} else {
			other = true
		}
	}
	return featured && other
}

// IDs returns the ids of view in order.
func IDs(view []models.Project) []string {
	ids := make([]string, len(view))
	for i, p := range view {
		ids[i] = p.ID
	}
	return ids
}
