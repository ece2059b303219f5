// Package models defines the domain types for the portfolio.
package models

// Category groups projects by the part of the stack they cover.
type Category string

// Project categories. CategoryAll is only valid as a filter selector.
const (
	CategoryAll       Category = "all"
	CategoryFrontend  Category = "frontend"
	CategoryBackend   Category = "backend"
	CategoryFullStack Category = "fullstack"
)

// Media is the visual for a project card. When URL is empty the card shows
// a placeholder tile with Text on Color.
type Media struct {
	URL   string `json:"url,omitempty" yaml:"url"`
	Alt   string `json:"alt,omitempty" yaml:"alt"`
	Text  string `json:"text,omitempty" yaml:"text"`
	Color string `json:"color,omitempty" yaml:"color"`
}

// IsPlaceholder reports whether the card renders a placeholder tile.
func (m Media) IsPlaceholder() bool { return m.URL == "" }

// Project is one showcase entry. Records are immutable once loaded.
type Project struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Media       Media    `json:"media"`
	Tags        []string `json:"tags"`
	Category    Category `json:"category"`
	LiveURL     string   `json:"live_url,omitempty"`
	SourceURL   string   `json:"source_url,omitempty"`
	Featured    bool     `json:"featured"`
	// DetailHTML is the rendered Markdown body of the project file.
	DetailHTML string `json:"detail_html,omitempty"`
	Order      int    `json:"-"`
	Path       string `json:"-"`
}
