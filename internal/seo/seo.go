// Package seo builds the document head for every page: title, description,
// Open Graph and Twitter cards, canonical link, structured data and the
// optional analytics snippet. It also renders the sitemap and robots.txt.
package seo

import (
	"bytes"
	"encoding/json"
	"fmt"
	"html/template"
	"strings"
	"time"
)

// Site holds the site-wide defaults every page inherits.
type Site struct {
	Name          string // owner name, used in the default title
	ShortName     string // appended to page titles
	JobTitle      string
	URL           string // absolute, no trailing slash
	Description   string
	Keywords      string
	Language      string
	Locale        string
	OGImage       string // site-relative path
	TwitterHandle string
	SameAs        []string
	ThemeColor    string
	AnalyticsID   string
	Dev           bool
}

// ArticleMeta adds article:* tags and switches og:type to "article".
type ArticleMeta struct {
	PublishedTime string
	ModifiedTime  string
	Author        string
	Tags          []string
}

// Page is the per-page input. Empty fields fall back to Site values.
type Page struct {
	Title       string
	Description string
	Keywords    string
	Path        string
	OGImage     string
	Article     *ArticleMeta
	// Schema replaces the default ProfilePage structured data when set.
	Schema any
}

// Meta is one <meta> tag. Exactly one of Name, Property or Charset is set.
type Meta struct {
	Name     string
	Property string
	Charset  string
	Content  string
}

// Link is one <link> tag.
type Link struct {
	Rel         string
	Href        string
	Type        string
	Sizes       string
	CrossOrigin string
}

// Head is the rendered-ready document head.
type Head struct {
	Lang        string
	Title       string
	Canonical   string
	Meta        []Meta
	Links       []Link
	JSONLD      template.JS
	AnalyticsID string
	PagePath    string
}

// Builder produces Heads for one site.
type Builder struct {
	site Site
	now  func() time.Time
}

// Option configures a Builder.
type Option func(*Builder)

// WithClock overrides the clock used for dateCreated/dateModified.
func WithClock(now func() time.Time) Option {
	return func(b *Builder) { b.now = now }
}

// NewBuilder returns a Builder for site.
func NewBuilder(site Site, opts ...Option) *Builder {
	site.URL = strings.TrimRight(site.URL, "/")
	if site.Language == "" {
		site.Language = "en"
	}
	if site.Locale == "" {
		site.Locale = "en_US"
	}
	if site.ShortName == "" {
		site.ShortName = site.Name
	}
	b := &Builder{site: site, now: time.Now}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Site returns the site defaults.
func (b *Builder) Site() Site { return b.site }

// FullTitle is "<title> | <short name>", or the default title when title
// is empty.
func (b *Builder) FullTitle(title string) string {
	if title == "" {
		if b.site.JobTitle == "" {
			return b.site.ShortName
		}
		return b.site.ShortName + " | " + b.site.JobTitle
	}
	return title + " | " + b.site.ShortName
}

// Canonical returns the absolute URL for path. The root path maps to the
// bare site URL.
func (b *Builder) Canonical(path string) string {
	if path == "" || path == "/" {
		return b.site.URL
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return b.site.URL + path
}

// Build assembles the head for p.
func (b *Builder) Build(p Page) (Head, error) {
	s := b.site
	title := b.FullTitle(p.Title)
	desc := firstNonEmpty(p.Description, s.Description)
	keywords := firstNonEmpty(p.Keywords, s.Keywords)
	canonical := b.Canonical(p.Path)
	image := s.URL + firstNonEmpty(p.OGImage, s.OGImage)

	ogType := "website"
	if p.Article != nil {
		ogType = "article"
	}

	meta := []Meta{
		{Charset: "utf-8"},
		{Name: "viewport", Content: "width=device-width, initial-scale=1"},
		{Name: "title", Content: title},
		{Name: "description", Content: desc},
		{Name: "keywords", Content: keywords},
		{Name: "theme-color", Content: firstNonEmpty(s.ThemeColor, "#0ea5e9")},
		{Name: "color-scheme", Content: "light dark"},
		{Name: "robots", Content: "index, follow"},

		{Property: "og:type", Content: ogType},
		{Property: "og:url", Content: canonical},
		{Property: "og:title", Content: title},
		{Property: "og:description", Content: desc},
		{Property: "og:image", Content: image},
		{Property: "og:image:alt", Content: title + " - Preview Image"},
		{Property: "og:site_name", Content: s.ShortName + " Portfolio"},
		{Property: "og:locale", Content: s.Locale},

		{Property: "twitter:card", Content: "summary_large_image"},
		{Property: "twitter:url", Content: canonical},
		{Property: "twitter:title", Content: title},
		{Property: "twitter:description", Content: desc},
		{Property: "twitter:image", Content: image},
		{Property: "twitter:image:alt", Content: title + " - Preview Image"},
	}
	if s.TwitterHandle != "" {
		meta = append(meta, Meta{Name: "twitter:creator", Content: s.TwitterHandle})
	}
	if a := p.Article; a != nil {
		meta = append(meta,
			Meta{Property: "article:published_time", Content: a.PublishedTime},
			Meta{Property: "article:modified_time", Content: a.ModifiedTime},
			Meta{Property: "article:author", Content: a.Author},
		)
		for _, tag := range a.Tags {
			meta = append(meta, Meta{Property: "article:tag", Content: tag})
		}
	}

	links := []Link{
		{Rel: "preconnect", Href: "https://fonts.googleapis.com"},
		{Rel: "preconnect", Href: "https://fonts.gstatic.com", CrossOrigin: "anonymous"},
		{Rel: "canonical", Href: canonical},
		{Rel: "icon", Href: "/favicon.ico", Sizes: "any"},
		{Rel: "icon", Href: "/favicon.svg", Type: "image/svg+xml"},
		{Rel: "apple-touch-icon", Href: "/apple-touch-icon.png"},
		{Rel: "manifest", Href: "/site.webmanifest"},
	}

	schema := p.Schema
	if schema == nil {
		schema = b.profileSchema(desc, canonical)
	}
	ld, err := json.Marshal(schema)
	if err != nil {
		return Head{}, fmt.Errorf("seo: structured data: %w", err)
	}

	h := Head{
		Lang:      s.Language,
		Title:     title,
		Canonical: canonical,
		Meta:      meta,
		Links:     links,
		JSONLD:    template.JS(ld),
		PagePath:  firstNonEmpty(p.Path, "/"),
	}
	if s.AnalyticsID != "" && !s.Dev {
		h.AnalyticsID = s.AnalyticsID
	}
	return h, nil
}

type person struct {
	Type        string   `json:"@type"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	JobTitle    string   `json:"jobTitle,omitempty"`
	URL         string   `json:"url"`
	SameAs      []string `json:"sameAs"`
}

type profilePage struct {
	Context      string `json:"@context"`
	Type         string `json:"@type"`
	DateCreated  string `json:"dateCreated"`
	DateModified string `json:"dateModified"`
	MainEntity   person `json:"mainEntity"`
}

func (b *Builder) profileSchema(desc, canonical string) profilePage {
	today := b.now().UTC().Format(time.DateOnly)
	sameAs := b.site.SameAs
	if sameAs == nil {
		sameAs = []string{}
	}
	return profilePage{
		Context:      "https://schema.org",
		Type:         "ProfilePage",
		DateCreated:  today,
		DateModified: today,
		MainEntity: person{
			Type:        "Person",
			Name:        b.site.Name,
			Description: desc,
			JobTitle:    b.site.JobTitle,
			URL:         canonical,
			SameAs:      sameAs,
		},
	}
}

// HTML renders the head elements.
func (h Head) HTML() (template.HTML, error) {
	var buf bytes.Buffer
	if err := headTmpl.Execute(&buf, h); err != nil {
		return "", fmt.Errorf("seo: render head: %w", err)
	}
	return template.HTML(buf.String()), nil
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}

var headTmpl = template.Must(template.New("head").Parse(`<title>{{.Title}}</title>
{{range .Meta}}{{if .Charset}}<meta charset="{{.Charset}}">
{{else if .Property}}<meta property="{{.Property}}" content="{{.Content}}">
{{else}}<meta name="{{.Name}}" content="{{.Content}}">
{{end}}{{end}}{{range .Links}}<link rel="{{.Rel}}" href="{{.Href}}"{{if .Type}} type="{{.Type}}"{{end}}{{if .Sizes}} sizes="{{.Sizes}}"{{end}}{{if .CrossOrigin}} crossorigin="{{.CrossOrigin}}"{{end}}>
{{end}}<script type="application/ld+json">{{.JSONLD}}</script>
{{if .AnalyticsID}}<script async src="https://www.googletagmanager.com/gtag/js?id={{.AnalyticsID}}"></script>
<script>window.dataLayer=window.dataLayer||[];function gtag(){dataLayer.push(arguments);}gtag("js",new Date());gtag("config",{{.AnalyticsID}},{page_path:{{.PagePath}}});</script>
{{end}}`))
