// Package routes is the table of pages the site serves. The web handlers,
// the shell's navigation and the sitemap all read it.
package routes

import (
	"net/url"
	"strings"

	"github.com/starford/folio/internal/seo"
)

// Route paths.
const (
	Home      = "/"
	About     = "/about"
	Projects  = "/projects"
	Contact   = "/contact"
	OGPreview = "/og-preview"
	NotFound  = "/404"
)

// Page is one known route.
type Page struct {
	Path        string
	Label       string // navigation label; empty pages are not in the menu
	Title       string
	Description string
	Keywords    string
	Priority    float64 // sitemap priority; zero keeps the page out of the sitemap
	ChangeFreq  string
}

var table = []Page{
	{
		Path:        Home,
		Label:       "Home",
		Title:       "Home",
		Description: "Professional web developer specializing in creating beautiful, responsive web applications.",
		Priority:    1.0,
		ChangeFreq:  "monthly",
	},
	{
		Path:        About,
		Label:       "About",
		Title:       "About Me",
		Description: "Learn more about my background, skills, and experience as a web developer.",
		Keywords:    "web developer, frontend developer, react developer, javascript, portfolio, about",
		Priority:    0.8,
		ChangeFreq:  "monthly",
	},
	{
		Path:        Projects,
		Label:       "Projects",
		Title:       "Projects",
		Description: "Explore my portfolio of web development projects including frontend, backend, and full-stack applications.",
		Keywords:    "web developer, projects, portfolio, react, node.js, javascript, frontend, backend",
		Priority:    0.8,
		ChangeFreq:  "monthly",
	},
	{
		Path:        Contact,
		Label:       "Contact",
		Title:       "Contact",
		Description: "Get in touch with me for job opportunities, freelance work, or just to say hello.",
		Keywords:    "contact, web developer, freelance, hire developer, react developer",
		Priority:    0.7,
		ChangeFreq:  "yearly",
	},
	{
		Path:        OGPreview,
		Title:       "OpenGraph Image Preview",
		Description: "Preview and generate OpenGraph images for social sharing",
	},
}

var notFound = Page{
	Path:        NotFound,
	Title:       "Page Not Found",
	Description: "The page you are looking for does not exist.",
}

// Nav returns the pages shown in the header and mobile menu.
func Nav() []Page {
	var out []Page
	for _, p := range table {
		if p.Label != "" {
			out = append(out, p)
		}
	}
	return out
}

// Resolve maps a request path or in-site href to its page. Query strings
// and fragments are ignored, a trailing slash is tolerated, and unknown
// paths resolve to the not-found page with ok false.
func Resolve(href string) (Page, bool) {
	p := href
	if u, err := url.Parse(href); err == nil {
		p = u.Path
	}
	if p == "" {
		p = Home
	}
	if len(p) > 1 {
		p = strings.TrimRight(p, "/")
		if p == "" {
			p = Home
		}
	}
	for _, page := range table {
		if page.Path == p {
			return page, true
		}
	}
	return notFound, false
}

// Internal reports whether href stays on this site. Browsers treat a
// backslash like a slash, so `/\host` is protocol-relative too.
func Internal(href string) bool {
	if strings.Contains(href, "\\") {
		return false
	}
	u, err := url.Parse(href)
	if err != nil {
		return false
	}
	return u.Scheme == "" && u.Host == "" &&
		strings.HasPrefix(u.Path, "/") && !strings.HasPrefix(u.Path, "//")
}

// Sitemap returns the sitemap entries.
func Sitemap() []seo.Route {
	var out []seo.Route
	for _, p := range table {
		if p.Priority > 0 {
			out = append(out, seo.Route{Path: p.Path, Priority: p.Priority, ChangeFreq: p.ChangeFreq})
		}
	}
	return out
}
