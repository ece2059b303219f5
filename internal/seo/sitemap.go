package seo

import (
	"encoding/xml"
	"fmt"
	"strconv"
	"strings"
	"time"
)

const sitemapNS = "http://www.sitemaps.org/schemas/sitemap/0.9"

// Route is one sitemap entry.
type Route struct {
	Path       string
	Priority   float64
	ChangeFreq string
}

type urlset struct {
	XMLName xml.Name     `xml:"urlset"`
	Xmlns   string       `xml:"xmlns,attr"`
	URLs    []sitemapURL `xml:"url"`
}

type sitemapURL struct {
	Loc        string `xml:"loc"`
	LastMod    string `xml:"lastmod"`
	ChangeFreq string `xml:"changefreq"`
	Priority   string `xml:"priority"`
}

// Sitemap renders routes as a sitemaps.org urlset with lastmod set to the
// date of now.
func Sitemap(siteURL string, routes []Route, now time.Time) ([]byte, error) {
	siteURL = strings.TrimRight(siteURL, "/")
	today := now.UTC().Format(time.DateOnly)

	set := urlset{Xmlns: sitemapNS}
	for _, r := range routes {
		set.URLs = append(set.URLs, sitemapURL{
			Loc:        siteURL + r.Path,
			LastMod:    today,
			ChangeFreq: r.ChangeFreq,
			Priority:   strconv.FormatFloat(r.Priority, 'f', -1, 64),
		})
	}

	out, err := xml.MarshalIndent(set, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("seo: sitemap: %w", err)
	}
	return append([]byte(xml.Header), out...), nil
}

// Robots returns a robots.txt allowing everything and pointing at the
// sitemap.
func Robots(siteURL string) []byte {
	return []byte("User-agent: *\nAllow: /\n\nSitemap: " + strings.TrimRight(siteURL, "/") + "/sitemap.xml\n")
}
