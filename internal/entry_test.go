package internal

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestInitContent(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "content")

	written, err := InitContent(dir, false)
	if err != nil {
		t.Fatalf("InitContent: %v", err)
	}
	if len(written) != 7 {
		t.Errorf("written = %d files, want 7: %v", len(written), written)
	}
	if _, err := os.Stat(filepath.Join(dir, "projects", "blog-api.md")); err != nil {
		t.Errorf("project file missing: %v", err)
	}

	// Existing files are kept.
	site := filepath.Join(dir, "site.yaml")
	if err := os.WriteFile(site, []byte("edited"), 0o644); err != nil {
		t.Fatal(err)
	}
	written, err = InitContent(dir, false)
	if err != nil || len(written) != 0 {
		t.Fatalf("second run wrote %v, err %v", written, err)
	}
	if data, _ := os.ReadFile(site); string(data) != "edited" {
		t.Error("site.yaml overwritten without overwrite")
	}

	if _, err := InitContent(dir, true); err != nil {
		t.Fatal(err)
	}
	if data, _ := os.ReadFile(site); string(data) == "edited" {
		t.Error("overwrite did not replace site.yaml")
	}
}

func TestWriteSitemap(t *testing.T) {
	cfg := NewDefaultConfig()
	cfg.Site.URL = "https://sam.example.com"

	var buf bytes.Buffer
	if err := WriteSitemap(cfg, &buf, time.Date(2026, 3, 4, 0, 0, 0, 0, time.UTC)); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	for _, want := range []string{
		"<loc>https://sam.example.com/contact</loc>",
		"<lastmod>2026-03-04</lastmod>",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("sitemap missing %q", want)
		}
	}
}

func TestRun_RequiresConfig(t *testing.T) {
	if err := Run(t.Context()); err == nil {
		t.Error("Run without config should fail")
	}
}
