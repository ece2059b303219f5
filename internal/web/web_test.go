package web

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/starford/folio/internal/contact"
	"github.com/starford/folio/internal/content"
	"github.com/starford/folio/internal/db"
	"github.com/starford/folio/internal/seo"
	"github.com/starford/folio/internal/testutil"
	"github.com/starford/folio/internal/theme"
	"github.com/starford/folio/internal/visitor"
)

type fixture struct {
	srv    *httptest.Server
	client *http.Client
	db     *db.DB
}

func setup(t *testing.T) *fixture {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	_, store := testutil.TestContent(t, testutil.Projects())
	lib, err := content.NewLibrary(content.NewLoader(store, logger), logger)
	if err != nil {
		t.Fatalf("library: %v", err)
	}
	d := testutil.TestDB(t)

	s, err := New(Deps{
		Library: lib,
		SEO: seo.NewBuilder(seo.Site{
			Name:      "Ada Lovelace",
			ShortName: "Ada",
			JobTitle:  "Engineer",
			URL:       "https://ada.example.com",
		}, seo.WithClock(func() time.Time { return time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC) })),
		Themes:  theme.NewRegistry(d.Prefs, theme.Light, logger),
		Contact: contact.NewService(d, logger),
		Logger:  logger,
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	srv := httptest.NewServer(visitor.Middleware(false)(s.Routes()))
	t.Cleanup(srv.Close)

	jar, _ := cookiejar.New(nil)
	client := &http.Client{
		Jar: jar,
		CheckRedirect: func(*http.Request, []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}
	return &fixture{srv: srv, client: client, db: d}
}

func (f *fixture) get(t *testing.T, path string) (int, string) {
	t.Helper()
	resp, err := f.client.Get(f.srv.URL + path)
	if err != nil {
		t.Fatalf("GET %s: %v", path, err)
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	return resp.StatusCode, string(body)
}

func (f *fixture) post(t *testing.T, path string, form url.Values) (*http.Response, string) {
	t.Helper()
	resp, err := f.client.PostForm(f.srv.URL+path, form)
	if err != nil {
		t.Fatalf("POST %s: %v", path, err)
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	return resp, string(body)
}

func TestPages(t *testing.T) {
	f := setup(t)

	tests := []struct {
		path   string
		status int
		want   []string
	}{
		{"/", http.StatusOK, []string{"<title>Home | Ada</title>", `data-route="/"`, `data-project="shop"`}},
		{"/about", http.StatusOK, []string{"<title>About Me | Ada</title>", `data-route="/about"`}},
		{"/contact", http.StatusOK, []string{"Get In Touch", "ada@example.com"}},
		{"/og-preview", http.StatusOK, []string{`data-route="/og-preview"`}},
		{"/missing", http.StatusNotFound, []string{`data-route="/404"`}},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			status, body := f.get(t, tt.path)
			if status != tt.status {
				t.Fatalf("status = %d, want %d", status, tt.status)
			}
			for _, w := range tt.want {
				if !strings.Contains(body, w) {
					t.Errorf("body missing %q", w)
				}
			}
		})
	}
}

func TestPages_NavMarksActive(t *testing.T) {
	f := setup(t)
	_, body := f.get(t, "/about")
	if !strings.Contains(body, `href="/about" data-link class="nav-link is-active"`) {
		t.Error("about link not active")
	}
	if strings.Contains(body, `href="/" data-link class="nav-link is-active"`) {
		t.Error("home link active on /about")
	}
}

func TestProjects_Filter(t *testing.T) {
	f := setup(t)

	tests := []struct {
		name    string
		query   string
		want    []string
		absent  []string
		divider bool
		empty   bool
	}{
		{name: "all", query: "", want: []string{"shop", "board", "api"}, divider: true},
		{name: "backend", query: "?category=backend", want: []string{"api"}, absent: []string{"shop", "board"}},
		{name: "query tag", query: "?q=react", want: []string{"shop", "board"}, absent: []string{"api"}, divider: true},
		{name: "frontend no divider", query: "?category=frontend&q=react", want: []string{"board"}, absent: []string{"shop"}},
		{name: "no match", query: "?q=zzz", absent: []string{"shop", "board", "api"}, empty: true},
		{name: "unknown category", query: "?category=mobile", want: []string{"shop", "board", "api"}, divider: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, body := f.get(t, "/projects"+tt.query)
			if status != http.StatusOK {
				t.Fatalf("status = %d", status)
			}
			for _, id := range tt.want {
				if !strings.Contains(body, `data-project="`+id+`"`) {
					t.Errorf("missing project %s", id)
				}
			}
			for _, id := range tt.absent {
				if strings.Contains(body, `data-project="`+id+`"`) {
					t.Errorf("unexpected project %s", id)
				}
			}
			if got := strings.Contains(body, "More Projects"); got != tt.divider {
				t.Errorf("divider = %v, want %v", got, tt.divider)
			}
			if got := strings.Contains(body, "No projects found"); got != tt.empty {
				t.Errorf("empty state = %v, want %v", got, tt.empty)
			}
		})
	}
}

func TestProjects_FeaturedFirst(t *testing.T) {
	f := setup(t)
	_, body := f.get(t, "/projects?q=react")
	shop := strings.Index(body, `data-project="shop"`)
	board := strings.Index(body, `data-project="board"`)
	if shop < 0 || board < 0 || shop > board {
		t.Errorf("featured shop at %d, board at %d", shop, board)
	}
}

func TestContact_Submit(t *testing.T) {
	f := setup(t)

	resp, body := f.post(t, "/contact", url.Values{
		"name":    {"Grace"},
		"email":   {"grace@example.com"},
		"subject": {"Hello"},
		"message": {"Nice site."},
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	if !strings.Contains(body, "Your message has been sent successfully!") {
		t.Error("missing success status")
	}
	msgs, total, err := f.db.ListMessages(10, 0)
	if err != nil || total != 1 || msgs[0].Name != "Grace" {
		t.Fatalf("stored = %+v, %d, %v", msgs, total, err)
	}
}

func TestContact_Invalid(t *testing.T) {
	f := setup(t)

	resp, body := f.post(t, "/contact", url.Values{
		"name":    {"Grace"},
		"email":   {""},
		"message": {"Keep me"},
	})
	if resp.StatusCode != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	if !strings.Contains(body, contact.RequiredMessage) {
		t.Error("missing required-fields status")
	}
	if !strings.Contains(body, `value="Grace"`) || !strings.Contains(body, "Keep me") {
		t.Error("form values not preserved")
	}
	if _, total, _ := f.db.ListMessages(10, 0); total != 0 {
		t.Errorf("stored %d messages", total)
	}
}

func TestThemeToggle_Persists(t *testing.T) {
	f := setup(t)

	_, body := f.get(t, "/about")
	if !strings.Contains(body, `<html lang="en" class="light"`) {
		t.Fatal("default theme not light")
	}

	resp, _ := f.post(t, "/theme/toggle", url.Values{"return": {"/about"}})
	if resp.StatusCode != http.StatusSeeOther {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	if loc := resp.Header.Get("Location"); loc != "/about" {
		t.Errorf("Location = %q", loc)
	}

	_, body = f.get(t, "/")
	if !strings.Contains(body, `<html lang="en" class="dark"`) {
		t.Error("toggle did not persist for the visitor")
	}
}

func TestThemeToggle_RejectsExternalReturn(t *testing.T) {
	f := setup(t)
	for ret, want := range map[string]string{
		"https://evil.example.com": "/",
		"//evil.example.com":       "/",
		`/\evil.example`:           "/",
		`/\/evil.example`:          "/",
		"/not-a-page":              "/",
		"/projects/?q=go":          "/projects",
	} {
		resp, _ := f.post(t, "/theme/toggle", url.Values{"return": {ret}})
		if loc := resp.Header.Get("Location"); loc != want {
			t.Errorf("return %q: Location = %q, want %q", ret, loc, want)
		}
	}
}

func TestSitemapAndRobots(t *testing.T) {
	f := setup(t)

	status, body := f.get(t, "/sitemap.xml")
	if status != http.StatusOK {
		t.Fatalf("sitemap status = %d", status)
	}
	for _, w := range []string{"<loc>https://ada.example.com/</loc>", "<loc>https://ada.example.com/projects</loc>"} {
		if !strings.Contains(body, w) {
			t.Errorf("sitemap missing %q", w)
		}
	}
	if strings.Contains(body, "/404") {
		t.Error("sitemap lists the not-found page")
	}

	_, body = f.get(t, "/robots.txt")
	if !strings.Contains(body, "Sitemap: https://ada.example.com/sitemap.xml") {
		t.Errorf("robots = %q", body)
	}
}

func TestStatic(t *testing.T) {
	f := setup(t)
	for _, p := range []string{"/static/site.css", "/static/shell.js"} {
		if status, _ := f.get(t, p); status != http.StatusOK {
			t.Errorf("%s status = %d", p, status)
		}
	}
}

func TestRevealAttr(t *testing.T) {
	got := string(reveal(RevealLeft, 0.2))
	want := `data-reveal="left" style="--reveal-x:-50px;--reveal-y:0px;--reveal-delay:0.20s"`
	if got != want {
		t.Errorf("reveal = %s\nwant %s", got, want)
	}
	if got := string(reveal("spin", -1)); !strings.HasPrefix(got, `data-reveal="fade"`) || !strings.HasSuffix(got, "0.00s\"") {
		t.Errorf("unknown direction = %s", got)
	}
}
