package content

import (
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"path"
	"regexp"
	"sort"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"gopkg.in/yaml.v3"

	"github.com/starford/folio/internal/apperr"
	"github.com/starford/folio/internal/checksum"
	"github.com/starford/folio/internal/models"
	"github.com/starford/folio/internal/parser"
	"github.com/starford/folio/internal/storage"
)

// File layout of a content directory.
const (
	SiteFile    = "site.yaml"
	ProjectsDir = "projects"
)

// placeholderColors cycle across projects without an image.
var placeholderColors = []string{"#0ea5e9", "#0369a1", "#075985", "#0c4a6e", "#082f49"}

var idRe = regexp.MustCompile(`^[a-z0-9][a-z0-9-]*$`)

type siteFile struct {
	Profile      models.Profile       `yaml:"profile"`
	Skills       []models.SkillGroup  `yaml:"skills"`
	Experience   []models.Experience  `yaml:"experience"`
	Education    []models.Education   `yaml:"education"`
	Testimonials []models.Testimonial `yaml:"testimonials"`
	Process      []models.ProcessStep `yaml:"process"`
}

func (s *siteFile) Validate() error {
	if err := validation.ValidateStruct(&s.Profile,
		validation.Field(&s.Profile.Name, validation.Required),
		validation.Field(&s.Profile.Role, validation.Required),
	); err != nil {
		return fmt.Errorf("profile: %w", err)
	}
	for _, g := range s.Skills {
		for _, sk := range g.Skills {
			if err := validation.Validate(sk.Level, validation.Min(0), validation.Max(100)); err != nil {
				return fmt.Errorf("skill %q level: %w", sk.Name, err)
			}
		}
	}
	return nil
}

type projectFile struct {
	ID          string   `yaml:"id"`
	Title       string   `yaml:"title"`
	Description string   `yaml:"description"`
	Image       string   `yaml:"image"`
	ImageAlt    string   `yaml:"image_alt"`
	Color       string   `yaml:"placeholder_color"`
	Tags        []string `yaml:"tags"`
	Category    string   `yaml:"category"`
	LiveURL     string   `yaml:"live_url"`
	SourceURL   string   `yaml:"source_url"`
	GitHubURL   string   `yaml:"github_url"`
	Featured    bool     `yaml:"featured"`
	Order       int      `yaml:"order"`
}

func (p *projectFile) Validate() error {
	return validation.ValidateStruct(p,
		validation.Field(&p.ID, validation.Required, validation.Match(idRe)),
		validation.Field(&p.Title, validation.Required),
		validation.Field(&p.Category, validation.Required, validation.In(
			string(models.CategoryFrontend),
			string(models.CategoryBackend),
			string(models.CategoryFullStack),
		)),
	)
}

// Loader builds snapshots from a content provider.
type Loader struct {
	store  storage.Provider
	md     *Markdown
	logger *slog.Logger
	now    func() time.Time
}

// NewLoader creates a Loader reading from store.
func NewLoader(store storage.Provider, logger *slog.Logger) *Loader {
	if logger == nil {
		logger = slog.Default()
	}
	return &Loader{store: store, md: NewMarkdown(), logger: logger, now: time.Now}
}

// Load reads and validates every content file. A missing site file wraps
// apperr.ErrNotFound; duplicate project ids wrap apperr.ErrConflict; other
// validation failures wrap apperr.ErrInvalid.
func (l *Loader) Load() (*Snapshot, error) {
	metas, err := l.store.List("")
	if err != nil {
		return nil, fmt.Errorf("content: list: %w", err)
	}

	snap := &Snapshot{Checksum: checksum.Manifest(metas), LoadedAt: l.now()}

	var sitePath string
	var projectPaths []string
	for _, m := range metas {
		switch {
		case m.Path == SiteFile || m.Path == "site.yml":
			sitePath = m.Path
		case path.Dir(m.Path) == ProjectsDir && strings.HasSuffix(m.Path, ".md"):
			projectPaths = append(projectPaths, m.Path)
		}
	}
	if sitePath == "" {
		return nil, fmt.Errorf("content: %s: %w", SiteFile, apperr.ErrNotFound)
	}

	if err := l.loadSite(sitePath, snap); err != nil {
		return nil, err
	}

	seen := make(map[string]string, len(projectPaths))
	for _, p := range projectPaths {
		proj, err := l.loadProject(p)
		if err != nil {
			return nil, err
		}
		if prev, dup := seen[proj.ID]; dup {
			return nil, fmt.Errorf("content: duplicate project id %q in %s and %s: %w", proj.ID, prev, p, apperr.ErrConflict)
		}
		seen[proj.ID] = p
		snap.Projects = append(snap.Projects, proj)
	}

	sort.SliceStable(snap.Projects, func(i, j int) bool {
		a, b := snap.Projects[i], snap.Projects[j]
		if a.Order != b.Order {
			return a.Order < b.Order
		}
		return a.Path < b.Path
	})
	for i := range snap.Projects {
		if snap.Projects[i].Media.IsPlaceholder() && snap.Projects[i].Media.Color == "" {
			snap.Projects[i].Media.Color = placeholderColors[i%len(placeholderColors)]
		}
	}

	return snap, nil
}

func (l *Loader) loadSite(p string, snap *Snapshot) error {
	data, err := l.store.Read(p)
	if err != nil {
		return fmt.Errorf("content: %w", err)
	}
	var site siteFile
	if err := yaml.Unmarshal(data, &site); err != nil {
		return fmt.Errorf("content: parse %s: %v: %w", p, err, apperr.ErrInvalid)
	}
	if err := site.Validate(); err != nil {
		return fmt.Errorf("content: %s: %v: %w", p, err, apperr.ErrInvalid)
	}

	bio, err := l.md.Render(site.Profile.Bio)
	if err != nil {
		return err
	}
	site.Profile.BioHTML = bio
	site.Profile.ResumeURL = l.cleanURL(p, "resume_url", site.Profile.ResumeURL)
	socials := site.Profile.Socials[:0]
	for _, s := range site.Profile.Socials {
		if u := l.cleanURL(p, s.Name, s.URL); u != "" {
			s.URL = u
			socials = append(socials, s)
		}
	}
	site.Profile.Socials = socials
	if site.Profile.Avatar.IsPlaceholder() && site.Profile.Avatar.Text == "" {
		site.Profile.Avatar.Text = initials(site.Profile.Name)
	}
	for i := range site.Testimonials {
		a := &site.Testimonials[i].Avatar
		if a.IsPlaceholder() && a.Text == "" {
			a.Text = initials(site.Testimonials[i].Author)
		}
	}

	snap.Profile = site.Profile
	snap.Skills = site.Skills
	snap.Experience = site.Experience
	snap.Education = site.Education
	snap.Testimonials = site.Testimonials
	snap.Process = site.Process
	return nil
}

func (l *Loader) loadProject(p string) (models.Project, error) {
	data, err := l.store.Read(p)
	if err != nil {
		return models.Project{}, fmt.Errorf("content: %w", err)
	}
	var fm projectFile
	body, err := parser.Decode(data, &fm)
	if err != nil {
		return models.Project{}, fmt.Errorf("content: %s: %v: %w", p, err, apperr.ErrInvalid)
	}
	if fm.ID == "" {
		fm.ID = strings.TrimSuffix(path.Base(p), ".md")
	}
	res, _ := parser.Parse(data)
	if fm.Title == "" && res != nil {
		fm.Title = res.Title
	}
	if fm.Description == "" && res != nil {
		fm.Description = res.Summary
	}
	if err := fm.Validate(); err != nil {
		return models.Project{}, fmt.Errorf("content: %s: %v: %w", p, err, apperr.ErrInvalid)
	}

	detail, err := l.md.Render(body)
	if err != nil {
		return models.Project{}, err
	}
	source := fm.SourceURL
	if source == "" {
		source = fm.GitHubURL
	}
	media := models.Media{URL: l.cleanURL(p, "image", fm.Image), Alt: fm.ImageAlt, Color: fm.Color}
	if media.Alt == "" {
		media.Alt = fm.Title
	}
	if media.IsPlaceholder() {
		media.Text = fm.Title
	}

	tags := make([]string, 0, len(fm.Tags))
	for _, t := range fm.Tags {
		if t = strings.TrimSpace(t); t != "" {
			tags = append(tags, t)
		}
	}

	return models.Project{
		ID:          fm.ID,
		Title:       fm.Title,
		Description: fm.Description,
		Media:       media,
		Tags:        tags,
		Category:    models.Category(fm.Category),
		LiveURL:     l.cleanURL(p, "live_url", fm.LiveURL),
		SourceURL:   l.cleanURL(p, "source_url", source),
		Featured:    fm.Featured,
		DetailHTML:  detail,
		Order:       fm.Order,
		Path:        p,
	}, nil
}

// cleanURL returns raw when it is an absolute http(s) URL or a site-relative
// path, and "" otherwise so the affordance is omitted.
func (l *Loader) cleanURL(file, field, raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	if err := checkURL(raw); err != nil {
		l.logger.Warn("content: dropping malformed url",
			slog.String("file", file),
			slog.String("field", field),
			slog.String("error", err.Error()))
		return ""
	}
	return raw
}

var errBadURL = errors.New("not an http(s) url or site path")

func checkURL(raw string) error {
	if strings.HasPrefix(raw, "/") && !strings.HasPrefix(raw, "//") {
		return nil
	}
	u, err := url.Parse(raw)
	if err != nil {
		return err
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return errBadURL
	}
	return nil
}

// initials returns the upper-cased first letters of the first two words.
func initials(name string) string {
	var b strings.Builder
	n := 0
	for _, f := range strings.Fields(name) {
		b.WriteString(strings.ToUpper(string([]rune(f)[:1])))
		if n++; n == 2 {
			break
		}
	}
	return b.String()
}
