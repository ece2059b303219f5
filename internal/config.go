package internal

import (
	"fmt"
	"log/slog"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"

	"github.com/starford/folio/internal/scroll"
	"github.com/starford/folio/internal/seo"
	"github.com/starford/folio/internal/theme"
	"github.com/starford/folio/internal/transition"
)

// Auth modes.
const (
	AuthModeDisabled = "disabled"
	AuthModeToken    = "token"
)

// Config represents the application configuration.
type Config struct {
	App     ApplicationConfig `yaml:"app"`
	Site    SiteConfig        `yaml:"site"`
	Content ContentConfig     `yaml:"content"`
	SQLite  SQLiteConfig      `yaml:"sqlite"`
	Shell   ShellConfig       `yaml:"shell"`
	Auth    AuthConfig        `yaml:"auth"`
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if err := c.App.Validate(); err != nil {
		return err
	}
	if err := c.Site.Validate(); err != nil {
		return fmt.Errorf("site: %w", err)
	}
	if err := c.SQLite.Validate(); err != nil {
		return err
	}
	if err := c.Shell.Validate(); err != nil {
		return fmt.Errorf("shell: %w", err)
	}
	return c.Auth.Validate()
}

// ApplicationConfig holds application-level configuration.
type ApplicationConfig struct {
	LogLevel slog.Level `yaml:"log_level"`
	HTTP     HTTPConfig `yaml:"http"`
	// Dev disables analytics and serves the default content when no
	// content path is configured.
	Dev bool `yaml:"dev"`
	// SecureCookies marks the visitor cookie Secure; enable behind TLS.
	SecureCookies bool `yaml:"secure_cookies"`
}

// Validate validates the application configuration.
func (c *ApplicationConfig) Validate() error {
	return c.HTTP.Validate()
}

// HTTPConfig holds HTTP server configuration.
type HTTPConfig struct {
	Port int `yaml:"port"`
}

// Address returns HTTP server address.
func (c *HTTPConfig) Address() string {
	return fmt.Sprintf(":%d", c.Port)
}

// Validate validates the HTTP configuration.
func (c *HTTPConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Port, validation.Required, validation.Min(1), validation.Max(65535)),
	)
}

// SiteConfig holds the site-wide SEO defaults.
type SiteConfig struct {
	Name          string   `yaml:"name"`
	ShortName     string   `yaml:"short_name"`
	JobTitle      string   `yaml:"job_title"`
	URL           string   `yaml:"url"`
	Description   string   `yaml:"description"`
	Keywords      string   `yaml:"keywords"`
	Language      string   `yaml:"language"`
	Locale        string   `yaml:"locale"`
	OGImage       string   `yaml:"og_image"`
	TwitterHandle string   `yaml:"twitter_handle"`
	SameAs        []string `yaml:"same_as"`
	ThemeColor    string   `yaml:"theme_color"`
	AnalyticsID   string   `yaml:"analytics_id"`
}

// Validate validates the site configuration.
func (c *SiteConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Name, validation.Required),
		validation.Field(&c.URL, validation.Required, is.URL),
		validation.Field(&c.SameAs, validation.Each(is.URL)),
	)
}

// SEO returns the builder defaults for this site.
func (c *SiteConfig) SEO(dev bool) seo.Site {
	return seo.Site{
		Name:          c.Name,
		ShortName:     c.ShortName,
		JobTitle:      c.JobTitle,
		URL:           c.URL,
		Description:   c.Description,
		Keywords:      c.Keywords,
		Language:      c.Language,
		Locale:        c.Locale,
		OGImage:       c.OGImage,
		TwitterHandle: c.TwitterHandle,
		SameAs:        c.SameAs,
		ThemeColor:    c.ThemeColor,
		AnalyticsID:   c.AnalyticsID,
		Dev:           dev,
	}
}

// ContentConfig points at the content directory. An empty Path serves the
// built-in default content.
type ContentConfig struct {
	Path  string `yaml:"path"`
	Watch bool   `yaml:"watch"`
}

// SQLiteConfig holds SQLite database configuration.
type SQLiteConfig struct {
	Path string `yaml:"path"`
}

// Validate validates the SQLite configuration.
func (c *SQLiteConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Path, validation.Required),
	)
}

// ShellConfig tunes the per-tab page shell.
type ShellConfig struct {
	ScrollThreshold    float64       `yaml:"scroll_threshold"`
	TransitionDuration time.Duration `yaml:"transition_duration"`
	DefaultTheme       string        `yaml:"default_theme"`
	// ContentThrottle bounds how often content reload events reach browsers.
	ContentThrottle time.Duration `yaml:"content_throttle"`
}

// Validate validates the shell configuration.
func (c *ShellConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.ScrollThreshold, validation.Min(0.0)),
		validation.Field(&c.TransitionDuration, validation.Min(time.Duration(0)), validation.Max(5*time.Second)),
		validation.Field(&c.DefaultTheme, validation.Required, validation.In(string(theme.Light), string(theme.Dark))),
		validation.Field(&c.ContentThrottle, validation.Min(time.Duration(0))),
	)
}

// Theme returns the fallback theme for visitors without a preference.
func (c *ShellConfig) Theme() theme.Theme {
	t, ok := theme.Parse(c.DefaultTheme)
	if !ok {
		return theme.Light
	}
	return t
}

// AuthConfig holds authentication configuration for owner-only endpoints.
//
// Mode controls how authentication is enforced:
//   - "disabled" (default): no authentication required, suitable for local dev.
//   - "token": Bearer token authentication; Token must be non-empty.
type AuthConfig struct {
	Mode  string `yaml:"mode"`
	Token string `yaml:"token"`
}

// Validate validates the auth configuration.
func (c *AuthConfig) Validate() error {
	if c.Mode == "" {
		c.Mode = AuthModeDisabled
	}
	if err := validation.ValidateStruct(c,
		validation.Field(&c.Mode, validation.Required, validation.In(AuthModeDisabled, AuthModeToken)),
	); err != nil {
		return err
	}
	if c.Mode == AuthModeToken && c.Token == "" {
		return fmt.Errorf("auth: mode is %q but token is empty", AuthModeToken)
	}
	return nil
}

// AuthEnabled returns true when authentication is active.
func (c *AuthConfig) AuthEnabled() bool {
	return c.Mode == AuthModeToken
}

// NewDefaultConfig returns a new Config with sensible default values.
func NewDefaultConfig() *Config {
	return &Config{
		App: ApplicationConfig{
			LogLevel: slog.LevelInfo,
			HTTP: HTTPConfig{
				Port: 8080,
			},
		},
		Site: SiteConfig{
			Name:      "Sam Carter",
			ShortName: "Sam Carter",
			JobTitle:  "Web Developer",
			URL:       "http://localhost:8080",
			Language:  "en",
			Locale:    "en_US",
			OGImage:   "/og-image.png",
		},
		Content: ContentConfig{
			Watch: true,
		},
		SQLite: SQLiteConfig{
			Path: "./folio.db",
		},
		Shell: ShellConfig{
			ScrollThreshold:    scroll.DefaultThreshold,
			TransitionDuration: transition.DefaultDuration,
			DefaultTheme:       string(theme.Light),
			ContentThrottle:    2 * time.Second,
		},
		Auth: AuthConfig{
			Mode: AuthModeDisabled,
		},
	}
}
