// Package internal provides the main application initialization and runtime logic.
package internal

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"golang.org/x/sync/errgroup"

	"github.com/starford/folio/internal/api"
	"github.com/starford/folio/internal/catalog"
	"github.com/starford/folio/internal/contact"
	"github.com/starford/folio/internal/content"
	"github.com/starford/folio/internal/db"
	"github.com/starford/folio/internal/mcpserver"
	"github.com/starford/folio/internal/routes"
	"github.com/starford/folio/internal/seo"
	"github.com/starford/folio/internal/shell"
	"github.com/starford/folio/internal/sse"
	"github.com/starford/folio/internal/storage"
	"github.com/starford/folio/internal/theme"
	"github.com/starford/folio/internal/visitor"
	"github.com/starford/folio/internal/web"
)

func newApplication(opts []Option) (*application, error) {
	app := &application{version: "dev", logOut: os.Stdout}
	for _, opt := range opts {
		opt(app)
	}
	if app.config == nil {
		return nil, fmt.Errorf("config is required")
	}
	return app, nil
}

// logger builds the structured JSON logger and installs it as default.
func (a *application) logger() *slog.Logger {
	logger := slog.New(slog.NewJSONHandler(a.logOut, &slog.HandlerOptions{
		Level: a.config.App.LogLevel,
	}))
	slog.SetDefault(logger)
	return logger
}

// openLibrary loads the content directory, or the built-in content when no
// path is configured. root is "" for built-in content.
func (a *application) openLibrary(logger *slog.Logger) (lib *content.Library, root string, err error) {
	var provider storage.Provider
	if path := a.config.Content.Path; path != "" {
		fsys, err := storage.NewFS(path)
		if err != nil {
			return nil, "", fmt.Errorf("init content: %w", err)
		}
		provider, root = fsys, fsys.Root()
	} else {
		emb, err := content.Defaults()
		if err != nil {
			return nil, "", fmt.Errorf("init default content: %w", err)
		}
		provider = emb
		logger.Info("No content path configured, serving built-in content")
	}

	lib, err = content.NewLibrary(content.NewLoader(provider, logger), logger)
	if err != nil {
		return nil, "", fmt.Errorf("load content: %w", err)
	}
	return lib, root, nil
}

// Run starts the web server with the given options.
func Run(ctx context.Context, opts ...Option) error {
	app, err := newApplication(opts)
	if err != nil {
		return err
	}
	cfg := app.config
	logger := app.logger()

	logger.Info("Configuration loaded",
		slog.String("http_address", cfg.App.HTTP.Address()),
		slog.String("content_path", cfg.Content.Path),
		slog.String("sqlite_path", cfg.SQLite.Path),
		slog.String("site_url", cfg.Site.URL),
		slog.String("log_level", cfg.App.LogLevel.String()),
		slog.Bool("dev", cfg.App.Dev))

	lib, contentRoot, err := app.openLibrary(logger)
	if err != nil {
		return err
	}

	store, err := db.Open(cfg.SQLite.Path)
	if err != nil {
		return fmt.Errorf("init db: %w", err)
	}
	defer store.Close()

	// SSE broker: theme changes per visitor, content reloads for everyone.
	broker := sse.NewBroker(cfg.Shell.ContentThrottle)
	defer broker.Close()

	themes := theme.NewRegistry(store.Prefs, cfg.Shell.Theme(), logger,
		theme.WithChangeHook(func(v string, t theme.Theme) {
			broker.PublishTheme(v, t.String())
		}))
	stopContentEvents := lib.Subscribe(func(s *content.Snapshot) {
		broker.PublishContentEvent(s.Checksum)
	})
	defer stopContentEvents()

	contactSvc := contact.NewService(store, logger)
	tracker := shell.NewTracker()
	shellHandler := shell.NewHandler(shellOptions(cfg, themes, lib, logger), tracker, logger)

	pages, err := web.New(web.Deps{
		Library: lib,
		SEO:     seo.NewBuilder(cfg.Site.SEO(cfg.App.Dev)),
		Themes:  themes,
		Contact: contactSvc,
		Shell:   shellHandler,
		Logger:  logger,
	})
	if err != nil {
		return fmt.Errorf("init web: %w", err)
	}

	apiRouter := api.NewRouter(lib, themes, contactSvc, cfg.Auth.AuthEnabled(), cfg.Auth.Token, broker)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(visitor.Middleware(cfg.App.SecureCookies))

	// Health check endpoints (unauthenticated).
	r.Get("/health/live", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = fmt.Fprintf(w, `{"status":"ok","version":%q}`, app.version)
	})
	r.Get("/health/ready", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if err := store.Ping(); err != nil {
			w.WriteHeader(http.StatusServiceUnavailable)
			_, _ = w.Write([]byte(`{"status":"db unavailable"}`))
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = fmt.Fprintf(w, `{"status":"ok","sessions":%d,"subscribers":%d}`, tracker.Len(), broker.ClientCount())
	})

	r.Mount("/api", apiRouter)
	if contentRoot != "" {
		r.Get("/media/{filename}", api.NewMediaHandler(contentRoot).ServeFile)
	}
	r.Mount("/", pages.Routes())

	// Long-lived requests (websocket shells, SSE streams) derive from
	// baseCtx so shutdown can end them.
	baseCtx, cancelBase := context.WithCancel(ctx)
	defer cancelBase()

	httpServer := &http.Server{
		Addr:              cfg.App.HTTP.Address(),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return baseCtx },
	}

	logger.Info("Server starting...", slog.String("http_address", cfg.App.HTTP.Address()))

	g, gCtx := errgroup.WithContext(ctx)

	// Reload content on file changes.
	if contentRoot != "" && cfg.Content.Watch {
		g.Go(func() error {
			return content.Watch(gCtx, lib, contentRoot, logger)
		})
	}

	// Start HTTP server.
	g.Go(func() error {
		logger.Info("Starting HTTP server", slog.String("address", cfg.App.HTTP.Address()))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("HTTP server error: %w", err)
		}
		return nil
	})

	// Handle shutdown signals.
	g.Go(func() error {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		defer signal.Stop(quit)

		select {
		case sig := <-quit:
			logger.Info("Received shutdown signal", slog.String("signal", sig.String()))
		case <-gCtx.Done():
			logger.Info("Context cancelled, initiating shutdown")
		}

		logger.Info("Shutting down server...", slog.Int("sessions", tracker.Len()))
		cancelBase()
		broker.Close()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			logger.Error("HTTP server shutdown error", slog.String("error", err.Error()))
		}

		// Stop the watcher.
		return errShutdown
	})

	if err := g.Wait(); err != nil && !errors.Is(err, errShutdown) {
		logger.Error("Application error", slog.String("error", err.Error()))
		return err
	}

	logger.Info("Server stopped successfully")
	return nil
}

var errShutdown = errors.New("shutdown")

// shellOptions builds per-tab session options from the websocket request:
// path is the page the tab loaded, category and q its catalog filter.
func shellOptions(cfg *Config, themes *theme.Registry, lib *content.Library, logger *slog.Logger) func(*http.Request) shell.Options {
	return func(r *http.Request) shell.Options {
		q := r.URL.Query()
		category, _ := catalog.ParseCategory(q.Get("category"))
		return shell.Options{
			Visitor:         visitor.FromContext(r.Context()),
			Route:           q.Get("path"),
			Criteria:        catalog.Criteria{Category: category, Query: q.Get("q")},
			Themes:          themes,
			Library:         lib,
			ScrollThreshold: cfg.Shell.ScrollThreshold,
			ExitDuration:    cfg.Shell.TransitionDuration,
			EnterDuration:   cfg.Shell.TransitionDuration,
			Logger:          logger,
		}
	}
}

// RunMCP serves the portfolio over MCP on stdin/stdout until the client
// disconnects. Logs go to the configured log output, never stdout.
func RunMCP(ctx context.Context, opts ...Option) error {
	app, err := newApplication(append([]Option{WithLogOutput(os.Stderr)}, opts...))
	if err != nil {
		return err
	}
	logger := app.logger()

	lib, root, err := app.openLibrary(logger)
	if err != nil {
		return err
	}

	watchCtx, stop := context.WithCancel(ctx)
	defer stop()
	if root != "" && app.config.Content.Watch {
		go func() {
			if err := content.Watch(watchCtx, lib, root, logger); err != nil {
				logger.Warn("watcher failed", slog.String("error", err.Error()))
			}
		}()
	}

	logger.Info("MCP server starting on stdio")
	return mcpserver.New(lib, app.version).ServeStdio()
}

// WriteSitemap renders the sitemap for the configured site URL to w.
func WriteSitemap(cfg *Config, w io.Writer, now time.Time) error {
	out, err := seo.Sitemap(cfg.Site.URL, routes.Sitemap(), now)
	if err != nil {
		return err
	}
	_, err = w.Write(out)
	return err
}

// InitContent writes the built-in content into dir, creating it when
// missing. Existing files are kept unless overwrite is set.
func InitContent(dir string, overwrite bool) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create content dir: %w", err)
	}
	dst, err := storage.NewFS(dir)
	if err != nil {
		return nil, err
	}
	src, err := content.Defaults()
	if err != nil {
		return nil, err
	}
	return storage.CopyTo(src, dst, overwrite)
}
