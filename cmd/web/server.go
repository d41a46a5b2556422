package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"kalakrutiassociates.com/web/internal/config"
	"kalakrutiassociates.com/web/internal/content"
	handlersPkg "kalakrutiassociates.com/web/internal/handlers"
	"kalakrutiassociates.com/web/internal/inquiry"
	mw "kalakrutiassociates.com/web/internal/middleware"
	"kalakrutiassociates.com/web/internal/nav"
)

const shutdownTimeout = 10 * time.Second

// app carries everything the handlers share. All of it is read-only after
// newApp except the template set, which reloads in dev mode.
type app struct {
	cfg       config.Config
	log       *zap.Logger
	store     *content.Store
	router    nav.Router
	analytics handlersPkg.Analytics
	templates *templateSet
	sessions  *mw.Sessions
	submitter inquiry.Submitter
	now       func() time.Time
}

func newApp(cfg config.Config, log *zap.Logger) (*app, error) {
	store, err := content.LoadDir(cfg.ContentDir)
	if err != nil {
		return nil, fmt.Errorf("load content: %w", err)
	}
	ts, err := newTemplateSet(cfg.TemplatesDir)
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	sessions, err := mw.NewSessions(mw.SessionConfig{
		HashKey: []byte(cfg.SessionKey),
		Secure:  cfg.Prod(),
		Logger:  log,
	})
	if err != nil {
		return nil, err
	}
	return &app{
		cfg:       cfg,
		log:       log,
		store:     store,
		router:    nav.Router{BaseURL: cfg.BaseURL},
		analytics: handlersPkg.AnalyticsFrom(cfg.Analytics),
		templates: ts,
		sessions:  sessions,
		submitter: inquiry.Simulated{Delay: cfg.SubmitDelay},
		now:       time.Now,
	}, nil
}

// routes builds the HTTP handler.
func (a *app) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	// If deployed behind a trusted reverse proxy/load balancer, RealIP will use
	// X-Forwarded-For to determine the client IP. Ensure only trusted proxies
	// can set these headers in production environments.
	r.Use(middleware.RealIP)
	r.Use(mw.HTMX)
	r.Use(mw.Crawler)
	r.Use(mw.Logger(a.log))
	r.Use(middleware.Recoverer)
	r.Use(middleware.Compress(5))

	// Health check
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = io.WriteString(w, "ok")
	})
	r.Get("/robots.txt", a.RobotsHandler)
	r.Get("/sitemap.xml", a.SitemapHandler)
	r.NotFound(a.NotFoundHandler)

	// Static assets under /assets/
	r.Handle("/assets/*", http.StripPrefix("/assets", mw.AssetsWithCache(filepath.Join(a.cfg.PublicDir, "assets"))))

	r.Group(func(r chi.Router) {
		r.Use(a.sessions.Handler)
		r.Use(mw.CSRF(a.cfg.Prod()))

		// Pages render quickly; the contact post waits on the submitter and
		// gets a longer budget.
		r.Group(func(r chi.Router) {
			r.Use(middleware.Timeout(30 * time.Second))
			for _, p := range nav.Pages() {
				r.Get(p.Path(), a.PageHandler)
			}
			for alias, p := range nav.Aliases() {
				r.Get(alias, redirectTo(p.Path()))
			}
		})
		r.Group(func(r chi.Router) {
			r.Use(middleware.Timeout(a.cfg.SubmitDelay + 30*time.Second))
			r.Post(nav.Contact.Path(), a.ContactSubmitHandler)
			r.Post(nav.Contact.Path()+"/reset", a.ContactResetHandler)
		})
	})
	return r
}

// redirectTo permanently redirects a short alias to its canonical path,
// keeping the query.
func redirectTo(path string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		target := path
		if q := r.URL.RawQuery; q != "" {
			target += "?" + q
		}
		http.Redirect(w, r, target, http.StatusMovedPermanently)
	}
}

// run serves until ctx is cancelled, then drains connections. In dev mode the
// template watcher runs alongside the server.
func (a *app) run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              a.cfg.Addr,
		Handler:           a.routes(),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      a.cfg.SubmitDelay + 45*time.Second,
		IdleTimeout:       60 * time.Second,
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		a.log.Info("web listening", zap.String("addr", a.cfg.Addr), zap.Bool("dev", a.cfg.Dev))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		a.log.Info("shutting down")
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("graceful shutdown: %w", err)
		}
		return nil
	})
	if a.cfg.Dev {
		g.Go(func() error { return watchTemplates(ctx, a.templates, a.log) })
	}
	return g.Wait()
}
