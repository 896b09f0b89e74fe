// Package web hosts the site HTTP server: static pages, asset serving, and
// the installed feature modules.
package web

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/sparkplayhouse/playhouse.site/internal/platform/config"
	"github.com/sparkplayhouse/playhouse.site/internal/platform/storage"
	"github.com/sparkplayhouse/playhouse.site/internal/platform/timeouts"
	"github.com/sparkplayhouse/playhouse.site/internal/services/web/composition"
	"github.com/sparkplayhouse/playhouse.site/internal/services/web/i18n"
	"github.com/sparkplayhouse/playhouse.site/internal/services/web/module"
	"github.com/sparkplayhouse/playhouse.site/internal/services/web/modules/admin"
	"github.com/sparkplayhouse/playhouse.site/internal/services/web/modules/auth"
	"github.com/sparkplayhouse/playhouse.site/internal/services/web/platform/sessioncookie"
	"github.com/sparkplayhouse/playhouse.site/internal/services/web/templates"
)

// Config defines the inputs for the web server.
type Config struct {
	Settings config.Settings
	Store    *storage.Store
	Logger   *slog.Logger
}

// Server hosts the site HTTP server.
type Server struct {
	httpAddr   string
	httpServer *http.Server
	logger     *slog.Logger
}

type handler struct {
	store    *storage.Store
	renderer *templates.Renderer
	resolver *i18n.Resolver
	logger   *slog.Logger
}

// NewHandler assembles the full site handler: static pages, asset routes,
// and the feature modules listed in the installed modules setting.
func NewHandler(cfg Config) (http.Handler, error) {
	if cfg.Store == nil {
		return nil, errors.New("store is required")
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	renderer, err := templates.New(cfg.Settings.SiteName)
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}

	h := &handler{
		store:    cfg.Store,
		renderer: renderer,
		resolver: i18n.NewResolver(cfg.Settings.SupportedLanguages()),
		logger:   logger,
	}

	mux := http.NewServeMux()
	mux.Handle("GET /static/", http.StripPrefix("/static/",
		http.FileServer(http.Dir(cfg.Settings.StaticRoot()))))
	mux.Handle("GET /media/", http.StripPrefix("/media/",
		http.FileServer(http.Dir(cfg.Settings.MediaRoot()))))

	mux.HandleFunc("GET /{$}", h.home)
	mux.HandleFunc("GET /about", h.staticPage("About"))
	mux.HandleFunc("GET /contact", h.staticPage("Contact"))

	mux.HandleFunc("/", h.notFound)

	mux.HandleFunc("GET /up", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})

	available := []module.Module{
		auth.New(h.store, renderer, logger, h.lang),
		admin.New(h.store, renderer, logger),
	}
	if err := composition.Compose(mux, cfg.Settings.Modules, available); err != nil {
		return nil, err
	}

	return requestLog(logger, mux), nil
}

// NewServer builds a configured site server.
func NewServer(cfg Config) (*Server, error) {
	httpAddr := strings.TrimSpace(cfg.Settings.HTTPAddr)
	if httpAddr == "" {
		return nil, errors.New("http address is required")
	}
	handler, err := NewHandler(cfg)
	if err != nil {
		return nil, fmt.Errorf("build handler: %w", err)
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{
		httpAddr: httpAddr,
		httpServer: &http.Server{
			Addr:              httpAddr,
			Handler:           handler,
			ReadHeaderTimeout: timeouts.ReadHeader,
		},
		logger: logger,
	}, nil
}

// ListenAndServe runs the HTTP server until the context ends.
//
// On cancellation, it performs a bounded shutdown so in-flight requests
// are drained before hard close.
func (s *Server) ListenAndServe(ctx context.Context) error {
	if s == nil {
		return errors.New("web server is nil")
	}
	if ctx == nil {
		return errors.New("context is required")
	}

	serveErr := make(chan error, 1)
	s.logger.Info("web listening", "addr", s.httpAddr)
	go func() {
		serveErr <- s.httpServer.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), timeouts.Shutdown)
		err := s.httpServer.Shutdown(shutdownCtx)
		cancel()
		if err != nil {
			return fmt.Errorf("shutdown http server: %w", err)
		}
		return nil
	case err := <-serveErr:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serve http: %w", err)
	}
}

// lang resolves the request language, persisting explicit choices.
func (h *handler) lang(w http.ResponseWriter, r *http.Request) string {
	return h.resolver.Resolve(w, r)
}

func (h *handler) home(w http.ResponseWriter, r *http.Request) {
	data := h.pageData(w, r)
	if err := h.renderer.Page(w, "home.html", data); err != nil {
		h.logger.Error("render home", "error", err)
	}
}

// staticPage serves a template-backed page with a fixed title and no
// per-request context beyond the shared chrome.
func (h *handler) staticPage(title string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		data := h.pageData(w, r)
		data.PageTitle = title
		if err := h.renderer.Page(w, "page.html", data); err != nil {
			h.logger.Error("render page", "error", err, "title", title)
		}
	}
}

// notFound renders the error page for paths no route matched.
func (h *handler) notFound(w http.ResponseWriter, r *http.Request) {
	data := h.pageData(w, r)
	data.PageTitle = "Page not found"
	data.Error = "There is nothing at " + r.URL.Path + "."
	w.WriteHeader(http.StatusNotFound)
	if err := h.renderer.Page(w, "error.html", data); err != nil {
		h.logger.Error("render error page", "error", err)
	}
}

// pageData builds the shared template context: language and signed-in chrome.
func (h *handler) pageData(w http.ResponseWriter, r *http.Request) templates.PageData {
	data := templates.PageData{Lang: h.lang(w, r)}
	if sessionID, ok := sessioncookie.Read(r); ok {
		if user, err := h.store.SessionUser(r.Context(), sessionID); err == nil {
			data.SignedIn = true
			data.UserName = user.Username
		}
	}
	return data
}
