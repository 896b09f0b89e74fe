// Package admin serves the staff-only administration index.
package admin

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/sparkplayhouse/playhouse.site/internal/platform/storage"
	"github.com/sparkplayhouse/playhouse.site/internal/services/web/module"
	"github.com/sparkplayhouse/playhouse.site/internal/services/web/platform/sessioncookie"
	"github.com/sparkplayhouse/playhouse.site/internal/services/web/templates"
)

// Store is the slice of storage the admin module needs.
type Store interface {
	SessionUser(ctx context.Context, sessionID string) (storage.User, error)
}

// Module implements the admin index, gated to staff accounts.
type Module struct {
	store    Store
	renderer *templates.Renderer
	logger   *slog.Logger
	chrome   templates.AdminChrome
}

// New builds the admin module for a site.
func New(store Store, renderer *templates.Renderer, logger *slog.Logger) *Module {
	if logger == nil {
		logger = slog.Default()
	}
	site := renderer.SiteName()
	return &Module{
		store:    store,
		renderer: renderer,
		logger:   logger,
		chrome: templates.AdminChrome{
			Header:     site + " Admin",
			Title:      site + " Admin Portal",
			IndexTitle: "Welcome to " + site + " Admin",
		},
	}
}

// ID identifies the module in the installed modules setting.
func (m *Module) ID() string { return "admin" }

// Mount exposes the module routes under its default prefix.
func (m *Module) Mount() (module.Mount, error) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", m.index)
	return module.Mount{Handler: mux}, nil
}

func (m *Module) index(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := sessioncookie.Read(r)
	if !ok {
		http.Redirect(w, r, "/auth/login", http.StatusSeeOther)
		return
	}
	user, err := m.store.SessionUser(r.Context(), sessionID)
	if err != nil {
		http.Redirect(w, r, "/auth/login", http.StatusSeeOther)
		return
	}
	if !user.IsStaff {
		http.Error(w, "forbidden", http.StatusForbidden)
		return
	}

	data := templates.PageData{
		PageTitle: m.chrome.Header,
		SignedIn:  true,
		UserName:  user.Username,
		Admin:     &m.chrome,
	}
	if err := m.renderer.Page(w, "admin_index.html", data); err != nil {
		m.logger.Error("render admin index", "error", err)
	}
}
