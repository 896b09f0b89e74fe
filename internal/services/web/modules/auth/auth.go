// Package auth serves the sign-in and sign-out flows.
package auth

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/sparkplayhouse/playhouse.site/internal/platform/storage"
	"github.com/sparkplayhouse/playhouse.site/internal/services/web/module"
	"github.com/sparkplayhouse/playhouse.site/internal/services/web/platform/sessioncookie"
	"github.com/sparkplayhouse/playhouse.site/internal/services/web/templates"
)

const loginFailedMessage = "Invalid username or password."

// Store is the slice of storage the auth module needs.
type Store interface {
	Authenticate(ctx context.Context, login, password string) (storage.User, error)
	CreateSession(ctx context.Context, userID string, ttl time.Duration) (storage.Session, error)
	DeleteSession(ctx context.Context, sessionID string) error
}

// Module implements the sign-in and sign-out routes.
type Module struct {
	store    Store
	renderer *templates.Renderer
	logger   *slog.Logger
	lang     func(w http.ResponseWriter, r *http.Request) string
}

// New builds the auth module. lang may be nil.
func New(store Store, renderer *templates.Renderer, logger *slog.Logger, lang func(http.ResponseWriter, *http.Request) string) *Module {
	if logger == nil {
		logger = slog.Default()
	}
	if lang == nil {
		lang = func(http.ResponseWriter, *http.Request) string { return "" }
	}
	return &Module{store: store, renderer: renderer, logger: logger, lang: lang}
}

// ID identifies the module in the installed modules setting.
func (m *Module) ID() string { return "auth" }

// Mount exposes the module routes under its default prefix.
func (m *Module) Mount() (module.Mount, error) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /login", m.loginForm)
	mux.HandleFunc("POST /login", m.login)
	mux.HandleFunc("POST /logout", m.logout)
	return module.Mount{Handler: mux}, nil
}

func (m *Module) loginForm(w http.ResponseWriter, r *http.Request) {
	m.renderLogin(w, r, "")
}

func (m *Module) login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad form", http.StatusBadRequest)
		return
	}
	login := r.PostFormValue("login")
	password := r.PostFormValue("password")

	user, err := m.store.Authenticate(r.Context(), login, password)
	if errors.Is(err, storage.ErrInvalidCredentials) {
		m.logger.Info("login rejected", "login", login)
		w.WriteHeader(http.StatusUnauthorized)
		m.renderLogin(w, r, loginFailedMessage)
		return
	}
	if err != nil {
		m.logger.Error("authenticate", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	session, err := m.store.CreateSession(r.Context(), user.ID, storage.DefaultSessionTTL)
	if err != nil {
		m.logger.Error("create session", "error", err, "user", user.ID)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	sessioncookie.Write(w, r, session.ID)
	m.logger.Info("login accepted", "user", user.ID)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (m *Module) logout(w http.ResponseWriter, r *http.Request) {
	if sessionID, ok := sessioncookie.Read(r); ok {
		if err := m.store.DeleteSession(r.Context(), sessionID); err != nil {
			m.logger.Error("delete session", "error", err)
		}
	}
	sessioncookie.Clear(w, r)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (m *Module) renderLogin(w http.ResponseWriter, r *http.Request, formError string) {
	data := templates.PageData{
		Lang:      m.lang(w, r),
		PageTitle: "Sign in",
		Error:     formError,
	}
	if err := m.renderer.Page(w, "login.html", data); err != nil {
		m.logger.Error("render login", "error", err)
	}
}
