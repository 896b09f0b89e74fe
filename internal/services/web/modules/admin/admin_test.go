package admin

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/sparkplayhouse/playhouse.site/internal/platform/branding"
	"github.com/sparkplayhouse/playhouse.site/internal/platform/storage"
	"github.com/sparkplayhouse/playhouse.site/internal/services/web/platform/sessioncookie"
	"github.com/sparkplayhouse/playhouse.site/internal/services/web/templates"
)

type fakeStore struct {
	users map[string]storage.User
}

func (f *fakeStore) SessionUser(_ context.Context, sessionID string) (storage.User, error) {
	user, ok := f.users[sessionID]
	if !ok {
		return storage.User{}, storage.ErrNoSession
	}
	return user, nil
}

func newTestHandler(t *testing.T, store Store) http.Handler {
	t.Helper()
	renderer, err := templates.New(branding.SiteName)
	if err != nil {
		t.Fatalf("templates.New() error = %v", err)
	}
	mount, err := New(store, renderer, nil).Mount()
	if err != nil {
		t.Fatalf("Mount() error = %v", err)
	}
	return mount.Handler
}

func TestIndexRedirectsAnonymousToLogin(t *testing.T) {
	t.Parallel()

	handler := newTestHandler(t, &fakeStore{})
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusSeeOther)
	}
	if got := rec.Header().Get("Location"); got != "/auth/login" {
		t.Fatalf("Location = %q, want %q", got, "/auth/login")
	}
}

func TestIndexForbidsNonStaff(t *testing.T) {
	t.Parallel()

	store := &fakeStore{users: map[string]storage.User{
		"s1": {ID: "u1", Username: "ada"},
	}}
	handler := newTestHandler(t, store)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: sessioncookie.Name, Value: "s1"})
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusForbidden {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusForbidden)
	}
}

func TestIndexRendersChromeForStaff(t *testing.T) {
	t.Parallel()

	store := &fakeStore{users: map[string]storage.User{
		"s1": {ID: "u1", Username: "ada", IsStaff: true},
	}}
	handler := newTestHandler(t, store)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: sessioncookie.Name, Value: "s1"})
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	body := rec.Body.String()
	for _, want := range []string{
		branding.SiteName + " Admin",
		"Welcome to " + branding.SiteName + " Admin",
		branding.SiteName + " Admin Portal",
	} {
		if !strings.Contains(body, want) {
			t.Fatalf("body missing %q:\n%s", want, body)
		}
	}
}

func TestIndexExpiredSessionRedirects(t *testing.T) {
	t.Parallel()

	handler := newTestHandler(t, &fakeStore{})
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: sessioncookie.Name, Value: "gone"})
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusSeeOther)
	}
}
