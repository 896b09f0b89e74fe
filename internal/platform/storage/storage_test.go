package storage

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "site.sqlite3"))
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestOpenRequiresPath(t *testing.T) {
	t.Parallel()

	if _, err := Open("  "); err == nil {
		t.Fatal("expected error for empty path")
	}
}

func TestCreateUserAndAuthenticate(t *testing.T) {
	t.Parallel()

	store := openTestStore(t)
	ctx := context.Background()

	user, err := store.CreateUser(ctx, "maya", "maya@example.com", "letmein", false)
	if err != nil {
		t.Fatalf("CreateUser() error = %v", err)
	}
	if user.ID == "" {
		t.Fatal("expected user id")
	}

	cases := []string{"maya", "MAYA", "maya@example.com", "Maya@Example.COM"}
	for _, login := range cases {
		got, err := store.Authenticate(ctx, login, "letmein")
		if err != nil {
			t.Fatalf("Authenticate(%q) error = %v", login, err)
		}
		if got.ID != user.ID {
			t.Fatalf("Authenticate(%q) user = %q, want %q", login, got.ID, user.ID)
		}
	}
}

func TestAuthenticateRejectsBadCredentials(t *testing.T) {
	t.Parallel()

	store := openTestStore(t)
	ctx := context.Background()

	if _, err := store.CreateUser(ctx, "maya", "maya@example.com", "letmein", false); err != nil {
		t.Fatalf("CreateUser() error = %v", err)
	}

	if _, err := store.Authenticate(ctx, "maya", "wrong"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("wrong password error = %v, want ErrInvalidCredentials", err)
	}
	if _, err := store.Authenticate(ctx, "nobody", "letmein"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("unknown login error = %v, want ErrInvalidCredentials", err)
	}
	if _, err := store.Authenticate(ctx, "", ""); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("empty credentials error = %v, want ErrInvalidCredentials", err)
	}
}

func TestSessionRoundTrip(t *testing.T) {
	t.Parallel()

	store := openTestStore(t)
	ctx := context.Background()

	user, err := store.CreateUser(ctx, "maya", "maya@example.com", "letmein", true)
	if err != nil {
		t.Fatalf("CreateUser() error = %v", err)
	}

	session, err := store.CreateSession(ctx, user.ID, 0)
	if err != nil {
		t.Fatalf("CreateSession() error = %v", err)
	}
	if session.ID == "" {
		t.Fatal("expected session id")
	}

	got, err := store.SessionUser(ctx, session.ID)
	if err != nil {
		t.Fatalf("SessionUser() error = %v", err)
	}
	if got.ID != user.ID {
		t.Fatalf("SessionUser() user = %q, want %q", got.ID, user.ID)
	}
	if !got.IsStaff {
		t.Fatal("expected staff flag to round-trip")
	}

	if err := store.DeleteSession(ctx, session.ID); err != nil {
		t.Fatalf("DeleteSession() error = %v", err)
	}
	if _, err := store.SessionUser(ctx, session.ID); !errors.Is(err, ErrNoSession) {
		t.Fatalf("deleted session error = %v, want ErrNoSession", err)
	}
}

func TestExpiredSessionIsRejectedAndPurged(t *testing.T) {
	t.Parallel()

	store := openTestStore(t)
	ctx := context.Background()

	user, err := store.CreateUser(ctx, "maya", "maya@example.com", "letmein", false)
	if err != nil {
		t.Fatalf("CreateUser() error = %v", err)
	}
	session, err := store.CreateSession(ctx, user.ID, time.Millisecond)
	if err != nil {
		t.Fatalf("CreateSession() error = %v", err)
	}

	time.Sleep(5 * time.Millisecond)

	if _, err := store.SessionUser(ctx, session.ID); !errors.Is(err, ErrNoSession) {
		t.Fatalf("expired session error = %v, want ErrNoSession", err)
	}
}

func TestPurgeExpiredSessions(t *testing.T) {
	t.Parallel()

	store := openTestStore(t)
	ctx := context.Background()

	user, err := store.CreateUser(ctx, "maya", "maya@example.com", "letmein", false)
	if err != nil {
		t.Fatalf("CreateUser() error = %v", err)
	}
	if _, err := store.CreateSession(ctx, user.ID, time.Millisecond); err != nil {
		t.Fatalf("CreateSession() error = %v", err)
	}
	if _, err := store.CreateSession(ctx, user.ID, time.Hour); err != nil {
		t.Fatalf("CreateSession() error = %v", err)
	}

	time.Sleep(5 * time.Millisecond)

	purged, err := store.PurgeExpiredSessions(ctx)
	if err != nil {
		t.Fatalf("PurgeExpiredSessions() error = %v", err)
	}
	if purged != 1 {
		t.Fatalf("purged = %d, want 1", purged)
	}
}

func TestUserByID(t *testing.T) {
	t.Parallel()

	store := openTestStore(t)
	ctx := context.Background()

	user, err := store.CreateUser(ctx, "maya", "maya@example.com", "letmein", false)
	if err != nil {
		t.Fatalf("CreateUser() error = %v", err)
	}
	got, err := store.UserByID(ctx, user.ID)
	if err != nil {
		t.Fatalf("UserByID() error = %v", err)
	}
	if got.Username != "maya" || got.Email != "maya@example.com" {
		t.Fatalf("UserByID() = %+v", got)
	}
	if _, err := store.UserByID(ctx, "missing"); err == nil {
		t.Fatal("expected error for unknown user id")
	}
}
