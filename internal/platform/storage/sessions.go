package storage

import (
	"context"
	"crypto/rand"
	"database/sql"
	"encoding/hex"
	"errors"
	"fmt"
	"time"
)

// DefaultSessionTTL matches the framework-conventional two week session age.
const DefaultSessionTTL = 14 * 24 * time.Hour

// ErrNoSession is returned when a session id is unknown or expired.
var ErrNoSession = errors.New("session not found")

// Session binds a browser cookie to a user until it expires.
type Session struct {
	ID        string
	UserID    string
	CreatedAt time.Time
	ExpiresAt time.Time
}

// CreateSession issues a new session for a user.
func (s *Store) CreateSession(ctx context.Context, userID string, ttl time.Duration) (Session, error) {
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}

	raw := make([]byte, 32)
	if _, err := rand.Read(raw); err != nil {
		return Session{}, fmt.Errorf("generate session id: %w", err)
	}

	now := time.Now().UTC()
	session := Session{
		ID:        hex.EncodeToString(raw),
		UserID:    userID,
		CreatedAt: now,
		ExpiresAt: now.Add(ttl),
	}
	_, err := s.sqlDB.ExecContext(ctx, `
INSERT INTO sessions (id, user_id, created_at, expires_at)
VALUES (?, ?, ?, ?)`,
		session.ID, session.UserID, toMillis(session.CreatedAt), toMillis(session.ExpiresAt),
	)
	if err != nil {
		return Session{}, fmt.Errorf("insert session: %w", err)
	}
	return session, nil
}

// SessionUser resolves the user behind a live session. Expired sessions are
// deleted on sight.
func (s *Store) SessionUser(ctx context.Context, sessionID string) (User, error) {
	if sessionID == "" {
		return User{}, ErrNoSession
	}

	row := s.sqlDB.QueryRowContext(ctx, `
SELECT u.id, u.username, u.email, u.is_staff, u.created_at, u.updated_at, s.expires_at
FROM sessions s
JOIN users u ON u.id = s.user_id
WHERE s.id = ?`,
		sessionID,
	)

	var (
		user      User
		staff     int
		createdAt int64
		updatedAt int64
		expiresAt int64
	)
	err := row.Scan(&user.ID, &user.Username, &user.Email, &staff, &createdAt, &updatedAt, &expiresAt)
	if errors.Is(err, sql.ErrNoRows) {
		return User{}, ErrNoSession
	}
	if err != nil {
		return User{}, fmt.Errorf("query session: %w", err)
	}

	if fromMillis(expiresAt).Before(time.Now().UTC()) {
		_ = s.DeleteSession(ctx, sessionID)
		return User{}, ErrNoSession
	}

	user.IsStaff = staff != 0
	user.CreatedAt = fromMillis(createdAt)
	user.UpdatedAt = fromMillis(updatedAt)
	return user, nil
}

// DeleteSession removes a session, signing its owner out.
func (s *Store) DeleteSession(ctx context.Context, sessionID string) error {
	if _, err := s.sqlDB.ExecContext(ctx, "DELETE FROM sessions WHERE id = ?", sessionID); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

// PurgeExpiredSessions removes sessions past their expiry and reports how
// many were dropped.
func (s *Store) PurgeExpiredSessions(ctx context.Context) (int64, error) {
	res, err := s.sqlDB.ExecContext(ctx,
		"DELETE FROM sessions WHERE expires_at < ?", toMillis(time.Now().UTC()),
	)
	if err != nil {
		return 0, fmt.Errorf("purge sessions: %w", err)
	}
	return res.RowsAffected()
}
