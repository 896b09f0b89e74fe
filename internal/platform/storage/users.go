package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// ErrInvalidCredentials is returned for unknown logins and wrong passwords
// alike, so callers cannot distinguish the two.
var ErrInvalidCredentials = errors.New("invalid credentials")

// dummyHash keeps the password check cost roughly constant when the login
// name matches no user.
var dummyHash, _ = bcrypt.GenerateFromPassword([]byte("playhouse-timing-pad"), bcrypt.DefaultCost)

// User is a site account.
type User struct {
	ID        string
	Username  string
	Email     string
	IsStaff   bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// CreateUser stores a new account with a bcrypt password hash.
func (s *Store) CreateUser(ctx context.Context, username, email, password string, staff bool) (User, error) {
	username = strings.TrimSpace(username)
	email = strings.TrimSpace(email)
	if username == "" || email == "" {
		return User{}, fmt.Errorf("username and email are required")
	}
	if password == "" {
		return User{}, fmt.Errorf("password is required")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return User{}, fmt.Errorf("hash password: %w", err)
	}

	now := time.Now().UTC()
	user := User{
		ID:        uuid.NewString(),
		Username:  username,
		Email:     email,
		IsStaff:   staff,
		CreatedAt: now,
		UpdatedAt: now,
	}
	_, err = s.sqlDB.ExecContext(ctx, `
INSERT INTO users (id, username, email, password_hash, is_staff, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?)`,
		user.ID, user.Username, user.Email, string(hash), boolToInt(staff), toMillis(now), toMillis(now),
	)
	if err != nil {
		return User{}, fmt.Errorf("insert user: %w", err)
	}
	return user, nil
}

// Authenticate verifies a password against the account matching the login by
// username or email, case-insensitively. A miss costs about as much as a hit.
func (s *Store) Authenticate(ctx context.Context, login, password string) (User, error) {
	login = strings.TrimSpace(login)
	if login == "" || password == "" {
		return User{}, ErrInvalidCredentials
	}

	row := s.sqlDB.QueryRowContext(ctx, `
SELECT id, username, email, password_hash, is_staff, created_at, updated_at
FROM users
WHERE username = ?1 OR email = ?1`,
		login,
	)

	var (
		user      User
		hash      string
		staff     int
		createdAt int64
		updatedAt int64
	)
	err := row.Scan(&user.ID, &user.Username, &user.Email, &hash, &staff, &createdAt, &updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(password))
		return User{}, ErrInvalidCredentials
	}
	if err != nil {
		return User{}, fmt.Errorf("query user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)); err != nil {
		return User{}, ErrInvalidCredentials
	}

	user.IsStaff = staff != 0
	user.CreatedAt = fromMillis(createdAt)
	user.UpdatedAt = fromMillis(updatedAt)
	return user, nil
}

// UserByID fetches a user record.
func (s *Store) UserByID(ctx context.Context, id string) (User, error) {
	row := s.sqlDB.QueryRowContext(ctx, `
SELECT id, username, email, is_staff, created_at, updated_at
FROM users
WHERE id = ?`,
		id,
	)

	var (
		user      User
		staff     int
		createdAt int64
		updatedAt int64
	)
	err := row.Scan(&user.ID, &user.Username, &user.Email, &staff, &createdAt, &updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return User{}, fmt.Errorf("user %s not found", id)
	}
	if err != nil {
		return User{}, fmt.Errorf("query user: %w", err)
	}

	user.IsStaff = staff != 0
	user.CreatedAt = fromMillis(createdAt)
	user.UpdatedAt = fromMillis(updatedAt)
	return user, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
