// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package session

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v5"

	"github.com/danielhkuo/claim-poster/models"
)

var (
	ErrInvalidToken = errors.New("invalid session token")
)

// Store persists the single process-wide session slot. The original page
// kept two localStorage entries (token and token type); here they live in a
// one-row table so the session survives restarts the same way.
type Store struct {
	db *sql.DB
}

// NewStore wraps an open database handle.
func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

// CreateSchema initializes the session table.
// Safe to call multiple times - uses IF NOT EXISTS.
func CreateSchema(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS session_slot (
			id INTEGER PRIMARY KEY CHECK (id = 1),
			token TEXT NOT NULL,
			token_type TEXT NOT NULL DEFAULT ''
		)
	`)
	if err != nil {
		return fmt.Errorf("failed to create session schema: %w", err)
	}
	return nil
}

// Set stores the token and token type, replacing any existing session.
func (s *Store) Set(token, tokenType string) error {
	_, err := s.db.Exec(`
		INSERT INTO session_slot (id, token, token_type)
		VALUES (1, ?, ?)
		ON CONFLICT (id) DO UPDATE SET token = excluded.token, token_type = excluded.token_type
	`, token, tokenType)
	if err != nil {
		return fmt.Errorf("failed to store session: %w", err)
	}
	return nil
}

// Get returns the current session. An absent session is not an error: the
// zero value (no token) is returned and Session.LoggedIn reports false.
func (s *Store) Get() (models.Session, error) {
	var sess models.Session
	err := s.db.QueryRow(`
		SELECT token, token_type FROM session_slot WHERE id = 1
	`).Scan(&sess.Token, &sess.TokenType)
	if err == sql.ErrNoRows {
		return models.Session{}, nil
	}
	if err != nil {
		return models.Session{}, fmt.Errorf("failed to read session: %w", err)
	}
	return sess, nil
}

// Clear removes the persisted session. Clearing an already-empty slot is a
// no-op.
func (s *Store) Clear() error {
	_, err := s.db.Exec(`DELETE FROM session_slot WHERE id = 1`)
	if err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}
	return nil
}

// Username extracts the display username embedded in a login token. The
// token is a JWT issued and verified by the remote API; locally it is only
// decoded, never verified, so no key material is needed. A token that does
// not parse is an invalid session and the caller is expected to Clear().
func Username(token string) (string, error) {
	parsed, _, err := jwt.NewParser().ParseUnverified(token, jwt.MapClaims{})
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return "", ErrInvalidToken
	}
	if username, ok := claims["username"].(string); ok && username != "" {
		return username, nil
	}
	// Token parsed but carries no username claim; mirror the page's
	// fallback display name rather than rejecting the session.
	return "User", nil
}
