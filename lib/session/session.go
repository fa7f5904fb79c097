// Copyright 2026 The Drivelot Authors
// SPDX-License-Identifier: Apache-2.0

// Package session holds the client's authentication state: a bearer
// token persisted to a file, and the identity decoded from it.
//
// The token file is the only durable client state. The session itself
// is never persisted; it is recomputed from the token on every restore,
// so the two can't drift apart. Decoding extracts claims without
// verifying the signature or expiry — the client trusts the backend to
// reject stale or forged tokens on every request. A token that doesn't
// decode at all is treated as logged out and reported as an error,
// never silently turned into a session.
//
// The store is an explicit object handed to its consumers (gateway,
// route guard, view layer) rather than ambient global state, so tests
// can construct one against a temp directory.
package session

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/golang-jwt/jwt/v5"
)

// Role is the account role claim carried in the token.
type Role string

const (
	// RoleConsumer is a buyer account.
	RoleConsumer Role = "CONSUMER"
	// RoleDealer is a seller account.
	RoleDealer Role = "DEALER"
)

// Session is the identity decoded from the current bearer token.
type Session struct {
	// Email is the token's subject claim.
	Email string

	// Role is the account role, or empty when the token carries none.
	Role Role
}

// Store owns the token file and the session derived from it. Methods
// are safe for concurrent use: the UI thread mutates via Login/Logout
// while fetch goroutines read the token.
type Store struct {
	path string

	mutex   sync.RWMutex
	token   string
	current *Session
}

// TokenFilePath returns the path of the token file. Checks the
// DRIVELOT_TOKEN_FILE environment variable first, then falls back to
// ~/.config/drivelot/token (honoring XDG_CONFIG_HOME).
func TokenFilePath() string {
	if envPath := os.Getenv("DRIVELOT_TOKEN_FILE"); envPath != "" {
		return envPath
	}

	configDirectory := os.Getenv("XDG_CONFIG_HOME")
	if configDirectory == "" {
		homeDirectory, err := os.UserHomeDir()
		if err != nil {
			// Fallback — this should rarely happen.
			return filepath.Join("/tmp", "drivelot-token")
		}
		configDirectory = filepath.Join(homeDirectory, ".config")
	}
	return filepath.Join(configDirectory, "drivelot", "token")
}

// NewStore creates a store over the given token file path. Nothing is
// read until Restore is called.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// ErrNotLoggedIn is returned by operations that require a session when
// none is present.
var ErrNotLoggedIn = errors.New("not logged in — run \"drivelot login\" first")

// Restore reads the token file and decodes it into the current session.
// Called once at process start. A missing file is not an error: the
// store is simply logged out. A file that exists but doesn't decode
// leaves the store logged out and returns the decode error.
func (s *Store) Restore() error {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("reading token file %s: %w", s.path, err)
	}

	token := strings.TrimSpace(string(data))
	if token == "" {
		return nil
	}

	session, err := decodeClaims(token)
	if err != nil {
		return fmt.Errorf("token file %s: %w", s.path, err)
	}

	s.mutex.Lock()
	s.token = token
	s.current = session
	s.mutex.Unlock()
	return nil
}

// Login decodes the token, and only if that succeeds persists it and
// installs the session. The token file is written with mode 0600 and
// its parent directory created with mode 0700, since the token proves
// the user's identity.
func (s *Store) Login(token string) error {
	session, err := decodeClaims(token)
	if err != nil {
		return err
	}

	directory := filepath.Dir(s.path)
	if err := os.MkdirAll(directory, 0700); err != nil {
		return fmt.Errorf("creating token directory %s: %w", directory, err)
	}
	if err := os.WriteFile(s.path, []byte(token+"\n"), 0600); err != nil {
		return fmt.Errorf("writing token file %s: %w", s.path, err)
	}

	s.mutex.Lock()
	s.token = token
	s.current = session
	s.mutex.Unlock()
	return nil
}

// Logout removes the token file and clears the session. Logging out
// while already logged out is not an error.
func (s *Store) Logout() error {
	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("removing token file %s: %w", s.path, err)
	}

	s.mutex.Lock()
	s.token = ""
	s.current = nil
	s.mutex.Unlock()
	return nil
}

// Current returns the session, or nil when logged out.
func (s *Store) Current() *Session {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return s.current
}

// Token returns the raw bearer token, or "" when logged out. The HTTP
// gateway reads this on every request.
func (s *Store) Token() string {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return s.token
}

// decodeClaims extracts the identity claims from a JWT without
// verifying its signature or expiry. Verification is the backend's job:
// every API request carries the token and gets rejected server-side if
// it is stale or forged.
func decodeClaims(token string) (*Session, error) {
	parsed, _, err := jwt.NewParser().ParseUnverified(token, jwt.MapClaims{})
	if err != nil {
		return nil, fmt.Errorf("decoding token: %w", err)
	}

	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return nil, errors.New("decoding token: unexpected claims type")
	}

	email, err := claims.GetSubject()
	if err != nil {
		return nil, fmt.Errorf("decoding token subject: %w", err)
	}

	session := &Session{Email: email}
	if role, ok := claims["role"].(string); ok {
		session.Role = Role(role)
	}
	return session, nil
}
