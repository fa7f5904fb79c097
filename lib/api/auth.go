// Copyright 2026 The Drivelot Authors
// SPDX-License-Identifier: Apache-2.0

package api

import (
	"context"
	"fmt"

	"github.com/drivelot/drivelot/lib/session"
)

// Credentials is the login request body for the auth service.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Registration is the account-creation request body. Role defaults to
// CONSUMER when left empty.
type Registration struct {
	Name     string       `json:"name"`
	Email    string       `json:"email"`
	Password string       `json:"password"`
	Phone    string       `json:"phone,omitempty"`
	Role     session.Role `json:"role"`
}

// tokenResponse is the auth service's reply to login and register:
// token issuance is entirely the backend's business, the client only
// carries the string away.
type tokenResponse struct {
	Token string `json:"token"`
}

// Login exchanges credentials for a bearer token at the auth service.
func (c *Client) Login(ctx context.Context, credentials Credentials) (string, error) {
	var result tokenResponse
	if err := c.postJSON(ctx, c.authURL+"/auth/login", credentials, &result); err != nil {
		return "", fmt.Errorf("login: %w", err)
	}
	if result.Token == "" {
		return "", fmt.Errorf("login: empty token in response")
	}
	return result.Token, nil
}

// Register creates an account and returns the bearer token the auth
// service issues for it, so a fresh registration is immediately logged
// in.
func (c *Client) Register(ctx context.Context, registration Registration) (string, error) {
	if registration.Role == "" {
		registration.Role = session.RoleConsumer
	}
	var result tokenResponse
	if err := c.postJSON(ctx, c.authURL+"/auth/register", registration, &result); err != nil {
		return "", fmt.Errorf("register: %w", err)
	}
	if result.Token == "" {
		return "", fmt.Errorf("register: empty token in response")
	}
	return result.Token, nil
}
