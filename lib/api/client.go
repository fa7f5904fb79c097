// Copyright 2026 The Drivelot Authors
// SPDX-License-Identifier: Apache-2.0

// Package api is the HTTP gateway to the marketplace backend: a single
// configured client that attaches the session's bearer token to every
// outbound request and forwards responses unchanged.
//
// The gateway deliberately does very little. It does not retry, does
// not cache, and does not transform response bodies; transport and
// server failures propagate to the caller wrapped with the operation
// name, with server-reported failures carried as a typed [*Error] so
// callers can branch on the status code (the TUI routes to login on
// 401). All real search, sort, and pagination over the fetched records
// happens client-side in the query package.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/drivelot/drivelot/lib/config"
	"github.com/drivelot/drivelot/lib/listing"
)

// TokenSource supplies the current bearer token, or "" when logged
// out. *session.Store satisfies it.
type TokenSource interface {
	Token() string
}

// Client is the configured HTTP gateway.
type Client struct {
	httpClient *http.Client
	baseURL    string
	authURL    string
	tokens     TokenSource
}

// New creates a gateway for the configured backend. Request deadlines
// come from the caller's context, not from the http.Client, so uploads
// and quick reads can use different budgets over one connection pool.
func New(server config.ServerConfig, tokens TokenSource) *Client {
	return &Client{
		httpClient: &http.Client{},
		baseURL:    strings.TrimRight(server.BaseURL, "/"),
		authURL:    strings.TrimRight(server.EffectiveAuthURL(), "/"),
		tokens:     tokens,
	}
}

// NewForTesting creates a gateway pointed at an httptest.Server.
func NewForTesting(baseURL string, tokens TokenSource) *Client {
	return &Client{
		httpClient: &http.Client{},
		baseURL:    strings.TrimRight(baseURL, "/"),
		authURL:    strings.TrimRight(baseURL, "/"),
		tokens:     tokens,
	}
}

// Error is a server-reported failure: the backend answered, but with a
// non-2xx status.
type Error struct {
	// StatusCode is the HTTP status the backend returned.
	StatusCode int

	// Body is the (bounded) response body, kept for diagnostics.
	Body string
}

func (e *Error) Error() string {
	body := strings.TrimSpace(e.Body)
	if body == "" {
		return fmt.Sprintf("HTTP %d", e.StatusCode)
	}
	return fmt.Sprintf("HTTP %d: %s", e.StatusCode, body)
}

// IsUnauthorized reports whether err is a server-reported 401. The view
// layer uses this to route to the login page when the stored token has
// gone stale.
func IsUnauthorized(err error) bool {
	var apiError *Error
	return errors.As(err, &apiError) && apiError.StatusCode == http.StatusUnauthorized
}

// Cars fetches all listings.
func (c *Client) Cars(ctx context.Context) ([]listing.Listing, error) {
	var result []listing.Listing
	if err := c.getJSON(ctx, c.baseURL+"/cars", &result); err != nil {
		return nil, fmt.Errorf("list cars: %w", err)
	}
	return result, nil
}

// Car fetches a single listing with its embedded seller fields.
func (c *Client) Car(ctx context.Context, id string) (*listing.Listing, error) {
	var result listing.Listing
	if err := c.getJSON(ctx, c.baseURL+"/cars/"+id, &result); err != nil {
		return nil, fmt.Errorf("get car %s: %w", id, err)
	}
	return &result, nil
}

// Notifications fetches the user's notifications. Requires a session.
func (c *Client) Notifications(ctx context.Context) ([]listing.Notification, error) {
	var result []listing.Notification
	if err := c.getJSON(ctx, c.baseURL+"/users/notifications", &result); err != nil {
		return nil, fmt.Errorf("list notifications: %w", err)
	}
	return result, nil
}

// getJSON performs an authenticated GET and decodes the JSON response.
func (c *Client) getJSON(ctx context.Context, url string, v any) error {
	request, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	return c.doJSON(request, v)
}

// doJSON sends the request with the bearer token attached and decodes
// a 2xx JSON response into v. Non-2xx responses become a *Error.
func (c *Client) doJSON(request *http.Request, v any) error {
	c.authorize(request)

	response, err := c.httpClient.Do(request)
	if err != nil {
		return err
	}
	defer response.Body.Close()

	if response.StatusCode < 200 || response.StatusCode > 299 {
		return &Error{StatusCode: response.StatusCode, Body: errorBody(response.Body)}
	}
	if v == nil {
		return nil
	}
	if err := decodeResponse(response.Body, v); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	return nil
}

// authorize attaches the bearer token when one is present. Requests
// from a logged-out client go out with no Authorization header at all.
func (c *Client) authorize(request *http.Request) {
	if c.tokens == nil {
		return
	}
	if token := c.tokens.Token(); token != "" {
		request.Header.Set("Authorization", "Bearer "+token)
	}
}

// postJSON performs a POST with a JSON body and decodes the response.
func (c *Client) postJSON(ctx context.Context, url string, body, v any) error {
	encoded, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("encoding request body: %w", err)
	}
	request, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(encoded))
	if err != nil {
		return err
	}
	request.Header.Set("Content-Type", "application/json")
	return c.doJSON(request, v)
}

// maxResponseSize bounds JSON response body reads: 64 MB. Legitimate
// responses are far smaller; the bound only guards against a
// misbehaving server exhausting memory.
const maxResponseSize int64 = 64 << 20

// decodeResponse reads a response body up to maxResponseSize bytes and
// JSON-decodes it into v.
func decodeResponse(body io.Reader, v any) error {
	data, err := io.ReadAll(io.LimitReader(body, maxResponseSize))
	if err != nil {
		return fmt.Errorf("reading response body: %w", err)
	}
	return json.Unmarshal(data, v)
}

// errorBody reads an error response body for diagnostics. Read errors
// are ignored — a partial body is still useful in an error message.
func errorBody(body io.Reader) string {
	data, _ := io.ReadAll(io.LimitReader(body, maxResponseSize))
	return string(data)
}
