// Copyright 2026 The Drivelot Authors
// SPDX-License-Identifier: Apache-2.0

// Package guard decides whether a protected view may render for the
// current session. It holds no state of its own: callers re-evaluate
// the predicate against the session store on every navigation.
package guard

import (
	"slices"

	"github.com/drivelot/drivelot/lib/session"
)

// Decision is the outcome of a guard check.
type Decision int

const (
	// Permit renders the guarded view.
	Permit Decision = iota
	// RedirectLogin sends an unauthenticated user to the login view.
	RedirectLogin
	// RedirectHome sends an authenticated user whose role isn't
	// allowed back to the home view.
	RedirectHome
)

// Check evaluates the guard for a view requiring one of the given
// roles. An empty role set only requires a session. A nil session
// always redirects to login; a session with the wrong role redirects
// home rather than to login — the user is known, just not allowed.
func Check(current *session.Session, required ...session.Role) Decision {
	if current == nil {
		return RedirectLogin
	}
	if len(required) > 0 && !slices.Contains(required, current.Role) {
		return RedirectHome
	}
	return Permit
}
