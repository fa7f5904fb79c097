// Copyright 2026 The Drivelot Authors
// SPDX-License-Identifier: Apache-2.0

// Package ui is the drivelot view layer: a full-screen bubbletea
// application with one page per marketplace screen — home, browse,
// listing detail, new-listing form, profile, notifications, login,
// and register.
//
// The root [Model] owns the page models and the navigation between
// them. Every navigation to a protected page consults the route guard
// against the session store; a denied navigation lands on the login or
// home page instead, mirroring the redirect semantics of the web
// client this replaces.
//
// All state mutates on the bubbletea event loop. Network calls run as
// tea.Cmd goroutines and report back as messages carrying a fetch
// generation; a message whose generation no longer matches the owning
// page is stale (the page was re-entered or the selected listing
// changed while the request was in flight) and is discarded rather
// than applied.
//
// The browse page never filters, sorts, or paginates on its own: it
// holds the fetched records and the current query.Params and asks the
// query pipeline for the visible page on every change.
package ui
