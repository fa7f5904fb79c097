// Copyright 2026 The Drivelot Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"log/slog"
	"os"

	"golang.org/x/term"
)

// NewLogger creates a structured logger for command operations. When
// stderr is a terminal, uses slog.TextHandler for human-readable
// output. When stderr is piped or redirected (CI, scripts), uses
// slog.JSONHandler for machine-parseable output.
//
// Callers scope the logger with command-specific context via With():
//
//	logger := cli.NewLogger().With("command", "cars/add")
func NewLogger() *slog.Logger {
	var handler slog.Handler
	options := &slog.HandlerOptions{Level: slog.LevelInfo}
	if term.IsTerminal(int(os.Stderr.Fd())) {
		handler = slog.NewTextHandler(os.Stderr, options)
	} else {
		handler = slog.NewJSONHandler(os.Stderr, options)
	}
	return slog.New(handler)
}
