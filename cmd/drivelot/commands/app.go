// Copyright 2026 The Drivelot Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/drivelot/drivelot/cmd/drivelot/cli"
	"github.com/drivelot/drivelot/lib/api"
	"github.com/drivelot/drivelot/lib/config"
	"github.com/drivelot/drivelot/lib/session"
)

// appContext is the wiring every command needs: configuration, the
// restored session store, and the configured HTTP gateway.
type appContext struct {
	Config  *config.Config
	Session *session.Store
	API     *api.Client
	Logger  *slog.Logger
}

// newAppContext loads configuration, restores the session from the
// token file, and builds the gateway. A token file that fails to decode
// logs a warning and starts logged out rather than failing the command;
// browsing works without a session.
func newAppContext(configPath string) (*appContext, error) {
	logger := cli.NewLogger()

	var cfg *config.Config
	var err error
	if configPath != "" {
		cfg, err = config.LoadFile(configPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	store := session.NewStore(session.TokenFilePath())
	if err := store.Restore(); err != nil {
		logger.Warn("stored session is unusable, starting logged out", "error", err)
	}

	return &appContext{
		Config:  cfg,
		Session: store,
		API:     api.New(cfg.Server, store),
		Logger:  logger,
	}, nil
}

// requestContext returns a context bounded by the configured request
// timeout.
func (a *appContext) requestContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), a.Config.Server.RequestTimeout())
}

// uploadContext returns a context bounded by the configured upload
// timeout.
func (a *appContext) uploadContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), a.Config.Server.UploadRequestTimeout())
}

// requireSession fails fast for commands that need authentication, so
// the user gets "not logged in" instead of a backend 401.
func (a *appContext) requireSession() error {
	if a.Session.Current() == nil {
		return session.ErrNotLoggedIn
	}
	return nil
}
