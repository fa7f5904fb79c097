// Copyright 2026 The Drivelot Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"github.com/spf13/pflag"

	"github.com/drivelot/drivelot/cmd/drivelot/cli"
	"github.com/drivelot/drivelot/lib/ui"
)

func browseCommand() *cli.Command {
	var configPath string

	return &cli.Command{
		Name:    "browse",
		Summary: "Open the interactive marketplace browser",
		Description: `Open the full-screen marketplace browser.

Browse and search listings, open details, list a car for sale, and
manage your account without leaving the terminal. Browsing works
logged out; listing a car and the account pages need a session.`,
		Flags: func() *pflag.FlagSet {
			flags := pflag.NewFlagSet("browse", pflag.ContinueOnError)
			flags.StringVar(&configPath, "config", "", "config file path")
			return flags
		},
		Run: func(args []string) error {
			app, err := newAppContext(configPath)
			if err != nil {
				return err
			}

			return ui.Run(&ui.App{
				Session:        app.Session,
				API:            app.API,
				RequestTimeout: app.Config.Server.RequestTimeout(),
				UploadTimeout:  app.Config.Server.UploadRequestTimeout(),
				Theme:          ui.DefaultTheme,
				Keys:           ui.DefaultKeyMap,
			})
		},
	}
}
