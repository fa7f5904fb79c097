// Copyright 2026 The Drivelot Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"fmt"

	"github.com/spf13/pflag"

	"github.com/drivelot/drivelot/cmd/drivelot/cli"
)

func notificationsCommand() *cli.Command {
	var configPath string

	return &cli.Command{
		Name:    "notifications",
		Summary: "Show your notifications",
		Flags: func() *pflag.FlagSet {
			flags := pflag.NewFlagSet("notifications", pflag.ContinueOnError)
			flags.StringVar(&configPath, "config", "", "config file path")
			return flags
		},
		Run: func(args []string) error {
			app, err := newAppContext(configPath)
			if err != nil {
				return err
			}
			if err := app.requireSession(); err != nil {
				return err
			}

			ctx, cancel := app.requestContext()
			defer cancel()
			notifications, err := app.API.Notifications(ctx)
			if err != nil {
				return err
			}

			if len(notifications) == 0 {
				fmt.Println("No notifications.")
				return nil
			}
			for _, notification := range notifications {
				fmt.Printf("%s\n  %s\n", notification.Title, notification.Message)
			}
			return nil
		},
	}
}

func profileCommand() *cli.Command {
	var configPath string
	var name string
	var avatarPath string

	update := &cli.Command{
		Name:    "update",
		Summary: "Update your display name and avatar",
		Usage:   "drivelot profile update --name <name> [--avatar <file>]",
		Flags: func() *pflag.FlagSet {
			flags := pflag.NewFlagSet("update", pflag.ContinueOnError)
			flags.StringVar(&configPath, "config", "", "config file path")
			flags.StringVar(&name, "name", "", "new display name (required)")
			flags.StringVar(&avatarPath, "avatar", "", "avatar image file to upload")
			return flags
		},
		Run: func(args []string) error {
			if name == "" {
				return fmt.Errorf("--name is required")
			}

			app, err := newAppContext(configPath)
			if err != nil {
				return err
			}
			if err := app.requireSession(); err != nil {
				return err
			}

			ctx, cancel := app.uploadContext()
			defer cancel()
			updated, err := app.API.UpdateProfile(ctx, name, avatarPath)
			if err != nil {
				return err
			}

			fmt.Printf("Profile updated: %s\n", updated.Name)
			return nil
		},
	}

	return &cli.Command{
		Name:        "profile",
		Summary:     "Manage your account profile",
		Subcommands: []*cli.Command{update},
	}
}
