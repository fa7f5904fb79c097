// Copyright 2026 The Drivelot Authors
// SPDX-License-Identifier: Apache-2.0

// Package commands builds the drivelot CLI command tree. The default
// command launches the full-screen browser; the rest are one-shot
// commands for scripting and quick lookups.
package commands

import (
	"fmt"

	"github.com/drivelot/drivelot/cmd/drivelot/cli"
	"github.com/drivelot/drivelot/lib/version"
)

// Root builds and returns the complete drivelot CLI command tree.
func Root() *cli.Command {
	return &cli.Command{
		Name: "drivelot",
		Description: `Drivelot: a car marketplace client.

Browse listings, list your own car for sale, and manage your account,
either interactively (drivelot browse) or with one-shot commands.`,
		Subcommands: []*cli.Command{
			browseCommand(),
			carsCommand(),
			loginCommand(),
			logoutCommand(),
			registerCommand(),
			whoAmICommand(),
			notificationsCommand(),
			profileCommand(),
			{
				Name:    "version",
				Summary: "Print version information",
				Run: func(args []string) error {
					fmt.Printf("drivelot %s\n", version.Full())
					return nil
				},
			},
		},
		Examples: []cli.Example{
			{
				Description: "Open the interactive browser",
				Command:     "drivelot browse",
			},
			{
				Description: "Log in (prompts for the password)",
				Command:     "drivelot login you@example.com",
			},
			{
				Description: "List all cars for sale",
				Command:     "drivelot cars list",
			},
			{
				Description: "Show one listing, seller details included",
				Command:     "drivelot cars show 42",
			},
			{
				Description: "List a car for sale with two photos",
				Command:     "drivelot cars add --make Toyota --model Corolla --year 2019 --price 15000 --image front.jpg --image side.jpg",
			},
		},
	}
}
