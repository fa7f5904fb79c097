// Copyright 2026 The Drivelot Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/pflag"
	"golang.org/x/term"

	"github.com/drivelot/drivelot/cmd/drivelot/cli"
	"github.com/drivelot/drivelot/lib/api"
	"github.com/drivelot/drivelot/lib/session"
)

func loginCommand() *cli.Command {
	var configPath string
	var password string

	return &cli.Command{
		Name:    "login",
		Summary: "Authenticate and save the session locally",
		Description: `Log in to the marketplace.

Exchanges your credentials for a bearer token and stores it at
~/.config/drivelot/token (or $DRIVELOT_TOKEN_FILE). Later commands and
the interactive browser pick the session up automatically.`,
		Usage: "drivelot login <email>",
		Flags: func() *pflag.FlagSet {
			flags := pflag.NewFlagSet("login", pflag.ContinueOnError)
			flags.StringVar(&configPath, "config", "", "config file path")
			flags.StringVar(&password, "password", "", "password (prompted when omitted; flag intended for scripts)")
			return flags
		},
		Examples: []cli.Example{
			{Description: "Log in, prompting for the password", Command: "drivelot login you@example.com"},
		},
		Run: func(args []string) error {
			if len(args) != 1 {
				return fmt.Errorf("usage: drivelot login <email>")
			}
			email := args[0]

			app, err := newAppContext(configPath)
			if err != nil {
				return err
			}

			if password == "" {
				password, err = promptPassword("Password: ")
				if err != nil {
					return err
				}
			}

			ctx, cancel := app.requestContext()
			defer cancel()
			token, err := app.API.Login(ctx, api.Credentials{Email: email, Password: password})
			if err != nil {
				return err
			}
			if err := app.Session.Login(token); err != nil {
				return err
			}

			current := app.Session.Current()
			fmt.Printf("Logged in as %s", current.Email)
			if current.Role != "" {
				fmt.Printf(" (%s)", current.Role)
			}
			fmt.Println()
			return nil
		},
	}
}

func logoutCommand() *cli.Command {
	return &cli.Command{
		Name:    "logout",
		Summary: "Discard the saved session",
		Run: func(args []string) error {
			store := session.NewStore(session.TokenFilePath())
			if err := store.Logout(); err != nil {
				return err
			}
			fmt.Println("Logged out")
			return nil
		},
	}
}

func registerCommand() *cli.Command {
	var configPath string
	var name string
	var phone string
	var dealer bool
	var password string

	return &cli.Command{
		Name:    "register",
		Summary: "Create an account and log in",
		Description: `Register a new marketplace account.

New accounts are buyers (CONSUMER) unless --dealer is given. A
successful registration logs you in immediately.`,
		Usage: "drivelot register <email> --name <name> [--phone <phone>] [--dealer]",
		Flags: func() *pflag.FlagSet {
			flags := pflag.NewFlagSet("register", pflag.ContinueOnError)
			flags.StringVar(&configPath, "config", "", "config file path")
			flags.StringVar(&name, "name", "", "display name (required)")
			flags.StringVar(&phone, "phone", "", "contact phone number")
			flags.BoolVar(&dealer, "dealer", false, "register as a dealer (seller) account")
			flags.StringVar(&password, "password", "", "password (prompted when omitted)")
			return flags
		},
		Run: func(args []string) error {
			if len(args) != 1 {
				return fmt.Errorf("usage: drivelot register <email> --name <name>")
			}
			if name == "" {
				return fmt.Errorf("--name is required")
			}

			app, err := newAppContext(configPath)
			if err != nil {
				return err
			}

			if password == "" {
				password, err = promptPassword("Choose a password: ")
				if err != nil {
					return err
				}
			}

			role := session.RoleConsumer
			if dealer {
				role = session.RoleDealer
			}

			ctx, cancel := app.requestContext()
			defer cancel()
			token, err := app.API.Register(ctx, api.Registration{
				Name:     name,
				Email:    args[0],
				Phone:    phone,
				Password: password,
				Role:     role,
			})
			if err != nil {
				return err
			}
			if err := app.Session.Login(token); err != nil {
				return err
			}

			fmt.Printf("Registered and logged in as %s (%s)\n", args[0], role)
			return nil
		},
	}
}

func whoAmICommand() *cli.Command {
	return &cli.Command{
		Name:    "whoami",
		Summary: "Show the current session identity",
		Run: func(args []string) error {
			store := session.NewStore(session.TokenFilePath())
			if err := store.Restore(); err != nil {
				return err
			}
			current := store.Current()
			if current == nil {
				fmt.Println("Not logged in")
				return nil
			}
			fmt.Printf("%s", current.Email)
			if current.Role != "" {
				fmt.Printf(" (%s)", current.Role)
			}
			fmt.Println()
			return nil
		},
	}
}

// promptPassword reads a password without echo when stdin is a
// terminal, and falls back to a plain line read otherwise so the
// command still works under pipes.
func promptPassword(prompt string) (string, error) {
	fmt.Fprint(os.Stderr, prompt)
	if term.IsTerminal(int(os.Stdin.Fd())) {
		data, err := term.ReadPassword(int(os.Stdin.Fd()))
		fmt.Fprintln(os.Stderr)
		if err != nil {
			return "", fmt.Errorf("reading password: %w", err)
		}
		return string(data), nil
	}

	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil && line == "" {
		return "", fmt.Errorf("reading password: %w", err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}
