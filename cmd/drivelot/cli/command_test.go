// Copyright 2026 The Drivelot Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"strings"
	"testing"

	"github.com/spf13/pflag"
)

func TestExecuteDispatchesSubcommand(t *testing.T) {
	t.Parallel()

	var ran []string
	root := &Command{
		Name: "drivelot",
		Subcommands: []*Command{
			{
				Name: "cars",
				Subcommands: []*Command{
					{
						Name: "list",
						Run: func(args []string) error {
							ran = args
							return nil
						},
					},
				},
			},
		},
	}

	if err := root.Execute([]string{"cars", "list", "extra"}); err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if len(ran) != 1 || ran[0] != "extra" {
		t.Errorf("Run received %v, want [extra]", ran)
	}
}

func TestExecuteParsesFlags(t *testing.T) {
	t.Parallel()

	var search string
	var got []string
	command := &Command{
		Name: "list",
		Flags: func() *pflag.FlagSet {
			flags := pflag.NewFlagSet("list", pflag.ContinueOnError)
			flags.StringVar(&search, "search", "", "")
			return flags
		},
		Run: func(args []string) error {
			got = args
			return nil
		},
	}

	if err := command.Execute([]string{"--search", "corolla", "rest"}); err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if search != "corolla" {
		t.Errorf("search = %q, want %q", search, "corolla")
	}
	if len(got) != 1 || got[0] != "rest" {
		t.Errorf("positional args = %v, want [rest]", got)
	}
}

func TestExecuteUnknownFlagPointsAtHelp(t *testing.T) {
	t.Parallel()

	command := &Command{
		Name: "list",
		Flags: func() *pflag.FlagSet {
			return pflag.NewFlagSet("list", pflag.ContinueOnError)
		},
		Run: func(args []string) error { return nil },
	}

	err := command.Execute([]string{"--bogus"})
	if err == nil {
		t.Fatal("unknown flag accepted")
	}
	if !strings.Contains(err.Error(), "--help") {
		t.Errorf("error %q does not point at --help", err)
	}
}

func TestExecuteSuggestsCloseCommand(t *testing.T) {
	t.Parallel()

	root := &Command{
		Name: "drivelot",
		Subcommands: []*Command{
			{Name: "browse", Run: func(args []string) error { return nil }},
			{Name: "login", Run: func(args []string) error { return nil }},
		},
	}

	err := root.Execute([]string{"browze"})
	if err == nil {
		t.Fatal("unknown command accepted")
	}
	if !strings.Contains(err.Error(), `"browse"`) {
		t.Errorf("error %q does not suggest browse", err)
	}
}

func TestEditDistance(t *testing.T) {
	t.Parallel()

	tests := []struct {
		a, b string
		want int
	}{
		{"", "", 0},
		{"cars", "cars", 0},
		{"browze", "browse", 1},
		{"lgin", "login", 1},
		{"cars", "browse", 5},
	}
	for _, test := range tests {
		if got := editDistance(test.a, test.b); got != test.want {
			t.Errorf("editDistance(%q, %q) = %d, want %d", test.a, test.b, got, test.want)
		}
	}
}
