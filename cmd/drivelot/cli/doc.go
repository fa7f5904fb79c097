// Copyright 2026 The Drivelot Authors
// SPDX-License-Identifier: Apache-2.0

// Package cli is the small command framework behind the drivelot
// binary: a [Command] tree dispatched over pflag flag sets, with
// structured help, typo suggestions, and a terminal-aware slog logger.
//
// It exists so that the command definitions in cmd/drivelot/commands
// stay declarative — name, summary, flags, run function — while
// parsing, help formatting, and error wording live in one place.
package cli
