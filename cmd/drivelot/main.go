// Copyright 2026 The Drivelot Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"
	"os"

	"github.com/drivelot/drivelot/cmd/drivelot/commands"
)

func main() {
	if err := commands.Root().Execute(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
