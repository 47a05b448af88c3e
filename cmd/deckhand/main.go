// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Deckhand is an MCP server that builds PowerPoint presentations for
// an agent and serves the finished files over local HTTP.
package main

import (
	"fmt"
	"os"

	"github.com/bureau-foundation/deckhand/cmd/deckhand/commands"
)

func main() {
	if err := run(); err != nil {
		// Commands that already reported their failure (replay) return
		// an ExitError carrying the exit code.
		if coder, ok := err.(interface{ ExitCode() int }); ok {
			os.Exit(coder.ExitCode())
		}
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	return commands.Root().Execute(os.Args[1:])
}
