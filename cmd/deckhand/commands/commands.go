// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package commands builds the deckhand command tree: serve (the MCP
// server and its file server), replay (run a JSONC script of tool
// calls offline), tools (print the tool catalog) and version.
package commands

import (
	"fmt"
	"os"

	"github.com/bureau-foundation/deckhand/cmd/deckhand/cli"
	"github.com/bureau-foundation/deckhand/lib/version"
)

// Root builds and returns the complete deckhand command tree.
func Root() *cli.Command {
	return &cli.Command{
		Name: "deckhand",
		Description: `Deckhand: build PowerPoint decks over the Model Context Protocol.

An agent creates a presentation, adds slides, text, tables, shapes and
charts, then asks for a download link served from this machine.`,
		Subcommands: []*cli.Command{
			serveCommand(),
			replayCommand(),
			toolsCommand(),
			{
				Name:    "version",
				Summary: "Print version information",
				Run: func(args []string) error {
					fmt.Fprintf(os.Stdout, "deckhand %s\n", version.Full())
					return nil
				},
			},
		},
		Examples: []cli.Example{
			{Description: "Run the MCP server (stdio) with the default file server port range", Command: "deckhand serve"},
			{Description: "Replay a recorded script into ./decks", Command: "deckhand replay demo.jsonc --output-dir ./decks"},
		},
	}
}
