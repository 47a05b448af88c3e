// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/bureau-foundation/deckhand/cmd/deckhand/cli"
)

func toolsCommand() *cli.Command {
	return &cli.Command{
		Name:    "tools",
		Summary: "Print the tool catalog with input and output schemas as JSON",
		Run: func(args []string) error {
			if len(args) > 0 {
				return fmt.Errorf("unexpected argument: %s", args[0])
			}
			// The catalog never runs a tool, so nothing is published.
			server, err := newToolServer(nil, "", slog.New(slog.DiscardHandler))
			if err != nil {
				return err
			}
			return cli.WriteJSON(os.Stdout, server.Tools())
		},
	}
}
