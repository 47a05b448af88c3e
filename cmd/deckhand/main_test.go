// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"strings"
	"testing"

	"github.com/bureau-foundation/deckhand/cmd/deckhand/cli"
	"github.com/bureau-foundation/deckhand/cmd/deckhand/commands"
	"github.com/bureau-foundation/deckhand/cmd/deckhand/tools"
	"github.com/bureau-foundation/deckhand/lib/registry"
	"github.com/bureau-foundation/deckhand/lib/testutil"
)

// TestCommandTree checks that every subcommand is documented and
// either runs or groups further subcommands.
func TestCommandTree(t *testing.T) {
	walkCommands(commands.Root(), nil, func(command *cli.Command, path []string) {
		name := strings.Join(path, " ")
		if len(path) > 1 && command.Summary == "" {
			t.Errorf("%s: missing Summary", name)
		}
		if command.Run == nil && len(command.Subcommands) == 0 {
			t.Errorf("%s: neither runs nor has subcommands", name)
		}
	})
}

// TestToolAnnotations checks that every tool tells clients whether it
// is read-only or destructive.
func TestToolAnnotations(t *testing.T) {
	list := tools.List(tools.Dependencies{Registry: registry.New(), Logger: testutil.Logger(t)})
	for _, tool := range list {
		if tool.Annotations == nil {
			t.Errorf("%s: missing Annotations", tool.Name)
		}
		if tool.Description == "" {
			t.Errorf("%s: missing Description", tool.Name)
		}
	}
}

func walkCommands(command *cli.Command, path []string, visit func(*cli.Command, []string)) {
	current := append(append([]string(nil), path...), command.Name)
	visit(command, current)
	for _, sub := range command.Subcommands {
		walkCommands(sub, current, visit)
	}
}
