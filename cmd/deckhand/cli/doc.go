// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package cli provides the command-line framework and the tool
// parameter machinery shared by the deckhand binary.
//
// The central CLI type is [Command]: a named subcommand with optional
// nested [Command.Subcommands], a [pflag.FlagSet] factory, and a Run
// function. Unknown subcommands and flags get a Levenshtein-distance
// suggestion (threshold: distance <= 3).
//
// Tool parameters are plain structs. Struct tags drive three things
// from one declaration:
//
//   - [ParamsSchema] builds the JSON Schema advertised over MCP
//     (json, desc, required, default, minimum, maximum, pattern,
//     minItems tags; enum values from types implementing [Enum]).
//   - [Schema.Validate] checks raw JSON arguments against that schema
//     before a tool runs, reporting the offending field by path.
//   - [DecodeParams] applies default tags and decodes the arguments.
//
// [FlagsFromParams] binds the same kind of struct to pflag for
// command-line flags.
//
// Tool failures are categorized with [ToolError] ([Validation],
// [NotFound], [Internal]); the MCP server reports the category in the
// errorInfo field of the call result.
package cli
