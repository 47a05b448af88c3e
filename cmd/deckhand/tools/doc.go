// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package tools defines the deckhand MCP tools: create-presentation,
// add-slide, add-text, add-table, add-shape, add-chart, get-file-url
// and deck-status.
//
// Each tool is a typed parameter struct plus a handler. The struct
// tags declare the input schema (bounds in inches on the 10 x 5.625
// inch canvas, closed enums from lib/deck); the MCP server validates
// raw arguments against it before a handler runs. Handlers resolve
// ids through a [registry.Registry], build a [deck.Element] and hand
// it to the slide, and translate failures into categorized
// [cli.ToolError] values:
//
//   - an unknown or finalized id is [cli.NotFound], naming the id;
//   - a rejected element or a failed publish is [cli.Internal],
//     carrying the underlying message verbatim.
//
// Finished decks leave through a [Publisher]: the HTTP file server
// under `deckhand serve`, a plain output directory under
// `deckhand replay`.
package tools
