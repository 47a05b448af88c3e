// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package toolserver defines the interface for deckhand tool discovery
// and execution. It decouples callers that drive tools directly (the
// replay script runner in lib/script, the `deckhand tools` catalog
// printer) from the MCP JSON-RPC implementation in cmd/deckhand/mcp.
//
// The MCP server implements this interface. Callers never import from
// cmd/; they depend only on [Server].
package toolserver

import (
	"context"
	"encoding/json"
)

// ToolExport describes a tool for callers that need tool metadata
// without going through the MCP JSON-RPC protocol.
type ToolExport struct {
	// Name is the tool name (e.g., "add-slide").
	Name string `json:"name"`

	// Title is a short human-readable name.
	Title string `json:"title,omitempty"`

	// Description is the human-readable tool description.
	Description string `json:"description"`

	// InputSchema is the JSON Schema for the tool's arguments.
	InputSchema json.RawMessage `json:"inputSchema"`

	// OutputSchema is the JSON Schema for the tool's structured
	// result, when it has one.
	OutputSchema json.RawMessage `json:"outputSchema,omitempty"`

	// ReadOnly is true for tools that never modify state.
	ReadOnly bool `json:"readOnly,omitempty"`
}

// CallResult is the outcome of one tool call.
type CallResult struct {
	// Content holds the text blocks of the result, in order.
	Content []string

	// Structured is the tool's structured result as JSON, or nil.
	Structured json.RawMessage

	// IsError is true when the tool reported a failure. The failure
	// message is in Content.
	IsError bool

	// Category classifies a failure ("validation", "not_found",
	// "internal", ...). Empty on success.
	Category string
}

// Server provides tool discovery and execution.
type Server interface {
	// Tools returns metadata for every tool the server exposes, in
	// the order tools/list reports them.
	Tools() []ToolExport

	// CallTool executes a tool by name with the given JSON arguments.
	//
	// A non-nil error return indicates the call never reached the
	// tool: an unknown tool name or arguments that fail schema
	// validation. Tool execution failures are reported with
	// IsError=true and a nil error.
	CallTool(ctx context.Context, name string, arguments json.RawMessage) (CallResult, error)
}
