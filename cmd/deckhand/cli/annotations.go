// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package cli

// ToolAnnotations describes behavioral properties of a tool. The MCP
// server translates them into the protocol's annotation hints, which
// help agents decide which tools are safe to call freely and which
// deserve confirmation.
//
// All fields are pointers. A nil field means "unspecified" and the
// MCP default applies (not read-only, destructive, not idempotent,
// open-world).
type ToolAnnotations struct {
	// ReadOnly is true when the tool only reads state.
	ReadOnly *bool

	// Destructive is true when the tool irreversibly removes state.
	Destructive *bool

	// Idempotent is true when repeated identical calls converge to
	// the same result.
	Idempotent *bool

	// OpenWorld is true when the tool interacts with entities beyond
	// the server's own state.
	OpenWorld *bool
}

// ReadOnly returns annotations for tools that query state without
// modifying it.
func ReadOnly() *ToolAnnotations {
	return &ToolAnnotations{
		ReadOnly:    boolPtr(true),
		Destructive: boolPtr(false),
		Idempotent:  boolPtr(true),
		OpenWorld:   boolPtr(false),
	}
}

// Create returns annotations for tools that add state on every call:
// a new presentation, a new slide, a new element.
func Create() *ToolAnnotations {
	return &ToolAnnotations{
		ReadOnly:    boolPtr(false),
		Destructive: boolPtr(false),
		Idempotent:  boolPtr(false),
		OpenWorld:   boolPtr(false),
	}
}

// Destructive returns annotations for tools that retire state so a
// repeated call fails: finalizing a presentation removes it from the
// registry.
func Destructive() *ToolAnnotations {
	return &ToolAnnotations{
		ReadOnly:    boolPtr(false),
		Destructive: boolPtr(true),
		Idempotent:  boolPtr(false),
		OpenWorld:   boolPtr(false),
	}
}

func boolPtr(value bool) *bool {
	return &value
}
