// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package script replays a recorded sequence of tool calls against a
// [toolserver.Server].
//
// A script is a JSONC file (JSON with // and /* */ comments and
// trailing commas):
//
//	{
//	  "steps": [
//	    {"tool": "create-presentation", "arguments": {"title": "Demo"}},
//	    {"tool": "add-slide", "arguments": {"id": "$1"}},
//	    // $2 is the slide id produced by step 2.
//	    {"tool": "add-text", "arguments": {"slideId": "$2", "text": "Hello", "x": 0, "y": 0, "w": 5, "h": 1}},
//	    {"tool": "get-file-url", "arguments": {"id": "$1"}},
//	  ],
//	}
//
// Any string argument that is exactly "$N" is replaced with the id
// returned by step N (1-based) before the call is made; the id is the
// "id" field of the step's structured result. Steps run in order and
// the run stops at the first failure unless the step sets
// "expectError".
package script
