// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package tools

import (
	"context"
	"errors"
	"io"
	"log/slog"

	"github.com/bureau-foundation/deckhand/cmd/deckhand/cli"
	"github.com/bureau-foundation/deckhand/cmd/deckhand/mcp"
	"github.com/bureau-foundation/deckhand/lib/registry"
)

// Publisher stores a finished file and returns where it can be
// fetched. write streams the file body; fingerprint identifies the
// content. Both [fileserver.Server] and [fileserver.Directory]
// satisfy it.
type Publisher interface {
	Publish(name, fingerprint string, write func(io.Writer) error) (string, error)
}

// Dependencies are the collaborators shared by every tool handler.
type Dependencies struct {
	Registry  *registry.Registry
	Publisher Publisher

	// Location describes where published files appear (the file
	// server base URL or the output directory). Reported by
	// deck-status.
	Location string

	Logger *slog.Logger
}

// Instructions is the usage hint returned from MCP initialize.
const Instructions = "Build a PowerPoint deck step by step: create-presentation returns a " +
	"presentation id; add-slide returns a slide id; add-text, add-table, add-shape and " +
	"add-chart place content on a slide using inches on a 10 x 5.625 canvas. " +
	"Finish with get-file-url and give the returned link to the user. " +
	"A presentation can be finished only once."

// List returns every tool, in the order tools/list reports them.
func List(deps Dependencies) []mcp.Tool {
	if deps.Logger == nil {
		deps.Logger = slog.New(slog.DiscardHandler)
	}
	h := &handlers{Dependencies: deps}
	return []mcp.Tool{
		h.createPresentation(),
		h.addSlide(),
		h.addText(),
		h.addTable(),
		h.addShape(),
		h.addChart(),
		h.getFileURL(),
		h.deckStatus(),
	}
}

// handlers binds the tool implementations to their dependencies.
type handlers struct {
	Dependencies
}

// tool adapts a typed handler to [mcp.Tool]. P is the parameter
// struct; the MCP server hands Run the pointer that params returned,
// already validated and decoded.
func tool[P any](definition mcp.Tool, run func(ctx context.Context, params *P) (mcp.Result, error)) mcp.Tool {
	definition.Params = func() any { return new(P) }
	definition.Run = func(ctx context.Context, params any) (mcp.Result, error) {
		typed, ok := params.(*P)
		if !ok {
			return mcp.Result{}, cli.Internal("%s: unexpected params type %T", definition.Name, params)
		}
		return run(ctx, typed)
	}
	return definition
}

// lookupError converts registry lookup failures into not-found tool
// errors naming the id the caller supplied.
func lookupError(err error, id string) error {
	switch {
	case errors.Is(err, registry.ErrDocumentNotFound):
		return cli.NotFound("Presentation with ID %s not found", id)
	case errors.Is(err, registry.ErrSlideNotFound):
		return cli.NotFound("Slide with ID %s not found", id)
	default:
		return cli.Internal("%w", err)
	}
}
