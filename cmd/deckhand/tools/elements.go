// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package tools

import (
	"context"
	"fmt"

	"github.com/bureau-foundation/deckhand/cmd/deckhand/cli"
	"github.com/bureau-foundation/deckhand/cmd/deckhand/mcp"
	"github.com/bureau-foundation/deckhand/lib/deck"
)

// place adds element to the slide registered under slideID. A rejected
// element comes back as an internal error carrying the model's reason
// unchanged.
func (h *handlers) place(slideID string, element deck.Element) (mcp.Result, error) {
	slide, err := h.Registry.Slide(slideID)
	if err != nil {
		return mcp.Result{}, lookupError(err, slideID)
	}
	if result := slide.Add(element); !result.OK() {
		return mcp.Result{}, cli.Internal("%s", result.Reason())
	}
	h.Logger.Debug("element added", "slide", slideID, "kind", element.Kind())
	return mcp.Result{Text: []string{fmt.Sprintf("Added %s to slide %s", element.Kind(), slideID)}}, nil
}

func (h *handlers) addText() mcp.Tool {
	return tool(mcp.Tool{
		Name:        "add-text",
		Title:       "Add text",
		Description: "Place a text box on a slide. Position and size are in inches on a 10 x 5.625 canvas.",
		Annotations: cli.Create(),
	}, func(_ context.Context, params *addTextParams) (mcp.Result, error) {
		return h.place(params.SlideID, &deck.Text{
			Frame:    params.frame(),
			Text:     params.Text,
			Align:    params.Align,
			Bold:     params.Bold,
			Color:    params.Color,
			FontFace: params.FontFace,
			FontSize: params.FontSize,
		})
	})
}

func (h *handlers) addTable() mcp.Tool {
	return tool(mcp.Tool{
		Name:  "add-table",
		Title: "Add table",
		Description: "Place a table on a slide. data is a list of rows, each a list of cells; " +
			"table-level formatting applies to every cell unless the cell's options override it.",
		Annotations: cli.Create(),
	}, func(_ context.Context, params *addTableParams) (mcp.Result, error) {
		return h.place(params.SlideID, params.table())
	})
}

func (h *handlers) addShape() mcp.Tool {
	return tool(mcp.Tool{
		Name:        "add-shape",
		Title:       "Add shape",
		Description: "Place a preset shape (rectangle, ellipse, arrow, line, ...) on a slide with an optional outline and fill.",
		Annotations: cli.Create(),
	}, func(_ context.Context, params *addShapeParams) (mcp.Result, error) {
		return h.place(params.SlideID, params.shape())
	})
}

func (h *handlers) addChart() mcp.Tool {
	return tool(mcp.Tool{
		Name:  "add-chart",
		Title: "Add chart",
		Description: "Place a native chart on a slide. Every series must have one value per label, " +
			"and all series share the first series' labels.",
		Annotations: cli.Create(),
	}, func(_ context.Context, params *addChartParams) (mcp.Result, error) {
		return h.place(params.SlideID, params.chart())
	})
}
