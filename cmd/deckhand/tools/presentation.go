// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package tools

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/bureau-foundation/deckhand/cmd/deckhand/cli"
	"github.com/bureau-foundation/deckhand/cmd/deckhand/mcp"
	"github.com/bureau-foundation/deckhand/lib/deck"
	"github.com/bureau-foundation/deckhand/lib/fileserver"
	"github.com/bureau-foundation/deckhand/lib/registry"
)

// presentationOutput is the structured result of create-presentation.
type presentationOutput struct {
	ID string `json:"id" desc:"presentation id for add-slide and get-file-url"`
}

// slideOutput is the structured result of add-slide.
type slideOutput struct {
	ID             string `json:"id" desc:"slide id for the add-* element tools"`
	PresentationID string `json:"presentationId" desc:"presentation the slide belongs to"`
	Number         int    `json:"number" desc:"1-based position of the slide"`
}

// fileOutput is the structured result of get-file-url.
type fileOutput struct {
	URL      string `json:"url" desc:"download link for the finished deck"`
	FileName string `json:"fileName" desc:"name of the published file"`
}

// statusOutput is the structured result of deck-status.
type statusOutput struct {
	Presentations int    `json:"presentations" desc:"presentations under construction"`
	Slides        int    `json:"slides" desc:"slides of those presentations"`
	Location      string `json:"location" desc:"where finished decks are published"`
}

func (h *handlers) createPresentation() mcp.Tool {
	return tool(mcp.Tool{
		Name:        "create-presentation",
		Title:       "Create presentation",
		Description: "Start a new, empty presentation and return its id. Metadata is written to the file's document properties; the title also names the file.",
		Annotations: cli.Create(),
		Output:      presentationOutput{},
	}, func(_ context.Context, params *createPresentationParams) (mcp.Result, error) {
		id := h.Registry.CreateDocument(deck.Metadata{
			Title:    params.Title,
			Subject:  params.Subject,
			Author:   params.Author,
			Company:  params.Company,
			Revision: params.Revision,
			RTL:      params.RTL,
		})
		h.Logger.Info("presentation created", "presentation", id, "title", params.Title)
		return mcp.Result{
			Text:       []string{fmt.Sprintf("Created presentation with ID %s", id)},
			Structured: presentationOutput{ID: id},
		}, nil
	})
}

func (h *handlers) addSlide() mcp.Tool {
	return tool(mcp.Tool{
		Name:        "add-slide",
		Title:       "Add slide",
		Description: "Append a blank slide to a presentation and return the slide's id.",
		Annotations: cli.Create(),
		Output:      slideOutput{},
	}, func(_ context.Context, params *addSlideParams) (mcp.Result, error) {
		slideID, err := h.Registry.CreateSlide(params.ID)
		if err != nil {
			return mcp.Result{}, lookupError(err, params.ID)
		}
		slide, err := h.Registry.Slide(slideID)
		if err != nil {
			return mcp.Result{}, lookupError(err, slideID)
		}
		h.Logger.Debug("slide added", "presentation", params.ID, "slide", slideID, "number", slide.Number())
		return mcp.Result{
			Text:       []string{fmt.Sprintf("Created slide %d with ID %s in presentation %s", slide.Number(), slideID, params.ID)},
			Structured: slideOutput{ID: slideID, PresentationID: params.ID, Number: slide.Number()},
		}, nil
	})
}

func (h *handlers) getFileURL() mcp.Tool {
	return tool(mcp.Tool{
		Name:  "get-file-url",
		Title: "Get file URL",
		Description: "Finish a presentation: write it as a .pptx file and return a download link. " +
			"The presentation and its slides are released; later calls with the same id fail.",
		Annotations: cli.Destructive(),
		Output:      fileOutput{},
	}, func(_ context.Context, params *getFileURLParams) (mcp.Result, error) {
		var name string
		location, err := h.Registry.Finalize(params.ID, func(presentation *deck.Presentation) (string, error) {
			fingerprint, err := presentation.Fingerprint()
			if err != nil {
				return "", err
			}
			name = fileserver.FileName(presentation.Title(), params.ID)
			return h.Publisher.Publish(name, fingerprint, func(w io.Writer) error {
				return presentation.Write(w).Err()
			})
		})
		switch {
		case errors.Is(err, registry.ErrDocumentNotFound):
			return mcp.Result{}, lookupError(err, params.ID)
		case err != nil:
			return mcp.Result{}, cli.Internal("publishing presentation %s: %w", params.ID, err)
		}

		h.Logger.Info("presentation published", "presentation", params.ID, "file", name)
		return mcp.Result{
			Text: []string{
				location,
				fmt.Sprintf("The presentation is ready. Give the user this download link: %s", location),
			},
			Structured: fileOutput{URL: location, FileName: name},
		}, nil
	})
}

func (h *handlers) deckStatus() mcp.Tool {
	return tool(mcp.Tool{
		Name:        "deck-status",
		Title:       "Deck status",
		Description: "Report how many presentations and slides are under construction and where finished decks are published.",
		Annotations: cli.ReadOnly(),
		Output:      statusOutput{},
	}, func(context.Context, *deckStatusParams) (mcp.Result, error) {
		stats := h.Registry.Stats()
		return mcp.Result{
			Text: []string{fmt.Sprintf("%d presentations and %d slides under construction; files are published to %s",
				stats.Documents, stats.Slides, h.Location)},
			Structured: statusOutput{Presentations: stats.Documents, Slides: stats.Slides, Location: h.Location},
		}, nil
	})
}
