// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package tools

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/klauspost/compress/zip"

	"github.com/bureau-foundation/deckhand/cmd/deckhand/cli"
	"github.com/bureau-foundation/deckhand/cmd/deckhand/mcp"
	"github.com/bureau-foundation/deckhand/lib/deck"
	"github.com/bureau-foundation/deckhand/lib/fileserver"
	"github.com/bureau-foundation/deckhand/lib/registry"
	"github.com/bureau-foundation/deckhand/lib/testutil"
	"github.com/bureau-foundation/deckhand/lib/toolserver"
)

type harness struct {
	t         *testing.T
	server    *mcp.Server
	registry  *registry.Registry
	directory *fileserver.Directory
}

func newHarness(t *testing.T, publisher Publisher) *harness {
	t.Helper()
	directory, err := fileserver.NewDirectory(t.TempDir())
	if err != nil {
		t.Fatalf("NewDirectory: %v", err)
	}
	if publisher == nil {
		publisher = directory
	}
	sessions := registry.New()
	server, err := mcp.NewServer(List(Dependencies{
		Registry:  sessions,
		Publisher: publisher,
		Location:  directory.Root(),
		Logger:    testutil.Logger(t),
	}))
	if err != nil {
		t.Fatalf("NewServer: %v", err)
	}
	return &harness{t: t, server: server, registry: sessions, directory: directory}
}

// call invokes a tool and fails the test if the call was rejected
// before reaching the tool.
func (h *harness) call(name string, arguments any) toolserver.CallResult {
	h.t.Helper()
	result, err := h.callRaw(name, arguments)
	if err != nil {
		h.t.Fatalf("%s: rejected: %v", name, err)
	}
	return result
}

func (h *harness) callRaw(name string, arguments any) (toolserver.CallResult, error) {
	h.t.Helper()
	data, err := json.Marshal(arguments)
	if err != nil {
		h.t.Fatalf("marshal arguments: %v", err)
	}
	return h.server.CallTool(context.Background(), name, data)
}

// mustSucceed returns the structured id of a successful call.
func (h *harness) mustSucceed(name string, arguments any) string {
	h.t.Helper()
	result := h.call(name, arguments)
	if result.IsError {
		h.t.Fatalf("%s failed: %v", name, result.Content)
	}
	var output struct {
		ID string `json:"id"`
	}
	if len(result.Structured) > 0 {
		if err := json.Unmarshal(result.Structured, &output); err != nil {
			h.t.Fatalf("%s: structured result: %v", name, err)
		}
	}
	return output.ID
}

func (h *harness) newSlide() (string, string) {
	h.t.Helper()
	presentationID := h.mustSucceed("create-presentation", map[string]any{"title": "Demo"})
	slideID := h.mustSucceed("add-slide", map[string]any{"id": presentationID})
	return presentationID, slideID
}

func requireValidation(t *testing.T, err error, contains string) {
	t.Helper()
	var toolErr *cli.ToolError
	if !errors.As(err, &toolErr) || toolErr.Category != cli.CategoryValidation {
		t.Fatalf("error = %v, want a validation error", err)
	}
	if !strings.Contains(err.Error(), contains) {
		t.Errorf("error = %q, want it to contain %q", err, contains)
	}
}

func TestList_Names(t *testing.T) {
	h := newHarness(t, nil)
	var names []string
	for _, export := range h.server.Tools() {
		names = append(names, export.Name)
	}
	want := "create-presentation add-slide add-text add-table add-shape add-chart get-file-url deck-status"
	if strings.Join(names, " ") != want {
		t.Errorf("tools = %v, want %s", names, want)
	}
}

func TestCreatePresentation_DistinctIDs(t *testing.T) {
	h := newHarness(t, nil)
	seen := make(map[string]bool)
	for range 1000 {
		id := h.mustSucceed("create-presentation", map[string]any{})
		if seen[id] {
			t.Fatalf("duplicate presentation id %s", id)
		}
		seen[id] = true
	}
	if stats := h.registry.Stats(); stats.Documents != 1000 {
		t.Errorf("registry holds %d documents, want 1000", stats.Documents)
	}
}

func TestCreatePresentation_MetadataDefaults(t *testing.T) {
	h := newHarness(t, nil)
	id := h.mustSucceed("create-presentation", map[string]any{"title": "Board", "author": "Ops"})
	presentation, err := h.registry.Document(id)
	if err != nil {
		t.Fatalf("Document: %v", err)
	}
	metadata := presentation.Metadata()
	if metadata.Title != "Board" || metadata.Author != "Ops" || metadata.Revision != "1" || metadata.RTL {
		t.Errorf("metadata = %+v", metadata)
	}
}

func TestAddSlide_UnknownIDIsErrorEnvelope(t *testing.T) {
	h := newHarness(t, nil)
	result := h.call("add-slide", map[string]any{"id": "no-such-presentation"})
	if !result.IsError || result.Category != string(cli.CategoryNotFound) {
		t.Fatalf("result = %+v, want not_found error envelope", result)
	}
	if !strings.Contains(result.Content[0], "no-such-presentation") {
		t.Errorf("message %q does not name the id", result.Content[0])
	}
}

func TestAddSlide_SlideIDIsNotAPresentation(t *testing.T) {
	h := newHarness(t, nil)
	_, slideID := h.newSlide()
	result := h.call("add-slide", map[string]any{"id": slideID})
	if !result.IsError || result.Category != string(cli.CategoryNotFound) {
		t.Errorf("add-slide with a slide id = %+v, want not_found", result)
	}
}

func TestAddText(t *testing.T) {
	h := newHarness(t, nil)
	_, slideID := h.newSlide()

	result := h.call("add-text", map[string]any{
		"slideId": slideID, "text": "Hello", "x": 0, "y": 0, "w": 5, "h": 1,
	})
	if result.IsError {
		t.Fatalf("add-text failed: %v", result.Content)
	}

	slide, err := h.registry.Slide(slideID)
	if err != nil {
		t.Fatalf("Slide: %v", err)
	}
	elements := slide.Elements()
	if len(elements) != 1 || elements[0].Kind() != "text" {
		t.Fatalf("elements = %v, want one text box", elements)
	}
}

func TestAddText_BoundsRejectedBeforeLookup(t *testing.T) {
	h := newHarness(t, nil)
	for _, x := range []float64{-1, 10.01} {
		_, err := h.callRaw("add-text", map[string]any{
			"slideId": "unknown-slide", "text": "Hello", "x": x, "y": 0, "w": 5, "h": 1,
		})
		requireValidation(t, err, "x:")
	}
	_, err := h.callRaw("add-text", map[string]any{
		"slideId": "unknown-slide", "text": "Hello", "x": 0, "y": 5.6, "w": 5, "h": 1,
	})
	requireValidation(t, err, "y: 5.6 is greater than the maximum 5.5")
}

func TestAddText_CaseVariantKeysRejected(t *testing.T) {
	h := newHarness(t, nil)
	_, slideID := h.newSlide()

	_, err := h.callRaw("add-text", map[string]any{
		"slideId": slideID, "text": "Hi", "x": 1, "X": 50, "y": 0, "w": 5, "h": 1,
	})
	requireValidation(t, err, "X: unknown property")

	_, err = h.callRaw("add-text", map[string]any{
		"slideId": slideID, "text": "Hi", "x": 1, "y": 0, "w": 5, "h": 1,
		"fontSize": 18, "FONTSIZE": 100000,
	})
	requireValidation(t, err, "FONTSIZE: unknown property")

	slide, err := h.registry.Slide(slideID)
	if err != nil {
		t.Fatalf("Slide: %v", err)
	}
	if elements := slide.Elements(); len(elements) != 0 {
		t.Errorf("elements = %v, want none after rejected calls", elements)
	}
}

func TestAddText_UnknownSlide(t *testing.T) {
	h := newHarness(t, nil)
	result := h.call("add-text", map[string]any{
		"slideId": "ghost", "text": "Hello", "x": 0, "y": 0, "w": 5, "h": 1,
	})
	if !result.IsError || !strings.Contains(result.Content[0], "Slide with ID ghost not found") {
		t.Errorf("result = %+v, want slide not found", result)
	}
}

func tableArguments(slideID string, border map[string]any) map[string]any {
	arguments := map[string]any{
		"slideId": slideID,
		"data": [][]map[string]any{
			{{"text": "Region"}, {"text": "Revenue", "options": map[string]any{"bold": true, "fill": "#DDEBF7"}}},
			{{"text": "North"}, {"text": "1.2M"}},
		},
		"x": 0.5, "y": 1, "w": 9, "h": 2,
	}
	if border != nil {
		arguments["border"] = border
	}
	return arguments
}

func TestAddTable_BorderBounds(t *testing.T) {
	h := newHarness(t, nil)
	_, slideID := h.newSlide()

	_, err := h.callRaw("add-table", tableArguments(slideID, map[string]any{"type": "solid", "pt": 11}))
	requireValidation(t, err, "border.pt: 11 is greater than the maximum 10")

	result := h.call("add-table", tableArguments(slideID, map[string]any{"type": "solid", "pt": 10, "color": "000000"}))
	if result.IsError {
		t.Fatalf("pt 10 should be accepted: %v", result.Content)
	}
}

func TestAddTable_RaggedRowsIsCollaboratorFailure(t *testing.T) {
	h := newHarness(t, nil)
	_, slideID := h.newSlide()

	result := h.call("add-table", map[string]any{
		"slideId": slideID,
		"data":    [][]map[string]any{{{"text": "a"}, {"text": "b"}}, {{"text": "c"}}},
		"x":       0, "y": 0, "w": 4, "h": 2,
	})
	if !result.IsError || result.Category != string(cli.CategoryInternal) {
		t.Fatalf("result = %+v, want internal error envelope", result)
	}
	if result.Content[0] != "table: row 1 has 1 cells, expected 2" {
		t.Errorf("message = %q, want the model's reason verbatim", result.Content[0])
	}
}

func TestAddShape(t *testing.T) {
	h := newHarness(t, nil)
	_, slideID := h.newSlide()

	result := h.call("add-shape", map[string]any{
		"slideId": slideID, "shape": "roundRect", "x": 1, "y": 1, "w": 3, "h": 2,
		"rectRadius": 0.25, "rotate": -45,
		"line": map[string]any{"color": "FF0000", "width": 2, "dashType": "dash", "endArrowType": "triangle"},
		"fill": map[string]any{"color": "00FF00", "transparency": 50},
	})
	if result.IsError {
		t.Fatalf("add-shape failed: %v", result.Content)
	}

	cases := []struct {
		name     string
		override map[string]any
		message  string
	}{
		{"unknown shape", map[string]any{"shape": "blob"}, `shape: "blob" is not one of`},
		{"rotate", map[string]any{"rotate": 361}, "rotate: 361 is greater than the maximum 360"},
		{"rectRadius", map[string]any{"rectRadius": 1.5}, "rectRadius: 1.5 is greater than the maximum 1"},
		{"line width", map[string]any{"line": map[string]any{"width": 0.5}}, "line.width: 0.5 is less than the minimum 1"},
		{"transparency", map[string]any{"fill": map[string]any{"color": "000000", "transparency": 101}}, "fill.transparency: 101"},
		{"fill color", map[string]any{"fill": map[string]any{"transparency": 10}}, "fill.color: required property is missing"},
		{"dash type", map[string]any{"line": map[string]any{"dashType": "dotted"}}, "line.dashType"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			arguments := map[string]any{"slideId": slideID, "shape": "rect", "x": 1, "y": 1, "w": 3, "h": 2}
			for key, value := range tc.override {
				arguments[key] = value
			}
			_, err := h.callRaw("add-shape", arguments)
			requireValidation(t, err, tc.message)
		})
	}
}

func TestAddChart(t *testing.T) {
	h := newHarness(t, nil)
	_, slideID := h.newSlide()

	series := []map[string]any{
		{"name": "2025", "labels": []string{"Q1", "Q2", "Q3"}, "values": []float64{1, 2, 3}},
		{"name": "2026", "labels": []string{"Q1", "Q2", "Q3"}, "values": []float64{2, 3, 4}},
	}
	for _, chartType := range []string{"area", "bar", "line", "pie", "doughnut", "radar"} {
		result := h.call("add-chart", map[string]any{
			"slideId": slideID, "chartType": chartType, "data": series, "x": 0, "y": 0, "w": 5, "h": 3,
		})
		if result.IsError {
			t.Errorf("add-chart %s failed: %v", chartType, result.Content)
		}
	}

	_, err := h.callRaw("add-chart", map[string]any{
		"slideId": slideID, "chartType": "scatter", "data": series, "x": 0, "y": 0, "w": 5, "h": 3,
	})
	requireValidation(t, err, `chartType: "scatter" is not one of`)

	mismatched := h.call("add-chart", map[string]any{
		"slideId": slideID, "chartType": "bar", "x": 0, "y": 0, "w": 5, "h": 3,
		"data": []map[string]any{{"name": "s", "labels": []string{"a", "b"}, "values": []float64{1}}},
	})
	if !mismatched.IsError || !strings.Contains(mismatched.Content[0], "has 2 labels and 1 values") {
		t.Errorf("mismatched series = %+v, want collaborator failure", mismatched)
	}
}

func TestGetFileURL_OneShot(t *testing.T) {
	h := newHarness(t, nil)
	presentationID, slideID := h.newSlide()
	h.call("add-text", map[string]any{"slideId": slideID, "text": "Hello", "x": 0, "y": 0, "w": 5, "h": 1})

	result := h.call("get-file-url", map[string]any{"id": presentationID})
	if result.IsError {
		t.Fatalf("get-file-url failed: %v", result.Content)
	}
	if len(result.Content) != 2 {
		t.Fatalf("content = %v, want the link and an instruction", result.Content)
	}
	if !strings.HasSuffix(result.Content[0], "Demo-"+presentationID+".pptx") {
		t.Errorf("location = %q, want it to end in Demo-<id>.pptx", result.Content[0])
	}
	if !strings.Contains(result.Content[1], result.Content[0]) {
		t.Errorf("instruction %q does not repeat the link", result.Content[1])
	}

	data, err := os.ReadFile(filepath.Join(h.directory.Root(), "Demo-"+presentationID+".pptx"))
	if err != nil {
		t.Fatalf("reading published file: %v", err)
	}
	archive, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		t.Fatalf("published file is not a zip: %v", err)
	}
	names := make(map[string]bool)
	for _, file := range archive.File {
		names[file.Name] = true
	}
	for _, want := range []string{"[Content_Types].xml", "ppt/presentation.xml", "ppt/slides/slide1.xml"} {
		if !names[want] {
			t.Errorf("package is missing %s", want)
		}
	}

	again := h.call("get-file-url", map[string]any{"id": presentationID})
	if !again.IsError || again.Category != string(cli.CategoryNotFound) {
		t.Errorf("second get-file-url = %+v, want not_found", again)
	}
	stale := h.call("add-text", map[string]any{"slideId": slideID, "text": "late", "x": 0, "y": 0, "w": 1, "h": 1})
	if !stale.IsError || stale.Category != string(cli.CategoryNotFound) {
		t.Errorf("add-text on a finalized slide = %+v, want not_found", stale)
	}
}

type failingPublisher struct{}

func (failingPublisher) Publish(string, string, func(io.Writer) error) (string, error) {
	return "", fmt.Errorf("disk full")
}

func TestGetFileURL_PublishFailureKeepsPresentation(t *testing.T) {
	h := newHarness(t, failingPublisher{})
	presentationID, _ := h.newSlide()

	result := h.call("get-file-url", map[string]any{"id": presentationID})
	if !result.IsError || result.Category != string(cli.CategoryInternal) {
		t.Fatalf("result = %+v, want internal error", result)
	}
	if !strings.Contains(result.Content[0], "disk full") {
		t.Errorf("message = %q, want the publish failure", result.Content[0])
	}
	if _, err := h.registry.Document(presentationID); err != nil {
		t.Errorf("presentation should survive a failed publish: %v", err)
	}
}

func TestDeckStatus(t *testing.T) {
	h := newHarness(t, nil)
	h.newSlide()
	h.newSlide()

	result := h.call("deck-status", nil)
	var status statusOutput
	if err := json.Unmarshal(result.Structured, &status); err != nil {
		t.Fatalf("structured result: %v", err)
	}
	if status.Presentations != 2 || status.Slides != 2 || status.Location != h.directory.Root() {
		t.Errorf("status = %+v", status)
	}
}

func TestColorFieldsShareDeckPattern(t *testing.T) {
	var colors int
	var walk func(schema *cli.Schema, path string)
	walk = func(schema *cli.Schema, path string) {
		if schema == nil {
			return
		}
		if schema.Pattern != "" {
			colors++
			if schema.Pattern != deck.ColorPattern {
				t.Errorf("%s: pattern %q, want deck.ColorPattern", path, schema.Pattern)
			}
		}
		for name, property := range schema.Properties {
			walk(property, path+"."+name)
		}
		walk(schema.Items, path+"[]")
	}

	for _, tool := range List(Dependencies{Registry: registry.New(), Logger: testutil.Logger(t)}) {
		schema, err := cli.ParamsSchema(tool.Params())
		if err != nil {
			t.Fatalf("%s: ParamsSchema: %v", tool.Name, err)
		}
		walk(schema, tool.Name)
	}
	if colors < 7 {
		t.Errorf("found %d color fields, want at least 7", colors)
	}
}
