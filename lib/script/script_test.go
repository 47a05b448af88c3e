// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package script

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/bureau-foundation/deckhand/lib/testutil"
	"github.com/bureau-foundation/deckhand/lib/toolserver"
)

// fakeServer records calls. "make" returns a structured id from
// its sequence, "fail" reports an error result, and "reject" is
// refused before running.
type fakeServer struct {
	nextID func() string
	calls  []string
}

func newFakeServer() *fakeServer {
	return &fakeServer{nextID: testutil.Sequence("id")}
}

func (f *fakeServer) Tools() []toolserver.ToolExport {
	return []toolserver.ToolExport{{Name: "make"}, {Name: "use"}, {Name: "fail"}, {Name: "reject"}}
}

func (f *fakeServer) CallTool(_ context.Context, name string, arguments json.RawMessage) (toolserver.CallResult, error) {
	f.calls = append(f.calls, name+" "+string(arguments))
	switch name {
	case "make":
		structured, _ := json.Marshal(map[string]string{"id": f.nextID()})
		return toolserver.CallResult{Content: []string{"made"}, Structured: structured}, nil
	case "fail":
		return toolserver.CallResult{Content: []string{"Presentation with ID x not found"}, IsError: true, Category: "not_found"}, nil
	case "reject":
		return toolserver.CallResult{}, errors.New("x: -1 is less than the minimum 0")
	default:
		return toolserver.CallResult{Content: []string{"ok"}}, nil
	}
}

func TestParse_JSONC(t *testing.T) {
	script, err := Parse([]byte(`{
		// build a deck
		"steps": [
			{"tool": "make", "arguments": {"title": "Demo"}},
			/* reference the first id */
			{"tool": "use", "arguments": {"id": "$1",},},
		],
	}`))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(script.Steps) != 2 || script.Steps[1].Tool != "use" {
		t.Errorf("steps = %+v", script.Steps)
	}
}

func TestParse_Errors(t *testing.T) {
	cases := []struct {
		input   string
		message string
	}{
		{`{"steps": []}`, "no steps"},
		{`{"steps": [{"arguments": {}}]}`, "step 1: tool is required"},
		{`{"steps": [{"tool": "make", "args": {}}]}`, "unknown field"},
		{`{"steps": [`, "parsing script"},
	}
	for _, tc := range cases {
		_, err := Parse([]byte(tc.input))
		if err == nil || !strings.Contains(err.Error(), tc.message) {
			t.Errorf("Parse(%s) error = %v, want %q", tc.input, err, tc.message)
		}
	}
}

func TestReadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "demo.jsonc")
	if err := os.WriteFile(path, []byte(`{"steps": [{"tool": "make"}]}`), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	script, err := ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if len(script.Steps) != 1 {
		t.Errorf("steps = %d, want 1", len(script.Steps))
	}

	if _, err := ReadFile(filepath.Join(t.TempDir(), "missing.jsonc")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestRun_SubstitutesReferences(t *testing.T) {
	server := newFakeServer()
	script := &Script{Steps: []Step{
		{Tool: "make", Arguments: json.RawMessage(`{"title":"Demo"}`)},
		{Tool: "make", Arguments: json.RawMessage(`{"id":"$1"}`)},
		{Tool: "use", Arguments: json.RawMessage(`{"slideId":"$2","rows":[["$1","$$1"]],"x":1.50}`)},
	}}

	results, err := Run(context.Background(), server, script, testutil.Logger(t))
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(results) != 3 {
		t.Fatalf("got %d results, want 3", len(results))
	}
	if results[0].ID != "id-1" || results[1].ID != "id-2" || results[2].ID != "" {
		t.Errorf("ids = %q %q %q", results[0].ID, results[1].ID, results[2].ID)
	}
	if server.calls[1] != `make {"id":"id-1"}` {
		t.Errorf("call 2 = %s", server.calls[1])
	}
	if server.calls[2] != `use {"rows":[["id-1","$$1"]],"slideId":"id-2","x":1.50}` {
		t.Errorf("call 3 = %s", server.calls[2])
	}
}

func TestRun_BadReferences(t *testing.T) {
	cases := []struct {
		arguments string
		message   string
	}{
		{`{"id":"$2"}`, "reference $2 does not name an earlier step"},
		{`{"id":"$0"}`, "reference $0 does not name an earlier step"},
	}
	for _, tc := range cases {
		script := &Script{Steps: []Step{
			{Tool: "make"},
			{Tool: "use", Arguments: json.RawMessage(tc.arguments)},
		}}
		_, err := Run(context.Background(), newFakeServer(), script, testutil.Logger(t))
		if err == nil || !strings.Contains(err.Error(), tc.message) {
			t.Errorf("Run(%s) error = %v, want %q", tc.arguments, err, tc.message)
		}
	}

	script := &Script{Steps: []Step{
		{Tool: "use"},
		{Tool: "use", Arguments: json.RawMessage(`{"id":"$1"}`)},
	}}
	_, err := Run(context.Background(), newFakeServer(), script, testutil.Logger(t))
	if err == nil || !strings.Contains(err.Error(), "step 1 produced no id") {
		t.Errorf("reference to an id-less step: error = %v", err)
	}
}

func TestRun_StopsAtFailure(t *testing.T) {
	server := newFakeServer()
	script := &Script{Steps: []Step{{Tool: "make"}, {Tool: "fail"}, {Tool: "make"}}}

	results, err := Run(context.Background(), server, script, testutil.Logger(t))
	if !errors.Is(err, ErrStepFailed) {
		t.Fatalf("error = %v, want ErrStepFailed", err)
	}
	if !strings.Contains(err.Error(), "step 2 (fail)") || !strings.Contains(err.Error(), "not found") {
		t.Errorf("error = %q, want it to name the step and carry the message", err)
	}
	if len(results) != 2 || len(server.calls) != 2 {
		t.Errorf("ran %d steps, want 2", len(server.calls))
	}
}

func TestRun_ExpectError(t *testing.T) {
	script := &Script{Steps: []Step{
		{Tool: "reject", ExpectError: true},
		{Tool: "fail", ExpectError: true},
		{Tool: "make"},
	}}
	results, err := Run(context.Background(), newFakeServer(), script, testutil.Logger(t))
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !results[0].Failed() || results[0].Rejected == nil || !results[1].Failed() {
		t.Errorf("results = %+v", results)
	}

	script = &Script{Steps: []Step{{Tool: "make", ExpectError: true}}}
	if _, err := Run(context.Background(), newFakeServer(), script, testutil.Logger(t)); !errors.Is(err, ErrStepFailed) {
		t.Errorf("unexpected success: error = %v, want ErrStepFailed", err)
	}
}

func TestRun_UnknownToolBeforeAnyCall(t *testing.T) {
	server := newFakeServer()
	script := &Script{Steps: []Step{{Tool: "make"}, {Tool: "explode"}}}
	_, err := Run(context.Background(), server, script, testutil.Logger(t))
	if err == nil || !strings.Contains(err.Error(), `step 2: unknown tool "explode"`) {
		t.Errorf("error = %v", err)
	}
	if len(server.calls) != 0 {
		t.Errorf("made %d calls before rejecting the script", len(server.calls))
	}
}
