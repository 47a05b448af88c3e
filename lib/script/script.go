// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package script

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"regexp"
	"strconv"

	"github.com/tidwall/jsonc"

	"github.com/bureau-foundation/deckhand/lib/toolserver"
)

// Script is a parsed replay file.
type Script struct {
	Steps []Step `json:"steps"`
}

// Step is one tool call.
type Step struct {
	// Tool is the tool name.
	Tool string `json:"tool"`

	// Arguments is the JSON argument object, possibly containing "$N"
	// references.
	Arguments json.RawMessage `json:"arguments,omitempty"`

	// ExpectError marks a step that must fail, either by rejection or
	// with an error result. The run continues past it.
	ExpectError bool `json:"expectError,omitempty"`
}

// StepResult records the outcome of one executed step.
type StepResult struct {
	// Number is the 1-based step number.
	Number int
	Tool   string

	// Result is the tool's result. Zero when the call was rejected.
	Result toolserver.CallResult

	// Rejected is the error for a call that never reached the tool.
	Rejected error

	// ID is the "id" field of the structured result, if any.
	ID string
}

// Failed reports whether the step did not succeed.
func (r StepResult) Failed() bool {
	return r.Rejected != nil || r.Result.IsError
}

// ErrStepFailed is wrapped by the error Run returns when a step fails
// unexpectedly.
var ErrStepFailed = errors.New("step failed")

var reference = regexp.MustCompile(`^\$([0-9]+)$`)

// Parse strips JSONC comments and trailing commas from data, then
// decodes and checks the script.
func Parse(data []byte) (*Script, error) {
	decoder := json.NewDecoder(bytes.NewReader(jsonc.ToJSON(data)))
	decoder.DisallowUnknownFields()
	var script Script
	if err := decoder.Decode(&script); err != nil {
		return nil, fmt.Errorf("parsing script: %w", err)
	}
	if len(script.Steps) == 0 {
		return nil, errors.New("script has no steps")
	}
	for index, step := range script.Steps {
		if step.Tool == "" {
			return nil, fmt.Errorf("step %d: tool is required", index+1)
		}
	}
	return &script, nil
}

// ReadFile reads and parses a JSONC script file.
func ReadFile(path string) (*Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	script, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return script, nil
}

// Run executes the script's steps in order against server. Every tool
// name is checked against the server's catalog before the first call.
// It returns the results of every step that ran; the error is non-nil
// when a step failed without expectError, succeeded despite it, or
// referenced an id that no earlier step produced.
func Run(ctx context.Context, server toolserver.Server, script *Script, logger *slog.Logger) ([]StepResult, error) {
	known := make(map[string]bool)
	for _, export := range server.Tools() {
		known[export.Name] = true
	}
	for index, step := range script.Steps {
		if !known[step.Tool] {
			return nil, fmt.Errorf("step %d: unknown tool %q", index+1, step.Tool)
		}
	}

	var results []StepResult
	ids := make([]string, 0, len(script.Steps))
	for index, step := range script.Steps {
		if err := ctx.Err(); err != nil {
			return results, err
		}
		number := index + 1

		arguments, err := substitute(step.Arguments, ids)
		if err != nil {
			return results, fmt.Errorf("step %d (%s): %w", number, step.Tool, err)
		}

		result := StepResult{Number: number, Tool: step.Tool}
		result.Result, result.Rejected = server.CallTool(ctx, step.Tool, arguments)
		result.ID = structuredID(result.Result.Structured)
		results = append(results, result)
		ids = append(ids, result.ID)

		logger.Debug("step finished", "step", number, "tool", step.Tool, "failed", result.Failed())

		switch {
		case result.Failed() && !step.ExpectError:
			return results, fmt.Errorf("step %d (%s): %w: %s", number, step.Tool, ErrStepFailed, result.message())
		case !result.Failed() && step.ExpectError:
			return results, fmt.Errorf("step %d (%s): %w: expected an error, got success", number, step.Tool, ErrStepFailed)
		}
	}
	return results, nil
}

// message returns the failure text of a step.
func (r StepResult) message() string {
	if r.Rejected != nil {
		return r.Rejected.Error()
	}
	if len(r.Result.Content) > 0 {
		return r.Result.Content[0]
	}
	return "no message"
}

// substitute replaces "$N" string values anywhere in arguments with
// ids[N-1].
func substitute(arguments json.RawMessage, ids []string) (json.RawMessage, error) {
	if len(bytes.TrimSpace(arguments)) == 0 {
		return arguments, nil
	}
	decoder := json.NewDecoder(bytes.NewReader(arguments))
	decoder.UseNumber()
	var value any
	if err := decoder.Decode(&value); err != nil {
		return nil, fmt.Errorf("arguments: %w", err)
	}
	replaced, err := replaceReferences(value, ids)
	if err != nil {
		return nil, err
	}
	return json.Marshal(replaced)
}

func replaceReferences(value any, ids []string) (any, error) {
	switch typed := value.(type) {
	case string:
		match := reference.FindStringSubmatch(typed)
		if match == nil {
			return typed, nil
		}
		number, err := strconv.Atoi(match[1])
		if err != nil || number < 1 || number > len(ids) {
			return nil, fmt.Errorf("reference %s does not name an earlier step", typed)
		}
		if ids[number-1] == "" {
			return nil, fmt.Errorf("reference %s: step %d produced no id", typed, number)
		}
		return ids[number-1], nil
	case []any:
		for i, item := range typed {
			replaced, err := replaceReferences(item, ids)
			if err != nil {
				return nil, err
			}
			typed[i] = replaced
		}
		return typed, nil
	case map[string]any:
		for key, item := range typed {
			replaced, err := replaceReferences(item, ids)
			if err != nil {
				return nil, err
			}
			typed[key] = replaced
		}
		return typed, nil
	default:
		return value, nil
	}
}

// structuredID extracts the "id" field of a structured result.
func structuredID(structured json.RawMessage) string {
	if len(structured) == 0 {
		return ""
	}
	var output struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(structured, &output); err != nil {
		return ""
	}
	return output.ID
}
