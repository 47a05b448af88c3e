// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"
)

func fixtureSchema(t *testing.T) *Schema {
	t.Helper()
	schema, err := ParamsSchema(&fixtureParams{})
	if err != nil {
		t.Fatalf("ParamsSchema: %v", err)
	}
	return schema
}

func TestValidate_Accepts(t *testing.T) {
	schema := fixtureSchema(t)
	cases := []string{
		`{"id": "abc", "kind": "bar"}`,
		`{"id": "abc", "kind": "pie", "x": 0, "size": 12}`,
		`{"id": "abc", "kind": "line", "x": 10}`,
		`{"id": "abc", "kind": "line", "color": "#1A2b3C"}`,
		`{"id": "abc", "kind": "line", "color": null}`,
		`{"id": "abc", "kind": "bar", "series": [{"name": "s", "values": [0, 1.5]}]}`,
		`{"id": "abc", "kind": "bar", "grid": [["a", "b"], []]}`,
	}
	for _, arguments := range cases {
		if err := schema.Validate(json.RawMessage(arguments)); err != nil {
			t.Errorf("Validate(%s) = %v, want nil", arguments, err)
		}
	}
}

func TestValidate_Rejects(t *testing.T) {
	schema := fixtureSchema(t)
	cases := []struct {
		arguments string
		message   string
	}{
		{`{"kind": "bar"}`, "id: required property is missing"},
		{`{"id": null, "kind": "bar"}`, "id: required property is missing"},
		{`{"id": "abc", "kind": "scatter"}`, `kind: "scatter" is not one of [bar line pie]`},
		{`{"id": "abc", "kind": "bar", "x": -1}`, "x: -1 is less than the minimum 0"},
		{`{"id": "abc", "kind": "bar", "x": 10.01}`, "x: 10.01 is greater than the maximum 10"},
		{`{"id": "abc", "kind": "bar", "size": 12.5}`, "size: 12.5 is not an integer"},
		{`{"id": "abc", "kind": "bar", "size": 0}`, "size: 0 is less than the minimum 1"},
		{`{"id": "abc", "kind": "bar", "color": "red"}`, `color: "red" does not match`},
		{`{"id": 7, "kind": "bar"}`, "id: must be a string, got number"},
		{`{"id": "abc", "kind": "bar", "series": []}`, "series: must have at least 1 items, got 0"},
		{`{"id": "abc", "kind": "bar", "series": [{"name": "s", "values": [1, -2]}]}`, "series[0].values[1]: -2 is less than the minimum 0"},
		{`{"id": "abc", "kind": "bar", "series": [{"values": [1]}]}`, "series[0].name: required property is missing"},
		{`{"id": "abc", "kind": "bar", "grid": [["a", 3]]}`, "grid[0][1]: must be a string, got number"},
		{`{"id": "abc", "kind": "bar", "grid": [null]}`, "grid[0]: must not be null"},
		{`{"id": "abc", "kind": "bar", "unknown": true}`, "unknown: unknown property"},
		{`{"id": "abc", "kind": "bar", "x": 1, "X": 50}`, "X: unknown property"},
		{`{"id": "abc", "kind": "bar", "series": [{"name": "s", "values": [1], "Values": [-1]}]}`, "series[0].Values: unknown property"},
		{`[1, 2]`, "arguments: must be an object, got array"},
		{`{"id":`, "arguments are not valid JSON"},
	}
	for _, tc := range cases {
		err := schema.Validate(json.RawMessage(tc.arguments))
		if err == nil {
			t.Errorf("Validate(%s) = nil, want error containing %q", tc.arguments, tc.message)
			continue
		}
		if !strings.Contains(err.Error(), tc.message) {
			t.Errorf("Validate(%s) = %q, want it to contain %q", tc.arguments, err, tc.message)
		}
		var toolErr *ToolError
		if !errors.As(err, &toolErr) || toolErr.Category != CategoryValidation {
			t.Errorf("Validate(%s) error is not a validation ToolError: %v", tc.arguments, err)
		}
	}
}

func TestValidate_EmptyArgumentsAsEmptyObject(t *testing.T) {
	schema := fixtureSchema(t)
	err := schema.Validate(nil)
	if err == nil || !strings.Contains(err.Error(), "id: required property is missing") {
		t.Errorf("Validate(nil) = %v, want missing id", err)
	}

	optional, err := ParamsSchema(&struct {
		Verbose bool `json:"verbose"`
	}{})
	if err != nil {
		t.Fatalf("ParamsSchema: %v", err)
	}
	if err := optional.Validate(json.RawMessage(" null ")); err != nil {
		t.Errorf("Validate(null) = %v, want nil", err)
	}
}
