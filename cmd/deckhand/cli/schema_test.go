// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"encoding/json"
	"slices"
	"testing"
)

type fixtureKind string

func (fixtureKind) EnumValues() []string { return []string{"bar", "line", "pie"} }

type fixtureSeries struct {
	Name   string    `json:"name" desc:"series name" required:"true"`
	Values []float64 `json:"values" desc:"data points" required:"true" minItems:"1" minimum:"0"`
}

type fixtureParams struct {
	ID     string          `json:"id" desc:"target id" required:"true"`
	X      float64         `json:"x" desc:"left edge" minimum:"0" maximum:"10"`
	Size   int             `json:"size" desc:"font size" default:"18" minimum:"1" required:"true"`
	Color  string          `json:"color" desc:"hex color" pattern:"^#?[0-9A-Fa-f]{6}$"`
	Kind   fixtureKind     `json:"kind" desc:"chart kind" required:"true"`
	Series []fixtureSeries `json:"series" desc:"data series" minItems:"1"`
	Grid   [][]string      `json:"grid" desc:"cells"`
	Hidden string          `json:"-"`
	note   string
}

func TestParamsSchema_Properties(t *testing.T) {
	schema, err := ParamsSchema(&fixtureParams{})
	if err != nil {
		t.Fatalf("ParamsSchema: %v", err)
	}
	if schema.Type != "object" {
		t.Fatalf("Type = %q, want object", schema.Type)
	}
	if _, ok := schema.Properties["Hidden"]; ok {
		t.Error("json:\"-\" field should be excluded")
	}
	if len(schema.Properties) != 7 {
		t.Errorf("got %d properties, want 7", len(schema.Properties))
	}

	x := schema.Properties["x"]
	if x.Type != "number" || x.Minimum == nil || *x.Minimum != 0 || x.Maximum == nil || *x.Maximum != 10 {
		t.Errorf("x schema = %+v, want number in [0, 10]", x)
	}

	size := schema.Properties["size"]
	if size.Type != "integer" || size.Default != 18 {
		t.Errorf("size schema = %+v, want integer default 18", size)
	}

	kind := schema.Properties["kind"]
	if kind.Type != "string" || !slices.Equal(kind.Enum, []string{"bar", "line", "pie"}) {
		t.Errorf("kind schema = %+v, want string enum", kind)
	}

	grid := schema.Properties["grid"]
	if grid.Type != "array" || grid.Items == nil || grid.Items.Type != "array" || grid.Items.Items.Type != "string" {
		t.Errorf("grid schema = %+v, want array of arrays of strings", grid)
	}
}

func TestParamsSchema_RequiredSkipsDefaulted(t *testing.T) {
	schema, err := ParamsSchema(fixtureParams{})
	if err != nil {
		t.Fatalf("ParamsSchema: %v", err)
	}
	if !slices.Equal(schema.Required, []string{"id", "kind"}) {
		t.Errorf("Required = %v, want [id kind]", schema.Required)
	}
}

func TestParamsSchema_ArrayBoundsApplyToItems(t *testing.T) {
	schema, err := ParamsSchema(&fixtureParams{})
	if err != nil {
		t.Fatalf("ParamsSchema: %v", err)
	}
	series := schema.Properties["series"]
	if series.MinItems == nil || *series.MinItems != 1 {
		t.Fatalf("series.MinItems = %v, want 1", series.MinItems)
	}
	values := series.Items.Properties["values"]
	if values.MinItems == nil || *values.MinItems != 1 {
		t.Errorf("values.MinItems = %v, want 1", values.MinItems)
	}
	if values.Minimum != nil {
		t.Error("minimum should sit on the items, not the array")
	}
	if values.Items.Minimum == nil || *values.Items.Minimum != 0 {
		t.Errorf("values.Items.Minimum = %v, want 0", values.Items.Minimum)
	}
}

func TestParamsSchema_RejectsNonStruct(t *testing.T) {
	if _, err := ParamsSchema(42); err == nil {
		t.Fatal("expected error for non-struct params")
	}
}

func TestParamsSchema_JSONKeywords(t *testing.T) {
	schema, err := ParamsSchema(&fixtureParams{})
	if err != nil {
		t.Fatalf("ParamsSchema: %v", err)
	}
	data, err := json.Marshal(schema.Properties["x"])
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	var decoded map[string]any
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if decoded["minimum"] != 0.0 || decoded["maximum"] != 10.0 {
		t.Errorf("x keywords = %v, want minimum 0 and maximum 10", decoded)
	}
}

func TestOutputSchema(t *testing.T) {
	type output struct {
		URL   string `json:"url" desc:"download URL"`
		Count int    `json:"count"`
	}
	schema, err := OutputSchema(output{})
	if err != nil {
		t.Fatalf("OutputSchema: %v", err)
	}
	if schema.Properties["url"].Description != "download URL" {
		t.Errorf("url description = %q", schema.Properties["url"].Description)
	}
	if _, err := OutputSchema(nil); err == nil {
		t.Error("expected error for nil output")
	}
}
