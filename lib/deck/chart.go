// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package deck

import "math"

// Chart is a category chart. All series share the category labels of
// the first series; each series must supply one value per label.
type Chart struct {
	Frame  Frame     `cbor:"frame"`
	Type   ChartType `cbor:"type"`
	Series []Series  `cbor:"series"`
}

// Series is one named run of values over category labels.
type Series struct {
	Name   string    `cbor:"name"`
	Labels []string  `cbor:"labels"`
	Values []float64 `cbor:"values"`
}

// Kind implements [Element].
func (*Chart) Kind() ElementKind { return KindChart }

func (c *Chart) check() Result {
	if !c.Type.Valid() {
		return Failed("chart: unknown chart type %q", c.Type)
	}
	if result := c.Frame.check(); !result.OK() {
		return Failed("chart: %s", result.Reason())
	}
	if len(c.Series) == 0 {
		return Failed("chart: at least one series is required")
	}
	categories := len(c.Series[0].Labels)
	if categories == 0 {
		return Failed("chart: series %q has no labels", c.Series[0].Name)
	}
	for index, series := range c.Series {
		if len(series.Values) != len(series.Labels) {
			return Failed("chart: series %d (%q) has %d labels and %d values",
				index, series.Name, len(series.Labels), len(series.Values))
		}
		if len(series.Labels) != categories {
			return Failed("chart: series %d (%q) has %d labels, expected %d",
				index, series.Name, len(series.Labels), categories)
		}
		for valueIndex, value := range series.Values {
			if math.IsNaN(value) || math.IsInf(value, 0) {
				return Failed("chart: series %d value %d is not a finite number", index, valueIndex)
			}
		}
	}
	return Ok()
}
