// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package deck

// Shape is a preset geometry with an optional outline and fill.
type Shape struct {
	Frame    Frame     `cbor:"frame"`
	Geometry ShapeKind `cbor:"shape"`
	Align    Align     `cbor:"align,omitempty"`
	FlipH    bool      `cbor:"flip_h,omitempty"`
	FlipV    bool      `cbor:"flip_v,omitempty"`

	// Line is the outline. Nil draws no outline, except on the line
	// geometry, which has nothing else to show and gets a 1pt
	// [DefaultLineColor] stroke. Empty fields of a set Line take those
	// same defaults.
	Line *Line `cbor:"line,omitempty"`

	// RectRadius is the corner radius of a roundRect in inches.
	RectRadius float64 `cbor:"rect_radius,omitempty"`

	// Rotate is the clockwise rotation in degrees.
	Rotate float64 `cbor:"rotate,omitempty"`

	// Fill is the interior. Nil leaves the shape unfilled.
	Fill *Fill `cbor:"fill,omitempty"`
}

// outline returns the Line to draw, nil for none.
func (s *Shape) outline() *Line {
	if s.Line == nil && s.Geometry == ShapeLine {
		return &Line{}
	}
	return s.Line
}

// DefaultLineColor is the outline color of a Line that does not set one.
const DefaultLineColor = "333333"

// Line is a shape outline.
type Line struct {
	Color string `cbor:"color,omitempty"`

	// Width is in points.
	Width      float64   `cbor:"width,omitempty"`
	DashType   DashType  `cbor:"dash_type,omitempty"`
	BeginArrow ArrowType `cbor:"begin_arrow,omitempty"`
	EndArrow   ArrowType `cbor:"end_arrow,omitempty"`
}

// Kind implements [Element].
func (*Shape) Kind() ElementKind { return KindShape }

func (s *Shape) check() Result {
	if !s.Geometry.Valid() {
		return Failed("shape: unknown shape %q", s.Geometry)
	}
	if result := s.Frame.check(); !result.OK() {
		return Failed("shape: %s", result.Reason())
	}
	if !s.Align.Valid() {
		return Failed("shape: unknown alignment %q", s.Align)
	}
	if s.RectRadius < 0 {
		return Failed("shape: rectRadius %g is negative", s.RectRadius)
	}
	if s.Line != nil {
		color, err := NormalizeColor(s.Line.Color)
		if err != nil {
			return Failed("shape: line %v", err)
		}
		s.Line.Color = color
		if s.Line.Width != 0 && (s.Line.Width < 1 || s.Line.Width > 256) {
			return Failed("shape: line width %g is outside 1-256", s.Line.Width)
		}
		if !s.Line.DashType.Valid() {
			return Failed("shape: unknown dash type %q", s.Line.DashType)
		}
		if !s.Line.BeginArrow.Valid() || !s.Line.EndArrow.Valid() {
			return Failed("shape: unknown arrow type")
		}
	}
	if s.Fill != nil {
		if result := s.Fill.check(); !result.OK() {
			return Failed("shape: %s", result.Reason())
		}
	}
	return Ok()
}

// roundRectAdjust returns the DrawingML "adj" guide for a roundRect:
// the corner radius as a fraction (in 1/100000ths) of the shorter
// side, capped at the geometry's maximum of one half.
func (s *Shape) roundRectAdjust() int64 {
	shorter := min(s.Frame.W, s.Frame.H)
	if shorter <= 0 {
		return 0
	}
	adjust := int64(s.RectRadius / shorter * 100000)
	return min(adjust, 50000)
}
