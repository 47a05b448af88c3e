// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package deck

// ElementKind names an element variant.
type ElementKind string

const (
	KindText  ElementKind = "text"
	KindTable ElementKind = "table"
	KindShape ElementKind = "shape"
	KindChart ElementKind = "chart"
)

// Element is content placed on a slide. The set of implementations is
// closed: [*Text], [*Table], [*Shape], and [*Chart]. The writer
// dispatches on the concrete type.
type Element interface {
	// Kind identifies the variant.
	Kind() ElementKind

	// check validates the element's content beyond what a schema can
	// express (cross-field shape constraints). It runs once, when the
	// element is added.
	check() Result
}

// Text is a text box. Each line of Text becomes a paragraph.
type Text struct {
	Frame    Frame  `cbor:"frame"`
	Text     string `cbor:"text"`
	Align    Align  `cbor:"align,omitempty"`
	Bold     bool   `cbor:"bold,omitempty"`
	Color    string `cbor:"color,omitempty"`
	FontFace string `cbor:"font_face,omitempty"`

	// FontSize is in points. Zero selects [DefaultFontSize].
	FontSize float64 `cbor:"font_size,omitempty"`
}

// DefaultFontSize is the font size in points applied to text boxes and
// table cells that do not set one.
const DefaultFontSize = 18

// Kind implements [Element].
func (*Text) Kind() ElementKind { return KindText }

func (t *Text) check() Result {
	if result := t.Frame.check(); !result.OK() {
		return Failed("text box: %s", result.Reason())
	}
	if !t.Align.Valid() {
		return Failed("text box: unknown alignment %q", t.Align)
	}
	color, err := NormalizeColor(t.Color)
	if err != nil {
		return Failed("text box: %v", err)
	}
	t.Color = color
	return Ok()
}

// Border is a table border applied to every edge of every cell.
type Border struct {
	Type BorderType `cbor:"type,omitempty"`

	// Points is the stroke width in points.
	Points float64 `cbor:"pt"`
	Color  string  `cbor:"color,omitempty"`
}

// Fill is a solid fill with optional transparency.
type Fill struct {
	Color string `cbor:"color"`

	// Transparency is a percentage: 0 is opaque, 100 is invisible.
	Transparency float64 `cbor:"transparency,omitempty"`
}

func (f *Fill) check() Result {
	color, err := NormalizeColor(f.Color)
	if err != nil {
		return Failed("fill: %v", err)
	}
	if color == "" {
		return Failed("fill: color is required")
	}
	if f.Transparency < 0 || f.Transparency > 100 {
		return Failed("fill: transparency %g is outside 0-100", f.Transparency)
	}
	f.Color = color
	return Ok()
}
