// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package deck

import "slices"

// Each enumerated option type lists its closed set of values through
// EnumValues. The tool schemas advertise these sets and the argument
// validator rejects anything outside them, so the writer can map
// values to DrawingML without a fallback.

// Align is horizontal text alignment.
type Align string

const (
	AlignLeft    Align = "left"
	AlignCenter  Align = "center"
	AlignRight   Align = "right"
	AlignJustify Align = "justify"
)

// EnumValues returns every valid Align.
func (Align) EnumValues() []string {
	return []string{"left", "center", "right", "justify"}
}

// Valid reports whether a is a known alignment. The empty string is
// valid and means "inherit".
func (a Align) Valid() bool {
	return a == "" || slices.Contains(a.EnumValues(), string(a))
}

// drawingML returns the ST_TextAlignType value for a.
func (a Align) drawingML() string {
	switch a {
	case AlignCenter:
		return "ctr"
	case AlignRight:
		return "r"
	case AlignJustify:
		return "just"
	default:
		return "l"
	}
}

// BorderType is the stroke of a table cell border.
type BorderType string

const (
	BorderNone  BorderType = "none"
	BorderSolid BorderType = "solid"
	BorderDash  BorderType = "dash"
)

// EnumValues returns every valid BorderType.
func (BorderType) EnumValues() []string {
	return []string{"none", "solid", "dash"}
}

// Valid reports whether b is a known border type.
func (b BorderType) Valid() bool {
	return b == "" || slices.Contains(b.EnumValues(), string(b))
}

// DashType is the dash pattern of a shape outline. Values are the
// DrawingML ST_PresetLineDashVal names.
type DashType string

const (
	DashSolid        DashType = "solid"
	DashDash         DashType = "dash"
	DashDashDot      DashType = "dashDot"
	DashLgDash       DashType = "lgDash"
	DashLgDashDot    DashType = "lgDashDot"
	DashLgDashDotDot DashType = "lgDashDotDot"
	DashSysDash      DashType = "sysDash"
	DashSysDot       DashType = "sysDot"
)

// EnumValues returns every valid DashType.
func (DashType) EnumValues() []string {
	return []string{"solid", "dash", "dashDot", "lgDash", "lgDashDot", "lgDashDotDot", "sysDash", "sysDot"}
}

// Valid reports whether d is a known dash type.
func (d DashType) Valid() bool {
	return d == "" || slices.Contains(d.EnumValues(), string(d))
}

// ArrowType is the decoration at one end of a shape outline. Values
// are the DrawingML ST_LineEndType names.
type ArrowType string

const (
	ArrowNone     ArrowType = "none"
	ArrowArrow    ArrowType = "arrow"
	ArrowDiamond  ArrowType = "diamond"
	ArrowOval     ArrowType = "oval"
	ArrowStealth  ArrowType = "stealth"
	ArrowTriangle ArrowType = "triangle"
)

// EnumValues returns every valid ArrowType.
func (ArrowType) EnumValues() []string {
	return []string{"none", "arrow", "diamond", "oval", "stealth", "triangle"}
}

// Valid reports whether a is a known arrow type.
func (a ArrowType) Valid() bool {
	return a == "" || slices.Contains(a.EnumValues(), string(a))
}

// ShapeKind is a preset geometry. Values are the DrawingML
// ST_ShapeType names, written through unchanged.
type ShapeKind string

const (
	ShapeRect          ShapeKind = "rect"
	ShapeRoundRect     ShapeKind = "roundRect"
	ShapeEllipse       ShapeKind = "ellipse"
	ShapeTriangle      ShapeKind = "triangle"
	ShapeRtTriangle    ShapeKind = "rtTriangle"
	ShapeDiamond       ShapeKind = "diamond"
	ShapeParallelogram ShapeKind = "parallelogram"
	ShapeTrapezoid     ShapeKind = "trapezoid"
	ShapePentagon      ShapeKind = "pentagon"
	ShapeHexagon       ShapeKind = "hexagon"
	ShapeOctagon       ShapeKind = "octagon"
	ShapeStar5         ShapeKind = "star5"
	ShapeRightArrow    ShapeKind = "rightArrow"
	ShapeLeftArrow     ShapeKind = "leftArrow"
	ShapeUpArrow       ShapeKind = "upArrow"
	ShapeDownArrow     ShapeKind = "downArrow"
	ShapeChevron       ShapeKind = "chevron"
	ShapeHeart         ShapeKind = "heart"
	ShapeCloud         ShapeKind = "cloud"
	ShapeLine          ShapeKind = "line"
)

// EnumValues returns every valid ShapeKind.
func (ShapeKind) EnumValues() []string {
	return []string{
		"rect", "roundRect", "ellipse", "triangle", "rtTriangle",
		"diamond", "parallelogram", "trapezoid", "pentagon", "hexagon",
		"octagon", "star5", "rightArrow", "leftArrow", "upArrow",
		"downArrow", "chevron", "heart", "cloud", "line",
	}
}

// Valid reports whether s is a known shape. Unlike the option enums,
// a shape kind is mandatory.
func (s ShapeKind) Valid() bool {
	return slices.Contains(s.EnumValues(), string(s))
}

// ChartType is the kind of chart drawn from a set of series.
type ChartType string

const (
	ChartArea     ChartType = "area"
	ChartBar      ChartType = "bar"
	ChartLine     ChartType = "line"
	ChartPie      ChartType = "pie"
	ChartDoughnut ChartType = "doughnut"
	ChartRadar    ChartType = "radar"
)

// EnumValues returns every valid ChartType.
func (ChartType) EnumValues() []string {
	return []string{"area", "bar", "line", "pie", "doughnut", "radar"}
}

// Valid reports whether c is a known chart type.
func (c ChartType) Valid() bool {
	return slices.Contains(c.EnumValues(), string(c))
}

// hasAxes reports whether the chart type is drawn against a category
// and a value axis. Pie and doughnut charts have no axes.
func (c ChartType) hasAxes() bool {
	return c != ChartPie && c != ChartDoughnut
}
