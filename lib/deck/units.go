// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package deck

import "math"

// Canvas dimensions in inches. These are the 16:9 defaults of
// PowerPoint and every geometry bound in the tool schemas derives
// from them.
const (
	CanvasWidth  = 10.0
	CanvasHeight = 5.625
)

// EMUs (English Metric Units) per inch and per point.
const (
	emuPerInch  = 914400
	emuPerPoint = 12700
)

// EMU converts inches to English Metric Units, rounding to the
// nearest unit.
func EMU(inches float64) int64 {
	return int64(math.Round(inches * emuPerInch))
}

// PointsToEMU converts a length in points (line widths, border
// thickness) to English Metric Units.
func PointsToEMU(points float64) int64 {
	return int64(math.Round(points * emuPerPoint))
}

// fontSizeHundredths converts a font size in points to the
// hundredths-of-a-point integer used by DrawingML run properties.
func fontSizeHundredths(points float64) int {
	return int(math.Round(points * 100))
}

// rotationAngle converts degrees (any sign, any magnitude) to the
// 60000ths-of-a-degree value DrawingML expects, normalized into
// [0, 360) degrees.
func rotationAngle(degrees float64) int64 {
	normalized := math.Mod(degrees, 360)
	if normalized < 0 {
		normalized += 360
	}
	return int64(math.Round(normalized * 60000))
}

// Frame is the position and size of an element in inches, measured
// from the top-left corner of the slide.
type Frame struct {
	X float64 `json:"x" cbor:"x"`
	Y float64 `json:"y" cbor:"y"`
	W float64 `json:"w" cbor:"w"`
	H float64 `json:"h" cbor:"h"`
}

// check rejects frames that cannot be drawn: negative coordinates or
// a negative size.
func (f Frame) check() Result {
	if f.X < 0 || f.Y < 0 {
		return Failed("position (%g, %g) is off the slide", f.X, f.Y)
	}
	if f.W < 0 || f.H < 0 {
		return Failed("size %gx%g is negative", f.W, f.H)
	}
	return Ok()
}
