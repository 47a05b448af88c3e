// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package deck

import (
	"fmt"
	"regexp"
	"strings"
)

// ColorPattern is the JSON Schema pattern accepted for color fields:
// six hex digits with an optional leading '#'.
const ColorPattern = `^#?[0-9A-Fa-f]{6}$`

var colorPattern = regexp.MustCompile(ColorPattern)

// NormalizeColor strips an optional leading '#' and upper-cases a
// six-digit hex RGB color. An empty string stays empty (no color).
func NormalizeColor(color string) (string, error) {
	if color == "" {
		return "", nil
	}
	if !colorPattern.MatchString(color) {
		return "", fmt.Errorf("color %q is not a 6-digit hex RGB value", color)
	}
	return strings.ToUpper(strings.TrimPrefix(color, "#")), nil
}
