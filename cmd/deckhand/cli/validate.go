// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"regexp"
	"slices"
	"strconv"
	"sync"
)

// patternCache holds compiled Pattern expressions, keyed by source.
var patternCache sync.Map

func compilePattern(pattern string) (*regexp.Regexp, error) {
	if cached, ok := patternCache.Load(pattern); ok {
		return cached.(*regexp.Regexp), nil
	}
	compiled, err := regexp.Compile(pattern)
	if err != nil {
		return nil, err
	}
	patternCache.Store(pattern, compiled)
	return compiled, nil
}

// Validate checks raw JSON arguments against the schema. It returns
// nil or a validation [ToolError] naming the first offending field by
// path (e.g. "data[0].values[2]") and the violated constraint.
//
// Empty or null arguments are treated as an empty object. A null
// value for an optional property is treated as absent. A property the
// schema does not declare is rejected unless the schema allows
// additional properties. Decoding matches keys case-insensitively, so
// an undeclared "X" would otherwise override a checked "x".
func (s *Schema) Validate(arguments json.RawMessage) error {
	trimmed := bytes.TrimSpace(arguments)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		trimmed = []byte("{}")
	}

	decoder := json.NewDecoder(bytes.NewReader(trimmed))
	decoder.UseNumber()
	var value any
	if err := decoder.Decode(&value); err != nil {
		return Validation("arguments are not valid JSON: %v", err)
	}
	return s.validateValue(value, "")
}

func (s *Schema) validateValue(value any, path string) error {
	switch s.Type {
	case "":
		return nil
	case "object":
		return s.validateObject(value, path)
	case "array":
		return s.validateArray(value, path)
	case "string":
		return s.validateString(value, path)
	case "number", "integer":
		return s.validateNumber(value, path)
	case "boolean":
		if _, ok := value.(bool); !ok {
			return mismatch(path, "a boolean", value)
		}
		return nil
	default:
		return Internal("%s: unsupported schema type %q", describePath(path), s.Type)
	}
}

func (s *Schema) validateObject(value any, path string) error {
	object, ok := value.(map[string]any)
	if !ok {
		return mismatch(path, "an object", value)
	}

	for _, name := range s.Required {
		if property, present := object[name]; !present || property == nil {
			return Validation("%s: required property is missing", joinPath(path, name))
		}
	}

	// Deterministic order so the reported field is stable.
	names := make([]string, 0, len(s.Properties))
	for name := range s.Properties {
		names = append(names, name)
	}
	slices.Sort(names)
	for _, name := range names {
		property, present := object[name]
		if !present || property == nil {
			continue
		}
		if err := s.Properties[name].validateValue(property, joinPath(path, name)); err != nil {
			return err
		}
	}

	keys := make([]string, 0, len(object))
	for key := range object {
		if _, declared := s.Properties[key]; !declared {
			keys = append(keys, key)
		}
	}
	slices.Sort(keys)
	for _, key := range keys {
		if s.AdditionalProperties == nil {
			return Validation("%s: unknown property", joinPath(path, key))
		}
		if err := s.AdditionalProperties.validateValue(object[key], joinPath(path, key)); err != nil {
			return err
		}
	}
	return nil
}

func (s *Schema) validateArray(value any, path string) error {
	array, ok := value.([]any)
	if !ok {
		return mismatch(path, "an array", value)
	}
	if s.MinItems != nil && len(array) < *s.MinItems {
		return Validation("%s: must have at least %d items, got %d", describePath(path), *s.MinItems, len(array))
	}
	if s.Items == nil {
		return nil
	}
	for index, item := range array {
		itemPath := fmt.Sprintf("%s[%d]", path, index)
		if item == nil {
			return Validation("%s: must not be null", itemPath)
		}
		if err := s.Items.validateValue(item, itemPath); err != nil {
			return err
		}
	}
	return nil
}

func (s *Schema) validateString(value any, path string) error {
	text, ok := value.(string)
	if !ok {
		return mismatch(path, "a string", value)
	}
	if len(s.Enum) > 0 && !slices.Contains(s.Enum, text) {
		return Validation("%s: %q is not one of %v", describePath(path), text, s.Enum)
	}
	if s.Pattern != "" {
		pattern, err := compilePattern(s.Pattern)
		if err != nil {
			return Internal("%s: invalid pattern %q: %w", describePath(path), s.Pattern, err)
		}
		if !pattern.MatchString(text) {
			return Validation("%s: %q does not match %s", describePath(path), text, s.Pattern)
		}
	}
	return nil
}

func (s *Schema) validateNumber(value any, path string) error {
	literal, ok := value.(json.Number)
	if !ok {
		return mismatch(path, "a number", value)
	}
	number, err := strconv.ParseFloat(string(literal), 64)
	if err != nil || math.IsInf(number, 0) {
		return Validation("%s: %s is not a representable number", describePath(path), literal)
	}
	if s.Type == "integer" && number != math.Trunc(number) {
		return Validation("%s: %s is not an integer", describePath(path), literal)
	}
	if s.Minimum != nil && number < *s.Minimum {
		return Validation("%s: %s is less than the minimum %g", describePath(path), literal, *s.Minimum)
	}
	if s.Maximum != nil && number > *s.Maximum {
		return Validation("%s: %s is greater than the maximum %g", describePath(path), literal, *s.Maximum)
	}
	return nil
}

func mismatch(path, want string, value any) error {
	return Validation("%s: must be %s, got %s", describePath(path), want, jsonKind(value))
}

func jsonKind(value any) string {
	switch value.(type) {
	case nil:
		return "null"
	case bool:
		return "boolean"
	case json.Number:
		return "number"
	case string:
		return "string"
	case []any:
		return "array"
	case map[string]any:
		return "object"
	default:
		return fmt.Sprintf("%T", value)
	}
}

func joinPath(path, name string) string {
	if path == "" {
		return name
	}
	return path + "." + name
}

func describePath(path string) string {
	if path == "" {
		return "arguments"
	}
	return path
}
