// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"encoding/json"
	"reflect"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Schema is a JSON Schema representation covering the subset needed
// for MCP tool input and output descriptions, plus the validation
// keywords the tool parameters use.
type Schema struct {
	// Type is the JSON Schema type: "object", "string", "boolean",
	// "integer", "number", or "array". Empty accepts any value.
	Type string `json:"type,omitempty"`

	// Description is populated from the desc struct tag.
	Description string `json:"description,omitempty"`

	// Properties maps property names to their schemas. Only set when
	// Type is "object".
	Properties map[string]*Schema `json:"properties,omitempty"`

	// Required lists property names that must be provided.
	Required []string `json:"required,omitempty"`

	// Default is parsed from the default struct tag to the field's
	// JSON type.
	Default any `json:"default,omitempty"`

	// Items describes the element type for array schemas.
	Items *Schema `json:"items,omitempty"`

	// AdditionalProperties describes the value type for map-typed
	// object schemas.
	AdditionalProperties *Schema `json:"additionalProperties,omitempty"`

	// Format is an optional format hint ("duration", "date-time").
	Format string `json:"format,omitempty"`

	// Enum is the closed set of allowed string values, from types
	// implementing [Enum].
	Enum []string `json:"enum,omitempty"`

	// Minimum and Maximum are inclusive numeric bounds, from the
	// minimum and maximum struct tags.
	Minimum *float64 `json:"minimum,omitempty"`
	Maximum *float64 `json:"maximum,omitempty"`

	// Pattern is a regular expression string values must match.
	Pattern string `json:"pattern,omitempty"`

	// MinItems is the minimum array length, from the minItems tag.
	MinItems *int `json:"minItems,omitempty"`
}

// Enum is implemented by string types with a closed set of values.
// Fields of such types get an enum keyword in their schema.
type Enum interface {
	EnumValues() []string
}

var enumType = reflect.TypeOf((*Enum)(nil)).Elem()

// ParamsSchema generates a JSON Schema from a parameter struct. Property
// names come from json tags (fields without one, or with "-", are
// excluded), descriptions from desc tags, and defaults from default
// tags. A field is required when tagged required:"true" and has no
// default.
//
// params must be a struct or a pointer to one.
func ParamsSchema(params any) (*Schema, error) {
	typ := reflect.TypeOf(params)
	if typ != nil && typ.Kind() == reflect.Pointer {
		typ = typ.Elem()
	}
	if typ == nil || typ.Kind() != reflect.Struct {
		return nil, Internal("params must be a struct or pointer to struct, got %T", params)
	}
	return buildObjectSchema(typ)
}

// buildObjectSchema constructs a JSON Schema object from a struct type.
func buildObjectSchema(structType reflect.Type) (*Schema, error) {
	schema := &Schema{
		Type:       "object",
		Properties: make(map[string]*Schema),
	}

	for i := range structType.NumField() {
		field := structType.Field(i)

		// Embedded structs merge their properties into the parent.
		if field.Anonymous && field.Type.Kind() == reflect.Struct {
			embedded, err := buildObjectSchema(field.Type)
			if err != nil {
				return nil, Internal("embedded %s: %w", field.Name, err)
			}
			for name, property := range embedded.Properties {
				schema.Properties[name] = property
			}
			schema.Required = append(schema.Required, embedded.Required...)
			continue
		}
		if !field.IsExported() {
			continue
		}

		propertyName := jsonPropertyName(field)
		if propertyName == "" || propertyName == "-" {
			continue
		}

		property, err := fieldSchema(field)
		if err != nil {
			return nil, Internal("field %s: %w", field.Name, err)
		}
		schema.Properties[propertyName] = property

		if field.Tag.Get("required") == "true" && field.Tag.Get("default") == "" {
			schema.Required = append(schema.Required, propertyName)
		}
	}

	if len(schema.Properties) == 0 {
		schema.Properties = nil
	}
	return schema, nil
}

// jsonPropertyName extracts the JSON property name from a struct
// field's json tag. Returns "" if there is no json tag.
func jsonPropertyName(field reflect.StructField) string {
	name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
	return name
}

// fieldSchema builds the schema for one struct field from its type
// and tags. The desc, default, minimum, maximum, pattern and minItems
// tags are overlaid on the type's schema. On arrays of numbers the
// numeric bounds apply to the items; on arrays of strings the pattern
// does.
func fieldSchema(field reflect.StructField) (*Schema, error) {
	schema, err := schemaForType(field.Type)
	if err != nil {
		return nil, err
	}
	schema.Description = field.Tag.Get("desc")

	if defaultString := field.Tag.Get("default"); defaultString != "" {
		defaultValue, err := parseDefault(field.Type, defaultString)
		if err != nil {
			return nil, Internal("default: %w", err)
		}
		schema.Default = defaultValue
	}

	bounded := schema
	for bounded.Type == "array" && bounded.Items != nil {
		bounded = bounded.Items
	}

	if value := field.Tag.Get("minimum"); value != "" {
		minimum, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return nil, Internal("minimum: %w", err)
		}
		bounded.Minimum = &minimum
	}
	if value := field.Tag.Get("maximum"); value != "" {
		maximum, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return nil, Internal("maximum: %w", err)
		}
		bounded.Maximum = &maximum
	}
	if pattern := field.Tag.Get("pattern"); pattern != "" {
		if _, err := regexp.Compile(pattern); err != nil {
			return nil, Internal("pattern: %w", err)
		}
		bounded.Pattern = pattern
	}
	if value := field.Tag.Get("minItems"); value != "" {
		minItems, err := strconv.Atoi(value)
		if err != nil {
			return nil, Internal("minItems: %w", err)
		}
		if schema.Type != "array" {
			return nil, Internal("minItems on non-array field")
		}
		schema.MinItems = &minItems
	}
	return schema, nil
}

// parseDefault parses a default value string into the Go value whose
// JSON encoding matches the field's type.
func parseDefault(fieldType reflect.Type, value string) (any, error) {
	if fieldType == durationType {
		if _, err := time.ParseDuration(value); err != nil {
			return nil, err
		}
		return value, nil
	}

	switch fieldType.Kind() {
	case reflect.String:
		return value, nil
	case reflect.Bool:
		return strconv.ParseBool(value)
	case reflect.Int:
		return strconv.Atoi(value)
	case reflect.Float64:
		return strconv.ParseFloat(value, 64)
	case reflect.Slice:
		if fieldType.Elem().Kind() == reflect.String {
			return strings.Split(value, ","), nil
		}
		return nil, Internal("unsupported slice type %s", fieldType)
	default:
		return nil, Internal("unsupported type %s", fieldType)
	}
}

// OutputSchema generates a JSON Schema from a tool's structured output
// type. Pointers are dereferenced.
func OutputSchema(output any) (*Schema, error) {
	typ := reflect.TypeOf(output)
	if typ == nil {
		return nil, Internal("output type is nil")
	}
	return schemaForType(typ)
}

var (
	timeType       = reflect.TypeOf(time.Time{})
	durationType   = reflect.TypeOf(time.Duration(0))
	rawMessageType = reflect.TypeOf(json.RawMessage{})
)

// schemaForType generates a JSON Schema from a reflect.Type. Types
// with custom JSON marshaling (time.Time, time.Duration,
// json.RawMessage) match their serialized form.
func schemaForType(typ reflect.Type) (*Schema, error) {
	switch typ {
	case timeType:
		return &Schema{Type: "string", Format: "date-time"}, nil
	case durationType:
		return &Schema{Type: "string", Format: "duration"}, nil
	case rawMessageType:
		return &Schema{}, nil
	}

	if typ.Kind() != reflect.Pointer && typ.Implements(enumType) {
		values := reflect.Zero(typ).Interface().(Enum).EnumValues()
		return &Schema{Type: "string", Enum: values}, nil
	}

	switch typ.Kind() {
	case reflect.Struct:
		return buildObjectSchema(typ)
	case reflect.Slice, reflect.Array:
		items, err := schemaForType(typ.Elem())
		if err != nil {
			return nil, Internal("array element: %w", err)
		}
		return &Schema{Type: "array", Items: items}, nil
	case reflect.Pointer:
		return schemaForType(typ.Elem())
	case reflect.String:
		return &Schema{Type: "string"}, nil
	case reflect.Bool:
		return &Schema{Type: "boolean"}, nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return &Schema{Type: "integer"}, nil
	case reflect.Float32, reflect.Float64:
		return &Schema{Type: "number"}, nil
	case reflect.Map:
		if typ.Key().Kind() != reflect.String {
			return nil, Internal("unsupported map key type %s", typ.Key())
		}
		if typ.Elem().Kind() == reflect.Interface {
			return &Schema{Type: "object"}, nil
		}
		values, err := schemaForType(typ.Elem())
		if err != nil {
			return nil, err
		}
		return &Schema{Type: "object", AdditionalProperties: values}, nil
	case reflect.Interface:
		return &Schema{}, nil
	default:
		return nil, Internal("unsupported type %s (%s)", typ, typ.Kind())
	}
}
