// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"bytes"
	"encoding/json"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/spf13/pflag"
)

// FlagsFromParams creates a [pflag.FlagSet] with flags bound to the
// tagged fields of params. params must be a pointer to a struct.
// Panics on invalid input (programming error, not runtime data).
//
//	var params serveParams
//	command := &cli.Command{
//	    Flags: func() *pflag.FlagSet {
//	        return cli.FlagsFromParams("serve", &params)
//	    },
//	    Run: func(args []string) error {
//	        // params fields are populated after flag parsing
//	    },
//	}
func FlagsFromParams(name string, params any) *pflag.FlagSet {
	flagSet := pflag.NewFlagSet(name, pflag.ContinueOnError)
	if err := BindFlags(params, flagSet); err != nil {
		panic(fmt.Sprintf("cli.FlagsFromParams(%q): %v", name, err))
	}
	return flagSet
}

// BindFlags registers pflag entries for each tagged field in params.
// params must be a pointer to a struct.
//
//   - flag:"name" or flag:"name,n" -- the long flag name and optional
//     single-character shorthand. Fields without a flag tag are skipped.
//   - desc:"help text" -- the flag's help description.
//   - default:"value" -- the default, parsed according to the field's
//     Go type.
//
// Supported field types: string, bool, int, float64, [time.Duration],
// []string. Embedded structs are bound recursively.
func BindFlags(params any, flagSet *pflag.FlagSet) error {
	value := reflect.ValueOf(params)
	if value.Kind() != reflect.Pointer || value.Elem().Kind() != reflect.Struct {
		return fmt.Errorf("params must be a pointer to a struct, got %T", params)
	}
	return bindStructFields(value.Elem(), flagSet)
}

func bindStructFields(structValue reflect.Value, flagSet *pflag.FlagSet) error {
	structType := structValue.Type()
	for i := range structType.NumField() {
		field := structType.Field(i)
		fieldValue := structValue.Field(i)

		if field.Anonymous && field.Type.Kind() == reflect.Struct {
			if err := bindStructFields(fieldValue, flagSet); err != nil {
				return fmt.Errorf("embedded %s: %w", field.Name, err)
			}
			continue
		}

		flagTag := field.Tag.Get("flag")
		if flagTag == "" {
			continue
		}
		name, shorthand, _ := strings.Cut(flagTag, ",")
		if err := bindField(fieldValue, flagSet, name, shorthand, field.Tag.Get("desc"), field.Tag.Get("default")); err != nil {
			return fmt.Errorf("field %s: %w", field.Name, err)
		}
	}
	return nil
}

// bindField creates a pflag binding for a single struct field.
func bindField(fieldValue reflect.Value, flagSet *pflag.FlagSet, name, shorthand, description, defaultString string) error {
	if !fieldValue.CanAddr() {
		return fmt.Errorf("flag --%s: field is not addressable", name)
	}

	var defaultValue any
	if defaultString != "" {
		parsed, err := parseDefault(fieldValue.Type(), defaultString)
		if err != nil {
			return fmt.Errorf("default for --%s: %w", name, err)
		}
		defaultValue = parsed
	}

	switch target := fieldValue.Addr().Interface().(type) {
	case *string:
		flagSet.StringVarP(target, name, shorthand, defaultString, description)
	case *bool:
		value, _ := defaultValue.(bool)
		flagSet.BoolVarP(target, name, shorthand, value, description)
	case *int:
		value, _ := defaultValue.(int)
		flagSet.IntVarP(target, name, shorthand, value, description)
	case *float64:
		value, _ := defaultValue.(float64)
		flagSet.Float64VarP(target, name, shorthand, value, description)
	case *time.Duration:
		var value time.Duration
		if defaultString != "" {
			value, _ = time.ParseDuration(defaultString)
		}
		flagSet.DurationVarP(target, name, shorthand, value, description)
	case *[]string:
		value, _ := defaultValue.([]string)
		flagSet.StringSliceVarP(target, name, shorthand, value, description)
	default:
		return fmt.Errorf("unsupported type %s for flag --%s", fieldValue.Type(), name)
	}
	return nil
}

// ApplyDefaults sets every field of params that carries a default tag
// to its parsed default. params must be a pointer to a struct.
// Embedded structs are handled recursively.
func ApplyDefaults(params any) error {
	value := reflect.ValueOf(params)
	if value.Kind() != reflect.Pointer || value.Elem().Kind() != reflect.Struct {
		return Internal("params must be a pointer to a struct, got %T", params)
	}
	return applyStructDefaults(value.Elem())
}

func applyStructDefaults(structValue reflect.Value) error {
	structType := structValue.Type()
	for i := range structType.NumField() {
		field := structType.Field(i)
		fieldValue := structValue.Field(i)

		if field.Anonymous && field.Type.Kind() == reflect.Struct {
			if err := applyStructDefaults(fieldValue); err != nil {
				return err
			}
			continue
		}

		defaultString := field.Tag.Get("default")
		if defaultString == "" || !fieldValue.CanSet() {
			continue
		}
		parsed, err := parseDefault(field.Type, defaultString)
		if err != nil {
			return Internal("default for %s: %w", field.Name, err)
		}
		if field.Type == durationType {
			duration, _ := time.ParseDuration(defaultString)
			fieldValue.SetInt(int64(duration))
			continue
		}
		fieldValue.Set(reflect.ValueOf(parsed).Convert(field.Type))
	}
	return nil
}

// DecodeParams fills params from JSON tool arguments: defaults first,
// then the arguments overlaid on top. Arguments should already have
// passed [Schema.Validate]; a decode failure here is reported as a
// validation error all the same. Empty or null arguments leave the
// defaults in place.
func DecodeParams(params any, arguments json.RawMessage) error {
	if err := ApplyDefaults(params); err != nil {
		return err
	}
	trimmed := bytes.TrimSpace(arguments)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil
	}
	if err := json.Unmarshal(trimmed, params); err != nil {
		return Validation("invalid arguments: %w", err)
	}
	return nil
}
