// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import "fmt"

// ErrorCategory classifies tool errors so that MCP clients can make
// programmatic decisions (fix input, give up, report) without parsing
// error message text.
type ErrorCategory string

const (
	// CategoryValidation indicates the caller provided invalid input:
	// a missing required argument, a value out of bounds, an unknown
	// enum value. The caller should fix the input and retry.
	CategoryValidation ErrorCategory = "validation"

	// CategoryNotFound indicates a referenced presentation or slide
	// does not exist, or was already finalized. Retrying with the
	// same id will not help.
	CategoryNotFound ErrorCategory = "not_found"

	// CategoryInternal indicates the rendering or publishing step
	// failed: malformed element content, an I/O error writing the
	// file.
	CategoryInternal ErrorCategory = "internal"
)

// ToolError is a categorized error returned by tool handlers. The MCP
// server inspects the Category to produce structured errorInfo
// alongside the human-readable error text.
//
// ToolError wraps an inner error, preserving the chain for errors.Is
// and errors.As. Use the category constructors rather than building
// one directly.
type ToolError struct {
	// Category classifies the error for programmatic handling.
	Category ErrorCategory

	// Err is the underlying error with the human-readable message.
	Err error
}

// Error returns the underlying error message. The category travels
// separately in errorInfo, not in the text content block.
func (e *ToolError) Error() string { return e.Err.Error() }

// Unwrap returns the underlying error.
func (e *ToolError) Unwrap() error { return e.Err }

// Retryable reports whether repeating the same call could succeed.
// None of the current categories are: validation and not-found
// failures are deterministic, and an internal failure needs a fix
// first.
func (e *ToolError) Retryable() bool { return false }

// Validation creates a validation error: the caller provided bad input.
func Validation(format string, args ...any) *ToolError {
	return &ToolError{Category: CategoryValidation, Err: fmt.Errorf(format, args...)}
}

// NotFound creates a not-found error: a referenced resource does not exist.
func NotFound(format string, args ...any) *ToolError {
	return &ToolError{Category: CategoryNotFound, Err: fmt.Errorf(format, args...)}
}

// Internal creates an internal error: a rendering, I/O, or programming
// failure.
func Internal(format string, args ...any) *ToolError {
	return &ToolError{Category: CategoryInternal, Err: fmt.Errorf(format, args...)}
}
