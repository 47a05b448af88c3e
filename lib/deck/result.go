// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package deck

import (
	"errors"
	"fmt"
)

// Result is the outcome of a call into the deck model. The zero value
// is success. A failed Result carries a human-readable reason that
// callers surface unchanged.
type Result struct {
	reason string
}

// Ok returns a successful Result.
func Ok() Result {
	return Result{}
}

// Failed returns a failed Result with a formatted reason.
func Failed(format string, args ...any) Result {
	reason := fmt.Sprintf(format, args...)
	if reason == "" {
		reason = "unspecified failure"
	}
	return Result{reason: reason}
}

// OK reports whether the call succeeded.
func (r Result) OK() bool {
	return r.reason == ""
}

// Reason returns the failure reason, or "" on success.
func (r Result) Reason() string {
	return r.reason
}

// Err converts the Result into an error: nil on success, otherwise an
// error whose message is exactly the failure reason.
func (r Result) Err() error {
	if r.OK() {
		return nil
	}
	return errors.New(r.reason)
}
