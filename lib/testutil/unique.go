// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package testutil

import (
	"fmt"
	"sync/atomic"
)

// Sequence returns an id generator that yields prefix-1, prefix-2,
// and so on. The numbering is local to the returned function, so a
// test can predict every id it will see.
func Sequence(prefix string) func() string {
	var counter atomic.Uint64
	return func() string {
		return fmt.Sprintf("%s-%d", prefix, counter.Add(1))
	}
}
