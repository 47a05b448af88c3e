// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package testutil holds helpers shared by deckhand's tests: bounded
// channel waits, predictable id generators, and a logger that writes
// through testing.TB.
package testutil
