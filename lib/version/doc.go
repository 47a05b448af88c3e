// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package version reports which deckhand build is running: the
// semantic [Version], plus the commit and build time from -ldflags or,
// when those are unset, from the VCS information the Go toolchain
// stamps into the binary.
package version
