// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package registry holds the presentations a server is building.
//
// A [Registry] maps opaque document ids to [deck.Presentation] values
// and opaque slide ids to [deck.Slide] values. Document ids and slide
// ids are independent keyspaces: a slide id is never accepted where a
// document id is expected, and the reverse. Each slide remembers the
// document that created it, so finalizing a document retires exactly
// that document's slides.
//
// A Registry is safe for concurrent use. It is an explicit value,
// constructed per server and per test; there is no package-level
// state.
package registry
