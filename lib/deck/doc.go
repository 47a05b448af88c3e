// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package deck is the in-memory presentation model and the Office
// Open XML (.pptx) writer behind the deckhand MCP server.
//
// A [Presentation] owns an ordered list of [Slide] values. Content is
// appended to a slide as one of four element variants, all
// implementing [Element]:
//
//   - [*Text] -- a text box, one paragraph per line of text
//   - [*Table] -- a grid of [Cell] values with optional borders and fills
//   - [*Shape] -- a preset geometry ([ShapeKind]) with line and fill
//   - [*Chart] -- a category chart ([ChartType]) backed by one or more
//     [Series]
//
// Elements have no identity once added: they cannot be referenced,
// edited, or removed. Geometry is expressed in inches on the default
// 16:9 canvas ([CanvasWidth] x [CanvasHeight]) and converted to EMUs
// only when the package is written.
//
// Operations that can fail on caller-supplied content ([Slide.Add],
// [Presentation.Write]) return a [Result] rather than a bare error, so
// that the failure reason travels to the tool layer verbatim.
//
// [Presentation.Fingerprint] digests the model (not the zip bytes,
// which embed timestamps) with BLAKE3 over its deterministic CBOR
// encoding. The file server uses it as the artifact's ETag.
//
// A Presentation is safe for concurrent use: every mutation and the
// writer take the presentation's lock.
package deck
