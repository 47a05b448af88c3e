// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package codec provides deckhand's CBOR encoding configuration.
//
// JSON is the wire format of every external interface (MCP, CLI
// output, replay scripts). CBOR is used internally where byte-exact
// reproducibility matters: the presentation model is encoded with
// Core Deterministic Encoding (RFC 8949 §4.2) and hashed to produce
// the content fingerprint served as an ETag.
//
//	data, err := codec.Marshal(value)
package codec
