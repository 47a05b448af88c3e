// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package fileserver publishes finished presentations and serves them
// over HTTP.
//
// A [Directory] is the output directory on disk. Publishing writes a
// file through a temporary name and renames it into place, so a
// reader never observes a partial file. Each published file carries a
// content fingerprint that the HTTP handler returns as its ETag.
//
// A [Server] serves a Directory on an already-bound listener (see
// netutil.ListenFirstFree). Only top-level files are served; there is
// no directory listing and dot-files (including in-flight temporary
// files) are never exposed.
package fileserver
