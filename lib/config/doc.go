// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package config provides YAML configuration loading for deckhand.
//
// A configuration file is optional. When one is named, by the
// --config flag or the DECKHAND_CONFIG environment variable (via
// [Load]), it is layered over [Default]. When neither is set the
// defaults are used as-is. Command-line flags are applied by the
// caller after loading and take precedence over file values.
//
// The file may contain environment-specific sections (development,
// production) that override base values when [Config].Environment
// matches. Production defaults to warn-level logging.
//
// Variable expansion is performed on the output directory after
// loading: ${HOME}, ${TMPDIR}, and ${VAR:-default} patterns are
// expanded. No other environment variables override config values.
//
// Key exports:
//
//   - [Config] -- master struct with Server, Output, Logging
//   - [Default] -- returns a Config with development defaults
//   - [Load] and [LoadFile] -- the two entry points for loading
//
// This package depends on no other deckhand packages.
package config
