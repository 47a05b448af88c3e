// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package version

import (
	"fmt"
	"runtime"
	"runtime/debug"
	"strings"
)

// Set with -ldflags "-X github.com/bureau-foundation/deckhand/lib/version.Commit=...".
// Empty values fall back to the VCS stamp the Go toolchain embeds.
var (
	Version   = "0.1.0-dev"
	Commit    = ""
	BuildTime = ""
)

// build describes the binary's provenance.
type build struct {
	commit   string
	modified bool
	time     string
}

func current() build {
	b := build{commit: Commit, time: BuildTime}
	if info, ok := debug.ReadBuildInfo(); ok {
		b = fromSettings(b, info.Settings)
	}
	return b
}

// fromSettings fills fields the linker left empty from vcs.* build
// settings.
func fromSettings(b build, settings []debug.BuildSetting) build {
	for _, setting := range settings {
		switch setting.Key {
		case "vcs.revision":
			if b.commit == "" {
				b.commit = setting.Value
			}
		case "vcs.time":
			if b.time == "" {
				b.time = setting.Value
			}
		case "vcs.modified":
			b.modified = setting.Value == "true"
		}
	}
	return b
}

func (b build) String() string {
	commit := b.commit
	if commit == "" {
		commit = "unknown"
	}
	if len(commit) > 12 {
		commit = commit[:12]
	}
	if b.modified {
		commit += "-dirty"
	}
	parts := []string{commit}
	if b.time != "" {
		parts = append(parts, b.time)
	}
	return fmt.Sprintf("%s (%s)", Version, strings.Join(parts, ", "))
}

// Short returns the semantic version reported to MCP clients.
func Short() string {
	return Version
}

// Full returns the version, commit, build time, Go version and
// platform for `deckhand version`.
func Full() string {
	return fmt.Sprintf("%s\n  Go: %s\n  Platform: %s/%s",
		current(), runtime.Version(), runtime.GOOS, runtime.GOARCH)
}
