// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package version

import (
	"runtime"
	"runtime/debug"
	"strings"
	"testing"
)

func TestBuildFromSettings(t *testing.T) {
	settings := []debug.BuildSetting{
		{Key: "vcs.revision", Value: "0123456789abcdef0123"},
		{Key: "vcs.time", Value: "2026-10-01T00:00:00Z"},
		{Key: "vcs.modified", Value: "true"},
	}

	got := fromSettings(build{}, settings).String()
	if want := Version + " (0123456789ab-dirty, 2026-10-01T00:00:00Z)"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

func TestLinkerValuesWin(t *testing.T) {
	settings := []debug.BuildSetting{
		{Key: "vcs.revision", Value: "fromvcs"},
		{Key: "vcs.time", Value: "2020-01-01T00:00:00Z"},
	}
	b := fromSettings(build{commit: "abc1234", time: "2026-10-17T12:00:00Z"}, settings)
	if b.commit != "abc1234" || b.time != "2026-10-17T12:00:00Z" {
		t.Errorf("build = %+v, want the linker values kept", b)
	}
}

func TestUnknownCommit(t *testing.T) {
	if got, want := (build{}).String(), Version+" (unknown)"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

func TestFull(t *testing.T) {
	full := Full()
	if !strings.HasPrefix(full, Version+" (") {
		t.Errorf("Full() does not start with the version: %q", full)
	}
	if !strings.Contains(full, runtime.Version()) {
		t.Errorf("Full() does not name the Go version: %q", full)
	}
}
