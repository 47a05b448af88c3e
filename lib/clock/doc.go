// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package clock provides an injectable source of the current time.
//
// Code that stamps times into output accepts a Clock instead of
// calling time.Now. Production wiring uses Real(); tests use Fake()
// so the stamped times are known in advance:
//
//	c := clock.Fake(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))
//	r := registry.New(registry.WithClock(c))
//	c.Advance(time.Hour)
package clock
