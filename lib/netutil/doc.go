// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package netutil provides the small network helpers deckhand needs:
// probing a port range for a free TCP listener ([ListenFirstFree]) and
// classifying the errors a peer produces when it hangs up
// ([IsExpectedCloseError]).
package netutil
