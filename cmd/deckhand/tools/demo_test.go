// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package tools

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/bureau-foundation/deckhand/lib/deck"
	"github.com/bureau-foundation/deckhand/lib/fileserver"
	"github.com/bureau-foundation/deckhand/lib/netutil"
	"github.com/bureau-foundation/deckhand/lib/testutil"
)

// TestDemo runs the whole flow against a real file server: create,
// add a slide and a text box, publish, download over HTTP, and check
// that the id cannot be published twice.
func TestDemo(t *testing.T) {
	directory, err := fileserver.NewDirectory(t.TempDir())
	if err != nil {
		t.Fatalf("NewDirectory: %v", err)
	}
	listener, err := netutil.ListenFirstFree("127.0.0.1", 3100, 3199)
	if err != nil {
		t.Skipf("no free port in 3100-3199: %v", err)
	}
	files := fileserver.NewServer(fileserver.Config{
		Listener:  listener,
		Directory: directory,
		Host:      "127.0.0.1",
		Logger:    testutil.Logger(t),
	})

	ctx, cancel := context.WithCancel(context.Background())
	served := make(chan error, 1)
	go func() { served <- files.Serve(ctx) }()
	t.Cleanup(func() {
		cancel()
		if err := testutil.RequireReceive(t, served, 5*time.Second, "file server shutdown"); err != nil {
			t.Errorf("Serve: %v", err)
		}
	})
	testutil.RequireClosed(t, files.Ready(), 5*time.Second, "file server start")

	h := newHarness(t, files)
	presentationID := h.mustSucceed("create-presentation", map[string]any{"title": "Demo"})
	slideID := h.mustSucceed("add-slide", map[string]any{"id": presentationID})
	if result := h.call("add-text", map[string]any{
		"slideId": slideID, "text": "Hello", "x": 0, "y": 0, "w": 5, "h": 1,
	}); result.IsError {
		t.Fatalf("add-text failed: %v", result.Content)
	}

	result := h.call("get-file-url", map[string]any{"id": presentationID})
	if result.IsError {
		t.Fatalf("get-file-url failed: %v", result.Content)
	}
	link := result.Content[0]
	wantSuffix := "/" + url.PathEscape("Demo-"+presentationID+".pptx")
	if !strings.HasPrefix(link, files.BaseURL()) || !strings.HasSuffix(link, wantSuffix) {
		t.Fatalf("link = %q, want %s...%s", link, files.BaseURL(), wantSuffix)
	}

	response, err := http.Get(link)
	if err != nil {
		t.Fatalf("GET %s: %v", link, err)
	}
	defer response.Body.Close()
	body, err := io.ReadAll(response.Body)
	if err != nil {
		t.Fatalf("reading body: %v", err)
	}
	if response.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", response.StatusCode)
	}
	if len(body) == 0 {
		t.Fatal("downloaded file is empty")
	}
	if got := response.Header.Get("Content-Type"); got != deck.ContentType {
		t.Errorf("Content-Type = %q, want %q", got, deck.ContentType)
	}
	if response.Header.Get("ETag") == "" {
		t.Error("response has no ETag")
	}

	again := h.call("get-file-url", map[string]any{"id": presentationID})
	if !again.IsError {
		t.Error("second get-file-url should fail")
	}
}
