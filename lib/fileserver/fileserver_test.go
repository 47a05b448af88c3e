// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package fileserver

import (
	"context"
	"errors"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/bureau-foundation/deckhand/lib/deck"
	"github.com/bureau-foundation/deckhand/lib/testutil"
)

func writeString(content string) func(io.Writer) error {
	return func(w io.Writer) error {
		_, err := io.WriteString(w, content)
		return err
	}
}

func newTestServer(t *testing.T) (*Server, *Directory) {
	t.Helper()
	directory, err := NewDirectory(filepath.Join(t.TempDir(), "out"))
	if err != nil {
		t.Fatalf("NewDirectory: %v", err)
	}
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listening: %v", err)
	}
	t.Cleanup(func() { listener.Close() })
	server := NewServer(Config{
		Listener:  listener,
		Directory: directory,
		Host:      "127.0.0.1",
		Logger:    testutil.Logger(t),
	})
	return server, directory
}

func TestFileName(t *testing.T) {
	tests := []struct {
		title string
		want  string
	}{
		{"Demo", "Demo-D1.pptx"},
		{"", "Presentation-D1.pptx"},
		{"Q3/Q4 plan", "Q3_Q4 plan-D1.pptx"},
		{`..\secret`, "_secret-D1.pptx"},
		{"line\nbreak", "line_break-D1.pptx"},
		{"...", "Presentation-D1.pptx"},
	}
	for _, test := range tests {
		if got := FileName(test.title, "D1"); got != test.want {
			t.Errorf("FileName(%q) = %q, want %q", test.title, got, test.want)
		}
	}
}

func TestFileNameLongTitle(t *testing.T) {
	const id = "0f8fad5b-d9cb-469f-a165-70867728950e"

	if got, want := FileName(strings.Repeat("a", 300), id), strings.Repeat("a", 200)+"-"+id+".pptx"; got != want {
		t.Errorf("FileName(300 x a) = %q, want %q", got, want)
	}

	// "€" is three bytes, so byte 200 falls inside a character.
	euros := FileName(strings.Repeat("€", 100), id)
	if want := strings.Repeat("€", 66) + "-" + id + ".pptx"; euros != want {
		t.Errorf("FileName(100 x €) = %q, want %q", euros, want)
	}
	if !utf8.ValidString(euros) {
		t.Errorf("FileName produced invalid UTF-8: %q", euros)
	}

	directory, err := NewDirectory(t.TempDir())
	if err != nil {
		t.Fatalf("NewDirectory: %v", err)
	}
	if _, err := directory.Publish(FileName(strings.Repeat("Quarterly ", 60), id), "f", writeString("deck")); err != nil {
		t.Errorf("Publish with a long title: %v", err)
	}
}

func TestDirectoryPublish(t *testing.T) {
	directory, err := NewDirectory(t.TempDir())
	if err != nil {
		t.Fatalf("NewDirectory: %v", err)
	}

	location, err := directory.Publish("Demo-D1.pptx", "abc123", writeString("deck"))
	if err != nil {
		t.Fatalf("Publish: %v", err)
	}
	if !strings.HasPrefix(location, "file://") || !strings.HasSuffix(location, "/Demo-D1.pptx") {
		t.Errorf("location = %q, want a file URL ending in the name", location)
	}

	data, err := os.ReadFile(filepath.Join(directory.Root(), "Demo-D1.pptx"))
	if err != nil {
		t.Fatalf("reading published file: %v", err)
	}
	if string(data) != "deck" {
		t.Errorf("published content = %q", data)
	}

	entries, err := os.ReadDir(directory.Root())
	if err != nil {
		t.Fatalf("ReadDir: %v", err)
	}
	if len(entries) != 1 {
		t.Errorf("directory holds %d entries, want only the published file", len(entries))
	}
}

func TestDirectoryPublishFailureLeavesNothing(t *testing.T) {
	directory, err := NewDirectory(t.TempDir())
	if err != nil {
		t.Fatalf("NewDirectory: %v", err)
	}

	writeErr := errors.New("render failed")
	_, err = directory.Publish("Demo-D1.pptx", "", func(io.Writer) error { return writeErr })
	if !errors.Is(err, writeErr) {
		t.Fatalf("Publish error = %v, want %v", err, writeErr)
	}
	entries, _ := os.ReadDir(directory.Root())
	if len(entries) != 0 {
		t.Errorf("failed publish left %d entries behind", len(entries))
	}
}

func TestDirectoryPublishRejectsPaths(t *testing.T) {
	directory, err := NewDirectory(t.TempDir())
	if err != nil {
		t.Fatalf("NewDirectory: %v", err)
	}
	for _, name := range []string{"", "../escape.pptx", "a/b.pptx", ".hidden.pptx"} {
		if _, err := directory.Publish(name, "", writeString("x")); !errors.Is(err, ErrInvalidName) {
			t.Errorf("Publish(%q) error = %v, want ErrInvalidName", name, err)
		}
	}
}

func TestServeHTTP(t *testing.T) {
	server, _ := newTestServer(t)
	location, err := server.Publish("My Deck-D1.pptx", "f00d", writeString("pptx-bytes"))
	if err != nil {
		t.Fatalf("Publish: %v", err)
	}
	if want := server.BaseURL() + "/My%20Deck-D1.pptx"; location != want {
		t.Errorf("location = %q, want %q", location, want)
	}

	recorder := httptest.NewRecorder()
	server.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/My%20Deck-D1.pptx", nil))
	response := recorder.Result()
	if response.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", response.StatusCode)
	}
	if got := response.Header.Get("Content-Type"); got != deck.ContentType {
		t.Errorf("Content-Type = %q", got)
	}
	if got := response.Header.Get("ETag"); got != `"f00d"` {
		t.Errorf("ETag = %q", got)
	}
	body, _ := io.ReadAll(response.Body)
	if string(body) != "pptx-bytes" {
		t.Errorf("body = %q", body)
	}

	conditional := httptest.NewRequest(http.MethodGet, "/My%20Deck-D1.pptx", nil)
	conditional.Header.Set("If-None-Match", `"f00d"`)
	recorder = httptest.NewRecorder()
	server.ServeHTTP(recorder, conditional)
	if recorder.Code != http.StatusNotModified {
		t.Errorf("conditional GET status = %d, want 304", recorder.Code)
	}
}

func TestServeHTTPRejections(t *testing.T) {
	server, directory := newTestServer(t)
	if _, err := server.Publish("Demo-D1.pptx", "", writeString("x")); err != nil {
		t.Fatalf("Publish: %v", err)
	}
	if err := os.Mkdir(filepath.Join(directory.Root(), "sub"), 0o755); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		method string
		path   string
		status int
	}{
		{http.MethodGet, "/", http.StatusNotFound},
		{http.MethodGet, "/missing.pptx", http.StatusNotFound},
		{http.MethodGet, "/sub", http.StatusNotFound},
		{http.MethodGet, "/sub/Demo-D1.pptx", http.StatusNotFound},
		{http.MethodPost, "/Demo-D1.pptx", http.StatusMethodNotAllowed},
		{http.MethodHead, "/Demo-D1.pptx", http.StatusOK},
	}
	for _, test := range tests {
		recorder := httptest.NewRecorder()
		server.ServeHTTP(recorder, httptest.NewRequest(test.method, test.path, nil))
		if recorder.Code != test.status {
			t.Errorf("%s %s: status = %d, want %d", test.method, test.path, recorder.Code, test.status)
		}
	}
}

func TestServeLifecycle(t *testing.T) {
	server, _ := newTestServer(t)
	location, err := server.Publish("Demo-D1.pptx", "", writeString("over the wire"))
	if err != nil {
		t.Fatalf("Publish: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- server.Serve(ctx) }()
	testutil.RequireClosed(t, server.Ready(), 5*time.Second, "server never became ready")

	response, err := http.Get(location)
	if err != nil {
		cancel()
		t.Fatalf("GET %s: %v", location, err)
	}
	body, _ := io.ReadAll(response.Body)
	response.Body.Close()
	if string(body) != "over the wire" {
		t.Errorf("body = %q", body)
	}

	cancel()
	if err := testutil.RequireReceive(t, done, 5*time.Second, "Serve did not return after cancel"); err != nil {
		t.Errorf("Serve: %v", err)
	}
}

func TestNewServerWildcardHost(t *testing.T) {
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatal(err)
	}
	defer listener.Close()
	directory, err := NewDirectory(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	server := NewServer(Config{Listener: listener, Directory: directory, Host: "0.0.0.0", Logger: testutil.Logger(t)})
	if !strings.HasPrefix(server.BaseURL(), "http://localhost:") {
		t.Errorf("BaseURL = %q, want localhost", server.BaseURL())
	}
}
