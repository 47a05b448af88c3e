// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package fileserver

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/bureau-foundation/deckhand/lib/deck"
)

// Server serves a Directory over HTTP on a bound listener. Serve(ctx)
// blocks until the context is cancelled and active requests drain.
type Server struct {
	listener  net.Listener
	directory *Directory
	baseURL   string
	logger    *slog.Logger

	// shutdownTimeout is the maximum time to wait for active
	// downloads to complete after the context is cancelled.
	shutdownTimeout time.Duration

	// ready is closed once the server is accepting connections.
	ready chan struct{}
}

// Config configures a Server.
type Config struct {
	// Listener is the bound TCP listener. Required. The Server takes
	// ownership and closes it on shutdown.
	Listener net.Listener

	// Directory is the directory to serve. Required.
	Directory *Directory

	// Host is the host name used in published URLs. Defaults to
	// "localhost". Wildcard hosts ("", "0.0.0.0", "::") are also
	// replaced with "localhost" since they are not dialable.
	Host string

	// ShutdownTimeout defaults to 10 seconds if zero.
	ShutdownTimeout time.Duration

	// Logger is the structured logger. Required.
	Logger *slog.Logger
}

// NewServer creates a Server. Call Serve to start accepting
// connections.
func NewServer(config Config) *Server {
	if config.Listener == nil {
		panic("fileserver.Server: Listener is required")
	}
	if config.Directory == nil {
		panic("fileserver.Server: Directory is required")
	}
	if config.Logger == nil {
		panic("fileserver.Server: Logger is required")
	}

	host := config.Host
	switch host {
	case "", "0.0.0.0", "::", "[::]":
		host = "localhost"
	}
	port := "0"
	if address, ok := config.Listener.Addr().(*net.TCPAddr); ok {
		port = strconv.Itoa(address.Port)
	}

	timeout := config.ShutdownTimeout
	if timeout == 0 {
		timeout = 10 * time.Second
	}

	return &Server{
		listener:        config.Listener,
		directory:       config.Directory,
		baseURL:         "http://" + net.JoinHostPort(host, port),
		logger:          config.Logger,
		shutdownTimeout: timeout,
		ready:           make(chan struct{}),
	}
}

// Ready returns a channel that is closed once the server is accepting
// connections.
func (s *Server) Ready() <-chan struct{} {
	return s.ready
}

// BaseURL returns the URL prefix of every served file, without a
// trailing slash.
func (s *Server) BaseURL() string {
	return s.baseURL
}

// Publish publishes a file into the served directory and returns its
// HTTP URL.
func (s *Server) Publish(name, fingerprint string, write func(io.Writer) error) (string, error) {
	if _, err := s.directory.Publish(name, fingerprint, write); err != nil {
		return "", err
	}
	location := s.baseURL + "/" + url.PathEscape(name)
	s.logger.Info("published file", "name", name, "url", location)
	return location, nil
}

// Serve accepts HTTP connections until ctx is cancelled, then shuts
// down gracefully: it stops accepting new connections and waits up to
// the shutdown timeout for in-flight downloads.
func (s *Server) Serve(ctx context.Context) error {
	server := &http.Server{
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	s.logger.Info("file server listening", "address", s.listener.Addr().String(), "directory", s.directory.Root())
	close(s.ready)

	serveDone := make(chan error, 1)
	go func() {
		if err := server.Serve(s.listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveDone <- err
		}
		close(serveDone)
	}()

	select {
	case <-ctx.Done():
		s.logger.Info("file server shutting down")
	case err := <-serveDone:
		return err
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		s.logger.Error("file server shutdown error", "error", err)
		return fmt.Errorf("file server shutdown: %w", err)
	}

	s.logger.Info("file server stopped")
	return nil
}

// ServeHTTP serves one published file. Conditional and range requests
// are handled by http.ServeContent.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		w.Header().Set("Allow", "GET, HEAD")
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	name := strings.TrimPrefix(r.URL.Path, "/")
	file, info, fingerprint, err := s.directory.Open(name)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			s.logger.Warn("opening served file", "name", name, "error", err)
		}
		http.NotFound(w, r)
		return
	}
	defer file.Close()

	header := w.Header()
	header.Set("Content-Type", deck.ContentType)
	header.Set("Content-Disposition", fmt.Sprintf("attachment; filename*=UTF-8''%s", url.PathEscape(name)))
	if fingerprint != "" {
		header.Set("ETag", `"`+fingerprint+`"`)
	}
	s.logger.Debug("serving file", "name", name, "remote", r.RemoteAddr)
	http.ServeContent(w, r, name, info.ModTime(), file)
}
