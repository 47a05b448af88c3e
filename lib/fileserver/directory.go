// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package fileserver

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"unicode"
	"unicode/utf8"
)

// Extension is appended to every published presentation.
const Extension = ".pptx"

// ErrInvalidName is returned for names that are not a single visible
// path segment.
var ErrInvalidName = errors.New("invalid file name")

// Directory is an output directory that files are published into.
type Directory struct {
	root string

	mu    sync.Mutex
	etags map[string]string
}

// NewDirectory returns a Directory rooted at root, creating it if it
// does not exist.
func NewDirectory(root string) (*Directory, error) {
	if root == "" {
		return nil, errors.New("output directory is empty")
	}
	absolute, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolving output directory %s: %w", root, err)
	}
	if err := os.MkdirAll(absolute, 0o755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}
	return &Directory{root: absolute, etags: make(map[string]string)}, nil
}

// Root returns the absolute path of the directory.
func (d *Directory) Root() string {
	return d.root
}

func checkName(name string) error {
	if name == "" || strings.HasPrefix(name, ".") || strings.ContainsAny(name, `/\`) {
		return fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	return nil
}

// Publish writes a file named name by calling write with a temporary
// file, then renames it into place. fingerprint is remembered as the
// file's ETag. The returned location is a file:// URL for the
// published path.
func (d *Directory) Publish(name, fingerprint string, write func(io.Writer) error) (string, error) {
	if err := checkName(name); err != nil {
		return "", err
	}

	temporary, err := os.CreateTemp(d.root, ".publish-*")
	if err != nil {
		return "", fmt.Errorf("creating temporary file: %w", err)
	}
	temporaryPath := temporary.Name()
	defer os.Remove(temporaryPath) // No-op after a successful rename.

	if err := write(temporary); err != nil {
		temporary.Close()
		return "", fmt.Errorf("writing %s: %w", name, err)
	}
	if err := temporary.Close(); err != nil {
		return "", fmt.Errorf("closing %s: %w", name, err)
	}
	if err := os.Chmod(temporaryPath, 0o644); err != nil {
		return "", fmt.Errorf("setting permissions on %s: %w", name, err)
	}

	path := filepath.Join(d.root, name)
	if err := os.Rename(temporaryPath, path); err != nil {
		return "", fmt.Errorf("publishing %s: %w", name, err)
	}

	d.mu.Lock()
	d.etags[name] = fingerprint
	d.mu.Unlock()

	return (&url.URL{Scheme: "file", Path: filepath.ToSlash(path)}).String(), nil
}

// Open opens a published file for reading. It returns the file, its
// metadata, and its fingerprint ("" for files not published by this
// Directory).
func (d *Directory) Open(name string) (*os.File, fs.FileInfo, string, error) {
	if err := checkName(name); err != nil {
		return nil, nil, "", fs.ErrNotExist
	}
	file, err := os.Open(filepath.Join(d.root, name))
	if err != nil {
		return nil, nil, "", err
	}
	info, err := file.Stat()
	if err != nil {
		file.Close()
		return nil, nil, "", err
	}
	if !info.Mode().IsRegular() {
		file.Close()
		return nil, nil, "", fs.ErrNotExist
	}

	d.mu.Lock()
	fingerprint := d.etags[name]
	d.mu.Unlock()
	return file, info, fingerprint, nil
}

// maxTitleBytes bounds the title part of a file name so that
// "<title>-<uuid>.pptx" stays under the common 255-byte limit.
const maxTitleBytes = 200

// FileName returns the published file name for a presentation:
// "<title>-<id>.pptx". Path separators and control characters in the
// title become underscores, leading dots are dropped and the title is
// cut to maxTitleBytes on a character boundary; an empty title becomes
// "Presentation".
func FileName(title, id string) string {
	cleaned := strings.Map(func(r rune) rune {
		if r == '/' || r == '\\' || unicode.IsControl(r) {
			return '_'
		}
		return r
	}, title)
	cleaned = strings.TrimLeft(cleaned, ".")
	if len(cleaned) > maxTitleBytes {
		cut := maxTitleBytes
		for cut > 0 && !utf8.RuneStart(cleaned[cut]) {
			cut--
		}
		cleaned = cleaned[:cut]
	}
	if cleaned == "" {
		cleaned = "Presentation"
	}
	return cleaned + "-" + id + Extension
}
