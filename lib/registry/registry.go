// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package registry

import (
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/bureau-foundation/deckhand/lib/clock"
	"github.com/bureau-foundation/deckhand/lib/deck"
)

var (
	// ErrDocumentNotFound is returned when a document id is unknown,
	// including ids that were already finalized.
	ErrDocumentNotFound = errors.New("presentation not found")

	// ErrSlideNotFound is returned when a slide id is unknown or its
	// document was finalized.
	ErrSlideNotFound = errors.New("slide not found")
)

type documentEntry struct {
	presentation *deck.Presentation
	slides       map[string]struct{}
}

type slideEntry struct {
	documentID string
	slide      *deck.Slide
}

// Registry is the in-memory session state of one server.
type Registry struct {
	mu        sync.Mutex
	documents map[string]*documentEntry
	slides    map[string]*slideEntry
	newID     func() string
	clock     clock.Clock
}

// Option configures a Registry.
type Option func(*Registry)

// WithIDGenerator replaces the random UUIDv4 id source. Tests use it
// to make ids predictable.
func WithIDGenerator(generate func() string) Option {
	return func(r *Registry) {
		r.newID = generate
	}
}

// WithClock sets the clock that stamps new presentations.
func WithClock(c clock.Clock) Option {
	return func(r *Registry) {
		r.clock = c
	}
}

// New returns an empty Registry.
func New(options ...Option) *Registry {
	r := &Registry{
		documents: make(map[string]*documentEntry),
		slides:    make(map[string]*slideEntry),
		newID:     func() string { return uuid.NewString() },
		clock:     clock.Real(),
	}
	for _, option := range options {
		option(r)
	}
	return r
}

// uniqueID returns an id unused in both keyspaces. Callers hold r.mu.
func (r *Registry) uniqueID() string {
	for {
		id := r.newID()
		_, document := r.documents[id]
		_, slide := r.slides[id]
		if !document && !slide {
			return id
		}
	}
}

// CreateDocument registers a new presentation and returns its id.
func (r *Registry) CreateDocument(metadata deck.Metadata) string {
	presentation := deck.New(metadata, r.clock.Now())

	r.mu.Lock()
	defer r.mu.Unlock()
	id := r.uniqueID()
	r.documents[id] = &documentEntry{
		presentation: presentation,
		slides:       make(map[string]struct{}),
	}
	return id
}

// CreateSlide appends a slide to the document and returns the slide's
// id.
func (r *Registry) CreateSlide(documentID string) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	document, ok := r.documents[documentID]
	if !ok {
		return "", fmt.Errorf("presentation %s: %w", documentID, ErrDocumentNotFound)
	}
	id := r.uniqueID()
	r.slides[id] = &slideEntry{
		documentID: documentID,
		slide:      document.presentation.AddSlide(),
	}
	document.slides[id] = struct{}{}
	return id, nil
}

// Document returns the presentation registered under id.
func (r *Registry) Document(id string) (*deck.Presentation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	document, ok := r.documents[id]
	if !ok {
		return nil, fmt.Errorf("presentation %s: %w", id, ErrDocumentNotFound)
	}
	return document.presentation, nil
}

// Slide returns the slide registered under id.
func (r *Registry) Slide(id string) (*deck.Slide, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	entry, ok := r.slides[id]
	if !ok {
		return nil, fmt.Errorf("slide %s: %w", id, ErrSlideNotFound)
	}
	return entry.slide, nil
}

// Finalize hands the document to publish and, if publish succeeds,
// removes the document and all of its slides. The returned string is
// whatever publish returned (the artifact's location). A failed
// publish leaves the document registered so the caller can retry.
//
// While publish runs the document and its slides are unreachable and
// the presentation is sealed, so no element can be added after the
// file is written. Concurrent Finalize calls for the same id are
// serialized: exactly one of them publishes, the others see
// ErrDocumentNotFound.
func (r *Registry) Finalize(documentID string, publish func(*deck.Presentation) (string, error)) (string, error) {
	r.mu.Lock()
	document, ok := r.documents[documentID]
	if !ok {
		r.mu.Unlock()
		return "", fmt.Errorf("presentation %s: %w", documentID, ErrDocumentNotFound)
	}
	delete(r.documents, documentID)
	retired := make(map[string]*slideEntry, len(document.slides))
	for slideID := range document.slides {
		retired[slideID] = r.slides[slideID]
		delete(r.slides, slideID)
	}
	document.presentation.Seal()
	r.mu.Unlock()

	location, err := publish(document.presentation)
	if err == nil {
		return location, nil
	}

	document.presentation.Unseal()
	r.mu.Lock()
	defer r.mu.Unlock()
	r.documents[documentID] = document
	for slideID, entry := range retired {
		r.slides[slideID] = entry
	}
	return "", err
}

// Stats is a snapshot of the registry's size.
type Stats struct {
	Documents int `json:"documents"`
	Slides    int `json:"slides"`
}

// Stats returns the number of live documents and slides.
func (r *Registry) Stats() Stats {
	r.mu.Lock()
	defer r.mu.Unlock()
	return Stats{Documents: len(r.documents), Slides: len(r.slides)}
}
