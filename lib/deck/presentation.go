// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package deck

import (
	"sync"
	"time"
)

// Metadata is the document-level information written to the package's
// core and extended properties.
type Metadata struct {
	Title    string `cbor:"title,omitempty"`
	Subject  string `cbor:"subject,omitempty"`
	Author   string `cbor:"author,omitempty"`
	Company  string `cbor:"company,omitempty"`
	Revision string `cbor:"revision,omitempty"`

	// RTL lays out text right-to-left.
	RTL bool `cbor:"rtl,omitempty"`
}

// DefaultTitle is used in file names and properties when a
// presentation has no title.
const DefaultTitle = "Presentation"

// Presentation is a slide deck under construction.
type Presentation struct {
	mu       sync.Mutex
	metadata Metadata
	slides   []*Slide
	created  time.Time
	sealed   bool
}

// New creates an empty presentation. created is written to the
// document properties and the package entries. An empty revision
// defaults to "1".
func New(metadata Metadata, created time.Time) *Presentation {
	if metadata.Revision == "" {
		metadata.Revision = "1"
	}
	return &Presentation{
		metadata: metadata,
		created:  created.UTC().Truncate(time.Second),
	}
}

// Created returns the creation time.
func (p *Presentation) Created() time.Time {
	return p.created
}

// Metadata returns the presentation's metadata.
func (p *Presentation) Metadata() Metadata {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.metadata
}

// Title returns the title, or [DefaultTitle] when none was set.
func (p *Presentation) Title() string {
	title := p.Metadata().Title
	if title == "" {
		return DefaultTitle
	}
	return title
}

// Seal freezes the presentation's content: Add fails until Unseal.
// A fingerprint and a write taken while sealed describe the same
// content.
func (p *Presentation) Seal() {
	p.mu.Lock()
	p.sealed = true
	p.mu.Unlock()
}

// Unseal reverses Seal.
func (p *Presentation) Unseal() {
	p.mu.Lock()
	p.sealed = false
	p.mu.Unlock()
}

// AddSlide appends a blank slide and returns it.
func (p *Presentation) AddSlide() *Slide {
	p.mu.Lock()
	defer p.mu.Unlock()
	slide := &Slide{presentation: p, number: len(p.slides) + 1}
	p.slides = append(p.slides, slide)
	return slide
}

// SlideCount returns the number of slides.
func (p *Presentation) SlideCount() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.slides)
}

// Slide is one page of a presentation.
type Slide struct {
	presentation *Presentation
	number       int
	elements     []Element
}

// Number returns the 1-based position of the slide in its
// presentation.
func (s *Slide) Number() int {
	return s.number
}

// Add validates element and appends it to the slide. A failed Result
// leaves the slide unchanged.
func (s *Slide) Add(element Element) Result {
	if element == nil {
		return Failed("element is nil")
	}
	if result := element.check(); !result.OK() {
		return result
	}
	s.presentation.mu.Lock()
	defer s.presentation.mu.Unlock()
	if s.presentation.sealed {
		return Failed("slide %d: presentation is being finalized", s.number)
	}
	s.elements = append(s.elements, element)
	return Ok()
}

// Elements returns a copy of the slide's element list.
func (s *Slide) Elements() []Element {
	s.presentation.mu.Lock()
	defer s.presentation.mu.Unlock()
	return append([]Element(nil), s.elements...)
}
