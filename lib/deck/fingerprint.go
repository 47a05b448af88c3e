// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package deck

import (
	"encoding/hex"
	"fmt"

	"github.com/zeebo/blake3"

	"github.com/bureau-foundation/deckhand/lib/codec"
)

// fingerprintRecord is the content that identifies a presentation.
// The creation time is deliberately absent: two decks with the same
// content have the same fingerprint regardless of when they were
// built.
type fingerprintRecord struct {
	Metadata Metadata          `cbor:"metadata"`
	Slides   [][]elementRecord `cbor:"slides"`
}

type elementRecord struct {
	Kind    ElementKind `cbor:"kind"`
	Element Element     `cbor:"element"`
}

// Fingerprint returns the hex BLAKE3-256 digest of the presentation's
// deterministic CBOR encoding.
func (p *Presentation) Fingerprint() (string, error) {
	p.mu.Lock()
	record := fingerprintRecord{
		Metadata: p.metadata,
		Slides:   make([][]elementRecord, len(p.slides)),
	}
	for index, slide := range p.slides {
		elements := make([]elementRecord, len(slide.elements))
		for elementIndex, element := range slide.elements {
			elements[elementIndex] = elementRecord{Kind: element.Kind(), Element: element}
		}
		record.Slides[index] = elements
	}
	data, err := codec.Marshal(record)
	p.mu.Unlock()
	if err != nil {
		return "", fmt.Errorf("encoding presentation: %w", err)
	}

	digest := blake3.Sum256(data)
	return hex.EncodeToString(digest[:]), nil
}
