// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package deck

import (
	"encoding/xml"
	"fmt"
	"io"
	"strings"

	"github.com/klauspost/compress/zip"
)

// part is one file of the package, in write order.
type part struct {
	name string
	body string
}

// Write encodes the presentation as a .pptx package. The presentation
// stays locked for the duration so a concurrent Add cannot produce a
// torn package.
func (p *Presentation) Write(w io.Writer) Result {
	p.mu.Lock()
	parts := p.parts()
	created := p.created
	p.mu.Unlock()

	archive := zip.NewWriter(w)
	for _, part := range parts {
		entry, err := archive.CreateHeader(&zip.FileHeader{
			Name:     part.name,
			Method:   zip.Deflate,
			Modified: created,
		})
		if err != nil {
			return Failed("creating %s: %v", part.name, err)
		}
		if _, err := io.WriteString(entry, part.body); err != nil {
			return Failed("writing %s: %v", part.name, err)
		}
	}
	if err := archive.Close(); err != nil {
		return Failed("finishing package: %v", err)
	}
	return Ok()
}

// parts renders every part of the package. Callers hold p.mu.
func (p *Presentation) parts() []part {
	var slideParts, chartParts []part
	chartNumber := 0
	for _, slide := range p.slides {
		rendered := renderSlide(slide.elements, p.metadata.RTL, chartNumber)
		slideParts = append(slideParts,
			part{fmt.Sprintf("ppt/slides/slide%d.xml", slide.number), rendered.slide},
			part{fmt.Sprintf("ppt/slides/_rels/slide%d.xml.rels", slide.number), relationshipsXML(rendered.relationships)},
		)
		for _, chart := range rendered.charts {
			chartNumber++
			chartParts = append(chartParts, part{fmt.Sprintf("ppt/charts/chart%d.xml", chartNumber), chart})
		}
	}

	parts := []part{
		{"[Content_Types].xml", contentTypesXML(len(p.slides), chartNumber)},
		{"_rels/.rels", rootRelationshipsXML()},
		{"docProps/core.xml", corePropertiesXML(p.metadata, p.created)},
		{"docProps/app.xml", extendedPropertiesXML(p.metadata, len(p.slides))},
		{"ppt/presentation.xml", presentationXML(len(p.slides), p.metadata.RTL)},
		{"ppt/_rels/presentation.xml.rels", presentationRelationshipsXML(len(p.slides))},
		{"ppt/presProps.xml", presPropsXML()},
		{"ppt/viewProps.xml", viewPropsXML()},
		{"ppt/tableStyles.xml", tableStylesXML()},
		{"ppt/theme/theme1.xml", themeXML()},
		{"ppt/slideMasters/slideMaster1.xml", slideMasterXML()},
		{"ppt/slideMasters/_rels/slideMaster1.xml.rels", slideMasterRelationshipsXML()},
		{"ppt/slideLayouts/slideLayout1.xml", slideLayoutXML()},
		{"ppt/slideLayouts/_rels/slideLayout1.xml.rels", slideLayoutRelationshipsXML()},
	}
	parts = append(parts, slideParts...)
	return append(parts, chartParts...)
}

// escape returns s with XML special characters replaced by entities.
func escape(s string) string {
	var b strings.Builder
	// EscapeText only fails when the writer does; strings.Builder
	// never does.
	_ = xml.EscapeText(&b, []byte(s))
	return b.String()
}
