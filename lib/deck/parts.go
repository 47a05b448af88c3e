// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package deck

import (
	"fmt"
	"strings"
	"time"
)

// Namespaces and relationship types of the Open Packaging Conventions
// and PresentationML parts written by this package.
const (
	xmlHeader = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` + "\n"

	namespaceDrawing      = "http://schemas.openxmlformats.org/drawingml/2006/main"
	namespaceChart        = "http://schemas.openxmlformats.org/drawingml/2006/chart"
	namespaceRelationship = "http://schemas.openxmlformats.org/officeDocument/2006/relationships"
	namespacePresentation = "http://schemas.openxmlformats.org/presentationml/2006/main"
	namespacePackageRels  = "http://schemas.openxmlformats.org/package/2006/relationships"

	relOfficeDocument = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument"
	relCoreProperties = "http://schemas.openxmlformats.org/package/2006/relationships/metadata/core-properties"
	relExtended       = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/extended-properties"
	relSlideMaster    = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/slideMaster"
	relSlideLayout    = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/slideLayout"
	relSlide          = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/slide"
	relTheme          = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/theme"
	relPresProps      = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/presProps"
	relViewProps      = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/viewProps"
	relTableStyles    = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/tableStyles"
	relChart          = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/chart"

	contentTypeSlide = "application/vnd.openxmlformats-officedocument.presentationml.slide+xml"
	contentTypeChart = "application/vnd.openxmlformats-officedocument.drawingml.chart+xml"
)

// ContentType is the MIME type of a .pptx file.
const ContentType = "application/vnd.openxmlformats-officedocument.presentationml.presentation"

// relationship is one entry of a .rels part.
type relationship struct {
	id     string
	kind   string
	target string
}

func relationshipsXML(relationships []relationship) string {
	var b strings.Builder
	b.WriteString(xmlHeader)
	fmt.Fprintf(&b, `<Relationships xmlns="%s">`, namespacePackageRels)
	for _, rel := range relationships {
		fmt.Fprintf(&b, `<Relationship Id="%s" Type="%s" Target="%s"/>`, rel.id, rel.kind, rel.target)
	}
	b.WriteString(`</Relationships>`)
	return b.String()
}

func contentTypesXML(slides, charts int) string {
	var b strings.Builder
	b.WriteString(xmlHeader)
	b.WriteString(`<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">`)
	b.WriteString(`<Default Extension="rels" ContentType="application/vnd.openxmlformats-package.relationships+xml"/>`)
	b.WriteString(`<Default Extension="xml" ContentType="application/xml"/>`)
	overrides := []struct{ part, contentType string }{
		{"/ppt/presentation.xml", "application/vnd.openxmlformats-officedocument.presentationml.presentation.main+xml"},
		{"/ppt/slideMasters/slideMaster1.xml", "application/vnd.openxmlformats-officedocument.presentationml.slideMaster+xml"},
		{"/ppt/slideLayouts/slideLayout1.xml", "application/vnd.openxmlformats-officedocument.presentationml.slideLayout+xml"},
		{"/ppt/theme/theme1.xml", "application/vnd.openxmlformats-officedocument.theme+xml"},
		{"/ppt/presProps.xml", "application/vnd.openxmlformats-officedocument.presentationml.presProps+xml"},
		{"/ppt/viewProps.xml", "application/vnd.openxmlformats-officedocument.presentationml.viewProps+xml"},
		{"/ppt/tableStyles.xml", "application/vnd.openxmlformats-officedocument.presentationml.tableStyles+xml"},
		{"/docProps/core.xml", "application/vnd.openxmlformats-package.core-properties+xml"},
		{"/docProps/app.xml", "application/vnd.openxmlformats-officedocument.extended-properties+xml"},
	}
	for _, override := range overrides {
		fmt.Fprintf(&b, `<Override PartName="%s" ContentType="%s"/>`, override.part, override.contentType)
	}
	for number := 1; number <= slides; number++ {
		fmt.Fprintf(&b, `<Override PartName="/ppt/slides/slide%d.xml" ContentType="%s"/>`, number, contentTypeSlide)
	}
	for number := 1; number <= charts; number++ {
		fmt.Fprintf(&b, `<Override PartName="/ppt/charts/chart%d.xml" ContentType="%s"/>`, number, contentTypeChart)
	}
	b.WriteString(`</Types>`)
	return b.String()
}

func rootRelationshipsXML() string {
	return relationshipsXML([]relationship{
		{"rId1", relOfficeDocument, "ppt/presentation.xml"},
		{"rId2", relCoreProperties, "docProps/core.xml"},
		{"rId3", relExtended, "docProps/app.xml"},
	})
}

// firstSlideRelationship is the relationship index of slide 1 in
// presentation.xml.rels; lower indices are the fixed parts.
const firstSlideRelationship = 6

func presentationRelationshipsXML(slides int) string {
	relationships := []relationship{
		{"rId1", relSlideMaster, "slideMasters/slideMaster1.xml"},
		{"rId2", relPresProps, "presProps.xml"},
		{"rId3", relViewProps, "viewProps.xml"},
		{"rId4", relTheme, "theme/theme1.xml"},
		{"rId5", relTableStyles, "tableStyles.xml"},
	}
	for number := 1; number <= slides; number++ {
		relationships = append(relationships, relationship{
			id:     fmt.Sprintf("rId%d", firstSlideRelationship+number-1),
			kind:   relSlide,
			target: fmt.Sprintf("slides/slide%d.xml", number),
		})
	}
	return relationshipsXML(relationships)
}

func presentationXML(slides int, rtl bool) string {
	var b strings.Builder
	b.WriteString(xmlHeader)
	fmt.Fprintf(&b, `<p:presentation xmlns:a="%s" xmlns:r="%s" xmlns:p="%s" saveSubsetFonts="1"`,
		namespaceDrawing, namespaceRelationship, namespacePresentation)
	if rtl {
		b.WriteString(` rtl="1"`)
	}
	b.WriteString(`>`)
	b.WriteString(`<p:sldMasterIdLst><p:sldMasterId id="2147483648" r:id="rId1"/></p:sldMasterIdLst>`)
	if slides > 0 {
		b.WriteString(`<p:sldIdLst>`)
		for number := 1; number <= slides; number++ {
			fmt.Fprintf(&b, `<p:sldId id="%d" r:id="rId%d"/>`, 255+number, firstSlideRelationship+number-1)
		}
		b.WriteString(`</p:sldIdLst>`)
	}
	fmt.Fprintf(&b, `<p:sldSz cx="%d" cy="%d"/>`, EMU(CanvasWidth), EMU(CanvasHeight))
	b.WriteString(`<p:notesSz cx="6858000" cy="9144000"/>`)
	b.WriteString(`</p:presentation>`)
	return b.String()
}

func presPropsXML() string {
	return xmlHeader + fmt.Sprintf(`<p:presentationPr xmlns:a="%s" xmlns:r="%s" xmlns:p="%s"/>`,
		namespaceDrawing, namespaceRelationship, namespacePresentation)
}

func viewPropsXML() string {
	return xmlHeader + fmt.Sprintf(`<p:viewPr xmlns:a="%s" xmlns:r="%s" xmlns:p="%s">`+
		`<p:normalViewPr><p:restoredLeft sz="15620"/><p:restoredTop sz="94660"/></p:normalViewPr>`+
		`<p:gridSpacing cx="76200" cy="76200"/></p:viewPr>`,
		namespaceDrawing, namespaceRelationship, namespacePresentation)
}

func tableStylesXML() string {
	return xmlHeader + fmt.Sprintf(`<a:tblStyleLst xmlns:a="%s" def="{5C22544A-7EE6-4342-B048-85BDC9FD1C3A}"/>`, namespaceDrawing)
}

// emptyGroup is the non-visual and transform preamble every shape tree
// starts with.
const emptyGroup = `<p:nvGrpSpPr><p:cNvPr id="1" name=""/><p:cNvGrpSpPr/><p:nvPr/></p:nvGrpSpPr>` +
	`<p:grpSpPr><a:xfrm><a:off x="0" y="0"/><a:ext cx="0" cy="0"/><a:chOff x="0" y="0"/><a:chExt cx="0" cy="0"/></a:xfrm></p:grpSpPr>`

func slideMasterXML() string {
	return xmlHeader + fmt.Sprintf(`<p:sldMaster xmlns:a="%s" xmlns:r="%s" xmlns:p="%s">`,
		namespaceDrawing, namespaceRelationship, namespacePresentation) +
		`<p:cSld><p:bg><p:bgRef idx="1001"><a:schemeClr val="bg1"/></p:bgRef></p:bg><p:spTree>` + emptyGroup + `</p:spTree></p:cSld>` +
		`<p:clrMap bg1="lt1" tx1="dk1" bg2="lt2" tx2="dk2" accent1="accent1" accent2="accent2" accent3="accent3" ` +
		`accent4="accent4" accent5="accent5" accent6="accent6" hlink="hlink" folHlink="folHlink"/>` +
		`<p:sldLayoutIdLst><p:sldLayoutId id="2147483649" r:id="rId1"/></p:sldLayoutIdLst>` +
		`<p:txStyles><p:titleStyle/><p:bodyStyle/><p:otherStyle/></p:txStyles>` +
		`</p:sldMaster>`
}

func slideMasterRelationshipsXML() string {
	return relationshipsXML([]relationship{
		{"rId1", relSlideLayout, "../slideLayouts/slideLayout1.xml"},
		{"rId2", relTheme, "../theme/theme1.xml"},
	})
}

func slideLayoutXML() string {
	return xmlHeader + fmt.Sprintf(`<p:sldLayout xmlns:a="%s" xmlns:r="%s" xmlns:p="%s" type="blank" preserve="1">`,
		namespaceDrawing, namespaceRelationship, namespacePresentation) +
		`<p:cSld name="Blank"><p:spTree>` + emptyGroup + `</p:spTree></p:cSld>` +
		`<p:clrMapOvr><a:masterClrMapping/></p:clrMapOvr></p:sldLayout>`
}

func slideLayoutRelationshipsXML() string {
	return relationshipsXML([]relationship{
		{"rId1", relSlideMaster, "../slideMasters/slideMaster1.xml"},
	})
}

// themeXML is the Office default color, font, and format scheme,
// reduced to the elements PowerPoint requires.
func themeXML() string {
	solid := func(color string) string {
		return `<a:solidFill><a:schemeClr val="` + color + `"/></a:solidFill>`
	}
	line := func(width int) string {
		return fmt.Sprintf(`<a:ln w="%d" cap="flat" cmpd="sng" algn="ctr">%s<a:prstDash val="solid"/></a:ln>`, width, solid("phClr"))
	}
	fills := solid("phClr") + solid("phClr") + solid("phClr")

	var b strings.Builder
	b.WriteString(xmlHeader)
	fmt.Fprintf(&b, `<a:theme xmlns:a="%s" name="Office Theme"><a:themeElements>`, namespaceDrawing)
	b.WriteString(`<a:clrScheme name="Office">` +
		`<a:dk1><a:sysClr val="windowText" lastClr="000000"/></a:dk1>` +
		`<a:lt1><a:sysClr val="window" lastClr="FFFFFF"/></a:lt1>` +
		`<a:dk2><a:srgbClr val="44546A"/></a:dk2>` +
		`<a:lt2><a:srgbClr val="E7E6E6"/></a:lt2>` +
		`<a:accent1><a:srgbClr val="4472C4"/></a:accent1>` +
		`<a:accent2><a:srgbClr val="ED7D31"/></a:accent2>` +
		`<a:accent3><a:srgbClr val="A5A5A5"/></a:accent3>` +
		`<a:accent4><a:srgbClr val="FFC000"/></a:accent4>` +
		`<a:accent5><a:srgbClr val="5B9BD5"/></a:accent5>` +
		`<a:accent6><a:srgbClr val="70AD47"/></a:accent6>` +
		`<a:hlink><a:srgbClr val="0563C1"/></a:hlink>` +
		`<a:folHlink><a:srgbClr val="954F72"/></a:folHlink>` +
		`</a:clrScheme>`)
	b.WriteString(`<a:fontScheme name="Office">` +
		`<a:majorFont><a:latin typeface="Calibri Light"/><a:ea typeface=""/><a:cs typeface=""/></a:majorFont>` +
		`<a:minorFont><a:latin typeface="Calibri"/><a:ea typeface=""/><a:cs typeface=""/></a:minorFont>` +
		`</a:fontScheme>`)
	b.WriteString(`<a:fmtScheme name="Office">`)
	b.WriteString(`<a:fillStyleLst>` + fills + `</a:fillStyleLst>`)
	b.WriteString(`<a:lnStyleLst>` + line(6350) + line(12700) + line(19050) + `</a:lnStyleLst>`)
	b.WriteString(`<a:effectStyleLst>` +
		`<a:effectStyle><a:effectLst/></a:effectStyle>` +
		`<a:effectStyle><a:effectLst/></a:effectStyle>` +
		`<a:effectStyle><a:effectLst/></a:effectStyle>` +
		`</a:effectStyleLst>`)
	b.WriteString(`<a:bgFillStyleLst>` + fills + `</a:bgFillStyleLst>`)
	b.WriteString(`</a:fmtScheme></a:themeElements><a:objectDefaults/><a:extraClrSchemeLst/></a:theme>`)
	return b.String()
}

func corePropertiesXML(metadata Metadata, created time.Time) string {
	timestamp := created.Format("2006-01-02T15:04:05Z")
	title := metadata.Title
	if title == "" {
		title = DefaultTitle
	}

	var b strings.Builder
	b.WriteString(xmlHeader)
	b.WriteString(`<cp:coreProperties xmlns:cp="http://schemas.openxmlformats.org/package/2006/metadata/core-properties" ` +
		`xmlns:dc="http://purl.org/dc/elements/1.1/" xmlns:dcterms="http://purl.org/dc/terms/" ` +
		`xmlns:dcmitype="http://purl.org/dc/dcmitype/" xmlns:xsi="http://www.w3.org/2001/XMLSchema-instance">`)
	fmt.Fprintf(&b, `<dc:title>%s</dc:title>`, escape(title))
	if metadata.Subject != "" {
		fmt.Fprintf(&b, `<dc:subject>%s</dc:subject>`, escape(metadata.Subject))
	}
	if metadata.Author != "" {
		fmt.Fprintf(&b, `<dc:creator>%s</dc:creator>`, escape(metadata.Author))
		fmt.Fprintf(&b, `<cp:lastModifiedBy>%s</cp:lastModifiedBy>`, escape(metadata.Author))
	}
	fmt.Fprintf(&b, `<cp:revision>%s</cp:revision>`, escape(metadata.Revision))
	fmt.Fprintf(&b, `<dcterms:created xsi:type="dcterms:W3CDTF">%s</dcterms:created>`, timestamp)
	fmt.Fprintf(&b, `<dcterms:modified xsi:type="dcterms:W3CDTF">%s</dcterms:modified>`, timestamp)
	b.WriteString(`</cp:coreProperties>`)
	return b.String()
}

func extendedPropertiesXML(metadata Metadata, slides int) string {
	var b strings.Builder
	b.WriteString(xmlHeader)
	b.WriteString(`<Properties xmlns="http://schemas.openxmlformats.org/officeDocument/2006/extended-properties" ` +
		`xmlns:vt="http://schemas.openxmlformats.org/officeDocument/2006/docPropsVTypes">`)
	b.WriteString(`<Application>Deckhand</Application>`)
	fmt.Fprintf(&b, `<Slides>%d</Slides>`, slides)
	if metadata.Company != "" {
		fmt.Fprintf(&b, `<Company>%s</Company>`, escape(metadata.Company))
	}
	b.WriteString(`</Properties>`)
	return b.String()
}
