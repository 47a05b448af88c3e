// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package deck

import (
	"fmt"
	"strings"
)

// renderedSlide is the output of rendering one slide: its XML, its
// relationship list, and the chart parts it references (in order).
type renderedSlide struct {
	slide         string
	relationships []relationship
	charts        []string
}

// renderSlide renders a slide's shape tree. chartsBefore is the number
// of chart parts emitted by earlier slides; chart parts are numbered
// across the whole package.
func renderSlide(elements []Element, rtl bool, chartsBefore int) renderedSlide {
	rendered := renderedSlide{
		relationships: []relationship{{"rId1", relSlideLayout, "../slideLayouts/slideLayout1.xml"}},
	}

	var tree strings.Builder
	for index, element := range elements {
		// Shape id 1 is the group itself.
		id := index + 2
		switch element := element.(type) {
		case *Text:
			writeText(&tree, id, element, rtl)
		case *Shape:
			writeShape(&tree, id, element, rtl)
		case *Table:
			writeTable(&tree, id, element, rtl)
		case *Chart:
			relationshipID := fmt.Sprintf("rId%d", len(rendered.relationships)+1)
			number := chartsBefore + len(rendered.charts) + 1
			rendered.relationships = append(rendered.relationships, relationship{
				id:     relationshipID,
				kind:   relChart,
				target: fmt.Sprintf("../charts/chart%d.xml", number),
			})
			rendered.charts = append(rendered.charts, chartXML(element))
			writeChartFrame(&tree, id, element, relationshipID)
		default:
			panic(fmt.Sprintf("deck: unhandled element type %T", element))
		}
	}

	var b strings.Builder
	b.WriteString(xmlHeader)
	fmt.Fprintf(&b, `<p:sld xmlns:a="%s" xmlns:r="%s" xmlns:p="%s">`, namespaceDrawing, namespaceRelationship, namespacePresentation)
	b.WriteString(`<p:cSld><p:spTree>`)
	b.WriteString(emptyGroup)
	b.WriteString(tree.String())
	b.WriteString(`</p:spTree></p:cSld><p:clrMapOvr><a:masterClrMapping/></p:clrMapOvr></p:sld>`)
	rendered.slide = b.String()
	return rendered
}

func writeTransform(b *strings.Builder, tag string, frame Frame, attributes string) {
	fmt.Fprintf(b, `<%s%s><a:off x="%d" y="%d"/><a:ext cx="%d" cy="%d"/></%s>`,
		tag, attributes, EMU(frame.X), EMU(frame.Y), EMU(frame.W), EMU(frame.H), tag)
}

func writeSolidFill(b *strings.Builder, color string, transparency float64) {
	if transparency == 0 {
		fmt.Fprintf(b, `<a:solidFill><a:srgbClr val="%s"/></a:solidFill>`, color)
		return
	}
	alpha := int((100 - transparency) * 1000)
	fmt.Fprintf(b, `<a:solidFill><a:srgbClr val="%s"><a:alpha val="%d"/></a:srgbClr></a:solidFill>`, color, alpha)
}

// runStyle is the character formatting shared by text boxes and
// table cells.
type runStyle struct {
	bold     bool
	color    string
	fontFace string
	fontSize float64
}

func writeRunProperties(b *strings.Builder, tag string, style runStyle) {
	size := style.fontSize
	if size == 0 {
		size = DefaultFontSize
	}
	fmt.Fprintf(b, `<a:%s lang="en-US" sz="%d"`, tag, fontSizeHundredths(size))
	if style.bold {
		b.WriteString(` b="1"`)
	}
	b.WriteString(` dirty="0">`)
	if style.color != "" {
		writeSolidFill(b, style.color, 0)
	}
	if style.fontFace != "" {
		face := escape(style.fontFace)
		fmt.Fprintf(b, `<a:latin typeface="%s"/><a:cs typeface="%s"/>`, face, face)
	}
	fmt.Fprintf(b, `</a:%s>`, tag)
}

// writeParagraphs writes one paragraph per line of text.
func writeParagraphs(b *strings.Builder, text string, align Align, rtl bool, style runStyle) {
	properties := fmt.Sprintf(`<a:pPr algn="%s"`, align.drawingML())
	if rtl {
		properties += ` rtl="1"`
	}
	properties += `/>`

	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSuffix(line, "\r")
		b.WriteString(`<a:p>`)
		b.WriteString(properties)
		if line != "" {
			b.WriteString(`<a:r>`)
			writeRunProperties(b, "rPr", style)
			fmt.Fprintf(b, `<a:t>%s</a:t></a:r>`, escape(line))
		}
		writeRunProperties(b, "endParaRPr", style)
		b.WriteString(`</a:p>`)
	}
}

func writeText(b *strings.Builder, id int, text *Text, rtl bool) {
	fmt.Fprintf(b, `<p:sp><p:nvSpPr><p:cNvPr id="%d" name="Text %d"/><p:cNvSpPr txBox="1"/><p:nvPr/></p:nvSpPr>`, id, id)
	b.WriteString(`<p:spPr>`)
	writeTransform(b, "a:xfrm", text.Frame, "")
	b.WriteString(`<a:prstGeom prst="rect"><a:avLst/></a:prstGeom><a:noFill/></p:spPr>`)
	b.WriteString(`<p:txBody><a:bodyPr wrap="square" rtlCol="0" anchor="t"/><a:lstStyle/>`)
	writeParagraphs(b, text.Text, text.Align, rtl, runStyle{
		bold:     text.Bold,
		color:    text.Color,
		fontFace: text.FontFace,
		fontSize: text.FontSize,
	})
	b.WriteString(`</p:txBody></p:sp>`)
}

func writeShape(b *strings.Builder, id int, shape *Shape, rtl bool) {
	fmt.Fprintf(b, `<p:sp><p:nvSpPr><p:cNvPr id="%d" name="%s %d"/><p:cNvSpPr/><p:nvPr/></p:nvSpPr>`, id, shape.Geometry, id)
	b.WriteString(`<p:spPr>`)

	var attributes strings.Builder
	if shape.Rotate != 0 {
		fmt.Fprintf(&attributes, ` rot="%d"`, rotationAngle(shape.Rotate))
	}
	if shape.FlipH {
		attributes.WriteString(` flipH="1"`)
	}
	if shape.FlipV {
		attributes.WriteString(` flipV="1"`)
	}
	writeTransform(b, "a:xfrm", shape.Frame, attributes.String())

	fmt.Fprintf(b, `<a:prstGeom prst="%s">`, shape.Geometry)
	if shape.Geometry == ShapeRoundRect && shape.RectRadius > 0 {
		fmt.Fprintf(b, `<a:avLst><a:gd name="adj" fmla="val %d"/></a:avLst>`, shape.roundRectAdjust())
	} else {
		b.WriteString(`<a:avLst/>`)
	}
	b.WriteString(`</a:prstGeom>`)

	if shape.Fill != nil {
		writeSolidFill(b, shape.Fill.Color, shape.Fill.Transparency)
	} else {
		b.WriteString(`<a:noFill/>`)
	}
	writeLine(b, shape.outline())
	b.WriteString(`</p:spPr>`)

	b.WriteString(`<p:txBody><a:bodyPr rtlCol="0" anchor="ctr"/><a:lstStyle/>`)
	writeParagraphs(b, "", shape.Align, rtl, runStyle{})
	b.WriteString(`</p:txBody></p:sp>`)
}

func writeLine(b *strings.Builder, line *Line) {
	if line == nil {
		b.WriteString(`<a:ln><a:noFill/></a:ln>`)
		return
	}
	outline := *line
	if outline.Color == "" {
		outline.Color = DefaultLineColor
	}
	if outline.Width == 0 {
		outline.Width = 1
	}
	fmt.Fprintf(b, `<a:ln w="%d">`, PointsToEMU(outline.Width))
	writeSolidFill(b, outline.Color, 0)
	if outline.DashType != "" {
		fmt.Fprintf(b, `<a:prstDash val="%s"/>`, outline.DashType)
	}
	if outline.BeginArrow != "" && outline.BeginArrow != ArrowNone {
		fmt.Fprintf(b, `<a:headEnd type="%s"/>`, outline.BeginArrow)
	}
	if outline.EndArrow != "" && outline.EndArrow != ArrowNone {
		fmt.Fprintf(b, `<a:tailEnd type="%s"/>`, outline.EndArrow)
	}
	b.WriteString(`</a:ln>`)
}

func writeGraphicFrameStart(b *strings.Builder, id int, name string, frame Frame, locks string) {
	fmt.Fprintf(b, `<p:graphicFrame><p:nvGraphicFramePr><p:cNvPr id="%d" name="%s %d"/><p:cNvGraphicFramePr>%s</p:cNvGraphicFramePr><p:nvPr/></p:nvGraphicFramePr>`,
		id, name, id, locks)
	writeTransform(b, "p:xfrm", frame, "")
}

func writeTable(b *strings.Builder, id int, table *Table, rtl bool) {
	writeGraphicFrameStart(b, id, "Table", table.Frame, `<a:graphicFrameLocks noGrp="1"/>`)
	b.WriteString(`<a:graphic><a:graphicData uri="http://schemas.openxmlformats.org/drawingml/2006/table"><a:tbl>`)
	if rtl {
		b.WriteString(`<a:tblPr rtl="1"/>`)
	} else {
		b.WriteString(`<a:tblPr/>`)
	}

	b.WriteString(`<a:tblGrid>`)
	for _, width := range table.columnWidths() {
		fmt.Fprintf(b, `<a:gridCol w="%d"/>`, EMU(width))
	}
	b.WriteString(`</a:tblGrid>`)

	heights := table.rowHeights()
	for rowIndex, row := range table.Rows {
		fmt.Fprintf(b, `<a:tr h="%d">`, EMU(heights[rowIndex]))
		for _, cell := range row {
			writeCell(b, table, cell, rtl)
		}
		b.WriteString(`</a:tr>`)
	}
	b.WriteString(`</a:tbl></a:graphicData></a:graphic></p:graphicFrame>`)
}

func writeCell(b *strings.Builder, table *Table, cell Cell, rtl bool) {
	align := table.Align
	style := runStyle{
		bold:     table.Bold,
		color:    table.Color,
		fontFace: table.FontFace,
		fontSize: table.FontSize,
	}
	fill := table.Fill
	if options := cell.Options; options != nil {
		if options.Align != "" {
			align = options.Align
		}
		if options.Bold != nil {
			style.bold = *options.Bold
		}
		if options.Color != "" {
			style.color = options.Color
		}
		if options.FontFace != "" {
			style.fontFace = options.FontFace
		}
		if options.FontSize != 0 {
			style.fontSize = options.FontSize
		}
		if options.Fill != "" {
			fill = options.Fill
		}
	}

	b.WriteString(`<a:tc><a:txBody><a:bodyPr/><a:lstStyle/>`)
	writeParagraphs(b, cell.Text, align, rtl, style)
	b.WriteString(`</a:txBody><a:tcPr>`)
	if table.Border != nil {
		for _, edge := range []string{"lnL", "lnR", "lnT", "lnB"} {
			writeBorderEdge(b, edge, table.Border)
		}
	}
	if fill != "" {
		writeSolidFill(b, fill, 0)
	}
	b.WriteString(`</a:tcPr></a:tc>`)
}

func writeBorderEdge(b *strings.Builder, edge string, border *Border) {
	if border.Type == BorderNone {
		fmt.Fprintf(b, `<a:%s w="0"><a:noFill/></a:%s>`, edge, edge)
		return
	}
	color := border.Color
	if color == "" {
		color = DefaultLineColor
	}
	fmt.Fprintf(b, `<a:%s w="%d">`, edge, PointsToEMU(border.Points))
	writeSolidFill(b, color, 0)
	if border.Type == BorderDash {
		b.WriteString(`<a:prstDash val="dash"/>`)
	} else {
		b.WriteString(`<a:prstDash val="solid"/>`)
	}
	fmt.Fprintf(b, `</a:%s>`, edge)
}

func writeChartFrame(b *strings.Builder, id int, chart *Chart, relationshipID string) {
	writeGraphicFrameStart(b, id, "Chart", chart.Frame, "")
	fmt.Fprintf(b, `<a:graphic><a:graphicData uri="%s"><c:chart xmlns:c="%s" r:id="%s"/></a:graphicData></a:graphic></p:graphicFrame>`,
		namespaceChart, namespaceChart, relationshipID)
}
