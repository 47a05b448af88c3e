// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package deck

import (
	"fmt"
	"strconv"
	"strings"
)

// Axis ids shared by every chart with a category and value axis.
const (
	categoryAxisID = 1
	valueAxisID    = 2
)

// chartXML renders the chartSpace part for one chart.
func chartXML(chart *Chart) string {
	var b strings.Builder
	b.WriteString(xmlHeader)
	fmt.Fprintf(&b, `<c:chartSpace xmlns:c="%s" xmlns:a="%s" xmlns:r="%s">`, namespaceChart, namespaceDrawing, namespaceRelationship)
	b.WriteString(`<c:roundedCorners val="0"/><c:chart><c:autoTitleDeleted val="1"/><c:plotArea><c:layout/>`)

	switch chart.Type {
	case ChartBar:
		b.WriteString(`<c:barChart><c:barDir val="col"/><c:grouping val="clustered"/><c:varyColors val="0"/>`)
		writeSeries(&b, chart.Series, false)
		b.WriteString(`<c:gapWidth val="150"/>`)
		writeAxisIDs(&b)
		b.WriteString(`</c:barChart>`)
	case ChartLine:
		b.WriteString(`<c:lineChart><c:grouping val="standard"/><c:varyColors val="0"/>`)
		writeSeries(&b, chart.Series, true)
		b.WriteString(`<c:marker val="1"/>`)
		writeAxisIDs(&b)
		b.WriteString(`</c:lineChart>`)
	case ChartArea:
		b.WriteString(`<c:areaChart><c:grouping val="standard"/><c:varyColors val="0"/>`)
		writeSeries(&b, chart.Series, false)
		writeAxisIDs(&b)
		b.WriteString(`</c:areaChart>`)
	case ChartPie:
		b.WriteString(`<c:pieChart><c:varyColors val="1"/>`)
		writeSeries(&b, chart.Series, false)
		b.WriteString(`<c:firstSliceAng val="0"/></c:pieChart>`)
	case ChartDoughnut:
		b.WriteString(`<c:doughnutChart><c:varyColors val="1"/>`)
		writeSeries(&b, chart.Series, false)
		b.WriteString(`<c:firstSliceAng val="0"/><c:holeSize val="50"/></c:doughnutChart>`)
	case ChartRadar:
		b.WriteString(`<c:radarChart><c:radarStyle val="marker"/><c:varyColors val="0"/>`)
		writeSeries(&b, chart.Series, false)
		writeAxisIDs(&b)
		b.WriteString(`</c:radarChart>`)
	}

	if chart.Type.hasAxes() {
		fmt.Fprintf(&b, `<c:catAx><c:axId val="%d"/><c:scaling><c:orientation val="minMax"/></c:scaling>`+
			`<c:delete val="0"/><c:axPos val="b"/><c:numFmt formatCode="General" sourceLinked="0"/>`+
			`<c:tickLblPos val="nextTo"/><c:crossAx val="%d"/><c:crosses val="autoZero"/>`+
			`<c:auto val="1"/><c:lblAlgn val="ctr"/><c:lblOffset val="100"/></c:catAx>`,
			categoryAxisID, valueAxisID)
		fmt.Fprintf(&b, `<c:valAx><c:axId val="%d"/><c:scaling><c:orientation val="minMax"/></c:scaling>`+
			`<c:delete val="0"/><c:axPos val="l"/><c:majorGridlines/><c:numFmt formatCode="General" sourceLinked="0"/>`+
			`<c:tickLblPos val="nextTo"/><c:crossAx val="%d"/><c:crosses val="autoZero"/>`+
			`<c:crossBetween val="between"/></c:valAx>`,
			valueAxisID, categoryAxisID)
	}

	b.WriteString(`</c:plotArea><c:legend><c:legendPos val="r"/><c:overlay val="0"/></c:legend>`)
	b.WriteString(`<c:plotVisOnly val="1"/><c:dispBlanksAs val="gap"/></c:chart></c:chartSpace>`)
	return b.String()
}

func writeAxisIDs(b *strings.Builder) {
	fmt.Fprintf(b, `<c:axId val="%d"/><c:axId val="%d"/>`, categoryAxisID, valueAxisID)
}

// writeSeries writes literal (non-spreadsheet-backed) series data.
// Line series additionally carry a marker and an explicit smooth flag.
func writeSeries(b *strings.Builder, series []Series, line bool) {
	for index, s := range series {
		fmt.Fprintf(b, `<c:ser><c:idx val="%d"/><c:order val="%d"/><c:tx><c:v>%s</c:v></c:tx>`, index, index, escape(s.Name))
		if line {
			b.WriteString(`<c:marker><c:symbol val="circle"/><c:size val="5"/></c:marker>`)
		}

		fmt.Fprintf(b, `<c:cat><c:strLit><c:ptCount val="%d"/>`, len(s.Labels))
		for pointIndex, label := range s.Labels {
			fmt.Fprintf(b, `<c:pt idx="%d"><c:v>%s</c:v></c:pt>`, pointIndex, escape(label))
		}
		b.WriteString(`</c:strLit></c:cat>`)

		fmt.Fprintf(b, `<c:val><c:numLit><c:formatCode>General</c:formatCode><c:ptCount val="%d"/>`, len(s.Values))
		for pointIndex, value := range s.Values {
			fmt.Fprintf(b, `<c:pt idx="%d"><c:v>%s</c:v></c:pt>`, pointIndex, strconv.FormatFloat(value, 'g', -1, 64))
		}
		b.WriteString(`</c:numLit></c:val>`)

		if line {
			b.WriteString(`<c:smooth val="0"/>`)
		}
		b.WriteString(`</c:ser>`)
	}
}
