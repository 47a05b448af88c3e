// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package tools

import "github.com/bureau-foundation/deckhand/lib/deck"

// placement is the frame shared by every element tool. Bounds are
// inches on the default 16:9 canvas.
type placement struct {
	X float64 `json:"x" desc:"left edge in inches from the slide's left side" required:"true" minimum:"0" maximum:"10"`
	Y float64 `json:"y" desc:"top edge in inches from the slide's top" required:"true" minimum:"0" maximum:"5.5"`
	W float64 `json:"w" desc:"width in inches" required:"true" minimum:"0" maximum:"10"`
	H float64 `json:"h" desc:"height in inches" required:"true" minimum:"0" maximum:"5.5"`
}

func (p placement) frame() deck.Frame {
	return deck.Frame{X: p.X, Y: p.Y, W: p.W, H: p.H}
}

type createPresentationParams struct {
	Title    string `json:"title" desc:"presentation title, also used in the file name"`
	Subject  string `json:"subject" desc:"document subject"`
	Author   string `json:"author" desc:"document author"`
	Company  string `json:"company" desc:"author's company"`
	Revision string `json:"revision" desc:"revision number" default:"1"`
	RTL      bool   `json:"rtl" desc:"lay out text right-to-left" default:"false"`
}

type addSlideParams struct {
	ID string `json:"id" desc:"presentation id returned by create-presentation" required:"true"`
}

type addTextParams struct {
	SlideID string `json:"slideId" desc:"slide id returned by add-slide" required:"true"`
	Text    string `json:"text" desc:"text content; each line becomes a paragraph" required:"true"`
	placement
	Align    deck.Align `json:"align" desc:"horizontal alignment" default:"left"`
	Bold     bool       `json:"bold" desc:"bold text" default:"false"`
	Color    string     `json:"color" desc:"text color as 6-digit hex RGB (e.g. 1F4E79)" pattern:"^#?[0-9A-Fa-f]{6}$"`
	FontFace string     `json:"fontFace" desc:"font family (e.g. Arial)"`
	FontSize float64    `json:"fontSize" desc:"font size in points" default:"18" minimum:"1" maximum:"256"`
}

type tableCell struct {
	Text    string       `json:"text" desc:"cell text" required:"true"`
	Options *cellOptions `json:"options" desc:"formatting for this cell, overriding the table defaults"`
}

type cellOptions struct {
	Align    deck.Align `json:"align" desc:"horizontal alignment"`
	Bold     *bool      `json:"bold" desc:"bold text"`
	Color    string     `json:"color" desc:"text color as 6-digit hex RGB" pattern:"^#?[0-9A-Fa-f]{6}$"`
	Fill     string     `json:"fill" desc:"background color as 6-digit hex RGB" pattern:"^#?[0-9A-Fa-f]{6}$"`
	FontSize float64    `json:"fontSize" desc:"font size in points" minimum:"1" maximum:"256"`
	FontFace string     `json:"fontFace" desc:"font family"`
}

func (o *cellOptions) toDeck() *deck.CellOptions {
	if o == nil {
		return nil
	}
	return &deck.CellOptions{
		Align:    o.Align,
		Bold:     o.Bold,
		Color:    o.Color,
		Fill:     o.Fill,
		FontSize: o.FontSize,
		FontFace: o.FontFace,
	}
}

type tableBorder struct {
	Type  deck.BorderType `json:"type" desc:"border style; solid when omitted"`
	Pt    *float64        `json:"pt" desc:"border thickness in points; 1 when omitted" minimum:"0" maximum:"10"`
	Color string          `json:"color" desc:"border color as 6-digit hex RGB" pattern:"^#?[0-9A-Fa-f]{6}$"`
}

// defaultBorderPoints is the border thickness when pt is omitted.
const defaultBorderPoints = 1

func (b *tableBorder) toDeck() *deck.Border {
	if b == nil {
		return nil
	}
	border := &deck.Border{Type: b.Type, Points: defaultBorderPoints, Color: b.Color}
	if border.Type == "" {
		border.Type = deck.BorderSolid
	}
	if b.Pt != nil {
		border.Points = *b.Pt
	}
	return border
}

type addTableParams struct {
	SlideID string        `json:"slideId" desc:"slide id returned by add-slide" required:"true"`
	Data    [][]tableCell `json:"data" desc:"rows of cells; every row must have the same number of cells" required:"true" minItems:"1"`
	placement
	ColW     []float64    `json:"colW" desc:"column widths in inches, one per column" minimum:"0" maximum:"10"`
	RowH     []float64    `json:"rowH" desc:"row heights in inches, one per row" minimum:"0" maximum:"5.5"`
	Align    deck.Align   `json:"align" desc:"default horizontal alignment" default:"left"`
	Bold     bool         `json:"bold" desc:"default bold" default:"false"`
	Border   *tableBorder `json:"border" desc:"cell borders; none when omitted"`
	Color    string       `json:"color" desc:"default text color as 6-digit hex RGB" pattern:"^#?[0-9A-Fa-f]{6}$"`
	Fill     string       `json:"fill" desc:"default cell background as 6-digit hex RGB; none when omitted" pattern:"^#?[0-9A-Fa-f]{6}$"`
	FontSize float64      `json:"fontSize" desc:"default font size in points" default:"18" minimum:"1" maximum:"256"`
	FontFace string       `json:"fontFace" desc:"default font family"`
}

func (p *addTableParams) table() *deck.Table {
	rows := make([][]deck.Cell, len(p.Data))
	for rowIndex, row := range p.Data {
		rows[rowIndex] = make([]deck.Cell, len(row))
		for columnIndex, cell := range row {
			rows[rowIndex][columnIndex] = deck.Cell{Text: cell.Text, Options: cell.Options.toDeck()}
		}
	}
	return &deck.Table{
		Frame:        p.frame(),
		Rows:         rows,
		ColumnWidths: p.ColW,
		RowHeights:   p.RowH,
		Align:        p.Align,
		Bold:         p.Bold,
		Border:       p.Border.toDeck(),
		Color:        p.Color,
		Fill:         p.Fill,
		FontSize:     p.FontSize,
		FontFace:     p.FontFace,
	}
}

type shapeLine struct {
	Color          string         `json:"color" desc:"line color as 6-digit hex RGB; 333333 when omitted" pattern:"^#?[0-9A-Fa-f]{6}$"`
	Width          float64        `json:"width" desc:"line width in points; 1 when omitted" minimum:"1" maximum:"256"`
	DashType       deck.DashType  `json:"dashType" desc:"dash pattern; solid when omitted"`
	BeginArrowType deck.ArrowType `json:"beginArrowType" desc:"arrowhead at the line start"`
	EndArrowType   deck.ArrowType `json:"endArrowType" desc:"arrowhead at the line end"`
}

type shapeFill struct {
	Color        string  `json:"color" desc:"fill color as 6-digit hex RGB" required:"true" pattern:"^#?[0-9A-Fa-f]{6}$"`
	Transparency float64 `json:"transparency" desc:"transparency percentage: 0 is opaque, 100 invisible" minimum:"0" maximum:"100"`
}

type addShapeParams struct {
	SlideID string         `json:"slideId" desc:"slide id returned by add-slide" required:"true"`
	Shape   deck.ShapeKind `json:"shape" desc:"preset geometry" required:"true"`
	placement
	Align      deck.Align `json:"align" desc:"alignment of the shape's text body" default:"left"`
	FlipH      bool       `json:"flipH" desc:"mirror horizontally" default:"false"`
	FlipV      bool       `json:"flipV" desc:"mirror vertically" default:"false"`
	Line       *shapeLine `json:"line" desc:"outline; none when omitted (the line shape gets a 1pt 333333 stroke)"`
	RectRadius float64    `json:"rectRadius" desc:"corner radius in inches (roundRect only)" minimum:"0" maximum:"1"`
	Rotate     float64    `json:"rotate" desc:"clockwise rotation in degrees" minimum:"-360" maximum:"360"`
	Fill       *shapeFill `json:"fill" desc:"solid fill; unfilled when omitted"`
}

func (p *addShapeParams) shape() *deck.Shape {
	shape := &deck.Shape{
		Frame:      p.frame(),
		Geometry:   p.Shape,
		Align:      p.Align,
		FlipH:      p.FlipH,
		FlipV:      p.FlipV,
		RectRadius: p.RectRadius,
		Rotate:     p.Rotate,
	}
	if p.Line != nil {
		shape.Line = &deck.Line{
			Color:      p.Line.Color,
			Width:      p.Line.Width,
			DashType:   p.Line.DashType,
			BeginArrow: p.Line.BeginArrowType,
			EndArrow:   p.Line.EndArrowType,
		}
	}
	if p.Fill != nil {
		shape.Fill = &deck.Fill{Color: p.Fill.Color, Transparency: p.Fill.Transparency}
	}
	return shape
}

type chartSeries struct {
	Name   string    `json:"name" desc:"series name shown in the legend" required:"true"`
	Labels []string  `json:"labels" desc:"category labels" required:"true" minItems:"1"`
	Values []float64 `json:"values" desc:"one value per label" required:"true" minItems:"1"`
}

type addChartParams struct {
	SlideID   string         `json:"slideId" desc:"slide id returned by add-slide" required:"true"`
	ChartType deck.ChartType `json:"chartType" desc:"chart kind" required:"true"`
	Data      []chartSeries  `json:"data" desc:"data series sharing the first series' labels" required:"true" minItems:"1"`
	placement
}

func (p *addChartParams) chart() *deck.Chart {
	series := make([]deck.Series, len(p.Data))
	for i, data := range p.Data {
		series[i] = deck.Series{Name: data.Name, Labels: data.Labels, Values: data.Values}
	}
	return &deck.Chart{Frame: p.frame(), Type: p.ChartType, Series: series}
}

type getFileURLParams struct {
	ID string `json:"id" desc:"presentation id returned by create-presentation" required:"true"`
}

type deckStatusParams struct{}
