// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package deck

// Table is a grid of cells. Every row must have the same number of
// cells. Table-level options apply to every cell; a cell's own
// [CellOptions] override them.
type Table struct {
	Frame Frame    `cbor:"frame"`
	Rows  [][]Cell `cbor:"rows"`

	// ColumnWidths and RowHeights are in inches. When empty, the
	// frame is divided evenly. When set, their length must match the
	// column or row count.
	ColumnWidths []float64 `cbor:"col_w,omitempty"`
	RowHeights   []float64 `cbor:"row_h,omitempty"`

	Align    Align   `cbor:"align,omitempty"`
	Bold     bool    `cbor:"bold,omitempty"`
	Border   *Border `cbor:"border,omitempty"`
	Color    string  `cbor:"color,omitempty"`
	Fill     string  `cbor:"fill,omitempty"`
	FontSize float64 `cbor:"font_size,omitempty"`
	FontFace string  `cbor:"font_face,omitempty"`
}

// Cell is one table cell.
type Cell struct {
	Text    string       `cbor:"text"`
	Options *CellOptions `cbor:"options,omitempty"`
}

// CellOptions override the table-level formatting for one cell. Nil
// pointers and empty strings inherit.
type CellOptions struct {
	Align    Align   `cbor:"align,omitempty"`
	Bold     *bool   `cbor:"bold,omitempty"`
	Color    string  `cbor:"color,omitempty"`
	Fill     string  `cbor:"fill,omitempty"`
	FontSize float64 `cbor:"font_size,omitempty"`
	FontFace string  `cbor:"font_face,omitempty"`
}

// Kind implements [Element].
func (*Table) Kind() ElementKind { return KindTable }

// Columns returns the number of columns (the length of the first row).
func (t *Table) Columns() int {
	if len(t.Rows) == 0 {
		return 0
	}
	return len(t.Rows[0])
}

func (t *Table) check() Result {
	if result := t.Frame.check(); !result.OK() {
		return Failed("table: %s", result.Reason())
	}
	if len(t.Rows) == 0 {
		return Failed("table: at least one row is required")
	}
	columns := t.Columns()
	if columns == 0 {
		return Failed("table: row 0 has no cells")
	}
	for index, row := range t.Rows {
		if len(row) != columns {
			return Failed("table: row %d has %d cells, expected %d", index, len(row), columns)
		}
	}
	if len(t.ColumnWidths) > 0 && len(t.ColumnWidths) != columns {
		return Failed("table: colW has %d entries for %d columns", len(t.ColumnWidths), columns)
	}
	if len(t.RowHeights) > 0 && len(t.RowHeights) != len(t.Rows) {
		return Failed("table: rowH has %d entries for %d rows", len(t.RowHeights), len(t.Rows))
	}
	if !t.Align.Valid() {
		return Failed("table: unknown alignment %q", t.Align)
	}

	var err error
	if t.Color, err = NormalizeColor(t.Color); err != nil {
		return Failed("table: %v", err)
	}
	if t.Fill, err = NormalizeColor(t.Fill); err != nil {
		return Failed("table: fill %v", err)
	}
	if t.Border != nil {
		if !t.Border.Type.Valid() {
			return Failed("table: unknown border type %q", t.Border.Type)
		}
		if t.Border.Points < 0 || t.Border.Points > 10 {
			return Failed("table: border pt %g is outside 0-10", t.Border.Points)
		}
		if t.Border.Color, err = NormalizeColor(t.Border.Color); err != nil {
			return Failed("table: border %v", err)
		}
	}

	for rowIndex, row := range t.Rows {
		for columnIndex := range row {
			options := row[columnIndex].Options
			if options == nil {
				continue
			}
			if !options.Align.Valid() {
				return Failed("table: cell [%d][%d]: unknown alignment %q", rowIndex, columnIndex, options.Align)
			}
			if options.Color, err = NormalizeColor(options.Color); err != nil {
				return Failed("table: cell [%d][%d]: %v", rowIndex, columnIndex, err)
			}
			if options.Fill, err = NormalizeColor(options.Fill); err != nil {
				return Failed("table: cell [%d][%d]: fill %v", rowIndex, columnIndex, err)
			}
		}
	}
	return Ok()
}

// columnWidths returns the width of each column in inches.
func (t *Table) columnWidths() []float64 {
	if len(t.ColumnWidths) > 0 {
		return t.ColumnWidths
	}
	columns := t.Columns()
	widths := make([]float64, columns)
	for i := range widths {
		widths[i] = t.Frame.W / float64(columns)
	}
	return widths
}

// rowHeights returns the height of each row in inches.
func (t *Table) rowHeights() []float64 {
	if len(t.RowHeights) > 0 {
		return t.RowHeights
	}
	heights := make([]float64, len(t.Rows))
	for i := range heights {
		heights[i] = t.Frame.H / float64(len(t.Rows))
	}
	return heights
}
