package terminal

import "github.com/dshills/gridkit/internal/event"

// CellLocator maps screen coordinates to the data cell drawn there.
type CellLocator interface {
	CellAt(x, y int) event.Cell
}

// CellLocatorFunc adapts a function to CellLocator.
type CellLocatorFunc func(x, y int) event.Cell

// CellAt implements CellLocator.
func (f CellLocatorFunc) CellAt(x, y int) event.Cell {
	return f(x, y)
}

// FixedLayout locates cells in a uniform layout: a header band of
// HeaderRows lines, then rows of one line each and columns of ColumnWidth
// characters, offset by the current scroll position.
type FixedLayout struct {
	HeaderRows  int
	ColumnWidth int
	Rows        int
	Columns     int

	// Offset returns the scroll offsets. Nil means no scrolling.
	Offset func() (column, row int)

	// Visible returns how many columns and rows are on screen. Positions
	// past them (a status line, a right margin) map to no cell. Nil means
	// the whole data fits.
	Visible func() (columns, rows int)
}

// CellAt implements CellLocator.
func (l FixedLayout) CellAt(x, y int) event.Cell {
	if x < 0 || y < l.HeaderRows || l.ColumnWidth <= 0 {
		return event.NoCell
	}
	col, row := x/l.ColumnWidth, y-l.HeaderRows
	if l.Visible != nil {
		vc, vr := l.Visible()
		if col >= vc || row >= vr {
			return event.NoCell
		}
	}
	if l.Offset != nil {
		dc, dr := l.Offset()
		col += dc
		row += dr
	}
	if col >= l.Columns || row >= l.Rows {
		return event.NoCell
	}
	return event.At(col, row)
}
