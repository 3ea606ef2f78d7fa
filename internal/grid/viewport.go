package grid

import "math"

// Viewport describes which part of the data is on screen.
type Viewport struct {
	// Rows and Columns are the data dimensions.
	Rows    int
	Columns int

	// VisibleRows and VisibleColumns are how many fit on screen.
	VisibleRows    int
	VisibleColumns int

	// Row and Column are the scroll offsets of the top-left visible cell.
	Row    int
	Column int
}

// MaxRow returns the largest valid row offset.
func (v Viewport) MaxRow() int {
	return max(v.Rows-v.VisibleRows, 0)
}

// MaxColumn returns the largest valid column offset.
func (v Viewport) MaxColumn() int {
	return max(v.Columns-v.VisibleColumns, 0)
}

// scrollBy moves the offsets, clamped to the data. It reports whether
// anything moved.
func (v *Viewport) scrollBy(columns, rows int) bool {
	col := clamp(addSat(v.Column, columns), 0, v.MaxColumn())
	row := clamp(addSat(v.Row, rows), 0, v.MaxRow())
	if col == v.Column && row == v.Row {
		return false
	}
	v.Column, v.Row = col, row
	return true
}

// resize changes the visible area and re-clamps the offsets.
func (v *Viewport) resize(visibleColumns, visibleRows int) {
	v.VisibleColumns = max(visibleColumns, 0)
	v.VisibleRows = max(visibleRows, 0)
	v.Column = clamp(v.Column, 0, v.MaxColumn())
	v.Row = clamp(v.Row, 0, v.MaxRow())
}

// addSat adds a and b, saturating at the int range instead of wrapping.
func addSat(a, b int) int {
	switch {
	case b > 0 && a > math.MaxInt-b:
		return math.MaxInt
	case b < 0 && a < math.MinInt-b:
		return math.MinInt
	}
	return a + b
}

func clamp(n, lo, hi int) int {
	if n < lo {
		return lo
	}
	if n > hi {
		return hi
	}
	return n
}
