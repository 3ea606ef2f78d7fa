package grid

import (
	"github.com/dshills/gridkit/internal/config/layer"
	"github.com/dshills/gridkit/internal/event"
)

// view is the grid as seen by feature handlers. Its methods assume the
// grid mutex is already held.
type view struct {
	g *Grid
}

func (g *Grid) view() view {
	return view{g: g}
}

func (v view) ResolveProperty(key string) layer.Value {
	return v.g.resolveProperty(key)
}

func (v view) ResolveCellProperty(cell event.Cell, key string) layer.Value {
	return v.g.resolveCellProperty(cell, key)
}

func (v view) ScrollBy(columns, rows int) {
	v.g.scrollBy(columns, rows)
}

func (v view) VisibleRows() int {
	return v.g.viewport.VisibleRows
}

func (v view) VisibleColumns() int {
	return v.g.viewport.VisibleColumns
}

func (v view) SetHoverCell(cell event.Cell) {
	v.g.setHoverCell(cell)
}

func (v view) SelectCell(cell event.Cell) {
	v.g.selectCell(cell)
}
