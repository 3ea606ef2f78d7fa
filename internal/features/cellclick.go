package features

import (
	"github.com/dshills/gridkit/internal/event"
	"github.com/dshills/gridkit/internal/feature"
)

// CellClickAlias is the alias of CellClick.
const CellClickAlias = "CellClick"

// CellClick selects the clicked cell.
type CellClick struct {
	feature.Base
}

// NewCellClick creates the selection feature.
func NewCellClick() *CellClick {
	return &CellClick{Base: feature.NewBase(CellClickAlias)}
}

// HandleClick implements feature.ClickHandler.
func (f *CellClick) HandleClick(g feature.Grid, ev *event.Event) feature.Result {
	cell := ev.Cell()
	if !cell.Valid || ev.Primitive().Button != event.ButtonPrimary {
		return feature.Forward()
	}
	if !g.ResolveCellProperty(cell, PropCellSelectionEnabled).Enabled() {
		return feature.Forward()
	}
	sel, ok := g.(CellSelector)
	if !ok {
		return feature.Forward()
	}
	sel.SelectCell(cell)
	return feature.Handled()
}
