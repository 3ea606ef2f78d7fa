package features

import "github.com/dshills/gridkit/internal/event"

// Property keys read by the built-in features.
const (
	PropScrollingEnabled     = "scrollingEnabled"
	PropKeyPagingEnabled     = "keyPagingEnabled"
	PropKeyScrollingEnabled  = "keyScrollingEnabled"
	PropHoverEnabled         = "hoverEnabled"
	PropCellSelectionEnabled = "cellSelectionEnabled"
)

// Viewport is implemented by grids that know how much of the data is visible.
type Viewport interface {
	VisibleRows() int
	VisibleColumns() int
}

// HoverTracker is implemented by grids that highlight the hovered cell.
type HoverTracker interface {
	SetHoverCell(cell event.Cell)
}

// CellSelector is implemented by grids that support cell selection.
type CellSelector interface {
	SelectCell(cell event.Cell)
}
