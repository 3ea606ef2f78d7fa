package features

import (
	"github.com/dshills/gridkit/internal/event"
	"github.com/dshills/gridkit/internal/feature"
)

// OnHoverAlias is the alias of OnHover.
const OnHoverAlias = "OnHover"

// OnHover tracks the cell under the pointer. It never consumes events, so
// features further down the chain still see pointer motion.
type OnHover struct {
	feature.Base
	last event.Cell
}

// NewOnHover creates the hover feature.
func NewOnHover() *OnHover {
	return &OnHover{Base: feature.NewBase(OnHoverAlias)}
}

// InitializeOn implements feature.Initializer.
func (f *OnHover) InitializeOn(g feature.Grid) error {
	f.last = event.NoCell
	if h, ok := g.(HoverTracker); ok {
		h.SetHoverCell(event.NoCell)
	}
	return nil
}

// Detach implements feature.Detacher.
func (f *OnHover) Detach(g feature.Grid) {
	if h, ok := g.(HoverTracker); ok && f.last.Valid {
		h.SetHoverCell(event.NoCell)
	}
	f.last = event.NoCell
}

// HandleMouseMove implements feature.MouseMoveHandler.
func (f *OnHover) HandleMouseMove(g feature.Grid, ev *event.Event) feature.Result {
	f.track(g, ev.Cell())
	return feature.Forward()
}

// HandleMouseExit implements feature.MouseExitHandler.
func (f *OnHover) HandleMouseExit(g feature.Grid, _ *event.Event) feature.Result {
	f.track(g, event.NoCell)
	return feature.Forward()
}

func (f *OnHover) track(g feature.Grid, cell event.Cell) {
	if !g.ResolveProperty(PropHoverEnabled).Enabled() {
		return
	}
	h, ok := g.(HoverTracker)
	if !ok || cell == f.last {
		return
	}
	f.last = cell
	h.SetHoverCell(cell)
}
