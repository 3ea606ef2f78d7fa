package features

import (
	"github.com/dshills/gridkit/internal/event"
	"github.com/dshills/gridkit/internal/feature"
)

// ThumbwheelAlias is the alias of ThumbwheelScrolling.
const ThumbwheelAlias = "ThumbwheelScrolling"

// ThumbwheelScrolling turns wheel motion into single-unit scroll requests.
//
// Vertical motion wins over horizontal. A positive normalized vertical
// delta scrolls up one row, a negative one down one row; horizontal motion
// is only considered when the vertical delta is exactly zero.
type ThumbwheelScrolling struct {
	feature.Base
}

// NewThumbwheelScrolling creates the wheel feature.
func NewThumbwheelScrolling() *ThumbwheelScrolling {
	return &ThumbwheelScrolling{Base: feature.NewBase(ThumbwheelAlias)}
}

// HandleWheelMoved implements feature.WheelHandler.
func (f *ThumbwheelScrolling) HandleWheelMoved(g feature.Grid, ev *event.Event) feature.Result {
	if !g.ResolveCellProperty(ev.Cell(), PropScrollingEnabled).Enabled() {
		return feature.Forward()
	}

	dx, dy := ev.WheelDelta()
	switch {
	case dy > 0:
		g.ScrollBy(0, -1)
	case dy < 0:
		g.ScrollBy(0, 1)
	case dx > 0:
		g.ScrollBy(-1, 0)
	case dx < 0:
		g.ScrollBy(1, 0)
	}
	return feature.Handled()
}
