package features

import (
	"github.com/dshills/gridkit/internal/event"
	"github.com/dshills/gridkit/internal/feature"
)

// KeyScrollingAlias is the alias of KeyScrolling.
const KeyScrollingAlias = "KeyScrolling"

// KeyScrolling scrolls one unit per arrow key press.
type KeyScrolling struct {
	feature.Base
}

// NewKeyScrolling creates the arrow-key feature.
func NewKeyScrolling() *KeyScrolling {
	return &KeyScrolling{Base: feature.NewBase(KeyScrollingAlias)}
}

// HandleKeyDown implements feature.KeyDownHandler.
func (f *KeyScrolling) HandleKeyDown(g feature.Grid, ev *event.Event) feature.Result {
	if !g.ResolveProperty(PropKeyScrollingEnabled).Enabled() {
		return feature.Forward()
	}

	switch ev.Key() {
	case event.KeyArrowUp:
		g.ScrollBy(0, -1)
	case event.KeyArrowDown:
		g.ScrollBy(0, 1)
	case event.KeyArrowLeft:
		g.ScrollBy(-1, 0)
	case event.KeyArrowRight:
		g.ScrollBy(1, 0)
	default:
		return feature.Forward()
	}
	return feature.Handled()
}
