package features

import (
	"github.com/dshills/gridkit/internal/event"
	"github.com/dshills/gridkit/internal/feature"
)

// KeyPagingAlias is the alias of KeyPaging.
const KeyPagingAlias = "KeyPaging"

// KeyPaging scrolls by a page of rows on PageUp and PageDown, and to the
// first or last page on Home and End.
type KeyPaging struct {
	feature.Base
}

// NewKeyPaging creates the paging feature.
func NewKeyPaging() *KeyPaging {
	return &KeyPaging{Base: feature.NewBase(KeyPagingAlias)}
}

// HandleKeyDown implements feature.KeyDownHandler.
func (f *KeyPaging) HandleKeyDown(g feature.Grid, ev *event.Event) feature.Result {
	if !g.ResolveProperty(PropKeyPagingEnabled).Enabled() {
		return feature.Forward()
	}
	vp, ok := g.(Viewport)
	if !ok {
		return feature.Forward()
	}

	page := max(vp.VisibleRows(), 1)

	switch ev.Key() {
	case event.KeyPageUp:
		g.ScrollBy(0, -page)
	case event.KeyPageDown:
		g.ScrollBy(0, page)
	case event.KeyHome:
		if !ev.Modifiers().HasCtrl() {
			return feature.Forward()
		}
		g.ScrollBy(0, -maxScroll)
	case event.KeyEnd:
		if !ev.Modifiers().HasCtrl() {
			return feature.Forward()
		}
		g.ScrollBy(0, maxScroll)
	default:
		return feature.Forward()
	}
	return feature.Handled()
}

// maxScroll is a request large enough to reach either end; the grid clamps it.
const maxScroll = 1 << 30
