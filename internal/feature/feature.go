package feature

import (
	"github.com/dshills/gridkit/internal/config/layer"
	"github.com/dshills/gridkit/internal/event"
)

// Grid is what features may ask of the grid they are attached to.
type Grid interface {
	// ResolveProperty resolves key at grid level.
	ResolveProperty(key string) layer.Value

	// ResolveCellProperty resolves key starting at the most specific scope
	// for cell (cell override, then its column). For an invalid cell this
	// is the same as ResolveProperty.
	ResolveCellProperty(cell event.Cell, key string) layer.Value

	// ScrollBy requests a scroll by whole columns and rows.
	ScrollBy(columns, rows int)
}

// Feature is one node of a chain.
type Feature interface {
	// Alias is the stable name used to find, insert around and remove the
	// feature.
	Alias() string

	// Next returns the successor, or nil at the tail.
	Next() Feature

	// SetNext replaces the successor. Only Chain should call it.
	SetNext(next Feature)
}

// Initializer is implemented by features that need setup when their chain
// is attached to a grid.
type Initializer interface {
	InitializeOn(g Grid) error
}

// Detacher is implemented by features that hold resources which must be
// released when the feature is removed from an attached chain.
type Detacher interface {
	Detach(g Grid)
}

// Base carries the alias and successor link. Concrete features embed it.
type Base struct {
	alias string
	next  Feature
}

// NewBase creates a Base with the given alias.
func NewBase(alias string) Base {
	return Base{alias: alias}
}

// Alias implements Feature.
func (b *Base) Alias() string { return b.alias }

// Next implements Feature.
func (b *Base) Next() Feature { return b.next }

// SetNext implements Feature.
func (b *Base) SetNext(next Feature) { b.next = next }
