package grid

import (
	"github.com/dshills/gridkit/internal/config/layer"
	"github.com/dshills/gridkit/internal/config/notify"
	"github.com/dshills/gridkit/internal/features"
)

// Layer names used by a Grid.
const (
	ThemeLayer    = "theme"
	GridLayer     = "grid"
	BehaviorLayer = "behavior"
)

// DefaultProperties returns the theme defaults for every property the
// built-in features read. Each key a feature requires has a value here so
// that an absent grid setting never leaves the feature undecided.
func DefaultProperties() map[string]any {
	return map[string]any{
		features.PropScrollingEnabled:     true,
		features.PropKeyPagingEnabled:     true,
		features.PropKeyScrollingEnabled:  true,
		features.PropHoverEnabled:         true,
		features.PropCellSelectionEnabled: true,
	}
}

func newPropertyManager(n *notify.Notifier, theme, gridProps, behavior map[string]any) *layer.Manager {
	m := layer.NewManager(layer.WithNotifier(n))

	themeLayer := layer.NewLayerWithData(ThemeLayer, layer.SourceTheme, layer.PriorityTheme, theme)
	themeLayer.ReadOnly = true
	m.AddLayer(themeLayer)
	m.AddLayer(layer.NewLayerWithData(GridLayer, layer.SourceGrid, layer.PriorityGrid, gridProps))
	m.AddLayer(layer.NewLayerWithData(BehaviorLayer, layer.SourceBehavior, layer.PriorityBehavior, behavior))
	return m
}
