package grid

import (
	"log/slog"

	"github.com/dshills/gridkit/internal/config/notify"
	"github.com/dshills/gridkit/internal/feature"
)

// Option configures a Grid.
type Option func(*options)

type options struct {
	logger   *slog.Logger
	features []feature.Feature
	custom   bool
	theme    map[string]any
	props    map[string]any
	behavior map[string]any
	notifier *notify.Notifier
	repaint  func()
	visRows  int
	visCols  int
}

func defaultOptions() options {
	return options{
		logger:  slog.New(slog.DiscardHandler),
		theme:   DefaultProperties(),
		visRows: 20,
		visCols: 8,
	}
}

// WithLogger sets the logger. The grid adds its instance ID.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithFeatures replaces the default feature chain.
func WithFeatures(fs ...feature.Feature) Option {
	return func(o *options) {
		o.features = fs
		o.custom = true
	}
}

// WithTheme replaces the theme defaults.
func WithTheme(props map[string]any) Option {
	return func(o *options) {
		o.theme = props
	}
}

// WithProperties seeds the grid layer, usually from a loaded config file.
func WithProperties(props map[string]any) Option {
	return func(o *options) {
		o.props = props
	}
}

// WithBehaviorProperties seeds the behavior layer.
func WithBehaviorProperties(props map[string]any) Option {
	return func(o *options) {
		o.behavior = props
	}
}

// WithNotifier publishes property changes to n. Observers run after the
// grid lock is released and may call back into the grid.
func WithNotifier(n *notify.Notifier) Option {
	return func(o *options) {
		o.notifier = n
	}
}

// WithRepaint sets the callback run after the viewport or highlight
// state changes. It is called without the grid lock held.
func WithRepaint(fn func()) Option {
	return func(o *options) {
		o.repaint = fn
	}
}

// WithVisible sets the initial visible area.
func WithVisible(columns, rows int) Option {
	return func(o *options) {
		o.visCols = columns
		o.visRows = rows
	}
}
