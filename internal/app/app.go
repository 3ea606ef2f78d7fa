package app

import (
	"context"
	"io"
	"log/slog"
	"os"
	"sync"
	"sync/atomic"

	"github.com/dshills/gridkit/internal/config"
	"github.com/dshills/gridkit/internal/config/layer"
	"github.com/dshills/gridkit/internal/config/notify"
	"github.com/dshills/gridkit/internal/grid"
	"github.com/dshills/gridkit/internal/input/terminal"
	"github.com/dshills/gridkit/internal/plugin/lua"
)

// Options configures the application.
type Options struct {
	// ConfigPath is the TOML or YAML property file.
	ConfigPath string

	// LogLevel sets the logging verbosity.
	LogLevel string

	// LogOutput receives logs. The terminal is owned by the grid, so this
	// is usually a file. Nil discards logs.
	LogOutput io.Writer

	// Rows and Columns are the dimensions of the demo data.
	Rows    int
	Columns int

	// ColumnsJSON is an optional JSON file of column definitions keyed by
	// column index. Column overrides from ConfigPath take precedence.
	ColumnsJSON string

	// ScriptPath is an optional Lua feature inserted at the head of the chain.
	ScriptPath string

	// Watch enables live reload of ConfigPath.
	Watch bool
}

// Application hosts one grid on a terminal.
type Application struct {
	opts   Options
	logger *slog.Logger

	cfg    *config.Config
	props  *notify.Notifier
	grid   *grid.Grid
	script *lua.ScriptFeature

	screen     *terminal.Screen
	translator *terminal.Translator

	cancel   context.CancelFunc
	running  atomic.Bool
	needDraw atomic.Bool
	fault    string // last handler fault, shown on the status line
	done     chan struct{}
	stopOnce sync.Once
}

// New creates the application: it loads configuration, builds the grid
// with the default feature chain and loads the optional script.
func New(opts Options) (*Application, error) {
	app := &Application{
		opts: opts,
		logger: NewLogger(LoggerConfig{
			Level:  opts.LogLevel,
			Output: opts.LogOutput,
		}),
		done: make(chan struct{}),
	}

	if err := app.bootstrap(); err != nil {
		app.shutdown()
		return nil, err
	}
	return app, nil
}

// bootstrap initializes components in dependency order.
func (app *Application) bootstrap() error {
	ctx, cancel := context.WithCancel(context.Background())
	app.cancel = cancel

	// 1. Configuration
	app.cfg = config.New(
		config.WithPath(app.opts.ConfigPath),
		config.WithWatcher(app.opts.Watch),
		config.WithLogger(WithComponent(app.logger, "config")),
	)
	if err := app.cfg.Load(ctx); err != nil {
		return &InitError{Component: "config", Err: err}
	}
	snap := app.cfg.Snapshot()
	app.cfg.Subscribe(func(c notify.Change) {
		app.logger.Info("config property changed",
			"key", c.Key, "old", c.OldValue, "new", c.NewValue)
	})

	// 2. Grid
	app.props = notify.New()
	g, err := grid.New(app.opts.Rows, app.opts.Columns,
		grid.WithProperties(snap.Properties),
		grid.WithLogger(WithComponent(app.logger, "grid")),
		grid.WithNotifier(app.props),
		grid.WithRepaint(func() { app.needDraw.Store(true) }),
	)
	if err != nil {
		return &InitError{Component: "grid", Err: err}
	}
	app.grid = g
	app.props.Subscribe(func(c notify.Change) {
		app.logger.Debug("grid property changed",
			"scope", c.Scope, "key", c.Key, "change", c.Type.String())
		app.requestDraw()
	})
	if err := app.loadColumnDefs(); err != nil {
		return &InitError{Component: "columns", Err: err}
	}
	app.applyColumns(nil, snap.Columns)

	// 3. Scripted feature
	if app.opts.ScriptPath != "" {
		f, err := lua.LoadScriptFeature("", app.opts.ScriptPath,
			lua.WithLogger(WithComponent(app.logger, "script")))
		if err != nil {
			return &InitError{Component: "script", Err: err}
		}
		app.script = f
		if aliases, _ := g.Features(); len(aliases) > 0 {
			err = g.InsertFeatureBefore(aliases[0], f)
		} else {
			err = g.AddFeature(f)
		}
		if err != nil {
			return &InitError{Component: "script", Err: err}
		}
	}

	// 4. Live reload
	prev := snap.Columns
	app.cfg.OnReload(func(s config.Snapshot) {
		if _, err := app.grid.ReloadProperties(s.Properties); err != nil {
			app.logger.Warn("apply reloaded properties", "error", err)
		}
		app.applyColumns(prev, s.Columns)
		prev = s.Columns
		app.requestDraw()
	})

	app.translator = terminal.NewTranslator(app.locator())
	app.logger.Info("application initialized",
		"grid", g.ID().String(),
		"rows", app.opts.Rows,
		"columns", app.opts.Columns,
	)
	return nil
}

// loadColumnDefs installs the column definitions from ColumnsJSON.
func (app *Application) loadColumnDefs() error {
	if app.opts.ColumnsJSON == "" {
		return nil
	}
	doc, err := os.ReadFile(app.opts.ColumnsJSON)
	if err != nil {
		return err
	}
	scopes, err := layer.ColumnScopesFromJSON(doc)
	if err != nil {
		return err
	}
	for col, s := range scopes {
		app.grid.SetColumnDefaults(col, s)
	}
	app.logger.Debug("column definitions loaded", "path", app.opts.ColumnsJSON, "columns", len(scopes))
	return nil
}

// requestDraw marks the screen stale and wakes the event loop. It may be
// called from any goroutine.
func (app *Application) requestDraw() {
	app.needDraw.Store(true)
	if app.screen != nil && app.running.Load() {
		_ = app.screen.PostEvent(newWakeEvent())
	}
}

// applyColumns installs column overrides and clears columns that lost theirs.
func (app *Application) applyColumns(prev, next map[int]map[string]any) {
	for col := range prev {
		if _, ok := next[col]; !ok {
			app.grid.SetColumnScope(col, nil)
		}
	}
	for col, props := range next {
		app.grid.SetColumnProperties(col, props)
	}
}

// locator maps screen positions to cells under the current scroll offset.
func (app *Application) locator() terminal.CellLocator {
	return terminal.FixedLayout{
		HeaderRows:  1,
		ColumnWidth: columnWidth,
		Rows:        app.opts.Rows,
		Columns:     app.opts.Columns,
		Offset: func() (int, int) {
			vp := app.grid.Viewport()
			return vp.Column, vp.Row
		},
		Visible: func() (int, int) {
			vp := app.grid.Viewport()
			return vp.VisibleColumns, vp.VisibleRows
		},
	}
}

// SetScreen sets the terminal the application runs on.
func (app *Application) SetScreen(s *terminal.Screen) {
	app.screen = s
}

// Grid returns the hosted grid.
func (app *Application) Grid() *grid.Grid {
	return app.grid
}

// Config returns the configuration.
func (app *Application) Config() *config.Config {
	return app.cfg
}

// IsRunning reports whether Run is active.
func (app *Application) IsRunning() bool {
	return app.running.Load()
}

// Run initializes the screen and processes input until quit or Shutdown.
func (app *Application) Run() error {
	if app.screen == nil {
		return ErrNoScreen
	}
	if !app.running.CompareAndSwap(false, true) {
		return ErrAlreadyRunning
	}
	defer app.running.Store(false)

	if err := app.screen.Init(); err != nil {
		return &InitError{Component: "screen", Err: err}
	}
	defer app.screen.Fini()

	w, h := app.screen.Size()
	app.resize(w, h)
	app.draw()

	return app.eventLoop()
}

// Shutdown stops the event loop and releases resources. It is safe to
// call more than once.
func (app *Application) Shutdown() {
	app.stopOnce.Do(func() {
		close(app.done)
		if app.screen != nil && app.running.Load() {
			// Wake PollEvent so the loop observes done.
			_ = app.screen.PostEvent(newWakeEvent())
		}
		app.shutdown()
	})
}

// shutdown releases components in reverse initialization order.
func (app *Application) shutdown() {
	if app.script != nil {
		_ = app.script.Close()
	}
	if app.cfg != nil {
		app.cfg.Close()
	}
	if app.props != nil {
		app.props.Close()
	}
	if app.cancel != nil {
		app.cancel()
	}
}
