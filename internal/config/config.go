package config

import (
	"context"
	"fmt"
	"log/slog"
	"maps"
	"strconv"
	"sync"

	"github.com/dshills/gridkit/internal/config/layer"
	"github.com/dshills/gridkit/internal/config/loader"
	"github.com/dshills/gridkit/internal/config/notify"
	"github.com/dshills/gridkit/internal/config/watcher"
)

// ColumnsKey is the table holding per-column overrides.
const ColumnsKey = "columns"

// Snapshot is one consistent view of the loaded configuration.
type Snapshot struct {
	// Properties are the grid-level properties, environment applied.
	Properties map[string]any

	// Columns maps a column index to its overrides.
	Columns map[int]map[string]any
}

// ReloadFunc receives the new snapshot after the config file changed.
type ReloadFunc func(Snapshot)

// Config loads grid properties and reloads them on file changes.
type Config struct {
	mu sync.RWMutex

	path    string
	fs      loader.FileSystem
	env     *loader.EnvLoader
	logger  *slog.Logger
	watch   bool
	watcher *watcher.Watcher

	notifier *notify.Notifier
	current  Snapshot
	onReload []ReloadFunc
	closed   bool
}

// Option configures a Config.
type Option func(*Config)

// WithPath sets the config file. An empty path loads only the environment.
func WithPath(path string) Option {
	return func(c *Config) {
		c.path = path
	}
}

// WithFileSystem replaces the OS file system, for tests.
func WithFileSystem(fsys loader.FileSystem) Option {
	return func(c *Config) {
		c.fs = fsys
	}
}

// WithEnvLoader replaces the environment loader.
func WithEnvLoader(env *loader.EnvLoader) Option {
	return func(c *Config) {
		c.env = env
	}
}

// WithWatcher enables live reload of the config file.
func WithWatcher(enable bool) Option {
	return func(c *Config) {
		c.watch = enable
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Config) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// New creates a Config. Call Load before reading it.
func New(opts ...Option) *Config {
	c := &Config{
		fs:       loader.DefaultFS(),
		env:      loader.NewEnvLoader(loader.DefaultEnvPrefix),
		logger:   slog.New(slog.DiscardHandler),
		notifier: notify.New(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Load reads the file and environment and, if enabled, starts watching the
// file. A missing file is not an error.
func (c *Config) Load(ctx context.Context) error {
	snap, err := c.read()
	if err != nil {
		return err
	}

	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return ErrClosed
	}
	c.current = snap
	c.mu.Unlock()

	if c.watch && c.path != "" {
		w := watcher.New(c.handleFileChange, watcher.WithLogger(c.logger))
		if err := w.Watch(c.path); err != nil {
			return fmt.Errorf("watch %s: %w", c.path, err)
		}
		if err := w.Start(ctx); err != nil {
			return fmt.Errorf("watch %s: %w", c.path, err)
		}
		c.mu.Lock()
		c.watcher = w
		c.mu.Unlock()
	}
	return nil
}

// Snapshot returns the current configuration.
func (c *Config) Snapshot() Snapshot {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.current.clone()
}

// Path returns the config file path.
func (c *Config) Path() string {
	return c.path
}

// OnReload registers fn to run after every successful reload.
func (c *Config) OnReload(fn ReloadFunc) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onReload = append(c.onReload, fn)
}

// Subscribe registers an observer for property changes detected on reload.
func (c *Config) Subscribe(observer notify.Observer) *notify.Subscription {
	return c.notifier.Subscribe(observer)
}

// Reload re-reads the file and environment. On a parse error the previous
// snapshot stays in effect.
func (c *Config) Reload() error {
	snap, err := c.read()
	if err != nil {
		return err
	}

	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return ErrClosed
	}
	old := c.current
	c.current = snap
	callbacks := append([]ReloadFunc(nil), c.onReload...)
	c.mu.Unlock()

	for _, key := range layer.ChangedPaths(old.Properties, snap.Properties) {
		newValue, _ := layer.GetByPath(snap.Properties, key)
		oldValue, _ := layer.GetByPath(old.Properties, key)
		c.notifier.NotifySet(c.path, key, oldValue, newValue)
	}
	for _, fn := range callbacks {
		fn(snap.clone())
	}
	return nil
}

// Close stops watching and notifications.
func (c *Config) Close() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.closed = true
	w := c.watcher
	c.watcher = nil
	c.mu.Unlock()

	if w != nil {
		w.Stop()
	}
	c.notifier.Close()
}

func (c *Config) handleFileChange(ev watcher.Event) {
	c.logger.Debug("config file changed", "path", ev.Path, "op", ev.Op.String())
	if err := c.Reload(); err != nil {
		c.logger.Warn("config reload failed, keeping previous values", "path", ev.Path, "error", err)
		return
	}
	c.logger.Info("config reloaded", "path", ev.Path)
}

// read loads the file and environment and splits out column overrides.
func (c *Config) read() (Snapshot, error) {
	props := make(map[string]any)

	if c.path != "" {
		data, err := loader.NewFileLoaderWithFS(c.fs, c.path).Load()
		if err != nil {
			return Snapshot{}, err
		}
		props = layer.DeepMerge(props, data)
	}

	if c.env != nil {
		data, err := c.env.Load()
		if err != nil {
			return Snapshot{}, fmt.Errorf("load environment: %w", err)
		}
		props = layer.DeepMerge(props, data)
	}

	columns, err := splitColumns(props)
	if err != nil {
		return Snapshot{}, err
	}
	return Snapshot{Properties: props, Columns: columns}, nil
}

// splitColumns removes the columns table from props and indexes it.
func splitColumns(props map[string]any) (map[int]map[string]any, error) {
	raw, ok := props[ColumnsKey]
	if !ok {
		return nil, nil
	}
	delete(props, ColumnsKey)

	table, ok := raw.(map[string]any)
	if !ok {
		return nil, &ColumnError{Key: "", Err: fmt.Errorf("%w: expected a table, got %T", ErrInvalidColumn, raw)}
	}

	columns := make(map[int]map[string]any, len(table))
	for key, v := range table {
		idx, err := strconv.Atoi(key)
		if err != nil || idx < 0 {
			return nil, &ColumnError{Key: key, Err: ErrInvalidColumn}
		}
		overrides, ok := v.(map[string]any)
		if !ok {
			return nil, &ColumnError{Key: key, Err: fmt.Errorf("%w: expected a table, got %T", ErrInvalidColumn, v)}
		}
		columns[idx] = overrides
	}
	return columns, nil
}

func (s Snapshot) clone() Snapshot {
	out := Snapshot{Properties: layer.DeepMerge(nil, s.Properties)}
	if s.Columns != nil {
		out.Columns = make(map[int]map[string]any, len(s.Columns))
		for k, v := range s.Columns {
			out.Columns[k] = maps.Clone(v)
		}
	}
	return out
}
