package grid

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/dshills/gridkit/internal/config/layer"
	"github.com/dshills/gridkit/internal/config/notify"
	"github.com/dshills/gridkit/internal/event"
	"github.com/dshills/gridkit/internal/feature"
	"github.com/dshills/gridkit/internal/features"
)

// Grid is a virtualized data grid host.
type Grid struct {
	mu sync.Mutex

	id     uuid.UUID
	logger *slog.Logger

	props   *layer.Manager
	columns map[int]layer.Scope
	defs    map[int]layer.Scope
	cells   map[event.Cell]layer.Scope

	// Manager changes queue in pending while mu is held and go out to
	// notifier after it is released.
	notifier *notify.Notifier
	pending  []notify.Change

	chain      *feature.Chain
	dispatcher *feature.Dispatcher

	viewport Viewport
	hover    event.Cell
	selected event.Cell

	repaint func()
	dirty   bool
}

// New creates a grid over rows by columns of data.
func New(rows, columns int, opts ...Option) (*Grid, error) {
	if rows < 0 || columns < 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidSize, columns, rows)
	}

	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	g := &Grid{
		id:      uuid.New(),
		columns:  make(map[int]layer.Scope),
		defs:     make(map[int]layer.Scope),
		cells:    make(map[event.Cell]layer.Scope),
		notifier: o.notifier,
		repaint:  o.repaint,
		viewport: Viewport{
			Rows:    rows,
			Columns: columns,
		},
	}
	g.viewport.resize(o.visCols, o.visRows)
	g.logger = o.logger.With("grid", g.id.String())
	queue := notify.New()
	queue.Subscribe(func(c notify.Change) { g.pending = append(g.pending, c) })
	g.props = newPropertyManager(queue, o.theme, o.props, o.behavior)
	g.pending = nil

	fs := o.features
	if !o.custom {
		fs = features.Default()
	}
	chain, err := feature.NewChain(fs...)
	if err != nil {
		return nil, fmt.Errorf("build feature chain: %w", err)
	}
	if err := chain.Attach(g.view()); err != nil {
		return nil, fmt.Errorf("attach feature chain: %w", err)
	}
	g.chain = chain
	g.dispatcher = feature.NewDispatcher(chain, feature.WithLogger(g.logger))

	g.logger.Debug("grid created",
		"rows", rows,
		"columns", columns,
		"features", chain.Len(),
	)
	return g, nil
}

// ID returns the grid's instance ID.
func (g *Grid) ID() uuid.UUID {
	return g.id
}

// HandleEvent dispatches ev through the feature chain. A handler fault is
// logged and returned; the grid remains usable.
func (g *Grid) HandleEvent(ev *event.Event) error {
	g.mu.Lock()
	err := g.dispatcher.Dispatch(g.view(), ev)
	repaint := g.takeDirty()
	g.mu.Unlock()

	if repaint {
		g.fireRepaint()
	}
	return err
}

// HandleWheel dispatches a wheel event over cell.
func (g *Grid) HandleWheel(p event.Primitive, cell event.Cell) error {
	return g.HandleEvent(event.NewWheel(p, cell))
}

// HandleMouse dispatches a pointer event over cell.
func (g *Grid) HandleMouse(kind event.Kind, p event.Primitive, cell event.Cell) error {
	ev, err := event.NewMouse(kind, p, cell)
	if err != nil {
		return err
	}
	return g.HandleEvent(ev)
}

// HandleKey dispatches a keyboard event.
func (g *Grid) HandleKey(kind event.Kind, p event.Primitive) error {
	ev, err := event.NewKey(kind, p)
	if err != nil {
		return err
	}
	return g.HandleEvent(ev)
}

// ResolveProperty resolves key at grid level.
func (g *Grid) ResolveProperty(key string) layer.Value {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.resolveProperty(key)
}

// ResolveCellProperty resolves key for cell, most specific scope first.
func (g *Grid) ResolveCellProperty(cell event.Cell, key string) layer.Value {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.resolveCellProperty(cell, key)
}

// ScrollBy moves the viewport by whole columns and rows and repaints if
// the offsets changed.
func (g *Grid) ScrollBy(columns, rows int) {
	g.mu.Lock()
	g.scrollBy(columns, rows)
	repaint := g.takeDirty()
	g.mu.Unlock()

	if repaint {
		g.fireRepaint()
	}
}

// Viewport returns a snapshot of the viewport.
func (g *Grid) Viewport() Viewport {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.viewport
}

// Resize changes the visible area.
func (g *Grid) Resize(visibleColumns, visibleRows int) {
	g.mu.Lock()
	before := g.viewport
	g.viewport.resize(visibleColumns, visibleRows)
	changed := before != g.viewport
	g.mu.Unlock()

	if changed {
		g.fireRepaint()
	}
}

// VisibleRows returns how many rows fit on screen.
func (g *Grid) VisibleRows() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.viewport.VisibleRows
}

// VisibleColumns returns how many columns fit on screen.
func (g *Grid) VisibleColumns() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.viewport.VisibleColumns
}

// HoverCell returns the highlighted cell.
func (g *Grid) HoverCell() event.Cell {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.hover
}

// SetHoverCell highlights cell.
func (g *Grid) SetHoverCell(cell event.Cell) {
	g.mu.Lock()
	g.setHoverCell(cell)
	repaint := g.takeDirty()
	g.mu.Unlock()

	if repaint {
		g.fireRepaint()
	}
}

// Selection returns the selected cell.
func (g *Grid) Selection() event.Cell {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.selected
}

// SelectCell selects cell.
func (g *Grid) SelectCell(cell event.Cell) {
	g.mu.Lock()
	g.selectCell(cell)
	repaint := g.takeDirty()
	g.mu.Unlock()

	if repaint {
		g.fireRepaint()
	}
}

// SetColumnScope installs the property scope for column. A nil scope
// removes it.
func (g *Grid) SetColumnScope(column int, s layer.Scope) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if s == nil {
		delete(g.columns, column)
		return
	}
	g.columns[column] = s
}

// SetColumnDefaults installs the data layer's definition scope for
// column. It is consulted after the column scope, so configured column
// overrides win. A nil scope removes it.
func (g *Grid) SetColumnDefaults(column int, s layer.Scope) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if s == nil {
		delete(g.defs, column)
		return
	}
	g.defs[column] = s
}

// SetColumnProperties installs a column scope holding props.
func (g *Grid) SetColumnProperties(column int, props map[string]any) {
	g.SetColumnScope(column, layer.NewColumnLayer(column, props))
}

// SetCellScope installs the property scope for one cell. A nil scope
// removes it.
func (g *Grid) SetCellScope(cell event.Cell, s layer.Scope) {
	g.mu.Lock()
	defer g.mu.Unlock()
	key := event.At(cell.Column, cell.Row)
	if s == nil {
		delete(g.cells, key)
		return
	}
	g.cells[key] = s
}

// SetProperty writes a runtime override into the session layer.
func (g *Grid) SetProperty(key string, value any) {
	g.mu.Lock()
	g.props.SetInSession(key, value)
	g.unlockAndNotify()
}

// ReloadProperties replaces the grid layer and returns the keys whose
// values changed.
func (g *Grid) ReloadProperties(props map[string]any) ([]string, error) {
	g.mu.Lock()
	changed, err := g.props.UpdateLayer(GridLayer, props)
	g.unlockAndNotify()
	if err != nil {
		return nil, err
	}
	if len(changed) > 0 {
		g.logger.Info("grid properties reloaded", "changed", changed)
	}
	return changed, nil
}

// Properties returns the merged property view.
func (g *Grid) Properties() map[string]any {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.props.Merge()
}

// AddFeature appends f to the chain.
func (g *Grid) AddFeature(f feature.Feature) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.chain.Add(f)
}

// InsertFeatureBefore links f before the feature named alias.
func (g *Grid) InsertFeatureBefore(alias string, f feature.Feature) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.chain.InsertBefore(alias, f)
}

// InsertFeatureAfter links f after the feature named alias.
func (g *Grid) InsertFeatureAfter(alias string, f feature.Feature) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.chain.InsertAfter(alias, f)
}

// RemoveFeature unlinks the feature named alias.
func (g *Grid) RemoveFeature(alias string) (feature.Feature, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.chain.Remove(alias)
}

// Features returns the chain's aliases in order.
func (g *Grid) Features() ([]string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.chain.Aliases()
}

// Stats returns the dispatcher counters.
func (g *Grid) Stats() feature.Stats {
	return g.dispatcher.Stats()
}

func (g *Grid) resolveProperty(key string) layer.Value {
	return g.props.Resolve(key)
}

func (g *Grid) resolveCellProperty(cell event.Cell, key string) layer.Value {
	if !cell.Valid {
		return g.props.Resolve(key)
	}
	return g.props.Resolve(key, g.cells[cell], g.columns[cell.Column], g.defs[cell.Column])
}

func (g *Grid) scrollBy(columns, rows int) {
	if g.viewport.scrollBy(columns, rows) {
		g.dirty = true
	}
}

func (g *Grid) setHoverCell(cell event.Cell) {
	if g.hover != cell {
		g.hover = cell
		g.dirty = true
	}
}

func (g *Grid) selectCell(cell event.Cell) {
	if g.selected != cell {
		g.selected = cell
		g.dirty = true
	}
}

// unlockAndNotify releases mu and then delivers queued property changes,
// so observers may call back into the grid.
func (g *Grid) unlockAndNotify() {
	changes := g.pending
	g.pending = nil
	g.mu.Unlock()

	if g.notifier == nil {
		return
	}
	for _, c := range changes {
		g.notifier.Notify(c)
	}
}

func (g *Grid) takeDirty() bool {
	d := g.dirty
	g.dirty = false
	return d
}

func (g *Grid) fireRepaint() {
	if g.repaint != nil {
		g.repaint()
	}
}
