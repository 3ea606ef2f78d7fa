package lua

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/gridkit/internal/event"
	"github.com/dshills/gridkit/internal/feature"
)

// Handler function names by event kind.
var handlerNames = map[event.Kind]string{
	event.Wheel:       "onWheel",
	event.MouseDown:   "onMouseDown",
	event.MouseUp:     "onMouseUp",
	event.MouseMove:   "onMouseMove",
	event.MouseDrag:   "onMouseDrag",
	event.MouseExit:   "onMouseExit",
	event.Click:       "onClick",
	event.DoubleClick: "onDoubleClick",
	event.KeyDown:     "onKeyDown",
	event.KeyUp:       "onKeyUp",
}

const initFunction = "onInitialize"

// HandlerName returns the Lua global that handles kind.
func HandlerName(kind event.Kind) string {
	return handlerNames[kind]
}

// ScriptFeature is a feature whose handlers are Lua functions.
type ScriptFeature struct {
	feature.Base

	script  string
	state   *State
	kinds   map[event.Kind]string
	logger  *slog.Logger
	current feature.Grid
}

// Option configures a ScriptFeature.
type Option func(*scriptOptions)

type scriptOptions struct {
	logger  *slog.Logger
	timeout time.Duration
}

// WithLogger sets the logger for script output and faults.
func WithLogger(logger *slog.Logger) Option {
	return func(o *scriptOptions) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithTimeout bounds each handler call.
func WithTimeout(d time.Duration) Option {
	return func(o *scriptOptions) {
		o.timeout = d
	}
}

// NewScriptFeature compiles source and returns a feature named alias.
func NewScriptFeature(alias, source string, opts ...Option) (*ScriptFeature, error) {
	f := newScriptFeature(alias, alias, opts)
	if err := f.state.DoString(source); err != nil {
		f.state.Close()
		return nil, &ScriptError{Script: alias, Err: err}
	}
	return f.discover()
}

// LoadScriptFeature loads a feature from a Lua file. An empty alias is
// derived from the file name.
func LoadScriptFeature(alias, path string, opts ...Option) (*ScriptFeature, error) {
	if alias == "" {
		alias = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	f := newScriptFeature(alias, path, opts)
	if err := f.state.DoFile(path); err != nil {
		f.state.Close()
		return nil, &ScriptError{Script: path, Err: err}
	}
	return f.discover()
}

func newScriptFeature(alias, script string, opts []Option) *ScriptFeature {
	o := scriptOptions{
		logger:  slog.New(slog.DiscardHandler),
		timeout: DefaultExecutionTimeout,
	}
	for _, opt := range opts {
		opt(&o)
	}

	logger := o.logger.With("script", script)
	f := &ScriptFeature{
		Base:   feature.NewBase(alias),
		script: script,
		state:  NewState(WithExecutionTimeout(o.timeout), WithStateLogger(logger)),
		kinds:  make(map[event.Kind]string),
		logger: logger,
	}
	f.installGridModule()
	return f
}

// discover records which handler functions the script defined.
func (f *ScriptFeature) discover() (*ScriptFeature, error) {
	for kind, name := range handlerNames {
		if f.state.HasFunction(name) {
			f.kinds[kind] = name
		}
	}
	if len(f.kinds) == 0 && !f.state.HasFunction(initFunction) {
		f.state.Close()
		return nil, &ScriptError{Script: f.script, Err: ErrNoHandlers}
	}
	return f, nil
}

// Kinds returns the event kinds the script handles.
func (f *ScriptFeature) Kinds() []event.Kind {
	var out []event.Kind
	for _, k := range event.Kinds() {
		if _, ok := f.kinds[k]; ok {
			out = append(out, k)
		}
	}
	return out
}

// HandlesKind implements feature.KindFilter.
func (f *ScriptFeature) HandlesKind(kind event.Kind) bool {
	_, ok := f.kinds[kind]
	return ok
}

// Close releases the Lua state.
func (f *ScriptFeature) Close() error {
	return f.state.Close()
}

// InitializeOn implements feature.Initializer.
func (f *ScriptFeature) InitializeOn(g feature.Grid) error {
	if !f.state.HasFunction(initFunction) {
		return nil
	}
	f.current = g
	defer func() { f.current = nil }()

	if _, err := f.state.Call(initFunction); err != nil {
		return &ScriptError{Script: f.script, Function: initFunction, Err: err}
	}
	return nil
}

// Detach implements feature.Detacher.
func (f *ScriptFeature) Detach(feature.Grid) {
	if err := f.state.Close(); err != nil {
		f.logger.Warn("close lua state", "error", err)
	}
}

func (f *ScriptFeature) call(g feature.Grid, ev *event.Event) feature.Result {
	name, ok := f.kinds[ev.Kind()]
	if !ok {
		return feature.Forward()
	}

	f.current = g
	defer func() { f.current = nil }()

	results, err := f.state.Call(name, f.eventTable(ev))
	if err != nil {
		return feature.Error(&ScriptError{Script: f.script, Function: name, Err: err})
	}
	if truthy(results) {
		return feature.HandledWithMessage(name)
	}
	return feature.Forward()
}

// HandleWheelMoved implements feature.WheelHandler.
func (f *ScriptFeature) HandleWheelMoved(g feature.Grid, ev *event.Event) feature.Result {
	return f.call(g, ev)
}

// HandleMouseDown implements feature.MouseDownHandler.
func (f *ScriptFeature) HandleMouseDown(g feature.Grid, ev *event.Event) feature.Result {
	return f.call(g, ev)
}

// HandleMouseUp implements feature.MouseUpHandler.
func (f *ScriptFeature) HandleMouseUp(g feature.Grid, ev *event.Event) feature.Result {
	return f.call(g, ev)
}

// HandleMouseMove implements feature.MouseMoveHandler.
func (f *ScriptFeature) HandleMouseMove(g feature.Grid, ev *event.Event) feature.Result {
	return f.call(g, ev)
}

// HandleMouseDrag implements feature.MouseDragHandler.
func (f *ScriptFeature) HandleMouseDrag(g feature.Grid, ev *event.Event) feature.Result {
	return f.call(g, ev)
}

// HandleMouseExit implements feature.MouseExitHandler.
func (f *ScriptFeature) HandleMouseExit(g feature.Grid, ev *event.Event) feature.Result {
	return f.call(g, ev)
}

// HandleClick implements feature.ClickHandler.
func (f *ScriptFeature) HandleClick(g feature.Grid, ev *event.Event) feature.Result {
	return f.call(g, ev)
}

// HandleDoubleClick implements feature.DoubleClickHandler.
func (f *ScriptFeature) HandleDoubleClick(g feature.Grid, ev *event.Event) feature.Result {
	return f.call(g, ev)
}

// HandleKeyDown implements feature.KeyDownHandler.
func (f *ScriptFeature) HandleKeyDown(g feature.Grid, ev *event.Event) feature.Result {
	return f.call(g, ev)
}

// HandleKeyUp implements feature.KeyUpHandler.
func (f *ScriptFeature) HandleKeyUp(g feature.Grid, ev *event.Event) feature.Result {
	return f.call(g, ev)
}

// eventTable exposes ev to Lua.
func (f *ScriptFeature) eventTable(ev *event.Event) *lua.LTable {
	t := f.state.NewTable()
	p := ev.Primitive()
	dx, dy := ev.WheelDelta()
	mods := ev.Modifiers()

	t.RawSetString("kind", lua.LString(ev.Kind().String()))
	t.RawSetString("deltaX", lua.LNumber(dx))
	t.RawSetString("deltaY", lua.LNumber(dy))
	t.RawSetString("x", lua.LNumber(p.X))
	t.RawSetString("y", lua.LNumber(p.Y))
	t.RawSetString("button", lua.LString(p.Button.String()))
	t.RawSetString("key", lua.LString(p.Key.String()))
	if p.Rune != 0 {
		t.RawSetString("rune", lua.LString(string(p.Rune)))
	}
	t.RawSetString("shift", lua.LBool(mods.HasShift()))
	t.RawSetString("ctrl", lua.LBool(mods.HasCtrl()))
	t.RawSetString("alt", lua.LBool(mods.HasAlt()))
	t.RawSetString("meta", lua.LBool(mods.HasMeta()))

	if cell := ev.Cell(); cell.Valid {
		c := f.state.NewTable()
		c.RawSetString("column", lua.LNumber(cell.Column))
		c.RawSetString("row", lua.LNumber(cell.Row))
		t.RawSetString("cell", c)
	}
	return t
}

// installGridModule registers the "grid" global. Its functions act on the
// grid of the handler currently running and fail outside a handler.
func (f *ScriptFeature) installGridModule() {
	f.state.RegisterModule("grid", map[string]lua.LGFunction{
		"scrollBy": func(L *lua.LState) int {
			g := f.requireGrid(L)
			g.ScrollBy(L.CheckInt(1), L.CheckInt(2))
			return 0
		},
		"property": func(L *lua.LState) int {
			g := f.requireGrid(L)
			v := g.ResolveProperty(L.CheckString(1))
			L.Push(toLua(L, v.Raw))
			return 1
		},
		"cellProperty": func(L *lua.LState) int {
			g := f.requireGrid(L)
			cell := event.At(L.CheckInt(1), L.CheckInt(2))
			v := g.ResolveCellProperty(cell, L.CheckString(3))
			L.Push(toLua(L, v.Raw))
			return 1
		},
		"visibleRows": func(L *lua.LState) int {
			g := f.requireGrid(L)
			rows := 0
			if vp, ok := g.(interface{ VisibleRows() int }); ok {
				rows = vp.VisibleRows()
			}
			L.Push(lua.LNumber(rows))
			return 1
		},
	})
}

func (f *ScriptFeature) requireGrid(L *lua.LState) feature.Grid {
	if f.current == nil {
		L.RaiseError("grid is only available inside an event handler")
	}
	return f.current
}

// String describes the feature for logs.
func (f *ScriptFeature) String() string {
	return fmt.Sprintf("lua feature %s (%s)", f.Alias(), f.script)
}
