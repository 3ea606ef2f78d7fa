package feature

import "github.com/dshills/gridkit/internal/event"

// HandlerFunc is the shape shared by all handler methods.
type HandlerFunc func(g Grid, ev *event.Event) Result

// WheelHandler handles event.Wheel.
type WheelHandler interface {
	HandleWheelMoved(g Grid, ev *event.Event) Result
}

// MouseDownHandler handles event.MouseDown.
type MouseDownHandler interface {
	HandleMouseDown(g Grid, ev *event.Event) Result
}

// MouseUpHandler handles event.MouseUp.
type MouseUpHandler interface {
	HandleMouseUp(g Grid, ev *event.Event) Result
}

// MouseMoveHandler handles event.MouseMove.
type MouseMoveHandler interface {
	HandleMouseMove(g Grid, ev *event.Event) Result
}

// MouseDragHandler handles event.MouseDrag.
type MouseDragHandler interface {
	HandleMouseDrag(g Grid, ev *event.Event) Result
}

// MouseExitHandler handles event.MouseExit.
type MouseExitHandler interface {
	HandleMouseExit(g Grid, ev *event.Event) Result
}

// ClickHandler handles event.Click.
type ClickHandler interface {
	HandleClick(g Grid, ev *event.Event) Result
}

// DoubleClickHandler handles event.DoubleClick.
type DoubleClickHandler interface {
	HandleDoubleClick(g Grid, ev *event.Event) Result
}

// KeyDownHandler handles event.KeyDown.
type KeyDownHandler interface {
	HandleKeyDown(g Grid, ev *event.Event) Result
}

// KeyUpHandler handles event.KeyUp.
type KeyUpHandler interface {
	HandleKeyUp(g Grid, ev *event.Event) Result
}

// KindFilter lets a feature narrow the capabilities its method set
// implies. Features whose handlers are decided at runtime (scripted
// features) implement it; others need not.
type KindFilter interface {
	HandlesKind(kind event.Kind) bool
}

// HandlerFor returns f's handler for kind, or false if f is transparent to
// that kind.
func HandlerFor(f Feature, kind event.Kind) (HandlerFunc, bool) {
	if kf, ok := f.(KindFilter); ok && !kf.HandlesKind(kind) {
		return nil, false
	}

	switch kind {
	case event.Wheel:
		if h, ok := f.(WheelHandler); ok {
			return h.HandleWheelMoved, true
		}
	case event.MouseDown:
		if h, ok := f.(MouseDownHandler); ok {
			return h.HandleMouseDown, true
		}
	case event.MouseUp:
		if h, ok := f.(MouseUpHandler); ok {
			return h.HandleMouseUp, true
		}
	case event.MouseMove:
		if h, ok := f.(MouseMoveHandler); ok {
			return h.HandleMouseMove, true
		}
	case event.MouseDrag:
		if h, ok := f.(MouseDragHandler); ok {
			return h.HandleMouseDrag, true
		}
	case event.MouseExit:
		if h, ok := f.(MouseExitHandler); ok {
			return h.HandleMouseExit, true
		}
	case event.Click:
		if h, ok := f.(ClickHandler); ok {
			return h.HandleClick, true
		}
	case event.DoubleClick:
		if h, ok := f.(DoubleClickHandler); ok {
			return h.HandleDoubleClick, true
		}
	case event.KeyDown:
		if h, ok := f.(KeyDownHandler); ok {
			return h.HandleKeyDown, true
		}
	case event.KeyUp:
		if h, ok := f.(KeyUpHandler); ok {
			return h.HandleKeyUp, true
		}
	}
	return nil, false
}
