package event

import (
	"fmt"
	"time"
)

// Primitive is the raw input occurrence as delivered by the host.
type Primitive struct {
	// DeltaX and DeltaY are the standard wheel deltas.
	DeltaX float64
	DeltaY float64

	// WheelDeltaX and WheelDeltaY are the legacy wheel deltas, with the
	// opposite sign convention. Zero means absent.
	WheelDeltaX float64
	WheelDeltaY float64

	// X and Y are the pointer position in host coordinates.
	X int
	Y int

	// Button is the pointer button involved, if any.
	Button Button

	// Key and Rune describe keyboard input.
	Key  Key
	Rune rune

	// Modifiers are the modifier keys held during the event.
	Modifiers Modifier

	// Time is when the host observed the input.
	Time time.Time
}

// Event is a normalized input occurrence. It is immutable.
type Event struct {
	kind      Kind
	primitive Primitive
	cell      Cell
	dx, dy    float64
}

// New creates an event of the given kind. Wheel deltas are normalized for
// every kind so that they are available to any feature.
func New(kind Kind, p Primitive, cell Cell) (*Event, error) {
	if !kind.Valid() {
		return nil, fmt.Errorf("%w: kind %d", ErrInvalidKind, kind)
	}
	if p.Time.IsZero() {
		p.Time = time.Now()
	}
	dx, dy := NormalizeWheel(p)
	return &Event{kind: kind, primitive: p, cell: cell, dx: dx, dy: dy}, nil
}

// NewWheel creates a Wheel event over cell.
func NewWheel(p Primitive, cell Cell) *Event {
	ev, _ := New(Wheel, p, cell)
	return ev
}

// NewMouse creates a pointer event. kind must be a pointer kind.
func NewMouse(kind Kind, p Primitive, cell Cell) (*Event, error) {
	if !kind.IsPointer() {
		return nil, fmt.Errorf("%w: %s is not a pointer kind", ErrInvalidKind, kind)
	}
	return New(kind, p, cell)
}

// NewKey creates a keyboard event. kind must be KeyDown or KeyUp.
func NewKey(kind Kind, p Primitive) (*Event, error) {
	if !kind.IsKey() {
		return nil, fmt.Errorf("%w: %s is not a key kind", ErrInvalidKind, kind)
	}
	return New(kind, p, NoCell)
}

// Kind returns the event kind.
func (e *Event) Kind() Kind { return e.kind }

// Primitive returns a copy of the raw input.
func (e *Event) Primitive() Primitive { return e.primitive }

// Cell returns the cell under the pointer.
func (e *Event) Cell() Cell { return e.cell }

// WheelDelta returns the normalized wheel deltas.
func (e *Event) WheelDelta() (dx, dy float64) { return e.dx, e.dy }

// Modifiers returns the held modifiers.
func (e *Event) Modifiers() Modifier { return e.primitive.Modifiers }

// Key returns the key of a keyboard event.
func (e *Event) Key() Key { return e.primitive.Key }

// String formats the event for logs.
func (e *Event) String() string {
	switch {
	case e.kind == Wheel:
		return fmt.Sprintf("%s{dx: %g, dy: %g, cell: %v}", e.kind, e.dx, e.dy, e.cell)
	case e.kind.IsKey():
		return fmt.Sprintf("%s{key: %s, rune: %q}", e.kind, e.primitive.Key, e.primitive.Rune)
	default:
		return fmt.Sprintf("%s{x: %d, y: %d, button: %s, cell: %v}", e.kind, e.primitive.X, e.primitive.Y, e.primitive.Button, e.cell)
	}
}

// NormalizeWheel reduces the legacy and standard wheel fields to one signed
// delta per axis. Positive dy means the wheel moved away from the user.
func NormalizeWheel(p Primitive) (dx, dy float64) {
	dx = p.WheelDeltaX
	if dx == 0 {
		dx = -p.DeltaX
	}
	dy = p.WheelDeltaY
	if dy == 0 {
		dy = -p.DeltaY
	}
	return dx, dy
}
