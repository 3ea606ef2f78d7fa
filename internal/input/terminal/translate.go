package terminal

import (
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/gridkit/internal/event"
)

// WheelNotch is the legacy wheel delta reported per wheel step.
const WheelNotch = 120

// Translator converts tcell events into grid events.
// It is not safe for concurrent use.
type Translator struct {
	locator CellLocator
	clicks  clickTracker

	pressed   event.Button
	pressCell event.Cell
	lastX     int
	lastY     int
	lastCell  event.Cell
	seen      bool
}

// TranslatorOption configures a Translator.
type TranslatorOption func(*Translator)

// WithDoubleClickTime sets the double click window.
func WithDoubleClickTime(d time.Duration) TranslatorOption {
	return func(t *Translator) {
		t.clicks.maxTime = d
	}
}

// NewTranslator creates a translator that locates cells with locator.
func NewTranslator(locator CellLocator, opts ...TranslatorOption) *Translator {
	t := &Translator{
		locator: locator,
		clicks:  clickTracker{maxTime: DefaultDoubleClickTime},
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Translate returns the grid events for ev, in dispatch order. Events that
// have no grid meaning yield nil.
func (t *Translator) Translate(ev tcell.Event) []*event.Event {
	switch e := ev.(type) {
	case *tcell.EventMouse:
		return t.mouse(e)
	case *tcell.EventKey:
		if k := t.key(e); k != nil {
			return []*event.Event{k}
		}
	}
	return nil
}

// Reset forgets button and click state, for example after the screen
// lost focus.
func (t *Translator) Reset() {
	t.pressed = event.ButtonNone
	t.pressCell = event.NoCell
	t.clicks.reset()
	t.seen = false
}

func (t *Translator) mouse(e *tcell.EventMouse) []*event.Event {
	x, y := e.Position()
	cell := t.locator.CellAt(x, y)
	p := event.Primitive{
		X:         x,
		Y:         y,
		Modifiers: convertMod(e.Modifiers()),
		Time:      e.When(),
	}
	mask := e.Buttons()

	if dx, dy := wheelDeltas(mask); dx != 0 || dy != 0 {
		p.WheelDeltaX, p.WheelDeltaY = dx, dy
		return []*event.Event{event.NewWheel(p, cell)}
	}

	moved := !t.seen || x != t.lastX || y != t.lastY
	prevCell := t.lastCell
	t.lastX, t.lastY, t.lastCell, t.seen = x, y, cell, true

	btn := convertButton(mask)
	var out []*event.Event

	switch {
	case btn != event.ButtonNone && t.pressed == event.ButtonNone:
		t.pressed, t.pressCell = btn, cell
		p.Button = btn
		out = append(out, mustMouse(event.MouseDown, p, cell))

	case btn != event.ButtonNone:
		if moved {
			p.Button = t.pressed
			out = append(out, mustMouse(event.MouseDrag, p, cell))
		}

	case t.pressed != event.ButtonNone:
		p.Button = t.pressed
		out = append(out, mustMouse(event.MouseUp, p, cell))
		if cell == t.pressCell {
			out = append(out, mustMouse(event.Click, p, cell))
			if p.Button == event.ButtonPrimary && t.clicks.record(cell, p.Time) == 2 {
				out = append(out, mustMouse(event.DoubleClick, p, cell))
			}
		} else {
			t.clicks.reset()
		}
		t.pressed, t.pressCell = event.ButtonNone, event.NoCell

	case moved:
		if prevCell.Valid && !cell.Valid {
			out = append(out, mustMouse(event.MouseExit, p, cell))
		} else {
			out = append(out, mustMouse(event.MouseMove, p, cell))
		}
	}
	return out
}

func (t *Translator) key(e *tcell.EventKey) *event.Event {
	k, r := convertKey(e.Key(), e.Rune())
	if k == event.KeyNone {
		return nil
	}
	ev, _ := event.NewKey(event.KeyDown, event.Primitive{
		Key:       k,
		Rune:      r,
		Modifiers: convertMod(e.Modifiers()),
		Time:      e.When(),
	})
	return ev
}

// mustMouse builds a pointer event for a kind known to be valid.
func mustMouse(kind event.Kind, p event.Primitive, cell event.Cell) *event.Event {
	ev, err := event.NewMouse(kind, p, cell)
	if err != nil {
		panic(err)
	}
	return ev
}

// wheelDeltas maps wheel buttons to legacy deltas: away from the user and
// left are positive.
func wheelDeltas(b tcell.ButtonMask) (dx, dy float64) {
	switch {
	case b&tcell.WheelUp != 0:
		dy = WheelNotch
	case b&tcell.WheelDown != 0:
		dy = -WheelNotch
	}
	switch {
	case b&tcell.WheelLeft != 0:
		dx = WheelNotch
	case b&tcell.WheelRight != 0:
		dx = -WheelNotch
	}
	return dx, dy
}

func convertButton(b tcell.ButtonMask) event.Button {
	switch {
	case b&tcell.ButtonPrimary != 0:
		return event.ButtonPrimary
	case b&tcell.ButtonSecondary != 0:
		return event.ButtonSecondary
	case b&tcell.ButtonMiddle != 0:
		return event.ButtonMiddle
	default:
		return event.ButtonNone
	}
}

func convertMod(m tcell.ModMask) event.Modifier {
	var result event.Modifier
	if m&tcell.ModShift != 0 {
		result |= event.ModShift
	}
	if m&tcell.ModCtrl != 0 {
		result |= event.ModCtrl
	}
	if m&tcell.ModAlt != 0 {
		result |= event.ModAlt
	}
	if m&tcell.ModMeta != 0 {
		result |= event.ModMeta
	}
	return result
}

var keyMap = map[tcell.Key]event.Key{
	tcell.KeyUp:         event.KeyArrowUp,
	tcell.KeyDown:       event.KeyArrowDown,
	tcell.KeyLeft:       event.KeyArrowLeft,
	tcell.KeyRight:      event.KeyArrowRight,
	tcell.KeyPgUp:       event.KeyPageUp,
	tcell.KeyPgDn:       event.KeyPageDown,
	tcell.KeyHome:       event.KeyHome,
	tcell.KeyEnd:        event.KeyEnd,
	tcell.KeyEnter:      event.KeyEnter,
	tcell.KeyEscape:     event.KeyEscape,
	tcell.KeyTab:        event.KeyTab,
	tcell.KeyBackspace:  event.KeyBackspace,
	tcell.KeyBackspace2: event.KeyBackspace,
	tcell.KeyDelete:     event.KeyDelete,
}

func convertKey(k tcell.Key, r rune) (event.Key, rune) {
	if k == tcell.KeyRune {
		return event.KeyRune, r
	}
	if mapped, ok := keyMap[k]; ok {
		return mapped, 0
	}
	return event.KeyNone, 0
}
