package event

// Kind identifies the type of input an Event describes.
type Kind uint8

const (
	// KindNone is the zero Kind and is never dispatched.
	KindNone Kind = iota
	// Wheel is a mouse wheel or trackpad scroll.
	Wheel
	// MouseDown is a button press.
	MouseDown
	// MouseUp is a button release.
	MouseUp
	// MouseMove is pointer motion with no button held.
	MouseMove
	// MouseDrag is pointer motion with a button held.
	MouseDrag
	// MouseExit is the pointer leaving the grid.
	MouseExit
	// Click is a press and release on the same cell.
	Click
	// DoubleClick is a second click within the double-click window.
	DoubleClick
	// KeyDown is a key press.
	KeyDown
	// KeyUp is a key release.
	KeyUp

	kindCount
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case Wheel:
		return "wheel"
	case MouseDown:
		return "mousedown"
	case MouseUp:
		return "mouseup"
	case MouseMove:
		return "mousemove"
	case MouseDrag:
		return "mousedrag"
	case MouseExit:
		return "mouseexit"
	case Click:
		return "click"
	case DoubleClick:
		return "dblclick"
	case KeyDown:
		return "keydown"
	case KeyUp:
		return "keyup"
	default:
		return "none"
	}
}

// Valid reports whether k is a dispatchable kind.
func (k Kind) Valid() bool {
	return k > KindNone && k < kindCount
}

// IsPointer reports whether k carries a pointer position.
func (k Kind) IsPointer() bool {
	return k >= Wheel && k <= DoubleClick
}

// IsKey reports whether k is a keyboard kind.
func (k Kind) IsKey() bool {
	return k == KeyDown || k == KeyUp
}

// Kinds returns every dispatchable kind in declaration order.
func Kinds() []Kind {
	kinds := make([]Kind, 0, int(kindCount)-1)
	for k := Wheel; k < kindCount; k++ {
		kinds = append(kinds, k)
	}
	return kinds
}

// Button is a pointer button.
type Button uint8

const (
	// ButtonNone indicates no button.
	ButtonNone Button = iota
	// ButtonPrimary is the primary (usually left) button.
	ButtonPrimary
	// ButtonMiddle is the middle button.
	ButtonMiddle
	// ButtonSecondary is the secondary (usually right) button.
	ButtonSecondary
)

// String returns the button name.
func (b Button) String() string {
	switch b {
	case ButtonPrimary:
		return "primary"
	case ButtonMiddle:
		return "middle"
	case ButtonSecondary:
		return "secondary"
	default:
		return "none"
	}
}

// Modifier is a bitmask of held modifier keys.
type Modifier uint8

// Modifier bits.
const (
	ModShift Modifier = 1 << iota
	ModCtrl
	ModAlt
	ModMeta

	ModNone Modifier = 0
)

// HasShift reports whether Shift is held.
func (m Modifier) HasShift() bool { return m&ModShift != 0 }

// HasCtrl reports whether Ctrl is held.
func (m Modifier) HasCtrl() bool { return m&ModCtrl != 0 }

// HasAlt reports whether Alt is held.
func (m Modifier) HasAlt() bool { return m&ModAlt != 0 }

// HasMeta reports whether Meta is held.
func (m Modifier) HasMeta() bool { return m&ModMeta != 0 }

// Key is a keyboard key. Character keys use KeyRune with Primitive.Rune set.
type Key uint16

const (
	KeyNone Key = iota
	KeyRune
	KeyArrowUp
	KeyArrowDown
	KeyArrowLeft
	KeyArrowRight
	KeyPageUp
	KeyPageDown
	KeyHome
	KeyEnd
	KeyEnter
	KeyEscape
	KeyTab
	KeyBackspace
	KeyDelete
)

var keyNames = map[Key]string{
	KeyRune:      "rune",
	KeyArrowUp:    "up",
	KeyArrowDown:  "down",
	KeyArrowLeft:  "left",
	KeyArrowRight: "right",
	KeyPageUp:    "pageup",
	KeyPageDown:  "pagedown",
	KeyHome:      "home",
	KeyEnd:       "end",
	KeyEnter:     "enter",
	KeyEscape:    "escape",
	KeyTab:       "tab",
	KeyBackspace: "backspace",
	KeyDelete:    "delete",
}

// String returns the key name.
func (k Key) String() string {
	if name, ok := keyNames[k]; ok {
		return name
	}
	return "none"
}

// Cell addresses a data cell. Valid is false when the pointer is not over
// a cell (headers, gutters, outside the grid, keyboard events).
type Cell struct {
	Column int
	Row    int
	Valid  bool
}

// At returns a valid Cell.
func At(column, row int) Cell {
	return Cell{Column: column, Row: row, Valid: true}
}

// NoCell is the Cell of events not located over a data cell.
var NoCell = Cell{}
