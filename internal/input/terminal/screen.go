package terminal

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
)

// Screen wraps a tcell screen with mouse reporting enabled.
type Screen struct {
	s     tcell.Screen
	style tcell.Style
}

// NewScreen creates a Screen on the real terminal.
func NewScreen() (*Screen, error) {
	s, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("create screen: %w", err)
	}
	return WrapScreen(s), nil
}

// WrapScreen wraps an existing tcell screen, such as a simulation screen.
func WrapScreen(s tcell.Screen) *Screen {
	return &Screen{
		s:     s,
		style: tcell.StyleDefault.Reverse(true),
	}
}

// Init initializes the terminal and enables mouse reporting.
func (sc *Screen) Init() error {
	if err := sc.s.Init(); err != nil {
		return fmt.Errorf("initialize screen: %w", err)
	}
	sc.s.EnableMouse(tcell.MouseMotionEvents)
	sc.s.HideCursor()
	sc.s.Clear()
	return nil
}

// Fini restores the terminal.
func (sc *Screen) Fini() {
	sc.s.DisableMouse()
	sc.s.Fini()
}

// PollEvent blocks until the next tcell event. It returns nil after Fini.
func (sc *Screen) PollEvent() tcell.Event {
	return sc.s.PollEvent()
}

// PostEvent queues ev for PollEvent.
func (sc *Screen) PostEvent(ev tcell.Event) error {
	return sc.s.PostEvent(ev)
}

// Size returns the terminal size.
func (sc *Screen) Size() (width, height int) {
	return sc.s.Size()
}

// DrawText writes text at row y, truncated to the screen width.
func (sc *Screen) DrawText(y int, text string, style tcell.Style) {
	w, h := sc.s.Size()
	if y < 0 || y >= h {
		return
	}
	x := 0
	for _, r := range text {
		rw := runewidth.RuneWidth(r)
		if x+rw > w {
			break
		}
		sc.s.SetContent(x, y, r, nil, style)
		x += rw
	}
	for ; x < w; x++ {
		sc.s.SetContent(x, y, ' ', nil, style)
	}
}

// DrawStatus writes text on the last line in reverse video.
func (sc *Screen) DrawStatus(text string) {
	_, h := sc.s.Size()
	sc.DrawText(h-1, text, sc.style)
}

// Clear clears the screen.
func (sc *Screen) Clear() {
	sc.s.Clear()
}

// Show flushes pending drawing.
func (sc *Screen) Show() {
	sc.s.Show()
}
