package app

import (
	"errors"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/gridkit/internal/feature"
)

// wakeEvent interrupts PollEvent during shutdown.
type wakeEvent struct {
	when time.Time
}

func newWakeEvent() *wakeEvent { return &wakeEvent{when: time.Now()} }

func (e *wakeEvent) When() time.Time { return e.when }

// eventLoop is the main application loop. It returns nil when quit is
// requested or Shutdown is called.
func (app *Application) eventLoop() error {
	for {
		select {
		case <-app.done:
			return nil
		default:
		}

		ev := app.screen.PollEvent()
		if ev == nil {
			return nil
		}

		err := app.handleScreenEvent(ev)
		if errors.Is(err, ErrQuit) {
			return nil
		}
		if err != nil {
			return err
		}

		if app.needDraw.Swap(false) {
			app.draw()
		}
	}
}

// handleScreenEvent routes one tcell event. Handler faults are logged by
// the grid and do not stop the loop.
func (app *Application) handleScreenEvent(ev tcell.Event) error {
	switch e := ev.(type) {
	case *tcell.EventResize:
		app.resize(e.Size())
		app.screen.Clear()
		app.needDraw.Store(true)
		return nil
	case *tcell.EventKey:
		if isQuitKey(e) {
			return ErrQuit
		}
	case *wakeEvent:
		return nil
	}

	for _, gev := range app.translator.Translate(ev) {
		err := app.grid.HandleEvent(gev)
		var herr *feature.HandlerError
		switch {
		case errors.As(err, &herr):
			app.fault = herr.Error()
			app.needDraw.Store(true)
		case err != nil:
			return err
		}
	}
	return nil
}

func isQuitKey(e *tcell.EventKey) bool {
	switch e.Key() {
	case tcell.KeyCtrlC, tcell.KeyEscape:
		return true
	case tcell.KeyRune:
		return e.Rune() == 'q'
	}
	return false
}

// resize fits the viewport to the screen minus the header and status lines.
func (app *Application) resize(width, height int) {
	app.grid.Resize(width/columnWidth, max(height-2, 0))
}
