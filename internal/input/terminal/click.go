package terminal

import (
	"time"

	"github.com/dshills/gridkit/internal/event"
)

// DefaultDoubleClickTime is the maximum gap between the clicks of a double click.
const DefaultDoubleClickTime = 400 * time.Millisecond

// clickTracker counts consecutive clicks on the same cell.
type clickTracker struct {
	maxTime time.Duration

	lastCell  event.Cell
	lastTime  time.Time
	lastCount int
}

// record registers a click and returns the click count, wrapping back to
// 1 after a double click.
func (t *clickTracker) record(cell event.Cell, at time.Time) int {
	if t.continues(cell, at) && t.lastCount < 2 {
		t.lastCount++
	} else {
		t.lastCount = 1
	}
	t.lastCell = cell
	t.lastTime = at
	return t.lastCount
}

func (t *clickTracker) continues(cell event.Cell, at time.Time) bool {
	if t.lastCount == 0 || cell != t.lastCell {
		return false
	}
	// Negative gaps come from clock skew and start a new sequence.
	elapsed := at.Sub(t.lastTime)
	return elapsed >= 0 && elapsed <= t.maxTime
}

func (t *clickTracker) reset() {
	t.lastCount = 0
	t.lastTime = time.Time{}
	t.lastCell = event.NoCell
}
