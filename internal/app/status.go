package app

import (
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/gridkit/internal/event"
	"github.com/dshills/gridkit/internal/grid"
)

// columnWidth is the screen width of one grid column.
const columnWidth = 12

// draw renders the column header and the status line.
func (app *Application) draw() {
	vp := app.grid.Viewport()
	app.screen.DrawText(0, headerLine(vp), tcell.StyleDefault.Bold(true))
	app.screen.DrawStatus(statusLine(vp, app.grid.HoverCell(), app.grid.Selection(), app.fault))
	app.screen.Show()
}

func headerLine(vp grid.Viewport) string {
	var b strings.Builder
	for i := 0; i < vp.VisibleColumns && vp.Column+i < vp.Columns; i++ {
		fmt.Fprintf(&b, "%-*s", columnWidth, fmt.Sprintf("col %d", vp.Column+i))
	}
	return b.String()
}

func statusLine(vp grid.Viewport, hover, selected event.Cell, fault string) string {
	last := min(vp.Row+vp.VisibleRows, vp.Rows)
	s := fmt.Sprintf(" rows %d-%d of %d  col %d/%d", vp.Row+1, last, vp.Rows, vp.Column+1, vp.Columns)
	if hover.Valid {
		s += fmt.Sprintf("  hover %s", cellName(hover))
	}
	if selected.Valid {
		s += fmt.Sprintf("  selected %s", cellName(selected))
	}
	if fault != "" {
		s += "  fault: " + fault
	}
	return s + "  (q to quit)"
}

func cellName(c event.Cell) string {
	return fmt.Sprintf("%d:%d", c.Column, c.Row)
}
