// Package lua runs grid features written in Lua.
//
// A script defines global handler functions named after the event kinds it
// wants to see:
//
//	function onWheel(ev)
//	    if ev.ctrl then
//	        grid.scrollBy(0, ev.deltaY > 0 and -10 or 10)
//	        return true
//	    end
//	end
//
// Returning true consumes the event. Returning false or nothing forwards it
// to the next feature. A Lua error is reported as a handler fault.
//
// The script sees a sandboxed runtime: only the base, table, string and
// math libraries are opened, file loading functions are removed and print
// goes to the grid's logger. Each call is bounded by an execution timeout.
//
// The grid is reachable through the global "grid" module:
//
//	grid.scrollBy(columns, rows)
//	grid.property(key)             -- grid-level property, or nil
//	grid.cellProperty(col, row, key)
//	grid.visibleRows()
package lua
