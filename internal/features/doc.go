// Package features provides the grid's built-in input features.
//
// Each feature gates itself on a boolean property resolved through the
// grid, so a grid, a column or a cell can switch it off. An unresolved
// property counts as disabled. A disabled feature forwards the event
// unchanged and has no effect.
package features
