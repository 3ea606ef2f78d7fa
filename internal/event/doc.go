// Package event describes the user input that flows through a grid's
// feature chain.
//
// A host converts each raw input occurrence (a wheel tick, a button
// press, a key) into an Event and hands it to the grid. Events are built
// once, never modified, and dropped when the dispatch pass returns;
// features must not keep them.
//
// # Wheel deltas
//
// Wheel input arrives in two conventions. The legacy fields
// (WheelDeltaX, WheelDeltaY) are positive when the wheel moves away from
// the user; the standard fields (DeltaX, DeltaY) have the opposite sign.
// NormalizeWheel reduces both to one signed value per axis: the legacy
// field when it is non-zero, otherwise the negated standard field.
package event
