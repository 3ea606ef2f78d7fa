// Package terminal turns tcell input into grid events.
//
// tcell reports the current button state with every mouse event rather
// than separate press and release events. Translator keeps the state
// needed to derive MouseDown, MouseUp, MouseDrag, Click and DoubleClick
// from that stream. Wheel buttons become wheel events carrying legacy
// style deltas of 120 per notch.
package terminal
