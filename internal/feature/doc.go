// Package feature implements the grid's input chain of responsibility.
//
// A grid owns one Chain: a singly linked list of Features anchored at a
// head. Every input event enters at the head and walks toward the tail.
// Each feature that has a handler for the event's kind runs it and either
// forwards the event (the walk continues) or handles it (the walk stops).
// A feature without a handler for a kind is transparent to that kind.
//
//	OnHover -> CellClick -> KeyPaging -> KeyScrolling -> ThumbwheelScrolling
//
// # Handlers
//
// Handler capabilities are small interfaces, one per event kind:
//
//	type WheelHandler interface {
//	    HandleWheelMoved(g Grid, ev *event.Event) Result
//	}
//
// A handler usually checks applicability first through the grid's
// property resolver (for example "scrollingEnabled") and returns Forward
// when the feature is disabled.
//
// # Faults
//
// The Dispatcher recovers panics and error results, logs them with the
// feature alias and event kind, and abandons the current event only. The
// chain stays usable for the next event. Effects already applied by
// earlier features are not rolled back.
//
// # Concurrency
//
// Chain and Dispatcher are not synchronized. The owner must serialize
// dispatch and chain mutation, as the grid package does with one mutex.
package feature
