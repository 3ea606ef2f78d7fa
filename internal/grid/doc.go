// Package grid is the host a feature chain runs against.
//
// A Grid owns its property layers, the per-column and per-cell scopes
// supplied by the behavior layer, a viewport over the data, and the
// feature chain with its dispatcher. All of that state is guarded by one
// mutex: dispatch, chain edits and scope writes never interleave.
//
// Handlers run while the mutex is held. They receive an unlocked view of
// the grid, so calls such as ScrollBy from inside a handler do not
// re-enter the lock.
package grid
