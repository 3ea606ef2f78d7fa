package feature

import (
	"errors"
	"fmt"

	"github.com/dshills/gridkit/internal/event"
)

// Sentinel errors for chain assembly and dispatch.
var (
	// ErrNilFeature is returned when a nil feature is inserted.
	ErrNilFeature = errors.New("feature cannot be nil")

	// ErrEmptyAlias is returned when a feature has no alias.
	ErrEmptyAlias = errors.New("feature alias cannot be empty")

	// ErrDuplicateAlias is returned when an alias is already in the chain.
	ErrDuplicateAlias = errors.New("duplicate feature alias")

	// ErrAlreadyLinked is returned when inserting a feature that still has a successor.
	ErrAlreadyLinked = errors.New("feature is already linked")

	// ErrFeatureNotFound is returned when no feature has the given alias.
	ErrFeatureNotFound = errors.New("feature not found")

	// ErrCycle is returned when a walk exceeds the chain's feature count.
	ErrCycle = errors.New("feature chain is malformed: traversal did not terminate")

	// ErrAlreadyAttached is returned when Attach is called twice.
	ErrAlreadyAttached = errors.New("feature chain is already attached")

	// ErrHandlerPanic wraps a recovered handler panic.
	ErrHandlerPanic = errors.New("handler panicked")

	// ErrNilEvent is returned when dispatching a nil event.
	ErrNilEvent = errors.New("event cannot be nil")
)

// HandlerError reports a fault inside one feature's handler.
type HandlerError struct {
	// Alias is the feature whose handler failed.
	Alias string

	// Kind is the event kind being handled.
	Kind event.Kind

	// Err is the returned error, or ErrHandlerPanic wrapping the panic value.
	Err error

	// Stack is the goroutine stack for panics.
	Stack []byte
}

// Error implements the error interface.
func (e *HandlerError) Error() string {
	return fmt.Sprintf("feature %s failed handling %s: %v", e.Alias, e.Kind, e.Err)
}

// Unwrap returns the underlying error.
func (e *HandlerError) Unwrap() error {
	return e.Err
}

// Panicked reports whether the handler panicked rather than returning an error.
func (e *HandlerError) Panicked() bool {
	return errors.Is(e.Err, ErrHandlerPanic)
}
