package lua

import (
	"errors"
	"fmt"
)

// Errors for Lua state operations.
var (
	// ErrStateClosed is returned when operating on a closed state.
	ErrStateClosed = errors.New("lua state is closed")

	// ErrExecutionTimeout is returned when a call runs past its timeout.
	ErrExecutionTimeout = errors.New("lua execution timeout")

	// ErrNotFunction is returned when calling a global that is not a function.
	ErrNotFunction = errors.New("lua global is not a function")

	// ErrNoHandlers is returned when a script defines no handler functions.
	ErrNoHandlers = errors.New("lua script defines no event handlers")
)

// ScriptError reports a failure inside a script.
type ScriptError struct {
	// Script is the script name or path.
	Script string

	// Function is the Lua function that failed, if any.
	Function string

	Err error
}

// Error implements the error interface.
func (e *ScriptError) Error() string {
	if e.Function == "" {
		return fmt.Sprintf("lua script %s: %v", e.Script, e.Err)
	}
	return fmt.Sprintf("lua script %s: %s: %v", e.Script, e.Function, e.Err)
}

// Unwrap returns the underlying error.
func (e *ScriptError) Unwrap() error {
	return e.Err
}
