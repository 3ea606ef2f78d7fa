package config

import (
	"errors"
	"fmt"
)

// Errors returned by configuration operations.
var (
	// ErrInvalidColumn indicates a column override key that is not a non-negative integer.
	ErrInvalidColumn = errors.New("invalid column index")

	// ErrClosed indicates use of a closed Config.
	ErrClosed = errors.New("config is closed")
)

// ColumnError reports a malformed column override.
type ColumnError struct {
	Key string
	Err error
}

// Error implements the error interface.
func (e *ColumnError) Error() string {
	return fmt.Sprintf("columns.%s: %v", e.Key, e.Err)
}

// Unwrap returns the underlying error.
func (e *ColumnError) Unwrap() error {
	return e.Err
}
