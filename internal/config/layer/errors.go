package layer

import "errors"

// Sentinel errors for the layer package.
var (
	// ErrLayerNotFound is returned when a named layer does not exist.
	ErrLayerNotFound = errors.New("layer not found")

	// ErrReadOnly is returned when writing to a read-only layer.
	ErrReadOnly = errors.New("layer is read-only")

	// ErrInvalidJSON is returned when a JSON scope is given a malformed document.
	ErrInvalidJSON = errors.New("invalid JSON document")
)
