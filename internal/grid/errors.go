package grid

import "errors"

// ErrInvalidSize is returned for negative grid dimensions.
var ErrInvalidSize = errors.New("grid dimensions must not be negative")
