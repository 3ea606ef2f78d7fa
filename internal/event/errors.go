package event

import "errors"

// ErrInvalidKind is returned when an event is built with an unsupported kind.
var ErrInvalidKind = errors.New("invalid event kind")
