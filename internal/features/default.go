package features

import "github.com/dshills/gridkit/internal/feature"

// Default returns the built-in features in standard chain order.
func Default() []feature.Feature {
	return []feature.Feature{
		NewOnHover(),
		NewCellClick(),
		NewKeyPaging(),
		NewKeyScrolling(),
		NewThumbwheelScrolling(),
	}
}

// NewDefaultChain builds a chain from Default.
func NewDefaultChain() (*feature.Chain, error) {
	return feature.NewChain(Default()...)
}
