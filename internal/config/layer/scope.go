// Package layer resolves grid properties across an ordered stack of scopes.
//
// A lookup walks the scopes from most to least specific and stops at the
// first scope that owns the key:
//
//	cell override -> column -> behavior -> environment -> grid -> theme
//
// Nothing is cached on the lookup path, so a write to any scope is visible
// to the very next lookup.
package layer

// Scope is one named layer of a property stack.
type Scope interface {
	// ScopeName identifies the scope in diagnostics (e.g. "column:3", "grid").
	ScopeName() string

	// HasOwn reports whether the scope itself defines key.
	HasOwn(key string) bool

	// Get returns the scope's value for key.
	Get(key string) (any, bool)
}

// Resolve returns the value of key from the first scope that defines it.
// Scopes are ordered most specific first. Nil scopes are skipped.
// If no scope defines key the result is Undefined.
func Resolve(key string, scopes ...Scope) Value {
	for _, s := range scopes {
		if v, ok := lookup(s, key); ok {
			return v
		}
	}
	return Undefined
}

func lookup(s Scope, key string) (Value, bool) {
	if s == nil || !s.HasOwn(key) {
		return Undefined, false
	}
	raw, ok := s.Get(key)
	if !ok {
		return Undefined, false
	}
	return Value{Raw: raw, Scope: s.ScopeName(), Defined: true}, true
}
