package layer

import (
	"fmt"
	"strconv"
	"sync"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

// JSONScope is a Scope backed by a JSON document. The behavior and data
// layers use it to hand column and dataset overrides to the grid without
// converting them to maps first.
//
// Keys use gjson path syntax; plain dot-separated keys behave as in Layer.
type JSONScope struct {
	mu   sync.RWMutex
	name string
	doc  []byte
}

// NewJSONScope creates a scope over doc. An empty doc is treated as {}.
func NewJSONScope(name string, doc []byte) (*JSONScope, error) {
	if len(doc) == 0 {
		doc = []byte("{}")
	}
	if !gjson.ValidBytes(doc) {
		return nil, fmt.Errorf("%w: scope %s", ErrInvalidJSON, name)
	}
	buf := make([]byte, len(doc))
	copy(buf, doc)
	return &JSONScope{name: name, doc: buf}, nil
}

// ScopeName implements Scope.
func (s *JSONScope) ScopeName() string {
	return s.name
}

// HasOwn implements Scope.
func (s *JSONScope) HasOwn(key string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return gjson.GetBytes(s.doc, key).Exists()
}

// Get implements Scope. JSON numbers are returned as float64.
func (s *JSONScope) Get(key string) (any, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	r := gjson.GetBytes(s.doc, key)
	if !r.Exists() {
		return nil, false
	}
	return r.Value(), true
}

// Set writes key into the document.
func (s *JSONScope) Set(key string, value any) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := sjson.SetBytes(s.doc, key, value)
	if err != nil {
		return fmt.Errorf("setting %s in scope %s: %w", key, s.name, err)
	}
	s.doc = doc
	return nil
}

// Delete removes key from the document.
func (s *JSONScope) Delete(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := sjson.DeleteBytes(s.doc, key)
	if err != nil {
		return fmt.Errorf("deleting %s in scope %s: %w", key, s.name, err)
	}
	s.doc = doc
	return nil
}

// Bytes returns a copy of the current document.
func (s *JSONScope) Bytes() []byte {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]byte, len(s.doc))
	copy(out, s.doc)
	return out
}

// ColumnDefsScopeName returns the scope name for a column's data-layer
// definitions.
func ColumnDefsScopeName(column int) string {
	return "dataset:" + ColumnScopeName(column)
}

// ColumnScopesFromJSON splits a document of the form
// {"<column index>": {...properties...}} into one JSONScope per column.
func ColumnScopesFromJSON(doc []byte) (map[int]*JSONScope, error) {
	if !gjson.ValidBytes(doc) {
		return nil, ErrInvalidJSON
	}
	root := gjson.ParseBytes(doc)
	if !root.IsObject() {
		return nil, fmt.Errorf("%w: column definitions must be an object", ErrInvalidJSON)
	}

	scopes := make(map[int]*JSONScope)
	var err error
	root.ForEach(func(key, value gjson.Result) bool {
		col, convErr := strconv.Atoi(key.String())
		if convErr != nil || col < 0 {
			err = fmt.Errorf("%w: column key %q", ErrInvalidJSON, key.String())
			return false
		}
		if !value.IsObject() {
			err = fmt.Errorf("%w: column %d is not an object", ErrInvalidJSON, col)
			return false
		}
		var s *JSONScope
		s, err = NewJSONScope(ColumnDefsScopeName(col), []byte(value.Raw))
		if err != nil {
			return false
		}
		scopes[col] = s
		return true
	})
	if err != nil {
		return nil, err
	}
	return scopes, nil
}
