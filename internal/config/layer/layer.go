package layer

import (
	"fmt"
	"time"
)

// Layer is a map-backed property scope.
// Keys are dot-separated paths into Data (e.g. "scroll.rowsPerPage").
type Layer struct {
	// Name identifies the layer (e.g. "grid", "theme", "column:2").
	Name string

	// Priority determines lookup order inside a Manager (higher wins).
	Priority int

	// Source indicates what kind of scope this layer represents.
	Source Source

	// Path is the file the layer was loaded from, if any.
	Path string

	// Data holds the property values as a nested map.
	Data map[string]any

	// ModTime is when the layer was last replaced.
	ModTime time.Time

	// ReadOnly prevents writes through a Manager.
	ReadOnly bool
}

// NewLayer creates an empty layer.
func NewLayer(name string, source Source, priority int) *Layer {
	return &Layer{
		Name:     name,
		Source:   source,
		Priority: priority,
		Data:     make(map[string]any),
		ModTime:  time.Now(),
	}
}

// NewLayerWithData creates a layer holding data.
func NewLayerWithData(name string, source Source, priority int, data map[string]any) *Layer {
	if data == nil {
		data = make(map[string]any)
	}
	return &Layer{
		Name:     name,
		Source:   source,
		Priority: priority,
		Data:     data,
		ModTime:  time.Now(),
	}
}

// NewColumnLayer creates the override layer for a single column.
func NewColumnLayer(column int, data map[string]any) *Layer {
	return NewLayerWithData(ColumnScopeName(column), SourceColumn, PriorityColumn, data)
}

// ColumnScopeName returns the conventional scope name for a column.
func ColumnScopeName(column int) string {
	return fmt.Sprintf("column:%d", column)
}

// ScopeName implements Scope.
func (l *Layer) ScopeName() string {
	return l.Name
}

// HasOwn implements Scope.
func (l *Layer) HasOwn(key string) bool {
	if l == nil {
		return false
	}
	_, ok := GetByPath(l.Data, key)
	return ok
}

// Get implements Scope.
func (l *Layer) Get(key string) (any, bool) {
	if l == nil {
		return nil, false
	}
	return GetByPath(l.Data, key)
}

// cloneMap creates a deep copy of a map.
func cloneMap(src map[string]any) map[string]any {
	if src == nil {
		return nil
	}

	dst := make(map[string]any, len(src))
	for key, val := range src {
		dst[key] = cloneValue(val)
	}
	return dst
}

// cloneSlice creates a deep copy of a slice.
func cloneSlice(src []any) []any {
	if src == nil {
		return nil
	}

	dst := make([]any, len(src))
	for i, val := range src {
		dst[i] = cloneValue(val)
	}
	return dst
}
