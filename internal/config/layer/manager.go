package layer

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/dshills/gridkit/internal/config/notify"
)

// Manager holds a grid's shared property layers and resolves keys across
// them, most specific first.
//
// Lookups never use the merged snapshot; Merge is a diagnostic view whose
// cache is dropped on every write.
type Manager struct {
	mu       sync.RWMutex
	layers   []*Layer       // sorted by priority, ascending
	merged   map[string]any // cached Merge result
	dirty    bool
	notifier *notify.Notifier
}

// ManagerOption configures a Manager.
type ManagerOption func(*Manager)

// WithNotifier publishes every write to n.
func WithNotifier(n *notify.Notifier) ManagerOption {
	return func(m *Manager) {
		m.notifier = n
	}
}

// NewManager creates an empty Manager.
func NewManager(opts ...ManagerOption) *Manager {
	m := &Manager{dirty: true}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// AddLayer adds a layer, replacing any existing layer with the same name.
func (m *Manager) AddLayer(layer *Layer) {
	m.mu.Lock()
	for i, l := range m.layers {
		if l.Name == layer.Name {
			m.layers = append(m.layers[:i], m.layers[i+1:]...)
			break
		}
	}
	m.layers = append(m.layers, layer)
	m.sortLayers()
	m.dirty = true
	m.mu.Unlock()

	m.notifyReload(layer.Name)
}

// RemoveLayer removes a layer by name.
// Returns true if the layer was found and removed.
func (m *Manager) RemoveLayer(name string) bool {
	m.mu.Lock()
	removed := false
	for i, l := range m.layers {
		if l.Name == name {
			m.layers = append(m.layers[:i], m.layers[i+1:]...)
			m.dirty = true
			removed = true
			break
		}
	}
	m.mu.Unlock()

	if removed {
		m.notifyReload(name)
	}
	return removed
}

// GetLayer returns a layer by name, or nil.
func (m *Manager) GetLayer(name string) *Layer {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.findLayer(name)
}

// Layers returns the layers sorted by ascending priority.
func (m *Manager) Layers() []*Layer {
	m.mu.RLock()
	defer m.mu.RUnlock()

	result := make([]*Layer, len(m.layers))
	copy(result, m.layers)
	return result
}

// LayerCount returns the number of layers.
func (m *Manager) LayerCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.layers)
}

// Resolve looks key up in overrides first (most specific first), then in
// the managed layers from highest to lowest priority.
func (m *Manager) Resolve(key string, overrides ...Scope) Value {
	if v := Resolve(key, overrides...); v.Defined {
		return v
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	for i := len(m.layers) - 1; i >= 0; i-- {
		if v, ok := lookup(m.layers[i], key); ok {
			return v
		}
	}
	return Undefined
}

// WhichLayer returns the name of the managed layer that defines key,
// or "" if none does.
func (m *Manager) WhichLayer(key string) string {
	return m.Resolve(key).Scope
}

// Set writes a value into the named layer.
func (m *Manager) Set(layerName, key string, value any) error {
	m.mu.Lock()
	l := m.findLayer(layerName)
	if l == nil {
		m.mu.Unlock()
		return fmt.Errorf("%w: %s", ErrLayerNotFound, layerName)
	}
	if l.ReadOnly {
		m.mu.Unlock()
		return fmt.Errorf("%w: %s", ErrReadOnly, layerName)
	}
	if l.Data == nil {
		l.Data = make(map[string]any)
	}
	old, _ := GetByPath(l.Data, key)
	SetByPath(l.Data, key, value)
	m.dirty = true
	m.mu.Unlock()

	if m.notifier != nil {
		m.notifier.NotifySet(layerName, key, old, value)
	}
	return nil
}

// SetInSession writes a value into the session layer, creating it on
// first use.
func (m *Manager) SetInSession(key string, value any) {
	name := StandardLayerName(SourceSession)

	m.mu.Lock()
	if m.findLayer(name) == nil {
		m.layers = append(m.layers, NewLayer(name, SourceSession, PrioritySession))
		m.sortLayers()
	}
	m.mu.Unlock()

	// The session layer is never read-only, so Set cannot fail here.
	_ = m.Set(name, key, value)
}

// Delete removes a key from the named layer.
func (m *Manager) Delete(layerName, key string) error {
	m.mu.Lock()
	l := m.findLayer(layerName)
	if l == nil {
		m.mu.Unlock()
		return fmt.Errorf("%w: %s", ErrLayerNotFound, layerName)
	}
	if l.ReadOnly {
		m.mu.Unlock()
		return fmt.Errorf("%w: %s", ErrReadOnly, layerName)
	}
	old, existed := GetByPath(l.Data, key)
	if existed {
		DeleteByPath(l.Data, key)
		m.dirty = true
	}
	m.mu.Unlock()

	if existed && m.notifier != nil {
		m.notifier.NotifyDelete(layerName, key, old)
	}
	return nil
}

// UpdateLayer replaces a layer's data and returns the keys whose values
// changed.
func (m *Manager) UpdateLayer(name string, data map[string]any) ([]string, error) {
	m.mu.Lock()
	l := m.findLayer(name)
	if l == nil {
		m.mu.Unlock()
		return nil, fmt.Errorf("%w: %s", ErrLayerNotFound, name)
	}
	if l.ReadOnly {
		m.mu.Unlock()
		return nil, fmt.Errorf("%w: %s", ErrReadOnly, name)
	}
	changed := ChangedPaths(l.Data, data)
	l.Data = cloneMap(data)
	if l.Data == nil {
		l.Data = make(map[string]any)
	}
	l.ModTime = time.Now()
	m.dirty = true
	m.mu.Unlock()

	if len(changed) > 0 {
		m.notifyReload(name)
	}
	return changed, nil
}

// Merge returns all layers flattened into one map, higher priority
// winning. The result is a copy.
func (m *Manager) Merge() map[string]any {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.dirty || m.merged == nil {
		result := make(map[string]any)
		for _, l := range m.layers {
			result = DeepMerge(result, l.Data)
		}
		m.merged = result
		m.dirty = false
	}
	return cloneMap(m.merged)
}

func (m *Manager) notifyReload(name string) {
	if m.notifier != nil {
		m.notifier.NotifyReload(name)
	}
}

// sortLayers sorts layers by priority (ascending). Stable so that equal
// priorities keep insertion order.
func (m *Manager) sortLayers() {
	sort.SliceStable(m.layers, func(i, j int) bool {
		return m.layers[i].Priority < m.layers[j].Priority
	})
}

// findLayer must be called with the lock held.
func (m *Manager) findLayer(name string) *Layer {
	for _, l := range m.layers {
		if l.Name == name {
			return l
		}
	}
	return nil
}
