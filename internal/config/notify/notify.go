// Package notify delivers property change notifications.
//
// Observers subscribe either to every change or to a key prefix.
// Delivery is synchronous and happens outside the notifier's lock, so an
// observer may resolve properties or subscribe again from its callback.
package notify

import (
	"strings"
	"sync"
)

// ChangeType represents the type of property change.
type ChangeType int

const (
	// ChangeSet indicates a value was set or updated.
	ChangeSet ChangeType = iota

	// ChangeDelete indicates a value was deleted.
	ChangeDelete

	// ChangeReload indicates a whole scope was replaced.
	ChangeReload
)

// String returns the change type name.
func (c ChangeType) String() string {
	switch c {
	case ChangeSet:
		return "set"
	case ChangeDelete:
		return "delete"
	case ChangeReload:
		return "reload"
	default:
		return "unknown"
	}
}

// Change describes one property change.
type Change struct {
	// Key is the dot-separated property key. Empty for reloads.
	Key string

	// Scope names the scope that was written.
	Scope string

	// Type is the type of change.
	Type ChangeType

	// OldValue is the previous value (nil if there was none).
	OldValue any

	// NewValue is the new value (nil for deletes).
	NewValue any
}

// Observer is called when a property changes.
type Observer func(change Change)

// Subscription is an active observer registration.
type Subscription struct {
	id       uint64
	notifier *Notifier
}

// Unsubscribe removes the observer. Safe to call more than once.
func (s *Subscription) Unsubscribe() {
	if s != nil && s.notifier != nil {
		s.notifier.unsubscribe(s.id)
	}
}

type entry struct {
	prefix   string
	observer Observer
}

// Notifier fans property changes out to observers.
type Notifier struct {
	mu        sync.RWMutex
	observers map[uint64]entry
	nextID    uint64
	closed    bool
}

// New creates a Notifier.
func New() *Notifier {
	return &Notifier{observers: make(map[uint64]entry)}
}

// Subscribe registers an observer for all changes.
func (n *Notifier) Subscribe(observer Observer) *Subscription {
	return n.SubscribeKey("", observer)
}

// SubscribeKey registers an observer for changes to key and to keys below
// it: subscribing to "scroll" receives "scroll.rowsPerPage".
// Reloads are delivered to every observer.
func (n *Notifier) SubscribeKey(key string, observer Observer) *Subscription {
	n.mu.Lock()
	defer n.mu.Unlock()

	id := n.nextID
	n.nextID++
	n.observers[id] = entry{prefix: key, observer: observer}
	return &Subscription{id: id, notifier: n}
}

// Notify delivers change to all matching observers.
func (n *Notifier) Notify(change Change) {
	n.mu.RLock()
	if n.closed {
		n.mu.RUnlock()
		return
	}
	var matched []Observer
	for _, e := range n.observers {
		if change.Type == ChangeReload || matches(e.prefix, change.Key) {
			matched = append(matched, e.observer)
		}
	}
	n.mu.RUnlock()

	for _, obs := range matched {
		obs(change)
	}
}

// NotifySet reports a set.
func (n *Notifier) NotifySet(scope, key string, oldValue, newValue any) {
	n.Notify(Change{Key: key, Scope: scope, Type: ChangeSet, OldValue: oldValue, NewValue: newValue})
}

// NotifyDelete reports a delete.
func (n *Notifier) NotifyDelete(scope, key string, oldValue any) {
	n.Notify(Change{Key: key, Scope: scope, Type: ChangeDelete, OldValue: oldValue})
}

// NotifyReload reports that a whole scope was replaced.
func (n *Notifier) NotifyReload(scope string) {
	n.Notify(Change{Scope: scope, Type: ChangeReload})
}

// Close stops delivery. It is safe to call Close multiple times.
func (n *Notifier) Close() {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.closed = true
	n.observers = make(map[uint64]entry)
}

func (n *Notifier) unsubscribe(id uint64) {
	n.mu.Lock()
	defer n.mu.Unlock()
	delete(n.observers, id)
}

// matches reports whether key equals prefix or lies below it.
func matches(prefix, key string) bool {
	if prefix == "" || prefix == key {
		return true
	}
	return strings.HasPrefix(key, prefix+".")
}
