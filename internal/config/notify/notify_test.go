package notify

import (
	"testing"
)

func TestChangeType_String(t *testing.T) {
	tests := []struct {
		ct   ChangeType
		want string
	}{
		{ChangeSet, "set"},
		{ChangeDelete, "delete"},
		{ChangeReload, "reload"},
		{ChangeType(42), "unknown"},
	}

	for _, tt := range tests {
		if got := tt.ct.String(); got != tt.want {
			t.Errorf("ChangeType(%d).String() = %q, want %q", tt.ct, got, tt.want)
		}
	}
}

func TestNotifier_Subscribe(t *testing.T) {
	n := New()

	var got []Change
	n.Subscribe(func(c Change) { got = append(got, c) })

	n.NotifySet("grid", "scrollingEnabled", true, false)
	n.NotifyDelete("column:1", "scrollingEnabled", true)

	if len(got) != 2 {
		t.Fatalf("received %d changes, want 2", len(got))
	}
	if got[0].Type != ChangeSet || got[0].Scope != "grid" || got[0].NewValue != false {
		t.Errorf("first change = %+v", got[0])
	}
	if got[1].Type != ChangeDelete || got[1].OldValue != true {
		t.Errorf("second change = %+v", got[1])
	}
}

func TestNotifier_SubscribeKey(t *testing.T) {
	n := New()

	count := 0
	n.SubscribeKey("scroll", func(Change) { count++ })

	n.NotifySet("grid", "scroll", nil, 1)
	n.NotifySet("grid", "scroll.rowsPerPage", nil, 10)
	n.NotifySet("grid", "scrollingEnabled", nil, true) // sibling, not child
	n.NotifyReload("grid")

	if count != 3 {
		t.Errorf("observer called %d times, want 3", count)
	}
}

func TestSubscription_Unsubscribe(t *testing.T) {
	n := New()

	count := 0
	sub := n.Subscribe(func(Change) { count++ })
	n.NotifyReload("grid")
	sub.Unsubscribe()
	sub.Unsubscribe()
	n.NotifyReload("grid")

	if count != 1 {
		t.Errorf("observer called %d times, want 1", count)
	}
}

func TestNotifier_ObserverMayResubscribe(t *testing.T) {
	n := New()

	inner := 0
	n.Subscribe(func(Change) {
		n.Subscribe(func(Change) { inner++ })
	})
	n.NotifyReload("grid")
	n.NotifyReload("grid")

	if inner == 0 {
		t.Error("observer registered from a callback was never called")
	}
}

func TestNotifier_Close(t *testing.T) {
	n := New()

	count := 0
	n.Subscribe(func(Change) { count++ })
	n.Close()
	n.Close()
	n.NotifyReload("grid")

	if count != 0 {
		t.Errorf("observer called %d times after Close, want 0", count)
	}
}

func TestMatches(t *testing.T) {
	tests := []struct {
		prefix, key string
		want        bool
	}{
		{"", "anything", true},
		{"scroll", "scroll", true},
		{"scroll", "scroll.rows", true},
		{"scroll", "scrollingEnabled", false},
		{"scroll.rows", "scroll", false},
	}

	for _, tt := range tests {
		if got := matches(tt.prefix, tt.key); got != tt.want {
			t.Errorf("matches(%q, %q) = %v, want %v", tt.prefix, tt.key, got, tt.want)
		}
	}
}
