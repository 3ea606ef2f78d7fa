package layer

import (
	"errors"
	"testing"

	"github.com/dshills/gridkit/internal/config/notify"
)

func newTestManager(n *notify.Notifier) *Manager {
	var opts []ManagerOption
	if n != nil {
		opts = append(opts, WithNotifier(n))
	}
	m := NewManager(opts...)
	m.AddLayer(NewLayerWithData("theme", SourceTheme, PriorityTheme, map[string]any{
		"scrollingEnabled": true,
		"font":             "mono",
	}))
	m.AddLayer(NewLayerWithData("grid", SourceGrid, PriorityGrid, map[string]any{
		"scrollingEnabled": false,
	}))
	return m
}

func TestManager_AddLayerSortsByPriority(t *testing.T) {
	m := NewManager()
	m.AddLayer(NewLayer("behavior", SourceBehavior, PriorityBehavior))
	m.AddLayer(NewLayer("theme", SourceTheme, PriorityTheme))
	m.AddLayer(NewLayer("grid", SourceGrid, PriorityGrid))

	layers := m.Layers()
	want := []string{"theme", "grid", "behavior"}
	for i, name := range want {
		if layers[i].Name != name {
			t.Errorf("layers[%d] = %q, want %q", i, layers[i].Name, name)
		}
	}
}

func TestManager_AddLayerReplacesSameName(t *testing.T) {
	m := NewManager()
	m.AddLayer(NewLayerWithData("grid", SourceGrid, PriorityGrid, map[string]any{"a": 1}))
	m.AddLayer(NewLayerWithData("grid", SourceGrid, PriorityGrid, map[string]any{"a": 2}))

	if m.LayerCount() != 1 {
		t.Fatalf("LayerCount() = %d, want 1", m.LayerCount())
	}
	if got := m.Resolve("a").Int(0); got != 2 {
		t.Errorf("a = %d, want 2", got)
	}
}

func TestManager_ResolveHighestPriorityWins(t *testing.T) {
	m := newTestManager(nil)

	v := m.Resolve("scrollingEnabled")
	if v.Enabled() {
		t.Error("grid layer false should override theme true")
	}
	if v.Scope != "grid" {
		t.Errorf("Scope = %q, want 'grid'", v.Scope)
	}
	if got := m.WhichLayer("font"); got != "theme" {
		t.Errorf("WhichLayer(font) = %q, want 'theme'", got)
	}
	if got := m.WhichLayer("nope"); got != "" {
		t.Errorf("WhichLayer(nope) = %q, want empty", got)
	}
}

func TestManager_ColumnOverride(t *testing.T) {
	m := newTestManager(nil)
	column := NewColumnLayer(1, map[string]any{"scrollingEnabled": true})

	if !m.Resolve("scrollingEnabled", column).Enabled() {
		t.Error("column override true should win for that column")
	}
	if m.Resolve("scrollingEnabled").Enabled() {
		t.Error("grid false should apply without the column override")
	}
	if m.Resolve("scrollingEnabled", NewColumnLayer(2, nil)).Enabled() {
		t.Error("a column without an override should see the grid value")
	}
}

func TestManager_SetVisibleImmediately(t *testing.T) {
	m := newTestManager(nil)

	if m.Resolve("scrollingEnabled").Enabled() {
		t.Fatal("precondition: disabled")
	}
	if err := m.Set("grid", "scrollingEnabled", true); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if !m.Resolve("scrollingEnabled").Enabled() {
		t.Error("write should be visible to the next resolve")
	}
}

func TestManager_SetErrors(t *testing.T) {
	m := newTestManager(nil)
	ro := NewLayer("locked", SourceBehavior, PriorityBehavior)
	ro.ReadOnly = true
	m.AddLayer(ro)

	if err := m.Set("missing", "k", 1); !errors.Is(err, ErrLayerNotFound) {
		t.Errorf("Set(missing) error = %v, want ErrLayerNotFound", err)
	}
	if err := m.Set("locked", "k", 1); !errors.Is(err, ErrReadOnly) {
		t.Errorf("Set(locked) error = %v, want ErrReadOnly", err)
	}
	if err := m.Delete("locked", "k"); !errors.Is(err, ErrReadOnly) {
		t.Errorf("Delete(locked) error = %v, want ErrReadOnly", err)
	}
	if _, err := m.UpdateLayer("missing", nil); !errors.Is(err, ErrLayerNotFound) {
		t.Errorf("UpdateLayer(missing) error = %v, want ErrLayerNotFound", err)
	}
}

func TestManager_SetInSession(t *testing.T) {
	m := newTestManager(nil)
	m.SetInSession("scrollingEnabled", true)

	v := m.Resolve("scrollingEnabled")
	if !v.Enabled() || v.Scope != "session" {
		t.Errorf("Resolve = %v, want true from session", v)
	}
}

func TestManager_Delete(t *testing.T) {
	m := newTestManager(nil)

	if err := m.Delete("grid", "scrollingEnabled"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	v := m.Resolve("scrollingEnabled")
	if !v.Enabled() || v.Scope != "theme" {
		t.Errorf("after delete Resolve = %v, want true from theme", v)
	}
}

func TestManager_MergeInvalidatedOnWrite(t *testing.T) {
	m := newTestManager(nil)

	first := m.Merge()
	if first["scrollingEnabled"] != false {
		t.Fatalf("merged scrollingEnabled = %v, want false", first["scrollingEnabled"])
	}

	first["scrollingEnabled"] = "tampered"
	if again := m.Merge(); again["scrollingEnabled"] != false {
		t.Error("modifying a merge result must not affect the cache")
	}

	if err := m.Set("grid", "scrollingEnabled", true); err != nil {
		t.Fatal(err)
	}
	if after := m.Merge(); after["scrollingEnabled"] != true {
		t.Error("merge cache should be invalidated by Set")
	}
}

func TestManager_UpdateLayerReportsChanges(t *testing.T) {
	m := newTestManager(nil)

	changed, err := m.UpdateLayer("grid", map[string]any{
		"scrollingEnabled": false,
		"rowHeight":        18,
	})
	if err != nil {
		t.Fatal(err)
	}
	if len(changed) != 1 || changed[0] != "rowHeight" {
		t.Errorf("changed = %v, want [rowHeight]", changed)
	}
}

func TestManager_Notifications(t *testing.T) {
	n := notify.New()
	m := newTestManager(n)

	var changes []notify.Change
	n.Subscribe(func(c notify.Change) {
		changes = append(changes, c)
		// Observers run outside the manager lock.
		_ = m.Resolve(c.Key)
	})

	if err := m.Set("grid", "scrollingEnabled", true); err != nil {
		t.Fatal(err)
	}
	if err := m.Delete("grid", "scrollingEnabled"); err != nil {
		t.Fatal(err)
	}
	m.RemoveLayer("theme")

	if len(changes) != 3 {
		t.Fatalf("got %d changes, want 3", len(changes))
	}
	if changes[0].Type != notify.ChangeSet || changes[0].OldValue != false || changes[0].NewValue != true {
		t.Errorf("set change = %+v", changes[0])
	}
	if changes[1].Type != notify.ChangeDelete {
		t.Errorf("delete change = %+v", changes[1])
	}
	if changes[2].Type != notify.ChangeReload || changes[2].Scope != "theme" {
		t.Errorf("reload change = %+v", changes[2])
	}
}

func TestManager_RemoveLayer(t *testing.T) {
	m := newTestManager(nil)

	if !m.RemoveLayer("grid") {
		t.Error("RemoveLayer should return true for existing layer")
	}
	if m.RemoveLayer("grid") {
		t.Error("RemoveLayer should return false for missing layer")
	}
	if m.GetLayer("grid") != nil {
		t.Error("GetLayer should return nil after removal")
	}
}
