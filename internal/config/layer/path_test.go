package layer

import (
	"reflect"
	"testing"
)

func TestSetGetDeleteByPath(t *testing.T) {
	data := map[string]any{}

	SetByPath(data, "scroll.rowsPerPage", 10)
	if v, ok := GetByPath(data, "scroll.rowsPerPage"); !ok || v != 10 {
		t.Errorf("GetByPath = (%v, %v), want (10, true)", v, ok)
	}

	SetByPath(data, "scroll.rowsPerPage", 20)
	if v, _ := GetByPath(data, "scroll.rowsPerPage"); v != 20 {
		t.Errorf("overwrite failed, got %v", v)
	}

	if !DeleteByPath(data, "scroll.rowsPerPage") {
		t.Error("DeleteByPath should report existing key")
	}
	if DeleteByPath(data, "scroll.rowsPerPage") {
		t.Error("DeleteByPath should report missing key")
	}
	if _, ok := GetByPath(nil, "a"); ok {
		t.Error("GetByPath(nil) should be false")
	}
	if _, ok := GetByPath(data, ""); ok {
		t.Error("empty path should be false")
	}
}

func TestDeepMerge(t *testing.T) {
	dst := map[string]any{
		"scroll": map[string]any{"rowsPerPage": 10, "smooth": false},
		"theme":  "dark",
	}
	src := map[string]any{
		"scroll": map[string]any{"rowsPerPage": 20},
		"theme":  "light",
	}

	got := DeepMerge(dst, src)
	want := map[string]any{
		"scroll": map[string]any{"rowsPerPage": 20, "smooth": false},
		"theme":  "light",
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("DeepMerge = %v, want %v", got, want)
	}
}

func TestChangedPaths(t *testing.T) {
	old := map[string]any{"a": 1, "b": map[string]any{"c": 2}, "gone": true}
	new := map[string]any{"a": 1, "b": map[string]any{"c": 3}, "added": "x"}

	got := ChangedPaths(old, new)
	want := []string{"added", "b.c", "gone"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ChangedPaths = %v, want %v", got, want)
	}
}
