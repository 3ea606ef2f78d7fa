package layer

import (
	"errors"
	"testing"
)

func TestJSONScope_Lookup(t *testing.T) {
	s, err := NewJSONScope("column:0", []byte(`{"scrollingEnabled":true,"width":120,"format":{"decimals":2}}`))
	if err != nil {
		t.Fatal(err)
	}

	if !s.HasOwn("scrollingEnabled") {
		t.Error("HasOwn(scrollingEnabled) should be true")
	}
	if s.HasOwn("missing") {
		t.Error("HasOwn(missing) should be false")
	}

	v := Resolve("width", s)
	if v.Int(0) != 120 || v.Scope != "column:0" {
		t.Errorf("width = %v", v)
	}
	if got := Resolve("format.decimals", s).Int(0); got != 2 {
		t.Errorf("format.decimals = %d, want 2", got)
	}
}

func TestJSONScope_FalseIsDefined(t *testing.T) {
	s, err := NewJSONScope("column:0", []byte(`{"scrollingEnabled":false}`))
	if err != nil {
		t.Fatal(err)
	}
	grid := NewLayerWithData("grid", SourceGrid, PriorityGrid, map[string]any{"scrollingEnabled": true})

	if Resolve("scrollingEnabled", s, grid).Enabled() {
		t.Error("JSON false should shadow the grid's true")
	}
}

func TestJSONScope_SetAndDelete(t *testing.T) {
	s, err := NewJSONScope("column:3", nil)
	if err != nil {
		t.Fatal(err)
	}

	if err := s.Set("scrollingEnabled", true); err != nil {
		t.Fatal(err)
	}
	if !Resolve("scrollingEnabled", s).Enabled() {
		t.Error("value set through sjson should resolve")
	}
	if err := s.Delete("scrollingEnabled"); err != nil {
		t.Fatal(err)
	}
	if s.HasOwn("scrollingEnabled") {
		t.Error("deleted key should be gone")
	}
}

func TestJSONScope_Invalid(t *testing.T) {
	if _, err := NewJSONScope("bad", []byte(`{"unterminated"`)); !errors.Is(err, ErrInvalidJSON) {
		t.Errorf("error = %v, want ErrInvalidJSON", err)
	}
}

func TestJSONScope_BytesIsCopy(t *testing.T) {
	s, err := NewJSONScope("c", []byte(`{"a":1}`))
	if err != nil {
		t.Fatal(err)
	}
	b := s.Bytes()
	b[0] = 'x'
	if !s.HasOwn("a") {
		t.Error("mutating Bytes() result must not affect the scope")
	}
}

func TestColumnScopesFromJSON(t *testing.T) {
	scopes, err := ColumnScopesFromJSON([]byte(`{"0":{"scrollingEnabled":false},"3":{"hoverEnabled":true}}`))
	if err != nil {
		t.Fatal(err)
	}
	if len(scopes) != 2 {
		t.Fatalf("got %d scopes, want 2", len(scopes))
	}

	v := Resolve("scrollingEnabled", scopes[0])
	if !v.Defined || v.Enabled() {
		t.Errorf("column 0 scrollingEnabled = %+v, want defined false", v)
	}
	if v.Scope != "dataset:column:0" {
		t.Errorf("scope = %q, want dataset:column:0", v.Scope)
	}
	if !Resolve("hoverEnabled", scopes[3]).Enabled() {
		t.Error("column 3 hoverEnabled should be true")
	}
}

func TestColumnScopesFromJSON_Invalid(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"malformed", `{"0":`},
		{"array", `[1,2]`},
		{"bad key", `{"x":{"a":1}}`},
		{"negative key", `{"-1":{"a":1}}`},
		{"not object", `{"0":true}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ColumnScopesFromJSON([]byte(tt.doc)); !errors.Is(err, ErrInvalidJSON) {
				t.Errorf("error = %v, want ErrInvalidJSON", err)
			}
		})
	}
}
