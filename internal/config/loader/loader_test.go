package loader

import (
	"errors"
	"io/fs"
	"os"
	"strings"
	"testing"
	"time"
)

// memFS is an in-memory FileSystem for testing.
type memFS struct {
	files map[string][]byte
}

func newMemFS() *memFS {
	return &memFS{files: make(map[string][]byte)}
}

func (m *memFS) add(path, content string) {
	m.files[path] = []byte(content)
}

func (m *memFS) ReadFile(path string) ([]byte, error) {
	data, ok := m.files[path]
	if !ok {
		return nil, os.ErrNotExist
	}
	return data, nil
}

func (m *memFS) Stat(path string) (fs.FileInfo, error) {
	if _, ok := m.files[path]; !ok {
		return nil, os.ErrNotExist
	}
	return memFileInfo{name: path}, nil
}

type memFileInfo struct{ name string }

func (f memFileInfo) Name() string       { return f.name }
func (f memFileInfo) Size() int64        { return 0 }
func (f memFileInfo) Mode() fs.FileMode  { return 0o644 }
func (f memFileInfo) ModTime() time.Time { return time.Now() }
func (f memFileInfo) IsDir() bool        { return false }
func (f memFileInfo) Sys() any           { return nil }

func TestFileLoader_TOML(t *testing.T) {
	mfs := newMemFS()
	mfs.add("/grid.toml", `
scrollingEnabled = true
rowHeight = 22

[scroll]
rowsPerPage = 15
`)

	config, err := NewFileLoaderWithFS(mfs, "/grid.toml").Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if config["scrollingEnabled"] != true {
		t.Errorf("scrollingEnabled = %v, want true", config["scrollingEnabled"])
	}
	if config["rowHeight"] != int64(22) {
		t.Errorf("rowHeight = %v (%T), want int64 22", config["rowHeight"], config["rowHeight"])
	}
	scroll, ok := config["scroll"].(map[string]any)
	if !ok || scroll["rowsPerPage"] != int64(15) {
		t.Errorf("scroll = %v", config["scroll"])
	}
}

func TestFileLoader_YAML(t *testing.T) {
	mfs := newMemFS()
	mfs.add("/grid.yml", `
scrollingEnabled: false
scroll:
  rowsPerPage: 12
`)

	config, err := NewFileLoaderWithFS(mfs, "/grid.yml").Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if config["scrollingEnabled"] != false {
		t.Errorf("scrollingEnabled = %v, want false", config["scrollingEnabled"])
	}
	scroll, ok := config["scroll"].(map[string]any)
	if !ok || scroll["rowsPerPage"] != 12 {
		t.Errorf("scroll = %v", config["scroll"])
	}
}

func TestFileLoader_Missing(t *testing.T) {
	config, err := NewFileLoaderWithFS(newMemFS(), "/nope.toml").Load()
	if err != nil {
		t.Errorf("missing file should not be an error, got %v", err)
	}
	if config != nil {
		t.Errorf("missing file should return nil config, got %v", config)
	}
}

func TestFileLoader_Invalid(t *testing.T) {
	mfs := newMemFS()
	mfs.add("/bad.toml", "scrollingEnabled = = true\n")
	mfs.add("/bad.yaml", "scroll: [unterminated\n")

	for _, path := range []string{"/bad.toml", "/bad.yaml"} {
		_, err := NewFileLoaderWithFS(mfs, path).Load()
		var pe *ParseError
		if !errors.As(err, &pe) {
			t.Errorf("%s: error = %v, want *ParseError", path, err)
			continue
		}
		if pe.Path != path {
			t.Errorf("%s: ParseError.Path = %q", path, pe.Path)
		}
	}
}

func TestFileLoader_UnsupportedFormat(t *testing.T) {
	_, err := NewFileLoaderWithFS(newMemFS(), "/grid.ini").Load()
	if !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("error = %v, want ErrUnsupportedFormat", err)
	}
}

func TestLoadReader(t *testing.T) {
	config, err := LoadReader(FormatYAML, strings.NewReader("hoverEnabled: true\n"))
	if err != nil {
		t.Fatal(err)
	}
	if config["hoverEnabled"] != true {
		t.Errorf("hoverEnabled = %v", config["hoverEnabled"])
	}

	empty, err := LoadReader(FormatTOML, strings.NewReader(""))
	if err != nil {
		t.Fatal(err)
	}
	if empty == nil || len(empty) != 0 {
		t.Errorf("empty document = %v, want empty map", empty)
	}
}

func TestFormatFor(t *testing.T) {
	tests := []struct {
		path string
		want Format
	}{
		{"a.toml", FormatTOML},
		{"a.TOML", FormatTOML},
		{"a.yaml", FormatYAML},
		{"a.yml", FormatYAML},
	}
	for _, tt := range tests {
		got, err := FormatFor(tt.path)
		if err != nil || got != tt.want {
			t.Errorf("FormatFor(%q) = (%q, %v), want %q", tt.path, got, err, tt.want)
		}
	}
}
