package loader

import (
	"os"
	"strconv"
	"strings"
)

// DefaultEnvPrefix is the prefix for grid property environment variables.
const DefaultEnvPrefix = "GRIDKIT_"

// EnvLoader loads property overrides from environment variables.
//
// GRIDKIT_SCROLLING_ENABLED=false becomes scrollingEnabled=false. A double
// underscore separates nesting levels: GRIDKIT_SCROLL__ROWS_PER_PAGE=5
// becomes scroll.rowsPerPage=5.
type EnvLoader struct {
	prefix  string
	environ func() []string
}

// NewEnvLoader creates a loader for variables starting with prefix.
func NewEnvLoader(prefix string) *EnvLoader {
	return NewEnvLoaderFunc(prefix, os.Environ)
}

// NewEnvLoaderFunc creates a loader reading variables from environ instead
// of the process environment.
func NewEnvLoaderFunc(prefix string, environ func() []string) *EnvLoader {
	return &EnvLoader{prefix: prefix, environ: environ}
}

// Load implements Loader. Returns nil, nil when no variable matches.
func (l *EnvLoader) Load() (map[string]any, error) {
	var config map[string]any
	for _, kv := range l.environ() {
		name, value, ok := strings.Cut(kv, "=")
		if !ok || !strings.HasPrefix(name, l.prefix) || name == l.prefix {
			continue
		}
		if config == nil {
			config = make(map[string]any)
		}
		setPath(config, EnvToKey(l.prefix, name), ParseValue(value))
	}
	return config, nil
}

// EnvToKey converts an environment variable name to a property key.
func EnvToKey(prefix, name string) string {
	name = strings.TrimPrefix(name, prefix)
	sections := strings.Split(name, "__")
	for i, section := range sections {
		sections[i] = camel(section)
	}
	return strings.Join(sections, ".")
}

func camel(s string) string {
	words := strings.Split(strings.ToLower(s), "_")
	var b strings.Builder
	for i, w := range words {
		if w == "" {
			continue
		}
		if i == 0 {
			b.WriteString(w)
			continue
		}
		b.WriteString(strings.ToUpper(w[:1]))
		b.WriteString(w[1:])
	}
	return b.String()
}

// ParseValue converts an environment string to a bool, integer, float or
// leaves it as a string.
func ParseValue(s string) any {
	switch strings.ToLower(s) {
	case "true", "yes", "on":
		return true
	case "false", "no", "off":
		return false
	}
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return i
	}
	if strings.Contains(s, ".") {
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return f
		}
	}
	return s
}

func setPath(data map[string]any, path string, value any) {
	parts := strings.Split(path, ".")
	current := data
	for _, part := range parts[:len(parts)-1] {
		next, ok := current[part].(map[string]any)
		if !ok {
			next = make(map[string]any)
			current[part] = next
		}
		current = next
	}
	current[parts[len(parts)-1]] = value
}
