package loader

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

func parseYAML(source string, data []byte) (map[string]any, error) {
	var config map[string]any
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, &ParseError{Path: source, Message: err.Error(), Err: err}
	}
	if config == nil {
		config = make(map[string]any)
	}
	return normalizeYAML(config)
}

// normalizeYAML rejects non-string map keys, which yaml.v3 produces for
// documents like "1: true", since property keys are always strings.
func normalizeYAML(m map[string]any) (map[string]any, error) {
	for k, v := range m {
		switch t := v.(type) {
		case map[string]any:
			nested, err := normalizeYAML(t)
			if err != nil {
				return nil, err
			}
			m[k] = nested
		case map[any]any:
			return nil, fmt.Errorf("property %q: non-string keys are not supported", k)
		}
	}
	return m, nil
}
