package mechanics

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// File is the top-level YAML structure of a mechanics catalog.
type File struct {
	Mechanics []Mechanic `yaml:"mechanics"`
}

// Parse decodes a YAML mechanics catalog.
func Parse(data []byte) (Catalog, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return Catalog{}, fmt.Errorf("parse mechanics YAML: %w", err)
	}
	for i, m := range f.Mechanics {
		if m.ID == "" {
			return Catalog{}, fmt.Errorf("mechanic %d has no id", i+1)
		}
		if m.Parameters == nil {
			f.Mechanics[i].Parameters = map[string]any{}
		}
	}
	return NewCatalog(f.Mechanics), nil
}

// LoadFile reads a YAML mechanics catalog from path. An empty path yields
// the built-in catalog.
func LoadFile(path string) (Catalog, error) {
	if path == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Catalog{}, err
	}
	return Parse(data)
}
