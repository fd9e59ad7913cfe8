package manifest

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// DefaultPackage is the generated package name when the manifest does not
// set one.
const DefaultPackage = "events"

// LoadFile loads and parses a YAML manifest from the given path.
func LoadFile(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest %s: %w", path, err)
	}

	return Parse(data)
}

// Parse parses YAML data into a File.
func Parse(data []byte) (*File, error) {
	var f File

	err := yaml.Unmarshal(data, &f)
	if err != nil {
		return nil, fmt.Errorf("failed to parse manifest YAML: %w", err)
	}

	applyDefaults(&f)

	return &f, nil
}

// applyDefaults fills in default values for optional fields.
func applyDefaults(f *File) {
	if f.Version == "" {
		f.Version = "1"
	}

	if f.Package == "" {
		f.Package = DefaultPackage
	}

	for i := range f.Types {
		if f.Types[i].Kind == "" {
			f.Types[i].Kind = "record"
		}
	}
}
