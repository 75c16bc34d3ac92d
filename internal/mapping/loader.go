package mapping

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"accessor-generator/internal/signature"
)

// Defaults applied to empty file settings.
const (
	DefaultVersion = "1"
	DefaultSuffix  = "_accessors.rs"
)

// LoadFile loads and parses a YAML declaration file from the given path.
func LoadFile(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read declaration file %s: %w", path, err)
	}

	return Parse(data)
}

// Parse parses YAML data into a File and fills defaults.
func Parse(data []byte) (*File, error) {
	var f File

	err := yaml.Unmarshal(data, &f)
	if err != nil {
		return nil, fmt.Errorf("failed to parse declaration YAML: %w", err)
	}

	applyDefaults(&f)

	return &f, nil
}

// Default returns a File with every default applied and no aggregates.
func Default() *File {
	f := &File{}
	applyDefaults(f)

	return f
}

// applyDefaults fills in default values for optional fields.
func applyDefaults(f *File) {
	if f.Version == "" {
		f.Version = DefaultVersion
	}

	if f.Strategy == "" {
		f.Strategy = signature.StrategyFull
	}

	if f.Output.Suffix == "" {
		f.Output.Suffix = DefaultSuffix
	}

	f.Dialect = f.Dialect.WithDefaults()
	f.Markers = f.Markers.WithDefaults()
}

// Marshal serializes a File to YAML.
func Marshal(f *File) ([]byte, error) {
	return yaml.Marshal(f)
}

// WriteFile writes a File to the given path.
func WriteFile(f *File, path string) error {
	data, err := Marshal(f)
	if err != nil {
		return fmt.Errorf("failed to marshal declaration file: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write declaration file %s: %w", path, err)
	}

	return nil
}
