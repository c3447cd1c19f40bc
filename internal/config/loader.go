package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"adapter-generator/internal/common"
	"adapter-generator/internal/gen"
	"adapter-generator/internal/plan"
)

// DefaultFilename is the configuration file looked for by the CLI.
const DefaultFilename = "adapters.yaml"

// LoadFile loads and parses a configuration file.
func LoadFile(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	return Parse(data)
}

// Parse decodes YAML, applies defaults and validates the structure.
// Unknown keys are rejected.
func Parse(data []byte) (*File, error) {
	var f File

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	if err := dec.Decode(&f); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to parse config YAML: %w", err)
	}

	applyDefaults(&f)

	if err := validateStruct(&f); err != nil {
		return nil, err
	}

	return &f, nil
}

func applyDefaults(f *File) {
	if f.Version == "" {
		f.Version = "1"
	}

	if f.Output.Name == "" {
		f.Output.Name = common.PkgAlias(f.Output.Package)
	}

	if f.Output.File == "" {
		f.Output.File = gen.DefaultFilename
	}

	for i := range f.Requests {
		r := &f.Requests[i]
		if r.Mode == "" {
			r.Mode = "duck"
		}

		if r.Output == "" {
			r.Output = plan.OutputStandalone.String()
		}
	}
}

// Marshal serializes a configuration to YAML.
func Marshal(f *File) ([]byte, error) {
	return yaml.Marshal(f)
}
