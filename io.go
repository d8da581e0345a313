package options

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// NewRegistryFromFile builds a registry whose input store is loaded from a
// TOML, JSON or YAML file. Nested sections flatten into dotted option names.
// The file stands in for the tokenizer's output; it is read once, before the
// canonical pass.
func NewRegistryFromFile(path string, positional []string) (*Registry, error) {
	input, err := loadInputFile(path)
	if err != nil {
		return nil, err
	}
	return NewRegistry(input, positional), nil
}

// loadInputFile reads and parses an input file, detecting the format from
// the extension and falling back to content sniffing.
func loadInputFile(path string) (map[string]any, error) {
	fileData, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrInputNotFound, path)
		}
		return nil, fmt.Errorf("failed to read input file '%s': %w", path, err)
	}

	format := detectFileFormat(path)
	if format == "" {
		format = detectFormatFromContent(fileData)
	}

	nested := make(map[string]any)
	switch format {
	case "toml":
		if err := toml.Unmarshal(fileData, &nested); err != nil {
			return nil, fmt.Errorf("failed to parse TOML input file '%s': %w", path, err)
		}
	case "json":
		decoder := json.NewDecoder(bytes.NewReader(fileData))
		decoder.UseNumber() // Preserve number precision
		if err := decoder.Decode(&nested); err != nil {
			return nil, fmt.Errorf("failed to parse JSON input file '%s': %w", path, err)
		}
	case "yaml":
		if err := yaml.Unmarshal(fileData, &nested); err != nil {
			return nil, fmt.Errorf("failed to parse YAML input file '%s': %w", path, err)
		}
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownFormat, path)
	}

	return flattenMap(nested, ""), nil
}

// detectFileFormat determines format from file extension
func detectFileFormat(path string) string {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".toml", ".tml":
		return "toml"
	case ".json":
		return "json"
	case ".yaml", ".yml":
		return "yaml"
	default:
		return ""
	}
}

// detectFormatFromContent attempts to detect format by parsing
func detectFormatFromContent(data []byte) string {
	// Try JSON first (strict format)
	var jsonTest any
	if err := json.Unmarshal(data, &jsonTest); err == nil {
		return "json"
	}

	// Try YAML (superset of JSON, so check after JSON)
	var yamlTest any
	if err := yaml.Unmarshal(data, &yamlTest); err == nil {
		return "yaml"
	}

	// Try TOML last
	var tomlTest any
	if err := toml.Unmarshal(data, &tomlTest); err == nil {
		return "toml"
	}

	return ""
}

// Save writes the effective values of every registered descriptor to a TOML
// file atomically. Dotted names become nested tables.
func (r *Registry) Save(path string) error {
	data, err := r.marshalTOML()
	if err != nil {
		return err
	}
	return atomicWriteFile(path, data)
}

// Dump writes the effective values to w in TOML format.
func (r *Registry) Dump(w io.Writer) error {
	data, err := r.marshalTOML()
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}

func (r *Registry) marshalTOML() ([]byte, error) {
	nested := make(map[string]any)
	for name, value := range r.EffectiveValues() {
		setNestedValue(nested, name, value)
	}

	var buf bytes.Buffer
	encoder := toml.NewEncoder(&buf)
	if err := encoder.Encode(nested); err != nil {
		return nil, fmt.Errorf("failed to marshal effective values to TOML: %w", err)
	}
	return buf.Bytes(), nil
}
