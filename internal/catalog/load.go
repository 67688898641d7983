// ABOUTME: Decodes case catalogs from YAML, TOML, or JSON files
// ABOUTME: Resolves which catalog to use and embeds the bundled default content
package catalog

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/harper/usecase-clinic/internal/models"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

//go:embed data/cases.yaml
var defaultCatalog []byte

// DefaultSource names the embedded catalog in logs and listings
const DefaultSource = "embedded"

// Format is a catalog file encoding
type Format string

const (
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
	FormatJSON Format = "json"
)

// ErrUnsupportedFormat is returned for files with an unknown extension
var ErrUnsupportedFormat = errors.New("unsupported catalog format")

// document is the top-level shape of a catalog file
type document struct {
	Cases []models.Case `json:"cases" yaml:"cases" toml:"cases"`
}

// FormatFromPath picks the decoder from the file extension
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".toml":
		return FormatTOML, nil
	case ".json":
		return FormatJSON, nil
	}
	return "", fmt.Errorf("%w: %q (want .yaml, .yml, .toml or .json)", ErrUnsupportedFormat, filepath.Ext(path))
}

// Decode parses raw catalog bytes without validating them; unknown fields are rejected
func Decode(data []byte, format Format) ([]models.Case, error) {
	var doc document

	switch format {
	case FormatYAML:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&doc); err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("failed to parse YAML catalog: %w", err)
		}
	case FormatTOML:
		dec := toml.NewDecoder(bytes.NewReader(data)).DisallowUnknownFields()
		if err := dec.Decode(&doc); err != nil {
			return nil, fmt.Errorf("failed to parse TOML catalog: %w", err)
		}
	case FormatJSON:
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&doc); err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("failed to parse JSON catalog: %w", err)
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}

	return doc.Cases, nil
}

// Parse decodes and validates catalog bytes
func Parse(data []byte, format Format) (*Catalog, error) {
	cases, err := Decode(data, format)
	if err != nil {
		return nil, err
	}
	return New(cases)
}

// LoadFile reads, decodes, and validates a catalog file
func LoadFile(path string) (*Catalog, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog file: %w", err)
	}

	c, err := Parse(data, format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

// Default returns the catalog bundled with the binary
func Default() (*Catalog, error) {
	return Parse(defaultCatalog, FormatYAML)
}

// Resolve picks the catalog path: an explicit path wins, then a user catalog in the
// XDG config directory. An empty result means the embedded default.
func Resolve(explicit string) string {
	if explicit != "" {
		return explicit
	}

	// Respects XDG_CONFIG_HOME override for testing
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		configHome = xdg.ConfigHome
	}
	for _, name := range []string{"catalog.yaml", "catalog.yml", "catalog.toml", "catalog.json"} {
		path := filepath.Join(configHome, "clinic", name)
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// Load resolves and loads a catalog, returning it with a description of its source
func Load(explicit string) (*Catalog, string, error) {
	path := Resolve(explicit)
	if path == "" {
		c, err := Default()
		if err != nil {
			return nil, "", fmt.Errorf("embedded catalog: %w", err)
		}
		return c, DefaultSource, nil
	}

	c, err := LoadFile(path)
	if err != nil {
		return nil, "", err
	}
	return c, path, nil
}
