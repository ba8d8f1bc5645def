package config

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/Carmen-Shannon/oxy-raster/common"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Format is a config file encoding.
type Format int

const (
	FormatTOML Format = iota
	FormatYAML
)

// FormatOf picks the encoding from a file extension.
//
// Parameters:
//   - path: the config file path
//
// Returns:
//   - Format: the detected format
//   - error: ErrUnknownFormat for unsupported extensions
func FormatOf(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return FormatTOML, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	}
	return 0, fmt.Errorf("%s: %w", path, ErrUnknownFormat)
}

// Load reads, defaults and validates the config file at path.
// An empty path returns Default().
//
// Parameters:
//   - path: a .toml, .yaml or .yml file
//
// Returns:
//   - *Config: the loaded configuration
//   - error: decode or validation errors
func Load(path string) (*Config, error) {
	if path == "" {
		return Default(), nil
	}
	format, err := FormatOf(path)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open config: %w", err)
	}
	defer f.Close()

	cfg, err := Decode(f, format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	common.Logger().Debug("config loaded", "path", path, "presenter", cfg.Presenter, "objects", len(cfg.Objects))
	return cfg, nil
}

// Decode reads a config in the given format. Keys omitted from the document keep their defaults.
// Unknown keys are rejected.
//
// Parameters:
//   - r: the document source
//   - format: the document encoding
//
// Returns:
//   - *Config: the decoded configuration
//   - error: decode or validation errors
func Decode(r io.Reader, format Format) (*Config, error) {
	cfg := Default()
	// An explicit objects list replaces the default scene rather than merging with it.
	cfg.Objects = nil

	switch format {
	case FormatTOML:
		dec := toml.NewDecoder(r)
		dec.DisallowUnknownFields()
		if err := dec.Decode(cfg); err != nil {
			return nil, fmt.Errorf("decode toml: %w", err)
		}
	case FormatYAML:
		dec := yaml.NewDecoder(r)
		dec.KnownFields(true)
		if err := dec.Decode(cfg); err != nil && err != io.EOF {
			return nil, fmt.Errorf("decode yaml: %w", err)
		}
	default:
		return nil, ErrUnknownFormat
	}

	if cfg.Objects == nil {
		cfg.Objects = Default().Objects
	}
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Encode writes cfg in the given format.
//
// Parameters:
//   - w: the destination
//   - cfg: the configuration to write
//   - format: the output encoding
//
// Returns:
//   - error: encode errors
func Encode(w io.Writer, cfg *Config, format Format) error {
	switch format {
	case FormatTOML:
		return toml.NewEncoder(w).Encode(cfg)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(cfg); err != nil {
			return err
		}
		return enc.Close()
	}
	return ErrUnknownFormat
}
