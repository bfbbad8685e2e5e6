// Package config loads CLI configuration from YAML files.
package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/goccy/go-yaml"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound = errors.New("config file not found")
	ErrConfigParse    = errors.New("failed to parse config")
	ErrFieldTooLong   = errors.New("field exceeds maximum length")
)

// MaxInputSize limits config input to prevent memory exhaustion (1MB).
const MaxInputSize = 1 << 20

// Field length limits.
const (
	MaxTitleLength = 200  // Document title
	MaxPathLength  = 4096 // Filesystem paths
	MaxStyleLength = 50   // Chroma style name
)

// Config holds all configuration for documentation rendering.
type Config struct {
	SourceRoot string         `yaml:"sourceRoot"`
	Output     OutputConfig   `yaml:"output"`
	Document   DocumentConfig `yaml:"document"`
	Syntax     SyntaxConfig   `yaml:"syntax"`
}

// OutputConfig defines output destination options.
type OutputConfig struct {
	Dir string `yaml:"dir"` // Output directory (empty = next to input)
}

// DocumentConfig defines document-level options.
type DocumentConfig struct {
	Title      string `yaml:"title"`      // Fixed title (empty = derive from first heading)
	Stylesheet string `yaml:"stylesheet"` // Path to a CSS file replacing the generated stylesheet
}

// SyntaxConfig defines syntax highlighting options.
type SyntaxConfig struct {
	Style string `yaml:"style"` // Chroma style name (default: "github")
}

// Default returns a config with default values.
func Default() *Config {
	return &Config{SourceRoot: "."}
}

// Load reads and validates a config file. Unknown fields are rejected so
// typos surface instead of silently applying defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- user-provided config path
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, path)
		}
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}
	if len(data) > MaxInputSize {
		return nil, fmt.Errorf("%w: %s exceeds %d bytes", ErrConfigParse, path, MaxInputSize)
	}

	cfg := Default()
	if err := yaml.UnmarshalWithOptions(data, cfg, yaml.Strict()); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks field length limits.
func (c *Config) Validate() error {
	checks := []struct {
		name  string
		value string
		max   int
	}{
		{"sourceRoot", c.SourceRoot, MaxPathLength},
		{"output.dir", c.Output.Dir, MaxPathLength},
		{"document.title", c.Document.Title, MaxTitleLength},
		{"document.stylesheet", c.Document.Stylesheet, MaxPathLength},
		{"syntax.style", c.Syntax.Style, MaxStyleLength},
	}
	for _, check := range checks {
		if len(check.value) > check.max {
			return fmt.Errorf("%w: %s (%d > %d)", ErrFieldTooLong, check.name, len(check.value), check.max)
		}
	}
	return nil
}
