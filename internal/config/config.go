package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/mcncl/rolodex/internal/decode"
)

// Config represents the complete configuration for rolodex
type Config struct {
	Decode DecodeConfig `yaml:"decode"`
	Fetch  FetchConfig  `yaml:"fetch"`
	Render RenderConfig `yaml:"render"`
	Export ExportConfig `yaml:"export"`
	Schema SchemaConfig `yaml:"schema"`
	Dev    DevConfig    `yaml:"dev"`
}

// DecodeConfig controls record decoding
type DecodeConfig struct {
	// EmailUnknownShape selects the policy for an "email" field that is
	// neither a string nor an array of strings: "error" or "drop".
	EmailUnknownShape string `yaml:"email_unknown_shape"`
}

// Duration wraps time.Duration so YAML values like "15s" decode cleanly.
type Duration time.Duration

// UnmarshalYAML implements the yaml.Unmarshaler interface
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return fmt.Errorf("duration must be a string like \"15s\": %w", err)
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", s, err)
	}
	*d = Duration(parsed)
	return nil
}

// Std returns the wrapped time.Duration.
func (d Duration) Std() time.Duration { return time.Duration(d) }

// FetchConfig controls remote document retrieval
type FetchConfig struct {
	Timeout      Duration `yaml:"timeout"`
	MaxBodyBytes int64    `yaml:"max_body_bytes"`
	UserAgent    string   `yaml:"user_agent"`
}

// RenderConfig controls how decoded contacts are displayed
type RenderConfig struct {
	EmailPlaceholder string `yaml:"email_placeholder"`
	PhonePlaceholder string `yaml:"phone_placeholder"`
	Color            bool   `yaml:"color"`
}

// ExportConfig controls contact export
type ExportConfig struct {
	// Format is "json" or "csv".
	Format string `yaml:"format"`
	// KeyStyle is applied to JSON keys and CSV headers: "snake",
	// "camel", or "kebab".
	KeyStyle string `yaml:"key_style"`
	Indent   bool   `yaml:"indent"`
}

// SchemaConfig controls pre-decode document validation
type SchemaConfig struct {
	Enabled bool `yaml:"enabled"`
	// Path points at a custom JSON Schema; empty means the built-in
	// contacts schema.
	Path string `yaml:"path"`
}

// DevConfig contains development/debug options
type DevConfig struct {
	Debug   bool `yaml:"debug"`
	Verbose bool `yaml:"verbose"`
}

// NewConfig creates a new Config with default values
func NewConfig() *Config {
	return &Config{
		Decode: DecodeConfig{
			EmailUnknownShape: string(decode.EmailPolicyError),
		},
		Fetch: FetchConfig{
			Timeout:      Duration(15 * time.Second),
			MaxBodyBytes: 8 << 20, // 8 MiB
			UserAgent:    "rolodex",
		},
		Render: RenderConfig{
			EmailPlaceholder: "(no email)",
			PhonePlaceholder: "(no phone)",
			Color:            true,
		},
		Export: ExportConfig{
			Format:   "json",
			KeyStyle: "snake",
			Indent:   true,
		},
		Schema: SchemaConfig{
			Enabled: false,
		},
		Dev: DevConfig{
			Debug:   false,
			Verbose: false,
		},
	}
}

// LoadConfig loads configuration from a YAML file
func LoadConfig(path string) (*Config, error) {
	// Read file
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Start with defaults
	cfg := NewConfig()

	// Parse YAML
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// FindConfigFile searches for a config file in current directory and parents
func FindConfigFile() string {
	configNames := []string{".rolodex.yml", ".rolodex.yaml", "rolodex.yml", "rolodex.yaml"}

	// Start from current directory
	currentDir, err := os.Getwd()
	if err != nil {
		return ""
	}

	// Search up the directory tree
	for {
		for _, name := range configNames {
			configPath := filepath.Join(currentDir, name)
			if _, err := os.Stat(configPath); err == nil {
				return configPath
			}
		}

		// Move up one directory
		parentDir := filepath.Dir(currentDir)
		if parentDir == currentDir {
			// Reached root directory
			break
		}
		currentDir = parentDir
	}

	return ""
}

// Validate checks enum-valued settings and numeric bounds
func (c *Config) Validate() error {
	switch decode.EmailPolicy(c.Decode.EmailUnknownShape) {
	case decode.EmailPolicyError, decode.EmailPolicyDrop:
	default:
		return fmt.Errorf("invalid decode.email_unknown_shape %q: must be \"error\" or \"drop\"", c.Decode.EmailUnknownShape)
	}

	switch c.Export.Format {
	case "json", "csv":
	default:
		return fmt.Errorf("invalid export.format %q: must be \"json\" or \"csv\"", c.Export.Format)
	}

	switch c.Export.KeyStyle {
	case "snake", "camel", "kebab":
	default:
		return fmt.Errorf("invalid export.key_style %q: must be \"snake\", \"camel\" or \"kebab\"", c.Export.KeyStyle)
	}

	if c.Fetch.Timeout.Std() <= 0 {
		return fmt.Errorf("invalid fetch.timeout %v: must be positive", c.Fetch.Timeout.Std())
	}
	if c.Fetch.MaxBodyBytes <= 0 {
		return fmt.Errorf("invalid fetch.max_body_bytes %d: must be positive", c.Fetch.MaxBodyBytes)
	}

	return nil
}

// DecodeOptions translates the config into decoder options
func (c *Config) DecodeOptions() decode.Options {
	return decode.Options{
		EmailUnknownShape: decode.EmailPolicy(c.Decode.EmailUnknownShape),
	}
}
