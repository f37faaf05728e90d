package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// DefaultMaxDepth mirrors the decoder's default nesting limit.
const DefaultMaxDepth = 512

// Config represents the complete configuration for swiftmodeler
type Config struct {
	Optionality Optionality   `yaml:"optionality"`
	Prefix      string        `yaml:"prefix"`
	Suffix      string        `yaml:"suffix"`
	Parent      string        `yaml:"parent"`
	Modules     []string      `yaml:"modules"`
	Naming      NamingConfig  `yaml:"naming"`
	Decode      DecodeConfig  `yaml:"decode"`
	Logging     LoggingConfig `yaml:"logging"`
}

// NamingConfig controls property naming
type NamingConfig struct {
	CamelCaseFields bool `yaml:"camel_case_fields"`
}

// DecodeConfig controls input decoding
type DecodeConfig struct {
	MaxDepth int `yaml:"max_depth"`
}

// LoggingConfig controls diagnostic output
type LoggingConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
}

// Overrides carries values set on the command line. Empty strings and nil
// pointers leave the loaded configuration untouched.
type Overrides struct {
	Optionality     string
	Prefix          *string
	Suffix          *string
	Parent          *string
	CamelCaseFields *bool
	LogLevel        string
	LogFile         string
}

// NewConfig creates a new Config with default values
func NewConfig() *Config {
	return &Config{
		Optionality: Optional,
		Modules:     []string{},
		Naming: NamingConfig{
			CamelCaseFields: false,
		},
		Decode: DecodeConfig{
			MaxDepth: DefaultMaxDepth,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// LoadConfig loads configuration from a YAML file
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Start with defaults
	cfg := NewConfig()

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// FindConfigFile searches for a config file in the current directory and its parents
func FindConfigFile() string {
	currentDir, err := os.Getwd()
	if err != nil {
		return ""
	}
	return findConfigFileFrom(currentDir)
}

func findConfigFileFrom(dir string) string {
	configNames := []string{".swiftmodeler.yml", ".swiftmodeler.yaml", "swiftmodeler.yml", "swiftmodeler.yaml"}

	for {
		for _, name := range configNames {
			configPath := filepath.Join(dir, name)
			if _, err := os.Stat(configPath); err == nil {
				return configPath
			}
		}

		parentDir := filepath.Dir(dir)
		if parentDir == dir {
			// Reached root directory
			break
		}
		dir = parentDir
	}

	return ""
}

// Validate normalizes and checks the configuration.
func (c *Config) Validate() error {
	opt, err := ParseOptionality(string(c.Optionality))
	if err != nil {
		return err
	}
	c.Optionality = opt

	if c.Decode.MaxDepth < 0 {
		return fmt.Errorf("decode.max_depth must not be negative, got %d", c.Decode.MaxDepth)
	}
	if c.Decode.MaxDepth == 0 {
		c.Decode.MaxDepth = DefaultMaxDepth
	}

	modules := make([]string, 0, len(c.Modules))
	for _, m := range c.Modules {
		if m = strings.TrimSpace(m); m != "" {
			modules = append(modules, m)
		}
	}
	c.Modules = modules
	return nil
}

// ApplyOverrides returns a copy of c with the command line values applied.
func (c *Config) ApplyOverrides(o Overrides) (*Config, error) {
	merged := *c
	merged.Modules = append([]string(nil), c.Modules...)

	if o.Optionality != "" {
		opt, err := ParseOptionality(o.Optionality)
		if err != nil {
			return nil, err
		}
		merged.Optionality = opt
	}
	if o.Prefix != nil {
		merged.Prefix = *o.Prefix
	}
	if o.Suffix != nil {
		merged.Suffix = *o.Suffix
	}
	if o.Parent != nil {
		merged.Parent = *o.Parent
	}
	if o.CamelCaseFields != nil {
		merged.Naming.CamelCaseFields = *o.CamelCaseFields
	}
	if o.LogLevel != "" {
		merged.Logging.Level = o.LogLevel
	}
	if o.LogFile != "" {
		merged.Logging.File = o.LogFile
	}
	return &merged, nil
}

// LoadConfigWithCLI loads the config file at configPath, or a discovered one
// when configPath is empty, and applies the command line overrides.
func LoadConfigWithCLI(configPath string, o Overrides) (*Config, error) {
	cfg := NewConfig()

	if configPath == "" {
		configPath = FindConfigFile()
	}
	if configPath != "" {
		fileConfig, err := LoadConfig(configPath)
		if err != nil {
			return nil, err
		}
		cfg = fileConfig
	}

	return cfg.ApplyOverrides(o)
}

// RenderConfig returns the immutable render options derived from c.
func (c *Config) RenderConfig() RenderConfig {
	return RenderConfig{
		Optionality:     c.Optionality,
		Prefix:          c.Prefix,
		Suffix:          c.Suffix,
		Parent:          strings.TrimSpace(c.Parent),
		CamelCaseFields: c.Naming.CamelCaseFields,
	}
}
