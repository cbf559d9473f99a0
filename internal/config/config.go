// Package config loads, validates, and persists doc-forensics
// configuration.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	yamlv3 "gopkg.in/yaml.v3"

	"github.com/ziadkadry99/doc-forensics/internal/forensic"
)

// DefaultExcludes are corpus file patterns skipped by default.
var DefaultExcludes = []string{
	".git/**",
	"node_modules/**",
	"vendor/**",
	"*.lock",
}

// DefaultConfig returns a Config with the built-in defaults.
func DefaultConfig() *Config {
	return &Config{
		SimilarityThreshold: 0.7,
		CacheSize:           1024,
		MaxDepth:            200,
		MaxFields:           500000,
		Include:             []string{"**/*.json"},
		Exclude:             DefaultExcludes,
	}
}

// Load reads configuration from the given YAML file, then overlays
// environment variable overrides (DOCFORENSICS_*).
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	cfg := DefaultConfig()

	if _, err := os.Stat(path); err == nil {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("accessing config %s: %w", path, err)
	}

	if err := k.Load(env.Provider("DOCFORENSICS_", ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, "DOCFORENSICS_"))
	}), nil); err != nil {
		return nil, fmt.Errorf("loading env overrides: %w", err)
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}

	return cfg, nil
}

// Save writes the configuration to the given YAML file path.
func (c *Config) Save(path string) error {
	data, err := yamlv3.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshalling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}
	return nil
}

// validCategories is the set of change categories a rule may assign.
var validCategories = map[forensic.ChangeType]bool{
	forensic.ChangeFinancial:  true,
	forensic.ChangeIdentity:   true,
	forensic.ChangeSignature:  true,
	forensic.ChangeMetadata:   true,
	forensic.ChangeStructural: true,
}

// Validate checks that the configuration contains usable values.
func (c *Config) Validate() error {
	if c.SimilarityThreshold < 0 || c.SimilarityThreshold > 1 {
		return fmt.Errorf("similarity_threshold must be in [0,1], got %v", c.SimilarityThreshold)
	}
	if c.CacheSize < 1 {
		return fmt.Errorf("cache_size must be positive, got %d", c.CacheSize)
	}
	if c.MaxDepth < 0 {
		return fmt.Errorf("max_depth must be non-negative, got %d", c.MaxDepth)
	}
	if c.MaxFields < 0 {
		return fmt.Errorf("max_fields must be non-negative, got %d", c.MaxFields)
	}
	for _, r := range c.Rules {
		if r.Pattern == "" {
			return fmt.Errorf("classification rule with empty pattern")
		}
		if !validCategories[r.Category] {
			return fmt.Errorf("invalid rule category %q: must be one of financial, identity, signature, metadata, structural", r.Category)
		}
	}
	return nil
}
