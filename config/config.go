// Package config provides configuration loading for plughost tools.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/c360studio/plughost/bundle"
)

// Config is the complete plughost configuration.
type Config struct {
	Bundles BundlesConfig `yaml:"bundles"`
	Query   QueryConfig   `yaml:"query"`
	NATS    NATSConfig    `yaml:"nats"`
}

// BundlesConfig configures bundle discovery.
type BundlesConfig struct {
	// SearchPath lists the directories scanned for plugin bundles.
	// Empty means the LV2_PATH environment variable or the conventional
	// system locations.
	SearchPath []string `yaml:"search_path"`

	// Watch enables filesystem watching for newly installed bundles.
	Watch bool `yaml:"watch"`

	// DynManifest enables the dynamic manifest hook at load time.
	DynManifest bool `yaml:"dyn_manifest"`
}

// QueryConfig configures query result filtering.
type QueryConfig struct {
	// FilterLanguage enables language-tag filtering of literal results.
	FilterLanguage bool `yaml:"filter_language"`

	// Languages is the ordered accepted-language preference list
	// (BCP-47 tags, e.g. "en-US").
	Languages []string `yaml:"languages"`
}

// NATSConfig configures the optional knowledge graph publisher.
type NATSConfig struct {
	// URL is the NATS server URL; empty disables publishing.
	URL string `yaml:"url"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Bundles: BundlesConfig{
			SearchPath: bundle.DefaultSearchPath(),
		},
		Query: QueryConfig{
			FilterLanguage: true,
			Languages:      []string{"en"},
		},
	}
}

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	if len(c.Bundles.SearchPath) == 0 {
		return fmt.Errorf("bundles.search_path is required")
	}
	return nil
}

// LoadFromFile loads configuration from a YAML file, layered over defaults.
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	config := DefaultConfig()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	return config, nil
}

// Load returns the configuration at path when given, otherwise the default
// location (~/.config/plughost/config.yaml) when it exists, otherwise
// defaults.
func Load(path string) (*Config, error) {
	if path != "" {
		return LoadFromFile(path)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return DefaultConfig(), nil
	}
	candidate := filepath.Join(home, ".config", "plughost", "config.yaml")
	if _, err := os.Stat(candidate); err != nil {
		return DefaultConfig(), nil
	}
	return LoadFromFile(candidate)
}

// SaveToFile writes the configuration to a YAML file, creating parent
// directories as needed.
func (c *Config) SaveToFile(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}
