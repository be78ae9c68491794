// Package config provides configuration loading and validation for the CLI.
// Precedence is defaults, then config file, then environment, then flags;
// the merge helpers here implement the first three layers and the command
// layer applies flags on top.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Config is the CLI configuration that can be loaded from a JSON file.
// All fields are optional; missing values use defaults or come from CLI
// flags.
type Config struct {
	// Inputs. URL and File are mutually exclusive.
	URL  string `json:"url,omitempty"`  // Brand page URL to analyze
	File string `json:"file,omitempty"` // Path to a saved page text file

	// Generation
	Types        string `json:"types,omitempty"`         // Comma-separated content types, or "all"
	Platforms    string `json:"platforms,omitempty"`     // Comma-separated ad/social platforms
	VariantCount int    `json:"variant_count,omitempty"` // Ad copy variants per platform
	Campaign     string `json:"campaign,omitempty"`      // Campaign name woven into copy
	Audience     string `json:"audience,omitempty"`      // Audience override for generation

	// Extraction
	Patterns string `json:"patterns,omitempty"` // Path to a YAML pattern overrides file

	// Behavior
	APIKey      string `json:"api_key,omitempty"`      // Gemini API key
	DatabaseURL string `json:"database_url,omitempty"` // PostgreSQL connection URL for run history
	UseBrowser  bool   `json:"use_browser,omitempty"`  // Render JS-heavy pages with headless Chrome
	Verbose     bool   `json:"verbose,omitempty"`      // Print detailed progress
	Output      string `json:"output,omitempty"`       // Output directory or file path
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() Config {
	return Config{
		Types:        "all",
		VariantCount: 3,
	}
}

// LoadConfig loads configuration from a JSON file.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// Validate checks that the configuration has valid values. Required fields
// are not checked here; flag validation handles those after merging.
func (c *Config) Validate() error {
	if c.URL != "" && c.File != "" {
		return fmt.Errorf("config error: 'url' and 'file' are mutually exclusive")
	}

	if c.VariantCount < 0 || c.VariantCount > 10 {
		return fmt.Errorf("config error: 'variant_count' must be between 0 and 10")
	}

	if c.File != "" {
		if _, err := os.Stat(c.File); os.IsNotExist(err) {
			return fmt.Errorf("config error: input file not found: %s", c.File)
		}
	}
	if c.Patterns != "" {
		if _, err := os.Stat(c.Patterns); os.IsNotExist(err) {
			return fmt.Errorf("config error: patterns file not found: %s", c.Patterns)
		}
	}

	return nil
}

// MergeWithDefaults returns a new Config with empty fields filled from
// defaults.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	if result.URL == "" {
		result.URL = defaults.URL
	}
	if result.File == "" {
		result.File = defaults.File
	}
	if result.Types == "" {
		result.Types = defaults.Types
	}
	if result.Platforms == "" {
		result.Platforms = defaults.Platforms
	}
	if result.VariantCount == 0 {
		result.VariantCount = defaults.VariantCount
	}
	if result.Campaign == "" {
		result.Campaign = defaults.Campaign
	}
	if result.Audience == "" {
		result.Audience = defaults.Audience
	}
	if result.Patterns == "" {
		result.Patterns = defaults.Patterns
	}
	if result.APIKey == "" {
		result.APIKey = defaults.APIKey
	}
	if result.DatabaseURL == "" {
		result.DatabaseURL = defaults.DatabaseURL
	}
	if result.Output == "" {
		result.Output = defaults.Output
	}
	if !result.UseBrowser {
		result.UseBrowser = defaults.UseBrowser
	}
	if !result.Verbose {
		result.Verbose = defaults.Verbose
	}

	return result
}
