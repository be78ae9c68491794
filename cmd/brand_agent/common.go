package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/marcus/brandsmith/internal/config"
	"github.com/marcus/brandsmith/internal/content"
	"github.com/marcus/brandsmith/internal/generate"
	"github.com/marcus/brandsmith/internal/llm"
	"github.com/marcus/brandsmith/internal/patterns"
)

// layeredConfig builds the effective configuration: defaults, then the
// optional config file, then environment variables. Flag values are applied
// on top by each command.
func layeredConfig(configPath string) (config.Config, error) {
	cfg := config.DefaultConfig()

	if configPath != "" {
		fileCfg, err := config.LoadConfig(configPath)
		if err != nil {
			return cfg, err
		}
		cfg = fileCfg.MergeWithDefaults(cfg)
	}

	env, err := config.FromEnv()
	if err != nil {
		return cfg, err
	}
	cfg.ApplyEnv(env)

	return cfg, nil
}

// loadLibrary returns the pattern library, applying YAML overrides when a
// path is configured.
func loadLibrary(path string) (patterns.Library, error) {
	if path == "" {
		return patterns.Default(), nil
	}
	lib, err := patterns.LoadFile(path)
	if err != nil {
		return patterns.Library{}, fmt.Errorf("loading pattern overrides: %w", err)
	}
	return lib, nil
}

// buildSuite returns the content generation suite: model-backed with a
// deterministic template fallback when an API key is configured, templates
// only otherwise. The returned closer releases the model client.
func buildSuite(ctx context.Context, apiKey string) (content.Suite, func(), error) {
	templates := generate.NewTemplateSuite()
	if apiKey == "" {
		return templates, func() {}, nil
	}

	client, err := llm.NewClient(ctx, llm.DefaultConfig(), apiKey)
	if err != nil {
		return nil, nil, fmt.Errorf("creating model client: %w", err)
	}
	return generate.NewLLMSuite(client, templates), func() { _ = client.Close() }, nil
}

// writeJSONFile writes v as indented JSON, creating parent directories.
func writeJSONFile(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

// printJSON writes v as indented JSON to stdout.
func printJSON(v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}
	_, _ = fmt.Fprintln(os.Stdout, string(data))
	return nil
}

// splitCSV splits a comma-separated flag value into trimmed parts.
func splitCSV(list string) []string {
	var parts []string
	for _, part := range strings.Split(list, ",") {
		if part = strings.TrimSpace(part); part != "" {
			parts = append(parts, part)
		}
	}
	return parts
}
