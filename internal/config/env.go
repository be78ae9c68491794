package config

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"
)

// Env holds the environment-variable layer of the configuration. Field tags
// name the exact variables, so the well-known ones keep their conventional
// names while brandsmith-specific knobs live under BRANDSMITH_.
type Env struct {
	APIKey      string `envconfig:"GEMINI_API_KEY"`
	DatabaseURL string `envconfig:"DATABASE_URL"`
	Patterns    string `envconfig:"BRANDSMITH_PATTERNS"`
	UseBrowser  bool   `envconfig:"BRANDSMITH_USE_BROWSER"`
	Verbose     bool   `envconfig:"BRANDSMITH_VERBOSE"`
}

// FromEnv reads the environment layer.
func FromEnv() (*Env, error) {
	var env Env
	if err := envconfig.Process("", &env); err != nil {
		return nil, fmt.Errorf("reading environment config: %w", err)
	}
	return &env, nil
}

// ApplyEnv overlays environment values onto the config. Environment wins
// over file values for the fields it sets; flags are applied later by the
// command layer and win over both.
func (c *Config) ApplyEnv(env *Env) {
	if env == nil {
		return
	}
	if env.APIKey != "" {
		c.APIKey = env.APIKey
	}
	if env.DatabaseURL != "" {
		c.DatabaseURL = env.DatabaseURL
	}
	if env.Patterns != "" {
		c.Patterns = env.Patterns
	}
	if env.UseBrowser {
		c.UseBrowser = true
	}
	if env.Verbose {
		c.Verbose = true
	}
}
