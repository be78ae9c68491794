package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadConfig(t *testing.T) {
	path := writeConfig(t, `{
		"url": "https://acme.com",
		"types": "ad_copy,email_creative",
		"variant_count": 2,
		"verbose": true
	}`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "https://acme.com", cfg.URL)
	assert.Equal(t, "ad_copy,email_creative", cfg.Types)
	assert.Equal(t, 2, cfg.VariantCount)
	assert.True(t, cfg.Verbose)
}

func TestLoadConfig_EmptyPath(t *testing.T) {
	_, err := LoadConfig("")
	assert.Error(t, err)
}

func TestLoadConfig_InvalidJSON(t *testing.T) {
	path := writeConfig(t, `{not json`)
	_, err := LoadConfig(path)
	assert.ErrorContains(t, err, "parse")
}

func TestLoadConfig_MissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "absent.json"))
	assert.Error(t, err)
}

func TestValidate_MutuallyExclusiveInputs(t *testing.T) {
	cfg := Config{URL: "https://acme.com", File: "page.txt"}
	assert.ErrorContains(t, cfg.Validate(), "mutually exclusive")
}

func TestValidate_VariantCountRange(t *testing.T) {
	assert.NoError(t, (&Config{VariantCount: 5}).Validate())
	assert.Error(t, (&Config{VariantCount: -1}).Validate())
	assert.Error(t, (&Config{VariantCount: 11}).Validate())
}

func TestValidate_MissingFiles(t *testing.T) {
	cfg := Config{File: filepath.Join(t.TempDir(), "absent.txt")}
	assert.ErrorContains(t, cfg.Validate(), "input file not found")

	cfg = Config{Patterns: filepath.Join(t.TempDir(), "absent.yaml")}
	assert.ErrorContains(t, cfg.Validate(), "patterns file not found")
}

func TestMergeWithDefaults(t *testing.T) {
	cfg := Config{URL: "https://acme.com"}
	merged := cfg.MergeWithDefaults(DefaultConfig())

	assert.Equal(t, "https://acme.com", merged.URL)
	assert.Equal(t, "all", merged.Types)
	assert.Equal(t, 3, merged.VariantCount)
}

func TestMergeWithDefaults_ExplicitValuesWin(t *testing.T) {
	cfg := Config{Types: "ad_copy", VariantCount: 1}
	merged := cfg.MergeWithDefaults(DefaultConfig())

	assert.Equal(t, "ad_copy", merged.Types)
	assert.Equal(t, 1, merged.VariantCount)
}

func TestFromEnv(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "test-key")
	t.Setenv("DATABASE_URL", "postgres://localhost/brandsmith")
	t.Setenv("BRANDSMITH_VERBOSE", "true")

	env, err := FromEnv()
	require.NoError(t, err)
	assert.Equal(t, "test-key", env.APIKey)
	assert.Equal(t, "postgres://localhost/brandsmith", env.DatabaseURL)
	assert.True(t, env.Verbose)
}

func TestApplyEnv(t *testing.T) {
	cfg := Config{APIKey: "from-file", Verbose: false}
	cfg.ApplyEnv(&Env{APIKey: "from-env", Verbose: true})

	assert.Equal(t, "from-env", cfg.APIKey)
	assert.True(t, cfg.Verbose)
}

func TestApplyEnv_EmptyEnvKeepsConfig(t *testing.T) {
	cfg := Config{APIKey: "from-file"}
	cfg.ApplyEnv(&Env{})
	assert.Equal(t, "from-file", cfg.APIKey)

	cfg.ApplyEnv(nil)
	assert.Equal(t, "from-file", cfg.APIKey)
}
