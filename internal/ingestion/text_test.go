package ingestion

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCleanText_NormalizeWhitespace(t *testing.T) {
	input := "Quality    goods    for    everyone"
	result := CleanText(input)

	assert.Contains(t, result, "Quality goods for everyone")
	assert.NotContains(t, result, "    ")
}

func TestCleanText_PreserveBulletLists(t *testing.T) {
	input := "Our products:\n- Widgets\n- Gadgets\n* Gizmos"
	result := CleanText(input)

	assert.Contains(t, result, "- Widgets")
	assert.Contains(t, result, "- Gadgets")
	assert.Contains(t, result, "* Gizmos")
}

func TestCleanText_PreserveHeadings(t *testing.T) {
	input := "# About Us\n## Our Story\nWe make things."
	result := CleanText(input)

	assert.Contains(t, result, "# About Us")
	assert.Contains(t, result, "## Our Story")
}

func TestCleanText_RemoveExcessiveBlankLines(t *testing.T) {
	input := "Welcome to Acme\n\n\n\n\nContact us below"
	result := CleanText(input)

	assert.NotContains(t, result, "\n\n\n")
	assert.Contains(t, result, "\n\n")
}

func TestCleanText_NormalizeLineEndings(t *testing.T) {
	input := "Line 1\r\nLine 2\rLine 3\nLine 4"
	result := CleanText(input)

	assert.NotContains(t, result, "\r")
	assert.Contains(t, result, "\n")
}

func TestCleanText_EmptyInput(t *testing.T) {
	assert.Equal(t, "", CleanText(""))
	assert.Equal(t, "", CleanText("   \n\t\n  "))
}

func TestCleanText_Idempotent(t *testing.T) {
	input := "Welcome   to Acme\r\n\n\n\nProducts:\n- Widgets"
	once := CleanText(input)
	twice := CleanText(once)

	assert.Equal(t, once, twice)
}

func TestIngestFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "page.txt")
	require.NoError(t, os.WriteFile(path, []byte("Welcome   to Acme\n\n\n\nQuality goods."), 0644))

	cleaned, meta, err := IngestFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, "Welcome to Acme\n\nQuality goods.", cleaned)
	require.NotNil(t, meta)
	assert.Empty(t, meta.URL)
	assert.NotEmpty(t, meta.Hash)
	assert.Equal(t, len(cleaned), meta.Length)
}

func TestIngestFromFile_Missing(t *testing.T) {
	_, _, err := IngestFromFile(filepath.Join(t.TempDir(), "nope.txt"))
	assert.Error(t, err)
}

func TestWriteOutput(t *testing.T) {
	dir := t.TempDir()
	meta := NewMetadata("cleaned text", "https://acme.com")

	require.NoError(t, WriteOutput(dir, "cleaned text", meta))

	data, err := os.ReadFile(filepath.Join(dir, "brand_page.cleaned.txt"))
	require.NoError(t, err)
	assert.Equal(t, "cleaned text", string(data))

	_, err = os.Stat(filepath.Join(dir, "brand_page.meta.json"))
	assert.NoError(t, err)
}
