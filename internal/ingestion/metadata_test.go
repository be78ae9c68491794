package ingestion

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMetadata(t *testing.T) {
	meta := NewMetadata("some cleaned text", "https://acme.com")

	assert.Equal(t, "https://acme.com", meta.URL)
	assert.Len(t, meta.Hash, 64)
	assert.Equal(t, len("some cleaned text"), meta.Length)

	parsed, err := time.Parse(time.RFC3339, meta.Timestamp)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().UTC(), parsed, time.Minute)
}

func TestNewMetadata_HashIsDeterministic(t *testing.T) {
	a := NewMetadata("identical content", "")
	b := NewMetadata("identical content", "")
	c := NewMetadata("different content", "")

	assert.Equal(t, a.Hash, b.Hash)
	assert.NotEqual(t, a.Hash, c.Hash)
}

func TestMetadata_ToJSON(t *testing.T) {
	meta := NewMetadata("content", "https://acme.com")

	data, err := meta.ToJSON()
	require.NoError(t, err)

	var decoded Metadata
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, *meta, decoded)
}
