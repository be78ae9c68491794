package store

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestArtifactKindConstants(t *testing.T) {
	assert.Equal(t, "profile", KindProfile)
	assert.Equal(t, "package", KindPackage)
	assert.NotEqual(t, KindProfile, KindPackage)
}

func TestRunType(t *testing.T) {
	run := Run{
		ID:        uuid.New(),
		SourceURL: "https://acme.com",
		BrandName: "Acme Corp",
		Status:    "running",
	}

	assert.Equal(t, "Acme Corp", run.BrandName)
	assert.Equal(t, "running", run.Status)
	assert.Nil(t, run.CompletedAt)
	assert.Empty(t, run.Outcome)
}

func TestRunFilters_ZeroValue(t *testing.T) {
	var filters RunFilters
	assert.Empty(t, filters.Brand)
	assert.Empty(t, filters.Status)
	assert.Zero(t, filters.Limit)
}
