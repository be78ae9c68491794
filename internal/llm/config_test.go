package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultConfig_GeminiTiers(t *testing.T) {
	config := DefaultConfig()

	assert.Equal(t, ProviderGemini, config.Provider)
	assert.Equal(t, "gemini-2.5-flash-lite", config.GetModel(TierLite))
	assert.Equal(t, "gemini-2.5-flash", config.GetModel(TierStandard))
	assert.Equal(t, "gemini-2.5-pro", config.GetModel(TierAdvanced))
}

func TestGetModel_FallsBackThroughTiers(t *testing.T) {
	config := &Config{
		Provider: ProviderGemini,
		Models: map[ModelTier]string{
			TierLite: "only-model",
		},
	}

	// Unknown tier falls back to standard, then lite.
	assert.Equal(t, "only-model", config.GetModel("unknown"))

	config.Models = map[ModelTier]string{}
	assert.Equal(t, "", config.GetModel(TierAdvanced))
}

func TestWithModel_DoesNotMutateReceiver(t *testing.T) {
	config := DefaultConfig()
	override := config.WithModel(TierAdvanced, "custom-model")

	assert.Equal(t, "gemini-2.5-pro", config.GetModel(TierAdvanced))
	assert.Equal(t, "custom-model", override.GetModel(TierAdvanced))

	// Remaining tiers carry over.
	assert.Equal(t, "gemini-2.5-flash-lite", override.GetModel(TierLite))
	assert.Equal(t, "gemini-2.5-flash", override.GetModel(TierStandard))
}
