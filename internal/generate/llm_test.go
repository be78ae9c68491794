package generate

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marcus/brandsmith/internal/content"
	"github.com/marcus/brandsmith/internal/llm"
)

// fakeClient returns a canned payload or error and records every call.
type fakeClient struct {
	response string
	err      error
	prompts  []string
	tiers    []llm.ModelTier
}

var _ llm.Client = (*fakeClient)(nil)

func (f *fakeClient) GenerateContent(ctx context.Context, prompt string, tier llm.ModelTier) (string, error) {
	return f.GenerateJSON(ctx, prompt, tier)
}

func (f *fakeClient) GenerateJSON(ctx context.Context, prompt string, tier llm.ModelTier) (string, error) {
	f.prompts = append(f.prompts, prompt)
	f.tiers = append(f.tiers, tier)
	if f.err != nil {
		return "", f.err
	}
	return f.response, nil
}

func (f *fakeClient) GetModel(tier llm.ModelTier) string { return "fake-model" }

func (f *fakeClient) Close() error { return nil }

const validAdCopyPayload = `{"variants": [{"platform": "facebook", "headline": "Widgets that last", "primary_text": "Built to outlive the workshop.", "call_to_action": "Shop Now"}]}`

func TestLLMSuiteParsesValidResponse(t *testing.T) {
	client := &fakeClient{response: validAdCopyPayload}
	suite := NewLLMSuite(client, nil)

	set, err := suite.GenerateAdCopy(context.Background(), fullProfile(), content.Request{VariantCount: 2})
	require.NoError(t, err, "A schema-valid response should decode cleanly")
	require.Len(t, set.Variants, 1)
	assert.Equal(t, "Widgets that last", set.Variants[0].Headline)
	assert.Equal(t, "facebook", set.Variants[0].Platform)

	require.Len(t, client.prompts, 1, "Expected exactly one model call")
	assert.Contains(t, client.prompts[0], "Acme Corp", "Prompt should carry the brand name")
	assert.Contains(t, client.prompts[0], "2", "Prompt should carry the variant count")
	assert.NotContains(t, client.prompts[0], "{{.", "All placeholders should be substituted")
}

func TestLLMSuiteTierRouting(t *testing.T) {
	tests := []struct {
		name     string
		payload  string
		call     func(s *LLMSuite) error
		expected llm.ModelTier
	}{
		{
			name:    "ad copy uses standard",
			payload: validAdCopyPayload,
			call: func(s *LLMSuite) error {
				_, err := s.GenerateAdCopy(context.Background(), fullProfile(), content.Request{})
				return err
			},
			expected: llm.TierStandard,
		},
		{
			name:    "captions use lite",
			payload: `{"captions": [{"platform": "instagram", "text": "Widgets worth the wait."}]}`,
			call: func(s *LLMSuite) error {
				_, err := s.GenerateSocialCaptions(context.Background(), fullProfile(), content.Request{})
				return err
			},
			expected: llm.TierLite,
		},
		{
			name:    "scripts use advanced",
			payload: `{"scripts": [{"title": "Day One", "hook": "I tried it so you don't have to.", "scenes": ["Open on the unboxing"], "call_to_action": "Follow along", "duration_seconds": 20}]}`,
			call: func(s *LLMSuite) error {
				_, err := s.GenerateUgcScripts(context.Background(), fullProfile(), content.Request{})
				return err
			},
			expected: llm.TierAdvanced,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := &fakeClient{response: tt.payload}
			suite := NewLLMSuite(client, nil)

			require.NoError(t, tt.call(suite))
			require.Len(t, client.tiers, 1)
			assert.Equal(t, tt.expected, client.tiers[0])
		})
	}
}

func TestLLMSuiteFallsBackOnClientError(t *testing.T) {
	client := &fakeClient{err: errors.New("rate limited")}
	suite := NewLLMSuite(client, NewTemplateSuite())
	req := content.Request{Platforms: []string{"facebook"}, VariantCount: 2}

	set, err := suite.GenerateAdCopy(context.Background(), fullProfile(), req)
	require.NoError(t, err, "Fallback suite should absorb the model failure")
	require.NotNil(t, set)

	want, err := NewTemplateSuite().GenerateAdCopy(context.Background(), fullProfile(), req)
	require.NoError(t, err)
	assert.Equal(t, want, set, "Fallback output should match the template suite exactly")
}

func TestLLMSuiteFallsBackOnSchemaViolation(t *testing.T) {
	// Platform alone misses required headline and primary text fields.
	client := &fakeClient{response: `{"variants": [{"platform": "facebook"}]}`}
	suite := NewLLMSuite(client, NewTemplateSuite())

	set, err := suite.GenerateAdCopy(context.Background(), fullProfile(), content.Request{})
	require.NoError(t, err)
	require.NotNil(t, set)
	assert.Len(t, set.Variants, content.DefaultVariantCount, "Template fallback should fill the request")
}

func TestLLMSuiteFallsBackOnMalformedJSON(t *testing.T) {
	client := &fakeClient{response: "I'm sorry, I can't produce JSON today."}
	suite := NewLLMSuite(client, NewTemplateSuite())

	set, err := suite.GenerateSocialCaptions(context.Background(), fullProfile(), content.Request{})
	require.NoError(t, err)
	assert.NotEmpty(t, set.Captions)
}

func TestLLMSuiteSurfacesErrorWithoutFallback(t *testing.T) {
	client := &fakeClient{err: errors.New("connection reset")}
	suite := NewLLMSuite(client, nil)

	set, err := suite.GenerateAdCopy(context.Background(), fullProfile(), content.Request{})
	assert.Nil(t, set)
	require.Error(t, err)

	var genErr *GenerationError
	require.ErrorAs(t, err, &genErr)
	assert.Equal(t, string(content.TypeAdCopy), genErr.ContentType)
	assert.ErrorContains(t, err, "connection reset", "Cause should stay visible in the chain")
}

func TestLLMSuiteRequiresProfile(t *testing.T) {
	client := &fakeClient{response: validAdCopyPayload}
	suite := NewLLMSuite(client, nil)

	_, err := suite.GenerateAdCopy(context.Background(), nil, content.Request{})
	require.Error(t, err)
	assert.Empty(t, client.prompts, "No model call should happen without a profile")
}

func TestLLMSuiteDecodesAllContentTypes(t *testing.T) {
	profile := fullProfile()

	t.Run("static images", func(t *testing.T) {
		client := &fakeClient{response: `{"images": [{"prompt": "Studio shot of TurboWidget on walnut bench", "style": "product photography", "aspect_ratio": "1:1"}]}`}
		suite := NewLLMSuite(client, nil)

		assets, err := suite.GenerateStaticImages(context.Background(), profile, content.Request{})
		require.NoError(t, err)
		require.Len(t, assets, 1)
		assert.Equal(t, "1:1", assets[0].AspectRatio)
	})

	t.Run("email assets", func(t *testing.T) {
		client := &fakeClient{response: `{"emails": [{"subject": "Welcome aboard", "heading": "Hello", "body": "Glad you made it.", "call_to_action": "Get Started"}]}`}
		suite := NewLLMSuite(client, nil)

		emails, err := suite.GenerateEmailAssets(context.Background(), profile, content.Request{})
		require.NoError(t, err)
		require.Len(t, emails, 1)
		assert.Equal(t, "Welcome aboard", emails[0].Subject)
	})
}
