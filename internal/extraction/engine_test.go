package extraction

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marcus/brandsmith/internal/patterns"
)

func TestExtractBrandSnippet(t *testing.T) {
	text := "Welcome to Acme Corp. We are dedicated to quality. Products: Widgets, Gadgets. Contact: hi@acme.com, (555) 123-4567."

	profile := NewDefaultEngine().Extract(text, "")
	require.NotNil(t, profile)

	assert.Equal(t, "Acme Corp", profile.Name)
	assert.Equal(t, []string{"Widgets", "Gadgets"}, profile.Products)
	assert.Equal(t, "hi@acme.com", profile.ContactInfo.Email)
	assert.Regexp(t, `\(?\d{3}\)?[-.\s]\d{3}[-.\s]\d{4}`, profile.ContactInfo.Phone)
	assert.Equal(t, "dedicated to quality", profile.Description)
	assert.Equal(t, []string{"quality"}, profile.ValuePropositions)
	assert.Equal(t, ToneFriendly, profile.Tone, "greeting text reads as friendly")
}

func TestExtractNeverFails(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{name: "empty", text: ""},
		{name: "whitespace only", text: "   \n\t  \n"},
		{name: "punctuation only", text: "!!! ??? ... ;;; ((( )))"},
		{name: "digits only", text: "12345 67890 11111"},
		{name: "control bytes", text: "\x00\x01\xff\xfe text \x7f"},
		{name: "unicode soup", text: "🎉🎉 ünïcödé ☃☃☃ 中文"},
		{name: "one giant token", text: strings.Repeat("x", 200000)},
		{name: "delimiter storm", text: strings.Repeat(",;|& and ", 5000)},
	}

	engine := NewDefaultEngine()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			profile := engine.Extract(tt.text, "")
			require.NotNil(t, profile, "extraction must always produce a profile")
			assert.NotEmpty(t, profile.Tone, "tone always has a value")
		})
	}
}

func TestExtractUnrecognizableInput(t *testing.T) {
	profile := NewDefaultEngine().Extract("9472 0038 1del 00x7 --- === ^^^", "")
	require.NotNil(t, profile)

	assert.Empty(t, profile.Name)
	assert.Empty(t, profile.Description)
	assert.Empty(t, profile.Products)
	assert.Empty(t, profile.TargetAudience)
	assert.Empty(t, profile.ValuePropositions)
	assert.Empty(t, profile.Keywords)
	assert.Equal(t, ToneUnknown, profile.Tone)
	assert.Empty(t, profile.Competitors)
	assert.True(t, profile.ContactInfo.IsEmpty())
	assert.Empty(t, profile.SocialLinks)
	assert.Empty(t, profile.Colors)
	assert.Empty(t, profile.Themes)
	assert.False(t, profile.Pricing.HasPricing)
	assert.True(t, profile.IsEmpty())
}

func TestExtractWithReducedLibrary(t *testing.T) {
	lib := patterns.Default().WithOverrides(patterns.Overrides{
		ToneKeywords: map[string][]string{
			"casual": {"zounds"},
		},
	})

	profile := NewEngine(lib).Extract("Zounds, what a day. Zounds again.", "")
	assert.Equal(t, ToneCasual, profile.Tone, "injected library drives classification")
}

func TestExtractDeterministic(t *testing.T) {
	text := `Welcome to Northwind Trading. We offer lamps, rugs, vases and chairs.
Our mission is to bring affordable craftsmanship to every home and family.
Pricing: the starter plan is $29 per month, premium is $59 per month.
Unlike MegaMart. Visit facebook.com/northwind or instagram.com/northwindtrading.
Colors: #1a2b3c #ff8800. Call (555) 987-6543 or write hello@northwind.com.`

	engine := NewDefaultEngine()
	first := engine.Extract(text, "https://northwind.com")
	second := engine.Extract(text, "https://northwind.com")

	assert.Equal(t, first, second, "identical input must yield identical profiles")
}
