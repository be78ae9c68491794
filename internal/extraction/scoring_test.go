package extraction

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/marcus/brandsmith/internal/patterns"
)

func TestRankKeywords(t *testing.T) {
	engine := NewDefaultEngine()

	t.Run("orders by descending frequency", func(t *testing.T) {
		text := "roast roast roast beans beans grinder grinder grinder grinder"
		assert.Equal(t, []string{"grinder", "roast", "beans"}, engine.rankKeywords(text))
	})

	t.Run("ties break by first appearance", func(t *testing.T) {
		text := "violet indigo violet indigo crimson crimson"
		assert.Equal(t, []string{"violet", "indigo", "crimson"}, engine.rankKeywords(text))
	})

	t.Run("stop words and short words are excluded", func(t *testing.T) {
		text := "the the the and and ox ox ox roast roast"
		assert.Equal(t, []string{"roast"}, engine.rankKeywords(text))
	})

	t.Run("words seen once are excluded", func(t *testing.T) {
		text := "singular appearance words only here"
		assert.Empty(t, engine.rankKeywords(text))
	})

	t.Run("result is capped", func(t *testing.T) {
		var b strings.Builder
		words := []string{
			"alpha", "bravo", "charlie", "delta", "echo", "foxtrot", "golf",
			"hotel", "india", "juliet", "kilo", "lima", "mike", "november",
			"oscar", "papa", "quebec", "romeo",
		}
		for _, w := range words {
			b.WriteString(w + " " + w + " ")
		}
		got := engine.rankKeywords(b.String())
		assert.Len(t, got, patterns.Default().Limits.MaxKeywords)
		assert.Equal(t, "alpha", got[0], "equal counts keep appearance order")
	})

	t.Run("idempotent", func(t *testing.T) {
		text := "lamps lamps rugs rugs rugs vases vases lamps chairs"
		first := engine.rankKeywords(text)
		second := engine.rankKeywords(text)
		assert.Equal(t, first, second)
	})
}

func TestClassifyTone(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		expected Tone
	}{
		{
			name:     "professional vocabulary",
			text:     "Enterprise solutions backed by industry expertise.",
			expected: ToneProfessional,
		},
		{
			name:     "casual vocabulary",
			text:     "Hey! This stuff is awesome and super cool.",
			expected: ToneCasual,
		},
		{
			name:     "friendly vocabulary",
			text:     "Welcome! We love the community we built together.",
			expected: ToneFriendly,
		},
		{
			name:     "formal vocabulary",
			text:     "Furthermore, and moreover, we therefore proceed accordingly.",
			expected: ToneFormal,
		},
		{
			name:     "tie resolves to unknown",
			text:     "Hey there, welcome aboard.",
			expected: ToneUnknown,
		},
		{
			name:     "no cues resolves to unknown",
			text:     "Plain words with nothing special.",
			expected: ToneUnknown,
		},
		{
			name:     "cue inside another word does not count",
			text:     "They say monotheystic things.",
			expected: ToneUnknown,
		},
	}

	engine := NewDefaultEngine()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, engine.classifyTone(tt.text))
		})
	}
}

func TestClassifyThemes(t *testing.T) {
	engine := NewDefaultEngine()

	t.Run("ranks by score", func(t *testing.T) {
		text := "Our software platform runs in the cloud with smart data tools. We also do consulting."
		themes := engine.classifyThemes(text)
		assert.Equal(t, "technology", themes[0], "four tech cues outrank one business cue")
		assert.Contains(t, themes, "business")
	})

	t.Run("caps at the configured maximum", func(t *testing.T) {
		text := "software health business learn lifestyle finance shop service"
		themes := engine.classifyThemes(text)
		assert.Len(t, themes, patterns.Default().Limits.MaxThemes)
	})

	t.Run("equal scores keep taxonomy order", func(t *testing.T) {
		text := "software wellness consulting"
		assert.Equal(t, []string{"technology", "health", "business"}, engine.classifyThemes(text))
	})

	t.Run("no cues yields no themes", func(t *testing.T) {
		assert.Empty(t, engine.classifyThemes("completely unrelated words"))
	})
}
