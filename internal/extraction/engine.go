package extraction

import (
	"strings"
	"unicode"

	"github.com/marcus/brandsmith/internal/patterns"
)

// Engine extracts a BrandProfile from free text using an injected pattern
// library. The zero Engine is not usable; construct with NewEngine.
type Engine struct {
	lib patterns.Library
}

// NewEngine returns an engine backed by the given pattern library.
func NewEngine(lib patterns.Library) *Engine {
	return &Engine{lib: lib}
}

// NewDefaultEngine returns an engine backed by the built-in pattern library.
func NewDefaultEngine() *Engine {
	return NewEngine(patterns.Default())
}

// Extract builds a profile from text. sourceURL is optional and only feeds
// the domain-derived name fallback. Extract never returns an error and never
// panics: each sub-extractor runs behind a guard, so a failure in one field
// leaves that field absent and the rest of the profile intact.
func (e *Engine) Extract(text, sourceURL string) *BrandProfile {
	profile := &BrandProfile{Tone: ToneUnknown}

	guard(func() { profile.Name = e.extractName(text, sourceURL) })
	guard(func() { profile.Description = e.extractDescription(text) })
	guard(func() { profile.Products = e.extractProducts(text) })
	guard(func() { profile.TargetAudience = e.extractAudience(text) })
	guard(func() { profile.ValuePropositions = e.extractValueProps(text) })
	guard(func() { profile.Keywords = e.rankKeywords(text) })
	guard(func() { profile.Tone = e.classifyTone(text) })
	guard(func() { profile.Competitors = e.extractCompetitors(text) })
	guard(func() { profile.ContactInfo = e.extractContact(text) })
	guard(func() { profile.SocialLinks = e.extractSocialLinks(text) })
	guard(func() { profile.Colors = e.extractColors(text) })
	guard(func() { profile.Themes = e.classifyThemes(text) })
	guard(func() { profile.Pricing = e.extractPricing(text) })

	return profile
}

// guard runs one sub-extractor and swallows a panic, so malformed input can
// only cost its own field, never the whole profile.
func guard(fn func()) {
	defer func() { _ = recover() }()
	fn()
}

// strategy is a single attempt at producing a field value. ok reports
// whether the attempt yielded a usable result.
type strategy func() (string, bool)

// firstOf tries strategies in order and returns the first usable result,
// or the empty string when every strategy misses.
func firstOf(chain ...strategy) string {
	for _, s := range chain {
		if v, ok := s(); ok {
			return v
		}
	}
	return ""
}

// containsToken reports whether token occurs in text on its own boundaries.
// Boundaries are only enforced for token edges that are letters, so cue
// phrases like "/month" still match inside "$9/month".
func containsToken(text, token string) bool {
	if token == "" {
		return false
	}
	for start := 0; start <= len(text)-len(token); {
		i := strings.Index(text[start:], token)
		if i < 0 {
			return false
		}
		at := start + i
		if boundaryOK(text, at, len(token)) {
			return true
		}
		start = at + 1
	}
	return false
}

func boundaryOK(text string, at, length int) bool {
	if isLetter(text[at]) && at > 0 && isLetter(text[at-1]) {
		return false
	}
	end := at + length
	if isLetter(text[end-1]) && end < len(text) && isLetter(text[end]) {
		return false
	}
	return true
}

func isLetter(b byte) bool {
	return unicode.IsLetter(rune(b))
}

// countTokens returns how many of the tokens occur in text (each token
// counted at most once).
func countTokens(text string, tokens []string) int {
	n := 0
	for _, tok := range tokens {
		if containsToken(text, tok) {
			n++
		}
	}
	return n
}

// anyToken reports whether at least one token occurs in text.
func anyToken(text string, tokens []string) bool {
	return countTokens(text, tokens) > 0
}
