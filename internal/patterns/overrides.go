package patterns

import (
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"
)

// Overrides replaces selected keyword tables and limits of the default
// library. Empty fields keep the built-in values; regexp tables are not
// overridable.
type Overrides struct {
	StopWords            []string            `yaml:"stop_words"`
	ToneKeywords         map[string][]string `yaml:"tone_keywords"`
	ThemeKeywords        map[string][]string `yaml:"theme_keywords"`
	ThemeOrder           []string            `yaml:"theme_order"`
	AudienceSegments     []AudienceSegment   `yaml:"audience_segments"`
	QualityKeywords      []string            `yaml:"quality_keywords"`
	PricingKeywords      []string            `yaml:"pricing_keywords"`
	SubscriptionKeywords []string            `yaml:"subscription_keywords"`
	OneTimeKeywords      []string            `yaml:"one_time_keywords"`
	ExcludedColors       []string            `yaml:"excluded_colors"`
	Limits               Limits              `yaml:"limits"`
}

// LoadFile reads a YAML overrides file and applies it on top of the default
// library.
func LoadFile(path string) (Library, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Library{}, fmt.Errorf("failed to read patterns file: %w", err)
	}

	var o Overrides
	if err := yaml.Unmarshal(raw, &o); err != nil {
		return Library{}, fmt.Errorf("failed to parse patterns file %s: %w", path, err)
	}

	return Default().WithOverrides(o), nil
}

// WithOverrides returns a copy of the library with the non-empty override
// fields applied. The receiver is not modified.
func (l Library) WithOverrides(o Overrides) Library {
	if len(o.StopWords) > 0 {
		l.StopWords = toSet(o.StopWords)
	}
	if len(o.ToneKeywords) > 0 {
		l.ToneKeywords = o.ToneKeywords
	}
	if len(o.ThemeKeywords) > 0 {
		l.ThemeKeywords = o.ThemeKeywords
		l.ThemeOrder = keysInOrder(o.ThemeKeywords, o.ThemeOrder)
	}
	if len(o.AudienceSegments) > 0 {
		l.AudienceSegments = o.AudienceSegments
	}
	if len(o.QualityKeywords) > 0 {
		l.QualityKeywords = o.QualityKeywords
	}
	if len(o.PricingKeywords) > 0 {
		l.PricingKeywords = o.PricingKeywords
	}
	if len(o.SubscriptionKeywords) > 0 {
		l.SubscriptionKeywords = o.SubscriptionKeywords
	}
	if len(o.OneTimeKeywords) > 0 {
		l.OneTimeKeywords = o.OneTimeKeywords
	}
	if len(o.ExcludedColors) > 0 {
		l.ExcludedColors = toSet(o.ExcludedColors)
	}
	l.Limits = mergeLimits(l.Limits, o.Limits)
	return l
}

// mergeLimits keeps the base value for every zero override field.
func mergeLimits(base, override Limits) Limits {
	if override.MaxKeywords > 0 {
		base.MaxKeywords = override.MaxKeywords
	}
	if override.MinKeywordLength > 0 {
		base.MinKeywordLength = override.MinKeywordLength
	}
	if override.MinKeywordCount > 0 {
		base.MinKeywordCount = override.MinKeywordCount
	}
	if override.MaxProducts > 0 {
		base.MaxProducts = override.MaxProducts
	}
	if override.MaxValueProps > 0 {
		base.MaxValueProps = override.MaxValueProps
	}
	if override.MaxCompetitors > 0 {
		base.MaxCompetitors = override.MaxCompetitors
	}
	if override.MaxColors > 0 {
		base.MaxColors = override.MaxColors
	}
	if override.MaxThemes > 0 {
		base.MaxThemes = override.MaxThemes
	}
	if override.MaxSamplePrices > 0 {
		base.MaxSamplePrices = override.MaxSamplePrices
	}
	if override.MinNameLength > 0 {
		base.MinNameLength = override.MinNameLength
	}
	if override.MaxNameLength > 0 {
		base.MaxNameLength = override.MaxNameLength
	}
	if override.MinPhoneDigits > 0 {
		base.MinPhoneDigits = override.MinPhoneDigits
	}
	if override.MaxPhoneDigits > 0 {
		base.MaxPhoneDigits = override.MaxPhoneDigits
	}
	return base
}

func toSet(words []string) map[string]bool {
	set := make(map[string]bool, len(words))
	for _, w := range words {
		set[w] = true
	}
	return set
}

// keysInOrder returns the requested order filtered to existing keys, then
// any remaining keys appended in sorted order for determinism.
func keysInOrder(m map[string][]string, requested []string) []string {
	seen := make(map[string]bool, len(m))
	order := make([]string, 0, len(m))
	for _, k := range requested {
		if _, ok := m[k]; ok && !seen[k] {
			order = append(order, k)
			seen[k] = true
		}
	}
	rest := make([]string, 0, len(m))
	for k := range m {
		if !seen[k] {
			rest = append(rest, k)
		}
	}
	sort.Strings(rest)
	return append(order, rest...)
}
