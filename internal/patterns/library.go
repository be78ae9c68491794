// Package patterns holds the static recognizer tables the extraction engine
// matches against: keyword sets, trigger phrases, and compiled regular
// expressions. A Library is built once and treated as read-only; callers
// inject reduced or customized libraries without touching engine logic.
package patterns

import "regexp"

// Limits bounds the size and shape of extracted fields.
type Limits struct {
	MaxKeywords      int `yaml:"max_keywords"`
	MinKeywordLength int `yaml:"min_keyword_length"`
	MinKeywordCount  int `yaml:"min_keyword_count"`
	MaxProducts      int `yaml:"max_products"`
	MaxValueProps    int `yaml:"max_value_props"`
	MaxCompetitors   int `yaml:"max_competitors"`
	MaxColors        int `yaml:"max_colors"`
	MaxThemes        int `yaml:"max_themes"`
	MaxSamplePrices  int `yaml:"max_sample_prices"`
	MinNameLength    int `yaml:"min_name_length"`
	MaxNameLength    int `yaml:"max_name_length"`
	MinPhoneDigits   int `yaml:"min_phone_digits"`
	MaxPhoneDigits   int `yaml:"max_phone_digits"`
}

// AudienceSegment maps a canonical audience label to the cue words that
// suggest it. Segments are checked in declaration order.
type AudienceSegment struct {
	Label string   `yaml:"label"`
	Cues  []string `yaml:"cues"`
}

// Library is the full catalogue of recognizers used by extraction. Regexp
// tables are fixed at build time; keyword sets and limits can be replaced
// through LoadFile.
type Library struct {
	// Brand name fallback chain, in priority order. Each pattern's first
	// capture group is the candidate name.
	NamePatterns []*regexp.Regexp

	// Mission/about sentences. First capture group is the candidate
	// description span.
	DescriptionPatterns []*regexp.Regexp

	// Trigger phrases whose captured span is split into list items.
	ProductTriggers []*regexp.Regexp
	ValueTriggers   []*regexp.Regexp

	// Trigger phrases whose captured span is a single competitor mention.
	CompetitorTriggers []*regexp.Regexp

	// Splitter for delimited item spans.
	ListDelimiter *regexp.Regexp

	// Audience: explicit "for ..." spans first, cue-word segments second.
	AudiencePatterns []*regexp.Regexp
	AudienceSegments []AudienceSegment

	// Quality adjectives promoted to value propositions when present.
	QualityKeywords []string

	// Keyword ranking.
	WordPattern *regexp.Regexp
	StopWords   map[string]bool

	// Tone categories and their cue words. Keys are the lowercase tone
	// names the engine maps onto its Tone constants.
	ToneKeywords map[string][]string

	// Theme taxonomy. ThemeOrder fixes tie-breaking between categories
	// with equal scores.
	ThemeKeywords map[string][]string
	ThemeOrder    []string

	// Contact recognizers. PhonePatterns are tried in order; a match must
	// still pass the digit-count bounds in Limits.
	EmailPattern   *regexp.Regexp
	PhonePatterns  []*regexp.Regexp
	AddressPattern *regexp.Regexp

	// Colors.
	HexColorPattern *regexp.Regexp
	ExcludedColors  map[string]bool

	// Social platforms. The key set is fixed; values match profile URLs.
	SocialPatterns map[string]*regexp.Regexp

	// Pricing.
	PricingKeywords      []string
	PricePattern         *regexp.Regexp
	SubscriptionKeywords []string
	OneTimeKeywords      []string

	Limits Limits
}

// defaultLibrary is compiled once at init and shared. It must never be
// mutated after init; LoadFile copies before applying overrides.
var defaultLibrary = buildDefault()

// Default returns the built-in library. The returned value shares its
// tables with every other caller and must be treated as read-only.
func Default() Library {
	return defaultLibrary
}

func buildDefault() Library {
	return Library{
		NamePatterns: []*regexp.Regexp{
			regexp.MustCompile(`(?i:welcome to)\s+([A-Z][A-Za-z0-9&' -]{1,59})`),
			regexp.MustCompile(`(?i)<title[^>]*>\s*([^<\n|]+)`),
			regexp.MustCompile(`(?i:about)\s+([A-Z][A-Za-z0-9&' -]{1,59})`),
		},
		DescriptionPatterns: []*regexp.Regexp{
			regexp.MustCompile(`(?i)our mission(?: is)?[:\s]+([^.!?\n]{20,200})`),
			regexp.MustCompile(`(?i)about us[:\s]+([^.!?\n]{20,200})`),
			regexp.MustCompile(`(?i)we (?:are|'re)\s+([^.!?\n]{20,200})`),
		},
		ProductTriggers: []*regexp.Regexp{
			regexp.MustCompile(`(?i)(?:products?|services?|solutions?|offerings?)[:\s]+([^.!?\n]+)`),
			regexp.MustCompile(`(?i)we (?:offer|provide|sell|make|build)\s+([^.!?\n]+)`),
			regexp.MustCompile(`(?i)shop (?:our|for)\s+([^.!?\n]+)`),
		},
		ValueTriggers: []*regexp.Regexp{
			regexp.MustCompile(`(?i)(?:committed|dedicated) to\s+([^.!?\n]{3,120})`),
			regexp.MustCompile(`(?i)we believe in\s+([^.!?\n]{3,120})`),
			regexp.MustCompile(`(?i)known for\s+([^.!?\n]{3,120})`),
			regexp.MustCompile(`(?i)why choose us[:\s]+([^.!?\n]{3,120})`),
		},
		CompetitorTriggers: []*regexp.Regexp{
			regexp.MustCompile(`(?i)unlike\s+([^.!?,\n]{3,40})`),
			regexp.MustCompile(`(?i)compared to\s+([^.!?,\n]{3,40})`),
			regexp.MustCompile(`(?i)\bvs\.?\s+([^.!?,\n]{3,40})`),
			regexp.MustCompile(`(?i)versus\s+([^.!?,\n]{3,40})`),
			regexp.MustCompile(`(?i)alternative to\s+([^.!?,\n]{3,40})`),
			regexp.MustCompile(`(?i)switch(?:ing)? from\s+([^.!?,\n]{3,40})`),
		},
		ListDelimiter: regexp.MustCompile(`\s*(?:,|;|\||&|\band\b)\s*`),
		AudiencePatterns: []*regexp.Regexp{
			regexp.MustCompile(`(?i)(?:designed|built|made|perfect|ideal|tailored) for\s+([^.!?\n]{5,80})`),
			regexp.MustCompile(`(?i)(?:helping|serving|empowering)\s+([^.!?\n]{5,80})`),
		},
		AudienceSegments: []AudienceSegment{
			{Label: "small businesses", Cues: []string{"small business", "small businesses", "smb", "startups", "entrepreneurs"}},
			{Label: "enterprises", Cues: []string{"enterprise", "enterprises", "corporations", "large organizations"}},
			{Label: "professionals", Cues: []string{"professionals", "teams", "developers", "designers", "marketers", "agencies"}},
			{Label: "consumers", Cues: []string{"consumers", "families", "individuals", "shoppers", "students", "everyone"}},
		},
		QualityKeywords: []string{
			"quality", "affordable", "reliable", "innovative", "trusted",
			"premium", "award-winning", "sustainable", "handcrafted",
		},
		WordPattern: regexp.MustCompile(`[a-z]+`),
		StopWords:   defaultStopWords(),
		ToneKeywords: map[string][]string{
			"professional": {"solutions", "expertise", "professional", "industry", "enterprise", "proven", "strategic"},
			"casual":       {"hey", "awesome", "cool", "gonna", "wanna", "stuff", "super"},
			"friendly":     {"welcome", "love", "enjoy", "happy", "together", "community", "family"},
			"formal":       {"furthermore", "moreover", "therefore", "consequently", "pursuant", "hereby", "accordingly"},
		},
		ThemeKeywords: map[string][]string{
			"technology": {"software", "tech", "digital", "app", "platform", "ai", "cloud", "data"},
			"health":     {"health", "wellness", "fitness", "medical", "care", "therapy"},
			"business":   {"business", "consulting", "strategy", "growth", "b2b", "agency"},
			"education":  {"learn", "course", "training", "education", "school", "teach"},
			"lifestyle":  {"lifestyle", "fashion", "travel", "food", "beauty", "home"},
			"finance":    {"finance", "investment", "banking", "insurance", "money", "payment"},
			"ecommerce":  {"shop", "store", "buy", "cart", "shipping", "retail"},
			"service":    {"service", "support", "repair", "maintenance", "booking", "appointment"},
		},
		ThemeOrder: []string{
			"technology", "health", "business", "education",
			"lifestyle", "finance", "ecommerce", "service",
		},
		EmailPattern: regexp.MustCompile(`[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}`),
		PhonePatterns: []*regexp.Regexp{
			regexp.MustCompile(`\(?\d{3}\)?[-.\s]\d{3}[-.\s]\d{4}`),
			regexp.MustCompile(`\+\d{1,3}[-.\s]?\d{2,4}[-.\s]?\d{2,4}[-.\s]?\d{2,6}`),
			regexp.MustCompile(`\d{3,4}[-.\s]\d{3,4}[-.\s]\d{2,6}`),
		},
		AddressPattern:  regexp.MustCompile(`(?i)\b\d{1,5}\s+(?:[A-Za-z'.-]+\s+){1,5}(?:street|st|avenue|ave|road|rd|boulevard|blvd|lane|ln|drive|dr|court|ct|place|pl|way)\b`),
		HexColorPattern: regexp.MustCompile(`#(?:[0-9a-fA-F]{6}|[0-9a-fA-F]{3})\b`),
		ExcludedColors: map[string]bool{
			"#ffffff": true,
			"#000000": true,
			"#f0f0f0": true,
			"#e0e0e0": true,
		},
		SocialPatterns: map[string]*regexp.Regexp{
			"facebook":  regexp.MustCompile(`(?i)(?:https?://)?(?:www\.)?facebook\.com/[A-Za-z0-9_./-]+`),
			"twitter":   regexp.MustCompile(`(?i)(?:https?://)?(?:www\.)?(?:twitter\.com|x\.com)/[A-Za-z0-9_]+`),
			"instagram": regexp.MustCompile(`(?i)(?:https?://)?(?:www\.)?instagram\.com/[A-Za-z0-9_.]+`),
			"linkedin":  regexp.MustCompile(`(?i)(?:https?://)?(?:www\.)?linkedin\.com/(?:company|in)/[A-Za-z0-9_-]+`),
			"youtube":   regexp.MustCompile(`(?i)(?:https?://)?(?:www\.)?(?:youtube\.com/(?:c/|channel/|user/|@)?[A-Za-z0-9_-]+|youtu\.be/[A-Za-z0-9_-]+)`),
			"tiktok":    regexp.MustCompile(`(?i)(?:https?://)?(?:www\.)?tiktok\.com/@?[A-Za-z0-9_.]+`),
		},
		PricingKeywords: []string{
			"pricing", "price", "prices", "cost", "costs", "fee", "fees",
			"plan", "plans", "subscription", "billed", "per month", "per year",
		},
		PricePattern: regexp.MustCompile(`[$€£]\s?\d{1,6}(?:,\d{3})*(?:\.\d{1,2})?`),
		SubscriptionKeywords: []string{
			"subscription", "monthly", "per month", "/month", "/mo",
			"annually", "per year", "recurring",
		},
		OneTimeKeywords: []string{
			"one-time", "one time", "lifetime", "single payment", "pay once",
		},
		Limits: Limits{
			MaxKeywords:      15,
			MinKeywordLength: 3,
			MinKeywordCount:  2,
			MaxProducts:      5,
			MaxValueProps:    5,
			MaxCompetitors:   5,
			MaxColors:        5,
			MaxThemes:        3,
			MaxSamplePrices:  5,
			MinNameLength:    2,
			MaxNameLength:    50,
			MinPhoneDigits:   7,
			MaxPhoneDigits:   15,
		},
	}
}

func defaultStopWords() map[string]bool {
	words := []string{
		"the", "and", "for", "are", "but", "not", "you", "all", "can",
		"had", "her", "was", "one", "our", "out", "day", "get", "has",
		"him", "his", "how", "man", "new", "now", "old", "see", "two",
		"way", "who", "did", "its", "let", "put", "say", "she", "too",
		"use", "about", "after", "also", "been", "before", "from", "have",
		"here", "into", "just", "like", "more", "most", "only", "other",
		"over", "some", "such", "than", "that", "their", "them", "then",
		"there", "these", "they", "this", "very", "want", "well", "were",
		"what", "when", "where", "which", "while", "will", "with", "would",
		"your",
	}
	set := make(map[string]bool, len(words))
	for _, w := range words {
		set[w] = true
	}
	return set
}
