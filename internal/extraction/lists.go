package extraction

import "strings"

const (
	minItemLength = 2
	maxItemLength = 60
)

// extractProducts collects delimited item spans following product trigger
// phrases.
func (e *Engine) extractProducts(text string) []string {
	var items []string
	for _, trigger := range e.lib.ProductTriggers {
		for _, m := range trigger.FindAllStringSubmatch(text, -1) {
			items = append(items, e.splitItems(m[1])...)
		}
	}
	return capList(dedupeFold(items), e.lib.Limits.MaxProducts)
}

// extractValueProps collects spans after value trigger phrases, then
// promotes any standalone quality keywords found in the text.
func (e *Engine) extractValueProps(text string) []string {
	var items []string
	for _, trigger := range e.lib.ValueTriggers {
		for _, m := range trigger.FindAllStringSubmatch(text, -1) {
			items = append(items, e.splitItems(m[1])...)
		}
	}
	lower := strings.ToLower(text)
	for _, quality := range e.lib.QualityKeywords {
		if containsToken(lower, quality) {
			items = append(items, quality)
		}
	}
	return capList(dedupeFold(items), e.lib.Limits.MaxValueProps)
}

// extractCompetitors treats each competitor trigger match as a single
// mention rather than a delimited list.
func (e *Engine) extractCompetitors(text string) []string {
	var items []string
	for _, trigger := range e.lib.CompetitorTriggers {
		for _, m := range trigger.FindAllStringSubmatch(text, -1) {
			if item := trimItem(m[1]); itemLengthOK(item) {
				items = append(items, item)
			}
		}
	}
	return capList(dedupeFold(items), e.lib.Limits.MaxCompetitors)
}

// splitItems breaks a captured span into trimmed candidate items.
func (e *Engine) splitItems(span string) []string {
	parts := e.lib.ListDelimiter.Split(span, -1)
	items := make([]string, 0, len(parts))
	for _, part := range parts {
		if item := trimItem(part); itemLengthOK(item) {
			items = append(items, item)
		}
	}
	return items
}

func trimItem(s string) string {
	return strings.Trim(s, " \t\n.,:;!?\"'()-")
}

func itemLengthOK(item string) bool {
	return len(item) >= minItemLength && len(item) <= maxItemLength
}

// dedupeFold removes case-insensitive duplicates, keeping the first-seen
// casing and order.
func dedupeFold(items []string) []string {
	if len(items) == 0 {
		return nil
	}
	seen := make(map[string]bool, len(items))
	out := make([]string, 0, len(items))
	for _, item := range items {
		key := strings.ToLower(item)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, item)
	}
	return out
}

func capList(items []string, max int) []string {
	if max > 0 && len(items) > max {
		return items[:max]
	}
	if len(items) == 0 {
		return nil
	}
	return items
}
