package extraction

import (
	"strconv"
	"strings"
)

// extractPricing detects buying signals: currency amounts plus pricing
// vocabulary. The model is classified by keyword first, then by amount
// spread (two or more distinct amounts reads as tiered).
func (e *Engine) extractPricing(text string) PricingInfo {
	lower := strings.ToLower(text)
	amounts := e.sampleAmounts(text)

	info := PricingInfo{
		HasPricing:   len(amounts) > 0 || anyToken(lower, e.lib.PricingKeywords),
		SamplePrices: amounts,
	}
	if !info.HasPricing {
		return info
	}

	switch {
	case anyToken(lower, e.lib.SubscriptionKeywords):
		info.Model = PricingSubscription
	case anyToken(lower, e.lib.OneTimeKeywords):
		info.Model = PricingOneTime
	case len(amounts) >= 2:
		info.Model = PricingTiered
	default:
		info.Model = PricingUnknown
	}
	return info
}

// sampleAmounts parses distinct currency amounts in order of appearance.
func (e *Engine) sampleAmounts(text string) []float64 {
	matches := e.lib.PricePattern.FindAllString(text, -1)
	if len(matches) == 0 {
		return nil
	}
	seen := make(map[float64]bool, len(matches))
	var amounts []float64
	for _, m := range matches {
		value, ok := parseAmount(m)
		if !ok || seen[value] {
			continue
		}
		seen[value] = true
		amounts = append(amounts, value)
		if len(amounts) == e.lib.Limits.MaxSamplePrices {
			break
		}
	}
	if len(amounts) == 0 {
		return nil
	}
	return amounts
}

// parseAmount strips the currency symbol, spacing and thousands separators
// from a matched token like "$1,299.99".
func parseAmount(token string) (float64, bool) {
	cleaned := strings.Map(func(r rune) rune {
		if (r >= '0' && r <= '9') || r == '.' {
			return r
		}
		return -1
	}, token)
	if cleaned == "" {
		return 0, false
	}
	value, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0, false
	}
	return value, true
}
