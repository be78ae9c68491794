// Package extraction turns unstructured page text into a structured brand
// profile. Extraction is heuristic and best-effort: every field degrades to
// its absent value when nothing matches, and the engine never fails or
// contacts the network.
package extraction

import "strings"

// Tone is the dominant voice detected in the source text.
type Tone string

const (
	ToneProfessional Tone = "professional"
	ToneCasual       Tone = "casual"
	ToneFriendly     Tone = "friendly"
	ToneFormal       Tone = "formal"
	ToneUnknown      Tone = "unknown"
)

// PricingModel classifies how the brand appears to charge.
type PricingModel string

const (
	PricingSubscription PricingModel = "subscription"
	PricingOneTime      PricingModel = "one-time"
	PricingTiered       PricingModel = "tiered"
	PricingUnknown      PricingModel = "unknown"
)

// ContactInfo holds the first contact details found in the text.
type ContactInfo struct {
	Email   string `json:"email,omitempty"`
	Phone   string `json:"phone,omitempty"`
	Address string `json:"address,omitempty"`
}

// IsEmpty reports whether no contact field was detected.
func (c ContactInfo) IsEmpty() bool {
	return c.Email == "" && c.Phone == "" && c.Address == ""
}

// PricingInfo summarizes pricing signals. Model is empty when HasPricing is
// false.
type PricingInfo struct {
	HasPricing   bool         `json:"has_pricing"`
	Model        PricingModel `json:"model,omitempty"`
	SamplePrices []float64    `json:"sample_prices,omitempty"`
}

// BrandProfile is the structured output of extraction. Every field is
// independently optional; absent values are empty strings, nil slices and
// nil maps. A profile is produced once per Extract call and should be
// treated as read-only afterwards.
type BrandProfile struct {
	Name              string            `json:"name,omitempty"`
	Description       string            `json:"description,omitempty"`
	Products          []string          `json:"products,omitempty"`
	TargetAudience    string            `json:"target_audience,omitempty"`
	ValuePropositions []string          `json:"value_propositions,omitempty"`
	Keywords          []string          `json:"keywords,omitempty"`
	Tone              Tone              `json:"tone"`
	Competitors       []string          `json:"competitors,omitempty"`
	ContactInfo       ContactInfo       `json:"contact_info"`
	SocialLinks       map[string]string `json:"social_links,omitempty"`
	Colors            []string          `json:"colors,omitempty"`
	Themes            []string          `json:"themes,omitempty"`
	Pricing           PricingInfo       `json:"pricing"`
}

// DisplayName returns the brand name or a neutral placeholder for use in
// generated copy.
func (p *BrandProfile) DisplayName() string {
	if name := strings.TrimSpace(p.Name); name != "" {
		return name
	}
	return "this brand"
}

// IsEmpty reports whether extraction found nothing at all.
func (p *BrandProfile) IsEmpty() bool {
	return p.Name == "" &&
		p.Description == "" &&
		len(p.Products) == 0 &&
		p.TargetAudience == "" &&
		len(p.ValuePropositions) == 0 &&
		len(p.Keywords) == 0 &&
		(p.Tone == ToneUnknown || p.Tone == "") &&
		len(p.Competitors) == 0 &&
		p.ContactInfo.IsEmpty() &&
		len(p.SocialLinks) == 0 &&
		len(p.Colors) == 0 &&
		len(p.Themes) == 0 &&
		!p.Pricing.HasPricing
}
