// Package generate produces marketing assets from a brand profile. It ships
// two content.Suite implementations: TemplateSuite fills deterministic
// platform templates offline, and LLMSuite asks a language model for each
// asset set, validating the response and delegating to a fallback suite when
// the model output is unusable.
package generate

import (
	"context"
	"fmt"
	"strings"
	"unicode"

	"github.com/marcus/brandsmith/internal/content"
	"github.com/marcus/brandsmith/internal/extraction"
)

// platformLimit caps ad copy fields per platform, following each network's
// ad manager guidance. Unknown platforms get the loosest cap.
type platformLimit struct {
	Headline    int
	PrimaryText int
}

var platformLimits = map[string]platformLimit{
	"facebook":  {Headline: 40, PrimaryText: 125},
	"instagram": {Headline: 40, PrimaryText: 125},
	"google":    {Headline: 30, PrimaryText: 90},
	"linkedin":  {Headline: 70, PrimaryText: 150},
	"twitter":   {Headline: 70, PrimaryText: 250},
	"tiktok":    {Headline: 40, PrimaryText: 150},
}

var defaultLimit = platformLimit{Headline: 60, PrimaryText: 200}

func limitFor(platform string) platformLimit {
	if limit, ok := platformLimits[platform]; ok {
		return limit
	}
	return defaultLimit
}

// socialPlatforms are the networks captions make sense for. Search-style
// platforms in a request are skipped by the caption generator.
var socialPlatforms = map[string]bool{
	"facebook":  true,
	"instagram": true,
	"linkedin":  true,
	"twitter":   true,
	"tiktok":    true,
}

var defaultSocialPlatforms = []string{"instagram", "tiktok", "linkedin"}

const maxHashtags = 5

// TemplateSuite renders assets from the profile alone, with no model calls.
// Output is deterministic for a fixed profile and request, which makes it
// both the offline mode and the fallback behind LLMSuite.
type TemplateSuite struct{}

// NewTemplateSuite returns a ready-to-use template generator.
func NewTemplateSuite() *TemplateSuite {
	return &TemplateSuite{}
}

// GenerateAdCopy produces one variant per requested slot, rotating through
// the request's platforms and truncating copy to each platform's limits.
func (s *TemplateSuite) GenerateAdCopy(ctx context.Context, profile *extraction.BrandProfile, req content.Request) (*content.AdCopySet, error) {
	if profile == nil {
		return nil, &GenerationError{ContentType: string(content.TypeAdCopy), Message: "brand profile is required"}
	}
	req.Normalize()

	variants := make([]content.AdCopyVariant, 0, req.VariantCount)
	for i := 0; i < req.VariantCount; i++ {
		platform := req.Platforms[i%len(req.Platforms)]
		limit := limitFor(platform)

		headline := truncate(adHeadline(profile, i), limit.Headline)
		primary := truncate(adPrimaryText(profile, req), limit.PrimaryText)

		variants = append(variants, content.AdCopyVariant{
			Platform:     platform,
			Headline:     headline,
			PrimaryText:  primary,
			CallToAction: adCallToAction(profile),
			Description:  truncate(primary, 100),
			CharacterCount: map[string]int{
				"headline":     len(headline),
				"primary_text": len(primary),
			},
		})
	}
	return &content.AdCopySet{Variants: variants}, nil
}

// GenerateSocialCaptions writes one caption per social platform in the
// request, with hashtags derived from the profile's keywords and themes.
func (s *TemplateSuite) GenerateSocialCaptions(ctx context.Context, profile *extraction.BrandProfile, req content.Request) (*content.SocialCaptionSet, error) {
	if profile == nil {
		return nil, &GenerationError{ContentType: string(content.TypeSocialCaptions), Message: "brand profile is required"}
	}
	req.Normalize()

	platforms := make([]string, 0, len(req.Platforms))
	for _, platform := range req.Platforms {
		if socialPlatforms[platform] {
			platforms = append(platforms, platform)
		}
	}
	if len(platforms) == 0 {
		platforms = defaultSocialPlatforms
	}

	hashtags := hashtagsFor(profile)
	captions := make([]content.SocialCaption, 0, len(platforms))
	for _, platform := range platforms {
		captions = append(captions, content.SocialCaption{
			Platform: platform,
			Text:     captionFor(profile, platform),
			Hashtags: hashtags,
		})
	}
	return &content.SocialCaptionSet{Captions: captions}, nil
}

// imageBrief describes one image slot the suite always fills.
type imageBrief struct {
	Kind        string
	Style       string
	AspectRatio string
}

var imageBriefs = []imageBrief{
	{Kind: "hero image", Style: "cinematic, professional photography, lifestyle", AspectRatio: "16:9"},
	{Kind: "social post image", Style: "trendy, colorful, social media optimized", AspectRatio: "1:1"},
	{Kind: "ad creative", Style: "persuasive, clean, conversion-focused", AspectRatio: "2:1"},
}

var productBrief = imageBrief{Kind: "product showcase", Style: "clean, minimalist, product photography", AspectRatio: "1:1"}

// GenerateStaticImages produces creative briefs for a hero image, a social
// post and an ad creative, plus a product showcase when the profile lists
// products.
func (s *TemplateSuite) GenerateStaticImages(ctx context.Context, profile *extraction.BrandProfile, req content.Request) ([]content.ImageAsset, error) {
	if profile == nil {
		return nil, &GenerationError{ContentType: string(content.TypeStaticImages), Message: "brand profile is required"}
	}

	briefs := imageBriefs
	if len(profile.Products) > 0 {
		briefs = append(append([]imageBrief(nil), imageBriefs...), productBrief)
	}

	assets := make([]content.ImageAsset, 0, len(briefs))
	for _, brief := range briefs {
		assets = append(assets, content.ImageAsset{
			Prompt:      imagePrompt(profile, brief.Kind),
			Style:       brief.Style,
			AspectRatio: brief.AspectRatio,
			Caption:     fmt.Sprintf("%s for %s", sentenceCase(brief.Kind), profile.DisplayName()),
		})
	}
	return assets, nil
}

// GenerateUgcScripts writes three short-form creator scripts: a testimonial,
// a demo and a before/after, each with hook, scene directions and a closing
// call to action.
func (s *TemplateSuite) GenerateUgcScripts(ctx context.Context, profile *extraction.BrandProfile, req content.Request) ([]content.UgcScript, error) {
	if profile == nil {
		return nil, &GenerationError{ContentType: string(content.TypeUgcScripts), Message: "brand profile is required"}
	}

	subject := profile.DisplayName()
	if len(profile.Products) > 0 {
		subject = profile.Products[0]
	}

	demoClose := "Side-by-side shot comparing life with and without it"
	if len(profile.ValuePropositions) > 0 {
		demoClose = fmt.Sprintf("Creator calls out %q over the final shot", strings.ToLower(profile.ValuePropositions[0]))
	}

	scripts := []content.UgcScript{
		{
			Title: "My Honest Review",
			Hook:  fmt.Sprintf("I was skeptical about %s, so here's my honest take.", subject),
			Scenes: []string{
				"Medium shot, creator explains the problem they were stuck with",
				fmt.Sprintf("Close-up of %s while the creator shares what changed", subject),
				"Creator reacts to the result on camera, genuine and unpolished",
			},
			CallToAction:    "Tell me in the comments if you've tried it",
			DurationSeconds: 30,
		},
		{
			Title: "Let Me Show You How This Works",
			Hook:  fmt.Sprintf("Three things you didn't know %s could do.", subject),
			Scenes: []string{
				"Fast cuts of the creator setting up in their own space",
				fmt.Sprintf("Hands-on demo of %s with voiceover explaining each step", subject),
				demoClose,
			},
			CallToAction:    adCallToAction(profile),
			DurationSeconds: 25,
		},
		{
			Title: "The Results Speak for Themselves",
			Hook:  "I gave it two weeks. Here's the before and after.",
			Scenes: []string{
				"Quick flash of the starting point, dated on screen",
				"Jump cut to the after, same framing and lighting",
			},
			CallToAction:    "Follow for the full breakdown",
			DurationSeconds: 15,
		},
	}
	return scripts, nil
}

// GenerateEmailAssets writes a three-email starter sequence: welcome,
// spotlight and offer.
func (s *TemplateSuite) GenerateEmailAssets(ctx context.Context, profile *extraction.BrandProfile, req content.Request) ([]content.EmailAsset, error) {
	if profile == nil {
		return nil, &GenerationError{ContentType: string(content.TypeEmailCreative), Message: "brand profile is required"}
	}

	return []content.EmailAsset{
		welcomeEmail(profile),
		spotlightEmail(profile),
		offerEmail(profile),
	}, nil
}

func welcomeEmail(profile *extraction.BrandProfile) content.EmailAsset {
	name := profile.DisplayName()

	var body strings.Builder
	fmt.Fprintf(&body, "Thanks for joining %s.", name)
	if profile.Description != "" {
		body.WriteString(" ")
		body.WriteString(ensurePeriod(profile.Description))
	}
	if len(profile.ValuePropositions) > 0 {
		body.WriteString("\n\nWhy people stay:\n")
		for i, vp := range profile.ValuePropositions {
			if i == 3 {
				break
			}
			fmt.Fprintf(&body, "- %s\n", sentenceCase(vp))
		}
	}

	preview := "Here's what to expect from us."
	if profile.Description != "" {
		preview = truncate(ensurePeriod(profile.Description), 90)
	}

	return content.EmailAsset{
		Subject:      truncate(fmt.Sprintf("Welcome to %s", name), 50),
		PreviewText:  preview,
		Heading:      "Glad you're here",
		Body:         body.String(),
		CallToAction: "Get Started",
	}
}

func spotlightEmail(profile *extraction.BrandProfile) content.EmailAsset {
	name := profile.DisplayName()

	if len(profile.Products) == 0 {
		body := fmt.Sprintf("Every brand starts somewhere. %s", ensurePeriod(orDefault(profile.Description, fmt.Sprintf("%s was built to do one thing well", name))))
		if profile.TargetAudience != "" {
			body += fmt.Sprintf(" Today we get to serve %s.", profile.TargetAudience)
		}
		return content.EmailAsset{
			Subject:      truncate(fmt.Sprintf("The story behind %s", name), 50),
			PreviewText:  "A quick look at why we do this.",
			Heading:      "Where it all started",
			Body:         body,
			CallToAction: "Read Our Story",
		}
	}

	product := profile.Products[0]
	var body strings.Builder
	fmt.Fprintf(&body, "%s is one of the things we're proudest of.", sentenceCase(product))
	if len(profile.ValuePropositions) > 0 {
		fmt.Fprintf(&body, " %s", ensurePeriod(sentenceCase(profile.ValuePropositions[0])))
	}
	if len(profile.Products) > 1 {
		fmt.Fprintf(&body, " And it's just the start: there's also %s.", strings.Join(profile.Products[1:], ", "))
	}

	return content.EmailAsset{
		Subject:      truncate(fmt.Sprintf("A closer look at %s", product), 50),
		PreviewText:  truncate(fmt.Sprintf("Why %s keeps coming up.", product), 90),
		Heading:      fmt.Sprintf("Spotlight: %s", product),
		Body:         body.String(),
		CallToAction: "See It in Action",
	}
}

func offerEmail(profile *extraction.BrandProfile) content.EmailAsset {
	name := profile.DisplayName()

	subject := fmt.Sprintf("A closer look at what %s can do", name)
	heading := "Ready when you are"
	switch profile.Pricing.Model {
	case extraction.PricingSubscription:
		subject = "Your free trial is waiting"
		heading = "Try it on us"
	case extraction.PricingTiered:
		subject = "Find the plan that fits"
		heading = "Pick your plan"
	case extraction.PricingOneTime:
		subject = fmt.Sprintf("Something from %s for you", name)
		heading = "Treat yourself"
	}

	body := fmt.Sprintf("You've seen what %s is about.", name)
	if profile.TargetAudience != "" {
		body += fmt.Sprintf(" We built this for %s, and we'd love for you to try it.", profile.TargetAudience)
	} else {
		body += " Now's a good time to see it for yourself."
	}

	return content.EmailAsset{
		Subject:      truncate(subject, 50),
		PreviewText:  "No pressure, just a nudge.",
		Heading:      heading,
		Body:         body,
		CallToAction: adCallToAction(profile),
	}
}

// adHeadline rotates through headline angles so variants do not repeat:
// value propositions first, then products, then the brand itself.
func adHeadline(profile *extraction.BrandProfile, variant int) string {
	var candidates []string
	for _, vp := range profile.ValuePropositions {
		candidates = append(candidates, sentenceCase(vp))
	}
	for _, product := range profile.Products {
		candidates = append(candidates, fmt.Sprintf("Meet %s", product))
	}
	candidates = append(candidates, fmt.Sprintf("Discover %s", profile.DisplayName()))
	return candidates[variant%len(candidates)]
}

func adPrimaryText(profile *extraction.BrandProfile, req content.Request) string {
	var parts []string
	if profile.Description != "" {
		parts = append(parts, ensurePeriod(profile.Description))
	}
	audience := req.Audience
	if audience == "" {
		audience = profile.TargetAudience
	}
	if audience != "" {
		parts = append(parts, ensurePeriod("Built for "+audience))
	}
	if len(parts) == 0 {
		parts = append(parts, fmt.Sprintf("Discover what %s can do for you.", profile.DisplayName()))
	}
	return strings.Join(parts, " ")
}

// adCallToAction picks a call to action that matches how the brand sells.
func adCallToAction(profile *extraction.BrandProfile) string {
	switch profile.Pricing.Model {
	case extraction.PricingSubscription:
		return "Start Free Trial"
	case extraction.PricingTiered:
		return "Compare Plans"
	case extraction.PricingOneTime:
		return "Shop Now"
	}
	return "Learn More"
}

// captionFor writes one caption in the platform's register. Casual and
// friendly brands get a lighter voice than professional or formal ones.
func captionFor(profile *extraction.BrandProfile, platform string) string {
	lead := fmt.Sprintf("Discover %s.", profile.DisplayName())
	if profile.Description != "" {
		lead = ensurePeriod(sentenceCase(profile.Description))
	}

	switch platform {
	case "linkedin":
		return lead + " What has your experience been? Share your thoughts in the comments."
	case "tiktok":
		return lead + " Have you tried it yet?"
	default:
		closer := " What do you think? Drop a comment below!"
		if profile.Tone == extraction.ToneProfessional || profile.Tone == extraction.ToneFormal {
			closer = " Learn more at the link in our bio."
		}
		text := lead + closer
		if profile.Tone == extraction.ToneCasual || profile.Tone == extraction.ToneFriendly {
			text = "✨ " + text
		}
		return text
	}
}

// hashtagsFor builds hashtags from extracted keywords and themes, lowercased
// with punctuation stripped, first occurrence wins.
func hashtagsFor(profile *extraction.BrandProfile) []string {
	var tags []string
	seen := make(map[string]struct{})
	for _, source := range [][]string{profile.Keywords, profile.Themes} {
		for _, term := range source {
			tag := hashtagify(term)
			if tag == "" {
				continue
			}
			if _, dup := seen[tag]; dup {
				continue
			}
			seen[tag] = struct{}{}
			tags = append(tags, tag)
			if len(tags) == maxHashtags {
				return tags
			}
		}
	}
	return tags
}

func hashtagify(term string) string {
	var sb strings.Builder
	for _, r := range strings.ToLower(term) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			sb.WriteRune(r)
		}
	}
	if sb.Len() < 3 {
		return ""
	}
	return "#" + sb.String()
}

// imagePrompt follows the short prompt form image models respond to best:
// subject first, then style and output directives.
func imagePrompt(profile *extraction.BrandProfile, kind string) string {
	subject := profile.DisplayName()
	if len(profile.Products) > 0 {
		subject = profile.Products[0]
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "High-quality %s showcasing %s", kind, subject)
	if profile.Description != "" {
		fmt.Fprintf(&sb, ": %s", strings.TrimRight(profile.Description, "."))
	}
	sb.WriteString(". Modern professional style, vibrant colors, clear composition, visually engaging.")
	if len(profile.Colors) > 0 {
		fmt.Fprintf(&sb, " Brand palette: %s.", strings.Join(profile.Colors, ", "))
	}
	return sb.String()
}

// truncate cuts s to at most max runes, preferring a word boundary over a
// mid-word cut.
func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	cut := string(runes[:max])
	if idx := strings.LastIndex(cut, " "); idx > 0 {
		cut = cut[:idx]
	}
	return strings.TrimRight(cut, " ,.;:")
}

func sentenceCase(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return s
	}
	runes := []rune(s)
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}

func ensurePeriod(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return s
	}
	switch s[len(s)-1] {
	case '.', '!', '?':
		return s
	}
	return s + "."
}

func orDefault(s, fallback string) string {
	if strings.TrimSpace(s) == "" {
		return fallback
	}
	return s
}
