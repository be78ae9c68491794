package generate

import (
	"context"
	"encoding/json"
	"strconv"
	"strings"

	"github.com/marcus/brandsmith/internal/content"
	"github.com/marcus/brandsmith/internal/extraction"
	"github.com/marcus/brandsmith/internal/llm"
	"github.com/marcus/brandsmith/internal/prompts"
	"github.com/marcus/brandsmith/internal/schemas"
)

// llmRoute binds one content type to its prompt, schema, and model tier.
type llmRoute struct {
	PromptKey string
	Schema    string
	Tier      llm.ModelTier
}

// Captions are short so the lite tier is enough; multi-scene scripts need
// the advanced tier to hold structure.
var llmRoutes = map[content.ContentType]llmRoute{
	content.TypeAdCopy:         {PromptKey: prompts.KeyAdCopy, Schema: schemas.AdCopySchema, Tier: llm.TierStandard},
	content.TypeSocialCaptions: {PromptKey: prompts.KeySocialCaptions, Schema: schemas.SocialCaptionsSchema, Tier: llm.TierLite},
	content.TypeStaticImages:   {PromptKey: prompts.KeyStaticImages, Schema: schemas.StaticImagesSchema, Tier: llm.TierStandard},
	content.TypeUgcScripts:     {PromptKey: prompts.KeyUgcScripts, Schema: schemas.UgcScriptsSchema, Tier: llm.TierAdvanced},
	content.TypeEmailCreative:  {PromptKey: prompts.KeyEmailAssets, Schema: schemas.EmailAssetsSchema, Tier: llm.TierStandard},
}

// LLMSuite generates each asset set with a language model. A response must
// be valid JSON matching the published schema for its content type; when the
// call, the parse, or the validation fails the suite delegates to its
// fallback, and only surfaces the error when no fallback is configured.
type LLMSuite struct {
	client   llm.Client
	fallback content.Suite
}

// NewLLMSuite wires a model client to an optional fallback suite. Pass a nil
// fallback to surface generation errors to the caller instead.
func NewLLMSuite(client llm.Client, fallback content.Suite) *LLMSuite {
	return &LLMSuite{client: client, fallback: fallback}
}

func (s *LLMSuite) GenerateAdCopy(ctx context.Context, profile *extraction.BrandProfile, req content.Request) (*content.AdCopySet, error) {
	var set content.AdCopySet
	if err := s.generate(ctx, content.TypeAdCopy, profile, req, &set); err != nil {
		if s.fallback != nil {
			return s.fallback.GenerateAdCopy(ctx, profile, req)
		}
		return nil, err
	}
	return &set, nil
}

func (s *LLMSuite) GenerateSocialCaptions(ctx context.Context, profile *extraction.BrandProfile, req content.Request) (*content.SocialCaptionSet, error) {
	var set content.SocialCaptionSet
	if err := s.generate(ctx, content.TypeSocialCaptions, profile, req, &set); err != nil {
		if s.fallback != nil {
			return s.fallback.GenerateSocialCaptions(ctx, profile, req)
		}
		return nil, err
	}
	return &set, nil
}

func (s *LLMSuite) GenerateStaticImages(ctx context.Context, profile *extraction.BrandProfile, req content.Request) ([]content.ImageAsset, error) {
	var payload struct {
		Images []content.ImageAsset `json:"images"`
	}
	if err := s.generate(ctx, content.TypeStaticImages, profile, req, &payload); err != nil {
		if s.fallback != nil {
			return s.fallback.GenerateStaticImages(ctx, profile, req)
		}
		return nil, err
	}
	return payload.Images, nil
}

func (s *LLMSuite) GenerateUgcScripts(ctx context.Context, profile *extraction.BrandProfile, req content.Request) ([]content.UgcScript, error) {
	var payload struct {
		Scripts []content.UgcScript `json:"scripts"`
	}
	if err := s.generate(ctx, content.TypeUgcScripts, profile, req, &payload); err != nil {
		if s.fallback != nil {
			return s.fallback.GenerateUgcScripts(ctx, profile, req)
		}
		return nil, err
	}
	return payload.Scripts, nil
}

func (s *LLMSuite) GenerateEmailAssets(ctx context.Context, profile *extraction.BrandProfile, req content.Request) ([]content.EmailAsset, error) {
	var payload struct {
		Emails []content.EmailAsset `json:"emails"`
	}
	if err := s.generate(ctx, content.TypeEmailCreative, profile, req, &payload); err != nil {
		if s.fallback != nil {
			return s.fallback.GenerateEmailAssets(ctx, profile, req)
		}
		return nil, err
	}
	return payload.Emails, nil
}

// generate runs the shared prompt, call, validate, decode flow for one
// content type.
func (s *LLMSuite) generate(ctx context.Context, ct content.ContentType, profile *extraction.BrandProfile, req content.Request, out any) error {
	route, ok := llmRoutes[ct]
	if !ok {
		return &GenerationError{ContentType: string(ct), Message: "no generation route"}
	}
	if profile == nil {
		return &GenerationError{ContentType: string(ct), Message: "brand profile is required"}
	}
	if s.client == nil {
		return &GenerationError{ContentType: string(ct), Message: "no model client configured"}
	}

	template, err := prompts.Get(prompts.ContentFile, route.PromptKey)
	if err != nil {
		return &GenerationError{ContentType: string(ct), Message: "loading prompt", Cause: err}
	}
	req.Normalize()
	prompt := prompts.Format(template, promptData(profile, req))

	payload, err := s.client.GenerateJSON(ctx, prompt, route.Tier)
	if err != nil {
		return &GenerationError{ContentType: string(ct), Message: "model call failed", Cause: err}
	}
	if err := schemas.Validate(route.Schema, payload); err != nil {
		return &GenerationError{ContentType: string(ct), Message: "response failed validation", Cause: err}
	}
	if err := json.Unmarshal([]byte(payload), out); err != nil {
		return &GenerationError{ContentType: string(ct), Message: "decoding response", Cause: err}
	}
	return nil
}

// promptData fills every placeholder the content prompt templates use.
// Empty profile fields become neutral phrases rather than blank lines so
// the prompts stay readable.
func promptData(profile *extraction.BrandProfile, req content.Request) map[string]string {
	audience := req.Audience
	if audience == "" {
		audience = profile.TargetAudience
	}
	if audience == "" {
		audience = "general audience"
	}

	tone := string(profile.Tone)
	if tone == "" || profile.Tone == extraction.ToneUnknown {
		tone = "professional"
	}

	return map[string]string{
		"Brand":          profile.DisplayName(),
		"Description":    orDefault(profile.Description, "not provided"),
		"Products":       joinOr(profile.Products, "not specified"),
		"Audience":       audience,
		"Tone":           tone,
		"Keywords":       joinOr(profile.Keywords, "not specified"),
		"Colors":         joinOr(profile.Colors, "not specified"),
		"KeyMessages":    joinOr(profile.ValuePropositions, "not specified"),
		"ContentPillars": joinOr(profile.Themes, "not specified"),
		"Platforms":      strings.Join(req.Platforms, ", "),
		"VariantCount":   strconv.Itoa(req.VariantCount),
	}
}

func joinOr(values []string, fallback string) string {
	if len(values) == 0 {
		return fallback
	}
	return strings.Join(values, ", ")
}

var _ content.Suite = (*TemplateSuite)(nil)
var _ content.Suite = (*LLMSuite)(nil)
