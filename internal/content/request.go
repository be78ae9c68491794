package content

import (
	"context"

	"github.com/go-playground/validator/v10"

	"github.com/marcus/brandsmith/internal/extraction"
)

// DefaultVariantCount is used when a request does not say how many ad copy
// variants to produce.
const DefaultVariantCount = 3

// DefaultPlatforms is the platform spread used when a request names none.
var DefaultPlatforms = []string{"facebook", "instagram", "google"}

// Request carries the knobs shared by all generators for one run.
type Request struct {
	Types        []ContentType `json:"types" validate:"required,min=1,dive,oneof=ad_copy social_captions static_images ugc_scripts email_creative"`
	Platforms    []string      `json:"platforms,omitempty" validate:"omitempty,dive,oneof=facebook instagram google linkedin twitter tiktok"`
	VariantCount int           `json:"variant_count,omitempty" validate:"omitempty,min=1,max=10"`
	Campaign     string        `json:"campaign,omitempty" validate:"omitempty,max=120"`
	Audience     string        `json:"audience,omitempty" validate:"omitempty,max=200"`
}

// Validate validates the Request using the validator.
func (r *Request) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// Normalize fills unset fields with defaults. It does not touch Types.
func (r *Request) Normalize() {
	if r.VariantCount == 0 {
		r.VariantCount = DefaultVariantCount
	}
	if len(r.Platforms) == 0 {
		r.Platforms = append([]string(nil), DefaultPlatforms...)
	}
}

// Manifest returns the requested types as a set.
func (r *Request) Manifest() Manifest {
	return NewManifest(r.Types...)
}

// Suite is the set of generation capabilities the pipeline steps call into,
// one per content type. Every call is synchronous; a returned error surfaces
// as the calling step's failure.
type Suite interface {
	GenerateAdCopy(ctx context.Context, profile *extraction.BrandProfile, req Request) (*AdCopySet, error)
	GenerateSocialCaptions(ctx context.Context, profile *extraction.BrandProfile, req Request) (*SocialCaptionSet, error)
	GenerateStaticImages(ctx context.Context, profile *extraction.BrandProfile, req Request) ([]ImageAsset, error)
	GenerateUgcScripts(ctx context.Context, profile *extraction.BrandProfile, req Request) ([]UgcScript, error)
	GenerateEmailAssets(ctx context.Context, profile *extraction.BrandProfile, req Request) ([]EmailAsset, error)
}
