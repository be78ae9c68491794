// Package pipeline orchestrates a content generation run. A Registry holds
// the ordered steps, a Runner executes them strictly in sequence against one
// shared State, and Classify grades the finished run. Individual step
// failures are recorded on the state and never abort the run; only setup
// problems detected before the first step are fatal.
package pipeline

import (
	"time"

	"github.com/google/uuid"

	"github.com/marcus/brandsmith/internal/content"
	"github.com/marcus/brandsmith/internal/extraction"
)

// StepError records one failed step. Failures accumulate here instead of
// aborting the run.
type StepError struct {
	Step    string `json:"step"`
	Message string `json:"message"`
}

// State is the single shared record a run reads from and writes to. The
// runner hands it to every step in order, and each content step populates
// only its own output slot. Once the run finishes the state is treated as
// read-only.
type State struct {
	RunID     uuid.UUID                `json:"run_id"`
	Timestamp time.Time                `json:"timestamp"`
	Profile   *extraction.BrandProfile `json:"brand_profile,omitempty"`
	Manifest  content.Manifest         `json:"requested_types"`

	// Analysis outputs consumed by the generation steps.
	KeyMessages    []string `json:"key_messages,omitempty"`
	ContentPillars []string `json:"content_pillars,omitempty"`

	// One output slot per content type. A slot stays empty unless its type
	// was requested and its step succeeded.
	AdCopy         *content.AdCopySet        `json:"ad_copy,omitempty"`
	SocialCaptions *content.SocialCaptionSet `json:"social_captions,omitempty"`
	Images         []content.ImageAsset      `json:"static_images,omitempty"`
	UgcScripts     []content.UgcScript       `json:"ugc_scripts,omitempty"`
	EmailAssets    []content.EmailAsset      `json:"email_creative,omitempty"`

	FinalPackage *FinalPackage `json:"final_package,omitempty"`

	Errors []StepError `json:"errors,omitempty"`
}

// NewState seeds a fresh state for one run. States are never reused across
// runs.
func NewState(profile *extraction.BrandProfile, manifest content.Manifest) *State {
	return &State{
		RunID:     uuid.New(),
		Timestamp: time.Now().UTC(),
		Profile:   profile,
		Manifest:  manifest,
	}
}

// RecordError appends a step failure without stopping the run.
func (s *State) RecordError(step string, err error) {
	if err == nil {
		return
	}
	s.Errors = append(s.Errors, StepError{Step: step, Message: err.Error()})
}

// HasOutput reports whether the slot for ct holds at least one asset.
func (s *State) HasOutput(ct content.ContentType) bool {
	return s.OutputCount(ct) > 0
}

// OutputCount returns the number of assets in the slot for ct.
func (s *State) OutputCount(ct content.ContentType) int {
	switch ct {
	case content.TypeAdCopy:
		return s.AdCopy.Count()
	case content.TypeSocialCaptions:
		return s.SocialCaptions.Count()
	case content.TypeStaticImages:
		return len(s.Images)
	case content.TypeUgcScripts:
		return len(s.UgcScripts)
	case content.TypeEmailCreative:
		return len(s.EmailAssets)
	}
	return 0
}

// PopulatedTypes lists the content types with at least one asset, in
// canonical order.
func (s *State) PopulatedTypes() []content.ContentType {
	var types []content.ContentType
	for _, ct := range content.AllContentTypes() {
		if s.HasOutput(ct) {
			types = append(types, ct)
		}
	}
	return types
}

// TotalAssets sums the assets across every slot.
func (s *State) TotalAssets() int {
	total := 0
	for _, ct := range content.AllContentTypes() {
		total += s.OutputCount(ct)
	}
	return total
}
