// Package packaging assembles the final deliverable bundle from a finished
// run. The builder is pure: it reads the run state, never mutates it, and
// produces a package even when every generation step failed.
package packaging

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/marcus/brandsmith/internal/content"
	"github.com/marcus/brandsmith/internal/pipeline"
)

const packageVersion = "1.0"

// Builder implements pipeline.Packager.
type Builder struct{}

// NewBuilder returns a ready-to-use package builder.
func NewBuilder() *Builder {
	return &Builder{}
}

// Package bundles everything the run produced, plus usage guidance and the
// run's recorded failures, into one export-ready structure.
func (b *Builder) Package(state *pipeline.State) (*pipeline.FinalPackage, error) {
	now := time.Now().UTC()

	pkg := &pipeline.FinalPackage{
		PackageID:          packageID(now, state),
		RunID:              state.RunID,
		CreatedAt:          now,
		Version:            packageVersion,
		Status:             pipeline.Classify(state),
		Summary:            summarize(state),
		UsageGuidelines:    guidelines(state),
		ExportFormats:      []string{"json"},
		ReadyForDeployment: state.TotalAssets() > 0 && len(state.Errors) == 0,
		Errors:             state.Errors,
	}
	if state.Profile != nil {
		pkg.BrandName = state.Profile.Name
	}
	return pkg, nil
}

// packageID combines a second-resolution timestamp with a fragment of the
// run id so two runs in the same second still get distinct ids.
func packageID(now time.Time, state *pipeline.State) string {
	runTag := strings.ReplaceAll(state.RunID.String(), "-", "")
	if len(runTag) > 8 {
		runTag = runTag[:8]
	}
	return fmt.Sprintf("content_pkg_%s_%s", now.Format("20060102_150405"), runTag)
}

func summarize(state *pipeline.State) pipeline.ContentSummary {
	summary := pipeline.ContentSummary{
		TotalAssets:      state.TotalAssets(),
		GeneratedTypes:   state.PopulatedTypes(),
		PlatformsCovered: platformsCovered(state),
	}
	counts := make(map[string]int)
	for _, ct := range content.AllContentTypes() {
		if n := state.OutputCount(ct); n > 0 {
			counts[string(ct)] = n
		}
	}
	if len(counts) > 0 {
		summary.AssetCounts = counts
	}
	return summary
}

// platformsCovered collects the distinct platforms named by the generated
// assets, sorted for stable output. Email assets count as the "email"
// channel since they carry no platform of their own.
func platformsCovered(state *pipeline.State) []string {
	seen := make(map[string]bool)
	add := func(platform string) {
		if platform != "" {
			seen[platform] = true
		}
	}

	if state.AdCopy != nil {
		for _, v := range state.AdCopy.Variants {
			add(v.Platform)
		}
	}
	if state.SocialCaptions != nil {
		for _, c := range state.SocialCaptions.Captions {
			add(c.Platform)
		}
	}
	for _, img := range state.Images {
		add(img.Platform)
	}
	if len(state.EmailAssets) > 0 {
		add("email")
	}

	if len(seen) == 0 {
		return nil
	}
	platforms := make([]string, 0, len(seen))
	for p := range seen {
		platforms = append(platforms, p)
	}
	sort.Strings(platforms)
	return platforms
}

// guidelines returns usage guidance keyed by channel. The general entry is
// always present; channel entries appear only for channels the run actually
// produced content for.
func guidelines(state *pipeline.State) map[string]string {
	out := map[string]string{
		"general": "Maintain brand consistency across platforms, adapt tone per channel, and review engagement metrics before refreshing assets.",
	}
	if state.HasOutput(content.TypeAdCopy) {
		out["advertising"] = "A/B test copy variants, watch character limits per platform, and comply with each network's ad policies."
	}
	if state.HasOutput(content.TypeSocialCaptions) || state.HasOutput(content.TypeStaticImages) || state.HasOutput(content.TypeUgcScripts) {
		out["social_media"] = "Post during peak engagement hours, respond to comments promptly, and keep UGC-style videos authentic and vertical."
	}
	if state.HasOutput(content.TypeEmailCreative) {
		out["email_marketing"] = "Test subject lines before sending, keep layouts mobile friendly, and always include an unsubscribe link."
	}
	return out
}
