package pipeline

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/marcus/brandsmith/internal/content"
	"github.com/marcus/brandsmith/internal/extraction"
)

// Step names used by the default registry.
const (
	StepAnalyzeRequirements    = "analyze_requirements"
	StepGenerateAdCopy         = "generate_ad_copy"
	StepGenerateSocialCaptions = "generate_social_captions"
	StepGenerateStaticImages   = "generate_static_images"
	StepGenerateUgcScripts     = "generate_ugc_scripts"
	StepGenerateEmailAssets    = "generate_email_assets"
	StepPackageAssets          = "package_assets"
)

// DefaultRegistry wires the standard run: one analysis step, one generation
// step per content type gated on the manifest, and packaging last and
// unconditional.
func DefaultRegistry(suite content.Suite, packager Packager, req content.Request) *Registry {
	r := NewRegistry()

	must(r.Register(Step{
		Name:   StepAnalyzeRequirements,
		Action: analyzeRequirements,
	}))

	must(r.Register(Step{
		Name:        StepGenerateAdCopy,
		ContentType: content.TypeAdCopy,
		Predicate:   wantsType(content.TypeAdCopy),
		DependsOn:   []string{StepAnalyzeRequirements},
		Action: func(ctx context.Context, s *State) error {
			set, err := suite.GenerateAdCopy(ctx, s.Profile, req)
			if err != nil {
				return err
			}
			s.AdCopy = set
			return nil
		},
	}))

	must(r.Register(Step{
		Name:        StepGenerateSocialCaptions,
		ContentType: content.TypeSocialCaptions,
		Predicate:   wantsType(content.TypeSocialCaptions),
		DependsOn:   []string{StepAnalyzeRequirements},
		Action: func(ctx context.Context, s *State) error {
			set, err := suite.GenerateSocialCaptions(ctx, s.Profile, req)
			if err != nil {
				return err
			}
			s.SocialCaptions = set
			return nil
		},
	}))

	must(r.Register(Step{
		Name:        StepGenerateStaticImages,
		ContentType: content.TypeStaticImages,
		Predicate:   wantsType(content.TypeStaticImages),
		DependsOn:   []string{StepAnalyzeRequirements},
		Action: func(ctx context.Context, s *State) error {
			images, err := suite.GenerateStaticImages(ctx, s.Profile, req)
			if err != nil {
				return err
			}
			s.Images = images
			return nil
		},
	}))

	must(r.Register(Step{
		Name:        StepGenerateUgcScripts,
		ContentType: content.TypeUgcScripts,
		Predicate:   wantsType(content.TypeUgcScripts),
		DependsOn:   []string{StepAnalyzeRequirements},
		Action: func(ctx context.Context, s *State) error {
			scripts, err := suite.GenerateUgcScripts(ctx, s.Profile, req)
			if err != nil {
				return err
			}
			s.UgcScripts = scripts
			return nil
		},
	}))

	must(r.Register(Step{
		Name:        StepGenerateEmailAssets,
		ContentType: content.TypeEmailCreative,
		Predicate:   wantsType(content.TypeEmailCreative),
		DependsOn:   []string{StepAnalyzeRequirements},
		Action: func(ctx context.Context, s *State) error {
			assets, err := suite.GenerateEmailAssets(ctx, s.Profile, req)
			if err != nil {
				return err
			}
			s.EmailAssets = assets
			return nil
		},
	}))

	must(r.Register(Step{
		Name: StepPackageAssets,
		Action: func(ctx context.Context, s *State) error {
			pkg, err := packager.Package(s)
			if err != nil {
				return err
			}
			s.FinalPackage = pkg
			return nil
		},
	}))

	return r
}

func wantsType(ct content.ContentType) func(*State) bool {
	return func(s *State) bool {
		return s.Manifest.Contains(ct)
	}
}

// must panics on registration errors. DefaultRegistry builds a static step
// list, so a failure here is a programming mistake, not a runtime condition.
func must(err error) {
	if err != nil {
		panic(err)
	}
}

const (
	maxKeyMessages    = 5
	maxContentPillars = 4
)

// contentPillarCues scores recurring marketing angles against the extracted
// profile. Declaration order breaks score ties.
var contentPillarCues = []struct {
	Name string
	Cues []string
}{
	{"product_showcase", []string{"product", "quality", "premium", "features", "craftsmanship"}},
	{"social_proof", []string{"trusted", "customers", "reviews", "testimonials", "award"}},
	{"education", []string{"learn", "guide", "how", "tips", "training"}},
	{"innovation", []string{"innovative", "technology", "smart", "modern", "digital"}},
	{"lifestyle", []string{"lifestyle", "everyday", "home", "family", "style"}},
	{"community", []string{"community", "together", "local", "support"}},
}

// analyzeRequirements distills the extracted profile into the key messages
// and content pillars the generation steps lean on.
func analyzeRequirements(_ context.Context, s *State) error {
	if s.Profile == nil {
		return errors.New("no brand profile on state")
	}
	s.KeyMessages = keyMessages(s.Profile)
	s.ContentPillars = contentPillars(s.Profile)
	return nil
}

func keyMessages(p *extraction.BrandProfile) []string {
	var msgs []string
	if p.Description != "" {
		msgs = append(msgs, p.Description)
	}
	for _, vp := range p.ValuePropositions {
		if len(msgs) >= maxKeyMessages {
			break
		}
		msgs = append(msgs, vp)
	}
	if len(p.Products) > 0 && len(msgs) < maxKeyMessages {
		limit := len(p.Products)
		if limit > 3 {
			limit = 3
		}
		msgs = append(msgs, fmt.Sprintf("Featuring %s", strings.Join(p.Products[:limit], ", ")))
	}
	return msgs
}

func contentPillars(p *extraction.BrandProfile) []string {
	tokens := profileTokens(p)

	type scored struct {
		name  string
		score int
		order int
	}
	var hits []scored
	for i, pillar := range contentPillarCues {
		score := 0
		for _, cue := range pillar.Cues {
			if tokens[cue] {
				score++
			}
		}
		if score > 0 {
			hits = append(hits, scored{name: pillar.Name, score: score, order: i})
		}
	}
	sort.Slice(hits, func(a, b int) bool {
		if hits[a].score != hits[b].score {
			return hits[a].score > hits[b].score
		}
		return hits[a].order < hits[b].order
	})
	if len(hits) > maxContentPillars {
		hits = hits[:maxContentPillars]
	}
	if len(hits) == 0 {
		return nil
	}
	names := make([]string, len(hits))
	for i, h := range hits {
		names[i] = h.name
	}
	return names
}

// profileTokens lowers and tokenizes the profile's textual fields so pillar
// cues match whole words only.
func profileTokens(p *extraction.BrandProfile) map[string]bool {
	tokens := make(map[string]bool)
	add := func(text string) {
		for _, w := range strings.Fields(strings.ToLower(text)) {
			if t := strings.Trim(w, ".,!?;:\"'()"); t != "" {
				tokens[t] = true
			}
		}
	}
	add(p.Description)
	add(p.TargetAudience)
	for _, v := range p.Keywords {
		add(v)
	}
	for _, v := range p.Themes {
		add(v)
	}
	for _, v := range p.ValuePropositions {
		add(v)
	}
	if len(p.Products) > 0 {
		tokens["product"] = true
	}
	return tokens
}
