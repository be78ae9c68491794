// Package analyze turns a brand page into an extracted profile. It fans out
// over the page capabilities a text source offers, cleans the text, runs the
// extraction engine, and backfills markup-derived facts the cleaned text
// cannot carry.
package analyze

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/marcus/brandsmith/internal/extraction"
	"github.com/marcus/brandsmith/internal/fetch"
	"github.com/marcus/brandsmith/internal/ingestion"
)

// TextSource is the page capability set the analyzer consumes. The main
// text is required; the other capabilities enrich fields the cleaned text
// usually loses (head metadata, anchor hrefs, stylesheet colors).
type TextSource interface {
	FetchText(ctx context.Context, url string) (string, error)
	FetchMetadata(ctx context.Context, url string) (*fetch.PageMetadata, error)
	FetchSocialLinks(ctx context.Context, url string) (map[string]string, error)
	FetchStylesheetColors(ctx context.Context, url string) ([]string, error)
}

// Analyzer runs extraction against one text source.
type Analyzer struct {
	Source TextSource
	Engine *extraction.Engine
}

// New returns an analyzer over the given source using the default pattern
// library.
func New(source TextSource) *Analyzer {
	return &Analyzer{Source: source, Engine: extraction.NewDefaultEngine()}
}

// AnalyzeURL fetches the page's capabilities concurrently and extracts a
// profile from the cleaned text. Only the main text fetch is fatal; a failed
// metadata, social-link or stylesheet fetch degrades to the corresponding
// profile fields staying absent.
func (a *Analyzer) AnalyzeURL(ctx context.Context, url string) (*extraction.BrandProfile, *ingestion.Metadata, error) {
	var (
		text   string
		meta   *fetch.PageMetadata
		social map[string]string
		colors []string
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		text, err = a.Source.FetchText(gctx, url)
		return err
	})
	g.Go(func() error {
		meta, _ = a.Source.FetchMetadata(gctx, url)
		return nil
	})
	g.Go(func() error {
		social, _ = a.Source.FetchSocialLinks(gctx, url)
		return nil
	})
	g.Go(func() error {
		colors, _ = a.Source.FetchStylesheetColors(gctx, url)
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, nil, fmt.Errorf("fetching page text: %w", err)
	}

	cleaned := ingestion.CleanText(text)
	profile := a.Engine.Extract(cleaned, url)
	mergeMarkup(profile, meta, social, colors)

	return profile, ingestion.NewMetadata(cleaned, url), nil
}

// AnalyzeText extracts a profile from already-available text (a saved page
// or stdin). sourceURL is optional and only feeds the domain name fallback.
func (a *Analyzer) AnalyzeText(text, sourceURL string) (*extraction.BrandProfile, *ingestion.Metadata) {
	cleaned := ingestion.CleanText(text)
	profile := a.Engine.Extract(cleaned, sourceURL)
	return profile, ingestion.NewMetadata(cleaned, sourceURL)
}

// mergeMarkup backfills profile fields from page markup. Markup only fills
// fields the text extraction left empty; extracted values always win.
func mergeMarkup(profile *extraction.BrandProfile, meta *fetch.PageMetadata, social map[string]string, colors []string) {
	if len(profile.SocialLinks) == 0 && len(social) > 0 {
		profile.SocialLinks = social
	}
	if len(profile.Colors) == 0 && len(colors) > 0 {
		profile.Colors = colors
	}
	if meta == nil {
		return
	}
	if profile.Name == "" {
		if meta.SiteName != "" {
			profile.Name = meta.SiteName
		} else if meta.Title != "" {
			profile.Name = meta.Title
		}
	}
	if profile.Description == "" && meta.Description != "" {
		profile.Description = meta.Description
	}
	if len(profile.Keywords) == 0 && len(meta.Keywords) > 0 {
		profile.Keywords = meta.Keywords
	}
}
