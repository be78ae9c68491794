package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/marcus/brandsmith/internal/config"
	"github.com/marcus/brandsmith/internal/content"
	"github.com/marcus/brandsmith/internal/extraction"
	"github.com/marcus/brandsmith/internal/observability"
	"github.com/marcus/brandsmith/internal/packaging"
	"github.com/marcus/brandsmith/internal/pipeline"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate marketing content from an extracted brand profile",
	Long:  "Runs the content pipeline against a previously extracted brand profile, producing the requested asset kinds and bundling them into a final package. Without an API key, deterministic template generation is used.",
	RunE:  runGenerate,
}

var (
	generateProfile  string
	generateTypes    string
	generatePlatform string
	generateVariants int
	generateCampaign string
	generateAudience string
	generateAPIKey   string
	generateOutput   string
	generateVerbose  bool
	generateConfig   string
)

func init() {
	generateCmd.Flags().StringVarP(&generateProfile, "profile", "p", "", "Path to brand profile JSON (required)")
	generateCmd.Flags().StringVarP(&generateTypes, "types", "t", "", `Content types to generate, comma-separated or "all"`)
	generateCmd.Flags().StringVar(&generatePlatform, "platforms", "", "Target platforms, comma-separated")
	generateCmd.Flags().IntVar(&generateVariants, "variants", 0, "Ad copy variants per platform")
	generateCmd.Flags().StringVar(&generateCampaign, "campaign", "", "Campaign name woven into generated copy")
	generateCmd.Flags().StringVar(&generateAudience, "audience", "", "Audience override for generation")
	generateCmd.Flags().StringVar(&generateAPIKey, "api-key", "", "Gemini API key (overrides GEMINI_API_KEY env var)")
	generateCmd.Flags().StringVarP(&generateOutput, "output", "o", "", "Write the run result JSON to this file instead of stdout")
	generateCmd.Flags().BoolVarP(&generateVerbose, "verbose", "v", false, "Print step progress and a package summary to stderr")
	generateCmd.Flags().StringVar(&generateConfig, "config", "", "Path to JSON config file")

	if err := generateCmd.MarkFlagRequired("profile"); err != nil {
		panic(fmt.Sprintf("failed to mark profile flag as required: %v", err))
	}

	rootCmd.AddCommand(generateCmd)
}

func runGenerate(_ *cobra.Command, _ []string) error {
	cfg, err := layeredConfig(generateConfig)
	if err != nil {
		return err
	}
	if generateTypes != "" {
		cfg.Types = generateTypes
	}
	if generatePlatform != "" {
		cfg.Platforms = generatePlatform
	}
	if generateVariants != 0 {
		cfg.VariantCount = generateVariants
	}
	if generateCampaign != "" {
		cfg.Campaign = generateCampaign
	}
	if generateAudience != "" {
		cfg.Audience = generateAudience
	}
	if generateAPIKey != "" {
		cfg.APIKey = generateAPIKey
	}
	if generateOutput != "" {
		cfg.Output = generateOutput
	}
	if generateVerbose {
		cfg.Verbose = true
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	profile, err := readProfile(generateProfile)
	if err != nil {
		return err
	}

	ctx := context.Background()
	state, err := executePipeline(ctx, cfg, profile)
	if err != nil {
		return err
	}

	if cfg.Output != "" {
		if err := writeJSONFile(cfg.Output, state); err != nil {
			return err
		}
		_, _ = fmt.Fprintf(os.Stdout, "Result: %s\n", cfg.Output)
		return nil
	}
	return printJSON(state)
}

// executePipeline builds the request, suite and registry from the effective
// config and runs the content pipeline against the profile. Shared by the
// generate and run commands.
func executePipeline(ctx context.Context, cfg config.Config, profile *extraction.BrandProfile) (*pipeline.State, error) {
	types, err := content.ParseContentTypes(cfg.Types)
	if err != nil {
		return nil, err
	}

	req := content.Request{
		Types:        types,
		Platforms:    splitCSV(cfg.Platforms),
		VariantCount: cfg.VariantCount,
		Campaign:     cfg.Campaign,
		Audience:     cfg.Audience,
	}
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("invalid generation request: %w", err)
	}
	req.Normalize()

	suite, closeSuite, err := buildSuite(ctx, cfg.APIKey)
	if err != nil {
		return nil, err
	}
	defer closeSuite()

	registry := pipeline.DefaultRegistry(suite, packaging.NewBuilder(), req)
	runner := pipeline.NewRunner(registry)

	printer := observability.NewPrinter(os.Stderr)
	if cfg.Verbose {
		runner.OnProgress = printer.PrintStepEvent
	}

	state, err := runner.Run(ctx, profile, req.Manifest())
	if err != nil {
		return nil, err
	}

	outcome := pipeline.Classify(state)
	if cfg.Verbose {
		printer.PrintFinalPackage(state.FinalPackage)
	}
	switch outcome {
	case pipeline.OutcomeEmpty:
		_, _ = fmt.Fprintf(os.Stderr, "Warning: no requested content could be generated (%d errors)\n", len(state.Errors))
	case pipeline.OutcomePartial:
		_, _ = fmt.Fprintf(os.Stderr, "Note: run finished partially (%d errors)\n", len(state.Errors))
	}

	return state, nil
}

func readProfile(path string) (*extraction.BrandProfile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read profile %s: %w", path, err)
	}
	var profile extraction.BrandProfile
	if err := json.Unmarshal(data, &profile); err != nil {
		return nil, fmt.Errorf("failed to parse profile JSON: %w", err)
	}
	return &profile, nil
}
