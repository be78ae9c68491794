package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/marcus/brandsmith/internal/analyze"
	"github.com/marcus/brandsmith/internal/extraction"
	"github.com/marcus/brandsmith/internal/fetch"
	"github.com/marcus/brandsmith/internal/observability"
	"github.com/marcus/brandsmith/internal/pipeline"
	"github.com/marcus/brandsmith/internal/store"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Analyze a brand site and generate content in one pass",
	Long:  "End-to-end run: fetches and analyzes the brand page, generates the requested content types, packages the result, and records the run when a database is configured.",
	RunE:  runRun,
}

var (
	runURL      string
	runTypes    string
	runPlatform string
	runVariants int
	runCampaign string
	runAudience string
	runPatterns string
	runAPIKey   string
	runOutput   string
	runBrowser  bool
	runVerbose  bool
	runConfig   string
)

func init() {
	runCmd.Flags().StringVarP(&runURL, "url", "u", "", "Brand page URL to analyze (required)")
	runCmd.Flags().StringVarP(&runTypes, "types", "t", "", `Content types to generate, comma-separated or "all"`)
	runCmd.Flags().StringVar(&runPlatform, "platforms", "", "Target platforms, comma-separated")
	runCmd.Flags().IntVar(&runVariants, "variants", 0, "Ad copy variants per platform")
	runCmd.Flags().StringVar(&runCampaign, "campaign", "", "Campaign name woven into generated copy")
	runCmd.Flags().StringVar(&runAudience, "audience", "", "Audience override for generation")
	runCmd.Flags().StringVar(&runPatterns, "patterns", "", "YAML pattern overrides file")
	runCmd.Flags().StringVar(&runAPIKey, "api-key", "", "Gemini API key (overrides GEMINI_API_KEY env var)")
	runCmd.Flags().StringVarP(&runOutput, "output", "o", "", "Directory for profile and result JSON files")
	runCmd.Flags().BoolVar(&runBrowser, "browser", false, "Render JavaScript-heavy pages with headless Chrome")
	runCmd.Flags().BoolVarP(&runVerbose, "verbose", "v", false, "Print progress and summaries to stderr")
	runCmd.Flags().StringVar(&runConfig, "config", "", "Path to JSON config file")

	if err := runCmd.MarkFlagRequired("url"); err != nil {
		panic(fmt.Sprintf("failed to mark url flag as required: %v", err))
	}

	rootCmd.AddCommand(runCmd)
}

func runRun(_ *cobra.Command, _ []string) error {
	cfg, err := layeredConfig(runConfig)
	if err != nil {
		return err
	}
	cfg.URL = runURL
	if runTypes != "" {
		cfg.Types = runTypes
	}
	if runPlatform != "" {
		cfg.Platforms = runPlatform
	}
	if runVariants != 0 {
		cfg.VariantCount = runVariants
	}
	if runCampaign != "" {
		cfg.Campaign = runCampaign
	}
	if runAudience != "" {
		cfg.Audience = runAudience
	}
	if runPatterns != "" {
		cfg.Patterns = runPatterns
	}
	if runAPIKey != "" {
		cfg.APIKey = runAPIKey
	}
	if runOutput != "" {
		cfg.Output = runOutput
	}
	if runBrowser {
		cfg.UseBrowser = true
	}
	if runVerbose {
		cfg.Verbose = true
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	ctx := context.Background()

	lib, err := loadLibrary(cfg.Patterns)
	if err != nil {
		return err
	}
	source := fetch.NewClient(&fetch.Options{RenderJS: cfg.UseBrowser, Verbose: cfg.Verbose})
	analyzer := &analyze.Analyzer{Source: source, Engine: extraction.NewEngine(lib)}

	profile, _, err := analyzer.AnalyzeURL(ctx, cfg.URL)
	if err != nil {
		return err
	}
	if cfg.Verbose {
		observability.NewPrinter(os.Stderr).PrintBrandProfile(profile)
	}

	state, err := executePipeline(ctx, cfg, profile)
	if err != nil {
		return err
	}

	if cfg.DatabaseURL != "" {
		if err := recordRun(ctx, cfg.DatabaseURL, cfg.URL, profile, state); err != nil {
			// History is best-effort; the generated content is already in hand.
			_, _ = fmt.Fprintf(os.Stderr, "Warning: failed to record run: %v\n", err)
		}
	}

	if cfg.Output != "" {
		profilePath := filepath.Join(cfg.Output, "brand_profile.json")
		resultPath := filepath.Join(cfg.Output, "content_package.json")
		if err := writeJSONFile(profilePath, profile); err != nil {
			return err
		}
		if err := writeJSONFile(resultPath, state); err != nil {
			return err
		}
		_, _ = fmt.Fprintf(os.Stdout, "Profile: %s\n", profilePath)
		_, _ = fmt.Fprintf(os.Stdout, "Result:  %s\n", resultPath)
		return nil
	}
	return printJSON(state)
}

// recordRun persists the run, its profile and its package.
func recordRun(ctx context.Context, databaseURL, sourceURL string, profile *extraction.BrandProfile, state *pipeline.State) error {
	st, err := store.Connect(ctx, databaseURL)
	if err != nil {
		return err
	}
	defer st.Close()

	if err := st.CreateRun(ctx, state.RunID, sourceURL); err != nil {
		return err
	}
	if err := st.SaveProfile(ctx, state.RunID, profile); err != nil {
		return err
	}
	if err := st.SavePackage(ctx, state.RunID, state.FinalPackage); err != nil {
		return err
	}
	return st.CompleteRun(ctx, state.RunID, pipeline.Classify(state))
}
