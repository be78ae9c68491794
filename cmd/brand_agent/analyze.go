package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/marcus/brandsmith/internal/analyze"
	"github.com/marcus/brandsmith/internal/extraction"
	"github.com/marcus/brandsmith/internal/fetch"
	"github.com/marcus/brandsmith/internal/ingestion"
	"github.com/marcus/brandsmith/internal/observability"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Extract a brand profile from a website or saved page text",
	Long:  "Fetches a brand page (or reads saved page text) and extracts a structured brand profile: name, products, tone, keywords, contact details, social links, colors, themes and pricing signals.",
	RunE:  runAnalyze,
}

var (
	analyzeURL      string
	analyzeFile     string
	analyzePatterns string
	analyzeOutput   string
	analyzeBrowser  bool
	analyzeVerbose  bool
	analyzeConfig   string
)

func init() {
	analyzeCmd.Flags().StringVarP(&analyzeURL, "url", "u", "", "Brand page URL to analyze")
	analyzeCmd.Flags().StringVarP(&analyzeFile, "file", "f", "", "Path to saved page text (alternative to --url)")
	analyzeCmd.Flags().StringVar(&analyzePatterns, "patterns", "", "YAML pattern overrides file")
	analyzeCmd.Flags().StringVarP(&analyzeOutput, "output", "o", "", "Write the profile JSON to this file instead of stdout")
	analyzeCmd.Flags().BoolVar(&analyzeBrowser, "browser", false, "Render JavaScript-heavy pages with headless Chrome")
	analyzeCmd.Flags().BoolVarP(&analyzeVerbose, "verbose", "v", false, "Print a profile summary to stderr")
	analyzeCmd.Flags().StringVar(&analyzeConfig, "config", "", "Path to JSON config file")

	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(_ *cobra.Command, _ []string) error {
	cfg, err := layeredConfig(analyzeConfig)
	if err != nil {
		return err
	}
	if analyzeURL != "" {
		cfg.URL = analyzeURL
	}
	if analyzeFile != "" {
		cfg.File = analyzeFile
	}
	if analyzePatterns != "" {
		cfg.Patterns = analyzePatterns
	}
	if analyzeOutput != "" {
		cfg.Output = analyzeOutput
	}
	if analyzeBrowser {
		cfg.UseBrowser = true
	}
	if analyzeVerbose {
		cfg.Verbose = true
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	if cfg.URL == "" && cfg.File == "" {
		return fmt.Errorf("either --url or --file is required")
	}

	lib, err := loadLibrary(cfg.Patterns)
	if err != nil {
		return err
	}

	source := fetch.NewClient(&fetch.Options{RenderJS: cfg.UseBrowser, Verbose: cfg.Verbose})
	analyzer := &analyze.Analyzer{Source: source, Engine: extraction.NewEngine(lib)}

	profile, meta, err := analyzeInput(analyzer, cfg.URL, cfg.File)
	if err != nil {
		return err
	}

	if cfg.Verbose {
		observability.NewPrinter(os.Stderr).PrintBrandProfile(profile)
		_, _ = fmt.Fprintf(os.Stderr, "Source: %s (%d bytes, sha256 %s...)\n", orStdinLabel(meta.URL), meta.Length, meta.Hash[:12])
	}

	if cfg.Output != "" {
		if err := writeJSONFile(cfg.Output, profile); err != nil {
			return err
		}
		_, _ = fmt.Fprintf(os.Stdout, "Profile: %s\n", cfg.Output)
		return nil
	}
	return printJSON(profile)
}

func analyzeInput(analyzer *analyze.Analyzer, url, file string) (*extraction.BrandProfile, *ingestion.Metadata, error) {
	if url != "" {
		profile, meta, err := analyzer.AnalyzeURL(context.Background(), url)
		if err != nil {
			return nil, nil, err
		}
		return profile, meta, nil
	}

	data, err := os.ReadFile(file)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read input file %s: %w", file, err)
	}
	profile, meta := analyzer.AnalyzeText(string(data), "")
	return profile, meta, nil
}

func orStdinLabel(url string) string {
	if url == "" {
		return "local file"
	}
	return url
}
