// Package main provides the brand_agent CLI: brand profile extraction and
// conditional marketing content generation.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "brand_agent",
	Short: "Brand profile extraction and content generation",
	Long:  "brand_agent analyzes a brand's website into a structured profile and runs a conditional pipeline that generates ad copy, social captions, image briefs, UGC scripts and email creative from it.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
