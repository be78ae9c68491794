// Package observability provides formatted output utilities for verbose CLI
// mode.
package observability

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/marcus/brandsmith/internal/extraction"
	"github.com/marcus/brandsmith/internal/pipeline"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(content, "\n") {
		if len(line) > boxWidth-4 {
			line = line[:boxWidth-7] + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintBrandProfile outputs a human-readable summary of the extracted
// profile.
func (p *Printer) PrintBrandProfile(profile *extraction.BrandProfile) {
	if profile == nil {
		return
	}

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Brand:    %s\n", profile.DisplayName()))
	sb.WriteString(fmt.Sprintf("Tone:     %s\n", profile.Tone))
	if profile.TargetAudience != "" {
		sb.WriteString(fmt.Sprintf("Audience: %s\n", profile.TargetAudience))
	}
	if profile.Description != "" {
		sb.WriteString(fmt.Sprintf("About:    %s\n", profile.Description))
	}

	writeList(&sb, "Products", profile.Products)
	writeList(&sb, "Value Propositions", profile.ValuePropositions)
	writeList(&sb, "Keywords", profile.Keywords)
	writeList(&sb, "Themes", profile.Themes)
	writeList(&sb, "Colors", profile.Colors)

	if !profile.ContactInfo.IsEmpty() {
		sb.WriteString("\nContact:\n")
		if profile.ContactInfo.Email != "" {
			sb.WriteString(fmt.Sprintf("  • %s\n", profile.ContactInfo.Email))
		}
		if profile.ContactInfo.Phone != "" {
			sb.WriteString(fmt.Sprintf("  • %s\n", profile.ContactInfo.Phone))
		}
		if profile.ContactInfo.Address != "" {
			sb.WriteString(fmt.Sprintf("  • %s\n", profile.ContactInfo.Address))
		}
	}

	if profile.Pricing.HasPricing {
		sb.WriteString(fmt.Sprintf("\nPricing:  %s", profile.Pricing.Model))
		if len(profile.Pricing.SamplePrices) > 0 {
			sb.WriteString(fmt.Sprintf(" (%d sample prices)", len(profile.Pricing.SamplePrices)))
		}
		sb.WriteString("\n")
	}

	p.printBox("EXTRACTED BRAND PROFILE", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintFinalPackage outputs a summary of the assembled content package.
func (p *Printer) PrintFinalPackage(pkg *pipeline.FinalPackage) {
	if pkg == nil {
		return
	}

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Package:  %s\n", pkg.PackageID))
	sb.WriteString(fmt.Sprintf("Status:   %s\n", pkg.Status))
	sb.WriteString(fmt.Sprintf("Assets:   %d\n", pkg.Summary.TotalAssets))

	if len(pkg.Summary.GeneratedTypes) > 0 {
		sb.WriteString("\nGenerated:\n")
		for _, ct := range pkg.Summary.GeneratedTypes {
			sb.WriteString(fmt.Sprintf("  • %s (%d)\n", ct, pkg.Summary.AssetCounts[string(ct)]))
		}
	}

	if len(pkg.Errors) > 0 {
		sb.WriteString("\nFailures:\n")
		count := min(len(pkg.Errors), maxItemsToShow)
		for i := 0; i < count; i++ {
			sb.WriteString(fmt.Sprintf("  • %s: %s\n", pkg.Errors[i].Step, pkg.Errors[i].Message))
		}
		if len(pkg.Errors) > maxItemsToShow {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(pkg.Errors)-maxItemsToShow))
		}
	}

	p.printBox("FINAL CONTENT PACKAGE", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintStepEvent writes one progress line for a pipeline step transition.
// Running events are suppressed so each step prints a single closing line.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) PrintStepEvent(event pipeline.ProgressEvent) {
	switch event.Status {
	case pipeline.StepCompleted:
		fmt.Fprintf(p.out, "  [%d/%d] %s ok (%s)\n", event.Index, event.Total, event.Step, event.Duration.Round(time.Millisecond))
	case pipeline.StepFailed:
		fmt.Fprintf(p.out, "  [%d/%d] %s FAILED: %s\n", event.Index, event.Total, event.Step, event.Message)
	case pipeline.StepSkipped:
		fmt.Fprintf(p.out, "  [%d/%d] %s skipped\n", event.Index, event.Total, event.Step)
	}
}

func writeList(sb *strings.Builder, label string, items []string) {
	if len(items) == 0 {
		return
	}
	sb.WriteString(fmt.Sprintf("\n%s:\n", label))
	count := min(len(items), maxItemsToShow)
	for i := 0; i < count; i++ {
		sb.WriteString(fmt.Sprintf("  • %s\n", items[i]))
	}
	if len(items) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(items)-maxItemsToShow))
	}
}
