package pipeline

import (
	"time"

	"github.com/google/uuid"

	"github.com/marcus/brandsmith/internal/content"
)

// ContentSummary aggregates what a run produced.
type ContentSummary struct {
	TotalAssets      int                   `json:"total_assets"`
	AssetCounts      map[string]int        `json:"asset_counts,omitempty"`
	GeneratedTypes   []content.ContentType `json:"generated_types,omitempty"`
	PlatformsCovered []string              `json:"platforms_covered,omitempty"`
}

// FinalPackage is the deliverable bundle assembled at the end of every run,
// including runs where earlier steps failed.
type FinalPackage struct {
	PackageID          string            `json:"package_id"`
	RunID              uuid.UUID         `json:"run_id"`
	CreatedAt          time.Time         `json:"created_at"`
	Version            string            `json:"version"`
	BrandName          string            `json:"brand_name,omitempty"`
	Status             Outcome           `json:"status"`
	Summary            ContentSummary    `json:"content_summary"`
	UsageGuidelines    map[string]string `json:"usage_guidelines,omitempty"`
	ExportFormats      []string          `json:"export_formats,omitempty"`
	ReadyForDeployment bool              `json:"ready_for_deployment"`
	Errors             []StepError       `json:"errors,omitempty"`
}

// Packager assembles the final package from a run's state. Implementations
// must tolerate states with failed steps and empty slots.
type Packager interface {
	Package(state *State) (*FinalPackage, error)
}
