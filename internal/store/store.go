// Package store persists brand runs and their artifacts in PostgreSQL. The
// store is optional: the CLI only engages it when a database URL is
// configured, and a run succeeds or fails identically with or without it.
package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/marcus/brandsmith/internal/extraction"
	"github.com/marcus/brandsmith/internal/pipeline"
)

// Artifact kinds stored per run.
const (
	KindProfile = "profile"
	KindPackage = "package"
)

// Run is one recorded pipeline run.
type Run struct {
	ID          uuid.UUID  `json:"id"`
	SourceURL   string     `json:"source_url,omitempty"`
	BrandName   string     `json:"brand_name,omitempty"`
	Status      string     `json:"status"`
	Outcome     string     `json:"outcome,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}

// RunFilters narrows ListRuns output.
type RunFilters struct {
	Brand  string // case-insensitive substring match on brand name
	Status string
	Limit  int // defaults to 20
}

// Store wraps a PostgreSQL connection pool.
type Store struct {
	pool *pgxpool.Pool
}

// Connect establishes a connection pool and verifies it.
func Connect(ctx context.Context, databaseURL string) (*Store, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	return &Store{pool: pool}, nil
}

// Close closes the connection pool.
func (s *Store) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

// CreateRun records the start of a run under the pipeline's run ID.
func (s *Store) CreateRun(ctx context.Context, runID uuid.UUID, sourceURL string) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO brand_runs (id, source_url, status)
		 VALUES ($1, $2, 'running')`,
		runID, sourceURL,
	)
	if err != nil {
		return fmt.Errorf("failed to create run: %w", err)
	}
	return nil
}

// SaveProfile stores the extracted profile for a run and backfills the run's
// brand name for listing.
func (s *Store) SaveProfile(ctx context.Context, runID uuid.UUID, profile *extraction.BrandProfile) error {
	if err := s.saveArtifact(ctx, runID, KindProfile, profile); err != nil {
		return err
	}
	if profile != nil && profile.Name != "" {
		if _, err := s.pool.Exec(ctx,
			`UPDATE brand_runs SET brand_name = $1 WHERE id = $2`,
			profile.Name, runID,
		); err != nil {
			return fmt.Errorf("failed to set brand name: %w", err)
		}
	}
	return nil
}

// SavePackage stores the final package for a run.
func (s *Store) SavePackage(ctx context.Context, runID uuid.UUID, pkg *pipeline.FinalPackage) error {
	return s.saveArtifact(ctx, runID, KindPackage, pkg)
}

// CompleteRun marks a run finished with its classified outcome.
func (s *Store) CompleteRun(ctx context.Context, runID uuid.UUID, outcome pipeline.Outcome) error {
	_, err := s.pool.Exec(ctx,
		`UPDATE brand_runs SET status = 'completed', outcome = $1, completed_at = NOW() WHERE id = $2`,
		string(outcome), runID,
	)
	if err != nil {
		return fmt.Errorf("failed to complete run: %w", err)
	}
	return nil
}

// GetRun retrieves one run. Returns nil when the run does not exist.
func (s *Store) GetRun(ctx context.Context, runID uuid.UUID) (*Run, error) {
	var r Run
	err := s.pool.QueryRow(ctx,
		`SELECT id, COALESCE(source_url, ''), COALESCE(brand_name, ''), status,
		        COALESCE(outcome, ''), created_at, completed_at
		 FROM brand_runs WHERE id = $1`,
		runID,
	).Scan(&r.ID, &r.SourceURL, &r.BrandName, &r.Status, &r.Outcome, &r.CreatedAt, &r.CompletedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get run: %w", err)
	}
	return &r, nil
}

// GetProfile retrieves the stored profile for a run. Returns nil when no
// profile was saved.
func (s *Store) GetProfile(ctx context.Context, runID uuid.UUID) (*extraction.BrandProfile, error) {
	data, err := s.getArtifact(ctx, runID, KindProfile)
	if err != nil || data == nil {
		return nil, err
	}
	var profile extraction.BrandProfile
	if err := json.Unmarshal(data, &profile); err != nil {
		return nil, fmt.Errorf("failed to decode stored profile: %w", err)
	}
	return &profile, nil
}

// GetPackage retrieves the stored final package for a run. Returns nil when
// no package was saved.
func (s *Store) GetPackage(ctx context.Context, runID uuid.UUID) (*pipeline.FinalPackage, error) {
	data, err := s.getArtifact(ctx, runID, KindPackage)
	if err != nil || data == nil {
		return nil, err
	}
	var pkg pipeline.FinalPackage
	if err := json.Unmarshal(data, &pkg); err != nil {
		return nil, fmt.Errorf("failed to decode stored package: %w", err)
	}
	return &pkg, nil
}

// ListRuns returns recent runs, newest first.
func (s *Store) ListRuns(ctx context.Context, filters RunFilters) ([]Run, error) {
	limit := filters.Limit
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.pool.Query(ctx,
		`SELECT id, COALESCE(source_url, ''), COALESCE(brand_name, ''), status,
		        COALESCE(outcome, ''), created_at, completed_at
		 FROM brand_runs
		 WHERE ($1 = '' OR brand_name ILIKE '%' || $1 || '%')
		   AND ($2 = '' OR status = $2)
		 ORDER BY created_at DESC
		 LIMIT $3`,
		filters.Brand, filters.Status, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		if err := rows.Scan(&r.ID, &r.SourceURL, &r.BrandName, &r.Status, &r.Outcome, &r.CreatedAt, &r.CompletedAt); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		runs = append(runs, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read runs: %w", err)
	}
	return runs, nil
}

func (s *Store) saveArtifact(ctx context.Context, runID uuid.UUID, kind string, content any) error {
	jsonBytes, err := json.Marshal(content)
	if err != nil {
		return fmt.Errorf("failed to marshal %s artifact: %w", kind, err)
	}
	_, err = s.pool.Exec(ctx,
		`INSERT INTO run_artifacts (run_id, kind, content)
		 VALUES ($1, $2, $3)
		 ON CONFLICT (run_id, kind) DO UPDATE SET content = $3, created_at = NOW()`,
		runID, kind, jsonBytes,
	)
	if err != nil {
		return fmt.Errorf("failed to save %s artifact: %w", kind, err)
	}
	return nil
}

func (s *Store) getArtifact(ctx context.Context, runID uuid.UUID, kind string) ([]byte, error) {
	var content []byte
	err := s.pool.QueryRow(ctx,
		`SELECT content FROM run_artifacts WHERE run_id = $1 AND kind = $2`,
		runID, kind,
	).Scan(&content)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get %s artifact: %w", kind, err)
	}
	return content, nil
}
