package pipeline

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/marcus/brandsmith/internal/content"
	"github.com/marcus/brandsmith/internal/extraction"
)

// Status describes where a runner is in its lifecycle.
type Status string

const (
	StatusNotStarted Status = "not_started"
	StatusRunning    Status = "running"
	StatusCompleted  Status = "completed"
)

// StepStatus is the per-step state reported through progress events.
type StepStatus string

const (
	StepRunning   StepStatus = "running"
	StepCompleted StepStatus = "completed"
	StepFailed    StepStatus = "failed"
	StepSkipped   StepStatus = "skipped"
)

// ProgressEvent is emitted as each step starts and finishes.
type ProgressEvent struct {
	Step     string        `json:"step"`
	Index    int           `json:"index"`
	Total    int           `json:"total"`
	Status   StepStatus    `json:"status"`
	Message  string        `json:"message,omitempty"`
	Duration time.Duration `json:"duration,omitempty"`
}

// ProgressCallback receives progress events during a run. Callbacks run on
// the runner's goroutine and should return quickly.
type ProgressCallback func(event ProgressEvent)

// Runner executes a registry's steps strictly in order against one shared
// state. A Runner is not safe for concurrent use.
type Runner struct {
	registry *Registry

	// OnProgress, when set, receives an event for every step transition.
	OnProgress ProgressCallback

	status Status
}

// NewRunner returns a runner for the given registry.
func NewRunner(registry *Registry) *Runner {
	return &Runner{registry: registry, status: StatusNotStarted}
}

// Status reports the runner's lifecycle phase.
func (r *Runner) Status() Status {
	return r.status
}

// Run validates the registry against the manifest, then executes every step
// in registration order. Steps whose predicate returns false are skipped.
// Step failures, including panics inside actions, are recorded on the state
// and the run moves on; the returned error is non-nil only when setup
// validation fails, in which case no step has run.
func (r *Runner) Run(ctx context.Context, profile *extraction.BrandProfile, manifest content.Manifest) (*State, error) {
	if r.registry == nil || r.registry.Len() == 0 {
		return nil, errors.New("no steps registered")
	}
	if err := r.registry.Validate(manifest); err != nil {
		return nil, fmt.Errorf("invalid step registry: %w", err)
	}

	state := NewState(profile, manifest)
	r.status = StatusRunning
	total := r.registry.Len()

	for i, step := range r.registry.Steps() {
		if step.Predicate != nil && !step.Predicate(state) {
			r.emit(ProgressEvent{Step: step.Name, Index: i + 1, Total: total, Status: StepSkipped, Message: "not requested"})
			continue
		}

		r.emit(ProgressEvent{Step: step.Name, Index: i + 1, Total: total, Status: StepRunning})
		start := time.Now()
		err := runStep(ctx, step, state)
		elapsed := time.Since(start)
		if err != nil {
			state.RecordError(step.Name, err)
			r.emit(ProgressEvent{Step: step.Name, Index: i + 1, Total: total, Status: StepFailed, Message: err.Error(), Duration: elapsed})
			continue
		}
		r.emit(ProgressEvent{Step: step.Name, Index: i + 1, Total: total, Status: StepCompleted, Duration: elapsed})
	}

	r.status = StatusCompleted
	return state, nil
}

// runStep converts a panicking action into an ordinary step failure so one
// misbehaving generator cannot take down the whole run.
func runStep(ctx context.Context, step Step, state *State) (err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("step panicked: %v", rec)
		}
	}()
	return step.Action(ctx, state)
}

func (r *Runner) emit(event ProgressEvent) {
	if r.OnProgress != nil {
		r.OnProgress(event)
	}
}
