package pipeline

import (
	"context"
	"fmt"

	"github.com/marcus/brandsmith/internal/content"
)

// Step is a single unit of work in a run. Content steps claim a ContentType
// and are gated by their Predicate; infrastructure steps such as analysis
// and packaging leave ContentType empty and run unconditionally.
type Step struct {
	// Name identifies the step in progress events and error records.
	Name string

	// ContentType is the output slot this step populates, or empty when the
	// step produces no deliverable of its own. At most one step may claim
	// each type.
	ContentType content.ContentType

	// Predicate decides at run time whether the step executes. Nil means
	// the step always runs. A false predicate skips the step silently; a
	// skip is not a failure.
	Predicate func(*State) bool

	// Action does the work. A returned error is recorded on the state and
	// the run continues with the next step.
	Action func(context.Context, *State) error

	// DependsOn lists step names that must be registered ahead of this one.
	// Dependencies order steps at setup; they do not gate execution on the
	// dependency having succeeded.
	DependsOn []string
}

// Registry holds the steps of a run. Registration order is execution order.
type Registry struct {
	steps  []Step
	byName map[string]int
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{byName: make(map[string]int)}
}

// Register appends a step. Step names and content type claims must be
// unique across the registry.
func (r *Registry) Register(step Step) error {
	if step.Name == "" {
		return &RegistrationError{Step: step.Name, Reason: "name is required"}
	}
	if step.Action == nil {
		return &RegistrationError{Step: step.Name, Reason: "action is required"}
	}
	if _, exists := r.byName[step.Name]; exists {
		return &RegistrationError{Step: step.Name, Reason: "name already registered"}
	}
	if step.ContentType != "" {
		for _, existing := range r.steps {
			if existing.ContentType == step.ContentType {
				return &RegistrationError{
					Step:   step.Name,
					Reason: fmt.Sprintf("content type %q already claimed by %q", step.ContentType, existing.Name),
				}
			}
		}
	}
	r.byName[step.Name] = len(r.steps)
	r.steps = append(r.steps, step)
	return nil
}

// Steps returns a copy of the registered steps in execution order.
func (r *Registry) Steps() []Step {
	out := make([]Step, len(r.steps))
	copy(out, r.steps)
	return out
}

// Len returns the number of registered steps.
func (r *Registry) Len() int {
	return len(r.steps)
}

// Validate checks the registry against a manifest before any step runs. It
// reports dependency cycles, references to unknown or later-ordered steps,
// and requested content types that no step claims. A registry that fails
// validation must not be run.
func (r *Registry) Validate(manifest content.Manifest) error {
	if err := r.checkCycles(); err != nil {
		return err
	}
	for i, step := range r.steps {
		var missing []string
		for _, dep := range step.DependsOn {
			idx, ok := r.byName[dep]
			if !ok || idx >= i {
				missing = append(missing, dep)
			}
		}
		if len(missing) > 0 {
			return &DependencyError{Step: step.Name, Missing: missing}
		}
	}
	for _, ct := range manifest.Types() {
		if !r.claims(ct) {
			return &ManifestError{ContentType: ct}
		}
	}
	return nil
}

func (r *Registry) claims(ct content.ContentType) bool {
	for _, step := range r.steps {
		if step.ContentType == ct {
			return true
		}
	}
	return false
}

// checkCycles walks the DependsOn edges depth-first. Unregistered names are
// skipped here; the ordering pass in Validate reports those.
func (r *Registry) checkCycles() error {
	const (
		unvisited = iota
		visiting
		done
	)
	marks := make(map[string]int, len(r.steps))
	var path []string

	var visit func(name string) *CycleError
	visit = func(name string) *CycleError {
		switch marks[name] {
		case visiting:
			start := 0
			for i, n := range path {
				if n == name {
					start = i
					break
				}
			}
			cycle := append(append([]string{}, path[start:]...), name)
			return &CycleError{Path: cycle}
		case done:
			return nil
		}
		marks[name] = visiting
		path = append(path, name)
		if idx, ok := r.byName[name]; ok {
			for _, dep := range r.steps[idx].DependsOn {
				if _, registered := r.byName[dep]; !registered {
					continue
				}
				if cerr := visit(dep); cerr != nil {
					return cerr
				}
			}
		}
		path = path[:len(path)-1]
		marks[name] = done
		return nil
	}

	for _, step := range r.steps {
		if cerr := visit(step.Name); cerr != nil {
			return cerr
		}
	}
	return nil
}
