package pipeline

import (
	"fmt"
	"strings"

	"github.com/marcus/brandsmith/internal/content"
)

// RegistrationError reports a step that cannot be added to a registry.
type RegistrationError struct {
	Step   string
	Reason string
}

func (e *RegistrationError) Error() string {
	return fmt.Sprintf("cannot register step %q: %s", e.Step, e.Reason)
}

// DependencyError reports a step that names dependencies which are not
// registered or are registered after it.
type DependencyError struct {
	Step    string
	Missing []string
}

func (e *DependencyError) Error() string {
	return fmt.Sprintf("step %q missing dependencies: %v", e.Step, e.Missing)
}

// CycleError reports a dependency cycle among registered steps.
type CycleError struct {
	Path []string
}

func (e *CycleError) Error() string {
	return fmt.Sprintf("dependency cycle: %s", strings.Join(e.Path, " -> "))
}

// ManifestError reports a requested content type that no registered step
// claims.
type ManifestError struct {
	ContentType content.ContentType
}

func (e *ManifestError) Error() string {
	return fmt.Sprintf("no registered step produces content type %q", e.ContentType)
}
