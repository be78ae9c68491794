package generate

import "fmt"

// GenerationError reports a failure to produce one content type.
type GenerationError struct {
	ContentType string
	Message     string
	Cause       error
}

func (e *GenerationError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("generating %s: %s: %v", e.ContentType, e.Message, e.Cause)
	}
	return fmt.Sprintf("generating %s: %s", e.ContentType, e.Message)
}

func (e *GenerationError) Unwrap() error {
	return e.Cause
}
