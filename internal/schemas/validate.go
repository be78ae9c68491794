// Package schemas validates LLM-produced JSON against embedded JSON Schema
// documents before anything downstream trusts it.
package schemas

import (
	"embed"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/xeipuuv/gojsonschema"
)

//go:embed *.schema.json
var schemaFiles embed.FS

// Schema file names for the generated content payloads.
const (
	AdCopySchema         = "ad_copy.schema.json"
	SocialCaptionsSchema = "social_captions.schema.json"
	StaticImagesSchema   = "static_images.schema.json"
	UgcScriptsSchema     = "ugc_scripts.schema.json"
	EmailAssetsSchema    = "email_assets.schema.json"
)

// compiled caches parsed schemas so repeated validations skip recompilation.
var (
	compiled  = make(map[string]*gojsonschema.Schema)
	compileMu sync.RWMutex
)

// FieldError is a single validation error at a specific field.
type FieldError struct {
	Field   string
	Message string
}

// ValidationError reports every field that failed schema validation.
type ValidationError struct {
	Schema string
	Errors []FieldError
}

func (ve *ValidationError) Error() string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("validation against %s failed:\n", ve.Schema))
	for i, err := range ve.Errors {
		sb.WriteString(fmt.Sprintf("  %d. %s: %s\n", i+1, err.Field, err.Message))
	}
	return sb.String()
}

// SchemaLoadError reports problems loading or compiling a schema itself.
type SchemaLoadError struct {
	Name    string
	Message string
	Cause   error
}

func (e *SchemaLoadError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("failed to load schema %s: %s: %v", e.Name, e.Message, e.Cause)
	}
	return fmt.Sprintf("failed to load schema %s: %s", e.Name, e.Message)
}

func (e *SchemaLoadError) Unwrap() error {
	return e.Cause
}

// Validate checks a JSON document against the named embedded schema. A nil
// return means the document conforms.
func Validate(name, jsonContent string) error {
	schema, err := load(name)
	if err != nil {
		return err
	}

	result, err := schema.Validate(gojsonschema.NewStringLoader(jsonContent))
	if err != nil {
		return &SchemaLoadError{
			Name:    name,
			Message: "document could not be validated",
			Cause:   err,
		}
	}
	if result.Valid() {
		return nil
	}

	validationErr := &ValidationError{
		Schema: name,
		Errors: make([]FieldError, 0, len(result.Errors())),
	}
	for _, desc := range result.Errors() {
		field := desc.Field()
		if field == "" {
			field = "(root)"
		}
		validationErr.Errors = append(validationErr.Errors, FieldError{
			Field:   field,
			Message: desc.Description(),
		})
	}
	return validationErr
}

// List returns the embedded schema names in sorted order.
func List() []string {
	entries, err := schemaFiles.ReadDir(".")
	if err != nil {
		return nil
	}
	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		names = append(names, entry.Name())
	}
	sort.Strings(names)
	return names
}

func load(name string) (*gojsonschema.Schema, error) {
	compileMu.RLock()
	if schema, ok := compiled[name]; ok {
		compileMu.RUnlock()
		return schema, nil
	}
	compileMu.RUnlock()

	data, err := schemaFiles.ReadFile(name)
	if err != nil {
		return nil, &SchemaLoadError{Name: name, Message: "schema not found", Cause: err}
	}

	schema, err := gojsonschema.NewSchema(gojsonschema.NewBytesLoader(data))
	if err != nil {
		return nil, &SchemaLoadError{Name: name, Message: "schema does not compile", Cause: err}
	}

	compileMu.Lock()
	compiled[name] = schema
	compileMu.Unlock()

	return schema, nil
}
