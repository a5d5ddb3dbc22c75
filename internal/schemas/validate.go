// Package schemas provides JSON Schema validation for persisted and imported site documents.
package schemas

import (
	"fmt"
	"strings"
	"sync"

	"github.com/xeipuuv/gojsonschema"

	rootschemas "github.com/vibetank/vibetank/schemas"
)

// ValidationError represents a schema validation error with field paths
type ValidationError struct {
	Errors []FieldError
}

// FieldError represents a single validation error at a specific field
type FieldError struct {
	Field   string
	Message string
}

// SchemaLoadError represents errors loading or parsing the schema itself
type SchemaLoadError struct {
	Path    string
	Message string
	Cause   error
}

func (e *SchemaLoadError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("failed to load schema %s: %s: %v", e.Path, e.Message, e.Cause)
	}
	return fmt.Sprintf("failed to load schema %s: %s", e.Path, e.Message)
}

func (e *SchemaLoadError) Unwrap() error {
	return e.Cause
}

func (ve *ValidationError) Error() string {
	var sb strings.Builder
	sb.WriteString("validation failed:\n")
	for i, err := range ve.Errors {
		sb.WriteString(fmt.Sprintf("  %d. %s: %s\n", i+1, err.Field, err.Message))
	}
	return sb.String()
}

var (
	siteSchemaOnce sync.Once
	siteSchema     *gojsonschema.Schema
	siteSchemaErr  error
)

// siteDocumentSchema compiles the embedded site document schema once.
func siteDocumentSchema() (*gojsonschema.Schema, error) {
	siteSchemaOnce.Do(func() {
		loader := gojsonschema.NewBytesLoader(rootschemas.SiteDocument)
		siteSchema, siteSchemaErr = gojsonschema.NewSchema(loader)
		if siteSchemaErr != nil {
			siteSchemaErr = &SchemaLoadError{
				Path:    rootschemas.SiteDocumentFile,
				Message: "schema compilation failed",
				Cause:   siteSchemaErr,
			}
		}
	})
	return siteSchema, siteSchemaErr
}

// ValidateSiteDocument validates raw JSON against the site document schema.
func ValidateSiteDocument(raw []byte) error {
	schema, err := siteDocumentSchema()
	if err != nil {
		return err
	}

	result, err := schema.Validate(gojsonschema.NewBytesLoader(raw))
	if err != nil {
		return fmt.Errorf("failed to read document: %w", err)
	}
	return resultError(result)
}

func resultError(result *gojsonschema.Result) error {
	if result.Valid() {
		return nil
	}

	validationErr := &ValidationError{
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
