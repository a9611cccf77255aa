// Package schemas checks payloads received from quiz servers against their JSON Schemas.
package schemas

import (
	"fmt"
	"strings"
	"sync"

	rootschemas "github.com/jonathan/quiz-solver/schemas"
	"github.com/xeipuuv/gojsonschema"
)

// ValidationError lists every place a document breaks its schema.
type ValidationError struct {
	Schema string
	Errors []FieldError
}

// FieldError is one schema violation.
type FieldError struct {
	Field   string
	Message string
}

func (ve *ValidationError) Error() string {
	parts := make([]string, 0, len(ve.Errors))
	for _, err := range ve.Errors {
		parts = append(parts, fmt.Sprintf("%s: %s", err.Field, err.Message))
	}
	return fmt.Sprintf("%s validation failed: %s", ve.Schema, strings.Join(parts, "; "))
}

// SchemaLoadError reports a schema that does not compile or a document that is not JSON.
type SchemaLoadError struct {
	Schema  string
	Message string
	Cause   error
}

func (e *SchemaLoadError) Error() string {
	return fmt.Sprintf("%s: %s: %v", e.Schema, e.Message, e.Cause)
}

func (e *SchemaLoadError) Unwrap() error {
	return e.Cause
}

// Validator checks documents against one compiled schema.
type Validator struct {
	name   string
	schema *gojsonschema.Schema
}

// NewValidator compiles schemaContent. name labels errors.
func NewValidator(name, schemaContent string) (*Validator, error) {
	schema, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(schemaContent))
	if err != nil {
		return nil, &SchemaLoadError{Schema: name, Message: "failed to compile schema", Cause: err}
	}
	return &Validator{name: name, schema: schema}, nil
}

// Validate checks document, which must be JSON text.
func (v *Validator) Validate(document string) error {
	result, err := v.schema.Validate(gojsonschema.NewStringLoader(document))
	if err != nil {
		return &SchemaLoadError{Schema: v.name, Message: "failed to read document", Cause: err}
	}
	if result.Valid() {
		return nil
	}

	validationErr := &ValidationError{
		Schema: v.name,
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

var submissionResultValidator = sync.OnceValues(func() (*Validator, error) {
	return NewValidator("submission result", rootschemas.SubmissionResult)
})

// ValidateSubmissionResult checks a submission endpoint's response body.
// Only the url field is constrained; any other field may hold any JSON value.
func ValidateSubmissionResult(body string) error {
	v, err := submissionResultValidator()
	if err != nil {
		return err
	}
	return v.Validate(body)
}
