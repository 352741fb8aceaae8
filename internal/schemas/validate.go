// Package schemas provides JSON Schema validation for the structured JSON
// the engine exchanges with LLM judges and writes to disk. The schemas are
// embedded at compile time so response validation works regardless of the
// working directory the binary runs from.
package schemas

import (
	_ "embed"
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// Embedded schema documents. Shape is enforced here; numeric range
// clamping (confidence, modifiers) stays in the consuming packages.
var (
	//go:embed classification.schema.json
	ClassificationSchema string

	//go:embed evaluation.schema.json
	EvaluationSchema string

	//go:embed checkpoint.schema.json
	CheckpointSchema string
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

// ValidateClassification checks a judge's decision-classification response.
func ValidateClassification(jsonContent string) error {
	return ValidateJSONString(ClassificationSchema, jsonContent)
}

// ValidateEvaluation checks a judge's execution-quality response.
func ValidateEvaluation(jsonContent string) error {
	return ValidateJSONString(EvaluationSchema, jsonContent)
}

// ValidateCheckpoint checks resumable run state against the checkpoint
// schema. The checkpoint manager runs this on every load, so a resume
// never starts from state the engine only half-understands.
func ValidateCheckpoint(jsonContent string) error {
	return ValidateJSONString(CheckpointSchema, jsonContent)
}

// ValidateJSONString validates JSON string content against schema string content
func ValidateJSONString(schemaContent, jsonContent string) error {
	schemaLoader := gojsonschema.NewStringLoader(schemaContent)
	documentLoader := gojsonschema.NewStringLoader(jsonContent)

	result, err := gojsonschema.Validate(schemaLoader, documentLoader)
	if err != nil {
		return &SchemaLoadError{
			Path:    "(string schema)",
			Message: "schema validation failed during load",
			Cause:   err,
		}
	}

	if result.Valid() {
		return nil
	}

	// Build structured error
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
