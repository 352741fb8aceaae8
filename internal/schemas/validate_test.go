package schemas

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xeipuuv/gojsonschema"
)

func TestEmbeddedSchemas_CompileAsJSONSchema(t *testing.T) {
	tests := []struct {
		name   string
		schema string
	}{
		{"classification", ClassificationSchema},
		{"evaluation", EvaluationSchema},
		{"checkpoint", CheckpointSchema},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var v interface{}
			require.NoError(t, json.Unmarshal([]byte(tt.schema), &v),
				"schema should be valid JSON")

			_, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(tt.schema))
			assert.NoError(t, err, "schema should compile")
		})
	}
}

func TestValidateClassification_Valid(t *testing.T) {
	doc := `{
		"decision_made": true,
		"chosen_option_id": "p1_bold",
		"confidence": 0.85,
		"evidence": "Riley presented the findings directly to David in front of the team."
	}`

	assert.NoError(t, ValidateClassification(doc))
}

func TestValidateClassification_NoDecision(t *testing.T) {
	// Empty option id is the documented "not enacted" shape.
	doc := `{
		"decision_made": false,
		"chosen_option_id": "",
		"confidence": 0.0,
		"evidence": ""
	}`

	assert.NoError(t, ValidateClassification(doc))
}

func TestValidateClassification_MissingConfidence(t *testing.T) {
	doc := `{"decision_made": true, "chosen_option_id": "p1_bold"}`

	err := ValidateClassification(doc)
	require.Error(t, err)

	validationErr, ok := err.(*ValidationError)
	require.True(t, ok, "error should be ValidationError type")
	assert.Greater(t, len(validationErr.Errors), 0)
}

func TestValidateClassification_WrongType(t *testing.T) {
	doc := `{"decision_made": "yes", "chosen_option_id": "p1_bold", "confidence": 0.9}`

	err := ValidateClassification(doc)
	require.Error(t, err)

	validationErr, ok := err.(*ValidationError)
	require.True(t, ok)
	assert.Greater(t, len(validationErr.Errors), 0)
}

func TestValidateClassification_OutOfRangeConfidencePasses(t *testing.T) {
	// Range is clamped by the classifier, not rejected here, so a
	// usable answer with a wild confidence is not thrown away.
	doc := `{"decision_made": true, "chosen_option_id": "p1_bold", "confidence": 1.7}`

	assert.NoError(t, ValidateClassification(doc))
}

func TestValidateEvaluation_Valid(t *testing.T) {
	doc := `{
		"modifiers": {
			"visibility": 3, "competence": 2, "relationships": -1,
			"leadership": 0, "ethics": 0
		},
		"relationships": {
			"Karen Aldridge": {"score": 35, "label": "strained"},
			"David Chen": {"score": 72, "label": "impressed"}
		},
		"key_decisions": [
			{"decision": "Presented audit findings to the CFO", "impact": "major visibility gain", "ethical": true}
		],
		"narrative": "Riley handled a tense meeting with unusual poise.",
		"reasoning": "Clear analysis, named the tradeoffs, kept Karen engaged."
	}`

	assert.NoError(t, ValidateEvaluation(doc))
}

func TestValidateEvaluation_MissingDimension(t *testing.T) {
	doc := `{"modifiers": {"visibility": 3, "competence": 2}}`

	err := ValidateEvaluation(doc)
	require.Error(t, err)

	validationErr, ok := err.(*ValidationError)
	require.True(t, ok)
	assert.Greater(t, len(validationErr.Errors), 0)
}

func TestValidateEvaluation_FractionalModifierRejected(t *testing.T) {
	doc := `{
		"modifiers": {
			"visibility": 2.5, "competence": 0, "relationships": 0,
			"leadership": 0, "ethics": 0
		}
	}`

	err := ValidateEvaluation(doc)
	require.Error(t, err)
}

func TestValidateEvaluation_QualitativeFieldsOptional(t *testing.T) {
	doc := `{
		"modifiers": {
			"visibility": 0, "competence": 0, "relationships": 0,
			"leadership": 0, "ethics": 0
		}
	}`

	assert.NoError(t, ValidateEvaluation(doc))
}

func TestValidateCheckpoint_Valid(t *testing.T) {
	payload := `{
		"run_id": "run-20260106-120000",
		"variant": "neutral",
		"completed_phases": [1, 2, 3],
		"evaluations": [{"phase": 1, "name": "The Budget Review", "scores": {}}],
		"memory_summaries": {"Riley Nakamura": ["[Memory from 2026-01-06] Riley flagged the variance."]},
		"simulation_state": {},
		"run_meta": {},
		"last_saved": "2026-04-14T09:30:00Z"
	}`

	assert.NoError(t, ValidateCheckpoint(payload))
}

func TestValidateCheckpoint_BadVariant(t *testing.T) {
	payload := `{
		"run_id": "run-1",
		"variant": "aggressive",
		"completed_phases": [],
		"last_saved": "2026-04-14T09:30:00Z"
	}`

	err := ValidateCheckpoint(payload)
	require.Error(t, err)

	validationErr, ok := err.(*ValidationError)
	require.True(t, ok)
	assert.Greater(t, len(validationErr.Errors), 0)
}

func TestValidateCheckpoint_MissingRunID(t *testing.T) {
	payload := `{
		"variant": "neutral",
		"completed_phases": [],
		"last_saved": "2026-04-14T09:30:00Z"
	}`

	err := ValidateCheckpoint(payload)
	require.Error(t, err)
}

func TestValidateJSONString_MalformedDocument(t *testing.T) {
	err := ValidateJSONString(CheckpointSchema, "{ invalid json }")
	require.Error(t, err)

	var loadErr *SchemaLoadError
	assert.True(t, errors.As(err, &loadErr))
}

func TestValidateJSONString_Valid(t *testing.T) {
	schemaContent := `{
		"$schema": "http://json-schema.org/draft-07/schema#",
		"type": "object",
		"required": ["name"],
		"properties": {
			"name": {"type": "string"}
		}
	}`
	jsonContent := `{"name": "test"}`

	err := ValidateJSONString(schemaContent, jsonContent)
	assert.NoError(t, err)
}

func TestValidateJSONString_Invalid(t *testing.T) {
	schemaContent := `{
		"$schema": "http://json-schema.org/draft-07/schema#",
		"type": "object",
		"required": ["name"],
		"properties": {
			"name": {"type": "string"}
		}
	}`
	jsonContent := `{"age": 30}`

	err := ValidateJSONString(schemaContent, jsonContent)
	require.Error(t, err)

	validationErr, ok := err.(*ValidationError)
	require.True(t, ok)
	assert.Greater(t, len(validationErr.Errors), 0)
}

func TestValidationError_Error(t *testing.T) {
	err := &ValidationError{
		Errors: []FieldError{
			{Field: "modifiers.visibility", Message: "Invalid type"},
			{Field: "confidence", Message: "confidence is required"},
		},
	}

	errorMsg := err.Error()
	assert.Contains(t, errorMsg, "validation failed")
	assert.Contains(t, errorMsg, "modifiers.visibility")
	assert.Contains(t, errorMsg, "confidence")
}

func TestValidateJSONString_NestedFieldPath(t *testing.T) {
	doc := `{
		"modifiers": {
			"visibility": "high", "competence": 0, "relationships": 0,
			"leadership": 0, "ethics": 0
		}
	}`

	err := ValidateEvaluation(doc)
	require.Error(t, err)

	validationErr, ok := err.(*ValidationError)
	require.True(t, ok)
	assert.Greater(t, len(validationErr.Errors), 0)
	// Check that the field path includes the nested field
	found := false
	for _, fieldErr := range validationErr.Errors {
		if fieldErr.Field != "" && fieldErr.Field != "(root)" {
			found = true
			break
		}
	}
	assert.True(t, found, "should include field path in error")
}
