package llm

import (
	"testing"
)

func TestCleanJSONBlock_MarkdownCodeBlock(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "json code block",
			input:    "```json\n{\"decision_made\": true}\n```",
			expected: `{"decision_made": true}`,
		},
		{
			name:     "generic code block",
			input:    "```\n{\"decision_made\": true}\n```",
			expected: `{"decision_made": true}`,
		},
		{
			name:     "code block with language",
			input:    "```javascript\n{\"confidence\": 0.8}\n```",
			expected: `{"confidence": 0.8}`,
		},
		{
			name:     "plain JSON",
			input:    `{"chosen_option_id": "p1_bold"}`,
			expected: `{"chosen_option_id": "p1_bold"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := CleanJSONBlock(tt.input)
			if result != tt.expected {
				t.Errorf("CleanJSONBlock() = %q, want %q", result, tt.expected)
			}
		})
	}
}

func TestCleanJSONBlock_PreambleText(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "preamble before JSON object",
			input:    "As requested, here is the classification:\n{\"chosen_option_id\": \"p1_safe\"}",
			expected: `{"chosen_option_id": "p1_safe"}`,
		},
		{
			name:     "conversational preamble",
			input:    "Based on the transcript, I've evaluated the decision. Here's the structured output:\n\n{\"decision_made\": true, \"confidence\": 0.9}",
			expected: `{"decision_made": true, "confidence": 0.9}`,
		},
		{
			name:     "preamble with multiple sentences",
			input:    "I read the meeting. Riley chose to defer. Here is the result: {\"chosen_option_id\": \"p3_defer\"}",
			expected: `{"chosen_option_id": "p3_defer"}`,
		},
		{
			name:     "preamble before JSON array",
			input:    "Here are the decisions:\n[\"p1_bold\", \"p2_alliance\"]",
			expected: `["p1_bold", "p2_alliance"]`,
		},
		{
			name:     "JSON with trailing text",
			input:    "{\"confidence\": 0.4}\n\nLet me know if you need anything else!",
			expected: `{"confidence": 0.4}`,
		},
		{
			name:     "nested objects",
			input:    "Output:\n{\"modifiers\": {\"visibility\": 2}}",
			expected: `{"modifiers": {"visibility": 2}}`,
		},
		{
			name:     "JSON with escaped quotes",
			input:    "Result: {\"reasoning\": \"Riley said \\\"I'll own it\\\"\"}",
			expected: `{"reasoning": "Riley said \"I'll own it\""}`,
		},
		{
			name:     "deeply nested",
			input:    "Here: {\"a\": {\"b\": {\"c\": {\"d\": \"deep\"}}}}",
			expected: `{"a": {"b": {"c": {"d": "deep"}}}}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := CleanJSONBlock(tt.input)
			if result != tt.expected {
				t.Errorf("CleanJSONBlock() = %q, want %q", result, tt.expected)
			}
		})
	}
}

func TestExtractJSONObject(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "simple object",
			input:    `{"key": "value"}`,
			expected: `{"key": "value"}`,
		},
		{
			name:     "nested objects",
			input:    `{"outer": {"inner": "value"}}`,
			expected: `{"outer": {"inner": "value"}}`,
		},
		{
			name:     "object with array",
			input:    `{"items": [1, 2, 3]}`,
			expected: `{"items": [1, 2, 3]}`,
		},
		{
			name:     "object with trailing text",
			input:    `{"key": "value"} and some more text`,
			expected: `{"key": "value"}`,
		},
		{
			name:     "string with braces inside",
			input:    `{"template": "Hello {name}!"}`,
			expected: `{"template": "Hello {name}!"}`,
		},
		{
			name:     "empty input",
			input:    "",
			expected: "",
		},
		{
			name:     "not starting with brace",
			input:    "not json",
			expected: "",
		},
		{
			name:     "unbalanced object",
			input:    `{"key": "value"`,
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := extractJSONObject(tt.input)
			if result != tt.expected {
				t.Errorf("extractJSONObject() = %q, want %q", result, tt.expected)
			}
		})
	}
}

func TestExtractJSONArray(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "simple array",
			input:    `["a", "b", "c"]`,
			expected: `["a", "b", "c"]`,
		},
		{
			name:     "nested arrays",
			input:    `[[1, 2], [3, 4]]`,
			expected: `[[1, 2], [3, 4]]`,
		},
		{
			name:     "array of objects",
			input:    `[{"id": 1}, {"id": 2}]`,
			expected: `[{"id": 1}, {"id": 2}]`,
		},
		{
			name:     "array with trailing text",
			input:    `[1, 2, 3] extra stuff`,
			expected: `[1, 2, 3]`,
		},
		{
			name:     "empty input",
			input:    "",
			expected: "",
		},
		{
			name:     "not starting with bracket",
			input:    "not array",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := extractJSONArray(tt.input)
			if result != tt.expected {
				t.Errorf("extractJSONArray() = %q, want %q", result, tt.expected)
			}
		})
	}
}
