package prompts

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGet_ValidPrompt(t *testing.T) {
	ClearCache()

	prompt, err := Get("classification.json", "classify-decision")
	require.NoError(t, err)
	assert.NotEmpty(t, prompt)
	assert.Contains(t, prompt, "decision point")
	assert.Contains(t, prompt, "{{.Transcript}}")
}

func TestGet_InvalidFile(t *testing.T) {
	ClearCache()

	_, err := Get("nonexistent.json", "some-key")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read prompt file")
}

func TestGet_InvalidKey(t *testing.T) {
	ClearCache()

	_, err := Get("classification.json", "nonexistent-key")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestMustGet_Panics(t *testing.T) {
	ClearCache()

	assert.Panics(t, func() {
		MustGet("nonexistent.json", "some-key")
	})
}

func TestMustGet_ValidPrompt(t *testing.T) {
	ClearCache()

	assert.NotPanics(t, func() {
		prompt := MustGet("judging.json", "assess-execution")
		assert.NotEmpty(t, prompt)
	})
}

func TestFormat(t *testing.T) {
	template := "Phase {{.PhaseNumber}}: {{.PhaseName}}"
	data := map[string]string{
		"PhaseNumber": "3",
		"PhaseName":   "The Credit Grab",
	}

	result := Format(template, data)
	assert.Equal(t, "Phase 3: The Credit Grab", result)
}

func TestFormat_NoPlaceholders(t *testing.T) {
	template := "No placeholders here"
	data := map[string]string{"Key": "Value"}

	result := Format(template, data)
	assert.Equal(t, template, result)
}

func TestFormat_EmptyData(t *testing.T) {
	template := "Hello {{.Name}}"
	data := map[string]string{}

	result := Format(template, data)
	assert.Equal(t, template, result) // Placeholder remains
}

func TestList(t *testing.T) {
	ClearCache()

	keys, err := List("dialogue.json")
	require.NoError(t, err)
	assert.Contains(t, keys, "simulate-scene")
}

// The engine loads these at startup via MustGet, so a missing key is a
// panic at runtime. Keep this table in sync with the call sites.
func TestAllRequiredPromptsPresent(t *testing.T) {
	ClearCache()

	required := map[string][]string{
		"classification.json": {"classify-decision"},
		"judging.json":        {"assess-execution"},
		"dialogue.json":       {"simulate-scene"},
		"memory.json":         {"phase-summary"},
	}

	for filename, keys := range required {
		available, err := List(filename)
		require.NoError(t, err, filename)
		for _, key := range keys {
			assert.Contains(t, available, key, "%s missing %s", filename, key)
		}
	}
}

func TestJudgingPromptScopesToExecutionQuality(t *testing.T) {
	ClearCache()

	prompt := MustGet("judging.json", "assess-execution")
	assert.Contains(t, prompt, "execution quality")
	assert.Contains(t, prompt, "-5")
	assert.Contains(t, prompt, "modifiers")
	for _, placeholder := range []string{
		"{{.PlayerName}}", "{{.PhaseNumber}}", "{{.PhaseName}}",
		"{{.PreviousScores}}", "{{.Calibration}}", "{{.Transcript}}",
	} {
		assert.Contains(t, prompt, placeholder)
	}
}

func TestCaching(t *testing.T) {
	ClearCache()

	// First call loads from file
	prompt1, err := Get("memory.json", "phase-summary")
	require.NoError(t, err)

	// Second call should use cache
	prompt2, err := Get("memory.json", "phase-summary")
	require.NoError(t, err)

	assert.Equal(t, prompt1, prompt2)
}
