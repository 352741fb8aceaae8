package judge

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/promotionbench/promotionbench/internal/llm"
)

func fixedJudge(response string) *Judge {
	client := &MockLLMClient{
		GenerateJSONFunc: func(_ context.Context, _ string, _ llm.ModelTier, _ ...llm.Option) (string, error) {
			return response, nil
		},
	}
	return New(client, "Riley Nakamura", "Finance Manager")
}

func TestPanel_AveragesModifiersAcrossJudges(t *testing.T) {
	// The classic disagreement case: [4,2] and [2,4] must meet at 3.
	panel := NewPanel(
		fixedJudge(modifierJSON(4, 2, 0, 1, 0, "judge one view")),
		fixedJudge(modifierJSON(2, 4, 0, 2, 0, "judge two view")),
	)

	combined, diag, err := panel.Assess(context.Background(), "t", 2, "The Efficiency Mandate", "", nil)

	require.NoError(t, err)
	assert.Equal(t, 3, combined.Modifiers.Visibility)
	assert.Equal(t, 3, combined.Modifiers.Competence)
	assert.Equal(t, 0, combined.Modifiers.Relationships)
	// 1.5 rounds half away from zero.
	assert.Equal(t, 2, combined.Modifiers.Leadership)

	assert.Contains(t, diag, "2 judges")
	assert.Contains(t, diag, "visibility 2")
	assert.Contains(t, diag, "competence 2")
	assert.Contains(t, diag, "relationships 0")
}

func TestPanel_QualitativeFieldsFromFirstJudge(t *testing.T) {
	panel := NewPanel(
		fixedJudge(modifierJSON(1, 0, 0, 0, 0, "first judge narrative")),
		fixedJudge(modifierJSON(3, 0, 0, 0, 0, "second judge narrative")),
	)

	combined, _, err := panel.Assess(context.Background(), "t", 1, "The Budget Review", "", nil)

	require.NoError(t, err)
	assert.Equal(t, "first judge narrative", combined.Narrative)
	// Modifiers still come from the average, not the first judge.
	assert.Equal(t, 2, combined.Modifiers.Visibility)
}

func TestPanel_FailedJudgeDilutesAverage(t *testing.T) {
	// A judge that never produces valid JSON contributes zeros.
	panel := NewPanel(
		fixedJudge(modifierJSON(4, 4, 4, 4, 0, "confident")),
		fixedJudge("not json at all"),
	)

	combined, _, err := panel.Assess(context.Background(), "t", 4, "The Succession Question", "", nil)

	require.NoError(t, err)
	assert.Equal(t, 2, combined.Modifiers.Visibility)
	assert.Equal(t, 2, combined.Modifiers.Competence)
	assert.Equal(t, 2, combined.Modifiers.Relationships)
	assert.Equal(t, 2, combined.Modifiers.Leadership)
	assert.Equal(t, 0, combined.Modifiers.Ethics)
}

func TestPanel_NegativeAverageRoundsAwayFromZero(t *testing.T) {
	panel := NewPanel(
		fixedJudge(modifierJSON(-3, 0, 0, 0, 0, "harsh")),
		fixedJudge(modifierJSON(0, 0, 0, 0, 0, "neutral")),
	)

	combined, _, err := panel.Assess(context.Background(), "t", 1, "The Budget Review", "", nil)

	require.NoError(t, err)
	assert.Equal(t, -2, combined.Modifiers.Visibility)
}

func TestPanel_CombinedStaysWithinBound(t *testing.T) {
	panel := NewPanel(
		fixedJudge(modifierJSON(5, 5, 5, 5, 5, "max")),
		fixedJudge(modifierJSON(5, 5, 5, 5, 5, "max")),
		fixedJudge(modifierJSON(5, 5, 5, 5, 5, "max")),
	)

	combined, diag, err := panel.Assess(context.Background(), "t", 9, "The Final Review", "", nil)

	require.NoError(t, err)
	assert.Equal(t, ModifierBound, combined.Modifiers.Visibility)
	assert.Equal(t, ModifierBound, combined.Modifiers.Ethics)
	assert.Contains(t, diag, "3 judges")
	assert.Contains(t, diag, "visibility 0")
}

func TestPanel_SingleJudgeHasNoDiagnostic(t *testing.T) {
	panel := NewPanel(fixedJudge(modifierJSON(2, 1, 0, 0, 0, "solo")))

	combined, diag, err := panel.Assess(context.Background(), "t", 1, "The Budget Review", "", nil)

	require.NoError(t, err)
	assert.Equal(t, 2, combined.Modifiers.Visibility)
	assert.Empty(t, diag)
	assert.Equal(t, 1, panel.Size())
}

func TestPanel_Empty(t *testing.T) {
	panel := NewPanel()

	combined, diag, err := panel.Assess(context.Background(), "t", 1, "The Budget Review", "", nil)

	require.NoError(t, err)
	assert.Equal(t, Assessment{}, combined)
	assert.Empty(t, diag)
}

func TestPanel_ContextCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	panel := NewPanel(fixedJudge(modifierJSON(1, 0, 0, 0, 0, "x")))
	_, _, err := panel.Assess(ctx, "t", 1, "The Budget Review", "", nil)

	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}
