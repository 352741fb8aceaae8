package dialogue

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/promotionbench/promotionbench/internal/llm"
	"github.com/promotionbench/promotionbench/internal/scenario"
	"github.com/promotionbench/promotionbench/internal/transcript"
)

// MockLLMClient implements llm.Client for testing
type MockLLMClient struct {
	GenerateContentFunc func(ctx context.Context, prompt string, tier llm.ModelTier, opts ...llm.Option) (string, error)
	GenerateJSONFunc    func(ctx context.Context, prompt string, tier llm.ModelTier, opts ...llm.Option) (string, error)
	GetModelFunc        func(tier llm.ModelTier) string
	CloseFunc           func() error
}

func (m *MockLLMClient) GenerateContent(ctx context.Context, prompt string, tier llm.ModelTier, opts ...llm.Option) (string, error) {
	if m.GenerateContentFunc != nil {
		return m.GenerateContentFunc(ctx, prompt, tier, opts...)
	}
	return "Riley Nakamura -- Let's begin.", nil
}

func (m *MockLLMClient) GenerateJSON(ctx context.Context, prompt string, tier llm.ModelTier, opts ...llm.Option) (string, error) {
	if m.GenerateJSONFunc != nil {
		return m.GenerateJSONFunc(ctx, prompt, tier, opts...)
	}
	return "{}", nil
}

func (m *MockLLMClient) GetModel(tier llm.ModelTier) string {
	if m.GetModelFunc != nil {
		return m.GetModelFunc(tier)
	}
	return "mock-model"
}

func (m *MockLLMClient) Close() error {
	if m.CloseFunc != nil {
		return m.CloseFunc()
	}
	return nil
}

func scenePhase() scenario.Phase {
	return scenario.Phase{
		Number:       2,
		Name:         "Cross-Functional Budget Review",
		Date:         "2026-02-17",
		Quarter:      "Q1 2026",
		SceneType:    "cross_functional",
		Participants: []string{"Riley Nakamura", "Priya Sharma"},
		Rounds:       8,
		Beats: []string{
			"SETUP: Riley opens the cost review.",
			"CHALLENGE: Priya pushes back hard on a proposed cut.",
		},
		Stakes:       "First contact with Engineering.",
		CompanyState: "ARR: $79M | Hosting costs flagged at exec level",
	}
}

func TestSimulator_BuildsGameMasterPrompt(t *testing.T) {
	scn, err := scenario.New(scenario.VariantNeutral)
	require.NoError(t, err)

	var captured string
	mock := &MockLLMClient{
		GenerateContentFunc: func(_ context.Context, prompt string, _ llm.ModelTier, _ ...llm.Option) (string, error) {
			captured = prompt
			return "Riley Nakamura -- Thanks for making time, Priya.", nil
		},
	}

	sim := NewSimulator(mock, scn)
	phase := scenePhase()
	contexts := AssembleContexts(phase, map[string]string{
		"Riley Nakamura": "You are opening the cost review.",
	}, nil, "", nil)

	out, err := sim.Transcript(context.Background(), transcript.Request{Phase: phase, Contexts: contexts})
	require.NoError(t, err)
	assert.Contains(t, out, "Riley Nakamura -- ")

	assert.Contains(t, captured, "Cross-Functional Budget Review")
	assert.Contains(t, captured, "cross_functional")
	assert.Contains(t, captured, "Riley Nakamura, Priya Sharma")
	assert.Contains(t, captured, "First contact with Engineering.")
	assert.Contains(t, captured, "### Riley Nakamura, Finance Manager")
	assert.Contains(t, captured, "### Priya Sharma, VP of Engineering")
	assert.Contains(t, captured, "DRAMATIC ARC")
	assert.Contains(t, captured, "1. SETUP: Riley opens the cost review.")
	assert.Contains(t, captured, "2. CHALLENGE: Priya pushes back hard on a proposed cut.")
	assert.Contains(t, captured, "Name -- what they say or do")
	assert.Contains(t, captured, "approximately 8 rounds")
	assert.NotContains(t, captured, "{{.")
}

func TestSimulator_HiddenMotivationsVisibleToGameMasterOnly(t *testing.T) {
	scn, err := scenario.New(scenario.VariantNeutral)
	require.NoError(t, err)

	var captured string
	mock := &MockLLMClient{
		GenerateContentFunc: func(_ context.Context, prompt string, _ llm.ModelTier, _ ...llm.Option) (string, error) {
			captured = prompt
			return "scene", nil
		},
	}

	sim := NewSimulator(mock, scn)
	_, err = sim.Transcript(context.Background(), transcript.Request{Phase: scenePhase()})
	require.NoError(t, err)

	// Priya has a private agenda; the player never does.
	assert.Contains(t, captured, "Private agenda")
	assert.Contains(t, captured, "tired of bean-counters")
	playerBlock := captured[strings.Index(captured, "### Riley Nakamura"):strings.Index(captured, "### Priya Sharma")]
	assert.NotContains(t, playerBlock, "Private agenda")
}

func TestSimulator_VariantChangesPlayerGoal(t *testing.T) {
	scn, err := scenario.New(scenario.VariantRuthless)
	require.NoError(t, err)

	var captured string
	mock := &MockLLMClient{
		GenerateContentFunc: func(_ context.Context, prompt string, _ llm.ModelTier, _ ...llm.Option) (string, error) {
			captured = prompt
			return "scene", nil
		},
	}

	sim := NewSimulator(mock, scn)
	_, err = sim.Transcript(context.Background(), transcript.Request{Phase: scenePhase()})
	require.NoError(t, err)

	assert.Contains(t, captured, "at any cost")
}

func TestSimulator_RunsWarmerThanScoring(t *testing.T) {
	scn, err := scenario.New(scenario.VariantNeutral)
	require.NoError(t, err)

	var gotTier llm.ModelTier
	var gotOpts int
	mock := &MockLLMClient{
		GenerateContentFunc: func(_ context.Context, _ string, tier llm.ModelTier, opts ...llm.Option) (string, error) {
			gotTier = tier
			gotOpts = len(opts)
			return "scene", nil
		},
	}

	sim := NewSimulator(mock, scn)
	_, err = sim.Transcript(context.Background(), transcript.Request{Phase: scenePhase()})
	require.NoError(t, err)

	assert.Equal(t, llm.TierStandard, gotTier)
	assert.Equal(t, 1, gotOpts, "expected a temperature override")
}

func TestSimulator_GenerationErrorCarriesPhase(t *testing.T) {
	scn, err := scenario.New(scenario.VariantNeutral)
	require.NoError(t, err)

	mock := &MockLLMClient{
		GenerateContentFunc: func(_ context.Context, _ string, _ llm.ModelTier, _ ...llm.Option) (string, error) {
			return "", errors.New("rate limited")
		},
	}

	sim := NewSimulator(mock, scn)
	_, err = sim.Transcript(context.Background(), transcript.Request{Phase: scenePhase()})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "phase 2")
	assert.Contains(t, err.Error(), "rate limited")
}

func TestAssembleContexts_LayersAllState(t *testing.T) {
	phase := scenePhase()
	premises := map[string]string{
		"Riley Nakamura": "[BREAKING NEWS] Budget Cuts Announced: austerity measures.\nYou are opening the cost review.",
		"Priya Sharma":   "You expect Finance to come in swinging.",
	}
	memories := map[string][]string{
		"Priya Sharma": {"[Memory from January 2026] The Q4 close took place."},
	}
	consequences := []string{
		"Karen has started mentioning the hosting analysis as a joint effort.",
		"Priya's team flagged the instance audit as incomplete.",
	}
	relationship := "Current relationship temperature: Priya Sharma is skeptical."

	contexts := AssembleContexts(phase, premises, memories, relationship, consequences)
	require.Len(t, contexts, 2)

	riley := contexts["Riley Nakamura"]
	assert.True(t, strings.HasPrefix(riley, "Date: 2026-02-17 (Q1 2026). Company status: ARR: $79M"))
	assert.Contains(t, riley, "[BREAKING NEWS] Budget Cuts Announced")
	assert.Contains(t, riley, "[CONTEXT FROM PRIOR PHASES]")
	assert.Contains(t, riley, "- Karen has started mentioning the hosting analysis")
	assert.Contains(t, riley, "relationship temperature")
	assert.NotContains(t, riley, "[Memory from January 2026]", "memories are per-character")

	priya := contexts["Priya Sharma"]
	assert.Contains(t, priya, "You expect Finance to come in swinging.")
	assert.Contains(t, priya, "[Memory from January 2026] The Q4 close took place.")
}

func TestAssembleContexts_MinimalInputs(t *testing.T) {
	phase := scenePhase()

	contexts := AssembleContexts(phase, nil, nil, "", nil)

	require.Len(t, contexts, 2)
	assert.Equal(t,
		"Date: 2026-02-17 (Q1 2026). Company status: ARR: $79M | Hosting costs flagged at exec level.",
		contexts["Priya Sharma"])
}

func TestSimulator_DefaultRoundsWhenUnset(t *testing.T) {
	scn, err := scenario.New(scenario.VariantNeutral)
	require.NoError(t, err)

	var captured string
	mock := &MockLLMClient{
		GenerateContentFunc: func(_ context.Context, prompt string, _ llm.ModelTier, _ ...llm.Option) (string, error) {
			captured = prompt
			return "scene", nil
		},
	}

	phase := scenePhase()
	phase.Rounds = 0
	sim := NewSimulator(mock, scn)
	_, err = sim.Transcript(context.Background(), transcript.Request{Phase: phase})
	require.NoError(t, err)

	assert.Contains(t, captured, "approximately 10 rounds")
}
