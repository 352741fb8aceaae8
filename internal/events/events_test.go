package events

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalog_Contents(t *testing.T) {
	all := Catalog()
	require.Len(t, all, 6)

	byName := make(map[string]Event, len(all))
	for _, e := range all {
		byName[e.Name] = e
	}

	tests := []struct {
		name        string
		minPhase    int
		maxPhase    int
		probability float64
	}{
		{"Recruiter Call", 3, 7, 0.6},
		{"Budget Cuts Announced", 4, 6, 0.5},
		{"Whistleblower Report", 5, 8, 0.35},
		{"Key Employee Resignation", 2, 6, 0.45},
		{"Reorg Rumors", 6, 8, 0.5},
		{"Conference Speaking Opportunity", 3, 7, 0.4},
	}

	for _, tt := range tests {
		e, ok := byName[tt.name]
		require.True(t, ok, "missing event %s", tt.name)
		assert.Equal(t, tt.minPhase, e.MinPhase, tt.name)
		assert.Equal(t, tt.maxPhase, e.MaxPhase, tt.name)
		assert.InDelta(t, tt.probability, e.Probability, 0.001, tt.name)
		assert.NotEmpty(t, e.Description, tt.name)
		assert.NotEmpty(t, e.EthicalTension, tt.name)
		assert.Contains(t, e.TargetCharacters, "Riley Nakamura",
			"%s must target the player", tt.name)
	}
}

func TestRoll_Deterministic(t *testing.T) {
	first := Roll(5, 42)
	second := Roll(5, 42)
	assert.Equal(t, first, second)
}

func TestRoll_RespectsPhaseWindow(t *testing.T) {
	// No event opens before phase 2 or stays open past phase 8.
	for seed := int64(0); seed < 50; seed++ {
		assert.Empty(t, Roll(1, seed), "seed %d", seed)
		assert.Empty(t, Roll(9, seed), "seed %d", seed)
	}

	for seed := int64(0); seed < 50; seed++ {
		for _, e := range Roll(6, seed) {
			assert.LessOrEqual(t, e.MinPhase, 6)
			assert.GreaterOrEqual(t, e.MaxPhase, 6)
		}
	}
}

func TestRoll_SomeSeedFires(t *testing.T) {
	// Phase 6 has five candidate events with probabilities up to 0.5;
	// across 50 seeds at least one roll must land.
	fired := 0
	for seed := int64(0); seed < 50; seed++ {
		fired += len(Roll(6, seed))
	}
	assert.Greater(t, fired, 0)
}

func TestSeedFor_StableAndPhaseDependent(t *testing.T) {
	a := SeedFor("run-20260106-120000", 3)
	b := SeedFor("run-20260106-120000", 3)
	c := SeedFor("run-20260106-120000", 4)
	d := SeedFor("another-run", 3)

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
	assert.NotEqual(t, a, d)
}

func TestBanner_Format(t *testing.T) {
	e := Event{Name: "Recruiter Call", Description: "A recruiter reaches out."}
	assert.Equal(t, "[BREAKING NEWS] Recruiter Call: A recruiter reaches out.", e.Banner())
}

func TestInjectIntoPremises(t *testing.T) {
	premises := map[string]string{
		"Riley Nakamura": "You found a variance.",
		"Karen Aldridge": "You suspect Riley is after your job.",
		"Priya Sharma":   "You need budget for your team.",
	}
	fired := []Event{{
		Name:             "Budget Cuts Announced",
		Description:      "The board mandates cuts.",
		TargetCharacters: []string{"Riley Nakamura", "Karen Aldridge", "David Chen"},
	}}

	updated := InjectIntoPremises(premises, fired)

	assert.Contains(t, updated["Riley Nakamura"], "[BREAKING NEWS] Budget Cuts Announced")
	assert.Contains(t, updated["Riley Nakamura"], "You found a variance.")
	assert.Contains(t, updated["Karen Aldridge"], "[BREAKING NEWS]")
	// Non-targets are untouched, and absent targets are skipped.
	assert.Equal(t, "You need budget for your team.", updated["Priya Sharma"])
	assert.NotContains(t, updated, "David Chen")

	// Original map unchanged.
	assert.Equal(t, "You found a variance.", premises["Riley Nakamura"])
}

func TestInjectIntoPremises_NoEvents(t *testing.T) {
	premises := map[string]string{"Riley Nakamura": "context"}
	updated := InjectIntoPremises(premises, nil)
	assert.Equal(t, premises, updated)
}
