package checkpoint

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/promotionbench/promotionbench/internal/ledger"
	"github.com/promotionbench/promotionbench/internal/scoring"
)

func sampleCheckpoint(runID string) *Checkpoint {
	state := ledger.New([]string{"Karen Aldridge", "Marcus Webb"})
	state.MarkEventFired("Recruiter Call")

	eval := scoring.PhaseEvaluation{
		Phase:  2,
		Name:   "The Efficiency Mandate",
		Scores: scoring.NewPhaseScores(),
		Decisions: map[string]string{
			"p2_headcount": "p2_push_back",
		},
		Narrative: "Held the line on the analyst team.",
	}
	eval.Scores.Competence = 65

	return &Checkpoint{
		RunID:            runID,
		Variant:          "neutral",
		CompletedPhases:  []int{2, 1},
		PhaseEvaluations: []scoring.PhaseEvaluation{eval},
		MemorySummaries: map[string][]string{
			"Karen Aldridge": {"[Memory from March 2026] The budget review took place."},
		},
		State: state,
		RunMeta: Meta{
			StartedAt: time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC),
			Model:     "gemini-2.5-flash",
			Judges:    3,
			Seed:      42,
		},
	}
}

func TestSaveAndLoadRoundTrip(t *testing.T) {
	mgr := NewManager(t.TempDir())

	path, err := mgr.Save(sampleCheckpoint("run-abc"))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(mgr.Dir, "run-abc.checkpoint.json"), path)

	got, err := mgr.Load("run-abc")
	require.NoError(t, err)
	require.NotNil(t, got)

	assert.Equal(t, "run-abc", got.RunID)
	assert.Equal(t, "neutral", got.Variant)
	assert.Equal(t, []int{1, 2}, got.CompletedPhases, "phases are sorted on save")
	assert.Equal(t, 3, got.RunMeta.Judges)
	assert.False(t, got.LastSaved.IsZero())

	evals := got.Evaluations()
	require.Len(t, evals, 1)
	assert.Equal(t, "The Efficiency Mandate", evals[0].Name)
	assert.Equal(t, 65, evals[0].Scores.Competence)
	assert.Equal(t, "p2_push_back", evals[0].Decisions["p2_headcount"])

	restored := got.Ledger()
	require.NotNil(t, restored)
	assert.True(t, restored.EventFired("Recruiter Call"))
	_, tracked := restored.RelationshipDelta("Karen Aldridge")
	assert.True(t, tracked)
}

func TestSave_AtomicLeavesNoTempFile(t *testing.T) {
	mgr := NewManager(t.TempDir())

	_, err := mgr.Save(sampleCheckpoint("run-tmp"))
	require.NoError(t, err)

	entries, err := os.ReadDir(mgr.Dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "run-tmp.checkpoint.json", entries[0].Name())
}

func TestSave_OverwritesPreviousSnapshot(t *testing.T) {
	mgr := NewManager(t.TempDir())

	cp := sampleCheckpoint("run-abc")
	_, err := mgr.Save(cp)
	require.NoError(t, err)

	cp.MarkCompleted(3)
	_, err = mgr.Save(cp)
	require.NoError(t, err)

	got, err := mgr.Load("run-abc")
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 3}, got.CompletedPhases)
}

func TestLoad_MissingReturnsNilNil(t *testing.T) {
	mgr := NewManager(t.TempDir())

	got, err := mgr.Load("never-saved")
	assert.NoError(t, err)
	assert.Nil(t, got)
}

func TestLoad_MalformedReturnsError(t *testing.T) {
	mgr := NewManager(t.TempDir())
	path := filepath.Join(mgr.Dir, "broken.checkpoint.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	_, err := mgr.Load("broken")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse checkpoint")
}

func TestLoad_SchemaInvalidReturnsError(t *testing.T) {
	mgr := NewManager(t.TempDir())
	// Well-formed JSON, but the variant is outside the allowed set.
	raw := `{
		"run_id": "run-bad",
		"variant": "aggressive",
		"completed_phases": [1],
		"last_saved": "2026-03-01T09:00:00Z"
	}`
	path := filepath.Join(mgr.Dir, "run-bad.checkpoint.json")
	require.NoError(t, os.WriteFile(path, []byte(raw), 0o644))

	_, err := mgr.Load("run-bad")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed validation")
}

func TestFindLatest_PicksNewestByModTime(t *testing.T) {
	mgr := NewManager(t.TempDir())

	_, err := mgr.Save(sampleCheckpoint("run-old"))
	require.NoError(t, err)
	_, err = mgr.Save(sampleCheckpoint("run-new"))
	require.NoError(t, err)

	// Push the first save firmly into the past so mtime ordering does
	// not depend on filesystem timestamp resolution.
	past := time.Now().Add(-time.Hour)
	require.NoError(t, os.Chtimes(filepath.Join(mgr.Dir, "run-old.checkpoint.json"), past, past))

	got, err := mgr.FindLatest()
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "run-new", got.RunID)
}

func TestFindLatest_EmptyDirReturnsNilNil(t *testing.T) {
	mgr := NewManager(t.TempDir())

	got, err := mgr.FindLatest()
	assert.NoError(t, err)
	assert.Nil(t, got)
}

func TestFindLatest_MissingDirReturnsNilNil(t *testing.T) {
	mgr := NewManager(filepath.Join(t.TempDir(), "does-not-exist"))

	got, err := mgr.FindLatest()
	assert.NoError(t, err)
	assert.Nil(t, got)
}

func TestDelete(t *testing.T) {
	mgr := NewManager(t.TempDir())

	_, err := mgr.Save(sampleCheckpoint("run-abc"))
	require.NoError(t, err)

	assert.True(t, mgr.Delete("run-abc"))
	assert.False(t, mgr.Delete("run-abc"), "second delete finds nothing")

	got, err := mgr.Load("run-abc")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestMarkCompleted_DedupesAndSorts(t *testing.T) {
	var cp Checkpoint
	cp.MarkCompleted(3)
	cp.MarkCompleted(1)
	cp.MarkCompleted(3)
	cp.MarkCompleted(2)

	assert.Equal(t, []int{1, 2, 3}, cp.CompletedPhases)
}

func TestNextPhase(t *testing.T) {
	var cp Checkpoint
	assert.Equal(t, 1, cp.NextPhase())

	cp.MarkCompleted(1)
	cp.MarkCompleted(2)
	assert.Equal(t, 3, cp.NextPhase())
}

func TestLedger_AbsentStateYieldsFreshLedger(t *testing.T) {
	cp := &Checkpoint{RunID: "bare"}

	restored := cp.Ledger()
	require.NotNil(t, restored)
	assert.Equal(t, 100, restored.Scores().Ethics)
	assert.Empty(t, restored.FiredEvents())
}

func TestLoad_ToleratesUnknownAndMissingFields(t *testing.T) {
	mgr := NewManager(t.TempDir())
	raw := `{
		"run_id": "legacy",
		"variant": "ruthless",
		"completed_phases": [1],
		"last_saved": "2026-03-01T09:00:00Z",
		"some_future_field": {"nested": true}
	}`
	path := filepath.Join(mgr.Dir, "legacy.checkpoint.json")
	require.NoError(t, os.WriteFile(path, []byte(raw), 0o644))

	got, err := mgr.Load("legacy")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "ruthless", got.Variant)
	assert.Empty(t, got.Evaluations())
	assert.NotNil(t, got.Ledger())
}

func TestSavedFileIsIndentedJSON(t *testing.T) {
	mgr := NewManager(t.TempDir())

	path, err := mgr.Save(sampleCheckpoint("run-abc"))
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, json.Valid(data))
	assert.Contains(t, string(data), "\n  \"run_id\"")
}
