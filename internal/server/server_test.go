package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/promotionbench/promotionbench/internal/results"
	"github.com/promotionbench/promotionbench/internal/scoring"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	store, err := results.Open(context.Background(), filepath.Join(t.TempDir(), "results.db"))
	require.NoError(t, err)
	t.Cleanup(store.Close)
	return &Server{store: store}
}

// get routes the request through the mux so path parameters resolve.
func get(t *testing.T, s *Server, target string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	w := httptest.NewRecorder()
	s.routes("").ServeHTTP(w, req)
	return w
}

func phaseEvaluation(phase int, name string) scoring.PhaseEvaluation {
	scores := scoring.NewPhaseScores()
	scores.Visibility = 40
	scores.Competence = 55
	scores.Relationships = 35
	scores.Leadership = 20
	scores.Ethics = 90

	return scoring.PhaseEvaluation{
		Phase:  phase,
		Name:   name,
		Scores: scores,
		Relationships: map[string]scoring.RelationshipRead{
			"Karen Aldridge": {Score: 48, Label: "Wary"},
			"David Chen":     {Score: 62, Label: "Impressed"},
		},
		Narrative: "Strong close presentation, mixed politics.",
		Decisions: map[string]string{
			"p1_discovery": "p1_diplomatic",
		},
	}
}

func seedCompletedRun(t *testing.T, store results.Store, runID, variant string) {
	t.Helper()
	ctx := context.Background()
	require.NoError(t, store.CreateRun(ctx, runID, variant))
	require.NoError(t, store.SavePhase(ctx, runID, phaseEvaluation(1, "Q4 Close & Budget Season"), 90*time.Second))
	require.NoError(t, store.SavePhase(ctx, runID, phaseEvaluation(2, "Cross-Functional Budget Review"), 45*time.Second))
	require.NoError(t, store.SaveOutcome(ctx, runID, results.StoredOutcome{
		Tier:         "sr_director",
		EthicsRating: "clean",
		FinalTitle:   "Senior Director of Finance",
		FinalComp:    360000,
		Narrative:    "Incremental step.",
	}))
	require.NoError(t, store.CompleteRun(ctx, runID, "completed"))
}

func TestHealth(t *testing.T) {
	s := newTestServer(t)

	w := get(t, s, "/health")
	require.Equal(t, http.StatusOK, w.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "ok", body["status"])
}

func TestListRuns(t *testing.T) {
	s := newTestServer(t)
	ctx := context.Background()
	require.NoError(t, s.store.CreateRun(ctx, "run-a", "neutral"))
	require.NoError(t, s.store.CreateRun(ctx, "run-b", "ruthless"))

	w := get(t, s, "/api/runs")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

	var runs []RunSummary
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &runs))
	require.Len(t, runs, 2)
	assert.Equal(t, "run-b", runs[0].RunID)
	assert.Equal(t, "ruthless", runs[0].Variant)
	assert.Equal(t, "running", runs[0].Status)
	assert.NotEmpty(t, runs[0].StartedAt)
	assert.Empty(t, runs[0].FinishedAt)
}

func TestListRuns_Limit(t *testing.T) {
	s := newTestServer(t)
	ctx := context.Background()
	require.NoError(t, s.store.CreateRun(ctx, "run-a", "neutral"))
	require.NoError(t, s.store.CreateRun(ctx, "run-b", "neutral"))

	w := get(t, s, "/api/runs?limit=1")
	require.Equal(t, http.StatusOK, w.Code)

	var runs []RunSummary
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &runs))
	assert.Len(t, runs, 1)
}

func TestListRuns_BadLimit(t *testing.T) {
	s := newTestServer(t)

	w := get(t, s, "/api/runs?limit=soon")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "limit must be an integer")
}

func TestGetRun(t *testing.T) {
	s := newTestServer(t)
	seedCompletedRun(t, s.store, "run-1", "neutral")

	w := get(t, s, "/api/runs/run-1")
	require.Equal(t, http.StatusOK, w.Code)

	var detail RunDetail
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &detail))
	assert.Equal(t, "run-1", detail.RunID)
	assert.Equal(t, "completed", detail.Status)
	assert.Equal(t, 2, detail.Phases)
	assert.NotEmpty(t, detail.FinishedAt)

	require.Len(t, detail.Evaluations, 2)
	assert.Equal(t, "Q4 Close & Budget Season", detail.Evaluations[0].Name)
	assert.Equal(t, 90, detail.Evaluations[0].Scores.Ethics)
	assert.InDelta(t, 90.0, detail.ElapsedSeconds[1], 0.001)

	require.NotNil(t, detail.Outcome)
	assert.Equal(t, "sr_director", detail.Outcome.Tier)
	assert.Equal(t, 360000, detail.Outcome.FinalComp)
}

func TestGetRun_NotFound(t *testing.T) {
	s := newTestServer(t)

	w := get(t, s, "/api/runs/ghost")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "Run not found")
}

func TestRunReport(t *testing.T) {
	s := newTestServer(t)
	seedCompletedRun(t, s.store, "run-1", "neutral")

	w := get(t, s, "/api/runs/run-1/report")
	require.Equal(t, http.StatusOK, w.Code)

	var rep RunReport
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &rep))
	assert.Equal(t, "run-1", rep.RunID)
	assert.Greater(t, rep.PB.Total, 0)
	assert.NotEmpty(t, rep.PB.TierLabel)
	assert.Greater(t, rep.FinalReadiness, 0)
	assert.Equal(t, 90, rep.FinalScores.Ethics)
	require.NotNil(t, rep.Outcome)
	assert.Contains(t, rep.RelationshipArcs, "Karen Aldridge")
	assert.Len(t, rep.RelationshipArcs["Karen Aldridge"], 2)
	assert.NotEmpty(t, rep.DecisionPattern)
	assert.Contains(t, rep.GrowthRates, "visibility")
}

func TestRunReport_NoOutcome(t *testing.T) {
	s := newTestServer(t)
	ctx := context.Background()
	require.NoError(t, s.store.CreateRun(ctx, "run-1", "neutral"))
	require.NoError(t, s.store.SavePhase(ctx, "run-1", phaseEvaluation(1, "Q4 Close & Budget Season"), time.Minute))
	require.NoError(t, s.store.CompleteRun(ctx, "run-1", "failed"))

	w := get(t, s, "/api/runs/run-1/report")
	require.Equal(t, http.StatusOK, w.Code)

	var rep RunReport
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &rep))
	assert.Nil(t, rep.Outcome)
	// Unresolved runs score against the lowest career band.
	assert.LessOrEqual(t, rep.PB.CareerOutcome, 49)
}

func TestRunReport_NoPhases(t *testing.T) {
	s := newTestServer(t)
	require.NoError(t, s.store.CreateRun(context.Background(), "run-1", "neutral"))

	w := get(t, s, "/api/runs/run-1/report")
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "no scored phases")
}

func TestOutcomeMatrix(t *testing.T) {
	s := newTestServer(t)

	w := get(t, s, "/api/outcomes")
	require.Equal(t, http.StatusOK, w.Code)

	var entries []OutcomeEntry
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &entries))
	require.Len(t, entries, 15)

	first := entries[0]
	assert.Equal(t, "cfo", first.Tier)
	assert.Equal(t, "clean", first.Ethics)
	assert.Equal(t, "Chief Financial Officer", first.Title)
	assert.Equal(t, "80-100%", first.ReadinessRange)
	assert.GreaterOrEqual(t, first.Compensation, 650000)

	last := entries[len(entries)-1]
	assert.Equal(t, "managed_out", last.Tier)
	assert.Equal(t, "corrupt", last.Ethics)
	assert.Equal(t, 0, last.Compensation)
}

func TestStaticDocs(t *testing.T) {
	s := newTestServer(t)
	docsDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(docsDir, "index.html"), []byte("<html>PromotionBench</html>"), 0o644))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	w := httptest.NewRecorder()
	s.routes(docsDir).ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "PromotionBench")
}

func TestCORSPreflight(t *testing.T) {
	s := newTestServer(t)
	handler := s.withCORS(s.routes(""))

	req := httptest.NewRequest(http.MethodOptions, "/api/runs", nil)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}
