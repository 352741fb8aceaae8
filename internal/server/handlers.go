package server

import (
	"net/http"
	"strconv"
	"time"

	"github.com/promotionbench/promotionbench/internal/outcome"
	"github.com/promotionbench/promotionbench/internal/report"
	"github.com/promotionbench/promotionbench/internal/results"
	"github.com/promotionbench/promotionbench/internal/scenario"
	"github.com/promotionbench/promotionbench/internal/scoring"
)

// RunSummary is the shallow run listing entry.
type RunSummary struct {
	RunID      string `json:"run_id"`
	Variant    string `json:"variant"`
	Status     string `json:"status"`
	StartedAt  string `json:"started_at"`
	FinishedAt string `json:"finished_at,omitempty"`
	Phases     int    `json:"phases"`
}

// RunDetail is a full stored run with its per-phase history.
type RunDetail struct {
	RunSummary
	Evaluations    []scoring.PhaseEvaluation `json:"evaluations"`
	ElapsedSeconds map[int]float64           `json:"elapsed_seconds,omitempty"`
	Outcome        *results.StoredOutcome    `json:"outcome,omitempty"`
}

// RunReport is the computed report for one run: PB Score, final state,
// and the derived analyses.
type RunReport struct {
	RunID             string                       `json:"run_id"`
	PB                report.Score                 `json:"pb_score"`
	FinalReadiness    int                          `json:"final_readiness"`
	FinalScores       scoring.PhaseScores          `json:"final_scores"`
	Outcome           *results.StoredOutcome       `json:"outcome,omitempty"`
	EmergentBehaviors []report.Behavior            `json:"emergent_behaviors"`
	RelationshipArcs  map[string][]report.ArcPoint `json:"relationship_arcs"`
	DecisionPattern   map[string]string            `json:"decision_pattern"`
	GrowthRates       map[string]float64           `json:"growth_rates"`
}

// OutcomeEntry is one cell of the tier-by-ethics outcome matrix.
type OutcomeEntry struct {
	Tier           string `json:"tier"`
	Ethics         string `json:"ethics"`
	Title          string `json:"title"`
	Compensation   int    `json:"compensation"`
	ReadinessRange string `json:"readiness_range"`
	EthicsRange    string `json:"ethics_range"`
}

func runSummary(rec results.RunRecord) RunSummary {
	summary := RunSummary{
		RunID:     rec.RunID,
		Variant:   rec.Variant,
		Status:    rec.Status,
		StartedAt: rec.StartedAt.UTC().Format(time.RFC3339),
		Phases:    rec.PhaseCount,
	}
	if rec.FinishedAt != nil {
		summary.FinishedAt = rec.FinishedAt.UTC().Format(time.RFC3339)
	}
	return summary
}

// handleListRuns returns stored runs, most recent first.
func (s *Server) handleListRuns(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			s.errorResponse(w, http.StatusBadRequest, "limit must be an integer")
			return
		}
		limit = parsed
	}

	records, err := s.store.ListRuns(r.Context(), limit)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Failed to list runs")
		return
	}

	summaries := make([]RunSummary, 0, len(records))
	for _, rec := range records {
		summaries = append(summaries, runSummary(rec))
	}
	s.jsonResponse(w, http.StatusOK, summaries)
}

// handleGetRun returns one run with its full phase history.
func (s *Server) handleGetRun(w http.ResponseWriter, r *http.Request) {
	rec, ok := s.loadRun(w, r)
	if !ok {
		return
	}

	s.jsonResponse(w, http.StatusOK, RunDetail{
		RunSummary:     runSummary(*rec),
		Evaluations:    rec.Evaluations,
		ElapsedSeconds: rec.Elapsed,
		Outcome:        rec.Outcome,
	})
}

// handleRunReport computes the PB Score and derived analyses for a run.
func (s *Server) handleRunReport(w http.ResponseWriter, r *http.Request) {
	rec, ok := s.loadRun(w, r)
	if !ok {
		return
	}
	if len(rec.Evaluations) == 0 {
		s.errorResponse(w, http.StatusConflict, "run has no scored phases")
		return
	}

	final := rec.Evaluations[len(rec.Evaluations)-1].Scores

	// Rebuild the typed outcome from the final scores when the run
	// recorded one. Resolve is deterministic, so this matches what the
	// pipeline stored.
	var oc *outcome.Outcome
	if rec.Outcome != nil {
		resolved := outcome.Resolve(scenario.PlayerName, final.PromotionReadiness(), final.Ethics)
		oc = &resolved
	}

	s.jsonResponse(w, http.StatusOK, RunReport{
		RunID:             rec.RunID,
		PB:                report.PBScore(rec.Evaluations, oc),
		FinalReadiness:    final.PromotionReadiness(),
		FinalScores:       final,
		Outcome:           rec.Outcome,
		EmergentBehaviors: report.DetectEmergentBehaviors(rec.Evaluations),
		RelationshipArcs:  report.RelationshipArcs(rec.Evaluations),
		DecisionPattern:   report.DecisionPattern(rec.Evaluations),
		GrowthRates:       report.GrowthRates(rec.Evaluations),
	})
}

// handleOutcomeMatrix returns every tier-by-ethics outcome combination.
func (s *Server) handleOutcomeMatrix(w http.ResponseWriter, _ *http.Request) {
	matrix := outcome.Matrix(scenario.PlayerName)
	entries := make([]OutcomeEntry, 0, len(matrix))
	for _, cell := range matrix {
		entries = append(entries, OutcomeEntry{
			Tier:           cell.Tier,
			Ethics:         cell.Ethics,
			Title:          cell.Title,
			Compensation:   cell.Comp,
			ReadinessRange: cell.ReadinessRange,
			EthicsRange:    cell.EthicsRange,
		})
	}
	s.jsonResponse(w, http.StatusOK, entries)
}

// loadRun resolves the {id} path parameter to a stored run, writing the
// error response itself when the run cannot be served.
func (s *Server) loadRun(w http.ResponseWriter, r *http.Request) (*results.RunRecord, bool) {
	runID := r.PathValue("id")
	if runID == "" {
		s.errorResponse(w, http.StatusBadRequest, "Run ID is required")
		return nil, false
	}

	rec, err := s.store.LoadRun(r.Context(), runID)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Failed to load run")
		return nil, false
	}
	if rec == nil {
		s.errorResponse(w, http.StatusNotFound, "Run not found")
		return nil, false
	}
	return rec, true
}
