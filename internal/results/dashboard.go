package results

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/promotionbench/promotionbench/internal/outcome"
	"github.com/promotionbench/promotionbench/internal/scenario"
	"github.com/promotionbench/promotionbench/internal/scoring"
)

// SchemaVersion tracks the published results shape, not the module.
// Baselines built from stored runs carry the same version string.
const SchemaVersion = "2.1.0"

// DashboardMeta carries the run-level fields of the export.
type DashboardMeta struct {
	RunID        string
	Variant      string
	Model        string
	StartTime    time.Time
	TotalElapsed time.Duration
	PhaseElapsed map[int]float64
}

type dashboardExperiment struct {
	Name                string  `json:"name"`
	Version             string  `json:"version"`
	RunID               string  `json:"run_id,omitempty"`
	RunDate             string  `json:"run_date"`
	TotalElapsedSeconds float64 `json:"total_elapsed_seconds"`
	Variant             string  `json:"variant"`
}

type dashboardProtagonist struct {
	Name         string `json:"name"`
	Model        string `json:"model"`
	CurrentTitle string `json:"current_title"`
	TargetTitle  string `json:"target_title"`
	StartingComp int    `json:"starting_comp"`
}

type dashboardCompany struct {
	Name     string `json:"name"`
	ARR      int    `json:"arr"`
	Industry string `json:"industry"`
}

type dashboardCastMember struct {
	Name  string `json:"name"`
	Title string `json:"title"`
	Model string `json:"model"`
	Role  string `json:"role"`
}

type dashboardPhase struct {
	scoring.PhaseEvaluation
	ElapsedSeconds float64 `json:"elapsed_seconds"`
}

type dashboard struct {
	Experiment  dashboardExperiment   `json:"experiment"`
	Protagonist dashboardProtagonist  `json:"protagonist"`
	Company     dashboardCompany      `json:"company"`
	Cast        []dashboardCastMember `json:"cast"`
	Phases      []dashboardPhase      `json:"phases"`
	Outcome     json.RawMessage       `json:"outcome,omitempty"`
}

// WriteDashboard exports the published dashboard JSON for one run:
// experiment metadata, protagonist, company, cast, per-phase results
// with elapsed seconds, and the final outcome when the run got that far.
func WriteDashboard(path string, scn *scenario.Scenario, meta DashboardMeta,
	evals []scoring.PhaseEvaluation, oc *outcome.Outcome) error {

	player := scn.Player()
	data := dashboard{
		Experiment: dashboardExperiment{
			Name:                "PromotionBench",
			Version:             SchemaVersion,
			RunID:               meta.RunID,
			RunDate:             meta.StartTime.UTC().Format(time.RFC3339),
			TotalElapsedSeconds: meta.TotalElapsed.Seconds(),
			Variant:             string(scn.Variant),
		},
		Protagonist: dashboardProtagonist{
			Name:         player.Name,
			Model:        meta.Model,
			CurrentTitle: player.Title,
			TargetTitle:  scenario.TargetTitle,
			StartingComp: scenario.StartingCompensation,
		},
		Company: dashboardCompany{
			Name:     scenario.CompanyName,
			ARR:      scenario.ARR,
			Industry: scenario.Industry,
		},
	}

	// One model plays the whole room, so every cast member reports it.
	for _, c := range scn.Cast {
		role := "NPC"
		if c.IsPlayer {
			role = "Protagonist"
		}
		data.Cast = append(data.Cast, dashboardCastMember{
			Name:  c.Name,
			Title: c.Title,
			Model: meta.Model,
			Role:  role,
		})
	}

	data.Phases = make([]dashboardPhase, 0, len(evals))
	for _, ev := range evals {
		data.Phases = append(data.Phases, dashboardPhase{
			PhaseEvaluation: ev,
			ElapsedSeconds:  meta.PhaseElapsed[ev.Phase],
		})
	}

	if oc != nil {
		raw, err := json.Marshal(oc)
		if err != nil {
			return fmt.Errorf("failed to marshal outcome: %w", err)
		}
		data.Outcome = raw
	}

	out, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal dashboard: %w", err)
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create dashboard dir: %w", err)
		}
	}
	if err := os.WriteFile(path, out, 0o644); err != nil {
		return fmt.Errorf("failed to write dashboard: %w", err)
	}
	return nil
}
