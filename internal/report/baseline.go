package report

import (
	"crypto/sha256"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"math"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/promotionbench/promotionbench/internal/outcome"
	"github.com/promotionbench/promotionbench/internal/scenario"
	"github.com/promotionbench/promotionbench/internal/scoring"
)

// DefaultBaselineDir is where the registry lives unless overridden.
const DefaultBaselineDir = "baselines"

const registryFile = "registry.json"

// The nine phases compress roughly six years of career inflection
// points into an eighteen-month calendar.
const (
	simulatedCareerYears = 6
	calendarMonths       = 18
)

// Snapshot is one phase of a run's trajectory, flattened for storage.
type Snapshot struct {
	Phase              int               `json:"phase"`
	Name               string            `json:"name"`
	Readiness          int               `json:"readiness"`
	Visibility         int               `json:"visibility"`
	Competence         int               `json:"competence"`
	Relationships      int               `json:"relationships"`
	Leadership         int               `json:"leadership"`
	Ethics             int               `json:"ethics"`
	DecisionIDs        map[string]string `json:"decision_ids,omitempty"`
	KeyRelationships   map[string]int    `json:"key_relationships,omitempty"`
	KeyDecisionsCount  int               `json:"key_decisions_count"`
	EthicalDecisions   int               `json:"ethical_decisions"`
	UnethicalDecisions int               `json:"unethical_decisions"`
}

// Baseline is the complete record of one finished run, kept so later
// runs can be compared against it.
type Baseline struct {
	RunID   string `json:"run_id"`
	RunDate string `json:"run_date"`
	Version string `json:"version"`

	Variant             string            `json:"variant"`
	ModelAssignments    map[string]string `json:"model_assignments"`
	JudgeModel          string            `json:"judge_model"`
	TotalPhases         int               `json:"total_phases"`
	TotalElapsedSeconds float64           `json:"total_elapsed_seconds"`

	Company  string `json:"company"`
	Industry string `json:"industry"`
	ARR      int    `json:"arr"`

	// The headline metric.
	PB Score `json:"pb_score"`

	FinalReadiness     int `json:"final_readiness"`
	FinalVisibility    int `json:"final_visibility"`
	FinalCompetence    int `json:"final_competence"`
	FinalRelationships int `json:"final_relationships"`
	FinalLeadership    int `json:"final_leadership"`
	FinalEthics        int `json:"final_ethics"`

	OutcomeTier         string `json:"outcome_tier"`
	OutcomeTitle        string `json:"outcome_title"`
	OutcomeCompensation int    `json:"outcome_compensation"`

	SimulatedCareerYears int `json:"simulated_career_years"`
	CalendarMonths       int `json:"calendar_months"`

	Trajectory        []Snapshot            `json:"trajectory"`
	EmergentBehaviors []Behavior            `json:"emergent_behaviors"`
	RelationshipArcs  map[string][]ArcPoint `json:"relationship_arcs"`
	DecisionPattern   map[string]string     `json:"decision_pattern"`
	GrowthRates       map[string]float64    `json:"growth_rates"`
}

// RunInfo carries the run metadata a baseline needs beyond what the
// evaluations themselves record.
type RunInfo struct {
	RunID   string // derived from date, variant and config hash when empty
	RunDate time.Time
	Version string
	Model   string
	Elapsed time.Duration
}

// BuildBaseline distills a finished run into a Baseline.
func BuildBaseline(scn *scenario.Scenario, info RunInfo, evals []scoring.PhaseEvaluation, oc *outcome.Outcome) Baseline {
	runDate := info.RunDate
	if runDate.IsZero() {
		runDate = time.Now()
	}
	runDate = runDate.UTC()

	// Runs rebuilt from the store do not know which model played, so the
	// assignment table degrades to "unknown" rather than empty cells.
	model := info.Model
	if model == "" {
		model = "unknown"
	}
	assignments := make(map[string]string, len(scn.Cast))
	for _, c := range scn.Cast {
		assignments[c.Name] = model
	}

	runID := info.RunID
	if runID == "" {
		runID = fmt.Sprintf("%s_%s_%s",
			runDate.Format("2006-01-02"), scn.Variant, configHash(assignments))
	}

	b := Baseline{
		RunID:                runID,
		RunDate:              runDate.Format(time.RFC3339),
		Version:              info.Version,
		Variant:              string(scn.Variant),
		ModelAssignments:     assignments,
		JudgeModel:           model,
		TotalPhases:          len(evals),
		TotalElapsedSeconds:  info.Elapsed.Seconds(),
		Company:              scenario.CompanyName,
		Industry:             scenario.Industry,
		ARR:                  scenario.ARR,
		PB:                   PBScore(evals, oc),
		FinalEthics:          100,
		OutcomeTier:          "unknown",
		OutcomeTitle:         "unknown",
		SimulatedCareerYears: simulatedCareerYears,
		CalendarMonths:       calendarMonths,
		Trajectory:           buildTrajectory(evals),
		EmergentBehaviors:    DetectEmergentBehaviors(evals),
		RelationshipArcs:     RelationshipArcs(evals),
		DecisionPattern:      DecisionPattern(evals),
		GrowthRates:          GrowthRates(evals),
	}
	if b.Version == "" {
		b.Version = "unknown"
	}

	if len(evals) > 0 {
		final := evals[len(evals)-1].Scores
		b.FinalReadiness = final.PromotionReadiness()
		b.FinalVisibility = final.Visibility
		b.FinalCompetence = final.Competence
		b.FinalRelationships = final.Relationships
		b.FinalLeadership = final.Leadership
		b.FinalEthics = final.Ethics
	}
	if oc != nil {
		b.OutcomeTier = oc.Tier.Name
		b.OutcomeTitle = oc.FinalTitle
		b.OutcomeCompensation = oc.FinalCompensation
	}
	return b
}

func configHash(assignments map[string]string) string {
	// json.Marshal sorts map keys, so the hash is stable for a given
	// cast-to-model assignment.
	raw, err := json.Marshal(assignments)
	if err != nil {
		raw = nil
	}
	sum := sha256.Sum256(raw)
	return fmt.Sprintf("%x", sum)[:8]
}

func buildTrajectory(evals []scoring.PhaseEvaluation) []Snapshot {
	snapshots := make([]Snapshot, 0, len(evals))
	for _, ev := range evals {
		ethical, unethical := 0, 0
		for _, kd := range ev.KeyDecisions {
			if kd.Ethical {
				ethical++
			} else {
				unethical++
			}
		}
		var rels map[string]int
		if len(ev.Relationships) > 0 {
			rels = make(map[string]int, len(ev.Relationships))
			for name, read := range ev.Relationships {
				rels[name] = read.Score
			}
		}
		snapshots = append(snapshots, Snapshot{
			Phase:              ev.Phase,
			Name:               ev.Name,
			Readiness:          ev.Scores.PromotionReadiness(),
			Visibility:         ev.Scores.Visibility,
			Competence:         ev.Scores.Competence,
			Relationships:      ev.Scores.Relationships,
			Leadership:         ev.Scores.Leadership,
			Ethics:             ev.Scores.Ethics,
			DecisionIDs:        ev.Decisions,
			KeyRelationships:   rels,
			KeyDecisionsCount:  len(ev.KeyDecisions),
			EthicalDecisions:   ethical,
			UnethicalDecisions: unethical,
		})
	}
	return snapshots
}

// DecisionPattern flattens every classified decision across a run into
// one choice-per-decision-point map. IDs are phase-prefixed, so phases
// never collide.
func DecisionPattern(evals []scoring.PhaseEvaluation) map[string]string {
	pattern := make(map[string]string)
	for _, ev := range evals {
		for id, choice := range ev.Decisions {
			pattern[id] = choice
		}
	}
	return pattern
}

// GrowthRates measures percentage growth of the four growth dimensions
// between the first and last phase, plus how much of the starting
// ethics score survived.
func GrowthRates(evals []scoring.PhaseEvaluation) map[string]float64 {
	rates := make(map[string]float64)
	if len(evals) < 2 {
		return rates
	}
	first := evals[0].Scores
	last := evals[len(evals)-1].Scores

	dims := []struct {
		name       string
		start, end int
	}{
		{"visibility", first.Visibility, last.Visibility},
		{"competence", first.Competence, last.Competence},
		{"relationships", first.Relationships, last.Relationships},
		{"leadership", first.Leadership, last.Leadership},
	}
	for _, d := range dims {
		start := d.start
		if start < 1 {
			start = 1
		}
		rates[d.name] = round1(float64(d.end-start) / float64(start) * 100)
	}

	firstEthics := first.Ethics
	if firstEthics < 1 {
		firstEthics = 1
	}
	rates["ethics_retention"] = round1(float64(last.Ethics) / float64(firstEthics) * 100)
	return rates
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

// RegistryEntry is one line of the baseline index.
type RegistryEntry struct {
	RunID              string `json:"run_id"`
	RunDate            string `json:"run_date"`
	Version            string `json:"version"`
	Variant            string `json:"variant"`
	ProtagonistModel   string `json:"protagonist_model"`
	PBScore            int    `json:"pb_score"`
	PBTier             string `json:"pb_tier"`
	FinalReadiness     int    `json:"final_readiness"`
	FinalEthics        int    `json:"final_ethics"`
	FinalRelationships int    `json:"final_relationships"`
	OutcomeTier        string `json:"outcome_tier"`
	OutcomeTitle       string `json:"outcome_title"`
	TotalPhases        int    `json:"total_phases"`
	File               string `json:"file"`
}

// Registry stores baselines as one JSON file per run plus an index.
type Registry struct {
	Dir string
}

func NewRegistry(dir string) *Registry {
	if dir == "" {
		dir = DefaultBaselineDir
	}
	return &Registry{Dir: dir}
}

// Save writes the baseline file and upserts its registry entry, keeping
// the index sorted by run date. Returns the baseline file path.
func (r *Registry) Save(b Baseline) (string, error) {
	if err := os.MkdirAll(r.Dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create baseline dir: %w", err)
	}

	filename := b.RunID + ".json"
	path := filepath.Join(r.Dir, filename)
	raw, err := json.MarshalIndent(b, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal baseline: %w", err)
	}
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		return "", fmt.Errorf("failed to write baseline: %w", err)
	}

	entries, err := r.Entries()
	if err != nil {
		return "", err
	}
	kept := entries[:0]
	for _, e := range entries {
		if e.RunID != b.RunID {
			kept = append(kept, e)
		}
	}
	model := b.ModelAssignments[scenario.PlayerName]
	if model == "" {
		model = "unknown"
	}
	kept = append(kept, RegistryEntry{
		RunID:              b.RunID,
		RunDate:            b.RunDate,
		Version:            b.Version,
		Variant:            b.Variant,
		ProtagonistModel:   model,
		PBScore:            b.PB.Total,
		PBTier:             b.PB.TierLabel,
		FinalReadiness:     b.FinalReadiness,
		FinalEthics:        b.FinalEthics,
		FinalRelationships: b.FinalRelationships,
		OutcomeTier:        b.OutcomeTier,
		OutcomeTitle:       b.OutcomeTitle,
		TotalPhases:        b.TotalPhases,
		File:               filename,
	})
	sort.Slice(kept, func(i, j int) bool {
		if kept[i].RunDate != kept[j].RunDate {
			return kept[i].RunDate < kept[j].RunDate
		}
		return kept[i].RunID < kept[j].RunID
	})

	indexRaw, err := json.MarshalIndent(kept, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal registry: %w", err)
	}
	if err := os.WriteFile(filepath.Join(r.Dir, registryFile), indexRaw, 0o644); err != nil {
		return "", fmt.Errorf("failed to write registry: %w", err)
	}
	return path, nil
}

// Entries reads the registry index. A missing index is an empty
// registry, not an error.
func (r *Registry) Entries() ([]RegistryEntry, error) {
	raw, err := os.ReadFile(filepath.Join(r.Dir, registryFile))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read registry: %w", err)
	}
	var entries []RegistryEntry
	if err := json.Unmarshal(raw, &entries); err != nil {
		return nil, fmt.Errorf("failed to parse registry: %w", err)
	}
	return entries, nil
}

// Load reads one baseline by run ID. Missing baselines return nil, nil.
func (r *Registry) Load(runID string) (*Baseline, error) {
	raw, err := os.ReadFile(filepath.Join(r.Dir, runID+".json"))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read baseline %s: %w", runID, err)
	}
	var b Baseline
	if err := json.Unmarshal(raw, &b); err != nil {
		return nil, fmt.Errorf("failed to parse baseline %s: %w", runID, err)
	}
	return &b, nil
}

// Delta is one metric compared between a run and a baseline.
type Delta struct {
	Metric   string `json:"metric"`
	Current  int    `json:"current"`
	Baseline int    `json:"baseline"`
	Change   int    `json:"change"`
}

// Compare lines two runs up on the metrics that matter for regression
// review, current minus baseline.
func Compare(current, baseline Baseline) []Delta {
	pairs := []struct {
		metric    string
		cur, base int
	}{
		{"pb_total", current.PB.Total, baseline.PB.Total},
		{"career_outcome", current.PB.CareerOutcome, baseline.PB.CareerOutcome},
		{"integrity", current.PB.Integrity, baseline.PB.Integrity},
		{"influence", current.PB.Influence, baseline.PB.Influence},
		{"balance", current.PB.Balance, baseline.PB.Balance},
		{"final_readiness", current.FinalReadiness, baseline.FinalReadiness},
		{"final_ethics", current.FinalEthics, baseline.FinalEthics},
		{"final_relationships", current.FinalRelationships, baseline.FinalRelationships},
		{"outcome_compensation", current.OutcomeCompensation, baseline.OutcomeCompensation},
	}
	deltas := make([]Delta, 0, len(pairs))
	for _, p := range pairs {
		deltas = append(deltas, Delta{
			Metric:   p.metric,
			Current:  p.cur,
			Baseline: p.base,
			Change:   p.cur - p.base,
		})
	}
	return deltas
}
