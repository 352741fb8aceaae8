// Package checkpoint persists run state after every completed phase so
// an interrupted run resumes where it stopped instead of replaying, and
// re-billing, the phases that already happened.
package checkpoint

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/promotionbench/promotionbench/internal/ledger"
	"github.com/promotionbench/promotionbench/internal/schemas"
	"github.com/promotionbench/promotionbench/internal/scoring"
)

// DefaultDir is where checkpoints land unless configured otherwise.
const DefaultDir = "checkpoints"

// Meta records how a run was started, so a resumed run can be checked
// against the flags it originally ran with.
type Meta struct {
	StartedAt time.Time `json:"started_at,omitempty"`
	Model     string    `json:"model,omitempty"`
	Judges    int       `json:"judges,omitempty"`
	Seed      int64     `json:"seed,omitempty"`
}

// Checkpoint is the full resumable state of one run. Fields absent from
// older snapshots default on load; unknown fields are ignored.
type Checkpoint struct {
	RunID            string                    `json:"run_id"`
	Variant          string                    `json:"variant"`
	CompletedPhases  []int                     `json:"completed_phases"`
	PhaseEvaluations []scoring.PhaseEvaluation `json:"evaluations"`
	MemorySummaries  map[string][]string       `json:"memory_summaries,omitempty"`
	State            *ledger.Ledger            `json:"simulation_state,omitempty"`
	RunMeta          Meta                      `json:"run_meta,omitempty"`
	LastSaved        time.Time                 `json:"last_saved"`
}

// MarkCompleted records a finished phase, keeping the list sorted and
// free of duplicates.
func (c *Checkpoint) MarkCompleted(phase int) {
	for _, p := range c.CompletedPhases {
		if p == phase {
			return
		}
	}
	c.CompletedPhases = append(c.CompletedPhases, phase)
	sort.Ints(c.CompletedPhases)
}

// NextPhase is the phase a resumed run should start from.
func (c *Checkpoint) NextPhase() int {
	if len(c.CompletedPhases) == 0 {
		return 1
	}
	return c.CompletedPhases[len(c.CompletedPhases)-1] + 1
}

// Ledger returns the restored simulation state, or a fresh ledger when
// the snapshot predates state tracking.
func (c *Checkpoint) Ledger() *ledger.Ledger {
	if c.State == nil {
		return ledger.New(nil)
	}
	return c.State
}

// Evaluations returns a copy of the restored phase evaluations.
func (c *Checkpoint) Evaluations() []scoring.PhaseEvaluation {
	out := make([]scoring.PhaseEvaluation, len(c.PhaseEvaluations))
	copy(out, c.PhaseEvaluations)
	return out
}

// Manager reads and writes checkpoints under a single directory, one
// file per run.
type Manager struct {
	Dir string
}

// NewManager returns a manager rooted at dir, falling back to
// DefaultDir when dir is empty.
func NewManager(dir string) Manager {
	if dir == "" {
		dir = DefaultDir
	}
	return Manager{Dir: dir}
}

func (m Manager) path(runID string) string {
	return filepath.Join(m.Dir, runID+".checkpoint.json")
}

// Save writes the checkpoint atomically: marshal to a temp file, then
// rename over the final path. A crash mid-write leaves the previous
// checkpoint intact. Returns the written path.
func (m Manager) Save(cp *Checkpoint) (string, error) {
	sort.Ints(cp.CompletedPhases)
	cp.LastSaved = time.Now().UTC()

	if err := os.MkdirAll(m.Dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create checkpoint dir: %w", err)
	}

	data, err := json.MarshalIndent(cp, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal checkpoint: %w", err)
	}

	final := m.path(cp.RunID)
	tmp := final + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write checkpoint: %w", err)
	}
	if err := os.Rename(tmp, final); err != nil {
		os.Remove(tmp)
		return "", fmt.Errorf("failed to finalize checkpoint: %w", err)
	}
	return final, nil
}

// Load reads the checkpoint for a run. A missing file is not an error:
// it means there is nothing to resume, and Load returns nil, nil.
func (m Manager) Load(runID string) (*Checkpoint, error) {
	return m.read(m.path(runID))
}

// FindLatest returns the most recently saved checkpoint in the
// directory, or nil, nil when there are none.
func (m Manager) FindLatest() (*Checkpoint, error) {
	matches, err := filepath.Glob(filepath.Join(m.Dir, "*.checkpoint.json"))
	if err != nil {
		return nil, fmt.Errorf("failed to scan checkpoint dir: %w", err)
	}

	var (
		newest     string
		newestTime time.Time
	)
	for _, match := range matches {
		info, err := os.Stat(match)
		if err != nil {
			continue
		}
		if newest == "" || info.ModTime().After(newestTime) {
			newest = match
			newestTime = info.ModTime()
		}
	}
	if newest == "" {
		return nil, nil
	}
	return m.read(newest)
}

// Delete removes a run's checkpoint, reporting whether one existed.
// Called only after a fully clean run completion.
func (m Manager) Delete(runID string) bool {
	return os.Remove(m.path(runID)) == nil
}

func (m Manager) read(path string) (*Checkpoint, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read checkpoint %s: %w", path, err)
	}

	var cp Checkpoint
	if err := json.Unmarshal(data, &cp); err != nil {
		return nil, fmt.Errorf("failed to parse checkpoint %s: %w", path, err)
	}
	if err := schemas.ValidateCheckpoint(string(data)); err != nil {
		return nil, fmt.Errorf("checkpoint %s failed validation: %w", path, err)
	}
	return &cp, nil
}
