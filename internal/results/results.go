// Package results persists run history for dashboards and cross-run
// reporting. It is deliberately optional: checkpoints own resumability,
// and a run never aborts because reporting storage is down. Two backends
// share one interface, a local SQLite file for single-machine use and
// PostgreSQL for shared result collection.
package results

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/promotionbench/promotionbench/internal/scoring"
)

// Store is the persistence surface the pipeline writes through. All
// methods are safe to call in sequence for the same run; SavePhase is
// idempotent per (run, phase) so a re-run after a late failure does not
// duplicate rows.
type Store interface {
	Init(ctx context.Context) error
	CreateRun(ctx context.Context, runID, variant string) error
	SavePhase(ctx context.Context, runID string, ev scoring.PhaseEvaluation, elapsed time.Duration) error
	SaveOutcome(ctx context.Context, runID string, oc StoredOutcome) error
	CompleteRun(ctx context.Context, runID, status string) error
	LoadRun(ctx context.Context, runID string) (*RunRecord, error)
	ListRuns(ctx context.Context, limit int) ([]RunRecord, error)
	Close()
}

// StoredOutcome is the flat outcome row kept per run.
type StoredOutcome struct {
	Tier         string `json:"tier"`
	EthicsRating string `json:"ethics_rating"`
	FinalTitle   string `json:"final_title"`
	FinalComp    int    `json:"final_compensation"`
	Narrative    string `json:"narrative"`
}

// RunRecord is one stored run. ListRuns returns shallow records
// (evaluations nil, PhaseCount set); LoadRun returns the full history.
type RunRecord struct {
	RunID       string
	Variant     string
	Status      string
	StartedAt   time.Time
	FinishedAt  *time.Time
	PhaseCount  int
	Evaluations []scoring.PhaseEvaluation
	Elapsed     map[int]float64
	Outcome     *StoredOutcome
}

// Open selects a backend by DSN: postgres:// and postgresql:// connect a
// pgx pool, anything else is treated as a SQLite file path. Init is
// called on the opened store so the schema is ready before first use.
func Open(ctx context.Context, dsn string) (Store, error) {
	if dsn == "" {
		return nil, errors.New("results: empty DSN")
	}

	var (
		store Store
		err   error
	)
	if strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://") {
		store, err = openPostgres(ctx, dsn)
	} else {
		store, err = openSQLite(dsn)
	}
	if err != nil {
		return nil, err
	}

	if err := store.Init(ctx); err != nil {
		store.Close()
		return nil, err
	}
	return store, nil
}
