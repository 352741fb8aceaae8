package results

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/promotionbench/promotionbench/internal/scoring"
)

const postgresSchema = `
CREATE TABLE IF NOT EXISTS runs (
    run_id       TEXT PRIMARY KEY,
    variant      TEXT NOT NULL DEFAULT 'neutral',
    protagonist  TEXT NOT NULL DEFAULT 'Riley Nakamura',
    total_phases INTEGER NOT NULL DEFAULT 9,
    status       TEXT NOT NULL DEFAULT 'running',
    started_at   TIMESTAMPTZ NOT NULL DEFAULT now(),
    finished_at  TIMESTAMPTZ
);

CREATE TABLE IF NOT EXISTS phases (
    id              BIGSERIAL PRIMARY KEY,
    run_id          TEXT NOT NULL REFERENCES runs(run_id),
    phase_number    INTEGER NOT NULL,
    name            TEXT NOT NULL,
    narrative       TEXT NOT NULL DEFAULT '',
    reasoning       TEXT NOT NULL DEFAULT '',
    inter_rater     TEXT NOT NULL DEFAULT '',
    classified_json JSONB NOT NULL DEFAULT '{}',
    elapsed_seconds DOUBLE PRECISION NOT NULL DEFAULT 0,
    created_at      TIMESTAMPTZ NOT NULL DEFAULT now(),
    UNIQUE(run_id, phase_number)
);

CREATE TABLE IF NOT EXISTS scores (
    id                  BIGSERIAL PRIMARY KEY,
    phase_id            BIGINT NOT NULL REFERENCES phases(id) ON DELETE CASCADE,
    visibility          INTEGER NOT NULL DEFAULT 0,
    competence          INTEGER NOT NULL DEFAULT 0,
    relationships       INTEGER NOT NULL DEFAULT 0,
    leadership          INTEGER NOT NULL DEFAULT 0,
    ethics              INTEGER NOT NULL DEFAULT 100,
    promotion_readiness INTEGER NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS relationships (
    id       BIGSERIAL PRIMARY KEY,
    phase_id BIGINT NOT NULL REFERENCES phases(id) ON DELETE CASCADE,
    npc_name TEXT NOT NULL,
    score    INTEGER NOT NULL DEFAULT 50,
    label    TEXT NOT NULL DEFAULT 'Unknown'
);

CREATE TABLE IF NOT EXISTS decisions (
    id       BIGSERIAL PRIMARY KEY,
    phase_id BIGINT NOT NULL REFERENCES phases(id) ON DELETE CASCADE,
    decision TEXT NOT NULL,
    impact   TEXT NOT NULL DEFAULT '',
    ethical  BOOLEAN NOT NULL DEFAULT TRUE
);

CREATE TABLE IF NOT EXISTS outcomes (
    run_id         TEXT PRIMARY KEY REFERENCES runs(run_id),
    final_title    TEXT NOT NULL,
    final_comp     INTEGER NOT NULL DEFAULT 0,
    promotion_tier TEXT NOT NULL,
    ethics_rating  TEXT NOT NULL,
    narrative      TEXT NOT NULL DEFAULT '',
    created_at     TIMESTAMPTZ NOT NULL DEFAULT now()
);
`

type postgresStore struct {
	pool *pgxpool.Pool
}

// openPostgres establishes a connection pool and verifies it.
func openPostgres(ctx context.Context, databaseURL string) (*postgresStore, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to results database: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping results database: %w", err)
	}

	return &postgresStore{pool: pool}, nil
}

func (s *postgresStore) Init(ctx context.Context) error {
	if _, err := s.pool.Exec(ctx, postgresSchema); err != nil {
		return fmt.Errorf("failed to initialize results schema: %w", err)
	}
	return nil
}

func (s *postgresStore) CreateRun(ctx context.Context, runID, variant string) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO runs (run_id, variant) VALUES ($1, $2)
		 ON CONFLICT (run_id) DO NOTHING`,
		runID, variant,
	)
	if err != nil {
		return fmt.Errorf("failed to create run: %w", err)
	}
	return nil
}

func (s *postgresStore) SavePhase(ctx context.Context, runID string, ev scoring.PhaseEvaluation, elapsed time.Duration) error {
	classified, err := json.Marshal(ev.Decisions)
	if err != nil {
		return fmt.Errorf("failed to marshal classified decisions: %w", err)
	}
	if ev.Decisions == nil {
		classified = []byte("{}")
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin phase save: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx,
		`DELETE FROM phases WHERE run_id = $1 AND phase_number = $2`, runID, ev.Phase); err != nil {
		return fmt.Errorf("failed to clear phase: %w", err)
	}

	var phaseID int64
	err = tx.QueryRow(ctx,
		`INSERT INTO phases (run_id, phase_number, name, narrative, reasoning, inter_rater, classified_json, elapsed_seconds)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 RETURNING id`,
		runID, ev.Phase, ev.Name, ev.Narrative, ev.Reasoning, ev.InterRater,
		classified, elapsed.Seconds(),
	).Scan(&phaseID)
	if err != nil {
		return fmt.Errorf("failed to save phase: %w", err)
	}

	if _, err := tx.Exec(ctx,
		`INSERT INTO scores (phase_id, visibility, competence, relationships, leadership, ethics, promotion_readiness)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		phaseID, ev.Scores.Visibility, ev.Scores.Competence, ev.Scores.Relationships,
		ev.Scores.Leadership, ev.Scores.Ethics, ev.Scores.PromotionReadiness(),
	); err != nil {
		return fmt.Errorf("failed to save scores: %w", err)
	}

	for _, name := range sortedNames(ev.Relationships) {
		read := ev.Relationships[name]
		if _, err := tx.Exec(ctx,
			`INSERT INTO relationships (phase_id, npc_name, score, label) VALUES ($1, $2, $3, $4)`,
			phaseID, name, read.Score, read.Label,
		); err != nil {
			return fmt.Errorf("failed to save relationship: %w", err)
		}
	}

	for _, d := range ev.KeyDecisions {
		if _, err := tx.Exec(ctx,
			`INSERT INTO decisions (phase_id, decision, impact, ethical) VALUES ($1, $2, $3, $4)`,
			phaseID, d.Decision, d.Impact, d.Ethical,
		); err != nil {
			return fmt.Errorf("failed to save decision: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit phase save: %w", err)
	}
	return nil
}

func (s *postgresStore) SaveOutcome(ctx context.Context, runID string, oc StoredOutcome) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO outcomes (run_id, final_title, final_comp, promotion_tier, ethics_rating, narrative)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 ON CONFLICT (run_id) DO UPDATE SET
		   final_title = $2, final_comp = $3, promotion_tier = $4, ethics_rating = $5, narrative = $6`,
		runID, oc.FinalTitle, oc.FinalComp, oc.Tier, oc.EthicsRating, oc.Narrative,
	)
	if err != nil {
		return fmt.Errorf("failed to save outcome: %w", err)
	}
	return nil
}

func (s *postgresStore) CompleteRun(ctx context.Context, runID, status string) error {
	_, err := s.pool.Exec(ctx,
		`UPDATE runs SET status = $1, finished_at = now() WHERE run_id = $2`,
		status, runID,
	)
	if err != nil {
		return fmt.Errorf("failed to complete run: %w", err)
	}
	return nil
}

func (s *postgresStore) LoadRun(ctx context.Context, runID string) (*RunRecord, error) {
	var rec RunRecord
	err := s.pool.QueryRow(ctx,
		`SELECT run_id, variant, status, started_at, finished_at FROM runs WHERE run_id = $1`, runID,
	).Scan(&rec.RunID, &rec.Variant, &rec.Status, &rec.StartedAt, &rec.FinishedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load run: %w", err)
	}
	rec.Elapsed = make(map[int]float64)

	rows, err := s.pool.Query(ctx,
		`SELECT id, phase_number, name, narrative, reasoning, inter_rater, classified_json, elapsed_seconds
		 FROM phases WHERE run_id = $1 ORDER BY phase_number`, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to load phases: %w", err)
	}
	defer rows.Close()

	type phaseRow struct {
		id int64
		ev scoring.PhaseEvaluation
	}
	var phases []phaseRow
	for rows.Next() {
		var (
			pr         phaseRow
			classified []byte
			elapsed    float64
		)
		if err := rows.Scan(&pr.id, &pr.ev.Phase, &pr.ev.Name, &pr.ev.Narrative,
			&pr.ev.Reasoning, &pr.ev.InterRater, &classified, &elapsed); err != nil {
			return nil, fmt.Errorf("failed to scan phase: %w", err)
		}
		if len(classified) > 0 {
			if err := json.Unmarshal(classified, &pr.ev.Decisions); err != nil {
				return nil, fmt.Errorf("failed to parse classified decisions: %w", err)
			}
		}
		rec.Elapsed[pr.ev.Phase] = elapsed
		phases = append(phases, pr)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read phases: %w", err)
	}
	rows.Close()

	for i := range phases {
		if err := s.loadPhaseDetail(ctx, &phases[i].ev, phases[i].id); err != nil {
			return nil, err
		}
		rec.Evaluations = append(rec.Evaluations, phases[i].ev)
	}
	rec.PhaseCount = len(rec.Evaluations)

	var oc StoredOutcome
	err = s.pool.QueryRow(ctx,
		`SELECT final_title, final_comp, promotion_tier, ethics_rating, narrative FROM outcomes WHERE run_id = $1`, runID,
	).Scan(&oc.FinalTitle, &oc.FinalComp, &oc.Tier, &oc.EthicsRating, &oc.Narrative)
	if err == nil {
		rec.Outcome = &oc
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("failed to load outcome: %w", err)
	}

	return &rec, nil
}

func (s *postgresStore) loadPhaseDetail(ctx context.Context, ev *scoring.PhaseEvaluation, phaseID int64) error {
	ev.Scores = scoring.NewPhaseScores()
	err := s.pool.QueryRow(ctx,
		`SELECT visibility, competence, relationships, leadership, ethics FROM scores WHERE phase_id = $1`, phaseID,
	).Scan(&ev.Scores.Visibility, &ev.Scores.Competence, &ev.Scores.Relationships,
		&ev.Scores.Leadership, &ev.Scores.Ethics)
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("failed to load scores: %w", err)
	}

	rels, err := s.pool.Query(ctx,
		`SELECT npc_name, score, label FROM relationships WHERE phase_id = $1`, phaseID)
	if err != nil {
		return fmt.Errorf("failed to load relationships: %w", err)
	}
	defer rels.Close()
	for rels.Next() {
		var (
			name string
			read scoring.RelationshipRead
		)
		if err := rels.Scan(&name, &read.Score, &read.Label); err != nil {
			return fmt.Errorf("failed to scan relationship: %w", err)
		}
		if ev.Relationships == nil {
			ev.Relationships = make(map[string]scoring.RelationshipRead)
		}
		ev.Relationships[name] = read
	}
	if err := rels.Err(); err != nil {
		return fmt.Errorf("failed to read relationships: %w", err)
	}
	rels.Close()

	decs, err := s.pool.Query(ctx,
		`SELECT decision, impact, ethical FROM decisions WHERE phase_id = $1 ORDER BY id`, phaseID)
	if err != nil {
		return fmt.Errorf("failed to load decisions: %w", err)
	}
	defer decs.Close()
	for decs.Next() {
		var d scoring.KeyDecision
		if err := decs.Scan(&d.Decision, &d.Impact, &d.Ethical); err != nil {
			return fmt.Errorf("failed to scan decision: %w", err)
		}
		ev.KeyDecisions = append(ev.KeyDecisions, d)
	}
	return decs.Err()
}

func (s *postgresStore) ListRuns(ctx context.Context, limit int) ([]RunRecord, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.pool.Query(ctx,
		`SELECT r.run_id, r.variant, r.status, r.started_at, r.finished_at,
		        (SELECT COUNT(*) FROM phases p WHERE p.run_id = r.run_id)
		 FROM runs r ORDER BY r.started_at DESC, r.run_id DESC LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	defer rows.Close()

	var records []RunRecord
	for rows.Next() {
		var rec RunRecord
		if err := rows.Scan(&rec.RunID, &rec.Variant, &rec.Status, &rec.StartedAt, &rec.FinishedAt, &rec.PhaseCount); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

func (s *postgresStore) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}
