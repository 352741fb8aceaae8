package results

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	_ "modernc.org/sqlite"

	"github.com/promotionbench/promotionbench/internal/scoring"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS runs (
    run_id       TEXT PRIMARY KEY,
    variant      TEXT NOT NULL DEFAULT 'neutral',
    protagonist  TEXT NOT NULL DEFAULT 'Riley Nakamura',
    total_phases INTEGER NOT NULL DEFAULT 9,
    status       TEXT NOT NULL DEFAULT 'running',
    started_at   TEXT NOT NULL DEFAULT (datetime('now')),
    finished_at  TEXT
);

CREATE TABLE IF NOT EXISTS phases (
    id              INTEGER PRIMARY KEY AUTOINCREMENT,
    run_id          TEXT NOT NULL REFERENCES runs(run_id),
    phase_number    INTEGER NOT NULL,
    name            TEXT NOT NULL,
    narrative       TEXT NOT NULL DEFAULT '',
    reasoning       TEXT NOT NULL DEFAULT '',
    inter_rater     TEXT NOT NULL DEFAULT '',
    classified_json TEXT NOT NULL DEFAULT '{}',
    elapsed_seconds REAL NOT NULL DEFAULT 0,
    created_at      TEXT NOT NULL DEFAULT (datetime('now')),
    UNIQUE(run_id, phase_number)
);

CREATE TABLE IF NOT EXISTS scores (
    id                  INTEGER PRIMARY KEY AUTOINCREMENT,
    phase_id            INTEGER NOT NULL REFERENCES phases(id) ON DELETE CASCADE,
    visibility          INTEGER NOT NULL DEFAULT 0,
    competence          INTEGER NOT NULL DEFAULT 0,
    relationships       INTEGER NOT NULL DEFAULT 0,
    leadership          INTEGER NOT NULL DEFAULT 0,
    ethics              INTEGER NOT NULL DEFAULT 100,
    promotion_readiness INTEGER NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS relationships (
    id       INTEGER PRIMARY KEY AUTOINCREMENT,
    phase_id INTEGER NOT NULL REFERENCES phases(id) ON DELETE CASCADE,
    npc_name TEXT NOT NULL,
    score    INTEGER NOT NULL DEFAULT 50,
    label    TEXT NOT NULL DEFAULT 'Unknown'
);

CREATE TABLE IF NOT EXISTS decisions (
    id       INTEGER PRIMARY KEY AUTOINCREMENT,
    phase_id INTEGER NOT NULL REFERENCES phases(id) ON DELETE CASCADE,
    decision TEXT NOT NULL,
    impact   TEXT NOT NULL DEFAULT '',
    ethical  INTEGER NOT NULL DEFAULT 1
);

CREATE TABLE IF NOT EXISTS outcomes (
    run_id         TEXT PRIMARY KEY REFERENCES runs(run_id),
    final_title    TEXT NOT NULL,
    final_comp     INTEGER NOT NULL DEFAULT 0,
    promotion_tier TEXT NOT NULL,
    ethics_rating  TEXT NOT NULL,
    narrative      TEXT NOT NULL DEFAULT '',
    created_at     TEXT NOT NULL DEFAULT (datetime('now'))
);
`

type sqliteStore struct {
	db *sql.DB
}

// openSQLite opens (or creates) the results database at path with WAL
// journaling and foreign keys enabled.
func openSQLite(path string) (*sqliteStore, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create results dir: %w", err)
		}
	}

	dsn := "file:" + path + "?_pragma=journal_mode(WAL)&_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open results db: %w", err)
	}

	// Single writer avoids lock contention at this scale.
	db.SetMaxOpenConns(1)
	return &sqliteStore{db: db}, nil
}

func (s *sqliteStore) Init(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, sqliteSchema); err != nil {
		return fmt.Errorf("failed to initialize results schema: %w", err)
	}
	return nil
}

func (s *sqliteStore) CreateRun(ctx context.Context, runID, variant string) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO runs (run_id, variant, started_at) VALUES (?, ?, ?)
		 ON CONFLICT(run_id) DO NOTHING`,
		runID, variant, time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("failed to create run: %w", err)
	}
	return nil
}

func (s *sqliteStore) SavePhase(ctx context.Context, runID string, ev scoring.PhaseEvaluation, elapsed time.Duration) error {
	classified, err := json.Marshal(ev.Decisions)
	if err != nil {
		return fmt.Errorf("failed to marshal classified decisions: %w", err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin phase save: %w", err)
	}
	defer tx.Rollback()

	// Replace any previous row for this phase so a retried phase does
	// not accumulate duplicates. CASCADE clears the child tables.
	if _, err := tx.ExecContext(ctx,
		`DELETE FROM phases WHERE run_id = ? AND phase_number = ?`, runID, ev.Phase); err != nil {
		return fmt.Errorf("failed to clear phase: %w", err)
	}

	res, err := tx.ExecContext(ctx,
		`INSERT INTO phases (run_id, phase_number, name, narrative, reasoning, inter_rater, classified_json, elapsed_seconds, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		runID, ev.Phase, ev.Name, ev.Narrative, ev.Reasoning, ev.InterRater,
		string(classified), elapsed.Seconds(), time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("failed to save phase: %w", err)
	}
	phaseID, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to resolve phase id: %w", err)
	}

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO scores (phase_id, visibility, competence, relationships, leadership, ethics, promotion_readiness)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		phaseID, ev.Scores.Visibility, ev.Scores.Competence, ev.Scores.Relationships,
		ev.Scores.Leadership, ev.Scores.Ethics, ev.Scores.PromotionReadiness(),
	); err != nil {
		return fmt.Errorf("failed to save scores: %w", err)
	}

	for _, name := range sortedNames(ev.Relationships) {
		read := ev.Relationships[name]
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO relationships (phase_id, npc_name, score, label) VALUES (?, ?, ?, ?)`,
			phaseID, name, read.Score, read.Label,
		); err != nil {
			return fmt.Errorf("failed to save relationship: %w", err)
		}
	}

	for _, d := range ev.KeyDecisions {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO decisions (phase_id, decision, impact, ethical) VALUES (?, ?, ?, ?)`,
			phaseID, d.Decision, d.Impact, d.Ethical,
		); err != nil {
			return fmt.Errorf("failed to save decision: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit phase save: %w", err)
	}
	return nil
}

func (s *sqliteStore) SaveOutcome(ctx context.Context, runID string, oc StoredOutcome) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO outcomes (run_id, final_title, final_comp, promotion_tier, ethics_rating, narrative)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		runID, oc.FinalTitle, oc.FinalComp, oc.Tier, oc.EthicsRating, oc.Narrative,
	)
	if err != nil {
		return fmt.Errorf("failed to save outcome: %w", err)
	}
	return nil
}

func (s *sqliteStore) CompleteRun(ctx context.Context, runID, status string) error {
	_, err := s.db.ExecContext(ctx,
		`UPDATE runs SET status = ?, finished_at = ? WHERE run_id = ?`,
		status, time.Now().UTC().Format(time.RFC3339), runID,
	)
	if err != nil {
		return fmt.Errorf("failed to complete run: %w", err)
	}
	return nil
}

func (s *sqliteStore) LoadRun(ctx context.Context, runID string) (*RunRecord, error) {
	var (
		rec      RunRecord
		started  string
		finished sql.NullString
	)
	err := s.db.QueryRowContext(ctx,
		`SELECT run_id, variant, status, started_at, finished_at FROM runs WHERE run_id = ?`, runID,
	).Scan(&rec.RunID, &rec.Variant, &rec.Status, &started, &finished)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load run: %w", err)
	}
	rec.StartedAt = parseStoredTime(started)
	if finished.Valid {
		t := parseStoredTime(finished.String)
		rec.FinishedAt = &t
	}
	rec.Elapsed = make(map[int]float64)

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, phase_number, name, narrative, reasoning, inter_rater, classified_json, elapsed_seconds
		 FROM phases WHERE run_id = ? ORDER BY phase_number`, runID)
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
			classified string
			elapsed    float64
		)
		if err := rows.Scan(&pr.id, &pr.ev.Phase, &pr.ev.Name, &pr.ev.Narrative,
			&pr.ev.Reasoning, &pr.ev.InterRater, &classified, &elapsed); err != nil {
			return nil, fmt.Errorf("failed to scan phase: %w", err)
		}
		if classified != "" && classified != "null" {
			if err := json.Unmarshal([]byte(classified), &pr.ev.Decisions); err != nil {
				return nil, fmt.Errorf("failed to parse classified decisions: %w", err)
			}
		}
		rec.Elapsed[pr.ev.Phase] = elapsed
		phases = append(phases, pr)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read phases: %w", err)
	}

	for i := range phases {
		if err := s.loadPhaseDetail(ctx, &phases[i].ev, phases[i].id); err != nil {
			return nil, err
		}
		rec.Evaluations = append(rec.Evaluations, phases[i].ev)
	}
	rec.PhaseCount = len(rec.Evaluations)

	var oc StoredOutcome
	err = s.db.QueryRowContext(ctx,
		`SELECT final_title, final_comp, promotion_tier, ethics_rating, narrative FROM outcomes WHERE run_id = ?`, runID,
	).Scan(&oc.FinalTitle, &oc.FinalComp, &oc.Tier, &oc.EthicsRating, &oc.Narrative)
	if err == nil {
		rec.Outcome = &oc
	} else if err != sql.ErrNoRows {
		return nil, fmt.Errorf("failed to load outcome: %w", err)
	}

	return &rec, nil
}

func (s *sqliteStore) loadPhaseDetail(ctx context.Context, ev *scoring.PhaseEvaluation, phaseID int64) error {
	ev.Scores = scoring.NewPhaseScores()
	err := s.db.QueryRowContext(ctx,
		`SELECT visibility, competence, relationships, leadership, ethics FROM scores WHERE phase_id = ?`, phaseID,
	).Scan(&ev.Scores.Visibility, &ev.Scores.Competence, &ev.Scores.Relationships,
		&ev.Scores.Leadership, &ev.Scores.Ethics)
	if err != nil && err != sql.ErrNoRows {
		return fmt.Errorf("failed to load scores: %w", err)
	}

	rels, err := s.db.QueryContext(ctx,
		`SELECT npc_name, score, label FROM relationships WHERE phase_id = ?`, phaseID)
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

	decs, err := s.db.QueryContext(ctx,
		`SELECT decision, impact, ethical FROM decisions WHERE phase_id = ? ORDER BY id`, phaseID)
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

func (s *sqliteStore) ListRuns(ctx context.Context, limit int) ([]RunRecord, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT r.run_id, r.variant, r.status, r.started_at, r.finished_at,
		        (SELECT COUNT(*) FROM phases p WHERE p.run_id = r.run_id)
		 FROM runs r ORDER BY r.started_at DESC, r.run_id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	defer rows.Close()

	var records []RunRecord
	for rows.Next() {
		var (
			rec      RunRecord
			started  string
			finished sql.NullString
		)
		if err := rows.Scan(&rec.RunID, &rec.Variant, &rec.Status, &started, &finished, &rec.PhaseCount); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		rec.StartedAt = parseStoredTime(started)
		if finished.Valid {
			t := parseStoredTime(finished.String)
			rec.FinishedAt = &t
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

func (s *sqliteStore) Close() {
	s.db.Close()
}

func sortedNames(m map[string]scoring.RelationshipRead) []string {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// parseStoredTime accepts both our RFC3339 writes and SQLite's own
// datetime('now') default format.
func parseStoredTime(s string) time.Time {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t
	}
	if t, err := time.Parse("2006-01-02 15:04:05", s); err == nil {
		return t
	}
	return time.Time{}
}
