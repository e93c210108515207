// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package store persists triple graphs in SQLite and serves pattern
// queries, full-text label search, and dataset statistics.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/loregraph/loregraph/internal/graph"
	"github.com/loregraph/loregraph/internal/ontology"
	"github.com/loregraph/loregraph/pkg/types"
)

// Store manages the triple database.
type Store struct {
	db         *sql.DB
	maxResults int
}

// Open opens or creates the SQLite database at cfg.DBPath, creating the
// schema and parent directories if needed.
func Open(cfg types.StoreConfig) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(cfg.DBPath), 0o755); err != nil {
		return nil, fmt.Errorf("creating database directory: %w", err)
	}

	db, err := sql.Open("sqlite3", cfg.DBPath+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	maxResults := cfg.MaxResults
	if maxResults <= 0 {
		maxResults = 20
	}

	s := &Store{db: db, maxResults: maxResults}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS triples (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			subject TEXT NOT NULL,
			predicate TEXT NOT NULL,
			object_kind INTEGER NOT NULL,
			object_value TEXT NOT NULL,
			object_datatype TEXT NOT NULL DEFAULT '',
			object_lang TEXT NOT NULL DEFAULT '',
			UNIQUE(subject, predicate, object_kind, object_value, object_datatype, object_lang)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_triples_subject ON triples(subject)`,
		`CREATE INDEX IF NOT EXISTS idx_triples_predicate ON triples(predicate)`,
		`CREATE INDEX IF NOT EXISTS idx_triples_object ON triples(object_value)`,
		`CREATE TABLE IF NOT EXISTS runs (
			id TEXT PRIMARY KEY,
			started_at TEXT NOT NULL,
			state TEXT NOT NULL,
			iterations INTEGER NOT NULL,
			added INTEGER NOT NULL,
			total INTEGER NOT NULL
		)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}

	var ftsExists int
	if err := s.db.QueryRow(
		`SELECT count(*) FROM sqlite_master WHERE type='table' AND name='labels'`,
	).Scan(&ftsExists); err != nil {
		return fmt.Errorf("checking FTS table: %w", err)
	}
	if ftsExists == 0 {
		if _, err := s.db.Exec(
			`CREATE VIRTUAL TABLE labels USING fts5(entity UNINDEXED, label)`,
		); err != nil {
			return fmt.Errorf("creating FTS infrastructure: %w", err)
		}
	}
	return nil
}

// IngestSummary holds counts from a graph ingestion.
type IngestSummary struct {
	Inserted   int
	Duplicates int
}

// Ingest writes every statement of the graph in one transaction. Triples
// already present count as duplicates; rdfs:label values feed the
// full-text label index.
func (s *Store) Ingest(ctx context.Context, g *graph.Graph) (IngestSummary, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return IngestSummary{}, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	insert, err := tx.PrepareContext(ctx,
		`INSERT OR IGNORE INTO triples (subject, predicate, object_kind, object_value, object_datatype, object_lang)
		 VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return IngestSummary{}, fmt.Errorf("preparing insert: %w", err)
	}
	defer insert.Close()

	label, err := tx.PrepareContext(ctx,
		`INSERT INTO labels (entity, label) VALUES (?, ?)`)
	if err != nil {
		return IngestSummary{}, fmt.Errorf("preparing label insert: %w", err)
	}
	defer label.Close()

	var summary IngestSummary
	for st := range g.Statements() {
		res, err := insert.ExecContext(ctx,
			string(st.Subject), string(st.Predicate),
			int(st.Object.Kind), st.Object.Value, st.Object.Datatype, st.Object.Lang)
		if err != nil {
			return summary, fmt.Errorf("inserting triple %s: %w", st, err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return summary, fmt.Errorf("checking insert: %w", err)
		}
		if n == 0 {
			summary.Duplicates++
			continue
		}
		summary.Inserted++

		if st.Predicate == ontology.Label && st.Object.Kind == graph.TermLiteral {
			if _, err := label.ExecContext(ctx, string(st.Subject), st.Object.Value); err != nil {
				return summary, fmt.Errorf("indexing label for %s: %w", st.Subject, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return summary, fmt.Errorf("committing: %w", err)
	}
	return summary, nil
}

// Match returns triples matching the fixed positions, in insertion
// order. Empty strings are wildcards; o matches the object value of both
// resources and literals. Results are capped at limit (or the store
// default when limit <= 0).
func (s *Store) Match(ctx context.Context, subject, predicate, object string, limit int) ([]graph.Statement, error) {
	if limit <= 0 {
		limit = s.maxResults
	}

	query := `SELECT subject, predicate, object_kind, object_value, object_datatype, object_lang FROM triples`
	var conds []string
	var args []any
	if subject != "" {
		conds = append(conds, "subject = ?")
		args = append(args, subject)
	}
	if predicate != "" {
		conds = append(conds, "predicate = ?")
		args = append(args, predicate)
	}
	if object != "" {
		conds = append(conds, "object_value = ?")
		args = append(args, object)
	}
	for i, cond := range conds {
		if i == 0 {
			query += " WHERE " + cond
		} else {
			query += " AND " + cond
		}
	}
	query += " ORDER BY id LIMIT ?"
	args = append(args, limit)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying triples: %w", err)
	}
	defer rows.Close()
	return scanStatements(rows)
}

// Describe returns every triple with the entity as subject.
func (s *Store) Describe(ctx context.Context, entity string) ([]graph.Statement, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT subject, predicate, object_kind, object_value, object_datatype, object_lang
		 FROM triples WHERE subject = ? ORDER BY id`, entity)
	if err != nil {
		return nil, fmt.Errorf("describing %s: %w", entity, err)
	}
	defer rows.Close()
	return scanStatements(rows)
}

func scanStatements(rows *sql.Rows) ([]graph.Statement, error) {
	var out []graph.Statement
	for rows.Next() {
		var subject, predicate, value, datatype, lang string
		var kind int
		if err := rows.Scan(&subject, &predicate, &kind, &value, &datatype, &lang); err != nil {
			return nil, fmt.Errorf("scanning triple: %w", err)
		}
		out = append(out, graph.Statement{
			Subject:   graph.Resource(subject),
			Predicate: graph.Property(predicate),
			Object: graph.Term{
				Kind:     graph.TermKind(kind),
				Value:    value,
				Datatype: datatype,
				Lang:     lang,
			},
		})
	}
	return out, rows.Err()
}

// LabelHit is one full-text search result.
type LabelHit struct {
	Entity string `json:"entity"`
	Label  string `json:"label"`
}

// SearchLabels runs a full-text query over entity labels, best matches
// first.
func (s *Store) SearchLabels(ctx context.Context, text string, limit int) ([]LabelHit, error) {
	if limit <= 0 {
		limit = s.maxResults
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT entity, label FROM labels WHERE labels MATCH ? ORDER BY rank LIMIT ?`,
		text, limit)
	if err != nil {
		return nil, fmt.Errorf("searching labels: %w", err)
	}
	defer rows.Close()

	var hits []LabelHit
	for rows.Next() {
		var hit LabelHit
		if err := rows.Scan(&hit.Entity, &hit.Label); err != nil {
			return nil, fmt.Errorf("scanning hit: %w", err)
		}
		hits = append(hits, hit)
	}
	return hits, rows.Err()
}

// Entities returns the subjects typed as class, in insertion order.
func (s *Store) Entities(ctx context.Context, class string, limit int) ([]string, error) {
	if limit <= 0 {
		limit = s.maxResults
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT subject FROM triples WHERE predicate = ? AND object_value = ? GROUP BY subject ORDER BY MIN(id) LIMIT ?`,
		string(ontology.Type), class, limit)
	if err != nil {
		return nil, fmt.Errorf("listing entities: %w", err)
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var entity string
		if err := rows.Scan(&entity); err != nil {
			return nil, fmt.Errorf("scanning entity: %w", err)
		}
		out = append(out, entity)
	}
	return out, rows.Err()
}

// Stats summarizes the stored dataset.
type Stats struct {
	Triples        int            `json:"triples"`
	Entities       int            `json:"entities"`
	EntitiesByType map[string]int `json:"entities_by_type"`
}

// Stats counts triples and entities, with per-type entity breakdowns.
func (s *Store) Stats(ctx context.Context) (Stats, error) {
	stats := Stats{EntitiesByType: make(map[string]int)}

	if err := s.db.QueryRowContext(ctx, `SELECT count(*) FROM triples`).Scan(&stats.Triples); err != nil {
		return stats, fmt.Errorf("counting triples: %w", err)
	}
	if err := s.db.QueryRowContext(ctx,
		`SELECT count(DISTINCT subject) FROM triples WHERE predicate = ?`,
		string(ontology.Type)).Scan(&stats.Entities); err != nil {
		return stats, fmt.Errorf("counting entities: %w", err)
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT object_value, count(DISTINCT subject) FROM triples WHERE predicate = ? GROUP BY object_value`,
		string(ontology.Type))
	if err != nil {
		return stats, fmt.Errorf("counting entities by type: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var class string
		var n int
		if err := rows.Scan(&class, &n); err != nil {
			return stats, fmt.Errorf("scanning type count: %w", err)
		}
		stats.EntitiesByType[class] = n
	}
	return stats, rows.Err()
}

// RunRecord captures one reasoning run for the runs table.
type RunRecord struct {
	ID         string
	StartedAt  time.Time
	State      string
	Iterations int
	Added      int
	Total      int
}

// RecordRun stores a reasoning run, minting an ID when absent, and
// returns the record with its ID filled in.
func (s *Store) RecordRun(ctx context.Context, run RunRecord) (RunRecord, error) {
	if run.ID == "" {
		run.ID = uuid.NewString()
	}
	if run.StartedAt.IsZero() {
		run.StartedAt = time.Now().UTC()
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO runs (id, started_at, state, iterations, added, total) VALUES (?, ?, ?, ?, ?, ?)`,
		run.ID, run.StartedAt.Format(time.RFC3339Nano), run.State, run.Iterations, run.Added, run.Total)
	if err != nil {
		return run, fmt.Errorf("recording run: %w", err)
	}
	return run, nil
}

// Runs returns recorded reasoning runs, newest first.
func (s *Store) Runs(ctx context.Context, limit int) ([]RunRecord, error) {
	if limit <= 0 {
		limit = s.maxResults
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, started_at, state, iterations, added, total FROM runs ORDER BY started_at DESC LIMIT ?`,
		limit)
	if err != nil {
		return nil, fmt.Errorf("listing runs: %w", err)
	}
	defer rows.Close()

	var out []RunRecord
	for rows.Next() {
		var run RunRecord
		var started string
		if err := rows.Scan(&run.ID, &started, &run.State, &run.Iterations, &run.Added, &run.Total); err != nil {
			return nil, fmt.Errorf("scanning run: %w", err)
		}
		if t, err := time.Parse(time.RFC3339Nano, started); err == nil {
			run.StartedAt = t
		}
		out = append(out, run)
	}
	return out, rows.Err()
}
