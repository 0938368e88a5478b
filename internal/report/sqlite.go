package report

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"lockstep/internal/checker"
)

type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore creates or opens a SQLite run-history database.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}

	if err := db.Ping(); err != nil {
		return nil, err
	}

	s := &SQLiteStore{db: db}
	if err := s.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to init schema: %w", err)
	}

	return s, nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) initSchema() error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS runs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			started_at TEXT NOT NULL,
			xml_path TEXT,
			total INTEGER,
			passed INTEGER,
			failed INTEGER,
			errors INTEGER
		);`,
		`CREATE TABLE IF NOT EXISTS results (
			run_id INTEGER NOT NULL REFERENCES runs(id),
			position INTEGER NOT NULL,
			type_name TEXT,
			kind TEXT,
			interface TEXT,
			member TEXT,
			document TEXT,
			declared TEXT,
			reported TEXT,
			status TEXT,
			detail TEXT,
			PRIMARY KEY (run_id, position)
		);`,
		`CREATE INDEX IF NOT EXISTS idx_results_run ON results(run_id);`,
	}

	for _, q := range queries {
		if _, err := s.db.Exec(q); err != nil {
			return err
		}
	}
	return nil
}

func (s *SQLiteStore) SaveRun(ctx context.Context, run *Run, results []checker.Result) (int64, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, `
		INSERT INTO runs (started_at, xml_path, total, passed, failed, errors)
		VALUES (?, ?, ?, ?, ?, ?)
	`, run.StartedAt.UTC().Format(time.RFC3339), run.XMLPath, run.Total, run.Passed, run.Failed, run.Errors)
	if err != nil {
		return 0, err
	}
	runID, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO results (run_id, position, type_name, kind, interface, member, document, declared, reported, status, detail)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return 0, err
	}
	defer stmt.Close()

	for i, r := range results {
		if _, err := stmt.Exec(runID, i, r.Type, r.Kind, r.Interface, r.Member, r.Document, r.Declared, r.Reported, r.Status, r.Detail); err != nil {
			return 0, err
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}
	run.ID = runID
	return runID, nil
}

func (s *SQLiteStore) ListRuns(ctx context.Context, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, started_at, xml_path, total, passed, failed, errors
		FROM runs ORDER BY id DESC LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		var started string
		if err := rows.Scan(&r.ID, &started, &r.XMLPath, &r.Total, &r.Passed, &r.Failed, &r.Errors); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		if ts, err := time.Parse(time.RFC3339, started); err == nil {
			r.StartedAt = ts
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

func (s *SQLiteStore) RunResults(ctx context.Context, runID int64) ([]checker.Result, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT type_name, kind, interface, member, document, declared, reported, status, detail
		FROM results WHERE run_id = ? ORDER BY position
	`, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to query results: %w", err)
	}
	defer rows.Close()

	var results []checker.Result
	for rows.Next() {
		var r checker.Result
		if err := rows.Scan(&r.Type, &r.Kind, &r.Interface, &r.Member, &r.Document, &r.Declared, &r.Reported, &r.Status, &r.Detail); err != nil {
			return nil, fmt.Errorf("failed to scan result: %w", err)
		}
		results = append(results, r)
	}
	return results, rows.Err()
}
