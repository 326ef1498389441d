// File path: internal/catalog/store.go
package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"wreslscan/internal/resolver"
)

const busyTimeout = 5 * time.Second

// Store wraps a pooled sqlx.DB connection to the SQLite run catalog. Every
// persisted analysis run is kept with its findings so past reports can be
// listed and re-read without re-scanning the study.
type Store struct {
	db *sqlx.DB
}

// Open constructs a Store backed by the SQLite database at the provided
// path. The schema is migrated on first use.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("catalog path required")
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve catalog path: %w", err)
	}
	busy := int(busyTimeout / time.Millisecond)
	dsn := fmt.Sprintf("file:%s?_pragma=busy_timeout(%d)&_pragma=foreign_keys(1)", abs, busy)
	db, err := sqlx.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open catalog: %w", err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), busyTimeout)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping catalog: %w", err)
	}
	store := &Store{db: db}
	if err := store.migrate(context.Background()); err != nil {
		db.Close()
		return nil, err
	}
	return store, nil
}

// Close releases the underlying database resources.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

func (s *Store) migrate(ctx context.Context) error {
	if s == nil || s.db == nil {
		return errors.New("catalog store not initialised")
	}
	for i, stmt := range pragmaStatements {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("execute pragma statement %d: %w", i+1, err)
		}
	}
	tx, err := s.db.BeginTxx(ctx, &sql.TxOptions{})
	if err != nil {
		return fmt.Errorf("begin migration: %w", err)
	}
	for i, stmt := range schemaStatements {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			tx.Rollback()
			return fmt.Errorf("execute schema statement %d: %w", i+1, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit migration: %w", err)
	}
	return nil
}

// SaveResult records one analysis run and its findings in a single
// transaction, returning the new run identifier.
func (s *Store) SaveResult(ctx context.Context, study string, result *resolver.Result) (int64, error) {
	if s == nil || s.db == nil {
		return 0, errors.New("catalog store not initialised")
	}
	if result == nil {
		return 0, errors.New("result required")
	}
	tx, err := s.db.BeginTxx(ctx, &sql.TxOptions{})
	if err != nil {
		return 0, fmt.Errorf("begin save: %w", err)
	}
	res, err := tx.ExecContext(ctx,
		`INSERT INTO runs(study, variable) VALUES (?, ?)`,
		study, result.Variable)
	if err != nil {
		tx.Rollback()
		return 0, fmt.Errorf("insert run: %w", err)
	}
	runID, err := res.LastInsertId()
	if err != nil {
		tx.Rollback()
		return 0, fmt.Errorf("run id: %w", err)
	}
	categories := []struct {
		name    string
		records []resolver.Record
	}{
		{"defined", result.Defined},
		{"input", result.Inputs},
		{"dependent", result.Dependencies},
	}
	for _, cat := range categories {
		for seq, rec := range cat.records {
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO findings(run_id, category, name, file, start_line, end_line, sequence)
                                 VALUES (?, ?, ?, ?, ?, ?, ?)`,
				runID, cat.name, rec.Name, rec.File, rec.StartLine, rec.EndLine, seq); err != nil {
				tx.Rollback()
				return 0, fmt.Errorf("insert %s finding: %w", cat.name, err)
			}
		}
	}
	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit save: %w", err)
	}
	return runID, nil
}

// pragmaStatements must run outside the migration transaction: SQLite
// rejects switching into WAL mode from within an open transaction.
var pragmaStatements = []string{
	`PRAGMA journal_mode = WAL;`,
	`PRAGMA foreign_keys = ON;`,
}

var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS runs (
                id INTEGER PRIMARY KEY AUTOINCREMENT,
                study TEXT NOT NULL,
                variable TEXT NOT NULL,
                created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
        );`,
	`CREATE TABLE IF NOT EXISTS findings (
                id INTEGER PRIMARY KEY AUTOINCREMENT,
                run_id INTEGER NOT NULL,
                category TEXT NOT NULL,
                name TEXT NOT NULL,
                file TEXT NOT NULL,
                start_line INTEGER NOT NULL,
                end_line INTEGER NOT NULL,
                sequence INTEGER NOT NULL DEFAULT 0,
                FOREIGN KEY(run_id) REFERENCES runs(id) ON DELETE CASCADE
        );`,
	`CREATE INDEX IF NOT EXISTS idx_runs_variable ON runs(variable, created_at);`,
	`CREATE INDEX IF NOT EXISTS idx_findings_run ON findings(run_id, category, sequence);`,
	`CREATE INDEX IF NOT EXISTS idx_findings_name ON findings(name, category);`,
}
