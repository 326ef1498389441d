// File path: internal/catalog/queries.go
package catalog

import (
	"context"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
)

// ListRuns returns persisted runs, newest first, optionally filtered by
// variable name.
func (s *Store) ListRuns(ctx context.Context, variable string) ([]Run, error) {
	if s == nil || s.db == nil {
		return nil, fmt.Errorf("catalog store not initialised")
	}
	runs := []Run{}
	variable = strings.TrimSpace(variable)
	if variable == "" {
		if err := s.db.SelectContext(ctx, &runs,
			`SELECT * FROM runs ORDER BY created_at DESC, id DESC`); err != nil {
			return nil, fmt.Errorf("select runs: %w", err)
		}
		return runs, nil
	}
	if err := s.db.SelectContext(ctx, &runs,
		`SELECT * FROM runs WHERE variable = ? ORDER BY created_at DESC, id DESC`, variable); err != nil {
		return nil, fmt.Errorf("select runs: %w", err)
	}
	return runs, nil
}

// FindingsForRun returns the stored findings of a run, optionally filtered
// by categories.
func (s *Store) FindingsForRun(ctx context.Context, runID int64, categories ...string) ([]Finding, error) {
	if s == nil || s.db == nil {
		return nil, fmt.Errorf("catalog store not initialised")
	}
	findings := []Finding{}
	if len(categories) == 0 {
		if err := s.db.SelectContext(ctx, &findings,
			`SELECT * FROM findings WHERE run_id = ? ORDER BY category, sequence`, runID); err != nil {
			return nil, fmt.Errorf("select findings: %w", err)
		}
		return findings, nil
	}
	query, args, err := sqlx.In(
		`SELECT * FROM findings WHERE run_id = ? AND category IN (?) ORDER BY category, sequence`,
		runID, categories)
	if err != nil {
		return nil, fmt.Errorf("build findings query: %w", err)
	}
	query = s.db.Rebind(query)
	if err := s.db.SelectContext(ctx, &findings, query, args...); err != nil {
		return nil, fmt.Errorf("select findings: %w", err)
	}
	return findings, nil
}
