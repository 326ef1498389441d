// File path: internal/catalog/types.go
package catalog

import "time"

// Run represents one persisted analysis run.
type Run struct {
	ID        int64     `db:"id" json:"id"`
	Study     string    `db:"study" json:"study"`
	Variable  string    `db:"variable" json:"variable"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// Finding represents one stored dependency record. Category is one of
// "defined", "input", or "dependent"; Sequence preserves discovery order
// within the category.
type Finding struct {
	ID        int64  `db:"id" json:"id"`
	RunID     int64  `db:"run_id" json:"run_id"`
	Category  string `db:"category" json:"category"`
	Name      string `db:"name" json:"name"`
	File      string `db:"file" json:"file"`
	StartLine int    `db:"start_line" json:"start_line"`
	EndLine   int    `db:"end_line" json:"end_line"`
	Sequence  int    `db:"sequence" json:"sequence"`
}
