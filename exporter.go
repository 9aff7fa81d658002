package linkex

import "context"

// RecordExporter persists records outside the database with atomic semantics.
// Save writes to a temporary location; Commit makes changes permanent;
// Abort discards pending changes.
type RecordExporter interface {
	Save(ctx context.Context, rec *Record) error
	Commit() error
	Abort() error
}
