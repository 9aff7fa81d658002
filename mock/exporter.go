package mock

import (
	"context"

	"github.com/fwojciec/linkex"
)

var _ linkex.RecordExporter = (*RecordExporter)(nil)

// RecordExporter is a mock implementation of linkex.RecordExporter.
type RecordExporter struct {
	SaveFn   func(ctx context.Context, rec *linkex.Record) error
	CommitFn func() error
	AbortFn  func() error
}

func (e *RecordExporter) Save(ctx context.Context, rec *linkex.Record) error {
	return e.SaveFn(ctx, rec)
}

func (e *RecordExporter) Commit() error {
	return e.CommitFn()
}

func (e *RecordExporter) Abort() error {
	return e.AbortFn()
}
