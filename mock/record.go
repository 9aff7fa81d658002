package mock

import (
	"context"

	"github.com/fwojciec/linkex"
)

var _ linkex.RecordService = (*RecordService)(nil)

// RecordService is a mock implementation of linkex.RecordService.
type RecordService struct {
	CreateRecordFn    func(ctx context.Context, rec *linkex.Record) error
	FindRecordByIDFn  func(ctx context.Context, id string) (*linkex.Record, error)
	FindRecordByURLFn func(ctx context.Context, sourceURL string) (*linkex.Record, error)
	FindRecordsFn     func(ctx context.Context, filter linkex.RecordFilter) ([]*linkex.Record, error)
	UpdateRecordFn    func(ctx context.Context, id string, upd linkex.RecordUpdate) (*linkex.Record, error)
	UpsertRecordFn    func(ctx context.Context, rec *linkex.Record) (bool, error)
	DeleteRecordFn    func(ctx context.Context, id string) error
}

func (s *RecordService) CreateRecord(ctx context.Context, rec *linkex.Record) error {
	return s.CreateRecordFn(ctx, rec)
}

func (s *RecordService) FindRecordByID(ctx context.Context, id string) (*linkex.Record, error) {
	return s.FindRecordByIDFn(ctx, id)
}

func (s *RecordService) FindRecordByURL(ctx context.Context, sourceURL string) (*linkex.Record, error) {
	return s.FindRecordByURLFn(ctx, sourceURL)
}

func (s *RecordService) FindRecords(ctx context.Context, filter linkex.RecordFilter) ([]*linkex.Record, error) {
	return s.FindRecordsFn(ctx, filter)
}

func (s *RecordService) UpdateRecord(ctx context.Context, id string, upd linkex.RecordUpdate) (*linkex.Record, error) {
	return s.UpdateRecordFn(ctx, id, upd)
}

func (s *RecordService) UpsertRecord(ctx context.Context, rec *linkex.Record) (bool, error) {
	return s.UpsertRecordFn(ctx, rec)
}

func (s *RecordService) DeleteRecord(ctx context.Context, id string) error {
	return s.DeleteRecordFn(ctx, id)
}
