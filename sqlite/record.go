package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/fwojciec/linkex"
	"github.com/google/uuid"
)

// Compile-time interface verification.
var _ linkex.RecordService = (*RecordService)(nil)

// RecordService implements linkex.RecordService using SQLite.
type RecordService struct {
	db *DB
}

// NewRecordService creates a new RecordService.
func NewRecordService(db *DB) *RecordService {
	return &RecordService{db: db}
}

// payload is the JSON document stored in the data column.
type payload struct {
	Profile *linkex.Profile `json:"profile,omitempty"`
	Company *linkex.Company `json:"company,omitempty"`
	Post    *linkex.Post    `json:"post,omitempty"`
	Article *linkex.Article `json:"article,omitempty"`
}

func encodePayload(rec *linkex.Record) (string, error) {
	data, err := json.Marshal(payload{
		Profile: rec.Profile,
		Company: rec.Company,
		Post:    rec.Post,
		Article: rec.Article,
	})
	if err != nil {
		return "", fmt.Errorf("failed to encode record data: %w", err)
	}
	return string(data), nil
}

func decodePayload(data string, rec *linkex.Record) error {
	var p payload
	if err := json.Unmarshal([]byte(data), &p); err != nil {
		return fmt.Errorf("failed to decode record data: %w", err)
	}
	rec.Profile = p.Profile
	rec.Company = p.Company
	rec.Post = p.Post
	rec.Article = p.Article
	return nil
}

const recordColumns = "id, kind, source_url, title, data, content_hash, fetched_at, updated_at"

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRecord(row rowScanner) (*linkex.Record, error) {
	var rec linkex.Record
	var kind, data, fetchedAt, updatedAt string

	if err := row.Scan(&rec.ID, &kind, &rec.SourceURL, &rec.Title, &data,
		&rec.ContentHash, &fetchedAt, &updatedAt); err != nil {
		return nil, err
	}
	rec.Kind = linkex.Kind(kind)

	if err := decodePayload(data, &rec); err != nil {
		return nil, err
	}

	var err error
	if rec.FetchedAt, err = parseRFC3339(fetchedAt, "fetched_at"); err != nil {
		return nil, err
	}
	if rec.UpdatedAt, err = parseRFC3339(updatedAt, "updated_at"); err != nil {
		return nil, err
	}
	return &rec, nil
}

// CreateRecord creates a new record.
func (s *RecordService) CreateRecord(ctx context.Context, rec *linkex.Record) error {
	if err := rec.Validate(); err != nil {
		return err
	}

	var exists int
	err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM records WHERE source_url = ?", rec.SourceURL).Scan(&exists)
	if err != nil {
		return err
	}
	if exists > 0 {
		return linkex.Errorf(linkex.ECONFLICT, "record for %s already exists", rec.SourceURL)
	}

	data, err := encodePayload(rec)
	if err != nil {
		return err
	}

	now := time.Now().UTC().Truncate(time.Second)
	rec.ID = uuid.New().String()
	if rec.FetchedAt.IsZero() {
		rec.FetchedAt = now
	}
	rec.UpdatedAt = now
	rec.ContentHash = hashContent(linkex.FormatRecord(rec))

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO records (id, kind, source_url, title, data, content_hash, fetched_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, rec.ID, string(rec.Kind), rec.SourceURL, rec.Title, data, rec.ContentHash,
		rec.FetchedAt.UTC().Format(time.RFC3339), rec.UpdatedAt.Format(time.RFC3339))

	return err
}

// FindRecordByID retrieves a record by ID.
func (s *RecordService) FindRecordByID(ctx context.Context, id string) (*linkex.Record, error) {
	rec, err := scanRecord(s.db.QueryRowContext(ctx,
		"SELECT "+recordColumns+" FROM records WHERE id = ?", id))
	if err == sql.ErrNoRows {
		return nil, linkex.Errorf(linkex.ENOTFOUND, "record not found")
	}
	return rec, err
}

// FindRecordByURL retrieves a record by its normalized source URL.
func (s *RecordService) FindRecordByURL(ctx context.Context, sourceURL string) (*linkex.Record, error) {
	rec, err := scanRecord(s.db.QueryRowContext(ctx,
		"SELECT "+recordColumns+" FROM records WHERE source_url = ?", sourceURL))
	if err == sql.ErrNoRows {
		return nil, linkex.Errorf(linkex.ENOTFOUND, "record not found")
	}
	return rec, err
}

// FindRecords retrieves records matching the filter, most recently updated first.
func (s *RecordService) FindRecords(ctx context.Context, filter linkex.RecordFilter) ([]*linkex.Record, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT " + recordColumns + " FROM records WHERE 1=1")

	if filter.ID != nil {
		query.WriteString(" AND id = ?")
		args = append(args, *filter.ID)
	}
	if filter.Kind != nil {
		query.WriteString(" AND kind = ?")
		args = append(args, string(*filter.Kind))
	}
	if filter.SourceURL != nil {
		query.WriteString(" AND source_url = ?")
		args = append(args, *filter.SourceURL)
	}

	query.WriteString(" ORDER BY updated_at DESC, rowid DESC")
	appendPagination(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []*linkex.Record
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}

	return records, rows.Err()
}

// UpdateRecord updates an existing record.
func (s *RecordService) UpdateRecord(ctx context.Context, id string, upd linkex.RecordUpdate) (*linkex.Record, error) {
	rec, err := s.FindRecordByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if upd.Title != nil {
		rec.Title = *upd.Title
	}
	rec.UpdatedAt = time.Now().UTC().Truncate(time.Second)

	_, err = s.db.ExecContext(ctx, `
		UPDATE records SET title = ?, updated_at = ? WHERE id = ?
	`, rec.Title, rec.UpdatedAt.Format(time.RFC3339), id)
	if err != nil {
		return nil, err
	}

	return rec, nil
}

// UpsertRecord creates the record or replaces the stored payload of the
// record with the same source URL. The record's ID, hash and timestamps are
// filled in from storage. Returns false when the content hash is unchanged.
func (s *RecordService) UpsertRecord(ctx context.Context, rec *linkex.Record) (bool, error) {
	if err := rec.Validate(); err != nil {
		return false, err
	}

	existing, err := s.FindRecordByURL(ctx, rec.SourceURL)
	if linkex.ErrorCode(err) == linkex.ENOTFOUND {
		if err := s.CreateRecord(ctx, rec); err != nil {
			return false, err
		}
		return true, nil
	}
	if err != nil {
		return false, err
	}

	now := time.Now().UTC().Truncate(time.Second)
	hash := hashContent(linkex.FormatRecord(rec))
	if rec.FetchedAt.IsZero() {
		rec.FetchedAt = now
	}
	rec.ID = existing.ID

	if hash == existing.ContentHash && rec.Kind == existing.Kind {
		rec.ContentHash = existing.ContentHash
		rec.UpdatedAt = existing.UpdatedAt
		if rec.Title == "" {
			rec.Title = existing.Title
		}
		_, err := s.db.ExecContext(ctx, "UPDATE records SET fetched_at = ? WHERE id = ?",
			rec.FetchedAt.UTC().Format(time.RFC3339), rec.ID)
		return false, err
	}

	data, err := encodePayload(rec)
	if err != nil {
		return false, err
	}
	rec.ContentHash = hash
	rec.UpdatedAt = now

	_, err = s.db.ExecContext(ctx, `
		UPDATE records
		SET kind = ?, title = ?, data = ?, content_hash = ?, fetched_at = ?, updated_at = ?
		WHERE id = ?
	`, string(rec.Kind), rec.Title, data, rec.ContentHash,
		rec.FetchedAt.UTC().Format(time.RFC3339), rec.UpdatedAt.Format(time.RFC3339), rec.ID)
	if err != nil {
		return false, err
	}
	return true, nil
}

// DeleteRecord permanently removes a record, its chunks and every
// conversation that involves it.
func (s *RecordService) DeleteRecord(ctx context.Context, id string) error {
	tx, err := s.db.BeginTx(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	result, err := tx.ExecContext(ctx, "DELETE FROM records WHERE id = ?", id)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return linkex.Errorf(linkex.ENOTFOUND, "record not found")
	}

	// Conversation keys are comma-joined record IDs.
	if _, err := tx.ExecContext(ctx,
		"DELETE FROM turns WHERE ',' || conversation || ',' LIKE '%,' || ? || ',%'", id); err != nil {
		return err
	}

	return tx.Commit()
}
