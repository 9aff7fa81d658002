package sqlite

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/fwojciec/linkex"
	"github.com/google/uuid"
)

// Compile-time interface verification.
var _ linkex.ChunkService = (*ChunkService)(nil)

// ChunkService implements linkex.ChunkService using SQLite.
// Embeddings are stored as little-endian float32 blobs and searched by
// brute-force cosine similarity.
type ChunkService struct {
	db *DB
}

// NewChunkService creates a new ChunkService.
func NewChunkService(db *DB) *ChunkService {
	return &ChunkService{db: db}
}

// CreateChunks creates multiple chunks in a single transaction.
func (s *ChunkService) CreateChunks(ctx context.Context, chunks []*linkex.Chunk) error {
	for _, c := range chunks {
		if err := c.Validate(); err != nil {
			return err
		}
	}

	tx, err := s.db.BeginTx(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO chunks (id, record_id, position, content, embedding, metadata)
		VALUES (?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, c := range chunks {
		c.ID = uuid.New().String()
		meta, err := json.Marshal(c.Metadata)
		if err != nil {
			return fmt.Errorf("failed to encode chunk metadata: %w", err)
		}
		if _, err := stmt.ExecContext(ctx, c.ID, c.RecordID, c.Position, c.Content,
			encodeVector(c.Embedding), string(meta)); err != nil {
			return err
		}
	}

	return tx.Commit()
}

// FindChunks retrieves chunks matching the filter, ordered by position.
func (s *ChunkService) FindChunks(ctx context.Context, filter linkex.ChunkFilter) ([]*linkex.Chunk, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT id, record_id, position, content, embedding, metadata FROM chunks WHERE 1=1")

	if filter.ID != nil {
		query.WriteString(" AND id = ?")
		args = append(args, *filter.ID)
	}
	if filter.RecordID != nil {
		query.WriteString(" AND record_id = ?")
		args = append(args, *filter.RecordID)
	}

	query.WriteString(" ORDER BY record_id, position ASC")
	appendPagination(&query, &args, filter.Limit, filter.Offset)

	return s.queryChunks(ctx, query.String(), args...)
}

func (s *ChunkService) queryChunks(ctx context.Context, query string, args ...any) ([]*linkex.Chunk, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var chunks []*linkex.Chunk
	for rows.Next() {
		var c linkex.Chunk
		var embedding []byte
		var meta string

		if err := rows.Scan(&c.ID, &c.RecordID, &c.Position, &c.Content, &embedding, &meta); err != nil {
			return nil, err
		}
		if c.Embedding, err = decodeVector(embedding); err != nil {
			return nil, err
		}
		if err := json.Unmarshal([]byte(meta), &c.Metadata); err != nil {
			return nil, fmt.Errorf("failed to decode chunk metadata: %w", err)
		}
		chunks = append(chunks, &c)
	}

	return chunks, rows.Err()
}

// DeleteChunksByRecord removes all chunks for a record.
func (s *ChunkService) DeleteChunksByRecord(ctx context.Context, recordID string) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM chunks WHERE record_id = ?", recordID)
	return err
}

// SearchVectors scores every stored embedding in scope against vector and
// returns the best matches ordered by descending similarity.
func (s *ChunkService) SearchVectors(ctx context.Context, vector []float32, opts linkex.SearchOptions) ([]linkex.SearchResult, error) {
	if len(vector) == 0 {
		return nil, linkex.Errorf(linkex.EINVALID, "query vector required")
	}

	var query strings.Builder
	var args []any
	query.WriteString("SELECT id, record_id, position, content, embedding, metadata FROM chunks WHERE embedding IS NOT NULL")
	if len(opts.RecordIDs) > 0 {
		query.WriteString(" AND record_id IN (" + placeholders(len(opts.RecordIDs)) + ")")
		for _, id := range opts.RecordIDs {
			args = append(args, id)
		}
	}
	query.WriteString(" ORDER BY record_id, position ASC")

	chunks, err := s.queryChunks(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}

	results := make([]linkex.SearchResult, 0, len(chunks))
	for _, c := range chunks {
		score := cosineSimilarity(vector, c.Embedding)
		if opts.MinScore > 0 && score < opts.MinScore {
			continue
		}
		results = append(results, linkex.SearchResult{Chunk: c, Score: score})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})

	limit := opts.Limit
	if limit <= 0 {
		limit = linkex.DefaultSearchLimit
	}
	if len(results) > limit {
		results = results[:limit]
	}
	return results, nil
}
