package linkex

import (
	"context"
)

// Chunk represents a section of a record's formatted text optimized for
// embedding and retrieval.
type Chunk struct {
	ID        string        `json:"id"`
	RecordID  string        `json:"recordId"`
	Position  int           `json:"position"`
	Content   string        `json:"content"`
	Embedding []float32     `json:"embedding,omitempty"`
	Metadata  ChunkMetadata `json:"metadata"`
}

// ChunkMetadata contains contextual information about a chunk.
type ChunkMetadata struct {
	Kind Kind `json:"kind,omitempty"`

	// Position in the formatted record text
	StartLine int `json:"startLine,omitempty"`
	EndLine   int `json:"endLine,omitempty"`

	// Source URL for citation
	SourceURL string `json:"sourceUrl,omitempty"`
}

// Validate returns an error if the chunk contains invalid fields.
func (c *Chunk) Validate() error {
	if c.RecordID == "" {
		return Errorf(EINVALID, "chunk record ID required")
	}
	if c.Content == "" {
		return Errorf(EINVALID, "chunk content required")
	}
	return nil
}

// ChunkService represents a service for managing chunks.
type ChunkService interface {
	// CreateChunks creates multiple chunks in a batch.
	CreateChunks(ctx context.Context, chunks []*Chunk) error

	// FindChunks retrieves chunks matching the filter, ordered by position.
	FindChunks(ctx context.Context, filter ChunkFilter) ([]*Chunk, error)

	// DeleteChunksByRecord removes all chunks for a record.
	DeleteChunksByRecord(ctx context.Context, recordID string) error

	// SearchVectors scores stored chunk embeddings against a query vector.
	// Returns results ordered by descending similarity.
	SearchVectors(ctx context.Context, vector []float32, opts SearchOptions) ([]SearchResult, error)
}

// ChunkFilter represents a filter for FindChunks.
type ChunkFilter struct {
	ID       *string `json:"id"`
	RecordID *string `json:"recordId"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}

// SearchService provides semantic search over chunks.
type SearchService interface {
	// Search performs semantic search over chunks.
	// Returns chunks ordered by relevance to the query.
	Search(ctx context.Context, query string, opts SearchOptions) ([]SearchResult, error)
}

// DefaultSearchLimit is the number of chunks retrieved per question.
const DefaultSearchLimit = 3

// SearchOptions configures search behavior.
type SearchOptions struct {
	// Filter results to specific record(s)
	RecordIDs []string `json:"recordIds,omitempty"`

	// Maximum number of results to return
	Limit int `json:"limit,omitempty"`

	// Minimum similarity score (0-1)
	MinScore float32 `json:"minScore,omitempty"`
}

// SearchResult represents a search match.
type SearchResult struct {
	Chunk *Chunk  `json:"chunk"`
	Score float32 `json:"score"`
}

// Splitter divides text into overlapping chunks.
type Splitter interface {
	Split(text string) ([]string, error)
}

// Embedder converts text into embedding vectors.
type Embedder interface {
	// EmbedDocuments embeds a batch of texts, one vector per input.
	EmbedDocuments(ctx context.Context, texts []string) ([][]float32, error)

	// EmbedQuery embeds a single search query.
	EmbedQuery(ctx context.Context, text string) ([]float32, error)
}

// Indexer builds the searchable chunk index for a record.
type Indexer interface {
	// Index replaces the record's chunks and returns how many were stored.
	Index(ctx context.Context, rec *Record) (int, error)
}
