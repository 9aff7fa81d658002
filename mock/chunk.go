package mock

import (
	"context"

	"github.com/fwojciec/linkex"
)

var _ linkex.ChunkService = (*ChunkService)(nil)

// ChunkService is a mock implementation of linkex.ChunkService.
type ChunkService struct {
	CreateChunksFn         func(ctx context.Context, chunks []*linkex.Chunk) error
	FindChunksFn           func(ctx context.Context, filter linkex.ChunkFilter) ([]*linkex.Chunk, error)
	DeleteChunksByRecordFn func(ctx context.Context, recordID string) error
	SearchVectorsFn        func(ctx context.Context, vector []float32, opts linkex.SearchOptions) ([]linkex.SearchResult, error)
}

func (s *ChunkService) CreateChunks(ctx context.Context, chunks []*linkex.Chunk) error {
	return s.CreateChunksFn(ctx, chunks)
}

func (s *ChunkService) FindChunks(ctx context.Context, filter linkex.ChunkFilter) ([]*linkex.Chunk, error) {
	return s.FindChunksFn(ctx, filter)
}

func (s *ChunkService) DeleteChunksByRecord(ctx context.Context, recordID string) error {
	return s.DeleteChunksByRecordFn(ctx, recordID)
}

func (s *ChunkService) SearchVectors(ctx context.Context, vector []float32, opts linkex.SearchOptions) ([]linkex.SearchResult, error) {
	return s.SearchVectorsFn(ctx, vector, opts)
}

var _ linkex.SearchService = (*SearchService)(nil)

// SearchService is a mock implementation of linkex.SearchService.
type SearchService struct {
	SearchFn func(ctx context.Context, query string, opts linkex.SearchOptions) ([]linkex.SearchResult, error)
}

func (s *SearchService) Search(ctx context.Context, query string, opts linkex.SearchOptions) ([]linkex.SearchResult, error) {
	return s.SearchFn(ctx, query, opts)
}

var _ linkex.Splitter = (*Splitter)(nil)

// Splitter is a mock implementation of linkex.Splitter.
type Splitter struct {
	SplitFn func(text string) ([]string, error)
}

func (s *Splitter) Split(text string) ([]string, error) {
	return s.SplitFn(text)
}

var _ linkex.Embedder = (*Embedder)(nil)

// Embedder is a mock implementation of linkex.Embedder.
type Embedder struct {
	EmbedDocumentsFn func(ctx context.Context, texts []string) ([][]float32, error)
	EmbedQueryFn     func(ctx context.Context, text string) ([]float32, error)
}

func (e *Embedder) EmbedDocuments(ctx context.Context, texts []string) ([][]float32, error) {
	return e.EmbedDocumentsFn(ctx, texts)
}

func (e *Embedder) EmbedQuery(ctx context.Context, text string) ([]float32, error) {
	return e.EmbedQueryFn(ctx, text)
}

var _ linkex.Indexer = (*Indexer)(nil)

// Indexer is a mock implementation of linkex.Indexer.
type Indexer struct {
	IndexFn func(ctx context.Context, rec *linkex.Record) (int, error)
}

func (i *Indexer) Index(ctx context.Context, rec *linkex.Record) (int, error) {
	return i.IndexFn(ctx, rec)
}
