package rag

import (
	"context"
	"strings"

	"github.com/fwojciec/linkex"
)

// Ensure Retriever implements linkex.SearchService at compile time.
var _ linkex.SearchService = (*Retriever)(nil)

// Retriever finds the chunks most similar to a query.
type Retriever struct {
	chunks   linkex.ChunkService
	embedder linkex.Embedder
}

// NewRetriever creates a new Retriever.
func NewRetriever(chunks linkex.ChunkService, embedder linkex.Embedder) *Retriever {
	return &Retriever{chunks: chunks, embedder: embedder}
}

// Search embeds the query and returns up to opts.Limit chunks ordered by
// descending cosine similarity. The limit defaults to linkex.DefaultSearchLimit.
func (r *Retriever) Search(ctx context.Context, query string, opts linkex.SearchOptions) ([]linkex.SearchResult, error) {
	if strings.TrimSpace(query) == "" {
		return nil, linkex.Errorf(linkex.EINVALID, "query required")
	}
	if opts.Limit <= 0 {
		opts.Limit = linkex.DefaultSearchLimit
	}

	vector, err := r.embedder.EmbedQuery(ctx, query)
	if err != nil {
		return nil, err
	}
	return r.chunks.SearchVectors(ctx, vector, opts)
}
