// Package rag answers questions about stored records by retrieving the
// most similar chunks of their text and grounding a language model on them.
package rag

import (
	"context"
	"strings"

	"github.com/fwojciec/linkex"
)

// Ensure Indexer implements linkex.Indexer at compile time.
var _ linkex.Indexer = (*Indexer)(nil)

// Indexer splits a record's formatted text into chunks, embeds them and
// replaces the record's stored chunks.
type Indexer struct {
	chunks   linkex.ChunkService
	splitter linkex.Splitter
	embedder linkex.Embedder
}

// NewIndexer creates a new Indexer.
func NewIndexer(chunks linkex.ChunkService, splitter linkex.Splitter, embedder linkex.Embedder) *Indexer {
	return &Indexer{chunks: chunks, splitter: splitter, embedder: embedder}
}

// Index rebuilds the chunk index of rec and returns the number of chunks stored.
func (ix *Indexer) Index(ctx context.Context, rec *linkex.Record) (int, error) {
	if rec == nil || rec.ID == "" {
		return 0, linkex.Errorf(linkex.EINVALID, "record ID required")
	}

	text := linkex.FormatRecord(rec)
	pieces, err := ix.splitter.Split(text)
	if err != nil {
		return 0, err
	}

	var contents []string
	for _, p := range pieces {
		if strings.TrimSpace(p) != "" {
			contents = append(contents, p)
		}
	}

	var vectors [][]float32
	if len(contents) > 0 {
		vectors, err = ix.embedder.EmbedDocuments(ctx, contents)
		if err != nil {
			return 0, err
		}
		if len(vectors) != len(contents) {
			return 0, linkex.Errorf(linkex.EINTERNAL, "embedder returned %d vectors for %d chunks", len(vectors), len(contents))
		}
	}

	if err := ix.chunks.DeleteChunksByRecord(ctx, rec.ID); err != nil {
		return 0, err
	}
	if len(contents) == 0 {
		return 0, nil
	}

	chunks := make([]*linkex.Chunk, len(contents))
	locate := lineLocator(text)
	for i, content := range contents {
		start, end := locate(content)
		chunks[i] = &linkex.Chunk{
			RecordID:  rec.ID,
			Position:  i,
			Content:   content,
			Embedding: vectors[i],
			Metadata: linkex.ChunkMetadata{
				Kind:      rec.Kind,
				SourceURL: rec.SourceURL,
				StartLine: start,
				EndLine:   end,
			},
		}
	}

	if err := ix.chunks.CreateChunks(ctx, chunks); err != nil {
		return 0, err
	}
	return len(chunks), nil
}

// lineLocator returns a function that finds successive chunks in text and
// reports their 1-based line range. Chunks are searched from the start of
// the previous match, so overlapping chunks resolve in order. Zero is
// returned for chunks that are not found verbatim.
func lineLocator(text string) func(chunk string) (int, int) {
	from := 0
	return func(chunk string) (int, int) {
		i := strings.Index(text[from:], chunk)
		if i < 0 {
			return 0, 0
		}
		at := from + i
		from = at + 1
		start := strings.Count(text[:at], "\n") + 1
		end := start + strings.Count(strings.TrimRight(chunk, "\n"), "\n")
		return start, end
	}
}
