package ollama

import (
	"context"

	"github.com/fwojciec/linkex"
	"github.com/tmc/langchaingo/embeddings"
	"github.com/tmc/langchaingo/llms/ollama"
)

// Ensure Embedder implements linkex.Embedder at compile time.
var _ linkex.Embedder = (*Embedder)(nil)

// Embedder embeds text with an Ollama embedding model.
type Embedder struct {
	inner embeddings.Embedder
}

// NewEmbedder creates an Embedder for model on the server at serverURL.
func NewEmbedder(serverURL, model string) (*Embedder, error) {
	llm, err := ollama.New(ollama.WithServerURL(serverURL), ollama.WithModel(model))
	if err != nil {
		return nil, err
	}
	inner, err := embeddings.NewEmbedder(llm)
	if err != nil {
		return nil, err
	}
	return &Embedder{inner: inner}, nil
}

// NewEmbedderWithClient creates an Embedder around any langchaingo
// embedding client.
func NewEmbedderWithClient(client embeddings.EmbedderClient) (*Embedder, error) {
	inner, err := embeddings.NewEmbedder(client)
	if err != nil {
		return nil, err
	}
	return &Embedder{inner: inner}, nil
}

// EmbedDocuments embeds a batch of chunks.
func (e *Embedder) EmbedDocuments(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, nil
	}
	vectors, err := e.inner.EmbedDocuments(ctx, texts)
	if err != nil {
		return nil, mapError(ctx, "embed", err)
	}
	return vectors, nil
}

// EmbedQuery embeds a question.
func (e *Embedder) EmbedQuery(ctx context.Context, text string) ([]float32, error) {
	vector, err := e.inner.EmbedQuery(ctx, text)
	if err != nil {
		return nil, mapError(ctx, "embed", err)
	}
	return vector, nil
}
