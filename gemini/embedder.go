package gemini

import (
	"context"

	"github.com/fwojciec/linkex"
	"google.golang.org/genai"
)

// Ensure Embedder implements linkex.Embedder at compile time.
var _ linkex.Embedder = (*Embedder)(nil)

// ContentEmbedder is the part of genai.Models used for embeddings.
type ContentEmbedder interface {
	EmbedContent(ctx context.Context, model string, contents []*genai.Content, config *genai.EmbedContentConfig) (*genai.EmbedContentResponse, error)
}

// Embedder embeds text with a Gemini embedding model.
type Embedder struct {
	models ContentEmbedder
	model  string
}

// NewEmbedder creates an Embedder. An empty model uses DefaultEmbeddingModel.
func NewEmbedder(models ContentEmbedder, model string) *Embedder {
	if model == "" {
		model = DefaultEmbeddingModel
	}
	return &Embedder{models: models, model: model}
}

// EmbedDocuments embeds chunks for retrieval.
func (e *Embedder) EmbedDocuments(ctx context.Context, texts []string) ([][]float32, error) {
	return e.embed(ctx, texts, "RETRIEVAL_DOCUMENT")
}

// EmbedQuery embeds a question.
func (e *Embedder) EmbedQuery(ctx context.Context, text string) ([]float32, error) {
	vectors, err := e.embed(ctx, []string{text}, "RETRIEVAL_QUERY")
	if err != nil {
		return nil, err
	}
	return vectors[0], nil
}

func (e *Embedder) embed(ctx context.Context, texts []string, taskType string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, nil
	}

	contents := make([]*genai.Content, len(texts))
	for i, t := range texts {
		contents[i] = genai.NewContentFromText(t, genai.RoleUser)
	}

	resp, err := e.models.EmbedContent(ctx, e.model, contents, &genai.EmbedContentConfig{TaskType: taskType})
	if err != nil {
		return nil, mapError(ctx, "embed", err)
	}
	if resp == nil || len(resp.Embeddings) != len(texts) {
		return nil, linkex.Errorf(linkex.EINTERNAL, "gemini returned a wrong number of embeddings")
	}

	vectors := make([][]float32, len(resp.Embeddings))
	for i, emb := range resp.Embeddings {
		if emb == nil {
			return nil, linkex.Errorf(linkex.EINTERNAL, "gemini returned an empty embedding")
		}
		vectors[i] = emb.Values
	}
	return vectors, nil
}
