package ollama_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/fwojciec/linkex"
	"github.com/fwojciec/linkex/ollama"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeEmbeddingClient embeds each text as its length.
type fakeEmbeddingClient struct {
	err error
}

func (c *fakeEmbeddingClient) CreateEmbedding(_ context.Context, texts []string) ([][]float32, error) {
	if c.err != nil {
		return nil, c.err
	}
	out := make([][]float32, len(texts))
	for i, t := range texts {
		out[i] = []float32{float32(len(t)), 1}
	}
	return out, nil
}

func TestEmbedder(t *testing.T) {
	t.Parallel()

	t.Run("embeds documents in order", func(t *testing.T) {
		t.Parallel()

		e, err := ollama.NewEmbedderWithClient(&fakeEmbeddingClient{})
		require.NoError(t, err)

		vectors, err := e.EmbedDocuments(context.Background(), []string{"ab", "abcd"})

		require.NoError(t, err)
		assert.Equal(t, [][]float32{{2, 1}, {4, 1}}, vectors)
	})

	t.Run("embeds a query", func(t *testing.T) {
		t.Parallel()

		e, err := ollama.NewEmbedderWithClient(&fakeEmbeddingClient{})
		require.NoError(t, err)

		vector, err := e.EmbedQuery(context.Background(), "abc")

		require.NoError(t, err)
		assert.Equal(t, []float32{3, 1}, vector)
	})

	t.Run("returns nothing for no documents", func(t *testing.T) {
		t.Parallel()

		e, err := ollama.NewEmbedderWithClient(&fakeEmbeddingClient{err: errors.New("unexpected call")})
		require.NoError(t, err)

		vectors, err := e.EmbedDocuments(context.Background(), nil)

		require.NoError(t, err)
		assert.Empty(t, vectors)
	})

	t.Run("maps errors", func(t *testing.T) {
		t.Parallel()

		e, err := ollama.NewEmbedderWithClient(&fakeEmbeddingClient{err: errors.New("connection refused")})
		require.NoError(t, err)

		_, err = e.EmbedQuery(context.Background(), strings.Repeat("x", 3))

		assert.Equal(t, linkex.EUNAVAILABLE, linkex.ErrorCode(err))
	})
}
