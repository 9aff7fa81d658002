package ollama_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/fwojciec/linkex"
	"github.com/fwojciec/linkex/mock"
	"github.com/fwojciec/linkex/ollama"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newOllamaServer(t *testing.T) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	mux.HandleFunc("/api/tags", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"models":[{"name":"mistral:latest","model":"mistral:latest"},{"name":"llama2:latest","model":"llama2:latest"}]}`))
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestClient(t *testing.T) {
	t.Parallel()

	t.Run("heartbeat succeeds against running server", func(t *testing.T) {
		t.Parallel()

		srv := newOllamaServer(t)
		c, err := ollama.NewClient(srv.URL, srv.Client())
		require.NoError(t, err)

		assert.NoError(t, c.Heartbeat(context.Background()))
	})

	t.Run("lists installed models sorted", func(t *testing.T) {
		t.Parallel()

		srv := newOllamaServer(t)
		c, err := ollama.NewClient(srv.URL, srv.Client())
		require.NoError(t, err)

		models, err := c.ListModels(context.Background())

		require.NoError(t, err)
		assert.Equal(t, []string{"llama2:latest", "mistral:latest"}, models)
	})

	t.Run("reports unreachable server as unavailable", func(t *testing.T) {
		t.Parallel()

		srv := newOllamaServer(t)
		url := srv.URL
		srv.Close()

		c, err := ollama.NewClient(url, nil)
		require.NoError(t, err)

		err = c.Heartbeat(context.Background())
		assert.Equal(t, linkex.EUNAVAILABLE, linkex.ErrorCode(err))
	})

	t.Run("rejects invalid URL", func(t *testing.T) {
		t.Parallel()

		_, err := ollama.NewClient("localhost", nil)

		assert.Equal(t, linkex.EINVALID, linkex.ErrorCode(err))
	})
}

func TestAvailableModels(t *testing.T) {
	t.Parallel()

	t.Run("uses server list", func(t *testing.T) {
		t.Parallel()

		models := &mock.ModelService{
			ListModelsFn: func(context.Context) ([]string, error) { return []string{"phi3"}, nil },
		}

		names, live := ollama.AvailableModels(context.Background(), models)

		assert.True(t, live)
		assert.Equal(t, []string{"phi3"}, names)
	})

	t.Run("falls back when unreachable", func(t *testing.T) {
		t.Parallel()

		models := &mock.ModelService{
			ListModelsFn: func(context.Context) ([]string, error) {
				return nil, linkex.Errorf(linkex.EUNAVAILABLE, "down")
			},
		}

		names, live := ollama.AvailableModels(context.Background(), models)

		assert.False(t, live)
		assert.Equal(t, []string{"llama2", "mistral", "gemma"}, names)
	})
}
