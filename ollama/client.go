package ollama

import (
	"context"
	"net/http"
	"net/url"
	"sort"
	"time"

	"github.com/fwojciec/linkex"
	"github.com/ollama/ollama/api"
)

// Ensure Client implements linkex.ModelService at compile time.
var _ linkex.ModelService = (*Client)(nil)

// Client talks to the Ollama administration API.
type Client struct {
	api *api.Client
}

// NewClient creates a Client for the server at serverURL.
func NewClient(serverURL string, httpClient *http.Client) (*Client, error) {
	u, err := url.Parse(serverURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, linkex.Errorf(linkex.EINVALID, "invalid Ollama URL %q", serverURL)
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	return &Client{api: api.NewClient(u, httpClient)}, nil
}

// Heartbeat returns EUNAVAILABLE when the server does not respond.
func (c *Client) Heartbeat(ctx context.Context) error {
	if err := c.api.Heartbeat(ctx); err != nil {
		return mapError(ctx, "heartbeat", err)
	}
	return nil
}

// ListModels returns the names of locally installed models, sorted.
func (c *Client) ListModels(ctx context.Context) ([]string, error) {
	resp, err := c.api.List(ctx)
	if err != nil {
		return nil, mapError(ctx, "list models", err)
	}
	names := make([]string, 0, len(resp.Models))
	for _, m := range resp.Models {
		names = append(names, m.Name)
	}
	sort.Strings(names)
	return names, nil
}

// AvailableModels lists installed models, falling back to FallbackModels
// when the server is unreachable or has no models. The bool reports
// whether the list came from the server.
func AvailableModels(ctx context.Context, models linkex.ModelService) ([]string, bool) {
	names, err := models.ListModels(ctx)
	if err != nil || len(names) == 0 {
		return append([]string(nil), FallbackModels...), false
	}
	return names, true
}
