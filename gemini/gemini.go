// Package gemini implements generation, embeddings and token counting with
// Google Gemini.
package gemini

import (
	"context"
	"errors"
	"net/http"

	"github.com/fwojciec/linkex"
	"google.golang.org/genai"
)

// Default models.
const (
	DefaultModel          = "gemini-2.5-flash"
	DefaultEmbeddingModel = "text-embedding-004"
)

// NewClient creates a Gemini API client for apiKey.
// Returns EUNAUTHORIZED when no key is given.
func NewClient(ctx context.Context, apiKey string) (*genai.Client, error) {
	if apiKey == "" {
		return nil, linkex.Errorf(linkex.EUNAUTHORIZED, "GEMINI_API_KEY required for the gemini backend")
	}
	return genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
}

// mapError converts API errors into domain errors.
func mapError(ctx context.Context, op string, err error) error {
	if ctx.Err() != nil {
		return ctx.Err()
	}
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		switch {
		case apiErr.Code == http.StatusUnauthorized || apiErr.Code == http.StatusForbidden:
			return linkex.Errorf(linkex.EUNAUTHORIZED, "%s: %s", op, apiErr.Message)
		case apiErr.Code == http.StatusNotFound:
			return linkex.Errorf(linkex.ENOTFOUND, "%s: %s", op, apiErr.Message)
		case apiErr.Code == http.StatusTooManyRequests || apiErr.Code >= 500:
			return linkex.Errorf(linkex.EUNAVAILABLE, "%s: %s", op, apiErr.Message)
		}
	}
	return err
}
