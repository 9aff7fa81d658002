// Package ollama connects to a local Ollama server for text generation,
// embeddings and model administration.
package ollama

import (
	"context"
	"errors"
	"net"
	"net/url"
	"strings"

	"github.com/fwojciec/linkex"
)

// Defaults for a local Ollama installation.
const (
	DefaultServerURL      = "http://localhost:11434"
	DefaultModel          = "llama2"
	DefaultEmbeddingModel = "all-minilm"
	DefaultTemperature    = 0.7
	DefaultTopP           = 0.9
	DefaultMaxTokens      = 500
)

// FallbackModels is listed when the server cannot be reached.
var FallbackModels = []string{"llama2", "mistral", "gemma"}

// mapError converts client errors into domain errors. Connection failures
// and missing models get actionable messages.
func mapError(ctx context.Context, op string, err error) error {
	if err == nil {
		return nil
	}
	if ctx.Err() != nil {
		return ctx.Err()
	}

	var netErr net.Error
	var urlErr *url.Error
	if errors.As(err, &netErr) || errors.As(err, &urlErr) || strings.Contains(err.Error(), "connection refused") {
		return linkex.Errorf(linkex.EUNAVAILABLE, "%s: cannot reach Ollama; is `ollama serve` running? (%v)", op, err)
	}
	msg := err.Error()
	if strings.Contains(msg, "not found") {
		return linkex.Errorf(linkex.ENOTFOUND, "%s: %s; pull the model with `ollama pull`", op, msg)
	}
	return linkex.Errorf(linkex.EUNAVAILABLE, "%s: %s", op, msg)
}
