package gemini

import (
	"context"
	"strings"

	"github.com/fwojciec/linkex"
	"google.golang.org/genai"
	"google.golang.org/genai/tokenizer"
)

var _ linkex.TokenCounter = (*TokenCounter)(nil)

// TokenizerModel is the model whose local tokenizer sizes record text.
// Counting runs offline and needs no API key.
const TokenizerModel = "gemini-2.0-flash"

// TokenCounter counts tokens using the Gemini tokenizer.
type TokenCounter struct {
	tok *tokenizer.LocalTokenizer
}

// NewTokenCounter creates a new TokenCounter for the given model.
// An empty model uses TokenizerModel.
func NewTokenCounter(model string) (*TokenCounter, error) {
	if model == "" {
		model = TokenizerModel
	}
	tok, err := tokenizer.NewLocalTokenizer(model)
	if err != nil {
		return nil, linkex.Errorf(linkex.EINVALID, "no local tokenizer for model %q: %v", model, err)
	}
	return &TokenCounter{tok: tok}, nil
}

// CountTokens counts the number of tokens in the given text.
// Blank text has no tokens.
func (tc *TokenCounter) CountTokens(ctx context.Context, text string) (int, error) {
	if strings.TrimSpace(text) == "" {
		return 0, nil
	}

	result, err := tc.tok.CountTokens([]*genai.Content{genai.NewContentFromText(text, genai.RoleUser)}, nil)
	if err != nil {
		return 0, err
	}
	return int(result.TotalTokens), nil
}
