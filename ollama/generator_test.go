package ollama_test

import (
	"context"
	"errors"
	"testing"

	"github.com/fwojciec/linkex"
	"github.com/fwojciec/linkex/ollama"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tmc/langchaingo/llms"
)

// fakeModel is a langchaingo model that records its last call.
type fakeModel struct {
	messages []llms.MessageContent
	options  llms.CallOptions
	resp     *llms.ContentResponse
	err      error
}

func (m *fakeModel) GenerateContent(_ context.Context, messages []llms.MessageContent, options ...llms.CallOption) (*llms.ContentResponse, error) {
	m.messages = messages
	for _, opt := range options {
		opt(&m.options)
	}
	return m.resp, m.err
}

func (m *fakeModel) Call(ctx context.Context, prompt string, options ...llms.CallOption) (string, error) {
	return llms.GenerateFromSinglePrompt(ctx, m, prompt, options...)
}

func TestGenerator_Generate(t *testing.T) {
	t.Parallel()

	t.Run("sends system and human messages with defaults", func(t *testing.T) {
		t.Parallel()

		model := &fakeModel{resp: &llms.ContentResponse{Choices: []*llms.ContentChoice{{Content: "Jane is an engineer."}}}}
		gen := ollama.NewGeneratorWithModel(model)

		text, err := gen.Generate(context.Background(), "be helpful", "who is Jane?")

		require.NoError(t, err)
		assert.Equal(t, "Jane is an engineer.", text)
		require.Len(t, model.messages, 2)
		assert.Equal(t, llms.ChatMessageTypeSystem, model.messages[0].Role)
		assert.Equal(t, llms.ChatMessageTypeHuman, model.messages[1].Role)
		assert.Equal(t, llms.TextContent{Text: "who is Jane?"}, model.messages[1].Parts[0])
		assert.InDelta(t, ollama.DefaultTemperature, model.options.Temperature, 1e-9)
		assert.InDelta(t, ollama.DefaultTopP, model.options.TopP, 1e-9)
		assert.Equal(t, ollama.DefaultMaxTokens, model.options.MaxTokens)
	})

	t.Run("applies options", func(t *testing.T) {
		t.Parallel()

		model := &fakeModel{resp: &llms.ContentResponse{Choices: []*llms.ContentChoice{{Content: "ok"}}}}
		gen := ollama.NewGeneratorWithModel(model, ollama.WithTemperature(0.1), ollama.WithTopP(0.5), ollama.WithMaxTokens(64))

		_, err := gen.Generate(context.Background(), "s", "p")

		require.NoError(t, err)
		assert.InDelta(t, 0.1, model.options.Temperature, 1e-9)
		assert.InDelta(t, 0.5, model.options.TopP, 1e-9)
		assert.Equal(t, 64, model.options.MaxTokens)
	})

	t.Run("reports empty responses as unavailable", func(t *testing.T) {
		t.Parallel()

		gen := ollama.NewGeneratorWithModel(&fakeModel{resp: &llms.ContentResponse{}})

		_, err := gen.Generate(context.Background(), "s", "p")

		assert.Equal(t, linkex.EUNAVAILABLE, linkex.ErrorCode(err))
	})

	t.Run("maps missing models to not found", func(t *testing.T) {
		t.Parallel()

		gen := ollama.NewGeneratorWithModel(&fakeModel{err: errors.New(`model "llama9" not found, try pulling it first`)})

		_, err := gen.Generate(context.Background(), "s", "p")

		assert.Equal(t, linkex.ENOTFOUND, linkex.ErrorCode(err))
		assert.Contains(t, linkex.ErrorMessage(err), "ollama pull")
	})

	t.Run("maps connection failures to unavailable", func(t *testing.T) {
		t.Parallel()

		gen := ollama.NewGeneratorWithModel(&fakeModel{err: errors.New("dial tcp 127.0.0.1:11434: connect: connection refused")})

		_, err := gen.Generate(context.Background(), "s", "p")

		assert.Equal(t, linkex.EUNAVAILABLE, linkex.ErrorCode(err))
		assert.Contains(t, linkex.ErrorMessage(err), "ollama serve")
	})

	t.Run("returns context error when canceled", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		gen := ollama.NewGeneratorWithModel(&fakeModel{err: errors.New("request canceled")})

		_, err := gen.Generate(ctx, "s", "p")

		assert.ErrorIs(t, err, context.Canceled)
	})
}
