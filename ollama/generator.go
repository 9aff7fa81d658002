package ollama

import (
	"context"

	"github.com/fwojciec/linkex"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/ollama"
)

// Ensure Generator implements linkex.Generator at compile time.
var _ linkex.Generator = (*Generator)(nil)

// Generator completes prompts with a chat model served by Ollama.
type Generator struct {
	llm         llms.Model
	temperature float64
	topP        float64
	maxTokens   int
}

// Option configures a Generator.
type Option func(*Generator)

// WithTemperature sets the sampling temperature.
func WithTemperature(t float64) Option {
	return func(g *Generator) {
		g.temperature = t
	}
}

// WithTopP sets nucleus sampling.
func WithTopP(p float64) Option {
	return func(g *Generator) {
		g.topP = p
	}
}

// WithMaxTokens caps the answer length.
func WithMaxTokens(n int) Option {
	return func(g *Generator) {
		g.maxTokens = n
	}
}

// NewGenerator creates a Generator for model on the server at serverURL.
func NewGenerator(serverURL, model string, opts ...Option) (*Generator, error) {
	llm, err := ollama.New(ollama.WithServerURL(serverURL), ollama.WithModel(model))
	if err != nil {
		return nil, err
	}
	return NewGeneratorWithModel(llm, opts...), nil
}

// NewGeneratorWithModel creates a Generator around any langchaingo model.
func NewGeneratorWithModel(llm llms.Model, opts ...Option) *Generator {
	g := &Generator{
		llm:         llm,
		temperature: DefaultTemperature,
		topP:        DefaultTopP,
		maxTokens:   DefaultMaxTokens,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Generate sends the system instruction and prompt as a chat exchange.
func (g *Generator) Generate(ctx context.Context, system, prompt string) (string, error) {
	messages := []llms.MessageContent{
		llms.TextParts(llms.ChatMessageTypeSystem, system),
		llms.TextParts(llms.ChatMessageTypeHuman, prompt),
	}
	resp, err := g.llm.GenerateContent(ctx, messages,
		llms.WithTemperature(g.temperature),
		llms.WithTopP(g.topP),
		llms.WithMaxTokens(g.maxTokens),
	)
	if err != nil {
		return "", mapError(ctx, "generate", err)
	}
	if resp == nil || len(resp.Choices) == 0 {
		return "", linkex.Errorf(linkex.EUNAVAILABLE, "generate: model returned no choices")
	}
	return resp.Choices[0].Content, nil
}
