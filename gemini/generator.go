package gemini

import (
	"context"

	"github.com/fwojciec/linkex"
	"google.golang.org/genai"
)

// Ensure Generator implements linkex.Generator at compile time.
var _ linkex.Generator = (*Generator)(nil)

// ContentGenerator is the part of genai.Models used for generation.
type ContentGenerator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// Generator completes prompts with a Gemini model.
type Generator struct {
	models      ContentGenerator
	model       string
	temperature float32
	topP        float32
	maxTokens   int32
}

// Option configures a Generator.
type Option func(*Generator)

// WithModel selects the model.
func WithModel(model string) Option {
	return func(g *Generator) {
		if model != "" {
			g.model = model
		}
	}
}

// WithTemperature sets the sampling temperature.
func WithTemperature(t float32) Option {
	return func(g *Generator) {
		g.temperature = t
	}
}

// WithTopP sets nucleus sampling.
func WithTopP(p float32) Option {
	return func(g *Generator) {
		g.topP = p
	}
}

// WithMaxTokens caps the answer length.
func WithMaxTokens(n int32) Option {
	return func(g *Generator) {
		g.maxTokens = n
	}
}

// NewGenerator creates a Generator. Pass client.Models.
func NewGenerator(models ContentGenerator, opts ...Option) *Generator {
	g := &Generator{
		models:      models,
		model:       DefaultModel,
		temperature: 0.7,
		topP:        0.9,
		maxTokens:   500,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Generate completes prompt under the system instruction.
func (g *Generator) Generate(ctx context.Context, system, prompt string) (string, error) {
	result, err := g.models.GenerateContent(ctx, g.model,
		[]*genai.Content{{
			Role:  genai.RoleUser,
			Parts: []*genai.Part{{Text: prompt}},
		}},
		g.BuildConfig(system),
	)
	if err != nil {
		return "", mapError(ctx, "generate", err)
	}
	if result == nil {
		return "", linkex.Errorf(linkex.EINTERNAL, "gemini returned nil result")
	}
	return result.Text(), nil
}

// BuildConfig returns the GenerateContentConfig for a call with the given
// system instruction.
func (g *Generator) BuildConfig(system string) *genai.GenerateContentConfig {
	temp := g.temperature
	topP := g.topP
	config := &genai.GenerateContentConfig{
		Temperature:     &temp,
		TopP:            &topP,
		MaxOutputTokens: g.maxTokens,
	}
	if system != "" {
		config.SystemInstruction = &genai.Content{
			Parts: []*genai.Part{{Text: system}},
		}
	}
	return config
}
