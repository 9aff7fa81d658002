package mock

import (
	"context"

	"github.com/fwojciec/linkex"
)

var _ linkex.Asker = (*Asker)(nil)

// Asker is a mock implementation of linkex.Asker.
type Asker struct {
	AskFn func(ctx context.Context, req linkex.AskRequest) (*linkex.Answer, error)
}

func (a *Asker) Ask(ctx context.Context, req linkex.AskRequest) (*linkex.Answer, error) {
	return a.AskFn(ctx, req)
}

var _ linkex.Generator = (*Generator)(nil)

// Generator is a mock implementation of linkex.Generator.
type Generator struct {
	GenerateFn func(ctx context.Context, system, prompt string) (string, error)
}

func (g *Generator) Generate(ctx context.Context, system, prompt string) (string, error) {
	return g.GenerateFn(ctx, system, prompt)
}

var _ linkex.ModelService = (*ModelService)(nil)

// ModelService is a mock implementation of linkex.ModelService.
type ModelService struct {
	HeartbeatFn  func(ctx context.Context) error
	ListModelsFn func(ctx context.Context) ([]string, error)
}

func (s *ModelService) Heartbeat(ctx context.Context) error {
	return s.HeartbeatFn(ctx)
}

func (s *ModelService) ListModels(ctx context.Context) ([]string, error) {
	return s.ListModelsFn(ctx)
}
