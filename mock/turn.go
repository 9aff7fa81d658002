package mock

import (
	"context"

	"github.com/fwojciec/linkex"
)

var _ linkex.TurnService = (*TurnService)(nil)

// TurnService is a mock implementation of linkex.TurnService.
type TurnService struct {
	CreateTurnFn  func(ctx context.Context, turn *linkex.Turn) error
	FindTurnsFn   func(ctx context.Context, filter linkex.TurnFilter) ([]*linkex.Turn, error)
	DeleteTurnsFn func(ctx context.Context, conversation string) error
}

func (s *TurnService) CreateTurn(ctx context.Context, turn *linkex.Turn) error {
	return s.CreateTurnFn(ctx, turn)
}

func (s *TurnService) FindTurns(ctx context.Context, filter linkex.TurnFilter) ([]*linkex.Turn, error) {
	return s.FindTurnsFn(ctx, filter)
}

func (s *TurnService) DeleteTurns(ctx context.Context, conversation string) error {
	return s.DeleteTurnsFn(ctx, conversation)
}
