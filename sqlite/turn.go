package sqlite

import (
	"context"
	"strings"
	"time"

	"github.com/fwojciec/linkex"
	"github.com/google/uuid"
)

// Compile-time interface verification.
var _ linkex.TurnService = (*TurnService)(nil)

// TurnService implements linkex.TurnService using SQLite.
type TurnService struct {
	db *DB
}

// NewTurnService creates a new TurnService.
func NewTurnService(db *DB) *TurnService {
	return &TurnService{db: db}
}

// CreateTurn stores a new turn.
func (s *TurnService) CreateTurn(ctx context.Context, turn *linkex.Turn) error {
	if err := turn.Validate(); err != nil {
		return err
	}

	turn.ID = uuid.New().String()
	turn.CreatedAt = time.Now().UTC().Truncate(time.Second)

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO turns (id, conversation, question, answer, created_at)
		VALUES (?, ?, ?, ?, ?)
	`, turn.ID, turn.Conversation, turn.Question, turn.Answer, turn.CreatedAt.Format(time.RFC3339))

	return err
}

// FindTurns retrieves turns in insertion order. With a Limit, only the most
// recent turns are returned, still oldest first.
func (s *TurnService) FindTurns(ctx context.Context, filter linkex.TurnFilter) ([]*linkex.Turn, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT id, conversation, question, answer, created_at FROM turns WHERE 1=1")
	if filter.Conversation != nil {
		query.WriteString(" AND conversation = ?")
		args = append(args, *filter.Conversation)
	}
	query.WriteString(" ORDER BY rowid DESC")
	appendPagination(&query, &args, filter.Limit, 0)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var turns []*linkex.Turn
	for rows.Next() {
		var turn linkex.Turn
		var createdAt string

		if err := rows.Scan(&turn.ID, &turn.Conversation, &turn.Question, &turn.Answer, &createdAt); err != nil {
			return nil, err
		}
		if turn.CreatedAt, err = parseRFC3339(createdAt, "created_at"); err != nil {
			return nil, err
		}
		turns = append(turns, &turn)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	// Reverse into chronological order.
	for i, j := 0, len(turns)-1; i < j; i, j = i+1, j-1 {
		turns[i], turns[j] = turns[j], turns[i]
	}
	return turns, nil
}

// DeleteTurns removes all turns of a conversation.
func (s *TurnService) DeleteTurns(ctx context.Context, conversation string) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM turns WHERE conversation = ?", conversation)
	return err
}
