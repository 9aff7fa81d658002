package linkex

import (
	"context"
	"sort"
	"strings"
	"time"
)

// Turn is a question and its answer within a conversation about records.
type Turn struct {
	ID           string    `json:"id"`
	Conversation string    `json:"conversation"`
	Question     string    `json:"question"`
	Answer       string    `json:"answer"`
	CreatedAt    time.Time `json:"createdAt"`
}

// Validate returns an error if the turn contains invalid fields.
func (t *Turn) Validate() error {
	if t.Conversation == "" {
		return Errorf(EINVALID, "turn conversation required")
	}
	if t.Question == "" {
		return Errorf(EINVALID, "turn question required")
	}
	return nil
}

// ConversationKey returns the key under which turns about a set of records
// are stored. The key does not depend on the order of the IDs.
func ConversationKey(recordIDs []string) string {
	ids := append([]string(nil), recordIDs...)
	sort.Strings(ids)
	return strings.Join(ids, ",")
}

// TurnService represents a service for managing conversation turns.
type TurnService interface {
	// CreateTurn stores a new turn.
	CreateTurn(ctx context.Context, turn *Turn) error

	// FindTurns retrieves turns in chronological order.
	// With a Limit, the most recent turns are returned.
	FindTurns(ctx context.Context, filter TurnFilter) ([]*Turn, error)

	// DeleteTurns removes all turns of a conversation.
	DeleteTurns(ctx context.Context, conversation string) error
}

// TurnFilter represents a filter for FindTurns.
type TurnFilter struct {
	Conversation *string `json:"conversation"`
	Limit        int     `json:"limit"`
}
