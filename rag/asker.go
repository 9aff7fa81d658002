package rag

import (
	"context"
	"fmt"
	"strings"

	"github.com/fwojciec/linkex"
)

// Ensure Asker implements linkex.Asker at compile time.
var _ linkex.Asker = (*Asker)(nil)

// DefaultHistoryTurns is the number of earlier turns used to condense a
// follow-up question.
const DefaultHistoryTurns = 10

// ErrorAnswerPrefix starts the stored answer of a turn whose generation failed.
const ErrorAnswerPrefix = "Error processing question:"

// Asker answers questions about records with retrieval-augmented generation.
type Asker struct {
	search    linkex.SearchService
	generator linkex.Generator
	turns     linkex.TurnService

	// Limit is the number of chunks retrieved per question.
	Limit int

	// HistoryTurns caps the turns used to condense follow-ups.
	HistoryTurns int
}

// NewAsker creates a new Asker. turns may be nil, which disables history.
func NewAsker(search linkex.SearchService, generator linkex.Generator, turns linkex.TurnService) *Asker {
	return &Asker{
		search:       search,
		generator:    generator,
		turns:        turns,
		Limit:        linkex.DefaultSearchLimit,
		HistoryTurns: DefaultHistoryTurns,
	}
}

// Ask answers a question about the requested records.
//
// With history enabled, a follow-up is first rewritten into a standalone
// question from the earlier turns, and the new turn is stored afterwards,
// including failed ones.
func (a *Asker) Ask(ctx context.Context, req linkex.AskRequest) (*linkex.Answer, error) {
	if len(req.RecordIDs) == 0 {
		return nil, linkex.Errorf(linkex.EINVALID, "record ID required")
	}
	question := strings.TrimSpace(req.Question)
	if question == "" && req.Preset != "" {
		q, err := req.Preset.Question()
		if err != nil {
			return nil, err
		}
		question = q
	}
	if question == "" {
		return nil, linkex.Errorf(linkex.EINVALID, "question required")
	}

	useHistory := req.UseHistory && a.turns != nil
	conversation := linkex.ConversationKey(req.RecordIDs)

	var history []*linkex.Turn
	if useHistory {
		turns, err := a.turns.FindTurns(ctx, linkex.TurnFilter{Conversation: &conversation, Limit: a.HistoryTurns})
		if err != nil {
			return nil, err
		}
		history = turns
	}

	standalone := question
	if len(history) > 0 {
		condensed, err := a.generator.Generate(ctx, linkex.CondenseInstruction, linkex.BuildCondensePrompt(history, question))
		if err != nil {
			return nil, a.fail(ctx, useHistory, conversation, question, err)
		}
		if c := strings.TrimSpace(condensed); c != "" {
			standalone = c
		}
	}

	results, err := a.search.Search(ctx, standalone, linkex.SearchOptions{RecordIDs: req.RecordIDs, Limit: a.Limit})
	if err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return nil, linkex.Errorf(linkex.ENOTFOUND, "no indexed content for %s; index the record first", strings.Join(req.RecordIDs, ", "))
	}

	text, err := a.generator.Generate(ctx, linkex.SystemInstruction, linkex.BuildQAPrompt(results, standalone))
	if err != nil {
		return nil, a.fail(ctx, useHistory, conversation, question, err)
	}
	text = strings.TrimSpace(text)

	if useHistory {
		if err := a.turns.CreateTurn(ctx, &linkex.Turn{Conversation: conversation, Question: question, Answer: text}); err != nil {
			return nil, err
		}
	}

	return &linkex.Answer{Question: question, Text: text, Sources: results}, nil
}

// fail stores the failed turn when history is on and returns the
// generation error.
func (a *Asker) fail(ctx context.Context, store bool, conversation, question string, cause error) error {
	if store {
		turn := &linkex.Turn{
			Conversation: conversation,
			Question:     question,
			Answer:       fmt.Sprintf("%s %s", ErrorAnswerPrefix, describe(cause)),
		}
		if err := a.turns.CreateTurn(ctx, turn); err != nil {
			return fmt.Errorf("generate: %w (storing turn: %v)", cause, err)
		}
	}
	return fmt.Errorf("generate: %w", cause)
}

func describe(err error) string {
	if linkex.ErrorCode(err) == linkex.EINTERNAL {
		return err.Error()
	}
	return linkex.ErrorMessage(err)
}
