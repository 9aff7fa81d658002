package main

import (
	"fmt"

	"github.com/fwojciec/linkex"
)

// Run executes the history command.
func (c *HistoryCmd) Run(deps *Dependencies) error {
	records, err := findRecords(deps, c.Records)
	if err != nil {
		return report(deps, err)
	}
	key := linkex.ConversationKey(recordIDs(records))

	if c.Clear {
		if err := deps.Turns.DeleteTurns(deps.Ctx, key); err != nil {
			return report(deps, err)
		}
		fmt.Fprintln(deps.Stdout, "Conversation cleared.")
		return nil
	}

	turns, err := deps.Turns.FindTurns(deps.Ctx, linkex.TurnFilter{Conversation: &key})
	if err != nil {
		return report(deps, err)
	}

	if len(turns) == 0 {
		fmt.Fprintln(deps.Stdout, "No conversation yet. Use 'linkex ask' to start one.")
		return nil
	}

	for i, turn := range turns {
		if i > 0 {
			fmt.Fprintln(deps.Stdout)
		}
		fmt.Fprintf(deps.Stdout, "[%s]\nQ: %s\nA: %s\n", turn.CreatedAt.Local().Format("2006-01-02 15:04"), turn.Question, turn.Answer)
	}
	return nil
}
