package main

import (
	"fmt"

	"github.com/fwojciec/linkex"
)

// Run executes the list command.
func (c *ListCmd) Run(deps *Dependencies) error {
	filter := linkex.RecordFilter{Limit: c.Limit}
	if c.Kind != "" {
		kind, err := linkex.ParseKind(c.Kind)
		if err != nil {
			return report(deps, err)
		}
		filter.Kind = &kind
	}

	records, err := deps.Records.FindRecords(deps.Ctx, filter)
	if err != nil {
		return report(deps, err)
	}

	if len(records) == 0 {
		fmt.Fprintln(deps.Stdout, "No records found. Use 'linkex add <url>' to create one.")
		return nil
	}

	for _, rec := range records {
		fmt.Fprintf(deps.Stdout, "%s  %-7s  %s  %s\n", rec.ID, rec.Kind, rec.DisplayTitle(), rec.SourceURL)
	}

	return nil
}
