package main

import (
	"fmt"

	"github.com/fwojciec/linkex"
)

// Run executes the index command.
func (c *IndexCmd) Run(deps *Dependencies) error {
	if c.All == (len(c.Records) > 0) {
		return report(deps, linkex.Errorf(linkex.EINVALID, "give record IDs or URLs, or --all"))
	}

	var records []*linkex.Record
	var err error
	if c.All {
		records, err = deps.Records.FindRecords(deps.Ctx, linkex.RecordFilter{})
	} else {
		records, err = findRecords(deps, c.Records)
	}
	if err != nil {
		return report(deps, err)
	}

	if len(records) == 0 {
		fmt.Fprintln(deps.Stdout, "No records to index.")
		return nil
	}

	for _, rec := range records {
		n, err := deps.Indexer.Index(deps.Ctx, rec)
		if err != nil {
			return report(deps, fmt.Errorf("indexing %s: %w", rec.ID, err))
		}
		fmt.Fprintf(deps.Stdout, "Indexed %s: %d chunks\n", rec.DisplayTitle(), n)
	}
	return nil
}
