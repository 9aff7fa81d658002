package main

import (
	"fmt"

	"github.com/fwojciec/linkex"
)

// Run executes the delete command.
func (c *DeleteCmd) Run(deps *Dependencies) error {
	if !c.Force {
		return report(deps, linkex.Errorf(linkex.EINVALID, "use --force to confirm deletion"))
	}

	rec, err := findRecord(deps, c.Record)
	if err != nil {
		return report(deps, err)
	}

	if err := deps.Records.DeleteRecord(deps.Ctx, rec.ID); err != nil {
		return report(deps, err)
	}

	fmt.Fprintf(deps.Stdout, "Deleted record %q (%s)\n", rec.DisplayTitle(), rec.ID)
	return nil
}
