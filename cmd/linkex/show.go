package main

import (
	"encoding/json"
	"fmt"

	"github.com/fwojciec/linkex"
)

// Run executes the show command.
func (c *ShowCmd) Run(deps *Dependencies) error {
	rec, err := findRecord(deps, c.Record)
	if err != nil {
		return report(deps, err)
	}

	if c.JSON {
		enc := json.NewEncoder(deps.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(rec); err != nil {
			return report(deps, err)
		}
		return nil
	}

	fmt.Fprintln(deps.Stdout, linkex.FormatRecord(rec))
	return nil
}
