package main

import (
	"fmt"

	"github.com/fwojciec/linkex"
)

// Run executes the ask command.
func (c *AskCmd) Run(deps *Dependencies) error {
	refs, question := c.Args, ""
	if c.Preset == "" {
		if len(c.Args) < 2 {
			return report(deps, linkex.Errorf(linkex.EINVALID, "usage: linkex ask <record>... <question> or linkex ask <record>... --preset <name>"))
		}
		refs, question = c.Args[:len(c.Args)-1], c.Args[len(c.Args)-1]
	}

	records, err := findRecords(deps, refs)
	if err != nil {
		return report(deps, err)
	}

	answer, err := deps.Asker.Ask(deps.Ctx, linkex.AskRequest{
		RecordIDs:  recordIDs(records),
		Question:   question,
		Preset:     linkex.Preset(c.Preset),
		UseHistory: !c.NoHistory,
	})
	if err != nil {
		return report(deps, err)
	}

	fmt.Fprintln(deps.Stdout, answer.Text)

	if c.Sources && len(answer.Sources) > 0 {
		fmt.Fprintln(deps.Stdout, "\nSources:")
		for i, src := range answer.Sources {
			md := src.Chunk.Metadata
			fmt.Fprintf(deps.Stdout, "  %d. %s lines %d-%d (score %.2f)\n", i+1, md.SourceURL, md.StartLine, md.EndLine, src.Score)
		}
	}
	return nil
}
