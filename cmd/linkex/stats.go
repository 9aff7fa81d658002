package main

import (
	"fmt"

	"github.com/fwojciec/linkex"
	"github.com/fwojciec/linkex/scrape"
)

// Run executes the stats command.
func (c *StatsCmd) Run(deps *Dependencies) error {
	rec, err := findRecord(deps, c.Record)
	if err != nil {
		return report(deps, err)
	}

	text := linkex.FormatRecord(rec)
	stats := linkex.ComputeStats(text)
	if deps.Splitter != nil {
		chunks, err := deps.Splitter.Split(text)
		if err != nil {
			return report(deps, err)
		}
		stats.Chunks = len(chunks)
	}

	indexed, err := deps.Chunks.FindChunks(deps.Ctx, linkex.ChunkFilter{RecordID: &rec.ID})
	if err != nil {
		return report(deps, err)
	}

	fmt.Fprintf(deps.Stdout, "%s (%s)\n", rec.DisplayTitle(), rec.Kind)
	fmt.Fprintf(deps.Stdout, "  Characters:  %d (%s)\n", stats.Characters, scrape.FormatBytes(len(text)))
	fmt.Fprintf(deps.Stdout, "  Words:       %d\n", stats.Words)
	fmt.Fprintf(deps.Stdout, "  Lines:       %d\n", stats.Lines)
	fmt.Fprintf(deps.Stdout, "  Chunks:      %d\n", stats.Chunks)
	fmt.Fprintf(deps.Stdout, "  Indexed:     %d\n", len(indexed))
	if deps.TokenCounter != nil {
		if tokens, err := deps.TokenCounter.CountTokens(deps.Ctx, text); err == nil {
			fmt.Fprintf(deps.Stdout, "  Tokens:      %s\n", scrape.FormatTokens(tokens))
		}
	}
	if !rec.FetchedAt.IsZero() {
		fmt.Fprintf(deps.Stdout, "  Fetched:     %s\n", rec.FetchedAt.Local().Format("2006-01-02 15:04"))
	}
	return nil
}
