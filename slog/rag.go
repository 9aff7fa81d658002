package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/linkex"
)

// Ensure the logging decorators implement their interfaces.
var (
	_ linkex.Generator = (*LoggingGenerator)(nil)
	_ linkex.Indexer   = (*LoggingIndexer)(nil)
	_ linkex.Asker     = (*LoggingAsker)(nil)
)

// LoggingGenerator wraps a Generator with debug logging.
type LoggingGenerator struct {
	next   linkex.Generator
	logger *slog.Logger
}

// NewLoggingGenerator creates a new LoggingGenerator.
func NewLoggingGenerator(next linkex.Generator, logger *slog.Logger) *LoggingGenerator {
	return &LoggingGenerator{next: next, logger: logger}
}

// Generate delegates to the wrapped generator and logs prompt and answer sizes.
func (g *LoggingGenerator) Generate(ctx context.Context, system, prompt string) (text string, err error) {
	defer func(begin time.Time) {
		g.logger.Info("generate",
			"prompt_bytes", len(prompt),
			"answer_bytes", len(text),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return g.next.Generate(ctx, system, prompt)
}

// LoggingIndexer wraps an Indexer with debug logging.
type LoggingIndexer struct {
	next   linkex.Indexer
	logger *slog.Logger
}

// NewLoggingIndexer creates a new LoggingIndexer.
func NewLoggingIndexer(next linkex.Indexer, logger *slog.Logger) *LoggingIndexer {
	return &LoggingIndexer{next: next, logger: logger}
}

// Index delegates to the wrapped indexer and logs the chunk count.
func (i *LoggingIndexer) Index(ctx context.Context, rec *linkex.Record) (n int, err error) {
	defer func(begin time.Time) {
		i.logger.Info("index",
			"record", rec.ID,
			"kind", rec.Kind,
			"chunks", n,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return i.next.Index(ctx, rec)
}

// LoggingAsker wraps an Asker with debug logging.
type LoggingAsker struct {
	next   linkex.Asker
	logger *slog.Logger
}

// NewLoggingAsker creates a new LoggingAsker.
func NewLoggingAsker(next linkex.Asker, logger *slog.Logger) *LoggingAsker {
	return &LoggingAsker{next: next, logger: logger}
}

// Ask delegates to the wrapped asker and logs the number of sources used.
func (a *LoggingAsker) Ask(ctx context.Context, req linkex.AskRequest) (answer *linkex.Answer, err error) {
	defer func(begin time.Time) {
		sources := 0
		if answer != nil {
			sources = len(answer.Sources)
		}
		a.logger.Info("ask",
			"records", len(req.RecordIDs),
			"preset", string(req.Preset),
			"history", req.UseHistory,
			"sources", sources,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return a.next.Ask(ctx, req)
}
