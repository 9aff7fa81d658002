package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/fwojciec/linkex"
	"github.com/fwojciec/linkex/fs"
	"github.com/fwojciec/linkex/scrape"
	"github.com/fwojciec/linkex/sqlite"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx          context.Context
	Stdout       io.Writer
	Stderr       io.Writer
	Logger       *slog.Logger
	DB           *sqlite.DB
	Records      linkex.RecordService
	Chunks       linkex.ChunkService
	Turns        linkex.TurnService
	Scraper      *scrape.Scraper
	Indexer      linkex.Indexer
	Splitter     linkex.Splitter
	Asker        linkex.Asker
	Models       linkex.ModelService
	TokenCounter linkex.TokenCounter

	// NewExporter creates the exporter for an output directory.
	// Defaults to an fs.FileStore.
	NewExporter func(dir string, format fs.Format) linkex.RecordExporter

	// ReadFile reads saved pages. Defaults to os.ReadFile.
	ReadFile func(path string) ([]byte, error)
}

func (d *Dependencies) exporter(dir string, format fs.Format) linkex.RecordExporter {
	if d.NewExporter != nil {
		return d.NewExporter(dir, format)
	}
	dir = filepath.Clean(dir)
	return fs.NewFileStore(filepath.Dir(dir), filepath.Base(dir), format)
}

func (d *Dependencies) readFile(path string) ([]byte, error) {
	if d.ReadFile != nil {
		return d.ReadFile(path)
	}
	return os.ReadFile(path)
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	DB           string  `help:"Database path (default ~/.linkex/linkex.db)" env:"LINKEX_DB" placeholder:"PATH"`
	Verbose      bool    `short:"v" help:"Log operations to stderr"`
	Backend      string  `enum:"ollama,gemini" default:"ollama" env:"LINKEX_BACKEND" help:"Language model backend (ollama, gemini)"`
	OllamaURL    string  `name:"ollama-url" default:"http://localhost:11434" env:"LINKEX_OLLAMA_URL" help:"Ollama server URL"`
	Model        string  `env:"LINKEX_MODEL" help:"Generation model (backend default when empty)"`
	EmbedModel   string  `env:"LINKEX_EMBED_MODEL" help:"Embedding model (backend default when empty)"`
	Temperature  float64 `default:"0.7" help:"Sampling temperature"`
	TopP         float64 `name:"top-p" default:"0.9" help:"Nucleus sampling probability"`
	MaxTokens    int     `default:"500" help:"Maximum tokens per answer"`
	UserAgent    string  `env:"LINKEX_USER_AGENT" help:"User-Agent sent when fetching pages"`
	GeminiAPIKey string  `name:"gemini-api-key" env:"GEMINI_API_KEY" help:"Gemini API key for the gemini backend"`

	Add     AddCmd     `cmd:"" help:"Fetch public pages and store them as records"`
	Show    ShowCmd    `cmd:"" help:"Show a stored record"`
	List    ListCmd    `cmd:"" help:"List stored records"`
	Delete  DeleteCmd  `cmd:"" help:"Delete a record with its index and history"`
	Ask     AskCmd     `cmd:"" help:"Ask a question about one or more records"`
	History HistoryCmd `cmd:"" help:"Show or clear the conversation about records"`
	Stats   StatsCmd   `cmd:"" help:"Show the size of a record"`
	Index   IndexCmd   `cmd:"" help:"Rebuild the search index of records"`
	Export  ExportCmd  `cmd:"" help:"Export records to a directory"`
	Models  ModelsCmd  `cmd:"" help:"List language models available to Ollama"`
}

// AddCmd is the "add" subcommand.
type AddCmd struct {
	URLs        []string `arg:"" name:"url" help:"Public page URLs"`
	File        string   `short:"f" help:"Read the page HTML from a saved file instead of fetching (one URL)" placeholder:"PATH"`
	Kind        string   `short:"k" help:"Force the record kind (profile, company, post, article)"`
	Preview     bool     `short:"p" help:"Print extracted records without storing them"`
	Browser     bool     `short:"b" help:"Render pages with headless Chrome"`
	NoIndex     bool     `help:"Store records without indexing them for questions"`
	Concurrency int      `short:"c" default:"3" help:"Concurrent fetch limit"`
	Rate        float64  `default:"1" help:"Requests per second per host"`
}

// ShowCmd is the "show" subcommand.
type ShowCmd struct {
	Record string `arg:"" help:"Record ID or URL"`
	JSON   bool   `help:"Print the record as JSON"`
}

// ListCmd is the "list" subcommand.
type ListCmd struct {
	Kind  string `short:"k" help:"Only list records of this kind"`
	Limit int    `short:"n" help:"Maximum number of records"`
}

// DeleteCmd is the "delete" subcommand.
type DeleteCmd struct {
	Record string `arg:"" help:"Record ID or URL"`
	Force  bool   `help:"Confirm deletion"`
}

// AskCmd is the "ask" subcommand.
type AskCmd struct {
	Args      []string `arg:"" name:"record-or-question" help:"Record IDs or URLs followed by the question"`
	Preset    string   `help:"Ask a preset question instead (summary, experience, education, skills)"`
	NoHistory bool     `help:"Ignore and do not record the conversation history"`
	Sources   bool     `help:"Print the retrieved sources"`
}

// HistoryCmd is the "history" subcommand.
type HistoryCmd struct {
	Records []string `arg:"" name:"record" help:"Record IDs or URLs"`
	Clear   bool     `help:"Delete the conversation"`
}

// StatsCmd is the "stats" subcommand.
type StatsCmd struct {
	Record string `arg:"" help:"Record ID or URL"`
}

// IndexCmd is the "index" subcommand.
type IndexCmd struct {
	Records []string `arg:"" optional:"" name:"record" help:"Record IDs or URLs"`
	All     bool     `help:"Index every stored record"`
}

// ExportCmd is the "export" subcommand.
type ExportCmd struct {
	Dir    string `arg:"" help:"Output directory (replaced atomically)"`
	Format string `default:"json" enum:"json,csv" help:"Output format (json, csv)"`
	Kind   string `short:"k" help:"Only export records of this kind"`
}

// ModelsCmd is the "models" subcommand.
type ModelsCmd struct{}

// reportedError marks an error that has already been printed to stderr.
type reportedError struct {
	err error
}

func (e *reportedError) Error() string { return e.err.Error() }
func (e *reportedError) Unwrap() error { return e.err }

// report prints err to stderr and marks it as printed.
func report(deps *Dependencies, err error) error {
	fmt.Fprintf(deps.Stderr, "error: %s\n", message(err))
	return &reportedError{err: err}
}

// message returns the user-facing text of err. Errors without a domain code
// are shown verbatim.
func message(err error) string {
	if linkex.ErrorCode(err) == linkex.EINTERNAL {
		return err.Error()
	}
	return linkex.ErrorMessage(err)
}

// findRecord resolves a record by ID or, when ref looks like a URL, by its
// normalized source URL.
func findRecord(deps *Dependencies, ref string) (*linkex.Record, error) {
	if !strings.Contains(ref, "://") {
		rec, err := deps.Records.FindRecordByID(deps.Ctx, ref)
		if linkex.ErrorCode(err) == linkex.ENOTFOUND {
			return nil, linkex.Errorf(linkex.ENOTFOUND, "record %q not found. Use 'linkex list' to see stored records.", ref)
		}
		return rec, err
	}
	normalized, err := linkex.NormalizeURL(ref)
	if err != nil {
		return nil, err
	}
	rec, err := deps.Records.FindRecordByURL(deps.Ctx, normalized)
	if linkex.ErrorCode(err) == linkex.ENOTFOUND {
		return nil, linkex.Errorf(linkex.ENOTFOUND, "no record for %s. Use 'linkex add %s' first.", normalized, normalized)
	}
	return rec, err
}

// findRecords resolves every reference, failing on the first unknown one.
func findRecords(deps *Dependencies, refs []string) ([]*linkex.Record, error) {
	records := make([]*linkex.Record, 0, len(refs))
	for _, ref := range refs {
		rec, err := findRecord(deps, ref)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, nil
}

func recordIDs(records []*linkex.Record) []string {
	ids := make([]string, len(records))
	for i, rec := range records {
		ids[i] = rec.ID
	}
	return ids
}
