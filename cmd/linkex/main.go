package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/linkex"
	"github.com/fwojciec/linkex/sqlite"
	"github.com/joho/godotenv"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := loadEnv(".env"); err != nil {
		fmt.Fprintf(os.Stderr, "error: reading .env: %v\n", err)
		os.Exit(1)
	}

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		var reported *reportedError
		if !errors.As(err, &reported) {
			fmt.Fprintf(os.Stderr, "error: %s\n", message(err))
		}
		os.Exit(1)
	}
}

// loadEnv loads variables from an optional dotenv file. Variables already
// set in the environment win.
func loadEnv(path string) error {
	err := godotenv.Load(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}

// Main represents the program.
type Main struct {
	// Database path. Set before calling Run(); --db overrides it.
	DBPath string

	// SQLite database used by SQLite service implementations.
	DB *sqlite.DB

	// Services for end-to-end testing.
	RecordService linkex.RecordService
	ChunkService  linkex.ChunkService
	TurnService   linkex.TurnService

	// Ollama administration client. Built from --ollama-url when nil.
	ModelService linkex.ModelService
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		DBPath: defaultDBPath(),
	}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	if m.DB != nil {
		return m.DB.Close()
	}
	return nil
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("linkex"),
		kong.Description("Extract public profile, company, post and article pages and ask questions about them."),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return linkex.Errorf(linkex.EINVALID, "no command specified. Run 'linkex --help' to see available commands")
	}

	if args[0] == "help" || args[0] == "--help" || args[0] == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}
	cmd := strings.Fields(kongCtx.Command())[0]

	deps.Logger = newLogger(stderr, cli.Verbose)

	if cli.DB != "" {
		m.DBPath = cli.DB
	}
	m.DB = sqlite.NewDB(m.DBPath)
	if err := m.DB.Open(); err != nil {
		fmt.Fprintf(stderr, "Hint: Set LINKEX_DB to use a different database path\n")
		return fmt.Errorf("failed to open database at %q: %w", m.DBPath, err)
	}
	defer m.Close()

	m.RecordService = sqlite.NewRecordService(m.DB)
	m.ChunkService = sqlite.NewChunkService(m.DB)
	m.TurnService = sqlite.NewTurnService(m.DB)
	deps.DB = m.DB
	deps.Records = m.RecordService
	deps.Chunks = m.ChunkService
	deps.Turns = m.TurnService
	deps.Models = m.ModelService

	w := &wiring{cli: cli, deps: deps, stderr: stderr}
	defer w.Close()
	if err := w.wire(ctx, cmd); err != nil {
		return err
	}

	return kongCtx.Run(deps)
}

// newLogger logs to stderr at debug level when verbose and discards
// everything otherwise.
func newLogger(stderr io.Writer, verbose bool) *slog.Logger {
	if !verbose {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

func defaultDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "linkex.db"
	}
	dir := filepath.Join(home, ".linkex")
	_ = os.MkdirAll(dir, 0755)
	return filepath.Join(dir, "linkex.db")
}
