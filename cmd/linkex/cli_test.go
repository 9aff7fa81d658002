package main_test

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/linkex"
	main "github.com/fwojciec/linkex/cmd/linkex"
	"github.com/fwojciec/linkex/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var allCommands = []string{"add", "show", "list", "delete", "ask", "history", "stats", "index", "export", "models"}

func TestCLI_HelpShowsAllCommands(t *testing.T) {
	t.Parallel()

	cli := &main.CLI{}
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}

	// Use kong.Exit to prevent os.Exit from being called during tests
	parser, err := kong.New(cli,
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}),
	)
	require.NoError(t, err)

	_, _ = parser.Parse([]string{"--help"})

	helpOutput := stdout.String()
	for _, cmd := range allCommands {
		assert.Contains(t, helpOutput, cmd, "Help should mention %s command", cmd)
	}
}

func TestCLI_ParsesGlobalFlagsAndEnv(t *testing.T) {
	t.Setenv("LINKEX_BACKEND", "gemini")
	t.Setenv("LINKEX_MODEL", "gemini-2.5-pro")

	cli := &main.CLI{}
	parser, err := kong.New(cli, kong.Exit(func(int) {}))
	require.NoError(t, err)

	_, err = parser.Parse([]string{"--verbose", "ask", "rec-1", "Where does she work?", "--no-history"})
	require.NoError(t, err)

	assert.True(t, cli.Verbose)
	assert.Equal(t, "gemini", cli.Backend)
	assert.Equal(t, "gemini-2.5-pro", cli.Model)
	assert.Equal(t, "http://localhost:11434", cli.OllamaURL)
	assert.InDelta(t, 0.7, cli.Temperature, 1e-9)
	assert.Equal(t, 500, cli.MaxTokens)
	assert.Equal(t, []string{"rec-1", "Where does she work?"}, cli.Ask.Args)
	assert.True(t, cli.Ask.NoHistory)
}

func TestCLI_RejectsUnknownBackend(t *testing.T) {
	t.Parallel()

	cli := &main.CLI{}
	parser, err := kong.New(cli, kong.Exit(func(int) {}), kong.Writers(&bytes.Buffer{}, &bytes.Buffer{}))
	require.NoError(t, err)

	_, err = parser.Parse([]string{"--backend", "openai", "list"})
	assert.Error(t, err)
}

func TestMain_Run_HelpShowsKongOutput(t *testing.T) {
	t.Parallel()

	m := main.NewMain()
	m.DBPath = filepath.Join(t.TempDir(), "test.db")

	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}

	err := m.Run(context.Background(), []string{"--help"}, stdout, stderr)
	require.NoError(t, err)

	helpOutput := stdout.String()
	for _, cmd := range allCommands {
		assert.Contains(t, helpOutput, cmd, "Help should mention %s command", cmd)
	}
}

func TestMain_Run_NoArgs(t *testing.T) {
	t.Parallel()

	m := main.NewMain()
	m.DBPath = filepath.Join(t.TempDir(), "test.db")

	err := m.Run(context.Background(), nil, &bytes.Buffer{}, &bytes.Buffer{})

	assert.Equal(t, linkex.EINVALID, linkex.ErrorCode(err))
}

func TestMain_Run_ListAgainstEmptyDatabase(t *testing.T) {
	t.Parallel()

	m := main.NewMain()
	dbPath := filepath.Join(t.TempDir(), "test.db")

	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}

	err := m.Run(context.Background(), []string{"--db", dbPath, "list"}, stdout, stderr)

	require.NoError(t, err)
	assert.Equal(t, dbPath, m.DBPath)
	assert.Contains(t, stdout.String(), "No records found")
	assert.Empty(t, stderr.String())
}

func TestMain_Run_ShowUnknownRecord(t *testing.T) {
	t.Parallel()

	m := main.NewMain()
	m.DBPath = filepath.Join(t.TempDir(), "test.db")

	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}

	err := m.Run(context.Background(), []string{"show", "https://www.linkedin.com/in/nobody"}, stdout, stderr)

	assert.Equal(t, linkex.ENOTFOUND, linkex.ErrorCode(err))
	assert.Contains(t, stderr.String(), "error: no record for https://www.linkedin.com/in/nobody/")
}

func TestMain_Run_OllamaHeartbeatGate(t *testing.T) {
	t.Parallel()

	down := func() *mock.ModelService {
		return &mock.ModelService{
			HeartbeatFn: func(context.Context) error {
				return linkex.Errorf(linkex.EUNAVAILABLE, "cannot reach Ollama at http://localhost:11434")
			},
		}
	}

	for _, args := range [][]string{
		{"--backend", "ollama", "ask", "What does Jane do?"},
		{"--backend", "ollama", "index", "--all"},
		{"--backend", "ollama", "add", "https://www.linkedin.com/in/jane-doe"},
	} {
		t.Run(args[2], func(t *testing.T) {
			t.Parallel()

			m := main.NewMain()
			m.DBPath = filepath.Join(t.TempDir(), "test.db")
			m.ModelService = down()
			stderr := &bytes.Buffer{}

			err := m.Run(context.Background(), args, &bytes.Buffer{}, stderr)

			assert.Equal(t, linkex.EUNAVAILABLE, linkex.ErrorCode(err))
			assert.Contains(t, stderr.String(), "Hint: Start Ollama with 'ollama serve'")
		})
	}

	t.Run("commands without a model skip the check", func(t *testing.T) {
		t.Parallel()

		m := main.NewMain()
		m.DBPath = filepath.Join(t.TempDir(), "test.db")
		m.ModelService = &mock.ModelService{
			HeartbeatFn: func(context.Context) error {
				t.Error("unexpected heartbeat")
				return nil
			},
		}
		stdout := &bytes.Buffer{}

		err := m.Run(context.Background(), []string{"--backend", "ollama", "list"}, stdout, &bytes.Buffer{})

		require.NoError(t, err)
		assert.Contains(t, stdout.String(), "No records found")
	})
}

func TestMain_Run_ModelsReportsServerStatus(t *testing.T) {
	t.Parallel()

	m := main.NewMain()
	m.DBPath = filepath.Join(t.TempDir(), "test.db")
	m.ModelService = &mock.ModelService{
		HeartbeatFn: func(context.Context) error { return nil },
		ListModelsFn: func(context.Context) ([]string, error) {
			return []string{"llama3:latest"}, nil
		},
	}
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}

	err := m.Run(context.Background(), []string{"models"}, stdout, stderr)

	require.NoError(t, err)
	assert.Equal(t, "llama3:latest\n", stdout.String())
	assert.Contains(t, stderr.String(), "Ollama: running")
}
