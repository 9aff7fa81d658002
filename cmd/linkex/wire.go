package main

import (
	"context"
	"fmt"
	"io"
	nethttp "net/http"
	"time"

	"github.com/fwojciec/linkex"
	"github.com/fwojciec/linkex/gemini"
	"github.com/fwojciec/linkex/goquery"
	"github.com/fwojciec/linkex/htmltomarkdown"
	lxhttp "github.com/fwojciec/linkex/http"
	"github.com/fwojciec/linkex/ollama"
	"github.com/fwojciec/linkex/rag"
	"github.com/fwojciec/linkex/readability"
	"github.com/fwojciec/linkex/rod"
	"github.com/fwojciec/linkex/scrape"
	locslog "github.com/fwojciec/linkex/slog"
	"github.com/fwojciec/linkex/textsplitter"
	"github.com/fwojciec/linkex/trafilatura"
	"google.golang.org/genai"
)

// wiring builds the command-specific services from the parsed flags.
type wiring struct {
	cli    *CLI
	deps   *Dependencies
	stderr io.Writer

	gemini  *genai.Client
	closers []func() error
}

// Close releases resources opened while wiring.
func (w *wiring) Close() error {
	var firstErr error
	for i := len(w.closers) - 1; i >= 0; i-- {
		if err := w.closers[i](); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

func (w *wiring) wire(ctx context.Context, cmd string) error {
	switch cmd {
	case "add":
		return w.wireAdd(ctx)
	case "ask":
		return w.wireAsk(ctx)
	case "index":
		return w.wireIndexer(ctx)
	case "stats":
		splitter, err := textsplitter.NewSplitter()
		if err != nil {
			return err
		}
		w.deps.Splitter = splitter
		w.wireTokenCounter()
	case "models":
		_, err := w.models()
		return err
	}
	return nil
}

// models returns the Ollama administration client, creating it on first use.
func (w *wiring) models() (linkex.ModelService, error) {
	if w.deps.Models != nil {
		return w.deps.Models, nil
	}
	client, err := ollama.NewClient(w.cli.OllamaURL, nil)
	if err != nil {
		return nil, err
	}
	w.deps.Models = client
	return client, nil
}

// checkOllama fails fast when the ollama backend is selected and the
// server does not answer.
func (w *wiring) checkOllama(ctx context.Context) error {
	if w.cli.Backend != "ollama" {
		return nil
	}
	models, err := w.models()
	if err != nil {
		return err
	}
	if err := models.Heartbeat(ctx); err != nil {
		fmt.Fprintf(w.stderr, "Hint: Start Ollama with 'ollama serve' (expected at %s)\n", w.cli.OllamaURL)
		return err
	}
	return nil
}

// wireTokenCounter sets the local Gemini tokenizer. Token counts are
// optional, so a tokenizer that fails to load only disables them.
func (w *wiring) wireTokenCounter() linkex.TokenCounter {
	tc, err := gemini.NewTokenCounter(gemini.TokenizerModel)
	if err != nil {
		w.deps.Logger.Debug("token counting disabled", "err", err)
		return nil
	}
	w.deps.TokenCounter = tc
	return tc
}

func (w *wiring) verbose() bool {
	return w.cli.Verbose
}

func (w *wiring) userAgent() string {
	if w.cli.UserAgent != "" {
		return w.cli.UserAgent
	}
	return lxhttp.DefaultUserAgent
}

func (w *wiring) wireAdd(ctx context.Context) error {
	add := w.cli.Add

	var fetcher linkex.Fetcher
	if add.File == "" {
		if add.Browser {
			f, err := rod.NewFetcher(rod.WithUserAgent(w.userAgent()))
			if err != nil {
				fmt.Fprintln(w.stderr, "Hint: Chrome or Chromium must be installed for --browser")
				return fmt.Errorf("failed to start browser: %w", err)
			}
			fetcher = f
		} else {
			fetcher = lxhttp.NewFetcher(lxhttp.WithUserAgent(w.userAgent()))
		}
		w.closers = append(w.closers, fetcher.Close)
		if w.verbose() {
			fetcher = locslog.NewLoggingFetcher(fetcher, w.deps.Logger)
		}
	}

	var indexer linkex.Indexer
	if !add.Preview && !add.NoIndex {
		if err := w.wireIndexer(ctx); err != nil {
			return err
		}
		indexer = w.deps.Indexer
	}

	scraper := &scrape.Scraper{
		Fetcher:     fetcher,
		Robots:      lxhttp.NewRobotsChecker(&nethttp.Client{Timeout: lxhttp.DefaultFetchTimeout}, w.userAgent()),
		Extractors:  w.extractors(),
		Records:     w.deps.Records,
		Indexer:     indexer,
		Chunks:      w.deps.Chunks,
		RateLimiter: scrape.NewDomainLimiter(add.Rate),
		Concurrency: add.Concurrency,
		OnRetry: func(url string, attempt int, delay time.Duration, err error) {
			fmt.Fprintf(w.stderr, "  retry %s in %s (attempt %d): %s\n", scrape.TruncateURL(url, 60), delay, attempt, message(err))
		},
	}

	if tc := w.wireTokenCounter(); tc != nil {
		scraper.TokenCounter = tc
	}

	w.deps.Scraper = scraper
	return nil
}

// extractors registers an extractor per record kind.
func (w *wiring) extractors() linkex.ExtractorRegistry {
	detector := goquery.NewDetector()
	registry := goquery.NewRegistry(detector)

	extractors := map[linkex.Kind]linkex.Extractor{
		linkex.KindProfile: goquery.NewProfileExtractor(),
		linkex.KindCompany: goquery.NewCompanyExtractor(),
		linkex.KindPost:    goquery.NewPostExtractor(trafilatura.NewExtractor()),
		linkex.KindArticle: readability.NewArticleExtractor(readability.NewExtractor(), htmltomarkdown.NewConverter()),
	}
	for kind, extractor := range extractors {
		if w.verbose() {
			extractor = locslog.NewLoggingExtractor(extractor, w.deps.Logger)
		}
		registry.Register(kind, extractor)
	}

	if w.verbose() {
		return locslog.NewLoggingRegistry(registry, detector, w.deps.Logger)
	}
	return registry
}

func (w *wiring) wireIndexer(ctx context.Context) error {
	if err := w.checkOllama(ctx); err != nil {
		return err
	}
	splitter, err := textsplitter.NewSplitter()
	if err != nil {
		return err
	}
	embedder, err := w.embedder(ctx)
	if err != nil {
		return err
	}

	var indexer linkex.Indexer = rag.NewIndexer(w.deps.Chunks, splitter, embedder)
	if w.verbose() {
		indexer = locslog.NewLoggingIndexer(indexer, w.deps.Logger)
	}
	w.deps.Splitter = splitter
	w.deps.Indexer = indexer
	return nil
}

func (w *wiring) wireAsk(ctx context.Context) error {
	if err := w.checkOllama(ctx); err != nil {
		return err
	}
	embedder, err := w.embedder(ctx)
	if err != nil {
		return err
	}
	generator, err := w.generator(ctx)
	if err != nil {
		return err
	}
	if w.verbose() {
		generator = locslog.NewLoggingGenerator(generator, w.deps.Logger)
	}

	var asker linkex.Asker = rag.NewAsker(rag.NewRetriever(w.deps.Chunks, embedder), generator, w.deps.Turns)
	if w.verbose() {
		asker = locslog.NewLoggingAsker(asker, w.deps.Logger)
	}
	w.deps.Asker = asker
	return nil
}

func (w *wiring) geminiClient(ctx context.Context) (*genai.Client, error) {
	if w.gemini != nil {
		return w.gemini, nil
	}
	client, err := gemini.NewClient(ctx, w.cli.GeminiAPIKey)
	if err != nil {
		fmt.Fprintln(w.stderr, "Hint: Get an API key at https://aistudio.google.com/apikey and set GEMINI_API_KEY")
		return nil, err
	}
	w.gemini = client
	return client, nil
}

func (w *wiring) embedder(ctx context.Context) (linkex.Embedder, error) {
	if w.cli.Backend == "gemini" {
		client, err := w.geminiClient(ctx)
		if err != nil {
			return nil, err
		}
		return gemini.NewEmbedder(client.Models, orDefault(w.cli.EmbedModel, gemini.DefaultEmbeddingModel)), nil
	}
	return ollama.NewEmbedder(w.cli.OllamaURL, orDefault(w.cli.EmbedModel, ollama.DefaultEmbeddingModel))
}

func (w *wiring) generator(ctx context.Context) (linkex.Generator, error) {
	if w.cli.Backend == "gemini" {
		client, err := w.geminiClient(ctx)
		if err != nil {
			return nil, err
		}
		return gemini.NewGenerator(client.Models,
			gemini.WithModel(w.cli.Model),
			gemini.WithTemperature(float32(w.cli.Temperature)),
			gemini.WithTopP(float32(w.cli.TopP)),
			gemini.WithMaxTokens(int32(w.cli.MaxTokens)),
		), nil
	}
	return ollama.NewGenerator(w.cli.OllamaURL, orDefault(w.cli.Model, ollama.DefaultModel),
		ollama.WithTemperature(w.cli.Temperature),
		ollama.WithTopP(w.cli.TopP),
		ollama.WithMaxTokens(w.cli.MaxTokens),
	)
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
