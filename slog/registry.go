package slog

import (
	"log/slog"
	"time"

	"github.com/fwojciec/linkex"
)

// Ensure LoggingRegistry implements linkex.ExtractorRegistry.
var _ linkex.ExtractorRegistry = (*LoggingRegistry)(nil)

// LoggingRegistry wraps an ExtractorRegistry with debug logging for kind detection.
type LoggingRegistry struct {
	next     linkex.ExtractorRegistry
	detector linkex.KindDetector
	logger   *slog.Logger
}

// NewLoggingRegistry creates a new LoggingRegistry.
func NewLoggingRegistry(next linkex.ExtractorRegistry, detector linkex.KindDetector, logger *slog.Logger) *LoggingRegistry {
	return &LoggingRegistry{next: next, detector: detector, logger: logger}
}

// ForKind delegates to the wrapped registry.
func (r *LoggingRegistry) ForKind(kind linkex.Kind) (linkex.Extractor, error) {
	return r.next.ForKind(kind)
}

// ForHTML detects the kind, logs it, and returns the appropriate extractor.
func (r *LoggingRegistry) ForHTML(html string) (linkex.Extractor, linkex.Kind, error) {
	begin := time.Now()
	kind := r.detector.Detect(html)
	kindName := string(kind)
	if kind == linkex.KindUnknown {
		kindName = "(unknown)"
	}
	r.logger.Info("kind detection",
		"kind", kindName,
		"duration", time.Since(begin),
	)
	return r.next.ForHTML(html)
}

// Register delegates to the wrapped registry.
func (r *LoggingRegistry) Register(kind linkex.Kind, extractor linkex.Extractor) {
	r.next.Register(kind, extractor)
}

// List delegates to the wrapped registry.
func (r *LoggingRegistry) List() []linkex.Kind {
	return r.next.List()
}

// Ensure LoggingExtractor implements linkex.Extractor.
var _ linkex.Extractor = (*LoggingExtractor)(nil)

// LoggingExtractor wraps an Extractor with debug logging.
type LoggingExtractor struct {
	next   linkex.Extractor
	logger *slog.Logger
}

// NewLoggingExtractor creates a new LoggingExtractor.
func NewLoggingExtractor(next linkex.Extractor, logger *slog.Logger) *LoggingExtractor {
	return &LoggingExtractor{next: next, logger: logger}
}

// Extract delegates to the wrapped extractor and logs the operation.
func (e *LoggingExtractor) Extract(html string, sourceURL string) (rec *linkex.Record, err error) {
	defer func(begin time.Time) {
		kind := ""
		if rec != nil {
			kind = string(rec.Kind)
		}
		e.logger.Info("extract",
			"url", sourceURL,
			"bytes", len(html),
			"kind", kind,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return e.next.Extract(html, sourceURL)
}
