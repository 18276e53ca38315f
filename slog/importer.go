// Package slog provides log/slog decorators for the h2wp services.
package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/h2wp"
)

// Ensure LoggingImporter implements h2wp.Importer.
var _ h2wp.Importer = (*LoggingImporter)(nil)

// LoggingImporter wraps an Importer with per-file logging.
type LoggingImporter struct {
	next   h2wp.Importer
	logger *slog.Logger
}

// NewLoggingImporter creates a new LoggingImporter.
func NewLoggingImporter(next h2wp.Importer, logger *slog.Logger) *LoggingImporter {
	return &LoggingImporter{next: next, logger: logger}
}

// ImportFile delegates to the wrapped importer and logs the result.
func (i *LoggingImporter) ImportFile(ctx context.Context, path string, opts h2wp.ImportOptions) (result h2wp.ImportResult) {
	defer func(begin time.Time) {
		level := slog.LevelInfo
		if !result.OK {
			level = slog.LevelWarn
		}
		i.logger.Log(ctx, level, "import file",
			"path", path,
			"ok", result.OK,
			"message", result.Message,
			"dry_run", opts.DryRun,
			"duration", time.Since(begin),
		)
	}(time.Now())
	return i.next.ImportFile(ctx, path, opts)
}
