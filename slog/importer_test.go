package slog_test

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/fwojciec/h2wp"
	"github.com/fwojciec/h2wp/mock"
	h2wpslog "github.com/fwojciec/h2wp/slog"
	"github.com/stretchr/testify/assert"
)

func TestLoggingImporter_ImportFile(t *testing.T) {
	t.Parallel()

	t.Run("logs created file with duration", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.Importer{
			ImportFileFn: func(context.Context, string, h2wp.ImportOptions) h2wp.ImportResult {
				return h2wp.ImportResult{OK: true, Message: `Created #7 "Menu"`}
			},
		}

		importer := h2wpslog.NewLoggingImporter(inner, logger)
		result := importer.ImportFile(context.Background(), "/site/menu.html", h2wp.ImportOptions{})

		assert.True(t, result.OK)
		output := buf.String()
		assert.Contains(t, output, "level=INFO")
		assert.Contains(t, output, "import file")
		assert.Contains(t, output, "path=/site/menu.html")
		assert.Contains(t, output, "ok=true")
		assert.Contains(t, output, "duration=")
	})

	t.Run("logs skipped file as warning", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.Importer{
			ImportFileFn: func(context.Context, string, h2wp.ImportOptions) h2wp.ImportResult {
				return h2wp.ImportResult{OK: false, Message: "Failed to parse: /site/bad.html"}
			},
		}

		importer := h2wpslog.NewLoggingImporter(inner, logger)
		importer.ImportFile(context.Background(), "/site/bad.html", h2wp.ImportOptions{})

		output := buf.String()
		assert.Contains(t, output, "level=WARN")
		assert.Contains(t, output, "ok=false")
		assert.Contains(t, output, `message="Failed to parse: /site/bad.html"`)
	})
}
