package slog_test

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	article "github.com/alfishe/article-exporter"
	"github.com/alfishe/article-exporter/mock"
	artslog "github.com/alfishe/article-exporter/slog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggingCatalog(t *testing.T) {
	t.Parallel()

	t.Run("logs recorded export", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
		inner := &mock.Catalog{
			RecordExportFn: func(_ context.Context, rec *article.ExportRecord) error {
				rec.ID = "abc"
				return nil
			},
		}

		catalog := artslog.NewLoggingCatalog(inner, logger)
		err := catalog.RecordExport(context.Background(), &article.ExportRecord{SourceURL: "https://example.com/a", Folder: "f"})

		require.NoError(t, err)
		assert.Contains(t, buf.String(), "catalog record")
		assert.Contains(t, buf.String(), "id=abc")
	})

	t.Run("logs query result count", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
		inner := &mock.Catalog{
			FindExportsFn: func(context.Context, article.ExportFilter) ([]*article.ExportRecord, error) {
				return []*article.ExportRecord{{}, {}}, nil
			},
		}

		recs, err := artslog.NewLoggingCatalog(inner, logger).FindExports(context.Background(), article.ExportFilter{})

		require.NoError(t, err)
		assert.Len(t, recs, 2)
		assert.Contains(t, buf.String(), "results=2")
	})
}
