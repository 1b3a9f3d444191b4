package slog

import (
	"context"
	"log/slog"
	"time"

	article "github.com/alfishe/article-exporter"
)

// Ensure LoggingCatalog implements article.Catalog.
var _ article.Catalog = (*LoggingCatalog)(nil)

// LoggingCatalog wraps a Catalog with debug logging.
type LoggingCatalog struct {
	next   article.Catalog
	logger *slog.Logger
}

// NewLoggingCatalog creates a new LoggingCatalog.
func NewLoggingCatalog(next article.Catalog, logger *slog.Logger) *LoggingCatalog {
	return &LoggingCatalog{next: next, logger: logger}
}

// RecordExport delegates to the wrapped catalog.
func (c *LoggingCatalog) RecordExport(ctx context.Context, rec *article.ExportRecord) (err error) {
	defer func(begin time.Time) {
		c.logger.Debug("catalog record",
			"url", rec.SourceURL,
			"folder", rec.Folder,
			"id", rec.ID,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return c.next.RecordExport(ctx, rec)
}

// FindExports delegates to the wrapped catalog.
func (c *LoggingCatalog) FindExports(ctx context.Context, filter article.ExportFilter) (recs []*article.ExportRecord, err error) {
	defer func(begin time.Time) {
		c.logger.Debug("catalog query",
			"results", len(recs),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return c.next.FindExports(ctx, filter)
}
