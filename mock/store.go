package mock

import (
	"context"
	"time"

	article "github.com/alfishe/article-exporter"
)

var _ article.ExportStore = (*ExportStore)(nil)

// ExportStore is a mock implementation of article.ExportStore.
type ExportStore struct {
	CreateFolderFn func(meta *article.Meta, now time.Time) (string, error)
	WriteArticleFn func(dir string, content string) (string, error)
}

func (s *ExportStore) CreateFolder(meta *article.Meta, now time.Time) (string, error) {
	return s.CreateFolderFn(meta, now)
}

func (s *ExportStore) WriteArticle(dir string, content string) (string, error) {
	return s.WriteArticleFn(dir, content)
}

var _ article.Catalog = (*Catalog)(nil)

// Catalog is a mock implementation of article.Catalog.
type Catalog struct {
	RecordExportFn func(ctx context.Context, rec *article.ExportRecord) error
	FindExportsFn  func(ctx context.Context, filter article.ExportFilter) ([]*article.ExportRecord, error)
}

func (c *Catalog) RecordExport(ctx context.Context, rec *article.ExportRecord) error {
	return c.RecordExportFn(ctx, rec)
}

func (c *Catalog) FindExports(ctx context.Context, filter article.ExportFilter) ([]*article.ExportRecord, error) {
	return c.FindExportsFn(ctx, filter)
}
