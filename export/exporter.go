// Package export orchestrates a single article export: fetch the page,
// gather metadata, create the folder, render Markdown with images, and write
// article.md.
package export

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	article "github.com/alfishe/article-exporter"
)

// DefaultDelay is the politeness delay before the page request.
const DefaultDelay = 500 * time.Millisecond

// Exporter turns an article URL into an export folder.
type Exporter struct {
	Fetcher  article.Fetcher
	Meta     article.MetaExtractor
	Renderer article.Renderer
	Store    article.ExportStore
	Images   article.ImageStore

	// Catalog is optional. Recording failures are logged, not returned.
	Catalog article.Catalog

	Logger *slog.Logger

	// Delay is slept once before the page request. A failed fetch is not
	// retried.
	Delay time.Duration

	// NoImages skips image downloads and image references.
	NoImages bool

	// Now returns the export time. Defaults to time.Now.
	Now func() time.Time
}

// Result is the outcome of a successful export.
type Result struct {
	Meta         *article.Meta
	Folder       string
	MarkdownPath string
	ImageCount   int
}

// Export fetches meta.URL and writes the article into a new folder.
// Fields already set on meta take precedence over extracted ones.
func (e *Exporter) Export(ctx context.Context, meta *article.Meta) (*Result, error) {
	if err := meta.Validate(); err != nil {
		return nil, err
	}
	pageURL, err := article.NormalizeURL(meta.URL)
	if err != nil {
		return nil, err
	}

	m := *meta
	m.URL = pageURL
	logger := e.logger().With("url", pageURL)

	if err := sleep(ctx, e.Delay); err != nil {
		return nil, err
	}

	html, err := e.Fetcher.Fetch(ctx, pageURL)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, fmt.Errorf("fetch article: %w", err)
	}

	if e.Meta != nil && !m.Complete() {
		found, err := e.Meta.ExtractMeta(html, pageURL)
		if err != nil {
			logger.Debug("metadata extraction failed", "err", err)
		}
		m.Merge(found)
	}

	dir, err := e.Store.CreateFolder(&m, e.now())
	if err != nil {
		return nil, err
	}

	rc := &article.RenderContext{
		BaseURL:  pageURL,
		Dir:      dir,
		NoImages: e.NoImages,
		Images:   e.Images,
	}
	body, err := e.Renderer.Render(ctx, html, rc)
	if err != nil {
		return nil, fmt.Errorf("render article: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	content := article.FormatDocument(&m, body)
	path, err := e.Store.WriteArticle(dir, content)
	if err != nil {
		return nil, err
	}

	if e.Catalog != nil {
		rec := &article.ExportRecord{
			SourceURL:  pageURL,
			Title:      m.Title,
			Author:     m.Author,
			Folder:     dir,
			ImageCount: rc.ImageCounter,
			Content:    content,
		}
		if err := e.Catalog.RecordExport(ctx, rec); err != nil {
			logger.Warn("catalog record failed", "err", err)
		}
	}

	logger.Info("export complete", "folder", dir, "images", rc.ImageCounter)

	return &Result{
		Meta:         &m,
		Folder:       dir,
		MarkdownPath: path,
		ImageCount:   rc.ImageCounter,
	}, nil
}

func (e *Exporter) now() time.Time {
	if e.Now != nil {
		return e.Now()
	}
	return time.Now()
}

func (e *Exporter) logger() *slog.Logger {
	if e.Logger != nil {
		return e.Logger
	}
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// sleep waits for d or until ctx is done.
func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
