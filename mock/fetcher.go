package mock

import (
	"context"
	"io"

	article "github.com/alfishe/article-exporter"
)

var _ article.Fetcher = (*Fetcher)(nil)

// Fetcher is a mock implementation of article.Fetcher.
type Fetcher struct {
	FetchFn func(ctx context.Context, url string) (string, error)
	CloseFn func() error
}

func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	return f.FetchFn(ctx, url)
}

func (f *Fetcher) Close() error {
	return f.CloseFn()
}

var _ article.Downloader = (*Downloader)(nil)

// Downloader is a mock implementation of article.Downloader.
type Downloader struct {
	DownloadFn func(ctx context.Context, url string, w io.Writer) (int64, error)
}

func (d *Downloader) Download(ctx context.Context, url string, w io.Writer) (int64, error) {
	return d.DownloadFn(ctx, url, w)
}
