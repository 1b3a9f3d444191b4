package article

import (
	"context"
	"io"
)

// Fetcher retrieves page HTML from URLs.
type Fetcher interface {
	// Fetch retrieves the URL and returns its HTML decoded to UTF-8.
	// Non-2xx responses and non-HTML content types are EFETCH errors.
	// The context controls timeout and cancellation.
	Fetch(ctx context.Context, url string) (html string, err error)

	// Close releases resources.
	Close() error
}

// Downloader streams binary resources such as images.
type Downloader interface {
	// Download copies the response body for url into w and returns the
	// number of bytes written.
	Download(ctx context.Context, url string, w io.Writer) (n int64, err error)
}
