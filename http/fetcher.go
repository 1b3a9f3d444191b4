// Package http provides an HTTP-based implementation of article.Fetcher
// and article.Downloader for static pages that don't require JavaScript
// rendering.
package http

import (
	"context"
	"io"
	"mime"
	"net/http"
	"strings"
	"time"

	article "github.com/alfishe/article-exporter"
	"golang.org/x/net/html/charset"
)

// DefaultFetchTimeout is the default timeout for HTTP requests.
const DefaultFetchTimeout = 30 * time.Second

// DefaultUserAgent identifies requests as a desktop browser. Many news
// sites serve a reduced page or refuse requests without one.
const DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/118.0 Safari/537.36"

// Ensure Fetcher implements the article interfaces at compile time.
var (
	_ article.Fetcher    = (*Fetcher)(nil)
	_ article.Downloader = (*Fetcher)(nil)
)

// Fetcher retrieves HTML pages and binary resources using HTTP requests.
type Fetcher struct {
	client    *http.Client
	timeout   time.Duration
	userAgent string
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithTimeout sets the timeout for HTTP requests.
// Defaults to DefaultFetchTimeout (30s) if not specified.
func WithTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		f.timeout = d
	}
}

// WithUserAgent overrides DefaultUserAgent.
func WithUserAgent(ua string) Option {
	return func(f *Fetcher) {
		f.userAgent = ua
	}
}

// NewFetcher creates a new HTTP-based Fetcher.
func NewFetcher(opts ...Option) *Fetcher {
	f := &Fetcher{
		timeout:   DefaultFetchTimeout,
		userAgent: DefaultUserAgent,
	}
	for _, opt := range opts {
		opt(f)
	}

	f.client = &http.Client{
		Timeout: f.timeout,
	}

	return f
}

// Fetch retrieves the HTML content from the given URL, decoded to UTF-8
// using the declared or sniffed charset. Non-2xx responses and non-HTML
// content types are EFETCH errors.
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	resp, err := f.get(ctx, url, "text/html,application/xhtml+xml,application/xml;q=0.9,image/webp,*/*;q=0.8")
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	contentType := resp.Header.Get("Content-Type")
	if !isHTML(contentType) {
		return "", article.Errorf(article.EFETCH, "content type not HTML for %s: %q", url, contentType)
	}

	r, err := charset.NewReader(resp.Body, contentType)
	if err != nil {
		return "", article.Errorf(article.EFETCH, "failed to decode %s: %v", url, err)
	}

	body, err := io.ReadAll(r)
	if err != nil {
		return "", article.Errorf(article.EFETCH, "failed to read %s: %v", url, err)
	}

	return string(body), nil
}

// Download streams the resource at url into w and returns the number of
// bytes written.
func (f *Fetcher) Download(ctx context.Context, url string, w io.Writer) (int64, error) {
	resp, err := f.get(ctx, url, "image/*,*/*;q=0.8")
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	n, err := io.Copy(w, resp.Body)
	if err != nil {
		return n, article.Errorf(article.EFETCH, "failed to download %s: %v", url, err)
	}
	return n, nil
}

// Close releases resources. For HTTP fetcher this is a no-op since
// http.Client doesn't require explicit cleanup.
func (f *Fetcher) Close() error {
	return nil
}

func (f *Fetcher) get(ctx context.Context, url, accept string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, article.Errorf(article.EINVALID, "invalid request URL %s: %v", url, err)
	}
	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", accept)
	req.Header.Set("Accept-Language", "en-US,en;q=0.8")
	req.Header.Set("Upgrade-Insecure-Requests", "1")

	resp, err := f.client.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, article.Errorf(article.EFETCH, "request to %s failed: %v", url, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		resp.Body.Close()
		return nil, article.Errorf(article.EFETCH, "HTTP %d for %s", resp.StatusCode, url)
	}

	return resp, nil
}

func isHTML(contentType string) bool {
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return strings.Contains(strings.ToLower(contentType), "text/html")
	}
	return mediaType == "text/html" || mediaType == "application/xhtml+xml"
}
