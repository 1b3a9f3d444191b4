package export

import (
	"context"
	"io"
	"net/url"
	"sync"
	"time"

	article "github.com/alfishe/article-exporter"
	"golang.org/x/time/rate"
)

// Ensure LimitedDownloader implements article.Downloader at compile time.
var _ article.Downloader = (*LimitedDownloader)(nil)

// LimitedDownloader spaces downloads to the same host by at least an
// interval using one token bucket per host with a burst of 1.
type LimitedDownloader struct {
	next     article.Downloader
	interval time.Duration

	mu       sync.Mutex
	limiters map[string]*rate.Limiter
}

// NewLimitedDownloader wraps next. A non-positive interval disables limiting.
func NewLimitedDownloader(next article.Downloader, interval time.Duration) *LimitedDownloader {
	return &LimitedDownloader{
		next:     next,
		interval: interval,
		limiters: make(map[string]*rate.Limiter),
	}
}

// Download waits for the host's limiter, then delegates.
func (d *LimitedDownloader) Download(ctx context.Context, rawURL string, w io.Writer) (int64, error) {
	if err := d.wait(ctx, rawURL); err != nil {
		return 0, err
	}
	return d.next.Download(ctx, rawURL, w)
}

func (d *LimitedDownloader) wait(ctx context.Context, rawURL string) error {
	if d.interval <= 0 {
		return nil
	}

	host := rawURL
	if u, err := url.Parse(rawURL); err == nil && u.Host != "" {
		host = u.Host
	}

	d.mu.Lock()
	limiter, ok := d.limiters[host]
	if !ok {
		limiter = rate.NewLimiter(rate.Every(d.interval), 1)
		d.limiters[host] = limiter
	}
	d.mu.Unlock()

	return limiter.Wait(ctx)
}
