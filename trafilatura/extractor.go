// Package trafilatura reads article metadata with go-trafilatura.
package trafilatura

import (
	"net/url"
	"strings"

	article "github.com/alfishe/article-exporter"
	"github.com/markusmobius/go-trafilatura"
)

// Ensure MetaExtractor implements article.MetaExtractor at compile time.
var _ article.MetaExtractor = (*MetaExtractor)(nil)

// MetaExtractor wraps go-trafilatura to read the title, author and
// publication date of a page.
type MetaExtractor struct{}

// NewMetaExtractor creates a new MetaExtractor.
func NewMetaExtractor() *MetaExtractor {
	return &MetaExtractor{}
}

// ExtractMeta parses rawHTML and returns the metadata trafilatura finds.
func (e *MetaExtractor) ExtractMeta(rawHTML string, pageURL string) (*article.Meta, error) {
	if rawHTML == "" {
		return nil, article.Errorf(article.EINVALID, "empty HTML input")
	}

	opts := trafilatura.Options{
		EnableFallback: true,
	}
	if u, err := url.Parse(pageURL); err == nil && u.Host != "" {
		opts.OriginalURL = u
	}

	result, err := trafilatura.Extract(strings.NewReader(rawHTML), opts)
	if err != nil {
		return nil, article.Errorf(article.EINTERNAL, "trafilatura failed: %v", err)
	}

	meta := &article.Meta{
		URL:    pageURL,
		Title:  strings.TrimSpace(result.Metadata.Title),
		Author: strings.TrimSpace(result.Metadata.Author),
	}
	if date := result.Metadata.Date; !date.IsZero() {
		meta.PublishedAt = &date
	}
	return meta, nil
}
