// Package readability reads article metadata with go-readability.
package readability

import (
	"net/url"
	"strings"

	article "github.com/alfishe/article-exporter"
	"github.com/go-shiori/go-readability"
)

// Ensure MetaExtractor implements article.MetaExtractor at compile time.
var _ article.MetaExtractor = (*MetaExtractor)(nil)

// MetaExtractor wraps go-readability to read the title and byline of a
// page.
type MetaExtractor struct{}

// NewMetaExtractor creates a new MetaExtractor.
func NewMetaExtractor() *MetaExtractor {
	return &MetaExtractor{}
}

// ExtractMeta parses rawHTML and returns the title and byline readability
// finds. The published date is left to other extractors.
func (e *MetaExtractor) ExtractMeta(rawHTML string, pageURL string) (*article.Meta, error) {
	if rawHTML == "" {
		return nil, article.Errorf(article.EINVALID, "empty HTML input")
	}

	var u *url.URL
	if pageURL != "" {
		parsed, err := url.Parse(pageURL)
		if err != nil {
			return nil, article.Errorf(article.EINVALID, "invalid page URL: %v", err)
		}
		u = parsed
	}

	doc, err := readability.FromReader(strings.NewReader(rawHTML), u)
	if err != nil {
		return nil, article.Errorf(article.EINTERNAL, "readability failed: %v", err)
	}

	return &article.Meta{
		URL:    pageURL,
		Title:  strings.TrimSpace(doc.Title),
		Author: cleanByline(doc.Byline),
	}, nil
}

// cleanByline strips a leading "By" from readability bylines.
func cleanByline(s string) string {
	s = strings.TrimSpace(s)
	for _, prefix := range []string{"By ", "by ", "BY "} {
		if strings.HasPrefix(s, prefix) {
			return strings.TrimSpace(s[len(prefix):])
		}
	}
	return s
}
