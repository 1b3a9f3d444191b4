package mock

import article "github.com/alfishe/article-exporter"

var _ article.MetaExtractor = (*MetaExtractor)(nil)

// MetaExtractor is a mock implementation of article.MetaExtractor.
type MetaExtractor struct {
	ExtractMetaFn func(html string, pageURL string) (*article.Meta, error)
}

func (e *MetaExtractor) ExtractMeta(html string, pageURL string) (*article.Meta, error) {
	return e.ExtractMetaFn(html, pageURL)
}
