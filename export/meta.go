package export

import (
	article "github.com/alfishe/article-exporter"
)

// Ensure MetaChain implements article.MetaExtractor at compile time.
var _ article.MetaExtractor = MetaChain(nil)

// MetaChain runs extractors in order, each one filling only the fields the
// previous ones left empty. It stops once every field is set. Errors from
// individual extractors are skipped unless all of them fail.
type MetaChain []article.MetaExtractor

// ExtractMeta implements article.MetaExtractor.
func (c MetaChain) ExtractMeta(html string, pageURL string) (*article.Meta, error) {
	meta := &article.Meta{URL: pageURL}

	var firstErr error
	succeeded := false
	for _, ext := range c {
		found, err := ext.ExtractMeta(html, pageURL)
		if err != nil {
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		succeeded = true
		meta.Merge(found)
		if meta.Complete() {
			break
		}
	}

	if !succeeded && firstErr != nil {
		return meta, firstErr
	}
	return meta, nil
}
