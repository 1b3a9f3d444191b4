package mock

import article "github.com/alfishe/article-exporter"

var _ article.Converter = (*Converter)(nil)

// Converter is a mock implementation of article.Converter.
type Converter struct {
	ConvertFn func(html string) (string, error)
}

func (c *Converter) Convert(html string) (string, error) {
	return c.ConvertFn(html)
}
