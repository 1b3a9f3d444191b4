package article

// MetaExtractor reads article metadata (title, author, published date) from
// a page. Implementations return whatever they can find; missing fields are
// left empty rather than reported as errors.
type MetaExtractor interface {
	ExtractMeta(html string, pageURL string) (*Meta, error)
}
