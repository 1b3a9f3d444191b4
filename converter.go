package article

// Converter converts an HTML fragment to Markdown.
type Converter interface {
	// Convert transforms HTML content into Markdown.
	// The renderer hands it fragments it does not render itself (tables),
	// with text already escaped.
	Convert(html string) (string, error)
}
