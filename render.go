package article

import "context"

// RenderContext carries per-export state through the Markdown walk.
//
// ImageCounter is the only mutable piece. It holds the index of the last
// image file written and grows in document order, so generated filenames
// are reproducible. A RenderContext belongs to exactly one export.
type RenderContext struct {
	// BaseURL resolves relative image references.
	BaseURL string

	// Dir is the destination folder for images.
	Dir string

	// ImageCounter is the last assigned image index (0 before any image).
	ImageCounter int

	// NoImages disables image materialization entirely.
	NoImages bool

	// Images stores downloaded images. Nil behaves like NoImages.
	Images ImageStore
}

// ImageRef describes an image written to the destination folder.
type ImageRef struct {
	ResolvedURL   string
	AltText       string
	LocalFilename string
}

// ImageStore downloads an image into rc.Dir under a unique local filename.
type ImageStore interface {
	// SaveImage assigns the next free img_NNN filename, downloads src into
	// it and advances rc.ImageCounter. On failure nothing is left on disk
	// and the counter is unchanged.
	SaveImage(ctx context.Context, rc *RenderContext, src string) (filename string, err error)
}

// Renderer turns a full HTML page into the Markdown body of the article.
// It locates the article content, removes non-content elements, and
// materializes images through rc.
type Renderer interface {
	Render(ctx context.Context, html string, rc *RenderContext) (string, error)
}
