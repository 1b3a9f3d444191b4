package mock

import (
	"context"

	article "github.com/alfishe/article-exporter"
)

var _ article.Renderer = (*Renderer)(nil)

// Renderer is a mock implementation of article.Renderer.
type Renderer struct {
	RenderFn func(ctx context.Context, html string, rc *article.RenderContext) (string, error)
}

func (r *Renderer) Render(ctx context.Context, html string, rc *article.RenderContext) (string, error) {
	return r.RenderFn(ctx, html, rc)
}

var _ article.ImageStore = (*ImageStore)(nil)

// ImageStore is a mock implementation of article.ImageStore.
type ImageStore struct {
	SaveImageFn func(ctx context.Context, rc *article.RenderContext, src string) (string, error)
}

func (s *ImageStore) SaveImage(ctx context.Context, rc *article.RenderContext, src string) (string, error) {
	return s.SaveImageFn(ctx, rc, src)
}
