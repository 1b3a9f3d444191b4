package slog

import (
	"context"
	"log/slog"

	article "github.com/alfishe/article-exporter"
)

// Ensure LoggingImageStore implements article.ImageStore.
var _ article.ImageStore = (*LoggingImageStore)(nil)

// LoggingImageStore wraps an ImageStore. Saved images are logged at info
// level; failures are logged as warnings because the renderer drops them
// silently.
type LoggingImageStore struct {
	next   article.ImageStore
	logger *slog.Logger
}

// NewLoggingImageStore creates a new LoggingImageStore.
func NewLoggingImageStore(next article.ImageStore, logger *slog.Logger) *LoggingImageStore {
	return &LoggingImageStore{next: next, logger: logger}
}

// SaveImage delegates to the wrapped store and logs the outcome.
func (s *LoggingImageStore) SaveImage(ctx context.Context, rc *article.RenderContext, src string) (string, error) {
	filename, err := s.next.SaveImage(ctx, rc, src)
	if err != nil {
		s.logger.Warn("image skipped", "src", src, "err", err)
		return "", err
	}
	s.logger.Info("image saved", "src", src, "file", filename)
	return filename, nil
}
