package article

import (
	"context"
	"time"
)

// ArticleFilename is the name of the Markdown file inside an export folder.
const ArticleFilename = "article.md"

// ExportStore creates export folders and writes the Markdown document.
type ExportStore interface {
	// CreateFolder creates a new, uniquely named folder for the article
	// and returns its path. Name collisions get a -1, -2, ... suffix.
	CreateFolder(meta *Meta, now time.Time) (dir string, err error)

	// WriteArticle writes content to dir/article.md and returns the path.
	WriteArticle(dir string, content string) (path string, err error)
}

// ExportRecord is a catalog entry for a finished export.
type ExportRecord struct {
	ID          string    `json:"id"`
	SourceURL   string    `json:"sourceUrl"`
	Title       string    `json:"title"`
	Author      string    `json:"author"`
	Folder      string    `json:"folder"`
	ImageCount  int       `json:"imageCount"`
	Content     string    `json:"-"`
	ContentHash string    `json:"contentHash"`
	ExportedAt  time.Time `json:"exportedAt"`
}

// Validate returns an error if the record contains invalid fields.
func (r *ExportRecord) Validate() error {
	if r.SourceURL == "" {
		return Errorf(EINVALID, "export source URL required")
	}
	if r.Folder == "" {
		return Errorf(EINVALID, "export folder required")
	}
	return nil
}

// ExportFilter represents a filter for FindExports.
type ExportFilter struct {
	SourceURL *string `json:"sourceUrl"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}

// Catalog keeps a history of finished exports.
type Catalog interface {
	// RecordExport stores rec, assigning ID, ExportedAt and ContentHash.
	RecordExport(ctx context.Context, rec *ExportRecord) error

	// FindExports returns records matching the filter, newest first.
	FindExports(ctx context.Context, filter ExportFilter) ([]*ExportRecord, error)
}
