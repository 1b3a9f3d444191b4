package sqlite

import (
	"context"
	"encoding/binary"
	"encoding/hex"
	"strings"
	"time"

	article "github.com/alfishe/article-exporter"
	"github.com/cespare/xxhash/v2"
	"github.com/google/uuid"
)

// Compile-time interface verification.
var _ article.Catalog = (*CatalogService)(nil)

// CatalogService implements article.Catalog using SQLite.
type CatalogService struct {
	db  *DB
	now func() time.Time
}

// NewCatalogService creates a new CatalogService.
func NewCatalogService(db *DB) *CatalogService {
	return &CatalogService{db: db, now: time.Now}
}

// hashContent computes xxHash of content and returns hex string.
func hashContent(content string) string {
	var b [8]byte
	binary.BigEndian.PutUint64(b[:], xxhash.Sum64String(content))
	return hex.EncodeToString(b[:])
}

// RecordExport stores rec, assigning ID, ExportedAt and ContentHash.
func (s *CatalogService) RecordExport(ctx context.Context, rec *article.ExportRecord) error {
	if err := rec.Validate(); err != nil {
		return err
	}

	rec.ID = uuid.New().String()
	rec.ExportedAt = s.now().UTC().Truncate(time.Second)
	rec.ContentHash = hashContent(rec.Content)

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO exports (id, source_url, title, author, folder, image_count, content, content_hash, exported_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, rec.ID, rec.SourceURL, rec.Title, rec.Author, rec.Folder, rec.ImageCount, rec.Content, rec.ContentHash,
		rec.ExportedAt.Format(time.RFC3339))
	if err != nil {
		return article.Errorf(article.EINTERNAL, "failed to record export: %v", err)
	}

	return nil
}

// FindExports retrieves exports matching the filter, newest first.
// Content is not loaded.
func (s *CatalogService) FindExports(ctx context.Context, filter article.ExportFilter) ([]*article.ExportRecord, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT id, source_url, title, author, folder, image_count, content_hash, exported_at FROM exports WHERE 1=1")

	if filter.SourceURL != nil {
		query.WriteString(" AND source_url = ?")
		args = append(args, *filter.SourceURL)
	}

	query.WriteString(" ORDER BY exported_at DESC, rowid DESC")
	appendPagination(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, article.Errorf(article.EINTERNAL, "failed to query exports: %v", err)
	}
	defer rows.Close()

	var recs []*article.ExportRecord
	for rows.Next() {
		var rec article.ExportRecord
		var exportedAt string

		if err := rows.Scan(&rec.ID, &rec.SourceURL, &rec.Title, &rec.Author, &rec.Folder,
			&rec.ImageCount, &rec.ContentHash, &exportedAt); err != nil {
			return nil, err
		}

		if rec.ExportedAt, err = parseRFC3339(exportedAt, "exported_at"); err != nil {
			return nil, err
		}

		recs = append(recs, &rec)
	}

	return recs, rows.Err()
}
