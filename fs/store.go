package fs

import (
	"errors"
	"os"
	"path/filepath"
	"strconv"
	"time"

	article "github.com/alfishe/article-exporter"
)

// Ensure Store implements article.ExportStore at compile time.
var _ article.ExportStore = (*Store)(nil)

// Store writes exports as folders under a root directory.
type Store struct {
	root string
}

// NewStore creates a new Store rooted at root. The directory is created on
// the first export.
func NewStore(root string) *Store {
	return &Store{root: root}
}

// Root returns the output root directory.
func (s *Store) Root() string {
	return s.root
}

// CreateFolder creates a new folder named by FolderName. An existing folder
// is never reused: collisions get a -1, -2, ... suffix.
func (s *Store) CreateFolder(meta *article.Meta, now time.Time) (string, error) {
	if err := os.MkdirAll(s.root, 0755); err != nil {
		return "", article.Errorf(article.EFILESYSTEM, "failed to create output directory: %v", err)
	}

	base := filepath.Join(s.root, FolderName(meta, now))
	dir := base
	for suffix := 1; ; suffix++ {
		err := os.Mkdir(dir, 0755)
		if err == nil {
			return dir, nil
		}
		if !errors.Is(err, os.ErrExist) {
			return "", article.Errorf(article.EFILESYSTEM, "failed to create article folder: %v", err)
		}
		dir = base + "-" + strconv.Itoa(suffix)
	}
}

// WriteArticle writes content to dir/article.md.
func (s *Store) WriteArticle(dir string, content string) (string, error) {
	path := filepath.Join(dir, article.ArticleFilename)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return "", article.Errorf(article.EFILESYSTEM, "failed to write article: %v", err)
	}
	return path, nil
}
