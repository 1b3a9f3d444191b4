package fs_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	article "github.com/alfishe/article-exporter"
	"github.com/alfishe/article-exporter/fs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_CreateFolder(t *testing.T) {
	t.Parallel()

	now := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)
	meta := &article.Meta{URL: "https://example.com/a", Title: "Title"}

	t.Run("creates output root and folder", func(t *testing.T) {
		t.Parallel()

		root := filepath.Join(t.TempDir(), "nested", "out")
		store := fs.NewStore(root)

		dir, err := store.CreateFolder(meta, now)

		require.NoError(t, err)
		assert.Equal(t, filepath.Join(root, "20240102-a-Title"), dir)
		info, err := os.Stat(dir)
		require.NoError(t, err)
		assert.True(t, info.IsDir())
	})

	t.Run("adds numeric suffix on collision", func(t *testing.T) {
		t.Parallel()

		root := t.TempDir()
		store := fs.NewStore(root)

		first, err := store.CreateFolder(meta, now)
		require.NoError(t, err)
		second, err := store.CreateFolder(meta, now)
		require.NoError(t, err)
		third, err := store.CreateFolder(meta, now)
		require.NoError(t, err)

		assert.Equal(t, filepath.Join(root, "20240102-a-Title"), first)
		assert.Equal(t, filepath.Join(root, "20240102-a-Title-1"), second)
		assert.Equal(t, filepath.Join(root, "20240102-a-Title-2"), third)
	})

	t.Run("returns filesystem error when root is a file", func(t *testing.T) {
		t.Parallel()

		root := filepath.Join(t.TempDir(), "file")
		require.NoError(t, os.WriteFile(root, []byte("x"), 0644))
		store := fs.NewStore(root)

		_, err := store.CreateFolder(meta, now)

		require.Error(t, err)
		assert.Equal(t, article.EFILESYSTEM, article.ErrorCode(err))
	})
}

func TestStore_WriteArticle(t *testing.T) {
	t.Parallel()

	t.Run("writes article.md", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		store := fs.NewStore(dir)

		path, err := store.WriteArticle(dir, "# Title\n")

		require.NoError(t, err)
		assert.Equal(t, filepath.Join(dir, "article.md"), path)
		content, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "# Title\n", string(content))
	})

	t.Run("returns error for missing folder", func(t *testing.T) {
		t.Parallel()

		dir := filepath.Join(t.TempDir(), "missing")
		store := fs.NewStore(dir)

		_, err := store.WriteArticle(dir, "x")

		require.Error(t, err)
		assert.Equal(t, article.EFILESYSTEM, article.ErrorCode(err))
	})
}
