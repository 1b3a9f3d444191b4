package sqlite_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/alfishe/article-exporter/sqlite"
	"github.com/stretchr/testify/require"
)

func setupTestDB(t *testing.T) *sqlite.DB {
	t.Helper()

	db := sqlite.NewDB(sqlite.MemoryPath)
	require.NoError(t, db.Open(context.Background()))
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestDB_Open(t *testing.T) {
	t.Parallel()

	t.Run("creates schema on first open", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)

		var count int
		err := db.QueryRowContext(context.Background(), "SELECT COUNT(*) FROM exports").Scan(&count)
		require.NoError(t, err)
		require.Zero(t, count)
	})

	t.Run("creates parent directory", func(t *testing.T) {
		t.Parallel()

		dbPath := filepath.Join(t.TempDir(), "state", "catalog.db")
		db := sqlite.NewDB(dbPath)
		require.NoError(t, db.Open(context.Background()))
		defer db.Close()

		require.FileExists(t, dbPath)
	})

	t.Run("enables WAL mode for file-based databases", func(t *testing.T) {
		t.Parallel()

		dbPath := filepath.Join(t.TempDir(), "test.db")
		db := sqlite.NewDB(dbPath)
		err := db.Open(context.Background())
		require.NoError(t, err)
		defer db.Close()

		var journalMode string
		err = db.QueryRowContext(context.Background(), "PRAGMA journal_mode").Scan(&journalMode)
		require.NoError(t, err)
		require.Equal(t, "wal", journalMode)
	})

	t.Run("reopening keeps existing schema", func(t *testing.T) {
		t.Parallel()

		dbPath := filepath.Join(t.TempDir(), "test.db")
		first := sqlite.NewDB(dbPath)
		require.NoError(t, first.Open(context.Background()))
		require.NoError(t, first.Close())

		second := sqlite.NewDB(dbPath)
		require.NoError(t, second.Open(context.Background()))
		require.NoError(t, second.Close())
	})
}
