// Package sqlite provides the SQLite-backed export catalog.
package sqlite

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"

	article "github.com/alfishe/article-exporter"
	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"
)

// MemoryPath opens a private in-memory database.
const MemoryPath = ":memory:"

// DB represents a SQLite database connection.
type DB struct {
	db   *sql.DB
	path string
}

// NewDB creates a new DB instance with the given path.
// Use MemoryPath for an in-memory database.
func NewDB(path string) *DB {
	return &DB{path: path}
}

// Path returns the database path.
func (db *DB) Path() string {
	return db.path
}

// Open opens the database connection and creates the schema if needed.
// The parent directory of a file database is created first.
func (db *DB) Open(ctx context.Context) error {
	if db.path != MemoryPath {
		if err := os.MkdirAll(filepath.Dir(db.path), 0755); err != nil {
			return article.Errorf(article.EFILESYSTEM, "failed to create catalog directory: %v", err)
		}
	}

	conn, err := sql.Open("sqlite3", db.path)
	if err != nil {
		return article.Errorf(article.EINTERNAL, "failed to open catalog: %v", err)
	}

	// SQLite only supports one writer at a time, so limit to one connection.
	conn.SetMaxOpenConns(1)

	if err := conn.PingContext(ctx); err != nil {
		conn.Close()
		return article.Errorf(article.EINTERNAL, "failed to connect to catalog: %v", err)
	}

	pragmas := []string{"PRAGMA busy_timeout = 5000"}
	// WAL is not supported for in-memory databases.
	if db.path != MemoryPath {
		pragmas = append(pragmas, "PRAGMA journal_mode = WAL")
	}
	for _, p := range pragmas {
		if _, err := conn.ExecContext(ctx, p); err != nil {
			conn.Close()
			return article.Errorf(article.EINTERNAL, "failed to configure catalog (%s): %v", p, err)
		}
	}

	db.db = conn

	if err := db.createSchema(ctx); err != nil {
		conn.Close()
		db.db = nil
		return article.Errorf(article.EINTERNAL, "failed to create catalog schema: %v", err)
	}

	return nil
}

// Close closes the database connection.
func (db *DB) Close() error {
	if db.db != nil {
		return db.db.Close()
	}
	return nil
}

// QueryRowContext executes a query that returns a single row.
func (db *DB) QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row {
	return db.db.QueryRowContext(ctx, query, args...)
}

// QueryContext executes a query that returns rows.
func (db *DB) QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	return db.db.QueryContext(ctx, query, args...)
}

// ExecContext executes a statement that doesn't return rows.
func (db *DB) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	return db.db.ExecContext(ctx, query, args...)
}

// createSchema creates the database tables if they don't exist.
func (db *DB) createSchema(ctx context.Context) error {
	schema := `
		CREATE TABLE IF NOT EXISTS exports (
			id TEXT PRIMARY KEY,
			source_url TEXT NOT NULL,
			title TEXT NOT NULL DEFAULT '',
			author TEXT NOT NULL DEFAULT '',
			folder TEXT NOT NULL,
			image_count INTEGER NOT NULL DEFAULT 0,
			content TEXT NOT NULL DEFAULT '',
			content_hash TEXT NOT NULL DEFAULT '',
			exported_at TEXT NOT NULL
		);

		CREATE INDEX IF NOT EXISTS idx_exports_source_url ON exports(source_url);
		CREATE INDEX IF NOT EXISTS idx_exports_exported_at ON exports(exported_at);
	`

	_, err := db.db.ExecContext(ctx, schema)
	return err
}
