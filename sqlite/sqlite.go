// Package sqlite provides SQLite-based storage for import jobs and the
// WordPress-style content store (posts, attachments, terms, post meta).
package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"
)

// DB represents a SQLite database connection.
type DB struct {
	db   *sql.DB
	path string
}

// NewDB creates a new DB instance with the given path.
// Use ":memory:" for an in-memory database.
func NewDB(path string) *DB {
	return &DB{path: path}
}

// pragmas are applied to every connection before the schema is created.
// busy_timeout lets the CLI and the HTTP server step jobs from separate
// processes without failing on "database is locked".
var pragmas = []string{
	"PRAGMA busy_timeout = 5000",
	"PRAGMA foreign_keys = ON",
}

// Open opens the database connection and creates the schema if needed.
func (db *DB) Open() (err error) {
	conn, err := sql.Open("sqlite3", db.path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer func() {
		if err != nil {
			conn.Close()
		}
	}()

	// One writer at a time; also keeps an in-memory database alive.
	conn.SetMaxOpenConns(1)

	if err := conn.Ping(); err != nil {
		return fmt.Errorf("failed to connect to database %s: %w", db.path, err)
	}

	stmts := pragmas
	if db.path != ":memory:" {
		stmts = append(stmts[:len(stmts):len(stmts)], "PRAGMA journal_mode = WAL")
	}
	for _, stmt := range stmts {
		if _, err := conn.Exec(stmt); err != nil {
			return fmt.Errorf("failed to apply %q: %w", stmt, err)
		}
	}

	db.db = conn
	if err := db.createSchema(); err != nil {
		db.db = nil
		return fmt.Errorf("failed to create schema: %w", err)
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

// BeginTx starts a transaction.
func (db *DB) BeginTx(ctx context.Context) (*sql.Tx, error) {
	return db.db.BeginTx(ctx, nil)
}

// createSchema creates the database tables if they don't exist.
//
// Attachments are rows of the posts table with type 'attachment', so posts
// and media share one ID space as they do in WordPress.
func (db *DB) createSchema() error {
	schema := `
		CREATE TABLE IF NOT EXISTS jobs (
			id TEXT PRIMARY KEY,
			options TEXT NOT NULL,
			state TEXT NOT NULL,
			created_at TEXT NOT NULL,
			updated_at TEXT NOT NULL
		);

		CREATE TABLE IF NOT EXISTS posts (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			type TEXT NOT NULL,
			status TEXT NOT NULL,
			author_id INTEGER NOT NULL DEFAULT 1,
			title TEXT NOT NULL,
			content TEXT NOT NULL DEFAULT '',
			slug TEXT NOT NULL DEFAULT '',
			post_date TEXT NOT NULL,
			post_date_gmt TEXT NOT NULL,
			mime_type TEXT NOT NULL DEFAULT '',
			guid TEXT NOT NULL DEFAULT '',
			created_at TEXT NOT NULL
		);

		CREATE INDEX IF NOT EXISTS idx_posts_type_slug ON posts(type, slug);

		CREATE TABLE IF NOT EXISTS post_meta (
			post_id INTEGER NOT NULL REFERENCES posts(id) ON DELETE CASCADE,
			meta_key TEXT NOT NULL,
			meta_value TEXT NOT NULL,
			PRIMARY KEY (post_id, meta_key)
		);

		CREATE INDEX IF NOT EXISTS idx_post_meta_key_value ON post_meta(meta_key, meta_value);

		CREATE TABLE IF NOT EXISTS terms (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			taxonomy TEXT NOT NULL,
			slug TEXT NOT NULL,
			name TEXT NOT NULL,
			UNIQUE (taxonomy, slug)
		);

		CREATE TABLE IF NOT EXISTS post_terms (
			post_id INTEGER NOT NULL REFERENCES posts(id) ON DELETE CASCADE,
			term_id INTEGER NOT NULL REFERENCES terms(id) ON DELETE CASCADE,
			PRIMARY KEY (post_id, term_id)
		);
	`

	_, err := db.db.Exec(schema)
	return err
}
