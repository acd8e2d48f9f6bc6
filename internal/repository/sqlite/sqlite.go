// Package sqlite implements the repository interfaces on SQLite.
//
// The database is embedded — a single file next to the binary, no server to
// run. modernc.org/sqlite is a pure Go translation of SQLite, so there is
// no CGo and cross-compilation stays painless.
package sqlite

import (
	"database/sql"
	"fmt"

	// Side-effect import: registers the "sqlite" driver with database/sql.
	_ "modernc.org/sqlite"
)

// DB wraps the sql.DB pool and carries the repository methods
// (user.go, comment.go, project.go).
type DB struct {
	conn *sql.DB
}

// New opens the SQLite database at dbPath (":memory:" for tests), applies
// the connection PRAGMAs, and runs migrations.
func New(dbPath string) (*DB, error) {
	conn, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("sqlite: opening database: %w", err)
	}

	// Surface bad paths/permissions now instead of on the first query.
	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: pinging database: %w", err)
	}

	// WAL lets reads proceed while a write is in flight — without it every
	// comment insert would block concurrent page loads.
	if _, err := conn.Exec("PRAGMA journal_mode=WAL"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: setting WAL mode: %w", err)
	}

	// Foreign keys are off by default in SQLite; comments reference users.
	if _, err := conn.Exec("PRAGMA foreign_keys=ON"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: enabling foreign keys: %w", err)
	}

	db := &DB{conn: conn}

	if err := db.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: running migrations: %w", err)
	}

	return db, nil
}

// Close closes the connection pool. The server defers this on shutdown so
// the WAL is flushed and the file lock released.
func (db *DB) Close() error {
	return db.conn.Close()
}

// migrate creates the schema. CREATE TABLE IF NOT EXISTS keeps this safe to
// run on every startup.
func (db *DB) migrate() error {
	// The UNIQUE(provider, provider_id) index is what makes the identity
	// key a key: two concurrent first-time logins for the same account
	// cannot both insert — the upsert in user.go resolves the collision
	// inside SQLite instead of surfacing it.
	_, err := db.conn.Exec(`
		CREATE TABLE IF NOT EXISTS users (
			id          TEXT PRIMARY KEY,
			provider    TEXT NOT NULL,
			provider_id TEXT NOT NULL,
			name        TEXT NOT NULL DEFAULT '',
			avatar      TEXT NOT NULL DEFAULT '',
			email       TEXT NOT NULL DEFAULT '',
			created_at  DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at  DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			UNIQUE(provider, provider_id)
		);
	`)
	if err != nil {
		return fmt.Errorf("creating users table: %w", err)
	}

	_, err = db.conn.Exec(`
		CREATE TABLE IF NOT EXISTS comments (
			id         TEXT PRIMARY KEY,
			body       TEXT NOT NULL,
			user_id    TEXT NOT NULL REFERENCES users(id),
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_comments_created_at ON comments(created_at);
	`)
	if err != nil {
		return fmt.Errorf("creating comments table: %w", err)
	}

	_, err = db.conn.Exec(`
		CREATE TABLE IF NOT EXISTS projects (
			id          INTEGER PRIMARY KEY AUTOINCREMENT,
			name        TEXT NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			repo_url    TEXT NOT NULL
		);
	`)
	if err != nil {
		return fmt.Errorf("creating projects table: %w", err)
	}

	return nil
}
