package storage

import (
	"context"
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

// DB wraps the SQLite database connection.
type DB struct {
	conn *sql.DB
}

// OpenDB opens a private in-memory SQLite database. It lives as long as the
// session does.
func OpenDB(ctx context.Context) (*DB, error) {
	conn, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	// Each connection to :memory: is a separate database.
	conn.SetMaxOpenConns(1)

	if _, err := conn.ExecContext(ctx, "PRAGMA foreign_keys=ON"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("enabling foreign keys: %w", err)
	}

	db := &DB{conn: conn}

	if err := db.migrate(ctx); err != nil {
		conn.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return db, nil
}

// Close closes the database connection.
func (db *DB) Close() error {
	if db.conn != nil {
		return db.conn.Close()
	}
	return nil
}

// Conn returns the underlying sql.DB for direct queries.
func (db *DB) Conn() *sql.DB {
	return db.conn
}

// migrate creates the schema if it doesn't exist.
func (db *DB) migrate(ctx context.Context) error {
	schema := `
	CREATE TABLE IF NOT EXISTS transitions (
		id           INTEGER PRIMARY KEY AUTOINCREMENT,
		action       TEXT    NOT NULL,
		path         TEXT    NOT NULL,
		location_key TEXT    NOT NULL DEFAULT '',
		outcome      TEXT    NOT NULL,
		session_len  INTEGER NOT NULL DEFAULT 0,
		created_at   INTEGER NOT NULL -- unix milliseconds
	);

	CREATE INDEX IF NOT EXISTS idx_transitions_path ON transitions(path);
	CREATE INDEX IF NOT EXISTS idx_transitions_outcome ON transitions(outcome);
	`

	_, err := db.conn.ExecContext(ctx, schema)
	return err
}
