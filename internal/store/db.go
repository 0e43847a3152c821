package store

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

// DB is the sentimeter database: the product catalog, feedback payloads,
// and analytics snapshots.
type DB struct {
	conn *sql.DB
}

// fileDSN applies pragmas to every pooled connection, since SQLite scopes
// them per connection. WAL lets a watch loop read while another command
// writes. Foreign keys are off in SQLite unless asked for, and deleting a
// product relies on them to take its feedback along.
const fileDSN = "?_pragma=foreign_keys(1)&_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)"

// Open opens the database file at dbPath, creating it and its directory on
// first use, and migrates the schema.
func Open(dbPath string) (*DB, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("creating database directory: %w", err)
	}
	conn, err := sql.Open("sqlite", dbPath+fileDSN)
	if err != nil {
		return nil, err
	}
	return setup(conn)
}

// OpenInMemory opens a private in-memory database for tests.
func OpenInMemory() (*DB, error) {
	conn, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		return nil, err
	}
	// A second pooled connection would open a second, empty database.
	conn.SetMaxOpenConns(1)
	if _, err := conn.Exec("PRAGMA foreign_keys=ON"); err != nil {
		_ = conn.Close()
		return nil, err
	}
	return setup(conn)
}

// setup migrates the schema, closing conn on failure.
func setup(conn *sql.DB) (*DB, error) {
	db := &DB{conn: conn}
	if err := db.Migrate(); err != nil {
		_ = conn.Close()
		return nil, err
	}
	return db, nil
}

// Close releases the connection pool.
func (db *DB) Close() error {
	return db.conn.Close()
}

// Conn exposes the pool for queries the store has no method for.
func (db *DB) Conn() *sql.DB {
	return db.conn
}
