// Package sqlite implements the repository interfaces using SQLite as the
// storage backend.
//
// WHY modernc.org/sqlite INSTEAD OF github.com/mattn/go-sqlite3?
// mattn/go-sqlite3 uses CGo, which means you need a C compiler installed
// and cross-compilation becomes painful. modernc.org/sqlite is a pure Go
// translation of the SQLite C code — no C compiler needed, works everywhere
// Go works.
//
// DOCUMENT-STYLE COLUMNS:
// The entities here were designed around a document store: a study group
// carries its member list inside the document, and a study data document
// carries its question list. We keep those semantics by storing the
// embedded collections as JSON text columns on the parent row. The parent
// row is the unit of read and write — updating one question rewrites the
// whole questions column, and deleting the parent takes its questions with
// it. That is exactly the lifecycle the data model wants, so there is no
// questions table to keep in sync.
package sqlite

import (
	"database/sql"
	"encoding/json"
	"fmt"

	// Side-effect import: registers the "sqlite" driver with database/sql.
	_ "modernc.org/sqlite"
)

// DB wraps a sql.DB connection pool and implements the repository
// interfaces declared in the repository package.
type DB struct {
	conn *sql.DB
}

// New opens a SQLite database at dbPath and runs migrations.
// Use ":memory:" for an in-memory database (handy in tests).
func New(dbPath string) (*DB, error) {
	conn, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("sqlite: opening database: %w", err)
	}

	// Ping forces an immediate connection so a bad path or permissions
	// issue surfaces here rather than on the first query.
	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: pinging database: %w", err)
	}

	// WAL mode allows concurrent reads while a write is in progress,
	// which matters for a web server where requests overlap.
	if _, err := conn.Exec("PRAGMA journal_mode=WAL"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: setting WAL mode: %w", err)
	}

	db := &DB{conn: conn}

	if err := db.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: running migrations: %w", err)
	}

	return db, nil
}

// Close closes the database connection pool.
func (db *DB) Close() error {
	return db.conn.Close()
}

// migrate creates the tables. CREATE TABLE IF NOT EXISTS keeps this safe
// to run on every startup.
func (db *DB) migrate() error {
	_, err := db.conn.Exec(`
		CREATE TABLE IF NOT EXISTS users (
			id            TEXT PRIMARY KEY,
			nickname      TEXT NOT NULL,
			email         TEXT NOT NULL,
			profile_image TEXT NOT NULL DEFAULT '',
			is_premium    INTEGER NOT NULL DEFAULT 0,
			created_at    DATETIME NOT NULL,
			updated_at    DATETIME NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_users_email ON users(email);
	`)
	if err != nil {
		return fmt.Errorf("creating users table: %w", err)
	}

	_, err = db.conn.Exec(`
		CREATE TABLE IF NOT EXISTS study_groups (
			id         TEXT PRIMARY KEY,
			title      TEXT NOT NULL,
			category   TEXT NOT NULL,
			password   TEXT NOT NULL,
			salt       TEXT NOT NULL,
			owner      TEXT NOT NULL,
			max_people INTEGER NOT NULL,
			is_premium INTEGER NOT NULL DEFAULT 0,
			people     TEXT NOT NULL DEFAULT '[]',
			created_at DATETIME NOT NULL,
			updated_at DATETIME NOT NULL
		);
	`)
	if err != nil {
		return fmt.Errorf("creating study_groups table: %w", err)
	}

	_, err = db.conn.Exec(`
		CREATE TABLE IF NOT EXISTS study_data (
			id             TEXT PRIMARY KEY,
			week           INTEGER NOT NULL,
			date           DATETIME NOT NULL,
			slide_info     TEXT NOT NULL DEFAULT '[]',
			study_group_id TEXT NOT NULL,
			questions      TEXT NOT NULL DEFAULT '[]',
			created_at     DATETIME NOT NULL,
			updated_at     DATETIME NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_study_data_group ON study_data(study_group_id);
	`)
	if err != nil {
		return fmt.Errorf("creating study_data table: %w", err)
	}

	return nil
}

// marshalJSON serializes an embedded collection for a JSON text column.
// A nil slice is stored as an empty JSON array so reads never see NULL.
func marshalJSON(v any) (string, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("marshaling embedded column: %w", err)
	}
	if string(b) == "null" {
		return "[]", nil
	}
	return string(b), nil
}

func unmarshalJSON(raw string, v any) error {
	if err := json.Unmarshal([]byte(raw), v); err != nil {
		return fmt.Errorf("unmarshaling embedded column: %w", err)
	}
	return nil
}
