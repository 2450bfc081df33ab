package store

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

// SQLiteBackend keeps the slot in a one-table key/value sqlite database.
// Still a single key overwritten whole; sqlite only buys durable local
// writes without the tmp-file dance.
type SQLiteBackend struct {
	db  *sql.DB
	key string
}

func NewSQLiteBackend(path string) (*SQLiteBackend, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create slot directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite slot: %w", err)
	}

	// a single writer at a time is enough here
	db.SetMaxOpenConns(1)

	_, err = db.Exec(`CREATE TABLE IF NOT EXISTS slots (
		key   TEXT PRIMARY KEY,
		value BLOB NOT NULL
	)`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("create slots table: %w", err)
	}

	return &SQLiteBackend{db: db, key: SlotKey}, nil
}

func (b *SQLiteBackend) Read() ([]byte, bool, error) {
	var data []byte
	err := b.db.QueryRow(`SELECT value FROM slots WHERE key = ?`, b.key).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return data, true, nil
}

func (b *SQLiteBackend) Write(data []byte) error {
	_, err := b.db.Exec(
		`INSERT INTO slots (key, value) VALUES (?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		b.key, data,
	)
	return err
}

func (b *SQLiteBackend) Close() error {
	return b.db.Close()
}
