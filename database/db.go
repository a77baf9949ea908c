// Package database persists the application snapshot in sqlite as a
// single keyed JSON blob: load on start, save after every mutation.
package database

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"ggumjisum/backend/models"
)

const snapshotKey = "island-state"

// Store wraps the sqlite connection.
type Store struct {
	db *sql.DB
}

// New opens (or creates) the database at path and ensures the schema.
// Use ":memory:" in tests.
func New(path string) (*Store, error) {
	dsn := path
	inMemory := path == ":memory:"
	if !inMemory {
		// Connection parameters to better handle concurrency.
		dsn = path + "?_journal=WAL&_busy_timeout=10000"
	}

	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if inMemory {
		// A second connection would see a different empty database.
		db.SetMaxOpenConns(1)
	} else {
		db.SetMaxOpenConns(5)
		db.SetMaxIdleConns(5)
		db.SetConnMaxLifetime(5 * time.Minute)
		if _, err := db.Exec("PRAGMA journal_mode=WAL;"); err != nil {
			return nil, fmt.Errorf("setting WAL mode: %w", err)
		}
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("pinging database: %w", err)
	}

	createSnapshotsTable := `
	CREATE TABLE IF NOT EXISTS snapshots (
		key TEXT PRIMARY KEY,
		value BLOB NOT NULL,
		updated_at DATETIME NOT NULL
	);
	`
	if _, err := db.Exec(createSnapshotsTable); err != nil {
		return nil, fmt.Errorf("creating snapshots table: %w", err)
	}

	return &Store{db: db}, nil
}

// Close releases the connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// LoadSnapshot returns the persisted snapshot, or nil when none has been
// saved yet.
func (s *Store) LoadSnapshot() (*models.Snapshot, error) {
	var blob []byte
	err := s.db.QueryRow("SELECT value FROM snapshots WHERE key = ?", snapshotKey).Scan(&blob)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("loading snapshot: %w", err)
	}

	var snap models.Snapshot
	if err := json.Unmarshal(blob, &snap); err != nil {
		return nil, fmt.Errorf("decoding snapshot: %w", err)
	}
	return &snap, nil
}

// SaveSnapshot upserts the snapshot blob.
func (s *Store) SaveSnapshot(snap *models.Snapshot) error {
	blob, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("encoding snapshot: %w", err)
	}

	_, err = s.db.Exec(`
		INSERT INTO snapshots (key, value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
	`, snapshotKey, blob, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("saving snapshot: %w", err)
	}
	return nil
}
