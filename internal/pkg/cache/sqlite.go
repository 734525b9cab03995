package cache

import (
	"database/sql"
	"fmt"
	"sync"

	_ "github.com/mattn/go-sqlite3"
)

// SQLite is a Cache backed by a single-table SQLite database. WAL mode keeps
// readers from blocking the writer and improves crash recovery.
type SQLite struct {
	db       *sql.DB
	mu       sync.Mutex
	capacity int64 // total payload bytes; 0 means unlimited
}

// NewSQLite opens (or creates) the cache database at path. Use ":memory:"
// for an in-memory database.
func NewSQLite(path string, capacityBytes int64) (*SQLite, error) {
	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open cache database: %w", err)
	}

	schema := `
	CREATE TABLE IF NOT EXISTS blobs (
		key TEXT PRIMARY KEY,
		value BLOB NOT NULL,
		updated_at TEXT NOT NULL DEFAULT (datetime('now'))
	);
	`
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate cache database: %w", err)
	}

	return &SQLite{db: db, capacity: capacityBytes}, nil
}

func (s *SQLite) Close() error {
	return s.db.Close()
}

func (s *SQLite) Get(key string) ([]byte, bool, error) {
	var value []byte
	err := s.db.QueryRow(`SELECT value FROM blobs WHERE key = ?`, key).Scan(&value)
	if err == sql.ErrNoRows {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to read cache key %q: %w", key, err)
	}
	return value, true, nil
}

func (s *SQLite) Set(key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.capacity > 0 {
		var existing int64
		err := s.db.QueryRow(
			`SELECT COALESCE(SUM(LENGTH(value)), 0) FROM blobs WHERE key != ?`, key,
		).Scan(&existing)
		if err != nil {
			return fmt.Errorf("failed to measure cache size: %w", err)
		}
		if existing+int64(len(value)) > s.capacity {
			return ErrCapacityExceeded
		}
	}

	_, err := s.db.Exec(`
		INSERT INTO blobs (key, value, updated_at) VALUES (?, ?, datetime('now'))
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
	`, key, value)
	if err != nil {
		return fmt.Errorf("failed to write cache key %q: %w", key, err)
	}
	return nil
}

func (s *SQLite) Delete(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.db.Exec(`DELETE FROM blobs WHERE key = ?`, key); err != nil {
		return fmt.Errorf("failed to delete cache key %q: %w", key, err)
	}
	return nil
}
