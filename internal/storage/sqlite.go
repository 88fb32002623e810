// Package storage provides SQLite-based persistence for saved progress and
// Level 3 run history.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/vovakirdan/phone-secrets/internal/progress"
)

// Store manages the SQLite database connection.
// database/sql serializes access, so one Store can back many SSH sessions.
type Store struct {
	db *sql.DB
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	// Expand ~ to home directory
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	// Concurrent SSH sessions write through the same file.
	if _, err := db.Exec("PRAGMA journal_mode=WAL; PRAGMA busy_timeout=5000"); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot configure database: %w", err)
	}

	store := &Store{db: db}

	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS documents (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);

		CREATE TABLE IF NOT EXISTS level3_runs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id TEXT NOT NULL UNIQUE,
			profile TEXT NOT NULL,
			wellbeing INTEGER NOT NULL,
			dopamine INTEGER NOT NULL,
			crashes INTEGER NOT NULL DEFAULT 0,
			screen_uses INTEGER NOT NULL DEFAULT 0,
			real_uses INTEGER NOT NULL DEFAULT 0,
			peak_dopamine REAL NOT NULL DEFAULT 0,
			lowest_wellbeing REAL NOT NULL DEFAULT 0,
			tier TEXT NOT NULL,
			volatility REAL NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_level3_runs_profile ON level3_runs(profile);
		CREATE INDEX IF NOT EXISTS idx_level3_runs_best ON level3_runs(profile, wellbeing DESC);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Document returns the value stored under key, or nil if there is none.
func (s *Store) Document(key string) ([]byte, error) {
	var value string
	err := s.db.QueryRow("SELECT value FROM documents WHERE key = ?", key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot read document %s: %w", key, err)
	}
	return []byte(value), nil
}

// PutDocument replaces the value stored under key.
func (s *Store) PutDocument(key string, value []byte) error {
	_, err := s.db.Exec(
		`INSERT INTO documents (key, value, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		key, string(value),
	)
	if err != nil {
		return fmt.Errorf("storage: cannot write document %s: %w", key, err)
	}
	return nil
}

// DeleteDocument removes key. Deleting a missing key is not an error.
func (s *Store) DeleteDocument(key string) error {
	if _, err := s.db.Exec("DELETE FROM documents WHERE key = ?", key); err != nil {
		return fmt.Errorf("storage: cannot delete document %s: %w", key, err)
	}
	return nil
}

// ProgressStore keeps one profile's progress document.
type ProgressStore struct {
	store *Store
	key   string
}

// Progress returns the progress document store of profile.
func (s *Store) Progress(profile string) *ProgressStore {
	return &ProgressStore{store: s, key: progress.Key + "/" + profile}
}

// Load returns the saved document, nil if there is none.
func (p *ProgressStore) Load() ([]byte, error) {
	return p.store.Document(p.key)
}

// Save replaces the document.
func (p *ProgressStore) Save(data []byte) error {
	return p.store.PutDocument(p.key, data)
}

// Clear removes the document.
func (p *ProgressStore) Clear() error {
	return p.store.DeleteDocument(p.key)
}

var _ progress.Store = (*ProgressStore)(nil)

// scanTime converts a DATETIME column, which the driver may return as
// time.Time or as text.
func scanTime(v any) time.Time {
	switch v := v.(type) {
	case time.Time:
		return v
	case string:
		for _, layout := range []string{"2006-01-02 15:04:05", time.RFC3339Nano} {
			if parsed, err := time.Parse(layout, v); err == nil {
				return parsed
			}
		}
	}
	return time.Time{}
}
