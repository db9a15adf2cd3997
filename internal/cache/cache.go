// Package cache memoizes proof-search answers in sqlite under a
// caller-computed key; no other package in this module calls it (internal/rpc
// runs every search afresh). The clause database is read-only for the duration of a
// search, so identical (program, goal) pairs are safe to memoize. The
// pure-Go modernc.org/sqlite driver keeps the build cgo-free.
package cache

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

// Store is a sqlite-backed answer cache keyed by an opaque string (the
// caller computes the key, typically hash(program) + goal text).
type Store struct {
	db *sql.DB
}

// Open connects to (and initializes, if new) the sqlite database at path.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening cache db %s: %w", path, err)
	}
	db.SetMaxOpenConns(1) // modernc.org/sqlite serializes writers anyway

	const schema = `
CREATE TABLE IF NOT EXISTS answers (
	key TEXT PRIMARY KEY,
	answers_json TEXT NOT NULL,
	created_at INTEGER NOT NULL
)`
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("initializing cache schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Get returns the cached answers for key, if present.
func (s *Store) Get(key string) ([]map[string]string, bool, error) {
	var raw string
	err := s.db.QueryRow(`SELECT answers_json FROM answers WHERE key = ?`, key).Scan(&raw)
	if err == sql.ErrNoRows {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("reading cache entry %s: %w", key, err)
	}
	var answers []map[string]string
	if err := json.Unmarshal([]byte(raw), &answers); err != nil {
		return nil, false, fmt.Errorf("decoding cache entry %s: %w", key, err)
	}
	return answers, true, nil
}

// Put stores answers under key, overwriting any prior entry.
func (s *Store) Put(key string, answers []map[string]string) error {
	raw, err := json.Marshal(answers)
	if err != nil {
		return fmt.Errorf("encoding cache entry %s: %w", key, err)
	}
	_, err = s.db.Exec(
		`INSERT INTO answers (key, answers_json, created_at) VALUES (?, ?, ?)
		 ON CONFLICT(key) DO UPDATE SET answers_json = excluded.answers_json, created_at = excluded.created_at`,
		key, string(raw), time.Now().Unix(),
	)
	if err != nil {
		return fmt.Errorf("writing cache entry %s: %w", key, err)
	}
	return nil
}
