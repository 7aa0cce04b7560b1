package settings

import (
	"bytes"
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

const createTableSQL = `CREATE TABLE IF NOT EXISTS kv (
	key text PRIMARY KEY,
	value text NOT NULL,
	updated_at integer NOT NULL
)`

// SQLiteStore persists values in a SQLite database file.
type SQLiteStore struct {
	db *sql.DB

	mu     sync.Mutex
	notify notifier
	closed bool
}

// OpenSQLite opens (creating if needed) the store at path.
func OpenSQLite(path string) (*SQLiteStore, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("store path is required")
	}
	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create store directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", filepath.Clean(path)+"?_busy_timeout=5000&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open store: %w", err)
	}
	if _, err := db.Exec(createTableSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// Get implements Store.
func (s *SQLiteStore) Get(ctx context.Context, keys ...string) (Raw, error) {
	if s.isClosed() {
		return nil, ErrClosed
	}

	query := "SELECT key, value FROM kv"
	args := make([]any, 0, len(keys))
	if len(keys) > 0 {
		query += " WHERE key IN (?" + strings.Repeat(", ?", len(keys)-1) + ")"
		for _, k := range keys {
			args = append(args, k)
		}
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to read settings: %w", err)
	}
	defer rows.Close()

	raw := make(Raw)
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return nil, fmt.Errorf("failed to scan setting: %w", err)
		}
		raw[key] = []byte(value)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read settings: %w", err)
	}
	return raw, nil
}

// Set implements Store. All values are written in one transaction.
func (s *SQLiteStore) Set(ctx context.Context, values map[string]any) error {
	if s.isClosed() {
		return ErrClosed
	}
	encoded, err := encodeValues(values)
	if err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	now := time.Now().UnixMilli()
	var changed []string
	for k, v := range encoded {
		var old string
		err := tx.QueryRowContext(ctx, "SELECT value FROM kv WHERE key = ?", k).Scan(&old)
		switch {
		case err == nil && bytes.Equal([]byte(old), v):
			continue
		case err != nil && err != sql.ErrNoRows:
			return fmt.Errorf("failed to read %s: %w", k, err)
		}

		if _, err := tx.ExecContext(ctx,
			`INSERT INTO kv (key, value, updated_at) VALUES (?, ?, ?)
			 ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
			k, string(v), now); err != nil {
			return fmt.Errorf("failed to write %s: %w", k, err)
		}
		changed = append(changed, k)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit settings: %w", err)
	}

	sort.Strings(changed)
	s.publish(changed)
	return nil
}

// Remove implements Store.
func (s *SQLiteStore) Remove(ctx context.Context, keys ...string) error {
	if s.isClosed() {
		return ErrClosed
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var changed []string
	for _, k := range keys {
		res, err := tx.ExecContext(ctx, "DELETE FROM kv WHERE key = ?", k)
		if err != nil {
			return fmt.Errorf("failed to remove %s: %w", k, err)
		}
		if n, _ := res.RowsAffected(); n > 0 {
			changed = append(changed, k)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit removal: %w", err)
	}

	sort.Strings(changed)
	s.publish(changed)
	return nil
}

// Subscribe implements Store. Only changes made through this handle are
// reported; other processes writing the same file are not observed.
func (s *SQLiteStore) Subscribe() (<-chan Change, func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id, ch := s.notify.subscribe()
	if s.closed {
		s.notify.unsubscribe(id)
	}
	var once sync.Once
	return ch, func() {
		once.Do(func() {
			s.mu.Lock()
			defer s.mu.Unlock()
			s.notify.unsubscribe(id)
		})
	}
}

// Close implements Store.
func (s *SQLiteStore) Close() error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.closed = true
	s.notify.closeAll()
	s.mu.Unlock()

	return s.db.Close()
}

func (s *SQLiteStore) isClosed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}

func (s *SQLiteStore) publish(keys []string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.notify.publish(keys)
}
