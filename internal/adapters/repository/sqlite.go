package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/okian/underdog/internal/domain/model"
	_ "modernc.org/sqlite"
)

// snapshotKey matches the storage key the original pool used, so the
// store stays a single-row key-value table rather than a relational schema.
const snapshotKey = "underdog-pool-state-v2"

const snapshotSchema = `
CREATE TABLE IF NOT EXISTS snapshots (
    key      TEXT PRIMARY KEY,
    payload  BLOB NOT NULL,
    saved_at INTEGER NOT NULL
);`

// Option applies a configuration option to the SQLiteStore.
type Option func(*SQLiteStore)

// WithKey overrides the snapshot key, letting several pools share a file.
func WithKey(key string) Option {
	return func(s *SQLiteStore) {
		if key != "" {
			s.key = key
		}
	}
}

// SQLiteStore persists the pool snapshot as a JSON blob in a single
// key-value table.
type SQLiteStore struct {
	db  *sql.DB
	key string
}

// Open opens (creating if needed) a snapshot store at path.
func Open(path string, opts ...Option) (*SQLiteStore, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("%w: path is required", ErrOpenStore)
	}

	dsn := filepath.Clean(path) + "?_journal_mode=WAL&_busy_timeout=5000&_synchronous=NORMAL"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrOpenStore, err)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("%w: %w", ErrOpenStore, err)
	}
	if _, err := db.Exec(snapshotSchema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("%w: %w", ErrOpenStore, err)
	}

	s := &SQLiteStore{db: db, key: snapshotKey}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Close releases the underlying SQLite connection.
func (s *SQLiteStore) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Load returns the stored snapshot, or ok=false when none exists.
func (s *SQLiteStore) Load(ctx context.Context) (*model.PoolState, bool, error) {
	var payload []byte
	err := s.db.QueryRowContext(ctx,
		`SELECT payload FROM snapshots WHERE key = ?`, s.key,
	).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("load snapshot: %w", err)
	}

	var state model.PoolState
	if err := json.Unmarshal(payload, &state); err != nil {
		return nil, false, fmt.Errorf("%w: %w", ErrDecode, err)
	}
	state.Normalize()
	return &state, true, nil
}

// Save persists the whole snapshot, replacing any previous one.
func (s *SQLiteStore) Save(ctx context.Context, state *model.PoolState) error {
	payload, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrEncode, err)
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO snapshots (key, payload, saved_at) VALUES (?, ?, ?)
		 ON CONFLICT(key) DO UPDATE SET payload = excluded.payload, saved_at = excluded.saved_at`,
		s.key, payload, time.Now().UnixMilli(),
	)
	if err != nil {
		return fmt.Errorf("save snapshot: %w", err)
	}
	return nil
}
