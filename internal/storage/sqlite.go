package storage

import (
	"context"
	"database/sql"
	"errors"

	"github.com/shivam041/riseapp/internal"
	_ "modernc.org/sqlite"
)

// SQLiteStore persists the key space in a single kv table. Each Set is its
// own transaction; RemoveMany stays per-key to match the adapter contract.
type SQLiteStore struct {
	db     *sql.DB
	logger internal.Logger
}

func NewSQLiteStore(path string, logger internal.Logger) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		logger.Errorf("storage: failed to open sqlite db: %v", err)
		return nil, err
	}
	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS kv (key TEXT PRIMARY KEY, value TEXT NOT NULL)`); err != nil {
		db.Close()
		logger.Errorf("storage: failed to init kv table: %v", err)
		return nil, err
	}
	return &SQLiteStore{db: db, logger: logger}, nil
}

func (s *SQLiteStore) Get(ctx context.Context, key string) (string, bool, error) {
	var v string
	err := s.db.QueryRowContext(ctx, `SELECT value FROM kv WHERE key = ?`, key).Scan(&v)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		s.logger.Errorf("storage: sqlite get failed: %v", err)
		return "", false, err
	}
	return v, true, nil
}

func (s *SQLiteStore) Set(ctx context.Context, key, value string) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO kv (key, value) VALUES (?, ?) ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		key, value)
	if err != nil {
		s.logger.Errorf("storage: sqlite set failed: %v", err)
	}
	return err
}

func (s *SQLiteStore) Remove(ctx context.Context, key string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM kv WHERE key = ?`, key)
	if err != nil {
		s.logger.Errorf("storage: sqlite remove failed: %v", err)
	}
	return err
}

func (s *SQLiteStore) RemoveMany(ctx context.Context, keys []string) error {
	for _, k := range keys {
		if err := s.Remove(ctx, k); err != nil {
			return err
		}
	}
	return nil
}

func (s *SQLiteStore) Close() error { return s.db.Close() }

var _ KVStore = (*SQLiteStore)(nil)
