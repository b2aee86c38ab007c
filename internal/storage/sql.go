package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/phillipyBr/Meu-Bolso/internal/database"
)

type queries struct {
	get string
	set string
}

var dialects = map[database.Driver]queries{
	database.DriverSQLite: {
		get: `SELECT value FROM kv_entries WHERE key = ?`,
		set: `
			INSERT INTO kv_entries (key, value, updated_at)
			VALUES (?, ?, CURRENT_TIMESTAMP)
			ON CONFLICT (key) DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP
		`,
	},
	database.DriverPostgres: {
		get: `SELECT value FROM kv_entries WHERE key = $1`,
		set: `
			INSERT INTO kv_entries (key, value, updated_at)
			VALUES ($1, $2, NOW())
			ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = NOW()
		`,
	},
}

// SQL is a Store backed by the kv_entries table.
type SQL struct {
	db *sql.DB
	q  queries
}

func NewSQL(db *sql.DB, driver database.Driver) (*SQL, error) {
	q, ok := dialects[driver]
	if !ok {
		return nil, fmt.Errorf("unsupported storage driver: %s", driver)
	}

	return &SQL{db: db, q: q}, nil
}

func (s *SQL) Get(ctx context.Context, key string) (string, error) {
	var value string

	err := s.db.QueryRowContext(ctx, s.q.get, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrNotFound
	}

	if err != nil {
		return "", fmt.Errorf("get %s: %w", key, err)
	}

	return value, nil
}

func (s *SQL) Set(ctx context.Context, key, value string) error {
	if _, err := s.db.ExecContext(ctx, s.q.set, key, value); err != nil {
		return fmt.Errorf("set %s: %w", key, err)
	}

	return nil
}
